package config

// Screen layout configuration
const (
	// Default tile size in pixels
	TileSize = 16

	// Window dimensions in tiles
	ScreenWidth  = 40
	ScreenHeight = 24

	// Window dimensions in pixels (derived from tile dimensions)
	WindowWidth  = ScreenWidth * TileSize
	WindowHeight = ScreenHeight * TileSize
)

// GetScreenDimensions returns the logical screen dimensions in pixels
func GetScreenDimensions() (width, height int) {
	return WindowWidth, WindowHeight
}

// GetWindowSize returns the recommended window size (may be different from actual screen dimensions)
func GetWindowSize() (width, height int) {
	return WindowWidth * 2, WindowHeight * 2
}
