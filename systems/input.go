package systems

// Intent is the player's control state for one simulation step
type Intent struct {
	Left  bool
	Right bool
	Jump  bool
	Fire  bool
}

// Input supplies intents to MovementSystem. The window and terminal drivers
// implement it from their keyboard state.
type Input interface {
	Intent() Intent
}

// InputFunc adapts a function to Input
type InputFunc func() Intent

// Intent calls f
func (f InputFunc) Intent() Intent {
	return f()
}

// StaticInput always reports the same intent
type StaticInput struct {
	Current Intent
}

// Intent returns the current intent
func (s *StaticInput) Intent() Intent {
	return s.Current
}
