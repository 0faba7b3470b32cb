package systems

import (
	"fmt"
	"image/color"

	"ebiten-platformer/components"
	"ebiten-platformer/ecs"
)

// MessageType picks how a message is drawn
type MessageType int

const (
	MessageTypeNormal MessageType = iota
	MessageTypeScore              // coins and other points
	MessageTypeHeal
	MessageTypeHurt   // the player lost health
	MessageTypeCombat // the player's shots landed
	MessageTypeAlert
)

var messageColors = map[MessageType]color.RGBA{
	MessageTypeNormal: {200, 200, 200, 255},
	MessageTypeScore:  {255, 215, 0, 255},
	MessageTypeHeal:   {96, 220, 96, 255},
	MessageTypeHurt:   {255, 90, 90, 255},
	MessageTypeCombat: {255, 160, 80, 255},
	MessageTypeAlert:  {255, 255, 0, 255},
}

// Message is one log line. Repeat counts identical messages logged in a row.
type Message struct {
	Text   string
	Type   MessageType
	Repeat int
}

// Line returns the text as shown, with the repeat count when there is one
func (m Message) Line() string {
	if m.Repeat > 1 {
		return fmt.Sprintf("%s x%d", m.Text, m.Repeat)
	}
	return m.Text
}

// Color returns the draw color of the message type
func (m Message) Color() color.RGBA {
	if c, ok := messageColors[m.Type]; ok {
		return c
	}
	return messageColors[MessageTypeNormal]
}

// MessageLog stores game messages, oldest first
type MessageLog struct {
	Messages    []Message
	MaxMessages int
}

// NewMessageLog creates a new message log
func NewMessageLog(maxMessages int) *MessageLog {
	return &MessageLog{MaxMessages: maxMessages}
}

// Add appends a message, dropping the oldest once the log is full. A message
// equal to the newest one bumps its repeat count instead.
func (ml *MessageLog) Add(text string, kind MessageType) {
	if n := len(ml.Messages); n > 0 && ml.Messages[n-1].Text == text && ml.Messages[n-1].Type == kind {
		ml.Messages[n-1].Repeat++
		return
	}
	ml.Messages = append(ml.Messages, Message{Text: text, Type: kind, Repeat: 1})
	if ml.MaxMessages > 0 && len(ml.Messages) > ml.MaxMessages {
		ml.Messages = ml.Messages[len(ml.Messages)-ml.MaxMessages:]
	}
}

// RecentMessages gets the n most recent messages, newest first
func (ml *MessageLog) RecentMessages(n int) []Message {
	if n > len(ml.Messages) {
		n = len(ml.Messages)
	}
	result := make([]Message, n)
	for i := 0; i < n; i++ {
		result[i] = ml.Messages[len(ml.Messages)-1-i]
	}
	return result
}

// Clear clears all messages
func (ml *MessageLog) Clear() {
	ml.Messages = nil
}

// MessageSystem turns gameplay events into log messages for the HUD
type MessageSystem struct {
	ecs.BaseSystem
	log  *MessageLog
	subs []ecs.Subscription
}

// NewMessageSystem creates a message system writing to log
func NewMessageSystem(log *MessageLog) *MessageSystem {
	return &MessageSystem{
		BaseSystem: ecs.NewBaseSystem(),
		log:        log,
	}
}

// Log returns the message log
func (s *MessageSystem) Log() *MessageLog {
	return s.log
}

// AddedToWorld subscribes to the events that produce messages
func (s *MessageSystem) AddedToWorld() {
	em := s.World().GetEventManager()
	s.subs = append(s.subs,
		em.Subscribe(EventItemConsumed, func(ev ecs.Event) {
			e := ev.(ItemConsumedEvent)
			s.log.Add(describeItem(e))
		}),
		em.Subscribe(EventDamage, func(ev ecs.Event) {
			e := ev.(DamageEvent)
			if ecs.Has[*components.Player](e.Target) {
				s.log.Add(fmt.Sprintf("You take %d damage", e.Amount), MessageTypeHurt)
			} else {
				s.log.Add(fmt.Sprintf("%s takes %d damage", e.Target.Type, e.Amount), MessageTypeCombat)
			}
		}),
		em.Subscribe(EventDeath, func(ev ecs.Event) {
			e := ev.(DeathEvent)
			s.log.Add(fmt.Sprintf("%s was defeated", e.Entity.Type), MessageTypeCombat)
		}),
		em.Subscribe(EventGameOver, func(ecs.Event) {
			s.log.Add("Game over", MessageTypeAlert)
		}),
	)
}

// RemovedFromWorld drops every subscription
func (s *MessageSystem) RemovedFromWorld() {
	em := s.World().GetEventManager()
	for _, sub := range s.subs {
		em.Unsubscribe(sub)
	}
	s.subs = nil
}

func describeItem(e ItemConsumedEvent) (string, MessageType) {
	if coin, ok := ecs.Get[*components.Coin](e.Item); ok {
		return fmt.Sprintf("Coin +%d", coin.Value), MessageTypeScore
	}
	if _, ok := ecs.Get[*components.HealthPack](e.Item); ok {
		return "Healed", MessageTypeHeal
	}
	return fmt.Sprintf("Picked up %s", e.Item.Type), MessageTypeNormal
}
