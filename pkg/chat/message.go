// Package chat holds the conversation state behind the agent chat screen:
// an append-only message list, a single-flight submission guard and the
// cosmetic loading placeholder rotation.
package chat

import (
	"slices"
	"sync"

	"github.com/google/uuid"
)

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in a conversation. Messages are values and are never
// modified after creation.
type Message struct {
	ID      string
	Role    Role
	Content string
}

func newMessage(role Role, content string) Message {
	return Message{
		ID:      uuid.NewString(),
		Role:    role,
		Content: content,
	}
}

// Conversation is an ordered, append-only list of messages owned by one
// session identifier. Safe for concurrent use.
type Conversation struct {
	id       string
	mu       sync.RWMutex
	messages []Message
}

// NewConversation creates an empty conversation with a fresh identifier.
func NewConversation() *Conversation {
	return &Conversation{id: uuid.NewString()}
}

// ID returns the session identifier sent with every agent request.
func (c *Conversation) ID() string {
	return c.id
}

func (c *Conversation) append(msg Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
}

// Messages returns a copy of the messages in display order.
func (c *Conversation) Messages() []Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.messages)
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}

// LastAssistant returns the most recent assistant message, if any.
func (c *Conversation) LastAssistant() (Message, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Role == RoleAssistant {
			return c.messages[i], true
		}
	}
	return Message{}, false
}
