package notifier

import (
	"sync"
)

// Sent is one message captured by MemoryMessenger.
type Sent struct {
	ChatID int64
	Text   string // text body or photo caption
	Photo  string // image path, empty for text
}

// MemoryMessenger records messages instead of sending them. Used for development and tests.
type MemoryMessenger struct {
	mu   sync.Mutex
	sent []Sent
	// FailNext makes the next N sends fail with Err.
	FailNext int
	Err      error
}

func (m *MemoryMessenger) SendText(chatID int64, text string) error {
	return m.record(Sent{ChatID: chatID, Text: text})
}

func (m *MemoryMessenger) SendPhoto(chatID int64, path, caption string) error {
	return m.record(Sent{ChatID: chatID, Text: caption, Photo: path})
}

func (m *MemoryMessenger) record(s Sent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailNext > 0 {
		m.FailNext--
		return m.Err
	}
	m.sent = append(m.sent, s)
	return nil
}

// Messages returns a copy of everything sent so far.
func (m *MemoryMessenger) Messages() []Sent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Sent(nil), m.sent...)
}
