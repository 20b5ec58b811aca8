package testutil

import (
	"fmt"
	"sync"
	"time"

	"wordmatch/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates a test user
func NewTestUser(userID int64, authorized bool) *domain.User {
	return &domain.User{
		UserID:     userID,
		Authorized: authorized,
		CreatedAt:  time.Now(),
	}
}

// NewTestPair creates a word pair whose JP side is a single kana segment
func NewTestPair(id, jp, cn string) domain.WordPair {
	return domain.WordPair{
		ID: id,
		JP: domain.NewJapanese([]domain.FuriganaSegment{{Text: jp}}),
		CN: cn,
	}
}

// NewTestPairs creates n pairs with ids p1..pn
func NewTestPairs(n int) []domain.WordPair {
	pairs := make([]domain.WordPair, 0, n)
	for i := 1; i <= n; i++ {
		pairs = append(pairs, NewTestPair(
			fmt.Sprintf("p%d", i),
			fmt.Sprintf("ことば%d", i),
			fmt.Sprintf("词%d", i),
		))
	}
	return pairs
}

// RecordingSpeaker records every spoken text
type RecordingSpeaker struct {
	Err   error
	Panic bool

	mu    sync.Mutex
	texts []string
}

// Speak records text and returns Err
func (s *RecordingSpeaker) Speak(text, locale string, rate float64) error {
	s.mu.Lock()
	s.texts = append(s.texts, text)
	s.mu.Unlock()

	if s.Panic {
		panic("speaker exploded")
	}
	return s.Err
}

// Texts returns the recorded texts
func (s *RecordingSpeaker) Texts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.texts...)
}
