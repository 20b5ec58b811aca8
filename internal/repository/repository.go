package repository

import (
	"wordmatch/internal/domain"
)

// UserRepository defines user data operations
type UserRepository interface {
	EnsureUser(userID int64) (*domain.User, error)
	AuthorizeUser(userID int64) error
}

// ProgressRepository stores win counts per level
type ProgressRepository interface {
	GetProgress(userID int64) (map[domain.Level]int, error)
	IncrementWin(userID int64, level domain.Level) error
}

// ReviewRepository stores the pairs a user got wrong, keyed by Japanese text
type ReviewRepository interface {
	ListReview(userID int64, limit int) ([]domain.WordPair, error)
	CountReview(userID int64) (int, error)
	AddReview(userID int64, pairs []domain.WordPair) error
	RemoveReviewByText(userID int64, jpTexts []string) error
}
