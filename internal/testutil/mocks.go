package testutil

import (
	"context"

	"wordmatch/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) EnsureUser(userID int64) (*domain.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) AuthorizeUser(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockProgressRepository is a mock for ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) GetProgress(userID int64) (map[domain.Level]int, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.Level]int), args.Error(1)
}

func (m *MockProgressRepository) IncrementWin(userID int64, level domain.Level) error {
	args := m.Called(userID, level)
	return args.Error(0)
}

// MockReviewRepository is a mock for ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) ListReview(userID int64, limit int) ([]domain.WordPair, error) {
	args := m.Called(userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WordPair), args.Error(1)
}

func (m *MockReviewRepository) CountReview(userID int64) (int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Error(1)
}

func (m *MockReviewRepository) AddReview(userID int64, pairs []domain.WordPair) error {
	args := m.Called(userID, pairs)
	return args.Error(0)
}

func (m *MockReviewRepository) RemoveReviewByText(userID int64, jpTexts []string) error {
	args := m.Called(userID, jpTexts)
	return args.Error(0)
}

// MockWordSource is a mock for wordsource.Source
type MockWordSource struct {
	mock.Mock
}

func (m *MockWordSource) Fetch(ctx context.Context, cfg domain.GameConfig) ([]domain.WordPair, error) {
	args := m.Called(ctx, cfg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WordPair), args.Error(1)
}
