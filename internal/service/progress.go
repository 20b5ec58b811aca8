package service

import (
	"wordmatch/internal/domain"
	"wordmatch/internal/repository"

	"go.uber.org/zap"
)

// ReviewBatchSize is the number of review items played per review session
const ReviewBatchSize = 7

// Summary is what the menu needs to know about a user
type Summary struct {
	Wins        map[domain.Level]int
	ReviewCount int
}

// ProgressService keeps level wins and the review list.
// Storage failures are logged and never reach the caller.
type ProgressService struct {
	progressRepo repository.ProgressRepository
	reviewRepo   repository.ReviewRepository
	logger       *zap.Logger
}

// NewProgressService creates a new progress service
func NewProgressService(progressRepo repository.ProgressRepository, reviewRepo repository.ReviewRepository, logger *zap.Logger) *ProgressService {
	return &ProgressService{
		progressRepo: progressRepo,
		reviewRepo:   reviewRepo,
		logger:       logger,
	}
}

// Summary returns the level wins and review count, empty on storage errors
func (s *ProgressService) Summary(userID int64) Summary {
	return Summary{
		Wins:        s.GetProgress(userID),
		ReviewCount: s.ReviewCount(userID),
	}
}

// GetProgress returns the wins per level
func (s *ProgressService) GetProgress(userID int64) map[domain.Level]int {
	wins, err := s.progressRepo.GetProgress(userID)
	if err != nil {
		s.logger.Error("Failed to load progress", zap.Int64("user_id", userID), zap.Error(err))
		return map[domain.Level]int{}
	}
	return wins
}

// ReviewCount returns the number of pending review items
func (s *ProgressService) ReviewCount(userID int64) int {
	count, err := s.reviewRepo.CountReview(userID)
	if err != nil {
		s.logger.Error("Failed to count review items", zap.Int64("user_id", userID), zap.Error(err))
		return 0
	}
	return count
}

// ReviewBatch returns the next review items to play
func (s *ProgressService) ReviewBatch(userID int64) []domain.WordPair {
	pairs, err := s.reviewRepo.ListReview(userID, ReviewBatchSize)
	if err != nil {
		s.logger.Error("Failed to load review items", zap.Int64("user_id", userID), zap.Error(err))
		return nil
	}
	return pairs
}

// RecordFinish stores the outcome of a completed session.
// A normal game counts a win and queues its mistakes for review.
// A review game removes every played pair that was not mistaken again.
func (s *ProgressService) RecordFinish(userID int64, cfg domain.GameConfig, played, mistakes []domain.WordPair) {
	if cfg.ReviewMode {
		s.clearSolved(userID, played, mistakes)
		return
	}

	if err := s.progressRepo.IncrementWin(userID, cfg.Level); err != nil {
		s.logger.Error("Failed to record win",
			zap.Int64("user_id", userID),
			zap.String("level", string(cfg.Level)),
			zap.Error(err))
	}

	fresh := uniqueByText(mistakes)
	if len(fresh) == 0 {
		return
	}
	if err := s.reviewRepo.AddReview(userID, fresh); err != nil {
		s.logger.Error("Failed to save review items",
			zap.Int64("user_id", userID),
			zap.Int("count", len(fresh)),
			zap.Error(err))
		return
	}

	s.logger.Info("Review items queued", zap.Int64("user_id", userID), zap.Int("count", len(fresh)))
}

func (s *ProgressService) clearSolved(userID int64, played, mistakes []domain.WordPair) {
	missed := make(map[string]struct{}, len(mistakes))
	for _, p := range mistakes {
		missed[p.JP.Text] = struct{}{}
	}

	var solved []string
	for _, p := range uniqueByText(played) {
		if _, ok := missed[p.JP.Text]; !ok {
			solved = append(solved, p.JP.Text)
		}
	}
	if len(solved) == 0 {
		return
	}

	if err := s.reviewRepo.RemoveReviewByText(userID, solved); err != nil {
		s.logger.Error("Failed to clear review items",
			zap.Int64("user_id", userID),
			zap.Int("count", len(solved)),
			zap.Error(err))
	}
}

func uniqueByText(pairs []domain.WordPair) []domain.WordPair {
	seen := make(map[string]struct{}, len(pairs))
	var out []domain.WordPair
	for _, p := range pairs {
		if _, ok := seen[p.JP.Text]; ok {
			continue
		}
		seen[p.JP.Text] = struct{}{}
		out = append(out, p)
	}
	return out
}
