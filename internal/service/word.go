package service

import (
	"context"
	"errors"
	"fmt"

	"wordmatch/internal/domain"
	"wordmatch/internal/wordsource"
)

// ErrNoWords is returned when no pairs could be loaded for a game
var ErrNoWords = errors.New("no words available")

// WordService loads the pairs for a game session
type WordService struct {
	source wordsource.Source
}

// NewWordService creates a new word service
func NewWordService(source wordsource.Source) *WordService {
	return &WordService{source: source}
}

// LoadPairs returns the review data in review mode, otherwise asks the source
func (s *WordService) LoadPairs(ctx context.Context, cfg domain.GameConfig) ([]domain.WordPair, error) {
	if cfg.ReviewMode {
		if len(cfg.ReviewData) == 0 {
			return nil, fmt.Errorf("%w: review list is empty", ErrNoWords)
		}
		return cfg.ReviewData, nil
	}

	pairs, err := s.source.Fetch(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoWords, err)
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("%w: source returned no pairs", ErrNoWords)
	}
	return pairs, nil
}
