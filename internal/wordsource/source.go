// Package wordsource produces the word pairs for a game session.
package wordsource

import (
	"context"

	"wordmatch/internal/domain"
)

// DefaultPairs is the number of pairs generated for one board
const DefaultPairs = 7

// Source fetches word pairs for a game config
type Source interface {
	Fetch(ctx context.Context, cfg domain.GameConfig) ([]domain.WordPair, error)
}
