package game

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"slices"
	"strconv"

	"wordmatch/internal/domain"
)

// Shuffler permutes n elements through swap. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// BuildBoard turns pairs into 2N cards: the JP column followed by the CN
// column, each shuffled independently. pairs is not modified. Card ids never
// equal any pair id on the board.
func BuildBoard(pairs []domain.WordPair, rnd Shuffler) []Card {
	jp := make([]Card, 0, len(pairs))
	cn := make([]Card, 0, len(pairs))

	pairIDs := make(map[string]struct{}, len(pairs))
	for _, p := range pairs {
		pairIDs[p.ID] = struct{}{}
	}

	for i, p := range pairs {
		jp = append(jp, Card{
			ID:       cardID("j", i, pairIDs),
			PairID:   p.ID,
			Column:   ColumnJP,
			Label:    p.JP.Ruby(),
			Segments: slices.Clone(p.JP.Segments),
			Speech:   p.JP.Text,
		})
		cn = append(cn, Card{
			ID:     cardID("c", i, pairIDs),
			PairID: p.ID,
			Column: ColumnCN,
			Label:  p.CN,
		})
	}

	rnd.Shuffle(len(jp), func(i, j int) { jp[i], jp[j] = jp[j], jp[i] })
	rnd.Shuffle(len(cn), func(i, j int) { cn[i], cn[j] = cn[j], cn[i] })

	return append(jp, cn...)
}

// cardID numbers a card within its column. While the id is taken by a pair
// the column prefix is repeated, so ids stay unique per index.
func cardID(prefix string, i int, taken map[string]struct{}) string {
	id := prefix + strconv.Itoa(i)
	for {
		if _, ok := taken[id]; !ok {
			return id
		}
		id = prefix + id
	}
}

// NewSeed generates a shuffle seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// NewRand returns a deterministic shuffler for seed
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
