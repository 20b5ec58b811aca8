// Package game implements the vocabulary matching board: building the two
// shuffled columns, the click state machine, mistake recording and the
// end-of-game notification.
package game

import "wordmatch/internal/domain"

// Column identifies which side of a pair a card shows
type Column string

const (
	ColumnJP Column = "JP"
	ColumnCN Column = "CN"
)

// CardStatus is the per-card state. A single field keeps selected, matched
// and error mutually exclusive.
type CardStatus int

const (
	StatusIdle CardStatus = iota
	StatusSelected
	StatusMatched
	StatusError
)

func (s CardStatus) String() string {
	switch s {
	case StatusSelected:
		return "selected"
	case StatusMatched:
		return "matched"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// Card is one tile of the board
type Card struct {
	ID       string
	PairID   string
	Column   Column
	Label    string                   // display text; furigana inline for JP cards
	Segments []domain.FuriganaSegment // JP only
	Speech   string                   // JP only
	Status   CardStatus
}

// IsMatched reports whether the card's pair was found
func (c Card) IsMatched() bool { return c.Status == StatusMatched }

// IsSelected reports whether the card is the pending first pick
func (c Card) IsSelected() bool { return c.Status == StatusSelected }

// IsError reports whether the card is flashing after a mismatch
func (c Card) IsError() bool { return c.Status == StatusError }
