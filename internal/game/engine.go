package game

import "slices"

// Phase is the session-wide input state
type Phase string

const (
	PhaseAwaitingFirstPick  Phase = "awaiting_first_pick"
	PhaseAwaitingSecondPick Phase = "awaiting_second_pick"
	PhaseCooldown           Phase = "cooldown"
)

// State is the full board and session state. Values are treated as
// immutable: Apply returns a new State and leaves its input untouched.
type State struct {
	Cards      []Card
	SelectedID string
	Matched    PairSet
	Mistaken   PairSet
	Processing bool // error flash on screen, input locked
	Total      int  // number of pairs on the board
}

// NewState returns the initial state for a freshly built board
func NewState(cards []Card) State {
	total := 0
	for _, c := range cards {
		if c.Column == ColumnJP {
			total++
		}
	}
	return State{
		Cards:    cards,
		Matched:  PairSet{},
		Mistaken: PairSet{},
		Total:    total,
	}
}

// Phase derives the session phase
func (s State) Phase() Phase {
	switch {
	case s.Processing:
		return PhaseCooldown
	case s.SelectedID != "":
		return PhaseAwaitingSecondPick
	default:
		return PhaseAwaitingFirstPick
	}
}

// Complete reports whether every pair on a non-empty board is matched
func (s State) Complete() bool {
	return s.Total > 0 && s.Matched.Len() == s.Total
}

// Card returns the card with id
func (s State) Card(id string) (Card, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.Cards[i], true
	}
	return Card{}, false
}

// Column returns the cards of one column in board order
func (s State) Column(col Column) []Card {
	out := make([]Card, 0, s.Total)
	for _, c := range s.Cards {
		if c.Column == col {
			out = append(out, c)
		}
	}
	return out
}

func (s State) indexOf(id string) int {
	for i, c := range s.Cards {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (s State) clone() State {
	next := s
	next.Cards = slices.Clone(s.Cards)
	return next
}

// Event is an input to the state machine
type Event interface{ isEvent() }

// Click is a player tapping a card
type Click struct{ CardID string }

// CooldownElapsed ends the error flash started by a mismatch
type CooldownElapsed struct{}

func (Click) isEvent()           {}
func (CooldownElapsed) isEvent() {}

// Effect is a side effect requested by a transition
type Effect interface{ isEffect() }

// Speak asks for the pronunciation of a JP card
type Speak struct{ Text string }

// StartCooldown asks for CooldownElapsed to be delivered after the flash delay
type StartCooldown struct{}

func (Speak) isEffect()         {}
func (StartCooldown) isEffect() {}

// Apply is the transition function. It reports whether the state changed;
// ignored events return the input state, no effects and false.
func Apply(s State, ev Event) (State, []Effect, bool) {
	switch e := ev.(type) {
	case Click:
		return applyClick(s, e.CardID)
	case CooldownElapsed:
		return applyCooldownElapsed(s)
	default:
		return s, nil, false
	}
}

func applyClick(s State, cardID string) (State, []Effect, bool) {
	if s.Processing {
		return s, nil, false
	}
	idx := s.indexOf(cardID)
	if idx < 0 {
		return s, nil, false
	}
	clicked := s.Cards[idx]
	if clicked.IsMatched() || clicked.ID == s.SelectedID {
		return s, nil, false
	}

	var effects []Effect
	if clicked.Column == ColumnJP && clicked.Speech != "" {
		effects = append(effects, Speak{Text: clicked.Speech})
	}

	next := s.clone()

	if s.SelectedID == "" {
		next.Cards[idx].Status = StatusSelected
		next.SelectedID = clicked.ID
		return next, effects, true
	}

	first := s.indexOf(s.SelectedID)
	if first < 0 {
		return s, nil, false
	}
	firstCard := s.Cards[first]

	if firstCard.PairID == clicked.PairID {
		next.Cards[first].Status = StatusMatched
		next.Cards[idx].Status = StatusMatched
		next.Matched = s.Matched.With(clicked.PairID)
		next.SelectedID = ""
		return next, effects, true
	}

	// The selection stays recorded until the cooldown ends.
	next.Cards[first].Status = StatusError
	next.Cards[idx].Status = StatusError
	next.Mistaken = s.Mistaken.With(firstCard.PairID)
	next.Processing = true
	return next, append(effects, StartCooldown{}), true
}

func applyCooldownElapsed(s State) (State, []Effect, bool) {
	if !s.Processing {
		return s, nil, false
	}

	next := s.clone()
	for i := range next.Cards {
		if next.Cards[i].IsError() {
			next.Cards[i].Status = StatusIdle
		}
	}
	next.SelectedID = ""
	next.Processing = false
	return next, nil, true
}
