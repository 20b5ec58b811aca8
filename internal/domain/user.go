package domain

import "time"

// User represents a bot user
type User struct {
	UserID     int64
	Authorized bool
	CreatedAt  time.Time
}

// UserState represents user's current interaction state
type UserState string

const (
	StateIdle    UserState = "idle"
	StateMenu    UserState = "menu"
	StateLoading UserState = "loading"
	StatePlaying UserState = "playing"
	StateResult  UserState = "result"
)

// StateData holds temporary data for user's current state
type StateData struct {
	State        UserState
	Level        Level
	Conjugations []Conjugation
	Config       *GameConfig // config of the last started session, for replay
	MessageID    int         // For editing messages
}

// HasConjugation reports whether c is currently selected in the menu
func (s *StateData) HasConjugation(c Conjugation) bool {
	for _, sel := range s.Conjugations {
		if sel == c {
			return true
		}
	}
	return false
}

// ToggleConjugation selects c if it is not selected, otherwise deselects it
func (s *StateData) ToggleConjugation(c Conjugation) {
	for i, sel := range s.Conjugations {
		if sel == c {
			s.Conjugations = append(s.Conjugations[:i:i], s.Conjugations[i+1:]...)
			return
		}
	}
	s.Conjugations = append(s.Conjugations, c)
}
