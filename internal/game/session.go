package game

import (
	"errors"
	"slices"
	"sync"
	"time"

	"wordmatch/internal/domain"

	"go.uber.org/zap"
)

// ErrNoPairs is returned when a session is started without any word pairs
var ErrNoPairs = errors.New("game: no word pairs")

const (
	DefaultFlashDelay  = 800 * time.Millisecond
	DefaultSettleDelay = time.Second

	SpeechLocale = "ja-JP"
	SpeechRate   = 0.8
)

// Speaker plays pronunciation audio. Calls are fire-and-forget.
type Speaker interface {
	Speak(text, locale string, rate float64) error
}

// Options configures a Session. Zero values get defaults; Speaker, OnChange
// and OnFinish may be nil.
type Options struct {
	FlashDelay  time.Duration
	SettleDelay time.Duration
	Clock       Clock
	Rand        Shuffler
	Speaker     Speaker
	Logger      *zap.Logger

	// OnChange receives a snapshot after every state change. It must not
	// call back into the session synchronously.
	OnChange func(State)

	// OnFinish receives the mistaken pairs once, after the settle delay.
	OnFinish func(mistakes []domain.WordPair)
}

// Session runs one game. All state changes go through dispatch, which
// serializes clicks and timer callbacks.
type Session struct {
	pairs []domain.WordPair
	opts  Options

	mu       sync.Mutex
	state    State
	version  uint64
	closed   bool
	notifier completionNotifier
	cooldown func() bool

	notifyMu sync.Mutex
	notified uint64
}

// NewSession builds the board for pairs and returns a session awaiting the
// first pick
func NewSession(pairs []domain.WordPair, opts Options) (*Session, error) {
	if len(pairs) == 0 {
		return nil, ErrNoPairs
	}

	if opts.FlashDelay <= 0 {
		opts.FlashDelay = DefaultFlashDelay
	}
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = DefaultSettleDelay
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Rand == nil {
		seed, err := NewSeed()
		if err != nil {
			return nil, err
		}
		opts.Rand = NewRand(seed)
	}

	pairs = slices.Clone(pairs)
	return &Session{
		pairs:    pairs,
		opts:     opts,
		state:    NewState(BuildBoard(pairs, opts.Rand)),
		notifier: completionNotifier{clock: opts.Clock, delay: opts.SettleDelay},
	}, nil
}

// Select handles a click on cardID. It never blocks on timers; unknown ids,
// clicks during the error flash and clicks after Close are ignored.
func (s *Session) Select(cardID string) {
	s.dispatch(Click{CardID: cardID})
}

// Snapshot returns a copy of the current state
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Pairs returns the word pairs of this session in input order
func (s *Session) Pairs() []domain.WordPair {
	return slices.Clone(s.pairs)
}

// Mistakes returns the pairs mismatched so far, in input order
func (s *Session) Mistakes() []domain.WordPair {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Mistaken.Select(s.pairs)
}

// Close abandons the session: pending timers are stopped, the finish
// callback will not run and further clicks are ignored.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	if s.cooldown != nil {
		s.cooldown()
	}
	s.notifier.Stop()
}

// Closed reports whether the session finished or was abandoned
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Session) dispatch(ev Event) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	next, effects, changed := Apply(s.state, ev)
	if !changed {
		s.mu.Unlock()
		return
	}
	s.state = next
	s.version++
	version, snapshot := s.version, next.clone()

	for _, eff := range effects {
		switch e := eff.(type) {
		case Speak:
			s.speak(e.Text)
		case StartCooldown:
			s.cooldown = s.opts.Clock.AfterFunc(s.opts.FlashDelay, func() {
				s.dispatch(CooldownElapsed{})
			})
		}
	}
	if s.notifier.Observe(next, s.finish) {
		s.opts.Logger.Debug("Board complete, finish scheduled",
			zap.Int("pairs", next.Total),
			zap.Int("mistakes", next.Mistaken.Len()),
		)
	}
	s.mu.Unlock()

	s.publish(version, snapshot)
}

func (s *Session) finish() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	mistakes := s.state.Mistaken.Select(s.pairs)
	s.mu.Unlock()

	if s.opts.OnFinish != nil {
		s.opts.OnFinish(mistakes)
	}
}

// publish delivers snapshots in version order, dropping ones that were
// overtaken by a newer state.
func (s *Session) publish(version uint64, snapshot State) {
	if s.opts.OnChange == nil {
		return
	}

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	if version <= s.notified {
		return
	}
	s.notified = version
	s.opts.OnChange(snapshot)
}

func (s *Session) speak(text string) {
	if s.opts.Speaker == nil {
		return
	}

	speaker, logger := s.opts.Speaker, s.opts.Logger
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Debug("Speech panicked", zap.Any("panic", r))
			}
		}()
		if err := speaker.Speak(text, SpeechLocale, SpeechRate); err != nil {
			logger.Debug("Speech failed", zap.String("text", text), zap.Error(err))
		}
	}()
}
