package game

import (
	"errors"
	"sync"
	"testing"
	"time"

	"wordmatch/internal/domain"
	"wordmatch/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type finishRecorder struct {
	mu    sync.Mutex
	calls [][]domain.WordPair
}

func (r *finishRecorder) OnFinish(mistakes []domain.WordPair) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, mistakes)
}

func (r *finishRecorder) Calls() [][]domain.WordPair {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func newTestSession(t *testing.T, pairs []domain.WordPair, clock *testutil.FakeClock, finish *finishRecorder) *Session {
	t.Helper()
	s, err := NewSession(pairs, Options{
		Clock:    clock,
		Rand:     NewRand(5),
		Logger:   testutil.NewTestLogger(),
		OnFinish: finish.OnFinish,
	})
	require.NoError(t, err)
	return s
}

func pick(t *testing.T, s *Session, pairID string, col Column) {
	t.Helper()
	s.Select(cardOf(t, s.Snapshot(), pairID, col).ID)
}

func TestNewSession_NoPairs(t *testing.T) {
	s, err := NewSession(nil, Options{})
	assert.ErrorIs(t, err, ErrNoPairs)
	assert.Nil(t, s)
}

func TestSession_SinglePair(t *testing.T) {
	clock := testutil.NewFakeClock()
	finish := &finishRecorder{}
	s := newTestSession(t, testutil.NewTestPairs(1), clock, finish)

	pick(t, s, "p1", ColumnJP)
	pick(t, s, "p1", ColumnCN)

	state := s.Snapshot()
	assert.True(t, state.Matched.Has("p1"))
	for _, c := range state.Cards {
		assert.True(t, c.IsMatched())
	}
	assert.Empty(t, finish.Calls(), "finish waits for the settle delay")

	clock.Advance(DefaultSettleDelay - time.Millisecond)
	assert.Empty(t, finish.Calls())

	clock.Advance(time.Millisecond)
	require.Len(t, finish.Calls(), 1)
	assert.Empty(t, finish.Calls()[0])

	clock.Advance(time.Hour)
	assert.Len(t, finish.Calls(), 1)
	assert.True(t, s.Closed())
}

func TestSession_MistakeIsNeverForgiven(t *testing.T) {
	clock := testutil.NewFakeClock()
	finish := &finishRecorder{}
	pairs := testutil.NewTestPairs(2)
	s := newTestSession(t, pairs, clock, finish)

	pick(t, s, "p1", ColumnJP)
	pick(t, s, "p2", ColumnCN)

	state := s.Snapshot()
	assert.Equal(t, PhaseCooldown, state.Phase())
	assert.True(t, cardOf(t, state, "p1", ColumnJP).IsError())
	assert.True(t, cardOf(t, state, "p2", ColumnCN).IsError())
	assert.Equal(t, []string{"p1"}, state.Mistaken.IDs())

	clock.Advance(DefaultFlashDelay)
	state = s.Snapshot()
	assert.Equal(t, PhaseAwaitingFirstPick, state.Phase())
	assert.Equal(t, StatusIdle, cardOf(t, state, "p1", ColumnJP).Status)
	assert.Equal(t, StatusIdle, cardOf(t, state, "p2", ColumnCN).Status)

	pick(t, s, "p1", ColumnJP)
	pick(t, s, "p1", ColumnCN)
	pick(t, s, "p2", ColumnJP)
	pick(t, s, "p2", ColumnCN)

	clock.Advance(DefaultSettleDelay)
	require.Len(t, finish.Calls(), 1)
	assert.Equal(t, []domain.WordPair{pairs[0]}, finish.Calls()[0])
}

func TestSession_MistakesSoFar(t *testing.T) {
	clock := testutil.NewFakeClock()
	pairs := testutil.NewTestPairs(3)
	s := newTestSession(t, pairs, clock, &finishRecorder{})

	assert.Empty(t, s.Mistakes())

	pick(t, s, "p3", ColumnJP)
	pick(t, s, "p1", ColumnCN)
	clock.Advance(DefaultFlashDelay)
	pick(t, s, "p1", ColumnJP)
	pick(t, s, "p2", ColumnCN)
	clock.Advance(DefaultFlashDelay)
	pick(t, s, "p3", ColumnJP)
	pick(t, s, "p2", ColumnCN)

	assert.Equal(t, []domain.WordPair{pairs[0], pairs[2]}, s.Mistakes())

	s.Close()
	assert.Equal(t, []domain.WordPair{pairs[0], pairs[2]}, s.Mistakes())
}

func TestSession_ClickDuringCooldown(t *testing.T) {
	clock := testutil.NewFakeClock()
	finish := &finishRecorder{}
	s := newTestSession(t, testutil.NewTestPairs(3), clock, finish)

	pick(t, s, "p1", ColumnJP)
	pick(t, s, "p2", ColumnCN)
	before := s.Snapshot()
	require.Equal(t, 1, clock.Pending())

	for _, c := range before.Cards {
		s.Select(c.ID)
	}

	assert.Equal(t, before, s.Snapshot())
	assert.Equal(t, 1, clock.Pending(), "no second cooldown timer")

	clock.Advance(DefaultFlashDelay)
	assert.Equal(t, 0, clock.Pending())
	assert.Equal(t, PhaseAwaitingFirstPick, s.Snapshot().Phase())
}

func TestSession_CloseAbandons(t *testing.T) {
	clock := testutil.NewFakeClock()
	finish := &finishRecorder{}
	s := newTestSession(t, testutil.NewTestPairs(1), clock, finish)

	pick(t, s, "p1", ColumnJP)
	pick(t, s, "p1", ColumnCN)
	require.Equal(t, 1, clock.Pending())

	s.Close()
	s.Close()

	assert.Equal(t, 0, clock.Pending())
	clock.Advance(time.Hour)
	assert.Empty(t, finish.Calls())
}

func TestSession_ClickAfterCloseIgnored(t *testing.T) {
	clock := testutil.NewFakeClock()
	finish := &finishRecorder{}
	s := newTestSession(t, testutil.NewTestPairs(2), clock, finish)

	before := s.Snapshot()
	s.Close()
	pick(t, s, "p1", ColumnJP)

	assert.Equal(t, before, s.Snapshot())
}

func TestSession_OnChange(t *testing.T) {
	clock := testutil.NewFakeClock()
	var phases []Phase
	s, err := NewSession(testutil.NewTestPairs(2), Options{
		Clock:    clock,
		Rand:     NewRand(1),
		OnChange: func(st State) { phases = append(phases, st.Phase()) },
	})
	require.NoError(t, err)

	pick(t, s, "p1", ColumnJP)
	pick(t, s, "p1", ColumnJP) // ignored, no notification
	pick(t, s, "p2", ColumnCN)
	clock.Advance(DefaultFlashDelay)

	assert.Equal(t, []Phase{PhaseAwaitingSecondPick, PhaseCooldown, PhaseAwaitingFirstPick}, phases)
}

func TestSession_Speech(t *testing.T) {
	tests := []struct {
		name    string
		speaker *testutil.RecordingSpeaker
	}{
		{name: "working speaker", speaker: &testutil.RecordingSpeaker{}},
		{name: "failing speaker", speaker: &testutil.RecordingSpeaker{Err: errors.New("no audio")}},
		{name: "panicking speaker", speaker: &testutil.RecordingSpeaker{Panic: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := testutil.NewFakeClock()
			s, err := NewSession(testutil.NewTestPairs(2), Options{
				Clock:   clock,
				Rand:    NewRand(1),
				Speaker: tt.speaker,
			})
			require.NoError(t, err)

			pick(t, s, "p2", ColumnCN)
			pick(t, s, "p2", ColumnJP)

			assert.Eventually(t, func() bool {
				return len(tt.speaker.Texts()) == 1
			}, time.Second, 5*time.Millisecond)
			assert.Equal(t, []string{"ことば2"}, tt.speaker.Texts())
			assert.True(t, s.Snapshot().Matched.Has("p2"), "speech never blocks the match")
		})
	}
}

func TestSession_SnapshotIsCopy(t *testing.T) {
	s := newTestSession(t, testutil.NewTestPairs(1), testutil.NewFakeClock(), &finishRecorder{})

	snap := s.Snapshot()
	snap.Cards[0].Status = StatusMatched

	assert.Equal(t, StatusIdle, s.Snapshot().Cards[0].Status)
}

func TestSession_InputNotRetained(t *testing.T) {
	pairs := testutil.NewTestPairs(2)
	s := newTestSession(t, pairs, testutil.NewFakeClock(), &finishRecorder{})

	pairs[0].ID = "changed"

	assert.Equal(t, "p1", s.Pairs()[0].ID)
}
