package main

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"

	"wordmatch/internal/domain"
	"wordmatch/internal/game"
)

// terminal prints boards and results. Session callbacks arrive from timer
// goroutines, so writes are serialized.
type terminal struct {
	mu  sync.Mutex
	out io.Writer
}

func newTerminal(out io.Writer) *terminal {
	return &terminal{out: out}
}

// Board prints the current board
func (t *terminal) Board(s game.State) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprint(t.out, renderBoard(s))
}

// Result prints the end-of-game summary
func (t *terminal) Result(mistakes []domain.WordPair) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprint(t.out, renderResult(mistakes))
}

// Quit prints the words missed before giving up
func (t *terminal) Quit(mistakes []domain.WordPair) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprint(t.out, renderQuit(mistakes))
}

// Println prints a status line
func (t *terminal) Println(line string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, line)
}

// Speak shows the reading instead of playing audio
func (t *terminal) Speak(text, locale string, rate float64) error {
	t.Println("🔊 " + text)
	return nil
}

func renderBoard(s game.State) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n已配对: %d / %d\n", s.Matched.Len(), s.Total)

	w := tabwriter.NewWriter(&b, 0, 0, 3, ' ', 0)
	jp, cn := s.Column(game.ColumnJP), s.Column(game.ColumnCN)
	for i := range jp {
		row := renderCard(jp[i]) + "\t"
		if i < len(cn) {
			row += renderCard(cn[i])
		}
		fmt.Fprintln(w, row)
	}
	w.Flush()

	switch s.Phase() {
	case game.PhaseCooldown:
		b.WriteString("❌ 不对哦!\n")
	case game.PhaseAwaitingSecondPick:
		b.WriteString("选择对应的另一半\n")
	}
	b.WriteString("> ")
	return b.String()
}

func renderCard(c game.Card) string {
	marker := "  "
	switch c.Status {
	case game.StatusMatched:
		marker = "✅"
	case game.StatusError:
		marker = "❌"
	case game.StatusSelected:
		marker = "🔵"
	}
	return fmt.Sprintf("%s [%s] %s", marker, c.ID, c.Label)
}

func renderResult(mistakes []domain.WordPair) string {
	var b strings.Builder
	b.WriteString("\n🎉 Excellent! 完成所有配对!\n")
	if len(mistakes) == 0 {
		b.WriteString("全部一次答对! 💯\n")
		return b.String()
	}
	writeMistakes(&b, mistakes)
	return b.String()
}

func renderQuit(mistakes []domain.WordPair) string {
	var b strings.Builder
	b.WriteString("\n👋 下次再来\n")
	writeMistakes(&b, mistakes)
	return b.String()
}

func writeMistakes(b *strings.Builder, mistakes []domain.WordPair) {
	if len(mistakes) == 0 {
		return
	}
	fmt.Fprintf(b, "错题 (%d):\n", len(mistakes))
	for _, p := range mistakes {
		fmt.Fprintf(b, "• %s — %s\n", p.JP.Ruby(), p.CN)
	}
}
