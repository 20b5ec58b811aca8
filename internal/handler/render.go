package handler

import (
	"fmt"
	"strings"

	"wordmatch/internal/domain"
	"wordmatch/internal/game"
	"wordmatch/internal/service"

	tele "gopkg.in/telebot.v3"
)

const (
	cardPrefix  = "card_"
	levelPrefix = "level_"
	conjPrefix  = "conj_"

	conjPerRow = 3
)

const (
	textLoading       = "⏳ 单词生成中..."
	textLoadingReview = "⏳ 准备复习中..."
	textLoadFailed    = "😢 Could not load words\n\n单词加载失败, 请稍后再试。"
	textReviewEmpty   = "错题本是空的"
	textGameOver      = "这局游戏已经结束了"
)

// menuText renders the main menu message
func menuText(state *domain.StateData, summary service.Summary) string {
	var b strings.Builder
	b.WriteString("🈴 日语单词配对\n\n")
	fmt.Fprintf(&b, "等级: %s\n", state.Level)

	if len(state.Conjugations) == 0 {
		b.WriteString("变形: 未选择\n")
	} else {
		labels := make([]string, 0, len(state.Conjugations))
		for _, c := range state.Conjugations {
			labels = append(labels, c.Label())
		}
		fmt.Fprintf(&b, "变形: %s\n", strings.Join(labels, ", "))
	}

	if summary.ReviewCount > 0 {
		fmt.Fprintf(&b, "错题本: %d 个单词\n", summary.ReviewCount)
	}
	return b.String()
}

// menuMarkup renders level choice, conjugation toggles, start and review
func menuMarkup(state *domain.StateData, summary service.Summary) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}

	levelRow := tele.Row{}
	for _, level := range domain.Levels() {
		text := level.DisplayString(summary.Wins[level])
		if level == state.Level {
			text = "▶ " + text
		}
		levelRow = append(levelRow, markup.Data(text, levelPrefix+string(level)))
	}
	rows = append(rows, levelRow)

	conjRow := tele.Row{}
	for _, c := range domain.Conjugations() {
		text := c.Label()
		if state.HasConjugation(c) {
			text = "✅ " + text
		}
		conjRow = append(conjRow, markup.Data(text, conjPrefix+string(c)))
		if len(conjRow) == conjPerRow {
			rows = append(rows, conjRow)
			conjRow = tele.Row{}
		}
	}
	if len(conjRow) > 0 {
		rows = append(rows, conjRow)
	}

	rows = append(rows, markup.Row(btnStartGame))
	if summary.ReviewCount > 0 {
		review := btnReview
		review.Text = fmt.Sprintf("%s (%d)", btnReview.Text, summary.ReviewCount)
		rows = append(rows, markup.Row(review))
	}

	markup.Inline(rows...)
	return markup
}

// loadingText is shown while words are generated
func loadingText(cfg domain.GameConfig) string {
	if cfg.ReviewMode {
		return textLoadingReview
	}
	return textLoading
}

// loadFailedMarkup offers a retry and the way back to the menu
func loadFailedMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	retry := btnPlayAgain
	retry.Text = "🔄 重试"
	markup.Inline(markup.Row(retry, btnHome))
	return markup
}

// boardText renders the header above the board
func boardText(s game.State, cfg domain.GameConfig) string {
	var b strings.Builder
	if cfg.ReviewMode {
		b.WriteString("📕 复习模式\n")
	} else {
		fmt.Fprintf(&b, "🀄 单词配对 · %s\n", cfg.Level)
	}
	fmt.Fprintf(&b, "已配对: %d / %d", s.Matched.Len(), s.Total)

	switch s.Phase() {
	case game.PhaseCooldown:
		b.WriteString("\n\n❌ 不对哦!")
	case game.PhaseAwaitingSecondPick:
		b.WriteString("\n\n选择对应的另一半")
	}
	if s.Complete() {
		b.WriteString("\n\n🎉 全部配对!")
	}
	return b.String()
}

// boardMarkup lays the board out as rows of one JP and one CN card
func boardMarkup(s game.State) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	jp, cn := s.Column(game.ColumnJP), s.Column(game.ColumnCN)

	rows := make([]tele.Row, 0, len(jp)+1)
	for i := range jp {
		row := tele.Row{cardButton(markup, jp[i])}
		if i < len(cn) {
			row = append(row, cardButton(markup, cn[i]))
		}
		rows = append(rows, row)
	}
	rows = append(rows, markup.Row(btnHome))

	markup.Inline(rows...)
	return markup
}

func cardButton(markup *tele.ReplyMarkup, c game.Card) tele.Btn {
	return markup.Data(cardLabel(c), cardPrefix+c.ID)
}

// cardLabel prefixes the card text with its status marker
func cardLabel(c game.Card) string {
	switch c.Status {
	case game.StatusMatched:
		return "✅ " + c.Label
	case game.StatusError:
		return "❌ " + c.Label
	case game.StatusSelected:
		return "🔵 " + c.Label
	default:
		return c.Label
	}
}

// resultText renders the end-of-game screen
func resultText(cfg domain.GameConfig, mistakes []domain.WordPair) string {
	var b strings.Builder
	b.WriteString("🎉 Excellent! 完成所有配对!\n")

	if cfg.ReviewMode {
		b.WriteString("\n答对的单词已从错题本中移除。\n")
	}

	if len(mistakes) == 0 {
		b.WriteString("\n全部一次答对! 💯")
		return b.String()
	}

	fmt.Fprintf(&b, "\n错题 (%d):\n", len(mistakes))
	for _, p := range mistakes {
		fmt.Fprintf(&b, "• %s — %s\n", p.JP.Ruby(), p.CN)
	}
	if !cfg.ReviewMode {
		b.WriteString("\n已加入错题本。")
	}
	return strings.TrimRight(b.String(), "\n")
}

// resultMarkup offers another round or the menu
func resultMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnPlayAgain, btnHome))
	return markup
}
