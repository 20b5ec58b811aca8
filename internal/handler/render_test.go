package handler

import (
	"testing"

	"wordmatch/internal/domain"
	"wordmatch/internal/game"
	"wordmatch/internal/service"
	"wordmatch/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

func buttonTexts(row []tele.InlineButton) []string {
	texts := make([]string, 0, len(row))
	for _, b := range row {
		texts = append(texts, b.Text)
	}
	return texts
}

func TestMenuMarkup(t *testing.T) {
	state := &domain.StateData{Level: domain.LevelN4, Conjugations: []domain.Conjugation{domain.ConjTe}}

	t.Run("with review items", func(t *testing.T) {
		summary := service.Summary{Wins: map[domain.Level]int{domain.LevelN5: 2}, ReviewCount: 3}

		kb := menuMarkup(state, summary).InlineKeyboard

		// levels, 13 forms in rows of 3, start, review
		require.Len(t, kb, 8)
		assert.Equal(t, []string{"N5 ⭐", "▶ N4", "N3"}, buttonTexts(kb[0]))
		assert.Equal(t, "level_N5", kb[0][0].Unique)

		assert.Equal(t, "conj_Dictionary", kb[1][0].Unique)
		assert.Equal(t, "✅ て形 (连接/进行)", kb[1][2].Text)
		assert.Equal(t, "ます形 (敬语)", kb[1][1].Text)
		assert.Len(t, kb[5], 1)

		assert.Equal(t, btnStartGame.Unique, kb[6][0].Unique)
		assert.Equal(t, btnReview.Unique, kb[7][0].Unique)
		assert.Equal(t, "📕 错题本 / 复习 (3)", kb[7][0].Text)
	})

	t.Run("without review items", func(t *testing.T) {
		kb := menuMarkup(state, service.Summary{}).InlineKeyboard

		require.Len(t, kb, 7)
		assert.Equal(t, []string{"N5", "▶ N4", "N3"}, buttonTexts(kb[0]))
		assert.Equal(t, btnStartGame.Unique, kb[6][0].Unique)
	})
}

func TestMenuText(t *testing.T) {
	tests := []struct {
		name     string
		state    *domain.StateData
		summary  service.Summary
		contains []string
		excludes []string
	}{
		{
			name:     "defaults",
			state:    &domain.StateData{Level: domain.LevelN5},
			contains: []string{"等级: N5", "变形: 未选择"},
			excludes: []string{"错题本"},
		},
		{
			name:     "forms and review",
			state:    &domain.StateData{Level: domain.LevelN3, Conjugations: []domain.Conjugation{domain.ConjTa, domain.ConjNai}},
			summary:  service.Summary{ReviewCount: 5},
			contains: []string{"等级: N3", "た形 (过去), ない形 (否定)", "错题本: 5 个单词"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := menuText(tt.state, tt.summary)
			for _, s := range tt.contains {
				assert.Contains(t, text, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, text, s)
			}
		})
	}
}

func TestCardLabel(t *testing.T) {
	tests := []struct {
		status   game.CardStatus
		expected string
	}{
		{game.StatusIdle, "ねこ"},
		{game.StatusSelected, "🔵 ねこ"},
		{game.StatusMatched, "✅ ねこ"},
		{game.StatusError, "❌ ねこ"},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, cardLabel(game.Card{Label: "ねこ", Status: tt.status}))
		})
	}
}

func TestBoardMarkup(t *testing.T) {
	s := game.NewState(game.BuildBoard(testutil.NewTestPairs(2), game.NewRand(1)))
	jp := s.Column(game.ColumnJP)
	cn := s.Column(game.ColumnCN)

	s, _, changed := game.Apply(s, game.Click{CardID: jp[0].ID})
	require.True(t, changed)

	kb := boardMarkup(s).InlineKeyboard

	require.Len(t, kb, 3)
	for i := 0; i < 2; i++ {
		require.Len(t, kb[i], 2)
		assert.Equal(t, cardPrefix+jp[i].ID, kb[i][0].Unique)
		assert.Equal(t, cardPrefix+cn[i].ID, kb[i][1].Unique)
	}
	assert.Equal(t, "🔵 "+jp[0].Label, kb[0][0].Text)
	assert.Equal(t, jp[1].Label, kb[1][0].Text)
	assert.Equal(t, btnHome.Unique, kb[2][0].Unique)
}

func TestBoardText(t *testing.T) {
	fresh := game.NewState(game.BuildBoard(testutil.NewTestPairs(2), game.NewRand(1)))

	assert.Equal(t, "🀄 单词配对 · N5\n已配对: 0 / 2", boardText(fresh, domain.GameConfig{Level: domain.LevelN5}))
	assert.Equal(t, "📕 复习模式\n已配对: 0 / 2", boardText(fresh, domain.GameConfig{ReviewMode: true}))

	jp := fresh.Column(game.ColumnJP)
	picked, _, _ := game.Apply(fresh, game.Click{CardID: jp[0].ID})
	assert.Contains(t, boardText(picked, domain.GameConfig{Level: domain.LevelN5}), "选择对应的另一半")

	wrongCN := ""
	for _, c := range fresh.Column(game.ColumnCN) {
		if c.PairID != jp[0].PairID {
			wrongCN = c.ID
		}
	}
	flashing, _, _ := game.Apply(picked, game.Click{CardID: wrongCN})
	assert.Contains(t, boardText(flashing, domain.GameConfig{Level: domain.LevelN5}), "❌ 不对哦!")
}

func TestResultText(t *testing.T) {
	mistake := domain.WordPair{
		ID: "p1",
		JP: domain.NewJapanese([]domain.FuriganaSegment{{Text: "食", Furigana: "た"}, {Text: "べない"}}),
		CN: "不吃",
	}

	tests := []struct {
		name     string
		cfg      domain.GameConfig
		mistakes []domain.WordPair
		contains []string
		excludes []string
	}{
		{
			name:     "perfect game",
			cfg:      domain.GameConfig{Level: domain.LevelN5},
			contains: []string{"🎉 Excellent! 完成所有配对!", "全部一次答对"},
			excludes: []string{"错题", "错题本中移除"},
		},
		{
			name:     "mistakes queued",
			cfg:      domain.GameConfig{Level: domain.LevelN5},
			mistakes: []domain.WordPair{mistake},
			contains: []string{"错题 (1):", "• 食(た)べない — 不吃", "已加入错题本"},
		},
		{
			name:     "review round",
			cfg:      domain.GameConfig{ReviewMode: true},
			mistakes: []domain.WordPair{mistake},
			contains: []string{"答对的单词已从错题本中移除", "• 食(た)べない — 不吃"},
			excludes: []string{"已加入错题本"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := resultText(tt.cfg, tt.mistakes)
			for _, s := range tt.contains {
				assert.Contains(t, text, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, text, s)
			}
		})
	}
}

func TestLoadingText(t *testing.T) {
	assert.Contains(t, loadingText(domain.GameConfig{}), "单词生成中...")
	assert.Contains(t, loadingText(domain.GameConfig{ReviewMode: true}), "准备复习中...")
}
