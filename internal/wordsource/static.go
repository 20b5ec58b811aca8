package wordsource

import (
	"context"

	"wordmatch/internal/domain"
)

// Static serves a fixed word list. It is used when no generator is configured.
type Static struct{}

// Fetch returns the built-in pairs; cfg is ignored
func (Static) Fetch(ctx context.Context, cfg domain.GameConfig) ([]domain.WordPair, error) {
	return []domain.WordPair{
		staticPair("fallback-1", "猫", []domain.FuriganaSegment{{Text: "猫", Furigana: "ねこ"}}),
		staticPair("fallback-2", "新的", []domain.FuriganaSegment{{Text: "新", Furigana: "あたら"}, {Text: "しい"}}),
		staticPair("fallback-3", "学习", []domain.FuriganaSegment{{Text: "勉", Furigana: "べん"}, {Text: "強", Furigana: "きょう"}, {Text: "する"}}),
		staticPair("fallback-4", "不去", []domain.FuriganaSegment{{Text: "行", Furigana: "い"}, {Text: "かない"}}),
		staticPair("fallback-5", "能读", []domain.FuriganaSegment{{Text: "読", Furigana: "よ"}, {Text: "める"}}),
		staticPair("fallback-6", "让写", []domain.FuriganaSegment{{Text: "書", Furigana: "か"}, {Text: "かせる"}}),
		staticPair("fallback-7", "被喝", []domain.FuriganaSegment{{Text: "飲", Furigana: "の"}, {Text: "まれる"}}),
	}, nil
}

func staticPair(id, cn string, segments []domain.FuriganaSegment) domain.WordPair {
	return domain.WordPair{ID: id, JP: domain.NewJapanese(segments), CN: cn}
}
