package wordsource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"wordmatch/internal/domain"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// ErrEmptyResponse is returned when the model answers without usable pairs
var ErrEmptyResponse = errors.New("empty response from model")

// ChatClient is the part of *openai.Client the generator needs
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

var themes = []string{
	"Daily Life", "Travel & Transport", "School & Education", "Nature & Animals",
	"Food & Cooking", "Business & Work", "Emotions & Personality", "House & Home",
	"Shopping", "Health & Body", "Weather", "Hobbies & Sports",
}

const systemPrompt = "You create Japanese-Chinese vocabulary pairs for a matching game. Answer with JSON only."

// OpenAI generates word pairs with a chat completion model
type OpenAI struct {
	client ChatClient
	model  string
	pairs  int
	logger *zap.Logger
}

// NewOpenAI creates a generator producing pairs pairs per call
func NewOpenAI(client ChatClient, model string, pairs int, logger *zap.Logger) *OpenAI {
	if pairs <= 0 {
		pairs = DefaultPairs
	}
	return &OpenAI{
		client: client,
		model:  model,
		pairs:  pairs,
		logger: logger,
	}
}

type generatedPair struct {
	Segments []domain.FuriganaSegment `json:"segments"`
	Chinese  string                   `json:"chinese"`
}

type generatedList struct {
	Pairs []generatedPair `json:"pairs"`
}

// Fetch asks the model for a fresh word list matching cfg
func (g *OpenAI) Fetch(ctx context.Context, cfg domain.GameConfig) ([]domain.WordPair, error) {
	theme := themes[rand.Intn(len(themes))]

	g.logger.Debug("Generating word pairs",
		zap.String("model", g.model),
		zap.String("level", string(cfg.Level)),
		zap.Int("conjugations", len(cfg.Conjugations)),
		zap.String("theme", theme),
	)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(cfg, theme, g.pairs)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.9,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	return parsePairs(resp.Choices[0].Message.Content)
}

func buildPrompt(cfg domain.GameConfig, theme string, n int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate %d pairs of Japanese-Chinese words/phrases for a vocabulary game.\n", n)
	fmt.Fprintf(&b, "Theme: %s (try to stick to this theme for variety).\n", theme)
	b.WriteString("Do NOT use very common words like 食べる or 見る unless absolutely necessary. Randomize the vocabulary choice.\n\n")

	if len(cfg.Conjugations) > 0 {
		forms := make([]string, 0, len(cfg.Conjugations))
		for _, c := range cfg.Conjugations {
			forms = append(forms, string(c))
		}
		b.WriteString("Task: Japanese VERB CONJUGATION practice.\n")
		fmt.Fprintf(&b, "Conjugate verbs into these specific forms: %s.\n", strings.Join(forms, ", "))
		b.WriteString("If multiple forms are selected, mix them up randomly.\n")
		b.WriteString("The Chinese translation must reflect the conjugation nuance (Passive 被..., Causative 让..., Potential 能...).\n\n")
	} else {
		level := cfg.Level
		if level == "" {
			level = domain.LevelN5
		}
		fmt.Fprintf(&b, "Difficulty level: JLPT %s. Include a mix of nouns, verbs and adjectives.\n\n", level)
	}

	b.WriteString("Split every Japanese word into segments that align kanji with their furigana.\n")
	b.WriteString("食べない -> [{\"text\":\"食\",\"furigana\":\"た\"},{\"text\":\"べない\"}]\n")
	b.WriteString("学生 -> [{\"text\":\"学\",\"furigana\":\"がく\"},{\"text\":\"生\",\"furigana\":\"せい\"}]\n")
	b.WriteString("Pure kana words have one segment without furigana.\n\n")
	b.WriteString(`Answer as {"pairs":[{"segments":[{"text":"...","furigana":"..."}],"chinese":"..."}]}`)

	return b.String()
}

func parsePairs(content string) ([]domain.WordPair, error) {
	var list generatedList
	if err := json.Unmarshal([]byte(content), &list); err != nil {
		return nil, fmt.Errorf("decode pairs: %w", err)
	}

	pairs := make([]domain.WordPair, 0, len(list.Pairs))
	for _, item := range list.Pairs {
		segments := make([]domain.FuriganaSegment, 0, len(item.Segments))
		for _, s := range item.Segments {
			if s.Text == "" {
				continue
			}
			segments = append(segments, domain.FuriganaSegment{
				Text:     s.Text,
				Furigana: strings.TrimSpace(s.Furigana),
			})
		}

		cn := strings.TrimSpace(item.Chinese)
		if len(segments) == 0 || cn == "" {
			continue
		}

		pairs = append(pairs, domain.WordPair{
			ID: uuid.NewString(),
			JP: domain.NewJapanese(segments),
			CN: cn,
		})
	}

	if len(pairs) == 0 {
		return nil, ErrEmptyResponse
	}
	return pairs, nil
}
