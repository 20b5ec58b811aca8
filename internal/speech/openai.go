// Package speech synthesizes pronunciation audio.
package speech

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sashabaranov/go-openai"
)

// ErrEmptyText is returned when there is nothing to synthesize
var ErrEmptyText = errors.New("empty text")

// Client is the part of *openai.Client the synthesizer needs
type Client interface {
	CreateSpeech(ctx context.Context, req openai.CreateSpeechRequest) (openai.RawResponse, error)
}

// Synthesizer turns text into Ogg/Opus audio with the OpenAI speech API
type Synthesizer struct {
	client Client
	voice  openai.SpeechVoice
}

// NewSynthesizer creates a synthesizer using voice, alloy when empty
func NewSynthesizer(client Client, voice string) *Synthesizer {
	if voice == "" {
		voice = string(openai.VoiceAlloy)
	}
	return &Synthesizer{client: client, voice: openai.SpeechVoice(voice)}
}

// Synthesize returns the audio for text spoken at rate (1.0 is normal speed)
func (s *Synthesizer) Synthesize(ctx context.Context, text string, rate float64) ([]byte, error) {
	if text == "" {
		return nil, ErrEmptyText
	}

	resp, err := s.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.TTSModel1,
		Input:          text,
		Voice:          s.voice,
		ResponseFormat: openai.SpeechResponseFormatOpus,
		Speed:          clampRate(rate),
	})
	if err != nil {
		return nil, fmt.Errorf("create speech: %w", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("read speech: %w", err)
	}
	return audio, nil
}

// clampRate keeps rate inside the range the API accepts
func clampRate(rate float64) float64 {
	switch {
	case rate <= 0:
		return 1.0
	case rate < 0.25:
		return 0.25
	case rate > 4.0:
		return 4.0
	default:
		return rate
	}
}
