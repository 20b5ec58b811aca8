package handler

import (
	"bytes"
	"context"
	"sync"
	"time"

	"wordmatch/internal/game"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const synthesizeTimeout = 20 * time.Second

// Synthesizer turns text into voice audio
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, rate float64) ([]byte, error)
}

// voiceSender is the part of *tele.Bot used to post voice messages
type voiceSender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// voiceCache synthesizes each text once and reuses the Telegram file id
// afterwards
type voiceCache struct {
	sender voiceSender
	synth  Synthesizer
	logger *zap.Logger

	mu      sync.Mutex
	fileIDs map[string]string
}

func newVoiceCache(sender voiceSender, synth Synthesizer, logger *zap.Logger) *voiceCache {
	return &voiceCache{
		sender:  sender,
		synth:   synth,
		logger:  logger,
		fileIDs: make(map[string]string),
	}
}

func (v *voiceCache) speakerFor(chatID int64) game.Speaker {
	return chatSpeaker{cache: v, chatID: chatID}
}

func (v *voiceCache) lookup(text string) (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	id, ok := v.fileIDs[text]
	return id, ok
}

func (v *voiceCache) store(text, fileID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.fileIDs[text] = fileID
}

// chatSpeaker plays pronunciation as voice messages in one chat
type chatSpeaker struct {
	cache  *voiceCache
	chatID int64
}

// Speak sends text as a voice message. The locale is implied by the text.
func (s chatSpeaker) Speak(text, locale string, rate float64) error {
	to := tele.ChatID(s.chatID)

	if fileID, ok := s.cache.lookup(text); ok {
		_, err := s.cache.sender.Send(to, &tele.Voice{File: tele.File{FileID: fileID}})
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), synthesizeTimeout)
	defer cancel()

	audio, err := s.cache.synth.Synthesize(ctx, text, rate)
	if err != nil {
		return err
	}

	msg, err := s.cache.sender.Send(to, &tele.Voice{
		File: tele.FromReader(bytes.NewReader(audio)),
		MIME: "audio/ogg",
	})
	if err != nil {
		return err
	}
	if msg != nil && msg.Voice != nil && msg.Voice.FileID != "" {
		s.cache.store(text, msg.Voice.FileID)
		s.cache.logger.Debug("Voice cached", zap.String("text", text), zap.String("locale", locale))
	}
	return nil
}
