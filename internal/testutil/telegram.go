package testutil

import (
	"sync"

	tele "gopkg.in/telebot.v3"
)

// FakeContext is a tele.Context recording what handlers answer. Methods not
// overridden here panic through the nil embedded interface.
type FakeContext struct {
	tele.Context

	User *tele.User
	CB   *tele.Callback
	Msg  *tele.Message
	// EditErr is returned by Edit
	EditErr error

	mu        sync.Mutex
	responses []*tele.CallbackResponse
	sent      []interface{}
	edits     []interface{}
}

// NewCallbackContext returns a context for a button press on message
// messageID carrying raw callback data
func NewCallbackContext(userID int64, messageID int, data string) *FakeContext {
	user := &tele.User{ID: userID}
	msg := &tele.Message{ID: messageID, Chat: &tele.Chat{ID: userID}}
	return &FakeContext{
		User: user,
		CB:   &tele.Callback{ID: "cb-1", Sender: user, Message: msg, Data: data},
		Msg:  msg,
	}
}

// NewTextContext returns a context for a plain text message
func NewTextContext(userID int64, text string) *FakeContext {
	user := &tele.User{ID: userID}
	return &FakeContext{
		User: user,
		Msg:  &tele.Message{ID: 1, Text: text, Sender: user, Chat: &tele.Chat{ID: userID}},
	}
}

func (f *FakeContext) Sender() *tele.User       { return f.User }
func (f *FakeContext) Callback() *tele.Callback { return f.CB }
func (f *FakeContext) Message() *tele.Message   { return f.Msg }

func (f *FakeContext) Chat() *tele.Chat {
	if f.Msg != nil {
		return f.Msg.Chat
	}
	return nil
}

func (f *FakeContext) Text() string {
	if f.Msg != nil {
		return f.Msg.Text
	}
	return ""
}

func (f *FakeContext) Respond(resp ...*tele.CallbackResponse) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(resp) == 0 {
		f.responses = append(f.responses, &tele.CallbackResponse{})
		return nil
	}
	f.responses = append(f.responses, resp[0])
	return nil
}

func (f *FakeContext) Send(what interface{}, opts ...interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, what)
	return nil
}

func (f *FakeContext) Edit(what interface{}, opts ...interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.EditErr != nil {
		return f.EditErr
	}
	f.edits = append(f.edits, what)
	return nil
}

// Responses returns the callback answers in order
func (f *FakeContext) Responses() []*tele.CallbackResponse {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*tele.CallbackResponse(nil), f.responses...)
}

// Sent returns everything passed to Send
func (f *FakeContext) Sent() []interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]interface{}(nil), f.sent...)
}

// Edits returns everything passed to Edit
func (f *FakeContext) Edits() []interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]interface{}(nil), f.edits...)
}

// BotEdit is one recorded FakeBot.Edit call
type BotEdit struct {
	Message tele.Editable
	What    interface{}
	Opts    []interface{}
}

// FakeBot stands in for *tele.Bot, recording messages posted and edited
// outside of an update
type FakeBot struct {
	mu        sync.Mutex
	nextID    int
	endpoints []interface{}
	sent      []interface{}
	edits     []BotEdit
}

// NewFakeBot creates a fake bot whose sent messages get ids from 1000 up
func NewFakeBot() *FakeBot {
	return &FakeBot{nextID: 1000}
}

func (b *FakeBot) Handle(endpoint interface{}, h tele.HandlerFunc, m ...tele.MiddlewareFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.endpoints = append(b.endpoints, endpoint)
}

func (b *FakeBot) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.sent = append(b.sent, what)
	return &tele.Message{ID: b.nextID}, nil
}

func (b *FakeBot) Edit(msg tele.Editable, what interface{}, opts ...interface{}) (*tele.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.edits = append(b.edits, BotEdit{Message: msg, What: what, Opts: opts})
	return &tele.Message{}, nil
}

// Endpoints returns the registered handler endpoints in order
func (b *FakeBot) Endpoints() []interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]interface{}(nil), b.endpoints...)
}

// Sent returns everything passed to Send
func (b *FakeBot) Sent() []interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]interface{}(nil), b.sent...)
}

// Edits returns every Edit call in order
func (b *FakeBot) Edits() []BotEdit {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]BotEdit(nil), b.edits...)
}

// LastEdit returns the most recent Edit call, or false when there was none
func (b *FakeBot) LastEdit() (BotEdit, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.edits) == 0 {
		return BotEdit{}, false
	}
	return b.edits[len(b.edits)-1], true
}
