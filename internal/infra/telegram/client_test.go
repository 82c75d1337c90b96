package telegram

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v3"
)

type fakeSender struct {
	to   telebot.Recipient
	what interface{}
	opts []interface{}
	err  error
}

func (f *fakeSender) Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error) {
	f.to, f.what, f.opts = to, what, opts
	if f.err != nil {
		return nil, f.err
	}
	return &telebot.Message{Text: what.(string)}, nil
}

func TestTelebotAdapter_SendMessage(t *testing.T) {
	sender := &fakeSender{}
	adapter := NewTelebotAdapter(sender)

	require.NoError(t, adapter.SendMessage(-100123, "hello", nil))
	assert.Equal(t, "-100123", sender.to.Recipient())
	assert.Equal(t, "hello", sender.what)
	require.Len(t, sender.opts, 1)
	assert.IsType(t, &telebot.SendOptions{}, sender.opts[0])
}

func TestTelebotAdapter_SendMessageError(t *testing.T) {
	sender := &fakeSender{err: errors.New("chat not found")}
	adapter := NewTelebotAdapter(sender)

	err := adapter.SendMessage(1, "hello", &telebot.SendOptions{})
	assert.EqualError(t, err, "chat not found")
}
