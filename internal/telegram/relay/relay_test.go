package relay

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"
)

type sent struct {
	to     tele.Recipient
	text   string
	markup bool
}

type fakeAPI struct {
	sent    []sent
	sendErr error
}

func (f *fakeAPI) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	text, _ := what.(string)
	f.sent = append(f.sent, sent{to: to, text: text, markup: len(opts) > 0})
	return &tele.Message{}, nil
}

func TestUnboundRelay(t *testing.T) {
	r := New(1)

	assert.ErrorIs(t, r.ReplyAndReport(context.Background(), 100, "hi"), ErrNotBound)
	assert.ErrorIs(t, r.NotifyAdmin(context.Background(), "hi", nil), ErrNotBound)

	// Best-effort path swallows the error.
	r.NotifyApplicant(context.Background(), 100, "hi")
}

func TestNotifyApplicant(t *testing.T) {
	api := &fakeAPI{}
	r := New(1)
	r.Bind(api)

	r.NotifyApplicant(context.Background(), 100, "Ваша заявка принята")

	require.Len(t, api.sent, 1)
	assert.Equal(t, tele.ChatID(100), api.sent[0].to)
	assert.Equal(t, "Ваша заявка принята", api.sent[0].text)
	assert.False(t, api.sent[0].markup)
}

func TestNotifyApplicantSwallowsSendFailure(t *testing.T) {
	api := &fakeAPI{sendErr: errors.New("blocked by user")}
	r := New(1)
	r.Bind(api)

	r.NotifyApplicant(context.Background(), 100, "hi")
	assert.Empty(t, api.sent)
}

func TestReplyAndReportReturnsSendFailure(t *testing.T) {
	api := &fakeAPI{sendErr: errors.New("blocked by user")}
	r := New(1)
	r.Bind(api)

	assert.ErrorIs(t, r.ReplyAndReport(context.Background(), 100, "hi"), api.sendErr)

	api.sendErr = nil
	require.NoError(t, r.ReplyAndReport(context.Background(), 100, "hi"))
	require.Len(t, api.sent, 1)
}

func TestNotifyAdminTargetsAdmin(t *testing.T) {
	api := &fakeAPI{}
	r := New(42)
	r.Bind(api)

	markup := &tele.ReplyMarkup{}
	require.NoError(t, r.NotifyAdmin(context.Background(), "Новая заявка", markup))

	require.Len(t, api.sent, 1)
	assert.Equal(t, tele.ChatID(42), api.sent[0].to)
	assert.True(t, api.sent[0].markup)
}

func TestBindNilDetaches(t *testing.T) {
	r := New(1)
	r.Bind(&fakeAPI{})
	r.Bind(nil)

	assert.ErrorIs(t, r.NotifyAdmin(context.Background(), "hi", nil), ErrNotBound)
}
