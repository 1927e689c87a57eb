package slack

import (
	"context"
	"errors"
	"testing"

	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

type fakeAPI struct {
	err   error
	calls int
	texts []string
}

func (f *fakeAPI) PostMessageContext(_ context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	f.calls++
	if f.err != nil {
		return "", "", f.err
	}
	return channelID, "1723600000.000100", nil
}

func newTestSender(api api) *Sender {
	return &Sender{client: api, channelID: "C012345", logger: zap.NewNop()}
}

func TestSend(t *testing.T) {
	fake := &fakeAPI{}
	s := newTestSender(fake)

	if err := s.Send(context.Background(), "hello team"); err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	if fake.calls != 1 {
		t.Errorf("calls = %d, want 1", fake.calls)
	}
}

func TestSendError(t *testing.T) {
	wantErr := errors.New("channel_not_found")
	s := newTestSender(&fakeAPI{err: wantErr})

	err := s.Send(context.Background(), "hello team")
	if !errors.Is(err, wantErr) {
		t.Fatalf("Send() should wrap the API error, got %v", err)
	}
}
