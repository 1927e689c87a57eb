package slack

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

// api is the slice of the Slack client the sender needs. Satisfied by
// *slack.Client, faked in tests.
type api interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// Sender posts generated messages to one Slack channel. Failures are
// returned for logging and never abort the remaining sends.
type Sender struct {
	client    api
	channelID string
	logger    *zap.Logger
}

// NewSender creates a new Sender for the given bot token and channel.
func NewSender(botToken, channelID string, logger *zap.Logger) *Sender {
	return &Sender{
		client:    slack.New(botToken),
		channelID: channelID,
		logger:    logger,
	}
}

// Send posts one message to the configured channel with link and media
// unfurling disabled.
func (s *Sender) Send(ctx context.Context, text string) error {
	_, timestamp, err := s.client.PostMessageContext(ctx, s.channelID,
		slack.MsgOptionText(text, false),
		slack.MsgOptionDisableLinkUnfurl(),
		slack.MsgOptionDisableMediaUnfurl(),
	)
	if err != nil {
		s.logHint(err)
		return fmt.Errorf("failed to post to channel %s: %w", s.channelID, err)
	}

	s.logger.Info("message sent to slack",
		zap.String("channel", s.channelID),
		zap.String("ts", timestamp),
	)
	return nil
}

// logHint points the operator at the usual fix for well-known Slack
// error codes.
func (s *Sender) logHint(err error) {
	switch err.Error() {
	case "channel_not_found":
		s.logger.Error("slack channel not found, check SLACK_CHANNEL_ID",
			zap.String("channel", s.channelID))
	case "not_in_channel":
		s.logger.Error("bot is not in the channel, invite it first",
			zap.String("channel", s.channelID))
	case "invalid_auth":
		s.logger.Error("slack rejected the bot token, check SLACK_BOT_TOKEN")
	case "missing_scope":
		s.logger.Error("bot token is missing the chat:write scope")
	case "rate_limited", "ratelimited":
		s.logger.Error("rate limited by slack, consider a longer POST_DELAY")
	}
}
