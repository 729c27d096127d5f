package slack

import (
	"context"

	"github.com/josoor-ai/capdesk/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// Service is the Slack Web API client used to post insight digests
type Service struct {
	client *slack.Client
}

var _ interfaces.SlackClient = (*Service)(nil)

// New creates a client for the digest bot token
func New(token string, options ...slack.Option) *Service {
	return &Service{
		client: slack.New(token, options...),
	}
}

// PostMessage posts a digest and returns the channel and message timestamp
func (s *Service) PostMessage(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	channel, timestamp, err := s.client.PostMessageContext(ctx, channelID, options...)
	if err != nil {
		return "", "", goerr.Wrap(err, "failed to post digest to Slack", goerr.V("channel", channelID))
	}
	return channel, timestamp, nil
}

// AuthTestContext resolves the bot behind the token
func (s *Service) AuthTestContext(ctx context.Context) (*slack.AuthTestResponse, error) {
	resp, err := s.client.AuthTestContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to authenticate with Slack")
	}
	return resp, nil
}

// BotIdentity names the bot and workspace digests are posted as
type BotIdentity struct {
	UserID string
	User   string
	Team   string
}

// Identify checks the token before any report is evaluated
func Identify(ctx context.Context, client interfaces.SlackClient) (*BotIdentity, error) {
	if client == nil {
		return nil, goerr.New("slack is not configured")
	}
	resp, err := client.AuthTestContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "slack token rejected")
	}
	if resp.UserID == "" {
		return nil, goerr.New("slack token has no bot user")
	}
	return &BotIdentity{UserID: resp.UserID, User: resp.User, Team: resp.Team}, nil
}
