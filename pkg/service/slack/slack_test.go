package slack_test

import (
	"context"
	"errors"
	"testing"

	"github.com/josoor-ai/capdesk/pkg/domain/interfaces/mocks"
	slackSvc "github.com/josoor-ai/capdesk/pkg/service/slack"
	"github.com/m-mizutani/gt"
	"github.com/slack-go/slack"
)

func TestIdentify(t *testing.T) {
	ctx := context.Background()

	t.Run("bot token", func(t *testing.T) {
		client := &mocks.SlackClientMock{
			AuthTestContextFunc: func(ctx context.Context) (*slack.AuthTestResponse, error) {
				return &slack.AuthTestResponse{UserID: "U_DIGEST", User: "capdesk", Team: "Enterprise Desk"}, nil
			},
		}
		bot, err := slackSvc.Identify(ctx, client)
		gt.NoError(t, err).Required()
		gt.Equal(t, *bot, slackSvc.BotIdentity{UserID: "U_DIGEST", User: "capdesk", Team: "Enterprise Desk"})
		gt.Equal(t, len(client.AuthTestContextCalls()), 1)
	})

	t.Run("rejected token", func(t *testing.T) {
		client := &mocks.SlackClientMock{
			AuthTestContextFunc: func(ctx context.Context) (*slack.AuthTestResponse, error) {
				return nil, errors.New("invalid_auth")
			},
		}
		_, err := slackSvc.Identify(ctx, client)
		gt.Error(t, err)
	})

	t.Run("token without bot user", func(t *testing.T) {
		client := &mocks.SlackClientMock{
			AuthTestContextFunc: func(ctx context.Context) (*slack.AuthTestResponse, error) {
				return &slack.AuthTestResponse{Team: "Enterprise Desk"}, nil
			},
		}
		_, err := slackSvc.Identify(ctx, client)
		gt.Error(t, err)
	})

	t.Run("no client", func(t *testing.T) {
		_, err := slackSvc.Identify(ctx, nil)
		gt.Error(t, err)
	})
}
