package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/josoor-ai/capdesk/pkg/domain/interfaces/mocks"
	"github.com/josoor-ai/capdesk/pkg/domain/model"
	"github.com/josoor-ai/capdesk/pkg/domain/types"
	"github.com/josoor-ai/capdesk/pkg/usecase"
	"github.com/m-mizutani/gt"
	"github.com/slack-go/slack"
)

func newSlackMock(err error) *mocks.SlackClientMock {
	return &mocks.SlackClientMock{
		PostMessageFunc: func(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
			if err != nil {
				return "", "", err
			}
			return channelID, "1700000000.000100", nil
		},
	}
}

func TestReportPublish(t *testing.T) {
	ctx := context.Background()

	t.Run("posts digest with narrative", func(t *testing.T) {
		repo := newSeededRepository(t)
		slackMock := newSlackMock(nil)
		narrator := &mocks.NarratorMock{
			NarrateFunc: func(ctx context.Context, filter model.Filter, summaries []*model.InsightSummary) (*model.Narrative, error) {
				gt.Equal(t, len(summaries), 2)
				return &model.Narrative{Headline: "Exposure is concentrated", Briefing: "Climate Impact leads."}, nil
			},
		}
		uc := usecase.NewReport(repo, slackMock, usecase.NewReportConfig(
			usecase.WithNarrator(narrator),
			usecase.WithFrontendURL("https://capdesk.example.com"),
		))

		report, err := uc.Publish(ctx, model.ReportRequest{
			Channel:  "C0123",
			Filter:   noFilter,
			Overlays: []types.OverlayKind{types.OverlayRiskExposure, types.OverlayChangeSaturation, types.OverlayRiskExposure},
		})
		gt.NoError(t, err).Required()

		gt.Equal(t, report.Status, model.ReportStatusPosted)
		gt.Equal(t, report.MessageTS, "1700000000.000100")
		gt.Equal(t, report.Overlays, []types.OverlayKind{types.OverlayRiskExposure, types.OverlayChangeSaturation})
		gt.Equal(t, report.Summaries[0].CriticalCount, 3)
		gt.Equal(t, report.Narrative.Headline, "Exposure is concentrated")
		gt.Equal(t, report.DashboardURL, "https://capdesk.example.com?overlay=risk-exposure")

		gt.Equal(t, len(slackMock.PostMessageCalls()), 1)
		gt.Equal(t, slackMock.PostMessageCalls()[0].ChannelID, "C0123")
		gt.Equal(t, len(narrator.NarrateCalls()), 1)

		stored, err := uc.Get(ctx, report.ID)
		gt.NoError(t, err).Required()
		gt.Equal(t, stored.Status, model.ReportStatusPosted)
	})

	t.Run("narrative failure does not block delivery", func(t *testing.T) {
		repo := newSeededRepository(t)
		slackMock := newSlackMock(nil)
		narrator := &mocks.NarratorMock{
			NarrateFunc: func(ctx context.Context, filter model.Filter, summaries []*model.InsightSummary) (*model.Narrative, error) {
				return nil, errors.New("quota exceeded")
			},
		}
		uc := usecase.NewReport(repo, slackMock, usecase.NewReportConfig(usecase.WithNarrator(narrator)))

		report, err := uc.Publish(ctx, model.ReportRequest{Channel: "C0123", Filter: noFilter})
		gt.NoError(t, err).Required()
		gt.Equal(t, report.Status, model.ReportStatusPosted)
		gt.Nil(t, report.Narrative)
		gt.Equal(t, len(report.Summaries), 5)
	})

	t.Run("slack failure marks report failed", func(t *testing.T) {
		repo := newSeededRepository(t)
		uc := usecase.NewReport(repo, newSlackMock(errors.New("channel_not_found")), nil)

		report, err := uc.Publish(ctx, model.ReportRequest{
			Channel:  "C0123",
			Filter:   noFilter,
			Overlays: []types.OverlayKind{types.OverlayTrendWarning},
		})
		gt.Error(t, err)
		gt.NotNil(t, report)

		stored, err := uc.Get(ctx, report.ID)
		gt.NoError(t, err).Required()
		gt.Equal(t, stored.Status, model.ReportStatusFailed)
		gt.NotEqual(t, stored.Error, "")
	})

	t.Run("missing slack client marks report failed", func(t *testing.T) {
		repo := newSeededRepository(t)
		uc := usecase.NewReport(repo, nil, nil)

		report, err := uc.Publish(ctx, model.ReportRequest{Channel: "C0123", Filter: noFilter})
		gt.Error(t, err)

		stored, err := uc.Get(ctx, report.ID)
		gt.NoError(t, err).Required()
		gt.Equal(t, stored.Status, model.ReportStatusFailed)
	})
}

func TestReportCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("default channel is used", func(t *testing.T) {
		uc := usecase.NewReport(newSeededRepository(t), newSlackMock(nil),
			usecase.NewReportConfig(usecase.WithDefaultChannel("C-DEFAULT")))

		report, err := uc.Create(ctx, model.ReportRequest{Filter: noFilter})
		gt.NoError(t, err).Required()
		gt.Equal(t, report.Channel, "C-DEFAULT")
		gt.Equal(t, report.Status, model.ReportStatusPending)
	})

	t.Run("channel is required", func(t *testing.T) {
		uc := usecase.NewReport(newSeededRepository(t), newSlackMock(nil), nil)
		_, err := uc.Create(ctx, model.ReportRequest{Filter: noFilter})
		gt.True(t, errors.Is(err, model.ErrInvalidReport))
	})

	t.Run("unknown overlay is rejected", func(t *testing.T) {
		uc := usecase.NewReport(newSeededRepository(t), newSlackMock(nil), nil)
		_, err := uc.Create(ctx, model.ReportRequest{
			Channel:  "C0123",
			Filter:   noFilter,
			Overlays: []types.OverlayKind{"heat"},
		})
		gt.True(t, errors.Is(err, model.ErrInvalidOverlay))
	})

	t.Run("request URL takes precedence over configured URL", func(t *testing.T) {
		uc := usecase.NewReport(newSeededRepository(t), newSlackMock(nil),
			usecase.NewReportConfig(usecase.WithFrontendURL("https://configured.example.com")))

		report, err := uc.Create(ctx, model.ReportRequest{
			Channel:     "C0123",
			Filter:      model.Filter{Year: 2025, Quarter: types.Q3, Mode: types.ModeFilterBuild},
			Overlays:    []types.OverlayKind{types.OverlayTrendWarning},
			FrontendURL: "https://request.example.com/",
		})
		gt.NoError(t, err).Required()
		gt.Equal(t, report.DashboardURL,
			"https://request.example.com/?mode=build&overlay=trend-warning&quarter=Q3&year=2025")
	})

	t.Run("no dashboard URL without frontend", func(t *testing.T) {
		uc := usecase.NewReport(newSeededRepository(t), newSlackMock(nil), nil)
		report, err := uc.Create(ctx, model.ReportRequest{Channel: "C0123", Filter: noFilter})
		gt.NoError(t, err).Required()
		gt.Equal(t, report.DashboardURL, "")
	})

	t.Run("unknown report", func(t *testing.T) {
		uc := usecase.NewReport(newSeededRepository(t), newSlackMock(nil), nil)
		_, err := uc.Get(ctx, types.NewReportID())
		gt.True(t, errors.Is(err, model.ErrReportNotFound))
	})
}
