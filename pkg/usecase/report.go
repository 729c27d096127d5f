package usecase

import (
	"context"
	"net/url"
	"strconv"

	"github.com/josoor-ai/capdesk/pkg/domain/interfaces"
	"github.com/josoor-ai/capdesk/pkg/domain/model"
	"github.com/josoor-ai/capdesk/pkg/domain/overlay"
	"github.com/josoor-ai/capdesk/pkg/domain/types"
	slackSvc "github.com/josoor-ai/capdesk/pkg/service/slack"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// ReportConfig holds configuration for Report use case
type ReportConfig struct {
	defaultChannel string
	frontendURL    string
	narrator       interfaces.Narrator
}

// ReportOption is a functional option for configuring Report
type ReportOption func(*ReportConfig)

// WithDefaultChannel sets the channel used when a request names none
func WithDefaultChannel(channel string) ReportOption {
	return func(c *ReportConfig) {
		c.defaultChannel = channel
	}
}

// WithFrontendURL sets the dashboard URL linked from the digest
func WithFrontendURL(url string) ReportOption {
	return func(c *ReportConfig) {
		c.frontendURL = url
	}
}

// WithNarrator enables the LLM briefing in digests
func WithNarrator(narrator interfaces.Narrator) ReportOption {
	return func(c *ReportConfig) {
		c.narrator = narrator
	}
}

// NewReportConfig creates a new ReportConfig with optional settings
func NewReportConfig(opts ...ReportOption) *ReportConfig {
	config := &ReportConfig{}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

// Report implements interfaces.Report
type Report struct {
	repo        interfaces.Repository
	slackClient interfaces.SlackClient
	config      *ReportConfig
}

// NewReport creates a new Report use case. slackClient may be nil, in which
// case delivery fails and the report is marked failed.
func NewReport(repo interfaces.Repository, slackClient interfaces.SlackClient, config *ReportConfig) *Report {
	if config == nil {
		config = NewReportConfig()
	}
	return &Report{
		repo:        repo,
		slackClient: slackClient,
		config:      config,
	}
}

var _ interfaces.Report = (*Report)(nil)

// Create validates the request and stores a pending report
func (uc *Report) Create(ctx context.Context, req model.ReportRequest) (*model.Report, error) {
	channel := req.Channel
	if channel == "" {
		channel = uc.config.defaultChannel
	}
	if channel == "" {
		return nil, goerr.Wrap(model.ErrInvalidReport, "channel is required")
	}

	var kinds []types.OverlayKind
	seen := make(map[types.OverlayKind]bool)
	for _, kind := range req.Overlays {
		if !kind.IsValid() {
			return nil, goerr.Wrap(model.ErrInvalidOverlay, "unknown overlay in report request", goerr.V("overlay", kind))
		}
		if seen[kind] {
			continue
		}
		seen[kind] = true
		kinds = append(kinds, kind)
	}

	report := model.NewReport(channel, req.Filter, kinds)

	base := req.FrontendURL
	if base == "" {
		base = uc.config.frontendURL
	}
	if base != "" {
		link, err := dashboardURL(base, report.Filter, report.Overlays[0])
		if err != nil {
			return nil, goerr.Wrap(err, "invalid frontend URL", goerr.V("url", base))
		}
		report.DashboardURL = link
	}

	if err := uc.repo.PutReport(ctx, report); err != nil {
		return nil, goerr.Wrap(err, "failed to save report", goerr.V("id", report.ID))
	}

	ctxlog.From(ctx).Info("Report created",
		"id", report.ID,
		"channel", report.Channel,
		"overlays", report.Overlays,
	)
	return report, nil
}

// dashboardURL opens the matrix with the report filter and its first overlay
func dashboardURL(base string, filter model.Filter, kind types.OverlayKind) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", goerr.Wrap(err, "failed to parse URL")
	}

	q := u.Query()
	q.Set("overlay", kind.String())
	if filter.Year != 0 {
		q.Set("year", strconv.Itoa(filter.Year))
	}
	if filter.Quarter != "" {
		q.Set("quarter", filter.Quarter.String())
	}
	if filter.Mode != "" && filter.Mode != types.ModeFilterAll {
		q.Set("mode", string(filter.Mode))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Deliver evaluates the report overlays, attaches the narrative when a
// narrator is configured and posts the digest. The final state is stored
// whether delivery succeeded or not.
func (uc *Report) Deliver(ctx context.Context, report *model.Report) error {
	if report == nil {
		return goerr.New("report is nil")
	}

	deliverErr := uc.deliver(ctx, report)
	if deliverErr != nil {
		report.MarkFailed(deliverErr)
	}

	if err := uc.repo.PutReport(ctx, report); err != nil {
		return goerr.Wrap(err, "failed to save report", goerr.V("id", report.ID))
	}

	if deliverErr != nil {
		return goerr.Wrap(deliverErr, "failed to deliver report", goerr.V("id", report.ID))
	}
	return nil
}

func (uc *Report) deliver(ctx context.Context, report *model.Report) error {
	logger := ctxlog.From(ctx)

	ds, err := uc.repo.GetDataset(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to get dataset")
	}

	capabilities := report.Filter.Apply(ds.Capabilities())
	report.Summaries = make([]*model.InsightSummary, 0, len(report.Overlays))
	for _, kind := range report.Overlays {
		report.Summaries = append(report.Summaries, overlay.Summarize(kind, capabilities))
	}

	if uc.config.narrator != nil {
		narrative, err := uc.config.narrator.Narrate(ctx, report.Filter, report.Summaries)
		if err != nil {
			// The digest is still useful without the briefing
			logger.Warn("Failed to generate report narrative",
				"error", err,
				"id", report.ID,
			)
		} else {
			report.Narrative = narrative
		}
	}

	if uc.slackClient == nil {
		return goerr.New("slack is not configured")
	}

	blocks := slackSvc.BuildReportBlocks(report)
	_, ts, err := uc.slackClient.PostMessage(ctx, report.Channel,
		slack.MsgOptionBlocks(blocks...),
		slack.MsgOptionText(slackSvc.ReportFallbackText(report), false),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post report", goerr.V("channel", report.Channel))
	}

	report.MarkPosted(ts)
	logger.Info("Report posted",
		"id", report.ID,
		"channel", report.Channel,
		"ts", ts,
	)
	return nil
}

// Publish creates and delivers a report in one call
func (uc *Report) Publish(ctx context.Context, req model.ReportRequest) (*model.Report, error) {
	report, err := uc.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := uc.Deliver(ctx, report); err != nil {
		return report, err
	}
	return report, nil
}

// Get retrieves a stored report
func (uc *Report) Get(ctx context.Context, id types.ReportID) (*model.Report, error) {
	report, err := uc.repo.GetReport(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get report", goerr.V("id", id))
	}
	return report, nil
}
