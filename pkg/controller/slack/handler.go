package slack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/josoor-ai/capdesk/pkg/domain/interfaces"
	"github.com/josoor-ai/capdesk/pkg/domain/model"
	"github.com/josoor-ai/capdesk/pkg/domain/types"
	slackSvc "github.com/josoor-ai/capdesk/pkg/service/slack"
	"github.com/josoor-ai/capdesk/pkg/utils/apperr"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// CommandHandler answers the /capdesk slash command with an overlay insight
type CommandHandler struct {
	signingSecret string
	matrixUC      interfaces.Matrix
}

// NewCommandHandler creates a new slash command handler
func NewCommandHandler(signingSecret string, matrixUC interfaces.Matrix) *CommandHandler {
	return &CommandHandler{
		signingSecret: signingSecret,
		matrixUC:      matrixUC,
	}
}

// CommandArgs is the parsed text of a slash command
type CommandArgs struct {
	Overlay types.OverlayKind
	Year    string
	Quarter string
	Mode    string
}

// ParseCommandText reads overlay, year, quarter and mode tokens in any order
func ParseCommandText(text string) (CommandArgs, error) {
	args := CommandArgs{Overlay: types.OverlayNone}
	for _, token := range strings.Fields(text) {
		lower := strings.ToLower(token)
		switch {
		case types.OverlayKind(lower).IsValid():
			args.Overlay = types.OverlayKind(lower)
		case types.Quarter(strings.ToUpper(token)).IsValid():
			args.Quarter = strings.ToUpper(token)
		case types.ModeFilter(lower).IsValid():
			args.Mode = lower
		case len(token) == 4 && isDigits(token):
			args.Year = token
		default:
			return CommandArgs{}, goerr.Wrap(model.ErrInvalidOverlay, "unrecognized argument", goerr.V("token", token))
		}
	}
	return args, nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// ServeHTTP handles a single slash command invocation
func (h *CommandHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, r, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := h.verify(r.Header, body); err != nil {
		ctxlog.From(ctx).Warn("Invalid Slack signature", "error", err)
		writeError(w, r, goerr.Wrap(err, "invalid signature"), http.StatusUnauthorized)
		return
	}

	r.Body = io.NopCloser(bytes.NewReader(body))
	cmd, err := slack.SlashCommandParse(r)
	if err != nil {
		writeError(w, r, goerr.Wrap(err, "failed to parse slash command"), http.StatusBadRequest)
		return
	}

	logger := ctxlog.From(ctx).With("user_id", cmd.UserID, "channel_id", cmd.ChannelID)
	logger.Info("Slash command received", "command", cmd.Command, "text", cmd.Text)

	args, err := ParseCommandText(cmd.Text)
	if err != nil {
		writeMessage(w, r, usageMessage(err))
		return
	}

	filter, err := model.NewFilter(args.Year, args.Quarter, args.Mode)
	if err != nil {
		writeMessage(w, r, usageMessage(err))
		return
	}

	summary, err := h.matrixUC.Insight(ctx, filter, args.Overlay)
	if err != nil {
		apperr.Handle(ctx, err)
		writeMessage(w, r, &slack.Msg{
			ResponseType: slack.ResponseTypeEphemeral,
			Text:         "Insight is unavailable right now. Please try again later.",
		})
		return
	}

	writeMessage(w, r, &slack.Msg{
		ResponseType: slack.ResponseTypeEphemeral,
		Text:         fmt.Sprintf("%s: %s", summary.Title, summary.StatLine),
		Blocks:       slack.Blocks{BlockSet: slackSvc.BuildInsightBlocks(summary, filter)},
	})
}

// verify checks the v0 request signature and its timestamp window
func (h *CommandHandler) verify(header http.Header, body []byte) error {
	sv, err := slack.NewSecretsVerifier(header, h.signingSecret)
	if err != nil {
		return goerr.Wrap(err, "missing signature headers")
	}
	if _, err := sv.Write(body); err != nil {
		return goerr.Wrap(err, "failed to hash request body")
	}
	if err := sv.Ensure(); err != nil {
		return goerr.Wrap(err, "signature mismatch")
	}
	return nil
}

func usageMessage(err error) *slack.Msg {
	kinds := make([]string, 0, len(types.AllOverlays))
	for _, k := range types.AllOverlays {
		kinds = append(kinds, k.String())
	}
	return &slack.Msg{
		ResponseType: slack.ResponseTypeEphemeral,
		Text: fmt.Sprintf("%s\nUsage: `/capdesk [overlay] [year] [Q1-Q4] [all|build|execute]`\nOverlays: %s",
			err.Error(), strings.Join(kinds, ", ")),
	}
}

func writeMessage(w http.ResponseWriter, r *http.Request, msg *slack.Msg) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write slash command response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": err.Error()}); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write error response", "error", err)
	}
}
