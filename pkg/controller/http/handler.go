package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/josoor-ai/capdesk/pkg/domain/interfaces"
	"github.com/josoor-ai/capdesk/pkg/domain/model"
	"github.com/josoor-ai/capdesk/pkg/domain/types"
	"github.com/josoor-ai/capdesk/pkg/utils/async"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// reportDeliveryTimeout bounds narration and posting of one report
const reportDeliveryTimeout = 2 * time.Minute

// Handler serves the matrix and report API
type Handler struct {
	matrixUC    interfaces.Matrix
	reportUC    interfaces.Report
	metrics     *Metrics
	frontendURL string
}

// NewHandler creates a new API handler
func NewHandler(matrixUC interfaces.Matrix, reportUC interfaces.Report, metrics *Metrics, frontendURL string) *Handler {
	return &Handler{
		matrixUC:    matrixUC,
		reportUC:    reportUC,
		metrics:     metrics,
		frontendURL: frontendURL,
	}
}

// parseOverlay reads the overlay query parameter. Missing means no overlay.
func parseOverlay(r *http.Request) (types.OverlayKind, error) {
	raw := r.URL.Query().Get("overlay")
	if raw == "" {
		return types.OverlayNone, nil
	}
	kind := types.OverlayKind(raw)
	if !kind.IsValid() {
		return "", goerr.Wrap(model.ErrInvalidOverlay, "unknown overlay", goerr.V("overlay", raw))
	}
	return kind, nil
}

func parseFilter(r *http.Request) (model.Filter, error) {
	q := r.URL.Query()
	return model.NewFilter(q.Get("year"), q.Get("quarter"), q.Get("mode"))
}

// HandleOverlays lists the overlay catalog
func (h *Handler) HandleOverlays(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.matrixUC.Overlays())
}

// HandleMatrix returns the matrix evaluated under an overlay and filter
func (h *Handler) HandleMatrix(w http.ResponseWriter, r *http.Request) {
	kind, err := parseOverlay(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	filter, err := parseFilter(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	view, err := h.matrixUC.View(r.Context(), filter, kind)
	if err != nil {
		handleError(w, r, err)
		return
	}

	h.metrics.ObserveOverlay(kind)
	writeJSON(w, r, http.StatusOK, view)
}

// HandleInsight returns the insight summary of one overlay
func (h *Handler) HandleInsight(w http.ResponseWriter, r *http.Request) {
	kind, err := parseOverlay(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	filter, err := parseFilter(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	summary, err := h.matrixUC.Insight(r.Context(), filter, kind)
	if err != nil {
		handleError(w, r, err)
		return
	}

	h.metrics.ObserveOverlay(kind)
	writeJSON(w, r, http.StatusOK, summary)
}

// HandleCapability returns the detail of a single capability
func (h *Handler) HandleCapability(w http.ResponseWriter, r *http.Request) {
	kind, err := parseOverlay(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	id := types.CapabilityID(chi.URLParam(r, "id"))
	detail, err := h.matrixUC.Capability(r.Context(), id, kind)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, detail)
}

// CreateReportRequest is the body of POST /api/reports
type CreateReportRequest struct {
	Channel  string              `json:"channel"`
	Overlays []types.OverlayKind `json:"overlays"`
	Year     string              `json:"year"`
	Quarter  string              `json:"quarter"`
	Mode     string              `json:"mode"`
}

// HandleCreateReport stores a report and delivers it in the background
func (h *Handler) HandleCreateReport(w http.ResponseWriter, r *http.Request) {
	var body CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, goerr.Wrap(model.ErrInvalidReport, "malformed request body", goerr.V("cause", err.Error())), http.StatusBadRequest)
		return
	}

	filter, err := model.NewFilter(body.Year, body.Quarter, body.Mode)
	if err != nil {
		handleError(w, r, err)
		return
	}

	report, err := h.reportUC.Create(r.Context(), model.ReportRequest{
		Channel:     body.Channel,
		Filter:      filter,
		Overlays:    body.Overlays,
		FrontendURL: GetFrontendURL(r, h.frontendURL),
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	// Respond before dispatching; Deliver mutates the report
	writeJSON(w, r, http.StatusAccepted, map[string]string{
		"id":     report.ID.String(),
		"status": string(report.Status),
	})

	async.Dispatch(r.Context(), func(ctx context.Context) error {
		if err := h.reportUC.Deliver(ctx, report); err != nil {
			return err
		}
		ctxlog.From(ctx).Debug("Report delivered asynchronously", "id", report.ID)
		return nil
	}, async.WithTimeout(reportDeliveryTimeout))
}

// HandleGetReport returns a stored report
func (h *Handler) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	id := types.ReportID(chi.URLParam(r, "id"))
	report, err := h.reportUC.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, report)
}
