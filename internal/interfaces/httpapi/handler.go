package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/lol-match-history/internal/platform/logging"
	"github.com/riskibarqy/lol-match-history/internal/usecase"
)

// MatchImporter imports an explicit list of match ids.
type MatchImporter interface {
	ImportByIDs(ctx context.Context, matchIDs []string, region string) (usecase.FanoutResult, error)
}

// PayloadImporter stores raw match payloads that were fetched elsewhere.
type PayloadImporter interface {
	ImportMatches(ctx context.Context, payloads [][]byte, region string) (usecase.ImportSummary, error)
}

type RecentMatchesImporter interface {
	ImportRecentMatches(ctx context.Context, input usecase.RecentMatchesInput) (usecase.RecentMatchesResult, error)
}

type FeedRefresher interface {
	Refresh(ctx context.Context, userID int64) (usecase.FeedRefreshResult, error)
	WaitForRefresh(ctx context.Context, userID int64) error
}

type TimelineImporter interface {
	ImportAdvancedTimeline(ctx context.Context, input usecase.TimelineInput) (usecase.TimelineResult, error)
}

const (
	maxRequestBodyBytes = 1 << 20
	// A full match payload runs to tens of kilobytes.
	maxPayloadBatchBytes = 32 << 20
)

type Handler struct {
	matches   MatchImporter
	payloads  PayloadImporter
	recent    RecentMatchesImporter
	feeds     FeedRefresher
	timelines TimelineImporter
	logger    *logging.Logger
	validator *validator.Validate
}

func NewHandler(
	matches MatchImporter,
	payloads PayloadImporter,
	recent RecentMatchesImporter,
	feeds FeedRefresher,
	timelines TimelineImporter,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		matches:   matches,
		payloads:  payloads,
		recent:    recent,
		feeds:     feeds,
		timelines: timelines,
		logger:    logger,
		validator: validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type importMatchesRequest struct {
	MatchIDs []string `json:"match_ids" validate:"required,min=1,max=500,dive,required"`
	Region   string   `json:"region" validate:"omitempty,max=8"`
}

type importPayloadsRequest struct {
	Payloads []json.RawMessage `json:"payloads" validate:"required,min=1,max=200,dive,required"`
	Region   string            `json:"region" validate:"omitempty,max=8"`
}

type importRecentRequest struct {
	Region      string `json:"region" validate:"required,max=8"`
	Start       int    `json:"start" validate:"gte=0"`
	End         int    `json:"end" validate:"gtfield=Start"`
	Queue       int    `json:"queue" validate:"gte=0"`
	Type        string `json:"type" validate:"omitempty,oneof=ranked normal tourney tutorial"`
	StartTime   int64  `json:"start_time" validate:"gte=0"`
	EndTime     int64  `json:"end_time" validate:"gte=0"`
	StopOnKnown bool   `json:"stop_on_known"`
}

type importTimelineRequest struct {
	Region string `json:"region" validate:"omitempty,max=8"`
}

type feedRefreshDTO struct {
	usecase.FeedRefreshResult
	Waited bool `json:"waited"`
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ImportMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportMatches")
	defer span.End()

	var req importMatchesRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.matches.ImportByIDs(ctx, req.MatchIDs, req.Region)
	if err != nil {
		h.logger.WarnContext(ctx, "import matches failed", "count", len(req.MatchIDs), "region", req.Region, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

// ImportPayloads persists a batch of raw match payloads in one transaction.
// Invalid payloads are counted and skipped.
func (h *Handler) ImportPayloads(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportPayloads")
	defer span.End()

	var req importPayloadsRequest
	if err := decodeBodyLimit(r, &req, false, maxPayloadBatchBytes); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	payloads := make([][]byte, len(req.Payloads))
	for i, raw := range req.Payloads {
		payloads[i] = raw
	}
	summary, err := h.payloads.ImportMatches(ctx, payloads, req.Region)
	if err != nil {
		h.logger.WarnContext(ctx, "import payloads failed", "count", len(payloads), "region", req.Region, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summary)
}

func (h *Handler) ImportRecentMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportRecentMatches", pathAttrs(r, "puuid")...)
	defer span.End()

	puuid := strings.TrimSpace(r.PathValue("puuid"))
	req := importRecentRequest{End: 20}
	if err := decodeBody(r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.recent.ImportRecentMatches(ctx, usecase.RecentMatchesInput{
		PUUID:       puuid,
		Region:      req.Region,
		Start:       req.Start,
		End:         req.End,
		Queue:       req.Queue,
		Type:        req.Type,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		StopOnKnown: req.StopOnKnown,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "import recent matches failed", "puuid", puuid, "region", req.Region, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

// RefreshFeed runs one feed refresh. With wait=true a refresh that was
// skipped because another one holds the lock blocks until that one ends.
func (h *Handler) RefreshFeed(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshFeed", pathAttrs(r, "userID")...)
	defer span.End()

	userID, err := strconv.ParseInt(strings.TrimSpace(r.PathValue("userID")), 10, 64)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: user id must be an integer", usecase.ErrInvalidInput))
		return
	}
	wait, err := parseBoolQuery(r, "wait")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.feeds.Refresh(ctx, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "refresh feed failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := feedRefreshDTO{FeedRefreshResult: result}
	if result.Skipped && wait {
		if err := h.feeds.WaitForRefresh(ctx, userID); err != nil {
			h.logger.WarnContext(ctx, "wait for feed refresh failed", "user_id", userID, "error", err)
			writeError(ctx, w, err)
			return
		}
		out.Waited = true
	}

	status := http.StatusOK
	if result.Skipped && !out.Waited {
		status = http.StatusAccepted
	}
	writeSuccess(ctx, w, status, out)
}

func (h *Handler) ImportTimeline(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportTimeline", pathAttrs(r, "matchID")...)
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	overwrite, err := parseBoolQuery(r, "overwrite")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req importTimelineRequest
	if err := decodeBody(r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.timelines.ImportAdvancedTimeline(ctx, usecase.TimelineInput{
		MatchID:   matchID,
		Region:    req.Region,
		Overwrite: overwrite,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "import timeline failed", "match_id", matchID, "overwrite", overwrite, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

var strictJSON = sonic.Config{DisallowUnknownFields: true}.Froze()

// decodeBody reads a JSON body, rejecting unknown fields. An empty body is
// accepted when optional is set and leaves target untouched.
func decodeBody(r *http.Request, target any, optional bool) error {
	return decodeBodyLimit(r, target, optional, maxRequestBodyBytes)
}

func decodeBodyLimit(r *http.Request, target any, optional bool, limit int64) error {
	raw, err := io.ReadAll(io.LimitReader(r.Body, limit))
	if err != nil {
		return fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		if optional {
			return nil
		}
		return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
	}
	if err := strictJSON.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func parseBoolQuery(r *http.Request, name string) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean", usecase.ErrInvalidInput, name)
	}
	return v, nil
}
