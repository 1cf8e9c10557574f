package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/lol-match-history/internal/builder"
	"github.com/riskibarqy/lol-match-history/internal/domain/match"
	"github.com/riskibarqy/lol-match-history/internal/domain/timeline"
	"github.com/riskibarqy/lol-match-history/internal/platform/logging"
	"github.com/riskibarqy/lol-match-history/internal/platform/resilience"
	"github.com/riskibarqy/lol-match-history/internal/schema"
	"go.opentelemetry.io/otel/attribute"
)

// timelineImportTimeout bounds a shared import once no caller can cancel it.
const timelineImportTimeout = 5 * time.Minute

type TimelineInput struct {
	MatchID   string
	Region    string
	Overwrite bool
}

type TimelineResult struct {
	MatchID    string             `json:"match_id"`
	TimelineID int64              `json:"timeline_id,omitempty"`
	Skipped    bool               `json:"skipped"`
	Reason     string             `json:"reason,omitempty"`
	Rows       timeline.RowCounts `json:"rows"`
}

type TimelineService struct {
	fetcher   MatchFetcher
	decoder   *schema.Decoder
	matches   match.Repository
	importer  *MatchImportService
	timelines timeline.Repository
	flight    resilience.Group[TimelineResult]
	logger    *logging.Logger
}

func NewTimelineService(
	fetcher MatchFetcher,
	decoder *schema.Decoder,
	matches match.Repository,
	importer *MatchImportService,
	timelines timeline.Repository,
	logger *logging.Logger,
) *TimelineService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TimelineService{
		fetcher:   fetcher,
		decoder:   decoder,
		matches:   matches,
		importer:  importer,
		timelines: timelines,
		logger:    logger,
	}
}

// ImportAdvancedTimeline fetches, decodes and stores the timeline of one
// match. Concurrent calls for the same match share one import.
func (s *TimelineService) ImportAdvancedTimeline(ctx context.Context, input TimelineInput) (TimelineResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TimelineService.ImportAdvancedTimeline",
		attribute.String("lol.match_id", input.MatchID),
		attribute.Bool("lol.overwrite", input.Overwrite),
	)
	defer span.End()

	input.MatchID = strings.TrimSpace(input.MatchID)
	input.Region = strings.ToLower(strings.TrimSpace(input.Region))
	if input.MatchID == "" {
		return TimelineResult{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	key := input.MatchID + ":" + strconv.FormatBool(input.Overwrite)
	result, _, err := s.flight.DoContext(ctx, key, func(ctx context.Context) (TimelineResult, error) {
		ctx, cancel := context.WithTimeout(ctx, timelineImportTimeout)
		defer cancel()
		return s.importTimeline(ctx, input)
	})
	recordSpanError(span, err)
	return result, err
}

func (s *TimelineService) importTimeline(ctx context.Context, input TimelineInput) (TimelineResult, error) {
	result := TimelineResult{MatchID: input.MatchID}

	m, ok, err := s.ensureMatch(ctx, input)
	if err != nil {
		return result, err
	}
	if !ok {
		result.Skipped = true
		result.Reason = "match is not importable"
		return result, nil
	}

	if !input.Overwrite {
		exists, err := s.timelines.ExistsForMatch(ctx, m.ID)
		if err != nil {
			return result, fmt.Errorf("check timeline exists: %w", err)
		}
		if exists {
			result.Skipped = true
			result.Reason = "timeline already imported"
			return result, nil
		}
	}

	raw, err := s.fetcher.FetchTimeline(ctx, input.MatchID, input.Region)
	if err != nil {
		return result, fmt.Errorf("fetch timeline: %w", err)
	}
	payload, err := s.decoder.DecodeTimeline(raw)
	if err != nil {
		s.logger.ErrorContext(ctx, "timeline payload rejected",
			"match_id", input.MatchID,
			"error", err,
			"payload_snippet", logging.Snippet(raw),
		)
		return result, fmt.Errorf("decode timeline: %w", err)
	}

	advanced := builder.BuildTimeline(payload, m.ID)
	id, err := s.timelines.Save(ctx, advanced, input.Overwrite)
	if err != nil {
		if errors.Is(err, timeline.ErrAlreadyExists) {
			result.Skipped = true
			result.Reason = "timeline already imported"
			return result, nil
		}
		return result, fmt.Errorf("save timeline: %w", err)
	}

	result.TimelineID = id
	result.Rows = advanced.Counts()
	s.logger.InfoContext(ctx, "timeline imported",
		"match_id", input.MatchID,
		"frames", result.Rows.Frames,
		"events", result.Rows.Events,
	)
	return result, nil
}

// ensureMatch loads the match row, importing the match first when it has
// never been stored. ok is false for games that are never persisted.
func (s *TimelineService) ensureMatch(ctx context.Context, input TimelineInput) (match.Match, bool, error) {
	m, ok, err := s.matches.GetByExternalID(ctx, input.MatchID)
	if err != nil {
		return match.Match{}, false, fmt.Errorf("get match: %w", err)
	}
	if ok {
		return m, true, nil
	}

	raw, err := s.fetcher.FetchMatch(ctx, input.MatchID, input.Region)
	if err != nil {
		return match.Match{}, false, fmt.Errorf("fetch match: %w", err)
	}
	payload, err := s.importer.Decode(ctx, raw)
	if err != nil {
		return match.Match{}, false, fmt.Errorf("decode match: %w", err)
	}
	summary, err := s.importer.ImportDecoded(ctx, []*schema.MatchPayload{payload}, input.Region)
	if err != nil {
		return match.Match{}, false, err
	}
	if summary.Imported == 0 {
		return match.Match{}, false, nil
	}

	m, ok, err = s.matches.GetByExternalID(ctx, input.MatchID)
	if err != nil {
		return match.Match{}, false, fmt.Errorf("get match: %w", err)
	}
	return m, ok, nil
}
