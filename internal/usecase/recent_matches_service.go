package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/lol-match-history/internal/domain/match"
	"github.com/riskibarqy/lol-match-history/internal/platform/logging"
	"github.com/riskibarqy/lol-match-history/internal/schema"
	"go.opentelemetry.io/otel/attribute"
)

type RecentMatchesInput struct {
	PUUID  string
	Region string
	// Start and End bound the history window as offsets from the newest
	// match, End exclusive.
	Start int
	End   int

	Queue     int
	Type      string
	StartTime int64
	EndTime   int64

	// StopOnKnown ends paging at the first id already in storage. Upstream
	// lists newest first, so everything after it is assumed imported.
	StopOnKnown bool
	// Seen is shared across the summoners of one refresh; nil disables it.
	Seen *SeenMatches
}

type RecentMatchesResult struct {
	Pages     int `json:"pages"`
	Listed    int `json:"listed"`
	Skipped   int `json:"skipped"`
	Scheduled int `json:"scheduled"`
	Imported  int `json:"imported"`
	Failed    int `json:"failed"`
}

type RecentMatchesService struct {
	fetcher MatchFetcher
	decoder *schema.Decoder
	matches match.Repository
	fanout  *MatchFanout
	logger  *logging.Logger
}

func NewRecentMatchesService(
	fetcher MatchFetcher,
	decoder *schema.Decoder,
	matches match.Repository,
	fanout *MatchFanout,
	logger *logging.Logger,
) *RecentMatchesService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RecentMatchesService{
		fetcher: fetcher,
		decoder: decoder,
		matches: matches,
		fanout:  fanout,
		logger:  logger,
	}
}

// ImportRecentMatches pages through a player's match history and imports
// ids not seen before. Paging stops at End, at a short page, or at the first
// known id when StopOnKnown is set.
func (s *RecentMatchesService) ImportRecentMatches(ctx context.Context, input RecentMatchesInput) (RecentMatchesResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecentMatchesService.ImportRecentMatches",
		attribute.String("lol.region", input.Region),
		attribute.Bool("lol.stop_on_known", input.StopOnKnown),
	)
	defer span.End()

	input.PUUID = strings.TrimSpace(input.PUUID)
	input.Region = strings.ToLower(strings.TrimSpace(input.Region))
	var result RecentMatchesResult
	if input.PUUID == "" {
		return result, fmt.Errorf("%w: puuid is required", ErrInvalidInput)
	}
	if input.Start < 0 || input.End <= input.Start {
		return result, fmt.Errorf("%w: history window [%d, %d) is empty", ErrInvalidInput, input.Start, input.End)
	}

	for start := input.Start; start < input.End; {
		count := min(MaxMatchIDPageSize, input.End-start)
		raw, err := s.fetcher.FetchMatchIDs(ctx, input.PUUID, input.Region, MatchIDQuery{
			Start:     start,
			Count:     count,
			Queue:     input.Queue,
			Type:      input.Type,
			StartTime: input.StartTime,
			EndTime:   input.EndTime,
		})
		if err != nil {
			if errors.Is(err, ErrUpstreamNotFound) {
				s.logger.InfoContext(ctx, "match history not found", "puuid", input.PUUID, "region", input.Region)
				return result, nil
			}
			return result, fmt.Errorf("fetch match ids page at %d: %w", start, err)
		}
		ids, err := s.decoder.DecodeMatchIDs(raw)
		if err != nil {
			s.logger.ErrorContext(ctx, "match id page rejected",
				"puuid", input.PUUID,
				"error", err,
				"payload_snippet", logging.Snippet(raw),
			)
			return result, fmt.Errorf("decode match ids page at %d: %w", start, err)
		}
		result.Pages++
		result.Listed += len(ids)

		fresh, hitKnown, err := s.unseenIDs(ctx, ids, input)
		if err != nil {
			return result, err
		}
		result.Skipped += len(ids) - len(fresh)

		if len(fresh) > 0 {
			result.Scheduled += len(fresh)
			fanout, err := s.fanout.ImportByIDs(ctx, fresh, input.Region)
			if err != nil {
				return result, err
			}
			result.Imported += fanout.Persisted
			result.Failed += fanout.Counts[JobStateNotFound] +
				fanout.Counts[JobStateThrottled] +
				fanout.Counts[JobStateNetworkError] +
				fanout.Counts[JobStateParseFailed] +
				fanout.Counts[JobStatePersistFailed]
		}

		if hitKnown && input.StopOnKnown {
			break
		}
		if len(ids) < count {
			break
		}
		start += count
	}

	return result, nil
}

// unseenIDs keeps ids that are neither stored nor already claimed by this
// refresh. With StopOnKnown the page is cut at the first stored id.
func (s *RecentMatchesService) unseenIDs(ctx context.Context, ids []string, input RecentMatchesInput) ([]string, bool, error) {
	if len(ids) == 0 {
		return nil, false, nil
	}
	known, err := s.matches.KnownExternalIDs(ctx, ids)
	if err != nil {
		return nil, false, fmt.Errorf("lookup known matches: %w", err)
	}

	fresh := make([]string, 0, len(ids))
	hitKnown := false
	for _, id := range ids {
		if _, ok := known[id]; ok {
			hitKnown = true
			if input.StopOnKnown {
				break
			}
			continue
		}
		if !input.Seen.Claim(id) {
			continue
		}
		fresh = append(fresh, id)
	}
	return fresh, hitKnown, nil
}
