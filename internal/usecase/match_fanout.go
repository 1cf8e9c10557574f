package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/lol-match-history/internal/platform/logging"
	"github.com/riskibarqy/lol-match-history/internal/schema"
	"go.opentelemetry.io/otel/attribute"
)

const DefaultImportMaxWorkers = 10

type FanoutResult struct {
	WorkerCount int              `json:"worker_count"`
	Persisted   int              `json:"persisted"`
	Counts      map[JobState]int `json:"counts"`
	Jobs        []MatchJobResult `json:"jobs"`
}

type MatchJobResult struct {
	MatchID    string   `json:"match_id"`
	State      JobState `json:"state"`
	Message    string   `json:"message,omitempty"`
	DurationMs int64    `json:"duration_ms"`
}

// MatchFanout imports match ids concurrently, one independent
// fetch-and-import per id.
type MatchFanout struct {
	fetcher    MatchFetcher
	importer   *MatchImportService
	maxWorkers int
	logger     *logging.Logger
}

func NewMatchFanout(fetcher MatchFetcher, importer *MatchImportService, maxWorkers int, logger *logging.Logger) *MatchFanout {
	if maxWorkers <= 0 {
		maxWorkers = DefaultImportMaxWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchFanout{
		fetcher:    fetcher,
		importer:   importer,
		maxWorkers: maxWorkers,
		logger:     logger,
	}
}

// ImportByIDs runs every id to a terminal job state. The error is reserved
// for pool failures; per-match outcomes are reported in the result.
func (f *MatchFanout) ImportByIDs(ctx context.Context, matchIDs []string, region string) (FanoutResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchFanout.ImportByIDs", attribute.Int("lol.match_count", len(matchIDs)))
	defer span.End()

	ids := uniqueMatchIDs(matchIDs)
	result := FanoutResult{Counts: make(map[JobState]int)}
	if len(ids) == 0 {
		return result, nil
	}

	workerCount := min(f.maxWorkers, len(ids))
	result.WorkerCount = workerCount

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return result, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan MatchJobResult, len(ids))
	var workers sync.WaitGroup
	for _, id := range ids {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			results <- f.runJob(ctx, id, region)
		}); err != nil {
			workers.Done()
			workers.Wait()
			return result, fmt.Errorf("submit match job to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Jobs = append(result.Jobs, row)
		result.Counts[row.State]++
	}
	sort.SliceStable(result.Jobs, func(i, j int) bool {
		return result.Jobs[i].MatchID < result.Jobs[j].MatchID
	})
	result.Persisted = result.Counts[JobStatePersisted]
	return result, nil
}

func (f *MatchFanout) runJob(ctx context.Context, matchID, region string) MatchJobResult {
	start := time.Now()
	job := newMatchJob(matchID)
	row := MatchJobResult{MatchID: matchID}
	finish := func(message string) MatchJobResult {
		row.State = job.state
		row.Message = message
		row.DurationMs = time.Since(start).Milliseconds()
		return row
	}
	// Every step below is a legal edge, so advance errors cannot occur.
	step := func(to JobState) { _ = job.advance(to) }

	step(JobStateFetching)
	raw, err := f.fetcher.FetchMatch(ctx, matchID, region)
	if err != nil {
		step(fetchFailureState(err))
		logArgs := []any{"match_id", matchID, "region", region, "state", job.state, "error", err}
		if job.state == JobStateNotFound {
			f.logger.InfoContext(ctx, "match not found upstream", logArgs...)
		} else {
			f.logger.WarnContext(ctx, "match fetch abandoned for this cycle", logArgs...)
		}
		return finish(err.Error())
	}
	step(JobStateFetched)

	step(JobStateParsing)
	payload, err := f.importer.Decode(ctx, raw)
	if err != nil {
		step(JobStateParseFailed)
		return finish(err.Error())
	}
	step(JobStateParsed)

	summary, err := f.importer.ImportDecoded(ctx, []*schema.MatchPayload{payload}, region)
	switch {
	case err != nil:
		step(JobStatePersistFailed)
		f.logger.ErrorContext(ctx, "persist match failed", "match_id", matchID, "error", err)
		return finish(err.Error())
	case summary.Imported == 0:
		step(JobStateSkipped)
		return finish("not an importable game")
	default:
		step(JobStatePersisted)
		return finish("")
	}
}

func fetchFailureState(err error) JobState {
	switch {
	case errors.Is(err, ErrUpstreamNotFound):
		return JobStateNotFound
	case errors.Is(err, ErrUpstreamThrottled):
		return JobStateThrottled
	default:
		return JobStateNetworkError
	}
}

func uniqueMatchIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
