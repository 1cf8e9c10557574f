package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/riskibarqy/lol-match-history/internal/platform/logging"
	"github.com/riskibarqy/lol-match-history/internal/schema/schematest"
	"github.com/stretchr/testify/require"
)

func TestMatchFanout_ReportsTerminalStatePerMatch(t *testing.T) {
	t.Parallel()

	importer, matches, _ := newMemoryImporter()
	fetcher := newFakeFetcher()
	fetcher.addMatch(schematest.Match("NA1_1"))
	fetcher.addMatch(schematest.Match("NA1_2"))
	tutorial := schematest.Match("NA1_3")
	tutorial.Info.GameMode = "TUTORIAL"
	fetcher.addMatch(tutorial)
	fetcher.matches["NA1_4"] = []byte(`{"metadata":{"matchId":"NA1_4"},"info":{}}`)
	fetcher.errs["NA1_5"] = fmt.Errorf("%w: after 8 attempts", ErrUpstreamThrottled)
	fetcher.errs["NA1_6"] = fmt.Errorf("%w: connection refused", ErrUpstreamNetwork)

	fanout := NewMatchFanout(fetcher, importer, 3, logging.NewNop())
	result, err := fanout.ImportByIDs(context.Background(),
		[]string{"NA1_1", "NA1_2", "NA1_3", "NA1_4", "NA1_5", "NA1_6", "NA1_404", "NA1_1", " "}, "na1")
	require.NoError(t, err)

	require.Equal(t, 3, result.WorkerCount)
	require.Len(t, result.Jobs, 7)
	want := map[string]JobState{
		"NA1_1":   JobStatePersisted,
		"NA1_2":   JobStatePersisted,
		"NA1_3":   JobStateSkipped,
		"NA1_4":   JobStateParseFailed,
		"NA1_404": JobStateNotFound,
		"NA1_5":   JobStateThrottled,
		"NA1_6":   JobStateNetworkError,
	}
	for _, job := range result.Jobs {
		if job.State != want[job.MatchID] {
			t.Fatalf("match %s ended in %s, want %s", job.MatchID, job.State, want[job.MatchID])
		}
	}
	require.Equal(t, 2, result.Persisted)
	require.Equal(t, 2, matches.Totals().Matches)
	require.Equal(t, 1, fetcher.callsFor("NA1_1"))
}

func TestMatchFanout_WorkerCountBoundedByJobs(t *testing.T) {
	t.Parallel()

	importer, _, _ := newMemoryImporter()
	fetcher := newFakeFetcher()
	fetcher.addMatch(schematest.Match("NA1_1"))

	result, err := NewMatchFanout(fetcher, importer, 0, logging.NewNop()).
		ImportByIDs(context.Background(), []string{"NA1_1"}, "na1")
	require.NoError(t, err)
	require.Equal(t, 1, result.WorkerCount)

	empty, err := NewMatchFanout(fetcher, importer, 0, logging.NewNop()).ImportByIDs(context.Background(), nil, "na1")
	require.NoError(t, err)
	require.Empty(t, empty.Jobs)
}
