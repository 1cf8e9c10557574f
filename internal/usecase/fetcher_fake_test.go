package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/lol-match-history/internal/schema"
	"github.com/riskibarqy/lol-match-history/internal/schema/schematest"
)

// fakeFetcher serves canned upstream bodies keyed by match id or puuid.
type fakeFetcher struct {
	mu        sync.Mutex
	matches   map[string][]byte
	timelines map[string][]byte
	errs      map[string]error
	history   map[string][]string

	matchCalls    map[string]int
	timelineCalls int
	pageQueries   []MatchIDQuery
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		matches:    make(map[string][]byte),
		timelines:  make(map[string][]byte),
		errs:       make(map[string]error),
		history:    make(map[string][]string),
		matchCalls: make(map[string]int),
	}
}

func (f *fakeFetcher) addMatch(payload schema.MatchPayload) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.matches[payload.Metadata.MatchID] = schematest.MatchJSON(payload)
}

func (f *fakeFetcher) FetchMatch(_ context.Context, matchID, _ string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.matchCalls[matchID]++
	if err, ok := f.errs[matchID]; ok {
		return nil, err
	}
	raw, ok := f.matches[matchID]
	if !ok {
		return nil, fmt.Errorf("%w: match %s", ErrUpstreamNotFound, matchID)
	}
	return raw, nil
}

func (f *fakeFetcher) FetchTimeline(_ context.Context, matchID, _ string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.timelineCalls++
	raw, ok := f.timelines[matchID]
	if !ok {
		return nil, fmt.Errorf("%w: timeline %s", ErrUpstreamNotFound, matchID)
	}
	return raw, nil
}

func (f *fakeFetcher) FetchMatchIDs(_ context.Context, puuid, _ string, query MatchIDQuery) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.pageQueries = append(f.pageQueries, query)
	ids := f.history[puuid]
	start := min(query.Start, len(ids))
	end := min(query.Start+query.Count, len(ids))
	page := append([]string{}, ids[start:end]...)
	return sonic.Marshal(page)
}

func (f *fakeFetcher) callsFor(matchID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.matchCalls[matchID]
}
