package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/lol-match-history/internal/builder"
	"github.com/riskibarqy/lol-match-history/internal/domain/match"
	"github.com/riskibarqy/lol-match-history/internal/platform/logging"
	"github.com/riskibarqy/lol-match-history/internal/schema"
)

// ImportSummary counts what happened to every payload of one batch.
type ImportSummary struct {
	Received     int              `json:"received"`
	Invalid      int              `json:"invalid"`
	Skipped      int              `json:"skipped"`
	Duplicates   int              `json:"duplicates"`
	Imported     int              `json:"imported"`
	NewSummoners int              `json:"new_summoners"`
	MatchIDs     []string         `json:"match_ids"`
	Rows         match.SaveResult `json:"rows"`
}

type MatchImportService struct {
	decoder   *schema.Decoder
	matches   match.Repository
	summoners match.SummonerRepository
	logger    *logging.Logger
}

func NewMatchImportService(
	decoder *schema.Decoder,
	matches match.Repository,
	summoners match.SummonerRepository,
	logger *logging.Logger,
) *MatchImportService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchImportService{
		decoder:   decoder,
		matches:   matches,
		summoners: summoners,
		logger:    logger,
	}
}

// ImportMatches decodes, filters and bulk-persists raw match payloads.
// Payloads that fail validation are logged and skipped; only persistence
// failures abort the batch.
func (s *MatchImportService) ImportMatches(ctx context.Context, payloads [][]byte, region string) (ImportSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchImportService.ImportMatches")
	defer span.End()

	decoded := make([]*schema.MatchPayload, 0, len(payloads))
	invalid := 0
	for _, raw := range payloads {
		payload, err := s.Decode(ctx, raw)
		if err != nil {
			invalid++
			continue
		}
		decoded = append(decoded, payload)
	}

	summary, err := s.ImportDecoded(ctx, decoded, region)
	summary.Received = len(payloads)
	summary.Invalid = invalid
	return summary, err
}

// Decode validates one raw match payload, logging the failure with a
// payload snippet.
func (s *MatchImportService) Decode(ctx context.Context, raw []byte) (*schema.MatchPayload, error) {
	payload, err := s.decoder.DecodeMatch(raw)
	if err != nil {
		s.logger.ErrorContext(ctx, "match payload rejected",
			"error", err,
			"payload_snippet", logging.Snippet(raw),
		)
		return nil, err
	}
	return payload, nil
}

// ImportDecoded runs the filter, dedupe and persist steps over payloads that
// already passed validation.
func (s *MatchImportService) ImportDecoded(ctx context.Context, payloads []*schema.MatchPayload, region string) (ImportSummary, error) {
	summary := ImportSummary{Received: len(payloads)}

	seen := make(map[string]struct{}, len(payloads))
	graphs := make([]match.Graph, 0, len(payloads))
	for _, payload := range payloads {
		if payload == nil {
			continue
		}
		graph := builder.BuildMatchGraph(payload, region)
		if !graph.Match.Importable() {
			summary.Skipped++
			s.logger.InfoContext(ctx, "match skipped",
				"match_id", graph.Match.ExternalID,
				"game_mode", graph.Match.GameMode,
				"game_duration", graph.Match.GameDuration,
			)
			continue
		}
		if _, ok := seen[graph.Match.ExternalID]; ok {
			summary.Duplicates++
			continue
		}
		seen[graph.Match.ExternalID] = struct{}{}
		graphs = append(graphs, graph)
	}
	if len(graphs) == 0 {
		return summary, nil
	}

	inserted, err := s.insertUnseenSummoners(ctx, graphs)
	if err != nil {
		return summary, err
	}
	summary.NewSummoners = inserted

	rows, err := s.matches.SaveGraphs(ctx, graphs)
	if err != nil {
		return summary, fmt.Errorf("save match graphs: %w", err)
	}
	summary.Rows = rows
	summary.Imported = len(graphs)
	summary.MatchIDs = make([]string, 0, len(graphs))
	for _, graph := range graphs {
		summary.MatchIDs = append(summary.MatchIDs, graph.Match.ExternalID)
	}
	return summary, nil
}

func (s *MatchImportService) insertUnseenSummoners(ctx context.Context, graphs []match.Graph) (int, error) {
	candidates := make(map[string]match.Summoner)
	puuids := make([]string, 0)
	for _, graph := range graphs {
		for _, summoner := range graph.Summoners {
			if _, ok := candidates[summoner.PUUID]; ok {
				continue
			}
			candidates[summoner.PUUID] = summoner
			puuids = append(puuids, summoner.PUUID)
		}
	}
	if len(puuids) == 0 {
		return 0, nil
	}

	known, err := s.summoners.KnownPUUIDs(ctx, puuids)
	if err != nil {
		return 0, fmt.Errorf("lookup known summoners: %w", err)
	}

	unseen := make([]match.Summoner, 0, len(puuids))
	for _, puuid := range puuids {
		if _, ok := known[puuid]; ok {
			continue
		}
		unseen = append(unseen, candidates[puuid])
	}
	if len(unseen) == 0 {
		return 0, nil
	}

	inserted, err := s.summoners.InsertIgnore(ctx, unseen)
	if err != nil {
		return 0, fmt.Errorf("insert summoners: %w", err)
	}
	return inserted, nil
}
