package schema_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/lol-match-history/internal/platform/logging"
	"github.com/riskibarqy/lol-match-history/internal/schema"
	"github.com/riskibarqy/lol-match-history/internal/schema/schematest"
)

func TestDecodeMatch(t *testing.T) {
	t.Parallel()

	decoder := schema.NewDecoder(logging.NewNop())
	payload, err := decoder.DecodeMatch(schematest.MatchJSON(schematest.Match("NA1_123")))
	require.NoError(t, err)

	assert.Equal(t, "NA1_123", payload.Metadata.MatchID)
	assert.Equal(t, int64(1500), payload.Info.GameDuration)
	assert.Len(t, payload.Info.Participants, 10)
	assert.Len(t, payload.Info.Teams, 2)
	assert.Len(t, payload.Info.Teams[1].Bans, 5)
	assert.Equal(t, 8112, payload.Info.Participants[0].Perks.Styles[0].Selections[0].Perk)
	assert.True(t, payload.Info.Participants[0].FirstBloodKill)
}

func TestDecodeMatch_ToleratesUnknownFieldsAndMissingCounters(t *testing.T) {
	t.Parallel()

	raw := `{
		"metadata": {"matchId": "EUW1_1", "somethingNew": true},
		"info": {
			"gameCreation": 1, "gameDuration": 900, "gameMode": "ARAM", "gameVersion": "14.3",
			"brandNewBlock": {"a": 1},
			"participants": [{"participantId": 1, "puuid": "p1", "championId": 22, "kills": 4, "newCounter": 9}]
		}
	}`

	decoder := schema.NewDecoder(logging.New(&strings.Builder{}, logging.LevelDebug))
	payload, err := decoder.DecodeMatch([]byte(raw))
	require.NoError(t, err)

	participant := payload.Info.Participants[0]
	assert.Equal(t, 4, participant.Kills)
	assert.Zero(t, participant.AllInPings)
	assert.Zero(t, participant.EnemyMissingPings)
	assert.Zero(t, participant.VisionClearedPings)
}

func TestDecodeMatch_ValidationPath(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		edit func(*schema.MatchPayload)
		path string
	}{
		{
			name: "missing match id",
			edit: func(p *schema.MatchPayload) { p.Metadata.MatchID = "" },
			path: "metadata.matchId",
		},
		{
			name: "missing game mode",
			edit: func(p *schema.MatchPayload) { p.Info.GameMode = "" },
			path: "info.gameMode",
		},
		{
			name: "participant index out of range",
			edit: func(p *schema.MatchPayload) { p.Info.Participants[3].ParticipantID = 0 },
			path: "info.participants[3].participantId",
		},
		{
			name: "duplicate participant id",
			edit: func(p *schema.MatchPayload) { p.Info.Participants[4].ParticipantID = p.Info.Participants[2].ParticipantID },
			path: "info.participants",
		},
		{
			name: "duplicate team id",
			edit: func(p *schema.MatchPayload) { p.Info.Teams[1].TeamID = p.Info.Teams[0].TeamID },
			path: "info.teams",
		},
		{
			name: "negative pick turn",
			edit: func(p *schema.MatchPayload) { p.Info.Teams[1].Bans[2].PickTurn = -1 },
			path: "info.teams[1].bans[2].pickTurn",
		},
	}

	decoder := schema.NewDecoder(logging.NewNop())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			payload := schematest.Match("NA1_9")
			tc.edit(&payload)

			_, err := decoder.DecodeMatch(schematest.MatchJSON(payload))
			var validationErr *schema.SchemaValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.path, validationErr.Path)
		})
	}
}

func TestDecodeMatch_ReportsUnknownFieldsOnce(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	decoder := schema.NewDecoder(logging.New(&logs, logging.LevelDebug))
	raw := schematest.MatchJSON(schematest.Match("NA1_40"))
	raw = append([]byte(`{"arenaOnlyField":true,`), raw[1:]...)

	for i := 0; i < 3; i++ {
		_, err := decoder.DecodeMatch(raw)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, strings.Count(logs.String(), "payload carries fields without a decoder"))
}

func TestDecodeMatch_Malformed(t *testing.T) {
	t.Parallel()

	decoder := schema.NewDecoder(logging.NewNop())
	for _, raw := range []string{"", "{", `{"info": {"gameDuration": "long"}}`} {
		_, err := decoder.DecodeMatch([]byte(raw))
		var validationErr *schema.SchemaValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("expected schema validation error for %q, got %v", raw, err)
		}
	}
}

func TestDecodeMatchIDs(t *testing.T) {
	t.Parallel()

	decoder := schema.NewDecoder(logging.NewNop())
	ids, err := decoder.DecodeMatchIDs([]byte(`["NA1_3","NA1_2","NA1_1"]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"NA1_3", "NA1_2", "NA1_1"}, ids)

	_, err = decoder.DecodeMatchIDs([]byte(`["NA1_3",""]`))
	var validationErr *schema.SchemaValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "[1]", validationErr.Path)
}

func TestDecodeTimeline_EveryKnownTag(t *testing.T) {
	t.Parallel()

	payload := schematest.Timeline("NA1_123", 2)
	payload.Info.Frames[1].RawEvents = schematest.SampleEvents(60001)

	decoder := schema.NewDecoder(logging.NewNop())
	decoded, err := decoder.DecodeTimeline(schematest.TimelineJSON(payload))
	require.NoError(t, err)

	events := decoded.Info.Frames[1].Events
	require.Len(t, events, len(schema.KnownEventTypes()))
	for i, tag := range schema.KnownEventTypes() {
		assert.Equal(t, tag, events[i].EventType())
		assert.Equal(t, int64(60001+i*10), events[i].EventTimestamp())
		if schema.IsIgnoredEventType(tag) {
			assert.IsType(t, &schema.IgnoredEvent{}, events[i])
		}
	}
	assert.Nil(t, decoded.Info.Frames[1].RawEvents)
	assert.Len(t, decoded.Info.Frames[0].ParticipantFrames, 10)
}

func TestDecodeTimeline_ChampionKillKeepsRecap(t *testing.T) {
	t.Parallel()

	payload := schematest.Timeline("NA1_5", 1)
	payload.Info.Frames[0].RawEvents = []json.RawMessage{
		schematest.Event(schema.EventChampionKill, 1234, schematest.SampleEventFields[schema.EventChampionKill]),
	}

	decoded, err := schema.NewDecoder(logging.NewNop()).DecodeTimeline(schematest.TimelineJSON(payload))
	require.NoError(t, err)

	kill, ok := decoded.Info.Frames[0].Events[0].(*schema.ChampionKillEvent)
	require.True(t, ok)
	assert.Equal(t, int64(6), kill.VictimID)
	assert.Equal(t, []int64{2, 3}, kill.AssistingParticipantIDs)
	require.Len(t, kill.VictimDamageDealt, 1)
	require.Len(t, kill.VictimDamageReceived, 2)
	assert.Equal(t, int64(310), kill.VictimDamageReceived[0].PhysicalDamage)
	assert.Equal(t, 7000, kill.Position.X)
}

func TestDecodeTimeline_UnknownTagIsFatal(t *testing.T) {
	t.Parallel()

	payload := schematest.Timeline("NA1_5", 3)
	payload.Info.Frames[2].RawEvents = []json.RawMessage{
		schematest.Event(schema.EventItemPurchased, 120001, map[string]any{"participantId": 1, "itemId": 1055}),
		schematest.Event("HEXTECH_PORTAL_OPENED", 120002, nil),
	}

	decoded, err := schema.NewDecoder(logging.NewNop()).DecodeTimeline(schematest.TimelineJSON(payload))
	require.Nil(t, decoded)

	var unknownErr *schema.UnknownEventTypeError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "HEXTECH_PORTAL_OPENED", unknownErr.Type)
	assert.Equal(t, "info.frames[2].events[1]", unknownErr.Path)
	assert.ErrorIs(t, err, schema.ErrUnknownEventType)
}

func TestDecodeTimeline_EventValidation(t *testing.T) {
	t.Parallel()

	payload := schematest.Timeline("NA1_5", 1)
	payload.Info.Frames[0].RawEvents = []json.RawMessage{
		json.RawMessage(`{"timestamp": 10}`),
	}
	decoder := schema.NewDecoder(logging.NewNop())

	_, err := decoder.DecodeTimeline(schematest.TimelineJSON(payload))
	var validationErr *schema.SchemaValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "info.frames[0].events[0].type", validationErr.Path)

	payload.Info.Frames[0].RawEvents = []json.RawMessage{
		schematest.Event(schema.EventLevelUp, -5, map[string]any{"participantId": 1, "level": 2}),
	}
	_, err = decoder.DecodeTimeline(schematest.TimelineJSON(payload))
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "info.frames[0].events[0].timestamp", validationErr.Path)
}

func TestDecodeTimeline_RequiresFrameInterval(t *testing.T) {
	t.Parallel()

	payload := schematest.Timeline("NA1_5", 1)
	payload.Info.FrameInterval = 0

	_, err := schema.NewDecoder(logging.NewNop()).DecodeTimeline(schematest.TimelineJSON(payload))
	var validationErr *schema.SchemaValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "info.frameInterval", validationErr.Path)
}
