package memory

import (
	"context"
	"testing"

	"github.com/riskibarqy/lol-match-history/internal/domain/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTimeline(matchID int64) *timeline.AdvancedTimeline {
	return &timeline.AdvancedTimeline{
		MatchID:       matchID,
		FrameInterval: 60000,
		Frames: []timeline.Frame{
			{
				FrameIndex:        0,
				ParticipantFrames: []timeline.ParticipantFrame{{ParticipantIndex: 1}, {ParticipantIndex: 2}},
				Events: []timeline.EventRow{
					{EventIndex: 0, Type: "PAUSE_END"},
					{
						EventIndex:              2,
						Type:                    "CHAMPION_KILL",
						AssistingParticipantIDs: []int64{3, 4},
						VictimDamage: []timeline.VictimDamage{
							{Direction: timeline.DirectionReceived, Name: "Ahri"},
						},
					},
				},
			},
		},
	}
}

func TestTimelineRepository_SaveAssignsIDsTopDown(t *testing.T) {
	ctx := context.Background()
	repo := NewTimelineRepository()
	in := sampleTimeline(5)

	id, err := repo.Save(ctx, in, false)
	require.NoError(t, err)

	stored, ok := repo.Get(5)
	require.True(t, ok)
	assert.Equal(t, id, stored.ID)

	frame := stored.Frames[0]
	assert.Equal(t, stored.ID, frame.TimelineID)
	for _, pf := range frame.ParticipantFrames {
		assert.Equal(t, frame.ID, pf.FrameID)
	}
	kill := frame.Events[1]
	assert.Equal(t, frame.ID, kill.FrameID)
	assert.Equal(t, 2, kill.EventIndex)
	assert.Equal(t, kill.ID, kill.VictimDamage[0].EventID)

	in.Frames[0].Events[1].AssistingParticipantIDs[0] = 9
	assert.Equal(t, []int64{3, 4}, kill.AssistingParticipantIDs, "stored timeline must not alias the input")
	assert.Zero(t, in.ID)
}

func TestTimelineRepository_SaveRespectsOverwrite(t *testing.T) {
	ctx := context.Background()
	repo := NewTimelineRepository()

	firstID, err := repo.Save(ctx, sampleTimeline(5), false)
	require.NoError(t, err)

	_, err = repo.Save(ctx, sampleTimeline(5), false)
	require.ErrorIs(t, err, timeline.ErrAlreadyExists)

	secondID, err := repo.Save(ctx, sampleTimeline(5), true)
	require.NoError(t, err)
	assert.NotEqual(t, firstID, secondID)

	exists, err := repo.ExistsForMatch(ctx, 5)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsForMatch(ctx, 6)
	require.NoError(t, err)
	assert.False(t, exists)
}
