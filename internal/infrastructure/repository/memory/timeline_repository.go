package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/lol-match-history/internal/domain/timeline"
)

// TimelineRepository stores whole timelines keyed by match id. A stored
// timeline is a deep copy with ids assigned top-down.
type TimelineRepository struct {
	mu        sync.RWMutex
	seq       int64
	timelines map[int64]*timeline.AdvancedTimeline
}

func NewTimelineRepository() *TimelineRepository {
	return &TimelineRepository{timelines: make(map[int64]*timeline.AdvancedTimeline)}
}

func (r *TimelineRepository) ExistsForMatch(_ context.Context, matchID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.timelines[matchID]
	return ok, nil
}

func (r *TimelineRepository) Save(_ context.Context, item *timeline.AdvancedTimeline, overwrite bool) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.timelines[item.MatchID]; ok && !overwrite {
		return 0, timeline.ErrAlreadyExists
	}

	stored := &timeline.AdvancedTimeline{
		ID:              r.nextID(),
		MatchID:         item.MatchID,
		ExternalMatchID: item.ExternalMatchID,
		FrameInterval:   item.FrameInterval,
		Frames:          make([]timeline.Frame, 0, len(item.Frames)),
	}
	for _, frame := range item.Frames {
		frame.ID = r.nextID()
		frame.TimelineID = stored.ID

		participantFrames := make([]timeline.ParticipantFrame, 0, len(frame.ParticipantFrames))
		for _, pf := range frame.ParticipantFrames {
			pf.ID = r.nextID()
			pf.FrameID = frame.ID
			participantFrames = append(participantFrames, pf)
		}
		frame.ParticipantFrames = participantFrames

		events := make([]timeline.EventRow, 0, len(frame.Events))
		for _, event := range frame.Events {
			event.ID = r.nextID()
			event.FrameID = frame.ID
			event.AssistingParticipantIDs = append([]int64(nil), event.AssistingParticipantIDs...)

			damage := make([]timeline.VictimDamage, 0, len(event.VictimDamage))
			for _, d := range event.VictimDamage {
				d.ID = r.nextID()
				d.EventID = event.ID
				damage = append(damage, d)
			}
			event.VictimDamage = damage
			events = append(events, event)
		}
		frame.Events = events
		stored.Frames = append(stored.Frames, frame)
	}

	r.timelines[item.MatchID] = stored
	return stored.ID, nil
}

func (r *TimelineRepository) nextID() int64 {
	r.seq++
	return r.seq
}

// Get returns the stored timeline of a match.
func (r *TimelineRepository) Get(matchID int64) (*timeline.AdvancedTimeline, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.timelines[matchID]
	return item, ok
}
