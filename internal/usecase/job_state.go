package usecase

import "fmt"

// JobState tracks one match import through fetch, parse and persist.
type JobState string

const (
	JobStatePending       JobState = "PENDING"
	JobStateFetching      JobState = "FETCHING"
	JobStateFetched       JobState = "FETCHED"
	JobStateNotFound      JobState = "NOT_FOUND"
	JobStateThrottled     JobState = "THROTTLED"
	JobStateNetworkError  JobState = "NETWORK_ERROR"
	JobStateParsing       JobState = "PARSING"
	JobStateParsed        JobState = "PARSED"
	JobStateParseFailed   JobState = "PARSE_FAILED"
	JobStatePersisted     JobState = "PERSISTED"
	JobStateSkipped       JobState = "SKIPPED"
	JobStatePersistFailed JobState = "PERSIST_FAILED"
)

var jobTransitions = map[JobState][]JobState{
	JobStatePending:  {JobStateFetching},
	JobStateFetching: {JobStateFetched, JobStateNotFound, JobStateThrottled, JobStateNetworkError},
	JobStateFetched:  {JobStateParsing},
	JobStateParsing:  {JobStateParsed, JobStateParseFailed},
	JobStateParsed:   {JobStatePersisted, JobStateSkipped, JobStatePersistFailed},
}

// Terminal reports whether no further transition leaves s.
func (s JobState) Terminal() bool {
	_, ok := jobTransitions[s]
	return !ok
}

// CanTransition reports whether from -> to is a legal step.
func CanTransition(from, to JobState) bool {
	for _, next := range jobTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type matchJob struct {
	matchID string
	state   JobState
}

func newMatchJob(matchID string) *matchJob {
	return &matchJob{matchID: matchID, state: JobStatePending}
}

func (j *matchJob) advance(to JobState) error {
	if !CanTransition(j.state, to) {
		return fmt.Errorf("match %s: illegal job transition %s -> %s", j.matchID, j.state, to)
	}
	j.state = to
	return nil
}
