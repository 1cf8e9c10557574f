package feed

// Follow links a user to a summoner whose matches feed their timeline.
type Follow struct {
	UserID int64
	PUUID  string
	Region string
}
