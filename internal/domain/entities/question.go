package entities

import "time"

// Track is one of the three fixed content categories within a Day.
type Track string

const (
	TrackModelExample Track = "model_example"
	TrackSmallTalk    Track = "small_talk"
	TrackCasesInPoint Track = "cases_in_point"
)

// Tracks lists all content tracks in their display order.
var Tracks = []Track{TrackModelExample, TrackSmallTalk, TrackCasesInPoint}

// Valid reports whether t is one of the known content tracks.
func (t Track) Valid() bool {
	switch t {
	case TrackModelExample, TrackSmallTalk, TrackCasesInPoint:
		return true
	}
	return false
}

// Question is a single content unit belonging to a Day and a track.
// Small-talk questions additionally belong to a dialogue set identified
// by SetID; questions of the other tracks have SetID = 0.
type Question struct {
	ID              int64
	Day             int
	Track           Track
	SetID           int64      // dialogue set ID, small talk only
	Speaker         string     // dialogue speaker label, small talk only
	Prompt          string     // the question text shown to the learner
	ReferenceAnswer string     // model answer used for display after grading
	Keywords        []string   // expected keywords consumed by the grader
	Difficulty      Difficulty // difficulty tier of this question
	CreatedAt       time.Time
}

// DialogueSet groups the small-talk questions of one two-party exchange.
type DialogueSet struct {
	SetID     int64
	Day       int
	Questions []Question
}
