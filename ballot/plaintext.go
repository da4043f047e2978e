package ballot

// PlaintextBallotSelection is a voter's mark (or non-mark) of one option.
// Vote is 0 or 1; write-ins and ranked/cumulative schemes are out of
// scope (spec.md Non-goals).
type PlaintextBallotSelection struct {
	ObjectID string
	Vote     int
}

// PlaintextBallotContest is a voter's selections within one contest. It
// omits placeholders entirely; Encrypt inserts those.
type PlaintextBallotContest struct {
	ObjectID   string
	Selections []PlaintextBallotSelection
}

// PlaintextBallot is a voter's complete, unencrypted ballot for one
// ballot style.
type PlaintextBallot struct {
	ObjectID string
	StyleID  string
	Contests []PlaintextBallotContest
}
