package ballot

import "fmt"

// BallotState is a submitted ballot's disposition: a tagged variant in
// place of the class-hierarchy polymorphism spec.md §9 flags
// (SubmittedBallot/CyphertextBallot/SpoiledBallot as distinct types in
// the original).
type BallotState int

const (
	// Unknown marks a ballot that has been encrypted but not yet
	// submitted for casting or spoiling.
	Unknown BallotState = iota
	Cast
	Spoiled
)

func (s BallotState) String() string {
	switch s {
	case Cast:
		return "CAST"
	case Spoiled:
		return "SPOILED"
	default:
		return "UNKNOWN"
	}
}

// SubmittedBallot is an encrypted ballot paired with its final,
// immutable disposition. Once constructed its State never changes;
// casting or spoiling the same ballot again requires building a new
// SubmittedBallot from the original CiphertextBallot.
type SubmittedBallot struct {
	Ballot CiphertextBallot
	State  BallotState
}

// CastBallot produces a SubmittedBallot marked CAST, eligible for
// homomorphic tallying.
func CastBallot(b CiphertextBallot) SubmittedBallot {
	return SubmittedBallot{Ballot: b, State: Cast}
}

// SpoilBallot produces a SubmittedBallot marked SPOILED, held out of the
// tally and retained for individual decryption and publication.
func SpoilBallot(b CiphertextBallot) SubmittedBallot {
	return SubmittedBallot{Ballot: b, State: Spoiled}
}

// String renders the submission for logging/debugging.
func (s SubmittedBallot) String() string {
	return fmt.Sprintf("ballot %s [%s]", s.Ballot.BallotID, s.State)
}
