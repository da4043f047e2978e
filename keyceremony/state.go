package keyceremony

import (
	"fmt"

	"github.com/Election-Tech-Initiative/electionguard-go/egerror"
)

// State is a guardian's position in the ceremony state machine (spec.md
// §4.6). Transitions are forward-only; Disputed resolves only via
// challenge-and-reveal back to BackupsVerified, or via Evicted, which is
// terminal.
type State int

const (
	Init State = iota
	KeysGenerated
	PublicKeysReceived
	BackupsGenerated
	BackupsDistributed
	BackupsVerified
	JointKeyReady
	Disputed
	Evicted
)

func (s State) String() string {
	switch s {
	case Init:
		return "Init"
	case KeysGenerated:
		return "KeysGenerated"
	case PublicKeysReceived:
		return "PublicKeysReceived"
	case BackupsGenerated:
		return "BackupsGenerated"
	case BackupsDistributed:
		return "BackupsDistributed"
	case BackupsVerified:
		return "BackupsVerified"
	case JointKeyReady:
		return "JointKeyReady"
	case Disputed:
		return "Disputed"
	case Evicted:
		return "Evicted"
	default:
		return "Unknown"
	}
}

// allowedNext maps each state to the states directly reachable from it.
// Disputed can only return to BackupsVerified (via a successful
// challenge) or advance to Evicted (a failed challenge).
var allowedNext = map[State][]State{
	Init:                {KeysGenerated},
	KeysGenerated:       {PublicKeysReceived},
	PublicKeysReceived:  {BackupsGenerated, Evicted},
	BackupsGenerated:    {BackupsDistributed},
	BackupsDistributed:  {BackupsVerified, Disputed},
	BackupsVerified:     {JointKeyReady, Disputed},
	Disputed:            {BackupsVerified, Evicted},
	JointKeyReady:       {},
	Evicted:             {},
}

// GuardianCeremonyState tracks one guardian's progress through the
// ceremony. It holds no reference to other guardians (spec.md §9
// "Replace guardian object identity") — only the guardian's id and its
// state tag.
type GuardianCeremonyState struct {
	ID      GuardianID
	current State
}

// NewGuardianCeremonyState starts a guardian in the Init state.
func NewGuardianCeremonyState(id GuardianID) *GuardianCeremonyState {
	return &GuardianCeremonyState{ID: id, current: Init}
}

// Current returns the guardian's current state.
func (g *GuardianCeremonyState) Current() State {
	return g.current
}

// Advance attempts a transition to next. It fails with
// egerror.ErrInvariantViolation if next is not directly reachable from
// the current state; the ceremony state machine must never observe a
// backward or skipped transition.
func (g *GuardianCeremonyState) Advance(next State) error {
	for _, allowed := range allowedNext[g.current] {
		if allowed == next {
			g.current = next
			return nil
		}
	}
	return fmt.Errorf("keyceremony: guardian %s cannot move %s -> %s: %w", g.ID, g.current, next, egerror.ErrInvariantViolation)
}
