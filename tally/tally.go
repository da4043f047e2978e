// Package tally implements homomorphic accumulation of cast ballots
// (spec.md §4.8): for each contest and selection it holds a running
// ElGamal ciphertext pair, updated by component-wise multiplication as
// each cast ballot arrives. Spoiled ballots are retained individually,
// never folded into the running pair.
//
// Grounded on _examples/original_source/src/electionguard/tally.py.
package tally

import (
	"fmt"
	"sync"

	uuid "github.com/satori/go.uuid"
	"go.dedis.ch/onet/v3/log"

	"github.com/Election-Tech-Initiative/electionguard-go/ballot"
	"github.com/Election-Tech-Initiative/electionguard-go/egerror"
	"github.com/Election-Tech-Initiative/electionguard-go/elgamal"
	"github.com/Election-Tech-Initiative/electionguard-go/group"
)

type selectionKey struct {
	contestID   string
	selectionID string
}

// Tally is the running ciphertext accumulation for one election.
// Adding a ballot is idempotent per ballot id: a repeat id fails with
// egerror.ErrDuplicateBallot and leaves every running pair unchanged.
type Tally struct {
	ObjectID string

	mu         sync.Mutex
	selections map[selectionKey]elgamal.Ciphertext
	castIDs    map[string]bool
	spoiled    map[string]ballot.CiphertextBallot
}

// identityCiphertext is the zero-nonce ElGamal encryption of zero,
// (1, 1): the accumulator every manifest-known selection starts from
// before any ballot contributes to it (spec.md §8, "Empty contest (no
// votes): tally selection equals encryption of 0 under zero nonce
// accumulator (1, 1)"), matching
// _examples/original_source/src/electionguard/tally.py's
// ElGamalCiphertext(ONE_MOD_P, ONE_MOD_P) seed.
var identityCiphertext = elgamal.Ciphertext{Pad: group.OneModP, Data: group.OneModP}

// New starts an empty tally seeded from manifest: every non-placeholder
// selection named by manifest gets an identity-ciphertext entry before
// any ballot is ever added, so a selection that never receives a vote
// still reports (1, 1) rather than being absent (spec.md §8).
func New(manifest ballot.Manifest) *Tally {
	t := &Tally{
		ObjectID:   uuid.NewV4().String(),
		selections: make(map[selectionKey]elgamal.Ciphertext),
		castIDs:    make(map[string]bool),
		spoiled:    make(map[string]ballot.CiphertextBallot),
	}
	for _, contest := range manifest.Contests {
		for _, selection := range contest.Selections {
			t.selections[selectionKey{contestID: contest.ObjectID, selectionID: selection.ObjectID}] = identityCiphertext
		}
	}
	return t
}

// AddCast homomorphically folds every selection (real and placeholder)
// of a CAST ballot into the running per-contest, per-selection pair.
// Ballot submission order never affects the result: component-wise
// multiplication in the prime field is commutative and associative.
func (t *Tally) AddCast(b ballot.CiphertextBallot) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.castIDs[b.BallotID] {
		return fmt.Errorf("tally: ballot %s already counted: %w", b.BallotID, egerror.ErrDuplicateBallot)
	}

	for _, contest := range b.Contests {
		for _, selection := range contest.Selections {
			key := selectionKey{contestID: contest.ObjectID, selectionID: selection.ObjectID}
			existing, ok := t.selections[key]
			if !ok {
				t.selections[key] = selection.Ciphertext
				continue
			}
			combined, err := elgamal.Add(existing, selection.Ciphertext)
			if err != nil {
				return fmt.Errorf("tally: accumulating contest %s selection %s: %w", contest.ObjectID, selection.ObjectID, err)
			}
			t.selections[key] = combined
		}
	}

	t.castIDs[b.BallotID] = true
	log.Lvlf3("tally %s: counted ballot %s (%d cast total)", t.ObjectID, b.BallotID, len(t.castIDs))
	return nil
}

// AddSpoiled retains a SPOILED ballot for individual decryption and
// publication. It never touches the running cast accumulation.
func (t *Tally) AddSpoiled(b ballot.CiphertextBallot) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.spoiled[b.BallotID] = b
}

// CiphertextFor returns the running ciphertext pair for one contest
// selection, if the tally knows it: every manifest selection is known from
// New on (as (1, 1) until a ballot contributes), and any other selection
// once a cast ballot has contributed to it.
func (t *Tally) CiphertextFor(contestID, selectionID string) (elgamal.Ciphertext, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	c, ok := t.selections[selectionKey{contestID: contestID, selectionID: selectionID}]
	return c, ok
}

// CastBallotCount returns the number of distinct cast ballots folded
// into this tally, used as the bounded discrete-log ceiling T_max in
// decryption (spec.md §4.9).
func (t *Tally) CastBallotCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.castIDs)
}

// SpoiledBallots returns every retained spoiled ballot.
func (t *Tally) SpoiledBallots() []ballot.CiphertextBallot {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]ballot.CiphertextBallot, 0, len(t.spoiled))
	for _, b := range t.spoiled {
		out = append(out, b)
	}
	return out
}

// Selections returns every contest/selection pair this tally has
// accumulated, keyed as "contestID/selectionID", for callers that need
// to iterate every running ciphertext (e.g. decryption, publication).
func (t *Tally) Selections() map[string]elgamal.Ciphertext {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]elgamal.Ciphertext, len(t.selections))
	for k, v := range t.selections {
		out[fmt.Sprintf("%s/%s", k.contestID, k.selectionID)] = v
	}
	return out
}
