// Package ballot implements ballot-level encryption: per-selection
// ElGamal encryption with disjoint Chaum-Pedersen proofs, placeholder
// insertion to enforce per-contest selection limits, deterministic nonce
// derivation from a device seed, and the ballot hash chain (spec.md
// §4.7).
//
// Grounded on _examples/original_source/src/electionguard/encrypt.py and
// ballot.py. The election manifest parser is out of scope (spec.md §1);
// Manifest/ContestDescription/SelectionDescription below are the minimal
// internal shape this package needs to compute description hashes and
// enforce limits, not a replacement for that parser.
package ballot

import (
	"github.com/Election-Tech-Initiative/electionguard-go/ghash"
	"github.com/Election-Tech-Initiative/electionguard-go/group"
)

// SelectionDescription is the internal shape of one selectable option
// within a contest.
type SelectionDescription struct {
	ObjectID      string
	SequenceOrder int
	CandidateID   string
}

// CryptoHash is hash_elems(object_id, sequence_order, candidate_id), per
// original_source/manifest.py's SelectionDescription.crypto_hash.
func (d SelectionDescription) CryptoHash() group.ElementModQ {
	return ghash.Elems(d.ObjectID, d.SequenceOrder, d.CandidateID)
}

// ContestDescription is the internal shape of one contest: its real
// selections and the selection limit that placeholders must fill out to.
type ContestDescription struct {
	ObjectID       string
	SequenceOrder  int
	SelectionLimit int
	Selections     []SelectionDescription
}

// CryptoHash hashes the contest's identifying fields and its selections'
// own hashes, omitting any placeholders (they are not part of the
// published manifest).
func (d ContestDescription) CryptoHash() group.ElementModQ {
	args := []interface{}{d.ObjectID, d.SequenceOrder, d.SelectionLimit}
	for _, s := range d.Selections {
		args = append(args, s.CryptoHash())
	}
	return ghash.Elems(args...)
}

// Manifest is the internal shape of one ballot style: an ordered list of
// contests a ballot of this style must address.
type Manifest struct {
	BallotStyleID string
	Contests      []ContestDescription
}

// CryptoHash hashes the ballot style id and every contest's hash, in
// order.
func (m Manifest) CryptoHash() group.ElementModQ {
	args := []interface{}{m.BallotStyleID}
	for _, c := range m.Contests {
		args = append(args, c.CryptoHash())
	}
	return ghash.Elems(args...)
}

// ContestByID finds a contest description by object id.
func (m Manifest) ContestByID(id string) (ContestDescription, bool) {
	for _, c := range m.Contests {
		if c.ObjectID == id {
			return c, true
		}
	}
	return ContestDescription{}, false
}
