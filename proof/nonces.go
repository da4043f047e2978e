// Package proof implements the non-interactive zero-knowledge proofs
// ElectionGuard attaches to every secret it reveals a claim about: Schnorr
// possession proofs, Chaum-Pedersen equality-of-discrete-logs proofs, and
// their disjunctive and constant variants (spec.md §4.5).
//
// Grounded on the schnorr.py, chaum_pedersen.py and nonces.py modules
// under _examples/original_source/src/electionguard.
package proof

import (
	"github.com/Election-Tech-Initiative/electionguard-go/ghash"
	"github.com/Election-Tech-Initiative/electionguard-go/group"
)

// Nonces derives an unbounded sequence of pseudorandom elements of Z_q
// from a seed, so that a proof's internal randomness can be regenerated
// deterministically from a single seed value rather than threading
// several independent random draws through the call site.
//
// Grounded on original_source/nonces.py's Nonces class: Go has no
// equivalent of Python's Sequence protocol, so this exposes the same
// behavior as a plain func plus an index rather than a lazy sequence
// type.
type Nonces struct {
	seed group.ElementModQ
}

// NewNonces builds a Nonces sequence. If headers are supplied, the seed
// used internally is hash_elems(seed, headers...), letting a caller
// disambiguate what a given nonce sequence is used for.
func NewNonces(seed group.ElementModQ, headers ...string) Nonces {
	if len(headers) == 0 {
		return Nonces{seed: seed}
	}
	args := make([]interface{}, 0, len(headers)+1)
	args = append(args, seed)
	for _, h := range headers {
		args = append(args, h)
	}
	return Nonces{seed: ghash.Elems(args...)}
}

// At returns the nonce at the given index, computed in constant time
// regardless of index: hash_elems(seed, index).
func (n Nonces) At(index int) group.ElementModQ {
	return ghash.Elems(n.seed, index)
}

// Take returns the first count nonces, for call sites that destructure a
// fixed number of values (the Python idiom Nonces(seed, header)[0:3]).
func (n Nonces) Take(count int) []group.ElementModQ {
	out := make([]group.ElementModQ, count)
	for i := 0; i < count; i++ {
		out[i] = n.At(i)
	}
	return out
}
