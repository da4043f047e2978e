// Package electionrecord collects every public artifact an election
// produces into one self-verifying bundle (spec.md §4.10, §6): the
// manifest, group constants, joint public key, guardian records,
// submitted ballots, ciphertext tally, decryption shares, plaintext
// tally and decrypted spoiled ballots. Verify recomputes every hash and
// proof from the bundle alone.
//
// Grounded on _examples/original_source/src/electionguard/publish.py.
package electionrecord

import (
	"fmt"

	"github.com/Election-Tech-Initiative/electionguard-go/ghash"
	"github.com/Election-Tech-Initiative/electionguard-go/group"
)

// Constants is the group parameter snapshot published alongside every
// election record (spec.md §6 constants.json), so a verifier never has
// to trust a compiled-in constant it cannot see.
type Constants struct {
	P group.ElementModP
	Q group.ElementModQ
	G group.ElementModP
	R group.ElementModP
}

// CurrentConstants snapshots the group package's active constants. It
// panics only if the active constants fail the bounds they were already
// validated against at process start (group.init), which cannot happen
// outside test code deliberately corrupting them.
func CurrentConstants() Constants {
	p, err := group.NewElementModP(group.P)
	if err != nil {
		panic(fmt.Errorf("electionrecord: active P out of bounds: %w", err))
	}
	q, err := group.NewElementModQ(group.Q)
	if err != nil {
		panic(fmt.Errorf("electionrecord: active Q out of bounds: %w", err))
	}
	g, err := group.NewElementModP(group.G)
	if err != nil {
		panic(fmt.Errorf("electionrecord: active G out of bounds: %w", err))
	}
	r, err := group.NewElementModP(group.R)
	if err != nil {
		panic(fmt.Errorf("electionrecord: active R out of bounds: %w", err))
	}
	return Constants{P: p, Q: q, G: g, R: r}
}

// Context is the election-wide parameters published in context.json.
type Context struct {
	NumberOfGuardians  int
	Quorum             int
	JointPublicKey     group.ElementModP
	ManifestHash       group.ElementModQ
	CryptoBaseHash     group.ElementModQ
	CryptoExtendedHash group.ElementModQ
}

// CryptoBaseHash computes H(P, Q, G, n, k, manifest_hash), per spec.md
// §6.
func CryptoBaseHash(c Constants, numberOfGuardians, quorum int, manifestHash group.ElementModQ) group.ElementModQ {
	return ghash.Elems(c.P, c.Q, c.G, numberOfGuardians, quorum, manifestHash)
}

// CryptoExtendedHash computes H(crypto_base_hash, joint_public_key), per
// spec.md §6.
func CryptoExtendedHash(baseHash group.ElementModQ, jointPublicKey group.ElementModP) group.ElementModQ {
	return ghash.Elems(baseHash, jointPublicKey)
}

// NewContext builds a Context with both derived hashes computed from
// their inputs.
func NewContext(numberOfGuardians, quorum int, jointPublicKey group.ElementModP, manifestHash group.ElementModQ, c Constants) Context {
	base := CryptoBaseHash(c, numberOfGuardians, quorum, manifestHash)
	extended := CryptoExtendedHash(base, jointPublicKey)
	return Context{
		NumberOfGuardians:  numberOfGuardians,
		Quorum:             quorum,
		JointPublicKey:     jointPublicKey,
		ManifestHash:       manifestHash,
		CryptoBaseHash:     base,
		CryptoExtendedHash: extended,
	}
}
