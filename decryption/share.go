// Package decryption implements threshold decryption of a tally or
// spoiled ballot: each present guardian contributes a decryption share
// with a Chaum-Pedersen proof of correct computation; missing guardians
// are compensated for via Lagrange reconstruction over the present
// guardians' held backups; the plaintext is recovered by bounded
// discrete log (spec.md §4.9).
//
// Grounded on _examples/original_source/src/electionguard/decryption.py.
package decryption

import (
	"fmt"

	"go.dedis.ch/onet/v3/log"

	"github.com/Election-Tech-Initiative/electionguard-go/egerror"
	"github.com/Election-Tech-Initiative/electionguard-go/elgamal"
	"github.com/Election-Tech-Initiative/electionguard-go/group"
	"github.com/Election-Tech-Initiative/electionguard-go/keyceremony"
	"github.com/Election-Tech-Initiative/electionguard-go/polynomial"
	"github.com/Election-Tech-Initiative/electionguard-go/proof"
)

// GuardianDecryptionKey is the private material one present guardian
// contributes to decryption: its own secret key share and the full
// polynomial backing it, the latter needed to recompute P_i(l) for any
// missing guardian l (spec.md §4.9 step 1).
type GuardianDecryptionKey struct {
	ID            keyceremony.GuardianID
	SequenceOrder int
	SecretKey     elgamal.SecretKey
	Polynomial    polynomial.Polynomial
}

// PublicKey is this guardian's own election public key, G^SecretKey.
func (g GuardianDecryptionKey) PublicKey() elgamal.PublicKey {
	return group.GPowP(g.SecretKey)
}

// DecryptionShare is guardian i's direct contribution M_i = A^{s_i} to
// decrypting one ciphertext, with a Chaum-Pedersen proof that it was
// computed from the same secret as the guardian's published public key.
type DecryptionShare struct {
	GuardianID    keyceremony.GuardianID
	SequenceOrder int
	Share         group.ElementModP
	Proof         proof.ChaumPedersenProof
}

// ComputeShare produces guardian's direct decryption share for
// ciphertext c. seed drives the proof's internal randomness;
// extendedBaseHash is mixed into the challenge.
func ComputeShare(guardian GuardianDecryptionKey, c elgamal.Ciphertext, extendedBaseHash, seed group.ElementModQ) DecryptionShare {
	m := elgamal.PartialDecrypt(c, guardian.SecretKey)
	p := proof.MakeChaumPedersen(c, guardian.SecretKey, m, seed, extendedBaseHash)
	return DecryptionShare{
		GuardianID:    guardian.ID,
		SequenceOrder: guardian.SequenceOrder,
		Share:         m,
		Proof:         p,
	}
}

// VerifyShare checks share's proof against the ciphertext it decrypts
// and the guardian's claimed public key.
func VerifyShare(share DecryptionShare, c elgamal.Ciphertext, guardianPublicKey elgamal.PublicKey, extendedBaseHash group.ElementModQ) bool {
	ok := share.Proof.IsValid(c, guardianPublicKey, share.Share, extendedBaseHash)
	if !ok {
		log.Lvlf2("decryption: share from guardian %s failed verification", share.GuardianID)
	}
	return ok
}

// CompensatedDecryptionShare is an available guardian's stand-in
// contribution for a missing guardian: M_{i,l} = A^{P_i(l)}, proved
// relative to the recomputed public commitment G^{P_i(l)} rather than
// the compensating guardian's own public key (spec.md §4.9 step 1).
type CompensatedDecryptionShare struct {
	CompensatingGuardianID    keyceremony.GuardianID
	CompensatingSequenceOrder int
	MissingGuardianID         keyceremony.GuardianID
	MissingSequenceOrder      int
	Share                     group.ElementModP
	Proof                     proof.ChaumPedersenProof
}

// ComputeCompensatedShare produces compensating's stand-in share for the
// missing guardian at missingSequenceOrder.
func ComputeCompensatedShare(compensating GuardianDecryptionKey, missingGuardianID keyceremony.GuardianID, missingSequenceOrder int, c elgamal.Ciphertext, extendedBaseHash, seed group.ElementModQ) CompensatedDecryptionShare {
	value := polynomial.ComputeCoordinate(missingSequenceOrder, compensating.Polynomial)
	m := elgamal.PartialDecrypt(c, value)
	p := proof.MakeChaumPedersen(c, value, m, seed, extendedBaseHash)
	return CompensatedDecryptionShare{
		CompensatingGuardianID:    compensating.ID,
		CompensatingSequenceOrder: compensating.SequenceOrder,
		MissingGuardianID:         missingGuardianID,
		MissingSequenceOrder:      missingSequenceOrder,
		Share:                     m,
		Proof:                     p,
	}
}

// VerifyCompensatedShare checks share's proof against the public
// commitment recomputed from the compensating guardian's published
// coefficient commitments, without needing that guardian's secret.
func VerifyCompensatedShare(share CompensatedDecryptionShare, c elgamal.Ciphertext, compensatingCommitments []polynomial.PublicCommitment, extendedBaseHash group.ElementModQ) bool {
	expected := polynomial.CommitmentAt(share.MissingSequenceOrder, compensatingCommitments)
	ok := share.Proof.IsValid(c, expected, share.Share, extendedBaseHash)
	if !ok {
		log.Lvlf2("decryption: compensated share from %s for missing %s failed verification", share.CompensatingGuardianID, share.MissingGuardianID)
	}
	return ok
}

// ReconstructMissingShare combines one missing guardian's compensated
// shares into M_l = Π_i M_{i,l}^{λ_i(l,X)}, per spec.md §4.9 step 2.
// presentSequenceOrders is the full set X of available guardians'
// sequence orders.
func ReconstructMissingShare(shares []CompensatedDecryptionShare, presentSequenceOrders []int) (group.ElementModP, error) {
	if len(shares) == 0 {
		return group.ElementModP{}, fmt.Errorf("decryption: no compensated shares to reconstruct from: %w", egerror.ErrInvariantViolation)
	}
	factors := make([]group.ElementModP, 0, len(shares))
	for _, share := range shares {
		others := excludeSequenceOrder(presentSequenceOrders, share.CompensatingSequenceOrder)
		lambda, err := polynomial.LagrangeCoefficient(share.CompensatingSequenceOrder, others...)
		if err != nil {
			return group.ElementModP{}, fmt.Errorf("decryption: reconstructing missing guardian %s: %w", share.MissingGuardianID, err)
		}
		factors = append(factors, group.PowP(share.Share, lambda))
	}
	return group.MultP(factors...), nil
}

func excludeSequenceOrder(orders []int, exclude int) []int {
	out := make([]int, 0, len(orders))
	for _, o := range orders {
		if o != exclude {
			out = append(out, o)
		}
	}
	return out
}
