// Package polynomial implements the election polynomial machinery behind
// threshold key sharing: generating a guardian's secret polynomial,
// evaluating it at another guardian's coordinate to produce a backup
// share, verifying a received share against the sender's public
// commitments, and reconstructing a missing guardian's contribution via
// Lagrange interpolation (spec.md §4.4).
//
// Grounded on
// _examples/original_source/src/electionguard/election_polynomial.py.
// go.dedis.ch/kyber/v3/share/dkg/rabin implements a structurally similar
// Feldman-VSS polynomial scheme but over an elliptic-curve group; DESIGN.md
// documents why it isn't wired here (the group in this package is the
// fixed safe-prime subgroup from package group, not a kyber curve).
package polynomial

import (
	"fmt"

	"github.com/Election-Tech-Initiative/electionguard-go/egerror"
	"github.com/Election-Tech-Initiative/electionguard-go/group"
	"github.com/Election-Tech-Initiative/electionguard-go/proof"
)

// SecretCoefficient is a_ij, a secret coefficient of a guardian's
// election polynomial.
type SecretCoefficient = group.ElementModQ

// PublicCommitment is K_ij = G^{a_ij}, the public commitment to a secret
// coefficient.
type PublicCommitment = group.ElementModP

// Coefficient bundles one polynomial coefficient with its public
// commitment and a Schnorr proof of possession of the secret value.
type Coefficient struct {
	Value      SecretCoefficient
	Commitment PublicCommitment
	Proof      proof.SchnorrProof
}

// Polynomial is a guardian's secret election polynomial, degree
// len(Coefficients)-1. Coefficients[0] is the guardian's overall secret
// key share.
type Polynomial struct {
	Coefficients []Coefficient
}

// Commitments returns the public commitments for every coefficient, in
// order, for publication during the Key Ceremony.
func (p Polynomial) Commitments() []PublicCommitment {
	out := make([]PublicCommitment, len(p.Coefficients))
	for i, c := range p.Coefficients {
		out[i] = c.Commitment
	}
	return out
}

// Proofs returns the Schnorr proofs for every coefficient, in order.
func (p Polynomial) Proofs() []proof.SchnorrProof {
	out := make([]proof.SchnorrProof, len(p.Coefficients))
	for i, c := range p.Coefficients {
		out[i] = c.Proof
	}
	return out
}

// Generate builds a random polynomial of the given degree count
// (quorum). Each coefficient gets its own fresh secret value and Schnorr
// proof.
func Generate(numberOfCoefficients int) (Polynomial, error) {
	coefficients := make([]Coefficient, numberOfCoefficients)
	for i := 0; i < numberOfCoefficients; i++ {
		value, err := group.RandQ()
		if err != nil {
			return Polynomial{}, fmt.Errorf("polynomial: sampling coefficient %d: %w", i, err)
		}
		commitment := group.GPowP(value)
		r, err := group.RandQ()
		if err != nil {
			return Polynomial{}, fmt.Errorf("polynomial: sampling proof nonce for coefficient %d: %w", i, err)
		}
		coefficients[i] = Coefficient{
			Value:      value,
			Commitment: commitment,
			Proof:      proof.MakeSchnorrProof(value, commitment, r),
		}
	}
	return Polynomial{Coefficients: coefficients}, nil
}

// ComputeCoordinate evaluates the polynomial at exponentModifier (usually
// the recipient guardian's sequence order), returning P(x) mod q.
func ComputeCoordinate(exponentModifier int, p Polynomial) group.ElementModQ {
	x := group.IntModQ(exponentModifier)
	computed := group.ZeroModQ
	for i, coefficient := range p.Coefficients {
		exponent := group.PowQ(x, group.IntModQ(i))
		factor := group.MultQ(coefficient.Value, exponent)
		computed = group.AddQ(computed, factor)
	}
	return computed
}

// CommitmentAt computes G^{P(exponentModifier)} from public commitments
// alone, without needing the secret coefficients: Π K_j^{x^j}. Used both
// to verify a received coordinate and, during decryption, to recompute
// the expected public commitment for a guardian missing from the
// quorum (spec.md §4.9 step 1).
func CommitmentAt(exponentModifier int, commitments []PublicCommitment) PublicCommitment {
	x := group.IntModQ(exponentModifier)
	commitmentOutput := group.OneModP
	for i, commitment := range commitments {
		exponent := group.PowQ(x, group.IntModQ(i))
		factor := group.PowP(commitment, exponent)
		commitmentOutput = group.MultP(commitmentOutput, factor)
	}
	return commitmentOutput
}

// VerifyCoordinate checks that coordinate is in fact P(exponentModifier)
// for the polynomial whose public commitments are given, without needing
// the secret coefficients (spec.md §4.4, backup verification).
func VerifyCoordinate(coordinate group.ElementModQ, exponentModifier int, commitments []PublicCommitment) bool {
	return group.GPowP(coordinate).Equals(CommitmentAt(exponentModifier, commitments))
}

// LagrangeCoefficient computes the Lagrange basis coefficient for
// coordinate against the given set of degrees (the sequence orders of
// the guardians participating in reconstruction), per spec.md §4.9.
func LagrangeCoefficient(coordinate int, degrees ...int) (group.ElementModQ, error) {
	numerator := group.OneModQ
	denominator := group.OneModQ
	for _, degree := range degrees {
		numerator = group.MultQ(numerator, group.IntModQ(degree))
		denominator = group.MultQ(denominator, group.IntModQ(degree-coordinate))
	}
	result, err := group.DivQ(numerator, denominator)
	if err != nil {
		return group.ElementModQ{}, fmt.Errorf("polynomial: lagrange coefficient for coordinate %d: %w", coordinate, egerror.ErrInvariantViolation)
	}
	return result, nil
}
