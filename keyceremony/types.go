// Package keyceremony implements the threshold Key Ceremony: each
// guardian generates an election polynomial, publishes Schnorr-proven
// commitments, exchanges encrypted polynomial backups with every other
// guardian, verifies them, and the mediator combines the per-guardian
// public keys into the joint election key (spec.md §4.6).
//
// Grounded on
// _examples/original_source/src/electionguard/key_ceremony.py,
// guardian.py and key_ceremony_mediator.py.
package keyceremony

import (
	"github.com/Election-Tech-Initiative/electionguard-go/elgamal"
	"github.com/Election-Tech-Initiative/electionguard-go/ghash"
	"github.com/Election-Tech-Initiative/electionguard-go/group"
	"github.com/Election-Tech-Initiative/electionguard-go/polynomial"
	"github.com/Election-Tech-Initiative/electionguard-go/proof"
)

// GuardianID identifies a guardian across the ceremony and election
// record. It is opaque to this package.
type GuardianID string

// CeremonyDetails fixes the ceremony's size parameters for its duration.
type CeremonyDetails struct {
	NumberOfGuardians int
	Quorum            int
}

// GuardianKeyPair is a guardian's full private ceremony material: its
// ElGamal keypair (equal to the polynomial's 0-index coefficient) and the
// polynomial itself.
type GuardianKeyPair struct {
	OwnerID       GuardianID
	SequenceOrder int
	KeyPair       elgamal.KeyPair
	Polynomial    polynomial.Polynomial
}

// Share returns the public record a guardian publishes to the rest of
// the ceremony: its election public key plus every coefficient
// commitment and Schnorr proof.
func (g GuardianKeyPair) Share() GuardianPublicKey {
	return GuardianPublicKey{
		OwnerID:       g.OwnerID,
		SequenceOrder: g.SequenceOrder,
		PublicKey:     g.KeyPair.PublicKey,
		Commitments:   g.Polynomial.Commitments(),
		Proofs:        g.Polynomial.Proofs(),
	}
}

// GuardianPublicKey is the public record of one guardian's election
// key and its supporting commitments and proofs (spec.md §3 "Guardian
// record").
type GuardianPublicKey struct {
	OwnerID       GuardianID
	SequenceOrder int
	PublicKey     elgamal.PublicKey
	Commitments   []polynomial.PublicCommitment
	Proofs        []proof.SchnorrProof
}

// VerifySchnorrProofs checks every published Schnorr proof for this
// guardian's commitments. A single failing proof invalidates the whole
// record (spec.md §4.6 step 2).
func (g GuardianPublicKey) VerifySchnorrProofs() bool {
	for _, p := range g.Proofs {
		if !p.IsValid() {
			return false
		}
	}
	return true
}

// ElectionPartialKeyBackup is guardian OwnerID's share of its secret
// polynomial intended for DesignatedID, encrypted under the recipient's
// public key (spec.md §3 "Backup").
type ElectionPartialKeyBackup struct {
	OwnerID                 GuardianID
	DesignatedID            GuardianID
	DesignatedSequenceOrder int
	EncryptedCoordinate     EncryptedBackup
}

// ElectionPartialKeyVerification records a recipient's judgment of a
// backup it received.
type ElectionPartialKeyVerification struct {
	OwnerID      GuardianID
	DesignatedID GuardianID
	VerifierID   GuardianID
	Verified     bool
}

// ElectionPartialKeyChallenge is the owner's plaintext reveal of a
// disputed backup coordinate, published for independent re-verification
// (spec.md §4.6 step 5).
type ElectionPartialKeyChallenge struct {
	OwnerID                 GuardianID
	DesignatedID             GuardianID
	DesignatedSequenceOrder int
	Coordinate              group.ElementModQ
	Commitments             []polynomial.PublicCommitment
	Proofs                  []proof.SchnorrProof
}

// ElectionKey is the joint public key and a hash of every guardian's
// coefficient commitments, published once the ceremony completes
// (spec.md §3 "Joint public key").
type ElectionKey struct {
	PublicKey      elgamal.PublicKey
	CommitmentHash group.ElementModQ
}

// GenerateGuardianKeyPair builds a fresh polynomial of degree quorum-1
// and the corresponding ElGamal keypair for one guardian.
func GenerateGuardianKeyPair(ownerID GuardianID, sequenceOrder, quorum int) (GuardianKeyPair, error) {
	poly, err := polynomial.Generate(quorum)
	if err != nil {
		return GuardianKeyPair{}, err
	}
	keyPair := elgamal.KeyPair{
		SecretKey: poly.Coefficients[0].Value,
		PublicKey: poly.Coefficients[0].Commitment,
	}
	return GuardianKeyPair{
		OwnerID:       ownerID,
		SequenceOrder: sequenceOrder,
		KeyPair:       keyPair,
		Polynomial:    poly,
	}, nil
}

// CreateElectionKey combines every guardian's public key into the joint
// key, per spec.md §3 K = Π K_i, and hashes the concatenation of every
// guardian's coefficient commitments for the election record.
func CreateElectionKey(guardianPublicKeys []GuardianPublicKey) ElectionKey {
	publicKeys := make([]elgamal.PublicKey, len(guardianPublicKeys))
	var allCommitments []interface{}
	for i, g := range guardianPublicKeys {
		publicKeys[i] = g.PublicKey
		for _, c := range g.Commitments {
			allCommitments = append(allCommitments, c)
		}
	}
	return ElectionKey{
		PublicKey:      elgamal.CombinePublicKeys(publicKeys...),
		CommitmentHash: ghash.Elems(allCommitments...),
	}
}
