package electionrecord

import (
	"errors"
	"fmt"

	"github.com/Election-Tech-Initiative/electionguard-go/ballot"
	"github.com/Election-Tech-Initiative/electionguard-go/decryption"
	"github.com/Election-Tech-Initiative/electionguard-go/egerror"
	"github.com/Election-Tech-Initiative/electionguard-go/elgamal"
	"github.com/Election-Tech-Initiative/electionguard-go/keyceremony"
)

// Bundle is the complete collection of public artifacts one election
// produces, sufficient on its own for a verifier to recheck every claim
// (spec.md §4.10).
type Bundle struct {
	Manifest          ballot.Manifest
	Constants         Constants
	Context           Context
	GuardianRecords   []keyceremony.GuardianPublicKey
	Ballots           []ballot.SubmittedBallot
	TallyObjectID     string
	CiphertextTally   map[string]elgamal.Ciphertext
	DecryptionShares  map[string][]decryption.DecryptionShare
	PlaintextTally    map[string]int
	SpoiledPlaintexts map[string]map[string]int
}

// Verify recomputes crypto_base_hash and crypto_extended_hash from the
// manifest and constants, re-checks every guardian's Schnorr proofs,
// every ballot's disjoint-CP and constant-CP proofs, and every recorded
// decryption share's Chaum-Pedersen proof. It reports every failure it
// finds rather than stopping at the first (spec.md §9 partial failure),
// joined into a single error via errors.Join; a nil return means the
// bundle is fully self-consistent.
func (b Bundle) Verify() error {
	var errs []error

	manifestHash := b.Manifest.CryptoHash()
	if !manifestHash.Equals(b.Context.ManifestHash) {
		errs = append(errs, fmt.Errorf("electionrecord: manifest hash mismatch: %w", egerror.ErrInvariantViolation))
	}

	expectedBase := CryptoBaseHash(b.Constants, b.Context.NumberOfGuardians, b.Context.Quorum, manifestHash)
	if !expectedBase.Equals(b.Context.CryptoBaseHash) {
		errs = append(errs, fmt.Errorf("electionrecord: crypto base hash mismatch: %w", egerror.ErrInvariantViolation))
	}

	expectedExtended := CryptoExtendedHash(expectedBase, b.Context.JointPublicKey)
	if !expectedExtended.Equals(b.Context.CryptoExtendedHash) {
		errs = append(errs, fmt.Errorf("electionrecord: crypto extended hash mismatch: %w", egerror.ErrInvariantViolation))
	}

	guardians := make(map[int]decryption.GuardianPublicInfo, len(b.GuardianRecords))
	for _, g := range b.GuardianRecords {
		if !g.VerifySchnorrProofs() {
			errs = append(errs, fmt.Errorf("electionrecord: guardian %s schnorr proof invalid: %w", g.OwnerID, egerror.ErrProofVerificationFailed))
		}
		guardians[g.SequenceOrder] = decryption.GuardianPublicInfo{
			ID:            g.OwnerID,
			SequenceOrder: g.SequenceOrder,
			PublicKey:     g.PublicKey,
			Commitments:   g.Commitments,
		}
	}

	for _, submitted := range b.Ballots {
		if !submitted.Ballot.IsValidEncryption(b.Context.JointPublicKey, b.Context.CryptoExtendedHash) {
			errs = append(errs, fmt.Errorf("electionrecord: ballot %s encryption invalid: %w", submitted.Ballot.BallotID, egerror.ErrProofVerificationFailed))
		}
	}

	for label, shares := range b.DecryptionShares {
		ciphertext, ok := b.CiphertextTally[label]
		if !ok {
			errs = append(errs, fmt.Errorf("electionrecord: decryption shares for %q reference no tallied ciphertext: %w", label, egerror.ErrInvariantViolation))
			continue
		}
		for _, share := range shares {
			info, known := guardians[share.SequenceOrder]
			if !known {
				errs = append(errs, fmt.Errorf("electionrecord: decryption share for %q from unknown guardian sequence %d: %w", label, share.SequenceOrder, egerror.ErrInvariantViolation))
				continue
			}
			if !decryption.VerifyShare(share, ciphertext, info.PublicKey, b.Context.CryptoExtendedHash) {
				errs = append(errs, fmt.Errorf("electionrecord: decryption share for %q from guardian %s invalid: %w", label, share.GuardianID, egerror.ErrProofVerificationFailed))
			}
		}
	}

	return errors.Join(errs...)
}

// Summary renders a short human-readable digest of the bundle's
// contents, in the spirit of evoting/lib/election.go's String() helper.
func (b Bundle) Summary() string {
	return fmt.Sprintf("election record: %d guardians, quorum %d, %d ballots, %d tallied selections",
		len(b.GuardianRecords), b.Context.Quorum, len(b.Ballots), len(b.CiphertextTally))
}
