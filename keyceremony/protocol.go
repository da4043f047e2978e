package keyceremony

import (
	"github.com/Election-Tech-Initiative/electionguard-go/group"
	"github.com/Election-Tech-Initiative/electionguard-go/polynomial"
)

// GenerateBackup computes ownerPolynomial's value at designated's
// coordinate and encrypts it to designated's public key (spec.md §4.6
// step 3).
func GenerateBackup(ownerID GuardianID, ownerPolynomial polynomial.Polynomial, designated GuardianPublicKey) (ElectionPartialKeyBackup, error) {
	value := polynomial.ComputeCoordinate(designated.SequenceOrder, ownerPolynomial)
	encrypted, err := EncryptBackup(value, designated.PublicKey)
	if err != nil {
		return ElectionPartialKeyBackup{}, err
	}
	return ElectionPartialKeyBackup{
		OwnerID:                 ownerID,
		DesignatedID:            designated.OwnerID,
		DesignatedSequenceOrder: designated.SequenceOrder,
		EncryptedCoordinate:     encrypted,
	}, nil
}

// VerifyBackup decrypts backup with the recipient's secret key and
// checks it lies on the owner's published polynomial (spec.md §4.6 step
// 4). A failed decryption (bad MAC) counts as a failed verification
// rather than propagating an error, matching the Python reference's
// verify_election_partial_key_backup, which always returns a
// verification record.
func VerifyBackup(verifierID GuardianID, backup ElectionPartialKeyBackup, recipientSecretKey group.ElementModQ, owner GuardianPublicKey) ElectionPartialKeyVerification {
	coordinate, err := DecryptBackup(backup.EncryptedCoordinate, recipientSecretKey)
	verified := err == nil && polynomial.VerifyCoordinate(coordinate, backup.DesignatedSequenceOrder, owner.Commitments)
	return ElectionPartialKeyVerification{
		OwnerID:      backup.OwnerID,
		DesignatedID: backup.DesignatedID,
		VerifierID:   verifierID,
		Verified:     verified,
	}
}

// GenerateChallenge regenerates the disputed coordinate in the clear and
// bundles it with the owner's public commitments and proofs so any
// guardian can independently re-verify it (spec.md §4.6 step 5).
func GenerateChallenge(backup ElectionPartialKeyBackup, ownerPolynomial polynomial.Polynomial) ElectionPartialKeyChallenge {
	return ElectionPartialKeyChallenge{
		OwnerID:                 backup.OwnerID,
		DesignatedID:            backup.DesignatedID,
		DesignatedSequenceOrder: backup.DesignatedSequenceOrder,
		Coordinate:              polynomial.ComputeCoordinate(backup.DesignatedSequenceOrder, ownerPolynomial),
		Commitments:             ownerPolynomial.Commitments(),
		Proofs:                  ownerPolynomial.Proofs(),
	}
}

// VerifyChallenge re-checks a published challenge against its own
// bundled commitments, independent of any prior verification.
func VerifyChallenge(verifierID GuardianID, challenge ElectionPartialKeyChallenge) ElectionPartialKeyVerification {
	verified := polynomial.VerifyCoordinate(challenge.Coordinate, challenge.DesignatedSequenceOrder, challenge.Commitments)
	return ElectionPartialKeyVerification{
		OwnerID:      challenge.OwnerID,
		DesignatedID: challenge.DesignatedID,
		VerifierID:   verifierID,
		Verified:     verified,
	}
}
