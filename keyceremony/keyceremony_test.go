package keyceremony

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Election-Tech-Initiative/electionguard-go/group"
)

func TestBackupEncryptDecryptRoundTrip(t *testing.T) {
	defer group.UseTestConstants(group.MediumTestConstants())()

	recipient, err := GenerateGuardianKeyPair("recipient", 2, 2)
	require.NoError(t, err)

	coordinate, err := group.RandQ()
	require.NoError(t, err)

	enc, err := EncryptBackup(coordinate, recipient.KeyPair.PublicKey)
	require.NoError(t, err)

	decoded, err := DecryptBackup(enc, recipient.KeyPair.SecretKey)
	require.NoError(t, err)
	assert.True(t, coordinate.Equals(decoded))
}

func TestBackupDecryptFailsWithWrongKey(t *testing.T) {
	defer group.UseTestConstants(group.MediumTestConstants())()

	recipient, err := GenerateGuardianKeyPair("recipient", 2, 2)
	require.NoError(t, err)
	other, err := GenerateGuardianKeyPair("other", 3, 2)
	require.NoError(t, err)

	coordinate, err := group.RandQ()
	require.NoError(t, err)

	enc, err := EncryptBackup(coordinate, recipient.KeyPair.PublicKey)
	require.NoError(t, err)

	_, err = DecryptBackup(enc, other.KeyPair.SecretKey)
	assert.Error(t, err)
}

func TestGenerateAndVerifyBackup(t *testing.T) {
	defer group.UseTestConstants(group.MediumTestConstants())()

	owner, err := GenerateGuardianKeyPair("owner", 1, 2)
	require.NoError(t, err)
	recipient, err := GenerateGuardianKeyPair("recipient", 2, 2)
	require.NoError(t, err)

	backup, err := GenerateBackup(owner.OwnerID, owner.Polynomial, recipient.Share())
	require.NoError(t, err)

	v := VerifyBackup(recipient.OwnerID, backup, recipient.KeyPair.SecretKey, owner.Share())
	assert.True(t, v.Verified)
}

func TestVerifyBackupRejectsTamperedCoordinate(t *testing.T) {
	defer group.UseTestConstants(group.MediumTestConstants())()

	owner, err := GenerateGuardianKeyPair("owner", 1, 2)
	require.NoError(t, err)
	recipient, err := GenerateGuardianKeyPair("recipient", 2, 2)
	require.NoError(t, err)

	backup, err := GenerateBackup(owner.OwnerID, owner.Polynomial, recipient.Share())
	require.NoError(t, err)
	backup.EncryptedCoordinate.Data[0] ^= 0xFF

	v := VerifyBackup(recipient.OwnerID, backup, recipient.KeyPair.SecretKey, owner.Share())
	assert.False(t, v.Verified)
}

func TestChallengeAndVerify(t *testing.T) {
	defer group.UseTestConstants(group.MediumTestConstants())()

	owner, err := GenerateGuardianKeyPair("owner", 1, 2)
	require.NoError(t, err)
	recipient, err := GenerateGuardianKeyPair("recipient", 2, 2)
	require.NoError(t, err)

	backup, err := GenerateBackup(owner.OwnerID, owner.Polynomial, recipient.Share())
	require.NoError(t, err)

	challenge := GenerateChallenge(backup, owner.Polynomial)
	v := VerifyChallenge("third-party", challenge)
	assert.True(t, v.Verified)
}

func TestGuardianCeremonyStateForwardOnly(t *testing.T) {
	s := NewGuardianCeremonyState("g1")
	require.NoError(t, s.Advance(KeysGenerated))
	require.NoError(t, s.Advance(PublicKeysReceived))
	require.NoError(t, s.Advance(BackupsGenerated))
	require.NoError(t, s.Advance(BackupsDistributed))
	require.NoError(t, s.Advance(BackupsVerified))
	require.NoError(t, s.Advance(JointKeyReady))

	err := s.Advance(KeysGenerated)
	assert.Error(t, err)
}

func TestGuardianCeremonyStateDisputeRecovers(t *testing.T) {
	s := NewGuardianCeremonyState("g1")
	require.NoError(t, s.Advance(KeysGenerated))
	require.NoError(t, s.Advance(PublicKeysReceived))
	require.NoError(t, s.Advance(BackupsGenerated))
	require.NoError(t, s.Advance(BackupsDistributed))
	require.NoError(t, s.Advance(Disputed))
	require.NoError(t, s.Advance(BackupsVerified))
}

func TestMediatorEndToEndCeremony(t *testing.T) {
	defer group.UseTestConstants(group.MediumTestConstants())()

	details := CeremonyDetails{NumberOfGuardians: 3, Quorum: 2}
	m := NewMediator(details)

	g1, err := GenerateGuardianKeyPair("g1", 1, details.Quorum)
	require.NoError(t, err)
	g2, err := GenerateGuardianKeyPair("g2", 2, details.Quorum)
	require.NoError(t, err)
	g3, err := GenerateGuardianKeyPair("g3", 3, details.Quorum)
	require.NoError(t, err)

	guardians := []GuardianKeyPair{g1, g2, g3}
	for _, g := range guardians {
		require.NoError(t, m.ReceivePublicKey(g.Share()))
	}
	assert.True(t, m.AllPublicKeysReceived())

	shares := m.GuardianPublicKeys()
	for _, sender := range guardians {
		for _, recipient := range guardians {
			if sender.OwnerID == recipient.OwnerID {
				continue
			}
			backup, err := GenerateBackup(sender.OwnerID, sender.Polynomial, shares[recipient.OwnerID])
			require.NoError(t, err)
			m.ReceiveBackup(backup)
		}
	}
	assert.True(t, m.AllBackupsDistributed())

	for _, recipient := range guardians {
		for _, sender := range guardians {
			if sender.OwnerID == recipient.OwnerID {
				continue
			}
			backup := m.backups[backupKey{owner: sender.OwnerID, designated: recipient.OwnerID}]
			v := VerifyBackup(recipient.OwnerID, backup, recipient.KeyPair.SecretKey, shares[sender.OwnerID])
			require.True(t, v.Verified)
			m.ReceiveVerification(v)
		}
	}
	assert.True(t, m.AllBackupsVerified())

	key, err := m.PublishJointKey()
	require.NoError(t, err)
	assert.True(t, key.PublicKey.IsValidResidue())
}
