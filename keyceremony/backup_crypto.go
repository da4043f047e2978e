package keyceremony

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"

	"github.com/Election-Tech-Initiative/electionguard-go/egerror"
	"github.com/Election-Tech-Initiative/electionguard-go/ghash"
	"github.com/Election-Tech-Initiative/electionguard-go/group"
)

// EncryptedBackup is a guardian's polynomial coordinate, encrypted to a
// recipient's public key via ElGamal-derived Diffie-Hellman and an
// HMAC-SHA256 keystream, so that it can transit through an untrusted
// mediator without exposing the coordinate (spec.md §3 "Backup").
//
// Grounded on
// _examples/original_source/src/electionguard/hmac.py's get_hmac and on
// elgamal.py's hashed_elgamal_encrypt session-key derivation, adapted
// here to a single 32-byte block sized exactly for one ElementModQ
// rather than hashed_elgamal_encrypt's arbitrary-length byte stream.
type EncryptedBackup struct {
	Pad  group.ElementModP
	Data [32]byte
	Mac  [32]byte
}

// EncryptBackup encrypts coordinate to recipientPublicKey using a fresh
// ephemeral nonce.
func EncryptBackup(coordinate group.ElementModQ, recipientPublicKey group.ElementModP) (EncryptedBackup, error) {
	w, err := group.RandQ()
	if err != nil {
		return EncryptedBackup{}, fmt.Errorf("keyceremony: backup encryption nonce: %w", err)
	}
	pad := group.GPowP(w)
	sharedPoint := group.PowP(recipientPublicKey, w)
	return sealBackup(coordinate, pad, sharedPoint), nil
}

// DecryptBackup recovers the coordinate using the recipient's secret
// key. Fails with egerror.ErrBadNonce if the MAC does not verify, which
// indicates tampering or a mismatched key.
func DecryptBackup(enc EncryptedBackup, recipientSecretKey group.ElementModQ) (group.ElementModQ, error) {
	sharedPoint := group.PowP(enc.Pad, recipientSecretKey)
	return openBackup(enc, sharedPoint)
}

func sessionKey(pad group.ElementModP, sharedPoint group.ElementModP) []byte {
	h := ghash.Elems(pad, sharedPoint)
	return []byte(h.String())
}

func sealBackup(coordinate group.ElementModQ, pad, sharedPoint group.ElementModP) EncryptedBackup {
	key := sessionKey(pad, sharedPoint)

	plainBytes := fixedWidthBytes(coordinate.Int(), 32)
	keystream := hmacSum(key, []byte(pad.String()), 1)

	var data [32]byte
	for i := range data {
		data[i] = plainBytes[i] ^ keystream[i]
	}

	macKey := hmacSum(key, []byte(pad.String()), 0)
	mac := hmacSum(macKey, append([]byte(pad.String()), data[:]...), -1)

	var macOut [32]byte
	copy(macOut[:], mac)

	return EncryptedBackup{Pad: pad, Data: data, Mac: macOut}
}

func openBackup(enc EncryptedBackup, sharedPoint group.ElementModP) (group.ElementModQ, error) {
	key := sessionKey(enc.Pad, sharedPoint)

	macKey := hmacSum(key, []byte(enc.Pad.String()), 0)
	expectedMac := hmacSum(macKey, append([]byte(enc.Pad.String()), enc.Data[:]...), -1)
	if !hmac.Equal(expectedMac, enc.Mac[:]) {
		return group.ElementModQ{}, fmt.Errorf("keyceremony: backup MAC verification failed: %w", egerror.ErrBadNonce)
	}

	keystream := hmacSum(key, []byte(enc.Pad.String()), 1)
	var plain [32]byte
	for i := range plain {
		plain[i] = enc.Data[i] ^ keystream[i]
	}
	return group.ModQ(bytesToInt(plain[:])), nil
}

// hmacSum computes HMAC-SHA256(key, message || blockIndex), mirroring
// get_hmac's counter-suffixed construction (blockIndex < 0 omits the
// suffix, matching get_hmac's mac_key call with no trailing counter).
func hmacSum(key, message []byte, blockIndex int) []byte {
	m := hmac.New(sha256.New, key)
	m.Write(message)
	if blockIndex >= 0 {
		m.Write([]byte{byte(blockIndex)})
	}
	return m.Sum(nil)
}
