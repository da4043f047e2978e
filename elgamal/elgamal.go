// Package elgamal implements the exponential ElGamal scheme ElectionGuard
// uses for additively-homomorphic ballot encryption (spec.md §4.3).
//
// Grounded on _examples/original_source/src/electionguard/elgamal.py:
// KeyPair, Ciphertext, Encrypt, Add and the decrypt family follow that
// module's elgamal_keypair_from_secret / elgamal_encrypt / elgamal_add /
// ElGamalCiphertext methods function-for-function.
package elgamal

import (
	"fmt"

	"go.dedis.ch/onet/v3/log"

	"github.com/Election-Tech-Initiative/electionguard-go/egerror"
	"github.com/Election-Tech-Initiative/electionguard-go/ghash"
	"github.com/Election-Tech-Initiative/electionguard-go/group"
)

// SecretKey is a guardian or voter secret exponent in [2, Q).
type SecretKey = group.ElementModQ

// PublicKey is G^SecretKey mod P.
type PublicKey = group.ElementModP

// KeyPair is a matched ElGamal secret/public key pair.
type KeyPair struct {
	SecretKey SecretKey
	PublicKey PublicKey
}

// Ciphertext is an exponential ElGamal ciphertext (pad, data) =
// (G^r, K^r * G^m).
type Ciphertext struct {
	Pad  group.ElementModP
	Data group.ElementModP
}

// Equals reports whether two ciphertexts hold the same pad and data.
func (c Ciphertext) Equals(o Ciphertext) bool {
	return c.Pad.Equals(o.Pad) && c.Data.Equals(o.Data)
}

// CryptoHash returns hash_elems(pad, data), this ciphertext's canonical hash.
func (c Ciphertext) CryptoHash() group.ElementModQ {
	return ghash.Elems(c.Pad, c.Data)
}

// KeyPairFromSecret builds a keypair from an existing secret exponent. The
// secret must lie in [2, Q) (spec.md §4.3); a weaker value is rejected as
// egerror.ErrWeakSecret since 0 and 1 both yield degenerate public keys.
func KeyPairFromSecret(secret SecretKey) (KeyPair, error) {
	two := group.TwoModQ
	if secret.Int().Cmp(two.Int()) < 0 {
		return KeyPair{}, fmt.Errorf("elgamal: secret key must be in [2,Q): %w", egerror.ErrWeakSecret)
	}
	return KeyPair{SecretKey: secret, PublicKey: group.GPowP(secret)}, nil
}

// GenerateKeyPair produces a random keypair from a cryptographically
// secure nonce.
func GenerateKeyPair() (KeyPair, error) {
	secret, err := group.RandRangeQ(group.TwoModQ)
	if err != nil {
		return KeyPair{}, fmt.Errorf("elgamal: keypair generation failed: %w", err)
	}
	return KeyPairFromSecret(secret)
}

// CombinePublicKeys multiplies public keys together to form a joint key,
// per spec.md §4.4 K = Π K_i.
func CombinePublicKeys(keys ...PublicKey) PublicKey {
	return group.MultP(keys...)
}

// Encrypt encrypts message under public_key with the given nonce. The
// nonce must be nonzero (spec.md §4.3).
func Encrypt(message int, nonce group.ElementModQ, publicKey PublicKey) (Ciphertext, error) {
	if nonce.IsZero() {
		return Ciphertext{}, fmt.Errorf("elgamal: encryption requires a non-zero nonce: %w", egerror.ErrBadNonce)
	}
	pad := group.GPowP(nonce)
	gPowM := group.GPowP(group.IntModQ(message))
	pubKeyPowN := group.PowP(publicKey, nonce)
	data := group.MultP(gPowM, pubKeyPowN)

	log.Lvlf3("elgamal encrypt: publicKey=%s pad=%s data=%s", publicKey, pad, data)

	return Ciphertext{Pad: pad, Data: data}, nil
}

// Add homomorphically accumulates one or more ciphertexts by pairwise
// multiplication: the encoded plaintexts add (spec.md §4.3, §8 invariant).
func Add(ciphertexts ...Ciphertext) (Ciphertext, error) {
	if len(ciphertexts) == 0 {
		return Ciphertext{}, fmt.Errorf("elgamal: add requires at least one ciphertext: %w", egerror.ErrInvariantViolation)
	}
	result := ciphertexts[0]
	for _, c := range ciphertexts[1:] {
		result = Ciphertext{
			Pad:  group.MultP(result.Pad, c.Pad),
			Data: group.MultP(result.Data, c.Data),
		}
	}
	return result, nil
}

// DecryptKnownProduct recovers the exponentially-encoded plaintext given
// the blinding factor product M = K^r (or Π M_i in the threshold case).
func DecryptKnownProduct(c Ciphertext, product group.ElementModP) (int, error) {
	inv, err := group.MultInvP(product)
	if err != nil {
		return 0, fmt.Errorf("elgamal: decrypt known product: %w", err)
	}
	gToM := group.MultP(c.Data, inv)
	return DiscreteLog(gToM)
}

// Decrypt recovers the plaintext using the full ElGamal secret key.
func Decrypt(c Ciphertext, secretKey SecretKey) (int, error) {
	product := group.PowP(c.Pad, secretKey)
	return DecryptKnownProduct(c, product)
}

// DecryptKnownNonce recovers the plaintext using the encryption nonce and
// the public key, without needing the secret key.
func DecryptKnownNonce(c Ciphertext, publicKey PublicKey, nonce group.ElementModQ) (int, error) {
	product := group.PowP(publicKey, nonce)
	return DecryptKnownProduct(c, product)
}

// PartialDecrypt computes a single guardian's decryption share M_i =
// pad^{s_i} mod P (spec.md §4.9), without recovering a plaintext.
func PartialDecrypt(c Ciphertext, secretKey SecretKey) group.ElementModP {
	return group.PowP(c.Pad, secretKey)
}
