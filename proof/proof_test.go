package proof

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Election-Tech-Initiative/electionguard-go/elgamal"
	"github.com/Election-Tech-Initiative/electionguard-go/group"
)

func TestSchnorrProofRoundTrip(t *testing.T) {
	defer group.UseTestConstants(group.MediumTestConstants())()

	kp, err := elgamal.GenerateKeyPair()
	require.NoError(t, err)
	r, err := group.RandQ()
	require.NoError(t, err)

	p := MakeSchnorrProof(kp.SecretKey, kp.PublicKey, r)
	assert.True(t, p.IsValid())
}

func TestSchnorrProofRejectsTamperedResponse(t *testing.T) {
	defer group.UseTestConstants(group.MediumTestConstants())()

	kp, err := elgamal.GenerateKeyPair()
	require.NoError(t, err)
	r, err := group.RandQ()
	require.NoError(t, err)

	p := MakeSchnorrProof(kp.SecretKey, kp.PublicKey, r)
	p.Response = group.AddQ(p.Response, group.OneModQ)
	assert.False(t, p.IsValid())
}

func TestChaumPedersenProofRoundTrip(t *testing.T) {
	defer group.UseTestConstants(group.MediumTestConstants())()

	kp, err := elgamal.GenerateKeyPair()
	require.NoError(t, err)
	nonce, err := group.RandRangeQ(group.OneModQ)
	require.NoError(t, err)
	msg, err := elgamal.Encrypt(1, nonce, kp.PublicKey)
	require.NoError(t, err)

	m := elgamal.PartialDecrypt(msg, kp.SecretKey)
	seed, err := group.RandQ()
	require.NoError(t, err)
	header, err := group.RandQ()
	require.NoError(t, err)

	p := MakeChaumPedersen(msg, kp.SecretKey, m, seed, header)
	assert.True(t, p.IsValid(msg, kp.PublicKey, m, header))
}

func TestDisjunctiveChaumPedersenZero(t *testing.T) {
	defer group.UseTestConstants(group.MediumTestConstants())()

	kp, err := elgamal.GenerateKeyPair()
	require.NoError(t, err)
	r, err := group.RandRangeQ(group.OneModQ)
	require.NoError(t, err)
	q, err := group.RandQ()
	require.NoError(t, err)
	seed, err := group.RandQ()
	require.NoError(t, err)

	msg, err := elgamal.Encrypt(0, r, kp.PublicKey)
	require.NoError(t, err)

	p, err := MakeDisjunctiveChaumPedersen(msg, r, kp.PublicKey, q, seed, 0)
	require.NoError(t, err)
	assert.True(t, p.IsValid(msg, kp.PublicKey, q))
}

func TestDisjunctiveChaumPedersenOne(t *testing.T) {
	defer group.UseTestConstants(group.MediumTestConstants())()

	kp, err := elgamal.GenerateKeyPair()
	require.NoError(t, err)
	r, err := group.RandRangeQ(group.OneModQ)
	require.NoError(t, err)
	q, err := group.RandQ()
	require.NoError(t, err)
	seed, err := group.RandQ()
	require.NoError(t, err)

	msg, err := elgamal.Encrypt(1, r, kp.PublicKey)
	require.NoError(t, err)

	p, err := MakeDisjunctiveChaumPedersen(msg, r, kp.PublicKey, q, seed, 1)
	require.NoError(t, err)
	assert.True(t, p.IsValid(msg, kp.PublicKey, q))
}

func TestDisjunctiveChaumPedersenRejectsOutOfRangePlaintext(t *testing.T) {
	defer group.UseTestConstants(group.MediumTestConstants())()

	kp, err := elgamal.GenerateKeyPair()
	require.NoError(t, err)
	r, err := group.RandRangeQ(group.OneModQ)
	require.NoError(t, err)
	q, err := group.RandQ()
	require.NoError(t, err)
	seed, err := group.RandQ()
	require.NoError(t, err)
	msg, err := elgamal.Encrypt(1, r, kp.PublicKey)
	require.NoError(t, err)

	_, err = MakeDisjunctiveChaumPedersen(msg, r, kp.PublicKey, q, seed, 2)
	assert.Error(t, err)
}

func TestConstantChaumPedersenRoundTrip(t *testing.T) {
	defer group.UseTestConstants(group.MediumTestConstants())()

	kp, err := elgamal.GenerateKeyPair()
	require.NoError(t, err)
	r, err := group.RandRangeQ(group.OneModQ)
	require.NoError(t, err)
	q, err := group.RandQ()
	require.NoError(t, err)
	seed, err := group.RandQ()
	require.NoError(t, err)

	msg, err := elgamal.Encrypt(1, r, kp.PublicKey)
	require.NoError(t, err)

	p := MakeConstantChaumPedersen(msg, 1, r, kp.PublicKey, seed, q)
	assert.True(t, p.IsValid(msg, kp.PublicKey, q))
}

func TestConstantChaumPedersenRejectsWrongConstant(t *testing.T) {
	defer group.UseTestConstants(group.MediumTestConstants())()

	kp, err := elgamal.GenerateKeyPair()
	require.NoError(t, err)
	r, err := group.RandRangeQ(group.OneModQ)
	require.NoError(t, err)
	q, err := group.RandQ()
	require.NoError(t, err)
	seed, err := group.RandQ()
	require.NoError(t, err)

	msg, err := elgamal.Encrypt(1, r, kp.PublicKey)
	require.NoError(t, err)

	p := MakeConstantChaumPedersen(msg, 2, r, kp.PublicKey, seed, q)
	assert.False(t, p.IsValid(msg, kp.PublicKey, q))
}
