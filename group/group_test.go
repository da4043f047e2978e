package group

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardConstantsSatisfyGroupAxioms(t *testing.T) {
	one := big.NewInt(1)
	assert.NotEqual(t, 0, one.Cmp(G))

	gq := new(big.Int).Exp(G, Q, P)
	assert.Equal(t, 0, one.Cmp(gq), "G^Q mod P must be 1")

	rq := new(big.Int).Mul(R, Q)
	pMinusOne := new(big.Int).Sub(P, one)
	assert.Equal(t, 0, rq.Cmp(pMinusOne), "R*Q must equal P-1")
}

func TestNewElementModPRejectsOutOfRange(t *testing.T) {
	_, err := NewElementModP(P)
	assert.Error(t, err)

	_, err = NewElementModP(big.NewInt(-1))
	assert.Error(t, err)

	e, err := NewElementModP(big.NewInt(5))
	require.NoError(t, err)
	assert.True(t, e.InBounds())
}

func TestNewElementModQRejectsOutOfRange(t *testing.T) {
	_, err := NewElementModQ(Q)
	assert.Error(t, err)

	e, err := NewElementModQ(big.NewInt(0))
	require.NoError(t, err)
	assert.True(t, e.InBounds())
	assert.True(t, e.IsZero())
}

func TestHexRoundTrip(t *testing.T) {
	defer UseTestConstants(MediumTestConstants())()

	e, err := NewElementModP(big.NewInt(12345))
	require.NoError(t, err)
	s := e.String()
	assert.Len(t, s, 1024)

	back, err := HexToP(s)
	require.NoError(t, err)
	assert.True(t, e.Equals(back))
}

func TestHexRoundTripQ(t *testing.T) {
	e, err := NewElementModQ(big.NewInt(98765))
	require.NoError(t, err)
	s := e.String()
	assert.Len(t, s, 64)

	back, err := HexToQ(s)
	require.NoError(t, err)
	assert.True(t, e.Equals(back))
}

func TestAddQWrapsModQ(t *testing.T) {
	defer UseTestConstants(SmallTestConstants())()

	a, _ := NewElementModQ(big.NewInt(200))
	b, _ := NewElementModQ(big.NewInt(100))
	sum := AddQ(a, b)
	// 300 mod 251 = 49
	assert.Equal(t, big.NewInt(49), sum.Int())
}

func TestNegateQ(t *testing.T) {
	defer UseTestConstants(SmallTestConstants())()

	a, _ := NewElementModQ(big.NewInt(1))
	neg := NegateQ(a)
	assert.Equal(t, int64(0), AddQ(a, neg).Int().Int64())
}

func TestMultInvPAndDivP(t *testing.T) {
	defer UseTestConstants(SmallTestConstants())()

	a, _ := NewElementModP(big.NewInt(7))
	inv, err := MultInvP(a)
	require.NoError(t, err)
	product := MultP(a, inv)
	assert.Equal(t, big.NewInt(1), product.Int())

	q, err := DivP(a, a)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1), q.Int())
}

func TestMultInvPRejectsZero(t *testing.T) {
	_, err := MultInvP(ZeroModP)
	assert.Error(t, err)
}

func TestGPowPAndPowP(t *testing.T) {
	defer UseTestConstants(SmallTestConstants())()

	exp, _ := NewElementModQ(big.NewInt(3))
	gGen, _ := NewElementModP(G)
	a := GPowP(exp)
	b := PowP(gGen, exp)
	assert.True(t, a.Equals(b))
}

func TestRandQInBounds(t *testing.T) {
	for i := 0; i < 20; i++ {
		r, err := RandQ()
		require.NoError(t, err)
		assert.True(t, r.InBounds())
	}
}

func TestRandRangeQRespectsStart(t *testing.T) {
	defer UseTestConstants(SmallTestConstants())()

	start, _ := NewElementModQ(big.NewInt(200))
	for i := 0; i < 20; i++ {
		r, err := RandRangeQ(start)
		require.NoError(t, err)
		assert.True(t, r.Int().Cmp(start.Int()) >= 0)
		assert.True(t, r.InBounds())
	}
}

func TestIsValidResidue(t *testing.T) {
	// The medium set's G=3 lies in the order-Q subgroup (3^32633 mod 65267
	// is 1); 2 does not (2^32633 mod 65267 is 65266).
	defer UseTestConstants(MediumTestConstants())()

	gGen, _ := NewElementModP(G)
	assert.True(t, gGen.IsValidResidue())

	bad, _ := NewElementModP(big.NewInt(2))
	assert.False(t, bad.IsValidResidue())
}

func TestElementModPJSONRoundTrip(t *testing.T) {
	defer UseTestConstants(SmallTestConstants())()

	e, err := NewElementModP(big.NewInt(5))
	require.NoError(t, err)

	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.Equal(t, `"`+e.String()+`"`, string(data))

	var decoded ElementModP
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, e.Equals(decoded))
}

func TestElementModQJSONRejectsOutOfRange(t *testing.T) {
	defer UseTestConstants(SmallTestConstants())()

	var decoded ElementModQ
	err := json.Unmarshal([]byte(`"ff"`), &decoded)
	assert.Error(t, err)
}
