package ghash

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Election-Tech-Initiative/electionguard-go/group"
)

func TestElemsIsDeterministic(t *testing.T) {
	a := Elems("foo", 1, nil)
	b := Elems("foo", 1, nil)
	assert.True(t, a.Equals(b))
}

func TestElemsDistinguishesArgumentOrder(t *testing.T) {
	a := Elems("foo", "bar")
	b := Elems("bar", "foo")
	assert.False(t, a.Equals(b))
}

func TestElemsHandlesElementModP(t *testing.T) {
	e, err := group.NewElementModP(big.NewInt(42))
	assert.NoError(t, err)
	a := Elems(e)
	b := Elems(e)
	assert.True(t, a.Equals(b))
}

func TestElemsEmptySliceIsNull(t *testing.T) {
	a := Elems([]string{})
	b := Elems(nil)
	assert.True(t, a.Equals(b))
}

func TestElemsResultInBounds(t *testing.T) {
	h := Elems("a", "b", "c", 5)
	assert.True(t, h.InBounds())
}

func TestElemsHandlesUint64DistinctFromZero(t *testing.T) {
	var n uint64 = 7
	a := Elems(n)
	b := Elems(uint64(0))
	assert.False(t, a.Equals(b))

	c := Elems(uint64(7))
	assert.True(t, a.Equals(c))
}
