package group

import "math/big"

// TestConstants holds a small, non-secure prime group used only by test
// code, mirroring original_source/electionguard/constants.py's
// *_TEST_CONSTANTS tuples. Production code never references this type.
type TestConstants struct {
	P *big.Int
	Q *big.Int
	R *big.Int
	G *big.Int
}

// ExtraSmallTestConstants is (p=157, q=13, r=12, g=16).
func ExtraSmallTestConstants() TestConstants {
	return TestConstants{
		P: big.NewInt(157),
		Q: big.NewInt(13),
		R: big.NewInt(12),
		G: big.NewInt(16),
	}
}

// SmallTestConstants is (p=503, q=251, r=2, g=5).
func SmallTestConstants() TestConstants {
	return TestConstants{
		P: big.NewInt(503),
		Q: big.NewInt(251),
		R: big.NewInt(2),
		G: big.NewInt(5),
	}
}

// MediumTestConstants is (p=65267, q=32633, r=2, g=3).
func MediumTestConstants() TestConstants {
	return TestConstants{
		P: big.NewInt(65267),
		Q: big.NewInt(32633),
		R: big.NewInt(2),
		G: big.NewInt(3),
	}
}

// LargeTestConstants is (p=18446744073704586917, q=65521,
// r=281539415968996, g=15463152587872997502).
func LargeTestConstants() TestConstants {
	p, _ := new(big.Int).SetString("18446744073704586917", 10)
	q := big.NewInt(65521)
	r := big.NewInt(281539415968996)
	g, _ := new(big.Int).SetString("15463152587872997502", 10)
	return TestConstants{P: p, Q: q, R: r, G: g}
}

// UseTestConstants swaps the package-level P, Q, R, G for a small test
// group and returns a restore func. Call sites in _test.go files only:
//
//	defer group.UseTestConstants(group.SmallTestConstants())()
func UseTestConstants(c TestConstants) func() {
	oldP, oldQ, oldR, oldG := P, Q, R, G
	P, Q, R, G = c.P, c.Q, c.R, c.G
	return func() {
		P, Q, R, G = oldP, oldQ, oldR, oldG
	}
}
