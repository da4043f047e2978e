// Package group implements the arbitrary-precision modular arithmetic
// ElectionGuard is built on: integers mod the 4096-bit safe prime P, and
// integers mod the 256-bit prime Q dividing P-1 (spec.md §3, §4.1).
//
// Grounded on _examples/original_source/src/electionguard/group.py: every
// exported function here has a same-named counterpart there
// (add_q -> AddQ, mult_p -> MultP, g_pow_p -> GPowP, ...).
package group

import (
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"sync"

	"go.dedis.ch/kyber/v3/util/random"

	"github.com/Election-Tech-Initiative/electionguard-go/egerror"
)

// ElementModP is an integer in [0, P). Mixing it with an ElementModQ is a
// compile error, closing the class of bugs where a mod-P value is reduced
// mod Q by mistake (spec.md §9).
type ElementModP struct {
	v *big.Int
}

// ElementModQ is an integer in [0, Q).
type ElementModQ struct {
	v *big.Int
}

var (
	initOnce sync.Once
	initErr  error
)

func init() {
	initOnce.Do(loadStandardConstants)
	if initErr != nil {
		panic(initErr)
	}
}

func loadStandardConstants() {
	p, ok := new(big.Int).SetString(standardPDecimal, 10)
	if !ok {
		initErr = fmt.Errorf("group: cannot parse P")
		return
	}
	q, ok := new(big.Int).SetString(standardQDecimal, 10)
	if !ok {
		initErr = fmt.Errorf("group: cannot parse Q")
		return
	}
	r, ok := new(big.Int).SetString(standardRDecimal, 10)
	if !ok {
		initErr = fmt.Errorf("group: cannot parse R")
		return
	}
	g, ok := new(big.Int).SetString(standardGDecimal, 10)
	if !ok {
		initErr = fmt.Errorf("group: cannot parse G")
		return
	}
	if err := validateConstants(p, q, r, g); err != nil {
		initErr = err
		return
	}
	P, Q, R, G = p, q, r, g
}

// validateConstants enforces spec.md §3: "an implementation fails to start
// if they do not satisfy G^Q ≡ 1 (mod P) and G ≠ 1".
func validateConstants(p, q, r, g *big.Int) error {
	one := big.NewInt(1)
	if g.Cmp(one) == 0 {
		return fmt.Errorf("group: generator must not be 1")
	}
	pMinusOne := new(big.Int).Sub(p, one)
	rq := new(big.Int).Mul(r, q)
	if rq.Cmp(pMinusOne) != 0 {
		return fmt.Errorf("group: R*Q must equal P-1")
	}
	gq := new(big.Int).Exp(g, q, p)
	if gq.Cmp(one) != 0 {
		return fmt.Errorf("group: G^Q must be 1 mod P")
	}
	return nil
}

// ZeroModQ, OneModQ, TwoModQ, ZeroModP, OneModP, TwoModP are the common
// constants named in original_source/group.py.
var (
	ZeroModQ = ElementModQ{v: big.NewInt(0)}
	OneModQ  = ElementModQ{v: big.NewInt(1)}
	TwoModQ  = ElementModQ{v: big.NewInt(2)}
	ZeroModP = ElementModP{v: big.NewInt(0)}
	OneModP  = ElementModP{v: big.NewInt(1)}
	TwoModP  = ElementModP{v: big.NewInt(2)}
)

// Int returns the element's value as a *big.Int. Callers must not mutate
// the result.
func (e ElementModP) Int() *big.Int { return e.v }

// Int returns the element's value as a *big.Int. Callers must not mutate
// the result.
func (e ElementModQ) Int() *big.Int { return e.v }

// Equals reports whether the two elements hold the same value.
func (e ElementModP) Equals(o ElementModP) bool { return e.v.Cmp(o.v) == 0 }

// Equals reports whether the two elements hold the same value.
func (e ElementModQ) Equals(o ElementModQ) bool { return e.v.Cmp(o.v) == 0 }

// IsZero reports whether the element is the additive identity.
func (e ElementModQ) IsZero() bool { return e.v.Sign() == 0 }

// InBounds reports whether the element lies in [0, Q).
func (e ElementModQ) InBounds() bool { return e.v.Sign() >= 0 && e.v.Cmp(Q) < 0 }

// InBoundsNoZero reports whether the element lies in [1, Q).
func (e ElementModQ) InBoundsNoZero() bool { return e.v.Sign() > 0 && e.v.Cmp(Q) < 0 }

// InBounds reports whether the element lies in [0, P).
func (e ElementModP) InBounds() bool { return e.v.Sign() >= 0 && e.v.Cmp(P) < 0 }

// IsValidResidue reports whether the element lies in [0,P) and satisfies
// a^Q ≡ 1 (mod P), i.e. it is an element of the order-Q subgroup
// (spec.md §3 invariant 1).
func (e ElementModP) IsValidResidue() bool {
	if !e.InBounds() {
		return false
	}
	r := new(big.Int).Exp(e.v, Q, P)
	return r.Cmp(big.NewInt(1)) == 0
}

// String renders the zero-padded lowercase hex form used on the wire
// (spec.md §6): 1024 hex digits for ElementModP.
func (e ElementModP) String() string { return toHex(e.v, 1024) }

// String renders the zero-padded lowercase hex form used on the wire
// (spec.md §6): 64 hex digits for ElementModQ.
func (e ElementModQ) String() string { return toHex(e.v, 64) }

func toHex(v *big.Int, width int) string {
	s := v.Text(16)
	if len(s) < width {
		s = pad(width-len(s)) + s
	}
	return s
}

func pad(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '0'
	}
	return string(b)
}

// MarshalJSON renders the element as its zero-padded hex string
// (spec.md §6: "lowercase, zero-padded to the field width... no leading
// 0x").
func (e ElementModP) MarshalJSON() ([]byte, error) {
	return []byte(`"` + e.String() + `"`), nil
}

// UnmarshalJSON parses a zero-padded hex string into an ElementModP,
// rejecting a value outside [0, P).
func (e *ElementModP) UnmarshalJSON(data []byte) error {
	v, err := hexJSONToBigInt(data)
	if err != nil {
		return err
	}
	parsed, err := NewElementModP(v)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// MarshalJSON renders the element as its zero-padded hex string.
func (e ElementModQ) MarshalJSON() ([]byte, error) {
	return []byte(`"` + e.String() + `"`), nil
}

// UnmarshalJSON parses a zero-padded hex string into an ElementModQ,
// rejecting a value outside [0, Q).
func (e *ElementModQ) UnmarshalJSON(data []byte) error {
	v, err := hexJSONToBigInt(data)
	if err != nil {
		return err
	}
	parsed, err := NewElementModQ(v)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

func hexJSONToBigInt(data []byte) (*big.Int, error) {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return nil, fmt.Errorf("group: malformed hex JSON string %q: %w", s, egerror.ErrInvalidElement)
	}
	s = s[1 : len(s)-1]
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return nil, fmt.Errorf("group: invalid hex string %q: %w", s, egerror.ErrInvalidElement)
	}
	return v, nil
}

// NewElementModP validates and wraps v as an ElementModP. It fails with
// egerror.ErrInvalidElement if v is out of [0, P).
func NewElementModP(v *big.Int) (ElementModP, error) {
	if v.Sign() < 0 || v.Cmp(P) >= 0 {
		return ElementModP{}, fmt.Errorf("group: value out of [0,P): %w", egerror.ErrInvalidElement)
	}
	return ElementModP{v: new(big.Int).Set(v)}, nil
}

// NewElementModQ validates and wraps v as an ElementModQ. It fails with
// egerror.ErrInvalidElement if v is out of [0, Q).
func NewElementModQ(v *big.Int) (ElementModQ, error) {
	if v.Sign() < 0 || v.Cmp(Q) >= 0 {
		return ElementModQ{}, fmt.Errorf("group: value out of [0,Q): %w", egerror.ErrInvalidElement)
	}
	return ElementModQ{v: new(big.Int).Set(v)}, nil
}

// ModQ reduces an arbitrary integer modulo Q, always succeeding (used for
// e.g. reducing a sequence_order into Z_q per spec.md §4.4).
func ModQ(v *big.Int) ElementModQ {
	r := new(big.Int).Mod(v, Q)
	return ElementModQ{v: r}
}

// IntModQ reduces a plain int (e.g. a guardian's sequence_order) modulo Q.
func IntModQ(n int) ElementModQ {
	return ModQ(big.NewInt(int64(n)))
}

// HexToP parses a zero-padded hex string into an ElementModP.
func HexToP(hexStr string) (ElementModP, error) {
	v, ok := new(big.Int).SetString(hexStr, 16)
	if !ok {
		return ElementModP{}, fmt.Errorf("group: malformed hex: %w", egerror.ErrInvalidElement)
	}
	return NewElementModP(v)
}

// HexToQ parses a zero-padded hex string into an ElementModQ.
func HexToQ(hexStr string) (ElementModQ, error) {
	v, ok := new(big.Int).SetString(hexStr, 16)
	if !ok {
		return ElementModQ{}, fmt.Errorf("group: malformed hex: %w", egerror.ErrInvalidElement)
	}
	return NewElementModQ(v)
}

// AddQ computes the sum of the given elements mod Q.
func AddQ(elems ...ElementModQ) ElementModQ {
	sum := new(big.Int)
	for _, e := range elems {
		sum.Add(sum, e.v)
		sum.Mod(sum, Q)
	}
	return ElementModQ{v: sum}
}

// AMinusBQ computes (a-b) mod q.
func AMinusBQ(a, b ElementModQ) ElementModQ {
	r := new(big.Int).Sub(a.v, b.v)
	r.Mod(r, Q)
	return ElementModQ{v: r}
}

// APlusBCQ computes (a + b*c) mod q.
func APlusBCQ(a, b, c ElementModQ) ElementModQ {
	bc := new(big.Int).Mul(b.v, c.v)
	r := new(big.Int).Add(a.v, bc)
	r.Mod(r, Q)
	return ElementModQ{v: r}
}

// NegateQ computes (Q - a) mod q.
func NegateQ(a ElementModQ) ElementModQ {
	r := new(big.Int).Sub(Q, a.v)
	r.Mod(r, Q)
	return ElementModQ{v: r}
}

// MultQ computes the product, mod q, of all elements. The empty product is 1.
func MultQ(elems ...ElementModQ) ElementModQ {
	product := big.NewInt(1)
	for _, e := range elems {
		product.Mul(product, e.v)
		product.Mod(product, Q)
	}
	return ElementModQ{v: product}
}

// MultP computes the product, mod p, of all elements. The empty product is 1.
func MultP(elems ...ElementModP) ElementModP {
	product := big.NewInt(1)
	for _, e := range elems {
		product.Mul(product, e.v)
		product.Mod(product, P)
	}
	return ElementModP{v: product}
}

// PowP computes b^e mod p in variable time. This package has no
// constant-time exponentiation: call sites with secret exponents use this
// function (and GPowP) as well.
func PowP(b ElementModP, e ElementModQ) ElementModP {
	r := new(big.Int).Exp(b.v, e.v, P)
	return ElementModP{v: r}
}

// PowPInt computes b^e mod p for an arbitrary non-negative exponent,
// used where the exponent is a sequence_order or similar small int rather
// than an ElementModQ (spec.md §4.4 polynomial evaluation).
func PowPInt(b ElementModP, e *big.Int) ElementModP {
	r := new(big.Int).Exp(b.v, e, P)
	return ElementModP{v: r}
}

// PowQ computes b^e mod q.
func PowQ(b, e ElementModQ) ElementModQ {
	r := new(big.Int).Exp(b.v, e.v, Q)
	return ElementModQ{v: r}
}

// GPowP computes G^e mod P, the hot path for this package's callers
// (spec.md §4.1).
func GPowP(e ElementModQ) ElementModP {
	r := new(big.Int).Exp(G, e.v, P)
	return ElementModP{v: r}
}

// MultInvP computes the multiplicative inverse of e mod P. e must be
// nonzero.
func MultInvP(e ElementModP) (ElementModP, error) {
	if e.v.Sign() == 0 {
		return ElementModP{}, fmt.Errorf("group: no multiplicative inverse for zero: %w", egerror.ErrInvariantViolation)
	}
	r := new(big.Int).ModInverse(e.v, P)
	if r == nil {
		return ElementModP{}, fmt.Errorf("group: element not invertible mod P: %w", egerror.ErrInvariantViolation)
	}
	return ElementModP{v: r}, nil
}

// MultInvQ computes the multiplicative inverse of e mod Q. e must be
// nonzero.
func MultInvQ(e ElementModQ) (ElementModQ, error) {
	if e.v.Sign() == 0 {
		return ElementModQ{}, fmt.Errorf("group: no multiplicative inverse for zero: %w", egerror.ErrInvariantViolation)
	}
	r := new(big.Int).ModInverse(e.v, Q)
	if r == nil {
		return ElementModQ{}, fmt.Errorf("group: element not invertible mod Q: %w", egerror.ErrInvariantViolation)
	}
	return ElementModQ{v: r}, nil
}

// DivP computes a/b mod p.
func DivP(a, b ElementModP) (ElementModP, error) {
	inv, err := MultInvP(b)
	if err != nil {
		return ElementModP{}, err
	}
	return MultP(a, inv), nil
}

// DivQ computes a/b mod q.
func DivQ(a, b ElementModQ) (ElementModQ, error) {
	inv, err := MultInvQ(b)
	if err != nil {
		return ElementModQ{}, err
	}
	return MultQ(a, inv), nil
}

// streamReader adapts a cipher.Stream to io.Reader by XOR-ing the stream's
// keystream over a zeroed buffer, yielding the stream's raw random output.
type streamReader struct {
	s cipher.Stream
}

func (r streamReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	r.s.XORKeyStream(p, p)
	return len(p), nil
}

// entropySource is the io.Reader fed into rejection-sampling below. It
// wraps go.dedis.ch/kyber/v3/util/random.New() the same way
// evoting/lib/elgamal.go and container.go obtain randomness for
// Suite.Scalar().Pick(...) and shuffle.Shuffle(...); random.New() returns a
// cipher.Stream seeded from the OS CSPRNG, which streamReader exposes as an
// io.Reader.
var entropySource io.Reader = streamReader{random.New()}

// RandQ samples a uniformly random element of [0, Q) using a
// cryptographically secure source.
func RandQ() (ElementModQ, error) {
	v, err := rand.Int(entropySource, Q)
	if err != nil {
		return ElementModQ{}, fmt.Errorf("group: sampling failed: %w", err)
	}
	return ElementModQ{v: v}, nil
}

// RandRangeQ samples a uniformly random element of [start, Q), retrying
// until the sample clears start (mirrors original_source's rand_range_q,
// which rejection-samples against the full range and retries below start).
func RandRangeQ(start ElementModQ) (ElementModQ, error) {
	for {
		v, err := rand.Int(entropySource, Q)
		if err != nil {
			return ElementModQ{}, fmt.Errorf("group: sampling failed: %w", err)
		}
		if v.Cmp(start.v) >= 0 {
			return ElementModQ{v: v}, nil
		}
	}
}
