// Package ghash implements the canonical cryptographic hash ElectionGuard
// uses to build Fiat-Shamir challenges and chained record hashes
// (spec.md §4.2).
//
// Grounded on _examples/original_source/src/electionguard/hash.py's
// hash_elems: the pipe-delimited SHA-256 accumulation and the per-type
// encoding rules are carried over verbatim, with the fixed-width hex
// encoding from group.ElementModP/Q.String() standing in for Python's
// to_hex() (pinned by DESIGN.md Open Question (b)).
package ghash

import (
	"crypto/sha256"
	"math/big"
	"strconv"

	"github.com/Election-Tech-Initiative/electionguard-go/group"
)

// Hashable is implemented by any compound value with its own canonical
// hash, mirroring hash.py's CryptoHashable protocol.
type Hashable interface {
	CryptoHash() group.ElementModQ
}

// Elems computes the canonical hash of the given elements. Accepted
// element types are group.ElementModP, group.ElementModQ, string, int,
// uint64, Hashable, nil (encoded as the literal "null"), and the slices
// []string, []group.ElementModP, []group.ElementModQ and []interface{}
// (each hashed recursively, an empty one encoded as "null"). An argument
// of any other type is encoded as "0".
//
// Go has no clean equivalent of Python's runtime isinstance dispatch over
// a Union type, so callers pass pre-rendered strings or typed wrappers;
// Elems itself only inspects the argument types listed above.
func Elems(a ...interface{}) group.ElementModQ {
	h := sha256.New()
	h.Write([]byte("|"))
	for _, x := range a {
		h.Write([]byte(elemString(x) + "|"))
	}
	digest := h.Sum(nil)
	return group.ModQ(new(big.Int).SetBytes(digest))
}

func elemString(x interface{}) string {
	switch v := x.(type) {
	case nil:
		return "null"
	case group.ElementModP:
		return v.String()
	case group.ElementModQ:
		return v.String()
	case Hashable:
		return v.CryptoHash().String()
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case uint64:
		return strconv.FormatUint(v, 10)
	case []string:
		if len(v) == 0 {
			return "null"
		}
		args := make([]interface{}, len(v))
		for i, s := range v {
			args[i] = s
		}
		return Elems(args...).String()
	case []group.ElementModQ:
		if len(v) == 0 {
			return "null"
		}
		args := make([]interface{}, len(v))
		for i, e := range v {
			args[i] = e
		}
		return Elems(args...).String()
	case []group.ElementModP:
		if len(v) == 0 {
			return "null"
		}
		args := make([]interface{}, len(v))
		for i, e := range v {
			args[i] = e
		}
		return Elems(args...).String()
	case []interface{}:
		if len(v) == 0 {
			return "null"
		}
		return Elems(v...).String()
	default:
		return strconv.Itoa(0)
	}
}
