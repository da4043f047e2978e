package elgamal

import (
	"fmt"
	"sync"

	"github.com/Election-Tech-Initiative/electionguard-go/config"
	"github.com/Election-Tech-Initiative/electionguard-go/egerror"
	"github.com/Election-Tech-Initiative/electionguard-go/group"
)

// dlogCache maps G^t (hex-encoded so group.ElementModP works as a map
// key) to its exponent t. It is the sole piece of shared mutable state in
// this module (spec.md §9): insertion is guarded by mu so concurrent
// readers never observe a partially-populated entry, and the cache only
// grows, never shrinks.
//
// Grounded on
// _examples/original_source/src/electionguard/discrete_log.py's module
// level DiscreteLogCache / _INITIAL_CACHE, generalized from a package
// singleton into a struct so tests can exercise it against small test
// groups without cross-contaminating the production cache.
type dlogCache struct {
	mu      sync.Mutex
	values  map[string]int
	largest int
	top     group.ElementModP
}

func newDlogCache() *dlogCache {
	return &dlogCache{
		values:  map[string]int{group.OneModP.String(): 0},
		largest: 0,
		top:     group.OneModP,
	}
}

var defaultCache = newDlogCache()

// DiscreteLog recovers the exponent t such that G^t == element, bounded
// by config.BoundedDlogMax (spec.md §4.9). It is safe for concurrent use.
func DiscreteLog(element group.ElementModP) (int, error) {
	return defaultCache.discreteLog(element, config.BoundedDlogMax())
}

// DiscreteLogBounded recovers the exponent t such that G^t == element,
// bounded by an explicit ceiling rather than config.BoundedDlogMax. The
// decryption package uses this with T_max set to the tally's cast ballot
// count (spec.md §4.9: "populations never exceed this"), since that
// bound is per-election, not a process-wide default.
func DiscreteLogBounded(element group.ElementModP, maxExponent int) (int, error) {
	return defaultCache.discreteLog(element, maxExponent)
}

// ResetDiscreteLogCacheForTest clears the package-level memoization
// table. Production code never calls this; it exists so _test.go files
// that swap group constants via group.UseTestConstants don't leak cache
// entries computed under a different G across test cases.
func ResetDiscreteLogCacheForTest() {
	defaultCache = newDlogCache()
}

func (c *dlogCache) discreteLog(element group.ElementModP, maxExponent int) (int, error) {
	key := element.String()

	c.mu.Lock()
	if t, ok := c.values[key]; ok {
		c.mu.Unlock()
		return t, nil
	}
	exponent := c.largest
	cur := c.top
	c.mu.Unlock()

	for exponent < maxExponent {
		exponent++
		cur = group.MultP(cur, gAsElementModP())
		curKey := cur.String()

		c.mu.Lock()
		if _, ok := c.values[curKey]; !ok {
			c.values[curKey] = exponent
			c.largest = exponent
			c.top = cur
		}
		found := curKey == key
		c.mu.Unlock()

		if found {
			return exponent, nil
		}
	}
	return 0, fmt.Errorf("elgamal: discrete log exceeded max exponent %d: %w", maxExponent, egerror.ErrTallyOutOfRange)
}

func gAsElementModP() group.ElementModP {
	e, err := group.NewElementModP(group.G)
	if err != nil {
		panic(fmt.Errorf("elgamal: generator out of bounds: %w", err))
	}
	return e
}
