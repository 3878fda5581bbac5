// auction/selector.go
package auction

import "math/rand"

// Selector picks an index in [0, n) from a priority tier of candidate
// players. n is always >= 1. It is injectable so tests can make
// auto-advance deterministic.
type Selector func(n int) int

// RandomSelector picks uniformly at random.
func RandomSelector(n int) int {
	return rand.Intn(n)
}
