package shapley

import (
	"math"
	"math/bits"
	"sync"

	"gonum.org/v1/gonum/stat/combin"
)

const epsilon = 1e-9

// makeWeight returns |S|!(n-|S|-1)!/n! as a function of |S|.
func makeWeight(n int) func(k int) float64 {
	ws := make([]float64, n)
	for k := range n {
		ws[k] = 1 / (float64(n) * float64(combin.Binomial(n-1, k)))
	}
	return func(k int) float64 { return ws[k] }
}

// makeSubsetsIdxs feeds every non-empty coalition of n players to each channel
// and closes them when done.
func makeSubsetsIdxs(n int, powersets []chan uint16) {
	defer func() {
		for _, powerset := range powersets {
			close(powerset)
		}
	}()

	last := (1 << n) - 1
	for set := 1; set <= last; set++ {
		for _, powerset := range powersets {
			powerset <- uint16(set)
		}
	}
}

// Compute returns the Shapley value of every player together with their sum.
// Each player is handled by its own goroutine.
func Compute(g *Game) (map[string]float64, float64) {
	n := len(g.Players)
	vector := make([]float64, n)
	weight := makeWeight(n)

	powersets := make([]chan uint16, n)
	buffer := 1 << (n / 2)
	for ch := range n {
		powersets[ch] = make(chan uint16, buffer)
	}
	go makeSubsetsIdxs(n, powersets)

	var wg sync.WaitGroup
	wg.Add(n)
	for i, bs := range g.Bitset {
		vector[i] = g.Worths[bs] / float64(n)

		go func() {
			defer wg.Done()

			var pSum float64
			for S := range powersets[i] {
				if S&bs != 0 {
					continue
				}
				k := bits.OnesCount16(S)
				// v(S u {i}) - v(S)
				contrib := g.Worths[S|bs] - g.Worths[S]
				pSum += weight(k) * contrib
			}
			vector[i] += pSum
		}()
	}
	wg.Wait()

	var vSum float64
	values := make(map[string]float64, n)
	for i, value := range vector {
		vSum += value
		values[g.Players[i]] = value
	}
	return values, vSum
}

func notEqualsOne(f float64) bool {
	return math.Abs(f-1) > epsilon
}
