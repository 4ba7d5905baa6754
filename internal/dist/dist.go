// Package dist is the sampler library behind every entity factory. All
// samplers are pure functions of a rand source and their parameters; the
// source itself is the only state, which keeps the purpose-keyed sub-stream
// independence guarantee intact.
package dist

import (
	"math"
	"math/rand/v2"
	"sort"
)

// ChooseWeighted picks one item; weights need not sum to 1.
func ChooseWeighted[T any](r *rand.Rand, items []T, weights []float64) T {
	if len(items) == 0 {
		panic("dist: ChooseWeighted on empty slice")
	}
	total := 0.0
	for _, w := range weights {
		total += w
	}
	x := r.Float64() * total
	for i, w := range weights {
		x -= w
		if x < 0 {
			return items[i]
		}
	}
	return items[len(items)-1]
}

// ChooseFromMap picks a key from a weight map. Keys are sorted before
// sampling so map iteration order cannot leak into the draw.
func ChooseFromMap(r *rand.Rand, weights map[string]float64) string {
	keys := make([]string, 0, len(weights))
	for k := range weights {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	ws := make([]float64, len(keys))
	for i, k := range keys {
		ws[i] = weights[k]
	}
	return ChooseWeighted(r, keys, ws)
}

func Bernoulli(r *rand.Rand, p float64) bool {
	return r.Float64() < p
}

// IntBetween returns a uniform integer in [lo, hi] inclusive.
func IntBetween(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}

// NormalInt draws from N(mean, std) and clips to [lo, hi].
func NormalInt(r *rand.Rand, mean, std float64, lo, hi int) int {
	v := int(math.Round(r.NormFloat64()*std + mean))
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}

// LogNormalInt draws exp(N(mu, sigma)) and clips to [lo, hi]. Used for team
// sizes, where the clip bounds rule out single-member and unbounded teams.
func LogNormalInt(r *rand.Rand, mu, sigma float64, lo, hi int) int {
	v := int(math.Round(math.Exp(r.NormFloat64()*sigma + mu)))
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}

// CountAround samples an instance count from a normal around target, clipped
// to the tolerance band [target*(1-tol), target*(1+tol)]. Totals vary
// run-to-run but never leave the band.
func CountAround(r *rand.Rand, target int, tol float64) int {
	if target <= 0 {
		return 0
	}
	lo := int(math.Floor(float64(target) * (1 - tol)))
	hi := int(math.Ceil(float64(target) * (1 + tol)))
	if lo < 1 {
		lo = 1
	}
	std := float64(target) * tol / 2
	return NormalInt(r, float64(target), std, lo, hi)
}

// ZipfWeights returns rank-based power-law weights 1/rank^s, normalized.
// Rank 0 is the heaviest; a minority of early ranks carries the majority of
// the mass.
func ZipfWeights(n int, s float64) []float64 {
	if n <= 0 {
		return nil
	}
	ws := make([]float64, n)
	total := 0.0
	for i := range ws {
		ws[i] = 1 / math.Pow(float64(i+1), s)
		total += ws[i]
	}
	for i := range ws {
		ws[i] /= total
	}
	return ws
}

// AssignmentWeights builds the assignee weight vector for a member pool:
// Zipf over a per-pool shuffled rank order, with a multiplicative boost for
// senior members. Shuffling ranks keeps "who is the workhorse" random per
// pool while the skew itself stays power-law.
func AssignmentWeights(r *rand.Rand, n int, exponent float64, senior []bool, boost float64) []float64 {
	base := ZipfWeights(n, exponent)
	ranks := r.Perm(n)
	ws := make([]float64, n)
	for i, rank := range ranks {
		ws[i] = base[rank]
		if i < len(senior) && senior[i] {
			ws[i] *= boost
		}
	}
	return ws
}
