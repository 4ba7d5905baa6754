package dist

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRand(seed byte) *rand.Rand {
	var key [32]byte
	key[0] = seed
	return rand.New(rand.NewChaCha8(key))
}

func TestChooseWeightedRespectsWeights(t *testing.T) {
	r := newRand(1)
	counts := map[string]int{}
	items := []string{"a", "b", "c"}
	weights := []float64{0.7, 0.2, 0.1}
	const n = 20000
	for i := 0; i < n; i++ {
		counts[ChooseWeighted(r, items, weights)]++
	}
	for i, item := range items {
		got := float64(counts[item]) / n
		assert.InDelta(t, weights[i], got, 0.02, "item %s", item)
	}
}

func TestChooseFromMapIsSeedStable(t *testing.T) {
	w := map[string]float64{"x": 0.3, "y": 0.3, "z": 0.4}
	a, b := newRand(2), newRand(2)
	for i := 0; i < 100; i++ {
		require.Equal(t, ChooseFromMap(a, w), ChooseFromMap(b, w), "draw %d", i)
	}
}

func TestBernoulliRate(t *testing.T) {
	r := newRand(3)
	hits := 0
	const n = 20000
	for i := 0; i < n; i++ {
		if Bernoulli(r, 0.15) {
			hits++
		}
	}
	assert.InDelta(t, 0.15, float64(hits)/n, 0.02)
}

func TestIntBetweenBounds(t *testing.T) {
	r := newRand(4)
	for i := 0; i < 10000; i++ {
		v := IntBetween(r, 3, 9)
		require.GreaterOrEqual(t, v, 3)
		require.LessOrEqual(t, v, 9)
	}
	assert.Equal(t, 5, IntBetween(r, 5, 5))
	assert.Equal(t, 5, IntBetween(r, 5, 2))
}

func TestCountAroundStaysInBand(t *testing.T) {
	r := newRand(5)
	const target, tol = 1000, 0.2
	lo := int(math.Floor(target * (1 - tol)))
	hi := int(math.Ceil(target * (1 + tol)))
	for i := 0; i < 5000; i++ {
		v := CountAround(r, target, tol)
		require.GreaterOrEqual(t, v, lo)
		require.LessOrEqual(t, v, hi)
	}
	assert.Equal(t, 0, CountAround(r, 0, tol))
}

func TestZipfWeightsSkew(t *testing.T) {
	ws := ZipfWeights(20, 1.5)
	require.Len(t, ws, 20)
	sum := 0.0
	for _, w := range ws {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	head := ws[0] + ws[1] + ws[2] + ws[3]
	assert.Greater(t, head, 0.5, "top 20%% of ranks should carry most of the mass")
}

func TestAssignmentWeightsSeniorBoost(t *testing.T) {
	// With identical rank weights, boosted slots must outweigh unboosted ones
	// on average over many shuffles.
	seniorTotal, juniorTotal := 0.0, 0.0
	r := newRand(6)
	senior := []bool{true, false, true, false, true, false}
	for trial := 0; trial < 2000; trial++ {
		ws := AssignmentWeights(r, len(senior), 1.5, senior, 1.75)
		for i, w := range ws {
			if senior[i] {
				seniorTotal += w
			} else {
				juniorTotal += w
			}
		}
	}
	assert.Greater(t, seniorTotal, juniorTotal)
}
