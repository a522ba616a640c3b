/*
Copyright 2026 The Vitess Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package succinct

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// naive is a reference implementation over a plain slice.
type naive struct {
	bits  []bool
	ranks []int // set bits before each position
	ones  []int
	zeros []int
}

func newNaive(bits []bool) *naive {
	n := &naive{bits: bits, ranks: make([]int, len(bits)+1)}
	for i, bit := range bits {
		n.ranks[i+1] = n.ranks[i]
		if bit {
			n.ranks[i+1]++
			n.ones = append(n.ones, i)
		} else {
			n.zeros = append(n.zeros, i)
		}
	}
	return n
}

func (n *naive) rank(value bool, pos int) int {
	if value {
		return n.ranks[pos]
	}
	return pos - n.ranks[pos]
}

func (n *naive) sel(value bool, k int) int {
	positions := n.zeros
	if value {
		positions = n.ones
	}
	if k < len(positions) {
		return positions[k]
	}
	return len(n.bits)
}

func randomBits(r *rand.Rand, n int, density float64) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = r.Float64() < density
	}
	return out
}

func TestBitsetSmall(t *testing.T) {
	bs := New([]bool{true, false, true, true, false})

	assert.Equal(t, 5, bs.Size())
	assert.Equal(t, 3, bs.Count())
	assert.True(t, bs.At(0))
	assert.False(t, bs.At(1))
	assert.False(t, bs.At(-1))
	assert.False(t, bs.At(5))

	assert.Equal(t, []int{0, 1, 1, 2, 3, 3}, []int{bs.Rank1(0), bs.Rank1(1), bs.Rank1(2), bs.Rank1(3), bs.Rank1(4), bs.Rank1(5)})
	assert.Equal(t, 2, bs.Rank0(5))
	assert.Equal(t, 3, bs.Rank1(100))
	assert.Equal(t, 0, bs.Rank1(-3))

	assert.Equal(t, 0, bs.Select1(0))
	assert.Equal(t, 2, bs.Select1(1))
	assert.Equal(t, 3, bs.Select1(2))
	assert.Equal(t, 5, bs.Select1(3))
	assert.Equal(t, 1, bs.Select0(0))
	assert.Equal(t, 4, bs.Select0(1))
	assert.Equal(t, 5, bs.Select0(2))
	assert.Equal(t, 5, bs.Select(true, -1))

	assert.Equal(t, []int{0, 2, 3}, slices.Collect(bs.Ones()))
}

func TestBitsetEmpty(t *testing.T) {
	for _, bs := range []*Bitset{New(nil), Build(slices.Values([]bool{}))} {
		assert.Equal(t, 0, bs.Size())
		assert.Equal(t, 0, bs.Count())
		assert.Equal(t, 0, bs.Rank1(0))
		assert.Equal(t, 0, bs.Rank0(0))
		assert.Equal(t, 0, bs.Select1(0))
		assert.Equal(t, 0, bs.Select0(0))
		assert.Empty(t, slices.Collect(bs.Ones()))
	}
}

func TestBitsetAgainstNaive(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	sizes := []int{1, 63, 64, 65, 127, 128, superBits - 1, superBits, superBits + 1, 3*superBits + 17, 10000}
	densities := []float64{0, 0.02, 0.5, 0.97, 1}

	for _, n := range sizes {
		for _, d := range densities {
			ref := newNaive(randomBits(r, n, d))
			bs := New(ref.bits)

			require.Equal(t, n, bs.Size())
			require.Equal(t, ref.rank(true, n), bs.Count())
			for pos := 0; pos <= n; pos++ {
				require.Equal(t, ref.rank(true, pos), bs.Rank1(pos), "n=%d d=%v rank1(%d)", n, d, pos)
				require.Equal(t, ref.rank(false, pos), bs.Rank0(pos), "n=%d d=%v rank0(%d)", n, d, pos)
			}
			ones := bs.Count()
			for k := 0; k <= ones; k++ {
				require.Equal(t, ref.sel(true, k), bs.Select1(k), "n=%d d=%v select1(%d)", n, d, k)
			}
			for k := 0; k <= n-ones; k++ {
				require.Equal(t, ref.sel(false, k), bs.Select0(k), "n=%d d=%v select0(%d)", n, d, k)
			}
		}
	}
}

func TestRankSelectInverse(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	bs := New(randomBits(r, 5*superBits+333, 0.3))

	for k := range bs.Count() {
		p := bs.Select1(k)
		require.True(t, bs.At(p))
		require.Equal(t, k, bs.Rank1(p))
	}
	for k := range bs.Size() - bs.Count() {
		p := bs.Select0(k)
		require.False(t, bs.At(p))
		require.Equal(t, k, bs.Rank0(p))
	}
	for pos := range bs.Size() {
		if bs.At(pos) {
			require.Equal(t, pos, bs.Select1(bs.Rank1(pos)))
		} else {
			require.Equal(t, pos, bs.Select0(bs.Rank0(pos)))
		}
		require.Equal(t, pos, bs.Rank1(pos)+bs.Rank0(pos))
	}
}

func TestBuilderMatchesNew(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	in := randomBits(r, 2*superBits+5, 0.5)

	var b Builder
	for _, bit := range in {
		b.Append(bit)
	}
	require.Equal(t, len(in), b.Len())
	built := b.Finish()
	assert.Equal(t, New(in), built)
	assert.Equal(t, New(in), Build(slices.Values(in)))
	assert.Equal(t, 0, b.Len())
}

func TestSparseSuperblocks(t *testing.T) {
	// Whole superblocks without a single set bit.
	in := make([]bool, 4*superBits)
	in[5] = true
	in[3*superBits+1] = true
	bs := New(in)

	assert.Equal(t, 5, bs.Select1(0))
	assert.Equal(t, 3*superBits+1, bs.Select1(1))
	assert.Equal(t, 1, bs.Rank1(3*superBits+1))
	assert.Equal(t, 2, bs.Rank1(3*superBits+2))
	assert.Equal(t, 3*superBits+2, bs.Select0(3*superBits))
	assert.Equal(t, []int{5, 3*superBits + 1}, slices.Collect(bs.Ones()))
}

func TestOnesEarlyExit(t *testing.T) {
	bs := New([]bool{true, true, true})
	var got []int
	for p := range bs.Ones() {
		got = append(got, p)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []int{0, 1}, got)
}

func TestSizeBytes(t *testing.T) {
	small := New(make([]bool, 64))
	large := New(make([]bool, 64*superBits))
	assert.Greater(t, large.SizeBytes(), small.SizeBytes())
	// One uint64 per word plus one uint16 per word of index at minimum.
	assert.GreaterOrEqual(t, large.SizeBytes(), 64*superBits/8+64*superBits/32)
}
