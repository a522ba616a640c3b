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

// Package succinct implements an immutable bit vector with constant time rank
// and index-bounded select.
//
// Bits are packed into 64-bit words. Two levels of precomputed counts sit on
// top of them: L1 holds, for each superblock of 4096 bits, the number of set
// bits before the superblock, and L2 holds, for each word, the number of set
// bits between the start of its superblock and the word. For any position p:
//
//	Rank1(p) = L1[p/4096] + L2[p/64] + popcount(word[p/64] & mask(p%64))
//
// Only set bits are counted; counts of zeros are derived from positions.
package succinct

import (
	"iter"
	"math/bits"
	"sort"
	"unsafe"
)

const (
	wordBits       = 64
	blocksPerSuper = 64
	superBits      = blocksPerSuper * wordBits
)

// A Bitset is an immutable sequence of bits indexed for rank and select. It is
// safe for concurrent use once built.
type Bitset struct {
	n     int
	count int

	words []uint64
	l1    []int
	l2    []uint16
}

// Builder accumulates bits in a single linear pass. The zero value is ready
// to use.
type Builder struct {
	n     int
	count int

	word  uint64
	words []uint64
	l1    []int
	l2    []uint16
	inner int
}

// Grow reserves room for n more bits.
func (b *Builder) Grow(n int) {
	words := (b.n + n + wordBits - 1) / wordBits
	if words > cap(b.words) {
		b.words = append(make([]uint64, 0, words), b.words...)
		b.l2 = append(make([]uint16, 0, words), b.l2...)
	}
}

// Append adds a bit at position Len().
func (b *Builder) Append(bit bool) {
	pos := b.n % wordBits
	if pos == 0 {
		if b.n%superBits == 0 {
			b.l1 = append(b.l1, b.count)
			b.inner = 0
		}
		b.l2 = append(b.l2, uint16(b.inner))
	}
	if bit {
		b.word |= 1 << pos
		b.count++
		b.inner++
	}
	b.n++
	if b.n%wordBits == 0 {
		b.words = append(b.words, b.word)
		b.word = 0
	}
}

// Len returns the number of bits appended so far.
func (b *Builder) Len() int {
	return b.n
}

// Finish returns the indexed bitset. The builder must not be used afterwards.
func (b *Builder) Finish() *Bitset {
	if b.n%wordBits != 0 {
		b.words = append(b.words, b.word)
	}
	bs := &Bitset{
		n:     b.n,
		count: b.count,
		words: b.words[:len(b.words):len(b.words)],
		l1:    b.l1,
		l2:    b.l2,
	}
	*b = Builder{}
	return bs
}

// New builds a bitset from a slice of known length.
func New(bits []bool) *Bitset {
	var b Builder
	b.Grow(len(bits))
	for _, bit := range bits {
		b.Append(bit)
	}
	return b.Finish()
}

// Build builds a bitset from a sequence of unknown length.
func Build(seq iter.Seq[bool]) *Bitset {
	var b Builder
	for bit := range seq {
		b.Append(bit)
	}
	return b.Finish()
}

// Size returns the number of bits.
func (bs *Bitset) Size() int {
	return bs.n
}

// Count returns the number of set bits.
func (bs *Bitset) Count() int {
	return bs.count
}

// At returns the bit at pos, or false if pos is out of range.
func (bs *Bitset) At(pos int) bool {
	if pos < 0 || pos >= bs.n {
		return false
	}
	return bs.words[pos/wordBits]>>(pos%wordBits)&1 != 0
}

// Rank1 returns the number of set bits in [0, pos). pos is clamped to
// [0, Size()].
func (bs *Bitset) Rank1(pos int) int {
	switch {
	case pos <= 0:
		return 0
	case pos >= bs.n:
		return bs.count
	}
	w := pos / wordBits
	r := bs.l1[pos/superBits] + int(bs.l2[w])
	if off := pos % wordBits; off != 0 {
		r += bits.OnesCount64(bs.words[w] & (1<<off - 1))
	}
	return r
}

// Rank0 returns the number of clear bits in [0, pos). pos is clamped to
// [0, Size()].
func (bs *Bitset) Rank0(pos int) int {
	pos = min(max(pos, 0), bs.n)
	return pos - bs.Rank1(pos)
}

// Rank returns the number of bits equal to value in [0, pos).
func (bs *Bitset) Rank(value bool, pos int) int {
	if value {
		return bs.Rank1(pos)
	}
	return bs.Rank0(pos)
}

// Select1 returns the position of the (k+1)-th set bit, or Size() if there
// are not that many.
func (bs *Bitset) Select1(k int) int {
	if k < 0 || k >= bs.count {
		return bs.n
	}
	// The last superblock whose preceding count does not exceed k.
	s := sort.Search(len(bs.l1), func(i int) bool { return bs.l1[i] > k }) - 1
	k -= bs.l1[s]

	w := s * blocksPerSuper
	for end := min(w+blocksPerSuper, len(bs.l2)); w+1 < end && int(bs.l2[w+1]) <= k; {
		w++
	}
	k -= int(bs.l2[w])
	return w*wordBits + selectInWord(bs.words[w], k)
}

// Select0 returns the position of the (k+1)-th clear bit, or Size() if there
// are not that many.
func (bs *Bitset) Select0(k int) int {
	if k < 0 || k >= bs.n-bs.count {
		return bs.n
	}
	// Clear bits before superblock i are i*superBits - l1[i].
	s := sort.Search(len(bs.l1), func(i int) bool { return i*superBits-bs.l1[i] > k }) - 1
	k -= s*superBits - bs.l1[s]

	w := s * blocksPerSuper
	zerosBefore := func(w int) int {
		return (w-s*blocksPerSuper)*wordBits - int(bs.l2[w])
	}
	for end := min(w+blocksPerSuper, len(bs.l2)); w+1 < end && zerosBefore(w+1) <= k; {
		w++
	}
	k -= zerosBefore(w)
	// Padding past Size() reads as clear, but the k-th clear bit is known to
	// exist before it.
	return w*wordBits + selectInWord(^bs.words[w], k)
}

// Select returns the position of the (k+1)-th bit equal to value.
func (bs *Bitset) Select(value bool, k int) int {
	if value {
		return bs.Select1(k)
	}
	return bs.Select0(k)
}

// Ones yields the position of each set bit in ascending order.
func (bs *Bitset) Ones() iter.Seq[int] {
	return func(yield func(int) bool) {
		// From Lemire, "Iterating over set bits quickly"
		// https://lemire.me/blog/2018/02/21/iterating-over-set-bits-quickly/
		for i, word := range bs.words {
			for word != 0 {
				t := word & -word
				if !yield(i*wordBits + bits.TrailingZeros64(word)) {
					return
				}
				word ^= t
			}
		}
	}
}

// SizeBytes returns the memory held by the bit array and its index.
func (bs *Bitset) SizeBytes() int {
	return int(unsafe.Sizeof(*bs)) +
		len(bs.words)*8 +
		len(bs.l1)*int(unsafe.Sizeof(int(0))) +
		len(bs.l2)*2
}

// selectInWord returns the position of the (k+1)-th set bit of w, which must
// have more than k set bits.
func selectInWord(w uint64, k int) int {
	for ; k > 0; k-- {
		w &= w - 1
	}
	return bits.TrailingZeros64(w)
}
