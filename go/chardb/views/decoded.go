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

package views

import (
	"iter"

	"github.com/chardb/chardb/go/chardb/codec"
	"github.com/chardb/chardb/go/chardb/succinct"
)

// Decoded is a random access view over base. Every unit offset that starts a
// valid character is marked in a succinct bitset, so the r-th character is
// found with a single select.
//
// The r-th character spans from its start to the start of the next one, or to
// the end of base for the last one. Units that start no character are
// therefore attached to the character before them, and units before the first
// character belong to none. A Decoded is immutable and safe for concurrent
// use.
type Decoded[C codec.Codec[U], U codec.Unit] struct {
	base []U
	book *succinct.Bitset
}

// NewDecoded indexes base in one pass.
func NewDecoded[C codec.Codec[U], U codec.Unit](base []U) *Decoded[C, U] {
	var b succinct.Builder
	b.Grow(len(base))
	for i := range base {
		b.Append(codec.StartsWithValidChar[C](base[i:]))
	}
	return &Decoded[C, U]{base: base, book: b.Finish()}
}

// Base returns the underlying sequence.
func (d *Decoded[C, U]) Base() []U {
	return d.base
}

// Len returns the number of characters.
func (d *Decoded[C, U]) Len() int {
	return d.book.Count()
}

// At returns the units of the r-th character, or nil if r is out of range.
func (d *Decoded[C, U]) At(r int) []U {
	if r < 0 || r >= d.Len() {
		return nil
	}
	// Select1 returns len(base) past the last character.
	return d.base[d.book.Select1(r):d.book.Select1(r+1)]
}

// Offset returns the unit offset of the r-th character. r is clamped to
// [0, Len()]; Offset(Len()) is len(base).
func (d *Decoded[C, U]) Offset(r int) int {
	return d.book.Select1(max(r, 0))
}

// IndexOf returns the rank of the character covering the unit at offset, or
// -1 if offset is out of range or precedes the first character.
func (d *Decoded[C, U]) IndexOf(offset int) int {
	if offset < 0 || offset >= len(d.base) {
		return -1
	}
	return d.book.Rank1(offset+1) - 1
}

// CodePoint returns the code point of the r-th character, or codec.RuneError
// if r is out of range.
func (d *Decoded[C, U]) CodePoint(r int) rune {
	ch := d.At(r)
	if ch == nil {
		return codec.RuneError
	}
	var c C
	return c.ToCodePoint(ch)
}

// Slice returns the units of characters [from, to). Both bounds are clamped
// to [0, Len()].
func (d *Decoded[C, U]) Slice(from, to int) []U {
	n := d.Len()
	from = min(max(from, 0), n)
	to = min(max(to, from), n)
	return d.base[d.Offset(from):d.Offset(to)]
}

// IndexSize returns the memory held by the character index.
func (d *Decoded[C, U]) IndexSize() int {
	return d.book.SizeBytes()
}

// All yields the rank and units of each character in order.
func (d *Decoded[C, U]) All() iter.Seq2[int, []U] {
	return func(yield func(int, []U) bool) {
		for r := range d.Len() {
			if !yield(r, d.At(r)) {
				return
			}
		}
	}
}

// Backward yields the rank and units of each character in reverse order.
func (d *Decoded[C, U]) Backward() iter.Seq2[int, []U] {
	return func(yield func(int, []U) bool) {
		for r := d.Len() - 1; r >= 0; r-- {
			if !yield(r, d.At(r)) {
				return
			}
		}
	}
}

// Begin returns a cursor on the first character.
func (d *Decoded[C, U]) Begin() RankCursor[C, U] {
	return RankCursor[C, U]{view: d}
}

// End returns the cursor past the last character.
func (d *Decoded[C, U]) End() RankCursor[C, U] {
	return RankCursor[C, U]{view: d, rank: d.Len()}
}

// RankCursor is a position in a Decoded, identified by character rank.
type RankCursor[C codec.Codec[U], U codec.Unit] struct {
	view *Decoded[C, U]
	rank int
}

// Rank returns the rank of the character under the cursor.
func (c RankCursor[C, U]) Rank() int {
	return c.rank
}

// Done reports whether the cursor is past the last character.
func (c RankCursor[C, U]) Done() bool {
	return c.rank >= c.view.Len()
}

// Char returns the units under the cursor, or nil at the end.
func (c RankCursor[C, U]) Char() []U {
	return c.view.At(c.rank)
}

// Offset returns the unit offset of the character under the cursor.
func (c RankCursor[C, U]) Offset() int {
	return c.view.Offset(c.rank)
}

// CodePoint returns the code point under the cursor.
func (c RankCursor[C, U]) CodePoint() rune {
	return c.view.CodePoint(c.rank)
}

// Next moves the cursor forward by one character, stopping at the end.
func (c RankCursor[C, U]) Next() RankCursor[C, U] {
	return c.Seek(1)
}

// Prev moves the cursor back by one character, stopping at the first.
func (c RankCursor[C, U]) Prev() RankCursor[C, U] {
	return c.Seek(-1)
}

// Seek moves the cursor by delta characters, clamped to [0, Len()].
func (c RankCursor[C, U]) Seek(delta int) RankCursor[C, U] {
	c.rank = min(max(c.rank+delta, 0), c.view.Len())
	return c
}

// Equal reports whether both cursors are at the same rank of the same view.
func (c RankCursor[C, U]) Equal(o RankCursor[C, U]) bool {
	return c.view == o.view && c.rank == o.rank
}
