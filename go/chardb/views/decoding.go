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

// Package views exposes per-character structure over a code unit sequence
// without copying or decoding it.
//
// Decoding is a lazy, bidirectional walk that finds each boundary on demand.
// Decoded indexes every character start once, in a succinct bitset, and then
// answers positional queries in constant time.
//
// Both views borrow their base slice. The caller must keep it alive and must
// not modify it while a view is in use.
package views

import (
	"iter"

	"github.com/chardb/chardb/go/chardb/codec"
)

// cache holds a lazily computed value.
type cache[T any] struct {
	value T
	ok    bool
}

func (c *cache[T]) get(compute func() T) T {
	if !c.ok {
		c.value = compute()
		c.ok = true
	}
	return c.value
}

// Decoding is a lazy view over base that walks it one character at a time.
//
// The end of the first character is computed once per view. A Decoding is not
// safe for concurrent use; give each goroutine its own Clone.
type Decoding[C codec.Codec[U], U codec.Unit] struct {
	base  []U
	first cache[int]
}

// NewDecoding returns a lazy view over base.
func NewDecoding[C codec.Codec[U], U codec.Unit](base []U) *Decoding[C, U] {
	return &Decoding[C, U]{base: base}
}

// Base returns the underlying sequence.
func (d *Decoding[C, U]) Base() []U {
	return d.base
}

// Clone returns a view over the same sequence with an empty cache.
func (d *Decoding[C, U]) Clone() *Decoding[C, U] {
	return &Decoding[C, U]{base: d.base}
}

// Begin returns a cursor on the first element.
func (d *Decoding[C, U]) Begin() Cursor[C, U] {
	return Cursor[C, U]{
		view: d,
		next: d.first.get(func() int { return d.advance(0) }),
	}
}

// End returns the cursor past the last element.
func (d *Decoding[C, U]) End() Cursor[C, U] {
	return Cursor[C, U]{view: d, current: len(d.base), next: len(d.base)}
}

// Count returns the number of valid characters before the first invalid
// position.
func (d *Decoding[C, U]) Count() int {
	return codec.CharSize[C](d.base)
}

// All yields the offset and units of each character from the front, stopping
// at the first position that does not start a valid character.
func (d *Decoding[C, U]) All() iter.Seq2[int, []U] {
	return func(yield func(int, []U) bool) {
		for c := d.Begin(); !c.Done() && c.Valid(); c = c.Next() {
			if !yield(c.current, c.Char()) {
				return
			}
		}
	}
}

// Backward yields the offset and units of each character from the back,
// stopping at the first position that does not end a valid character.
func (d *Decoding[C, U]) Backward() iter.Seq2[int, []U] {
	return func(yield func(int, []U) bool) {
		for c := d.End(); c.current > 0; {
			p := c.Prev()
			if p.next != c.current || !p.Valid() {
				return
			}
			if !yield(p.current, p.Char()) {
				return
			}
			c = p
		}
	}
}

// advance returns the end of the element starting at off. An element that
// does not start with a valid character runs to the end of the sequence.
func (d *Decoding[C, U]) advance(off int) int {
	if off >= len(d.base) {
		return len(d.base)
	}
	var c C
	n := c.FrontMBLen(d.base[off:])
	if n == 0 {
		return len(d.base)
	}
	return off + n
}

// Cursor is a position in a Decoding. The element under the cursor spans
// [Offset(), Offset()+len(Char())). Cursors are values; moving returns a new
// cursor.
type Cursor[C codec.Codec[U], U codec.Unit] struct {
	view    *Decoding[C, U]
	current int
	next    int
}

// Offset returns the unit offset of the element under the cursor.
func (c Cursor[C, U]) Offset() int {
	return c.current
}

// Done reports whether the cursor is past the last element.
func (c Cursor[C, U]) Done() bool {
	return c.current >= len(c.view.base)
}

// Char returns the units of the element under the cursor.
func (c Cursor[C, U]) Char() []U {
	return c.view.base[c.current:c.next]
}

// Rest returns the units from the cursor to the end of the sequence.
func (c Cursor[C, U]) Rest() []U {
	return c.view.base[c.current:]
}

// Valid reports whether the element under the cursor is one well-formed
// character. Only the trailing element of a sequence can be invalid.
func (c Cursor[C, U]) Valid() bool {
	return !c.Done() && codec.IsValidChar[C](c.Char())
}

// CodePoint returns the code point under the cursor, or codec.RuneError if
// the element is not a valid character.
func (c Cursor[C, U]) CodePoint() rune {
	if !c.Valid() {
		return codec.RuneError
	}
	var cc C
	return cc.ToCodePoint(c.Char())
}

// Next returns the cursor on the following element. At the end it returns
// the cursor unchanged.
func (c Cursor[C, U]) Next() Cursor[C, U] {
	if c.Done() {
		return c
	}
	c.current = c.next
	c.next = c.view.advance(c.current)
	return c
}

// Prev returns the cursor on the character ending at Offset(). If no valid
// character ends there, the cursor moves to the start of the sequence.
func (c Cursor[C, U]) Prev() Cursor[C, U] {
	if c.current == 0 {
		return c
	}
	base := c.view.base
	for start := c.current - 1; start >= 0 && start >= c.current-codec.MaxUnits; start-- {
		if codec.IsValidChar[C](base[start:c.current]) {
			c.next = c.current
			c.current = start
			return c
		}
	}
	return c.view.Begin()
}

// Equal reports whether both cursors are at the same offset of the same view.
func (c Cursor[C, U]) Equal(o Cursor[C, U]) bool {
	return c.view == o.view && c.current == o.current
}
