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

// Package codec implements validation, decoding and encoding of single
// characters in UTF-8, UTF-16 and UTF-32.
//
// Each encoding is an empty struct type that implements Codec for its code
// unit type. Everything else is derived from the four primitives of Codec by
// generic functions that take the encoding as a type argument, so a call such
// as
//
//	n := codec.CharSize[codec.UTF8](buf)
//
// is resolved at compile time and never boxes the codec into an interface.
//
// Failure is always reported as data: a zero length, false, or nil. Nothing
// in this package panics on malformed input. Callers that want Go errors can
// use Checked.
package codec

import "unicode/utf8"

// RuneError is returned by ToCodePoint when its input does not start with a
// valid character.
const RuneError = utf8.RuneError

// MaxUnits is the longest character, in code units, of any supported encoding.
const MaxUnits = 4

// Unit is the set of code unit types: bytes for UTF-8, 16-bit units for
// UTF-16 and 32-bit units for UTF-32.
type Unit interface {
	~uint8 | ~uint16 | ~uint32
}

// Codec is the set of primitives an encoding provides over its code unit type.
type Codec[U Unit] interface {
	// FrontMBLen returns the length in code units of the valid character at
	// the start of seq, or 0 if seq does not start with one.
	FrontMBLen(seq []U) int
	// ToCodePoint decodes the character at the start of seq. The result is
	// only meaningful when FrontMBLen(seq) > 0.
	ToCodePoint(seq []U) rune
	// CodeUnitSize returns the number of code units needed to encode cp, or 0
	// if cp is not an assigned code point.
	CodeUnitSize(cp rune) int
	// CodePointOn writes the encoding of cp to dst and returns the number of
	// units written. It writes nothing and returns 0 if cp is not assigned or
	// dst is too short.
	CodePointOn(cp rune, dst []U) int
}

// IsValidChar reports whether seq is exactly one valid character.
func IsValidChar[C Codec[U], U Unit](seq []U) bool {
	var c C
	n := c.FrontMBLen(seq)
	return n != 0 && n == len(seq)
}

// StartsWithValidChar reports whether seq starts with a valid character.
func StartsWithValidChar[C Codec[U], U Unit](seq []U) bool {
	var c C
	return c.FrontMBLen(seq) != 0
}

// CharSize counts the characters of seq, stopping at the end of the sequence
// or at the first position that does not start a valid character.
func CharSize[C Codec[U], U Unit](seq []U) (size int) {
	var c C
	for len(seq) > 0 {
		n := c.FrontMBLen(seq)
		if n == 0 {
			break
		}
		seq = seq[n:]
		size++
	}
	return
}

// ValidPrefix returns the length, in code units, of the longest prefix of
// seq made only of valid characters.
func ValidPrefix[C Codec[U], U Unit](seq []U) int {
	var c C
	off := 0
	for off < len(seq) {
		n := c.FrontMBLen(seq[off:])
		if n == 0 {
			break
		}
		off += n
	}
	return off
}

// ValidateCharSequence reports whether seq consists entirely of valid
// characters. The empty sequence is valid.
func ValidateCharSequence[C Codec[U], U Unit](seq []U) bool {
	return ValidPrefix[C](seq) == len(seq)
}

// CodePointTo returns the encoding of cp in a newly allocated slice, or nil if
// cp is not an assigned code point.
func CodePointTo[C Codec[U], U Unit](cp rune) []U {
	var c C
	n := c.CodeUnitSize(cp)
	if n == 0 {
		return nil
	}
	out := make([]U, n)
	c.CodePointOn(cp, out)
	return out
}

// AppendCodePoint appends the encoding of cp to dst. If cp is not assigned,
// dst is returned unchanged.
func AppendCodePoint[C Codec[U], U Unit](dst []U, cp rune) []U {
	var c C
	n := c.CodeUnitSize(cp)
	if n == 0 {
		return dst
	}
	var buf [MaxUnits]U
	c.CodePointOn(cp, buf[:n])
	return append(dst, buf[:n]...)
}

// Decode returns the code points of the valid prefix of seq and the number of
// code units consumed. The sequence was fully decoded iff the returned length
// equals len(seq).
func Decode[C Codec[U], U Unit](seq []U) ([]rune, int) {
	var c C
	cps := make([]rune, 0, len(seq))
	off := 0
	for off < len(seq) {
		n := c.FrontMBLen(seq[off:])
		if n == 0 {
			break
		}
		cps = append(cps, c.ToCodePoint(seq[off:off+n]))
		off += n
	}
	return cps, off
}

// Encode encodes cps and returns the resulting units together with the
// number of code points encoded. Encoding stops at the first code point that
// is not assigned.
func Encode[C Codec[U], U Unit](cps []rune) ([]U, int) {
	out := make([]U, 0, len(cps))
	for i, cp := range cps {
		next := AppendCodePoint[C](out, cp)
		if len(next) == len(out) {
			return out, i
		}
		out = next
	}
	return out, len(cps)
}
