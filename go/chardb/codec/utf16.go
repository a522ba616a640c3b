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

package codec

import "github.com/chardb/chardb/go/chardb/ranges"

// 0xd800-0xdc00 encodes the high 10 bits of a pair.
// 0xdc00-0xe000 encodes the low 10 bits of a pair.
// the value is those 20 bits plus 0x10000.
const (
	surr1    = 0xd800
	surr2    = 0xdc00
	surr3    = 0xe000
	surrSelf = 0x10000
)

// UTF16 is the UTF-16 encoding over 16-bit code units in native order.
type UTF16 struct{}

var _ Codec[uint16] = UTF16{}

func (UTF16) Name() string {
	return "utf16"
}

// IsHighSurrogate reports whether u is the first unit of a surrogate pair.
func (UTF16) IsHighSurrogate(u uint16) bool {
	return surr1 <= u && u < surr2
}

// IsLowSurrogate reports whether u is the second unit of a surrogate pair.
func (UTF16) IsLowSurrogate(u uint16) bool {
	return surr2 <= u && u < surr3
}

// IsBMPCodePoint reports whether cp is assigned and encoded as a single unit.
func (UTF16) IsBMPCodePoint(cp rune) bool {
	return ranges.Assigned.BMP.Contains(cp)
}

// IsNonBMPCodePoint reports whether cp is assigned and needs a surrogate pair.
func (UTF16) IsNonBMPCodePoint(cp rune) bool {
	return ranges.Assigned.NonBMP.Contains(cp)
}

// SurrogatePairToCodePoint composes a high and a low surrogate.
func (UTF16) SurrogatePairToCodePoint(high, low uint16) rune {
	return (rune(high)-surr1)<<10 | (rune(low) - surr2) + surrSelf
}

// CodePointToSurrogatePair splits a supplementary code point into its
// surrogates. The result is meaningless for cp < 0x10000.
func (UTF16) CodePointToSurrogatePair(cp rune) (high, low uint16) {
	cp -= surrSelf
	return uint16(surr1 + (cp>>10)&0x3ff), uint16(surr2 + cp&0x3ff)
}

func (u UTF16) FrontMBLen(seq []uint16) int {
	if len(seq) == 0 {
		return 0
	}
	if u.IsHighSurrogate(seq[0]) {
		if len(seq) < 2 || !u.IsLowSurrogate(seq[1]) {
			return 0
		}
		if !ranges.Assigned.NonBMP.Contains(u.SurrogatePairToCodePoint(seq[0], seq[1])) {
			return 0
		}
		return 2
	}
	// Lone low surrogates fall out here: the BMP table never holds them.
	if !ranges.Assigned.BMP.Contains(rune(seq[0])) {
		return 0
	}
	return 1
}

func (u UTF16) ToCodePoint(seq []uint16) rune {
	switch {
	case len(seq) == 0:
		return RuneError
	case u.IsHighSurrogate(seq[0]):
		if len(seq) < 2 {
			return RuneError
		}
		return u.SurrogatePairToCodePoint(seq[0], seq[1])
	default:
		return rune(seq[0])
	}
}

func (u UTF16) CodeUnitSize(cp rune) int {
	switch {
	case u.IsBMPCodePoint(cp):
		return 1
	case u.IsNonBMPCodePoint(cp):
		return 2
	default:
		return 0
	}
}

func (u UTF16) CodePointOn(cp rune, p []uint16) int {
	n := u.CodeUnitSize(cp)
	if n == 0 || len(p) < n {
		return 0
	}
	if n == 1 {
		p[0] = uint16(cp)
		return 1
	}
	p[0], p[1] = u.CodePointToSurrogatePair(cp)
	return 2
}

// Diagnose explains why seq does not start with a valid character. It
// returns CodeOK when it does.
func (u UTF16) Diagnose(seq []uint16) Code {
	switch {
	case len(seq) == 0:
		return CodeEmpty
	case u.IsLowSurrogate(seq[0]):
		return CodeMalformed
	case u.IsHighSurrogate(seq[0]) && len(seq) < 2:
		return CodeTruncated
	case u.IsHighSurrogate(seq[0]) && !u.IsLowSurrogate(seq[1]):
		return CodeMalformed
	case u.FrontMBLen(seq) == 0:
		return CodeUnassigned
	default:
		return CodeOK
	}
}
