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

const (
	tx = 0b10000000
	t2 = 0b11000000
	t3 = 0b11100000
	t4 = 0b11110000

	maskx = 0b00111111
	mask2 = 0b00011111
	mask3 = 0b00001111
	mask4 = 0b00000111

	rune1Max = 1<<7 - 1
	rune2Max = 1<<11 - 1
	rune3Max = 1<<16 - 1

	// These names give nice alignment in the table below.
	xx = 0 // never a lead byte
	l1 = 1
	l2 = 2
	l3 = 3
	l4 = 4
)

// trivialLen is the length implied by a lead byte, before any check of the
// continuation bytes or of the decoded value. 0xC0, 0xC1 and 0xF5-0xFF can
// only start overlong or out of range sequences and are rejected outright.
var trivialLen = [256]uint8{
	//   1   2   3   4   5   6   7   8   9   A   B   C   D   E   F
	l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, // 0x00-0x0F
	l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, // 0x10-0x1F
	l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, // 0x20-0x2F
	l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, // 0x30-0x3F
	l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, // 0x40-0x4F
	l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, // 0x50-0x5F
	l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, // 0x60-0x6F
	l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, l1, // 0x70-0x7F
	//   1   2   3   4   5   6   7   8   9   A   B   C   D   E   F
	xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, // 0x80-0x8F
	xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, // 0x90-0x9F
	xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, // 0xA0-0xAF
	xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, // 0xB0-0xBF
	xx, xx, l2, l2, l2, l2, l2, l2, l2, l2, l2, l2, l2, l2, l2, l2, // 0xC0-0xCF
	l2, l2, l2, l2, l2, l2, l2, l2, l2, l2, l2, l2, l2, l2, l2, l2, // 0xD0-0xDF
	l3, l3, l3, l3, l3, l3, l3, l3, l3, l3, l3, l3, l3, l3, l3, l3, // 0xE0-0xEF
	l4, l4, l4, l4, l4, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, // 0xF0-0xFF
}

// leadMask keeps the payload bits of a lead byte, indexed by trivial length.
var leadMask = [5]uint8{0, 0x7F, mask2, mask3, mask4}

// UTF8 is the UTF-8 encoding over bytes.
type UTF8 struct{}

var _ Codec[byte] = UTF8{}

func (UTF8) Name() string {
	return "utf8"
}

// TrivialLen returns the length announced by the lead byte b, or 0 if b can
// never start a character.
func (UTF8) TrivialLen(b byte) int {
	return int(trivialLen[b])
}

// IsContinuation reports whether b has the 10xxxxxx continuation form.
func (UTF8) IsContinuation(b byte) bool {
	return b&0xC0 == tx
}

func (UTF8) FrontMBLen(seq []byte) int {
	if len(seq) == 0 {
		return 0
	}
	n := int(trivialLen[seq[0]])
	if n == 0 || len(seq) < n {
		return 0
	}
	cp := rune(seq[0] & leadMask[n])
	for _, b := range seq[1:n] {
		if b&0xC0 != tx {
			return 0
		}
		cp = cp<<6 | rune(b&maskx)
	}
	// The table of each length class only holds values whose minimal
	// encoding has that length, which also rejects overlong forms.
	if !ranges.Assigned.UTF8[n-1].Contains(cp) {
		return 0
	}
	return n
}

func (UTF8) ToCodePoint(seq []byte) rune {
	if len(seq) == 0 {
		return RuneError
	}
	n := int(trivialLen[seq[0]])
	if n == 0 || len(seq) < n {
		return RuneError
	}
	cp := rune(seq[0] & leadMask[n])
	for _, b := range seq[1:n] {
		cp = cp<<6 | rune(b&maskx)
	}
	return cp
}

func (UTF8) CodeUnitSize(cp rune) int {
	var n int
	// Negative values are erroneous. Making it unsigned addresses the problem.
	switch i := uint32(cp); {
	case i <= rune1Max:
		n = 1
	case i <= rune2Max:
		n = 2
	case i <= rune3Max:
		n = 3
	default:
		n = 4
	}
	if !ranges.Assigned.UTF8[n-1].Contains(cp) {
		return 0
	}
	return n
}

func (u UTF8) CodePointOn(cp rune, p []byte) int {
	n := u.CodeUnitSize(cp)
	if n == 0 || len(p) < n {
		return 0
	}
	switch n {
	case 1:
		p[0] = byte(cp)
	case 2:
		_ = p[1] // eliminate bounds checks
		p[0] = t2 | byte(cp>>6)&mask2
		p[1] = tx | byte(cp)&maskx
	case 3:
		_ = p[2]
		p[0] = t3 | byte(cp>>12)&mask3
		p[1] = tx | byte(cp>>6)&maskx
		p[2] = tx | byte(cp)&maskx
	default:
		_ = p[3]
		p[0] = t4 | byte(cp>>18)&mask4
		p[1] = tx | byte(cp>>12)&maskx
		p[2] = tx | byte(cp>>6)&maskx
		p[3] = tx | byte(cp)&maskx
	}
	return n
}

// Diagnose explains why seq does not start with a valid character. It
// returns CodeOK when it does.
func (UTF8) Diagnose(seq []byte) Code {
	if len(seq) == 0 {
		return CodeEmpty
	}
	n := int(trivialLen[seq[0]])
	if n == 0 {
		return CodeMalformed
	}
	avail := min(n, len(seq))
	for _, b := range seq[1:avail] {
		if b&0xC0 != tx {
			return CodeMalformed
		}
	}
	if len(seq) < n {
		return CodeTruncated
	}
	if (UTF8{}).FrontMBLen(seq) == 0 {
		return CodeUnassigned
	}
	return CodeOK
}
