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

// UTF32 is the UTF-32 encoding over 32-bit code units in native order.
type UTF32 struct{}

var _ Codec[uint32] = UTF32{}

func (UTF32) Name() string {
	return "utf32"
}

func (u UTF32) FrontMBLen(seq []uint32) int {
	if len(seq) == 0 {
		return 0
	}
	return u.CodeUnitSize(rune(seq[0]))
}

func (UTF32) ToCodePoint(seq []uint32) rune {
	if len(seq) == 0 {
		return RuneError
	}
	return rune(seq[0])
}

func (UTF32) CodeUnitSize(cp rune) int {
	if !ranges.Assigned.UTF32.Contains(cp) {
		return 0
	}
	return 1
}

func (u UTF32) CodePointOn(cp rune, p []uint32) int {
	if u.CodeUnitSize(cp) == 0 || len(p) < 1 {
		return 0
	}
	p[0] = uint32(cp)
	return 1
}

// Diagnose explains why seq does not start with a valid character. It
// returns CodeOK when it does.
func (u UTF32) Diagnose(seq []uint32) Code {
	switch {
	case len(seq) == 0:
		return CodeEmpty
	case 0xd800 <= seq[0] && seq[0] < 0xe000, seq[0] > 0x10ffff:
		return CodeMalformed
	case u.FrontMBLen(seq) == 0:
		return CodeUnassigned
	default:
		return CodeOK
	}
}
