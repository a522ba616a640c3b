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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUTF8FrontMBLen(t *testing.T) {
	testCases := []struct {
		name string
		in   []byte
		want int
	}{
		{"empty", nil, 0},
		{"ascii", []byte("a"), 1},
		{"nul", []byte{0}, 1},
		{"two bytes", []byte("é"), 2},
		{"three bytes", []byte("€"), 3},
		{"four bytes", []byte("👍"), 4},
		{"trailing data is ignored", []byte("éa"), 2},
		{"lone continuation", []byte{0x80}, 0},
		{"overlong nul", []byte{0xC0, 0x80}, 0},
		{"overlong ascii", []byte{0xC1, 0xBF}, 0},
		{"overlong three bytes", []byte{0xE0, 0x80, 0xAF}, 0},
		{"overlong four bytes", []byte{0xF0, 0x80, 0x80, 0xAF}, 0},
		{"encoded surrogate", []byte{0xED, 0xA0, 0x80}, 0},
		{"above max rune", []byte{0xF4, 0x90, 0x80, 0x80}, 0},
		{"invalid lead", []byte{0xF5, 0x80, 0x80, 0x80}, 0},
		{"ff", []byte{0xFF}, 0},
		{"truncated", []byte{0xE2, 0x82}, 0},
		{"bad continuation", []byte{0xE2, 0x41, 0xAC}, 0},
		{"noncharacter", []byte{0xEF, 0xBF, 0xBF}, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, UTF8{}.FrontMBLen(tc.in))
		})
	}
}

func TestUTF8TrivialLen(t *testing.T) {
	u := UTF8{}
	assert.Equal(t, 1, u.TrivialLen(0x7F))
	assert.Equal(t, 0, u.TrivialLen(0x80))
	assert.Equal(t, 0, u.TrivialLen(0xC1))
	assert.Equal(t, 2, u.TrivialLen(0xC2))
	assert.Equal(t, 2, u.TrivialLen(0xDF))
	assert.Equal(t, 3, u.TrivialLen(0xE0))
	assert.Equal(t, 3, u.TrivialLen(0xEF))
	assert.Equal(t, 4, u.TrivialLen(0xF4))
	assert.Equal(t, 0, u.TrivialLen(0xF5))

	assert.True(t, u.IsContinuation(0xBF))
	assert.False(t, u.IsContinuation(0xC0))
	assert.False(t, u.IsContinuation('a'))
}

func TestUTF8CodePointOn(t *testing.T) {
	testCases := []struct {
		cp   rune
		want []byte
	}{
		{'a', []byte{0x61}},
		{0x7F, []byte{0x7F}},
		{0x80, []byte{0xC2, 0x80}},
		{0x7FF, []byte{0xDF, 0xBF}},
		{0x800, []byte{0xE0, 0xA0, 0x80}},
		{0x20AC, []byte{0xE2, 0x82, 0xAC}},
		{0x1F44D, []byte{0xF0, 0x9F, 0x91, 0x8D}},
		{0x10FFFD, []byte{0xF4, 0x8F, 0xBF, 0xBD}},
	}

	for _, tc := range testCases {
		buf := make([]byte, 4)
		n := UTF8{}.CodePointOn(tc.cp, buf)
		assert.Equal(t, tc.want, buf[:n], "%U", tc.cp)
		assert.Equal(t, len(tc.want), UTF8{}.CodeUnitSize(tc.cp), "%U", tc.cp)
	}

	short := make([]byte, 3)
	assert.Zero(t, UTF8{}.CodePointOn(0x1F44D, short))
	assert.Equal(t, []byte{0, 0, 0}, short)
}

func TestUTF8ToCodePointNeverPanics(t *testing.T) {
	assert.Equal(t, RuneError, UTF8{}.ToCodePoint(nil))
	assert.Equal(t, RuneError, UTF8{}.ToCodePoint([]byte{0xFF}))
	assert.Equal(t, RuneError, UTF8{}.ToCodePoint([]byte{0xF0, 0x9F}))
}

func TestUTF16(t *testing.T) {
	u := UTF16{}
	thumbs := []uint16{0xD83D, 0xDC4D}

	assert.Equal(t, 2, u.FrontMBLen(thumbs))
	assert.Equal(t, rune(0x1F44D), u.ToCodePoint(thumbs))
	assert.Equal(t, 0, u.FrontMBLen(thumbs[:1]), "lone high surrogate at end")
	assert.Equal(t, 0, u.FrontMBLen(thumbs[1:]), "lone low surrogate")
	assert.Equal(t, 0, u.FrontMBLen([]uint16{0xD83D, 'a'}), "high surrogate followed by a plain unit")
	assert.Equal(t, 0, u.FrontMBLen([]uint16{0xD83D, 0xD83D}), "two high surrogates")
	assert.Equal(t, 0, u.FrontMBLen([]uint16{0xFFFF}), "noncharacter")
	assert.Equal(t, 1, u.FrontMBLen([]uint16{'a', 0xD83D}))
	assert.Equal(t, 0, u.FrontMBLen(nil))
	assert.Equal(t, RuneError, u.ToCodePoint(nil))
	assert.Equal(t, RuneError, u.ToCodePoint(thumbs[:1]))

	assert.True(t, u.IsHighSurrogate(0xDBFF))
	assert.False(t, u.IsHighSurrogate(0xDC00))
	assert.True(t, u.IsLowSurrogate(0xDFFF))
	assert.False(t, u.IsLowSurrogate(0xE000))
	assert.True(t, u.IsBMPCodePoint('a'))
	assert.False(t, u.IsBMPCodePoint(0x1F44D))
	assert.True(t, u.IsNonBMPCodePoint(0x1F44D))

	hi, lo := u.CodePointToSurrogatePair(0x10FFFD)
	assert.Equal(t, uint16(0xDBFF), hi)
	assert.Equal(t, uint16(0xDFFD), lo)
	assert.Equal(t, rune(0x10FFFD), u.SurrogatePairToCodePoint(hi, lo))

	buf := make([]uint16, 1)
	assert.Zero(t, u.CodePointOn(0x1F44D, buf), "pair does not fit")
	assert.Equal(t, 1, u.CodePointOn('z', buf))
	assert.Equal(t, []uint16{'z'}, buf)
}

func TestUTF32(t *testing.T) {
	u := UTF32{}

	assert.Equal(t, 1, u.FrontMBLen([]uint32{0x1F44D, 0xD800}))
	assert.Equal(t, 0, u.FrontMBLen([]uint32{0xD800}))
	assert.Equal(t, 0, u.FrontMBLen([]uint32{0x110000}))
	assert.Equal(t, 0, u.FrontMBLen([]uint32{0xFFFFFFFF}))
	assert.Equal(t, 0, u.FrontMBLen(nil))
	assert.Equal(t, rune(0x1F44D), u.ToCodePoint([]uint32{0x1F44D}))
	assert.Zero(t, u.CodePointOn('a', nil))
	assert.Equal(t, 2, CharSize[UTF32]([]uint32{'a', 'b', 0xD800, 'c'}))
}
