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
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"

	"github.com/chardb/chardb/go/chardb/codec"
	"github.com/chardb/chardb/go/chardb/ranges"
)

type element[U codec.Unit] struct {
	Offset int
	Units  []U
}

func forward[C codec.Codec[U], U codec.Unit](d *Decoding[C, U]) (out []element[U]) {
	for off, ch := range d.All() {
		out = append(out, element[U]{off, ch})
	}
	return
}

func backward[C codec.Codec[U], U codec.Unit](d *Decoding[C, U]) (out []element[U]) {
	for off, ch := range d.Backward() {
		out = append(out, element[U]{off, ch})
	}
	return
}

func indexed[C codec.Codec[U], U codec.Unit](d *Decoded[C, U]) (out []element[U]) {
	for r, ch := range d.All() {
		out = append(out, element[U]{d.Offset(r), ch})
	}
	return
}

// randomText returns n assigned code points drawn uniformly from the
// assigned ranges.
func randomText(r *rand.Rand, n int) []rune {
	table := ranges.Assigned.UTF32
	out := make([]rune, n)
	for i := range out {
		rg := table[r.IntN(len(table))]
		out[i] = rg.Start + rune(r.IntN(int(rg.Len())))
	}
	return out
}

func TestDecodingThumbsUp(t *testing.T) {
	in := []byte("a\xF0\x9F\x91\x8D")
	d := NewDecoding[codec.UTF8](in)

	want := []element[byte]{{0, []byte("a")}, {1, []byte("\xF0\x9F\x91\x8D")}}
	assert.Equal(t, want, forward(d))
	assert.Equal(t, []element[byte]{want[1], want[0]}, backward(d))
	assert.Equal(t, 2, d.Count())

	c := d.Begin()
	assert.True(t, c.Valid())
	assert.Equal(t, 'a', c.CodePoint())
	c = c.Next()
	assert.Equal(t, 1, c.Offset())
	assert.Equal(t, rune(0x1F44D), c.CodePoint())
	c = c.Next()
	assert.True(t, c.Done())
	assert.True(t, c.Equal(d.End()))
	assert.True(t, c.Next().Equal(d.End()))

	c = c.Prev()
	assert.Equal(t, 1, c.Offset())
	assert.Equal(t, []byte("\xF0\x9F\x91\x8D"), c.Char())
	c = c.Prev()
	assert.True(t, c.Equal(d.Begin()))
	assert.True(t, c.Prev().Equal(d.Begin()))
	assert.Equal(t, in, c.Rest())
}

func TestDecodingInvalidTail(t *testing.T) {
	in := []byte("a\xF0\x9F\x91")
	d := NewDecoding[codec.UTF8](in)

	assert.Equal(t, []element[byte]{{0, []byte("a")}}, forward(d))
	assert.Empty(t, backward(d))
	assert.Equal(t, 1, d.Count())

	c := d.Begin().Next()
	assert.False(t, c.Done())
	assert.False(t, c.Valid())
	assert.Equal(t, []byte("\xF0\x9F\x91"), c.Char())
	assert.Equal(t, codec.RuneError, c.CodePoint())
	assert.True(t, c.Next().Done())

	// Nothing valid ends at the end of the sequence.
	assert.True(t, d.End().Prev().Equal(d.Begin()))
}

func TestDecodingOverlong(t *testing.T) {
	d := NewDecoding[codec.UTF8]([]byte("\xC0\x80a"))
	c := d.Begin()
	assert.False(t, c.Valid())
	assert.Equal(t, 3, len(c.Char()))
	assert.Empty(t, forward(d))
	assert.Equal(t, 0, d.Count())

	// Backward stops as soon as the walk is no longer contiguous.
	assert.Equal(t, []element[byte]{{2, []byte("a")}}, backward(d))
}

func TestDecodingEmpty(t *testing.T) {
	d := NewDecoding[codec.UTF16]([]uint16(nil))
	assert.True(t, d.Begin().Done())
	assert.True(t, d.Begin().Equal(d.End()))
	assert.False(t, d.Begin().Valid())
	assert.Empty(t, forward(d))
	assert.Empty(t, backward(d))
}

func TestDecodingCloneResetsCache(t *testing.T) {
	d := NewDecoding[codec.UTF8]([]byte("héllo"))
	assert.False(t, d.first.ok)
	first := d.Begin()
	require.True(t, d.first.ok)
	assert.Equal(t, 1, d.first.value)

	clone := d.Clone()
	assert.False(t, clone.first.ok)
	assert.Equal(t, d.Base(), clone.Base())
	assert.Equal(t, first.Char(), clone.Begin().Char())
	assert.False(t, first.Equal(clone.Begin()))
}

func TestDecodingUTF16(t *testing.T) {
	in := []uint16{0xD83D, 0xDC4D, 'a', 0xD83D}
	d := NewDecoding[codec.UTF16](in)

	assert.Equal(t, []element[uint16]{{0, []uint16{0xD83D, 0xDC4D}}, {2, []uint16{'a'}}}, forward(d))
	c := d.Begin().Next().Next()
	assert.Equal(t, 3, c.Offset())
	assert.False(t, c.Valid())

	// A low surrogate alone is never the end of a character.
	c = NewDecoding[codec.UTF16]([]uint16{'a', 0xDC4D}).End().Prev()
	assert.Equal(t, 0, c.Offset())
}

func TestDecodedThumbsUp(t *testing.T) {
	in := []byte("a\xF0\x9F\x91\x8D")
	d := NewDecoded[codec.UTF8](in)

	require.Equal(t, 2, d.Len())
	assert.Equal(t, []byte("a"), d.At(0))
	assert.Equal(t, []byte("\xF0\x9F\x91\x8D"), d.At(1))
	assert.Nil(t, d.At(2))
	assert.Nil(t, d.At(-1))
	assert.Equal(t, 'a', d.CodePoint(0))
	assert.Equal(t, rune(0x1F44D), d.CodePoint(1))
	assert.Equal(t, codec.RuneError, d.CodePoint(2))

	assert.Equal(t, 0, d.Offset(0))
	assert.Equal(t, 1, d.Offset(1))
	assert.Equal(t, 5, d.Offset(2))
	assert.Equal(t, 0, d.Offset(-4))

	for off, want := range []int{0, 1, 1, 1, 1} {
		assert.Equal(t, want, d.IndexOf(off), "IndexOf(%d)", off)
	}
	assert.Equal(t, -1, d.IndexOf(5))
	assert.Equal(t, -1, d.IndexOf(-1))
	assert.Positive(t, d.IndexSize())
}

func TestDecodedInvalidUnits(t *testing.T) {
	in := []byte("\xffa\xffb")
	d := NewDecoded[codec.UTF8](in)

	require.Equal(t, 2, d.Len())
	assert.Equal(t, []byte("a\xff"), d.At(0))
	assert.Equal(t, []byte("b"), d.At(1))
	assert.Equal(t, -1, d.IndexOf(0))
	assert.Equal(t, 0, d.IndexOf(2))
	assert.Equal(t, 1, d.IndexOf(3))

	d32 := NewDecoded[codec.UTF32]([]uint32{'a', 0x1F44D, 0xD800})
	require.Equal(t, 2, d32.Len())
	assert.Equal(t, []uint32{0x1F44D, 0xD800}, d32.At(1))
	assert.Equal(t, rune(0x1F44D), d32.CodePoint(1))

	none := NewDecoded[codec.UTF8]([]byte("\x80\x80"))
	assert.Equal(t, 0, none.Len())
	assert.Nil(t, none.At(0))
	assert.Empty(t, none.Slice(0, 10))
}

func TestDecodedSlice(t *testing.T) {
	d := NewDecoded[codec.UTF8]([]byte("héllo"))

	testCases := []struct {
		from, to int
		want     string
	}{
		{1, 3, "él"},
		{0, 5, "héllo"},
		{-5, 100, "héllo"},
		{4, 5, "o"},
		{3, 1, ""},
		{5, 5, ""},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, string(d.Slice(tc.from, tc.to)), "Slice(%d, %d)", tc.from, tc.to)
	}
}

func TestDecodedCursor(t *testing.T) {
	d := NewDecoded[codec.UTF16]([]uint16{'x', 0xD83D, 0xDC4D, 'y'})

	c := d.Begin()
	assert.Equal(t, 0, c.Rank())
	assert.True(t, c.Prev().Equal(d.Begin()))

	c = c.Next()
	assert.Equal(t, 1, c.Offset())
	assert.Equal(t, rune(0x1F44D), c.CodePoint())
	assert.Equal(t, []uint16{0xD83D, 0xDC4D}, c.Char())

	c = c.Seek(10)
	assert.True(t, c.Done())
	assert.True(t, c.Equal(d.End()))
	assert.Nil(t, c.Char())
	assert.Equal(t, 4, c.Offset())

	c = c.Prev()
	assert.Equal(t, 'y', c.CodePoint())
	assert.Equal(t, 0, c.Seek(-10).Rank())

	var ranks []int
	for r := range d.Backward() {
		ranks = append(ranks, r)
	}
	assert.Equal(t, []int{2, 1, 0}, ranks)
}

func TestViewsAgree(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 42))
	for _, n := range []int{0, 1, 7, 300, 5000} {
		cps := randomText(r, n)

		u8, done := codec.Encode[codec.UTF8, byte](cps)
		require.Equal(t, n, done)
		fwd := forward(NewDecoding[codec.UTF8](u8))
		if diff := cmp.Diff(fwd, indexed(NewDecoded[codec.UTF8](u8))); diff != "" {
			t.Errorf("utf8 views disagree for n=%d (-decoding +decoded):\n%s", n, diff)
		}
		require.Len(t, fwd, n)

		bwd := backward(NewDecoding[codec.UTF8](u8))
		for i, j := 0, len(bwd)-1; i < j; i, j = i+1, j-1 {
			bwd[i], bwd[j] = bwd[j], bwd[i]
		}
		if diff := cmp.Diff(fwd, bwd); diff != "" {
			t.Errorf("utf8 forward and backward walks disagree for n=%d:\n%s", n, diff)
		}

		u16, _ := codec.Encode[codec.UTF16, uint16](cps)
		if diff := cmp.Diff(forward(NewDecoding[codec.UTF16](u16)), indexed(NewDecoded[codec.UTF16](u16))); diff != "" {
			t.Errorf("utf16 views disagree for n=%d:\n%s", n, diff)
		}

		u32, _ := codec.Encode[codec.UTF32, uint32](cps)
		decoded := NewDecoded[codec.UTF32](u32)
		require.Equal(t, n, decoded.Len())
		for i, cp := range cps {
			if decoded.CodePoint(i) != cp {
				t.Fatalf("utf32 rank %d: got %U, want %U", i, decoded.CodePoint(i), cp)
			}
		}
	}
}

func TestDecodedConcurrentReads(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := rand.New(rand.NewPCG(5, 6))
	cps := randomText(r, 2000)
	u16, _ := codec.Encode[codec.UTF16, uint16](cps)
	d := NewDecoded[codec.UTF16](u16)

	var g errgroup.Group
	for w := range 8 {
		g.Go(func() error {
			for i := w; i < len(cps); i += 8 {
				if got := d.CodePoint(i); got != cps[i] {
					return fmt.Errorf("rank %d: got %U, want %U", i, got, cps[i])
				}
				if d.IndexOf(d.Offset(i)) != i {
					return fmt.Errorf("rank %d: offset %d maps back to %d", i, d.Offset(i), d.IndexOf(d.Offset(i)))
				}
			}
			// Each goroutine walks its own clone of a lazy view.
			lazy := NewDecoding[codec.UTF16](u16).Clone()
			if n := lazy.Count(); n != len(cps) {
				return fmt.Errorf("lazy count %d, want %d", n, len(cps))
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
