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

// Package ranges holds the tables of assigned Unicode code points that the
// codecs consult to decide whether a decoded scalar is a character.
//
// A Table is a sorted list of non-overlapping, half-open intervals. Tables
// are partitioned the way the codecs ask their questions: one per UTF-8
// length class, one for the UTF-16 basic multilingual plane, one for the
// supplementary planes and a flat table for UTF-32. Because a UTF-8 table
// only holds the code points whose minimal encoding has that length, a single
// lookup rejects both unassigned values and overlong encodings.
package ranges

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

const (
	surrogateMin = 0xD800
	surrogateEnd = 0xE000

	bmpEnd = 0x10000
	maxEnd = 0x110000
)

// utf8Classes are the code point intervals covered by each UTF-8 length class.
var utf8Classes = [4]Range{
	{0, 0x80},
	{0x80, 0x800},
	{0x800, bmpEnd},
	{bmpEnd, maxEnd},
}

// ErrUnknownVersion is returned by ForVersion when no assigned table is
// available for the requested Unicode version.
var ErrUnknownVersion = errors.New("unknown unicode version")

// Range is the half-open interval [Start, End) of code points.
type Range struct {
	Start rune
	End   rune
}

// Len returns the number of code points in the range.
func (r Range) Len() int {
	return int(r.End - r.Start)
}

// Table is an ascending list of non-overlapping ranges.
type Table []Range

// Contains reports whether cp lies inside one of the ranges of the table.
func (t Table) Contains(cp rune) bool {
	lo, hi := 0, len(t)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		switch r := t[mid]; {
		case cp < r.Start:
			hi = mid
		case cp >= r.End:
			lo = mid + 1
		default:
			return true
		}
	}
	return false
}

// Count returns the number of code points covered by the table.
func (t Table) Count() (n int) {
	for _, r := range t {
		n += r.Len()
	}
	return
}

// All yields every code point of the table in ascending order.
func (t Table) All() iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for _, r := range t {
			for cp := r.Start; cp < r.End; cp++ {
				if !yield(cp) {
					return
				}
			}
		}
	}
}

// Check verifies that the table is sorted, non-overlapping and made of
// non-empty ranges. Lookups are only correct on tables that pass.
func (t Table) Check() error {
	for i, r := range t {
		if r.Start >= r.End {
			return fmt.Errorf("range %d [%#x, %#x) is empty", i, r.Start, r.End)
		}
		if i > 0 && t[i-1].End > r.Start {
			return fmt.Errorf("range %d [%#x, %#x) overlaps or precedes [%#x, %#x)",
				i, r.Start, r.End, t[i-1].Start, t[i-1].End)
		}
	}
	return nil
}

// Clip returns the part of the table that lies inside [lo, hi).
func (t Table) Clip(lo, hi rune) Table {
	var out Table
	for _, r := range t {
		start, end := max(r.Start, lo), min(r.End, hi)
		if start < end {
			out = append(out, Range{start, end})
		}
	}
	return out
}

// Set is the complete family of tables for one Unicode version.
type Set struct {
	Version string

	// UTF8 is indexed by encoded length minus one.
	UTF8 [4]Table

	BMP    Table
	NonBMP Table
	UTF32  Table
}

// Check verifies every table in the set.
func (s *Set) Check() error {
	tables := map[string]Table{"bmp": s.BMP, "non-bmp": s.NonBMP, "utf32": s.UTF32}
	for i, t := range s.UTF8 {
		tables[fmt.Sprintf("utf8-%d", i+1)] = t
	}
	for name, t := range tables {
		if err := t.Check(); err != nil {
			return fmt.Errorf("table %s: %w", name, err)
		}
	}
	return nil
}

// NewSet partitions an inclusive, strided unicode.RangeTable into the
// half-open per-class tables used by the codecs. Surrogates are never part of
// the result.
func NewSet(rt *unicode.RangeTable, version string) *Set {
	all := fromRangeTable(rt)
	all = append(all.Clip(0, surrogateMin), all.Clip(surrogateEnd, maxEnd)...)

	s := &Set{
		Version: version,
		BMP:     all.Clip(0, bmpEnd),
		NonBMP:  all.Clip(bmpEnd, maxEnd),
		UTF32:   all,
	}
	for i, class := range utf8Classes {
		s.UTF8[i] = all.Clip(class.Start, class.End)
	}
	return s
}

// ForVersion returns the assigned code points of the given Unicode version.
func ForVersion(version string) (*Set, error) {
	rt := rangetable.Assigned(version)
	if rt == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVersion, version)
	}
	return NewSet(rt, version), nil
}

// Assigned is the set used by the codecs, built once for unicode.Version.
var Assigned = defaultSet()

func defaultSet() *Set {
	if s, err := ForVersion(unicode.Version); err == nil {
		return s
	}
	// The major categories together cover every assigned code point,
	// including controls, format characters and private use.
	rt := rangetable.Merge(unicode.L, unicode.M, unicode.N, unicode.P, unicode.S, unicode.Z, unicode.C)
	return NewSet(rt, unicode.Version)
}

func fromRangeTable(rt *unicode.RangeTable) Table {
	var raw Table
	for _, r16 := range rt.R16 {
		raw = appendStrided(raw, rune(r16.Lo), rune(r16.Hi), rune(r16.Stride))
	}
	for _, r32 := range rt.R32 {
		raw = appendStrided(raw, rune(r32.Lo), rune(r32.Hi), rune(r32.Stride))
	}
	slices.SortFunc(raw, func(a, b Range) int {
		return int(a.Start - b.Start)
	})

	var merged Table
	for _, r := range raw {
		if n := len(merged); n > 0 && r.Start <= merged[n-1].End {
			merged[n-1].End = max(merged[n-1].End, r.End)
			continue
		}
		merged = append(merged, r)
	}
	return merged.Clip(0, maxEnd)
}

func appendStrided(t Table, lo, hi, stride rune) Table {
	if stride == 1 {
		return append(t, Range{lo, hi + 1})
	}
	for cp := lo; cp <= hi; cp += stride {
		t = append(t, Range{cp, cp + 1})
	}
	return t
}
