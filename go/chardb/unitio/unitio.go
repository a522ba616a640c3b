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

// Package unitio converts between raw bytes and code unit sequences.
package unitio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// Encoding is a byte serialization of one of the Unicode encoding forms.
type Encoding uint8

const (
	UTF8 Encoding = iota
	UTF16LE
	UTF16BE
	UTF32LE
	UTF32BE
)

// Auto is the name that asks Open to detect the encoding from a byte order
// mark.
const Auto = "auto"

var (
	// ErrUnknownEncoding is returned for an encoding name that is not
	// recognized.
	ErrUnknownEncoding = errors.New("unknown encoding")
	// ErrPartialUnit is returned when the input ends in the middle of a code
	// unit.
	ErrPartialUnit = errors.New("input ends inside a code unit")
)

var encodingNames = map[string]Encoding{
	"utf8":     UTF8,
	"utf-8":    UTF8,
	"utf16le":  UTF16LE,
	"utf-16le": UTF16LE,
	"utf16be":  UTF16BE,
	"utf-16be": UTF16BE,
	"utf16":    UTF16BE,
	"utf32le":  UTF32LE,
	"utf-32le": UTF32LE,
	"utf32be":  UTF32BE,
	"utf-32be": UTF32BE,
	"utf32":    UTF32BE,
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF32LE = []byte{0xFF, 0xFE, 0x00, 0x00}
	bomUTF32BE = []byte{0x00, 0x00, 0xFE, 0xFF}
)

// ParseEncoding returns the encoding with the given name. Names are case
// insensitive; "utf16" and "utf32" without a suffix are big endian.
func ParseEncoding(name string) (Encoding, error) {
	if e, ok := encodingNames[strings.ToLower(name)]; ok {
		return e, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
}

func (e Encoding) String() string {
	switch e {
	case UTF8:
		return "utf8"
	case UTF16LE:
		return "utf16le"
	case UTF16BE:
		return "utf16be"
	case UTF32LE:
		return "utf32le"
	case UTF32BE:
		return "utf32be"
	default:
		return fmt.Sprintf("Encoding(%d)", uint8(e))
	}
}

// UnitSize returns the size in bytes of one code unit.
func (e Encoding) UnitSize() int {
	switch e {
	case UTF16LE, UTF16BE:
		return 2
	case UTF32LE, UTF32BE:
		return 4
	default:
		return 1
	}
}

// ByteOrder reads and appends multi-byte code units.
type ByteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// ByteOrder returns the order of bytes within a code unit. It is nil for
// UTF-8.
func (e Encoding) ByteOrder() ByteOrder {
	switch e {
	case UTF16LE, UTF32LE:
		return binary.LittleEndian
	case UTF16BE, UTF32BE:
		return binary.BigEndian
	default:
		return nil
	}
}

// BOM returns the byte order mark of the encoding.
func (e Encoding) BOM() []byte {
	switch e {
	case UTF16LE:
		return bomUTF16LE
	case UTF16BE:
		return bomUTF16BE
	case UTF32LE:
		return bomUTF32LE
	case UTF32BE:
		return bomUTF32BE
	default:
		return bomUTF8
	}
}

// Sniff detects the encoding from the byte order mark at the start of b. It
// returns the encoding and the length of the mark, or ok false if b does not
// start with one.
func Sniff(b []byte) (e Encoding, n int, ok bool) {
	// The UTF-32LE mark starts with the UTF-16LE one.
	for _, enc := range []Encoding{UTF32LE, UTF32BE, UTF8, UTF16LE, UTF16BE} {
		if bom := enc.BOM(); bytes.HasPrefix(b, bom) {
			return enc, len(bom), true
		}
	}
	return UTF8, 0, false
}

// Input is raw text together with the encoding it is read as.
type Input struct {
	Encoding Encoding
	// Data excludes a byte order mark consumed by detection.
	Data []byte
	// BOM is the length of the byte order mark that was stripped.
	BOM int
}

// Open prepares data for decoding as the named encoding. With Auto the
// encoding comes from the byte order mark, which is stripped, and defaults to
// UTF-8 when there is none.
func Open(data []byte, name string) (Input, error) {
	if strings.EqualFold(name, Auto) {
		e, n, _ := Sniff(data)
		return Input{Encoding: e, Data: data[n:], BOM: n}, nil
	}
	e, err := ParseEncoding(name)
	if err != nil {
		return Input{}, err
	}
	return Input{Encoding: e, Data: data}, nil
}

// Units16 returns the data as 16-bit code units. The result is valid even
// when ErrPartialUnit is returned; it holds every complete unit.
func (in Input) Units16() ([]uint16, error) {
	return Units16(in.Data, in.Encoding.ByteOrder())
}

// Units32 returns the data as 32-bit code units, like Units16.
func (in Input) Units32() ([]uint32, error) {
	return Units32(in.Data, in.Encoding.ByteOrder())
}

// AppendUnits appends the serialization of units in the encoding e. The unit
// width must match e.
func AppendUnits[U uint8 | uint16 | uint32](dst []byte, units []U, e Encoding) []byte {
	switch units := any(units).(type) {
	case []uint16:
		return AppendUnits16(dst, units, e.ByteOrder())
	case []uint32:
		return AppendUnits32(dst, units, e.ByteOrder())
	case []byte:
		return append(dst, units...)
	}
	return dst
}

// Units16 splits b into 16-bit code units.
func Units16(b []byte, order binary.ByteOrder) ([]uint16, error) {
	out := make([]uint16, len(b)/2)
	for i := range out {
		out[i] = order.Uint16(b[2*i:])
	}
	if len(b)%2 != 0 {
		return out, fmt.Errorf("%w: %d trailing byte", ErrPartialUnit, len(b)%2)
	}
	return out, nil
}

// Units32 splits b into 32-bit code units.
func Units32(b []byte, order binary.ByteOrder) ([]uint32, error) {
	out := make([]uint32, len(b)/4)
	for i := range out {
		out[i] = order.Uint32(b[4*i:])
	}
	if rem := len(b) % 4; rem != 0 {
		return out, fmt.Errorf("%w: %d trailing bytes", ErrPartialUnit, rem)
	}
	return out, nil
}

// AppendUnits16 appends the serialization of units to dst.
func AppendUnits16(dst []byte, units []uint16, order binary.AppendByteOrder) []byte {
	for _, u := range units {
		dst = order.AppendUint16(dst, u)
	}
	return dst
}

// AppendUnits32 appends the serialization of units to dst.
func AppendUnits32(dst []byte, units []uint32, order binary.AppendByteOrder) []byte {
	for _, u := range units {
		dst = order.AppendUint32(dst, u)
	}
	return dst
}

func (e Encoding) text() encoding.Encoding {
	switch e {
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case UTF32LE:
		return utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM)
	case UTF32BE:
		return utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM)
	default:
		return unicode.UTF8
	}
}

// FromUTF8 converts UTF-8 text, such as a command line argument, to the
// encoding. Invalid input is replaced with U+FFFD.
func FromUTF8(text []byte, e Encoding) ([]byte, error) {
	return e.text().NewEncoder().Bytes(text)
}

// ToUTF8 converts data in the encoding to UTF-8 for display. Invalid input is
// replaced with U+FFFD.
func ToUTF8(data []byte, e Encoding) ([]byte, error) {
	return e.text().NewDecoder().Bytes(data)
}
