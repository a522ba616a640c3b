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
	"errors"
	"fmt"
)

var (
	// ErrDecode is matched by every decoding error returned by Checked.
	ErrDecode = errors.New("invalid character sequence")
	// ErrEncode is matched by every encoding error returned by Checked.
	ErrEncode = errors.New("code point cannot be encoded")
)

// Policy selects how much detail Checked puts into its errors. Control flow
// is the same under every policy.
type Policy uint8

const (
	// PolicyNothing returns the bare ErrDecode and ErrEncode sentinels.
	PolicyNothing Policy = iota
	// PolicyCode returns an error carrying only a Code.
	PolicyCode
	// PolicyFormatted returns a human readable message with the reason and
	// the position of the failure.
	PolicyFormatted
	// PolicyStructured returns *DecodeError and *EncodeError values.
	PolicyStructured
)

// Code is the reason a sequence failed to decode or a code point failed to
// encode.
type Code uint8

const (
	CodeOK Code = iota
	CodeEmpty
	CodeTruncated
	CodeMalformed
	CodeUnassigned
	CodeTrailing
	CodeOutOfRange
	CodeBufferTooSmall
)

var codeNames = [...]string{
	CodeOK:             "ok",
	CodeEmpty:          "empty sequence",
	CodeTruncated:      "truncated character",
	CodeMalformed:      "malformed code units",
	CodeUnassigned:     "unassigned or overlong code point",
	CodeTrailing:       "trailing code units after character",
	CodeOutOfRange:     "code point out of range",
	CodeBufferTooSmall: "destination buffer too small",
}

func (c Code) String() string {
	if int(c) < len(codeNames) {
		return codeNames[c]
	}
	return fmt.Sprintf("Code(%d)", uint8(c))
}

// Diagnoser is implemented by codecs that can explain a decoding failure.
type Diagnoser[U Unit] interface {
	// Diagnose returns why seq does not start with a valid character, or
	// CodeOK if it does.
	Diagnose(seq []U) Code
}

type codeError struct {
	code Code
	base error
}

func (e *codeError) Error() string {
	return e.code.String()
}

func (e *codeError) Unwrap() error {
	return e.base
}

// DecodeError is returned under PolicyStructured.
type DecodeError struct {
	Encoding string
	// Offset is the code unit offset of the failure in the input.
	Offset int
	Code   Code
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %s at unit offset %d", e.Encoding, e.Code, e.Offset)
}

func (e *DecodeError) Unwrap() error {
	return ErrDecode
}

// EncodeError is returned under PolicyStructured.
type EncodeError struct {
	Encoding  string
	CodePoint rune
	Code      Code
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("%s: cannot encode %U: %s", e.Encoding, e.CodePoint, e.Code)
}

func (e *EncodeError) Unwrap() error {
	return ErrEncode
}

// CodeOf extracts the Code from an error returned by Checked. It reports
// false for errors that carry no code, such as those of PolicyNothing.
func CodeOf(err error) (Code, bool) {
	var ce *codeError
	if errors.As(err, &ce) {
		return ce.code, true
	}
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Code, true
	}
	var ee *EncodeError
	if errors.As(err, &ee) {
		return ee.Code, true
	}
	return CodeOK, false
}

// Checked wraps the operations of a codec so that failures are reported as
// errors whose detail depends on Policy.
type Checked[C Codec[U], U Unit] struct {
	Policy Policy
}

func encodingName[C any]() string {
	var c C
	if n, ok := any(c).(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", c)
}

func (ch Checked[C, U]) decodeError(seq []U, offset int, code Code) error {
	if code == CodeOK {
		var c C
		code = CodeMalformed
		if d, ok := any(c).(Diagnoser[U]); ok {
			code = d.Diagnose(seq)
		}
		if code == CodeOK {
			// seq starts with a valid character but is not one.
			code = CodeTrailing
		}
	}
	switch ch.Policy {
	case PolicyNothing:
		return ErrDecode
	case PolicyCode:
		return &codeError{code, ErrDecode}
	case PolicyFormatted:
		return fmt.Errorf("%s: %w at unit offset %d", encodingName[C](), &codeError{code, ErrDecode}, offset)
	default:
		return &DecodeError{Encoding: encodingName[C](), Offset: offset, Code: code}
	}
}

func (ch Checked[C, U]) encodeError(cp rune, code Code) error {
	if code == CodeOK {
		code = CodeUnassigned
		if i := uint32(cp); i > 0x10ffff || (0xd800 <= i && i < 0xe000) {
			code = CodeOutOfRange
		}
	}
	switch ch.Policy {
	case PolicyNothing:
		return ErrEncode
	case PolicyCode:
		return &codeError{code, ErrEncode}
	case PolicyFormatted:
		return fmt.Errorf("%s: cannot encode %U: %w", encodingName[C](), cp, &codeError{code, ErrEncode})
	default:
		return &EncodeError{Encoding: encodingName[C](), CodePoint: cp, Code: code}
	}
}

func (ch Checked[C, U]) FrontMBLen(seq []U) (int, error) {
	if len(seq) == 0 {
		return 0, ch.decodeError(seq, 0, CodeEmpty)
	}
	var c C
	n := c.FrontMBLen(seq)
	if n == 0 {
		return 0, ch.decodeError(seq, 0, CodeOK)
	}
	return n, nil
}

// ToCodePoint decodes seq, which must be exactly one valid character.
func (ch Checked[C, U]) ToCodePoint(seq []U) (rune, error) {
	if err := ch.IsValidChar(seq); err != nil {
		return RuneError, err
	}
	var c C
	return c.ToCodePoint(seq), nil
}

func (ch Checked[C, U]) CodeUnitSize(cp rune) (int, error) {
	var c C
	n := c.CodeUnitSize(cp)
	if n == 0 {
		return 0, ch.encodeError(cp, CodeOK)
	}
	return n, nil
}

func (ch Checked[C, U]) CodePointOn(cp rune, dst []U) (int, error) {
	n, err := ch.CodeUnitSize(cp)
	if err != nil {
		return 0, err
	}
	if len(dst) < n {
		return 0, ch.encodeError(cp, CodeBufferTooSmall)
	}
	var c C
	return c.CodePointOn(cp, dst), nil
}

func (ch Checked[C, U]) CharSize(seq []U) (int, error) {
	if len(seq) == 0 {
		return 0, ch.decodeError(seq, 0, CodeEmpty)
	}
	return CharSize[C](seq), nil
}

func (ch Checked[C, U]) IsValidChar(seq []U) error {
	if len(seq) == 0 {
		return ch.decodeError(seq, 0, CodeEmpty)
	}
	if !IsValidChar[C](seq) {
		return ch.decodeError(seq, 0, CodeOK)
	}
	return nil
}

func (ch Checked[C, U]) StartsWithValidChar(seq []U) error {
	_, err := ch.FrontMBLen(seq)
	return err
}

// ValidateCharSequence reports the first position of seq that does not start
// a valid character.
func (ch Checked[C, U]) ValidateCharSequence(seq []U) error {
	if len(seq) == 0 {
		return ch.decodeError(seq, 0, CodeEmpty)
	}
	if off := ValidPrefix[C](seq); off != len(seq) {
		return ch.decodeError(seq[off:], off, CodeOK)
	}
	return nil
}

func (ch Checked[C, U]) CodePointTo(cp rune) ([]U, error) {
	if _, err := ch.CodeUnitSize(cp); err != nil {
		return nil, err
	}
	return CodePointTo[C, U](cp), nil
}
