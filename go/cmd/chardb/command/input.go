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

package command

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/chardb/chardb/go/chardb/codec"
	"github.com/chardb/chardb/go/chardb/unitio"
	"github.com/chardb/chardb/go/log"
)

// ErrNoInput is returned when input would be read from an interactive
// terminal.
var ErrNoInput = errors.New("no input: pass a file or pipe data to stdin")

// inputPath is the single optional file argument, or stdin.
func inputPath(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}

// readInput reads the file at path, or stdin for "-", and prepares it for the
// configured encoding.
func readInput(cmd *cobra.Command, path string) (unitio.Input, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		stdin := cmd.InOrStdin()
		if f, ok := stdin.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
			return unitio.Input{}, ErrNoInput
		}
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return unitio.Input{}, fmt.Errorf("failed to read input: %w", err)
	}

	in, err := unitio.Open(data, cfg.Encoding)
	if err != nil {
		return unitio.Input{}, err
	}
	log.DebugS("read input", "path", path, "bytes", len(data), "encoding", in.Encoding.String(), "bom", in.BOM)
	return in, nil
}

// dispatch runs the function matching the code unit width of in.
func dispatch(in unitio.Input, f8 func([]byte) error, f16 func([]uint16) error, f32 func([]uint32) error) error {
	switch in.Encoding.UnitSize() {
	case 2:
		units, err := in.Units16()
		if err != nil {
			return fmt.Errorf("%s input: %w", in.Encoding, err)
		}
		return f16(units)
	case 4:
		units, err := in.Units32()
		if err != nil {
			return fmt.Errorf("%s input: %w", in.Encoding, err)
		}
		return f32(units)
	default:
		return f8(in.Data)
	}
}

// hexUnits formats code units as space separated, zero padded hex.
func hexUnits[U codec.Unit](units []U) string {
	var zero U
	width := 2
	switch any(zero).(type) {
	case uint16:
		width = 4
	case uint32:
		width = 8
	}
	parts := make([]string, len(units))
	for i, u := range units {
		parts[i] = fmt.Sprintf("%0*X", width, uint32(u))
	}
	return strings.Join(parts, " ")
}

// parseCodePoint accepts U+XXXX, 0xXXXX or bare hex.
func parseCodePoint(s string) (rune, error) {
	digits := s
	for _, prefix := range []string{"U+", "u+", "0x", "0X"} {
		if rest, ok := strings.CutPrefix(s, prefix); ok {
			digits = rest
			break
		}
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil || digits == "" {
		return 0, fmt.Errorf("invalid code point %q", s)
	}
	return rune(v), nil
}
