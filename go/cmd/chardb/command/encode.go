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
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chardb/chardb/go/chardb/codec"
	"github.com/chardb/chardb/go/chardb/unitio"
	"github.com/chardb/chardb/go/utils"
)

var Encode = &cobra.Command{
	Use:   "encode <code point>...",
	Short: "Prints the encoding of code points, given as U+XXXX, 0xXXXX or hex.",
	Long: "Prints the bytes of each code point in the selected encoding.\n" +
		"With --text the argument is a UTF-8 string that is converted as a whole.",
	Example: "chardb encode --encoding utf16le U+1F44D\n" +
		"chardb encode --encoding utf32be --text héllo",
	Args: cobra.MinimumNArgs(1),
	RunE: commandEncode,
}

var encodeText bool

func commandEncode(cmd *cobra.Command, args []string) error {
	enc, err := outputEncoding()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if encodeText {
		for _, arg := range args {
			// x/text substitutes U+FFFD for bad input, so check against the
			// assigned tables first.
			if arg != "" {
				if err := (codec.Checked[codec.UTF8, byte]{Policy: codec.PolicyFormatted}).ValidateCharSequence([]byte(arg)); err != nil {
					return fmt.Errorf("failed to encode %q: %w", arg, err)
				}
			}
			b, err := unitio.FromUTF8([]byte(arg), enc)
			if err != nil {
				return fmt.Errorf("failed to encode %q: %w", arg, err)
			}
			fmt.Fprintf(w, "%q\t%s\n", arg, hexUnits(b))
		}
		return nil
	}

	for _, arg := range args {
		cp, err := parseCodePoint(arg)
		if err != nil {
			return err
		}
		b, err := encodeCodePoint(enc, cp)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%U\t%s\n", cp, hexUnits(b))
	}
	return nil
}

// outputEncoding is the configured encoding. Auto has nothing to sniff when
// encoding and means UTF-8.
func outputEncoding() (unitio.Encoding, error) {
	if strings.EqualFold(cfg.Encoding, unitio.Auto) {
		return unitio.UTF8, nil
	}
	return unitio.ParseEncoding(cfg.Encoding)
}

func encodeCodePoint(enc unitio.Encoding, cp rune) ([]byte, error) {
	switch enc.UnitSize() {
	case 2:
		units, err := codec.Checked[codec.UTF16, uint16]{Policy: codec.PolicyFormatted}.CodePointTo(cp)
		return unitio.AppendUnits(nil, units, enc), err
	case 4:
		units, err := codec.Checked[codec.UTF32, uint32]{Policy: codec.PolicyFormatted}.CodePointTo(cp)
		return unitio.AppendUnits(nil, units, enc), err
	default:
		return codec.Checked[codec.UTF8, byte]{Policy: codec.PolicyFormatted}.CodePointTo(cp)
	}
}

func init() {
	utils.SetFlagBoolVar(Encode.Flags(), &encodeText, "text", encodeText, "Treat the arguments as UTF-8 text instead of code points.")
	Root.AddCommand(Encode)
}
