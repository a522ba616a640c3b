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
	"io"

	"github.com/spf13/cobra"

	"github.com/chardb/chardb/go/chardb/codec"
	"github.com/chardb/chardb/go/chardb/views"
	"github.com/chardb/chardb/go/utils"
)

var Decode = &cobra.Command{
	Use:   "decode [file]",
	Short: "Lists every character of the input with its offset, code units and code point.",
	Long: "Walks the input one character at a time and prints the unit offset, the code units\n" +
		"and the code point of each. The walk stops at the first invalid position, which is reported as an error.\n" +
		"--max-report limits the number of characters listed.",
	Args: cobra.MaximumNArgs(1),
	RunE: commandDecode,
}

var reverse bool

func commandDecode(cmd *cobra.Command, args []string) error {
	in, err := readInput(cmd, inputPath(args))
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	return dispatch(in,
		func(units []byte) error { return decode[codec.UTF8](w, units, cfg.MaxReport) },
		func(units []uint16) error { return decode[codec.UTF16](w, units, cfg.MaxReport) },
		func(units []uint32) error { return decode[codec.UTF32](w, units, cfg.MaxReport) },
	)
}

func decode[C codec.Codec[U], U codec.Unit](w io.Writer, units []U, limit int) error {
	d := views.NewDecoding[C](units)

	if reverse {
		start, listed := len(units), 0
		for off, ch := range d.Backward() {
			if limit > 0 && listed == limit {
				fmt.Fprintln(w, "...")
				return nil
			}
			printChar[C](w, off, ch)
			start = off
			listed++
		}
		if start > 0 {
			// The walk stopped on units that end no valid character.
			return codec.Checked[C, U]{Policy: codec.PolicyStructured}.ValidateCharSequence(units)
		}
		return nil
	}

	listed := 0
	for c := d.Begin(); !c.Done(); c = c.Next() {
		if !c.Valid() {
			return codec.Checked[C, U]{Policy: codec.PolicyStructured}.ValidateCharSequence(units)
		}
		if limit > 0 && listed == limit {
			fmt.Fprintln(w, "...")
			return nil
		}
		printChar[C](w, c.Offset(), c.Char())
		listed++
	}
	return nil
}

func printChar[C codec.Codec[U], U codec.Unit](w io.Writer, off int, ch []U) {
	var c C
	fmt.Fprintf(w, "%8d  %-23s  %U\n", off, hexUnits(ch), c.ToCodePoint(ch))
}

func init() {
	utils.SetFlagBoolVar(Decode.Flags(), &reverse, "reverse", reverse, "List characters from the end of the input backwards, stopping at the first invalid position.")
	Root.AddCommand(Decode)
}
