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

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/chardb/chardb/go/chardb/codec"
	"github.com/chardb/chardb/go/chardb/views"
	"github.com/chardb/chardb/go/utils"
)

var Index = &cobra.Command{
	Use:   "index [file] --at N...",
	Short: "Indexes every character of the input and looks characters up by position.",
	Long: "Builds a character index of the input and prints the characters at the requested positions,\n" +
		"followed by the size of the index.",
	Args: cobra.MaximumNArgs(1),
	RunE: commandIndex,
}

var at []int

func commandIndex(cmd *cobra.Command, args []string) error {
	in, err := readInput(cmd, inputPath(args))
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	return dispatch(in,
		func(units []byte) error { return index[codec.UTF8](w, units, at) },
		func(units []uint16) error { return index[codec.UTF16](w, units, at) },
		func(units []uint32) error { return index[codec.UTF32](w, units, at) },
	)
}

func index[C codec.Codec[U], U codec.Unit](w io.Writer, units []U, ranks []int) error {
	d := views.NewDecoded[C](units)

	for _, r := range ranks {
		ch := d.At(r)
		if ch == nil {
			fmt.Fprintf(w, "%8d  out of range\n", r)
			continue
		}
		fmt.Fprintf(w, "%8d  %8d  %-23s  %U\n", r, d.Offset(r), hexUnits(ch), d.CodePoint(r))
	}
	fmt.Fprintf(w, "%s characters, index %s\n", humanize.Comma(int64(d.Len())), humanize.IBytes(uint64(d.IndexSize())))
	return nil
}

func init() {
	utils.SetFlagIntSliceVar(Index.Flags(), &at, "at", at, "Character positions to print, counted from 0.")
	Root.AddCommand(Index)
}
