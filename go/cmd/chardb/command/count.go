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
	"github.com/chardb/chardb/go/chardb/unitio"
)

var Count = &cobra.Command{
	Use:   "count [file]",
	Short: "Counts the characters of the input.",
	Long: "Counts the characters of the input up to the first invalid position,\n" +
		"along with the code units and bytes they occupy.",
	Args: cobra.MaximumNArgs(1),
	RunE: commandCount,
}

func commandCount(cmd *cobra.Command, args []string) error {
	in, err := readInput(cmd, inputPath(args))
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	return dispatch(in,
		func(units []byte) error { return count[codec.UTF8](w, in, units) },
		func(units []uint16) error { return count[codec.UTF16](w, in, units) },
		func(units []uint32) error { return count[codec.UTF32](w, in, units) },
	)
}

func count[C codec.Codec[U], U codec.Unit](w io.Writer, in unitio.Input, units []U) error {
	valid := codec.ValidPrefix[C](units)

	fmt.Fprintf(w, "encoding:   %s\n", in.Encoding)
	fmt.Fprintf(w, "characters: %s\n", humanize.Comma(int64(codec.CharSize[C](units))))
	fmt.Fprintf(w, "code units: %s\n", humanize.Comma(int64(len(units))))
	fmt.Fprintf(w, "bytes:      %s\n", humanize.IBytes(uint64(len(in.Data))))
	if valid != len(units) {
		fmt.Fprintf(w, "invalid:    from code unit %d\n", valid)
	}
	return nil
}

func init() {
	Root.AddCommand(Count)
}
