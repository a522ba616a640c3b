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
	"bytes"
	"fmt"
	"io"
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/chardb/chardb/go/chardb/codec"
	"github.com/chardb/chardb/go/chardb/unitio"
	"github.com/chardb/chardb/go/log"
)

var Validate = &cobra.Command{
	Use:   "validate [file...]",
	Short: "Checks that the input consists only of valid characters.",
	Long: "Checks that each input consists only of valid, assigned characters.\n" +
		"On failure the offset of the first invalid code unit and the reason are reported and the command fails.\n" +
		"Several files are checked concurrently.",
	Args: cobra.ArbitraryArgs,
	RunE: commandValidate,
}

func commandValidate(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	reports := make([]bytes.Buffer, len(paths))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			err := validateInput(cmd, path, &reports[i])
			if err != nil && len(paths) > 1 {
				return fmt.Errorf("%s: %w", path, err)
			}
			return err
		})
	}
	err := g.Wait()

	w := cmd.OutOrStdout()
	for i := range reports {
		if reports[i].Len() == 0 {
			continue
		}
		if len(paths) > 1 {
			fmt.Fprintf(w, "%s: ", paths[i])
		}
		_, _ = reports[i].WriteTo(w)
	}
	return err
}

func validateInput(cmd *cobra.Command, path string, w io.Writer) error {
	in, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	return dispatch(in,
		func(units []byte) error { return validate[codec.UTF8](w, in.Encoding, units) },
		func(units []uint16) error { return validate[codec.UTF16](w, in.Encoding, units) },
		func(units []uint32) error { return validate[codec.UTF32](w, in.Encoding, units) },
	)
}

func validate[C codec.Codec[U], U codec.Unit](w io.Writer, enc unitio.Encoding, units []U) error {
	if codec.ValidateCharSequence[C](units) {
		fmt.Fprintf(w, "valid %s: %s characters in %s code units\n", enc,
			humanize.Comma(int64(codec.CharSize[C](units))), humanize.Comma(int64(len(units))))
		return nil
	}

	err := codec.Checked[C, U]{Policy: codec.PolicyStructured}.ValidateCharSequence(units)
	if code, ok := codec.CodeOf(err); ok {
		log.DebugS("validation failed", "encoding", enc.String(), "code", code.String())
	}
	return err
}

func init() {
	Root.AddCommand(Validate)
}
