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

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/chardb/chardb/go/chardb/ranges"
)

var Tables = &cobra.Command{
	Use:   "tables",
	Short: "Summarizes the assigned code point tables of a Unicode version.",
	Args:  cobra.NoArgs,
	RunE:  commandTables,
}

func commandTables(cmd *cobra.Command, args []string) error {
	set, err := ranges.ForVersion(cfg.UnicodeVersion)
	if err != nil {
		return err
	}
	if err := set.Check(); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "unicode %s\n", set.Version)

	table := tablewriter.NewWriter(w)
	table.Header("Table", "Ranges", "Code Points")
	row := func(name string, t ranges.Table) error {
		return table.Append([]string{name, humanize.Comma(int64(len(t))), humanize.Comma(int64(t.Count()))})
	}
	for i, t := range set.UTF8 {
		if err := row(fmt.Sprintf("utf8 %d-byte", i+1), t); err != nil {
			return err
		}
	}
	for _, named := range []struct {
		name  string
		table ranges.Table
	}{
		{"utf16 bmp", set.BMP},
		{"utf16 non-bmp", set.NonBMP},
		{"utf32", set.UTF32},
	} {
		if err := row(named.name, named.table); err != nil {
			return err
		}
	}
	return table.Render()
}

func init() {
	Root.AddCommand(Tables)
}
