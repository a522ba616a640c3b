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

// Package utils contains helpers for registering command line flags.
package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/spf13/pflag"
)

// flagVariants returns two variants of the flag name:
// one with dashes replaced by underscores and one with underscores replaced by dashes.
func flagVariants(name string) (underscored, dashed string) {
	prefix := "--"
	if strings.HasPrefix(name, prefix) {
		nameWithoutPrefix := strings.TrimPrefix(name, prefix)
		underscored = prefix + strings.ReplaceAll(nameWithoutPrefix, "-", "_")
		dashed = prefix + strings.ReplaceAll(nameWithoutPrefix, "_", "-")
	} else {
		underscored = strings.ReplaceAll(name, "-", "_")
		dashed = strings.ReplaceAll(name, "_", "-")
	}
	return
}

// warnings receives flag naming warnings.
var warnings io.Writer = os.Stderr

// setFlagVar is a generic helper for registering flags.
// setFunc should be a function with signature func(fs *pflag.FlagSet, p *T, name string, def T, usage string)
func setFlagVar[T any](fs *pflag.FlagSet, p *T, name string, def T, usage string,
	setFunc func(fs *pflag.FlagSet, p *T, name string, def T, usage string)) {
	if strings.Contains(name, "_") {
		fmt.Fprintf(warnings, "[WARNING] Please use flag names with dashes instead of underscores: %s\n", name)
	}

	setFunc(fs, p, name, def, usage)
}

func SetFlagIntVar(fs *pflag.FlagSet, p *int, name string, def int, usage string) {
	setFlagVar(fs, p, name, def, usage, (*pflag.FlagSet).IntVar)
}

func SetFlagBoolVar(fs *pflag.FlagSet, p *bool, name string, def bool, usage string) {
	setFlagVar(fs, p, name, def, usage, (*pflag.FlagSet).BoolVar)
}

func SetFlagStringVar(fs *pflag.FlagSet, p *string, name string, def string, usage string) {
	setFlagVar(fs, p, name, def, usage, (*pflag.FlagSet).StringVar)
}

func SetFlagIntSliceVar(fs *pflag.FlagSet, p *[]int, name string, def []int, usage string) {
	setFlagVar(fs, p, name, def, usage, (*pflag.FlagSet).IntSliceVar)
}

// SetFlagVar registers a flag that implements the pflag.Value interface.
func SetFlagVar(fs *pflag.FlagSet, value pflag.Value, name, usage string) {
	if strings.Contains(name, "_") {
		fmt.Fprintf(warnings, "[WARNING] Please use flag names with dashes instead of underscores: %s\n", name)
	}
	fs.Var(value, name, usage)
}

var (
	deprecationWarningsMu      sync.Mutex
	deprecationWarningsEmitted = make(map[string]bool)
)

// NormalizeUnderscoresToDashes translates flag names from underscores to
// dashes and prints a deprecation warning the first time each one is seen.
func NormalizeUnderscoresToDashes(f *pflag.FlagSet, name string) pflag.NormalizedName {
	// `log_dir`, `log_link` and `log_backtrace_at` are exceptions because they are used by glog.
	if name == "log_dir" || name == "log_link" || name == "log_backtrace_at" {
		return pflag.NormalizedName(name)
	}

	// We only want to normalize flags that purely use underscores.
	if !strings.Contains(name, "_") || strings.Contains(name, "-") {
		return pflag.NormalizedName(name)
	}

	normalizedName := strings.ReplaceAll(name, "_", "-")

	deprecationWarningsMu.Lock()
	defer deprecationWarningsMu.Unlock()
	if !deprecationWarningsEmitted[name] {
		deprecationWarningsEmitted[name] = true
		fmt.Fprintf(warnings, "Flag --%s has been deprecated, use --%s instead \n", name, normalizedName)
	}

	return pflag.NormalizedName(normalizedName)
}
