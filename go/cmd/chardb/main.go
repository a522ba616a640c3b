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

// chardb validates, inspects and encodes UTF-8, UTF-16 and UTF-32 text.
package main

import (
	goflag "flag"
	"os"

	"github.com/chardb/chardb/go/cmd/chardb/command"
	"github.com/chardb/chardb/go/log"
)

func main() {
	// A command line tool reports to the terminal unless told otherwise.
	_ = goflag.Set("logtostderr", "true")

	if err := command.Root.Execute(); err != nil {
		log.ErrorS("chardb failed", "error", err)
		log.Flush()
		os.Exit(1)
	}
}
