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
	"unicode"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/chardb/chardb/go/chardb/unitio"
	"github.com/chardb/chardb/go/log"
	"github.com/chardb/chardb/go/utils"
)

// settings are the values shared by every command. Each can come from a
// flag, a CHARDB_* environment variable or the config file, in that order of
// precedence.
type settings struct {
	Encoding       string
	UnicodeVersion string
	MaxReport      int
}

var (
	configFile     string
	encodingName   = "utf8"
	unicodeVersion = unicode.Version
	maxReport      = 0

	cfg settings

	Root = &cobra.Command{
		Use:   "chardb",
		Short: "chardb validates, inspects and encodes UTF-8, UTF-16 and UTF-32 text.",
		Long: "`chardb` checks code unit sequences against the assigned Unicode code points.\n\n" +
			"Input is read from a file, or from stdin when the path is omitted or `-`.\n" +
			"Settings can also be given as CHARDB_* environment variables or in a config file.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := log.Init(cmd.Flags()); err != nil {
				return err
			}

			var err error
			cfg, err = loadSettings(cmd.Flags())
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			log.Flush()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}
)

// settingKeys are the persistent flags that viper binds.
var settingKeys = []string{"encoding", "unicode-version", "max-report"}

func loadSettings(fs *pflag.FlagSet) (settings, error) {
	v := viper.New()
	v.SetEnvPrefix("chardb")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, key := range settingKeys {
		if err := v.BindPFlag(key, fs.Lookup(key)); err != nil {
			return settings{}, err
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return settings{}, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
		log.DebugS("loaded config", "file", v.ConfigFileUsed())
	}

	s := settings{
		Encoding:       v.GetString("encoding"),
		UnicodeVersion: v.GetString("unicode-version"),
		MaxReport:      v.GetInt("max-report"),
	}
	if !strings.EqualFold(s.Encoding, unitio.Auto) {
		if _, err := unitio.ParseEncoding(s.Encoding); err != nil {
			return settings{}, err
		}
	}
	if s.MaxReport < 0 {
		return settings{}, fmt.Errorf("max-report must not be negative, got %d", s.MaxReport)
	}
	return s, nil
}

func init() {
	// Subcommands parse with their own merged flag sets, so the normalization
	// has to reach every command.
	Root.SetGlobalNormalizationFunc(utils.NormalizeUnderscoresToDashes)

	fs := Root.PersistentFlags()

	utils.SetFlagStringVar(fs, &configFile, "config", configFile, "Path to a config file (yaml, json or toml) providing defaults for the flags below.")
	utils.SetFlagStringVar(fs, &encodingName, "encoding", encodingName, "Input encoding: utf8, utf16le, utf16be, utf32le, utf32be, or auto to detect it from a byte order mark.")
	utils.SetFlagStringVar(fs, &unicodeVersion, "unicode-version", unicodeVersion, "Unicode version whose assigned code points the tables command reports.")
	utils.SetFlagIntVar(fs, &maxReport, "max-report", maxReport, "Maximum number of characters listed by decode (0 means no limit).")

	log.RegisterFlags(fs)
}
