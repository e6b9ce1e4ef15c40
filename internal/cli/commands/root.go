// Copyright 2025 TouchGo Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"touchgo/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersion sets the version info for the --version flag.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
}

var (
	cfgPath  string
	logLevel string
	bundleID string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "touchgo",
	Short: "Inspect and seed the guest filesystem of an emulated iOS app",
	Long: `touchgo exposes the guest filesystem an emulated iOS app would see:
the app bundle, its sandboxed Documents directory and the bundled dylibs.
Run it from the directory holding touchHLE_sandbox/ and touchHLE_dylibs/.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		path := cfgPath
		if path == "" {
			path = config.DefaultPath()
		}
		c, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load config %q: %w", path, err)
		}
		if logLevel != "" {
			c.LogLevel = logLevel
		}
		if err := c.ApplyLogLevel(); err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
		cfg = c
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default: $TOUCHGO_CONFIG or ./touchgo.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&bundleID, "bundle-id", "", "bundle identifier (default: bundle directory name without .app)")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate("touchgo version {{.Version}}\n")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
