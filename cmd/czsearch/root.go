/*
 * Copyright (c) 2025 shenjunzheng@gmail.com
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Command czsearch is the CLI host around package czdb: it never reaches
// into czdb's internals, only its public Open/Search/Stats/Close surface.
package main

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sjzar/czsearch/czdb"
)

var (
	cfgFile  string
	logLevel string
	modeFlag string
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "czsearch",
		Short:         "Query CZDB-format IP geolocation databases",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			initConfig()
			return initLogging()
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.czsearch.yaml)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&modeFlag, "mode", "memory", "search mode: memory or btree")

	_ = viper.BindPFlag("log-level", cmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("mode", cmd.PersistentFlags().Lookup("mode"))

	cmd.AddCommand(newQueryCmd())
	cmd.AddCommand(newBenchCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".czsearch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("$HOME")
		viper.AddConfigPath(".")
	}
	viper.SetEnvPrefix("czsearch")
	viper.AutomaticEnv()
	// No config file is required; CLI flags and defaults are sufficient
	// on their own.
	_ = viper.ReadInConfig()
}

func initLogging() error {
	level, err := logrus.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		return fmt.Errorf("czsearch: invalid --log-level: %w", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}

func resolveMode() (czdb.Mode, error) {
	switch strings.ToLower(viper.GetString("mode")) {
	case "memory", "":
		return czdb.MemoryMode, nil
	case "btree":
		return czdb.BTreeMode, nil
	default:
		return 0, fmt.Errorf("czsearch: unknown mode %q (want memory or btree)", viper.GetString("mode"))
	}
}
