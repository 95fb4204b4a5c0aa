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

package main

import (
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sjzar/czsearch/czdb"
)

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <db> <key> <addr...>",
		Short: "Look up one or more addresses in a CZDB database",
		Args:  cobra.MinimumNArgs(3),
		RunE:  runQuery,
	}
	return cmd
}

func runQuery(cmd *cobra.Command, args []string) error {
	dbPath, key, addrs := args[0], args[1], args[2:]

	mode, err := resolveMode()
	if err != nil {
		return err
	}

	buf, err := os.ReadFile(dbPath)
	if err != nil {
		return err
	}

	start := time.Now()
	s, err := czdb.Open(buf, key, mode)
	if err != nil {
		return err
	}
	defer s.Close()
	stats, err := s.Stats()
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"mode":      mode,
		"rows":      stats.RowCount,
		"bootstrap": time.Since(start),
	}).Debug("opened database")

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"address", "region", "error"})

	for _, a := range addrs {
		region, err := s.Search(a)
		errText := ""
		if err != nil {
			errText = err.Error()
			logrus.WithError(err).WithField("addr", a).Debug("query failed")
		}
		table.Append([]string{a, strings.ReplaceAll(region, "\t", " / "), errText})
	}

	table.Render()
	return nil
}
