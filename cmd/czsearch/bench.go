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
	"bufio"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sjzar/czsearch/czdb"
	"github.com/sjzar/czsearch/internal/bench"
)

func newBenchCmd() *cobra.Command {
	var addrFile, outFile string

	cmd := &cobra.Command{
		Use:   "bench <db> <key>",
		Short: "Run the same address list through Memory and BTree mode and diff the results",
		Long: "bench opens the same database twice, once in each search mode, queries every\n" +
			"address in --addrs against both, and reports whether the two modes ever\n" +
			"disagree. Used to exercise the dual-strategy equivalence property at scale.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd, args[0], args[1], addrFile, outFile)
		},
	}
	cmd.Flags().StringVar(&addrFile, "addrs", "", "file of newline-separated addresses to query (required)")
	cmd.Flags().StringVar(&outFile, "out", "", "write the msgpack result report to this path (optional)")
	_ = cmd.MarkFlagRequired("addrs")

	return cmd
}

func runBench(cmd *cobra.Command, dbPath, key, addrFile, outFile string) error {
	buf, err := os.ReadFile(dbPath)
	if err != nil {
		return err
	}

	addrs, err := readAddrs(addrFile)
	if err != nil {
		return err
	}

	mem, err := czdb.Open(buf, key, czdb.MemoryMode)
	if err != nil {
		return fmt.Errorf("czsearch: opening memory-mode searcher: %w", err)
	}
	defer mem.Close()

	bt, err := czdb.Open(buf, key, czdb.BTreeMode)
	if err != nil {
		return fmt.Errorf("czsearch: opening btree-mode searcher: %w", err)
	}
	defer bt.Close()

	bar := progressbar.Default(int64(len(addrs)), "benchmarking")

	report, err := bench.Run(mem, bt, addrs, bar)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"queries":   len(addrs),
		"identical": report.Identical,
		"mismatch":  len(report.Mismatch),
	}).Info("bench complete")

	if !report.Identical {
		for _, a := range report.Mismatch {
			logrus.WithField("addr", a).Warn("memory and btree modes disagreed")
		}
	}

	if outFile != "" {
		data, err := report.Marshal()
		if err != nil {
			return err
		}
		if err := os.WriteFile(outFile, data, 0o644); err != nil {
			return err
		}
	}

	return nil
}

func readAddrs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var addrs []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		addrs = append(addrs, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return addrs, nil
}
