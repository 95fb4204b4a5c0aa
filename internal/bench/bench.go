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

// Package bench drives a bulk, mixed-address query run against both a
// Memory-mode and a BTree-mode Searcher over the same database and key,
// to exercise the dual-strategy equivalence property at scale: the
// result file must be byte-identical between modes.
package bench

import (
	"errors"
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/sjzar/czsearch/czdb"
)

// Result is one address's outcome from a single Searcher.
type Result struct {
	Addr   string `msgpack:"addr"`
	Region string `msgpack:"region,omitempty"`
	Err    string `msgpack:"err,omitempty"`
}

// Report is the serialized output of a Run: every address's result from
// both modes, plus whether they agreed on every one.
type Report struct {
	Memory    []Result `msgpack:"memory"`
	BTree     []Result `msgpack:"btree"`
	Identical bool     `msgpack:"identical"`
	Mismatch  []string `msgpack:"mismatch,omitempty"`
}

// Run queries every address in addrs against both searchers and compares
// results pairwise. bar may be nil; when non-nil it receives one Add(1)
// per address.
func Run(mem, bt *czdb.Searcher, addrs []string, bar *progressbar.ProgressBar) (Report, error) {
	if mem == nil || bt == nil {
		return Report{}, errors.New("bench: both a memory-mode and a btree-mode searcher are required")
	}

	report := Report{
		Memory:    make([]Result, 0, len(addrs)),
		BTree:     make([]Result, 0, len(addrs)),
		Identical: true,
	}

	for _, a := range addrs {
		mr := queryOne(mem, a)
		br := queryOne(bt, a)

		report.Memory = append(report.Memory, mr)
		report.BTree = append(report.BTree, br)

		if mr.Region != br.Region || mr.Err != br.Err {
			report.Identical = false
			report.Mismatch = append(report.Mismatch, a)
		}

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	return report, nil
}

func queryOne(s *czdb.Searcher, a string) Result {
	region, err := s.Search(a)
	r := Result{Addr: a, Region: region}
	if err != nil {
		r.Err = err.Error()
	}
	return r
}

// Marshal serializes the whole report (both modes' results plus the
// comparison outcome) to msgpack. The per-mode result files that must be
// byte-identical come from MarshalPerMode.
func (r Report) Marshal() ([]byte, error) {
	return msgpack.Marshal(r)
}

// MarshalPerMode serializes each mode's result list independently, so
// callers can compare memFile and btFile byte for byte.
func (r Report) MarshalPerMode() (memFile, btFile []byte, err error) {
	memFile, err = msgpack.Marshal(r.Memory)
	if err != nil {
		return nil, nil, err
	}
	btFile, err = msgpack.Marshal(r.BTree)
	if err != nil {
		return nil, nil, err
	}
	return memFile, btFile, nil
}

// Unmarshal decodes a Report previously produced by Marshal.
func Unmarshal(data []byte) (Report, error) {
	var r Report
	if err := msgpack.Unmarshal(data, &r); err != nil {
		return Report{}, fmt.Errorf("bench: decode report: %w", err)
	}
	return r, nil
}
