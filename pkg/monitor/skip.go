// Copyright 2025 Alibaba Group Holding Ltd.
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

package monitor

import (
	"errors"
	"io/fs"
	"syscall"

	"github.com/shirou/gopsutil/v3/process"
)

// SkipReason explains why a process produced no record.
type SkipReason string

const (
	SkipNone         SkipReason = ""
	SkipVanished     SkipReason = "vanished"
	SkipAccessDenied SkipReason = "access_denied"
	SkipZombie       SkipReason = "zombie"
	SkipUnreadable   SkipReason = "unreadable"
)

// ProcessResult is the outcome of reading one process: a record, or the
// reason it was skipped.
type ProcessResult struct {
	PID    int32
	Record *ProcessRecord
	Skip   SkipReason
	Err    error
}

// OK reports whether the result carries a record.
func (r ProcessResult) OK() bool {
	return r.Skip == SkipNone && r.Record != nil
}

// classifySkip maps a per-process read error to a skip reason.
func classifySkip(err error) SkipReason {
	switch {
	case err == nil:
		return SkipNone
	case errors.Is(err, ErrZombie):
		return SkipZombie
	case errors.Is(err, process.ErrorProcessNotRunning),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, syscall.ESRCH):
		return SkipVanished
	case errors.Is(err, fs.ErrPermission):
		return SkipAccessDenied
	default:
		return SkipUnreadable
	}
}

// SkipStats counts skipped processes per reason.
type SkipStats map[SkipReason]int

// Total returns the number of skipped processes.
func (s SkipStats) Total() int {
	n := 0
	for _, v := range s {
		n += v
	}
	return n
}

// filterResults keeps successful records in encounter order.
func filterResults(results []ProcessResult) ([]ProcessRecord, SkipStats) {
	records := make([]ProcessRecord, 0, len(results))
	stats := SkipStats{}
	for _, r := range results {
		if !r.OK() {
			stats[r.Skip]++
			continue
		}
		records = append(records, *r.Record)
	}
	return records, stats
}
