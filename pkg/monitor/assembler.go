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

import "sort"

// Assemble ranks records by CPU usage, keeps the first top entries and
// attaches the host counters. Ties keep their input order. A top below 1
// falls back to DefaultTopProcesses.
func Assemble(counters HostCounters, records []ProcessRecord, top int) *HostSnapshot {
	if top < 1 {
		top = DefaultTopProcesses
	}

	ranked := make([]ProcessRecord, len(records))
	copy(ranked, records)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CPUPercent > ranked[j].CPUPercent
	})

	if len(ranked) > top {
		ranked = ranked[:top]
	}

	return &HostSnapshot{
		HostCounters: counters,
		Processes:    ranked,
	}
}
