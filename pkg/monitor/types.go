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

import "time"

// DefaultTopProcesses is the number of rows kept in a snapshot.
const DefaultTopProcesses = 20

// MemoryUsage is physical memory in MB, rounded to one decimal.
type MemoryUsage struct {
	TotalMB     float64 `json:"total_mb"`
	UsedMB      float64 `json:"used_mb"`
	AvailableMB float64 `json:"available_mb"`
}

// SwapUsage is swap space in MB, rounded to one decimal.
type SwapUsage struct {
	TotalMB float64 `json:"total_mb"`
	UsedMB  float64 `json:"used_mb"`
	FreeMB  float64 `json:"free_mb"`
}

// HostCounters holds the system-wide part of a snapshot.
type HostCounters struct {
	Timestamp       time.Time   `json:"timestamp"`
	Username        string      `json:"username"`
	UptimeText      string      `json:"uptime"`
	CPUCount        int         `json:"cpu_count"`
	CPUUsagePercent float64     `json:"cpu_used_pct"`
	Memory          MemoryUsage `json:"memory"`
	Swap            SwapUsage   `json:"swap"`
}

// ProcessRecord is one row of the process table.
type ProcessRecord struct {
	PID              int32         `json:"pid"`
	User             string        `json:"user"`
	Niceness         int32         `json:"nice"`
	VirtualMemoryKB  uint64        `json:"virt_kb"`
	ResidentMemoryKB uint64        `json:"res_kb"`
	SharedMemoryMB   float64       `json:"shr_mb"`
	CPUPercent       float64       `json:"cpu_pct"`
	MemoryPercent    float64       `json:"mem_pct"`
	Status           string        `json:"status"`
	Runtime          time.Duration `json:"-"`
	RuntimeText      string        `json:"runtime"`
	Threads          int32         `json:"threads"`
	Command          string        `json:"command"`
}

// HostSnapshot is the complete view rendered for one request.
type HostSnapshot struct {
	HostCounters `json:",inline"`

	Processes []ProcessRecord `json:"processes"`

	// Scanned and Skipped describe the enumeration that produced Processes.
	Scanned int `json:"scanned"`
	Skipped int `json:"skipped"`
}

// MemoryStat is the raw physical memory reading in bytes.
type MemoryStat struct {
	Total     uint64
	Used      uint64
	Available uint64
}

// SwapStat is the raw swap reading in bytes.
type SwapStat struct {
	Total uint64
	Used  uint64
	Free  uint64
}

// ProcessDetail is everything read from the OS for one process.
// Optional values are left at their zero value (nil for SharedBytes).
type ProcessDetail struct {
	PID         int32
	Name        string
	Username    string
	Nice        int32
	VMSBytes    uint64
	RSSBytes    uint64
	SharedBytes *uint64
	CPUPercent  float64
	Status      string
	CreateTime  time.Time
	NumThreads  int32
}
