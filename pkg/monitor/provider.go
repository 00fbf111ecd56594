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
	"context"
	"time"
)

// HostReader reads system-wide counters.
type HostReader interface {
	VirtualMemory(ctx context.Context) (MemoryStat, error)
	SwapMemory(ctx context.Context) (SwapStat, error)
	// CPUPercent blocks for interval and returns aggregate usage over it.
	CPUPercent(ctx context.Context, interval time.Duration) (float64, error)
	CPUCount(ctx context.Context) (int, error)
}

// ProcessReader enumerates processes and reads their details.
type ProcessReader interface {
	Pids(ctx context.Context) ([]int32, error)
	// Read fails when any required field cannot be read.
	Read(ctx context.Context, pid int32) (*ProcessDetail, error)
}

// UptimeReader produces the free-form uptime/load line.
type UptimeReader interface {
	UptimeText(ctx context.Context) (string, error)
}
