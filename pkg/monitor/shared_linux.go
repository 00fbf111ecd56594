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

//go:build linux

package monitor

import (
	"context"

	"github.com/shirou/gopsutil/v3/process"
)

// sharedMemory reads the shared pages size from /proc/<pid>/statm.
func sharedMemory(ctx context.Context, p *process.Process) *uint64 {
	ex, err := p.MemoryInfoExWithContext(ctx)
	if err != nil || ex == nil {
		return nil
	}
	shared := ex.Shared
	return &shared
}
