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
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// ErrZombie marks a process that turned into a zombie while being read.
var ErrZombie = errors.New("process is a zombie")

// SystemHost reads host counters through gopsutil.
type SystemHost struct{}

func (SystemHost) VirtualMemory(ctx context.Context) (MemoryStat, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return MemoryStat{}, fmt.Errorf("failed to get memory info: %w", err)
	}
	return MemoryStat{Total: vm.Total, Used: vm.Used, Available: vm.Available}, nil
}

func (SystemHost) SwapMemory(ctx context.Context) (SwapStat, error) {
	sw, err := mem.SwapMemoryWithContext(ctx)
	if err != nil {
		return SwapStat{}, fmt.Errorf("failed to get swap info: %w", err)
	}
	return SwapStat{Total: sw.Total, Used: sw.Used, Free: sw.Free}, nil
}

func (SystemHost) CPUPercent(ctx context.Context, interval time.Duration) (float64, error) {
	percent, err := cpu.PercentWithContext(ctx, interval, false)
	if err != nil {
		return 0, fmt.Errorf("failed to get CPU percent: %w", err)
	}
	if len(percent) == 0 {
		return 0, errors.New("failed to get CPU percent: empty sample")
	}
	return percent[0], nil
}

func (SystemHost) CPUCount(ctx context.Context) (int, error) {
	n, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return 0, fmt.Errorf("failed to get CPU count: %w", err)
	}
	if n < 1 {
		n = 1
	}
	return n, nil
}

// SystemProcesses reads the process table through gopsutil. It keeps one
// handle per live pid so CPU usage is measured since the previous request.
// The zero value is ready to use.
type SystemProcesses struct {
	mu      sync.Mutex
	sampled map[int32]*sampledProcess
}

type sampledProcess struct {
	proc    *process.Process
	created time.Time
}

// Pids lists live pids and drops CPU baselines of processes that exited.
func (s *SystemProcesses) Pids(ctx context.Context) ([]int32, error) {
	pids, err := process.PidsWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}
	s.retain(pids)
	return pids, nil
}

func (s *SystemProcesses) Read(ctx context.Context, pid int32) (*ProcessDetail, error) {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return nil, err
	}

	detail, err := readRequired(ctx, p)
	if err == nil {
		detail.CPUPercent, err = s.cpuPercent(ctx, p, detail.CreateTime)
	}
	if err != nil {
		if isZombie(ctx, p) {
			return nil, fmt.Errorf("pid %d: %w: %w", pid, ErrZombie, err)
		}
		return nil, fmt.Errorf("pid %d: %w", pid, err)
	}

	if name, err := p.UsernameWithContext(ctx); err == nil {
		detail.Username = name
	}
	if threads, err := p.NumThreadsWithContext(ctx); err == nil {
		detail.NumThreads = threads
	}
	detail.SharedBytes = sharedMemory(ctx, p)

	return detail, nil
}

// cpuPercent reports usage since the last sample of the same process.
// The first sample of a process is 0. A pid reused by a new process
// starts over.
func (s *SystemProcesses) cpuPercent(ctx context.Context, p *process.Process, created time.Time) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sampled == nil {
		s.sampled = make(map[int32]*sampledProcess)
	}
	entry, ok := s.sampled[p.Pid]
	if !ok || !entry.created.Equal(created) {
		entry = &sampledProcess{proc: p, created: created}
		s.sampled[p.Pid] = entry
	}

	pct, err := entry.proc.PercentWithContext(ctx, 0)
	if err != nil {
		delete(s.sampled, p.Pid)
		return 0, fmt.Errorf("cpu percent: %w", err)
	}
	return pct, nil
}

func (s *SystemProcesses) retain(pids []int32) {
	live := make(map[int32]struct{}, len(pids))
	for _, pid := range pids {
		live[pid] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for pid := range s.sampled {
		if _, ok := live[pid]; !ok {
			delete(s.sampled, pid)
		}
	}
}

func readRequired(ctx context.Context, p *process.Process) (*ProcessDetail, error) {
	detail := &ProcessDetail{PID: p.Pid}

	var err error
	if detail.Name, err = p.NameWithContext(ctx); err != nil {
		return nil, fmt.Errorf("name: %w", err)
	}

	memInfo, err := p.MemoryInfoWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("memory info: %w", err)
	}
	detail.RSSBytes = memInfo.RSS
	detail.VMSBytes = memInfo.VMS

	if detail.Nice, err = p.NiceWithContext(ctx); err != nil {
		return nil, fmt.Errorf("nice: %w", err)
	}

	status, err := p.StatusWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	if len(status) > 0 {
		detail.Status = statusLabel(status[0])
	}

	createdMs, err := p.CreateTimeWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("create time: %w", err)
	}
	detail.CreateTime = time.UnixMilli(createdMs)

	return detail, nil
}

// statusLabels renames gopsutil states to the labels ps-style tools print.
var statusLabels = map[string]string{
	process.Sleep:   "sleeping",
	process.Blocked: "disk-sleep",
	process.Stop:    "stopped",
	process.Wait:    "waking",
	process.Lock:    "locked",
}

func statusLabel(state string) string {
	if label, ok := statusLabels[state]; ok {
		return label
	}
	return state
}

func isZombie(ctx context.Context, p *process.Process) bool {
	status, err := p.StatusWithContext(ctx)
	if err != nil {
		return false
	}
	return slices.Contains(status, process.Zombie)
}
