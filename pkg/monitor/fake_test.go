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

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type fakeHost struct {
	mem   MemoryStat
	swap  SwapStat
	cpu   float64
	count int

	memErr, swapErr, cpuErr, countErr error

	intervals []time.Duration
}

func (h *fakeHost) VirtualMemory(context.Context) (MemoryStat, error) { return h.mem, h.memErr }
func (h *fakeHost) SwapMemory(context.Context) (SwapStat, error)      { return h.swap, h.swapErr }
func (h *fakeHost) CPUCount(context.Context) (int, error)             { return h.count, h.countErr }

func (h *fakeHost) CPUPercent(_ context.Context, interval time.Duration) (float64, error) {
	h.intervals = append(h.intervals, interval)
	return h.cpu, h.cpuErr
}

type fakeProcesses struct {
	pids    []int32
	details map[int32]*ProcessDetail
	errs    map[int32]error
	pidsErr error
}

func (p *fakeProcesses) Pids(context.Context) ([]int32, error) {
	return p.pids, p.pidsErr
}

func (p *fakeProcesses) Read(_ context.Context, pid int32) (*ProcessDetail, error) {
	if err, ok := p.errs[pid]; ok {
		return nil, err
	}
	return p.details[pid], nil
}

// add registers a readable process; the first call wins the encounter order.
func (p *fakeProcesses) add(d *ProcessDetail) {
	if p.details == nil {
		p.details = map[int32]*ProcessDetail{}
	}
	p.pids = append(p.pids, d.PID)
	p.details[d.PID] = d
}

func (p *fakeProcesses) fail(pid int32, err error) {
	if p.errs == nil {
		p.errs = map[int32]error{}
	}
	p.pids = append(p.pids, pid)
	p.errs[pid] = err
}

type fakeUptime struct {
	text string
	err  error
}

func (u fakeUptime) UptimeText(context.Context) (string, error) { return u.text, u.err }

const mb = 1024 * 1024

func defaultFakeHost() *fakeHost {
	return &fakeHost{
		mem:   MemoryStat{Total: 8192 * mb, Used: 4096 * mb, Available: 4096 * mb},
		swap:  SwapStat{Total: 2048 * mb, Used: 0, Free: 2048 * mb},
		cpu:   12.5,
		count: 4,
	}
}

func detail(pid int32, cpu float64) *ProcessDetail {
	return &ProcessDetail{
		PID:        pid,
		Name:       "proc",
		Username:   "root",
		VMSBytes:   4096 * 1024,
		RSSBytes:   2048 * 1024,
		CPUPercent: cpu,
		Status:     "sleeping",
		CreateTime: testNow.Add(-90 * time.Minute),
	}
}

func newTestCollector(host HostReader, procs ProcessReader, uptime UptimeReader, env map[string]string) *Collector {
	clock := NewOffsetClock(5*time.Hour+30*time.Minute, "IST")
	clock.now = func() time.Time { return testNow }

	c := NewCollector(host, procs, uptime, Options{Clock: clock})
	c.now = func() time.Time { return testNow }
	c.lookupEnv = func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
	return c
}
