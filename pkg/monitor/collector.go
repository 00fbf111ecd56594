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
	"fmt"
	"os"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/khusboo-kumari/htopd/pkg/log"
)

const unknownUser = "unknown"

// Options tunes a Collector.
type Options struct {
	UserEnvKey   string
	FallbackUser string
	CPUInterval  time.Duration
	Clock        *OffsetClock
}

// Collector gathers host counters and per-process records for one snapshot.
type Collector struct {
	host   HostReader
	procs  ProcessReader
	uptime UptimeReader
	opts   Options

	now       func() time.Time
	lookupEnv func(string) (string, bool)
}

// NewCollector wires the OS providers into a collector.
func NewCollector(host HostReader, procs ProcessReader, uptime UptimeReader, opts Options) *Collector {
	if opts.UserEnvKey == "" {
		opts.UserEnvKey = "USER"
	}
	if opts.FallbackUser == "" {
		opts.FallbackUser = "codespace"
	}
	if opts.CPUInterval <= 0 {
		opts.CPUInterval = time.Second
	}
	if opts.Clock == nil {
		opts.Clock = NewOffsetClock(5*time.Hour+30*time.Minute, "IST")
	}
	return &Collector{
		host:      host,
		procs:     procs,
		uptime:    uptime,
		opts:      opts,
		now:       time.Now,
		lookupEnv: os.LookupEnv,
	}
}

// Collect reads host counters, then every visible process. Host-wide
// failures abort the collection; per-process failures become skipped
// results.
func (c *Collector) Collect(ctx context.Context) (*HostCounters, []ProcessResult, error) {
	counters := &HostCounters{
		Username:  c.username(),
		Timestamp: c.opts.Clock.Now(),
	}

	uptime, err := c.uptime.UptimeText(ctx)
	if err != nil {
		return nil, nil, err
	}
	counters.UptimeText = uptime

	vm, err := c.host.VirtualMemory(ctx)
	if err != nil {
		return nil, nil, err
	}
	counters.Memory = MemoryUsage{
		TotalMB:     BytesToMB(vm.Total),
		UsedMB:      BytesToMB(vm.Used),
		AvailableMB: BytesToMB(vm.Available),
	}

	sw, err := c.host.SwapMemory(ctx)
	if err != nil {
		return nil, nil, err
	}
	counters.Swap = SwapUsage{
		TotalMB: BytesToMB(sw.Total),
		UsedMB:  BytesToMB(sw.Used),
		FreeMB:  BytesToMB(sw.Free),
	}

	cpuPct, err := c.host.CPUPercent(ctx, c.opts.CPUInterval)
	if err != nil {
		return nil, nil, err
	}
	counters.CPUUsagePercent = Round1(cpuPct)

	if counters.CPUCount, err = c.host.CPUCount(ctx); err != nil {
		return nil, nil, err
	}

	results, err := c.readProcesses(ctx, vm.Total)
	if err != nil {
		return nil, nil, err
	}
	return counters, results, nil
}

// Snapshot collects and assembles the top processes by CPU usage.
func (c *Collector) Snapshot(ctx context.Context, top int) (*HostSnapshot, error) {
	start := time.Now()

	counters, results, err := c.Collect(ctx)
	if err != nil {
		return nil, err
	}

	records, skipped := filterResults(results)
	snapshot := Assemble(*counters, records, top)
	snapshot.Scanned = len(results)
	snapshot.Skipped = skipped.Total()

	log.Debug("snapshot collected in %s: scanned=%d kept=%d skipped=%v",
		time.Since(start), snapshot.Scanned, len(snapshot.Processes), map[SkipReason]int(skipped))
	return snapshot, nil
}

func (c *Collector) username() string {
	if v, ok := c.lookupEnv(c.opts.UserEnvKey); ok && v != "" {
		return v
	}
	return c.opts.FallbackUser
}

func (c *Collector) readProcesses(ctx context.Context, memTotal uint64) ([]ProcessResult, error) {
	pids, err := c.procs.Pids(ctx)
	if err != nil {
		return nil, err
	}

	now := c.now()
	results := make([]ProcessResult, 0, len(pids))
	for _, pid := range pids {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("process enumeration interrupted: %w", err)
		}
		results = append(results, c.readProcess(ctx, pid, now, memTotal))
	}
	return results, nil
}

func (c *Collector) readProcess(ctx context.Context, pid int32, now time.Time, memTotal uint64) ProcessResult {
	detail, err := c.procs.Read(ctx, pid)
	if err == nil && detail == nil {
		err = fmt.Errorf("pid %d: %w", pid, os.ErrNotExist)
	}
	if err != nil {
		reason := classifySkip(err)
		if reason == SkipUnreadable {
			log.Warn("skipping pid %d: %v", pid, err)
		} else if log.Enabled(zapcore.DebugLevel) {
			log.Debug("skipping pid %d (%s): %v", pid, reason, err)
		}
		return ProcessResult{PID: pid, Skip: reason, Err: err}
	}

	record := newProcessRecord(detail, now, memTotal)
	return ProcessResult{PID: pid, Record: &record}
}

func newProcessRecord(d *ProcessDetail, now time.Time, memTotal uint64) ProcessRecord {
	user := d.Username
	if user == "" {
		user = unknownUser
	}

	var shared float64
	if d.SharedBytes != nil {
		shared = BytesToMB(*d.SharedBytes)
	}

	var memPct float64
	if memTotal > 0 {
		memPct = float64(d.RSSBytes) / float64(memTotal) * 100
	}

	runtime := now.Sub(d.CreateTime).Truncate(time.Second)
	if runtime < 0 {
		runtime = 0
	}

	return ProcessRecord{
		PID:              d.PID,
		User:             user,
		Niceness:         d.Nice,
		VirtualMemoryKB:  BytesToKB(d.VMSBytes),
		ResidentMemoryKB: BytesToKB(d.RSSBytes),
		SharedMemoryMB:   shared,
		CPUPercent:       d.CPUPercent,
		MemoryPercent:    Round1(memPct),
		Status:           d.Status,
		Runtime:          runtime,
		RuntimeText:      FormatRuntime(runtime),
		Threads:          d.NumThreads,
		Command:          d.Name,
	}
}
