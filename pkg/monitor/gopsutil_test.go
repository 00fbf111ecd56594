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
	"os"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSystemHostReadsLiveCounters exercises the gopsutil host reader end-to-end.
func TestSystemHostReadsLiveCounters(t *testing.T) {
	ctx := context.Background()
	host := SystemHost{}

	vm, err := host.VirtualMemory(ctx)
	require.NoError(t, err)
	assert.Greater(t, vm.Total, uint64(0))
	assert.LessOrEqual(t, vm.Used, vm.Total)

	_, err = host.SwapMemory(ctx)
	assert.NoError(t, err)

	pct, err := host.CPUPercent(ctx, 50*time.Millisecond)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, pct, 0.0)
	assert.Less(t, pct, 100.1)

	count, err := host.CPUCount(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, count, 1)
}

// TestSystemProcessesReadsSelf reads the test binary's own process entry.
func TestSystemProcessesReadsSelf(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("process details are only asserted on linux")
	}
	ctx := context.Background()
	procs := &SystemProcesses{}

	pids, err := procs.Pids(ctx)
	require.NoError(t, err)
	self := int32(os.Getpid())
	assert.Contains(t, pids, self)

	d, err := procs.Read(ctx, self)
	require.NoError(t, err)
	assert.Equal(t, self, d.PID)
	assert.NotEmpty(t, d.Name)
	assert.Greater(t, d.RSSBytes, uint64(0))
	assert.NotNil(t, d.SharedBytes)
	assert.False(t, d.CreateTime.After(time.Now()))
}

func TestSystemProcessesMissingPidIsVanished(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("pid space assumptions hold on linux only")
	}

	_, err := (&SystemProcesses{}).Read(context.Background(), 1<<30)
	require.Error(t, err)
	assert.Equal(t, SkipVanished, classifySkip(err))
}

func spin(d time.Duration) {
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
	}
}

// TestSystemProcessesCPUSinceLastSample checks that usage is measured
// between consecutive reads rather than over the process lifetime.
func TestSystemProcessesCPUSinceLastSample(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("cpu time accounting is only asserted on linux")
	}
	ctx := context.Background()
	procs := &SystemProcesses{}
	self := int32(os.Getpid())

	first, err := procs.Read(ctx, self)
	require.NoError(t, err)
	assert.Equal(t, 0.0, first.CPUPercent)

	spin(500 * time.Millisecond)
	busy, err := procs.Read(ctx, self)
	require.NoError(t, err)
	assert.Greater(t, busy.CPUPercent, 20.0)

	time.Sleep(500 * time.Millisecond)
	idle, err := procs.Read(ctx, self)
	require.NoError(t, err)
	assert.Less(t, idle.CPUPercent, 10.0)
}

func TestSystemProcessesForgetsExitedPids(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("pid space assumptions hold on linux only")
	}
	ctx := context.Background()
	procs := &SystemProcesses{}
	self := int32(os.Getpid())

	_, err := procs.Read(ctx, self)
	require.NoError(t, err)
	procs.sampled[1<<30] = &sampledProcess{}

	_, err = procs.Pids(ctx)
	require.NoError(t, err)
	assert.Contains(t, procs.sampled, self)
	assert.NotContains(t, procs.sampled, int32(1<<30))
}

func TestSystemProcessesRestartsSampleOnPidReuse(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("process details are only asserted on linux")
	}
	ctx := context.Background()
	procs := &SystemProcesses{}
	self := int32(os.Getpid())

	_, err := procs.Read(ctx, self)
	require.NoError(t, err)
	procs.sampled[self].created = time.Unix(0, 0)

	spin(200 * time.Millisecond)
	d, err := procs.Read(ctx, self)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d.CPUPercent)
	assert.True(t, procs.sampled[self].created.Equal(d.CreateTime))
}

func TestStatusLabel(t *testing.T) {
	tests := map[string]string{
		"sleep":   "sleeping",
		"blocked": "disk-sleep",
		"stop":    "stopped",
		"wait":    "waking",
		"lock":    "locked",
		"running": "running",
		"zombie":  "zombie",
		"idle":    "idle",
		"":        "",
	}
	for in, want := range tests {
		assert.Equal(t, want, statusLabel(in), "state %q", in)
	}
}
