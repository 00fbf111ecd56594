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
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"

	"github.com/khusboo-kumari/htopd/pkg/log"
)

// CommandUptime runs an external command (uptime(1) by default) and
// returns its trimmed output.
type CommandUptime struct {
	Command []string
}

// NewCommandUptime splits a command line on whitespace.
func NewCommandUptime(cmdline string) *CommandUptime {
	return &CommandUptime{Command: strings.Fields(cmdline)}
}

func (u *CommandUptime) UptimeText(ctx context.Context) (string, error) {
	if len(u.Command) == 0 {
		return "", errors.New("uptime command is empty")
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, u.Command[0], u.Command[1:]...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to run %q: %w (%s)", strings.Join(u.Command, " "), err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(string(out)), nil
}

// HostUptime builds an uptime(1)-style line from gopsutil counters.
type HostUptime struct {
	now func() time.Time
}

func NewHostUptime() *HostUptime {
	return &HostUptime{now: time.Now}
}

func (u *HostUptime) UptimeText(ctx context.Context) (string, error) {
	secs, err := host.UptimeWithContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get uptime: %w", err)
	}
	avg, err := load.AvgWithContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get load average: %w", err)
	}

	// utmp is often missing inside containers.
	users := 0
	if list, err := host.UsersWithContext(ctx); err == nil {
		users = len(list)
	} else {
		log.Debug("user sessions unavailable: %v", err)
	}

	return formatUptimeLine(u.now(), time.Duration(secs)*time.Second, users, avg.Load1, avg.Load5, avg.Load15), nil
}

func formatUptimeLine(now time.Time, up time.Duration, users int, l1, l5, l15 float64) string {
	return fmt.Sprintf("%s up %s, %s, load average: %.2f, %.2f, %.2f",
		now.Format("15:04:05"), formatUptime(up), plural(users, "user"), l1, l5, l15)
}

func formatUptime(up time.Duration) string {
	mins := int64(up / time.Minute)
	days := mins / (24 * 60)
	mins %= 24 * 60

	var b strings.Builder
	if days > 0 {
		b.WriteString(plural(int(days), "day"))
		b.WriteString(", ")
	}
	if mins >= 60 {
		fmt.Fprintf(&b, "%2d:%02d", mins/60, mins%60)
	} else {
		fmt.Fprintf(&b, "%d min", mins)
	}
	return b.String()
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
