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

package page

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/khusboo-kumari/htopd/pkg/monitor"
)

// ContentType is sent with every rendered page.
const ContentType = "text/html; charset=utf-8"

const (
	userWidth    = 8
	commandWidth = 20
	ruleWidth    = 80

	tableHeader = "PID    USER    PR    VIRT    RES    %CPU  %MEM  NI  SHR  S    Time+COMMAND"
	rowFormat   = "%6d %-8s %3d %8d %8d %4.1f %5.1f %3d %5.1f %-5s %8s %-20s"
)

//go:embed htop.html.tmpl
var pageSource string

var pageTemplate = template.Must(template.New("htop").Parse(pageSource))

// Data is the input to Render.
type Data struct {
	DisplayName string
	Snapshot    *monitor.HostSnapshot
}

type view struct {
	DisplayName string
	User        string
	Zone        string
	Timestamp   string
	Uptime      string
	Tasks       int
	CPUs        int
	CPU         string

	MemTotal, MemUsed, MemAvail   string
	SwapTotal, SwapUsed, SwapFree string

	Header string
	Rule   string
	Rows   []string
}

// Render writes the htop page for a snapshot.
func Render(w io.Writer, data Data) error {
	s := data.Snapshot
	if s == nil {
		return fmt.Errorf("render: nil snapshot")
	}

	zone, _ := s.Timestamp.Zone()
	v := view{
		DisplayName: data.DisplayName,
		User:        s.Username,
		Zone:        zone,
		Timestamp:   s.Timestamp.Format(monitor.TimestampLayout),
		Uptime:      s.UptimeText,
		Tasks:       len(s.Processes),
		CPUs:        s.CPUCount,
		CPU:         decimal(s.CPUUsagePercent),
		MemTotal:    decimal(s.Memory.TotalMB),
		MemUsed:     decimal(s.Memory.UsedMB),
		MemAvail:    decimal(s.Memory.AvailableMB),
		SwapTotal:   decimal(s.Swap.TotalMB),
		SwapUsed:    decimal(s.Swap.UsedMB),
		SwapFree:    decimal(s.Swap.FreeMB),
		Header:      tableHeader,
		Rule:        strings.Repeat("-", ruleWidth),
		Rows:        make([]string, 0, len(s.Processes)),
	}
	for _, p := range s.Processes {
		v.Rows = append(v.Rows, FormatRow(p))
	}

	return pageTemplate.Execute(w, v)
}

// FormatRow renders one fixed-width process table row. PR and NI both
// show the niceness value.
func FormatRow(p monitor.ProcessRecord) string {
	return fmt.Sprintf(rowFormat,
		p.PID,
		monitor.Truncate(p.User, userWidth),
		p.Niceness,
		p.VirtualMemoryKB,
		p.ResidentMemoryKB,
		p.CPUPercent,
		p.MemoryPercent,
		p.Niceness,
		p.SharedMemoryMB,
		p.Status,
		p.RuntimeText,
		monitor.Truncate(p.Command, commandWidth),
	)
}

func decimal(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
