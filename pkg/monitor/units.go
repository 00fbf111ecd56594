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
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"
)

const (
	bytesPerKB = 1024
	bytesPerMB = 1024 * 1024
)

// Round1 rounds to one decimal place, ties to even on the exact binary value.
func Round1(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// BytesToMB converts bytes to MB rounded to one decimal.
func BytesToMB(b uint64) float64 {
	return Round1(float64(b) / bytesPerMB)
}

// BytesToKB converts bytes to whole KB, truncating.
func BytesToKB(b uint64) uint64 {
	return b / bytesPerKB
}

// FormatRuntime renders an elapsed duration as H:MM:SS, prefixed with
// "N day(s), " past 24 hours. Fractions of a second are dropped.
func FormatRuntime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)

	days := secs / 86400
	secs %= 86400
	hms := fmt.Sprintf("%d:%02d:%02d", secs/3600, secs%3600/60, secs%60)

	switch days {
	case 0:
		return hms
	case 1:
		return "1 day, " + hms
	default:
		return fmt.Sprintf("%d days, %s", days, hms)
	}
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
