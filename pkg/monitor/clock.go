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

// TimestampLayout is how the header timestamp is printed; MST prints the zone label.
const TimestampLayout = "2006-01-02 15:04:05 MST"

// OffsetClock reports wall time at a fixed offset from UTC without
// consulting the timezone database.
type OffsetClock struct {
	zone *time.Location
	now  func() time.Time
}

// NewOffsetClock builds a clock at UTC+offset labelled with label.
func NewOffsetClock(offset time.Duration, label string) *OffsetClock {
	return &OffsetClock{
		zone: time.FixedZone(label, int(offset/time.Second)),
		now:  time.Now,
	}
}

// Now returns the current time in the clock's zone.
func (c *OffsetClock) Now() time.Time {
	return c.now().UTC().In(c.zone)
}
