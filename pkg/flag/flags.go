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

package flag

import "time"

var (
	// ServerHost is the interface the HTTP listener binds to.
	ServerHost string

	// ServerPort controls the HTTP listener port.
	ServerPort int

	// ServerLogLevel controls the server log verbosity.
	ServerLogLevel int

	// DisplayName is shown in the page header.
	DisplayName string

	// UserEnvKey names the environment variable holding the username.
	UserEnvKey string

	// FallbackUser is reported when UserEnvKey is unset or empty.
	FallbackUser string

	// TopProcesses caps the number of process rows per snapshot.
	TopProcesses int

	// CPUSampleInterval is the blocking window for aggregate CPU usage.
	CPUSampleInterval time.Duration

	// TimestampOffset is added to UTC to produce the header timestamp.
	TimestampOffset time.Duration

	// TimestampLabel is the zone label printed after the timestamp.
	TimestampLabel string

	// UptimeSource selects how the uptime line is produced: "command" or "host".
	UptimeSource string

	// UptimeCommand is executed when UptimeSource is "command".
	UptimeCommand string

	// ApiGracefulShutdownTimeout bounds in-flight requests on shutdown.
	ApiGracefulShutdownTimeout time.Duration
)
