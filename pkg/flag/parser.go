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

import (
	"flag"
	"fmt"
	stdlog "log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/khusboo-kumari/htopd/pkg/log"
)

const (
	hostEnv                    = "HTOPD_HOST"
	portEnv                    = "HTOPD_PORT"
	logLevelEnv                = "HTOPD_LOG_LEVEL"
	displayNameEnv             = "HTOPD_DISPLAY_NAME"
	topEnv                     = "HTOPD_TOP"
	cpuIntervalEnv             = "HTOPD_CPU_INTERVAL"
	tzOffsetEnv                = "HTOPD_TZ_OFFSET"
	tzLabelEnv                 = "HTOPD_TZ_LABEL"
	uptimeSourceEnv            = "HTOPD_UPTIME_SOURCE"
	uptimeCommandEnv           = "HTOPD_UPTIME_COMMAND"
	gracefulShutdownTimeoutEnv = "HTOPD_GRACE_SHUTDOWN"
)

// settings mirrors the package variables for validation.
type settings struct {
	ServerHost                 string        `validate:"required"`
	ServerPort                 int           `validate:"min=1,max=65535"`
	ServerLogLevel             int           `validate:"min=0,max=7"`
	UserEnvKey                 string        `validate:"required"`
	FallbackUser               string        `validate:"required"`
	TopProcesses               int           `validate:"min=1,max=1000"`
	CPUSampleInterval          time.Duration `validate:"gt=0"`
	TimestampOffset            time.Duration `validate:"gte=-14h,lte=14h"`
	UptimeSource               string        `validate:"oneof=command host"`
	UptimeCommand              string        `validate:"required_if=UptimeSource command"`
	ApiGracefulShutdownTimeout time.Duration `validate:"gte=0"`
}

// InitFlags registers CLI flags and env overrides.
func InitFlags() {
	// .env is optional; plain environment variables still apply.
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file loaded: %v", err)
	}

	setDefaults()
	loadEnv()

	// Flags use the env-derived values as their defaults.
	register(flag.CommandLine)
	flag.Parse()

	if err := Validate(); err != nil {
		stdlog.Panicf("invalid configuration: %v", err)
	}

	log.Info("snapshot settings: top=%d cpu-interval=%s offset=%s(%s) uptime-source=%s",
		TopProcesses, CPUSampleInterval, TimestampOffset, TimestampLabel, UptimeSource)
}

func setDefaults() {
	ServerHost = "0.0.0.0"
	ServerPort = 5000
	ServerLogLevel = 6
	DisplayName = "sample_name"
	UserEnvKey = "USER"
	FallbackUser = "codespace"
	TopProcesses = 20
	CPUSampleInterval = time.Second
	TimestampOffset = 5*time.Hour + 30*time.Minute
	TimestampLabel = "IST"
	UptimeSource = "command"
	UptimeCommand = "uptime"
	ApiGracefulShutdownTimeout = 3 * time.Second
}

func loadEnv() {
	if v := os.Getenv(hostEnv); v != "" {
		ServerHost = v
	}
	if v := os.Getenv(displayNameEnv); v != "" {
		DisplayName = v
	}
	if v := os.Getenv(tzLabelEnv); v != "" {
		TimestampLabel = v
	}
	if v := os.Getenv(uptimeSourceEnv); v != "" {
		UptimeSource = v
	}
	if v := os.Getenv(uptimeCommandEnv); v != "" {
		UptimeCommand = v
	}

	envInt(portEnv, &ServerPort)
	envInt(logLevelEnv, &ServerLogLevel)
	envInt(topEnv, &TopProcesses)
	envDuration(cpuIntervalEnv, &CPUSampleInterval)
	envDuration(tzOffsetEnv, &TimestampOffset)
	envDuration(gracefulShutdownTimeoutEnv, &ApiGracefulShutdownTimeout)
}

func register(fs *flag.FlagSet) {
	fs.StringVar(&ServerHost, "host", ServerHost, "Interface to bind the HTTP listener to")
	fs.IntVar(&ServerPort, "port", ServerPort, "Server listening port")
	fs.IntVar(&ServerLogLevel, "log-level", ServerLogLevel, "Server log level (0-2=Fatal, 3=Error, 4=Warning, 5/6=Informational, 7=Debug)")
	fs.StringVar(&DisplayName, "display-name", DisplayName, "Name shown in the page header")
	fs.StringVar(&UserEnvKey, "user-env", UserEnvKey, "Environment variable holding the username")
	fs.StringVar(&FallbackUser, "fallback-user", FallbackUser, "Username reported when the user variable is unset")
	fs.IntVar(&TopProcesses, "top", TopProcesses, "Number of processes listed, ranked by CPU usage")
	fs.DurationVar(&CPUSampleInterval, "cpu-interval", CPUSampleInterval, "Aggregate CPU usage sampling window")
	fs.DurationVar(&TimestampOffset, "tz-offset", TimestampOffset, "Offset from UTC for the header timestamp")
	fs.StringVar(&TimestampLabel, "tz-label", TimestampLabel, "Zone label printed after the header timestamp")
	fs.StringVar(&UptimeSource, "uptime-source", UptimeSource, "Uptime line source: command or host")
	fs.StringVar(&UptimeCommand, "uptime-command", UptimeCommand, "Command producing the uptime line")
	fs.DurationVar(&ApiGracefulShutdownTimeout, "graceful-shutdown-timeout", ApiGracefulShutdownTimeout, "Time allowed for in-flight requests on shutdown")
}

// Validate checks the resolved configuration.
func Validate() error {
	s := settings{
		ServerHost:                 ServerHost,
		ServerPort:                 ServerPort,
		ServerLogLevel:             ServerLogLevel,
		UserEnvKey:                 UserEnvKey,
		FallbackUser:               FallbackUser,
		TopProcesses:               TopProcesses,
		CPUSampleInterval:          CPUSampleInterval,
		TimestampOffset:            TimestampOffset,
		UptimeSource:               UptimeSource,
		UptimeCommand:              UptimeCommand,
		ApiGracefulShutdownTimeout: ApiGracefulShutdownTimeout,
	}
	return validator.New().Struct(s)
}

// ListenAddr joins ServerHost and ServerPort.
func ListenAddr() string {
	return fmt.Sprintf("%s:%d", ServerHost, ServerPort)
}

func envInt(key string, target *int) {
	raw := os.Getenv(key)
	if raw == "" {
		return
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		stdlog.Panicf("Failed to parse %s from env: %v", key, err)
	}
	*target = v
}

func envDuration(key string, target *time.Duration) {
	raw := os.Getenv(key)
	if raw == "" {
		return
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		stdlog.Panicf("Failed to parse %s from env: %v", key, err)
	}
	*target = v
}
