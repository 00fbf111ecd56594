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

package safego

import (
	"context"
	"net/http"
	"runtime"

	runtimeutil "k8s.io/apimachinery/pkg/util/runtime"

	"github.com/khusboo-kumari/htopd/pkg/log"
)

// InitPanicLogger sends recovered panics, with their stack, to the
// service log. Aborted HTTP handlers are not panics worth reporting.
func InitPanicLogger(_ context.Context) {
	runtimeutil.PanicHandlers = []func(context.Context, any){
		func(_ context.Context, r any) {
			if r == http.ErrAbortHandler { // nolint:errorlint
				return
			}

			const size = 64 << 10
			stack := make([]byte, size)
			stack = stack[:runtime.Stack(stack, false)]
			log.Error("recovered panic: %v\n%s", r, stack)
		},
	}
}

func init() {
	runtimeutil.ReallyCrash = false
}

// Go runs f in its own goroutine. A panic is logged under name and the
// process keeps running.
func Go(name string, f func()) {
	go func() {
		defer runtimeutil.HandleCrash(func(r any) {
			if r == http.ErrAbortHandler { // nolint:errorlint
				return
			}
			log.Warn("goroutine %s stopped by panic: %v", name, r)
		})

		f()
	}()
}
