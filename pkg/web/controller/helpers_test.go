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

package controller

import (
	"context"
	"net/http/httptest"

	"github.com/gin-gonic/gin"

	"github.com/khusboo-kumari/htopd/pkg/monitor"
)

func newTestContext(method, path string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(method, path, nil)
	return ctx, w
}

type stubSource struct {
	snapshot *monitor.HostSnapshot
	err      error
	gotTop   int
}

func (s *stubSource) Snapshot(_ context.Context, top int) (*monitor.HostSnapshot, error) {
	s.gotTop = top
	return s.snapshot, s.err
}
