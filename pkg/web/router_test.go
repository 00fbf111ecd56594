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

package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/khusboo-kumari/htopd/pkg/monitor"
	"github.com/khusboo-kumari/htopd/pkg/web/controller"
	"github.com/khusboo-kumari/htopd/pkg/web/model"
)

type fixedSource struct {
	err error
}

func (s fixedSource) Snapshot(_ context.Context, top int) (*monitor.HostSnapshot, error) {
	if s.err != nil {
		return nil, s.err
	}
	return monitor.Assemble(monitor.HostCounters{Username: "codespace", CPUCount: 1}, nil, top), nil
}

func serve(t *testing.T, opts *controller.HtopOptions, method, path string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	r := NewRouter(opts)
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouterServesHtop(t *testing.T) {
	w := serve(t, &controller.HtopOptions{Source: fixedSource{}, Top: 20}, http.MethodGet, "/htop", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "codespace")
	assert.NotEmpty(t, w.Header().Get(model.RequestIDHeader))
}

func TestRouterKeepsIncomingRequestID(t *testing.T) {
	header := http.Header{model.RequestIDHeader: []string{"req-123"}}
	w := serve(t, &controller.HtopOptions{Source: fixedSource{}, Top: 20}, http.MethodGet, "/ping", header)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-123", w.Header().Get(model.RequestIDHeader))
}

func TestRouterMapsCollectionFailureTo500(t *testing.T) {
	w := serve(t, &controller.HtopOptions{Source: fixedSource{err: errors.New("no uptime")}, Top: 20}, http.MethodGet, "/htop", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), string(model.ErrorCodeRuntimeError))
}

func TestRouterUnknownRoute(t *testing.T) {
	opts := &controller.HtopOptions{Source: fixedSource{}, Top: 20}

	assert.Equal(t, http.StatusNotFound, serve(t, opts, http.MethodGet, "/metrics", nil).Code)
	assert.Equal(t, http.StatusNotFound, serve(t, opts, http.MethodPost, "/htop", nil).Code)
}
