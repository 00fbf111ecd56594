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
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khusboo-kumari/htopd/pkg/log"
	"github.com/khusboo-kumari/htopd/pkg/monitor"
	"github.com/khusboo-kumari/htopd/pkg/web/model"
	"github.com/khusboo-kumari/htopd/pkg/web/page"
)

// SnapshotSource produces a ranked host snapshot.
type SnapshotSource interface {
	Snapshot(ctx context.Context, top int) (*monitor.HostSnapshot, error)
}

// HtopOptions is shared by every HtopController.
type HtopOptions struct {
	Source      SnapshotSource
	Top         int
	DisplayName string
}

// HtopController renders the host snapshot page.
type HtopController struct {
	*basicController
	opts *HtopOptions
}

func NewHtopController(ctx *gin.Context, opts *HtopOptions) *HtopController {
	return &HtopController{basicController: newBasicController(ctx), opts: opts}
}

// GetHtop collects a fresh snapshot and renders it as HTML.
func (c *HtopController) GetHtop() {
	snapshot, err := c.opts.Source.Snapshot(c.ctx.Request.Context(), c.opts.Top)
	if err != nil {
		log.Error("GetHtop: snapshot failed: %v", err)
		c.RespondError(
			http.StatusInternalServerError,
			model.ErrorCodeRuntimeError,
			fmt.Sprintf("error reading host snapshot. %v", err),
		)
		return
	}

	var buf bytes.Buffer
	if err := page.Render(&buf, page.Data{DisplayName: c.opts.DisplayName, Snapshot: snapshot}); err != nil {
		log.Error("GetHtop: render failed: %v", err)
		c.RespondError(
			http.StatusInternalServerError,
			model.ErrorCodeRenderError,
			fmt.Sprintf("error rendering host snapshot. %v", err),
		)
		return
	}

	c.RespondHTML(page.ContentType, buf.Bytes())
}
