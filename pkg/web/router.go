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
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/khusboo-kumari/htopd/pkg/log"
	"github.com/khusboo-kumari/htopd/pkg/web/controller"
	"github.com/khusboo-kumari/htopd/pkg/web/model"
)

// NewRouter builds a Gin engine serving the htop page.
func NewRouter(htop *controller.HtopOptions) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logMiddleware())

	r.GET("/ping", controller.PingHandler)
	r.GET("/htop", withHtop(htop, func(c *controller.HtopController) { c.GetHtop() }))

	return r
}

func withHtop(opts *controller.HtopOptions, fn func(*controller.HtopController)) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		fn(controller.NewHtopController(ctx, opts))
	}
}

func logMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		requestID := ctx.GetHeader(model.RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Header(model.RequestIDHeader, requestID)

		start := time.Now()
		log.Info("Requested: %v - %v [%s]", ctx.Request.Method, ctx.Request.URL.String(), requestID)
		ctx.Next()
		log.Info("Completed: %v - %v [%s] %d in %s",
			ctx.Request.Method, ctx.Request.URL.Path, requestID, ctx.Writer.Status(), time.Since(start))
	}
}
