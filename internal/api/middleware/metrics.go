package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/raffle-api/internal/metrics"
)

func Metrics(rec *metrics.Recorder) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}

		rec.Requests.WithLabelValues(route, ctx.Request.Method, strconv.Itoa(ctx.Writer.Status())).Inc()
		rec.Latency.WithLabelValues(route, ctx.Request.Method).Observe(time.Since(start).Seconds())
	}
}
