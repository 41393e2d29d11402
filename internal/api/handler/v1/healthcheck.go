package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/raffle-api/internal/api/handler/v1/response"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// HandleHealthcheck godoc
// @Summary      Healthcheck
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  response.Err
// @Router       / [get]
func HandleHealthcheck(p Pinger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 500*time.Millisecond)
		defer cancel()

		if err := p.Ping(pingCtx); err != nil {
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, &response.Err{
				Err:            err,
				HTTPStatusCode: http.StatusServiceUnavailable,
				Message:        "unhealthy",
				ErrorMsg:       err.Error(),
			})
			return
		}

		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
