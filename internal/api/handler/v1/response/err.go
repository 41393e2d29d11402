package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Err is rendered as {ok, message, error} so both the claim/confirm clients
// (which read ok/message) and the listing clients (which read error) can show it.
type Err struct {
	Err            error  `json:"-"`
	HTTPStatusCode int    `json:"-"`
	OK             bool   `json:"ok"`
	Message        string `json:"message"`
	ErrorMsg       string `json:"error"`
}

func (e *Err) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Err.Error()
}

func RenderErr(ctx *gin.Context, e *Err) {
	if e.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.FullPath()),
			zap.Int("status", e.HTTPStatusCode),
			zap.Error(e.Err),
		)
	}

	ctx.AbortWithStatusJSON(e.HTTPStatusCode, e)
}

func newErr(status int, message string, err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: status,
		OK:             false,
		Message:        message,
		ErrorMsg:       message,
	}
}

func ErrBadRequest(err error) *Err {
	return newErr(http.StatusBadRequest, err.Error(), err)
}

func ErrInvalidClaim(err error) *Err {
	return newErr(http.StatusBadRequest, MsgFillNameAndContact, err)
}

func ErrTextTooLong(err error) *Err {
	return newErr(http.StatusBadRequest, MsgTextTooLong, err)
}

func ErrUnauthorized(err error) *Err {
	return newErr(http.StatusUnauthorized, MsgUnauthorized, err)
}

func ErrNotFound(resource, field string, value interface{}) *Err {
	err := fmt.Errorf("%v with %v %v not found", resource, field, value)
	return newErr(http.StatusNotFound, MsgNumberNotFound, err)
}

func ErrTooManyRequests() *Err {
	return newErr(http.StatusTooManyRequests, MsgTooManyRequests, nil)
}

// ErrInternalServerError passes the underlying message through to the client.
func ErrInternalServerError(err error) *Err {
	return newErr(http.StatusInternalServerError, err.Error(), err)
}
