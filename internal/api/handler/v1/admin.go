package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/vietanh2810/raffle-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/raffle-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/raffle-api/internal/domain"
	"github.com/vietanh2810/raffle-api/internal/service"
)

type AdminAuthService interface {
	Login(ctx context.Context, password string) (service.AdminSession, error)
}

type AdminHandler struct {
	auth AdminAuthService
	svc  RaffleService
}

func NewAdminHandler(auth AdminAuthService, svc RaffleService) *AdminHandler {
	return &AdminHandler{
		auth: auth,
		svc:  svc,
	}
}

// HandleLogin godoc
// @Summary      Exchange the admin password for a session token
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body      request.LoginRequest  true  "credentials"
// @Success      200      {object}  response.LoginResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Router       /admin/login [post]
func (h *AdminHandler) HandleLogin(ctx *gin.Context) {
	var req request.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	session, err := h.auth.Login(ctx.Request.Context(), req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		err = fmt.Errorf("v1.HandleLogin -> h.auth.Login -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.LoginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// HandleList godoc
// @Summary      List every number with claim and payment details
// @Tags         admin
// @Produce      json
// @Param        pass  query     string  false  "legacy admin password"
// @Success      200   {object}  response.AdminListResponse
// @Failure      401   {object}  response.Err
// @Failure      500   {object}  response.Err
// @Router       /admin/list [get]
// @Security     BearerAuth
func (h *AdminHandler) HandleList(ctx *gin.Context) {
	numbers, err := h.svc.ListNumbers(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleList -> h.svc.ListNumbers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewAdminListResponse(numbers))
}

// HandleConfirm godoc
// @Summary      Confirm the payment of a chosen number
// @Description  Confirming a number that was never chosen, or one that is already paid,
// @Description  is rejected with ok=false and leaves the number unchanged.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body      request.ConfirmRequest  true  "confirmation"
// @Success      200      {object}  response.Result
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/confirm [post]
// @Security     BearerAuth
func (h *AdminHandler) HandleConfirm(ctx *gin.Context) {
	var req request.ConfirmRequest
	// The admin middleware may already have read the body.
	if err := ctx.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	_, err := h.svc.ConfirmPayment(ctx.Request.Context(), req.ToConfirmation())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNumberNotClaimed):
			ctx.JSON(http.StatusOK, response.Result{OK: false, Message: response.MsgNumberNotClaimed})
		case errors.Is(err, service.ErrNumberAlreadyPaid):
			ctx.JSON(http.StatusOK, response.Result{OK: false, Message: response.MsgAlreadyConfirmed})
		case errors.Is(err, service.ErrNumberNotFound):
			response.RenderErr(ctx, response.ErrNotFound("number", "number", req.Number))
		case errors.Is(err, service.ErrInvalidInput) && domain.IsTooLong(err):
			response.RenderErr(ctx, response.ErrTextTooLong(err))
		case errors.Is(err, service.ErrInvalidInput):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleConfirm -> h.svc.ConfirmPayment -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.Result{OK: true, Message: response.MsgPaymentConfirmed})
}
