package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/raffle-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/raffle-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/raffle-api/internal/domain"
	"github.com/vietanh2810/raffle-api/internal/service"
)

type RaffleService interface {
	ListNumbers(ctx context.Context) ([]domain.RaffleNumber, error)
	Summary(ctx context.Context) (domain.Summary, error)
	Claim(ctx context.Context, claim domain.Claim) (domain.RaffleNumber, error)
	ConfirmPayment(ctx context.Context, c domain.Confirmation) (domain.RaffleNumber, error)
	Share(number int, name, contact string, paymentType domain.PaymentType) (service.ShareResult, error)
}

type RaffleHandler struct {
	svc RaffleService
}

func NewRaffleHandler(svc RaffleService) *RaffleHandler {
	return &RaffleHandler{
		svc: svc,
	}
}

// HandleListNumbers godoc
// @Summary      List raffle numbers
// @Description  Returns every number of the active event with its status, ascending.
// @Tags         numbers
// @Produce      json
// @Success      200  {object}  response.NumbersResponse
// @Failure      500  {object}  response.Err
// @Router       /numbers [get]
func (h *RaffleHandler) HandleListNumbers(ctx *gin.Context) {
	numbers, err := h.svc.ListNumbers(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListNumbers -> h.svc.ListNumbers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewNumbersResponse(numbers))
}

// HandleSummary godoc
// @Summary      Count numbers by status
// @Tags         numbers
// @Produce      json
// @Success      200  {object}  domain.Summary
// @Failure      500  {object}  response.Err
// @Router       /numbers/summary [get]
func (h *RaffleHandler) HandleSummary(ctx *gin.Context) {
	summary, err := h.svc.Summary(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleSummary -> h.svc.Summary -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, summary)
}

// HandleClaim godoc
// @Summary      Claim a number
// @Description  Moves an available number to chosen. A number that is already taken
// @Description  is reported with ok=false and HTTP 200 so the client can pick another one.
// @Tags         numbers
// @Accept       json
// @Produce      json
// @Param        request  body      request.ClaimRequest  true  "claim"
// @Success      200      {object}  response.ClaimResponse
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      429      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /claim [post]
func (h *RaffleHandler) HandleClaim(ctx *gin.Context) {
	var req request.ClaimRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrInvalidClaim(err))
		return
	}

	claim, err := req.ToClaim()
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	claimed, err := h.svc.Claim(ctx.Request.Context(), claim)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNumberTaken):
			ctx.JSON(http.StatusOK, response.ClaimResponse{Result: response.Result{OK: false, Message: response.MsgNumberTaken}})
		case errors.Is(err, service.ErrNumberNotFound):
			response.RenderErr(ctx, response.ErrNotFound("number", "number", req.Number))
		case errors.Is(err, service.ErrInvalidInput) && domain.IsTooLong(err):
			response.RenderErr(ctx, response.ErrTextTooLong(err))
		case errors.Is(err, service.ErrInvalidInput):
			response.RenderErr(ctx, response.ErrInvalidClaim(err))
		default:
			err = fmt.Errorf("v1.HandleClaim -> h.svc.Claim -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	resp := response.ClaimResponse{
		Result:     response.Result{OK: true, Message: response.MsgClaimed},
		DiaperSize: claimed.DiaperSize(),
	}
	if share, err := h.svc.Share(claimed.Number, claim.Name, claim.Contact, claim.PaymentType); err == nil {
		resp.ShareLinks = share.Links
	}

	ctx.JSON(http.StatusOK, resp)
}

// HandleShare godoc
// @Summary      WhatsApp message and links for a number
// @Tags         numbers
// @Produce      json
// @Param        number       path   int     true   "raffle number"
// @Param        name         query  string  false  "participant name"
// @Param        contact      query  string  false  "participant WhatsApp"
// @Param        paymentType  query  string  false  "pix or in-kind"
// @Success      200  {object}  service.ShareResult
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /numbers/{number}/share [get]
func (h *RaffleHandler) HandleShare(ctx *gin.Context) {
	number, err := strconv.Atoi(ctx.Param("number"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid number: %w", err)))
		return
	}

	var req request.ShareRequest
	if err = ctx.ShouldBindQuery(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	pt, err := domain.ParsePaymentType(req.PaymentType)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	share, err := h.svc.Share(number, req.Name, req.Contact, pt)
	if err != nil {
		if errors.Is(err, service.ErrNumberNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("number", "number", number))
			return
		}

		err = fmt.Errorf("v1.HandleShare -> h.svc.Share -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, share)
}
