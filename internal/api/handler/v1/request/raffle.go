package request

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/vietanh2810/raffle-api/internal/domain"
)

var errBlank = errors.New("cannot be blank")

type ClaimRequest struct {
	Number      int    `json:"number"`
	Name        string `json:"name"`
	WhatsApp    string `json:"whatsapp"`
	PaymentType string `json:"paymentType"`
}

func (req *ClaimRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Number, validation.Required, validation.Min(1)),
		validation.Field(&req.Name, validation.By(notBlank)),
		validation.Field(&req.WhatsApp, validation.By(notBlank)),
	)
}

func (req *ClaimRequest) ToClaim() (domain.Claim, error) {
	pt, err := domain.ParsePaymentType(req.PaymentType)
	if err != nil {
		return domain.Claim{}, err
	}

	return domain.Claim{
		Number:      req.Number,
		Name:        req.Name,
		Contact:     req.WhatsApp,
		PaymentType: pt,
	}, nil
}

type ShareRequest struct {
	Name        string `form:"name"`
	Contact     string `form:"contact"`
	PaymentType string `form:"paymentType"`
}

func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errBlank
	}

	return nil
}
