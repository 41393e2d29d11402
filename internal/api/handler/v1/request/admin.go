package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/vietanh2810/raffle-api/internal/domain"
)

type LoginRequest struct {
	Password string `json:"password"`
}

func (req *LoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Password, validation.Required),
	)
}

// ConfirmRequest keeps the legacy pass field; the admin middleware reads it
// when no bearer token is sent.
type ConfirmRequest struct {
	Pass        string  `json:"pass,omitempty"`
	Number      int     `json:"number"`
	ConfirmedBy string  `json:"confirmedBy"`
	ProofNote   *string `json:"proofNote"`
}

func (req *ConfirmRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Number, validation.Required, validation.Min(1)),
		validation.Field(&req.ProofNote, validation.Length(0, 500)),
	)
}

func (req *ConfirmRequest) ToConfirmation() domain.Confirmation {
	return domain.Confirmation{
		Number:      req.Number,
		ConfirmedBy: req.ConfirmedBy,
		ProofNote:   req.ProofNote,
	}
}
