package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation"
)

type NumberStatus string

const (
	StatusAvailable NumberStatus = "available"
	StatusChosen    NumberStatus = "chosen"
	StatusPaid      NumberStatus = "paid"
)

type PaymentType string

const (
	PaymentPix    PaymentType = "pix"
	PaymentInKind PaymentType = "in-kind"
)

const DefaultConfirmedBy = "admin"

const (
	MaxNameLength        = 120
	MaxContactLength     = 60
	MaxConfirmedByLength = 60
)

var (
	ErrInvalidPaymentType = errors.New("payment type must be pix or in-kind")
	ErrTooLong            = errors.New("is too long")
)

type RaffleNumber struct {
	EventID          string       `json:"-"`
	Number           int          `json:"number"`
	Status           NumberStatus `json:"status"`
	ClaimantName     *string      `json:"taken_by_name"`
	ClaimantContact  *string      `json:"taken_by_whatsapp"`
	PaymentType      *PaymentType `json:"payment_type"`
	ClaimedAt        *time.Time   `json:"taken_at"`
	PaymentConfirmed bool         `json:"payment_confirmed"`
	ConfirmedBy      *string      `json:"confirmed_by"`
	ConfirmedAt      *time.Time   `json:"confirmed_at"`
	ProofNote        *string      `json:"proof_note"`
}

func (n RaffleNumber) IsAvailable() bool {
	return n.Status == StatusAvailable
}

func (n RaffleNumber) DiaperSize() DiaperSize {
	return DiaperSizeFor(n.Number)
}

// ParsePaymentType maps wire values to a PaymentType. An empty value means pix.
// "fralda" is what the first web client sent for in-kind diaper payments.
func ParsePaymentType(s string) (PaymentType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(PaymentPix):
		return PaymentPix, nil
	case string(PaymentInKind), "fralda", "diaper":
		return PaymentInKind, nil
	default:
		return "", ErrInvalidPaymentType
	}
}

type Claim struct {
	Number      int
	Name        string
	Contact     string
	PaymentType PaymentType
}

// Normalize trims the free text fields.
func (c *Claim) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Contact = strings.TrimSpace(c.Contact)
	if c.PaymentType == "" {
		c.PaymentType = PaymentPix
	}
}

func (c *Claim) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Number, validation.Required, validation.Min(1)),
		validation.Field(&c.Name, validation.Required, validation.By(maxLength(MaxNameLength))),
		validation.Field(&c.Contact, validation.Required, validation.By(maxLength(MaxContactLength))),
		validation.Field(&c.PaymentType, validation.In(PaymentPix, PaymentInKind).Error(ErrInvalidPaymentType.Error())),
	)
}

// Contact is free text: the first web client accepted any non-empty value.
func maxLength(limit int) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if utf8.RuneCountInString(s) > limit {
			return ErrTooLong
		}
		return nil
	}
}

// IsTooLong reports whether err carries a length violation on any field.
func IsTooLong(err error) bool {
	var fields validation.Errors
	if !errors.As(err, &fields) {
		return errors.Is(err, ErrTooLong)
	}

	for _, fieldErr := range fields {
		if errors.Is(fieldErr, ErrTooLong) {
			return true
		}
	}

	return false
}

type Confirmation struct {
	Number      int
	ConfirmedBy string
	ProofNote   *string
}

func (c *Confirmation) Normalize() {
	c.ConfirmedBy = strings.TrimSpace(c.ConfirmedBy)
	if c.ConfirmedBy == "" {
		c.ConfirmedBy = DefaultConfirmedBy
	}

	if c.ProofNote != nil {
		note := strings.TrimSpace(*c.ProofNote)
		if note == "" {
			c.ProofNote = nil
		} else {
			c.ProofNote = &note
		}
	}
}

func (c *Confirmation) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Number, validation.Required, validation.Min(1)),
		validation.Field(&c.ConfirmedBy, validation.Required, validation.By(maxLength(MaxConfirmedByLength))),
	)
}

type Summary struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Chosen    int `json:"chosen"`
	Paid      int `json:"paid"`
}

func Summarize(numbers []RaffleNumber) Summary {
	s := Summary{Total: len(numbers)}
	for _, n := range numbers {
		switch n.Status {
		case StatusAvailable:
			s.Available++
		case StatusChosen:
			s.Chosen++
		case StatusPaid:
			s.Paid++
		}
	}

	return s
}
