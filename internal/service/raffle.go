package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vietanh2810/raffle-api/internal/config"
	"github.com/vietanh2810/raffle-api/internal/domain"
	"github.com/vietanh2810/raffle-api/internal/events"
	"github.com/vietanh2810/raffle-api/internal/metrics"
	"github.com/vietanh2810/raffle-api/internal/pkg/whatsapp"
	"github.com/vietanh2810/raffle-api/internal/repository"
)

var (
	ErrNumberNotFound    = repository.ErrNumberNotFound
	ErrNumberTaken       = repository.ErrNumberTaken
	ErrNumberNotClaimed  = repository.ErrNumberNotClaimed
	ErrNumberAlreadyPaid = repository.ErrNumberAlreadyPaid
	ErrStoreUnavailable  = repository.ErrStoreUnavailable
	ErrInvalidInput      = errors.New("invalid input")
)

type RaffleRepository interface {
	Seed(ctx context.Context, eventID string, total int) (int64, error)
	List(ctx context.Context, eventID string) ([]domain.RaffleNumber, error)
	FindByNumber(ctx context.Context, eventID string, number int) (domain.RaffleNumber, error)
	Claim(ctx context.Context, eventID string, claim domain.Claim, at time.Time) (domain.RaffleNumber, error)
	ConfirmPayment(ctx context.Context, eventID string, c domain.Confirmation, at time.Time) (domain.RaffleNumber, error)
	Ping(ctx context.Context) error
}

type ShareResult struct {
	Number     int               `json:"number"`
	DiaperSize domain.DiaperSize `json:"diaperSize"`
	Message    string            `json:"message"`
	Links      []whatsapp.Link   `json:"links"`
}

type RaffleService struct {
	repo      RaffleRepository
	conf      *config.RaffleConfig
	publisher events.Publisher
	metrics   *metrics.Recorder
	now       func() time.Time
}

func NewRaffleService(repo RaffleRepository, conf *config.RaffleConfig, publisher events.Publisher, recorder *metrics.Recorder) *RaffleService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}

	return &RaffleService{
		repo:      repo,
		conf:      conf,
		publisher: publisher,
		metrics:   recorder,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Seed makes sure numbers 1..TotalNumbers exist for the configured event.
func (s *RaffleService) Seed(ctx context.Context) (int64, error) {
	created, err := s.repo.Seed(ctx, s.conf.EventID, s.conf.TotalNumbers)
	if err != nil {
		return 0, fmt.Errorf("s.repo.Seed -> %w", err)
	}

	return created, nil
}

func (s *RaffleService) ListNumbers(ctx context.Context) ([]domain.RaffleNumber, error) {
	numbers, err := s.repo.List(ctx, s.conf.EventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return numbers, nil
}

func (s *RaffleService) Summary(ctx context.Context) (domain.Summary, error) {
	numbers, err := s.ListNumbers(ctx)
	if err != nil {
		return domain.Summary{}, err
	}

	return domain.Summarize(numbers), nil
}

// Claim validates the claim before touching the store, then performs the
// conditional available -> chosen transition.
func (s *RaffleService) Claim(ctx context.Context, claim domain.Claim) (domain.RaffleNumber, error) {
	claim.Normalize()
	if err := claim.Validate(); err != nil {
		s.metrics.Claim(metrics.OutcomeInvalid)
		return domain.RaffleNumber{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	claimed, err := s.repo.Claim(ctx, s.conf.EventID, claim, s.now())
	if err != nil {
		switch {
		case errors.Is(err, ErrNumberTaken):
			s.metrics.Claim(metrics.OutcomeTaken)
		case errors.Is(err, ErrNumberNotFound):
			s.metrics.Claim(metrics.OutcomeNotFound)
		default:
			s.metrics.Claim(metrics.OutcomeError)
		}

		return domain.RaffleNumber{}, fmt.Errorf("s.repo.Claim -> %w", err)
	}
	s.metrics.Claim(metrics.OutcomeSuccess)

	s.publish(ctx, events.NumberEvent{
		Type:        events.TypeNumberClaimed,
		EventID:     s.conf.EventID,
		Number:      claimed.Number,
		Status:      string(claimed.Status),
		PaymentType: string(claim.PaymentType),
		At:          s.now(),
	})

	zap.L().Info("number claimed",
		zap.String("event_id", s.conf.EventID),
		zap.Int("number", claimed.Number),
		zap.String("payment_type", string(claim.PaymentType)),
	)

	return claimed, nil
}

// ConfirmPayment moves a chosen number to paid. Confirming an available number
// or re-confirming a paid one is rejected without changing the row.
func (s *RaffleService) ConfirmPayment(ctx context.Context, c domain.Confirmation) (domain.RaffleNumber, error) {
	c.Normalize()
	if err := c.Validate(); err != nil {
		s.metrics.Confirmation(metrics.OutcomeInvalid)
		return domain.RaffleNumber{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	confirmed, err := s.repo.ConfirmPayment(ctx, s.conf.EventID, c, s.now())
	if err != nil {
		switch {
		case errors.Is(err, ErrNumberNotClaimed):
			s.metrics.Confirmation(metrics.OutcomeNotClaimed)
		case errors.Is(err, ErrNumberAlreadyPaid):
			s.metrics.Confirmation(metrics.OutcomeAlreadyPaid)
		case errors.Is(err, ErrNumberNotFound):
			s.metrics.Confirmation(metrics.OutcomeNotFound)
		default:
			s.metrics.Confirmation(metrics.OutcomeError)
		}

		return domain.RaffleNumber{}, fmt.Errorf("s.repo.ConfirmPayment -> %w", err)
	}
	s.metrics.Confirmation(metrics.OutcomeSuccess)

	s.publish(ctx, events.NumberEvent{
		Type:    events.TypeNumberPaid,
		EventID: s.conf.EventID,
		Number:  confirmed.Number,
		Status:  string(confirmed.Status),
		At:      s.now(),
	})

	zap.L().Info("payment confirmed",
		zap.String("event_id", s.conf.EventID),
		zap.Int("number", confirmed.Number),
		zap.String("confirmed_by", c.ConfirmedBy),
	)

	return confirmed, nil
}

// Share builds the WhatsApp message and deep links for number. It does not
// read the store; numbers outside 1..TotalNumbers are reported as not found.
func (s *RaffleService) Share(number int, name, contact string, paymentType domain.PaymentType) (ShareResult, error) {
	if number < 1 || number > s.conf.TotalNumbers {
		return ShareResult{}, ErrNumberNotFound
	}
	if paymentType == "" {
		paymentType = domain.PaymentPix
	}

	recipients := make([]whatsapp.Recipient, len(s.conf.WhatsAppRecipients))
	for i, r := range s.conf.WhatsAppRecipients {
		recipients[i] = whatsapp.Recipient{Label: r.Label, Phone: r.Phone}
	}

	msg := whatsapp.Message(whatsapp.Share{
		Title:       s.conf.Title,
		Number:      number,
		Name:        name,
		Contact:     contact,
		PaymentType: paymentType,
		PixKey:      s.conf.PixKey,
		PixValue:    s.conf.PixValue,
	})

	return ShareResult{
		Number:     number,
		DiaperSize: domain.DiaperSizeFor(number),
		Message:    msg,
		Links:      whatsapp.Links(recipients, msg),
	}, nil
}

func (s *RaffleService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *RaffleService) publish(ctx context.Context, evt events.NumberEvent) {
	if err := s.publisher.Publish(ctx, evt); err != nil {
		zap.L().Warn("failed to publish registry event",
			zap.String("type", evt.Type),
			zap.Int("number", evt.Number),
			zap.Error(err),
		)
	}
}
