package repository

import (
	"context"
	"time"

	"github.com/vietanh2810/raffle-api/internal/domain"
	"github.com/vietanh2810/raffle-api/internal/repository/dao"
)

var (
	ErrNumberNotFound    = dao.ErrNumberNotFound
	ErrNumberTaken       = dao.ErrNumberTaken
	ErrNumberNotClaimed  = dao.ErrNumberNotClaimed
	ErrNumberAlreadyPaid = dao.ErrNumberAlreadyPaid
	ErrStoreUnavailable  = dao.ErrStoreUnavailable
)

type RaffleNumberDAO interface {
	Seed(ctx context.Context, eventID string, total int) (int64, error)
	ListByEvent(ctx context.Context, eventID string) ([]dao.RaffleNumber, error)
	FindByNumber(ctx context.Context, eventID string, number int) (dao.RaffleNumber, error)
	Claim(ctx context.Context, eventID string, p dao.ClaimParams) (dao.RaffleNumber, error)
	ConfirmPayment(ctx context.Context, eventID string, p dao.ConfirmParams) (dao.RaffleNumber, error)
	Ping(ctx context.Context) error
}

type RaffleRepository struct {
	dao RaffleNumberDAO
}

func NewRaffleRepository(dao RaffleNumberDAO) *RaffleRepository {
	return &RaffleRepository{
		dao: dao,
	}
}

func (r *RaffleRepository) Seed(ctx context.Context, eventID string, total int) (int64, error) {
	return r.dao.Seed(ctx, eventID, total)
}

func (r *RaffleRepository) List(ctx context.Context, eventID string) ([]domain.RaffleNumber, error) {
	rows, err := r.dao.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	numbers := make([]domain.RaffleNumber, len(rows))
	for i, row := range rows {
		numbers[i] = r.daoToDomain(row)
	}

	return numbers, nil
}

func (r *RaffleRepository) FindByNumber(ctx context.Context, eventID string, number int) (domain.RaffleNumber, error) {
	row, err := r.dao.FindByNumber(ctx, eventID, number)
	if err != nil {
		return domain.RaffleNumber{}, err
	}

	return r.daoToDomain(row), nil
}

func (r *RaffleRepository) Claim(ctx context.Context, eventID string, claim domain.Claim, at time.Time) (domain.RaffleNumber, error) {
	row, err := r.dao.Claim(ctx, eventID, dao.ClaimParams{
		Number:      claim.Number,
		Name:        claim.Name,
		Contact:     claim.Contact,
		PaymentType: string(claim.PaymentType),
		ClaimedAt:   at,
	})
	if err != nil {
		return domain.RaffleNumber{}, err
	}

	return r.daoToDomain(row), nil
}

func (r *RaffleRepository) ConfirmPayment(ctx context.Context, eventID string, c domain.Confirmation, at time.Time) (domain.RaffleNumber, error) {
	row, err := r.dao.ConfirmPayment(ctx, eventID, dao.ConfirmParams{
		Number:      c.Number,
		ConfirmedBy: c.ConfirmedBy,
		ProofNote:   c.ProofNote,
		ConfirmedAt: at,
	})
	if err != nil {
		return domain.RaffleNumber{}, err
	}

	return r.daoToDomain(row), nil
}

func (r *RaffleRepository) Ping(ctx context.Context) error {
	return r.dao.Ping(ctx)
}

func (r *RaffleRepository) daoToDomain(row dao.RaffleNumber) domain.RaffleNumber {
	n := domain.RaffleNumber{
		EventID:          row.EventID,
		Number:           row.Number,
		Status:           domain.NumberStatus(row.Status),
		ClaimantName:     row.ClaimantName,
		ClaimantContact:  row.ClaimantContact,
		ClaimedAt:        row.ClaimedAt,
		PaymentConfirmed: row.PaymentConfirmed,
		ConfirmedBy:      row.ConfirmedBy,
		ConfirmedAt:      row.ConfirmedAt,
		ProofNote:        row.ProofNote,
	}

	if row.PaymentType != nil {
		pt := domain.PaymentType(*row.PaymentType)
		n.PaymentType = &pt
	}

	return n
}
