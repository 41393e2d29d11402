package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	StatusAvailable = "available"
	StatusChosen    = "chosen"
	StatusPaid      = "paid"
)

var (
	ErrNumberNotFound    = errors.New("number not found")
	ErrNumberTaken       = errors.New("number already claimed")
	ErrNumberNotClaimed  = errors.New("number has not been claimed")
	ErrNumberAlreadyPaid = errors.New("number payment already confirmed")
	ErrStoreUnavailable  = errors.New("store unavailable")
)

type RaffleNumber struct {
	ID               uint   `gorm:"primaryKey"`
	EventID          string `gorm:"not null;uniqueIndex:idx_raffle_numbers_event_number"`
	Number           int    `gorm:"not null;uniqueIndex:idx_raffle_numbers_event_number"`
	Status           string `gorm:"not null;default:available;check:chk_raffle_numbers_status,status IN ('available','chosen','paid')"`
	ClaimantName     *string
	ClaimantContact  *string
	PaymentType      *string
	ClaimedAt        *time.Time
	PaymentConfirmed bool `gorm:"not null;default:false"`
	ConfirmedBy      *string
	ConfirmedAt      *time.Time
	ProofNote        *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (RaffleNumber) TableName() string {
	return "raffle_numbers"
}

type ClaimParams struct {
	Number      int
	Name        string
	Contact     string
	PaymentType string
	ClaimedAt   time.Time
}

type ConfirmParams struct {
	Number      int
	ConfirmedBy string
	ProofNote   *string
	ConfirmedAt time.Time
}

type RaffleNumberDAO struct {
	db *gorm.DB
}

func NewRaffleNumberDAO(db *gorm.DB) *RaffleNumberDAO {
	return &RaffleNumberDAO{
		db: db,
	}
}

// Seed inserts numbers 1..total for eventID, leaving existing rows untouched.
// It returns how many rows were actually created.
func (d *RaffleNumberDAO) Seed(ctx context.Context, eventID string, total int) (int64, error) {
	rows := make([]RaffleNumber, 0, total)
	for n := 1; n <= total; n++ {
		rows = append(rows, RaffleNumber{
			EventID: eventID,
			Number:  n,
			Status:  StatusAvailable,
		})
	}

	result := d.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}, {Name: "number"}},
			DoNothing: true,
		}).
		CreateInBatches(&rows, 100)
	if result.Error != nil {
		return 0, translateErr(result.Error)
	}

	return result.RowsAffected, nil
}

func (d *RaffleNumberDAO) ListByEvent(ctx context.Context, eventID string) ([]RaffleNumber, error) {
	var numbers []RaffleNumber

	result := d.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("number ASC").
		Find(&numbers)
	if result.Error != nil {
		return nil, translateErr(result.Error)
	}

	return numbers, nil
}

func (d *RaffleNumberDAO) FindByNumber(ctx context.Context, eventID string, number int) (RaffleNumber, error) {
	var n RaffleNumber

	result := d.db.WithContext(ctx).First(&n, "event_id = ? AND number = ?", eventID, number)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return RaffleNumber{}, ErrNumberNotFound
		}

		return RaffleNumber{}, translateErr(result.Error)
	}

	return n, nil
}

// Claim moves an available number to chosen in a single conditional UPDATE, so
// two concurrent claims of the same number cannot both match the status filter.
func (d *RaffleNumberDAO) Claim(ctx context.Context, eventID string, p ClaimParams) (RaffleNumber, error) {
	var claimed RaffleNumber

	result := d.db.WithContext(ctx).
		Model(&claimed).
		Clauses(clause.Returning{}).
		Where("event_id = ? AND number = ? AND status = ?", eventID, p.Number, StatusAvailable).
		Updates(map[string]interface{}{
			"status":           StatusChosen,
			"claimant_name":    p.Name,
			"claimant_contact": p.Contact,
			"payment_type":     p.PaymentType,
			"claimed_at":       p.ClaimedAt,
		})
	if result.Error != nil {
		return RaffleNumber{}, translateErr(result.Error)
	}

	if result.RowsAffected == 0 {
		if _, err := d.FindByNumber(ctx, eventID, p.Number); err != nil {
			return RaffleNumber{}, err
		}

		return RaffleNumber{}, ErrNumberTaken
	}

	return claimed, nil
}

// ConfirmPayment moves a chosen number to paid. Available and already paid
// numbers are rejected and left untouched.
func (d *RaffleNumberDAO) ConfirmPayment(ctx context.Context, eventID string, p ConfirmParams) (RaffleNumber, error) {
	var confirmed RaffleNumber

	result := d.db.WithContext(ctx).
		Model(&confirmed).
		Clauses(clause.Returning{}).
		Where("event_id = ? AND number = ? AND status = ?", eventID, p.Number, StatusChosen).
		Updates(map[string]interface{}{
			"status":            StatusPaid,
			"payment_confirmed": true,
			"confirmed_by":      p.ConfirmedBy,
			"confirmed_at":      p.ConfirmedAt,
			"proof_note":        p.ProofNote,
		})
	if result.Error != nil {
		return RaffleNumber{}, translateErr(result.Error)
	}

	if result.RowsAffected == 0 {
		current, err := d.FindByNumber(ctx, eventID, p.Number)
		if err != nil {
			return RaffleNumber{}, err
		}

		if current.Status == StatusPaid {
			return RaffleNumber{}, ErrNumberAlreadyPaid
		}

		return RaffleNumber{}, ErrNumberNotClaimed
	}

	return confirmed, nil
}

func (d *RaffleNumberDAO) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}

	if err = sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return nil
}

func translateErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) &&
		(pgerrcode.IsConnectionException(pgErr.Code) ||
			pgerrcode.IsInsufficientResources(pgErr.Code) ||
			pgErr.Code == pgerrcode.AdminShutdown ||
			pgErr.Code == pgerrcode.CannotConnectNow) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, pgErr.Message)
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, connectErr)
	}

	return err
}
