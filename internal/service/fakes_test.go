package service

import (
	"context"
	"sync"
	"time"

	"github.com/vietanh2810/raffle-api/internal/domain"
	"github.com/vietanh2810/raffle-api/internal/events"
)

// memoryRepo mirrors the conditional updates of the postgres DAO behind a mutex.
type memoryRepo struct {
	mu      sync.Mutex
	numbers map[string][]domain.RaffleNumber
	calls   int
	err     error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{numbers: map[string][]domain.RaffleNumber{}}
}

func (r *memoryRepo) Seed(ctx context.Context, eventID string, total int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++

	var created int64
	for n := len(r.numbers[eventID]) + 1; n <= total; n++ {
		r.numbers[eventID] = append(r.numbers[eventID], domain.RaffleNumber{EventID: eventID, Number: n, Status: domain.StatusAvailable})
		created++
	}

	return created, nil
}

func (r *memoryRepo) List(ctx context.Context, eventID string) ([]domain.RaffleNumber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++

	if r.err != nil {
		return nil, r.err
	}

	out := make([]domain.RaffleNumber, len(r.numbers[eventID]))
	copy(out, r.numbers[eventID])

	return out, nil
}

func (r *memoryRepo) FindByNumber(ctx context.Context, eventID string, number int) (domain.RaffleNumber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++

	idx := number - 1
	if idx < 0 || idx >= len(r.numbers[eventID]) {
		return domain.RaffleNumber{}, ErrNumberNotFound
	}

	return r.numbers[eventID][idx], nil
}

func (r *memoryRepo) Claim(ctx context.Context, eventID string, claim domain.Claim, at time.Time) (domain.RaffleNumber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++

	if r.err != nil {
		return domain.RaffleNumber{}, r.err
	}

	idx := claim.Number - 1
	if idx < 0 || idx >= len(r.numbers[eventID]) {
		return domain.RaffleNumber{}, ErrNumberNotFound
	}

	n := &r.numbers[eventID][idx]
	if n.Status != domain.StatusAvailable {
		return domain.RaffleNumber{}, ErrNumberTaken
	}

	name, contact, pt := claim.Name, claim.Contact, claim.PaymentType
	n.Status = domain.StatusChosen
	n.ClaimantName = &name
	n.ClaimantContact = &contact
	n.PaymentType = &pt
	n.ClaimedAt = &at

	return *n, nil
}

func (r *memoryRepo) ConfirmPayment(ctx context.Context, eventID string, c domain.Confirmation, at time.Time) (domain.RaffleNumber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++

	idx := c.Number - 1
	if idx < 0 || idx >= len(r.numbers[eventID]) {
		return domain.RaffleNumber{}, ErrNumberNotFound
	}

	n := &r.numbers[eventID][idx]
	switch n.Status {
	case domain.StatusAvailable:
		return domain.RaffleNumber{}, ErrNumberNotClaimed
	case domain.StatusPaid:
		return domain.RaffleNumber{}, ErrNumberAlreadyPaid
	}

	by := c.ConfirmedBy
	n.Status = domain.StatusPaid
	n.PaymentConfirmed = true
	n.ConfirmedBy = &by
	n.ConfirmedAt = &at
	n.ProofNote = c.ProofNote

	return *n, nil
}

func (r *memoryRepo) Ping(ctx context.Context) error {
	return r.err
}

func (r *memoryRepo) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.NumberEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, evt events.NumberEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return p.err
}

func (p *recordingPublisher) Close() error {
	return nil
}
