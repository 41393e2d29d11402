package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/raffle-api/internal/config"
	"github.com/vietanh2810/raffle-api/internal/domain"
	"github.com/vietanh2810/raffle-api/internal/events"
	"github.com/vietanh2810/raffle-api/internal/metrics"
)

const testEventID = "cha-rifa"

func newTestService(t *testing.T) (*RaffleService, *memoryRepo, *recordingPublisher, *metrics.Recorder) {
	t.Helper()

	repo := newMemoryRepo()
	pub := &recordingPublisher{}
	rec := metrics.New(prometheus.NewRegistry())
	svc := NewRaffleService(repo, &config.RaffleConfig{
		EventID:      testEventID,
		Title:        "Chá rifa",
		TotalNumbers: 100,
		PixKey:       "412.000.618.29",
		PixValue:     45,
		WhatsAppRecipients: []config.WhatsAppRecipient{
			{Label: "Mamãe", Phone: "5517988017726"},
		},
	}, pub, rec)

	created, err := svc.Seed(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 100, created)

	return svc, repo, pub, rec
}

func validClaim(number int) domain.Claim {
	return domain.Claim{Number: number, Name: "Ana", Contact: "17 98801-7726"}
}

func TestRaffleService_ListNumbers_FreshEvent(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	numbers, err := svc.ListNumbers(context.Background())
	require.NoError(t, err)
	require.Len(t, numbers, 100)
	for i, n := range numbers {
		assert.Equal(t, i+1, n.Number)
		assert.Equal(t, domain.StatusAvailable, n.Status)
	}

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Summary{Total: 100, Available: 100}, summary)
}

func TestRaffleService_Claim_EveryNumberOnce(t *testing.T) {
	svc, _, pub, rec := newTestService(t)
	ctx := context.Background()

	for n := 1; n <= 100; n++ {
		claimed, err := svc.Claim(ctx, validClaim(n))
		require.NoError(t, err)
		assert.Equal(t, domain.StatusChosen, claimed.Status)
		assert.Equal(t, domain.PaymentPix, *claimed.PaymentType)
	}

	assert.Len(t, pub.events, 100)
	assert.Equal(t, events.TypeNumberClaimed, pub.events[0].Type)
	assert.Equal(t, float64(100), testutil.ToFloat64(rec.Claims.WithLabelValues(metrics.OutcomeSuccess)))

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100, summary.Chosen)
}

func TestRaffleService_Claim_Concurrent(t *testing.T) {
	svc, _, _, rec := newTestService(t)

	const attempts = 16
	var (
		wg   sync.WaitGroup
		errs = make(chan error, attempts)
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c := validClaim(33)
			c.Name = fmt.Sprintf("guest %d", i)
			_, err := svc.Claim(context.Background(), c)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	var ok, taken int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrNumberTaken):
			taken++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, ok)
	assert.Equal(t, attempts-1, taken)
	assert.Equal(t, float64(attempts-1), testutil.ToFloat64(rec.Claims.WithLabelValues(metrics.OutcomeTaken)))
}

func TestRaffleService_Claim_ValidationBeforeStore(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	before := repo.callCount()

	tests := []domain.Claim{
		{Number: 1, Name: "", Contact: "17988017726"},
		{Number: 1, Name: "   ", Contact: "17988017726"},
		{Number: 1, Name: "Ana", Contact: ""},
		{Number: 1, Name: "Ana", Contact: "  "},
		{Number: 0, Name: "Ana", Contact: "17988017726"},
	}

	for _, c := range tests {
		_, err := svc.Claim(context.Background(), c)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}

	assert.Equal(t, before, repo.callCount())
}

func TestRaffleService_Claim_AcceptsAnyNonBlankContact(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	for i, contact := range []string{"ana@example.com", "1234", "@ana_insta"} {
		claimed, err := svc.Claim(context.Background(), domain.Claim{Number: i + 1, Name: "Ana", Contact: contact})
		require.NoError(t, err, contact)
		assert.Equal(t, domain.StatusChosen, claimed.Status)
	}
}

func TestRaffleService_Claim_TooLong(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	before := repo.callCount()

	_, err := svc.Claim(context.Background(), domain.Claim{Number: 1, Name: strings.Repeat("a", domain.MaxNameLength+1), Contact: "17988017726"})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.True(t, domain.IsTooLong(err))
	assert.Equal(t, before, repo.callCount())
}

func TestRaffleService_Claim_EmptyNameFailsOnTakenNumber(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Claim(context.Background(), validClaim(5))
	require.NoError(t, err)

	_, err = svc.Claim(context.Background(), domain.Claim{Number: 5, Contact: "17988017726"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRaffleService_Claim_Errors(t *testing.T) {
	svc, repo, pub, _ := newTestService(t)

	_, err := svc.Claim(context.Background(), validClaim(101))
	assert.ErrorIs(t, err, ErrNumberNotFound)

	repo.err = ErrStoreUnavailable
	_, err = svc.Claim(context.Background(), validClaim(1))
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	assert.Empty(t, pub.events)
}

func TestRaffleService_Claim_PublishFailureDoesNotFail(t *testing.T) {
	svc, _, pub, _ := newTestService(t)
	pub.err = errors.New("broker down")

	claimed, err := svc.Claim(context.Background(), validClaim(10))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusChosen, claimed.Status)
}

func TestRaffleService_ConfirmPayment(t *testing.T) {
	svc, _, pub, rec := newTestService(t)
	ctx := context.Background()
	note := " comprovante ok "

	_, err := svc.ConfirmPayment(ctx, domain.Confirmation{Number: 8})
	assert.ErrorIs(t, err, ErrNumberNotClaimed)

	_, err = svc.ConfirmPayment(ctx, domain.Confirmation{Number: 500})
	assert.ErrorIs(t, err, ErrNumberNotFound)

	_, err = svc.ConfirmPayment(ctx, domain.Confirmation{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Claim(ctx, validClaim(8))
	require.NoError(t, err)

	paid, err := svc.ConfirmPayment(ctx, domain.Confirmation{Number: 8, ProofNote: &note})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, paid.Status)
	assert.True(t, paid.PaymentConfirmed)
	assert.Equal(t, domain.DefaultConfirmedBy, *paid.ConfirmedBy)
	assert.Equal(t, "comprovante ok", *paid.ProofNote)
	assert.NotNil(t, paid.ConfirmedAt)

	_, err = svc.ConfirmPayment(ctx, domain.Confirmation{Number: 8, ConfirmedBy: "dad"})
	assert.ErrorIs(t, err, ErrNumberAlreadyPaid)

	numbers, err := svc.ListNumbers(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfirmedBy, *numbers[7].ConfirmedBy)

	require.Len(t, pub.events, 2)
	assert.Equal(t, events.TypeNumberPaid, pub.events[1].Type)
	assert.Equal(t, float64(1), testutil.ToFloat64(rec.Confirmations.WithLabelValues(metrics.OutcomeSuccess)))
	assert.Equal(t, float64(1), testutil.ToFloat64(rec.Confirmations.WithLabelValues(metrics.OutcomeAlreadyPaid)))
}

func TestRaffleService_Share(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	res, err := svc.Share(31, "Ana", "", "")
	require.NoError(t, err)
	assert.Equal(t, 31, res.Number)
	assert.Equal(t, domain.DiaperM, res.DiaperSize)
	assert.Contains(t, res.Message, "R$ 45,00")
	require.Len(t, res.Links, 1)
	assert.Equal(t, "Mamãe", res.Links[0].Label)

	_, err = svc.Share(0, "", "", domain.PaymentPix)
	assert.ErrorIs(t, err, ErrNumberNotFound)

	_, err = svc.Share(101, "", "", domain.PaymentPix)
	assert.ErrorIs(t, err, ErrNumberNotFound)
}
