package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aid4sure/VeganEcosystem/internal/domain/models"
	"github.com/aid4sure/VeganEcosystem/internal/domain/repository"
	"github.com/aid4sure/VeganEcosystem/internal/infrastructure/config"
)

func newGiftCardService(t *testing.T) (*GiftCardService, *fixedClock) {
	t.Helper()
	clock := &fixedClock{now: time.Date(2030, 6, 1, 10, 0, 0, 0, time.UTC)}
	svc := NewGiftCardService(repository.NewMemoryGiftCardRepository(), config.Default(), &recordingPublisher{})
	svc.Now = clock.Now
	return svc, clock
}

func TestGiftCardIssue(t *testing.T) {
	ctx := context.Background()
	svc, clock := newGiftCardService(t)

	card, err := svc.Issue(ctx, 100)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if len(card.Code) != models.GiftCardCodeLength || card.Code != NormalizeCode(card.Code) {
		t.Errorf("unexpected code %q", card.Code)
	}
	if card.Amount != 100 || card.Balance != 100 || !card.Active() {
		t.Errorf("unexpected card: %+v", card)
	}
	if !card.ExpiresAt.Equal(clock.Now().Add(GiftCardValidity)) {
		t.Errorf("expected expiry one year out, got %v", card.ExpiresAt)
	}

	for _, amount := range []int64{9, 1001, -5} {
		if _, err := svc.Issue(ctx, amount); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("Issue(%d): expected ErrInvalidAmount, got %v", amount, err)
		}
	}
}

func TestGiftCardIssueRetriesOnCollision(t *testing.T) {
	ctx := context.Background()
	svc, _ := newGiftCardService(t)

	codes := []string{"AAAAAAAAAA", "AAAAAAAAAA", "BBBBBBBBBB"}
	svc.GenerateCode = func() (string, error) {
		code := codes[0]
		codes = codes[1:]
		return code, nil
	}

	first, err := svc.Issue(ctx, 50)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	second, err := svc.Issue(ctx, 50)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if first.Code != "AAAAAAAAAA" || second.Code != "BBBBBBBBBB" {
		t.Errorf("expected retry past the collision, got %s and %s", first.Code, second.Code)
	}

	svc.GenerateCode = func() (string, error) { return "AAAAAAAAAA", nil }
	if _, err := svc.Issue(ctx, 50); !errors.Is(err, ErrCodeGeneration) {
		t.Errorf("expected ErrCodeGeneration, got %v", err)
	}
}

func TestGiftCardRedeemScenario(t *testing.T) {
	ctx := context.Background()
	svc, _ := newGiftCardService(t)

	card, err := svc.Issue(ctx, 100)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	after, err := svc.Redeem(ctx, card.Code, 40)
	if err != nil {
		t.Fatalf("Redeem 40 failed: %v", err)
	}
	if after.Balance != 60 || !after.Active() {
		t.Errorf("expected balance 60 and active, got %+v", after)
	}

	// 小写兑换码同样有效
	after, err = svc.Redeem(ctx, strings.ToLower(card.Code), 60)
	if err != nil {
		t.Fatalf("Redeem 60 failed: %v", err)
	}
	if after.Balance != 0 || after.Active() {
		t.Errorf("expected balance 0 and inactive, got %+v", after)
	}

	if _, err := svc.Redeem(ctx, card.Code, 1); !errors.Is(err, ErrGiftCardInactive) {
		t.Errorf("expected ErrGiftCardInactive, got %v", err)
	}
	// 失效后即使 0 金额也无法兑换
	if _, err := svc.Redeem(ctx, card.Code, 0); !errors.Is(err, ErrGiftCardInactive) {
		t.Errorf("expected ErrGiftCardInactive for zero amount, got %v", err)
	}

	stored, err := svc.Lookup(ctx, card.Code)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if stored.Balance != 0 || stored.Active() {
		t.Errorf("expected final state balance 0 inactive, got %+v", stored)
	}
}

func TestGiftCardRedeemErrors(t *testing.T) {
	ctx := context.Background()
	svc, clock := newGiftCardService(t)

	card, err := svc.Issue(ctx, 20)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := svc.Redeem(ctx, "NOPE000000", 5); !errors.Is(err, ErrGiftCardNotFound) {
		t.Errorf("expected ErrGiftCardNotFound, got %v", err)
	}
	if _, err := svc.Lookup(ctx, "NOPE000000"); !errors.Is(err, ErrGiftCardNotFound) {
		t.Errorf("expected ErrGiftCardNotFound on lookup, got %v", err)
	}
	if _, err := svc.Redeem(ctx, card.Code, -1); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
	if _, err := svc.Redeem(ctx, card.Code, 21); !errors.Is(err, ErrInsufficientBalance) {
		t.Errorf("expected ErrInsufficientBalance, got %v", err)
	}

	unchanged, err := svc.Lookup(ctx, card.Code)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if unchanged.Balance != 20 {
		t.Errorf("failed redemptions must not change balance, got %d", unchanged.Balance)
	}

	clock.Advance(GiftCardValidity + time.Second)
	if _, err := svc.Redeem(ctx, card.Code, 1); !errors.Is(err, ErrGiftCardExpired) {
		t.Errorf("expected ErrGiftCardExpired, got %v", err)
	}
}

func TestGiftCardRedeemCheckOrder(t *testing.T) {
	ctx := context.Background()
	svc, clock := newGiftCardService(t)

	drained, err := svc.Issue(ctx, 10)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := svc.Redeem(ctx, drained.Code, 10); err != nil {
		t.Fatalf("Redeem 10 failed: %v", err)
	}
	funded, err := svc.Issue(ctx, 10)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	clock.Advance(GiftCardValidity + time.Hour)

	tests := []struct {
		name   string
		code   string
		amount int64
		want   error
	}{
		// 失效检查先于过期检查
		{"drained and expired", drained.Code, 0, ErrGiftCardInactive},
		{"drained and expired, positive amount", drained.Code, 5, ErrGiftCardInactive},
		// 过期检查先于余额检查
		{"expired and insufficient", funded.Code, 50, ErrGiftCardExpired},
		{"unknown", "ZZZZZZZZZZ", 50, ErrGiftCardNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Redeem(ctx, tt.code, tt.amount); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestGiftCardRedeemIsMonotonicUnderConcurrency(t *testing.T) {
	ctx := context.Background()
	svc, _ := newGiftCardService(t)

	card, err := svc.Issue(ctx, 1000)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var balances []int64
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			after, err := svc.Redeem(ctx, card.Code, 30)
			if err != nil {
				if !errors.Is(err, ErrInsufficientBalance) {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			mu.Lock()
			balances = append(balances, after.Balance)
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(balances) != 33 {
		t.Errorf("expected 33 successful redemptions, got %d", len(balances))
	}
	final, err := svc.Lookup(ctx, card.Code)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if final.Balance != 10 || !final.Active() {
		t.Errorf("expected balance 10 and active, got %+v", final)
	}
	seen := make(map[int64]bool)
	for _, b := range balances {
		if seen[b] {
			t.Errorf("balance %d observed twice", b)
		}
		seen[b] = true
	}
}
