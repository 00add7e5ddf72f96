package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aid4sure/VeganEcosystem/internal/domain/models"
	"github.com/aid4sure/VeganEcosystem/internal/domain/repository"
	"github.com/aid4sure/VeganEcosystem/internal/domain/services"
	"github.com/aid4sure/VeganEcosystem/internal/infrastructure/config"
)

// countingService 记录 CompleteElapsed 调用次数
type countingService struct {
	services.InterfaceReservationService
	mu    sync.Mutex
	calls int
	err   error
}

func (s *countingService) CompleteElapsed(ctx context.Context) ([]models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return nil, s.err
}

func (s *countingService) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestWorkerCompletesElapsedReservations(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryReservationRepository()
	service := services.NewReservationService(repo, config.Default(), nil)

	now := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
	service.Now = func() time.Time { return now }

	past, err := service.Create(ctx, &models.Reservation{RestaurantID: 1, Date: now.Add(-time.Hour), PartySize: 2})
	if err != nil {
		t.Fatal(err)
	}
	future, err := service.Create(ctx, &models.Reservation{RestaurantID: 1, Date: now.Add(time.Hour), PartySize: 2})
	if err != nil {
		t.Fatal(err)
	}

	w := NewReservationWorker(service, time.Hour)
	if n := w.sweep(ctx); n != 1 {
		t.Fatalf("first sweep completed %d, want 1", n)
	}
	if n := w.sweep(ctx); n != 0 {
		t.Fatalf("second sweep completed %d, want 0", n)
	}

	got, _ := repo.GetByID(ctx, past.ID)
	if got.Status != models.ReservationStatusCompleted {
		t.Errorf("past reservation status = %s", got.Status)
	}
	got, _ = repo.GetByID(ctx, future.ID)
	if got.Status != models.ReservationStatusConfirmed {
		t.Errorf("future reservation status = %s", got.Status)
	}
}

func TestWorkerRunStopsOnCancel(t *testing.T) {
	service := &countingService{err: errors.New("database unavailable")}
	w := NewReservationWorker(service, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	deadline := time.After(time.Second)
	for service.count() < 3 {
		select {
		case <-deadline:
			t.Fatalf("worker ran %d times", service.count())
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNewReservationWorkerDefaultInterval(t *testing.T) {
	if w := NewReservationWorker(&countingService{}, 0); w.Interval != 5*time.Minute {
		t.Fatalf("interval = %s", w.Interval)
	}
}
