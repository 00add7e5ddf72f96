package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/aid4sure/VeganEcosystem/internal/domain/models"

	"gorm.io/gorm"
)

// ReservationRepository stores reservations
type ReservationRepository interface {
	Create(ctx context.Context, reservation *models.Reservation) error
	GetByID(ctx context.Context, id uint) (*models.Reservation, error)
	// ListByRestaurantBetween returns reservations with from <= date < to, ordered by date
	ListByRestaurantBetween(ctx context.Context, restaurantID uint, from, to time.Time) ([]models.Reservation, error)
	// Mutate applies fn to the stored reservation atomically and persists the result
	Mutate(ctx context.Context, id uint, fn MutateFunc[models.Reservation]) (*models.Reservation, error)
	// CompleteBefore moves confirmed reservations dated before cutoff to completed
	CompleteBefore(ctx context.Context, cutoff time.Time) ([]models.Reservation, error)
}

// MemoryReservationRepository 基于 map 的预订仓储
type MemoryReservationRepository struct {
	mu     sync.RWMutex
	items  map[uint]models.Reservation
	nextID uint
}

// NewMemoryReservationRepository 创建内存预订仓储
func NewMemoryReservationRepository() *MemoryReservationRepository {
	return &MemoryReservationRepository{
		items:  make(map[uint]models.Reservation),
		nextID: 1,
	}
}

func (r *MemoryReservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	reservation.ID = r.nextID
	r.nextID++
	r.items[reservation.ID] = *reservation
	return nil
}

func (r *MemoryReservationRepository) GetByID(ctx context.Context, id uint) (*models.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (r *MemoryReservationRepository) ListByRestaurantBetween(ctx context.Context, restaurantID uint, from, to time.Time) ([]models.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reservations := make([]models.Reservation, 0)
	for _, item := range r.items {
		if item.RestaurantID != restaurantID {
			continue
		}
		if item.Date.Before(from) || !item.Date.Before(to) {
			continue
		}
		reservations = append(reservations, item)
	}
	sortReservations(reservations)
	return reservations, nil
}

func (r *MemoryReservationRepository) Mutate(ctx context.Context, id uint, fn MutateFunc[models.Reservation]) (*models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	if err := fn(&item); err != nil {
		return nil, err
	}
	item.ID = id
	r.items[id] = item
	return &item, nil
}

func (r *MemoryReservationRepository) CompleteBefore(ctx context.Context, cutoff time.Time) ([]models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	completed := make([]models.Reservation, 0)
	for id, item := range r.items {
		if item.Status != models.ReservationStatusConfirmed || !item.Date.Before(cutoff) {
			continue
		}
		item.Status = models.ReservationStatusCompleted
		r.items[id] = item
		completed = append(completed, item)
	}
	sortReservations(completed)
	return completed, nil
}

// sortReservations 按日期升序排序，同一时间按 ID 排序
func sortReservations(reservations []models.Reservation) {
	sort.Slice(reservations, func(i, j int) bool {
		if !reservations[i].Date.Equal(reservations[j].Date) {
			return reservations[i].Date.Before(reservations[j].Date)
		}
		return reservations[i].ID < reservations[j].ID
	})
}

// GormReservationRepository 基于 gorm 的预订仓储
type GormReservationRepository struct {
	DB *gorm.DB
}

// NewGormReservationRepository 创建 gorm 预订仓储
func NewGormReservationRepository(db *gorm.DB) *GormReservationRepository {
	return &GormReservationRepository{DB: db}
}

func (r *GormReservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	reservation.ID = 0
	// 统一以 UTC 存储，保证各方言下时间范围比较一致
	reservation.Date = reservation.Date.UTC()
	return translateError(r.DB.WithContext(ctx).Create(reservation).Error)
}

func (r *GormReservationRepository) GetByID(ctx context.Context, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := r.DB.WithContext(ctx).First(&reservation, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &reservation, nil
}

func (r *GormReservationRepository) ListByRestaurantBetween(ctx context.Context, restaurantID uint, from, to time.Time) ([]models.Reservation, error) {
	reservations := make([]models.Reservation, 0)
	err := r.DB.WithContext(ctx).
		Where("restaurant_id = ? AND date >= ? AND date < ?", restaurantID, from.UTC(), to.UTC()).
		Order("date").
		Order("id").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *GormReservationRepository) Mutate(ctx context.Context, id uint, fn MutateFunc[models.Reservation]) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&reservation, id).Error; err != nil {
			return translateError(err)
		}
		if err := fn(&reservation); err != nil {
			return err
		}
		reservation.ID = id
		return tx.Save(&reservation).Error
	})
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *GormReservationRepository) CompleteBefore(ctx context.Context, cutoff time.Time) ([]models.Reservation, error) {
	completed := make([]models.Reservation, 0)
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := lockForUpdate(tx).
			Where("status = ? AND date < ?", models.ReservationStatusConfirmed, cutoff.UTC()).
			Order("date").
			Order("id").
			Find(&completed).Error
		if err != nil || len(completed) == 0 {
			return err
		}

		ids := make([]uint, 0, len(completed))
		for i := range completed {
			ids = append(ids, completed[i].ID)
			completed[i].Status = models.ReservationStatusCompleted
		}
		return tx.Model(&models.Reservation{}).
			Where("id IN ?", ids).
			Update("status", models.ReservationStatusCompleted).Error
	})
	if err != nil {
		return nil, err
	}
	return completed, nil
}
