package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/aid4sure/VeganEcosystem/internal/domain/models"

	"gorm.io/gorm"
)

// ReviewRepository is an append-only review ledger
type ReviewRepository interface {
	ListByRestaurant(ctx context.Context, restaurantID uint) ([]models.Review, error)
	Create(ctx context.Context, review *models.Review) error
}

// MemoryReviewRepository 基于 map 的评价仓储
type MemoryReviewRepository struct {
	mu     sync.RWMutex
	items  map[uint]models.Review
	nextID uint
}

// NewMemoryReviewRepository 创建内存评价仓储
func NewMemoryReviewRepository() *MemoryReviewRepository {
	return &MemoryReviewRepository{
		items:  make(map[uint]models.Review),
		nextID: 1,
	}
}

func (r *MemoryReviewRepository) ListByRestaurant(ctx context.Context, restaurantID uint) ([]models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reviews := make([]models.Review, 0)
	for _, item := range r.items {
		if item.RestaurantID == restaurantID {
			reviews = append(reviews, item)
		}
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].ID < reviews[j].ID })
	return reviews, nil
}

func (r *MemoryReviewRepository) Create(ctx context.Context, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	review.ID = r.nextID
	r.nextID++
	r.items[review.ID] = *review
	return nil
}

// GormReviewRepository 基于 gorm 的评价仓储
type GormReviewRepository struct {
	DB *gorm.DB
}

// NewGormReviewRepository 创建 gorm 评价仓储
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{DB: db}
}

func (r *GormReviewRepository) ListByRestaurant(ctx context.Context, restaurantID uint) ([]models.Review, error) {
	reviews := make([]models.Review, 0)
	err := r.DB.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("id").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *GormReviewRepository) Create(ctx context.Context, review *models.Review) error {
	review.ID = 0
	return translateError(r.DB.WithContext(ctx).Create(review).Error)
}
