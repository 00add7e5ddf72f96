package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/aid4sure/VeganEcosystem/internal/domain/models"

	"gorm.io/gorm"
)

// RestaurantRepository stores the restaurant catalog
type RestaurantRepository interface {
	List(ctx context.Context) ([]models.Restaurant, error)
	GetByID(ctx context.Context, id uint) (*models.Restaurant, error)
	Search(ctx context.Context, query string) ([]models.Restaurant, error)
	Create(ctx context.Context, restaurant *models.Restaurant) error
	Update(ctx context.Context, id uint, restaurant *models.Restaurant) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

// MemoryRestaurantRepository 基于 map 的餐厅仓储
type MemoryRestaurantRepository struct {
	mu     sync.RWMutex
	items  map[uint]models.Restaurant
	nextID uint
}

// NewMemoryRestaurantRepository 创建内存餐厅仓储
func NewMemoryRestaurantRepository() *MemoryRestaurantRepository {
	return &MemoryRestaurantRepository{
		items:  make(map[uint]models.Restaurant),
		nextID: 1,
	}
}

// sorted 按 ID（即插入顺序）返回满足条件的餐厅，调用方需持有读锁
func (r *MemoryRestaurantRepository) sorted(match func(models.Restaurant) bool) []models.Restaurant {
	result := make([]models.Restaurant, 0, len(r.items))
	for _, item := range r.items {
		if match(item) {
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (r *MemoryRestaurantRepository) List(ctx context.Context) ([]models.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(func(models.Restaurant) bool { return true }), nil
}

func (r *MemoryRestaurantRepository) GetByID(ctx context.Context, id uint) (*models.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (r *MemoryRestaurantRepository) Search(ctx context.Context, query string) ([]models.Restaurant, error) {
	q := strings.ToLower(query)
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(func(item models.Restaurant) bool {
		return strings.Contains(strings.ToLower(item.Name), q) ||
			strings.Contains(strings.ToLower(item.Description), q)
	}), nil
}

func (r *MemoryRestaurantRepository) Create(ctx context.Context, restaurant *models.Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	restaurant.ID = r.nextID
	r.nextID++
	r.items[restaurant.ID] = *restaurant
	return nil
}

func (r *MemoryRestaurantRepository) Update(ctx context.Context, id uint, restaurant *models.Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	restaurant.ID = id
	r.items[id] = *restaurant
	return nil
}

func (r *MemoryRestaurantRepository) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *MemoryRestaurantRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.items)), nil
}

// GormRestaurantRepository 基于 gorm 的餐厅仓储
type GormRestaurantRepository struct {
	DB *gorm.DB
}

// NewGormRestaurantRepository 创建 gorm 餐厅仓储
func NewGormRestaurantRepository(db *gorm.DB) *GormRestaurantRepository {
	return &GormRestaurantRepository{DB: db}
}

func (r *GormRestaurantRepository) List(ctx context.Context) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	if err := r.DB.WithContext(ctx).Order("id").Find(&restaurants).Error; err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (r *GormRestaurantRepository) GetByID(ctx context.Context, id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.DB.WithContext(ctx).First(&restaurant, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &restaurant, nil
}

func (r *GormRestaurantRepository) Search(ctx context.Context, query string) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	pattern := likePattern(query)
	err := r.DB.WithContext(ctx).
		Where("LOWER(name) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!'", pattern, pattern).
		Order("id").
		Find(&restaurants).Error
	if err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (r *GormRestaurantRepository) Create(ctx context.Context, restaurant *models.Restaurant) error {
	restaurant.ID = 0
	return translateError(r.DB.WithContext(ctx).Create(restaurant).Error)
}

func (r *GormRestaurantRepository) Update(ctx context.Context, id uint, restaurant *models.Restaurant) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Restaurant
		if err := lockForUpdate(tx).First(&existing, id).Error; err != nil {
			return translateError(err)
		}
		restaurant.ID = id
		// Save 写入全部字段（包括零值），即整体替换
		return tx.Save(restaurant).Error
	})
}

func (r *GormRestaurantRepository) Delete(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Delete(&models.Restaurant{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRestaurantRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Restaurant{}).Count(&count).Error
	return count, err
}
