package repository

import (
	"context"
	"sync"

	"github.com/aid4sure/VeganEcosystem/internal/domain/models"

	"gorm.io/gorm"
)

// GiftCardRepository stores gift cards keyed by their unique code
type GiftCardRepository interface {
	// Create stores a new card, failing with ErrDuplicate if the code is taken
	Create(ctx context.Context, card *models.GiftCard) error
	GetByCode(ctx context.Context, code string) (*models.GiftCard, error)
	// Mutate applies fn to the stored card atomically and persists the result
	Mutate(ctx context.Context, code string, fn MutateFunc[models.GiftCard]) (*models.GiftCard, error)
}

// MemoryGiftCardRepository 基于 map 的礼品卡仓储，以兑换码为键
type MemoryGiftCardRepository struct {
	mu     sync.RWMutex
	items  map[string]models.GiftCard
	nextID uint
}

// NewMemoryGiftCardRepository 创建内存礼品卡仓储
func NewMemoryGiftCardRepository() *MemoryGiftCardRepository {
	return &MemoryGiftCardRepository{
		items:  make(map[string]models.GiftCard),
		nextID: 1,
	}
}

func (r *MemoryGiftCardRepository) Create(ctx context.Context, card *models.GiftCard) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[card.Code]; exists {
		return ErrDuplicate
	}
	card.ID = r.nextID
	r.nextID++
	r.items[card.Code] = *card
	return nil
}

func (r *MemoryGiftCardRepository) GetByCode(ctx context.Context, code string) (*models.GiftCard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[code]
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (r *MemoryGiftCardRepository) Mutate(ctx context.Context, code string, fn MutateFunc[models.GiftCard]) (*models.GiftCard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[code]
	if !ok {
		return nil, ErrNotFound
	}
	if err := fn(&item); err != nil {
		return nil, err
	}
	item.Code = code
	r.items[code] = item
	return &item, nil
}

// GormGiftCardRepository 基于 gorm 的礼品卡仓储
type GormGiftCardRepository struct {
	DB *gorm.DB
}

// NewGormGiftCardRepository 创建 gorm 礼品卡仓储
func NewGormGiftCardRepository(db *gorm.DB) *GormGiftCardRepository {
	return &GormGiftCardRepository{DB: db}
}

func (r *GormGiftCardRepository) Create(ctx context.Context, card *models.GiftCard) error {
	card.ID = 0
	card.CreatedAt = card.CreatedAt.UTC()
	card.ExpiresAt = card.ExpiresAt.UTC()
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.GiftCard{}).Where("code = ?", card.Code).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrDuplicate
		}
		// 唯一索引兜底并发插入
		return translateError(tx.Create(card).Error)
	})
}

func (r *GormGiftCardRepository) GetByCode(ctx context.Context, code string) (*models.GiftCard, error) {
	var card models.GiftCard
	if err := r.DB.WithContext(ctx).Where("code = ?", code).First(&card).Error; err != nil {
		return nil, translateError(err)
	}
	return &card, nil
}

func (r *GormGiftCardRepository) Mutate(ctx context.Context, code string, fn MutateFunc[models.GiftCard]) (*models.GiftCard, error) {
	var card models.GiftCard
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).Where("code = ?", code).First(&card).Error; err != nil {
			return translateError(err)
		}
		if err := fn(&card); err != nil {
			return err
		}
		card.Code = code
		// Save 写入全部字段，is_active 归零也会落库
		return tx.Save(&card).Error
	})
	if err != nil {
		return nil, err
	}
	return &card, nil
}
