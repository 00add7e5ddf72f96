package repository

import (
	"context"
	"sync"

	"github.com/aid4sure/VeganEcosystem/internal/domain/models"

	"gorm.io/gorm"
)

// AdminRepository stores administrator accounts
type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
	Create(ctx context.Context, admin *models.Admin) error
}

// MemoryAdminRepository 基于 map 的管理员仓储
type MemoryAdminRepository struct {
	mu     sync.RWMutex
	items  map[string]models.Admin
	nextID uint
}

// NewMemoryAdminRepository 创建内存管理员仓储
func NewMemoryAdminRepository() *MemoryAdminRepository {
	return &MemoryAdminRepository{
		items:  make(map[string]models.Admin),
		nextID: 1,
	}
}

func (r *MemoryAdminRepository) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[username]
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (r *MemoryAdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[admin.Username]; exists {
		return ErrDuplicate
	}
	admin.ID = r.nextID
	r.nextID++
	r.items[admin.Username] = *admin
	return nil
}

// GormAdminRepository 基于 gorm 的管理员仓储
type GormAdminRepository struct {
	DB *gorm.DB
}

// NewGormAdminRepository 创建 gorm 管理员仓储
func NewGormAdminRepository(db *gorm.DB) *GormAdminRepository {
	return &GormAdminRepository{DB: db}
}

func (r *GormAdminRepository) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&admin).Error; err != nil {
		return nil, translateError(err)
	}
	return &admin, nil
}

func (r *GormAdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	admin.ID = 0
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Admin{}).Where("username = ?", admin.Username).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrDuplicate
		}
		return translateError(tx.Create(admin).Error)
	})
}
