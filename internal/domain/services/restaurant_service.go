package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aid4sure/VeganEcosystem/internal/domain/models"
	"github.com/aid4sure/VeganEcosystem/internal/domain/repository"
	"github.com/aid4sure/VeganEcosystem/internal/infrastructure/config"
)

// InterfaceRestaurantService 餐厅目录服务接口
type InterfaceRestaurantService interface {
	List(ctx context.Context) ([]models.Restaurant, error)
	Get(ctx context.Context, id uint) (*models.Restaurant, error)
	Search(ctx context.Context, query string) ([]models.Restaurant, error)
	Create(ctx context.Context, restaurant *models.Restaurant) (*models.Restaurant, error)
	Update(ctx context.Context, id uint, restaurant *models.Restaurant) (*models.Restaurant, error)
	Delete(ctx context.Context, id uint) error
	SeedSamples(ctx context.Context) (int, error)
}

// RestaurantService 提供餐厅目录相关的服务
type RestaurantService struct {
	Repo   repository.RestaurantRepository
	Config *config.Config
}

// NewRestaurantService 创建餐厅目录服务
func NewRestaurantService(repo repository.RestaurantRepository, cfg *config.Config) *RestaurantService {
	return &RestaurantService{
		Repo:   repo,
		Config: cfg,
	}
}

// 1 List 按插入顺序返回全部餐厅
func (s *RestaurantService) List(ctx context.Context) ([]models.Restaurant, error) {
	return s.Repo.List(ctx)
}

// 2 Get 根据ID获取餐厅
func (s *RestaurantService) Get(ctx context.Context, id uint) (*models.Restaurant, error) {
	restaurant, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrRestaurantNotFound)
	}
	return restaurant, nil
}

// 3 Search 按名称或描述做大小写不敏感的包含匹配，空查询等同于 List
func (s *RestaurantService) Search(ctx context.Context, query string) ([]models.Restaurant, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.Repo.List(ctx)
	}
	return s.Repo.Search(ctx, query)
}

// 4 Create 校验并创建餐厅
func (s *RestaurantService) Create(ctx context.Context, restaurant *models.Restaurant) (*models.Restaurant, error) {
	if err := validateRestaurant(restaurant); err != nil {
		return nil, err
	}
	restaurant.ApplyDefaults()
	if err := s.Repo.Create(ctx, restaurant); err != nil {
		return nil, fmt.Errorf("create restaurant: %w", err)
	}
	return restaurant, nil
}

// 5 Update 整体替换餐厅信息，ID 保持不变
func (s *RestaurantService) Update(ctx context.Context, id uint, restaurant *models.Restaurant) (*models.Restaurant, error) {
	if err := validateRestaurant(restaurant); err != nil {
		return nil, err
	}
	restaurant.ApplyDefaults()
	if err := s.Repo.Update(ctx, id, restaurant); err != nil {
		return nil, mapNotFound(err, ErrRestaurantNotFound)
	}
	return restaurant, nil
}

// 6 Delete 删除餐厅，不级联删除评价和预订
func (s *RestaurantService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return mapNotFound(err, ErrRestaurantNotFound)
	}
	return nil
}

// 7 SeedSamples 目录为空时写入示例餐厅，返回写入数量
func (s *RestaurantService) SeedSamples(ctx context.Context) (int, error) {
	count, err := s.Repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	samples := SampleRestaurants()
	for i := range samples {
		if _, err := s.Create(ctx, &samples[i]); err != nil {
			return i, err
		}
	}
	return len(samples), nil
}

// validateRestaurant 校验必填文本字段和坐标范围
func validateRestaurant(r *models.Restaurant) error {
	if r == nil {
		return fmt.Errorf("%w: missing body", ErrInvalidRestaurant)
	}
	required := []struct {
		field string
		value string
	}{
		{"name", r.Name},
		{"description", r.Description},
		{"address", r.Address},
		{"hours", r.Hours},
		{"imageUrl", r.ImageURL},
		{"sustainabilityInfo", r.SustainabilityInfo},
		{"menu", r.Menu},
		{"type", r.Type},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidRestaurant, f.field)
		}
	}
	if r.Latitude < -90 || r.Latitude > 90 {
		return fmt.Errorf("%w: latitude out of range", ErrInvalidRestaurant)
	}
	if r.Longitude < -180 || r.Longitude > 180 {
		return fmt.Errorf("%w: longitude out of range", ErrInvalidRestaurant)
	}
	if r.MaxPartySize < 0 || r.TimeSlotInterval < 0 {
		return fmt.Errorf("%w: negative reservation settings", ErrInvalidRestaurant)
	}
	return nil
}

// mapNotFound 将仓储层的 ErrNotFound 转为领域错误
func mapNotFound(err, domainErr error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return domainErr
	}
	return err
}

// SampleRestaurants 示例数据
func SampleRestaurants() []models.Restaurant {
	return []models.Restaurant{
		{
			Name:               "Green Earth Kitchen",
			Description:        "Farm-to-table vegan restaurant featuring seasonal ingredients from local organic farms.",
			Address:            "123 Eco Street, Portland, OR 97201",
			Hours:              "Mon-Sat: 11am-10pm, Sun: 10am-9pm",
			ImageURL:           "https://images.unsplash.com/photo-1512621776951-a57141f2eefd",
			Latitude:           45.5155,
			Longitude:          -122.6789,
			SustainabilityInfo: "Zero-waste kitchen, composting program, and 100% renewable energy.",
			Menu:               "Seasonal bowls, cashew cheese plates, jackfruit tacos and raw desserts.",
			Type:               "Restaurant",
			MaxPartySize:       models.DefaultMaxPartySize,
			TimeSlotInterval:   models.DefaultTimeSlotInterval,
		},
		{
			Name:               "Plant Power Cart",
			Description:        "Mobile food cart serving quick and delicious plant-based street food.",
			Address:            "456 Green Ave, Portland, OR 97205",
			Hours:              "Mon-Fri: 11am-3pm",
			ImageURL:           "https://images.unsplash.com/photo-1565299624946-b28f40a0ae38",
			Latitude:           45.5231,
			Longitude:          -122.6765,
			SustainabilityInfo: "Compostable packaging and locally sourced ingredients.",
			Menu:               "Tempeh wraps, loaded fries, smoothies and seitan burgers.",
			Type:               "Food Cart",
			MaxPartySize:       4,
			TimeSlotInterval:   15,
		},
	}
}
