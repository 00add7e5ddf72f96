package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aid4sure/VeganEcosystem/internal/domain/models"
	"github.com/aid4sure/VeganEcosystem/internal/domain/repository"
	"github.com/aid4sure/VeganEcosystem/internal/infrastructure/config"
)

// ReviewSort 评价排序方式
type ReviewSort string

const (
	ReviewSortNewest  ReviewSort = "newest"
	ReviewSortOldest  ReviewSort = "oldest"
	ReviewSortHighest ReviewSort = "highest"
	ReviewSortLowest  ReviewSort = "lowest"
)

// 评价约束
const (
	MinRating        = 1
	MaxRating        = 5
	MinCommentLength = 10
	MaxCommentLength = 500
)

// ParseReviewSort 解析排序参数，空字符串默认 newest
func ParseReviewSort(value string) (ReviewSort, error) {
	switch ReviewSort(strings.ToLower(strings.TrimSpace(value))) {
	case "", ReviewSortNewest:
		return ReviewSortNewest, nil
	case ReviewSortOldest:
		return ReviewSortOldest, nil
	case ReviewSortHighest:
		return ReviewSortHighest, nil
	case ReviewSortLowest:
		return ReviewSortLowest, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSort, value)
	}
}

// InterfaceReviewService 评价服务接口
type InterfaceReviewService interface {
	ListFor(ctx context.Context, restaurantID uint, order ReviewSort) ([]models.Review, error)
	Create(ctx context.Context, review *models.Review) (*models.Review, error)
	Summary(ctx context.Context, restaurantID uint) (*models.ReviewSummary, error)
}

// ReviewService 只追加的评价账本
type ReviewService struct {
	Repo   repository.ReviewRepository
	Config *config.Config
	Now    func() time.Time
}

// NewReviewService 创建评价服务
func NewReviewService(repo repository.ReviewRepository, cfg *config.Config) *ReviewService {
	return &ReviewService{
		Repo:   repo,
		Config: cfg,
		Now:    time.Now,
	}
}

// 1 ListFor 返回餐厅的评价并排序
func (s *ReviewService) ListFor(ctx context.Context, restaurantID uint, order ReviewSort) ([]models.Review, error) {
	reviews, err := s.Repo.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	sortReviews(reviews, order)
	return reviews, nil
}

// 2 Create 追加一条评价，ID 和创建时间由服务端生成
func (s *ReviewService) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	if review.Rating < MinRating || review.Rating > MaxRating {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidReview, MinRating, MaxRating)
	}
	length := utf8.RuneCountInString(review.Comment)
	if length < MinCommentLength || length > MaxCommentLength {
		return nil, fmt.Errorf("%w: comment must be %d-%d characters", ErrInvalidReview, MinCommentLength, MaxCommentLength)
	}

	review.CreatedAt = s.Now().UTC()
	if err := s.Repo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return review, nil
}

// 3 Summary 计算评价数量、平均分（保留一位小数）和星级分布
func (s *ReviewService) Summary(ctx context.Context, restaurantID uint) (*models.ReviewSummary, error) {
	reviews, err := s.Repo.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	summary := &models.ReviewSummary{
		RestaurantID: restaurantID,
		Count:        len(reviews),
		Distribution: make(map[int]int, MaxRating),
	}
	for star := MinRating; star <= MaxRating; star++ {
		summary.Distribution[star] = 0
	}

	total := 0
	for _, review := range reviews {
		total += review.Rating
		summary.Distribution[review.Rating]++
	}
	summary.AverageRating = AverageRating(total, len(reviews))
	return summary, nil
}

// AverageRating 平均分四舍五入到一位小数，无评价时为 0
func AverageRating(total, count int) float64 {
	if count == 0 {
		return 0
	}
	return math.Round(float64(total)/float64(count)*10) / 10
}

// sortReviews 稳定排序，同值按 ID 倒序（新的在前）
func sortReviews(reviews []models.Review, order ReviewSort) {
	newerFirst := func(a, b models.Review) bool {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	}

	var less func(a, b models.Review) bool
	switch order {
	case ReviewSortOldest:
		less = func(a, b models.Review) bool { return newerFirst(b, a) }
	case ReviewSortHighest:
		less = func(a, b models.Review) bool {
			if a.Rating != b.Rating {
				return a.Rating > b.Rating
			}
			return newerFirst(a, b)
		}
	case ReviewSortLowest:
		less = func(a, b models.Review) bool {
			if a.Rating != b.Rating {
				return a.Rating < b.Rating
			}
			return newerFirst(a, b)
		}
	default:
		less = newerFirst
	}
	sort.SliceStable(reviews, func(i, j int) bool { return less(reviews[i], reviews[j]) })
}
