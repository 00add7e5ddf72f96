package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aid4sure/VeganEcosystem/internal/domain/models"
	"github.com/aid4sure/VeganEcosystem/internal/domain/repository"
	"github.com/aid4sure/VeganEcosystem/internal/infrastructure/config"
	"github.com/aid4sure/VeganEcosystem/pkg/utils"
)

// 礼品卡面额范围与生成参数
const (
	MinGiftCardAmount  = 10
	MaxGiftCardAmount  = 1000
	GiftCardValidity   = 365 * 24 * time.Hour
	MaxCodeGenAttempts = 5
)

// InterfaceGiftCardService 礼品卡服务接口
type InterfaceGiftCardService interface {
	Issue(ctx context.Context, amount int64) (*models.GiftCard, error)
	Lookup(ctx context.Context, code string) (*models.GiftCard, error)
	Redeem(ctx context.Context, code string, amount int64) (*models.GiftCard, error)
}

// GiftCardService 礼品卡余额状态机
type GiftCardService struct {
	Repo         repository.GiftCardRepository
	Config       *config.Config
	Publisher    InterfaceEventPublisher
	Now          func() time.Time
	GenerateCode func() (string, error)
}

// NewGiftCardService 创建礼品卡服务
func NewGiftCardService(repo repository.GiftCardRepository, cfg *config.Config, publisher InterfaceEventPublisher) *GiftCardService {
	return &GiftCardService{
		Repo:      repo,
		Config:    cfg,
		Publisher: publisher,
		Now:       time.Now,
		GenerateCode: func() (string, error) {
			return utils.RandomCode(models.GiftCardCodeLength)
		},
	}
}

// NormalizeCode 兑换码统一为大写
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// 1 Issue 发行礼品卡，兑换码冲突时重新生成
func (s *GiftCardService) Issue(ctx context.Context, amount int64) (*models.GiftCard, error) {
	if amount < MinGiftCardAmount || amount > MaxGiftCardAmount {
		return nil, fmt.Errorf("%w: amount must be between %d and %d", ErrInvalidAmount, MinGiftCardAmount, MaxGiftCardAmount)
	}

	now := s.Now().UTC()
	for attempt := 0; attempt < MaxCodeGenAttempts; attempt++ {
		code, err := s.GenerateCode()
		if err != nil {
			return nil, fmt.Errorf("generate code: %w", err)
		}

		card := &models.GiftCard{
			Code:      code,
			Amount:    amount,
			Balance:   amount,
			CreatedAt: now,
			ExpiresAt: now.Add(GiftCardValidity),
			IsActive:  models.GiftCardActive,
		}
		err = s.Repo.Create(ctx, card)
		if errors.Is(err, repository.ErrDuplicate) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("create gift card: %w", err)
		}

		publishEvent(ctx, s.Publisher, TopicGiftCardIssued, card)
		return card, nil
	}
	return nil, ErrCodeGeneration
}

// 2 Lookup 根据兑换码查询礼品卡
func (s *GiftCardService) Lookup(ctx context.Context, code string) (*models.GiftCard, error) {
	card, err := s.Repo.GetByCode(ctx, NormalizeCode(code))
	if err != nil {
		return nil, mapNotFound(err, ErrGiftCardNotFound)
	}
	return card, nil
}

// 3 Redeem 原子地扣减余额，余额归零时卡片失效
//
// 检查顺序：不存在 -> 已失效 -> 已过期 -> 余额不足。
func (s *GiftCardService) Redeem(ctx context.Context, code string, amount int64) (*models.GiftCard, error) {
	if amount < 0 {
		return nil, fmt.Errorf("%w: amount must not be negative", ErrInvalidAmount)
	}

	card, err := s.Repo.Mutate(ctx, NormalizeCode(code), func(g *models.GiftCard) error {
		if !g.Active() {
			return ErrGiftCardInactive
		}
		if g.Expired(s.Now()) {
			return ErrGiftCardExpired
		}
		if g.Balance < amount {
			return ErrInsufficientBalance
		}
		g.Balance -= amount
		if g.Balance == 0 {
			g.IsActive = models.GiftCardInactive
		}
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err, ErrGiftCardNotFound)
	}

	publishEvent(ctx, s.Publisher, TopicGiftCardRedeemed, map[string]interface{}{
		"code":     card.Code,
		"amount":   amount,
		"balance":  card.Balance,
		"isActive": card.IsActive,
	})
	return card, nil
}
