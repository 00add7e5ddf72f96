package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aid4sure/VeganEcosystem/internal/domain/models"
	"github.com/aid4sure/VeganEcosystem/internal/domain/repository"
	"github.com/aid4sure/VeganEcosystem/internal/infrastructure/config"
)

// 可预订时段范围（含首尾）
const (
	SlotOpeningMinute = 11 * 60
	SlotClosingMinute = 22 * 60
)

// InterfaceReservationService 预订服务接口
type InterfaceReservationService interface {
	TimeSlots(interval int) []string
	Create(ctx context.Context, reservation *models.Reservation) (*models.Reservation, error)
	ListFor(ctx context.Context, restaurantID uint, day time.Time) ([]models.Reservation, error)
	Cancel(ctx context.Context, id uint) (*models.Reservation, error)
	CompleteElapsed(ctx context.Context) ([]models.Reservation, error)
}

// ReservationService 管理预订的生命周期
type ReservationService struct {
	Repo      repository.ReservationRepository
	Config    *config.Config
	Publisher InterfaceEventPublisher
	Now       func() time.Time
}

// NewReservationService 创建预订服务
func NewReservationService(repo repository.ReservationRepository, cfg *config.Config, publisher InterfaceEventPublisher) *ReservationService {
	return &ReservationService{
		Repo:      repo,
		Config:    cfg,
		Publisher: publisher,
		Now:       time.Now,
	}
}

// location 日历日计算使用的时区
func (s *ReservationService) location() *time.Location {
	if s.Config != nil && s.Config.Location != nil {
		return s.Config.Location
	}
	return time.UTC
}

// 1 TimeSlots 生成 11:00 至 22:00 按间隔排列的时段，不检查是否已被预订
func (s *ReservationService) TimeSlots(interval int) []string {
	if interval <= 0 {
		interval = models.DefaultTimeSlotInterval
	}
	slots := make([]string, 0, (SlotClosingMinute-SlotOpeningMinute)/interval+1)
	for minute := SlotOpeningMinute; minute <= SlotClosingMinute; minute += interval {
		slots = append(slots, fmt.Sprintf("%02d:%02d", minute/60, minute%60))
	}
	return slots
}

// 2 Create 创建预订，状态为 confirmed；日期和人数已在接口层校验
func (s *ReservationService) Create(ctx context.Context, reservation *models.Reservation) (*models.Reservation, error) {
	reservation.Date = reservation.Date.UTC()
	reservation.Status = models.ReservationStatusConfirmed
	reservation.CreatedAt = s.Now().UTC()
	if err := s.Repo.Create(ctx, reservation); err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	publishEvent(ctx, s.Publisher, TopicReservationCreated, reservation)
	return reservation, nil
}

// 3 ListFor 返回餐厅在 day 所在日历日（配置时区）的全部预订
func (s *ReservationService) ListFor(ctx context.Context, restaurantID uint, day time.Time) ([]models.Reservation, error) {
	start, end := DayBounds(day, s.location())
	return s.Repo.ListByRestaurantBetween(ctx, restaurantID, start, end)
}

// 4 Cancel 取消预订，重复取消视为成功，已完成的预订不能取消
func (s *ReservationService) Cancel(ctx context.Context, id uint) (*models.Reservation, error) {
	transitioned := false
	reservation, err := s.Repo.Mutate(ctx, id, func(r *models.Reservation) error {
		switch r.Status {
		case models.ReservationStatusCompleted:
			return ErrReservationCompleted
		case models.ReservationStatusCancelled:
			return nil
		}
		r.Status = models.ReservationStatusCancelled
		transitioned = true
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err, ErrReservationNotFound)
	}

	if transitioned {
		publishEvent(ctx, s.Publisher, TopicReservationCancelled, reservation)
	}
	return reservation, nil
}

// 5 CompleteElapsed 将日期已过的 confirmed 预订标记为 completed
func (s *ReservationService) CompleteElapsed(ctx context.Context) ([]models.Reservation, error) {
	completed, err := s.Repo.CompleteBefore(ctx, s.Now())
	if err != nil {
		return nil, fmt.Errorf("complete elapsed reservations: %w", err)
	}
	for i := range completed {
		publishEvent(ctx, s.Publisher, TopicReservationCompleted, completed[i])
	}
	return completed, nil
}

// DayBounds 返回 t 在 loc 时区下所在日历日的 [start, end)
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	y, m, d := t.In(loc).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
