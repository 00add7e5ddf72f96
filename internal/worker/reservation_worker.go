package worker

import (
	"context"
	"time"

	"github.com/aid4sure/VeganEcosystem/internal/domain/services"
	Logger "github.com/aid4sure/VeganEcosystem/pkg/logger"
)

// ReservationWorker 定期将已过时间的 confirmed 预订标记为 completed
type ReservationWorker struct {
	Service  services.InterfaceReservationService
	Interval time.Duration
}

// NewReservationWorker 创建预订后台任务
func NewReservationWorker(service services.InterfaceReservationService, interval time.Duration) *ReservationWorker {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &ReservationWorker{
		Service:  service,
		Interval: interval,
	}
}

// Run 启动时先执行一次，之后按间隔执行，直到 ctx 取消
func (w *ReservationWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	w.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			Logger.Info("预订后台任务已停止")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

// sweep 执行一次状态推进，错误只记录不退出
func (w *ReservationWorker) sweep(ctx context.Context) int {
	completed, err := w.Service.CompleteElapsed(ctx)
	if err != nil {
		if ctx.Err() == nil {
			Logger.Error("完成过期预订失败: %v", err)
		}
		return 0
	}
	if len(completed) > 0 {
		Logger.Info("已完成 %d 个过期预订", len(completed))
	}
	return len(completed)
}
