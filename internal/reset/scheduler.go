package reset

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Scheduler 日结定时器：一次性 timer 指向下一个本地午夜，触发后执行
// 编排器并无条件重臂。运行失败只记日志，不影响下一个边界；进程宕机
// 期间错过的边界不补跑。
type Scheduler struct {
	orchestrator *Orchestrator
	logger       *zap.Logger
	loc          *time.Location

	now func() time.Time
}

func NewScheduler(orchestrator *Orchestrator, loc *time.Location, logger *zap.Logger) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		orchestrator: orchestrator,
		logger:       logger,
		loc:          loc,
		now:          time.Now,
	}
}

// NextBoundary 计算 now 之后的下一个本地午夜
func NextBoundary(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
}

// Start 启动调度循环（阻塞，ctx 取消后返回）。timer 为一次性：
// 只有当前一轮运行结束（无论成败）后才会臂下一轮。
func (s *Scheduler) Start(ctx context.Context) {
	for {
		boundary := NextBoundary(s.now(), s.loc)
		delay := boundary.Sub(s.now())
		s.logger.Info("Armed daily reset timer",
			zap.Time("boundary", boundary),
			zap.Duration("delay", delay))

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("Daily reset scheduler stopped")
			return
		case <-timer.C:
			if _, err := s.orchestrator.Run(ctx, TriggerScheduled); err != nil {
				// 定时失败只记日志；当日不自动重试，可手工触发
				s.logger.Error("Scheduled daily reset failed", zap.Error(err))
			}
		}
	}
}
