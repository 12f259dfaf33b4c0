package task

import (
	"context"

	"go.uber.org/zap"

	"retail_orders_v1_202608/internal/repository"
	"retail_orders_v1_202608/internal/service"
)

// ==================== TaskManager 后台任务管理器 ====================

// TaskManager 统一管理后台任务
// 管理范围：价格表定时刷新
// 不包含：邮件队列（由 mailer.Dispatcher 自行管理生命周期）
type TaskManager struct {
	feedTask *FeedRefreshTask
	logger   *zap.Logger
}

// TaskManagerDeps 任务管理器依赖
type TaskManagerDeps struct {
	ShopRepo      repository.ShopRepository
	ImportService *service.ImportService
}

// TaskManagerConfig 任务管理器配置
type TaskManagerConfig struct {
	FeedEnabled bool
	FeedSpec    string
}

// NewTaskManager 创建任务管理器
func NewTaskManager(deps *TaskManagerDeps, cfg *TaskManagerConfig, logger *zap.Logger) *TaskManager {
	tm := &TaskManager{logger: logger}

	if cfg.FeedEnabled && deps.ImportService != nil {
		tm.feedTask = NewFeedRefreshTask(deps.ShopRepo, deps.ImportService, cfg.FeedSpec, logger)
	}

	return tm
}

// ==================== 生命周期管理 ====================

// Start 启动所有任务
func (tm *TaskManager) Start() error {
	tm.logger.Info("正在启动后台任务...")

	if tm.feedTask != nil {
		if err := tm.feedTask.Start(); err != nil {
			return err
		}
	}

	tm.logger.Info("后台任务已全部启动")
	return nil
}

// Stop 停止所有任务
func (tm *TaskManager) Stop() {
	tm.logger.Info("正在停止后台任务...")

	if tm.feedTask != nil {
		tm.feedTask.Stop()
	}

	tm.logger.Info("后台任务已全部停止")
}

// ==================== 手动触发接口 ====================

// TriggerFeedRefresh 触发一轮价格表刷新
func (tm *TaskManager) TriggerFeedRefresh(ctx context.Context) error {
	if tm.feedTask == nil {
		return ErrTaskDisabled
	}
	tm.feedTask.RefreshNow(ctx)
	return nil
}

// ==================== 错误定义 ====================

type TaskError string

func (e TaskError) Error() string { return string(e) }

const (
	ErrTaskDisabled TaskError = "task is disabled"
)
