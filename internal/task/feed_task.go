package task

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"retail_orders_v1_202608/internal/repository"
	"retail_orders_v1_202608/internal/service"
)

// ==================== FeedRefreshTask 价格表定时刷新 ====================

// FeedRefreshTask 按计划对所有配置了价格表地址的店铺做重新导入
type FeedRefreshTask struct {
	shopRepo      repository.ShopRepository
	importService *service.ImportService
	cron          *cron.Cron
	spec          string
	logger        *zap.Logger

	// 控制并发拉取的数量，防止把出口带宽打满
	concurrencyLimit int
	sleepTime        time.Duration
}

// NewFeedRefreshTask 创建刷新任务
// spec 为 robfig/cron 带秒表达式，例如 "0 0 3 * * *"（每天凌晨 3 点）
func NewFeedRefreshTask(
	shopRepo repository.ShopRepository,
	importService *service.ImportService,
	spec string,
	logger *zap.Logger,
) *FeedRefreshTask {
	return &FeedRefreshTask{
		shopRepo:         shopRepo,
		importService:    importService,
		cron:             cron.New(cron.WithSeconds()), // 支持秒级控制
		spec:             spec,
		logger:           logger,
		concurrencyLimit: 5, // 价格表文件偏大，并发保守一些
		sleepTime:        200 * time.Millisecond,
	}
}

// Start 注册定时策略并启动
func (t *FeedRefreshTask) Start() error {
	_, err := t.cron.AddFunc(t.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		t.refreshJob(ctx)
	})
	if err != nil {
		return err
	}

	t.cron.Start()
	t.logger.Info("价格表刷新任务已启动", zap.String("spec", t.spec))
	return nil
}

// Stop 停止任务，等待正在执行的一轮结束
func (t *FeedRefreshTask) Stop() {
	stopCtx := t.cron.Stop()
	<-stopCtx.Done()
	t.logger.Info("价格表刷新任务已停止")
}

// RefreshNow 手动触发一轮刷新（调试/运维用）
func (t *FeedRefreshTask) RefreshNow(ctx context.Context) {
	t.refreshJob(ctx)
}

// refreshJob 对每个店铺独立刷新，单店失败只记日志不影响其他店铺
func (t *FeedRefreshTask) refreshJob(ctx context.Context) {
	shops, err := t.shopRepo.ListActiveWithFeed(ctx)
	if err != nil {
		t.logger.Error("查询待刷新店铺失败", zap.Error(err))
		return
	}
	if len(shops) == 0 {
		return
	}

	t.logger.Info("开始刷新店铺价格表",
		zap.Int("shops", len(shops)),
		zap.Int("concurrency", t.concurrencyLimit))

	sem := make(chan struct{}, t.concurrencyLimit)
	var wg sync.WaitGroup

	for _, shop := range shops {
		select {
		case <-ctx.Done():
			t.logger.Warn("刷新任务超时停止")
			return
		default:
		}

		sem <- struct{}{}
		wg.Add(1)

		// 平滑波峰
		time.Sleep(t.sleepTime)

		go func(shopID int64, shopName string) {
			defer wg.Done()
			defer func() { <-sem }()

			result, err := t.importService.RefreshShop(ctx, shopID)
			if err != nil {
				t.logger.Warn("店铺价格表刷新失败",
					zap.Int64("shop_id", shopID),
					zap.String("shop", shopName),
					zap.Error(err))
				return
			}
			t.logger.Info("店铺价格表刷新完成",
				zap.Int64("shop_id", shopID),
				zap.Int("categories", result.Categories),
				zap.Int("goods", result.Goods))
		}(shop.ID, shop.Name)
	}

	wg.Wait()
	t.logger.Info("本轮价格表刷新完成")
}
