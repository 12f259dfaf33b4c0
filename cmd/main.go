package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"retail_orders_v1_202608/internal/controller"
	"retail_orders_v1_202608/internal/middleware"
	"retail_orders_v1_202608/internal/model"
	"retail_orders_v1_202608/internal/repository"
	"retail_orders_v1_202608/internal/router"
	"retail_orders_v1_202608/internal/service"
	"retail_orders_v1_202608/internal/task"
	"retail_orders_v1_202608/pkg/config"
	"retail_orders_v1_202608/pkg/database"
	"retail_orders_v1_202608/pkg/logger"
	"retail_orders_v1_202608/pkg/mailer"
	"retail_orders_v1_202608/pkg/pricelist"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load(os.Getenv("RETAIL_CONFIG_PATH"))
	if err != nil {
		panic(err)
	}

	// 2. 初始化日志
	log, err := logger.Init(cfg.Log.Level, cfg.Log.Environment)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// 3. JWT 配置
	middleware.SetJWTConfig(&middleware.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenTTL:  cfg.JWT.AccessTokenTTL,
		RefreshTokenTTL: cfg.JWT.RefreshTokenTTL,
		Issuer:          cfg.JWT.Issuer,
	})

	// 4. 初始化数据库
	db := initDatabase(cfg)

	// 5. 初始化依赖
	deps := initDependencies(db, cfg, log)

	// 6. 启动后台任务
	tm := initTasks(deps, cfg, log)

	// 7. 初始化路由
	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()
	router.InitRoutes(r,
		deps.Controllers.Auth,
		deps.Controllers.Partner,
		deps.Controllers.Catalog,
		deps.Controllers.Shop,
		deps.Controllers.Order,
		deps.Controllers.User,
		deps.Controllers.Contact)

	// 8. 启动服务，退出时回收任务与邮件队列
	startServer(r, cfg, log, func() {
		tm.Stop()
		deps.Mailer.Stop()
	})
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *Controllers
	Mailer      interface{ Stop() }
}

// Repositories 仓库集合
type Repositories struct {
	User        repository.UserRepository
	Contact     repository.ContactRepository
	Shop        repository.ShopRepository
	Category    repository.CategoryRepository
	Product     repository.ProductRepository
	ProductInfo repository.ProductInfoRepository
	Order       repository.OrderRepository
	CatalogUow  *repository.CatalogUnitOfWork
	OrderUow    *repository.OrderUnitOfWork
}

// Services 服务集合
type Services struct {
	User    *service.UserService
	Import  *service.ImportService
	Catalog *service.CatalogService
	Shop    *service.ShopService
	Order   *service.OrderService
}

// Controllers 控制器集合
type Controllers struct {
	Auth    *controller.AuthController
	Partner *controller.PartnerController
	Catalog *controller.CatalogController
	Shop    *controller.ShopController
	Order   *controller.OrderController
	User    *controller.UserController
	Contact *controller.ContactController
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase(cfg *config.Config) *gorm.DB {
	return database.InitDB(cfg.Database.DSN,
		// 用户
		&model.SysUser{}, &model.Contact{},
		// 店铺与品类
		&model.Shop{}, &model.Category{},
		// 商品
		&model.Product{}, &model.ProductInfo{},
		&model.Parameter{}, &model.ProductParameter{},
		// 订单
		&model.Order{}, &model.OrderItem{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB, cfg *config.Config, log *zap.Logger) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		User:        repository.NewUserRepository(db),
		Contact:     repository.NewContactRepository(db),
		Shop:        repository.NewShopRepository(db),
		Category:    repository.NewCategoryRepository(db),
		Product:     repository.NewProductRepository(db),
		ProductInfo: repository.NewProductInfoRepository(db),
		Order:       repository.NewOrderRepository(db),
		CatalogUow:  repository.NewCatalogUnitOfWork(db),
		OrderUow:    repository.NewOrderUnitOfWork(db),
	}

	// -------- 邮件调度 --------
	var sender mailer.Sender
	if cfg.Mail.Host != "" {
		sender = &mailer.SMTPSender{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			From:     cfg.Mail.From,
		}
	} else {
		log.Warn("未配置 SMTP，邮件通知仅写日志")
		sender = &mailer.LogSender{Logger: log}
	}
	dispatcher := mailer.NewDispatcher(sender, cfg.Mail.QueueSize, log)

	// -------- 价格表拉取 --------
	fetcher := pricelist.NewFetcher(cfg.Feed.Timeout, cfg.Feed.RetryCount)

	// -------- 业务服务 --------
	services := &Services{
		User:    service.NewUserService(repos.User, repos.Contact, dispatcher, log),
		Import:  service.NewImportService(repos.User, repos.Shop, repos.CatalogUow, fetcher, log),
		Catalog: service.NewCatalogService(repos.ProductInfo, repos.Category, repos.Product),
		Shop:    service.NewShopService(repos.Shop, repos.Category),
		Order:   service.NewOrderService(repos.OrderUow, repos.Order, repos.ProductInfo, repos.User, dispatcher, log),
	}

	// -------- Controller 层 --------
	controllers := &Controllers{
		Auth:    controller.NewAuthController(services.User),
		Partner: controller.NewPartnerController(services.Import),
		Catalog: controller.NewCatalogController(services.Catalog),
		Shop:    controller.NewShopController(services.Shop),
		Order:   controller.NewOrderController(services.Order),
		User:    controller.NewUserController(services.User),
		Contact: controller.NewContactController(services.User),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
		Mailer:      dispatcher,
	}
}

// ==================== 后台任务 ====================

// initTasks 初始化后台任务
func initTasks(deps *Dependencies, cfg *config.Config, log *zap.Logger) *task.TaskManager {
	tm := task.NewTaskManager(
		&task.TaskManagerDeps{
			ShopRepo:      deps.Repos.Shop,
			ImportService: deps.Services.Import,
		},
		&task.TaskManagerConfig{
			FeedEnabled: cfg.Feed.RefreshEnabled,
			FeedSpec:    cfg.Feed.RefreshSpec,
		},
		log,
	)
	if err := tm.Start(); err != nil {
		log.Fatal("后台任务启动失败", zap.Error(err))
	}
	return tm
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine, cfg *config.Config, log *zap.Logger, onShutdown func()) {
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Info("服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("服务启动失败", zap.Error(err))
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("服务强制关闭", zap.Error(err))
	}

	onShutdown()
	log.Info("服务已退出")
}
