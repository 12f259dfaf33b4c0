package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"retail_orders_v1_202608/internal/model"
	"retail_orders_v1_202608/internal/repository"
)

// ==================== 测试辅助 ====================

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	err = db.AutoMigrate(
		&model.SysUser{}, &model.Contact{},
		&model.Shop{}, &model.Category{},
		&model.Product{}, &model.ProductInfo{},
		&model.Parameter{}, &model.ProductParameter{},
		&model.Order{}, &model.OrderItem{},
	)
	if err != nil {
		t.Fatalf("迁移测试数据库失败: %v", err)
	}
	return db
}

// createTestUser 直接写库创建用户，密码为明文 bcrypt 后存储
func createTestUser(t *testing.T, db *gorm.DB, username, userType string) *model.SysUser {
	t.Helper()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	user := &model.SysUser{
		Username: username,
		Password: string(hashed),
		Email:    username + "@example.com",
		UserType: userType,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("创建测试用户失败: %v", err)
	}
	return user
}

// ==================== 假邮件调度器 ====================

// fakeDispatcher 记录提交的邮件，断言通知行为用
type fakeDispatcher struct {
	mu   sync.Mutex
	sent []fakeMail
}

type fakeMail struct {
	To      string
	Subject string
	Body    string
}

func (d *fakeDispatcher) Submit(to, subject, body string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, fakeMail{To: to, Subject: subject, Body: body})
}

func (d *fakeDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.sent)
}

func (d *fakeDispatcher) last() fakeMail {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.sent) == 0 {
		return fakeMail{}
	}
	return d.sent[len(d.sent)-1]
}

// ==================== 假价格表拉取器 ====================

// fakeFetcher 按 URL 返回预置的文档内容
type fakeFetcher struct {
	docs map[string][]byte
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	doc, ok := f.docs[url]
	if !ok {
		return nil, fmt.Errorf("获取 %s 失败: 连接被拒绝", url)
	}
	return doc, nil
}

// ==================== 服务构造 ====================

func newTestImportService(db *gorm.DB, fetcher *fakeFetcher) *ImportService {
	return NewImportService(
		repository.NewUserRepository(db),
		repository.NewShopRepository(db),
		repository.NewCatalogUnitOfWork(db),
		fetcher,
		zap.NewNop(),
	)
}

func newTestOrderService(db *gorm.DB, dispatcher *fakeDispatcher) *OrderService {
	return NewOrderService(
		repository.NewOrderUnitOfWork(db),
		repository.NewOrderRepository(db),
		repository.NewProductInfoRepository(db),
		repository.NewUserRepository(db),
		dispatcher,
		zap.NewNop(),
	)
}

func newTestUserService(db *gorm.DB, dispatcher *fakeDispatcher) *UserService {
	return NewUserService(
		repository.NewUserRepository(db),
		repository.NewContactRepository(db),
		dispatcher,
		zap.NewNop(),
	)
}
