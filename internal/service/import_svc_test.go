package service

import (
	"context"
	"errors"
	"testing"

	"retail_orders_v1_202608/internal/model"
)

// ==================== 测试文档 ====================

const feedDoc = `
shop: Связной
categories:
  - id: 224
    name: Смартфоны
  - id: 15
    name: Аксессуары
goods:
  - id: 4216292
    category: 224
    model: apple/iphone/xs-max
    name: Смартфон Apple iPhone XS Max 512GB (золотистый)
    price: 110000
    price_rrc: 116990
    quantity: 14
    parameters:
      "Диагональ (дюйм)": 6.5
      "Встроенная память (Гб)": 512
      "Цвет": золотистый
  - id: 4216313
    category: 15
    model: apple/case
    name: Чехол для iPhone XS Max
    price: 1500
    price_rrc: 1990
    quantity: 30
    parameters:
      "Цвет": черный
`

const feedDocUpdated = `
shop: Связной
categories:
  - id: 224
    name: Смартфоны
goods:
  - id: 4216292
    category: 224
    model: apple/iphone/xs-max
    name: Смартфон Apple iPhone XS Max 512GB (золотистый)
    price: 90000
    price_rrc: 99990
    quantity: 7
    parameters:
      "Цвет": золотистый
`

// ==================== 导入 ====================

func TestImportService_ImportFromURL(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "svyaznoy", model.UserTypeShop)

	fetcher := &fakeFetcher{docs: map[string][]byte{
		"https://feeds.example.com/shop1.yaml": []byte(feedDoc),
	}}
	svc := newTestImportService(db, fetcher)

	result, err := svc.ImportFromURL(context.Background(), owner.ID, "https://feeds.example.com/shop1.yaml")
	if err != nil {
		t.Fatalf("导入失败: %v", err)
	}
	if result.ShopName != "Связной" {
		t.Errorf("shop_name = %s, want Связной", result.ShopName)
	}
	if result.Categories != 2 || result.Goods != 2 {
		t.Errorf("categories/goods = %d/%d, want 2/2", result.Categories, result.Goods)
	}

	// 店铺绑定到导入者
	var shop model.Shop
	if err := db.Where("user_id = ?", owner.ID).First(&shop).Error; err != nil {
		t.Fatalf("查询店铺失败: %v", err)
	}
	if shop.FeedSyncedAt == nil {
		t.Error("feed_synced_at 应在导入后写入")
	}

	// 品类字典按外部 id 落库
	var category model.Category
	if err := db.First(&category, 224).Error; err != nil {
		t.Fatalf("品类 224 未创建: %v", err)
	}
	if category.Name != "Смартфоны" {
		t.Errorf("category.name = %s, want Смартфоны", category.Name)
	}

	// 在售条目与参数
	var infos []model.ProductInfo
	db.Where("shop_id = ?", shop.ID).Find(&infos)
	if len(infos) != 2 {
		t.Fatalf("条目数 = %d, want 2", len(infos))
	}
	var paramCount int64
	db.Model(&model.ProductParameter{}).Count(&paramCount)
	if paramCount != 4 {
		t.Errorf("参数数 = %d, want 4", paramCount)
	}
}

func TestImportService_ReimportReplacesCatalog(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "svyaznoy", model.UserTypeShop)

	fetcher := &fakeFetcher{docs: map[string][]byte{
		"https://feeds.example.com/shop1.yaml": []byte(feedDoc),
	}}
	svc := newTestImportService(db, fetcher)

	if _, err := svc.ImportFromURL(context.Background(), owner.ID, "https://feeds.example.com/shop1.yaml"); err != nil {
		t.Fatalf("首次导入失败: %v", err)
	}

	// 第二份文档更新价格并去掉一个商品
	fetcher.docs["https://feeds.example.com/shop1.yaml"] = []byte(feedDocUpdated)
	if _, err := svc.ImportFromURL(context.Background(), owner.ID, "https://feeds.example.com/shop1.yaml"); err != nil {
		t.Fatalf("重新导入失败: %v", err)
	}

	var shop model.Shop
	db.Where("user_id = ?", owner.ID).First(&shop)

	// 旧条目全部替换，不残留、不重复
	var infos []model.ProductInfo
	db.Where("shop_id = ?", shop.ID).Find(&infos)
	if len(infos) != 1 {
		t.Fatalf("重导后条目数 = %d, want 1", len(infos))
	}
	if infos[0].Price != 90000 || infos[0].Quantity != 7 {
		t.Errorf("price/quantity = %d/%d, want 90000/7", infos[0].Price, infos[0].Quantity)
	}
}

func TestImportService_ShopIsolation(t *testing.T) {
	db := setupTestDB(t)
	ownerA := createTestUser(t, db, "shop_a", model.UserTypeShop)
	ownerB := createTestUser(t, db, "shop_b", model.UserTypeShop)

	docB := `
shop: МТС
categories:
  - id: 224
    name: Смартфоны
goods:
  - id: 9001
    category: 224
    model: samsung/galaxy
    name: Смартфон Samsung Galaxy S10
    price: 55000
    price_rrc: 59990
    quantity: 5
`
	fetcher := &fakeFetcher{docs: map[string][]byte{
		"https://feeds.example.com/a.yaml": []byte(feedDoc),
		"https://feeds.example.com/b.yaml": []byte(docB),
	}}
	svc := newTestImportService(db, fetcher)

	if _, err := svc.ImportFromURL(context.Background(), ownerA.ID, "https://feeds.example.com/a.yaml"); err != nil {
		t.Fatalf("店铺 A 导入失败: %v", err)
	}
	if _, err := svc.ImportFromURL(context.Background(), ownerB.ID, "https://feeds.example.com/b.yaml"); err != nil {
		t.Fatalf("店铺 B 导入失败: %v", err)
	}

	// B 的导入不得影响 A 的条目
	var shopA model.Shop
	db.Where("user_id = ?", ownerA.ID).First(&shopA)
	var countA int64
	db.Model(&model.ProductInfo{}).Where("shop_id = ?", shopA.ID).Count(&countA)
	if countA != 2 {
		t.Errorf("店铺 A 条目数 = %d, want 2", countA)
	}

	// 品类 224 在字典里只有一行，两家店共享
	var catCount int64
	db.Model(&model.Category{}).Where("id = ?", 224).Count(&catCount)
	if catCount != 1 {
		t.Errorf("品类 224 行数 = %d, want 1", catCount)
	}
}

// ==================== 能力检查 ====================

func TestImportService_BuyerForbidden(t *testing.T) {
	db := setupTestDB(t)
	buyer := createTestUser(t, db, "buyer1", model.UserTypeBuyer)

	fetcher := &fakeFetcher{docs: map[string][]byte{
		"https://feeds.example.com/shop1.yaml": []byte(feedDoc),
	}}
	svc := newTestImportService(db, fetcher)

	_, err := svc.ImportFromURL(context.Background(), buyer.ID, "https://feeds.example.com/shop1.yaml")
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}

	// 没有任何落库副作用
	var shopCount int64
	db.Model(&model.Shop{}).Count(&shopCount)
	if shopCount != 0 {
		t.Errorf("店铺数 = %d, want 0", shopCount)
	}
}

func TestImportService_InvalidURL(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "svyaznoy", model.UserTypeShop)
	svc := newTestImportService(db, &fakeFetcher{})

	for _, url := range []string{"", "ftp://feeds.example.com/a.yaml", "not-a-url"} {
		_, err := svc.ImportFromURL(context.Background(), owner.ID, url)
		if !errors.Is(err, ErrValidation) {
			t.Errorf("url %q: err = %v, want ErrValidation", url, err)
		}
	}
}

func TestImportService_FetchFailure(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "svyaznoy", model.UserTypeShop)
	svc := newTestImportService(db, &fakeFetcher{}) // 无预置文档，所有 URL 都拉取失败

	_, err := svc.ImportFromURL(context.Background(), owner.ID, "https://feeds.example.com/gone.yaml")
	if !errors.Is(err, ErrFeedFetch) {
		t.Fatalf("err = %v, want ErrFeedFetch", err)
	}
}

// ==================== 事务回滚 ====================

func TestImportService_RollbackOnBadDocument(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "svyaznoy", model.UserTypeShop)

	fetcher := &fakeFetcher{docs: map[string][]byte{
		"https://feeds.example.com/shop1.yaml": []byte(feedDoc),
	}}
	svc := newTestImportService(db, fetcher)

	if _, err := svc.ImportFromURL(context.Background(), owner.ID, "https://feeds.example.com/shop1.yaml"); err != nil {
		t.Fatalf("首次导入失败: %v", err)
	}

	// 商品引用了未声明的品类，解析阶段即拒绝
	badDoc := `
shop: Связной
categories:
  - id: 224
    name: Смартфоны
goods:
  - id: 1
    category: 999
    name: Призрак
    price: 1
    price_rrc: 1
    quantity: 1
`
	fetcher.docs["https://feeds.example.com/shop1.yaml"] = []byte(badDoc)
	_, err := svc.ImportFromURL(context.Background(), owner.ID, "https://feeds.example.com/shop1.yaml")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}

	// 失败导入不得破坏已有目录
	var shop model.Shop
	db.Where("user_id = ?", owner.ID).First(&shop)
	var count int64
	db.Model(&model.ProductInfo{}).Where("shop_id = ?", shop.ID).Count(&count)
	if count != 2 {
		t.Errorf("失败导入后条目数 = %d, want 2 (旧目录应保留)", count)
	}
}

// ==================== 定时刷新入口 ====================

func TestImportService_RefreshShop(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "svyaznoy", model.UserTypeShop)

	fetcher := &fakeFetcher{docs: map[string][]byte{
		"https://feeds.example.com/shop1.yaml": []byte(feedDoc),
	}}
	svc := newTestImportService(db, fetcher)

	if _, err := svc.ImportFromURL(context.Background(), owner.ID, "https://feeds.example.com/shop1.yaml"); err != nil {
		t.Fatalf("首次导入失败: %v", err)
	}

	var shop model.Shop
	db.Where("user_id = ?", owner.ID).First(&shop)

	// 源文档变化后按店铺存储的 URL 重新拉取
	fetcher.docs["https://feeds.example.com/shop1.yaml"] = []byte(feedDocUpdated)
	result, err := svc.RefreshShop(context.Background(), shop.ID)
	if err != nil {
		t.Fatalf("刷新失败: %v", err)
	}
	if result.Goods != 1 {
		t.Errorf("刷新后 goods = %d, want 1", result.Goods)
	}
}
