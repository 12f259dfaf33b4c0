package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"retail_orders_v1_202608/internal/api/dto"
	"retail_orders_v1_202608/internal/model"
)

// ==================== 数据准备 ====================

// seedShopWithStock 建一个带两个在售条目的店铺
func seedShopWithStock(t *testing.T, db *gorm.DB) (*model.ProductInfo, *model.ProductInfo) {
	t.Helper()

	owner := createTestUser(t, db, "supplier", model.UserTypeShop)
	shop := &model.Shop{Name: "Связной", UserID: owner.ID, Status: model.ShopStatusActive}
	if err := db.Create(shop).Error; err != nil {
		t.Fatalf("创建店铺失败: %v", err)
	}

	if err := db.Create(&model.Category{ID: 224, Name: "Смартфоны"}).Error; err != nil {
		t.Fatalf("创建品类失败: %v", err)
	}

	phone := &model.Product{CategoryID: 224, Name: "Смартфон Apple iPhone XS Max"}
	cover := &model.Product{CategoryID: 224, Name: "Чехол"}
	db.Create(phone)
	db.Create(cover)

	info1 := &model.ProductInfo{
		ProductID: phone.ID, ShopID: shop.ID, ExternalID: 4216292,
		Name: "Смартфон Apple iPhone XS Max", Quantity: 14, Price: 110000, PriceRRC: 116990,
	}
	info2 := &model.ProductInfo{
		ProductID: cover.ID, ShopID: shop.ID, ExternalID: 4216313,
		Name: "Чехол", Quantity: 30, Price: 1500, PriceRRC: 1990,
	}
	db.Create(info1)
	db.Create(info2)
	return info1, info2
}

// ==================== 购物篮 ====================

func TestOrderService_AddToBasket(t *testing.T) {
	db := setupTestDB(t)
	info1, info2 := seedShopWithStock(t, db)
	buyer := createTestUser(t, db, "buyer1", model.UserTypeBuyer)

	dispatcher := &fakeDispatcher{}
	svc := newTestOrderService(db, dispatcher)

	// 先后加两个条目，必须落在同一个购物篮订单上
	view, err := svc.AddToBasket(context.Background(), buyer.ID,
		&dto.AddToBasketRequest{ProductInfoID: info1.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("加入购物篮失败: %v", err)
	}
	view2, err := svc.AddToBasket(context.Background(), buyer.ID,
		&dto.AddToBasketRequest{ProductInfoID: info2.ID, Quantity: 3})
	if err != nil {
		t.Fatalf("加入购物篮失败: %v", err)
	}

	if view.ID != view2.ID {
		t.Fatalf("两次加入产生了不同购物篮: %d vs %d", view.ID, view2.ID)
	}
	if len(view2.Items) != 2 {
		t.Fatalf("购物篮条目数 = %d, want 2", len(view2.Items))
	}
	if view2.Total != 2*110000+3*1500 {
		t.Errorf("total = %d, want %d", view2.Total, 2*110000+3*1500)
	}

	// 购物篮订单在库里只有一行
	var basketCount int64
	db.Model(&model.Order{}).
		Where("user_id = ? AND status = ?", buyer.ID, model.OrderStatusBasket).
		Count(&basketCount)
	if basketCount != 1 {
		t.Errorf("购物篮订单数 = %d, want 1", basketCount)
	}
}

func TestOrderService_AddToBasketExceedsStock(t *testing.T) {
	db := setupTestDB(t)
	info1, _ := seedShopWithStock(t, db)
	buyer := createTestUser(t, db, "buyer1", model.UserTypeBuyer)

	svc := newTestOrderService(db, &fakeDispatcher{})

	// 库存 14，请求 15
	_, err := svc.AddToBasket(context.Background(), buyer.ID,
		&dto.AddToBasketRequest{ProductInfoID: info1.ID, Quantity: 15})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}

	// 不得留下任何订单项
	var itemCount int64
	db.Model(&model.OrderItem{}).Count(&itemCount)
	if itemCount != 0 {
		t.Errorf("订单项数 = %d, want 0", itemCount)
	}
}

func TestOrderService_AddToBasketUnknownItem(t *testing.T) {
	db := setupTestDB(t)
	seedShopWithStock(t, db)
	buyer := createTestUser(t, db, "buyer1", model.UserTypeBuyer)

	svc := newTestOrderService(db, &fakeDispatcher{})

	_, err := svc.AddToBasket(context.Background(), buyer.ID,
		&dto.AddToBasketRequest{ProductInfoID: 99999, Quantity: 1})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestOrderService_AddSameItemTwiceUpdatesQuantity(t *testing.T) {
	db := setupTestDB(t)
	info1, _ := seedShopWithStock(t, db)
	buyer := createTestUser(t, db, "buyer1", model.UserTypeBuyer)

	svc := newTestOrderService(db, &fakeDispatcher{})

	if _, err := svc.AddToBasket(context.Background(), buyer.ID,
		&dto.AddToBasketRequest{ProductInfoID: info1.ID, Quantity: 2}); err != nil {
		t.Fatalf("加入购物篮失败: %v", err)
	}
	view, err := svc.AddToBasket(context.Background(), buyer.ID,
		&dto.AddToBasketRequest{ProductInfoID: info1.ID, Quantity: 5})
	if err != nil {
		t.Fatalf("更新数量失败: %v", err)
	}

	if len(view.Items) != 1 {
		t.Fatalf("条目数 = %d, want 1 (同条目应合并)", len(view.Items))
	}
	if view.Items[0].Quantity != 5 {
		t.Errorf("quantity = %d, want 5", view.Items[0].Quantity)
	}
}

// ==================== 确认订单 ====================

func TestOrderService_Confirm(t *testing.T) {
	db := setupTestDB(t)
	info1, _ := seedShopWithStock(t, db)
	buyer := createTestUser(t, db, "buyer1", model.UserTypeBuyer)

	dispatcher := &fakeDispatcher{}
	svc := newTestOrderService(db, dispatcher)

	if _, err := svc.AddToBasket(context.Background(), buyer.ID,
		&dto.AddToBasketRequest{ProductInfoID: info1.ID, Quantity: 1}); err != nil {
		t.Fatalf("加入购物篮失败: %v", err)
	}

	view, err := svc.Confirm(context.Background(), buyer.ID)
	if err != nil {
		t.Fatalf("确认失败: %v", err)
	}
	if view.Status != model.OrderStatusAccepted {
		t.Errorf("status = %s, want accepted", view.Status)
	}

	// 确认后购物篮已清空，可以开新篮
	if _, err := svc.GetBasket(context.Background(), buyer.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("确认后 GetBasket err = %v, want ErrNotFound", err)
	}

	// 发出一封确认邮件
	if dispatcher.count() != 1 {
		t.Fatalf("邮件数 = %d, want 1", dispatcher.count())
	}
	if mail := dispatcher.last(); mail.To != buyer.Email {
		t.Errorf("收件人 = %s, want %s", mail.To, buyer.Email)
	}
}

func TestOrderService_ConfirmEmptyBasket(t *testing.T) {
	db := setupTestDB(t)
	buyer := createTestUser(t, db, "buyer1", model.UserTypeBuyer)

	dispatcher := &fakeDispatcher{}
	svc := newTestOrderService(db, dispatcher)

	_, err := svc.Confirm(context.Background(), buyer.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	// 不得发出任何邮件
	if dispatcher.count() != 0 {
		t.Errorf("邮件数 = %d, want 0", dispatcher.count())
	}
}

// ==================== 查询 ====================

func TestOrderService_ListAndDetail(t *testing.T) {
	db := setupTestDB(t)
	info1, _ := seedShopWithStock(t, db)
	buyer := createTestUser(t, db, "buyer1", model.UserTypeBuyer)
	other := createTestUser(t, db, "buyer2", model.UserTypeBuyer)

	svc := newTestOrderService(db, &fakeDispatcher{})

	if _, err := svc.AddToBasket(context.Background(), buyer.ID,
		&dto.AddToBasketRequest{ProductInfoID: info1.ID, Quantity: 1}); err != nil {
		t.Fatalf("加入购物篮失败: %v", err)
	}
	confirmed, err := svc.Confirm(context.Background(), buyer.ID)
	if err != nil {
		t.Fatalf("确认失败: %v", err)
	}

	resp, err := svc.ListOrders(context.Background(), buyer.ID, &dto.ListOrdersRequest{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("订单列表失败: %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("total = %d, want 1", resp.Total)
	}

	// 本人可以看详情
	detail, err := svc.GetOrderDetail(context.Background(), buyer.ID, confirmed.ID)
	if err != nil {
		t.Fatalf("订单详情失败: %v", err)
	}
	if len(detail.Items) != 1 {
		t.Errorf("详情条目数 = %d, want 1", len(detail.Items))
	}

	// 其他用户不可以
	if _, err := svc.GetOrderDetail(context.Background(), other.ID, confirmed.ID); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("跨用户详情 err = %v, want ErrPermissionDenied", err)
	}
}
