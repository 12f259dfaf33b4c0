package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"retail_orders_v1_202608/internal/api/dto"
	"retail_orders_v1_202608/internal/model"
	"retail_orders_v1_202608/internal/repository"
	"retail_orders_v1_202608/pkg/mailer"
)

// ==================== OrderService 订单服务 ====================

// OrderService 购物篮与订单流转
// 范围内的状态迁移只有 basket → accepted，后续状态由后台人工推进
type OrderService struct {
	uow         *repository.OrderUnitOfWork
	orderRepo   repository.OrderRepository
	productRepo repository.ProductInfoRepository
	userRepo    repository.UserRepository
	dispatcher  mailer.Dispatcher
	logger      *zap.Logger
}

// NewOrderService 创建订单服务
func NewOrderService(
	uow *repository.OrderUnitOfWork,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductInfoRepository,
	userRepo repository.UserRepository,
	dispatcher mailer.Dispatcher,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		uow:         uow,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		dispatcher:  dispatcher,
		logger:      logger,
	}
}

// ==================== 购物篮 ====================

// AddToBasket 加入购物篮
// 库存校验以条目自身的 quantity 字段为准；
// 购物篮订单通过 insert-on-conflict 原子 get-or-create，
// 同一用户并发调用不会出现第二个购物篮
func (s *OrderService) AddToBasket(ctx context.Context, userID int64, req *dto.AddToBasketRequest) (*dto.OrderView, error) {
	if req.Quantity <= 0 {
		return nil, validationErr("数量必须为正: %d", req.Quantity)
	}

	info, err := s.productRepo.GetByID(ctx, req.ProductInfoID)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, notFoundErr("在售条目不存在")
	}
	if !info.InStock(req.Quantity) {
		return nil, validationErr("库存不足: 请求 %d, 在售 %d", req.Quantity, info.Quantity)
	}

	var orderID int64
	err = s.uow.Transaction(ctx, func(uow *repository.OrderUnitOfWork) error {
		order, err := uow.Orders.GetOrCreateBasket(ctx, userID)
		if err != nil {
			return fmt.Errorf("购物篮 get-or-create 失败: %w", err)
		}
		orderID = order.ID

		item, err := uow.Items.GetByOrderAndInfo(ctx, order.ID, info.ID)
		if err != nil {
			return err
		}
		if item == nil {
			item = &model.OrderItem{
				OrderID:       order.ID,
				ProductInfoID: info.ID,
				ShopID:        info.ShopID,
				Quantity:      req.Quantity,
			}
			return uow.Items.Create(ctx, item)
		}

		// 已在购物篮里：更新数量，按合计重新校验库存
		if !info.InStock(req.Quantity) {
			return validationErr("库存不足: 请求 %d, 在售 %d", req.Quantity, info.Quantity)
		}
		item.Quantity = req.Quantity
		return uow.Items.Update(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.GetByIDWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return toOrderView(order), nil
}

// GetBasket 查看当前购物篮
func (s *OrderService) GetBasket(ctx context.Context, userID int64) (*dto.OrderView, error) {
	order, err := s.orderRepo.GetBasket(ctx, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, notFoundErr("购物篮为空")
	}
	return toOrderView(order), nil
}

// ==================== 订单确认 ====================

// Confirm 确认订单: basket → accepted，并给用户发确认邮件
// 邮件提交是尽力而为，投递失败不会让确认失败
func (s *OrderService) Confirm(ctx context.Context, userID int64) (*dto.OrderView, error) {
	order, err := s.orderRepo.GetBasket(ctx, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, notFoundErr("没有待确认的购物篮")
	}
	if !order.CanConfirm() {
		return nil, validationErr("订单 %d 当前状态不可确认: %s", order.ID, order.Status)
	}

	order.Status = model.OrderStatusAccepted
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err == nil && user != nil {
		s.dispatcher.Submit(user.Email, "订单确认", fmt.Sprintf("您的订单 %d 已确认。", order.ID))
	} else {
		s.logger.Warn("确认通知跳过：查询用户失败", zap.Int64("user_id", userID), zap.Error(err))
	}

	return toOrderView(order), nil
}

// ==================== 查询 ====================

// ListOrders 用户订单列表
func (s *OrderService) ListOrders(ctx context.Context, userID int64, req *dto.ListOrdersRequest) (*dto.ListOrdersResponse, error) {
	orders, total, err := s.orderRepo.List(ctx, repository.OrderFilter{
		UserID:   userID,
		Status:   req.Status,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		return nil, err
	}

	list := make([]dto.OrderView, len(orders))
	for i := range orders {
		list[i] = *toOrderView(&orders[i])
	}
	return &dto.ListOrdersResponse{Total: total, List: list}, nil
}

// GetOrderDetail 订单详情（仅限本人）
func (s *OrderService) GetOrderDetail(ctx context.Context, userID, orderID int64) (*dto.OrderView, error) {
	order, err := s.orderRepo.GetByIDWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, notFoundErr("订单不存在")
	}
	if order.UserID != userID {
		return nil, ErrPermissionDenied
	}
	return toOrderView(order), nil
}

// ==================== 视图转换 ====================

func toOrderView(order *model.Order) *dto.OrderView {
	view := &dto.OrderView{
		ID:        order.ID,
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
		Items:     make([]dto.OrderItemView, len(order.Items)),
	}
	for i, item := range order.Items {
		iv := dto.OrderItemView{
			ID:            item.ID,
			ProductInfoID: item.ProductInfoID,
			ShopID:        item.ShopID,
			Quantity:      item.Quantity,
		}
		if item.ProductInfo != nil {
			iv.ProductName = item.ProductInfo.Name
			iv.Price = item.ProductInfo.Price
			view.Total += item.ProductInfo.Price * item.Quantity
		}
		view.Items[i] = iv
	}
	return view
}
