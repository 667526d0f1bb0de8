package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-checkout/internal/domain/order"
	apperrors "github.com/xiebiao/bookstore-checkout/pkg/errors"
)

// orderRepository 订单仓储实现
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 创建订单(包含订单明细)
// 教学要点:GORM会在同一事务中先插入orders再插入order_items
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	model := toOrderModel(o)
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.Wrapf(err, "订单号重复: %s", o.OrderNo)
		}
		return apperrors.Wrap(err, "创建订单失败")
	}
	return nil
}

// FindByCartID 查找购物车对应的订单(包含订单明细)
func (r *orderRepository) FindByCartID(ctx context.Context, cartID string) (*order.Order, error) {
	var model OrderModel
	err := dbFrom(ctx, r.db).Preload("Items").Where("cart_id = ?", cartID).Order("created_at DESC").First(&model).Error
	if err != nil {
		if isNotFound(err) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

func toOrderModel(o *order.Order) *OrderModel {
	items := make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemModel{
			ID:       item.ID,
			OrderID:  item.OrderID,
			BookID:   item.BookID,
			Quantity: item.Quantity,
			Price:    item.Price,
		}
	}
	return &OrderModel{
		ID:                o.ID,
		OrderNo:           o.OrderNo,
		CustomerID:        o.CustomerID,
		CartID:            o.CartID,
		Total:             o.Total,
		Status:            int(o.Status),
		BillingAddressID:  o.BillingAddressID,
		ShippingAddressID: o.ShippingAddressID,
		DeliveryMethod:    o.DeliveryMethod,
		Items:             items,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

func toOrderEntity(m *OrderModel) *order.Order {
	items := make([]order.OrderItem, len(m.Items))
	for i, item := range m.Items {
		items[i] = order.OrderItem{
			ID:       item.ID,
			OrderID:  item.OrderID,
			BookID:   item.BookID,
			Quantity: item.Quantity,
			Price:    item.Price,
		}
	}
	return &order.Order{
		ID:                m.ID,
		OrderNo:           m.OrderNo,
		CustomerID:        m.CustomerID,
		CartID:            m.CartID,
		Total:             m.Total,
		Status:            order.OrderStatus(m.Status),
		BillingAddressID:  m.BillingAddressID,
		ShippingAddressID: m.ShippingAddressID,
		DeliveryMethod:    m.DeliveryMethod,
		Items:             items,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}
