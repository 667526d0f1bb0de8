package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookstore-checkout/internal/domain/cart"
	apperrors "github.com/xiebiao/bookstore-checkout/pkg/errors"
)

// cartRepository 购物车仓储实现
// 教学要点:
// 1. 所有方法都通过dbFrom(ctx)取DB，事务内调用自动参与事务
// 2. 明细按created_at,id排序，保持加入顺序
// 3. Delete显式删除明细，不依赖外键级联
type cartRepository struct {
	db    *gorm.DB
	items *lineItemRepository
	tx    *TxManager
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepository{
		db:    db,
		items: &lineItemRepository{db: db},
		tx:    NewTxManager(db),
	}
}

func orderLineItems(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC, id ASC")
}

func (r *cartRepository) Create(ctx context.Context, c *cart.Cart) error {
	model := toCartModel(c)
	if err := dbFrom(ctx, r.db).Omit(clause.Associations).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建购物车失败")
	}
	return nil
}

func (r *cartRepository) FindByID(ctx context.Context, id string) (*cart.Cart, error) {
	var model CartModel
	err := dbFrom(ctx, r.db).
		Preload("LineItems", orderLineItems).
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		if isNotFound(err) {
			return nil, cart.ErrCartNotFound
		}
		return nil, apperrors.Wrap(err, "查询购物车失败")
	}
	return toCartEntity(&model), nil
}

// LockByID SELECT ... FOR UPDATE锁定表头后再读明细
// 明细单独查询，不对明细行加锁（明细只在持有表头锁时修改）
func (r *cartRepository) LockByID(ctx context.Context, id string) (*cart.Cart, error) {
	db := dbFrom(ctx, r.db)

	var model CartModel
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		if isNotFound(err) {
			return nil, cart.ErrCartNotFound
		}
		return nil, apperrors.Wrap(err, "锁定购物车失败")
	}

	if err := orderLineItems(db.Where("cart_id = ?", id)).Find(&model.LineItems).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询购物车明细失败")
	}
	return toCartEntity(&model), nil
}

// Update 更新表头，version在数据库侧+1
func (r *cartRepository) Update(ctx context.Context, c *cart.Cart) error {
	result := dbFrom(ctx, r.db).Model(&CartModel{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"status":              string(c.Status),
			"total_price":         c.TotalPrice,
			"billing_address_id":  c.BillingAddressID,
			"shipping_address_id": c.ShippingAddressID,
			"delivery_method":     string(c.DeliveryMethod),
			"version":             gorm.Expr("version + 1"),
			"updated_at":          c.UpdatedAt,
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新购物车失败")
	}
	if result.RowsAffected == 0 {
		return cart.ErrCartNotFound
	}
	c.Version++
	return nil
}

func (r *cartRepository) Delete(ctx context.Context, id string) error {
	return r.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := r.items.DeleteByCartID(ctx, id); err != nil {
			return err
		}
		result := dbFrom(ctx, r.db).Where("id = ?", id).Delete(&CartModel{})
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "删除购物车失败")
		}
		if result.RowsAffected == 0 {
			return cart.ErrCartNotFound
		}
		return nil
	})
}

func (r *cartRepository) ListByCustomer(ctx context.Context, customerID string) ([]*cart.Cart, error) {
	var models []CartModel
	err := dbFrom(ctx, r.db).
		Preload("LineItems", orderLineItems).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询购物车列表失败")
	}

	carts := make([]*cart.Cart, len(models))
	for i := range models {
		carts[i] = toCartEntity(&models[i])
	}
	return carts, nil
}

// lineItemRepository 购物车明细仓储实现
type lineItemRepository struct {
	db *gorm.DB
}

// NewLineItemRepository 创建明细仓储
func NewLineItemRepository(db *gorm.DB) cart.LineItemRepository {
	return &lineItemRepository{db: db}
}

func (r *lineItemRepository) Create(ctx context.Context, item *cart.LineItem) error {
	model := toLineItemModel(item)
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建购物车明细失败")
	}
	return nil
}

func (r *lineItemRepository) Update(ctx context.Context, item *cart.LineItem) error {
	result := dbFrom(ctx, r.db).Model(&LineItemModel{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"quantity":    item.Quantity,
			"total_price": item.TotalPrice,
			"updated_at":  item.UpdatedAt,
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新购物车明细失败")
	}
	if result.RowsAffected == 0 {
		return cart.ErrLineItemNotFound
	}
	return nil
}

func (r *lineItemRepository) Delete(ctx context.Context, id string) error {
	result := dbFrom(ctx, r.db).Where("id = ?", id).Delete(&LineItemModel{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除购物车明细失败")
	}
	if result.RowsAffected == 0 {
		return cart.ErrLineItemNotFound
	}
	return nil
}

func (r *lineItemRepository) DeleteByCartID(ctx context.Context, cartID string) error {
	if err := dbFrom(ctx, r.db).Where("cart_id = ?", cartID).Delete(&LineItemModel{}).Error; err != nil {
		return apperrors.Wrap(err, "删除购物车明细失败")
	}
	return nil
}

func toCartModel(c *cart.Cart) *CartModel {
	return &CartModel{
		ID:                c.ID,
		CustomerID:        c.CustomerID,
		Status:            string(c.Status),
		TotalPrice:        c.TotalPrice,
		BillingAddressID:  c.BillingAddressID,
		ShippingAddressID: c.ShippingAddressID,
		DeliveryMethod:    string(c.DeliveryMethod),
		Version:           c.Version,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

func toCartEntity(m *CartModel) *cart.Cart {
	items := make([]cart.LineItem, len(m.LineItems))
	for i, li := range m.LineItems {
		items[i] = cart.LineItem{
			ID:         li.ID,
			CartID:     li.CartID,
			BookID:     li.BookID,
			Quantity:   li.Quantity,
			Price:      li.Price,
			TotalPrice: li.TotalPrice,
			CreatedAt:  li.CreatedAt,
			UpdatedAt:  li.UpdatedAt,
		}
	}
	return &cart.Cart{
		ID:                m.ID,
		CustomerID:        m.CustomerID,
		Status:            cart.Status(m.Status),
		TotalPrice:        m.TotalPrice,
		BillingAddressID:  m.BillingAddressID,
		ShippingAddressID: m.ShippingAddressID,
		DeliveryMethod:    cart.DeliveryMethod(m.DeliveryMethod),
		LineItems:         items,
		Version:           m.Version,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func toLineItemModel(li *cart.LineItem) *LineItemModel {
	return &LineItemModel{
		ID:         li.ID,
		CartID:     li.CartID,
		BookID:     li.BookID,
		Quantity:   li.Quantity,
		Price:      li.Price,
		TotalPrice: li.TotalPrice,
		CreatedAt:  li.CreatedAt,
		UpdatedAt:  li.UpdatedAt,
	}
}
