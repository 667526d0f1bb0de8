package mysql

import (
	"time"

	"gorm.io/gorm"
)

// 设计说明：
// 1. 这里是infrastructure层的数据模型，包含GORM tag
// 2. domain层实体不依赖GORM，Repository负责两者之间的转换
// 3. 表结构以migrations目录下的SQL为准，AutoMigrate只用于本地开发

// CartModel 购物车表头
type CartModel struct {
	ID                string          `gorm:"primaryKey;size:36"`
	CustomerID        string          `gorm:"index;size:36;not null;comment:客户ID"`
	Status            string          `gorm:"size:16;not null;default:active;comment:active|inactive"`
	TotalPrice        int64           `gorm:"not null;default:0;comment:总价(分)"`
	BillingAddressID  string          `gorm:"size:36;comment:账单地址ID"`
	ShippingAddressID string          `gorm:"size:36;comment:收货地址ID"`
	DeliveryMethod    string          `gorm:"size:16;comment:standard|express|pickup"`
	Version           int64           `gorm:"not null;default:0;comment:表头写入次数"`
	LineItems         []LineItemModel `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time       `gorm:"precision:6;index"`
	UpdatedAt         time.Time       `gorm:"precision:6"`
}

func (CartModel) TableName() string {
	return "carts"
}

// LineItemModel 购物车明细
// (cart_id, book_id)唯一：同一本书只能有一条明细
type LineItemModel struct {
	ID         string    `gorm:"primaryKey;size:36"`
	CartID     string    `gorm:"size:36;not null;uniqueIndex:uk_cart_book"`
	BookID     uint      `gorm:"not null;uniqueIndex:uk_cart_book"`
	Quantity   int       `gorm:"not null"`
	Price      int64     `gorm:"not null;comment:加购时单价(分)"`
	TotalPrice int64     `gorm:"not null;comment:小计(分)"`
	CreatedAt  time.Time `gorm:"precision:6"`
	UpdatedAt  time.Time `gorm:"precision:6"`
}

func (LineItemModel) TableName() string {
	return "line_items"
}

// BookModel 图书（目录服务维护，本服务只读价格）
type BookModel struct {
	ID        uint           `gorm:"primaryKey"`
	ISBN      string         `gorm:"uniqueIndex;size:20;not null"`
	Title     string         `gorm:"size:200;not null"`
	Author    string         `gorm:"size:100;not null"`
	Price     int64          `gorm:"not null;comment:价格(分)"`
	CreatedAt time.Time      `gorm:"precision:6"`
	UpdatedAt time.Time      `gorm:"precision:6"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (BookModel) TableName() string {
	return "books"
}

// InventoryModel 库存
type InventoryModel struct {
	BookID    uint      `gorm:"primaryKey;autoIncrement:false"`
	Quantity  int       `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"precision:6"`
}

func (InventoryModel) TableName() string {
	return "inventories"
}

// CustomerModel 客户（user_id是登录账号ID）
type CustomerModel struct {
	ID        string    `gorm:"primaryKey;size:36"`
	UserID    uint      `gorm:"uniqueIndex;not null"`
	Name      string    `gorm:"size:100;not null"`
	Email     string    `gorm:"size:100;not null"`
	CreatedAt time.Time `gorm:"precision:6"`
	UpdatedAt time.Time `gorm:"precision:6"`
}

func (CustomerModel) TableName() string {
	return "customers"
}

// OrderModel 订单
type OrderModel struct {
	ID                string           `gorm:"primaryKey;size:36"`
	OrderNo           string           `gorm:"uniqueIndex;size:32;not null"`
	CustomerID        string           `gorm:"index;size:36;not null"`
	CartID            string           `gorm:"index;size:36;not null"`
	Total             int64            `gorm:"not null;comment:订单总金额(分)"`
	Status            int              `gorm:"type:tinyint;not null;default:1"`
	BillingAddressID  string           `gorm:"size:36;not null"`
	ShippingAddressID string           `gorm:"size:36;not null"`
	DeliveryMethod    string           `gorm:"size:16;not null"`
	Items             []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time        `gorm:"precision:6;index"`
	UpdatedAt         time.Time        `gorm:"precision:6"`
}

func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel 订单明细（价格快照）
type OrderItemModel struct {
	ID       string `gorm:"primaryKey;size:36"`
	OrderID  string `gorm:"index;size:36;not null"`
	BookID   uint   `gorm:"not null"`
	Quantity int    `gorm:"not null"`
	Price    int64  `gorm:"not null"`
}

func (OrderItemModel) TableName() string {
	return "order_items"
}
