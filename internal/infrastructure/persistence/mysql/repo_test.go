package mysql

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"
	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-checkout/internal/domain/cart"
	"github.com/xiebiao/bookstore-checkout/internal/domain/customer"
	"github.com/xiebiao/bookstore-checkout/internal/domain/inventory"
	"github.com/xiebiao/bookstore-checkout/internal/domain/order"
	"github.com/xiebiao/bookstore-checkout/internal/infrastructure/config"
)

// setupTestDB 启动MySQL容器并执行迁移
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("需要Docker，-short模式跳过")
	}

	ctx := context.Background()
	ctr, err := tcmysql.Run(ctx, "mysql:8.0",
		tcmysql.WithDatabase("bookstore"),
		tcmysql.WithUsername("bookstore"),
		tcmysql.WithPassword("secret"),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := ctr.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	host, err := ctr.Host(ctx)
	require.NoError(t, err)
	port, err := ctr.MappedPort(ctx, "3306/tcp")
	require.NoError(t, err)

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		Database: config.DatabaseConfig{
			Host:            host,
			Port:            port.Int(),
			User:            "bookstore",
			Password:        "secret",
			DBName:          "bookstore",
			Charset:         "utf8mb4",
			ParseTime:       true,
			Loc:             "Local",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: time.Minute,
			RunMigrations:   true,
		},
	}
	db, err := NewDB(cfg)
	require.NoError(t, err)
	return db
}

func seed(t *testing.T, db *gorm.DB) (customerID string) {
	t.Helper()
	customerID = uuid.NewString()
	require.NoError(t, db.Create(&CustomerModel{ID: customerID, UserID: 1001, Name: "读者", Email: "r@example.com"}).Error)
	require.NoError(t, db.Create(&[]BookModel{
		{ID: 1, ISBN: "9787115000001", Title: "Go语言编程", Author: "许式伟", Price: 2500},
		{ID: 2, ISBN: "9787115000002", Title: "数据密集型应用系统设计", Author: "Kleppmann", Price: 12800},
	}).Error)
	require.NoError(t, db.Create(&[]InventoryModel{
		{BookID: 1, Quantity: 100},
		{BookID: 2, Quantity: 3},
	}).Error)
	return customerID
}

func newEngine(db *gorm.DB) *cart.Engine {
	return cart.NewEngine(NewCartRepository(db), NewLineItemRepository(db), NewBookRepository(db), NewInventoryRepository(db))
}

func TestCartRepository_EngineRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	customerID := seed(t, db)
	tx := NewTxManager(db)
	engine := newEngine(db)
	ctx := context.Background()

	var c *cart.Cart
	require.NoError(t, tx.Transaction(ctx, func(ctx context.Context) (err error) {
		c, err = engine.CreateCart(ctx, customerID)
		if err != nil {
			return err
		}
		if c, err = engine.AddLineItem(ctx, c.ID, 1, 2); err != nil {
			return err
		}
		c, err = engine.AddLineItem(ctx, c.ID, 2, 1)
		return err
	}))

	found, err := NewCartRepository(db).FindByID(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, found.LineItems, 2)
	assert.Equal(t, uint(1), found.LineItems[0].BookID, "明细按加入顺序返回")
	assert.Equal(t, int64(2*2500+12800), found.TotalPrice)
	assert.Equal(t, int64(2), found.Version)

	list, err := NewCartRepository(db).ListByCustomer(ctx, customerID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, tx.Transaction(ctx, func(ctx context.Context) error {
		return engine.DeleteCart(ctx, c.ID)
	}))
	var count int64
	require.NoError(t, db.Model(&LineItemModel{}).Where("cart_id = ?", c.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestTxManager_RollbackOnError(t *testing.T) {
	db := setupTestDB(t)
	customerID := seed(t, db)
	tx := NewTxManager(db)
	engine := newEngine(db)
	ctx := context.Background()

	var cartID string
	boom := errors.New("boom")
	err := tx.Transaction(ctx, func(ctx context.Context) error {
		c, err := engine.CreateCart(ctx, customerID)
		if err != nil {
			return err
		}
		cartID = c.ID
		if _, err := engine.AddLineItem(ctx, c.ID, 1, 1); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = NewCartRepository(db).FindByID(ctx, cartID)
	assert.ErrorIs(t, err, cart.ErrCartNotFound, "回滚后购物车和明细都不存在")
}

// 并发加购同一购物车，行锁保证总价不丢失更新
func TestCartRepository_ConcurrentAddKeepsTotal(t *testing.T) {
	db := setupTestDB(t)
	customerID := seed(t, db)
	tx := NewTxManager(db)
	engine := newEngine(db)
	ctx := context.Background()

	c, err := engine.CreateCart(ctx, customerID)
	require.NoError(t, err)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- tx.Transaction(ctx, func(ctx context.Context) error {
				_, err := engine.AddLineItem(ctx, c.ID, 1, 1)
				return err
			})
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	found, err := engine.FindCart(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, found.LineItems, 1)
	assert.Equal(t, workers, found.LineItems[0].Quantity)
	assert.Equal(t, int64(workers*2500), found.TotalPrice)
}

func TestInventoryRepository_Decrease(t *testing.T) {
	db := setupTestDB(t)
	seed(t, db)
	repo := NewInventoryRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Decrease(ctx, 2, 2))
	available, err := repo.Available(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, available)

	assert.ErrorIs(t, repo.Decrease(ctx, 2, 2), inventory.ErrInsufficientStock)

	available, err = repo.Available(ctx, 999)
	require.NoError(t, err)
	assert.Zero(t, available)
}

func TestOrderAndCustomerRepository(t *testing.T) {
	db := setupTestDB(t)
	customerID := seed(t, db)
	ctx := context.Background()

	cust, err := NewCustomerRepository(db).FindByUserID(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, customerID, cust.ID)

	_, err = NewCustomerRepository(db).FindByUserID(ctx, 42)
	assert.ErrorIs(t, err, customer.ErrCustomerNotFound)

	o, err := order.NewFromCart(&cart.Cart{
		ID:                uuid.NewString(),
		CustomerID:        customerID,
		BillingAddressID:  "addr-bill",
		ShippingAddressID: "addr-ship",
		DeliveryMethod:    cart.DeliveryStandard,
		LineItems:         []cart.LineItem{{BookID: 1, Quantity: 2, Price: 2500, TotalPrice: 5000}},
		TotalPrice:        5000,
	}, order.GenerateOrderNo())
	require.NoError(t, err)
	require.NoError(t, NewOrderRepository(db).Create(ctx, o))

	found, err := NewOrderRepository(db).FindByCartID(ctx, o.CartID)
	require.NoError(t, err)
	assert.Equal(t, o.OrderNo, found.OrderNo)
	require.Len(t, found.Items, 1)
	assert.Equal(t, int64(2500), found.Items[0].Price)

	_, err = NewOrderRepository(db).FindByCartID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}
