package cart

import (
	"context"

	"github.com/xiebiao/bookstore-checkout/internal/domain/book"
)

// memStore 内存版仓储，读写都做值拷贝，模拟数据库往返
type memStore struct {
	carts     map[string]Cart
	items     map[string]LineItem
	itemOrder []string
	books     map[uint]*book.Book
	stock     map[uint]int
	locks     int
}

func newMemStore() *memStore {
	return &memStore{
		carts: map[string]Cart{},
		items: map[string]LineItem{},
		books: map[uint]*book.Book{},
		stock: map[uint]int{},
	}
}

func (s *memStore) addBook(id uint, price int64, stock int) {
	s.books[id] = &book.Book{ID: id, Title: "book", Price: price}
	s.stock[id] = stock
}

func (s *memStore) engine(opts ...Option) *Engine {
	return NewEngine(&memCarts{s}, &memItems{s}, &memBooks{s}, &memStock{s}, opts...)
}

func (s *memStore) load(id string) (*Cart, error) {
	h, ok := s.carts[id]
	if !ok {
		return nil, ErrCartNotFound
	}
	c := h
	c.LineItems = []LineItem{}
	for _, itemID := range s.itemOrder {
		if item, ok := s.items[itemID]; ok && item.CartID == id {
			c.LineItems = append(c.LineItems, item)
		}
	}
	return &c, nil
}

type memCarts struct{ s *memStore }

func (r *memCarts) Create(_ context.Context, c *Cart) error {
	h := *c
	h.LineItems = nil
	r.s.carts[c.ID] = h
	return nil
}

func (r *memCarts) FindByID(_ context.Context, id string) (*Cart, error) {
	return r.s.load(id)
}

func (r *memCarts) LockByID(_ context.Context, id string) (*Cart, error) {
	r.s.locks++
	return r.s.load(id)
}

func (r *memCarts) Update(_ context.Context, c *Cart) error {
	if _, ok := r.s.carts[c.ID]; !ok {
		return ErrCartNotFound
	}
	c.Version++
	h := *c
	h.LineItems = nil
	r.s.carts[c.ID] = h
	return nil
}

func (r *memCarts) Delete(ctx context.Context, id string) error {
	if err := (&memItems{r.s}).DeleteByCartID(ctx, id); err != nil {
		return err
	}
	delete(r.s.carts, id)
	return nil
}

func (r *memCarts) ListByCustomer(_ context.Context, customerID string) ([]*Cart, error) {
	var out []*Cart
	for id, h := range r.s.carts {
		if h.CustomerID == customerID {
			c, _ := r.s.load(id)
			out = append(out, c)
		}
	}
	return out, nil
}

type memItems struct{ s *memStore }

func (r *memItems) Create(_ context.Context, item *LineItem) error {
	r.s.items[item.ID] = *item
	r.s.itemOrder = append(r.s.itemOrder, item.ID)
	return nil
}

func (r *memItems) Update(_ context.Context, item *LineItem) error {
	if _, ok := r.s.items[item.ID]; !ok {
		return ErrLineItemNotFound
	}
	r.s.items[item.ID] = *item
	return nil
}

func (r *memItems) Delete(_ context.Context, id string) error {
	delete(r.s.items, id)
	return nil
}

func (r *memItems) DeleteByCartID(_ context.Context, cartID string) error {
	for id, item := range r.s.items {
		if item.CartID == cartID {
			delete(r.s.items, id)
		}
	}
	return nil
}

type memBooks struct{ s *memStore }

func (r *memBooks) FindByID(_ context.Context, id uint) (*book.Book, error) {
	b, ok := r.s.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	cp := *b
	return &cp, nil
}

type memStock struct{ s *memStore }

func (r *memStock) Available(_ context.Context, bookID uint) (int, error) {
	return r.s.stock[bookID], nil
}
