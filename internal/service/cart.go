package service

import (
	"context"
	"errors"

	"github.com/niranjan1960/banos-dessert/internal/model"
	"github.com/niranjan1960/banos-dessert/internal/store"
)

// ProductFinder resolves a product id to the fields a cart line copies.
type ProductFinder interface {
	FindProduct(ctx context.Context, id string) (model.CartProduct, error)
}

type CartService interface {
	Get(ctx context.Context, sid string) (model.Cart, error)
	Add(ctx context.Context, sid, productID string) (model.Cart, error)
	UpdateQuantity(ctx context.Context, sid, productID string, qty int) (model.Cart, error)
	Remove(ctx context.Context, sid, productID string) (model.Cart, error)
	Clear(ctx context.Context, sid string) (model.Cart, error)
}

type cartService struct {
	carts    *store.Repository[model.Cart]
	products ProductFinder
	locks    *KeyedMutex
}

func NewCartService(s store.Store, products ProductFinder, locks *KeyedMutex) CartService {
	return &cartService{
		carts:    store.NewRepository[model.Cart](s, prefixCart),
		products: products,
		locks:    locks,
	}
}

func (s *cartService) Get(ctx context.Context, sid string) (model.Cart, error) {
	return loadCart(ctx, s.carts, sid)
}

func (s *cartService) Add(ctx context.Context, sid, productID string) (model.Cart, error) {
	p, err := s.products.FindProduct(ctx, productID)
	if err != nil {
		return model.Cart{}, err
	}
	return s.mutate(ctx, sid, func(c *model.Cart) { c.Add(p) })
}

func (s *cartService) UpdateQuantity(ctx context.Context, sid, productID string, qty int) (model.Cart, error) {
	return s.mutate(ctx, sid, func(c *model.Cart) { c.UpdateQuantity(productID, qty) })
}

func (s *cartService) Remove(ctx context.Context, sid, productID string) (model.Cart, error) {
	return s.mutate(ctx, sid, func(c *model.Cart) { c.Remove(productID) })
}

func (s *cartService) Clear(ctx context.Context, sid string) (model.Cart, error) {
	return s.mutate(ctx, sid, func(c *model.Cart) { c.Clear() })
}

// mutate applies fn under the session lock and persists the whole cart.
func (s *cartService) mutate(ctx context.Context, sid string, fn func(*model.Cart)) (model.Cart, error) {
	unlock := s.locks.Lock(sid)
	defer unlock()

	c, err := loadCart(ctx, s.carts, sid)
	if err != nil {
		return model.Cart{}, err
	}
	fn(&c)
	if err := s.carts.Put(ctx, sid, c); err != nil {
		return model.Cart{}, storeErr("save cart", err)
	}
	return c, nil
}

func loadCart(ctx context.Context, carts *store.Repository[model.Cart], sid string) (model.Cart, error) {
	c, err := carts.Get(ctx, sid)
	if errors.Is(err, store.ErrNotFound) {
		return model.Cart{}, nil
	}
	if err != nil {
		return model.Cart{}, storeErr("load cart", err)
	}
	return c, nil
}
