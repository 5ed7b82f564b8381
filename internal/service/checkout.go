package service

import (
	"context"
	"log/slog"

	"github.com/niranjan1960/banos-dessert/internal/model"
)

// PlaceOrder turns the session's cart into a pending order. Checks run
// in a fixed order: signed in, delivery details, non-empty cart.
func (s *orderService) PlaceOrder(ctx context.Context, sid string, info model.DeliveryInfo) (model.Order, error) {
	unlock := s.locks.Lock(sid)
	defer unlock()

	u, err := currentUser(ctx, s.sessions, sid)
	if err != nil {
		return model.Order{}, err
	}
	if u == nil {
		return model.Order{}, ErrUnauthenticated
	}
	if err := ValidateDelivery(info); err != nil {
		return model.Order{}, err
	}
	cart, err := loadCart(ctx, s.carts, sid)
	if err != nil {
		return model.Order{}, err
	}
	if cart.Empty() {
		return model.Order{}, ErrEmptyCart
	}

	o, err := s.newOrder(cart.Snapshot(), trimDelivery(info))
	if err != nil {
		return model.Order{}, err
	}
	o.CustomerID = u.ID
	if err := s.orders.Put(ctx, o.ID, o); err != nil {
		return model.Order{}, storeErr("save order", err)
	}

	// The order stands even if the cart cannot be cleared.
	if err := s.carts.Put(ctx, sid, model.Cart{}); err != nil {
		s.log.Warn("clear cart after checkout", slog.String("order_id", o.ID), slog.Any("err", err))
	}

	s.log.Info("order placed",
		slog.String("order_id", o.ID),
		slog.String("customer_id", o.CustomerID),
		slog.String("total", o.Total.StringFixed(2)))
	s.publish(model.EventOrderCreated, o)
	s.mail.Add(1)
	go func(u model.User) {
		defer s.mail.Done()
		s.sendConfirmation(o, u)
	}(*u)
	return o, nil
}

func (s *orderService) sendConfirmation(o model.Order, u model.User) {
	subject, body := orderConfirmation(o, u)
	if err := s.email.Send(u.Email, subject, body); err != nil {
		s.log.Warn("order confirmation email failed", slog.String("order_id", o.ID), slog.Any("err", err))
	}
}
