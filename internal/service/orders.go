package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/niranjan1960/banos-dessert/internal/model"
	"github.com/niranjan1960/banos-dessert/internal/store"
)

// StatusPolicy decides which status changes an admin may make.
type StatusPolicy string

const (
	// PolicyPermissive lets any valid status overwrite any other.
	PolicyPermissive StatusPolicy = "permissive"
	// PolicyStrict allows one step forward, or cancelling a non-terminal order.
	PolicyStrict StatusPolicy = "strict"
)

func ParseStatusPolicy(s string) (StatusPolicy, error) {
	switch p := StatusPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicyPermissive, nil
	case PolicyPermissive, PolicyStrict:
		return p, nil
	default:
		return "", fmt.Errorf("unknown order status policy %q", s)
	}
}

func (p StatusPolicy) check(from, to model.OrderStatus) error {
	if p == PolicyStrict && !from.CanAdvanceTo(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

type OrderFilter struct {
	CustomerID string
	Query      string
	Status     model.OrderStatus
}

// Publisher receives order events after they are persisted.
type Publisher interface {
	Publish(model.OrderEvent)
}

type OrderService interface {
	PlaceOrder(ctx context.Context, sid string, info model.DeliveryInfo) (model.Order, error)
	// Submit stores an order built elsewhere; totals are recomputed and
	// the status forced to pending.
	Submit(ctx context.Context, in model.Order) (model.Order, error)
	List(ctx context.Context, f OrderFilter) ([]model.Order, error)
	Get(ctx context.Context, id string) (model.Order, error)
	// SetStatus and SetAdminNotes skip the version check when version is 0.
	SetStatus(ctx context.Context, id string, status model.OrderStatus, version int) (model.Order, error)
	SetAdminNotes(ctx context.Context, id, notes string, version int) (model.Order, error)
	CountByStatus(ctx context.Context) (map[model.OrderStatus]int, error)
	// Close waits for confirmation emails still being sent, up to ctx.
	Close(ctx context.Context) error
}

type OrderOptions struct {
	Pricing Pricing
	Policy  StatusPolicy
	Email   EmailService
	Events  Publisher
	Log     *slog.Logger
}

type orderService struct {
	orders   *store.Repository[model.Order]
	carts    *store.Repository[model.Cart]
	sessions *store.Repository[model.Session]
	locks    *KeyedMutex

	// mu is the single writer for order read-modify-write.
	mu      sync.Mutex
	pricing Pricing
	policy  StatusPolicy
	email   EmailService
	mail    sync.WaitGroup
	events  Publisher
	log     *slog.Logger
	now     func() time.Time
}

func NewOrderService(s store.Store, locks *KeyedMutex, opts OrderOptions) OrderService {
	if opts.Pricing.DeliveryFee.IsZero() && opts.Pricing.FreeThreshold.IsZero() {
		opts.Pricing = DefaultPricing()
	}
	if opts.Policy == "" {
		opts.Policy = PolicyPermissive
	}
	if opts.Email == nil {
		opts.Email = noopEmail{}
	}
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	return &orderService{
		orders:   store.NewRepository[model.Order](s, prefixOrder),
		carts:    store.NewRepository[model.Cart](s, prefixCart),
		sessions: store.NewRepository[model.Session](s, prefixSession),
		locks:    locks,
		pricing:  opts.Pricing,
		policy:   opts.Policy,
		email:    opts.Email,
		events:   opts.Events,
		log:      opts.Log,
		now:      time.Now,
	}
}

// newOrder assigns a time-ordered id so id order follows creation order.
func (s *orderService) newOrder(items []model.CartLine, info model.DeliveryInfo) (model.Order, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return model.Order{}, err
	}
	now := s.now().UTC()
	o := model.Order{
		ID:           id.String(),
		Items:        items,
		Status:       model.StatusPending,
		Date:         now,
		DeliveryInfo: info,
		UpdatedAt:    now,
		Version:      1,
	}
	s.pricing.Price(&o)
	return o, nil
}

func (s *orderService) Submit(ctx context.Context, in model.Order) (model.Order, error) {
	if len(in.Items) == 0 {
		return model.Order{}, ErrEmptyCart
	}
	v := &ValidationError{}
	for _, it := range in.Items {
		if it.Quantity < 1 {
			v.Add("items", fmt.Sprintf("quantity for %q must be at least 1", it.Name))
		}
		if it.UnitPrice.IsNegative() {
			v.Add("items", fmt.Sprintf("price for %q must not be negative", it.Name))
		}
	}
	if err := v.Err(); err != nil {
		return model.Order{}, err
	}
	if err := ValidateDelivery(in.DeliveryInfo); err != nil {
		return model.Order{}, err
	}

	items := make([]model.CartLine, len(in.Items))
	copy(items, in.Items)
	o, err := s.newOrder(items, trimDelivery(in.DeliveryInfo))
	if err != nil {
		return model.Order{}, err
	}
	o.CustomerID = in.CustomerID
	o.AdminNotes = in.AdminNotes
	if err := s.orders.Put(ctx, o.ID, o); err != nil {
		return model.Order{}, storeErr("save order", err)
	}
	s.publish(model.EventOrderCreated, o)
	return o, nil
}

// List sorts newest first; equal dates fall back to id, newest first.
func (s *orderService) List(ctx context.Context, f OrderFilter) ([]model.Order, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, invalid("status", fmt.Sprintf("unknown status %q", f.Status))
	}
	all, err := s.orders.List(ctx)
	if err != nil {
		return nil, storeErr("list orders", err)
	}
	out := make([]model.Order, 0, len(all))
	for _, o := range all {
		if f.CustomerID != "" && o.CustomerID != f.CustomerID {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if !o.Matches(f.Query) {
			continue
		}
		out = append(out, o)
	}
	slices.SortStableFunc(out, func(a, b model.Order) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})
	return out, nil
}

func (s *orderService) Get(ctx context.Context, id string) (model.Order, error) {
	o, err := s.orders.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return model.Order{}, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Order{}, storeErr("load order", err)
	}
	return o, nil
}

func (s *orderService) SetStatus(ctx context.Context, id string, status model.OrderStatus, version int) (model.Order, error) {
	if !status.Valid() {
		return model.Order{}, invalid("status", fmt.Sprintf("unknown status %q", status))
	}
	return s.update(ctx, id, version, model.EventOrderStatus, func(o *model.Order) (bool, error) {
		if o.Status == status {
			return false, nil
		}
		if err := s.policy.check(o.Status, status); err != nil {
			return false, err
		}
		o.Status = status
		return true, nil
	})
}

func (s *orderService) SetAdminNotes(ctx context.Context, id, notes string, version int) (model.Order, error) {
	return s.update(ctx, id, version, model.EventOrderNotes, func(o *model.Order) (bool, error) {
		if o.AdminNotes == notes {
			return false, nil
		}
		o.AdminNotes = notes
		return true, nil
	})
}

// update runs one read-modify-write under the writer lock. The stored
// version is re-read before writing so a change made by another process
// sharing the store surfaces as ErrConflict instead of a lost update.
func (s *orderService) update(ctx context.Context, id string, version int, event model.OrderEventType, fn func(*model.Order) (bool, error)) (model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, err := s.Get(ctx, id)
	if err != nil {
		return model.Order{}, err
	}
	if version != 0 && o.Version != version {
		return model.Order{}, ErrConflict
	}
	read := o.Version

	changed, err := fn(&o)
	if err != nil || !changed {
		return o, err
	}
	o.Version++
	o.UpdatedAt = s.now().UTC()

	cur, err := s.Get(ctx, id)
	if err != nil {
		return model.Order{}, err
	}
	if cur.Version != read {
		return model.Order{}, ErrConflict
	}
	if err := s.orders.Put(ctx, id, o); err != nil {
		return model.Order{}, storeErr("save order", err)
	}
	s.publish(event, o)
	return o, nil
}

func (s *orderService) CountByStatus(ctx context.Context) (map[model.OrderStatus]int, error) {
	all, err := s.orders.List(ctx)
	if err != nil {
		return nil, storeErr("list orders", err)
	}
	counts := make(map[model.OrderStatus]int, len(model.Statuses))
	for _, st := range model.Statuses {
		counts[st] = 0
	}
	for _, o := range all {
		counts[o.Status]++
	}
	return counts, nil
}

func (s *orderService) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.mail.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *orderService) publish(t model.OrderEventType, o model.Order) {
	if s.events == nil {
		return
	}
	s.events.Publish(model.OrderEvent{Type: t, Order: o, At: s.now().UTC()})
}
