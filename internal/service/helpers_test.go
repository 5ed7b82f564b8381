package service

import (
	"context"
	"sync"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/niranjan1960/banos-dessert/internal/model"
	"github.com/niranjan1960/banos-dessert/internal/store"
	"github.com/niranjan1960/banos-dessert/pkg/logger"
)

type sentMail struct{ to, subject, body string }

type fakeEmail struct {
	mu   sync.Mutex
	sent []sentMail
	// release, when set, holds every Send until it is closed.
	release chan struct{}
}

func newFakeEmail() *fakeEmail { return &fakeEmail{} }

func (f *fakeEmail) Send(to, subject, body string) error {
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{to, subject, body})
	return nil
}

func (f *fakeEmail) all() []sentMail {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMail(nil), f.sent...)
}

type recorder struct {
	mu     sync.Mutex
	events []model.OrderEvent
}

func (r *recorder) Publish(e model.OrderEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) types() []model.OrderEventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.OrderEventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	store   store.Store
	auth    AuthService
	content ContentService
	catalog CatalogService
	cart    CartService
	orders  OrderService
	email   *fakeEmail
	events  *recorder
}

func newFixture(t *testing.T, policy StatusPolicy) *fixture {
	t.Helper()
	s := store.NewMemory()
	log := logger.Discard()

	auth, err := NewAuthService(s, bcrypt.MinCost, log)
	if err != nil {
		t.Fatalf("auth: %v", err)
	}
	locks := NewKeyedMutex()
	content := NewContentService(s)
	catalog := NewCatalogService(s, content, log)
	email := newFakeEmail()
	events := &recorder{}

	return &fixture{
		store:   s,
		auth:    auth,
		content: content,
		catalog: catalog,
		cart:    NewCartService(s, catalog, locks),
		orders: NewOrderService(s, locks, OrderOptions{
			Policy: policy,
			Email:  email,
			Events: events,
			Log:    log,
		}),
		email:  email,
		events: events,
	}
}

func (f *fixture) signIn(t *testing.T, sid, email string) model.User {
	t.Helper()
	u, err := f.auth.Signup(context.Background(), sid, SignupInput{Name: "Sarah Ahmed", Email: email, Password: "secret1"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	return u
}

var validDelivery = model.DeliveryInfo{
	FullName: "Sarah Ahmed",
	Phone:    "(555) 123-4567",
	Address:  "123 Sweet Lane",
	City:     "Flavor Town",
	ZipCode:  "12345",
}
