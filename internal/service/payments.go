package service

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/niranjan1960/banos-dessert/internal/model"
	"github.com/niranjan1960/banos-dessert/internal/store"
)

type GatewayPatch struct {
	Enabled  *bool `json:"enabled"`
	TestMode *bool `json:"testMode"`
}

// PaymentService stores gateway configuration only; no payment is
// captured here.
type PaymentService interface {
	List(ctx context.Context) ([]model.PaymentGateway, error)
	Update(ctx context.Context, id string, p GatewayPatch) (model.PaymentGateway, error)
	// SetCredentials merges creds into the stored credentials. Only the
	// gateway's known fields are accepted.
	SetCredentials(ctx context.Context, id string, creds map[string]string) (model.PaymentGateway, error)
}

type paymentService struct {
	doc *store.Document[[]model.PaymentGateway]
	mu  sync.Mutex
}

func NewPaymentService(s store.Store) PaymentService {
	return &paymentService{doc: store.NewDocument[[]model.PaymentGateway](s, keyGateways)}
}

func (s *paymentService) List(ctx context.Context) ([]model.PaymentGateway, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *paymentService) load(ctx context.Context) ([]model.PaymentGateway, error) {
	gs, found, err := s.doc.Load(ctx)
	if err != nil {
		return nil, storeErr("load payment gateways", err)
	}
	if found {
		return gs, nil
	}
	gs = defaultGateways()
	if err := s.doc.Save(ctx, gs); err != nil {
		return nil, storeErr("seed payment gateways", err)
	}
	return gs, nil
}

func (s *paymentService) Update(ctx context.Context, id string, p GatewayPatch) (model.PaymentGateway, error) {
	return s.mutate(ctx, id, func(g *model.PaymentGateway) error {
		if p.Enabled != nil {
			g.Enabled = *p.Enabled
		}
		if p.TestMode != nil {
			g.TestMode = *p.TestMode
		}
		return nil
	})
}

func (s *paymentService) SetCredentials(ctx context.Context, id string, creds map[string]string) (model.PaymentGateway, error) {
	return s.mutate(ctx, id, func(g *model.PaymentGateway) error {
		known := model.RequiredCredentials[g.ID]
		v := &ValidationError{}
		for k := range creds {
			if !slices.Contains(known, k) {
				v.Add(k, fmt.Sprintf("%s does not take a %q credential", g.Name, k))
			}
		}
		if err := v.Err(); err != nil {
			return err
		}
		if g.Credentials == nil {
			g.Credentials = make(map[string]string, len(creds))
		}
		for k, val := range creds {
			g.Credentials[k] = val
		}
		return nil
	})
}

func (s *paymentService) mutate(ctx context.Context, id string, fn func(*model.PaymentGateway) error) (model.PaymentGateway, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gs, err := s.load(ctx)
	if err != nil {
		return model.PaymentGateway{}, err
	}
	i := slices.IndexFunc(gs, func(g model.PaymentGateway) bool { return g.ID == id })
	if i < 0 {
		return model.PaymentGateway{}, fmt.Errorf("payment gateway %s: %w", id, ErrNotFound)
	}
	if err := fn(&gs[i]); err != nil {
		return model.PaymentGateway{}, err
	}
	if err := s.doc.Save(ctx, gs); err != nil {
		return model.PaymentGateway{}, storeErr("save payment gateways", err)
	}
	return gs[i], nil
}
