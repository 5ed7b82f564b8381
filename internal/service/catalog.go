package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/niranjan1960/banos-dessert/internal/model"
	"github.com/niranjan1960/banos-dessert/internal/store"
)

// CatalogService serves the backend product, serving idea and settings
// records. Updates are shallow merges of a JSON patch over the stored
// record.
type CatalogService interface {
	ProductFinder

	ListProducts(ctx context.Context, activeOnly bool) ([]model.Product, error)
	CreateProduct(ctx context.Context, raw json.RawMessage) (model.Product, error)
	UpdateProduct(ctx context.Context, id string, patch json.RawMessage) (model.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	ListServingIdeas(ctx context.Context, activeOnly bool) ([]model.ServingIdea, error)
	CreateServingIdea(ctx context.Context, raw json.RawMessage) (model.ServingIdea, error)
	UpdateServingIdea(ctx context.Context, id string, patch json.RawMessage) (model.ServingIdea, error)
	DeleteServingIdea(ctx context.Context, id string) error

	// Settings seeds defaults on first read.
	Settings(ctx context.Context) (model.SiteSettings, error)
	// PublicSettings returns nil when settings were never written.
	PublicSettings(ctx context.Context) (*model.SiteSettings, error)
	UpdateSettings(ctx context.Context, patch json.RawMessage) (model.SiteSettings, error)

	// Initialize seeds default products and serving ideas when no
	// product exists and reports whether it did.
	Initialize(ctx context.Context) (bool, error)
}

type catalogService struct {
	products *store.Repository[model.Product]
	ideas    *store.Repository[model.ServingIdea]
	settings *store.Document[model.SiteSettings]
	content  ContentService

	mu  sync.Mutex
	log *slog.Logger
	now func() time.Time
}

// NewCatalogService falls back to the content document's desserts when
// a product id is not in the backend catalog.
func NewCatalogService(s store.Store, content ContentService, log *slog.Logger) CatalogService {
	if log == nil {
		log = slog.Default()
	}
	return &catalogService{
		products: store.NewRepository[model.Product](s, prefixProduct),
		ideas:    store.NewRepository[model.ServingIdea](s, prefixServingIdea),
		settings: store.NewDocument[model.SiteSettings](s, keySettings),
		content:  content,
		log:      log,
		now:      time.Now,
	}
}

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// decodePatch checks that raw is a JSON object and returns its top-level
// field names.
func decodePatch(raw json.RawMessage) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return nil, invalid("body", "request body must be a JSON object")
	}
	return fields, nil
}

func applyPatch(dst any, raw json.RawMessage) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return invalid("body", err.Error())
	}
	return nil
}

func validateProduct(p model.Product) error {
	v := &ValidationError{}
	if strings.TrimSpace(p.Name) == "" {
		v.Add("name", "name is required")
	}
	if p.Price.IsNegative() {
		v.Add("price", "price must not be negative")
	}
	return v.Err()
}

func (s *catalogService) ListProducts(ctx context.Context, activeOnly bool) ([]model.Product, error) {
	all, err := s.products.List(ctx)
	if err != nil {
		return nil, storeErr("list products", err)
	}
	if !activeOnly {
		return all, nil
	}
	out := make([]model.Product, 0, len(all))
	for _, p := range all {
		if p.Active() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *catalogService) CreateProduct(ctx context.Context, raw json.RawMessage) (model.Product, error) {
	if _, err := decodePatch(raw); err != nil {
		return model.Product{}, err
	}
	var p model.Product
	if err := applyPatch(&p, raw); err != nil {
		return model.Product{}, err
	}
	if err := validateProduct(p); err != nil {
		return model.Product{}, err
	}
	id, err := newID()
	if err != nil {
		return model.Product{}, err
	}
	now := s.now().UTC()
	p.ID, p.CreatedAt, p.UpdatedAt = id, now, now
	if err := s.products.Put(ctx, id, p); err != nil {
		return model.Product{}, storeErr("save product", err)
	}
	return p, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, id string, patch json.RawMessage) (model.Product, error) {
	if _, err := decodePatch(patch); err != nil {
		return model.Product{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.products.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return model.Product{}, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Product{}, storeErr("load product", err)
	}
	created := p.CreatedAt
	if err := applyPatch(&p, patch); err != nil {
		return model.Product{}, err
	}
	if err := validateProduct(p); err != nil {
		return model.Product{}, err
	}
	p.ID, p.CreatedAt = id, created
	p.UpdatedAt = s.now().UTC()
	if err := s.products.Put(ctx, id, p); err != nil {
		return model.Product{}, storeErr("save product", err)
	}
	return p, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return storeErr("delete product", err)
	}
	return nil
}

func (s *catalogService) ListServingIdeas(ctx context.Context, activeOnly bool) ([]model.ServingIdea, error) {
	all, err := s.ideas.List(ctx)
	if err != nil {
		return nil, storeErr("list serving ideas", err)
	}
	if !activeOnly {
		return all, nil
	}
	out := make([]model.ServingIdea, 0, len(all))
	for _, si := range all {
		if si.Active() {
			out = append(out, si)
		}
	}
	return out, nil
}

func (s *catalogService) CreateServingIdea(ctx context.Context, raw json.RawMessage) (model.ServingIdea, error) {
	if _, err := decodePatch(raw); err != nil {
		return model.ServingIdea{}, err
	}
	var si model.ServingIdea
	if err := applyPatch(&si, raw); err != nil {
		return model.ServingIdea{}, err
	}
	if strings.TrimSpace(si.Title) == "" {
		return model.ServingIdea{}, invalid("title", "title is required")
	}
	id, err := newID()
	if err != nil {
		return model.ServingIdea{}, err
	}
	now := s.now().UTC()
	si.ID, si.CreatedAt, si.UpdatedAt = id, now, now
	if err := s.ideas.Put(ctx, id, si); err != nil {
		return model.ServingIdea{}, storeErr("save serving idea", err)
	}
	return si, nil
}

func (s *catalogService) UpdateServingIdea(ctx context.Context, id string, patch json.RawMessage) (model.ServingIdea, error) {
	if _, err := decodePatch(patch); err != nil {
		return model.ServingIdea{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	si, err := s.ideas.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return model.ServingIdea{}, fmt.Errorf("serving idea %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.ServingIdea{}, storeErr("load serving idea", err)
	}
	created := si.CreatedAt
	if err := applyPatch(&si, patch); err != nil {
		return model.ServingIdea{}, err
	}
	si.ID, si.CreatedAt = id, created
	si.UpdatedAt = s.now().UTC()
	if err := s.ideas.Put(ctx, id, si); err != nil {
		return model.ServingIdea{}, storeErr("save serving idea", err)
	}
	return si, nil
}

func (s *catalogService) DeleteServingIdea(ctx context.Context, id string) error {
	if err := s.ideas.Delete(ctx, id); err != nil {
		return storeErr("delete serving idea", err)
	}
	return nil
}

func (s *catalogService) Settings(ctx context.Context) (model.SiteSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadSettings(ctx)
}

func (s *catalogService) loadSettings(ctx context.Context) (model.SiteSettings, error) {
	st, found, err := s.settings.Load(ctx)
	if err != nil {
		return model.SiteSettings{}, storeErr("load settings", err)
	}
	if found {
		return st, nil
	}
	st = DefaultSettings(s.now().UTC())
	if err := s.settings.Save(ctx, st); err != nil {
		return model.SiteSettings{}, storeErr("seed settings", err)
	}
	return st, nil
}

func (s *catalogService) PublicSettings(ctx context.Context) (*model.SiteSettings, error) {
	st, found, err := s.settings.Load(ctx)
	if err != nil {
		return nil, storeErr("load settings", err)
	}
	if !found {
		return nil, nil
	}
	return &st, nil
}

func (s *catalogService) UpdateSettings(ctx context.Context, patch json.RawMessage) (model.SiteSettings, error) {
	fields, err := decodePatch(patch)
	if err != nil {
		return model.SiteSettings{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.loadSettings(ctx)
	if err != nil {
		return model.SiteSettings{}, err
	}
	// Unmarshal merges into an existing map; a patched business_hours
	// replaces the whole week instead.
	if _, ok := fields["business_hours"]; ok {
		st.BusinessHours = nil
	}
	if err := applyPatch(&st, patch); err != nil {
		return model.SiteSettings{}, err
	}
	st.UpdatedAt = s.now().UTC()
	if err := s.settings.Save(ctx, st); err != nil {
		return model.SiteSettings{}, storeErr("save settings", err)
	}
	return st, nil
}

func (s *catalogService) Initialize(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.products.List(ctx)
	if err != nil {
		return false, storeErr("list products", err)
	}
	if len(existing) > 0 {
		return false, nil
	}

	now := s.now().UTC()
	for _, p := range defaultProducts() {
		id, err := newID()
		if err != nil {
			return false, err
		}
		p.ID, p.CreatedAt, p.UpdatedAt = id, now, now
		if err := s.products.Put(ctx, id, p); err != nil {
			return false, storeErr("seed product", err)
		}
	}
	for _, si := range defaultServingIdeas() {
		id, err := newID()
		if err != nil {
			return false, err
		}
		si.ID, si.CreatedAt, si.UpdatedAt = id, now, now
		if err := s.ideas.Put(ctx, id, si); err != nil {
			return false, storeErr("seed serving idea", err)
		}
	}
	s.log.Info("catalog initialized with defaults")
	return true, nil
}

// FindProduct looks in the backend catalog first, then in the content
// document. Inactive items are not found.
func (s *catalogService) FindProduct(ctx context.Context, id string) (model.CartProduct, error) {
	p, err := s.products.Get(ctx, id)
	switch {
	case err == nil:
		if !p.Active() {
			return model.CartProduct{}, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return p.CartProduct(), nil
	case !errors.Is(err, store.ErrNotFound):
		return model.CartProduct{}, storeErr("load product", err)
	}

	if s.content != nil {
		c, err := s.content.Get(ctx)
		if err != nil {
			return model.CartProduct{}, err
		}
		for _, d := range c.Desserts {
			if d.ID == id && d.Active() {
				return d.CartProduct(), nil
			}
		}
	}
	return model.CartProduct{}, fmt.Errorf("product %s: %w", id, ErrNotFound)
}
