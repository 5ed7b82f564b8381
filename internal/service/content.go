package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/niranjan1960/banos-dessert/internal/model"
	"github.com/niranjan1960/banos-dessert/internal/store"
)

// ContentService owns the CMS document. Every change rewrites the whole
// document.
type ContentService interface {
	Get(ctx context.Context) (model.Content, error)
	// ReplaceSection overwrites one top-level section with raw, which must
	// hold the complete new value.
	ReplaceSection(ctx context.Context, section string, raw json.RawMessage) (model.Content, error)
	ReplaceDesserts(ctx context.Context, desserts []model.Dessert) (model.Content, error)
}

type contentService struct {
	doc *store.Document[model.Content]
	mu  sync.Mutex
}

func NewContentService(s store.Store) ContentService {
	return &contentService{doc: store.NewDocument[model.Content](s, keyContent)}
}

func (s *contentService) Get(ctx context.Context) (model.Content, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// load seeds and persists the default document on first use.
func (s *contentService) load(ctx context.Context) (model.Content, error) {
	c, found, err := s.doc.Load(ctx)
	if err != nil {
		return model.Content{}, storeErr("load content", err)
	}
	if found {
		return c, nil
	}
	c = DefaultContent()
	if err := s.doc.Save(ctx, c); err != nil {
		return model.Content{}, storeErr("seed content", err)
	}
	return c, nil
}

func (s *contentService) ReplaceSection(ctx context.Context, section string, raw json.RawMessage) (model.Content, error) {
	if section == model.SectionDesserts {
		var ds []model.Dessert
		if err := decodeSection(section, raw, &ds); err != nil {
			return model.Content{}, err
		}
		return s.ReplaceDesserts(ctx, ds)
	}

	return s.mutate(ctx, func(c *model.Content) error {
		switch section {
		case model.SectionHero:
			var v model.Hero
			if err := decodeSection(section, raw, &v); err != nil {
				return err
			}
			c.Hero = v
		case model.SectionAbout:
			var v model.About
			if err := decodeSection(section, raw, &v); err != nil {
				return err
			}
			c.About = v
		case model.SectionSiteSettings:
			var v model.BrandSettings
			if err := decodeSection(section, raw, &v); err != nil {
				return err
			}
			c.SiteSettings = v
		case model.SectionServingIdeas:
			var v []model.Occasion
			if err := decodeSection(section, raw, &v); err != nil {
				return err
			}
			c.ServingIdeas = v
		case model.SectionTestimonials:
			var v []model.Testimonial
			if err := decodeSection(section, raw, &v); err != nil {
				return err
			}
			c.Testimonials = v
		default:
			return invalid("section", fmt.Sprintf("unknown content section %q", section))
		}
		return nil
	})
}

func (s *contentService) ReplaceDesserts(ctx context.Context, desserts []model.Dessert) (model.Content, error) {
	v := &ValidationError{}
	seen := make(map[string]bool, len(desserts))
	for i, d := range desserts {
		switch {
		case strings.TrimSpace(d.ID) == "":
			v.Add("desserts", fmt.Sprintf("dessert %d has no id", i))
		case seen[d.ID]:
			v.Add("desserts", fmt.Sprintf("duplicate dessert id %q", d.ID))
		}
		seen[d.ID] = true
		if d.Price.IsNegative() {
			v.Add("desserts", fmt.Sprintf("dessert %q has a negative price", d.ID))
		}
	}
	if err := v.Err(); err != nil {
		return model.Content{}, err
	}
	if desserts == nil {
		desserts = []model.Dessert{}
	}
	return s.mutate(ctx, func(c *model.Content) error {
		c.Desserts = desserts
		return nil
	})
}

func (s *contentService) mutate(ctx context.Context, fn func(*model.Content) error) (model.Content, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.load(ctx)
	if err != nil {
		return model.Content{}, err
	}
	if err := fn(&c); err != nil {
		return model.Content{}, err
	}
	if err := s.doc.Save(ctx, c); err != nil {
		return model.Content{}, storeErr("save content", err)
	}
	return c, nil
}

func decodeSection(section string, raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return invalid(section, "section value is required")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return invalid(section, fmt.Sprintf("invalid %s: %v", section, err))
	}
	return nil
}
