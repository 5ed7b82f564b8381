package service

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"

	"github.com/niranjan1960/banos-dessert/internal/model"
	"github.com/niranjan1960/banos-dessert/internal/store"
)

func TestContentSeedsDefaultsOnce(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	svc := NewContentService(s)

	c, err := svc.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if c.SiteSettings.BusinessName != "Bano's Sweet Delights" || len(c.Desserts) != 3 || len(c.ServingIdeas) != 4 || len(c.Testimonials) != 5 {
		t.Fatalf("unexpected default document: %+v", c.SiteSettings)
	}
	if _, err := s.Get(ctx, "cms-content"); err != nil {
		t.Fatalf("default document not persisted: %v", err)
	}
}

func TestReplaceSection(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	svc := NewContentService(s)

	hero := `{"title":"Eid Specials","subtitle":"Order early","ctaText":"Shop","backgroundImage":"eid.jpg"}`
	c, err := svc.ReplaceSection(ctx, model.SectionHero, json.RawMessage(hero))
	if err != nil {
		t.Fatal(err)
	}
	if c.Hero.Title != "Eid Specials" || c.About.ChefName != "Chef Bano Ahmad" {
		t.Fatalf("section replace touched other sections: %+v", c)
	}

	t.Run("no partial merge", func(t *testing.T) {
		c, err := svc.ReplaceSection(ctx, model.SectionHero, json.RawMessage(`{"title":"Only title"}`))
		if err != nil {
			t.Fatal(err)
		}
		if c.Hero.Subtitle != "" || c.Hero.CTAText != "" {
			t.Fatalf("fields from the previous hero survived: %+v", c.Hero)
		}
	})

	t.Run("unknown section", func(t *testing.T) {
		if _, err := svc.ReplaceSection(ctx, "footer", json.RawMessage(`{}`)); !IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("wrong shape", func(t *testing.T) {
		if _, err := svc.ReplaceSection(ctx, model.SectionTestimonials, json.RawMessage(`{"id":"1"}`)); !IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("reload returns identical document", func(t *testing.T) {
		before, _ := svc.Get(ctx)
		after, err := NewContentService(s).Get(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(before, after) {
			t.Fatalf("reloaded document differs")
		}
	})
}

func TestReplaceDesserts(t *testing.T) {
	ctx := context.Background()
	svc := NewContentService(store.NewMemory())

	list := []model.Dessert{{ID: "9", Name: "Gulab Jamun", Price: model.Money("6.5")}}
	c, err := svc.ReplaceDesserts(ctx, list)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Desserts) != 1 || c.Desserts[0].Name != "Gulab Jamun" {
		t.Fatalf("unexpected desserts: %+v", c.Desserts)
	}

	dup := []model.Dessert{{ID: "1", Name: "A"}, {ID: "1", Name: "B"}}
	if _, err := svc.ReplaceDesserts(ctx, dup); !IsValidation(err) {
		t.Fatalf("duplicate ids should be rejected, got %v", err)
	}

	c, err = svc.ReplaceSection(ctx, model.SectionDesserts, json.RawMessage(`[]`))
	if err != nil {
		t.Fatal(err)
	}
	if c.Desserts == nil || len(c.Desserts) != 0 {
		t.Fatalf("expected empty catalog, got %+v", c.Desserts)
	}
}
