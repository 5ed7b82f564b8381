package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the backend catalog record. Its wire format is snake_case.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	PrepTime    string          `json:"prep_time,omitempty"`
	Serves      string          `json:"serves,omitempty"`
	Category    string          `json:"category,omitempty"`
	IsPopular   bool            `json:"is_popular"`
	Rating      float64         `json:"rating,omitempty"`
	ReviewCount int             `json:"review_count,omitempty"`
	Allergens   []string        `json:"allergens,omitempty"`
	Ingredients []string        `json:"ingredients,omitempty"`
	IsActive    *bool           `json:"is_active,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (p Product) Active() bool { return p.IsActive == nil || *p.IsActive }

func (p Product) CartProduct() CartProduct {
	return CartProduct{ID: p.ID, Name: p.Name, Price: p.Price, Image: p.Image}
}

type ServingIdea struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle,omitempty"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Occasions   []string  `json:"occasions,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	Color       string    `json:"color,omitempty"`
	IsActive    *bool     `json:"is_active,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (s ServingIdea) Active() bool { return s.IsActive == nil || *s.IsActive }

type OpeningHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// SiteSettings is the backend singleton stored under "site_settings".
type SiteSettings struct {
	ID                   string                  `json:"id"`
	SiteName             string                  `json:"site_name"`
	Phone                string                  `json:"phone"`
	WhatsApp             string                  `json:"whatsapp"`
	Email                string                  `json:"email"`
	DeliveryArea         string                  `json:"delivery_area"`
	DeliveryRadius       string                  `json:"delivery_radius"`
	MinOrderFreeDelivery decimal.Decimal         `json:"min_order_free_delivery"`
	AdvanceNoticeHours   int                     `json:"advance_notice_hours"`
	BusinessHours        map[string]OpeningHours `json:"business_hours"`
	HeroTitle            string                  `json:"hero_title"`
	HeroSubtitle         string                  `json:"hero_subtitle"`
	HeroImage            string                  `json:"hero_image"`
	AboutTitle           string                  `json:"about_title"`
	AboutDescription     string                  `json:"about_description"`
	AboutImage           string                  `json:"about_image"`
	UpdatedAt            time.Time               `json:"updated_at"`
}
