package model

import "github.com/shopspring/decimal"

type Dessert struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Featured    bool            `json:"featured"`
	PrepTime    string          `json:"prepTime,omitempty"`
	Serves      string          `json:"serves,omitempty"`
	Category    string          `json:"category,omitempty"`
	IsPopular   *bool           `json:"isPopular,omitempty"`
	Rating      *float64        `json:"rating,omitempty"`
	ReviewCount *int            `json:"reviewCount,omitempty"`
	Allergens   []string        `json:"allergens,omitempty"`
	Ingredients []string        `json:"ingredients,omitempty"`
	IsActive    *bool           `json:"isActive,omitempty"`
}

// Active treats a missing flag as active.
func (d Dessert) Active() bool { return d.IsActive == nil || *d.IsActive }

func (d Dessert) CartProduct() CartProduct {
	return CartProduct{ID: d.ID, Name: d.Name, Price: d.Price, Image: d.Image}
}

type Hero struct {
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle"`
	CTAText         string `json:"ctaText"`
	BackgroundImage string `json:"backgroundImage"`
}

type About struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	ChefName      string   `json:"chefName"`
	ChefImage     string   `json:"chefImage"`
	Experience    string   `json:"experience"`
	Certification string   `json:"certification"`
	Specialties   []string `json:"specialties"`
}

type SocialMedia struct {
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	WhatsApp  string `json:"whatsapp"`
}

type BrandSettings struct {
	BusinessName string      `json:"businessName"`
	Phone        string      `json:"phone"`
	Email        string      `json:"email"`
	Address      string      `json:"address"`
	DeliveryInfo string      `json:"deliveryInfo"`
	SocialMedia  SocialMedia `json:"socialMedia"`
}

type Occasion struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Occasion    string `json:"occasion"`
}

type Testimonial struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Review   string `json:"review"`
	Rating   int    `json:"rating"`
	Occasion string `json:"occasion,omitempty"`
	Image    string `json:"image,omitempty"`
}

// Content is the single CMS document behind the storefront pages.
type Content struct {
	Hero         Hero          `json:"hero"`
	About        About         `json:"about"`
	SiteSettings BrandSettings `json:"siteSettings"`
	Desserts     []Dessert     `json:"desserts"`
	ServingIdeas []Occasion    `json:"servingIdeas"`
	Testimonials []Testimonial `json:"testimonials"`
}

// Section names accepted by a section replace.
const (
	SectionHero         = "hero"
	SectionAbout        = "about"
	SectionSiteSettings = "siteSettings"
	SectionDesserts     = "desserts"
	SectionServingIdeas = "servingIdeas"
	SectionTestimonials = "testimonials"
)
