package service

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/niranjan1960/banos-dessert/internal/model"
)

type Pricing struct {
	DeliveryFee   decimal.Decimal
	FreeThreshold decimal.Decimal
}

func DefaultPricing() Pricing {
	return Pricing{
		DeliveryFee:   model.Money("8.99"),
		FreeThreshold: model.Money("50"),
	}
}

// Fee is zero once subtotal reaches the threshold, inclusive.
func (p Pricing) Fee(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(p.FreeThreshold) {
		return decimal.Zero
	}
	return p.DeliveryFee
}

// Price fills the money fields of o from its items.
func (p Pricing) Price(o *model.Order) {
	o.Subtotal = model.Cart{Lines: o.Items}.Subtotal()
	o.DeliveryFee = p.Fee(o.Subtotal)
	o.Total = o.Subtotal.Add(o.DeliveryFee)
}

var phonePattern = regexp.MustCompile(`^\+?[0-9\s\-()]{10,}$`)

// ValidateDelivery reports every missing or malformed field at once.
func ValidateDelivery(d model.DeliveryInfo) error {
	v := &ValidationError{}
	if strings.TrimSpace(d.FullName) == "" {
		v.Add("fullName", "Please enter your full name")
	}
	switch phone := strings.Join(strings.Fields(d.Phone), ""); {
	case phone == "":
		v.Add("phone", "Please enter your phone number")
	case !phonePattern.MatchString(phone):
		v.Add("phone", "Please enter a valid phone number")
	}
	if strings.TrimSpace(d.Address) == "" {
		v.Add("address", "Please enter your delivery address")
	}
	if strings.TrimSpace(d.City) == "" {
		v.Add("city", "Please enter your city")
	}
	if strings.TrimSpace(d.ZipCode) == "" {
		v.Add("zipCode", "Please enter your ZIP code")
	}
	return v.Err()
}

func trimDelivery(d model.DeliveryInfo) model.DeliveryInfo {
	return model.DeliveryInfo{
		FullName:            strings.TrimSpace(d.FullName),
		Phone:               strings.TrimSpace(d.Phone),
		Address:             strings.TrimSpace(d.Address),
		City:                strings.TrimSpace(d.City),
		ZipCode:             strings.TrimSpace(d.ZipCode),
		SpecialInstructions: strings.TrimSpace(d.SpecialInstructions),
	}
}
