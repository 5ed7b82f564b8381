package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// Statuses lists every status in lifecycle order.
var Statuses = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
	StatusReady,
	StatusDelivered,
	StatusCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// next is the forward edge of the fulfilment chain.
var next = map[OrderStatus]OrderStatus{
	StatusPending:   StatusConfirmed,
	StatusConfirmed: StatusPreparing,
	StatusPreparing: StatusReady,
	StatusReady:     StatusDelivered,
}

// CanAdvanceTo reports whether to is one step forward along
// pending → confirmed → preparing → ready → delivered, or a cancellation
// of a non-terminal order.
func (s OrderStatus) CanAdvanceTo(to OrderStatus) bool {
	if s.Terminal() {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	return next[s] == to
}

type DeliveryInfo struct {
	FullName            string `json:"fullName"`
	Phone               string `json:"phone"`
	Address             string `json:"address"`
	City                string `json:"city"`
	ZipCode             string `json:"zipCode"`
	SpecialInstructions string `json:"specialInstructions,omitempty"`
}

type Order struct {
	ID           string          `json:"id"`
	CustomerID   string          `json:"customerId,omitempty"`
	Items        []CartLine      `json:"items"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	DeliveryFee  decimal.Decimal `json:"deliveryFee"`
	Total        decimal.Decimal `json:"total"`
	Status       OrderStatus     `json:"status"`
	Date         time.Time       `json:"date"`
	DeliveryInfo DeliveryInfo    `json:"deliveryInfo"`
	AdminNotes   string          `json:"adminNotes,omitempty"`
	UpdatedAt    time.Time       `json:"updatedAt"`
	Version      int             `json:"version"`
}

// Matches is the admin free-text search: id, customer name and item
// names compare case-insensitively, phone by plain substring.
func (o Order) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(o.ID), q) ||
		strings.Contains(strings.ToLower(o.DeliveryInfo.FullName), q) ||
		strings.Contains(o.DeliveryInfo.Phone, query) {
		return true
	}
	for _, it := range o.Items {
		if strings.Contains(strings.ToLower(it.Name), q) {
			return true
		}
	}
	return false
}

type OrderEventType string

const (
	EventOrderCreated OrderEventType = "order.created"
	EventOrderStatus  OrderEventType = "order.status"
	EventOrderNotes   OrderEventType = "order.notes"
)

type OrderEvent struct {
	Type  OrderEventType `json:"type"`
	Order Order          `json:"order"`
	At    time.Time      `json:"at"`
}
