// Package wishitem holds the wish-list item model and the list utilities
// (sorting, filtering, display formatting) used by the item pages.
package wishitem

import (
	"time"

	"github.com/google/uuid"
)

// Priority of a wish item.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMiddle Priority = "middle"
	PriorityLow    Priority = "low"
)

// Status of a wish item.
type Status string

const (
	StatusUnpurchased Status = "unpurchased"
	StatusPurchased   Status = "purchased"
)

// Currency of a wish item's price.
type Currency string

const (
	CurrencyJPY Currency = "JPY"
	CurrencyUSD Currency = "USD"
)

// Item is one entry on a user's wish list. ImagePath is the object-storage
// path of the product image; turning it into a displayable URL is the
// signed-URL cache's job.
type Item struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	Name             string     `json:"name"`
	Description      string     `json:"description,omitempty"`
	ProductURL       string     `json:"product_url,omitempty"`
	ImagePath        string     `json:"image_path,omitempty"`
	Price            *float64   `json:"price,omitempty"`
	Currency         Currency   `json:"currency,omitempty"`
	Priority         Priority   `json:"priority"`
	Status           Status     `json:"status"`
	PurchaseDate     *time.Time `json:"purchase_date,omitempty"`
	PurchasePrice    *float64   `json:"purchase_price,omitempty"`
	PurchaseLocation string     `json:"purchase_location,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// New creates an unpurchased item for the user with defaults filled in.
func New(userID, name string) *Item {
	now := time.Now()
	return &Item{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Currency:  CurrencyJPY,
		Priority:  PriorityMiddle,
		Status:    StatusUnpurchased,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// MarkPurchased transitions the item to purchased, recording when and for
// how much.
func (i *Item) MarkPurchased(date time.Time, price *float64, location string) {
	i.Status = StatusPurchased
	i.PurchaseDate = &date
	i.PurchasePrice = price
	i.PurchaseLocation = location
	i.UpdatedAt = time.Now()
}

// MarkUnpurchased reverts a purchase, clearing the purchase details.
func (i *Item) MarkUnpurchased() {
	i.Status = StatusUnpurchased
	i.PurchaseDate = nil
	i.PurchasePrice = nil
	i.PurchaseLocation = ""
	i.UpdatedAt = time.Now()
}
