package models

import "fmt"

// ItemImage is a single picture attached to a listing.
type ItemImage struct {
	ID       int64  `json:"id"`
	ImageURL string `json:"image_url"`
}

// Seller is the public part of the seller profile embedded in an item.
type Seller struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Avatar   string  `json:"avatar,omitempty"`
	Rating   float64 `json:"rating,omitempty"`
	Location string  `json:"location,omitempty"`
}

// Item is a marketplace listing. Price is numeric and tagged with the
// currency reported by the server; the client never computes fees.
type Item struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Price       float64     `json:"price"`
	Currency    string      `json:"currency,omitempty"`
	Condition   string      `json:"condition,omitempty"`
	Category    string      `json:"category,omitempty"`
	Subcategory string      `json:"subcategory,omitempty"`
	Brand       string      `json:"brand,omitempty"`
	Size        string      `json:"size,omitempty"`
	Color       string      `json:"color,omitempty"`
	Images      []ItemImage `json:"images,omitempty"`
	Seller      *Seller     `json:"seller,omitempty"`
	IsSold      bool        `json:"is_sold,omitempty"`
	Views       int64       `json:"views,omitempty"`
	Likes       int64       `json:"likes,omitempty"`
	CreatedAt   string      `json:"created_at,omitempty"`
	UpdatedAt   string      `json:"updated_at,omitempty"`
}

// PriceLabel formats the price with its currency tag.
func (i Item) PriceLabel() string {
	if i.Currency == "" {
		return fmt.Sprintf("%.2f", i.Price)
	}
	return fmt.Sprintf("%.2f %s", i.Price, i.Currency)
}

func (i Item) String() string {
	s := fmt.Sprintf("#%d %s | %s", i.ID, i.Title, i.PriceLabel())
	if i.Brand != "" {
		s += " | " + i.Brand
	}
	if i.Size != "" {
		s += " | " + i.Size
	}
	if i.Seller != nil && i.Seller.Location != "" {
		s += " | " + i.Seller.Location
	}
	return s
}

// ItemCollection is the body of the listing endpoints.
type ItemCollection struct {
	Items []Item `json:"items"`
	Total int    `json:"total,omitempty"`
}

// Category is one entry of the category catalogue.
type Category struct {
	ID    int64  `json:"id,omitempty"`
	Name  string `json:"name"`
	Count int    `json:"count,omitempty"`
}
