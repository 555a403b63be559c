package carclient

import "time"

// Seller is the displayed owner identity of a listing.
type Seller struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	AvatarURL string  `json:"avatar_url"`
	Rating    float64 `json:"rating"`
	Verified  bool    `json:"verified"`
}

// Car is the client-side view of one listing, as served by the cars
// API. Video references are normalized to playable URLs and a missing
// seller is filled in before the struct reaches any consumer.
type Car struct {
	ID            string    `json:"id"`
	Make          string    `json:"make"`
	Model         string    `json:"model"`
	Year          int       `json:"year"`
	Price         float64   `json:"price"`
	Mileage       float64   `json:"mileage"`
	Color         string    `json:"color"`
	FuelType      string    `json:"fuel_type"`
	Transmission  string    `json:"transmission"`
	BodyType      string    `json:"body_type"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	Status        string    `json:"status"`
	Images        []string  `json:"images"`
	Videos        []string  `json:"videos"`
	SellerID      *string   `json:"seller_id"`
	Seller        *Seller   `json:"seller,omitempty"`
	LikesCount    int       `json:"likes_count"`
	CommentsCount int       `json:"comments_count"`
	ViewsCount    int       `json:"views_count"`
	CreatedAt     time.Time `json:"created_at"`
}
