package models

import "time"

// Trip is a bookable trip, stored in the events table.
type Trip struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Destination string    `json:"destination"`
	StartDate   string    `json:"start_date,omitempty"`
	EndDate     string    `json:"end_date,omitempty"`
	Price       float64   `json:"price"`
	Capacity    int       `json:"capacity"`
	ImageURL    string    `json:"image_url,omitempty"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TripInput is the writable subset of Trip.
type TripInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Destination string  `json:"destination"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Price       float64 `json:"price"`
	Capacity    int     `json:"capacity"`
	ImageURL    string  `json:"image_url"`
	IsPublished bool    `json:"is_published"`
}

// TripFilter narrows trip listings.
type TripFilter struct {
	Destination        string
	IncludeUnpublished bool
	Limit              int
	Offset             int
}

// Ticket is a seat reservation row from the tickets table.
type Ticket struct {
	ID        int64     `json:"id"`
	TripID    int64     `json:"event_id"`
	UserID    string    `json:"user_id"`
	Quantity  int       `json:"quantity"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
