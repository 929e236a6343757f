package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// BookingPayload is the sanitized request body sent to the booking backend.
// Nil fields were absent from the client request.
type BookingPayload struct {
	TripID          *string  `json:"trip_id,omitempty"`
	FullName        *string  `json:"full_name,omitempty"`
	Email           *string  `json:"email,omitempty"`
	Phone           *string  `json:"phone,omitempty"`
	TravelDate      *string  `json:"travel_date,omitempty"`
	Travelers       *int     `json:"travelers,omitempty"`
	TotalPrice      *float64 `json:"total_price,omitempty"`
	SpecialRequests *string  `json:"special_requests,omitempty"`
	Status          *string  `json:"status,omitempty"`
}

// Empty reports whether no field is set.
func (p BookingPayload) Empty() bool {
	return p.TripID == nil && p.FullName == nil && p.Email == nil && p.Phone == nil &&
		p.TravelDate == nil && p.Travelers == nil && p.TotalPrice == nil &&
		p.SpecialRequests == nil && p.Status == nil
}

// Booking is a booking record as returned by the booking backend.
type Booking struct {
	ID              FlexID  `json:"id"`
	TripID          FlexID  `json:"trip_id"`
	TripTitle       string  `json:"trip_title"`
	FullName        string  `json:"full_name"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	TravelDate      string  `json:"travel_date"`
	Travelers       int     `json:"travelers"`
	TotalPrice      float64 `json:"total_price"`
	SpecialRequests string  `json:"special_requests"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"created_at"`
}

// FlexID accepts both string and numeric identifiers.
type FlexID string

func (f *FlexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())
	return nil
}

func (f FlexID) String() string { return string(f) }
