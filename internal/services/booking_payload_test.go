package services

import (
	"encoding/json"
	"testing"

	"travelagency/internal/domain"
)

func TestSanitizeBookingCreate(t *testing.T) {
	raw := []byte(`{
		"trip_id": 42,
		"full_name": "  Ana   Maria ",
		"email": " Ana@Example.COM ",
		"phone": "+62 812-3456-789",
		"travel_date": "2026-12-01",
		"travelers": "3",
		"total_price": "1500.456",
		"special_requests": "",
		"is_admin": true
	}`)

	p, err := SanitizeBooking(raw, BookingCreate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.TripID == nil || *p.TripID != "42" {
		t.Fatalf("trip_id = %v", p.TripID)
	}
	if *p.FullName != "Ana Maria" {
		t.Fatalf("full_name = %q", *p.FullName)
	}
	if *p.Email != "ana@example.com" {
		t.Fatalf("email = %q", *p.Email)
	}
	if *p.Travelers != 3 {
		t.Fatalf("travelers = %d", *p.Travelers)
	}
	if *p.TotalPrice != 1500.46 {
		t.Fatalf("total_price = %v", *p.TotalPrice)
	}
	if p.SpecialRequests != nil {
		t.Fatalf("blank special_requests should be dropped")
	}

	out, _ := json.Marshal(p)
	var m map[string]any
	_ = json.Unmarshal(out, &m)
	if _, ok := m["is_admin"]; ok {
		t.Fatalf("unknown key forwarded: %s", out)
	}
}

func TestSanitizeBookingRejects(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		mode  BookingMode
		field string
	}{
		{"empty body", ``, BookingCreate, "body"},
		{"array body", `[1,2]`, BookingCreate, "body"},
		{"missing trip", `{"full_name":"A","email":"a@b.co","travelers":1}`, BookingCreate, "trip_id"},
		{"zero travelers", `{"trip_id":"t","full_name":"A","email":"a@b.co","travelers":0}`, BookingCreate, "travelers"},
		{"fractional travelers", `{"trip_id":"t","full_name":"A","email":"a@b.co","travelers":1.5}`, BookingCreate, "travelers"},
		{"text travelers", `{"trip_id":"t","full_name":"A","email":"a@b.co","travelers":"two"}`, BookingCreate, "travelers"},
		{"negative price", `{"total_price":-1}`, BookingUpdate, "total_price"},
		{"huge price", `{"total_price":1e307}`, BookingUpdate, "total_price"},
		{"bad email", `{"email":"nope"}`, BookingUpdate, "email"},
		{"bad date", `{"travel_date":"01/12/2026"}`, BookingUpdate, "travel_date"},
		{"bad status", `{"status":"lost"}`, BookingUpdate, "status"},
		{"object name", `{"full_name":{"a":1}}`, BookingUpdate, "full_name"},
		{"empty update", `{"unknown":1}`, BookingUpdate, "body"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := SanitizeBooking([]byte(tc.body), tc.mode)
			if !domain.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
			var ve domain.ValidationError
			if ok := asValidation(err, &ve); !ok || ve.Field != tc.field {
				t.Fatalf("field = %q, want %q", ve.Field, tc.field)
			}
		})
	}
}

func TestSanitizeBookingUpdateSubset(t *testing.T) {
	p, err := SanitizeBooking([]byte(`{"status":"Cancelled","travelers":null}`), BookingUpdate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status == nil || *p.Status != "cancelled" {
		t.Fatalf("status = %v", p.Status)
	}
	if p.Travelers != nil {
		t.Fatalf("null travelers should stay absent")
	}
}

func asValidation(err error, target *domain.ValidationError) bool {
	v, ok := err.(domain.ValidationError)
	if ok {
		*target = v
	}
	return ok
}
