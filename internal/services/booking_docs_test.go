package services

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"travelagency/internal/domain"
	"travelagency/internal/domain/models"
)

func TestDecodeBookingShapes(t *testing.T) {
	bodies := []string{
		`{"id": 17, "full_name": "Ana", "travelers": 2}`,
		`{"data": {"id": "17", "full_name": "Ana", "travelers": 2}}`,
		`{"booking": {"id": 17, "full_name": "Ana", "travelers": 2}, "meta": {}}`,
	}
	for _, body := range bodies {
		b, err := DecodeBooking([]byte(body))
		if err != nil {
			t.Fatalf("DecodeBooking(%s) error: %v", body, err)
		}
		if b.ID.String() != "17" || b.FullName != "Ana" || b.Travelers != 2 {
			t.Fatalf("DecodeBooking(%s) = %+v", body, b)
		}
	}
}

func TestDecodeBookingRejectsMissingID(t *testing.T) {
	_, err := DecodeBooking([]byte(`{"full_name":"Ana"}`))
	if !domain.IsInternal(err) {
		t.Fatalf("expected internal error, got %v", err)
	}
	_, err = DecodeBooking([]byte(`not json`))
	if !domain.IsInternal(err) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestBookingConfirmationPDF(t *testing.T) {
	b, err := DecodeBooking([]byte(`{"id":"a1b2c3d4-e5f6","trip_title":"Bali Escape","full_name":"Ana Maria","travelers":2,"total_price":2450.5,"special_requests":"Vegetarian meals"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	svc := BookingDocsService{Now: func() time.Time { return time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC) }}
	pdf, filename, err := svc.Confirmation(b)
	if err != nil {
		t.Fatalf("Confirmation returned error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
	if filename != "BOOKING_a1b2c3d4-e5f6_Ana_Maria.pdf" {
		t.Fatalf("filename = %q", filename)
	}
}

func TestFormatPrice(t *testing.T) {
	cases := map[float64]string{
		0:           "0.00",
		12.5:        "12.50",
		1234567.891: "1,234,567.89",
		999:         "999.00",
	}
	for in, want := range cases {
		if got := formatPrice(in); got != want {
			t.Fatalf("formatPrice(%v) = %q, want %q", in, got, want)
		}
	}
	if !strings.HasPrefix(bookingCode(mustBooking(t, `{"id":"abcdefghijk"}`)), "BK-ABCDEFGH") {
		t.Fatalf("unexpected booking code")
	}
}

func mustBooking(t *testing.T, body string) models.Booking {
	t.Helper()
	v, err := DecodeBooking([]byte(body))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return v
}
