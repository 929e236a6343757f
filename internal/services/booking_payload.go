package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"travelagency/internal/domain"
	"travelagency/internal/domain/models"
	"travelagency/internal/utils"
)

type BookingMode int

const (
	BookingCreate BookingMode = iota
	BookingUpdate
)

const (
	maxTravelers          = 50
	maxSpecialRequestRune = 1000
	maxTextRune           = 200
	maxTotalPrice         = 1e12
)

var bookingStatuses = map[string]bool{
	"pending":   true,
	"confirmed": true,
	"cancelled": true,
}

// SanitizeBooking cleans a client booking body before it is forwarded.
// Unknown keys are dropped, strings are trimmed, numeric fields may be sent as
// JSON numbers or numeric strings.
func SanitizeBooking(raw []byte, mode BookingMode) (models.BookingPayload, error) {
	var out models.BookingPayload

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return out, domain.ValidationError{Field: "body", Msg: "body kosong"}
	}
	fields := map[string]json.RawMessage{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return out, domain.ValidationError{Field: "body", Msg: "harus berupa objek JSON", Err: err}
	}

	var err error
	if out.TripID, err = textField(fields, "trip_id", maxTextRune); err != nil {
		return out, err
	}
	if out.FullName, err = textField(fields, "full_name", maxTextRune); err != nil {
		return out, err
	}
	if out.Email, err = emailField(fields, "email"); err != nil {
		return out, err
	}
	if out.Phone, err = phoneField(fields, "phone"); err != nil {
		return out, err
	}
	if out.TravelDate, err = dateField(fields, "travel_date"); err != nil {
		return out, err
	}
	if out.Travelers, err = intField(fields, "travelers", 1, maxTravelers); err != nil {
		return out, err
	}
	if out.TotalPrice, err = priceField(fields, "total_price"); err != nil {
		return out, err
	}
	if out.SpecialRequests, err = textField(fields, "special_requests", maxSpecialRequestRune); err != nil {
		return out, err
	}
	if out.Status, err = statusField(fields, "status"); err != nil {
		return out, err
	}

	switch mode {
	case BookingCreate:
		required := []struct {
			name string
			set  bool
		}{
			{"trip_id", out.TripID != nil},
			{"full_name", out.FullName != nil},
			{"email", out.Email != nil},
			{"travelers", out.Travelers != nil},
		}
		for _, r := range required {
			if !r.set {
				return out, domain.ValidationError{Field: r.name, Msg: "wajib diisi"}
			}
		}
	case BookingUpdate:
		if out.Empty() {
			return out, domain.ValidationError{Field: "body", Msg: "tidak ada field yang diubah"}
		}
	}
	return out, nil
}

// scalar decodes a raw JSON value that must be a string or number. ok is false
// for absent or null values.
func scalar(fields map[string]json.RawMessage, key string) (s string, ok bool, err error) {
	raw, present := fields[key]
	if !present {
		return "", false, nil
	}
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return "", false, domain.ValidationError{Field: key, Msg: "nilai tidak valid", Err: err}
	}
	switch t := v.(type) {
	case nil:
		return "", false, nil
	case string:
		return t, true, nil
	case json.Number:
		return t.String(), true, nil
	default:
		return "", false, domain.ValidationError{Field: key, Msg: "harus berupa teks atau angka"}
	}
}

func textField(fields map[string]json.RawMessage, key string, limit int) (*string, error) {
	s, ok, err := scalar(fields, key)
	if err != nil || !ok {
		return nil, err
	}
	s = utils.NormalizeSpace(s)
	if s == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(s) > limit {
		return nil, domain.ValidationError{Field: key, Msg: fmt.Sprintf("maksimal %d karakter", limit)}
	}
	return &s, nil
}

func emailField(fields map[string]json.RawMessage, key string) (*string, error) {
	s, err := textField(fields, key, maxTextRune)
	if err != nil || s == nil {
		return nil, err
	}
	email := strings.ToLower(*s)
	at := strings.Index(email, "@")
	if at <= 0 || at != strings.LastIndex(email, "@") || strings.ContainsAny(email, " ") {
		return nil, domain.ValidationError{Field: key, Msg: "format email tidak valid"}
	}
	host := email[at+1:]
	dot := strings.LastIndex(host, ".")
	if dot <= 0 || dot == len(host)-1 {
		return nil, domain.ValidationError{Field: key, Msg: "format email tidak valid"}
	}
	return &email, nil
}

func phoneField(fields map[string]json.RawMessage, key string) (*string, error) {
	s, err := textField(fields, key, 40)
	if err != nil || s == nil {
		return nil, err
	}
	digits := 0
	for _, r := range *s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' || r == '-' || r == ' ' || r == '(' || r == ')':
		default:
			return nil, domain.ValidationError{Field: key, Msg: "nomor telepon tidak valid"}
		}
	}
	if digits < 6 {
		return nil, domain.ValidationError{Field: key, Msg: "nomor telepon terlalu pendek"}
	}
	return s, nil
}

func dateField(fields map[string]json.RawMessage, key string) (*string, error) {
	s, err := textField(fields, key, 10)
	if err != nil || s == nil {
		return nil, err
	}
	t, err := utils.ParseDate(*s)
	if err != nil {
		return nil, domain.ValidationError{Field: key, Msg: "format tanggal harus YYYY-MM-DD", Err: err}
	}
	d := utils.FormatDate(t)
	return &d, nil
}

func intField(fields map[string]json.RawMessage, key string, lo, hi int) (*int, error) {
	s, ok, err := scalar(fields, key)
	if err != nil || !ok {
		return nil, err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, domain.ValidationError{Field: key, Msg: "harus berupa angka"}
	}
	if f != math.Trunc(f) {
		return nil, domain.ValidationError{Field: key, Msg: "harus bilangan bulat"}
	}
	if f < float64(lo) || f > float64(hi) {
		return nil, domain.ValidationError{Field: key, Msg: fmt.Sprintf("harus antara %d dan %d", lo, hi)}
	}
	n := int(f)
	return &n, nil
}

func priceField(fields map[string]json.RawMessage, key string) (*float64, error) {
	s, ok, err := scalar(fields, key)
	if err != nil || !ok {
		return nil, err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, domain.ValidationError{Field: key, Msg: "harus berupa angka"}
	}
	if f < 0 {
		return nil, domain.ValidationError{Field: key, Msg: "tidak boleh negatif"}
	}
	if f > maxTotalPrice {
		return nil, domain.ValidationError{Field: key, Msg: "nilai terlalu besar"}
	}
	f = math.Round(f*100) / 100
	return &f, nil
}

func statusField(fields map[string]json.RawMessage, key string) (*string, error) {
	s, err := textField(fields, key, 20)
	if err != nil || s == nil {
		return nil, err
	}
	status := strings.ToLower(*s)
	if !bookingStatuses[status] {
		return nil, domain.ValidationError{Field: key, Msg: "status tidak dikenal"}
	}
	return &status, nil
}
