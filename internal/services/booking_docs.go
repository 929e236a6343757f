package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"travelagency/internal/domain"
	"travelagency/internal/domain/models"
	"travelagency/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// BookingDocsService renders booking confirmations as PDF.
type BookingDocsService struct {
	RequestID string
	Now       func() time.Time
}

// DecodeBooking reads a booking record from a backend response body. The
// backend may return the record bare or wrapped in "data" or "booking".
func DecodeBooking(body []byte) (models.Booking, error) {
	var b models.Booking

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return b, domain.InternalError{Msg: "respon booking tidak valid", Err: err}
	}
	inner := body
	for _, key := range []string{"data", "booking"} {
		if raw, ok := envelope[key]; ok && len(bytes.TrimSpace(raw)) > 0 && bytes.TrimSpace(raw)[0] == '{' {
			inner = raw
			break
		}
	}
	if err := json.Unmarshal(inner, &b); err != nil {
		return b, domain.InternalError{Msg: "respon booking tidak valid", Err: err}
	}
	if b.ID == "" {
		return b, domain.InternalError{Msg: "respon booking tanpa id"}
	}
	return b, nil
}

// Confirmation builds the confirmation PDF for b and its download filename.
func (s BookingDocsService) Confirmation(b models.Booking) ([]byte, string, error) {
	utils.LogEvent(s.RequestID, "docs", "booking_confirmation", "booking_id="+b.ID.String())

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Confirmation", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING CONFIRMATION")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, "Issued: "+s.now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	trip := safe(b.TripTitle, "")
	if trip == "" {
		trip = "#" + safe(b.TripID.String(), "-")
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking code   : %s", bookingCode(b)),
		fmt.Sprintf("Status         : %s", strings.ToUpper(safe(b.Status, "pending"))),
		fmt.Sprintf("Trip           : %s", trip),
		fmt.Sprintf("Travel date    : %s", safe(dateOnly(b.TravelDate), "-")),
		fmt.Sprintf("Travelers      : %d", b.Travelers),
		fmt.Sprintf("Lead traveler  : %s", safe(b.FullName, "-")),
		fmt.Sprintf("Email          : %s", safe(b.Email, "-")),
		fmt.Sprintf("Phone          : %s", safe(b.Phone, "-")),
		fmt.Sprintf("Total          : %s", formatPrice(b.TotalPrice)),
	}
	for _, l := range lines {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}

	if req := strings.TrimSpace(b.SpecialRequests); req != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Special requests:")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, req, "", "", false)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please bring this confirmation and a valid ID on the day of travel.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("BOOKING_%s_%s.pdf", safeFilenamePart(b.ID.String()), safeFilenamePart(b.FullName))
	return buf.Bytes(), filename, nil
}

func (s BookingDocsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func bookingCode(b models.Booking) string {
	id := strings.ToUpper(b.ID.String())
	if len(id) > 8 {
		id = id[:8]
	}
	return "BK-" + id
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func dateOnly(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 10 {
		return v[:10]
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}

// formatPrice renders v with thousands separators and two decimals.
func formatPrice(v float64) string {
	if v <= 0 || math.IsNaN(v) {
		return "0.00"
	}
	cents := int64(math.Round(v * 100))
	whole := fmt.Sprintf("%d", cents/100)
	var out []byte
	n := len(whole)
	for i := 0; i < n; i++ {
		out = append(out, whole[i])
		pos := n - i - 1
		if pos > 0 && pos%3 == 0 {
			out = append(out, ',')
		}
	}
	return fmt.Sprintf("%s.%02d", out, cents%100)
}
