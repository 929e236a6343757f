package services

import (
	"context"
	"testing"

	"travelagency/internal/domain"
	"travelagency/internal/domain/models"
)

type fakeTrips struct {
	rows    map[int64]models.Trip
	nextID  int64
	created []models.TripInput
}

func (f *fakeTrips) List(ctx context.Context, flt models.TripFilter) ([]models.Trip, error) {
	out := []models.Trip{}
	for _, t := range f.rows {
		if t.IsPublished || flt.IncludeUnpublished {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTrips) GetByID(ctx context.Context, id int64) (models.Trip, error) {
	t, ok := f.rows[id]
	if !ok {
		return t, domain.NotFoundError{Resource: "trip"}
	}
	return t, nil
}

func (f *fakeTrips) Create(ctx context.Context, in models.TripInput) (int64, error) {
	f.nextID++
	f.created = append(f.created, in)
	f.rows[f.nextID] = models.Trip{ID: f.nextID, Title: in.Title, StartDate: in.StartDate, EndDate: in.EndDate, Price: in.Price, IsPublished: in.IsPublished}
	return f.nextID, nil
}

func (f *fakeTrips) Update(ctx context.Context, id int64, in models.TripInput) error {
	if _, ok := f.rows[id]; !ok {
		return domain.NotFoundError{Resource: "trip"}
	}
	f.rows[id] = models.Trip{ID: id, Title: in.Title, IsPublished: in.IsPublished}
	return nil
}

func (f *fakeTrips) Delete(ctx context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return domain.NotFoundError{Resource: "trip"}
	}
	delete(f.rows, id)
	return nil
}

type fakeTickets struct{ calls int }

func (f *fakeTickets) ListByTrip(ctx context.Context, tripID int64) ([]models.Ticket, error) {
	f.calls++
	return []models.Ticket{{ID: 1, TripID: tripID, Quantity: 2}}, nil
}

func newTripService() (TripService, *fakeTrips, *fakeTickets) {
	trips := &fakeTrips{rows: map[int64]models.Trip{
		1: {ID: 1, Title: "Public", IsPublished: true},
		2: {ID: 2, Title: "Draft"},
	}, nextID: 2}
	tickets := &fakeTickets{}
	return TripService{Trips: trips, Tickets: tickets}, trips, tickets
}

func TestTripServiceGetHidesDraftsFromVisitors(t *testing.T) {
	svc, _, _ := newTripService()
	ctx := context.Background()

	if _, err := svc.Get(ctx, 2, false); !domain.IsNotFound(err) {
		t.Fatalf("expected not found for draft, got %v", err)
	}
	if trip, err := svc.Get(ctx, 2, true); err != nil || trip.Title != "Draft" {
		t.Fatalf("admin Get = %+v, %v", trip, err)
	}
	if _, err := svc.Get(ctx, 0, true); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for id 0, got %v", err)
	}
}

func TestTripServiceCreateNormalizes(t *testing.T) {
	svc, trips, _ := newTripService()

	trip, err := svc.Create(context.Background(), models.TripInput{
		Title:     "  Komodo   Island ",
		StartDate: "2026-07-01",
		EndDate:   "2026-07-05",
		Price:     799.999,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if trip.ID != 3 || trip.Title != "Komodo Island" {
		t.Fatalf("unexpected trip: %+v", trip)
	}
	if trips.created[0].Price != 800 {
		t.Fatalf("price = %v, want rounded 800", trips.created[0].Price)
	}
}

func TestTripServiceValidation(t *testing.T) {
	svc, trips, _ := newTripService()
	ctx := context.Background()

	cases := []struct {
		in    models.TripInput
		field string
	}{
		{models.TripInput{Title: " "}, "title"},
		{models.TripInput{Title: "x", Price: -1}, "price"},
		{models.TripInput{Title: "x", Capacity: -2}, "capacity"},
		{models.TripInput{Title: "x", StartDate: "2026-13-01"}, "start_date"},
		{models.TripInput{Title: "x", StartDate: "2026-05-10", EndDate: "2026-05-01"}, "end_date"},
	}
	for _, tc := range cases {
		_, err := svc.Create(ctx, tc.in)
		ve, ok := err.(domain.ValidationError)
		if !ok || ve.Field != tc.field {
			t.Fatalf("Create(%+v) error = %v, want field %s", tc.in, err, tc.field)
		}
	}
	if len(trips.created) != 0 {
		t.Fatalf("invalid input reached the store")
	}
}

func TestTripServiceUpdateAndDeleteMissing(t *testing.T) {
	svc, _, _ := newTripService()
	ctx := context.Background()

	if _, err := svc.Update(ctx, 42, models.TripInput{Title: "x"}); !domain.IsNotFound(err) {
		t.Fatalf("Update missing: %v", err)
	}
	if err := svc.Delete(ctx, 42); !domain.IsNotFound(err) {
		t.Fatalf("Delete missing: %v", err)
	}
	if err := svc.Delete(ctx, 1); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestTripServiceTicketsRequiresTrip(t *testing.T) {
	svc, _, tickets := newTripService()
	ctx := context.Background()

	if _, err := svc.ListTickets(ctx, 99); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if tickets.calls != 0 {
		t.Fatalf("tickets queried for a missing trip")
	}
	list, err := svc.ListTickets(ctx, 1)
	if err != nil || len(list) != 1 {
		t.Fatalf("Tickets = %+v, %v", list, err)
	}
}
