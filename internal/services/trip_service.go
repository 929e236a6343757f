package services

import (
	"context"
	"database/sql"
	"math"
	"strconv"

	"travelagency/internal/domain"
	"travelagency/internal/domain/models"
	"travelagency/internal/repositories"
	"travelagency/internal/utils"
)

// TripStore is the persistence the trip service needs.
type TripStore interface {
	List(ctx context.Context, f models.TripFilter) ([]models.Trip, error)
	GetByID(ctx context.Context, id int64) (models.Trip, error)
	Create(ctx context.Context, in models.TripInput) (int64, error)
	Update(ctx context.Context, id int64, in models.TripInput) error
	Delete(ctx context.Context, id int64) error
}

type TicketStore interface {
	ListByTrip(ctx context.Context, tripID int64) ([]models.Ticket, error)
}

type TripService struct {
	Trips     TripStore
	Tickets   TicketStore
	RequestID string
}

func NewTripService(db *sql.DB) TripService {
	return TripService{
		Trips:   repositories.TripRepository{DB: db},
		Tickets: repositories.TicketRepository{DB: db},
	}
}

// WithRequestID returns a copy that tags its log lines with rid.
func (s TripService) WithRequestID(rid string) TripService {
	s.RequestID = rid
	return s
}

func (s TripService) List(ctx context.Context, f models.TripFilter) ([]models.Trip, error) {
	return s.Trips.List(ctx, f)
}

// Get returns one trip. Unpublished trips are only visible to admins.
func (s TripService) Get(ctx context.Context, id int64, admin bool) (models.Trip, error) {
	if id <= 0 {
		return models.Trip{}, domain.ValidationError{Field: "id", Msg: "id tidak valid"}
	}
	t, err := s.Trips.GetByID(ctx, id)
	if err != nil {
		return t, err
	}
	if !t.IsPublished && !admin {
		return models.Trip{}, domain.NotFoundError{Resource: "trip", ID: strconv.FormatInt(id, 10)}
	}
	return t, nil
}

func (s TripService) Create(ctx context.Context, in models.TripInput) (models.Trip, error) {
	in, err := normalizeTripInput(in)
	if err != nil {
		return models.Trip{}, err
	}
	id, err := s.Trips.Create(ctx, in)
	if err != nil {
		return models.Trip{}, err
	}
	utils.LogEvent(s.RequestID, "trips", "create", "trip_id="+strconv.FormatInt(id, 10))
	return s.Trips.GetByID(ctx, id)
}

func (s TripService) Update(ctx context.Context, id int64, in models.TripInput) (models.Trip, error) {
	if id <= 0 {
		return models.Trip{}, domain.ValidationError{Field: "id", Msg: "id tidak valid"}
	}
	in, err := normalizeTripInput(in)
	if err != nil {
		return models.Trip{}, err
	}
	if err := s.Trips.Update(ctx, id, in); err != nil {
		return models.Trip{}, err
	}
	utils.LogEvent(s.RequestID, "trips", "update", "trip_id="+strconv.FormatInt(id, 10))
	return s.Trips.GetByID(ctx, id)
}

func (s TripService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "id tidak valid"}
	}
	if err := s.Trips.Delete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "trips", "delete", "trip_id="+strconv.FormatInt(id, 10))
	return nil
}

func (s TripService) ListTickets(ctx context.Context, tripID int64) ([]models.Ticket, error) {
	if tripID <= 0 {
		return nil, domain.ValidationError{Field: "id", Msg: "id tidak valid"}
	}
	if _, err := s.Trips.GetByID(ctx, tripID); err != nil {
		return nil, err
	}
	return s.Tickets.ListByTrip(ctx, tripID)
}

func normalizeTripInput(in models.TripInput) (models.TripInput, error) {
	in.Title = utils.NormalizeSpace(in.Title)
	in.Destination = utils.NormalizeSpace(in.Destination)
	in.Description = utils.TrimOrEmpty(in.Description)
	in.ImageURL = utils.TrimOrEmpty(in.ImageURL)
	in.StartDate = utils.TrimOrEmpty(in.StartDate)
	in.EndDate = utils.TrimOrEmpty(in.EndDate)

	if in.Title == "" {
		return in, domain.ValidationError{Field: "title", Msg: "wajib diisi"}
	}
	if in.Price < 0 || math.IsNaN(in.Price) || math.IsInf(in.Price, 0) {
		return in, domain.ValidationError{Field: "price", Msg: "tidak boleh negatif"}
	}
	in.Price = math.Round(in.Price*100) / 100
	if in.Capacity < 0 {
		return in, domain.ValidationError{Field: "capacity", Msg: "tidak boleh negatif"}
	}

	var start, end string
	if in.StartDate != "" {
		t, err := utils.ParseDate(in.StartDate)
		if err != nil {
			return in, domain.ValidationError{Field: "start_date", Msg: "format tanggal harus YYYY-MM-DD", Err: err}
		}
		start = utils.FormatDate(t)
		in.StartDate = start
	}
	if in.EndDate != "" {
		t, err := utils.ParseDate(in.EndDate)
		if err != nil {
			return in, domain.ValidationError{Field: "end_date", Msg: "format tanggal harus YYYY-MM-DD", Err: err}
		}
		end = utils.FormatDate(t)
		in.EndDate = end
	}
	// ISO dates compare correctly as strings.
	if start != "" && end != "" && end < start {
		return in, domain.ValidationError{Field: "end_date", Msg: "tidak boleh sebelum start_date"}
	}
	return in, nil
}
