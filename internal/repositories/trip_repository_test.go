package repositories

import (
	"context"
	"testing"
	"time"

	"travelagency/internal/domain"
	"travelagency/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var tripCols = []string{
	"id", "title", "description", "destination", "start_date", "end_date",
	"price", "capacity", "image_url", "is_published", "created_at", "updated_at",
}

func newMock(t *testing.T) (TripRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return TripRepository{DB: db}, mock
}

func TestTripListPublishedOnly(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(`FROM events WHERE 1=1 AND is_published = 1 AND destination LIKE \? ORDER BY`).
		WithArgs("%Bali%", 10, 0).
		WillReturnRows(sqlmock.NewRows(tripCols).
			AddRow(1, "Bali Escape", "", "Bali", "2026-05-01", "2026-05-07", 1200.0, 20, "", true, now, now))

	trips, err := repo.List(context.Background(), models.TripFilter{Destination: " Bali ", Limit: 10})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(trips) != 1 || trips[0].Title != "Bali Escape" || !trips[0].IsPublished {
		t.Fatalf("unexpected trips: %+v", trips)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTripListIncludesUnpublishedForAdmins(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`FROM events WHERE 1=1 ORDER BY`).
		WithArgs(domain.DefaultPageLimit, 0).
		WillReturnRows(sqlmock.NewRows(tripCols))

	trips, err := repo.List(context.Background(), models.TripFilter{IncludeUnpublished: true})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if trips == nil || len(trips) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", trips)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTripGetByIDNotFound(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(`FROM events WHERE id = \?`).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(tripCols))

	_, err := repo.GetByID(context.Background(), 9)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestTripCreateUpdateDelete(t *testing.T) {
	repo, mock := newMock(t)
	in := models.TripInput{Title: "Alps", Destination: "Swiss", StartDate: "2026-02-01", Price: 900, Capacity: 12}

	mock.ExpectExec(`INSERT INTO events`).
		WithArgs("Alps", "", "Swiss", "2026-02-01", nil, 900.0, 12, nil, false).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec(`UPDATE events SET`).
		WithArgs("Alps", "", "Swiss", "2026-02-01", nil, 900.0, 12, nil, false, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE events SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT 1 FROM events WHERE id = \?`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))
	mock.ExpectExec(`DELETE FROM events WHERE id=\?`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM events WHERE id=\?`).
		WithArgs(int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ctx := context.Background()
	id, err := repo.Create(ctx, in)
	if err != nil || id != 7 {
		t.Fatalf("Create = %d, %v", id, err)
	}
	if err := repo.Update(ctx, 7, in); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if err := repo.Update(ctx, 99, in); !domain.IsNotFound(err) {
		t.Fatalf("Update missing row: expected not found, got %v", err)
	}
	if err := repo.Delete(ctx, 7); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := repo.Delete(ctx, 8); !domain.IsNotFound(err) {
		t.Fatalf("Delete missing row: expected not found, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTripUpdateUnchangedRowIsNotMissing(t *testing.T) {
	repo, mock := newMock(t)
	in := models.TripInput{Title: "Alps", Price: 900}

	mock.ExpectExec(`UPDATE events SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT 1 FROM events WHERE id = \?`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	if err := repo.Update(context.Background(), 7, in); err != nil {
		t.Fatalf("Update of unchanged row: expected nil, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
