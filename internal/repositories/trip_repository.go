package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	intconfig "travelagency/internal/config"
	intdb "travelagency/internal/db"
	"travelagency/internal/domain"
	"travelagency/internal/domain/models"
)

// TripRepository stores trips in the events table.
type TripRepository struct {
	DB *sql.DB
}

func (r TripRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const tripColumns = `id, title, COALESCE(description,''), COALESCE(destination,''),
	COALESCE(DATE_FORMAT(start_date,'%Y-%m-%d'),''), COALESCE(DATE_FORMAT(end_date,'%Y-%m-%d'),''),
	COALESCE(price,0), COALESCE(capacity,0), COALESCE(image_url,''), COALESCE(is_published,0),
	created_at, updated_at`

func scanTrip(s interface{ Scan(...any) error }) (models.Trip, error) {
	var t models.Trip
	err := s.Scan(
		&t.ID, &t.Title, &t.Description, &t.Destination,
		&t.StartDate, &t.EndDate,
		&t.Price, &t.Capacity, &t.ImageURL, &t.IsPublished,
		&t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (r TripRepository) List(ctx context.Context, f models.TripFilter) ([]models.Trip, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "database belum terhubung"}
	}
	page := domain.Pagination{Limit: f.Limit, Offset: f.Offset}.Normalize()

	where := []string{"1=1"}
	args := []any{}
	if !f.IncludeUnpublished {
		where = append(where, "is_published = 1")
	}
	if d := strings.TrimSpace(f.Destination); d != "" {
		where = append(where, "destination LIKE ?")
		args = append(args, "%"+d+"%")
	}
	args = append(args, page.Limit, page.Offset)

	query := fmt.Sprintf(`SELECT %s FROM events WHERE %s ORDER BY start_date IS NULL, start_date ASC, id ASC LIMIT ? OFFSET ?`,
		tripColumns, strings.Join(where, " AND "))

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return out, fmt.Errorf("scan trip: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TripRepository) GetByID(ctx context.Context, id int64) (models.Trip, error) {
	db := r.db()
	if db == nil {
		return models.Trip{}, domain.InternalError{Msg: "database belum terhubung"}
	}
	row := db.QueryRowContext(ctx, `SELECT `+tripColumns+` FROM events WHERE id = ? LIMIT 1`, id)
	t, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return t, domain.NotFoundError{Resource: "trip", ID: strconv.FormatInt(id, 10), Err: err}
	}
	if err != nil {
		return t, fmt.Errorf("get trip %d: %w", id, err)
	}
	return t, nil
}

func (r TripRepository) Create(ctx context.Context, in models.TripInput) (int64, error) {
	db := r.db()
	if db == nil {
		return 0, domain.InternalError{Msg: "database belum terhubung"}
	}
	res, err := db.ExecContext(ctx, `
		INSERT INTO events (title, description, destination, start_date, end_date, price, capacity, image_url, is_published, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`,
		in.Title, in.Description, in.Destination,
		intdb.NullIfEmpty(in.StartDate), intdb.NullIfEmpty(in.EndDate),
		in.Price, in.Capacity, intdb.NullIfEmpty(in.ImageURL), in.IsPublished,
	)
	if err != nil {
		return 0, fmt.Errorf("insert trip: %w", err)
	}
	return res.LastInsertId()
}

func (r TripRepository) Update(ctx context.Context, id int64, in models.TripInput) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "database belum terhubung"}
	}
	res, err := db.ExecContext(ctx, `
		UPDATE events SET
		  title=?, description=?, destination=?, start_date=?, end_date=?,
		  price=?, capacity=?, image_url=?, is_published=?, updated_at=NOW()
		WHERE id=?
	`,
		in.Title, in.Description, in.Destination,
		intdb.NullIfEmpty(in.StartDate), intdb.NullIfEmpty(in.EndDate),
		in.Price, in.Capacity, intdb.NullIfEmpty(in.ImageURL), in.IsPublished,
		id,
	)
	if err != nil {
		return fmt.Errorf("update trip %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Matched-but-unchanged rows also report 0.
		return r.exists(ctx, id)
	}
	return nil
}

func (r TripRepository) exists(ctx context.Context, id int64) error {
	var one int
	err := r.db().QueryRowContext(ctx, `SELECT 1 FROM events WHERE id = ? LIMIT 1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: "trip", ID: strconv.FormatInt(id, 10), Err: err}
	}
	if err != nil {
		return fmt.Errorf("check trip %d: %w", id, err)
	}
	return nil
}

func (r TripRepository) Delete(ctx context.Context, id int64) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "database belum terhubung"}
	}
	res, err := db.ExecContext(ctx, `DELETE FROM events WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete trip %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "trip", ID: strconv.FormatInt(id, 10)}
	}
	return nil
}
