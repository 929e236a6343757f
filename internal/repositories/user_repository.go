package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	intconfig "travelagency/internal/config"
	"travelagency/internal/domain"
	"travelagency/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const userColumns = `id, COALESCE(email,''), COALESCE(full_name,''), COALESCE(is_admin,0), created_at`

func scanUser(s interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	err := s.Scan(&u.ID, &u.Email, &u.FullName, &u.IsAdmin, &u.CreatedAt)
	return u, err
}

func (r UserRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	db := r.db()
	if db == nil {
		return models.User{}, domain.InternalError{Msg: "database belum terhubung"}
	}
	row := db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ? LIMIT 1`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return u, domain.NotFoundError{Resource: "user", ID: id, Err: err}
	}
	if err != nil {
		return u, fmt.Errorf("get user %s: %w", id, err)
	}
	return u, nil
}

// IsAdmin reports the is_admin flag of the user. Unknown users are not admins.
func (r UserRepository) IsAdmin(ctx context.Context, id string) (bool, error) {
	db := r.db()
	if db == nil {
		return false, domain.InternalError{Msg: "database belum terhubung"}
	}
	var admin bool
	err := db.QueryRowContext(ctx, `SELECT COALESCE(is_admin,0) FROM users WHERE id = ? LIMIT 1`, id).Scan(&admin)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check admin %s: %w", id, err)
	}
	return admin, nil
}

func (r UserRepository) List(ctx context.Context, page domain.Pagination) ([]models.User, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "database belum terhubung"}
	}
	page = page.Normalize()
	rows, err := db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC, id ASC LIMIT ? OFFSET ?`,
		page.Limit, page.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return out, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r UserRepository) SetAdmin(ctx context.Context, id string, admin bool) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "database belum terhubung"}
	}
	res, err := db.ExecContext(ctx, `UPDATE users SET is_admin = ? WHERE id = ?`, admin, id)
	if err != nil {
		return fmt.Errorf("set admin %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// MySQL reports 0 for unchanged rows too, so confirm the row exists.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
