package repositories

import (
	"context"
	"testing"
	"time"

	"travelagency/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

var userCols = []string{"id", "email", "full_name", "is_admin", "created_at"}

func TestUserIsAdmin(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := UserRepository{DB: db}

	mock.ExpectQuery(`SELECT COALESCE\(is_admin,0\) FROM users WHERE id = \?`).
		WithArgs("u-admin").
		WillReturnRows(sqlmock.NewRows([]string{"is_admin"}).AddRow(true))
	mock.ExpectQuery(`SELECT COALESCE\(is_admin,0\) FROM users WHERE id = \?`).
		WithArgs("u-ghost").
		WillReturnRows(sqlmock.NewRows([]string{"is_admin"}))

	ok, err := repo.IsAdmin(context.Background(), "u-admin")
	if err != nil || !ok {
		t.Fatalf("IsAdmin(u-admin) = %v, %v", ok, err)
	}
	ok, err = repo.IsAdmin(context.Background(), "u-ghost")
	if err != nil || ok {
		t.Fatalf("IsAdmin(u-ghost) = %v, %v", ok, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserSetAdminMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := UserRepository{DB: db}

	mock.ExpectExec(`UPDATE users SET is_admin = \? WHERE id = \?`).
		WithArgs(true, "u-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`FROM users WHERE id = \?`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(userCols))

	if err := repo.SetAdmin(context.Background(), "u-1", true); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserSetAdminUnchangedRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := UserRepository{DB: db}

	mock.ExpectExec(`UPDATE users SET is_admin`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`FROM users WHERE id = \?`).
		WithArgs("u-2").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow("u-2", "a@b.co", "A", true, time.Now()))

	if err := repo.SetAdmin(context.Background(), "u-2", true); err != nil {
		t.Fatalf("SetAdmin error: %v", err)
	}
}
