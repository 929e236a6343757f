package repositories

import (
	"context"
	"database/sql"
	"fmt"

	intconfig "travelagency/internal/config"
	intdb "travelagency/internal/db"
	"travelagency/internal/domain"
	"travelagency/internal/domain/models"
)

type TicketRepository struct {
	DB *sql.DB
}

func (r TicketRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// ListByTrip returns the tickets issued for a trip. A database without a
// tickets table yields an empty list.
func (r TicketRepository) ListByTrip(ctx context.Context, tripID int64) ([]models.Ticket, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "database belum terhubung"}
	}
	if !intdb.HasTable(ctx, db, "tickets") {
		return []models.Ticket{}, nil
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, event_id, COALESCE(user_id,''), COALESCE(quantity,1), COALESCE(status,'pending'), created_at
		FROM tickets
		WHERE event_id = ?
		ORDER BY created_at ASC, id ASC
	`, tripID)
	if err != nil {
		return nil, fmt.Errorf("list tickets for trip %d: %w", tripID, err)
	}
	defer rows.Close()

	out := []models.Ticket{}
	for rows.Next() {
		var t models.Ticket
		if err := rows.Scan(&t.ID, &t.TripID, &t.UserID, &t.Quantity, &t.Status, &t.CreatedAt); err != nil {
			return out, fmt.Errorf("scan ticket: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
