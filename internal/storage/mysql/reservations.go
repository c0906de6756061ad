package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jinzhu/now"

	"opera_mock/internal/domain"
)

func (r *Repo) InsertReservation(ctx context.Context, res domain.Reservation) (domain.Reservation, error) {
	if _, err := r.db.NamedExecContext(ctx, insertReservationSQL, toReservationRow(res)); err != nil {
		return domain.Reservation{}, writeErr("insert reservation "+res.ReservationID, err)
	}
	return r.GetReservation(ctx, res.ReservationID)
}

func (r *Repo) GetReservation(ctx context.Context, reservationID string) (domain.Reservation, error) {
	var row reservationRow
	err := r.db.GetContext(ctx, &row, "SELECT"+reservationColumns+" FROM reservations WHERE reservation_id = ?", reservationID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Reservation{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("get reservation %s: %w", reservationID, err)
	}
	return row.toDomain(), nil
}

// UpdateReservation overwrites every mutable column. Concurrent writers: last write wins.
func (r *Repo) UpdateReservation(ctx context.Context, res domain.Reservation) (domain.Reservation, error) {
	if _, err := r.GetReservation(ctx, res.ReservationID); err != nil {
		return domain.Reservation{}, err
	}
	if _, err := r.db.NamedExecContext(ctx, updateReservationSQL, toReservationRow(res)); err != nil {
		return domain.Reservation{}, writeErr("update reservation "+res.ReservationID, err)
	}
	return r.GetReservation(ctx, res.ReservationID)
}

func reservationPredicates(q domain.ReservationQuery) predicates {
	var p predicates
	p.eq("hotel_id", q.HotelID)
	p.contains("guest_last_name", q.Surname)
	p.contains("guest_first_name", q.GivenName)
	if q.ArrivalFrom != nil {
		p.atLeast("arrival_date", q.ArrivalFrom.In(time.UTC))
	}
	if q.ArrivalTo != nil {
		p.atMost("arrival_date", q.ArrivalTo.In(time.UTC))
	}
	// update_date_time is a timestamp; date bounds cover whole days.
	if q.UpdatedFrom != nil {
		p.atLeast("update_date_time", now.With(q.UpdatedFrom.In(time.UTC)).BeginningOfDay())
	}
	if q.UpdatedTo != nil {
		p.atMost("update_date_time", now.With(q.UpdatedTo.In(time.UTC)).EndOfDay())
	}
	p.in("confirmation_number", q.ConfirmationNumbers)
	return p
}

func (r *Repo) SearchReservations(ctx context.Context, q domain.ReservationQuery) ([]domain.Reservation, error) {
	sqlStr, args, err := pageQuery(reservationColumns, "reservations", reservationPredicates(q), "id ASC", q.Page)
	if err != nil {
		return nil, err
	}
	var rows []reservationRow
	if err := r.db.SelectContext(ctx, &rows, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("search reservations: %w", err)
	}
	return mapRows(rows, reservationRow.toDomain), nil
}

func (r *Repo) CountReservations(ctx context.Context, q domain.ReservationQuery) (int, error) {
	return r.count(ctx, "reservations", reservationPredicates(q))
}
