package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"opera_mock/internal/domain"
)

var (
	_ domain.PropertyRepository    = (*Repo)(nil)
	_ domain.ReservationRepository = (*Repo)(nil)
)

type Repo struct{ db *sqlx.DB }

func New(db *sql.DB) *Repo { return &Repo{db: sqlx.NewDb(db, "mysql")} }

func isDuplicate(err error) bool {
	var me *mysqldrv.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

func writeErr(op string, err error) error {
	if isDuplicate(err) {
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// ---- properties ----

// UpsertProperty inserts or updates by hotel_code. A hotel_id already owned by another
// hotel_code is a conflict; the upsert would otherwise rewrite that other row.
func (r *Repo) UpsertProperty(ctx context.Context, p domain.Property) (domain.Property, error) {
	var owner string
	err := r.db.GetContext(ctx, &owner, "SELECT hotel_code FROM properties WHERE hotel_id = ?", p.HotelID)
	switch {
	case err == nil && owner != p.HotelCode:
		return domain.Property{}, fmt.Errorf("upsert property %s: hotel id %s belongs to %s: %w", p.HotelCode, p.HotelID, owner, domain.ErrConflict)
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		return domain.Property{}, fmt.Errorf("upsert property %s: %w", p.HotelCode, err)
	}
	if _, err := r.db.NamedExecContext(ctx, upsertPropertySQL, toPropertyRow(p)); err != nil {
		return domain.Property{}, writeErr("upsert property "+p.HotelCode, err)
	}
	return r.GetPropertyByCode(ctx, p.HotelCode)
}

func (r *Repo) ReplaceProperty(ctx context.Context, p domain.Property) (domain.Property, error) {
	if _, err := r.GetPropertyByCode(ctx, p.HotelCode); err != nil {
		return domain.Property{}, err
	}
	if _, err := r.db.NamedExecContext(ctx, replacePropertySQL, toPropertyRow(p)); err != nil {
		return domain.Property{}, writeErr("replace property "+p.HotelCode, err)
	}
	return r.GetPropertyByCode(ctx, p.HotelCode)
}

func (r *Repo) GetPropertyByCode(ctx context.Context, hotelCode string) (domain.Property, error) {
	var row propertyRow
	err := r.db.GetContext(ctx, &row, "SELECT"+propertyColumns+" FROM properties WHERE hotel_code = ?", hotelCode)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Property{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Property{}, fmt.Errorf("get property %s: %w", hotelCode, err)
	}
	return row.toDomain(), nil
}

func (r *Repo) GetPropertiesByCodes(ctx context.Context, hotelCodes []string) ([]domain.Property, error) {
	if len(hotelCodes) == 0 {
		return nil, nil
	}
	q, args, err := sqlx.In("SELECT"+propertyColumns+" FROM properties WHERE hotel_code IN (?) ORDER BY id ASC", hotelCodes)
	if err != nil {
		return nil, err
	}
	var rows []propertyRow
	if err := r.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("get properties: %w", err)
	}
	return mapRows(rows, propertyRow.toDomain), nil
}

func (r *Repo) ListProperties(ctx context.Context, pg domain.Page) ([]domain.Property, error) {
	q, args, err := pageQuery(propertyColumns, "properties", predicates{}, "id ASC", pg)
	if err != nil {
		return nil, err
	}
	var rows []propertyRow
	if err := r.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	return mapRows(rows, propertyRow.toDomain), nil
}

func (r *Repo) CountProperties(ctx context.Context) (int, error) {
	return r.count(ctx, "properties", predicates{})
}

// ---- room types ----

func (r *Repo) UpsertRoomType(ctx context.Context, rt domain.RoomType) (domain.RoomType, error) {
	if _, err := r.db.NamedExecContext(ctx, upsertRoomTypeSQL, toRoomTypeRow(rt)); err != nil {
		return domain.RoomType{}, writeErr("upsert room type "+rt.Code, err)
	}
	var row roomTypeRow
	if err := r.db.GetContext(ctx, &row, getRoomTypeSQL, rt.PropertyID, rt.Code); err != nil {
		return domain.RoomType{}, fmt.Errorf("reload room type %s: %w", rt.Code, err)
	}
	return row.toDomain(), nil
}

func roomTypePredicates(q domain.RoomTypeQuery) predicates {
	var p predicates
	p.eq("p.hotel_code", q.HotelCode)
	p.eq("rt.room_type", q.RoomType)
	return p
}

func (r *Repo) ListRoomTypes(ctx context.Context, q domain.RoomTypeQuery) ([]domain.RoomType, error) {
	sqlStr, args, err := pageQuery(roomTypeColumns, roomTypesFrom, roomTypePredicates(q), "rt.id ASC", q.Page)
	if err != nil {
		return nil, err
	}
	var rows []roomTypeRow
	if err := r.db.SelectContext(ctx, &rows, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("list room types: %w", err)
	}
	return mapRows(rows, roomTypeRow.toDomain), nil
}

func (r *Repo) CountRoomTypes(ctx context.Context, q domain.RoomTypeQuery) (int, error) {
	return r.count(ctx, roomTypesFrom, roomTypePredicates(q))
}

func (r *Repo) LogMiss(ctx context.Context, hotelCode string, status int, reason string) error {
	_, err := r.db.ExecContext(ctx, insertMissSQL, hotelCode, status, reason)
	return err
}

// ---- shared ----

func (r *Repo) count(ctx context.Context, from string, p predicates) (int, error) {
	q, args, err := countQuery(from, p)
	if err != nil {
		return 0, err
	}
	var n int
	if err := r.db.GetContext(ctx, &n, q, args...); err != nil {
		return 0, fmt.Errorf("count %s: %w", from, err)
	}
	return n, nil
}

func mapRows[R, T any](rows []R, f func(R) T) []T {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		out = append(out, f(row))
	}
	return out
}
