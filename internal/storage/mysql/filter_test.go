package mysql

import (
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"

	"opera_mock/internal/domain"
)

func TestPredicates_SkipZeroValues(t *testing.T) {
	p := reservationPredicates(domain.ReservationQuery{})
	if p.where() != "" || len(p.args) != 0 {
		t.Fatalf("empty query must not filter: %q %v", p.where(), p.args)
	}
}

func TestPageQuery_Reservations(t *testing.T) {
	from := civil.Date{Year: 2026, Month: 4, Day: 1}
	q := domain.ReservationQuery{
		HotelID:             "H1",
		Surname:             "o'Brien_%",
		UpdatedFrom:         &from,
		UpdatedTo:           &from,
		ConfirmationNumbers: []string{"1", "2"},
		Page:                domain.Page{Limit: 10, Offset: 20},
	}
	sqlStr, args, err := pageQuery("id", "reservations", reservationPredicates(q), "id ASC", q.Page)
	if err != nil {
		t.Fatal(err)
	}
	want := "SELECT id FROM reservations WHERE hotel_id = ? AND LOWER(guest_last_name) LIKE ? AND update_date_time >= ? AND update_date_time <= ? AND confirmation_number IN (?, ?) ORDER BY id ASC LIMIT ? OFFSET ?"
	if sqlStr != want {
		t.Fatalf("sql:\n got %s\nwant %s", sqlStr, want)
	}
	if len(args) != 8 {
		t.Fatalf("args: %v", args)
	}
	if args[1] != `%o'brien\_\%%` {
		t.Fatalf("like arg: %v", args[1])
	}
	start, end := args[2].(time.Time), args[3].(time.Time)
	if start.Hour() != 0 || end.Hour() != 23 || end.Minute() != 59 || !start.Before(end) {
		t.Fatalf("whole-day bounds: %v %v", start, end)
	}
	if args[6] != 10 || args[7] != 20 {
		t.Fatalf("paging args: %v", args[6:])
	}
}

func TestCountQuery_RoomTypes(t *testing.T) {
	sqlStr, args, err := countQuery(roomTypesFrom, roomTypePredicates(domain.RoomTypeQuery{HotelCode: "H1"}))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(sqlStr, "SELECT COUNT(*) FROM ") || !strings.HasSuffix(sqlStr, "WHERE p.hotel_code = ?") {
		t.Fatalf("sql: %s", sqlStr)
	}
	if len(args) != 1 || args[0] != "H1" {
		t.Fatalf("args: %v", args)
	}
}

func TestPageQuery_NegativePageClamped(t *testing.T) {
	_, args, err := pageQuery("id", "properties", predicates{}, "id ASC", domain.Page{Limit: -1, Offset: -5})
	if err != nil {
		t.Fatal(err)
	}
	if args[0] != 0 || args[1] != 0 {
		t.Fatalf("args: %v", args)
	}
}
