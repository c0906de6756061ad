package fixtures_test

import (
	"context"
	"errors"
	"testing"

	"opera_mock/internal/adapters/fixtures"
	"opera_mock/internal/app"
	"opera_mock/internal/domain"
	"opera_mock/internal/storage/memory"
)

func TestLoad_BundledSeed(t *testing.T) {
	src, err := fixtures.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ctx := context.Background()

	codes, err := src.HotelCodes(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(codes) != 2 || codes[0] != "MOV_EG_001" || codes[1] != "MOV_SB_002" {
		t.Fatalf("unexpected codes: %v", codes)
	}

	p, err := src.GetProperty(ctx, "MOV_EG_001")
	if err != nil {
		t.Fatal(err)
	}
	if p["hotel_name"] != "Mövenpick Resort & Spa El Gouna" {
		t.Fatalf("unexpected property: %v", p["hotel_name"])
	}

	rts, err := src.GetRoomTypes(ctx, "MOV_EG_001")
	if err != nil {
		t.Fatal(err)
	}
	if len(rts) != 5 {
		t.Fatalf("expected 5 room types, got %d", len(rts))
	}
	if rts2, _ := src.GetRoomTypes(ctx, "MOV_SB_002"); len(rts2) != 0 {
		t.Fatalf("expected no room types for MOV_SB_002, got %d", len(rts2))
	}

	res := src.Reservations()
	if len(res) != 2 || res[0].HotelID != "MOV_EG_001" || len(res[0].Request.Reservations.Reservation) != 1 {
		t.Fatalf("unexpected seed reservations: %+v", res)
	}
}

func TestGetProperty_Unknown(t *testing.T) {
	src, err := fixtures.Load()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := src.GetProperty(context.Background(), "NOPE"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestParse_RejectsDuplicatesAndMissingCodes(t *testing.T) {
	if _, err := fixtures.Parse([]byte(`{"properties":[{"hotelCode":"A"},{"hotel_code":"A"}]}`)); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if _, err := fixtures.Parse([]byte(`{"properties":[{"hotelName":"x"}]}`)); err == nil {
		t.Fatalf("expected missing code error")
	}
}

func TestSeedReservations_OncePerHotel(t *testing.T) {
	src, err := fixtures.Load()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	st := memory.New()
	rsv := app.NewReservationService(st)

	n, err := src.SeedReservations(ctx, st, rsv)
	if err != nil || n != 2 {
		t.Fatalf("first seed: n=%d err=%v", n, err)
	}
	n, err = src.SeedReservations(ctx, st, rsv)
	if err != nil || n != 0 {
		t.Fatalf("second seed should skip: n=%d err=%v", n, err)
	}

	got, err := st.SearchReservations(ctx, domain.ReservationQuery{HotelID: "MOV_EG_001", Surname: "hassan", Page: domain.Page{Limit: 10}})
	if err != nil || len(got) != 1 {
		t.Fatalf("search: %v %v", got, err)
	}
	if got[0].Status != domain.StatusReserved || got[0].GuestFirstName != "Amira" {
		t.Fatalf("seeded reservation: %+v", got[0])
	}
}
