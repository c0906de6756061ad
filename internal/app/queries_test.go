package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"opera_mock/internal/app"
	"opera_mock/internal/domain"
	"opera_mock/internal/storage/memory"
)

// ---- fakes ----

type fakeCache struct {
	store map[string][]byte
	gets  int
	hits  int
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.gets++
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.dels = append(c.dels, key)
	delete(c.store, key)
	return nil
}

func pstr(s string) *string { return &s }
func pint(i int) *int       { return &i }

func seedProperty(t *testing.T, st *memory.Store, code string) domain.Property {
	t.Helper()
	p, err := st.UpsertProperty(context.Background(), domain.Property{
		HotelID:   code,
		HotelCode: code,
		Name:      pstr("Hotel " + code),
		City:      pstr("El Gouna"),
	})
	if err != nil {
		t.Fatalf("seed property: %v", err)
	}
	return p
}

// ---- tests ----

func TestGetHotel_CacheMissThenHit(t *testing.T) {
	st := memory.New()
	p := seedProperty(t, st, "MOV_EG_001")
	cache := &fakeCache{}
	svc := app.NewContentService(st, cache, 10*time.Minute)
	ctx := context.Background()

	// Miss (first time, populates cache)
	h, err := svc.GetHotel(ctx, "MOV_EG_001")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if h.PropertyInfo.HotelCode != "MOV_EG_001" || *h.PropertyInfo.HotelName != "Hotel MOV_EG_001" {
		t.Fatalf("unexpected hotel: %+v", h.PropertyInfo)
	}

	// Mutate the store behind the cache's back to prove the second read is cached.
	p.Name = pstr("SHOULD NOT SEE THIS")
	if _, err := st.UpsertProperty(ctx, p); err != nil {
		t.Fatal(err)
	}

	h2, err := svc.GetHotel(ctx, "MOV_EG_001")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if *h2.PropertyInfo.HotelName != "Hotel MOV_EG_001" || cache.hits != 1 {
		t.Fatalf("expected cached name, got %s (hits=%d)", *h2.PropertyInfo.HotelName, cache.hits)
	}
}

func TestGetHotel_NotFound(t *testing.T) {
	svc := app.NewContentService(memory.New(), nil, time.Minute)
	if _, err := svc.GetHotel(context.Background(), "NOPE"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListHotels_PagingAndCache(t *testing.T) {
	st := memory.New()
	for _, c := range []string{"A1", "B2", "C3"} {
		seedProperty(t, st, c)
	}
	cache := &fakeCache{}
	svc := app.NewContentService(st, cache, time.Minute)
	ctx := context.Background()

	out, err := svc.ListHotels(ctx, domain.Page{Limit: 2, Offset: 0})
	if err != nil {
		t.Fatal(err)
	}
	if out.Count != 2 || out.TotalResults != 3 || !out.HasMore || out.Hotels[0].HotelCode != "A1" {
		t.Fatalf("unexpected page: %+v", out)
	}
	if out.Hotels[0].Connectivity.ConnectionStatus != "Connected" || out.Hotels[0].Meta == nil {
		t.Fatalf("snippet defaults missing: %+v", out.Hotels[0])
	}
	if len(cache.store) != 0 {
		t.Fatalf("non-default page must not be cached: %v", cache.store)
	}

	if _, err := svc.ListHotels(ctx, domain.Page{Limit: app.DefaultContentLimit}); err != nil {
		t.Fatal(err)
	}
	if len(cache.store) != 1 {
		t.Fatalf("default page should be cached, got %d keys", len(cache.store))
	}

	empty, err := svc.ListHotels(ctx, domain.Page{Limit: 0})
	if err != nil {
		t.Fatal(err)
	}
	if empty.Count != 0 || empty.TotalResults != 3 || empty.Hotels == nil {
		t.Fatalf("limit 0: %+v", empty)
	}
}

func TestListRoomTypes(t *testing.T) {
	st := memory.New()
	p := seedProperty(t, st, "MOV_EG_001")
	ctx := context.Background()
	for _, code := range []string{"CLSKG", "DLXSV"} {
		if _, err := st.UpsertRoomType(ctx, domain.RoomType{
			PropertyID: p.ID,
			Code:       code,
			Amenities:  []domain.RoomAmenity{{RoomAmenity: "TV"}},
		}); err != nil {
			t.Fatal(err)
		}
	}
	svc := app.NewContentService(st, nil, time.Minute)

	out, err := svc.ListRoomTypes(ctx, domain.RoomTypeQuery{HotelCode: "MOV_EG_001", Page: domain.Page{Limit: 20}}, false)
	if err != nil {
		t.Fatal(err)
	}
	if out.Count != 2 || out.TotalResults != 2 || out.RoomTypes[0].RoomAmenities != nil {
		t.Fatalf("unexpected: %+v", out)
	}

	out, err = svc.ListRoomTypes(ctx, domain.RoomTypeQuery{HotelCode: "MOV_EG_001", RoomType: "DLXSV", Page: domain.Page{Limit: 20}}, true)
	if err != nil {
		t.Fatal(err)
	}
	if out.Count != 1 || out.RoomTypes[0].RoomType != "DLXSV" || len(out.RoomTypes[0].RoomAmenities) != 1 {
		t.Fatalf("unexpected filtered: %+v", out)
	}

	if _, err := svc.ListRoomTypes(ctx, domain.RoomTypeQuery{HotelCode: "NOPE", Page: domain.Page{Limit: 20}}, false); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReplaceHotel(t *testing.T) {
	st := memory.New()
	seedProperty(t, st, "MOV_EG_001")
	cache := &fakeCache{}
	svc := app.NewContentService(st, cache, time.Minute)
	ctx := context.Background()

	if _, err := svc.GetHotel(ctx, "MOV_EG_001"); err != nil {
		t.Fatal(err)
	}

	out, err := svc.ReplaceHotel(ctx, "MOV_EG_001", app.ReplacePropertyRequest{
		HotelName:  pstr("Renamed"),
		TotalRooms: pint(120),
		Address:    &app.AddressView{Lines: []string{"Abu Tig Marina"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	info := out.PropertyInfo
	if info.HotelID != "MOV_EG_001" || *info.HotelName != "Renamed" || *info.TotalNumberOfRooms != 120 {
		t.Fatalf("unexpected: %+v", info)
	}
	// Fields absent from the request are cleared.
	if info.Address.City != nil {
		t.Fatalf("city should be cleared, got %v", *info.Address.City)
	}
	if len(cache.dels) == 0 {
		t.Fatal("replace must invalidate cached views")
	}

	got, err := svc.GetHotel(ctx, "MOV_EG_001")
	if err != nil || *got.PropertyInfo.HotelName != "Renamed" {
		t.Fatalf("stale read after replace: %+v %v", got, err)
	}

	if _, err := svc.ReplaceHotel(ctx, "NOPE", app.ReplacePropertyRequest{}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
