package httpserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"opera_mock/internal/adapters/fixtures"
	server "opera_mock/internal/adapters/http_server"
	"opera_mock/internal/app"
	"opera_mock/internal/storage/memory"
)

type apiClient struct {
	t  *testing.T
	ts *httptest.Server
}

// newAPI serves the full router over a memory store seeded from the bundled fixtures.
func newAPI(t *testing.T) *apiClient {
	t.Helper()
	ctx := context.Background()
	st := memory.New()
	src, err := fixtures.Load()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := app.NewImportService(src, st, nil).Run(ctx, nil, 1); err != nil {
		t.Fatal(err)
	}
	rsv := app.NewReservationService(st)
	if _, err := src.SeedReservations(ctx, st, rsv); err != nil {
		t.Fatal(err)
	}

	srv := server.New(5 * time.Second)
	srv.MountHandlers(&server.Handlers{
		Content:      app.NewContentService(st, nil, time.Minute),
		Shop:         app.NewShopService(st),
		Inventory:    app.NewInventoryService(),
		Reservations: rsv,
	})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return &apiClient{t: t, ts: ts}
}

func (c *apiClient) do(method, path, body string, hdr map[string]string) (*http.Response, map[string]any) {
	c.t.Helper()
	req, err := http.NewRequest(method, c.ts.URL+path, strings.NewReader(body))
	if err != nil {
		c.t.Fatal(err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		c.t.Fatal(err)
	}
	defer res.Body.Close()
	var out map[string]any
	_ = json.NewDecoder(res.Body).Decode(&out)
	return res, out
}

var channel = map[string]string{"x-channelCode": "WEB"}

func TestHealthz(t *testing.T) {
	api := newAPI(t)
	res, _ := api.do(http.MethodGet, "/healthz", "", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	if res.Header.Get("x-request-id") == "" {
		t.Fatal("request id must be echoed")
	}
}

func TestContent_RequiresChannelHeader(t *testing.T) {
	api := newAPI(t)
	res, body := api.do(http.MethodGet, "/api/content/v1/hotels", "", nil)
	if res.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status %d", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("content type %s", ct)
	}
	if body["instance"] != "/api/content/v1/hotels" {
		t.Fatalf("problem: %v", body)
	}
}

func TestContent_HotelsAndETag(t *testing.T) {
	api := newAPI(t)
	res, body := api.do(http.MethodGet, "/api/content/v1/hotels?limit=1", "", channel)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	if body["totalResults"].(float64) != 2 || body["hasMore"] != true {
		t.Fatalf("body: %v", body)
	}
	etag := res.Header.Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}

	hdr := map[string]string{"x-channelCode": "WEB", "If-None-Match": etag}
	res, _ = api.do(http.MethodGet, "/api/content/v1/hotels?limit=1", "", hdr)
	if res.StatusCode != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", res.StatusCode)
	}

	res, _ = api.do(http.MethodGet, "/api/content/v1/hotels?limit=abc", "", channel)
	if res.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("bad limit: %d", res.StatusCode)
	}
	res, _ = api.do(http.MethodGet, "/api/content/v1/hotels?limit=5000", "", channel)
	if res.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("limit over max: %d", res.StatusCode)
	}
}

func TestContent_HotelAndRoomTypes(t *testing.T) {
	api := newAPI(t)
	res, body := api.do(http.MethodGet, "/api/content/v1/hotels/MOV_EG_001", "", channel)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	info := body["propertyInfo"].(map[string]any)
	if info["hotelCode"] != "MOV_EG_001" {
		t.Fatalf("info: %v", info)
	}

	res, _ = api.do(http.MethodGet, "/api/content/v1/hotels/NOPE", "", channel)
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("missing hotel: %d", res.StatusCode)
	}

	res, body = api.do(http.MethodGet, "/api/content/v1/hotels/MOV_EG_001/roomTypes?includeRoomAmenities=true&roomType=CLS_KNG", "", channel)
	if res.StatusCode != http.StatusOK || body["count"].(float64) != 1 {
		t.Fatalf("room types: %d %v", res.StatusCode, body)
	}
	rt := body["roomTypes"].([]any)[0].(map[string]any)
	if _, ok := rt["roomAmenities"].([]any); !ok {
		t.Fatalf("amenities requested: %v", rt["roomAmenities"])
	}
}

func TestContent_ReplaceHotel(t *testing.T) {
	api := newAPI(t)
	res, body := api.do(http.MethodPut, "/api/content/v1/hotels/MOV_SB_002", `{"hotelName":"Renamed","currencyCode":"EGP"}`, channel)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d %v", res.StatusCode, body)
	}
	if body["propertyInfo"].(map[string]any)["hotelName"] != "Renamed" {
		t.Fatalf("body: %v", body)
	}

	res, _ = api.do(http.MethodPut, "/api/content/v1/hotels/MOV_SB_002", `{"currencyCode":"EURO"}`, channel)
	if res.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("invalid currency: %d", res.StatusCode)
	}
	res, _ = api.do(http.MethodPut, "/api/content/v1/hotels/MOV_SB_002", `{"hotelName":`, channel)
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("malformed JSON: %d", res.StatusCode)
	}
}

func TestShop(t *testing.T) {
	api := newAPI(t)
	res, body := api.do(http.MethodGet, "/api/shop/v1/hotels?HotelCodes=MOV_EG_001,NOPE&ArrivalDate=2026-05-01&DepartureDate=2026-05-03", "", channel)
	if res.StatusCode != http.StatusOK || len(body["roomStays"].([]any)) != 1 {
		t.Fatalf("search: %d %v", res.StatusCode, body)
	}

	res, _ = api.do(http.MethodGet, "/api/shop/v1/hotels?HotelCodes=MOV_EG_001&ArrivalDate=2026-05-03&DepartureDate=2026-05-01", "", channel)
	if res.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("departure before arrival: %d", res.StatusCode)
	}
	res, _ = api.do(http.MethodGet, "/api/shop/v1/hotels?HotelCodes=MOV_EG_001", "", channel)
	if res.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("missing dates: %d", res.StatusCode)
	}

	res, body = api.do(http.MethodGet, "/api/shop/v1/hotels/MOV_EG_001/offers?ArrivalDate=2026-05-01&DepartureDate=2026-05-02&RoomTypes=CLS_KNG", "", channel)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("offers: %d", res.StatusCode)
	}
	stay := body["roomStays"].([]any)[0].(map[string]any)
	if len(stay["offers"].([]any)) != 1 {
		t.Fatalf("offers: %v", stay["offers"])
	}

	res, body = api.do(http.MethodGet, "/api/shop/v1/hotels/MOV_SB_002/offer?ArrivalDate=2026-05-01&DepartureDate=2026-05-02", "", channel)
	if res.StatusCode != http.StatusOK || body["roomType"].(map[string]any)["roomTypeCode"] != "CLSKG" {
		t.Fatalf("offer: %d %v", res.StatusCode, body)
	}
	res, _ = api.do(http.MethodGet, "/api/shop/v1/hotels/NOPE/offer?ArrivalDate=2026-05-01&DepartureDate=2026-05-02", "", channel)
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown hotel: %d", res.StatusCode)
	}
}

func TestInventory(t *testing.T) {
	api := newAPI(t)
	req, _ := http.NewRequest(http.MethodGet, api.ts.URL+"/api/inv/v1/hotels/H1/inventoryStatistics?dateRangeStart=2026-05-01&dateRangeEnd=2026-05-02&reportCode=RoomCalendarStatistics", nil)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	var out []map[string]any
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil || res.StatusCode != http.StatusOK || len(out) != 1 {
		t.Fatalf("inventory: %d %v %v", res.StatusCode, out, err)
	}

	r2, _ := api.do(http.MethodGet, "/api/inv/v1/hotels/H1/inventoryStatistics?dateRangeStart=2026-05-01&dateRangeEnd=2026-05-02&reportCode=Bogus", "", nil)
	if r2.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("bad report code: %d", r2.StatusCode)
	}
	r3, _ := api.do(http.MethodGet, "/api/inv/v1/hotels/H1/inventoryStatistics?dateRangeStart=2026-01-01&dateRangeEnd=2026-05-02&reportCode=SellLimitSummary", "", nil)
	if r3.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("range too long: %d", r3.StatusCode)
	}
}

func TestReservations_Flow(t *testing.T) {
	api := newAPI(t)
	base := "/api/rsv/v1/hotels/MOV_EG_001/reservations"

	res, body := api.do(http.MethodGet, base+"?surname=bauer", "", nil)
	if res.StatusCode != http.StatusOK || body["totalResults"].(float64) != 1 {
		t.Fatalf("search seeded: %d %v", res.StatusCode, body)
	}

	create := `{"reservations":{"reservation":[{"roomStay":{"arrivalDate":"2026-06-01","departureDate":"2026-06-03","guestCounts":{"adults":2}},
		"reservationGuests":[{"profileInfo":{"profile":{"customer":{"personName":[{"givenName":"Mona","surname":"Saleh"}]}}}}]}]}}`
	res, body = api.do(http.MethodPost, base, create, nil)
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("create: %d %v", res.StatusCode, body)
	}
	r := body["reservations"].(map[string]any)["reservation"].([]any)[0].(map[string]any)
	id := r["reservationIdList"].([]any)[0].(map[string]any)["id"].(string)

	res, _ = api.do(http.MethodGet, base+"/"+id, "", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("get: %d", res.StatusCode)
	}
	res, _ = api.do(http.MethodGet, "/api/rsv/v1/hotels/OTHER/reservations/"+id, "", nil)
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("get other hotel: %d", res.StatusCode)
	}

	res, body = api.do(http.MethodPut, base+"/"+id, create, nil)
	if res.StatusCode != http.StatusOK || body["reservations"].(map[string]any)["reservation"].([]any)[0].(map[string]any)["reservationStatus"] != "Updated" {
		t.Fatalf("update: %d %v", res.StatusCode, body)
	}

	res, body = api.do(http.MethodPost, base+"/"+id+"/cancellations", `{"reason":{"code":"CHG","description":"plans changed"}}`, nil)
	if res.StatusCode != http.StatusCreated || body["reservation"].(map[string]any)["status"] != "Cancelled" {
		t.Fatalf("cancel: %d %v", res.StatusCode, body)
	}
	res, _ = api.do(http.MethodPut, base+"/"+id, create, nil)
	if res.StatusCode != http.StatusConflict {
		t.Fatalf("update cancelled: %d", res.StatusCode)
	}

	res, _ = api.do(http.MethodPost, base, `{"reservations":{"reservation":[]}}`, nil)
	if res.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("empty create: %d", res.StatusCode)
	}
	res, _ = api.do(http.MethodPost, base, `not json`, nil)
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("malformed create: %d", res.StatusCode)
	}
}

func TestReservations_FallbackAndSummaries(t *testing.T) {
	api := newAPI(t)
	res, body := api.do(http.MethodGet, "/api/rsv/v1/hotels/EMPTY/reservations", "", nil)
	if res.StatusCode != http.StatusOK || body["totalResults"].(float64) != 1 {
		t.Fatalf("fallback: %d %v", res.StatusCode, body)
	}

	res, body = api.do(http.MethodGet, "/api/rsv/v1/hotels/MOV_EG_001/reservations/summary?arrivalDate=2026-03-10", "", nil)
	if res.StatusCode != http.StatusOK || body["count"].(float64) != 1 {
		t.Fatalf("summary: %d %v", res.StatusCode, body)
	}

	res, _ = api.do(http.MethodGet, "/api/rsv/v1/hotels/MOV_EG_001/reservations/statistics?startDate=2026-03-10&endDate=2026-03-01", "", nil)
	if res.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("statistics inverted range: %d", res.StatusCode)
	}
	res, _ = api.do(http.MethodGet, "/api/rsv/v1/hotels/MOV_EG_001/reservations/statistics?startDate=yesterday", "", nil)
	if res.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("unparsable date: %d", res.StatusCode)
	}
}

func TestPaging_TotalIgnoresWindow(t *testing.T) {
	api := newAPI(t)
	cases := []struct {
		path  string
		hdr   map[string]string
		list  string
		total float64
	}{
		{"/api/content/v1/hotels?limit=5&offset=10", channel, "hotels", 2},
		{"/api/content/v1/hotels/MOV_EG_001/roomTypes?limit=2&offset=4", channel, "roomTypes", 5},
		{"/api/content/v1/hotels/MOV_EG_001/roomTypes?limit=2&offset=10", channel, "roomTypes", 5},
		{"/api/rsv/v1/hotels/MOV_EG_001/reservations/summary?limit=2&offset=10", nil, "reservations", 2},
	}
	for _, tc := range cases {
		res, body := api.do(http.MethodGet, tc.path, "", tc.hdr)
		if res.StatusCode != http.StatusOK {
			t.Fatalf("%s: status %d", tc.path, res.StatusCode)
		}
		items, _ := body[tc.list].([]any)
		if body["totalResults"].(float64) != tc.total || body["count"].(float64) != float64(len(items)) {
			t.Fatalf("%s: %v", tc.path, body)
		}
		if body["offset"].(float64)+body["count"].(float64) > tc.total && len(items) > 0 {
			t.Fatalf("%s: window overruns total: %v", tc.path, body)
		}
	}

	res, body := api.do(http.MethodGet, "/api/rsv/v1/hotels/MOV_EG_001/reservations?limit=2&offset=10", "", nil)
	if res.StatusCode != http.StatusOK || body["totalResults"].(float64) != 2 || body["count"].(float64) != 0 || body["hasMore"] != false {
		t.Fatalf("reservations past end: %d %v", res.StatusCode, body)
	}

	res, body = api.do(http.MethodGet, "/api/rsv/v1/hotels/EMPTY/reservations?limit=5&offset=3", "", nil)
	if res.StatusCode != http.StatusOK || body["totalResults"].(float64) != 1 || body["offset"].(float64) != 0 {
		t.Fatalf("fallback at offset: %d %v", res.StatusCode, body)
	}
}

func TestReservations_CreateRejectsLongHotelID(t *testing.T) {
	api := newAPI(t)
	path := "/api/rsv/v1/hotels/" + strings.Repeat("H", 21) + "/reservations"
	create := `{"reservations":{"reservation":[{"roomStay":{"arrivalDate":"2026-06-01","departureDate":"2026-06-03"}}]}}`
	res, body := api.do(http.MethodPost, path, create, nil)
	if res.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status %d %v", res.StatusCode, body)
	}
}
