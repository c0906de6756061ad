//go:build integration

package integration

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
	mysqlrepo "opera_mock/internal/storage/mysql"
	"opera_mock/internal/storage/mysql/mysqltest"
)

func getJSON(t *testing.T, req *http.Request, want int) map[string]any {
	t.Helper()
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL, err)
	}
	defer res.Body.Close()
	if res.StatusCode != want {
		t.Fatalf("%s %s: status %d, want %d", req.Method, req.URL.Path, res.StatusCode, want)
	}
	var out map[string]any
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestHTTP_EndToEnd_ImportThenServe(t *testing.T) {
	ctx := context.Background()
	repo := mysqlrepo.New(mysqltest.Open(t))

	src, err := fixtures.Load()
	if err != nil {
		t.Fatal(err)
	}
	report, err := app.NewImportService(src, repo, nil).Run(ctx, nil, 2)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Imported != 2 {
		t.Fatalf("import report: %+v", report)
	}
	rsv := app.NewReservationService(repo)
	if n, err := src.SeedReservations(ctx, repo, rsv); err != nil || n != 2 {
		t.Fatalf("seed reservations: n=%d err=%v", n, err)
	}

	srv := server.New(10 * time.Second)
	srv.MountHandlers(&server.Handlers{
		Content:      app.NewContentService(repo, nil, time.Minute),
		Shop:         app.NewShopService(repo),
		Inventory:    app.NewInventoryService(),
		Reservations: rsv,
	})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/content/v1/hotels/MOV_EG_001/roomTypes?includeRoomAmenities=true", nil)
	req.Header.Set("x-channelCode", "WEB")
	body := getJSON(t, req, http.StatusOK)
	if body["totalResults"].(float64) != 5 {
		t.Fatalf("room types: %v", body)
	}

	create := `{"reservations":{"reservation":[{"roomStay":{"arrivalDate":"2026-07-01","departureDate":"2026-07-04"},
		"reservationGuests":[{"profileInfo":{"profile":{"customer":{"personName":[{"givenName":"Omar","surname":"Fahmy"}]}}}}]}]}}`
	req, _ = http.NewRequest(http.MethodPost, ts.URL+"/api/rsv/v1/hotels/MOV_EG_001/reservations", strings.NewReader(create))
	req.Header.Set("Content-Type", "application/json")
	body = getJSON(t, req, http.StatusCreated)
	r := body["reservations"].(map[string]any)["reservation"].([]any)[0].(map[string]any)
	ids := r["reservationIdList"].([]any)
	conf := ids[1].(map[string]any)["id"].(string)

	req, _ = http.NewRequest(http.MethodGet, ts.URL+"/api/rsv/v1/hotels/MOV_EG_001/reservations?confirmationNumberList="+conf, nil)
	body = getJSON(t, req, http.StatusOK)
	if body["totalResults"].(float64) != 1 {
		t.Fatalf("search by confirmation: %v", body)
	}

	req, _ = http.NewRequest(http.MethodGet, ts.URL+"/api/rsv/v1/hotels/MOV_EG_001/reservations?surname=hassan&givenName=amira", nil)
	body = getJSON(t, req, http.StatusOK)
	if body["totalResults"].(float64) != 1 {
		t.Fatalf("search seeded guest: %v", body)
	}
}
