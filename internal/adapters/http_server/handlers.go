package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"opera_mock/internal/app"
	"opera_mock/internal/domain"
)

type Handlers struct {
	Content      *app.ContentService
	Shop         *app.ShopService
	Inventory    *app.InventoryService
	Reservations *app.ReservationService
}

type problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/api", func(api chi.Router) {
		api.Route("/content/v1", func(r chi.Router) {
			r.Use(RequireHeader(headerChannel))
			r.Get("/hotels", h.listHotels)
			r.Get("/hotels/{hotelCode}", h.getHotel)
			r.Put("/hotels/{hotelCode}", h.replaceHotel)
			r.Get("/hotels/{hotelCode}/roomTypes", h.listRoomTypes)
		})
		api.Route("/shop/v1", func(r chi.Router) {
			r.Use(RequireHeader(headerChannel))
			r.Get("/hotels", h.searchHotels)
			r.Get("/hotels/{hotelCode}/offers", h.listOffers)
			r.Get("/hotels/{hotelCode}/offer", h.getOffer)
		})
		api.Route("/inv/v1", func(r chi.Router) {
			r.Get("/hotels/{hotelId}/inventoryStatistics", h.inventoryStatistics)
		})
		api.Route("/rsv/v1/hotels/{hotelId}/reservations", func(r chi.Router) {
			r.Get("/", h.searchReservations)
			r.Post("/", h.createReservation)
			r.Get("/summary", h.reservationSummary)
			r.Get("/statistics", h.reservationStatistics)
			r.Get("/{reservationId}", h.getReservation)
			r.Put("/{reservationId}", h.updateReservation)
			r.Post("/{reservationId}/cancellations", h.cancelReservation)
		})
	})
}

func writeProblem(w http.ResponseWriter, r *http.Request, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	p := problem{Type: "about:blank", Title: title, Status: status, Detail: detail, Instance: r.URL.Path}
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps domain sentinels to problem responses; anything else is a logged 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var mb *malformedBody
	switch {
	case errors.As(err, &mb):
		writeProblem(w, r, http.StatusBadRequest, "Bad Request", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, r, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrInvalidTransition):
		writeProblem(w, r, http.StatusConflict, "Invalid status transition", err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeProblem(w, r, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		writeProblem(w, r, http.StatusUnprocessableEntity, "Validation failed", err.Error())
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Str("method", r.Method).Msg("request failed")
		writeProblem(w, r, http.StatusInternalServerError, "Internal Server Error", "unexpected error")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeJSON sends v; successful GETs carry an ETag and honor If-None-Match.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, r, http.StatusInternalServerError, "Internal Server Error", "response encoding failed")
		return
	}
	if r.Method == http.MethodGet && status == http.StatusOK && etag != "" {
		// If client already has this version, short-circuit.
		if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
			w.Header().Set("ETag", etag)
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", etag)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

// malformedBody marks a request body that is not valid JSON; it maps to 400.
type malformedBody struct{ err error }

func (e *malformedBody) Error() string { return "malformed body: " + e.err.Error() }

// decodeBody treats an empty body as an empty object.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return &malformedBody{err: err}
	}
	return nil
}

// ---- content ----

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r.URL.Query())
	p := readPage(q, app.DefaultContentLimit)
	if err := check(q, p); err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Content.ListHotels(r.Context(), p.page())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	out, err := h.Content.GetHotel(r.Context(), chi.URLParam(r, "hotelCode"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) replaceHotel(w http.ResponseWriter, r *http.Request) {
	var req app.ReplacePropertyRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := check(newQuery(nil), req); err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Content.ReplaceHotel(r.Context(), chi.URLParam(r, "hotelCode"), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) listRoomTypes(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r.URL.Query())
	p := roomTypesParams{
		pageParams:       readPage(q, app.DefaultContentLimit),
		HotelCode:        chi.URLParam(r, "hotelCode"),
		RoomType:         q.str("roomType"),
		IncludeAmenities: q.flag("includeRoomAmenities"),
	}
	if err := check(q, p); err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Content.ListRoomTypes(r.Context(),
		domain.RoomTypeQuery{HotelCode: p.HotelCode, RoomType: p.RoomType, Page: p.page()},
		p.IncludeAmenities)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}
