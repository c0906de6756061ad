package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"opera_mock/internal/app"
)

func readReservationPath(r *http.Request) reservationPath {
	return reservationPath{HotelID: chi.URLParam(r, "hotelId"), ReservationID: chi.URLParam(r, "reservationId")}
}

func (h *Handlers) searchReservations(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r.URL.Query())
	p := reservationSearchParams{
		pageParams:    readPage(q, app.DefaultReservationLimit),
		HotelID:       chi.URLParam(r, "hotelId"),
		Surname:       q.str("surname"),
		GivenName:     q.str("givenName"),
		ArrivalStart:  q.date("arrivalStartDate"),
		ArrivalEnd:    q.date("arrivalEndDate"),
		Confirmations: q.csv("confirmationNumberList"),
	}
	if err := check(q, p); err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Reservations.Search(r.Context(), p.query())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) reservationSummary(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r.URL.Query())
	p := reservationSummaryParams{
		pageParams:  readPage(q, app.DefaultSummaryLimit),
		HotelID:     chi.URLParam(r, "hotelId"),
		LastName:    q.str("lastName"),
		ArrivalDate: q.date("arrivalDate"),
	}
	if err := check(q, p); err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Reservations.Summary(r.Context(), p.HotelID, p.LastName, p.ArrivalDate, p.page())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) reservationStatistics(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r.URL.Query())
	p := reservationStatisticsParams{
		pageParams: readPage(q, app.DefaultStatisticsLimit),
		HotelID:    chi.URLParam(r, "hotelId"),
		Start:      q.date("startDate"),
		End:        q.date("endDate"),
	}
	if err := check(q, p); err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Reservations.Statistics(r.Context(), p.HotelID, p.Start, p.End, p.page())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) getReservation(w http.ResponseWriter, r *http.Request) {
	p := readReservationPath(r)
	if err := check(newQuery(nil), p); err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Reservations.Get(r.Context(), p.HotelID, p.ReservationID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) createReservation(w http.ResponseWriter, r *http.Request) {
	p := hotelPath{HotelID: chi.URLParam(r, "hotelId")}
	var req app.ReservationRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := check(newQuery(nil), p); err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Reservations.Create(r.Context(), p.HotelID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, out)
}

func (h *Handlers) updateReservation(w http.ResponseWriter, r *http.Request) {
	p := readReservationPath(r)
	var req app.ReservationRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := check(newQuery(nil), p); err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Reservations.Update(r.Context(), p.HotelID, p.ReservationID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) cancelReservation(w http.ResponseWriter, r *http.Request) {
	p := readReservationPath(r)
	var req app.CancelRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := check(newQuery(nil), p); err != nil {
		writeError(w, r, err)
		return
	}
	if err := check(newQuery(nil), req); err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Reservations.Cancel(r.Context(), p.HotelID, p.ReservationID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, out)
}
