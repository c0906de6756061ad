package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handlers) searchHotels(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r.URL.Query())
	p := shopSearchParams{Stay: readStay(q), HotelCodes: q.csv("HotelCodes")}
	if err := check(q, p); err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Shop.SearchHotels(r.Context(), p.HotelCodes, p.Stay.stay(nil))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) listOffers(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r.URL.Query())
	p := offersParams{Stay: readStay(q), HotelCode: chi.URLParam(r, "hotelCode"), RoomTypes: q.csv("RoomTypes")}
	if err := check(q, p); err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Shop.Offers(r.Context(), p.HotelCode, p.Stay.stay(p.RoomTypes))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) getOffer(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r.URL.Query())
	p := offerParams{Stay: readStay(q), HotelCode: chi.URLParam(r, "hotelCode"), RoomType: q.str("RoomType")}
	if err := check(q, p); err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Shop.OfferDetails(r.Context(), p.HotelCode, p.RoomType, p.Stay.stay(nil))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) inventoryStatistics(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r.URL.Query())
	p := inventoryParams{
		HotelID:    chi.URLParam(r, "hotelId"),
		Start:      q.date("dateRangeStart"),
		End:        q.date("dateRangeEnd"),
		ReportCode: q.str("reportCode"),
	}
	if err := check(q, p); err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Inventory.Statistics(p.HotelID, *p.Start, *p.End, p.ReportCode)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}
