package app

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"opera_mock/internal/domain"
)

// ---- requests ----

type ReservationInput struct {
	RoomStay          *domain.RoomStay          `json:"roomStay"`
	ReservationGuests []domain.ReservationGuest `json:"reservationGuests"`
}

type ReservationInputList struct {
	Reservation []ReservationInput `json:"reservation"`
}

// ReservationRequest is the create and update body.
type ReservationRequest struct {
	Reservations ReservationInputList `json:"reservations"`
}

type CancelReason struct {
	Code        *string `json:"code" validate:"omitempty,max=20"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

type CancelRequest struct {
	Reason *CancelReason `json:"reason"`
}

// ---- service ----

// ReservationService owns the reservation lifecycle: Reserved, then Updated any number
// of times, then Cancelled. A cancelled reservation may be cancelled again but not updated.
type ReservationService struct {
	repo domain.ReservationRepository

	// OnFallback is called with the endpoint name whenever a synthetic record is served.
	OnFallback func(endpoint string)

	now   func() time.Time
	newID func(digits int) string
}

func NewReservationService(r domain.ReservationRepository) *ReservationService {
	return &ReservationService{
		repo:  r,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuidDigits,
	}
}

// WithClock replaces the time source and id generator; nil keeps the current one.
func (s *ReservationService) WithClock(now func() time.Time, newID func(int) string) *ReservationService {
	if now != nil {
		s.now = now
	}
	if newID != nil {
		s.newID = newID
	}
	return s
}

// uuidDigits returns the first n decimal digits of a random UUID read as a 128-bit integer.
func uuidDigits(n int) string {
	var s string
	for len(s) < n {
		u := uuid.New()
		s += new(big.Int).SetBytes(u[:]).String()
	}
	return s[:n]
}

func (s *ReservationService) fallback(endpoint string) {
	if s.OnFallback != nil {
		s.OnFallback(endpoint)
	}
}

func (s *ReservationService) search(ctx context.Context, q domain.ReservationQuery) (SearchResult[domain.Reservation], error) {
	rows, total, err := fetchPage(ctx, q.Page,
		func(ctx context.Context) ([]domain.Reservation, error) { return s.repo.SearchReservations(ctx, q) },
		func(ctx context.Context) (int, error) { return s.repo.CountReservations(ctx, q) },
	)
	if err != nil {
		return SearchResult[domain.Reservation]{}, err
	}
	return resolve(rows, total, q.Page, func() domain.Reservation { return exampleReservation(q.HotelID) }), nil
}

// Search lists reservations matching q, or the example reservation when nothing matches.
func (s *ReservationService) Search(ctx context.Context, q domain.ReservationQuery) (ReservationsResponse, error) {
	res, err := s.search(ctx, q)
	if err != nil {
		return ReservationsResponse{}, err
	}
	if res.IsSynthetic() {
		s.fallback("reservations")
	}
	items := mapSlice(res.Items(), toReservationView)
	pg := res.Page(q.Page)
	return ReservationsResponse{
		Reservations: ReservationList{Reservation: items},
		TotalResults: res.Total(),
		Count:        len(items),
		HasMore:      hasMore(pg, len(items), res.Total()),
		Limit:        pg.Limit,
		Offset:       pg.Offset,
	}, nil
}

// Summary lists brief reservation rows. A non-nil arrival narrows to that exact date.
func (s *ReservationService) Summary(ctx context.Context, hotelID, lastName string, arrival *civil.Date, pg domain.Page) (ReservationSummaryResponse, error) {
	q := domain.ReservationQuery{HotelID: hotelID, Surname: lastName, ArrivalFrom: arrival, ArrivalTo: arrival, Page: pg}
	res, err := s.search(ctx, q)
	if err != nil {
		return ReservationSummaryResponse{}, err
	}
	if res.IsSynthetic() {
		s.fallback("reservations_summary")
	}
	items := mapSlice(res.Items(), toReservationSummary)
	pg = res.Page(pg)
	return ReservationSummaryResponse{
		Reservations: items,
		TotalResults: res.Total(),
		Count:        len(items),
		HasMore:      hasMore(pg, len(items), res.Total()),
		Limit:        pg.Limit,
		Offset:       pg.Offset,
	}, nil
}

// Statistics lists reservations last modified within [start, end], whole days inclusive.
func (s *ReservationService) Statistics(ctx context.Context, hotelID string, start, end *civil.Date, pg domain.Page) (CheckDistributionReservationsSummary, error) {
	if start != nil && end != nil && end.Before(*start) {
		return CheckDistributionReservationsSummary{}, fmt.Errorf("endDate before startDate: %w", domain.ErrInvalidInput)
	}
	q := domain.ReservationQuery{HotelID: hotelID, UpdatedFrom: start, UpdatedTo: end, Page: pg}
	res, err := s.search(ctx, q)
	if err != nil {
		return CheckDistributionReservationsSummary{}, err
	}
	if res.IsSynthetic() {
		s.fallback("reservations_statistics")
	}
	items := mapSlice(res.Items(), toDistributionSummary)
	pg = res.Page(pg)
	return CheckDistributionReservationsSummary{
		CheckReservations: items,
		HasMore:           hasMore(pg, len(items), res.Total()),
		TotalResults:      res.Total(),
	}, nil
}

// Get never synthesizes; a reservation of another hotel is reported as missing.
func (s *ReservationService) Get(ctx context.Context, hotelID, reservationID string) (ReservationsResponse, error) {
	r, err := s.load(ctx, hotelID, reservationID)
	if err != nil {
		return ReservationsResponse{}, err
	}
	return single(r), nil
}

func (s *ReservationService) load(ctx context.Context, hotelID, reservationID string) (domain.Reservation, error) {
	r, err := s.repo.GetReservation(ctx, reservationID)
	if err != nil {
		return domain.Reservation{}, err
	}
	if r.HotelID != hotelID {
		return domain.Reservation{}, fmt.Errorf("reservation %s at %s: %w", reservationID, hotelID, domain.ErrNotFound)
	}
	return r, nil
}

func single(r domain.Reservation) ReservationsResponse {
	return ReservationsResponse{
		Reservations: ReservationList{Reservation: []ReservationView{toReservationView(r)}},
		TotalResults: 1,
		Count:        1,
	}
}

// fields derives the guest-supplied columns from one request entry.
func (s *ReservationService) fields(in ReservationInput) domain.ReservationFields {
	today := civil.DateOf(s.now())
	f := domain.ReservationFields{ArrivalDate: today, DepartureDate: today, Guests: in.ReservationGuests}
	if f.Guests == nil {
		f.Guests = []domain.ReservationGuest{}
	}
	if in.RoomStay != nil {
		f.RoomStay = *in.RoomStay
		if in.RoomStay.ArrivalDate != nil {
			f.ArrivalDate = *in.RoomStay.ArrivalDate
		}
		if in.RoomStay.DepartureDate != nil {
			f.DepartureDate = *in.RoomStay.DepartureDate
		}
		if gc := in.RoomStay.GuestCounts; gc != nil {
			f.Adults, f.Children = gc.Adults, gc.Children
		}
	}
	f.GuestFirstName, f.GuestLastName = domain.PrimaryName(f.Guests)
	return f
}

// Create books the first entry of the request under freshly generated identifiers.
// A generated id that collides with an existing one surfaces as ErrConflict.
func (s *ReservationService) Create(ctx context.Context, hotelID string, req ReservationRequest) (ReservationsResponse, error) {
	if len(req.Reservations.Reservation) == 0 {
		return ReservationsResponse{}, fmt.Errorf("reservations.reservation is empty: %w", domain.ErrInvalidInput)
	}
	f := s.fields(req.Reservations.Reservation[0])
	ts := s.now()
	r := domain.Reservation{
		ReservationID:      s.newID(6),
		ConfirmationNumber: s.newID(8),
		HotelID:            hotelID,
		Status:             domain.StatusReserved,
		CreatedAt:          ts,
		UpdatedAt:          ts,
	}
	if err := copier.Copy(&r, &f); err != nil {
		return ReservationsResponse{}, fmt.Errorf("copy reservation fields: %w", err)
	}
	saved, err := s.repo.InsertReservation(ctx, r)
	if err != nil {
		return ReservationsResponse{}, err
	}
	return single(saved), nil
}

// Update replaces every guest-supplied field with the first request entry and marks the
// reservation Updated. An empty entry list only changes the status.
func (s *ReservationService) Update(ctx context.Context, hotelID, reservationID string, req ReservationRequest) (ReservationsResponse, error) {
	cur, err := s.load(ctx, hotelID, reservationID)
	if err != nil {
		return ReservationsResponse{}, err
	}
	if !cur.CanUpdate() {
		return ReservationsResponse{}, fmt.Errorf("update reservation %s in status %s: %w", reservationID, cur.Status, domain.ErrInvalidTransition)
	}
	if len(req.Reservations.Reservation) > 0 {
		f := s.fields(req.Reservations.Reservation[0])
		if err := copier.Copy(&cur, &f); err != nil {
			return ReservationsResponse{}, fmt.Errorf("copy reservation fields: %w", err)
		}
	}
	cur.Status = domain.StatusUpdated
	cur.UpdatedAt = s.now()
	saved, err := s.repo.UpdateReservation(ctx, cur)
	if err != nil {
		return ReservationsResponse{}, err
	}
	return single(saved), nil
}

// Cancel issues a new cancellation number on every call.
func (s *ReservationService) Cancel(ctx context.Context, hotelID, reservationID string, req CancelRequest) (CancelReservationResponse, error) {
	cur, err := s.load(ctx, hotelID, reservationID)
	if err != nil {
		return CancelReservationResponse{}, err
	}
	c := &domain.Cancellation{Number: s.newID(10)}
	if req.Reason != nil {
		c.ReasonCode, c.ReasonDescription = req.Reason.Code, req.Reason.Description
	}
	cur.Status = domain.StatusCancelled
	cur.Cancellation = c
	cur.UpdatedAt = s.now()
	saved, err := s.repo.UpdateReservation(ctx, cur)
	if err != nil {
		return CancelReservationResponse{}, err
	}
	return CancelReservationResponse{Reservation: toCancelDetails(saved)}, nil
}
