package httpserver

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/go-playground/validator/v10"

	"opera_mock/internal/app"
	"opera_mock/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their wire name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"param", "json"} {
			if name := strings.Split(f.Tag.Get(tag), ",")[0]; name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	v.RegisterStructValidation(stayRangeValid, stayParams{})
	return v
}

// invalidParams carries the offending parameter names; it maps to 422.
type invalidParams struct{ fields []string }

func (e *invalidParams) Error() string {
	return "invalid parameters: " + strings.Join(e.fields, ", ")
}

func (e *invalidParams) Unwrap() error { return domain.ErrInvalidInput }

// check runs struct validation plus any parse failures collected by q.
func check(q *query, v any) error {
	fields := append([]string(nil), q.bad...)
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
		}
	}
	if len(fields) > 0 {
		return &invalidParams{fields: fields}
	}
	return nil
}

// ---- query string reader ----

type query struct {
	v   url.Values
	bad []string
}

func newQuery(v url.Values) *query { return &query{v: v} }

func (q *query) str(name string) string { return strings.TrimSpace(q.v.Get(name)) }

func (q *query) integer(name string, def int) int {
	s := q.str(name)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		q.bad = append(q.bad, name)
		return def
	}
	return n
}

func (q *query) flag(name string) bool {
	s := q.str(name)
	if s == "" {
		return false
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		q.bad = append(q.bad, name)
	}
	return b
}

func (q *query) date(name string) *civil.Date {
	s := q.str(name)
	if s == "" {
		return nil
	}
	d, err := civil.ParseDate(s)
	if err != nil {
		q.bad = append(q.bad, name)
		return nil
	}
	return &d
}

// csv accepts both repeated parameters and comma separated values.
func (q *query) csv(name string) []string {
	var out []string
	for _, raw := range q.v[name] {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// ---- parameter sets ----

type pageParams struct {
	Limit  int `param:"limit" validate:"min=0,max=1000"`
	Offset int `param:"offset" validate:"min=0"`
}

func (p pageParams) page() domain.Page { return domain.Page{Limit: p.Limit, Offset: p.Offset} }

func readPage(q *query, defLimit int) pageParams {
	return pageParams{Limit: q.integer("limit", defLimit), Offset: q.integer("offset", 0)}
}

type roomTypesParams struct {
	pageParams
	HotelCode        string `param:"hotelCode" validate:"required,max=20"`
	RoomType         string `param:"roomType" validate:"omitempty,max=20"`
	IncludeAmenities bool   `param:"includeRoomAmenities"`
}

type stayParams struct {
	Arrival   *civil.Date `param:"ArrivalDate" validate:"required"`
	Departure *civil.Date `param:"DepartureDate" validate:"required"`
	Adults    int         `param:"Adults" validate:"min=1,max=99"`
	Children  int         `param:"Children" validate:"min=0,max=99"`
}

// stayRangeValid rejects a departure before the arrival.
func stayRangeValid(sl validator.StructLevel) {
	p := sl.Current().Interface().(stayParams)
	if p.Arrival != nil && p.Departure != nil && p.Departure.Before(*p.Arrival) {
		sl.ReportError(p.Departure, "DepartureDate", "Departure", "gtearrival", "")
	}
}

func readStay(q *query) stayParams {
	return stayParams{
		Arrival:   q.date("ArrivalDate"),
		Departure: q.date("DepartureDate"),
		Adults:    q.integer("Adults", 1),
		Children:  q.integer("Children", 0),
	}
}

func (p stayParams) stay(roomTypes []string) app.StayQuery {
	return app.StayQuery{Arrival: *p.Arrival, Departure: *p.Departure, RoomTypes: roomTypes}
}

type shopSearchParams struct {
	Stay       stayParams
	HotelCodes []string `param:"HotelCodes" validate:"required,min=1,max=100,dive,required,max=20"`
}

type offersParams struct {
	Stay      stayParams
	HotelCode string   `param:"hotelCode" validate:"required,max=20"`
	RoomTypes []string `param:"RoomTypes" validate:"omitempty,dive,max=20"`
}

type offerParams struct {
	Stay      stayParams
	HotelCode string `param:"hotelCode" validate:"required,max=20"`
	RoomType  string `param:"RoomType" validate:"omitempty,max=20"`
}

type inventoryParams struct {
	HotelID    string      `param:"hotelId" validate:"required,max=2000"`
	Start      *civil.Date `param:"dateRangeStart" validate:"required"`
	End        *civil.Date `param:"dateRangeEnd" validate:"required"`
	ReportCode string      `param:"reportCode" validate:"required,oneof=DetailedAvailabiltySummary RoomCalendarStatistics SellLimitSummary RoomsAvailabilitySummary"`
}

type reservationSearchParams struct {
	pageParams
	HotelID       string      `param:"hotelId" validate:"required,max=20"`
	Surname       string      `param:"surname" validate:"omitempty,max=40"`
	GivenName     string      `param:"givenName" validate:"omitempty,max=40"`
	ArrivalStart  *civil.Date `param:"arrivalStartDate"`
	ArrivalEnd    *civil.Date `param:"arrivalEndDate"`
	Confirmations []string    `param:"confirmationNumberList" validate:"omitempty,max=100,dive,required,max=50"`
}

func (p reservationSearchParams) query() domain.ReservationQuery {
	return domain.ReservationQuery{
		HotelID:             p.HotelID,
		Surname:             p.Surname,
		GivenName:           p.GivenName,
		ArrivalFrom:         p.ArrivalStart,
		ArrivalTo:           p.ArrivalEnd,
		ConfirmationNumbers: p.Confirmations,
		Page:                p.page(),
	}
}

type reservationSummaryParams struct {
	pageParams
	HotelID     string      `param:"hotelId" validate:"required,max=20"`
	LastName    string      `param:"lastName" validate:"omitempty,max=40"`
	ArrivalDate *civil.Date `param:"arrivalDate"`
}

type reservationStatisticsParams struct {
	pageParams
	HotelID string      `param:"hotelId" validate:"required,max=20"`
	Start   *civil.Date `param:"startDate"`
	End     *civil.Date `param:"endDate"`
}

type hotelPath struct {
	HotelID string `param:"hotelId" validate:"required,max=20"`
}

type reservationPath struct {
	HotelID       string `param:"hotelId" validate:"required,max=20"`
	ReservationID string `param:"reservationId" validate:"required,max=50"`
}
