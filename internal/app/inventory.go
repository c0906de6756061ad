package app

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"opera_mock/internal/domain"
)

// MaxInventoryDays bounds a single inventory statistics request.
const MaxInventoryDays = 62

type NumericCategorySummary struct {
	Code  string  `json:"code"`
	Value float64 `json:"value"`
}

type StatisticSet struct {
	Revenue       []any                    `json:"revenue"`
	Inventory     []NumericCategorySummary `json:"inventory"`
	StatisticDate civil.Date               `json:"statisticDate"`
	WeekendDate   bool                     `json:"weekendDate"`
}

type StatisticCode struct {
	StatisticDate    []StatisticSet `json:"statisticDate"`
	StatCode         string         `json:"statCode"`
	StatCategoryCode string         `json:"statCategoryCode"`
	StatCodeClass    *string        `json:"statCodeClass"`
	Description      *string        `json:"description"`
}

type Statistic struct {
	Statistics  []StatisticCode `json:"statistics"`
	HotelName   string          `json:"hotelName"`
	ReportCode  string          `json:"reportCode"`
	Description string          `json:"description"`
}

// InventoryService synthesizes availability; nothing is read from the store.
type InventoryService struct{}

func NewInventoryService() *InventoryService { return &InventoryService{} }

func isWeekend(d civil.Date) bool {
	wd := d.In(time.UTC).Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Statistics returns one statistic set per day of the inclusive range.
func (s *InventoryService) Statistics(hotelID string, start, end civil.Date, reportCode string) ([]Statistic, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("dateRangeEnd before dateRangeStart: %w", domain.ErrInvalidInput)
	}
	days := end.DaysSince(start) + 1
	if days > MaxInventoryDays {
		return nil, fmt.Errorf("date range of %d days exceeds %d: %w", days, MaxInventoryDays, domain.ErrInvalidInput)
	}

	sets := make([]StatisticSet, 0, days)
	for d := start; !d.After(end); d = d.AddDays(1) {
		available := 100.0
		weekend := isWeekend(d)
		if weekend {
			available = 80
		}
		sets = append(sets, StatisticSet{
			StatisticDate: d,
			WeekendDate:   weekend,
			Inventory: []NumericCategorySummary{
				{Code: "SequenceId", Value: 1},
				{Code: "Available", Value: available},
			},
		})
	}

	return []Statistic{{
		Statistics: []StatisticCode{
			{StatisticDate: sets, StatCode: hotelID, StatCategoryCode: "HotelCode"},
			{StatisticDate: sets, StatCode: "STD", StatCategoryCode: "HotelRoomCode", StatCodeClass: ptr("ALL"), Description: ptr("Standard Room")},
		},
		HotelName:   "Hotel " + hotelID,
		ReportCode:  reportCode,
		Description: "Mock Inventory Statistics",
	}}, nil
}
