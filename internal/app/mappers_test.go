package app

import (
	"encoding/json"
	"strings"
	"testing"

	"opera_mock/internal/domain"
)

func TestToRoomTypeView_Amenities(t *testing.T) {
	rt := domain.RoomType{
		Code:      "CLSKG",
		Amenities: []domain.RoomAmenity{{RoomAmenity: "TV", Quantity: ptr(2)}},
	}

	v := toRoomTypeView(rt, false)
	if v.RoomAmenities != nil || v.Occupancy != nil {
		t.Fatalf("expected no amenities and no occupancy: %+v", v)
	}
	b, _ := json.Marshal(v)
	if !strings.Contains(string(b), `"roomAmenities":null`) || !strings.Contains(string(b), `"description":[]`) {
		t.Fatalf("unexpected JSON: %s", b)
	}

	v = toRoomTypeView(rt, true)
	if len(v.RoomAmenities) != 1 || v.RoomAmenities[0].Quantity != 2 {
		t.Fatalf("amenities: %+v", v.RoomAmenities)
	}

	rt.Amenities = nil
	rt.Occupancy = domain.Occupancy{MaxOccupancy: ptr(3)}
	v = toRoomTypeView(rt, true)
	if v.RoomAmenities == nil || len(v.RoomAmenities) != 0 {
		t.Fatalf("requested amenities must be an empty list: %#v", v.RoomAmenities)
	}
	if v.Occupancy == nil || *v.Occupancy.MaxOccupancy != 3 {
		t.Fatalf("occupancy: %+v", v.Occupancy)
	}
}

func TestToReservationView_Defaults(t *testing.T) {
	given := "Ana"
	r := domain.Reservation{
		ReservationID:      "123456",
		ConfirmationNumber: "87654321",
		HotelID:            "H1",
		Status:             domain.StatusReserved,
		RoomStay:           domain.RoomStay{GuestCounts: &domain.GuestCounts{}},
		Guests: []domain.ReservationGuest{{
			ProfileInfo: &domain.ProfileInfo{Profile: &domain.Profile{Customer: &domain.Customer{
				PersonName: []domain.PersonName{{GivenName: &given}},
			}}},
		}},
	}
	v := toReservationView(r)
	if len(v.ReservationIDList) != 2 || v.ReservationIDList[1].Type != idTypeConfirmation {
		t.Fatalf("ids: %+v", v.ReservationIDList)
	}
	if gc := v.RoomStay.GuestCounts; gc == nil || *gc.Adults != 1 || *gc.Children != 0 {
		t.Fatalf("guest counts: %+v", v.RoomStay.GuestCounts)
	}
	g := v.ReservationGuests[0]
	if g.Primary == nil || !*g.Primary || *g.ProfileInfo.Profile.ProfileType != "Guest" {
		t.Fatalf("guest defaults: %+v", g)
	}
	if *g.ProfileInfo.Profile.Customer.PersonName[0].NameType != "Primary" {
		t.Fatal("nameType default missing")
	}
	// The stored record is not touched by the defaults.
	if r.Guests[0].Primary != nil || r.RoomStay.GuestCounts.Adults != nil {
		t.Fatal("view mapping mutated the reservation")
	}
	if v.CancellationNumber != nil {
		t.Fatal("no cancellation expected")
	}
}

func TestToReservationSummary(t *testing.T) {
	r := exampleReservation("H1")
	s := toReservationSummary(r)
	if s.GuestName != "Jennifer Clarke" || s.Status != domain.StatusReserved {
		t.Fatalf("unexpected: %+v", s)
	}
	d := toDistributionSummary(r)
	if d.ChannelCode != "WEB" || d.NumberOfRooms != 1 || d.LegNumber != "1" || d.CreatorID != "System" {
		t.Fatalf("unexpected: %+v", d)
	}
}
