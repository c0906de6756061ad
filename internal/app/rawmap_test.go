package app

import (
	"testing"
)

func TestMapRawProperty_SnakeCase(t *testing.T) {
	raw := map[string]any{
		"hotel_code":            "MOV_EG_001",
		"hotel_name":            "Resort",
		"city_name":             "El Gouna",
		"country_code":          "EG",
		"latitude":              27.39,
		"longitude":             33.68,
		"total_number_of_rooms": float64(554),
		"property_amenities": []any{
			map[string]any{"hotelAmenity": "POOL", "description": "Outdoor pool"},
			map[string]any{"name": "Free WiFi"},
			"Kids Club",
		},
		"point_of_interest": []any{
			map[string]any{"name": "Airport", "distance": "26,5", "unit": "km"},
			map[string]any{"distance": 3},
		},
		"legacy_flag": "x",
	}
	p, err := mapRawProperty(raw)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if p.HotelCode != "MOV_EG_001" || p.HotelID != "MOV_EG_001" {
		t.Fatalf("code/id: %q %q", p.HotelCode, p.HotelID)
	}
	if deref(p.Name) != "Resort" || deref(p.City) != "El Gouna" || deref(p.CountryCode) != "EG" {
		t.Fatalf("unexpected names: %+v", p)
	}
	if p.Latitude == nil || *p.Latitude != 27.39 || p.TotalRooms == nil || *p.TotalRooms != 554 {
		t.Fatalf("numbers: %+v %+v", p.Latitude, p.TotalRooms)
	}
	if len(p.Amenities) != 3 {
		t.Fatalf("amenities: %+v", p.Amenities)
	}
	if p.Amenities[0].AmenityCode() != "POOL" || p.Amenities[1].Code != "FREE_WIFI" || p.Amenities[2].Code != "KIDS_CLUB" {
		t.Fatalf("amenity codes: %+v", p.Amenities)
	}
	if len(p.PointsOfInterest) != 1 || *p.PointsOfInterest[0].Distance != 26.5 {
		t.Fatalf("poi: %+v", p.PointsOfInterest)
	}
	extras, _ := p.Meta["extras"].(map[string]any)
	if extras["legacy_flag"] != "x" {
		t.Fatalf("expected legacy_flag in meta.extras, got %v", p.Meta)
	}
}

func TestMapRawProperty_CamelCaseNested(t *testing.T) {
	raw := map[string]any{
		"hotelId":   "H-2",
		"hotelCode": "MOV_SB_002",
		"address": map[string]any{
			"lines":       []any{"Sharm El Sheikh", "Naama Bay"},
			"city":        "Sharm",
			"countryCode": "EG",
		},
		"coordinates": map[string]any{"latitude": "27,9158", "longitude": "34,3299"},
		"meta":        map[string]any{"source": "manual"},
	}
	p, err := mapRawProperty(raw)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if p.HotelID != "H-2" || len(p.AddressLines) != 2 || deref(p.City) != "Sharm" {
		t.Fatalf("unexpected: %+v", p)
	}
	if p.Latitude == nil || *p.Latitude != 27.9158 {
		t.Fatalf("latitude: %v", p.Latitude)
	}
	if p.Meta["source"] != "manual" {
		t.Fatalf("meta: %v", p.Meta)
	}
	if _, ok := p.Meta["extras"]; ok {
		t.Fatalf("no extras expected: %v", p.Meta)
	}
}

func TestMapRawProperty_MissingCode(t *testing.T) {
	if _, err := mapRawProperty(map[string]any{"hotelName": "nameless"}); err == nil {
		t.Fatal("expected error for payload without hotel code")
	}
}

func TestMapRawRoomType(t *testing.T) {
	raw := map[string]any{
		"room_type":             "CLS_KNG",
		"room_name":             "Classic King",
		"room_primary_bed_type": "King",
		"non_smoking_ind":       "Y",
		"number_of_units":       "10",
		"description":           []any{"Garden view", map[string]any{"text": "40m²"}},
		"occupancy":             map[string]any{"maxOccupancy": float64(4), "adults": float64(2)},
		"room_amenities": []any{
			map[string]any{"roomAmenity": "TV", "quantity": float64(1), "includeInRate": true},
			map[string]any{"description": "Mini bar"},
		},
	}
	rt, ok := mapRawRoomType(7, raw)
	if !ok {
		t.Fatal("expected room type")
	}
	if rt.PropertyID != 7 || rt.Code != "CLS_KNG" || deref(rt.PrimaryBedType) != "King" {
		t.Fatalf("unexpected: %+v", rt)
	}
	if rt.NonSmoking == nil || !*rt.NonSmoking || rt.NumberOfUnits == nil || *rt.NumberOfUnits != 10 {
		t.Fatalf("flags: %v %v", rt.NonSmoking, rt.NumberOfUnits)
	}
	if len(rt.Description) != 2 || rt.Description[1] != "40m²" {
		t.Fatalf("description: %v", rt.Description)
	}
	if rt.Occupancy.MaxOccupancy == nil || *rt.Occupancy.MaxOccupancy != 4 {
		t.Fatalf("occupancy: %+v", rt.Occupancy)
	}
	if len(rt.Amenities) != 2 || rt.Amenities[1].RoomAmenity != "MINI_BAR" {
		t.Fatalf("amenities: %+v", rt.Amenities)
	}

	if _, ok := mapRawRoomType(7, map[string]any{"room_name": "no code"}); ok {
		t.Fatal("room type without code must be skipped")
	}
}

func TestCodeFromName_Truncates(t *testing.T) {
	if got := codeFromName("Complimentary airport shuttle service"); len(got) != 20 {
		t.Fatalf("expected 20 chars, got %q", got)
	}
	if got := codeFromName("Spa & Wellness"); got != "SPA_AND_WELLNESS" {
		t.Fatalf("got %q", got)
	}
}
