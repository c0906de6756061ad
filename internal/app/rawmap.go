package app

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog/log"

	"opera_mock/internal/domain"
)

/********** alias registries (single source of truth) **********/

// Upstream payloads come in camelCase (content API) or snake_case (table dumps).
var propertyAliases = map[string][]string{
	"hotel_id":      {"hotelId", "hotel_id", "id"},
	"hotel_code":    {"hotelCode", "hotel_code", "code"},
	"enterprise_id": {"enterpriseId", "enterprise_id"},
	"chain_code":    {"chainCode", "chain_code", "chain.code"},
	"cluster_code":  {"clusterCode", "cluster_code"},
	"name":          {"hotelName", "hotel_name", "name"},
	"description":   {"hotelDescription", "hotel_description", "description"},
	"city":          {"address.city", "address.cityName", "city_name", "city"},
	"country":       {"address.countryCode", "address.country", "country_code", "countryCode"},
	"state":         {"address.state", "address.stateProv", "state_prov", "state"},
	"postal":        {"address.postalCode", "postal_code", "postalCode"},
	"currency":      {"currencyCode", "currency_code"},
	"language":      {"primaryLanguage", "primary_language"},
	"pet_policy":    {"petPolicy", "pet_policy"},
	"tz_name":       {"timeZoneName", "time_zone_name", "timeZone.name"},
	"tz_offset":     {"timeZoneOffset", "time_zone_offset", "timeZone.offset"},
	"check_in":      {"checkInTime", "check_in_time", "generalInformation.checkInTime"},
	"check_out":     {"checkOutTime", "check_out_time", "generalInformation.checkOutTime"},
	"direction":     {"directionInfo", "direction_info", "direction.propertyDirection"},
	"location":      {"locationInfo", "location_info"},
	"latitude":      {"latitude", "coordinates.latitude", "location.latitude", "lat"},
	"longitude":     {"longitude", "coordinates.longitude", "location.longitude", "lon", "lng"},
	"rooms":         {"totalNumberOfRooms", "total_number_of_rooms", "numberOfRooms"},
	"address_lines": {"address.lines", "address.addressLine", "address_lines", "addressLines"},
	"amenities":     {"propertyAmenities", "property_amenities", "amenities"},
	"poi":           {"pointOfInterest", "point_of_interest", "pointsOfInterest"},
	"comms":         {"communications"},
	"transport":     {"transportations", "transportation"},
	"child_policy":  {"hotelChildPolicy", "hotel_child_policy", "childPolicy"},
	"meta":          {"meta"},
	"address":       {"address"},
	"coordinates":   {"coordinates"},
	"connectivity":  {"connectivity"},
	"room_types":    {"roomTypes", "room_types"},
}

var roomTypeAliases = map[string][]string{
	"code":            {"roomType", "room_type", "roomTypeCode", "code"},
	"hotel_room_type": {"hotelRoomType", "hotel_room_type"},
	"name":            {"roomName", "room_name", "roomTypeName", "name"},
	"category":        {"roomCategory", "room_category"},
	"view":            {"roomViewType", "room_view_type"},
	"bed":             {"roomPrimaryBedType", "room_primary_bed_type"},
	"non_smoking":     {"nonSmokingInd", "non_smoking_ind"},
	"units":           {"numberOfUnits", "number_of_units"},
	"description":     {"description", "roomDescription"},
	"amenities":       {"roomAmenities", "room_amenities", "amenities"},
	"occupancy":       {"occupancy"},
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns string at path or "".
func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// firstNonEmptyAlias: first non-empty string for a named alias set.
func firstNonEmptyAlias(m map[string]any, aliases map[string][]string, key string) *string {
	for _, p := range aliases[key] {
		if s := strings.TrimSpace(lookupStr(m, p)); s != "" {
			return &s
		}
	}
	return nil
}

// firstAnyAlias: first present value for a named alias set.
func firstAnyAlias(m map[string]any, aliases map[string][]string, key string) any {
	for _, p := range aliases[key] {
		if v := lookupAny(m, p); v != nil {
			return v
		}
	}
	return nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// getFloatFlexible: number from several paths (float64/int/string like "8,0").
func getFloatFlexible(m map[string]any, paths ...string) *float64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			f := v
			return &f
		case int:
			f := float64(v)
			return &f
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

// firstIntFlexible: int from several paths (float64/int/string).
func firstIntFlexible(m map[string]any, paths ...string) *int {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			x := int(v)
			return &x
		case int:
			x := v
			return &x
		case string:
			s := strings.TrimSpace(v)
			if s == "" {
				continue
			}
			if n, err := strconv.Atoi(s); err == nil {
				return &n
			}
		}
	}
	return nil
}

// firstBoolFlexible: bool from several paths (bool/"true"/"Y"/1).
func firstBoolFlexible(m map[string]any, paths ...string) *bool {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case bool:
			b := v
			return &b
		case float64:
			b := v != 0
			return &b
		case string:
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "true", "y", "yes", "1":
				b := true
				return &b
			case "false", "n", "no", "0":
				b := false
				return &b
			}
		}
	}
	return nil
}

// firstSliceStrings: accept []any with either strings or {text/description/name}, or a single string.
func firstSliceStrings(m map[string]any, paths ...string) []string {
	for _, k := range paths {
		switch raw := lookupAny(m, k).(type) {
		case string:
			if s := strings.TrimSpace(raw); s != "" {
				return []string{s}
			}
		case []any:
			out := make([]string, 0, len(raw))
			for _, it := range raw {
				switch t := it.(type) {
				case string:
					if t != "" {
						out = append(out, t)
					}
				case map[string]any:
					for _, key := range []string{"text", "description", "name"} {
						if s, ok := t[key].(string); ok && s != "" {
							out = append(out, s)
							break
						}
					}
				}
			}
			if len(out) > 0 {
				return out
			}
		}
	}
	return nil
}

// topLevelKnownFromAliases builds a set of top-level keys to exclude from extras.
func topLevelKnownFromAliases(aliases map[string][]string) map[string]struct{} {
	set := make(map[string]struct{}, 64)
	for _, paths := range aliases {
		for _, path := range paths {
			top := path
			if i := strings.IndexByte(top, '.'); i >= 0 {
				top = top[:i]
			}
			set[top] = struct{}{}
		}
	}
	return set
}

// decodeInto re-encodes a loosely typed value into a typed shape.
func decodeInto(v any, dst any) bool {
	if v == nil {
		return false
	}
	b, err := json.Marshal(v)
	if err != nil {
		return false
	}
	return json.Unmarshal(b, dst) == nil
}

// codeFromName derives an amenity code such as "FREE_WIFI" from "Free WiFi".
func codeFromName(name string) string {
	code := strings.ToUpper(strings.ReplaceAll(slug.Make(name), "-", "_"))
	if len(code) > 20 {
		code = code[:20]
	}
	return code
}

/********** property mapper **********/

func mapRawProperty(p map[string]any) (domain.Property, error) {
	code := deref(firstNonEmptyAlias(p, propertyAliases, "hotel_code"))
	if code == "" {
		return domain.Property{}, fmt.Errorf("property payload without hotel code")
	}
	hotelID := deref(firstNonEmptyAlias(p, propertyAliases, "hotel_id"))
	if hotelID == "" {
		hotelID = code
	}

	out := domain.Property{
		HotelID:          hotelID,
		HotelCode:        code,
		EnterpriseID:     firstNonEmptyAlias(p, propertyAliases, "enterprise_id"),
		ChainCode:        firstNonEmptyAlias(p, propertyAliases, "chain_code"),
		ClusterCode:      firstNonEmptyAlias(p, propertyAliases, "cluster_code"),
		Name:             firstNonEmptyAlias(p, propertyAliases, "name"),
		Description:      firstNonEmptyAlias(p, propertyAliases, "description"),
		AddressLines:     firstSliceStrings(p, propertyAliases["address_lines"]...),
		City:             firstNonEmptyAlias(p, propertyAliases, "city"),
		CountryCode:      firstNonEmptyAlias(p, propertyAliases, "country"),
		State:            firstNonEmptyAlias(p, propertyAliases, "state"),
		PostalCode:       firstNonEmptyAlias(p, propertyAliases, "postal"),
		Latitude:         getFloatFlexible(p, propertyAliases["latitude"]...),
		Longitude:        getFloatFlexible(p, propertyAliases["longitude"]...),
		CurrencyCode:     firstNonEmptyAlias(p, propertyAliases, "currency"),
		PrimaryLanguage:  firstNonEmptyAlias(p, propertyAliases, "language"),
		TotalRooms:       firstIntFlexible(p, propertyAliases["rooms"]...),
		PetPolicy:        firstNonEmptyAlias(p, propertyAliases, "pet_policy"),
		TimeZoneName:     firstNonEmptyAlias(p, propertyAliases, "tz_name"),
		TimeZoneOffset:   firstNonEmptyAlias(p, propertyAliases, "tz_offset"),
		CheckInTime:      firstNonEmptyAlias(p, propertyAliases, "check_in"),
		CheckOutTime:     firstNonEmptyAlias(p, propertyAliases, "check_out"),
		Amenities:        mapRawPropertyAmenities(firstAnyAlias(p, propertyAliases, "amenities")),
		PointsOfInterest: mapRawPointsOfInterest(firstAnyAlias(p, propertyAliases, "poi")),
		DirectionInfo:    firstNonEmptyAlias(p, propertyAliases, "direction"),
		LocationInfo:     firstNonEmptyAlias(p, propertyAliases, "location"),
	}

	if v := firstAnyAlias(p, propertyAliases, "comms"); v != nil && !decodeInto(v, &out.Communications) {
		log.Warn().Str("context", "mapRawProperty").Str("hotel_code", code).Msg("communications not decodable, dropped")
	}
	if v := firstAnyAlias(p, propertyAliases, "transport"); v != nil && !decodeInto(v, &out.Transportations) {
		log.Warn().Str("context", "mapRawProperty").Str("hotel_code", code).Msg("transportations not decodable, dropped")
	}
	if m, ok := firstAnyAlias(p, propertyAliases, "child_policy").(map[string]any); ok {
		out.ChildPolicy = m
	}

	meta := map[string]any{}
	if m, ok := firstAnyAlias(p, propertyAliases, "meta").(map[string]any); ok {
		for k, v := range m {
			meta[k] = v
		}
	}
	// Keep unrecognised top-level keys rather than losing them.
	known := topLevelKnownFromAliases(propertyAliases)
	extras := map[string]any{}
	for k, v := range p {
		if _, ok := known[k]; !ok {
			extras[k] = v
		}
	}
	if len(extras) > 0 {
		meta["extras"] = extras
	}
	out.Meta = meta
	return out, nil
}

func mapRawPropertyAmenities(v any) []domain.PropertyAmenity {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]domain.PropertyAmenity, 0, len(raw))
	for _, it := range raw {
		switch t := it.(type) {
		case string:
			if t != "" {
				out = append(out, domain.PropertyAmenity{Code: codeFromName(t), Description: t})
			}
		case map[string]any:
			a := domain.PropertyAmenity{
				HotelAmenity: lookupStr(t, "hotelAmenity"),
				Code:         lookupStr(t, "code"),
				Description:  lookupStr(t, "description"),
			}
			if a.AmenityCode() == "" {
				if name := lookupStr(t, "name"); name != "" {
					a.Code = codeFromName(name)
					if a.Description == "" {
						a.Description = name
					}
				}
			}
			if a.AmenityCode() != "" || a.Description != "" {
				out = append(out, a)
			}
		}
	}
	return out
}

func mapRawPointsOfInterest(v any) []domain.PointOfInterest {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]domain.PointOfInterest, 0, len(raw))
	for _, it := range raw {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		poi := domain.PointOfInterest{
			Name:     deref(firstNonEmptyAlias(m, map[string][]string{"name": {"name", "pointOfInterestName"}}, "name")),
			Distance: getFloatFlexible(m, "distance"),
			Unit:     deref(firstNonEmptyAlias(m, map[string][]string{"unit": {"unit", "distanceUnit"}}, "unit")),
			Type:     lookupStr(m, "pointOfInterestType"),
		}
		if poi.Name != "" {
			out = append(out, poi)
		}
	}
	return out
}

/********** room type mapper **********/

func mapRawRoomType(propertyID int64, m map[string]any) (domain.RoomType, bool) {
	code := deref(firstNonEmptyAlias(m, roomTypeAliases, "code"))
	if code == "" {
		return domain.RoomType{}, false
	}
	rt := domain.RoomType{
		PropertyID:     propertyID,
		Code:           code,
		HotelRoomType:  firstNonEmptyAlias(m, roomTypeAliases, "hotel_room_type"),
		Name:           firstNonEmptyAlias(m, roomTypeAliases, "name"),
		Category:       firstNonEmptyAlias(m, roomTypeAliases, "category"),
		ViewType:       firstNonEmptyAlias(m, roomTypeAliases, "view"),
		PrimaryBedType: firstNonEmptyAlias(m, roomTypeAliases, "bed"),
		NonSmoking:     firstBoolFlexible(m, roomTypeAliases["non_smoking"]...),
		NumberOfUnits:  firstIntFlexible(m, roomTypeAliases["units"]...),
		Description:    firstSliceStrings(m, roomTypeAliases["description"]...),
		Amenities:      mapRawRoomAmenities(firstAnyAlias(m, roomTypeAliases, "amenities")),
	}
	if occ, ok := firstAnyAlias(m, roomTypeAliases, "occupancy").(map[string]any); ok {
		rt.Occupancy = domain.Occupancy{
			MinOccupancy: firstIntFlexible(occ, "minOccupancy", "min_occupancy"),
			MaxOccupancy: firstIntFlexible(occ, "maxOccupancy", "max_occupancy"),
			MaxAdults:    firstIntFlexible(occ, "maxAdults", "max_adults"),
			MaxChildren:  firstIntFlexible(occ, "maxChildren", "max_children"),
			Adults:       firstIntFlexible(occ, "adults"),
			Children:     firstIntFlexible(occ, "children"),
		}
	}
	return rt, true
}

func mapRawRoomAmenities(v any) []domain.RoomAmenity {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]domain.RoomAmenity, 0, len(raw))
	for _, it := range raw {
		switch t := it.(type) {
		case string:
			if t != "" {
				out = append(out, domain.RoomAmenity{RoomAmenity: codeFromName(t), Description: t})
			}
		case map[string]any:
			a := domain.RoomAmenity{
				RoomAmenity:   deref(firstNonEmptyAlias(t, map[string][]string{"code": {"roomAmenity", "code"}}, "code")),
				Description:   lookupStr(t, "description"),
				Category:      lookupStr(t, "category"),
				Quantity:      firstIntFlexible(t, "quantity"),
				IncludeInRate: firstBoolFlexible(t, "includeInRate"),
				Confirmable:   firstBoolFlexible(t, "confirmable"),
			}
			if a.RoomAmenity == "" && a.Description != "" {
				a.RoomAmenity = codeFromName(a.Description)
			}
			if a.RoomAmenity != "" {
				out = append(out, a)
			}
		}
	}
	return out
}
