package mysql

const propertyColumns = `
  id, hotel_id, hotel_code, enterprise_id, chain_code, cluster_code,
  hotel_name, hotel_description, address_lines, city_name, country_code, state_prov, postal_code,
  latitude, longitude, currency_code, primary_language, total_number_of_rooms, pet_policy,
  time_zone_name, time_zone_offset, check_in_time, check_out_time,
  property_amenities, point_of_interest, communications, transportations, hotel_child_policy,
  direction_info, location_info, meta`

const upsertPropertySQL = `
INSERT INTO properties
  (hotel_id, hotel_code, enterprise_id, chain_code, cluster_code,
   hotel_name, hotel_description, address_lines, city_name, country_code, state_prov, postal_code,
   latitude, longitude, currency_code, primary_language, total_number_of_rooms, pet_policy,
   time_zone_name, time_zone_offset, check_in_time, check_out_time,
   property_amenities, point_of_interest, communications, transportations, hotel_child_policy,
   direction_info, location_info, meta)
VALUES
  (:hotel_id, :hotel_code, :enterprise_id, :chain_code, :cluster_code,
   :hotel_name, :hotel_description, :address_lines, :city_name, :country_code, :state_prov, :postal_code,
   :latitude, :longitude, :currency_code, :primary_language, :total_number_of_rooms, :pet_policy,
   :time_zone_name, :time_zone_offset, :check_in_time, :check_out_time,
   :property_amenities, :point_of_interest, :communications, :transportations, :hotel_child_policy,
   :direction_info, :location_info, :meta)
ON DUPLICATE KEY UPDATE
  enterprise_id         = VALUES(enterprise_id),
  chain_code            = VALUES(chain_code),
  cluster_code          = VALUES(cluster_code),
  hotel_name            = VALUES(hotel_name),
  hotel_description     = VALUES(hotel_description),
  address_lines         = VALUES(address_lines),
  city_name             = VALUES(city_name),
  country_code          = VALUES(country_code),
  state_prov            = VALUES(state_prov),
  postal_code           = VALUES(postal_code),
  latitude              = VALUES(latitude),
  longitude             = VALUES(longitude),
  currency_code         = VALUES(currency_code),
  primary_language      = VALUES(primary_language),
  total_number_of_rooms = VALUES(total_number_of_rooms),
  pet_policy            = VALUES(pet_policy),
  time_zone_name        = VALUES(time_zone_name),
  time_zone_offset      = VALUES(time_zone_offset),
  check_in_time         = VALUES(check_in_time),
  check_out_time        = VALUES(check_out_time),
  property_amenities    = VALUES(property_amenities),
  point_of_interest     = VALUES(point_of_interest),
  communications        = VALUES(communications),
  transportations       = VALUES(transportations),
  hotel_child_policy    = VALUES(hotel_child_policy),
  direction_info        = VALUES(direction_info),
  location_info         = VALUES(location_info),
  meta                  = VALUES(meta),
  updated_at            = CURRENT_TIMESTAMP
`

// Full-field replace keyed by hotel_code; hotel_id is replaced too.
const replacePropertySQL = `
UPDATE properties SET
  hotel_id              = :hotel_id,
  enterprise_id         = :enterprise_id,
  chain_code            = :chain_code,
  cluster_code          = :cluster_code,
  hotel_name            = :hotel_name,
  hotel_description     = :hotel_description,
  address_lines         = :address_lines,
  city_name             = :city_name,
  country_code          = :country_code,
  state_prov            = :state_prov,
  postal_code           = :postal_code,
  latitude              = :latitude,
  longitude             = :longitude,
  currency_code         = :currency_code,
  primary_language      = :primary_language,
  total_number_of_rooms = :total_number_of_rooms,
  pet_policy            = :pet_policy,
  time_zone_name        = :time_zone_name,
  time_zone_offset      = :time_zone_offset,
  check_in_time         = :check_in_time,
  check_out_time        = :check_out_time,
  property_amenities    = :property_amenities,
  point_of_interest     = :point_of_interest,
  communications        = :communications,
  transportations       = :transportations,
  hotel_child_policy    = :hotel_child_policy,
  direction_info        = :direction_info,
  location_info         = :location_info,
  meta                  = :meta
WHERE hotel_code = :hotel_code
`

const roomTypeColumns = `
  rt.id, rt.property_id, rt.hotel_room_type, rt.room_type, rt.description, rt.room_name, rt.room_category,
  rt.room_amenities, rt.room_view_type, rt.room_primary_bed_type, rt.non_smoking_ind, rt.occupancy,
  rt.number_of_units`

const roomTypesFrom = `room_types rt JOIN properties p ON p.id = rt.property_id`

const upsertRoomTypeSQL = `
INSERT INTO room_types
  (property_id, hotel_room_type, room_type, description, room_name, room_category, room_amenities,
   room_view_type, room_primary_bed_type, non_smoking_ind, occupancy, number_of_units)
VALUES
  (:property_id, :hotel_room_type, :room_type, :description, :room_name, :room_category, :room_amenities,
   :room_view_type, :room_primary_bed_type, :non_smoking_ind, :occupancy, :number_of_units)
ON DUPLICATE KEY UPDATE
  hotel_room_type       = VALUES(hotel_room_type),
  description           = VALUES(description),
  room_name             = VALUES(room_name),
  room_category         = VALUES(room_category),
  room_amenities        = VALUES(room_amenities),
  room_view_type        = VALUES(room_view_type),
  room_primary_bed_type = VALUES(room_primary_bed_type),
  non_smoking_ind       = VALUES(non_smoking_ind),
  occupancy             = VALUES(occupancy),
  number_of_units       = VALUES(number_of_units)
`

const getRoomTypeSQL = `SELECT` + roomTypeColumns + `
FROM room_types rt
WHERE rt.property_id = ? AND rt.room_type = ?
`

const reservationColumns = `
  id, reservation_id, confirmation_number, hotel_id, reservation_status,
  arrival_date, departure_date, guest_first_name, guest_last_name,
  room_stay, reservation_guests, number_of_adults, number_of_children,
  create_date_time, update_date_time,
  cancellation_number, cancellation_reason_code, cancellation_reason_desc`

const insertReservationSQL = `
INSERT INTO reservations
  (reservation_id, confirmation_number, hotel_id, reservation_status,
   arrival_date, departure_date, guest_first_name, guest_last_name,
   room_stay, reservation_guests, number_of_adults, number_of_children,
   create_date_time, update_date_time,
   cancellation_number, cancellation_reason_code, cancellation_reason_desc)
VALUES
  (:reservation_id, :confirmation_number, :hotel_id, :reservation_status,
   :arrival_date, :departure_date, :guest_first_name, :guest_last_name,
   :room_stay, :reservation_guests, :number_of_adults, :number_of_children,
   :create_date_time, :update_date_time,
   :cancellation_number, :cancellation_reason_code, :cancellation_reason_desc)
`

// Identifiers, hotel and create time never change after insert.
const updateReservationSQL = `
UPDATE reservations SET
  reservation_status       = :reservation_status,
  arrival_date             = :arrival_date,
  departure_date           = :departure_date,
  guest_first_name         = :guest_first_name,
  guest_last_name          = :guest_last_name,
  room_stay                = :room_stay,
  reservation_guests       = :reservation_guests,
  number_of_adults         = :number_of_adults,
  number_of_children       = :number_of_children,
  update_date_time         = :update_date_time,
  cancellation_number      = :cancellation_number,
  cancellation_reason_code = :cancellation_reason_code,
  cancellation_reason_desc = :cancellation_reason_desc
WHERE reservation_id = :reservation_id
`

const insertMissSQL = `
INSERT INTO import_misses (hotel_code, status, reason)
VALUES (?, ?, ?)
`
