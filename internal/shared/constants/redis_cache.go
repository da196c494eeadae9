package constants

// Redis Cache Configuration
// This file centralizes all Redis cache keys and TTL values for the ticketing core
// Pattern: ticketing:{module}:{operation}:{identifier}:{params?}

import "time"

// ================== CACHE TTL DURATIONS ==================

// Semi-Static Data (Medium TTL: changes occasionally)
const (
	TTL_SEMI_STATIC_MEDIUM = 2 * time.Hour    // 2 hours - for event details
	TTL_SEMI_STATIC_QUICK  = 15 * time.Minute // 15 minutes - for event listings
)

// Dynamic Data (Short TTL: changes frequently)
const (
	TTL_DYNAMIC_MEDIUM = 10 * time.Minute // 10 minutes - for booking lookups
	TTL_DYNAMIC_SHORT  = 5 * time.Minute  // 5 minutes - for seat listings
)

// Highly Dynamic (Micro TTL: real-time sensitive)
const (
	TTL_REALTIME_SHORT = 30 * time.Second // 30 seconds - for live seat availability
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "ticketing"
)

// ================== EVENTS MODULE ==================

// Event Cache Keys
const (
	CACHE_KEY_EVENTS_LIST  = CACHE_PREFIX + ":events:list"         // + :page:X:limit:Y
	CACHE_KEY_EVENT_DETAIL = CACHE_PREFIX + ":events:detail:uuid:" // + event-id
)

// Event Cache TTLs
const (
	TTL_EVENT_LIST   = TTL_SEMI_STATIC_QUICK  // 15 minutes
	TTL_EVENT_DETAIL = TTL_SEMI_STATIC_MEDIUM // 2 hours
)

// ================== SEATS MODULE ==================

// Seat Cache Keys
const (
	CACHE_KEY_SEATS_BY_VENUE    = CACHE_PREFIX + ":seats:venue:uuid:"       // + venue-id
	CACHE_KEY_SEAT_AVAILABILITY = CACHE_PREFIX + ":seats:available:event:" // + event-id
)

// Seat Cache TTLs
const (
	TTL_SEATS_BY_VENUE    = TTL_DYNAMIC_SHORT  // 5 minutes
	TTL_SEAT_AVAILABILITY = TTL_REALTIME_SHORT // 30 seconds
)

// ================== BOOKINGS MODULE ==================

// Booking Cache Keys
const (
	CACHE_KEY_USER_BOOKINGS  = CACHE_PREFIX + ":bookings:user:uuid:"   // + user-id
	CACHE_KEY_BOOKING_DETAIL = CACHE_PREFIX + ":bookings:detail:uuid:" // + booking-id
)

// Booking Cache TTLs
const (
	TTL_USER_BOOKINGS  = TTL_DYNAMIC_MEDIUM // 10 minutes
	TTL_BOOKING_DETAIL = TTL_DYNAMIC_MEDIUM // 10 minutes
)

// ================== CACHE INVALIDATION PATTERNS ==================

// Patterns for cache invalidation (used with DeletePattern)
const (
	PATTERN_INVALIDATE_EVENTS_ALL   = CACHE_PREFIX + ":events:*"
	PATTERN_INVALIDATE_SEATS_ALL    = CACHE_PREFIX + ":seats:*"
	PATTERN_INVALIDATE_BOOKINGS_ALL = CACHE_PREFIX + ":bookings:*"
)

// ================== HELPER FUNCTIONS ==================

func BuildEventDetailKey(eventID string) string {
	return CACHE_KEY_EVENT_DETAIL + eventID
}

func BuildSeatAvailabilityKey(eventID string) string {
	return CACHE_KEY_SEAT_AVAILABILITY + eventID
}

func BuildSeatsByVenueKey(venueID string) string {
	return CACHE_KEY_SEATS_BY_VENUE + venueID
}

func BuildUserBookingsKey(userID string) string {
	return CACHE_KEY_USER_BOOKINGS + userID
}

func BuildBookingDetailKey(bookingID string) string {
	return CACHE_KEY_BOOKING_DETAIL + bookingID
}

// BuildEventMetaPattern matches every cached projection of one event.
func BuildEventMetaPattern(eventID string) string {
	return CACHE_PREFIX + ":events:*" + eventID + "*"
}

// BuildSeatAvailabilityPattern matches cached availability for one event.
func BuildSeatAvailabilityPattern(eventID string) string {
	return CACHE_KEY_SEAT_AVAILABILITY + eventID + "*"
}
