package dims

import "time"

// Namespace is the XML namespace of the DIMS service. It scopes every
// operation payload and prefixes the SOAPAction header value.
const Namespace = "https://dims.ignitetravel.com/IMSXML"

type Service int

const (
	ServiceInventory Service = iota
	ServiceRates
)

func (s Service) String() string {
	if s == ServiceRates {
		return "rates"
	}

	return "inventory"
}

const (
	ActionGetRoomList          = "GetRoomList"
	ActionRetrieveAvailability = "RetrieveAvailability"
	ActionUpdateInventory      = "UpdateInventory"
	ActionGetBookings          = "GetBookingsListWithRoomRateIds"
)

type Room struct {
	ID         int         `json:"room_id"`
	Name       string      `json:"room_name"`
	LinkedRate *LinkedRate `json:"linked_rate,omitempty"`
}

type LinkedRate struct {
	ID          int    `json:"rate_id"`
	Description string `json:"rate_description"`
	RoomID      int    `json:"room_id"`
}

type RoomList struct {
	Rooms []Room `json:"rooms"`
}

type Availability struct {
	InventoryAvailable int       `json:"inventory_available"`
	LiteralInventory   int       `json:"literal_inventory"`
	Date               time.Time `json:"date"`
}

type Booking struct {
	ID        int       `json:"booking_id"`
	RoomID    int       `json:"room_id"`
	RateID    int       `json:"rate_id"`
	Arrival   time.Time `json:"arrival"`
	Departure time.Time `json:"departure"`
	GuestName string    `json:"guest_name,omitempty"`
	Status    string    `json:"status,omitempty"`
}

type BookingsStatus string

const (
	BookingsStatusOK    BookingsStatus = "ok"
	BookingsStatusError BookingsStatus = "error"
)

// BookingsResult keeps the service's message type visible so callers can
// tell "no bookings" apart from "service reported an error". The legacy
// client collapsed both to an empty list.
type BookingsResult struct {
	Status   BookingsStatus `json:"status"`
	Message  string         `json:"message,omitempty"`
	Bookings []Booking      `json:"bookings"`
}

type RoomListInput struct {
	ResortID     string
	ActionHeader string
}

type AvailabilityInput struct {
	ResortID     string
	RoomID       string
	StartDate    string // YYYY-MM-DD
	EndDate      string // YYYY-MM-DD
	ActionHeader string
}

type UpdateAvailabilityInput struct {
	RoomID       string
	ResortID     string
	Date         string // DD-MM-YYYY
	Quantity     string
	ActionHeader string
}

type BookingsInput struct {
	ResortID     string
	StartDate    string // YYYY-MM-DD
	EndDate      string // YYYY-MM-DD
	ActionHeader string
}
