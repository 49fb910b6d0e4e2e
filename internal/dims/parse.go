package dims

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
)

const errorMessageType = "Error"

type roomElem struct {
	RoomTypeID  *int    `xml:"RoomTypeId"`
	Description *string `xml:"Description"`
}

type linkedRateElem struct {
	RateID          *int    `xml:"RateId"`
	RateDescription *string `xml:"RateDescription"`
	RoomID          *int    `xml:"RoomId"`
}

type dateSetElem struct {
	InventoryAvailable *int    `xml:"InventoryAvailable"`
	LiteralInventory   *int    `xml:"LiteralInventory"`
	Date               *string `xml:"Date"`
}

type bookingElem struct {
	BookingID     *int    `xml:"BookingId"`
	RoomID        *int    `xml:"RoomId"`
	RateID        *int    `xml:"RateId"`
	ArrivalDate   *string `xml:"ArrivalDate"`
	DepartureDate *string `xml:"DepartureDate"`
	GuestName     *string `xml:"GuestName"`
	Status        *string `xml:"Status"`
}

// decodeElements collects every element with the given local name anywhere in
// the document, so the parser does not depend on the exact envelope nesting.
func decodeElements[T any](doc []byte, local string) ([]T, error) {
	dec := xml.NewDecoder(bytes.NewReader(doc))

	var out []T

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("scan response for %s: %w", local, err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != local {
			continue
		}

		var v T

		if err := dec.DecodeElement(&v, &se); err != nil {
			return nil, fmt.Errorf("decode %s element: %w", local, err)
		}

		out = append(out, v)
	}

	return out, nil
}

func firstElement[T any](doc []byte, local string) (*T, error) {
	dec := xml.NewDecoder(bytes.NewReader(doc))

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil, nil
		}

		if err != nil {
			return nil, fmt.Errorf("scan response for %s: %w", local, err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != local {
			continue
		}

		var v T

		if err := dec.DecodeElement(&v, &se); err != nil {
			return nil, fmt.Errorf("decode %s element: %w", local, err)
		}

		return &v, nil
	}
}

func parseRoomList(doc []byte) (*RoomList, error) {
	roomElems, err := decodeElements[roomElem](doc, "Room")
	if err != nil {
		return nil, err
	}

	rooms := make([]Room, 0, len(roomElems))
	index := make(map[int]int, len(roomElems))

	for _, el := range roomElems {
		if el.RoomTypeID == nil {
			return nil, fmt.Errorf("room without RoomTypeId: %w", ErrMissingElement)
		}

		if el.Description == nil {
			return nil, fmt.Errorf("room %d without Description: %w", *el.RoomTypeID, ErrMissingElement)
		}

		if _, exists := index[*el.RoomTypeID]; exists {
			return nil, fmt.Errorf("room %d: %w", *el.RoomTypeID, ErrDuplicateRoom)
		}

		index[*el.RoomTypeID] = len(rooms)
		rooms = append(rooms, Room{ID: *el.RoomTypeID, Name: *el.Description})
	}

	rateElems, err := decodeElements[linkedRateElem](doc, "LinkedRate")
	if err != nil {
		return nil, err
	}

	for _, el := range rateElems {
		// Partial linked rates are dropped, not raised.
		if el.RateID == nil || el.RateDescription == nil || el.RoomID == nil {
			continue
		}

		idx, ok := index[*el.RoomID]
		if !ok {
			continue
		}

		rooms[idx].LinkedRate = &LinkedRate{
			ID:          *el.RateID,
			Description: *el.RateDescription,
			RoomID:      *el.RoomID,
		}
	}

	return &RoomList{Rooms: rooms}, nil
}

func parseAvailability(doc []byte) ([]Availability, error) {
	sets, err := decodeElements[dateSetElem](doc, "DateSet")
	if err != nil {
		return nil, err
	}

	out := make([]Availability, 0, len(sets))

	for _, el := range sets {
		if el.InventoryAvailable == nil || el.LiteralInventory == nil || el.Date == nil {
			return nil, fmt.Errorf("incomplete DateSet: %w", ErrMissingElement)
		}

		date, err := time.Parse(wireDateLayout, strings.TrimSpace(*el.Date))
		if err != nil {
			return nil, fmt.Errorf("parse DateSet date %q: %w", *el.Date, err)
		}

		out = append(out, Availability{
			InventoryAvailable: *el.InventoryAvailable,
			LiteralInventory:   *el.LiteralInventory,
			Date:               date,
		})
	}

	// The service does not guarantee document order.
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})

	return out, nil
}

func parseUpdateMessage(doc []byte) (string, error) {
	msg, err := firstElement[string](doc, "Message")
	if err != nil {
		return "", err
	}

	if msg == nil {
		return "", fmt.Errorf("update response without Message: %w", ErrMissingElement)
	}

	return *msg, nil
}

func parseBookings(doc []byte) (*BookingsResult, error) {
	messageType, err := firstElement[string](doc, "MessageType")
	if err != nil {
		return nil, err
	}

	if messageType == nil {
		return nil, fmt.Errorf("bookings response without MessageType: %w", ErrMissingElement)
	}

	message, err := firstElement[string](doc, "Message")
	if err != nil {
		return nil, err
	}

	if message == nil {
		return nil, fmt.Errorf("bookings response without Message: %w", ErrMissingElement)
	}

	if strings.TrimSpace(*messageType) == errorMessageType {
		// Booking entries are never parsed when the service reports an error.
		return &BookingsResult{
			Status:  BookingsStatusError,
			Message: *message,
		}, nil
	}

	entries, err := decodeElements[bookingElem](doc, "Booking")
	if err != nil {
		return nil, err
	}

	bookings := make([]Booking, 0, len(entries))

	for _, el := range entries {
		if el.BookingID == nil {
			continue
		}

		b := Booking{ID: *el.BookingID}

		if el.RoomID != nil {
			b.RoomID = *el.RoomID
		}

		if el.RateID != nil {
			b.RateID = *el.RateID
		}

		if el.ArrivalDate != nil {
			arrival, err := time.Parse(wireDateLayout, strings.TrimSpace(*el.ArrivalDate))
			if err != nil {
				return nil, fmt.Errorf("parse booking %d arrival %q: %w", b.ID, *el.ArrivalDate, err)
			}

			b.Arrival = arrival
		}

		if el.DepartureDate != nil {
			departure, err := time.Parse(wireDateLayout, strings.TrimSpace(*el.DepartureDate))
			if err != nil {
				return nil, fmt.Errorf("parse booking %d departure %q: %w", b.ID, *el.DepartureDate, err)
			}

			b.Departure = departure
		}

		if el.GuestName != nil {
			b.GuestName = *el.GuestName
		}

		if el.Status != nil {
			b.Status = *el.Status
		}

		bookings = append(bookings, b)
	}

	return &BookingsResult{
		Status:   BookingsStatusOK,
		Message:  *message,
		Bookings: bookings,
	}, nil
}
