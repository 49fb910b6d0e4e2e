package dims

import (
	"encoding/xml"
	"fmt"
	"time"
)

const (
	rangeDateLayout = "2006-01-02" // format the service accepts
	wireDateLayout  = "02-01-2006" // format the service echoes back
)

const (
	requestRoomsList       = "RoomsList"
	requestAvailability    = "Availability"
	requestInventoryUpdate = "InventoryUpdate"
	requestBookingsList    = "GetBookingsListWithRoomRateIds"
)

// The operation element carries the service namespace; RewardsCorpIMS resets
// the default namespace with xmlns="", matching what the service expects.
type operationPayload struct {
	XMLName xml.Name
	Message operationMessage
}

type operationMessage struct {
	XMLName xml.Name `xml:"Message"`
	Body    any
}

type roomListBody struct {
	XMLName  xml.Name `xml:"RewardsCorpIMS"`
	XMLNS    string   `xml:"xmlns,attr"`
	Request  string   `xml:"Request"`
	ResortID int      `xml:"ResortId"`
}

type availabilityBody struct {
	XMLName  xml.Name  `xml:"RewardsCorpIMS"`
	XMLNS    string    `xml:"xmlns,attr"`
	Request  string    `xml:"Request"`
	RoomID   int       `xml:"RoomId"`
	ResortID int       `xml:"ResortId"`
	Dates    dateRange `xml:"Dates"`
}

type updateBody struct {
	XMLName  xml.Name    `xml:"RewardsCorpIMS"`
	XMLNS    string      `xml:"xmlns,attr"`
	Request  string      `xml:"Request"`
	RoomID   int         `xml:"RoomId"`
	ResortID int         `xml:"ResortId"`
	Dates    updateDates `xml:"Dates"`
}

type bookingsBody struct {
	XMLName  xml.Name  `xml:"RewardsCorpIMS"`
	XMLNS    string    `xml:"xmlns,attr"`
	Request  string    `xml:"Request"`
	ResortID int       `xml:"ResortId"`
	Dates    dateRange `xml:"Dates"`
}

type dateRange struct {
	Dates []string `xml:"Date"`
}

type updateDates struct {
	Set updateDateSet `xml:"DatesSet"`
}

type updateDateSet struct {
	Date                string `xml:"Date"`
	InventoryAllocation int    `xml:"InventoryAllocation"`
}

func marshalPayload(operation string, body any) ([]byte, error) {
	payload := operationPayload{
		XMLName: xml.Name{Space: Namespace, Local: operation},
		Message: operationMessage{Body: body},
	}

	out, err := xml.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", operation, err)
	}

	return out, nil
}

func roomListRequest(resortID int) ([]byte, error) {
	return marshalPayload(ActionGetRoomList, roomListBody{
		Request:  requestRoomsList,
		ResortID: resortID,
	})
}

func availabilityRequest(roomID, resortID int, start, end time.Time) ([]byte, error) {
	return marshalPayload(ActionRetrieveAvailability, availabilityBody{
		Request:  requestAvailability,
		RoomID:   roomID,
		ResortID: resortID,
		Dates: dateRange{
			Dates: []string{start.Format(rangeDateLayout), end.Format(rangeDateLayout)},
		},
	})
}

// The update payload renders the date in the service's accepted format even
// though the caller supplies it as DD-MM-YYYY.
func updateInventoryRequest(roomID, resortID int, date time.Time, quantity int) ([]byte, error) {
	return marshalPayload(ActionUpdateInventory, updateBody{
		Request:  requestInventoryUpdate,
		RoomID:   roomID,
		ResortID: resortID,
		Dates: updateDates{
			Set: updateDateSet{
				Date:                date.Format(rangeDateLayout),
				InventoryAllocation: quantity,
			},
		},
	})
}

func bookingsRequest(resortID int, start, end time.Time) ([]byte, error) {
	return marshalPayload(ActionGetBookings, bookingsBody{
		Request:  requestBookingsList,
		ResortID: resortID,
		Dates: dateRange{
			Dates: []string{start.Format(rangeDateLayout), end.Format(rangeDateLayout)},
		},
	})
}
