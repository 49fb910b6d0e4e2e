package dims

import (
	"strconv"
	"time"
)

// Validation runs in a fixed order per operation: integer ids first, then
// date formats, then range and future checks. The first failure wins and no
// network activity happens after it.

type roomListParams struct {
	resortID int
}

func (in RoomListInput) validate() (*roomListParams, error) {
	resortID, err := strconv.Atoi(in.ResortID)
	if err != nil {
		return nil, fieldError("resortId", "must be an integer")
	}

	return &roomListParams{resortID: resortID}, nil
}

type availabilityParams struct {
	resortID int
	roomID   int
	start    time.Time
	end      time.Time
}

func (in AvailabilityInput) validate(now time.Time) (*availabilityParams, error) {
	resortID, err := strconv.Atoi(in.ResortID)
	if err != nil {
		return nil, fieldError("resortId", "must be an integer")
	}

	roomID, err := strconv.Atoi(in.RoomID)
	if err != nil {
		return nil, fieldError("roomId", "must be an integer")
	}

	start, err := time.Parse(rangeDateLayout, in.StartDate)
	if err != nil {
		return nil, fieldError("startDate", "must match YYYY-MM-DD")
	}

	end, err := time.Parse(rangeDateLayout, in.EndDate)
	if err != nil {
		return nil, fieldError("endDate", "must match YYYY-MM-DD")
	}

	if start.After(end) {
		return nil, fieldError("startDate", "must not be after endDate")
	}

	today := truncateToDate(now)

	if start.Before(today) {
		return nil, fieldError("startDate", "must not be in the past")
	}

	if end.Before(today) {
		return nil, fieldError("endDate", "must not be in the past")
	}

	return &availabilityParams{
		resortID: resortID,
		roomID:   roomID,
		start:    start,
		end:      end,
	}, nil
}

type updateParams struct {
	roomID   int
	resortID int
	quantity int
	date     time.Time
}

func (in UpdateAvailabilityInput) validate() (*updateParams, error) {
	roomID, err := strconv.Atoi(in.RoomID)
	if err != nil {
		return nil, fieldError("roomId", "must be an integer")
	}

	resortID, err := strconv.Atoi(in.ResortID)
	if err != nil {
		return nil, fieldError("resortId", "must be an integer")
	}

	quantity, err := strconv.Atoi(in.Quantity)
	if err != nil {
		return nil, fieldError("quantity", "must be an integer")
	}

	date, err := time.Parse(wireDateLayout, in.Date)
	if err != nil {
		return nil, fieldError("date", "must match DD-MM-YYYY")
	}

	return &updateParams{
		roomID:   roomID,
		resortID: resortID,
		quantity: quantity,
		date:     date,
	}, nil
}

type bookingsParams struct {
	resortID int
	start    time.Time
	end      time.Time
}

func (in BookingsInput) validate() (*bookingsParams, error) {
	resortID, err := strconv.Atoi(in.ResortID)
	if err != nil {
		return nil, fieldError("resortId", "must be an integer")
	}

	start, err := time.Parse(rangeDateLayout, in.StartDate)
	if err != nil {
		return nil, fieldError("startDate", "must match YYYY-MM-DD")
	}

	end, err := time.Parse(rangeDateLayout, in.EndDate)
	if err != nil {
		return nil, fieldError("endDate", "must match YYYY-MM-DD")
	}

	return &bookingsParams{
		resortID: resortID,
		start:    start,
		end:      end,
	}, nil
}

func fieldError(field, msg string) *InputError {
	inputErr := newInputError()
	inputErr.addError(field, msg)

	return inputErr
}

func truncateToDate(t time.Time) time.Time {
	year, month, day := t.UTC().Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
