package dims

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/avstrong/dims/internal/logger"
)

type invoker interface {
	Call(ctx context.Context, service Service, action string, payload []byte) ([]byte, error)
}

// Client is safe for concurrent use: it holds no mutable state after
// construction, and every operation is a single request/response round trip.
type Client struct {
	l   *logger.Logger
	inv invoker
	now func() time.Time
}

func New(l *logger.Logger, inv invoker) *Client {
	return &Client{
		l:   l,
		inv: inv,
		now: time.Now,
	}
}

func (c *Client) GetRoomList(ctx context.Context, in RoomListInput) (*RoomList, error) {
	params, err := in.validate()
	if err != nil {
		return nil, err
	}

	payload, err := roomListRequest(params.resortID)
	if err != nil {
		return nil, err
	}

	body, err := c.call(ctx, ServiceInventory, actionOrDefault(in.ActionHeader, ActionGetRoomList), payload)
	if err != nil {
		return nil, err
	}

	list, err := parseRoomList(body)
	if err != nil {
		return nil, fmt.Errorf("parse room list response: %w", err)
	}

	c.l.LogDebugf("Fetched %d rooms for resort %d", len(list.Rooms), params.resortID)

	return list, nil
}

func (c *Client) RetrieveAvailability(ctx context.Context, in AvailabilityInput) ([]Availability, error) {
	params, err := in.validate(c.now())
	if err != nil {
		return nil, err
	}

	payload, err := availabilityRequest(params.roomID, params.resortID, params.start, params.end)
	if err != nil {
		return nil, err
	}

	body, err := c.call(ctx, ServiceInventory, actionOrDefault(in.ActionHeader, ActionRetrieveAvailability), payload)
	if err != nil {
		return nil, err
	}

	availability, err := parseAvailability(body)
	if err != nil {
		return nil, fmt.Errorf("parse availability response: %w", err)
	}

	c.l.LogDebugf(
		"Fetched %d availability entries for room %d in resort %d",
		len(availability), params.roomID, params.resortID,
	)

	return availability, nil
}

func (c *Client) UpdateAvailability(ctx context.Context, in UpdateAvailabilityInput) (string, error) {
	params, err := in.validate()
	if err != nil {
		return "", err
	}

	payload, err := updateInventoryRequest(params.roomID, params.resortID, params.date, params.quantity)
	if err != nil {
		return "", err
	}

	body, err := c.call(ctx, ServiceInventory, actionOrDefault(in.ActionHeader, ActionUpdateInventory), payload)
	if err != nil {
		return "", err
	}

	message, err := parseUpdateMessage(body)
	if err != nil {
		return "", fmt.Errorf("parse update response: %w", err)
	}

	return message, nil
}

func (c *Client) GetBookings(ctx context.Context, in BookingsInput) (*BookingsResult, error) {
	params, err := in.validate()
	if err != nil {
		return nil, err
	}

	payload, err := bookingsRequest(params.resortID, params.start, params.end)
	if err != nil {
		return nil, err
	}

	body, err := c.call(ctx, ServiceInventory, actionOrDefault(in.ActionHeader, ActionGetBookings), payload)
	if err != nil {
		return nil, err
	}

	result, err := parseBookings(body)
	if err != nil {
		return nil, fmt.Errorf("parse bookings response: %w", err)
	}

	if result.Status == BookingsStatusError {
		c.l.LogWarnf("Service reported an error for bookings in resort %d: %s", params.resortID, result.Message)
	}

	return result, nil
}

func (c *Client) call(ctx context.Context, service Service, action string, payload []byte) ([]byte, error) {
	body, err := c.inv.Call(ctx, service, action, payload)
	if err != nil {
		return nil, fmt.Errorf("invoke %s: %w", action, err)
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("%s: %w", action, ErrEmptyResponse)
	}

	return body, nil
}

func actionOrDefault(override, fallback string) string {
	if override != "" {
		return override
	}

	return fallback
}
