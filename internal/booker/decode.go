package booker

import (
	"encoding/json"

	"github.com/mwork/booker-qa/internal/pkg/validator"
)

func decodeBody(op string, raw []byte, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return &ValidationError{Op: op, Err: err}
	}
	return nil
}

func checkShape(op string, v any) error {
	if fields := validator.Validate(v); fields != nil {
		return &ValidationError{Op: op, Fields: fields}
	}
	return nil
}

// checkBooking validates a decoded booking body. prefix is prepended to
// field names when the booking is nested inside another object.
func checkBooking(op, prefix string, w *bookingWire) error {
	if err := checkShape(op, w); err != nil {
		if ve, ok := err.(*ValidationError); ok && prefix != "" {
			prefixed := make(map[string]string, len(ve.Fields))
			for k, v := range ve.Fields {
				prefixed[prefix+k] = v
			}
			ve.Fields = prefixed
		}
		return err
	}

	fields := map[string]string{}
	if w.BookingDates.Checkin.IsZero() {
		fields[prefix+"bookingdates.checkin"] = "Date must not be empty"
	}
	if w.BookingDates.Checkout.IsZero() {
		fields[prefix+"bookingdates.checkout"] = "Date must not be empty"
	}
	if len(fields) > 0 {
		return &ValidationError{Op: op, Fields: fields}
	}
	return nil
}

func decodeBooking(op string, raw []byte) (BookingDetails, error) {
	var w bookingWire
	if err := decodeBody(op, raw, &w); err != nil {
		return BookingDetails{}, err
	}
	if err := checkBooking(op, "", &w); err != nil {
		return BookingDetails{}, err
	}
	return w.details(), nil
}

func decodeRecord(op string, raw []byte) (BookingRecord, error) {
	var w recordWire
	if err := decodeBody(op, raw, &w); err != nil {
		return BookingRecord{}, err
	}
	if err := checkShape(op, &w); err != nil {
		return BookingRecord{}, err
	}
	if err := checkBooking(op, "booking.", w.Booking); err != nil {
		return BookingRecord{}, err
	}
	return BookingRecord{ID: *w.ID, Booking: w.Booking.details()}, nil
}

type idListWire struct {
	Items []idItemWire `json:"items" validate:"dive"`
}

func decodeIDList(op string, raw []byte) ([]int, error) {
	var items []idItemWire
	if err := decodeBody(op, raw, &items); err != nil {
		return nil, err
	}
	if err := checkShape(op, &idListWire{Items: items}); err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(items))
	for _, item := range items {
		ids = append(ids, *item.ID)
	}
	return ids, nil
}
