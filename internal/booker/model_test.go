package booker

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestDateJSON(t *testing.T) {
	d := NewDate(2025, time.February, 1)
	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(raw) != `"2025-02-01"` {
		t.Fatalf("unexpected wire format %s", raw)
	}

	var back Date
	if err := json.Unmarshal([]byte(`"2025-02-01T00:00:00.000Z"`), &back); err != nil {
		t.Fatalf("expected timestamp to be truncated to its date, got %v", err)
	}
	if back != d {
		t.Fatalf("expected %v, got %v", d, back)
	}

	if err := json.Unmarshal([]byte(`20250201`), &back); err == nil {
		t.Fatal("expected numeric date to be rejected")
	}
}

func TestParseDate(t *testing.T) {
	valid := map[string]Date{
		"2025-02-01":                NewDate(2025, time.February, 1),
		"2025-02-01T00:00:00Z":      NewDate(2025, time.February, 1),
		"2025-02-01T23:30:00.5Z":    NewDate(2025, time.February, 1),
		"2025-02-01T01:00:00+05:00": NewDate(2025, time.February, 1),
	}
	for in, want := range valid {
		got, err := ParseDate(in)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", in, err)
		}
		if got != want {
			t.Fatalf("%q: expected %v, got %v", in, want, got)
		}
	}

	invalid := []string{
		"",
		"not-a-date",
		"2025-01-01zzz",
		"2025-01-01garbage",
		"2014-01-01T99:99",
		"2025-01-01T10:00:00",
		"2025-13-01",
		"2025-02-30",
		"2025-2-1",
	}
	for _, in := range invalid {
		if _, err := ParseDate(in); err == nil {
			t.Fatalf("%q: expected parse error", in)
		}
	}

	var d Date
	if err := json.Unmarshal([]byte(`"2025-01-01zzz"`), &d); err == nil {
		t.Fatal("expected trailing garbage to be rejected by the JSON codec")
	}
}

func TestDecodeBookingRejectsMalformedDate(t *testing.T) {
	body := `{"firstname":"A","lastname":"B","totalprice":1,"depositpaid":true,` +
		`"bookingdates":{"checkin":"2025-01-01zzz","checkout":"2025-01-02"}}`
	_, err := decodeBooking("get booking", []byte(body))
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDateArithmetic(t *testing.T) {
	start := NewDate(2024, time.February, 27)
	if got := start.AddDays(3); got != NewDate(2024, time.March, 1) {
		t.Fatalf("leap-year arithmetic broken: %v", got)
	}
	if got := start.DaysUntil(NewDate(2024, time.March, 28)); got != 30 {
		t.Fatalf("expected 30 days, got %d", got)
	}
	if got := NewDate(2025, time.January, 5).DaysUntil(NewDate(2025, time.January, 1)); got != -4 {
		t.Fatalf("expected -4 days, got %d", got)
	}
	if got := NewDate(1, time.January, 1).DaysUntil(NewDate(9999, time.December, 31)); got != 3652058 {
		t.Fatalf("expected 3652058 days across the full range, got %d", got)
	}
	if got := (DateRange{Checkin: NewDate(9999, time.December, 31), Checkout: NewDate(1, time.January, 1)}).Nights(); got != -3652058 {
		t.Fatalf("expected -3652058 nights, got %d", got)
	}
	if NewStay(start, 7).Nights() != 7 {
		t.Fatal("expected 7 nights")
	}
	if !start.Before(start.AddDays(1)) || start.Before(start) {
		t.Fatal("Before is not strict")
	}
	if (Date{}).String() != "" || !(Date{}).IsZero() {
		t.Fatal("zero date must render empty")
	}
}

func TestBookingPatch(t *testing.T) {
	base := BookingDetails{Firstname: "A", Lastname: "B", TotalPrice: 10, DepositPaid: true, AdditionalNeeds: "x"}
	patch := BookingPatch{}.SetFirstname("Z").SetDepositPaid(false).SetAdditionalNeeds("")

	if got := patch.Fields(); !reflect.DeepEqual(got, []string{"firstname", "depositpaid", "additionalneeds"}) {
		t.Fatalf("unexpected fields %v", got)
	}
	got := patch.Apply(base)
	want := BookingDetails{Firstname: "Z", Lastname: "B", TotalPrice: 10, DepositPaid: false, AdditionalNeeds: ""}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if base.Firstname != "A" {
		t.Fatal("Apply must not modify its argument")
	}
	if !(BookingPatch{}).IsEmpty() || patch.IsEmpty() {
		t.Fatal("IsEmpty mismatch")
	}
}

func TestBookingFilterQuery(t *testing.T) {
	if q := (BookingFilter{}).Query(); len(q) != 0 {
		t.Fatalf("expected empty query, got %v", q)
	}
	q := BookingFilter{Lastname: "Brown", Checkout: NewDate(2025, time.May, 2)}.Query()
	if q.Get("lastname") != "Brown" || q.Get("checkout") != "2025-05-02" || q.Has("firstname") {
		t.Fatalf("unexpected query %v", q)
	}
}

func TestHTTPErrorUnwrap(t *testing.T) {
	cases := map[int]error{
		400: ErrBadRequest,
		401: ErrForbidden,
		403: ErrForbidden,
		404: ErrNotFound,
		405: ErrMethodNotAllowed,
		418: ErrUnexpectedStatus,
		500: ErrUnexpectedStatus,
	}
	for status, want := range cases {
		err := &HTTPError{Op: "op", StatusCode: status}
		if err.Unwrap() != want {
			t.Fatalf("status %d: expected %v, got %v", status, want, err.Unwrap())
		}
	}
}
