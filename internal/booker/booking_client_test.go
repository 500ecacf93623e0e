package booker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

const sampleBooking = `{
	"firstname": "Test",
	"lastname": "User",
	"totalprice": 100,
	"depositpaid": true,
	"bookingdates": {"checkin": "2025-01-01", "checkout": "2025-01-05"},
	"additionalneeds": "Breakfast"
}`

func sampleDetails() BookingDetails {
	return BookingDetails{
		Firstname:       "Test",
		Lastname:        "User",
		TotalPrice:      100,
		DepositPaid:     true,
		BookingDates:    DateRange{Checkin: NewDate(2025, time.January, 1), Checkout: NewDate(2025, time.January, 5)},
		AdditionalNeeds: "Breakfast",
	}
}

func TestListBookingIDs(t *testing.T) {
	var query string
	s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/booking" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		query = r.URL.RawQuery
		_, _ = w.Write([]byte(`[{"bookingid":7},{"bookingid":3},{"bookingid":12}]`))
	})

	ids, err := NewBookingClient(s).ListBookingIDs(context.Background(), BookingFilter{
		Firstname: "Sally",
		Checkin:   NewDate(2025, time.March, 1),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 3 || ids[0] != 7 || ids[1] != 3 || ids[2] != 12 {
		t.Fatalf("expected ids in server order, got %v", ids)
	}
	if query != "checkin=2025-03-01&firstname=Sally" {
		t.Fatalf("unexpected query %q", query)
	}
}

func TestListBookingIDsRejectsMalformedItems(t *testing.T) {
	s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"bookingid":1},{"id":2}]`))
	})

	_, err := NewBookingClient(s).ListBookingIDs(context.Background(), BookingFilter{})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetBooking(t *testing.T) {
	s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/booking/42" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("Not Found"))
			return
		}
		_, _ = w.Write([]byte(sampleBooking))
	})
	client := NewBookingClient(s)

	got, err := client.GetBooking(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != sampleDetails() {
		t.Fatalf("unexpected booking %+v", got)
	}

	_, err = client.GetBooking(context.Background(), 999999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if !strings.Contains(err.Error(), "404") || !strings.Contains(err.Error(), "Not Found") {
		t.Fatalf("expected status in message, got %q", err.Error())
	}
}

func TestGetBookingValidation(t *testing.T) {
	bodies := map[string]string{
		"missing lastname":  `{"firstname":"A","totalprice":1,"depositpaid":true,"bookingdates":{"checkin":"2025-01-01","checkout":"2025-01-02"}}`,
		"missing dates":     `{"firstname":"A","lastname":"B","totalprice":1,"depositpaid":true}`,
		"price as string":   `{"firstname":"A","lastname":"B","totalprice":"1","depositpaid":true,"bookingdates":{"checkin":"2025-01-01","checkout":"2025-01-02"}}`,
		"malformed date":    `{"firstname":"A","lastname":"B","totalprice":1,"depositpaid":true,"bookingdates":{"checkin":"01/01/2025","checkout":"2025-01-02"}}`,
		"empty checkout":    `{"firstname":"A","lastname":"B","totalprice":1,"depositpaid":true,"bookingdates":{"checkin":"2025-01-01","checkout":""}}`,
		"missing depositpd": `{"firstname":"A","lastname":"B","totalprice":1,"bookingdates":{"checkin":"2025-01-01","checkout":"2025-01-02"}}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})
			_, err := NewBookingClient(s).GetBooking(context.Background(), 1)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestGetBookingDefaultsAdditionalNeeds(t *testing.T) {
	s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"firstname":"A","lastname":"B","totalprice":0,"depositpaid":false,"bookingdates":{"checkin":"2025-01-01","checkout":"2025-01-01"}}`))
	})

	got, err := NewBookingClient(s).GetBooking(context.Background(), 1)
	if err != nil {
		t.Fatalf("zero price and false deposit are valid values, got %v", err)
	}
	if got.AdditionalNeeds != "" || got.BookingDates.Nights() != 0 {
		t.Fatalf("unexpected booking %+v", got)
	}
}

func TestCreateBooking(t *testing.T) {
	var sent map[string]any
	s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/booking" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &sent)
		_, _ = w.Write([]byte(`{"bookingid": 17, "booking": ` + string(raw) + `}`))
	})
	client := NewBookingClient(s)

	id, err := client.CreateBooking(context.Background(), sampleDetails())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 17 {
		t.Fatalf("expected id 17, got %d", id)
	}
	dates, _ := sent["bookingdates"].(map[string]any)
	if dates["checkin"] != "2025-01-01" || dates["checkout"] != "2025-01-05" {
		t.Fatalf("expected ISO dates on the wire, got %v", sent["bookingdates"])
	}
	if sent["additionalneeds"] != "Breakfast" {
		t.Fatalf("unexpected additionalneeds %v", sent["additionalneeds"])
	}

	rec, err := client.CreateBookingRecord(context.Background(), sampleDetails())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Booking != sampleDetails() {
		t.Fatalf("expected echo of sent details, got %+v", rec.Booking)
	}
}

func TestCreateBookingBadRequest(t *testing.T) {
	s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("Bad Request"))
	})

	_, err := NewBookingClient(s).CreateBooking(context.Background(), BookingDetails{TotalPrice: -1})
	if !errors.Is(err, ErrBadRequest) {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestCreateBookingRejectsEchoWithoutID(t *testing.T) {
	s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"booking": ` + sampleBooking + `}`))
	})

	_, err := NewBookingClient(s).CreateBooking(context.Background(), sampleDetails())
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := ve.Fields["bookingid"]; !ok {
		t.Fatalf("expected bookingid field error, got %v", ve.Fields)
	}
}

func TestMutatingCallsSendTokenCookie(t *testing.T) {
	type seen struct {
		method string
		cookie string
		auth   string
		body   string
	}
	var calls []seen
	s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		calls = append(calls, seen{r.Method, r.Header.Get("Cookie"), r.Header.Get("Authorization"), string(raw)})
		switch r.Method {
		case http.MethodDelete:
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte("Created"))
		default:
			_, _ = w.Write([]byte(sampleBooking))
		}
	})
	client := NewBookingClient(s)
	ctx := context.Background()

	if _, err := client.UpdateBookingFull(ctx, 5, "tok", sampleDetails()); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	patch := BookingPatch{}.SetFirstname("Sally").SetTotalPrice(0)
	if _, err := client.UpdateBookingPartial(ctx, 5, "tok", patch); err != nil {
		t.Fatalf("patch failed: %v", err)
	}
	ok, err := client.DeleteBooking(ctx, 5, "tok")
	if err != nil || !ok {
		t.Fatalf("delete failed: ok=%v err=%v", ok, err)
	}

	if len(calls) != 3 {
		t.Fatalf("expected 3 calls, got %d", len(calls))
	}
	for _, c := range calls {
		if c.cookie != "token=tok" {
			t.Fatalf("%s: expected token cookie, got %q", c.method, c.cookie)
		}
		if c.auth != "" {
			t.Fatalf("%s: token must not travel in Authorization, got %q", c.method, c.auth)
		}
	}

	var patchBody map[string]any
	if err := json.Unmarshal([]byte(calls[1].body), &patchBody); err != nil {
		t.Fatalf("patch body not json: %v", err)
	}
	if len(patchBody) != 2 || patchBody["firstname"] != "Sally" || patchBody["totalprice"] != float64(0) {
		t.Fatalf("expected sparse patch body, got %v", patchBody)
	}
}

func TestDeleteBookingStatuses(t *testing.T) {
	cases := []struct {
		status  int
		deleted bool
		want    error
	}{
		{http.StatusOK, true, nil},
		{http.StatusCreated, true, nil},
		{http.StatusNoContent, false, nil},
		{http.StatusNotFound, false, ErrNotFound},
		{http.StatusMethodNotAllowed, false, ErrMethodNotAllowed},
		{http.StatusForbidden, false, ErrForbidden},
	}
	for _, tc := range cases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			})
			deleted, err := NewBookingClient(s).DeleteBooking(context.Background(), 1, "tok")
			if tc.want == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if deleted != tc.deleted {
				t.Fatalf("expected deleted=%v, got %v", tc.deleted, deleted)
			}
		})
	}
}

func TestPing(t *testing.T) {
	s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ping" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusCreated)
	})
	if err := NewBookingClient(s).Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSessionWithoutBaseURL(t *testing.T) {
	_, err := NewBookingClient(NewSession("")).GetBooking(context.Background(), 1)
	if err == nil || !strings.Contains(err.Error(), "base_url is empty") {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestNetworkErrorClassified(t *testing.T) {
	s := NewSession("http://127.0.0.1:1", WithTimeout(time.Second))
	err := NewBookingClient(s).Ping(context.Background())
	if err == nil || !strings.Contains(err.Error(), "ping network error") {
		t.Fatalf("expected network error classification, got %v", err)
	}
}
