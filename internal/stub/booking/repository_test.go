package booking

import (
	"reflect"
	"testing"
	"time"
)

func TestListQuery(t *testing.T) {
	checkin := time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC)
	checkout := time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter Filter
		query  string
		args   []interface{}
	}{
		{
			name:  "no filter",
			query: `SELECT id FROM bookings ORDER BY id`,
		},
		{
			name:   "single name",
			filter: Filter{Lastname: "Brown"},
			query:  `SELECT id FROM bookings WHERE lastname = $1 ORDER BY id`,
			args:   []interface{}{"Brown"},
		},
		{
			name:   "dates only",
			filter: Filter{Checkin: checkin, Checkout: checkout},
			query:  `SELECT id FROM bookings WHERE checkin >= $1 AND checkout >= $2 ORDER BY id`,
			args:   []interface{}{checkin, checkout},
		},
		{
			name:   "every field",
			filter: Filter{Firstname: "Jim", Lastname: "Brown", Checkin: checkin, Checkout: checkout},
			query: `SELECT id FROM bookings WHERE firstname = $1 AND lastname = $2 AND ` +
				`checkin >= $3 AND checkout >= $4 ORDER BY id`,
			args: []interface{}{"Jim", "Brown", checkin, checkout},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := listQuery(tt.filter)
			if query != tt.query {
				t.Fatalf("expected query %q, got %q", tt.query, query)
			}
			if !reflect.DeepEqual(args, tt.args) {
				t.Fatalf("expected args %v, got %v", tt.args, args)
			}
		})
	}
}
