package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
)

// Repository defines booking storage.
// GetByID returns nil, nil for an unknown id; Update and Delete return
// ErrBookingNotFound.
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id int) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]int, error)
	Update(ctx context.Context, b *Booking) error
	Delete(ctx context.Context, id int) error
}

// MemoryRepository keeps bookings in process, ids in insertion order
type MemoryRepository struct {
	mu       sync.RWMutex
	nextID   int
	order    []int
	bookings map[int]Booking
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		nextID:   1,
		bookings: make(map[int]Booking),
	}
}

func (r *MemoryRepository) Create(_ context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b.ID = r.nextID
	r.nextID++
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	r.bookings[b.ID] = *b
	r.order = append(r.order, b.ID)
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id int) (*Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *MemoryRepository) List(_ context.Context, filter Filter) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int, 0, len(r.order))
	for _, id := range r.order {
		b := r.bookings[id]
		if filter.Matches(&b) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *MemoryRepository) Update(_ context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.bookings[b.ID]
	if !ok {
		return ErrBookingNotFound
	}
	b.CreatedAt = existing.CreatedAt
	r.bookings[b.ID] = *b
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[id]; !ok {
		return ErrBookingNotFound
	}
	delete(r.bookings, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// PostgresRepository handles booking database operations
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new booking repository
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const schema = `
	CREATE TABLE IF NOT EXISTS bookings (
		id              SERIAL PRIMARY KEY,
		firstname       TEXT NOT NULL,
		lastname        TEXT NOT NULL,
		totalprice      INTEGER NOT NULL,
		depositpaid     BOOLEAN NOT NULL,
		checkin         DATE NOT NULL,
		checkout        DATE NOT NULL,
		additionalneeds TEXT NOT NULL DEFAULT '',
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// Migrate creates the bookings table if it does not exist
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create bookings table: %w", err)
	}
	return nil
}

// Create inserts a new booking and sets its id
func (r *PostgresRepository) Create(ctx context.Context, b *Booking) error {
	query := `
		INSERT INTO bookings (firstname, lastname, totalprice, depositpaid, checkin, checkout, additionalneeds)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	return r.db.QueryRowxContext(ctx, query,
		b.Firstname,
		b.Lastname,
		b.TotalPrice,
		b.DepositPaid,
		b.Checkin,
		b.Checkout,
		b.AdditionalNeeds,
	).Scan(&b.ID, &b.CreatedAt)
}

// GetByID returns a booking by ID
func (r *PostgresRepository) GetByID(ctx context.Context, id int) (*Booking, error) {
	query := `SELECT * FROM bookings WHERE id = $1`
	var b Booking
	err := r.db.GetContext(ctx, &b, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns ids matching the filter in insertion order
func (r *PostgresRepository) List(ctx context.Context, filter Filter) ([]int, error) {
	query, args := listQuery(filter)
	ids := []int{}
	err := r.db.SelectContext(ctx, &ids, query, args...)
	return ids, err
}

// listQuery builds the id lookup for filter with positional placeholders
func listQuery(filter Filter) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if filter.Firstname != "" {
		add("firstname = $%d", filter.Firstname)
	}
	if filter.Lastname != "" {
		add("lastname = $%d", filter.Lastname)
	}
	if !filter.Checkin.IsZero() {
		add("checkin >= $%d", filter.Checkin)
	}
	if !filter.Checkout.IsZero() {
		add("checkout >= $%d", filter.Checkout)
	}

	query := `SELECT id FROM bookings`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY id`
	return query, args
}

// Update replaces every field of an existing booking
func (r *PostgresRepository) Update(ctx context.Context, b *Booking) error {
	query := `
		UPDATE bookings
		SET firstname = $2, lastname = $3, totalprice = $4, depositpaid = $5,
		    checkin = $6, checkout = $7, additionalneeds = $8
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		b.ID,
		b.Firstname,
		b.Lastname,
		b.TotalPrice,
		b.DepositPaid,
		b.Checkin,
		b.Checkout,
		b.AdditionalNeeds,
	)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// Delete removes a booking
func (r *PostgresRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBookingNotFound
	}
	return nil
}
