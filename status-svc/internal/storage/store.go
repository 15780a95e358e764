package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"food-storefront/status-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

var (
	ErrNotFound    = errors.New("order not found")
	ErrStaleStatus = errors.New("status is older than the recorded one")
)

const StatusTTL = 7 * 24 * time.Hour

type Store struct {
	db  *sql.DB
	rdb *redis.Client
}

func NewStore(db *sql.DB, rdb *redis.Client) *Store {
	return &Store{
		db:  db,
		rdb: rdb,
	}
}

func StatusKey(orderID string) string {
	return fmt.Sprintf("order:%s:status", orderID)
}

// SetStatus writes the status to Postgres first. A status stamped before the
// recorded one is refused with ErrStaleStatus. A failed cache write is
// logged; Postgres stays the source of truth.
func (s *Store) SetStatus(ctx context.Context, orderID, status string, at time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, updated_at = $2
		WHERE id = $3 AND updated_at <= $2
	`, status, at, orderID)
	if err != nil {
		return fmt.Errorf("update status of order %s: %w", orderID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return s.notApplied(ctx, orderID)
	}

	s.cache(ctx, domain.OrderStatus{OrderID: orderID, Status: status, UpdatedAt: at})
	return nil
}

// GetStatus reads the cached status and falls back to Postgres on a miss.
func (s *Store) GetStatus(ctx context.Context, orderID string) (*domain.OrderStatus, error) {
	fields, err := s.rdb.HGetAll(ctx, StatusKey(orderID)).Result()
	if err != nil {
		log.Printf("WARNING: read cached status of order %s: %v", orderID, err)
	}
	if status := fields["status"]; status != "" {
		updatedAt, _ := time.Parse(time.RFC3339, fields["updated_at"])
		return &domain.OrderStatus{OrderID: orderID, Status: status, UpdatedAt: updatedAt}, nil
	}

	st := domain.OrderStatus{OrderID: orderID}
	err = s.db.QueryRowContext(ctx, `
		SELECT status, updated_at
		FROM orders
		WHERE id = $1
	`, orderID).Scan(&st.Status, &st.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, orderID)
	}
	if err != nil {
		return nil, err
	}

	s.cache(ctx, st)
	return &st, nil
}

func (s *Store) notApplied(ctx context.Context, orderID string) error {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT true FROM orders WHERE id = $1`, orderID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrNotFound, orderID)
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: order %s", ErrStaleStatus, orderID)
}

func (s *Store) cache(ctx context.Context, st domain.OrderStatus) {
	key := StatusKey(st.OrderID)
	if err := s.rdb.HSet(ctx, key, map[string]interface{}{
		"status":     st.Status,
		"updated_at": st.UpdatedAt.UTC().Format(time.RFC3339),
	}).Err(); err != nil {
		log.Printf("WARNING: cache status of order %s: %v", st.OrderID, err)
		return
	}
	s.rdb.Expire(ctx, key, StatusTTL)
}
