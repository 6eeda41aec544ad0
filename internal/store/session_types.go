package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SessionType is a bookable service and its price.
type SessionType struct {
	ID     uuid.UUID
	Name   string
	Amount decimal.Decimal
}

// CreateSessionType adds a bookable service.
func (s *Store) CreateSessionType(ctx context.Context, name string, amount decimal.Decimal) (SessionType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return SessionType{}, fmt.Errorf("create session type: required field missing: name")
	}
	if amount.IsNegative() {
		return SessionType{}, fmt.Errorf("create session type %q: amount %s is negative", name, amount)
	}

	st := SessionType{ID: uuid.New(), Name: name, Amount: amount}
	_, err := s.db.Exec(ctx,
		`INSERT INTO session_types (type_id, session_type, amount) VALUES ($1, $2, $3::numeric)`,
		st.ID, st.Name, amount.StringFixed(2))
	if err != nil {
		return SessionType{}, fmt.Errorf("create session type %q: %w", name, err)
	}
	return st, nil
}

// ListSessionTypes returns every bookable service ordered by name.
func (s *Store) ListSessionTypes(ctx context.Context) ([]SessionType, error) {
	rows, err := s.db.Query(ctx,
		`SELECT type_id, session_type, amount::text FROM session_types ORDER BY session_type`)
	if err != nil {
		return nil, fmt.Errorf("list session types: %w", err)
	}
	defer rows.Close()

	var types []SessionType
	for rows.Next() {
		var st SessionType
		var amount string
		if err := rows.Scan(&st.ID, &st.Name, &amount); err != nil {
			return nil, fmt.Errorf("scan session type: %w", err)
		}
		if st.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parse amount %q: %w", amount, err)
		}
		types = append(types, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list session types: %w", err)
	}
	return types, nil
}
