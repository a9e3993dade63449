// Package model defines the rows stored per table and the request payloads
// that create or update them.
//
// Entities carry `db` tags matching the select list of their table (joined
// fields included) and are scanned by name. Payloads carry `db` tags naming
// the columns they write; nil pointer fields are left out of the statement.
package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/deppfellow/agro-backend/internal/lib/brfmt"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// Base holds the columns every tenant-scoped table has.
type Base struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TenantID  string    `json:"tenant_id" db:"tenant_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Date is a calendar date. It reads "2025-03-07" or "07/03/2025" from JSON,
// writes "2025-03-07", and maps to a PostgreSQL date column.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date in UTC.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format("2006-01-02"))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	t, err := brfmt.ParseDate(s)
	if err != nil {
		return err
	}
	*d = NewDate(t)
	return nil
}

// UnmarshalParam lets echo bind dates from query parameters.
func (d *Date) UnmarshalParam(param string) error {
	t, err := brfmt.ParseDate(param)
	if err != nil {
		return err
	}
	*d = NewDate(t)
	return nil
}

func (d *Date) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		*d = Date{}
		return nil
	}
	*d = NewDate(v.Time)
	return nil
}

func (d Date) DateValue() (pgtype.Date, error) {
	if d.IsZero() {
		return pgtype.Date{}, nil
	}
	return pgtype.Date{Time: d.Time, Valid: true}, nil
}

// String renders dd/mm/yyyy.
func (d Date) String() string {
	return brfmt.FormatDate(d.Time)
}
