package repository

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/deppfellow/agro-backend/internal/lib/brfmt"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DefaultLimit caps listings when a spec sets no limit of its own.
const DefaultLimit = 1000

// Op is a filter comparison.
type Op string

const (
	OpEq    Op = "="
	OpGte   Op = ">="
	OpLte   Op = "<="
	OpILike Op = "ILIKE"
)

// Kind tells ParseQuery how to convert a query parameter.
type Kind int

const (
	KindText Kind = iota
	KindUUID
	KindDate
	KindBool
)

// Filter maps a query parameter onto a predicate.
type Filter struct {
	Param    string
	Column   string
	Op       Op
	Kind     Kind
	Required bool
}

// TableSpec describes how a table is read and written. The base table is
// always aliased "t" so Columns, Joins and Filter columns can refer to it.
type TableSpec struct {
	Name    string
	Columns []string
	Joins   []string
	Filters []Filter
	OrderBy string
	Limit   int
}

// Query holds parsed filter values keyed by parameter name.
type Query struct {
	Where map[string]any
	Limit int
}

// NewQuery returns an empty query.
func NewQuery() Query {
	return Query{Where: map[string]any{}}
}

// With returns a copy of q with param set to value.
func (q Query) With(param string, value any) Query {
	where := make(map[string]any, len(q.Where)+1)
	for k, v := range q.Where {
		where[k] = v
	}
	where[param] = value
	return Query{Where: where, Limit: q.Limit}
}

// Fingerprint is a stable representation of q, used in cache keys.
func (q Query) Fingerprint() string {
	keys := make([]string, 0, len(q.Where))
	for k := range q.Where {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%v;", k, q.Where[k])
	}
	if q.Limit > 0 {
		fmt.Fprintf(&b, "limit=%d", q.Limit)
	}
	if b.Len() == 0 {
		return "all"
	}
	return b.String()
}

// FilterError reports a query parameter that could not be converted.
type FilterError struct {
	Param string
	Value string
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("invalid value %q for %s", e.Value, e.Param)
}

// ParseQuery converts the table's filter parameters found in values. Unknown
// parameters are ignored, empty ones are treated as absent.
func (s *TableSpec) ParseQuery(values url.Values) (Query, error) {
	q := NewQuery()

	for _, f := range s.Filters {
		raw := strings.TrimSpace(values.Get(f.Param))
		if raw == "" {
			continue
		}

		v, err := convert(f.Kind, raw)
		if err != nil {
			return Query{}, &FilterError{Param: f.Param, Value: raw}
		}
		q.Where[f.Param] = v
	}

	if raw := values.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return Query{}, &FilterError{Param: "limit", Value: raw}
		}
		q.Limit = n
	}

	return q, nil
}

func convert(kind Kind, raw string) (any, error) {
	switch kind {
	case KindUUID:
		return uuid.Parse(raw)
	case KindDate:
		t, err := brfmt.ParseDate(raw)
		if err != nil {
			return nil, err
		}
		return t, nil
	case KindBool:
		return strconv.ParseBool(raw)
	default:
		return raw, nil
	}
}

// Missing lists the required parameters q lacks. A listing with missing
// required parameters is never sent to the database.
func (s *TableSpec) Missing(q Query) []string {
	var missing []string
	for _, f := range s.Filters {
		if !f.Required {
			continue
		}
		if v, ok := q.Where[f.Param]; !ok || v == nil {
			missing = append(missing, f.Param)
		}
	}
	return missing
}

// RowLimit is the number of rows a listing asking for requested returns at most.
func (s *TableSpec) RowLimit(requested int) int {
	ceiling := s.Limit
	if ceiling <= 0 {
		ceiling = DefaultLimit
	}
	if requested <= 0 || requested > ceiling {
		return ceiling
	}
	return requested
}

func (s *TableSpec) selectFrom(from string) string {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(s.Columns, ", "))
	b.WriteString(" FROM ")
	b.WriteString(from)
	for _, j := range s.Joins {
		b.WriteByte(' ')
		b.WriteString(j)
	}
	return b.String()
}

func (s *TableSpec) table() string {
	return pgx.Identifier{s.Name}.Sanitize()
}

// likeEscaper escapes LIKE wildcards so a search matches them literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// where builds the tenant scope plus one predicate per filter present in q.
func (s *TableSpec) where(tenantID string, q Query) (string, []any) {
	args := []any{tenantID}

	var b strings.Builder
	b.WriteString(" WHERE t.tenant_id = $1")

	for _, f := range s.Filters {
		v, ok := q.Where[f.Param]
		if !ok || v == nil {
			continue
		}
		op := f.Op
		if op == "" {
			op = OpEq
		}
		if op == OpILike {
			args = append(args, "%"+likeEscaper.Replace(fmt.Sprint(v))+"%")
			fmt.Fprintf(&b, ` AND %s ILIKE $%d ESCAPE '\'`, f.Column, len(args))
			continue
		}
		args = append(args, v)
		fmt.Fprintf(&b, " AND %s %s $%d", f.Column, op, len(args))
	}

	return b.String(), args
}

// SelectSQL builds the listing statement.
func (s *TableSpec) SelectSQL(tenantID string, q Query) (string, []any) {
	where, args := s.where(tenantID, q)

	var b strings.Builder
	b.WriteString(s.selectFrom(s.table() + " t"))
	b.WriteString(where)

	if s.OrderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(s.OrderBy)
	}
	fmt.Fprintf(&b, " LIMIT %d", s.RowLimit(q.Limit))

	return b.String(), args
}

// SumSQL totals value per key over every row matching q. The listing limit
// does not apply. Totals are returned as text to keep numeric precision.
func (s *TableSpec) SumSQL(tenantID string, q Query, key, value string) (string, []any) {
	where, args := s.where(tenantID, q)

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s AS chave, COALESCE(SUM(%s), 0)::text AS total FROM %s t", key, value, s.table())
	for _, j := range s.Joins {
		b.WriteByte(' ')
		b.WriteString(j)
	}
	b.WriteString(where)
	fmt.Fprintf(&b, " GROUP BY %s", key)

	return b.String(), args
}

// GetSQL builds the single-row read.
func (s *TableSpec) GetSQL(tenantID string, id uuid.UUID) (string, []any) {
	return s.selectFrom(s.table()+" t") + " WHERE t.tenant_id = $1 AND t.id = $2", []any{tenantID, id}
}

// InsertSQL inserts and reads the row back, joins included, in one statement.
func (s *TableSpec) InsertSQL(tenantID string, cols []string, vals []any) (string, []any) {
	names := make([]string, 0, len(cols)+1)
	params := make([]string, 0, len(cols)+1)
	args := make([]any, 0, len(vals)+1)

	names = append(names, "tenant_id")
	params = append(params, "$1")
	args = append(args, tenantID)

	for i, c := range cols {
		names = append(names, pgx.Identifier{c}.Sanitize())
		args = append(args, vals[i])
		params = append(params, "$"+strconv.Itoa(len(args)))
	}

	sql := fmt.Sprintf("WITH t AS (INSERT INTO %s (%s) VALUES (%s) RETURNING *) %s",
		s.table(), strings.Join(names, ", "), strings.Join(params, ", "), s.selectFrom("t"))
	return sql, args
}

// UpdateSQL updates and reads the row back, joins included, in one statement.
func (s *TableSpec) UpdateSQL(tenantID string, id uuid.UUID, cols []string, vals []any) (string, []any) {
	args := []any{tenantID, id}
	sets := make([]string, 0, len(cols))

	for i, c := range cols {
		args = append(args, vals[i])
		sets = append(sets, fmt.Sprintf("%s = $%d", pgx.Identifier{c}.Sanitize(), len(args)))
	}

	sql := fmt.Sprintf("WITH t AS (UPDATE %s SET %s WHERE tenant_id = $1 AND id = $2 RETURNING *) %s",
		s.table(), strings.Join(sets, ", "), s.selectFrom("t"))
	return sql, args
}

// DeleteSQL builds the delete statement.
func (s *TableSpec) DeleteSQL(tenantID string, id uuid.UUID) (string, []any) {
	return fmt.Sprintf("DELETE FROM %s WHERE tenant_id = $1 AND id = $2", s.table()), []any{tenantID, id}
}

// Columns extracts the `db`-tagged fields of a payload struct. Nil pointers
// are skipped, so an update only touches the fields the client sent.
// Exported embedded structs are flattened.
func Columns(payload any) ([]string, []any, error) {
	v := reflect.ValueOf(payload)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, nil, fmt.Errorf("repository: nil payload")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("repository: payload must be a struct, got %s", v.Kind())
	}

	var cols []string
	var vals []any
	collectColumns(v, &cols, &vals)
	return cols, vals, nil
}

func collectColumns(v reflect.Value, cols *[]string, vals *[]any) {
	typ := v.Type()
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		if !sf.IsExported() {
			continue
		}

		fv := v.Field(i)
		tag := sf.Tag.Get("db")

		if sf.Anonymous && tag == "" && fv.Kind() == reflect.Struct {
			collectColumns(fv, cols, vals)
			continue
		}

		if tag == "" || tag == "-" {
			continue
		}
		if fv.Kind() == reflect.Pointer && fv.IsNil() {
			continue
		}

		*cols = append(*cols, tag)
		*vals = append(*vals, fv.Interface())
	}
}
