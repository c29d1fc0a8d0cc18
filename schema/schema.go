// Package schema loads and caches the database's column catalog, queried
// from information_schema.columns the way dbops.go branches on the pgx
// stdlib driver: a single immutable Snapshot, built once per process and
// shared across every macro invocation in that build.
package schema

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DataType is the closed set of column types the analyzer reasons about.
// Every Postgres type name observed in information_schema.columns is
// normalized into one of these at load time; an unrecognized type name
// fails the snapshot load rather than silently degrading to "unknown".
type DataType int

const (
	Unknown DataType = iota
	Text
	TinyInt
	SmallInt
	Integer
	BigInt
	Numeric
	DoublePrecision
	Boolean
	Timestamp
	NumericArray
	TextArray
)

// IsIntegral reports whether t is one of the fixed-width integer kinds
// the bitwise function family accepts.
func (t DataType) IsIntegral() bool {
	switch t {
	case TinyInt, SmallInt, Integer, BigInt:
		return true
	default:
		return false
	}
}

// IsNumeric reports whether t is any numeric kind, integral or not.
func (t DataType) IsNumeric() bool {
	return t.IsIntegral() || t == Numeric || t == DoublePrecision
}

func (t DataType) String() string {
	switch t {
	case Text:
		return "text"
	case TinyInt:
		return "tinyint"
	case SmallInt:
		return "smallint"
	case Integer:
		return "integer"
	case BigInt:
		return "bigint"
	case Numeric:
		return "numeric"
	case DoublePrecision:
		return "double precision"
	case Boolean:
		return "boolean"
	case Timestamp:
		return "timestamp"
	case NumericArray:
		return "numeric[]"
	case TextArray:
		return "text[]"
	default:
		return "unknown"
	}
}

// pgTypeNames maps every information_schema.columns.data_type spelling
// this front end accepts onto the closed DataType set.
var pgTypeNames = map[string]DataType{
	"text":                        Text,
	"character varying":           Text,
	"varchar":                     Text,
	"character":                   Text,
	"char":                        Text,
	"integer":                     Integer,
	"bigint":                      BigInt,
	"smallint":                    SmallInt,
	"numeric":                     Numeric,
	"decimal":                     Numeric,
	"real":                        DoublePrecision,
	"double precision":            DoublePrecision,
	"boolean":                     Boolean,
	"timestamp without time zone": Timestamp,
	"timestamp with time zone":    Timestamp,
	"date":                        Timestamp,
	"ARRAY":                       Unknown, // resolved via udt_name, see normalizeArrayType
}

// Column is one row of a table's column catalog.
type Column struct {
	Name     string
	Type     DataType
	Nullable bool
}

// Snapshot is an immutable view of every table's columns, indexed
// schema -> table -> column, keyed by the lower-cased names Postgres
// itself stores for unquoted identifiers.
type Snapshot struct {
	Schemas map[string]map[string]map[string]Column
}

// TableNames returns every "schema.table" pair in the snapshot, sorted
// is not guaranteed; callers needing determinism should sort themselves.
func (s *Snapshot) TableNames() []string {
	var names []string
	for schema, tables := range s.Schemas {
		for table := range tables {
			names = append(names, schema+"."+table)
		}
	}
	return names
}

// Table looks up a table's column map by schema and name. ok is false if
// the schema or table is absent from the snapshot.
func (s *Snapshot) Table(schema, table string) (cols map[string]Column, ok bool) {
	tables, ok := s.Schemas[schema]
	if !ok {
		return nil, false
	}
	cols, ok = tables[table]
	return cols, ok
}

// ColumnNames returns the column names of one table, for "did you mean"
// suggestions when a reference doesn't resolve.
func ColumnNames(cols map[string]Column) []string {
	names := make([]string, 0, len(cols))
	for name := range cols {
		names = append(names, name)
	}
	return names
}

// Loader builds Snapshots from a live Postgres connection pool.
type Loader struct {
	pool *pgxpool.Pool
}

// NewLoader wraps an already-established pool. The schema package never
// opens its own connections; the caller (safesql.LoadSchema) opens the
// pool from the DATABASE_URL connection string.
func NewLoader(pool *pgxpool.Pool) *Loader {
	return &Loader{pool: pool}
}

const columnsQuery = `
select table_schema, table_name, column_name, data_type, udt_name, is_nullable
from information_schema.columns
where table_schema not in ('pg_catalog', 'information_schema')
order by table_schema, table_name, ordinal_position
`

// Load queries information_schema.columns and builds a Snapshot. It
// fails if any column's reported type does not normalize to a member of
// DataType, rather than admitting a column the analyzer cannot reason
// about.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	rows, err := l.pool.Query(ctx, columnsQuery)
	if err != nil {
		return nil, fmt.Errorf("schema: querying information_schema.columns: %w", err)
	}
	defer rows.Close()

	snap := &Snapshot{Schemas: map[string]map[string]map[string]Column{}}
	for rows.Next() {
		var tableSchema, tableName, columnName, dataType, udtName, isNullable string
		if err := rows.Scan(&tableSchema, &tableName, &columnName, &dataType, &udtName, &isNullable); err != nil {
			return nil, fmt.Errorf("schema: scanning information_schema.columns row: %w", err)
		}

		dt, err := normalizeType(dataType, udtName)
		if err != nil {
			return nil, fmt.Errorf("schema: column %s.%s.%s: %w", tableSchema, tableName, columnName, err)
		}

		tables, ok := snap.Schemas[tableSchema]
		if !ok {
			tables = map[string]map[string]Column{}
			snap.Schemas[tableSchema] = tables
		}
		cols, ok := tables[tableName]
		if !ok {
			cols = map[string]Column{}
			tables[tableName] = cols
		}
		cols[columnName] = Column{
			Name:     columnName,
			Type:     dt,
			Nullable: isNullable == "YES",
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("schema: reading information_schema.columns: %w", err)
	}
	return snap, nil
}

func normalizeType(dataType, udtName string) (DataType, error) {
	if dataType == "ARRAY" {
		switch strings.TrimPrefix(udtName, "_") {
		case "numeric", "int4", "int8", "int2", "float4", "float8":
			return NumericArray, nil
		case "text", "varchar", "bpchar":
			return TextArray, nil
		default:
			return Unknown, fmt.Errorf("unrecognized array element type %q", udtName)
		}
	}
	dt, ok := pgTypeNames[dataType]
	if !ok {
		return Unknown, fmt.Errorf("unrecognized data_type %q", dataType)
	}
	return dt, nil
}

var (
	sharedOnce sync.Once
	sharedSnap *Snapshot
	sharedErr  error
)

// Shared lazily loads and caches a process-wide Snapshot from pool,
// loaded at most once regardless of how many goroutines race to call it.
// Every macro invocation in a build shares the same schema view.
func Shared(ctx context.Context, pool *pgxpool.Pool) (*Snapshot, error) {
	sharedOnce.Do(func() {
		sharedSnap, sharedErr = NewLoader(pool).Load(ctx)
	})
	return sharedSnap, sharedErr
}
