package seed

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/productgrid/internal/core"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// DefaultQuery selects products in the column names the loader expects.
const DefaultQuery = `SELECT id, name, price::float8 AS price, date::text AS date FROM products ORDER BY id`

// Querier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// productRecord is one result row. NULL columns become absent row fields.
type productRecord struct {
	ID    int64         `db:"id"`
	Name  pgtype.Text   `db:"name"`
	Price pgtype.Float8 `db:"price"`
	Date  pgtype.Text   `db:"date"`
}

// LoadPostgres reads the seed rows once. The query must return the
// columns id, name, price and date.
func LoadPostgres(ctx context.Context, db Querier, query string) ([]core.Row, error) {
	if query == "" {
		query = DefaultQuery
	}

	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query seed rows: %w", err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[productRecord])
	if err != nil {
		return nil, fmt.Errorf("collect seed rows: %w", err)
	}

	out := make([]core.Row, 0, len(records))
	for i, rec := range records {
		row, err := rec.toRow()
		if err != nil {
			return nil, fmt.Errorf("seed row %d: %w", i+1, err)
		}
		out = append(out, row)
	}
	return out, nil
}

func (r productRecord) toRow() (core.Row, error) {
	values := map[core.Field]any{core.FieldID: int(r.ID)}
	if r.Name.Valid {
		values[core.FieldName] = r.Name.String
	}
	if r.Price.Valid {
		values[core.FieldPrice] = r.Price.Float64
	}
	if r.Date.Valid {
		values[core.FieldDate] = r.Date.String
	}
	return core.RowFromValues(values)
}
