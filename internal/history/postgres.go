package history

import (
	"context"
	"fmt"
	"net/netip"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

const schema = `
CREATE TABLE IF NOT EXISTS conversion_history (
	id          UUID PRIMARY KEY,
	file_name   TEXT NOT NULL,
	output_name TEXT,
	encoding    TEXT,
	row_count   INTEGER NOT NULL DEFAULT 0,
	sha256      TEXT,
	status      TEXT NOT NULL,
	error       TEXT,
	ip_address  INET,
	user_agent  TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_conversion_history_created_at
	ON conversion_history (created_at DESC);
`

// querier is the subset of *pgxpool.Pool used by PostgresStore.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresStore keeps entries in the conversion_history table.
type PostgresStore struct {
	db querier
}

// NewPostgresStore returns a store backed by db, usually a *pgxpool.Pool.
// Call EnsureSchema once before use.
func NewPostgresStore(db querier) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the history table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create history schema: %w", err)
	}
	return nil
}

// Record implements Store.
func (s *PostgresStore) Record(ctx context.Context, e Entry) error {
	e, err := prepare(e)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(e.ID)
	if err != nil {
		return fmt.Errorf("%w: id %q", ErrInvalidEntry, e.ID)
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO conversion_history
			(id, file_name, output_name, encoding, row_count, sha256, status, error, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		pgtype.UUID{Bytes: id, Valid: true},
		e.FileName,
		toPgText(e.OutputName),
		toPgText(e.Encoding),
		e.Rows,
		toPgText(e.SHA256),
		string(e.Status),
		toPgText(e.Error),
		toInet(e.IPAddress),
		toPgText(e.UserAgent),
		pgtype.Timestamptz{Time: e.CreatedAt, Valid: true},
	)
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}
	return nil
}

// Recent implements Store.
func (s *PostgresStore) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, file_name, output_name, encoding, row_count, sha256, status, error, ip_address, user_agent, created_at
		FROM conversion_history
		ORDER BY created_at DESC
		LIMIT $1`, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	return entries, nil
}

// scanEntry scans one conversion_history row.
func scanEntry(rows pgx.Rows) (Entry, error) {
	var (
		id         pgtype.UUID
		fileName   string
		outputName pgtype.Text
		encoding   pgtype.Text
		rowCount   int32
		sha        pgtype.Text
		status     string
		errText    pgtype.Text
		ipAddress  *netip.Addr
		userAgent  pgtype.Text
		createdAt  pgtype.Timestamptz
	)

	err := rows.Scan(
		&id, &fileName, &outputName, &encoding, &rowCount,
		&sha, &status, &errText, &ipAddress, &userAgent, &createdAt,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("scan history entry: %w", err)
	}

	e := Entry{
		ID:         uuid.UUID(id.Bytes).String(),
		FileName:   fileName,
		OutputName: outputName.String,
		Encoding:   encoding.String,
		Rows:       int(rowCount),
		SHA256:     sha.String,
		Status:     Status(status),
		Error:      errText.String,
		UserAgent:  userAgent.String,
		CreatedAt:  createdAt.Time,
	}
	if ipAddress != nil {
		e.IPAddress = ipAddress.String()
	}
	return e, nil
}

func toPgText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

// toInet returns nil for addresses Postgres would reject.
func toInet(ip string) *netip.Addr {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return nil
	}
	return &addr
}
