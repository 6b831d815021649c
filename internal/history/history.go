// Package history keeps a log of conversions: which file was converted,
// with which encoding, how many rows came out and whether it failed.
// Entries never hold file contents, only their digest.
package history

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// DefaultLimit is used when a caller asks for a non-positive number of entries.
const DefaultLimit = 50

// MaxLimit caps a single Recent call.
const MaxLimit = 500

// Status is the outcome of a conversion.
type Status string

const (
	StatusOK     Status = "ok"
	StatusFailed Status = "failed"
)

// Entry is one recorded conversion.
type Entry struct {
	ID         string    `json:"id"`
	FileName   string    `json:"fileName"`
	OutputName string    `json:"outputName,omitempty"`
	Encoding   string    `json:"encoding,omitempty"`
	Rows       int       `json:"rows"`
	SHA256     string    `json:"sha256,omitempty"`
	Status     Status    `json:"status"`
	Error      string    `json:"error,omitempty"`
	IPAddress  string    `json:"ipAddress,omitempty"`
	UserAgent  string    `json:"userAgent,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ErrInvalidEntry is returned by Record for entries without a file name
// or with an unknown status.
var ErrInvalidEntry = errors.New("invalid history entry")

// Store persists entries. Implementations must be safe for concurrent use.
type Store interface {
	// Record saves e. A zero ID or CreatedAt is filled in.
	Record(ctx context.Context, e Entry) error
	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]Entry, error)
}

// NewEntry starts an entry for fileName, stamped with the request
// metadata carried by ctx.
func NewEntry(ctx context.Context, fileName string) Entry {
	return Entry{
		ID:        uuid.NewString(),
		FileName:  fileName,
		Status:    StatusOK,
		IPAddress: IPAddressFromContext(ctx),
		UserAgent: UserAgentFromContext(ctx),
		CreatedAt: time.Now().UTC(),
	}
}

// Fail marks e as failed with err.
func (e *Entry) Fail(err error) {
	e.Status = StatusFailed
	if err != nil {
		e.Error = err.Error()
	}
}

// prepare validates e and fills its defaults.
func prepare(e Entry) (Entry, error) {
	if e.FileName == "" {
		return e, ErrInvalidEntry
	}
	switch e.Status {
	case "":
		e.Status = StatusOK
	case StatusOK, StatusFailed:
	default:
		return e, ErrInvalidEntry
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	return e, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
