package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/corrector/internal/core"
	"github.com/JonMunkholm/corrector/internal/history"
	"github.com/JonMunkholm/corrector/internal/logging"
)

// formField is the multipart field carrying the uploaded file.
const formField = "csv"

// multipartOverhead is allowed on top of MaxFileSize for the multipart
// boundaries and part headers.
const multipartOverhead = 64 << 10

// multipartMemory is how much of an upload is held in memory before
// spilling to a temporary file.
const multipartMemory = 8 << 20

var (
	errNoFile       = errors.New("no file provided")
	errFileTooLarge = errors.New("file too large")
	errInvalidLimit = errors.New("invalid limit: must be a positive integer")
)

// handleConvert converts one uploaded file and returns it as a download.
// The response is either the whole converted CSV or a text error; the
// output is produced in memory first so a failure never sends a partial
// file.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	ctx := WithRequestMetadata(r.Context(), r)

	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
			err = errNoFile
		}
		respondError(w, r, err, conversionStatus(err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(formField)
	if err != nil {
		respondError(w, r, errNoFile, http.StatusBadRequest)
		return
	}
	defer file.Close()

	entry := history.NewEntry(ctx, header.Filename)
	entry.OutputName = core.OutputFileName(header.Filename)
	log := logging.WithFields(ctx, "file", header.Filename, "size", header.Size)

	if header.Size > maxSize {
		err := fmt.Errorf("%w: %d bytes exceeds limit of %d", errFileTooLarge, header.Size, maxSize)
		s.fail(ctx, r, w, &entry, err)
		return
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		s.fail(ctx, r, w, &entry, err)
		return
	}
	defer s.limiter.Release()

	data, err := io.ReadAll(file)
	if err != nil {
		s.fail(ctx, r, w, &entry, fmt.Errorf("read upload: %w", err))
		return
	}

	convCtx, cancel := context.WithTimeout(ctx, s.cfg.Upload.Timeout)
	defer cancel()

	out, res, err := s.converter.ConvertBytes(convCtx, header.Filename, data)
	if res != nil {
		entry.Encoding = res.Encoding
		entry.Rows = res.Rows
	}
	if err != nil {
		s.fail(ctx, r, w, &entry, err)
		return
	}
	entry.SHA256 = res.SHA256
	s.record(ctx, entry)

	log.Info("conversion finished",
		"encoding", res.Encoding,
		"encoding_matched", res.EncodingMatched,
		"rows", res.Rows,
		"bytes_out", len(out),
		"duration_ms", res.Duration.Milliseconds(),
		"sha256", res.SHA256,
		"totals", res.Totals.String(),
	)

	w.Header().Set("Content-Type", "text/csv; charset=UTF-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Content-Disposition", `attachment; filename="`+entry.OutputName+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(out)))
	w.Header().Set("X-Conversion-Id", entry.ID)
	w.Header().Set("X-Content-SHA256", res.SHA256)
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

// fail records a failed conversion and writes the error response.
func (s *Server) fail(ctx context.Context, r *http.Request, w http.ResponseWriter, entry *history.Entry, err error) {
	entry.Fail(err)
	s.record(ctx, *entry)
	respondError(w, r, err, conversionStatus(err))
}

// record saves entry. History is best effort: a store failure is logged
// and never fails the request.
func (s *Server) record(ctx context.Context, entry history.Entry) {
	if s.history == nil {
		return
	}
	if err := s.history.Record(context.WithoutCancel(ctx), entry); err != nil {
		logging.FromContext(ctx).Warn("failed to record conversion history",
			"conversion_id", entry.ID,
			"error", err,
		)
	}
}
