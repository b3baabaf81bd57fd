package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"deal_dashboard/internal/domain"
	"deal_dashboard/internal/domain/service/dashboard"
	"deal_dashboard/internal/infrastructure/ingest"
	"deal_dashboard/pkg/contextx"
	"deal_dashboard/pkg/errcodes"
	"deal_dashboard/pkg/httpx/reply"
	"deal_dashboard/pkg/logx"
)

// DefaultMaxUploadBytes caps a single deal file.
const DefaultMaxUploadBytes = 32 << 20

// uploadField is the multipart form field carrying the deal file.
const uploadField = "file"

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type dealService interface {
	Upload(ctx context.Context, id contextx.SessionID, format string, r io.Reader) (dashboard.Summary, error)
	Summary(ctx context.Context, id contextx.SessionID) (dashboard.Summary, error)
	Clear(ctx context.Context, id contextx.SessionID) error
}

type DealServer struct {
	dealService    dealService
	maxUploadBytes int64
}

func NewDealServer(dealService dealService) DealServer {
	return DealServer{
		dealService:    dealService,
		maxUploadBytes: DefaultMaxUploadBytes,
	}
}

func (s DealServer) WithMaxUploadBytes(n int64) DealServer {
	if n > 0 {
		s.maxUploadBytes = n
	}

	return s
}

// postV1Deals accepts either a multipart form with a "file" part or a raw
// body whose format comes from the "filename" query parameter or the
// Content-Type header.
func (s DealServer) postV1Deals(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := sessionID(ctx)
	if err != nil {
		return err
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	body, fileName, contentType, err := s.uploadedFile(r)
	if err != nil {
		s.discard(ctx, id)
		return err
	}
	defer body.Close()

	format, err := ingest.DetectFormat(fileName, contentType)
	if err != nil {
		s.discard(ctx, id)
		return fmt.Errorf("ingest.DetectFormat: %w", err)
	}

	logger(ctx).Info("deal upload", slog.String(logx.FieldFileName, fileName), slog.String("format", format.String()))

	summary, err := s.dealService.Upload(ctx, id, format.String(), body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return domain.WrapError(err, errcodes.InvalidUpload, fmt.Sprintf("upload exceeds %d bytes", maxErr.Limit))
		}

		return fmt.Errorf("dealService.Upload: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTDealSet(id, summary))

	return nil
}

// discard drops the session's deals after an upload that never reached the
// decoder.
func (s DealServer) discard(ctx context.Context, id contextx.SessionID) {
	if err := s.dealService.Clear(ctx, id); err != nil {
		logger(ctx).Error("dealService.Clear", logx.Error(err))
	}
}

func (s DealServer) uploadedFile(r *http.Request) (io.ReadCloser, string, string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return r.Body, r.URL.Query().Get("filename"), r.Header.Get("Content-Type"), nil
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		return nil, "", "", domain.WrapError(err, errcodes.InvalidUpload, `multipart upload must carry a "file" part`)
	}

	return file, header.Filename, header.Header.Get("Content-Type"), nil
}

func (s DealServer) getV1Deals(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := sessionID(ctx)
	if err != nil {
		return err
	}

	summary, err := s.dealService.Summary(ctx, id)
	if err != nil {
		return fmt.Errorf("dealService.Summary: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTDealSet(id, summary))

	return nil
}

func (s DealServer) deleteV1Deals(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := sessionID(ctx)
	if err != nil {
		return err
	}

	if err = s.dealService.Clear(ctx, id); err != nil {
		return fmt.Errorf("dealService.Clear: %w", err)
	}

	reply.NoContent(w)

	return nil
}
