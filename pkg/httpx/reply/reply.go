package reply

import (
	"context"
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"deal_dashboard/internal/domain"
	"deal_dashboard/pkg/contextx"
	"deal_dashboard/pkg/errcodes"
	"deal_dashboard/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	SupportID string `json:"supportId"`
}

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

//nolint:gochecknoglobals
var statusByCode = map[errcodes.ErrorCode]int{
	errcodes.ValidationError:    http.StatusBadRequest,
	errcodes.InvalidUpload:      http.StatusBadRequest,
	errcodes.InvalidMode:        http.StatusBadRequest,
	errcodes.InvalidRollingMode: http.StatusBadRequest,
	errcodes.UnsupportedUpload:  http.StatusUnsupportedMediaType,
	errcodes.NotFound:           http.StatusNotFound,
	errcodes.BrokerNotFound:     http.StatusNotFound,
	errcodes.DealsNotFound:      http.StatusNotFound,
	errcodes.StoreUnavailable:   http.StatusServiceUnavailable,
}

func OK(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func JSON(ctx context.Context, w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger(ctx).Error("json.Encode", logx.Error(err))
	}
}

func Error(ctx context.Context, w http.ResponseWriter, err error) {
	logger(ctx).Error("error", logx.Error(err))

	response := errorResponse{
		Code:      errcodes.InternalServerError.String(),
		Message:   http.StatusText(http.StatusInternalServerError),
		SupportID: supportID(ctx),
	}

	status := http.StatusInternalServerError

	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		if s, ok := statusByCode[appErr.Code]; ok {
			status = s
			response.Code = appErr.Code.String()
			response.Message = appErr.Error()
		}
	}

	JSON(ctx, w, status, response)
}

func supportID(ctx context.Context) string {
	traceID, err := contextx.TraceIDFromContext(ctx)
	if err != nil {
		return "unsupported"
	}

	return traceID.String()
}
