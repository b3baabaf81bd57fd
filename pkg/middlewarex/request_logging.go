package middlewarex

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"strings"

	"deal_dashboard/pkg/logx"
)

// Upload bodies are binary or large, only their headers are logged.
//
//nolint:gochecknoglobals
var bodylessContentTypes = []string{
	"multipart/form-data",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"application/octet-stream",
}

func RequestLogging(
	sensitiveDataMasker logx.SensitiveDataMaskerInterface,
	logFieldMaxLen int,
) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			dump, err := httputil.DumpRequest(r, dumpBody(r))

			if logFieldMaxLen > 0 && len(dump) > logFieldMaxLen {
				dump = dump[:logFieldMaxLen]
			}

			logger(ctx).Info(
				logx.FieldHTTPRequest,
				slog.String(logx.FieldRequestBody, string(sensitiveDataMasker.Mask(dump))),
				logx.Error(err),
			)

			next.ServeHTTP(w, r)
		})
	}
}

func dumpBody(r *http.Request) bool {
	contentType := r.Header.Get("Content-Type")

	for _, prefix := range bodylessContentTypes {
		if strings.HasPrefix(contentType, prefix) {
			return false
		}
	}

	return true
}
