package httpapi

import (
	"net/http"

	"github.com/riskibarqy/lol-match-history/internal/platform/id"
	"github.com/riskibarqy/lol-match-history/internal/platform/logging"
)

func NewRouter(
	handler *Handler,
	logger *logging.Logger,
	ids id.Generator,
	serviceName string,
	internalJobToken string,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerInternalJobRoutes(mux, handler, internalJobToken)

	return RequestTracing(serviceName, RequestID(ids, RequestLogging(logger, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "request_id", requestIDFromContext(ctx))
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
