package httpapi

import (
	"context"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("lol-match-history/internal/interfaces/httpapi")
var noopSpan = trace.SpanFromContext(context.Background())

// startSpan opens handler spans under the request span. Helpers and
// untraced routes such as /healthz get a no-op span.
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, noopSpan
	}
	if !shouldCreateHTTPAPISpan(name) {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, "httpapi.Handler.")
}

// pathAttrs copies the named path values of r onto span attributes.
func pathAttrs(r *http.Request, names ...string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(names))
	for _, name := range names {
		if v := strings.TrimSpace(r.PathValue(name)); v != "" {
			attrs = append(attrs, attribute.String("http.path."+name, v))
		}
	}
	return attrs
}
