package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/mocktracer"
)

func withMockTracer(t *testing.T) *mocktracer.MockTracer {
	t.Helper()
	tracer := mocktracer.New()
	old := opentracing.GlobalTracer()
	opentracing.SetGlobalTracer(tracer)
	t.Cleanup(func() { opentracing.SetGlobalTracer(old) })
	return tracer
}

func TestTracingStartsServerSpan(t *testing.T) {
	tracer := withMockTracer(t)

	var sawSpan bool
	h := Tracing("shop-service")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawSpan = opentracing.SpanFromContext(r.Context()) != nil
		w.WriteHeader(http.StatusNotFound)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/requests/7", nil))

	if !sawSpan {
		t.Fatalf("expected span injected into request context")
	}
	spans := tracer.FinishedSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 finished span, got %d", len(spans))
	}
	sp := spans[0]
	if sp.OperationName != "GET /requests/7" {
		t.Fatalf("unexpected operation name: %s", sp.OperationName)
	}
	if got := sp.Tag("http.status_code"); got != uint16(http.StatusNotFound) {
		t.Fatalf("unexpected status tag: %v", got)
	}
	if got := sp.Tag("service"); got != "shop-service" {
		t.Fatalf("unexpected service tag: %v", got)
	}
}

func TestTracingJoinsUpstreamSpan(t *testing.T) {
	tracer := withMockTracer(t)

	parent := tracer.StartSpan("client call")
	req := httptest.NewRequest(http.MethodPost, "/requests", nil)
	if err := tracer.Inject(parent.Context(), opentracing.HTTPHeaders, opentracing.HTTPHeadersCarrier(req.Header)); err != nil {
		t.Fatalf("inject: %v", err)
	}

	h := Tracing("")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	h.ServeHTTP(httptest.NewRecorder(), req)

	spans := tracer.FinishedSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 finished span, got %d", len(spans))
	}
	wantParent := parent.Context().(mocktracer.MockSpanContext).SpanID
	if spans[0].ParentID != wantParent {
		t.Fatalf("expected span parented to upstream %d, got %d", wantParent, spans[0].ParentID)
	}
}
