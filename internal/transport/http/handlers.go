package httpserver

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/milad/energymonitor/internal/rpc/energyv1"
)

const upstreamTimeout = 5 * time.Second

type Server struct {
	client  EnergyClient
	mux     *http.ServeMux
	log     *zap.Logger
	breaker *gobreaker.CircuitBreaker
}

func New(client EnergyClient, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		client:  client,
		mux:     http.NewServeMux(),
		log:     log,
		breaker: newUpstreamBreaker(log),
	}
	s.routes()
	return s
}

// newUpstreamBreaker trips after 3+ calls in a minute with at least 60% of
// them failing at the transport level, and lets a trial request through after 30s.
func newUpstreamBreaker(log *zap.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "grpc-upstream",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		// Rejected requests say nothing about upstream health.
		IsSuccessful: func(err error) bool {
			switch status.Code(err) {
			case codes.OK, codes.InvalidArgument, codes.NotFound, codes.Canceled:
				return true
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	reqID := newRequestID()

	w.Header().Set("X-Request-Id", reqID)
	rr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	defer func() {
		if rec := recover(); rec != nil {
			rr.status = http.StatusInternalServerError

			// Best-effort response. If headers/body were already written, we can
			// only log.
			if !rr.wroteHeader {
				if strings.HasPrefix(r.URL.Path, "/api") {
					writeAPIError(rr, http.StatusInternalServerError, "internal_error", "internal error")
				} else {
					http.Error(rr, "internal error", http.StatusInternalServerError)
				}
			}

			s.log.Error("panic handling request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("req_id", reqID),
				zap.Any("panic", rec),
				zap.ByteString("stack", debug.Stack()),
			)
		}

		dur := time.Since(start)
		observeHTTPRequest(r, rr.status, dur)

		// Keep health checks + metrics endpoint quiet.
		if r.URL.Path != "/healthz" && r.URL.Path != "/metrics" {
			s.log.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rr.status),
				zap.Duration("duration", dur),
				zap.String("req_id", reqID),
			)
		}
	}()

	s.mux.ServeHTTP(rr, r)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/api/readings", s.handleReadings)
	s.mux.HandleFunc("/api/readings/{id}", s.handleReading)
	s.mux.HandleFunc("/api/consumption", s.handleConsumption)
	s.mux.HandleFunc("/api/insights", s.handleInsights)
	s.mux.HandleFunc("/api/bill", s.handleBill)
	s.mux.HandleFunc("/api/regions", s.handleRegions)
	s.mux.HandleFunc("/api/recommendation", s.handleRecommendation)
	s.mux.HandleFunc("/api/export.csv", s.handleExport)
	s.mux.HandleFunc("/api/tips", s.handleTips)
	s.mux.HandleFunc("/api/scan", s.handleScan)
	s.mux.HandleFunc("/healthz", s.handleHealthz)
	s.mux.Handle("/metrics", promhttp.Handler())
	s.mux.HandleFunc("/", s.handleIndex)
}

func (s *Server) handleReadings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListReadings(w, r)
	case http.MethodPost:
		s.handleAddReading(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	}
}

// handleListReadings returns JSON readings filtered by [start, end) if provided.
// Query params `start` and `end` must be RFC3339 (UTC recommended); `meter_type`
// narrows the result to one meter.
func (s *Server) handleListReadings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, err := parseOptionalRFC3339(q.Get("start"))
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_argument", "invalid start")
		return
	}
	end, err := parseOptionalRFC3339(q.Get("end"))
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_argument", "invalid end")
		return
	}

	pageSize, err := parseOptionalInt(q.Get("page_size"))
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_argument", "invalid page_size")
		return
	}
	if pageSize < 0 {
		writeAPIError(w, http.StatusBadRequest, "invalid_argument", "page_size must be >= 0")
		return
	}
	pageToken := q.Get("page_token")
	if pageToken != "" && pageSize == 0 {
		writeAPIError(w, http.StatusBadRequest, "invalid_argument", "page_token requires page_size")
		return
	}

	req := &energyv1.ListReadingsRequest{
		MeterType: q.Get("meter_type"),
		Start:     start,
		End:       end,
		PageSize:  int32(pageSize),
		PageToken: pageToken,
	}
	var resp *energyv1.ListReadingsResponse
	if !s.callUpstream(w, r, "ListReadings", func(ctx context.Context) (err error) {
		resp, err = s.client.ListReadings(ctx, req)
		return err
	}) {
		return
	}
	if resp.Readings == nil {
		resp.Readings = []energyv1.Reading{}
	}
	_ = writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddReading(w http.ResponseWriter, r *http.Request) {
	var in energyv1.Reading
	if err := readJSON(w, r, &in); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_argument", err.Error())
		return
	}
	if in.Time != "" {
		t, err := parseOptionalRFC3339(in.Time)
		if err != nil {
			writeAPIError(w, http.StatusBadRequest, "invalid_argument", "invalid time")
			return
		}
		in.Time = t
	}

	var resp *energyv1.AddReadingResponse
	if !s.callUpstream(w, r, "AddReading", func(ctx context.Context) (err error) {
		resp, err = s.client.AddReading(ctx, &energyv1.AddReadingRequest{Reading: in})
		return err
	}) {
		return
	}
	w.Header().Set("Location", "/api/readings/"+resp.Reading.ID)
	_ = writeJSON(w, http.StatusCreated, resp.Reading)
}

func (s *Server) handleReading(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.Header().Set("Allow", http.MethodDelete)
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	id := r.PathValue("id")
	if !s.callUpstream(w, r, "DeleteReading", func(ctx context.Context) error {
		_, err := s.client.DeleteReading(ctx, &energyv1.DeleteReadingRequest{ID: id})
		return err
	}) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// callUpstream runs one gRPC call through the breaker under the upstream
// timeout and records it. On failure it writes the API error and returns false.
func (s *Server) callUpstream(w http.ResponseWriter, r *http.Request, method string, call func(ctx context.Context) error) bool {
	ctx, cancel := context.WithTimeout(r.Context(), upstreamTimeout)
	defer cancel()

	grpcStart := time.Now()
	_, err := s.breaker.Execute(func() (any, error) { return nil, call(ctx) })
	grpcDur := time.Since(grpcStart)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		observeUpstreamGRPC(method, "BreakerOpen", grpcDur)
		writeAPIError(w, http.StatusServiceUnavailable, "upstream_unavailable", "upstream temporarily unavailable")
		return false
	}
	if err == nil {
		observeUpstreamGRPC(method, codes.OK.String(), grpcDur)
		return true
	}

	code := codes.Unknown
	msg := ""
	if st, ok := status.FromError(err); ok {
		code = st.Code()
		msg = st.Message()
	}
	observeUpstreamGRPC(method, code.String(), grpcDur)

	switch code {
	case codes.InvalidArgument:
		writeAPIError(w, http.StatusBadRequest, "invalid_argument", msg)
	case codes.NotFound:
		writeAPIError(w, http.StatusNotFound, "not_found", msg)
	case codes.DeadlineExceeded:
		writeAPIError(w, http.StatusGatewayTimeout, "upstream_timeout", "upstream timeout")
	default:
		s.log.Warn("upstream call failed",
			zap.String("grpc_method", method),
			zap.String("code", code.String()),
			zap.Error(err),
		)
		writeAPIError(w, http.StatusBadGateway, "upstream_error", "upstream error")
	}
	return false
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		// Keep API errors JSON.
		if strings.HasPrefix(r.URL.Path, "/api") {
			writeAPIError(w, http.StatusNotFound, "not_found", "not found")
			return
		}
		http.NotFound(w, r) // HTML/plain-text is fine for non-API paths.
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

// requireGet writes a 405 and returns false for anything but GET.
func requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet {
		return true
	}
	w.Header().Set("Allow", http.MethodGet)
	writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	return false
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.wroteHeader = true
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	return r.ResponseWriter.Write(p)
}

func newRequestID() string {
	var b [6]byte // 12 hex chars
	if _, err := rand.Read(b[:]); err != nil {
		return "000000000000"
	}
	return hex.EncodeToString(b[:])
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	reqID := w.Header().Get("X-Request-Id")
	_ = writeJSON(w, status, apiErrorJSON{
		Code:      code,
		Message:   message,
		RequestID: reqID,
	})
}
