package daemon

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/theirongolddev/revcalc/internal/model"
	"github.com/theirongolddev/revcalc/internal/pipeline"
	"github.com/theirongolddev/revcalc/internal/revenue"
)

// Error codes returned in APIError.Code.
const (
	CodeBadRequest       = "bad_request"
	CodeNotFound         = "not_found"
	CodeInvalidParameter = "invalid_parameter"
	CodeDivisionByZero   = "division_by_zero"
	CodeInternal         = "internal"
)

var httpStatus = map[string]int{
	CodeBadRequest:       http.StatusBadRequest,
	CodeNotFound:         http.StatusNotFound,
	CodeInvalidParameter: http.StatusUnprocessableEntity,
	CodeDivisionByZero:   http.StatusUnprocessableEntity,
	CodeInternal:         http.StatusInternalServerError,
}

// APIError is the JSON body of every error response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger(&s.log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Post("/calculate", s.handleCalculate)
		r.Get("/scenarios", s.handleScenarios)
		r.Get("/scenarios/{name}", s.handleScenario)
		r.Get("/scenarios/{name}/daily/{month}", s.handleDaily)
		r.Get("/events", s.handleEvents)
		r.Get("/stream", s.handleStream)
	})
	return r
}

// requestLogger attaches a per-request logger to the context and logs
// each completed request.
func requestLogger(logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			reqID := uuid.NewString()
			reqLogger := logger.With().
				Str("request_id", reqID).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("remote_ip", req.RemoteAddr).
				Logger()

			w.Header().Set("X-Request-ID", reqID)
			ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, req.WithContext(reqLogger.WithContext(req.Context())))

			reqLogger.Debug().
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", time.Since(start)).
				Msg("request")
		})
	}
}

// writeJSON encodes v before writing the header so an encoding failure is
// reported as a 500 instead of an empty success.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		data, _ = json.Marshal(APIError{Code: CodeInternal, Message: "encoding response: " + err.Error()})
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}

func writeAPIError(w http.ResponseWriter, code, message, field string) {
	status, ok := httpStatus[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, APIError{Code: code, Message: message, Field: field})
}

// writeError maps engine and lookup errors to API errors.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ip *revenue.InvalidParameterError
	var dz *revenue.DivisionByZeroError
	switch {
	case errors.As(err, &ip):
		writeAPIError(w, CodeInvalidParameter, err.Error(), ip.Field)
	case errors.As(err, &dz):
		writeAPIError(w, CodeDivisionByZero, err.Error(), "")
	case errors.Is(err, pipeline.ErrUnknownScenario):
		writeAPIError(w, CodeNotFound, err.Error(), "")
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
		writeAPIError(w, CodeInternal, "internal error", "")
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotStatus())
}

type calculateRequest struct {
	revenue.Params
	Name       string `json:"name,omitempty"`
	Clamp      *bool  `json:"clamp,omitempty"`
	StartMonth int    `json:"start_month,omitempty"`
	// Record appends the calculation to the run history.
	Record bool `json:"record,omitempty"`
}

type calculateResponse struct {
	*pipeline.Report
	Run *model.Run `json:"run,omitempty"`
}

func (s *Service) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeAPIError(w, CodeBadRequest, fmt.Sprintf("decoding request: %v", err), "")
		return
	}

	clamp := s.cfg.Clamp
	if req.Clamp != nil {
		clamp = *req.Clamp
	}
	name := req.Name
	if name == "" {
		name = "custom"
	}

	sc := model.Scenario{Name: name, Source: model.SourceCustom, Params: req.Params}
	rep, err := pipeline.Run(sc, pipeline.Options{Clamp: clamp, StartMonth: time.Month(req.StartMonth)})
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := calculateResponse{Report: rep}
	if req.Record {
		cat, err := s.cfg.LoadCatalog()
		if err != nil {
			writeError(w, r, err)
			return
		}
		if cat.Store == nil {
			writeAPIError(w, CodeBadRequest, "run history is not available", "record")
			return
		}
		run, err := cat.Store.RecordRun(name, rep.Scenario.Params, rep.Results)
		if err != nil {
			writeError(w, r, err)
			return
		}
		resp.Run = &run
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Service) handleScenarios(w http.ResponseWriter, r *http.Request) {
	cat, err := s.cfg.LoadCatalog()
	if err != nil {
		writeError(w, r, err)
		return
	}
	list, err := cat.List()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// reportFor runs the scenario named in the URL with the clamp and
// start_month query options.
func (s *Service) reportFor(r *http.Request) (*pipeline.Report, error) {
	name := chi.URLParam(r, "name")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}

	opts := pipeline.Options{Clamp: s.cfg.Clamp}
	q := r.URL.Query()
	if v := q.Get("clamp"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, errBadQuery{"clamp", v}
		}
		opts.Clamp = b
	}
	if v := q.Get("start_month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			return nil, errBadQuery{"start_month", v}
		}
		opts.StartMonth = time.Month(m)
	}

	cat, err := s.cfg.LoadCatalog()
	if err != nil {
		return nil, err
	}
	sc, err := cat.Lookup(name)
	if err != nil {
		return nil, err
	}
	return pipeline.Run(sc, opts)
}

type errBadQuery struct {
	param, value string
}

func (e errBadQuery) Error() string {
	return fmt.Sprintf("bad value %q for query parameter %s", e.value, e.param)
}

func (s *Service) handleScenario(w http.ResponseWriter, r *http.Request) {
	rep, err := s.reportFor(r)
	var bq errBadQuery
	switch {
	case errors.As(err, &bq):
		writeAPIError(w, CodeBadRequest, err.Error(), bq.param)
	case err != nil:
		writeError(w, r, err)
	default:
		writeJSON(w, http.StatusOK, rep)
	}
}

func (s *Service) handleDaily(w http.ResponseWriter, r *http.Request) {
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		writeAPIError(w, CodeBadRequest, "month must be an integer index 0-11", "month")
		return
	}

	rep, err := s.reportFor(r)
	var bq errBadQuery
	if errors.As(err, &bq) {
		writeAPIError(w, CodeBadRequest, err.Error(), bq.param)
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	days, err := rep.DailyFor(month)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Scenario string               `json:"scenario"`
		Month    int                  `json:"month"`
		Label    string               `json:"label"`
		Days     []revenue.DailyEntry `json:"days"`
	}{rep.Scenario.Name, month, rep.Months[month].Label, days})
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	writeSSE(w, Event{
		Type:      EventSnapshot,
		Timestamp: time.Now(),
		Snapshot:  s.snapshotStatus().Results,
	})
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if ev.ID > 0 {
		_, _ = fmt.Fprintf(w, "id: %d\n", ev.ID)
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}
