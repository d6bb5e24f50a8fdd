package httpctrl

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/Agrid-Dev/solarthermal/internal/calculator"
	"github.com/Agrid-Dev/solarthermal/internal/ports"
	"github.com/Agrid-Dev/solarthermal/internal/report"
	"github.com/Agrid-Dev/solarthermal/internal/sizing"
)

type Server struct {
	svc      ports.CalculatorService
	srv      *http.Server
	deviceID string
	locale   language.Tag
	log      *zap.SugaredLogger
}

// New returns a runnable server.
func New(svc ports.CalculatorService, addr string, deviceID string, locale language.Tag, log *zap.SugaredLogger) *Server {
	mux := http.NewServeMux()
	s := &Server{svc: svc, deviceID: deviceID, locale: locale, log: log}

	// Read
	mux.HandleFunc("GET /v1", s.handleGet)
	mux.HandleFunc("GET /v1/report", s.handleGetReport)
	mux.HandleFunc("GET /v1/constants", s.handleGetConstants)
	mux.HandleFunc("GET /v1/bounds", s.handleGetBounds)

	// Write: one endpoint per input field
	for _, f := range sizing.Fields {
		mux.HandleFunc("POST /v1/"+f.String(), s.handlePostField(f))
	}
	mux.HandleFunc("POST /v1/calculate", s.handlePostCalculate)
	mux.HandleFunc("POST /v1/reset", s.handlePostReset)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// ---- DTOs ----

type snapshotDTO struct {
	DeviceID string         `json:"device_id"`
	Mode     string         `json:"mode"`
	Draft    sizing.Input   `json:"draft"`
	Result   *sizing.Result `json:"result,omitempty"`
}

func toDTO(s calculator.Snapshot) snapshotDTO {
	dto := snapshotDTO{
		Mode:  s.Mode.String(),
		Draft: s.Draft,
	}
	if s.Mode == calculator.ModeResults {
		res := s.Result
		dto.Result = &res
	}
	return dto
}

// ---- Handlers ----

func (s *Server) handleGet(w http.ResponseWriter, _ *http.Request) {
	s.respondSnapshot(w)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	snap := s.svc.Get()
	if snap.Mode != calculator.ModeResults {
		writeErr(w, http.StatusConflict, calculator.ErrNoResult.Error())
		return
	}
	tag := s.locale
	if q := r.URL.Query().Get("lang"); q != "" {
		tag = report.ParseLocale(q)
	}
	writeJSON(w, http.StatusOK, report.Render(snap.Result, tag))
}

func (s *Server) handleGetConstants(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, sizing.ModelConstants())
}

// Accepted input ranges, so clients can validate before posting.
func (s *Server) handleGetBounds(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Bounds())
}

func (s *Server) handlePostField(f sizing.Field) http.HandlerFunc {
	// body: {"value": 10}
	return func(w http.ResponseWriter, r *http.Request) {
		postValue(s, w, r, func(v float64) error {
			return s.svc.SetField(f, v)
		})
	}
}

func (s *Server) handlePostCalculate(w http.ResponseWriter, r *http.Request) {
	// body: empty to size the draft, or {"value": {...input...}}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "unreadable body")
		return
	}
	if len(body) == 0 {
		s.apply(w, s.svc.Calculate())
		return
	}

	var req struct {
		Value *sizing.Input `json:"value"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Value == nil {
		s.apply(w, s.svc.Calculate())
		return
	}
	s.apply(w, s.svc.Submit(*req.Value))
}

func (s *Server) handlePostReset(w http.ResponseWriter, _ *http.Request) {
	s.svc.Reset()
	s.respondSnapshot(w)
}

// ---- generic helpers ----
func (s *Server) respondSnapshot(w http.ResponseWriter) {
	dto := toDTO(s.svc.Get())
	dto.DeviceID = s.deviceID
	writeJSON(w, http.StatusOK, dto)
}

func (s *Server) apply(w http.ResponseWriter, err error) {
	if err != nil {
		s.log.Debugw("request rejected", "error", err)
		writeErr(w, statusFor(err), err.Error())
		return
	}
	s.respondSnapshot(w)
}

func statusFor(err error) int {
	if errors.Is(err, calculator.ErrNotInEntryMode) || errors.Is(err, calculator.ErrNoResult) {
		return http.StatusConflict
	}
	return http.StatusBadRequest
}

func postValue[T any](s *Server, w http.ResponseWriter, r *http.Request, apply func(T) error) {
	dec := json.NewDecoder(r.Body)
	var req struct {
		Value *T `json:"value"`
	}
	if err := dec.Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Value == nil {
		writeErr(w, http.StatusBadRequest, "missing field 'value'")
		return
	}

	s.apply(w, apply(*req.Value))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
