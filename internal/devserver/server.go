package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/zxyasa/ai-zhao-tutor/internal/api"
)

// APIPrefix is where the versioned routes are mounted.
const APIPrefix = "/api/v1"

// Server exposes a Backend over HTTP.
type Server struct {
	backend *Backend
	logger  *slog.Logger
	origins []string
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithAllowedOrigins sets the CORS origins. Empty keeps the "*" default.
func WithAllowedOrigins(origins ...string) ServerOption {
	return func(s *Server) {
		if len(origins) > 0 {
			s.origins = origins
		}
	}
}

// NewServer returns a Server. A nil logger uses slog.Default().
func NewServer(b *Backend, logger *slog.Logger, opts ...ServerOption) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{backend: b, logger: logger, origins: []string{"*"}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed handler wrapped in CORS.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	// Route variables stay escaped so IDs may contain slashes.
	r.UseEncodedPath()
	r.Use(s.logRequests)

	r.HandleFunc("/health", s.health).Methods(http.MethodGet)

	v1 := r.PathPrefix(APIPrefix).Subrouter()
	v1.HandleFunc("/students", s.listStudents).Methods(http.MethodGet)
	v1.HandleFunc("/students/{student_id}", s.getStudent).Methods(http.MethodGet)
	v1.HandleFunc("/daily-session/start", s.startDailySession).Methods(http.MethodPost)
	v1.HandleFunc("/daily-session/status/{student_id}", s.dailyStatus).Methods(http.MethodGet)
	v1.HandleFunc("/next-item", s.nextItem).Methods(http.MethodGet)
	v1.HandleFunc("/events", s.createEvent).Methods(http.MethodPost)
	v1.HandleFunc("/mastery/{student_id}", s.getMastery).Methods(http.MethodGet)
	v1.HandleFunc("/achievements/{student_id}", s.getAchievements).Methods(http.MethodGet)
	v1.HandleFunc("/parent/daily-summary", s.parentDaily).Methods(http.MethodGet)
	v1.HandleFunc("/parent/daily-summary/{student_id}", s.parentDailyFor).Methods(http.MethodGet)
	v1.HandleFunc("/parent/weekly-summary", s.parentWeekly).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Accept"},
		MaxAge:         86400,
	})
	return c.Handler(r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.logger.Info("development backend listening", "addr", ln.Addr().String(), "api", APIPrefix)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("development backend stopping", "stats", s.backend.Stats().String())
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request",
			"method", r.Method, "path", r.URL.EscapedPath(), "status", rec.status, "duration", time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// errorResponse mirrors the {"detail": ...} body of the production API.
type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	var missing *MissingFieldsError
	switch {
	case errors.Is(err, ErrStudentNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: "Student not found"})
	case errors.Is(err, ErrNoItems):
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: "No items available"})
	case errors.As(err, &missing):
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "Missing fields: " + strings.Join(missing.Fields, ", ")})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: err.Error()})
	}
}

func studentIDVar(r *http.Request) string {
	raw := mux.Vars(r)["student_id"]
	if id, err := url.PathUnescape(raw); err == nil {
		return id
	}
	return raw
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listStudents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.backend.Students())
}

func (s *Server) getStudent(w http.ResponseWriter, r *http.Request) {
	st, err := s.backend.Student(studentIDVar(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) startDailySession(w http.ResponseWriter, r *http.Request) {
	status, err := s.backend.StartDailySession(r.URL.Query().Get("student_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) dailyStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.backend.DailyStatus(studentIDVar(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) nextItem(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	item, err := s.backend.NextItem(q.Get("student_id"), q.Get("skill_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

var requiredEventFields = []string{
	"event_id", "student_id", "item_id", "answer_given", "is_correct", "time_spent",
}

func (s *Server) createEvent(w http.ResponseWriter, r *http.Request) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "Invalid request body"})
		return
	}
	var missing []string
	for _, f := range requiredEventFields {
		if _, ok := raw[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		writeError(w, &MissingFieldsError{Fields: missing})
		return
	}

	body, _ := json.Marshal(raw)
	var ev api.Event
	if err := json.Unmarshal(body, &ev); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "Invalid request body"})
		return
	}
	if err := s.backend.RecordEvent(ev); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "event_id": ev.EventID})
}

func (s *Server) getMastery(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.backend.Mastery(studentIDVar(r)))
}

func (s *Server) getAchievements(w http.ResponseWriter, r *http.Request) {
	list, err := s.backend.Achievements(studentIDVar(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) parentDaily(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.backend.ParentDailySummaries())
}

func (s *Server) parentDailyFor(w http.ResponseWriter, r *http.Request) {
	sum, err := s.backend.ParentDailySummary(studentIDVar(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) parentWeekly(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.backend.ParentWeeklySummaries())
}
