// Package server exposes the importfilter core over HTTP: dataset upload,
// declarative filtering, and filtered export. It is the transport shell
// around the library; all table semantics live in the core package.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/tradelens/importfilter"
)

// Server holds the single-dataset session behind the HTTP API. The core
// session is not concurrency-safe, so handlers serialize on mu.
type Server struct {
	cfg    *Config
	logger *slog.Logger

	mu       sync.Mutex
	session  *importfilter.Session
	dataset  string // uuid of the current upload
	filename string
}

// New creates a Server.
func New(cfg *Config, logger *slog.Logger) *Server {
	return &Server{
		cfg:     cfg,
		logger:  logger.With(slog.String("component", "server")),
		session: importfilter.NewSession(),
	}
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Route("/api", func(r chi.Router) {
		r.Post("/dataset", s.handleUpload)
		r.Get("/dataset", s.handleDescribe)
		r.Post("/filter", s.handleFilter)
		r.Post("/export", s.handleExport)
	})
	return r
}

// columnInfo describes one column on the wire.
type columnInfo struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Categorical bool   `json:"categorical,omitempty"`
}

// datasetResponse describes the currently loaded dataset.
type datasetResponse struct {
	ID       string       `json:"id"`
	Filename string       `json:"filename"`
	Columns  []columnInfo `json:"columns"`
	RowCount int          `json:"row_count"`
}

// filterResponse carries a filtered preview.
type filterResponse struct {
	Matched int        `json:"matched"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Partial bool       `json:"partial"`
}

// errResponse is the uniform error body.
type errResponse struct {
	Error string `json:"error"`
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.logger.Warn("request failed",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		slog.String("error", err.Error()))
	render.Status(r, status)
	render.JSON(w, r, errResponse{Error: err.Error()})
}

// statusForLoadError maps core load failures to HTTP statuses.
func statusForLoadError(err error) int {
	switch {
	case errors.Is(err, importfilter.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, importfilter.ErrParse):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.renderError(w, r, http.StatusRequestEntityTooLarge, fmt.Errorf("upload too large: %w", err))
			return
		}
		s.renderError(w, r, http.StatusBadRequest, fmt.Errorf("invalid multipart body: %w", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.renderError(w, r, http.StatusBadRequest, fmt.Errorf("missing file field: %w", err))
		return
	}
	defer func() {
		_ = file.Close()
	}()

	raw, err := io.ReadAll(file)
	if err != nil {
		s.renderError(w, r, http.StatusBadRequest, fmt.Errorf("failed to read upload: %w", err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := s.session.Load(raw, header.Filename)
	if err != nil {
		s.renderError(w, r, statusForLoadError(err), err)
		return
	}
	s.dataset = uuid.NewString()
	s.filename = header.Filename

	s.logger.Info("dataset loaded",
		slog.String("dataset_id", s.dataset),
		slog.String("filename", header.Filename),
		slog.Int("rows", table.NumRows()),
		slog.Int("columns", len(table.Schema().Columns())))

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, s.describeLocked(table))
}

func (s *Server) handleDescribe(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, ok := s.session.Table()
	if !ok {
		s.renderError(w, r, http.StatusNotFound, errors.New("no dataset loaded"))
		return
	}
	render.JSON(w, r, s.describeLocked(table))
}

// describeLocked builds the dataset description. Callers hold mu.
func (s *Server) describeLocked(table *importfilter.Table) datasetResponse {
	columns := table.Schema().Columns()
	infos := make([]columnInfo, len(columns))
	for i, col := range columns {
		infos[i] = columnInfo{Name: col.Name, Kind: kindName(col.Kind), Categorical: col.Categorical}
	}
	return datasetResponse{
		ID:       s.dataset,
		Filename: s.filename,
		Columns:  infos,
		RowCount: table.NumRows(),
	}
}

func kindName(kind importfilter.ColumnKind) string {
	switch kind {
	case importfilter.ColumnNumber:
		return "number"
	case importfilter.ColumnDate:
		return "date"
	default:
		return "string"
	}
}

// filteredTableLocked decodes criteria from the request body and applies
// them to the current dataset. Callers hold mu.
func (s *Server) filteredTableLocked(r *http.Request) (*importfilter.Table, error) {
	table, ok := s.session.Table()
	if !ok {
		return nil, errors.New("no dataset loaded")
	}

	var payload map[string]json.RawMessage
	if err := render.DecodeJSON(r.Body, &payload); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid criteria body: %w", err)
	}

	criteria, err := decodeCriteria(payload)
	if err != nil {
		return nil, err
	}
	return importfilter.Apply(table, criteria), nil
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered, err := s.filteredTableLocked(r)
	if err != nil {
		s.renderError(w, r, http.StatusBadRequest, err)
		return
	}

	matched := filtered.NumRows()
	limit := matched
	if s.cfg.PreviewRows > 0 && limit > s.cfg.PreviewRows {
		limit = s.cfg.PreviewRows
	}

	rows := make([][]string, limit)
	for i := 0; i < limit; i++ {
		row := filtered.Row(i)
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = v.String()
		}
		rows[i] = cells
	}

	render.JSON(w, r, filterResponse{
		Matched: matched,
		Columns: filtered.Schema().Names(),
		Rows:    rows,
		Partial: limit < matched,
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered, err := s.filteredTableLocked(r)
	if err != nil {
		s.renderError(w, r, http.StatusBadRequest, err)
		return
	}

	format := importfilter.OutputCSV
	contentType := "text/csv; charset=utf-8"
	if r.URL.Query().Get("format") == "xlsx" {
		format = importfilter.OutputXLSX
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "filtered_import_data"+format.Extension()))

	if err := importfilter.Export(filtered, w, importfilter.ExportOptions{Format: format}); err != nil {
		// Headers are already out; log instead of re-rendering.
		s.logger.Error("export failed",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("error", err.Error()))
	}
}
