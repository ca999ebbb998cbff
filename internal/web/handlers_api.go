package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/OrderSheet/internal/catalog"
	"github.com/JonMunkholm/OrderSheet/internal/core"
	"github.com/JonMunkholm/OrderSheet/internal/logging"
)

// maxJSONBody bounds stock and flag payloads.
const maxJSONBody = 1 << 20

const defaultActivityLimit = 50

// handleHealth reports liveness and import slot usage.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"imports": s.service.Limiter().Status(),
	})
}

type catalogResponse struct {
	Items      []catalog.Item `json:"items"`
	StockInput []string       `json:"stockInput"`
}

// handleCatalog lists the items in sheet order and which of them take stock.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	cat := s.service.Catalog()
	resp := catalogResponse{Items: cat.Items()}
	for _, it := range cat.StockInputItems() {
		resp.StockInput = append(resp.StockInput, it.ID)
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleState returns the session's wizard state.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	st, err := s.service.State(r.Context(), sessionID(r))
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// handleImport imports one order export and returns the summary.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	file, name, err := s.openUpload(w, r)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	defer file.Close()

	summary, err := s.service.ImportCSV(ctx, sessionID(r), name, file)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	logging.WithFields(ctx, "import_id", summary.ImportID).Debug("import response",
		"orders", len(summary.Orders),
		"notes", len(summary.Notes),
	)
	writeJSON(w, http.StatusOK, summary)
}

type stockRequest struct {
	Stock map[string]int `json:"stock"`
	Done  *bool          `json:"done,omitempty"`
}

// handleSetStock replaces the stock counts. When done is present the stock
// step flag is set in the same request.
func (s *Server) handleSetStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := sessionID(r)

	var req stockRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, fmt.Errorf("%w: %w", core.ErrInvalidStock, err), http.StatusBadRequest)
		return
	}

	st, err := s.service.SetStock(ctx, session, req.Stock)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	if req.Done != nil {
		if st, err = s.service.SetStockDone(ctx, session, *req.Done); err != nil {
			respondError(w, r, err, statusFor(err))
			return
		}
	}
	writeJSON(w, http.StatusOK, st)
}

type doneRequest struct {
	Done *bool `json:"done"`
}

// handleStockDone sets the stock step flag. An empty body means done.
func (s *Server) handleStockDone(w http.ResponseWriter, r *http.Request) {
	var req doneRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, r, fmt.Errorf("%w: %w", core.ErrInvalidStock, err), http.StatusBadRequest)
		return
	}
	done := req.Done == nil || *req.Done

	st, err := s.service.SetStockDone(r.Context(), sessionID(r), done)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// handleReset discards the session's state.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Reset(r.Context(), sessionID(r)); err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleActivity returns the session's recent actions, newest first.
func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	limit := parseIntParam(r, "limit", defaultActivityLimit)
	if limit > core.DefaultActivityCapacity {
		limit = core.DefaultActivityCapacity
	}
	entries := s.service.Activity(sessionID(r), limit)
	if entries == nil {
		entries = []core.ActivityEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// parseIntParam parses a positive integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}
