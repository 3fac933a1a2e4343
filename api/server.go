// Package api - Thin, deterministic API layer
// The API is ONLY responsible for: input ingestion, engine orchestration, output serialization.
// The API NEVER performs pricing logic.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"carport-quote/core/compare"
	"carport-quote/core/pricebook"
	"carport-quote/core/quote"
	"carport-quote/core/types"
	"carport-quote/internal/errors"
	"carport-quote/internal/logging"
)

// Server is the API server
type Server struct {
	books        map[string]*pricebook.PriceBook
	defaultRev   string
	defaultTerms types.Terms
	mux          *http.ServeMux
	version      string
}

// NewServer creates a new API server over a set of loaded price books.
// defaultRev names the book used when a request carries no revision; if
// empty and exactly one book is loaded, that book is the default.
func NewServer(version string, books map[string]*pricebook.PriceBook, defaultRev string, defaultTerms types.Terms) *Server {
	if defaultRev == "" && len(books) == 1 {
		for rev := range books {
			defaultRev = rev
		}
	}

	s := &Server{
		books:        books,
		defaultRev:   defaultRev,
		defaultTerms: defaultTerms,
		mux:          http.NewServeMux(),
		version:      version,
	}

	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Core endpoints
	s.mux.HandleFunc("POST /quote", s.handleQuote)
	s.mux.HandleFunc("POST /compare", s.handleCompare)
	s.mux.HandleFunc("GET /health", s.handleHealth)

	// Supporting endpoints
	s.mux.HandleFunc("GET /version", s.handleVersion)
	s.mux.HandleFunc("GET /pricebooks", s.handleListPriceBooks)
}

// handleQuote handles POST /quote
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}

	result, err := s.computeQuote(&req)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	s.writeJSON(w, result, http.StatusOK)
}

// handleCompare handles POST /compare
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}

	result, err := s.computeQuote(&req.Quote)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	report := compare.Compare(&req.Vendor, result)
	s.writeJSON(w, report, http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":     "healthy",
		"version":    s.version,
		"pricebooks": len(s.books),
		"time":       time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":     s.version,
		"engine":      "carport-quote",
		"api_version": "v1",
	}, http.StatusOK)
}

// handleListPriceBooks handles GET /pricebooks
func (s *Server) handleListPriceBooks(w http.ResponseWriter, r *http.Request) {
	infos := make([]PriceBookInfo, 0, len(s.books))
	for _, book := range pricebook.SortedByRevision(s.books) {
		styles := make([]string, 0, len(book.Styles()))
		for _, style := range book.Styles() {
			styles = append(styles, string(style))
		}
		infos = append(infos, PriceBookInfo{
			Revision:      book.Revision(),
			Region:        book.Region(),
			EffectiveDate: book.EffectiveDate().Format("2006-01-02"),
			Styles:        styles,
			OptionCodes:   book.OptionCodes(),
			Notes:         book.Notes(),
		})
	}

	s.writeJSON(w, map[string]interface{}{
		"pricebooks":       infos,
		"count":            len(infos),
		"default_revision": s.defaultRev,
	}, http.StatusOK)
}

// computeQuote resolves the price book and runs the engine
func (s *Server) computeQuote(req *QuoteRequest) (*types.QuoteResult, error) {
	rev := req.Revision
	if rev == "" {
		rev = s.defaultRev
	}
	book, ok := s.books[rev]
	if !ok {
		return nil, errors.NotFound("price book", rev)
	}

	terms := s.defaultTerms
	if req.Terms != nil {
		terms = types.Terms{
			DiscountRate:    req.Terms.DiscountRate,
			DownPaymentRate: req.Terms.DownPaymentRate,
		}
	}

	in := req.toInput()
	return quote.Compute(&in, book, terms)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) writeError(w http.ResponseWriter, code, message string, status int) {
	s.writeJSON(w, map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	}, status)
}

// writeEngineError maps engine error types to HTTP statuses
func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := "ENGINE_ERROR"

	switch {
	case errors.IsType(err, errors.TypeNotFound):
		status = http.StatusNotFound
		code = string(errors.TypeNotFound)
	case errors.IsType(err, errors.TypeInvalidConfiguration):
		status = http.StatusUnprocessableEntity
		code = string(errors.TypeInvalidConfiguration)
	case errors.IsType(err, errors.TypeInvalidPlacement):
		status = http.StatusUnprocessableEntity
		code = string(errors.TypeInvalidPlacement)
	case errors.IsType(err, errors.TypeDimensionOutOfDomain):
		status = http.StatusUnprocessableEntity
		code = string(errors.TypeDimensionOutOfDomain)
	case errors.IsType(err, errors.TypeInput):
		status = http.StatusBadRequest
		code = string(errors.TypeInput)
	default:
		logging.Logger.Error("quote computation failed", zap.Error(err))
	}

	s.writeError(w, code, err.Error(), status)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
