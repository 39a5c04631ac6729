package http

import (
	"log/slog"
	"net/http"
)

// Handlers bundles everything the router serves.
type Handlers struct {
	Loan       *LoanHandler
	Term       *TermHandler
	Calculator *CalculatorHandler
	Socket     *CalculatorSocket
}

// NewRouter builds the service's handler chain: request log, CORS, then the
// per-client rate limit in front of every route.
func NewRouter(h Handlers, limiter *RateLimiter, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/loan/calculate", h.Loan.CalculateLoan)
	mux.HandleFunc("/loan/compare-terms", h.Term.CompareTerms)
	mux.HandleFunc("/loan/schedule", Schedule)

	mux.HandleFunc("POST /calculator/sessions", h.Calculator.Create)
	mux.HandleFunc("GET /calculator/sessions/{id}", h.Calculator.Get)
	mux.HandleFunc("DELETE /calculator/sessions/{id}", h.Calculator.Delete)
	mux.HandleFunc("PUT /calculator/sessions/{id}/fields/{field}", h.Calculator.UpdateField)
	mux.HandleFunc("GET /calculator/sessions/{id}/terms", h.Calculator.Terms)
	mux.HandleFunc("GET /calculator/sessions/{id}/schedule", h.Calculator.Schedule)
	mux.Handle("GET /calculator/ws", h.Socket)

	var handler http.Handler = mux
	if limiter != nil {
		handler = RateLimitMiddleware(limiter, handler)
	}
	handler = WithCORS(handler)
	if logger != nil {
		handler = withLogger(logger, handler)
		handler = WithRequestLog(logger, handler)
	}
	return handler
}
