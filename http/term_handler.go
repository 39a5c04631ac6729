package http

import (
	"net/http"
	"strings"

	"loan-calculator/domain"
	"loan-calculator/service"
)

type TermHandler struct {
	service *service.TermService
}

func NewTermHandler(service *service.TermService) *TermHandler {
	return &TermHandler{service: service}
}

func (h *TermHandler) CompareTerms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return
	}

	var input domain.TermComparisonInput
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.service.CompareTerms(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, result)
}
