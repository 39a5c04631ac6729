package http

import (
	"net/http"
	"strconv"

	"loan-calculator/domain"
	"loan-calculator/service"
)

type createSessionResponse struct {
	ID   string      `json:"id"`
	View domain.View `json:"view"`
}

type fieldValue struct {
	Value *float64 `json:"value"`
}

// CalculatorHandler exposes calculator sessions. Routes are registered with
// method patterns, see NewRouter.
type CalculatorHandler struct {
	calculators *service.CalculatorService
	terms       *service.TermService
}

func NewCalculatorHandler(
	calculators *service.CalculatorService,
	terms *service.TermService,
) *CalculatorHandler {
	return &CalculatorHandler{calculators: calculators, terms: terms}
}

func (h *CalculatorHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, view, err := h.calculators.Create(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/calculator/sessions/"+id)
	writeJSON(w, r, http.StatusCreated, createSessionResponse{ID: id, View: view})
}

func (h *CalculatorHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.calculators.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (h *CalculatorHandler) UpdateField(w http.ResponseWriter, r *http.Request) {
	var body fieldValue
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.Value == nil {
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "value is required"})
		return
	}

	view, err := h.calculators.Update(r.Context(), r.PathValue("id"), domain.FieldChange{
		Field: domain.Field(r.PathValue("field")),
		Value: *body.Value,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (h *CalculatorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.calculators.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Terms compares every offered term against the session's loan. An optional
// maxPayment query parameter enables the recommendation.
func (h *CalculatorHandler) Terms(w http.ResponseWriter, r *http.Request) {
	state, err := h.calculators.State(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	var maxPayment float64
	if q := r.URL.Query().Get("maxPayment"); q != "" {
		maxPayment, err = strconv.ParseFloat(q, 64)
		if err != nil {
			writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "maxPayment must be a number"})
			return
		}
	}

	result, err := h.terms.CompareTerms(r.Context(), domain.TermComparisonInput{
		Amount:            state.LoanAmount,
		InterestRate:      state.InterestRate,
		MaxMonthlyPayment: maxPayment,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (h *CalculatorHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	state, err := h.calculators.State(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	schedule, err := service.BuildSchedule(domain.LoanInput{
		Amount:       state.LoanAmount,
		InterestRate: state.InterestRate,
		TermYears:    state.TermYears,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, schedule)
}
