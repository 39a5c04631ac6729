package http

import (
	"net/http"

	"loan-calculator/domain"
	"loan-calculator/service"
)

func Schedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input domain.LoanInput
	if !decodeJSON(w, r, &input) {
		return
	}

	schedule, err := service.BuildSchedule(input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, schedule)
}
