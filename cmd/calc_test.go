package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"loan-calculator/domain"
	"loan-calculator/service"
)

func TestRunCalc_Defaults(t *testing.T) {
	var buf bytes.Buffer
	if err := runCalc(&buf, nil, false, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"$3000", "$600", "$2400", "%5", "5 Years", "$45.29", "$317.46"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRunCalc_AppliesChangesInOrder(t *testing.T) {
	changes := []domain.FieldChange{
		{Field: domain.FieldHomeValue, Value: 5000},
		{Field: domain.FieldLoanAmount, Value: 4500},
		{Field: domain.FieldTermYears, Value: 10},
	}

	var buf bytes.Buffer
	if err := runCalc(&buf, changes, true, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var view domain.View
	if err := json.Unmarshal(buf.Bytes(), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := domain.State{HomeValue: 5000, DownPayment: 500, LoanAmount: 4500, InterestRate: 5, TermYears: 10}
	if view.State != want {
		t.Errorf("expected %+v, got %+v", want, view.State)
	}
}

func TestRunCalc_Schedule(t *testing.T) {
	var buf bytes.Buffer
	if err := runCalc(&buf, nil, false, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// 7 display lines, a blank line, a header and 60 months
	if len(lines) != 7+1+1+60 {
		t.Errorf("expected 69 lines, got %d", len(lines))
	}
}

func TestRunCalc_RejectsTerm(t *testing.T) {
	var buf bytes.Buffer
	err := runCalc(&buf, []domain.FieldChange{{Field: domain.FieldTermYears, Value: 7}}, false, false)
	if !errors.Is(err, service.ErrInvalidTerm) {
		t.Errorf("expected ErrInvalidTerm, got %v", err)
	}
}

func TestCalcCommand_Flags(t *testing.T) {
	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"calc", "--home", "4000", "--rate", "6", "--json"})

	if err := root.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var view domain.View
	if err := json.Unmarshal(buf.Bytes(), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.State.DownPayment != 800 || view.State.InterestRate != 6 {
		t.Errorf("unexpected state %+v", view.State)
	}
}
