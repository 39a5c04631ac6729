package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"loan-calculator/domain"
	"loan-calculator/service"
)

type calcOptions struct {
	home, down, loan, rate float64
	term                   int
	asJSON, withSchedule   bool
}

func calcCmd() *cobra.Command {
	var opts calcOptions

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute the monthly payment for a home loan",
		Long: `Starts from the default calculator (home $3000, down $600, 5%, 5 years)
and applies each given flag in the order home, down, loan, rate, term,
with the same rules as the sliders: values are clamped to their ranges,
a new home value resets the down payment to 20%, and down payment and
loan amount always add up to the home value.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			changes := changesFromFlags(cmd, opts)
			return runCalc(cmd.OutOrStdout(), changes, opts.asJSON, opts.withSchedule)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&opts.home, "home", service.DefaultHomeValue, "home value")
	f.Float64Var(&opts.down, "down", service.DefaultDownPayment, "down payment")
	f.Float64Var(&opts.loan, "loan", service.DefaultLoanAmount, "loan amount")
	f.Float64Var(&opts.rate, "rate", service.DefaultInterestRate, "annual interest rate, percent")
	f.IntVar(&opts.term, "term", service.DefaultTermYears, "loan term in years (5, 10, 15, 20, 25 or 30)")
	f.BoolVar(&opts.asJSON, "json", false, "print the full view as JSON")
	f.BoolVar(&opts.withSchedule, "schedule", false, "also print the amortization schedule")
	return cmd
}

func changesFromFlags(cmd *cobra.Command, opts calcOptions) []domain.FieldChange {
	flags := cmd.Flags()
	var changes []domain.FieldChange
	add := func(name string, field domain.Field, v float64) {
		if flags.Changed(name) {
			changes = append(changes, domain.FieldChange{Field: field, Value: v})
		}
	}
	add("home", domain.FieldHomeValue, opts.home)
	add("down", domain.FieldDownPayment, opts.down)
	add("loan", domain.FieldLoanAmount, opts.loan)
	add("rate", domain.FieldInterestRate, opts.rate)
	add("term", domain.FieldTermYears, float64(opts.term))
	return changes
}

func runCalc(w io.Writer, changes []domain.FieldChange, asJSON, withSchedule bool) error {
	state := service.NewState()
	for _, c := range changes {
		next, err := service.Apply(state, c.Field, c.Value)
		if err != nil {
			return err
		}
		state = next
	}
	view := service.Render(state)

	var schedule domain.Schedule
	if withSchedule {
		var err error
		schedule, err = service.BuildSchedule(domain.LoanInput{
			Amount:       state.LoanAmount,
			InterestRate: state.InterestRate,
			TermYears:    state.TermYears,
		})
		if err != nil {
			return err
		}
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if withSchedule {
			return enc.Encode(struct {
				domain.View
				Schedule domain.Schedule `json:"schedule"`
			}{view, schedule})
		}
		return enc.Encode(view)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	d := view.Display
	fmt.Fprintf(tw, "Home Value\t%s\n", d.HomeValue)
	fmt.Fprintf(tw, "Down Payment\t%s\n", d.DownPayment)
	fmt.Fprintf(tw, "Loan Amount\t%s\n", d.LoanAmount)
	fmt.Fprintf(tw, "Interest Rate\t%s\n", d.InterestRate)
	fmt.Fprintf(tw, "Tenure\t%s\n", d.Term)
	fmt.Fprintf(tw, "Monthly EMI\t%s\n", d.MonthlyPayment)
	fmt.Fprintf(tw, "Total Interest\t%s\n", d.TotalInterest)
	if err := tw.Flush(); err != nil {
		return err
	}

	if !withSchedule {
		return nil
	}

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Month\tPayment\tPrincipal\tInterest\tBalance\t")
	for _, row := range schedule.Rows {
		fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%.2f\t%.2f\t\n",
			row.Month, row.Payment, row.Principal, row.Interest, row.Balance)
	}
	return tw.Flush()
}
