package service

const (
	MinHomeValue  = 1000.0
	MaxHomeValue  = 10000.0
	HomeValueStep = 100.0

	DownPaymentStep = 50.0
	LoanAmountStep  = 50.0

	// DownPaymentRatio is the fraction of a new home value the down payment
	// snaps to whenever the home value changes.
	DownPaymentRatio = 0.2

	MinInterestRate  = 2.0
	MaxInterestRate  = 18.0
	InterestRateStep = 0.1

	DefaultHomeValue    = 3000.0
	DefaultDownPayment  = 600.0
	DefaultLoanAmount   = 2400.0
	DefaultInterestRate = 5.0
	DefaultTermYears    = 5

	// Limits for the stateless loan API, which is not bound by the sliders.
	MaxLoanAmount   = 1_000_000_000.0
	MaxAPIRate      = 1000.0
	MaxAPITermYears = 50

	BalanceTolerance = 0.005
)

// TermOptions are the only loan terms, in years, the calculator offers.
var TermOptions = []int{5, 10, 15, 20, 25, 30}
