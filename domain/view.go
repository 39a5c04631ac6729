package domain

type ChartDataset struct {
	Data            []float64 `json:"data"`
	BackgroundColor []string  `json:"backgroundColor"`
	BorderColor     string    `json:"borderColor"`
	BorderWidth     int       `json:"borderWidth"`
}

// ChartData is the pie chart description handed to the chart renderer.
type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

// Display holds the formatted strings shown next to each control and result.
type Display struct {
	HomeValue      string `json:"homeValue"`
	DownPayment    string `json:"downPayment"`
	LoanAmount     string `json:"loanAmount"`
	InterestRate   string `json:"interestRate"`
	Term           string `json:"term"`
	MonthlyPayment string `json:"monthlyPayment"`
	TotalInterest  string `json:"totalInterest"`
}

type ControlKind string

const (
	ControlRange  ControlKind = "range"
	ControlSelect ControlKind = "select"
)

type Control struct {
	Field    Field       `json:"field"`
	Label    string      `json:"label"`
	Kind     ControlKind `json:"kind"`
	Min      float64     `json:"min"`
	Max      float64     `json:"max"`
	Step     float64     `json:"step,omitempty"`
	Value    float64     `json:"value"`
	MinLabel string      `json:"minLabel,omitempty"`
	MaxLabel string      `json:"maxLabel,omitempty"`
	Options  []Option    `json:"options,omitempty"`
}

type Option struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// View is everything needed to re-render the calculator after an update.
type View struct {
	State    State      `json:"state"`
	Result   LoanResult `json:"result"`
	Chart    ChartData  `json:"chart"`
	Display  Display    `json:"display"`
	Controls []Control  `json:"controls"`
}
