package model

// Status classifies how much of a budget has been spent.
type Status string

const (
	StatusGood    Status = "good"
	StatusWarning Status = "warning"
	StatusOver    Status = "over"
)

// Comparison joins one budget entry to its actual spend.
type Comparison struct {
	Category   Category `json:"category" yaml:"category"`
	Budget     float64  `json:"budget" yaml:"budget"`
	Actual     float64  `json:"actual" yaml:"actual"`
	Percentage int      `json:"percentage" yaml:"percentage"`
	Status     Status   `json:"status" yaml:"status"`
}

// Remaining is the unspent budget, negative when over.
func (c Comparison) Remaining() float64 {
	return c.Budget - c.Actual
}

// Over reports whether spending has passed the budget.
func (c Comparison) Over() bool { return c.Actual > c.Budget }

// BarPercent caps the percentage at 100 for progress bars.
func (c Comparison) BarPercent() int {
	if c.Percentage > 100 {
		return 100
	}
	if c.Percentage < 0 {
		return 0
	}
	return c.Percentage
}

// InsightType tags an insight for styling.
type InsightType string

const (
	InsightWarning InsightType = "warning"
	InsightSuccess InsightType = "success"
	InsightInfo    InsightType = "info"
)

// Insight is a short derived observation about spending.
type Insight struct {
	Type        InsightType `json:"type" yaml:"type"`
	Title       string      `json:"title" yaml:"title"`
	Description string      `json:"description" yaml:"description"`
}
