package domain

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeveritySuccess Severity = "success"
)

// EnergyInsight is a qualitative observation about a consumption history.
// Insights are recomputed on demand and never stored.
type EnergyInsight struct {
	Title      string
	Message    string
	Severity   Severity
	Actionable bool
}
