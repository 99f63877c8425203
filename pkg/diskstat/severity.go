package diskstat

import "fmt"

const (
	// CriticalThreshold is the usage percentage above which the disk is critical.
	CriticalThreshold = 90.0
	// WarningThreshold is the usage percentage above which the disk needs attention.
	WarningThreshold = 75.0
)

// Severity is the display class of a usage percentage.
type Severity int

const (
	SeverityNormal Severity = iota
	SeverityWarning
	SeverityCritical
)

// Classify maps a usage percentage to its severity.
// Both thresholds are exclusive: exactly 90 is a warning, exactly 75 is normal.
func Classify(percent float64) Severity {
	switch {
	case percent > CriticalThreshold:
		return SeverityCritical
	case percent > WarningThreshold:
		return SeverityWarning
	default:
		return SeverityNormal
	}
}

func (s Severity) String() string {
	switch s {
	case SeverityNormal:
		return "normal"
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	switch s {
	case SeverityNormal, SeverityWarning, SeverityCritical:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("unknown severity %d", int(s))
	}
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "normal":
		*s = SeverityNormal
	case "warning":
		*s = SeverityWarning
	case "critical":
		*s = SeverityCritical
	default:
		return fmt.Errorf("unknown severity %q", text)
	}
	return nil
}
