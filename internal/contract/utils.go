package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"teampulse/schema"
)

// Workload band labels for rendered output.
const (
	OverloadedValue = "Overloaded"
	HighValue       = "High"
	BalancedValue   = "Balanced"
	LightValue      = "Light"
)

// Color variables for console output.
var (
	OverloadedColor = color.New(color.FgRed, color.Bold)     // overloadedColor represents standard danger.
	HighColor       = color.New(color.FgMagenta, color.Bold) // highColor represents strong, distinct warning.
	BalancedColor   = color.New(color.FgGreen)               // balancedColor represents a healthy load.
	LightColor      = color.New(color.FgCyan)                // lightColor represents spare capacity.
)

// GetPlainLabel returns a plain text label for a workload band. This is the
// core logic used for CSV, JSON, and table printing.
func GetPlainLabel(status schema.WorkloadStatus) string {
	switch status {
	case schema.WorkloadOverloaded:
		return OverloadedValue
	case schema.WorkloadHigh:
		return HighValue
	case schema.WorkloadBalanced:
		return BalancedValue
	default:
		return LightValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(status schema.WorkloadStatus) string {
	text := GetPlainLabel(status)

	switch text {
	case OverloadedValue:
		return OverloadedColor.Sprint(text)
	case HighValue:
		return HighColor.Sprint(text)
	case BalancedValue:
		return BalancedColor.Sprint(text)
	default: // "Light"
		return LightColor.Sprint(text)
	}
}

// GetHealthLabel classifies a team health score for rendered output.
func GetHealthLabel(health float64) string {
	switch {
	case health >= 80:
		return "healthy"
	case health >= 60:
		return "strained"
	default:
		return "at risk"
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// FormatMinutes renders a minute count as "12h 30m" for tables. Values under
// an hour render as "45m"; zero renders as "-".
func FormatMinutes(minutes int) string {
	if minutes <= 0 {
		return "-"
	}
	h, m := minutes/60, minutes%60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// TruncateText truncates a string to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for both "..." and content.
func TruncateText(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return s
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// LogDebug logs a debug message to stderr when enabled.
func LogDebug(enabled bool, format string, args ...any) {
	if enabled {
		_, _ = fmt.Fprintf(os.Stderr, "Debug "+format+"\n", args...)
	}
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
