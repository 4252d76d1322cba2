package entity

import (
	"errors"
	"fmt"
	"strings"
)

// ReportingWindow is the trailing period statistics are aggregated over.
type ReportingWindow string

const (
	Window7D  ReportingWindow = "7d"
	Window30D ReportingWindow = "30d"
)

// ErrUnsupportedReportingWindow is returned for any tag other than 7d or 30d.
var ErrUnsupportedReportingWindow = errors.New("unsupported reporting window")

// AllReportingWindows returns both windows, shortest first.
func AllReportingWindows() []ReportingWindow {
	return []ReportingWindow{Window7D, Window30D}
}

// ParseReportingWindow accepts "7", "7d", "week", "30", "30d" and "month" in any case.
func ParseReportingWindow(s string) (ReportingWindow, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "7", "7d", "week":
		return Window7D, nil
	case "30", "30d", "month":
		return Window30D, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedReportingWindow, s)
}

// Valid reports whether w is one of the canonical tags.
func (w ReportingWindow) Valid() bool {
	return w == Window7D || w == Window30D
}

func (w ReportingWindow) String() string {
	return string(w)
}

// MarshalText rejects tags other than 7d and 30d.
func (w ReportingWindow) MarshalText() ([]byte, error) {
	if !w.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedReportingWindow, string(w))
	}
	return []byte(w), nil
}

// UnmarshalText accepts canonical tags only. Aliases are an input concern handled by ParseReportingWindow.
func (w *ReportingWindow) UnmarshalText(text []byte) error {
	v := ReportingWindow(text)
	if !v.Valid() {
		return fmt.Errorf("%w: %q", ErrUnsupportedReportingWindow, string(text))
	}
	*w = v
	return nil
}
