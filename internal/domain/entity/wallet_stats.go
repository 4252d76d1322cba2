package entity

import (
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Performance holds the numeric part of a wallet statistics record.
// Monetary values are USD, percentages are expressed as 0-100.
type Performance struct {
	TotalPnlUsdAmount         float64 `json:"totalPnlUsdAmount" yaml:"totalPnlUsdAmount"`
	TotalPnlPct               float64 `json:"totalPnlPct" yaml:"totalPnlPct"`
	UnrealizedUsdProfit       float64 `json:"unrealizedUsdProfit" yaml:"unrealizedUsdProfit"`
	TotalUsdCost              float64 `json:"totalUsdCost" yaml:"totalUsdCost"`
	TokenAvgUsdCost           float64 `json:"tokenAvgUsdCost" yaml:"tokenAvgUsdCost"`
	TokenAvgRealizedUsdProfit float64 `json:"tokenAvgRealizedUsdProfit" yaml:"tokenAvgRealizedUsdProfit"`
	Balance                   float64 `json:"balance" yaml:"balance"` // native token units
	UsdBalance                float64 `json:"usdBalance" yaml:"usdBalance"`
	// PnlPct is reported separately from TotalPnlPct and is never derived from it.
	PnlPct  float64 `json:"pnlPct" yaml:"pnlPct"`
	Winrate float64 `json:"winrate" yaml:"winrate"`
}

// WalletStats describes one wallet's performance on one chain over one reporting window.
// A non-nil Error means the statistics could not be produced and Performance is zeroed.
type WalletStats struct {
	Wallet          string          `json:"wallet" yaml:"wallet"`
	Chain           Chain           `json:"chain" yaml:"chain"`
	ReportingWindow ReportingWindow `json:"reportingWindow" yaml:"reportingWindow"`
	Performance     `yaml:",inline"`
	Error           *string `json:"error" yaml:"error"`
}

// NewWalletStats builds a successful record.
func NewWalletStats(wallet string, chain Chain, window ReportingWindow, perf Performance) WalletStats {
	return WalletStats{
		Wallet:          wallet,
		Chain:           chain,
		ReportingWindow: window,
		Performance:     perf,
	}
}

// NewFailedWalletStats builds an error record. The numeric fields are left at zero.
func NewFailedWalletStats(wallet string, chain Chain, window ReportingWindow, cause error) WalletStats {
	msg := "unknown error"
	if cause != nil {
		msg = cause.Error()
	}
	return WalletStats{
		Wallet:          wallet,
		Chain:           chain,
		ReportingWindow: window,
		Error:           &msg,
	}
}

// Failed reports whether the record carries an error.
func (s WalletStats) Failed() bool {
	return s.Error != nil
}

// ErrorMessage returns the error text or an empty string.
func (s WalletStats) ErrorMessage() string {
	if s.Error == nil {
		return ""
	}
	return *s.Error
}

// Metrics returns the numeric fields only when the record is not an error record.
func (s WalletStats) Metrics() (Performance, bool) {
	if s.Error != nil {
		return Performance{}, false
	}
	return s.Performance, true
}

// Validate checks the closed enumerations and, for successful records, the value ranges.
func (s WalletStats) Validate() error {
	var errs []error
	if !s.Chain.Valid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnsupportedChain, string(s.Chain)))
	}
	if !s.ReportingWindow.Valid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnsupportedReportingWindow, string(s.ReportingWindow)))
	}
	if s.Error == nil {
		p := s.Performance
		nonNegative := []struct {
			name  string
			value float64
		}{
			{"totalUsdCost", p.TotalUsdCost},
			{"tokenAvgUsdCost", p.TokenAvgUsdCost},
			{"balance", p.Balance},
			{"usdBalance", p.UsdBalance},
		}
		for _, f := range nonNegative {
			if f.value < 0 {
				errs = append(errs, fmt.Errorf("%s must not be negative, got %v", f.name, f.value))
			}
		}
		if p.Winrate < 0 || p.Winrate > 100 {
			errs = append(errs, fmt.Errorf("winrate must be within [0,100], got %v", p.Winrate))
		}
	}
	return errors.Join(errs...)
}

// UnmarshalJSON decodes a record, accepting the legacy "daysOption" key for the window.
// Both chain and window are required.
func (s *WalletStats) UnmarshalJSON(data []byte) error {
	type alias WalletStats
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if a.ReportingWindow == "" {
		var legacy struct {
			DaysOption ReportingWindow `json:"daysOption"`
		}
		if err := json.Unmarshal(data, &legacy); err != nil {
			return err
		}
		a.ReportingWindow = legacy.DaysOption
	}
	if a.Chain == "" {
		return fmt.Errorf("%w: chain is missing", ErrUnsupportedChain)
	}
	if a.ReportingWindow == "" {
		return fmt.Errorf("%w: reportingWindow is missing", ErrUnsupportedReportingWindow)
	}
	*s = WalletStats(a)
	return nil
}
