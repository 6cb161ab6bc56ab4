package types

import (
	"fmt"
)

// Source names used by the AMMs.
const (
	SourceOmnipool   = "omnipool"
	SourceStableswap = "stableswap"
	SourceXYK        = "xyk"
	SourceLBP        = "lbp"
)

// QuoteAsset names the asset a source prices everything against. Pairs
// without a direct entry are priced through it.
type QuoteAsset struct {
	Source string `json:"source"`
	Asset  string `json:"asset"`
}

// Params defines the oracle module parameters.
type Params struct {
	Periods     []Period     `json:"periods"`
	QuoteAssets []QuoteAsset `json:"quote_assets"`
}

// DefaultParams returns default oracle parameters.
func DefaultParams() Params {
	return Params{
		Periods: append([]Period{}, AllPeriods...),
		QuoteAssets: []QuoteAsset{
			{Source: SourceOmnipool, Asset: "lrna"},
		},
	}
}

// Validate performs basic validation of oracle parameters.
func (p Params) Validate() error {
	if len(p.Periods) == 0 {
		return fmt.Errorf("at least one period must be tracked")
	}
	seen := make(map[Period]bool, len(p.Periods))
	for _, period := range p.Periods {
		if err := period.Validate(); err != nil {
			return err
		}
		if seen[period] {
			return fmt.Errorf("duplicate period %s", period)
		}
		seen[period] = true
	}
	sources := make(map[string]bool, len(p.QuoteAssets))
	for _, q := range p.QuoteAssets {
		if q.Source == "" || q.Asset == "" {
			return ErrInvalidSource.Wrap("quote asset needs source and asset")
		}
		if sources[q.Source] {
			return ErrInvalidSource.Wrapf("duplicate quote asset for %s", q.Source)
		}
		sources[q.Source] = true
	}
	return nil
}

// Tracks reports whether period is maintained.
func (p Params) Tracks(period Period) bool {
	for _, tracked := range p.Periods {
		if tracked == period {
			return true
		}
	}
	return false
}

// QuoteAssetOf returns the quote asset of source, if any.
func (p Params) QuoteAssetOf(source string) (string, bool) {
	for _, q := range p.QuoteAssets {
		if q.Source == source {
			return q.Asset, true
		}
	}
	return "", false
}
