package types

import (
	"cosmossdk.io/math"
	"go.uber.org/multierr"

	oracletypes "github.com/paw-chain/hydrax/x/oracle/types"
)

// Params defines the dca parameters.
type Params struct {
	// MinimalPeriod is the shortest allowed period in blocks.
	MinimalPeriod uint64 `json:"minimal_period"`
	// MinBudgetInNativeCurrency is the smallest budget, valued in the
	// native asset.
	MinBudgetInNativeCurrency math.Int `json:"min_budget_in_native_currency"`
	// MaxSchedulesPerBlock is the capacity of one block bucket.
	MaxSchedulesPerBlock uint32 `json:"max_schedules_per_block"`
	// MaxRetries is the number of consecutive failures that suspend a
	// schedule without its own limit.
	MaxRetries uint32 `json:"max_retries"`
	// MaxPriceDifferenceBetweenBlocks is the largest relative gap between
	// spot and oracle price a trade runs at.
	MaxPriceDifferenceBetweenBlocks math.LegacyDec `json:"max_price_difference_between_blocks"`
	// ExecutionFee is charged in the native asset per execution attempt,
	// converted into the sold asset.
	ExecutionFee math.Int `json:"execution_fee"`
	// DefaultSlippage applies to schedules without their own slippage.
	DefaultSlippage math.LegacyDec `json:"default_slippage"`
	// RetryBaseDelay is the replan delay after the first failure. It
	// doubles with each further failure.
	RetryBaseDelay uint64 `json:"retry_base_delay"`
	// OracleSource and OraclePeriod select the oracle price used for fee
	// conversion and the deviation check.
	OracleSource string             `json:"oracle_source"`
	OraclePeriod oracletypes.Period `json:"oracle_period"`
}

// DefaultParams returns default dca parameters.
func DefaultParams() Params {
	return Params{
		MinimalPeriod:                   5,
		MinBudgetInNativeCurrency:       math.NewInt(2_000_000),
		MaxSchedulesPerBlock:            20,
		MaxRetries:                      3,
		MaxPriceDifferenceBetweenBlocks: math.LegacyNewDecWithPrec(1, 1),
		ExecutionFee:                    math.NewInt(2_269_868_000),
		DefaultSlippage:                 math.LegacyNewDecWithPrec(5, 2),
		RetryBaseDelay:                  10,
		OracleSource:                    oracletypes.SourceOmnipool,
		OraclePeriod:                    oracletypes.Short,
	}
}

// Validate performs basic validation of dca parameters and reports every
// problem found.
func (p Params) Validate() error {
	var err error
	if p.MinimalPeriod == 0 {
		err = multierr.Append(err, ErrPeriodTooShort.Wrap("minimal period must be positive"))
	}
	if p.MinBudgetInNativeCurrency.IsNil() || p.MinBudgetInNativeCurrency.IsNegative() {
		err = multierr.Append(err, ErrInsufficientBudget.Wrap("min budget cannot be negative"))
	}
	if p.MaxSchedulesPerBlock == 0 {
		err = multierr.Append(err, ErrInvalidScheduleOrderData.Wrap("max schedules per block must be positive"))
	}
	if p.MaxRetries == 0 {
		err = multierr.Append(err, ErrInvalidScheduleOrderData.Wrap("max retries must be positive"))
	}
	if p.MaxPriceDifferenceBetweenBlocks.IsNil() || !p.MaxPriceDifferenceBetweenBlocks.IsPositive() {
		err = multierr.Append(err, ErrInvalidScheduleOrderData.Wrap("max price difference must be positive"))
	}
	if p.ExecutionFee.IsNil() || p.ExecutionFee.IsNegative() {
		err = multierr.Append(err, ErrInvalidScheduleOrderData.Wrap("execution fee cannot be negative"))
	}
	if p.DefaultSlippage.IsNil() || p.DefaultSlippage.IsNegative() || p.DefaultSlippage.GT(math.LegacyOneDec()) {
		err = multierr.Append(err, ErrInvalidScheduleOrderData.Wrap("default slippage must be in [0, 1]"))
	}
	if p.RetryBaseDelay == 0 {
		err = multierr.Append(err, ErrInvalidScheduleOrderData.Wrap("retry base delay must be positive"))
	}
	if p.OracleSource == "" {
		err = multierr.Append(err, ErrInvalidScheduleOrderData.Wrap("oracle source cannot be empty"))
	}
	if verr := p.OraclePeriod.Validate(); verr != nil {
		err = multierr.Append(err, verr)
	}
	return err
}
