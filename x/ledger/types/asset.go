package types

import (
	"fmt"
	"regexp"

	"cosmossdk.io/math"
)

var denomRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9/:._-]{1,127}$`)

// Asset is a registry entry.
//
// Sufficient assets can be held by any account. Holding an insufficient
// asset costs the account a refundable deposit in the native asset, unless
// the SkipEd flag is set for the running operation.
type Asset struct {
	Denom              string   `json:"denom"`
	ExistentialDeposit math.Int `json:"existential_deposit"`
	Sufficient         bool     `json:"sufficient"`
}

// ValidateDenom checks the denom format.
func ValidateDenom(denom string) error {
	if !denomRegex.MatchString(denom) {
		return ErrInvalidAsset.Wrapf("invalid denom %q", denom)
	}
	return nil
}

// Validate performs stateless validation.
func (a Asset) Validate() error {
	if err := ValidateDenom(a.Denom); err != nil {
		return err
	}
	if a.ExistentialDeposit.IsNil() || a.ExistentialDeposit.IsNegative() {
		return ErrInvalidAsset.Wrapf("existential deposit of %s must be non-negative", a.Denom)
	}
	return nil
}

func (a Asset) String() string {
	return fmt.Sprintf("%s(ed=%s, sufficient=%t)", a.Denom, a.ExistentialDeposit, a.Sufficient)
}
