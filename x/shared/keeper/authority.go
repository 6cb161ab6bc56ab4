// Package keeper provides helpers shared by the hydrax module keepers.
package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"
)

// ValidateAuthority checks that the caller is the module authority.
// Privileged operations (parameter updates, pool creation, forced route
// inserts, technical schedule termination) gate on it.
//
//	if err := sharedkeeper.ValidateAuthority(k.authority, msg.Authority); err != nil {
//	    return nil, err
//	}
func ValidateAuthority(expected, actual string) error {
	if expected != actual {
		return govtypes.ErrInvalidSigner.Wrapf(
			"invalid authority; expected %s, got %s",
			expected,
			actual,
		)
	}
	return nil
}

// IsAuthority reports whether addr is the authority account.
func IsAuthority(authority string, addr sdk.AccAddress) bool {
	return authority != "" && addr.String() == authority
}
