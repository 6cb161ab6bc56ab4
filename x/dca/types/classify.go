package types

import (
	"cosmossdk.io/errors"

	lbptypes "github.com/paw-chain/hydrax/x/lbp/types"
	ledgertypes "github.com/paw-chain/hydrax/x/ledger/types"
	omnipooltypes "github.com/paw-chain/hydrax/x/omnipool/types"
	routertypes "github.com/paw-chain/hydrax/x/router/types"
	stableswaptypes "github.com/paw-chain/hydrax/x/stableswap/types"
	xyktypes "github.com/paw-chain/hydrax/x/xyk/types"
)

// structuralErrors cannot clear by waiting: the route points at something
// that does not exist or cannot trade.
var structuralErrors = []error{
	routertypes.ErrNotSupported,
	routertypes.ErrRouteNotFound,
	routertypes.ErrInvalidRoute,
	omnipooltypes.ErrAssetNotFound,
	omnipooltypes.ErrNotAllowed,
	stableswaptypes.ErrPoolNotFound,
	stableswaptypes.ErrAssetNotInPool,
	xyktypes.ErrPoolNotFound,
	lbptypes.ErrPoolNotFound,
	ledgertypes.ErrAssetNotFound,
}

// IsStructuralError reports whether a failed trade should suspend its
// schedule at once instead of being retried.
func IsStructuralError(err error) bool {
	return err != nil && errors.IsOf(err, structuralErrors...)
}
