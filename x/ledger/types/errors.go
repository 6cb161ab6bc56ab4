package types

import (
	"cosmossdk.io/errors"
)

// Ledger module sentinel errors
var (
	ErrAssetNotFound           = errors.Register(ModuleName, 2, "asset not registered")
	ErrAssetAlreadyExists      = errors.Register(ModuleName, 3, "asset already registered")
	ErrInvalidAmount           = errors.Register(ModuleName, 4, "invalid amount")
	ErrInsufficientBalance     = errors.Register(ModuleName, 5, "insufficient free balance")
	ErrInsufficientReserved    = errors.Register(ModuleName, 6, "insufficient reserved balance")
	ErrBelowExistentialDeposit = errors.Register(ModuleName, 7, "balance below existential deposit")
	ErrInsufficientNativeForEd = errors.Register(ModuleName, 8, "insufficient native balance to pay existential deposit of insufficient asset")
	ErrInvalidAsset            = errors.Register(ModuleName, 9, "invalid asset")
	ErrInvalidAddress          = errors.Register(ModuleName, 10, "invalid address")
	ErrIssuanceUnderflow       = errors.Register(ModuleName, 11, "total issuance underflow")
)
