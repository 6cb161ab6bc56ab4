package types

import (
	"cosmossdk.io/errors"
)

// Oracle module sentinel errors
var (
	ErrOracleNotAvailable = errors.Register(ModuleName, 2, "oracle price not available")
	ErrInvalidPeriod      = errors.Register(ModuleName, 3, "invalid oracle period")
	ErrInvalidPrice       = errors.Register(ModuleName, 4, "invalid price")
	ErrInvalidSource      = errors.Register(ModuleName, 5, "invalid oracle source")
)
