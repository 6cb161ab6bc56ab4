package app

import (
	"cosmossdk.io/errors"
)

const codespace = AppName

var (
	ErrUnknownMsg         = errors.Register(codespace, 2, "unknown message type")
	ErrNoBlockInProgress  = errors.Register(codespace, 3, "no block in progress")
	ErrBlockInProgress    = errors.Register(codespace, 4, "block already in progress")
	ErrAlreadyInitialized = errors.Register(codespace, 5, "chain already initialized")
	ErrInvalidGenesis     = errors.Register(codespace, 6, "invalid genesis")
)
