package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// ModuleName defines the module name
	ModuleName = "dca"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// NamedReserveID is the ledger reservation schedule budgets are held under.
	NamedReserveID = "dcaorder"

	// RetryToSearchForFreeBlock bounds the free block search: offsets
	// 2^k-1 for k in [0, RetryToSearchForFreeBlock] are probed.
	RetryToSearchForFreeBlock = 5
)

// Store key prefixes
var (
	ParamsKey                 = []byte{0x01}
	NextScheduleIDKey         = []byte{0x02}
	ScheduleKeyPrefix         = []byte{0x03}
	ScheduleIdsPerBlockPrefix = []byte{0x04}
	ExecutionBlockKeyPrefix   = []byte{0x05}
	RetriesKeyPrefix          = []byte{0x06}
	SuspendedKeyPrefix        = []byte{0x07}
)

func idKey(prefix []byte, id uint64) []byte {
	return append(append([]byte{}, prefix...), sdk.Uint64ToBigEndian(id)...)
}

// ScheduleKey returns the store key of schedule id.
func ScheduleKey(id uint64) []byte { return idKey(ScheduleKeyPrefix, id) }

// ScheduleIdsPerBlockKey returns the store key of the ids due at block.
func ScheduleIdsPerBlockKey(block uint64) []byte { return idKey(ScheduleIdsPerBlockPrefix, block) }

// ExecutionBlockKey returns the store key of the block schedule id is planned at.
func ExecutionBlockKey(id uint64) []byte { return idKey(ExecutionBlockKeyPrefix, id) }

// RetriesKey returns the store key of the failure count of schedule id.
func RetriesKey(id uint64) []byte { return idKey(RetriesKeyPrefix, id) }

// SuspendedKey returns the store key marking schedule id suspended.
func SuspendedKey(id uint64) []byte { return idKey(SuspendedKeyPrefix, id) }
