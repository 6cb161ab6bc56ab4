// Package abci provides shared error handling for block hooks.
package abci

import (
	"fmt"

	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/hashicorp/go-metrics"
)

// EventTypeBlockerError is emitted for every error a block hook swallows.
const EventTypeBlockerError = "abci_blocker_error"

// ErrorSeverity classifies errors raised inside BeginBlocker/EndBlocker.
type ErrorSeverity int

const (
	// SeverityLow is for per-item failures that the module recovers from
	// by itself, such as a single DCA trade failing.
	SeverityLow ErrorSeverity = iota

	// SeverityMedium degrades a feature for one block (oracle update skipped).
	SeverityMedium

	// SeverityHigh means an item was dropped and state needs attention,
	// e.g. a schedule that could not be replanned.
	SeverityHigh

	// SeverityCritical means store corruption.
	SeverityCritical
)

func (s ErrorSeverity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// BlockerErrorHandler logs, emits and counts errors that block hooks must
// not propagate.
type BlockerErrorHandler struct {
	moduleName string
	ctx        sdk.Context
}

// NewBlockerErrorHandler creates a handler bound to the block context.
func NewBlockerErrorHandler(ctx sdk.Context, moduleName string) *BlockerErrorHandler {
	return &BlockerErrorHandler{
		moduleName: moduleName,
		ctx:        ctx,
	}
}

// HandleError records err and returns. Callers continue with the next item.
func (h *BlockerErrorHandler) HandleError(operation string, severity ErrorSeverity, err error) {
	if err == nil {
		return
	}

	kv := []any{
		"module", h.moduleName,
		"operation", operation,
		"severity", severity.String(),
		"error", err.Error(),
	}
	switch severity {
	case SeverityCritical, SeverityHigh:
		h.ctx.Logger().Error("block hook error", kv...)
	case SeverityMedium:
		h.ctx.Logger().Warn("block hook warning", kv...)
	default:
		h.ctx.Logger().Debug("block hook item failed", kv...)
	}

	h.ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			EventTypeBlockerError,
			sdk.NewAttribute("module", h.moduleName),
			sdk.NewAttribute("operation", operation),
			sdk.NewAttribute("severity", severity.String()),
			sdk.NewAttribute("error", err.Error()),
			sdk.NewAttribute("height", fmt.Sprintf("%d", h.ctx.BlockHeight())),
		),
	)

	telemetry.IncrCounterWithLabels(
		[]string{h.moduleName, "blocker_error"},
		1,
		[]metrics.Label{
			telemetry.NewLabel("operation", operation),
			telemetry.NewLabel("severity", severity.String()),
		},
	)
}

// WrapError handles err and reports whether there was one.
//
//	if handler.WrapError("clear_counters", SeverityMedium, k.ClearCounters(ctx)) {
//	    return nil
//	}
func (h *BlockerErrorHandler) WrapError(operation string, severity ErrorSeverity, err error) bool {
	if err != nil {
		h.HandleError(operation, severity, err)
		return true
	}
	return false
}
