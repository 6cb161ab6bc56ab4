package types

import (
	"context"

	sdkerrors "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MsgSchedule creates a schedule owned by Schedule.Owner. ID is ignored.
type MsgSchedule struct {
	Schedule       Schedule `json:"schedule"`
	ExecutionBlock *uint64  `json:"execution_block,omitempty"`
}

// ValidateBasic performs stateless validation.
func (msg MsgSchedule) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Schedule.Owner); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid owner address: %s", err)
	}
	return msg.Schedule.Validate()
}

// MsgPause suspends a schedule. Owner only.
type MsgPause struct {
	Owner              string `json:"owner"`
	ScheduleID         uint64 `json:"schedule_id"`
	NextExecutionBlock uint64 `json:"next_execution_block"`
}

// ValidateBasic performs stateless validation.
func (msg MsgPause) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid owner address: %s", err)
	}
	return nil
}

// MsgResume plans a suspended schedule again. Owner only.
type MsgResume struct {
	Owner          string  `json:"owner"`
	ScheduleID     uint64  `json:"schedule_id"`
	ExecutionBlock *uint64 `json:"execution_block,omitempty"`
}

// ValidateBasic performs stateless validation.
func (msg MsgResume) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid owner address: %s", err)
	}
	return nil
}

// MsgTerminate removes a schedule and releases its budget. Sender must be
// the owner or the module authority.
type MsgTerminate struct {
	Sender             string `json:"sender"`
	ScheduleID         uint64 `json:"schedule_id"`
	NextExecutionBlock uint64 `json:"next_execution_block"`
}

// ValidateBasic performs stateless validation.
func (msg MsgTerminate) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid sender address: %s", err)
	}
	return nil
}

// MsgUpdateParams replaces the dca parameters. Authority only.
type MsgUpdateParams struct {
	Authority string `json:"authority"`
	Params    Params `json:"params"`
}

// ValidateBasic performs stateless validation.
func (msg MsgUpdateParams) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid authority address: %s", err)
	}
	return msg.Params.Validate()
}

// MsgScheduleResponse is the response of Schedule.
type MsgScheduleResponse struct {
	ScheduleID uint64 `json:"schedule_id"`
}

// MsgPauseResponse is the response of Pause.
type MsgPauseResponse struct{}

// MsgResumeResponse is the response of Resume.
type MsgResumeResponse struct{}

// MsgTerminateResponse is the response of Terminate.
type MsgTerminateResponse struct{}

// MsgUpdateParamsResponse is the response of UpdateParams.
type MsgUpdateParamsResponse struct{}

// MsgServer is the dca message service.
type MsgServer interface {
	Schedule(context.Context, *MsgSchedule) (*MsgScheduleResponse, error)
	Pause(context.Context, *MsgPause) (*MsgPauseResponse, error)
	Resume(context.Context, *MsgResume) (*MsgResumeResponse, error)
	Terminate(context.Context, *MsgTerminate) (*MsgTerminateResponse, error)
	UpdateParams(context.Context, *MsgUpdateParams) (*MsgUpdateParamsResponse, error)
}
