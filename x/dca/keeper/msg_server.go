package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/hydrax/x/dca/types"
	sharedkeeper "github.com/paw-chain/hydrax/x/shared/keeper"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the dca MsgServer interface.
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// Schedule handles schedule creation.
func (ms msgServer) Schedule(goCtx context.Context, msg *types.MsgSchedule) (*types.MsgScheduleResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("Schedule: validate: %w", err)
	}
	id, err := ms.Keeper.Schedule(goCtx, msg.Schedule, msg.ExecutionBlock)
	if err != nil {
		return nil, fmt.Errorf("Schedule: %w", err)
	}
	return &types.MsgScheduleResponse{ScheduleID: id}, nil
}

// Pause handles schedule suspension by its owner.
func (ms msgServer) Pause(goCtx context.Context, msg *types.MsgPause) (*types.MsgPauseResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("Pause: validate: %w", err)
	}
	owner := sdk.MustAccAddressFromBech32(msg.Owner)
	if err := ms.Keeper.Pause(goCtx, owner, msg.ScheduleID, msg.NextExecutionBlock); err != nil {
		return nil, fmt.Errorf("Pause: %w", err)
	}
	return &types.MsgPauseResponse{}, nil
}

// Resume handles replanning of a suspended schedule.
func (ms msgServer) Resume(goCtx context.Context, msg *types.MsgResume) (*types.MsgResumeResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("Resume: validate: %w", err)
	}
	owner := sdk.MustAccAddressFromBech32(msg.Owner)
	if err := ms.Keeper.Resume(goCtx, owner, msg.ScheduleID, msg.ExecutionBlock); err != nil {
		return nil, fmt.Errorf("Resume: %w", err)
	}
	return &types.MsgResumeResponse{}, nil
}

// Terminate handles schedule removal by its owner or the authority.
func (ms msgServer) Terminate(goCtx context.Context, msg *types.MsgTerminate) (*types.MsgTerminateResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("Terminate: validate: %w", err)
	}
	sender := sdk.MustAccAddressFromBech32(msg.Sender)
	if err := ms.Keeper.Terminate(goCtx, sender, msg.ScheduleID, msg.NextExecutionBlock); err != nil {
		return nil, fmt.Errorf("Terminate: %w", err)
	}
	return &types.MsgTerminateResponse{}, nil
}

// UpdateParams replaces the module parameters.
func (ms msgServer) UpdateParams(goCtx context.Context, msg *types.MsgUpdateParams) (*types.MsgUpdateParamsResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("UpdateParams: validate: %w", err)
	}
	if err := sharedkeeper.ValidateAuthority(ms.authority, msg.Authority); err != nil {
		return nil, err
	}
	if err := ms.SetParams(goCtx, msg.Params); err != nil {
		return nil, fmt.Errorf("UpdateParams: %w", err)
	}
	return &types.MsgUpdateParamsResponse{}, nil
}
