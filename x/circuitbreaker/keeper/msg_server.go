package keeper

import (
	"context"
	"fmt"

	"github.com/paw-chain/hydrax/x/circuitbreaker/types"
	sharedkeeper "github.com/paw-chain/hydrax/x/shared/keeper"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the circuit breaker MsgServer interface.
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// SetTradeVolumeLimit handles a trade volume limit override.
func (ms msgServer) SetTradeVolumeLimit(goCtx context.Context, msg *types.MsgSetTradeVolumeLimit) (*types.MsgSetTradeVolumeLimitResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("SetTradeVolumeLimit: validate: %w", err)
	}
	if err := sharedkeeper.ValidateAuthority(ms.authority, msg.Authority); err != nil {
		return nil, err
	}
	if err := ms.Keeper.SetTradeVolumeLimit(goCtx, msg.Asset, msg.Limit); err != nil {
		return nil, fmt.Errorf("SetTradeVolumeLimit: %w", err)
	}
	return &types.MsgSetTradeVolumeLimitResponse{}, nil
}

// SetLiquidityLimit handles an add or remove liquidity limit override.
func (ms msgServer) SetLiquidityLimit(goCtx context.Context, msg *types.MsgSetLiquidityLimit) (*types.MsgSetLiquidityLimitResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("SetLiquidityLimit: validate: %w", err)
	}
	if err := sharedkeeper.ValidateAuthority(ms.authority, msg.Authority); err != nil {
		return nil, err
	}
	var err error
	if msg.Remove {
		err = ms.Keeper.SetRemoveLiquidityLimit(goCtx, msg.Asset, msg.Limit)
	} else {
		err = ms.Keeper.SetAddLiquidityLimit(goCtx, msg.Asset, msg.Limit)
	}
	if err != nil {
		return nil, fmt.Errorf("SetLiquidityLimit: %w", err)
	}
	return &types.MsgSetLiquidityLimitResponse{}, nil
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
