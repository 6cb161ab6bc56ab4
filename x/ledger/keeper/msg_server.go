package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/hydrax/x/ledger/types"
	sharedkeeper "github.com/paw-chain/hydrax/x/shared/keeper"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the ledger MsgServer interface.
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// Transfer handles a free balance transfer.
func (ms msgServer) Transfer(goCtx context.Context, msg *types.MsgTransfer) (*types.MsgTransferResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("Transfer: validate: %w", err)
	}
	from := sdk.MustAccAddressFromBech32(msg.From)
	to := sdk.MustAccAddressFromBech32(msg.To)
	if err := ms.Keeper.Transfer(goCtx, from, to, msg.Denom, msg.Amount); err != nil {
		return nil, fmt.Errorf("Transfer: %w", err)
	}
	return &types.MsgTransferResponse{}, nil
}

// RegisterAsset handles asset registration by the authority.
func (ms msgServer) RegisterAsset(goCtx context.Context, msg *types.MsgRegisterAsset) (*types.MsgRegisterAssetResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("RegisterAsset: validate: %w", err)
	}
	if err := sharedkeeper.ValidateAuthority(ms.authority, msg.Authority); err != nil {
		return nil, err
	}
	if err := ms.Keeper.RegisterAsset(goCtx, msg.Asset); err != nil {
		return nil, fmt.Errorf("RegisterAsset: %w", err)
	}
	return &types.MsgRegisterAssetResponse{}, nil
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
