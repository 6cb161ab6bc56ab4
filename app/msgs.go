package app

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"reflect"
	"sort"

	circuitbreakerkeeper "github.com/paw-chain/hydrax/x/circuitbreaker/keeper"
	circuitbreakertypes "github.com/paw-chain/hydrax/x/circuitbreaker/types"
	dcakeeper "github.com/paw-chain/hydrax/x/dca/keeper"
	dcatypes "github.com/paw-chain/hydrax/x/dca/types"
	lbpkeeper "github.com/paw-chain/hydrax/x/lbp/keeper"
	lbptypes "github.com/paw-chain/hydrax/x/lbp/types"
	ledgerkeeper "github.com/paw-chain/hydrax/x/ledger/keeper"
	ledgertypes "github.com/paw-chain/hydrax/x/ledger/types"
	omnipoolkeeper "github.com/paw-chain/hydrax/x/omnipool/keeper"
	omnipooltypes "github.com/paw-chain/hydrax/x/omnipool/types"
	oraclekeeper "github.com/paw-chain/hydrax/x/oracle/keeper"
	oracletypes "github.com/paw-chain/hydrax/x/oracle/types"
	routerkeeper "github.com/paw-chain/hydrax/x/router/keeper"
	routertypes "github.com/paw-chain/hydrax/x/router/types"
	stableswapkeeper "github.com/paw-chain/hydrax/x/stableswap/keeper"
	stableswaptypes "github.com/paw-chain/hydrax/x/stableswap/types"
	xykkeeper "github.com/paw-chain/hydrax/x/xyk/keeper"
	xyktypes "github.com/paw-chain/hydrax/x/xyk/types"
)

// Msg is a message the runtime can deliver.
type Msg interface {
	ValidateBasic() error
}

type msgServers struct {
	ledger         ledgertypes.MsgServer
	circuitbreaker circuitbreakertypes.MsgServer
	oracle         oracletypes.MsgServer
	omnipool       omnipooltypes.MsgServer
	stableswap     stableswaptypes.MsgServer
	xyk            xyktypes.MsgServer
	lbp            lbptypes.MsgServer
	router         routertypes.MsgServer
	dca            dcatypes.MsgServer
}

func newMsgServers(a *App) msgServers {
	return msgServers{
		ledger:         ledgerkeeper.NewMsgServerImpl(a.LedgerKeeper),
		circuitbreaker: circuitbreakerkeeper.NewMsgServerImpl(a.CircuitBreakerKeeper),
		oracle:         oraclekeeper.NewMsgServerImpl(a.OracleKeeper),
		omnipool:       omnipoolkeeper.NewMsgServerImpl(a.OmnipoolKeeper),
		stableswap:     stableswapkeeper.NewMsgServerImpl(a.StableswapKeeper),
		xyk:            xykkeeper.NewMsgServerImpl(a.XYKKeeper),
		lbp:            lbpkeeper.NewMsgServerImpl(a.LBPKeeper),
		router:         routerkeeper.NewMsgServerImpl(a.RouterKeeper),
		dca:            dcakeeper.NewMsgServerImpl(a.DCAKeeper),
	}
}

// msgRegistry maps a type url to a constructor of its message.
var msgRegistry = map[string]func() Msg{
	"/ledger.MsgTransfer":                    func() Msg { return &ledgertypes.MsgTransfer{} },
	"/ledger.MsgRegisterAsset":               func() Msg { return &ledgertypes.MsgRegisterAsset{} },
	"/ledger.MsgUpdateParams":                func() Msg { return &ledgertypes.MsgUpdateParams{} },
	"/circuitbreaker.MsgSetTradeVolumeLimit": func() Msg { return &circuitbreakertypes.MsgSetTradeVolumeLimit{} },
	"/circuitbreaker.MsgSetLiquidityLimit":   func() Msg { return &circuitbreakertypes.MsgSetLiquidityLimit{} },
	"/circuitbreaker.MsgUpdateParams":        func() Msg { return &circuitbreakertypes.MsgUpdateParams{} },
	"/oracle.MsgUpdateParams":                func() Msg { return &oracletypes.MsgUpdateParams{} },
	"/omnipool.MsgAddToken":                  func() Msg { return &omnipooltypes.MsgAddToken{} },
	"/omnipool.MsgAddLiquidity":              func() Msg { return &omnipooltypes.MsgAddLiquidity{} },
	"/omnipool.MsgRemoveLiquidity":           func() Msg { return &omnipooltypes.MsgRemoveLiquidity{} },
	"/omnipool.MsgUpdateParams":              func() Msg { return &omnipooltypes.MsgUpdateParams{} },
	"/stableswap.MsgCreatePool":              func() Msg { return &stableswaptypes.MsgCreatePool{} },
	"/stableswap.MsgAddLiquidity":            func() Msg { return &stableswaptypes.MsgAddLiquidity{} },
	"/stableswap.MsgRemoveLiquidityOneAsset": func() Msg { return &stableswaptypes.MsgRemoveLiquidityOneAsset{} },
	"/stableswap.MsgUpdateParams":            func() Msg { return &stableswaptypes.MsgUpdateParams{} },
	"/xyk.MsgCreatePool":                     func() Msg { return &xyktypes.MsgCreatePool{} },
	"/xyk.MsgAddLiquidity":                   func() Msg { return &xyktypes.MsgAddLiquidity{} },
	"/xyk.MsgRemoveLiquidity":                func() Msg { return &xyktypes.MsgRemoveLiquidity{} },
	"/xyk.MsgUpdateParams":                   func() Msg { return &xyktypes.MsgUpdateParams{} },
	"/lbp.MsgCreatePool":                     func() Msg { return &lbptypes.MsgCreatePool{} },
	"/lbp.MsgRemoveLiquidity":                func() Msg { return &lbptypes.MsgRemoveLiquidity{} },
	"/lbp.MsgUpdateParams":                   func() Msg { return &lbptypes.MsgUpdateParams{} },
	"/router.MsgSell":                        func() Msg { return &routertypes.MsgSell{} },
	"/router.MsgBuy":                         func() Msg { return &routertypes.MsgBuy{} },
	"/router.MsgSetRoute":                    func() Msg { return &routertypes.MsgSetRoute{} },
	"/router.MsgForceInsertRoute":            func() Msg { return &routertypes.MsgForceInsertRoute{} },
	"/dca.MsgSchedule":                       func() Msg { return &dcatypes.MsgSchedule{} },
	"/dca.MsgPause":                          func() Msg { return &dcatypes.MsgPause{} },
	"/dca.MsgResume":                         func() Msg { return &dcatypes.MsgResume{} },
	"/dca.MsgTerminate":                      func() Msg { return &dcatypes.MsgTerminate{} },
	"/dca.MsgUpdateParams":                   func() Msg { return &dcatypes.MsgUpdateParams{} },
}

// MsgTypeURLs returns every registered type url in sorted order.
func MsgTypeURLs() []string {
	urls := make([]string, 0, len(msgRegistry))
	for url := range msgRegistry {
		urls = append(urls, url)
	}
	sort.Strings(urls)
	return urls
}

// MsgTypeURL returns the type url of msg, "/<module>.<MsgName>", where the
// module is the directory above the message's types package.
func MsgTypeURL(msg Msg) string {
	t := reflect.TypeOf(msg)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	module := path.Base(path.Dir(t.PkgPath()))
	return "/" + module + "." + t.Name()
}

// NewMsg returns an empty message of the type registered under typeURL.
func NewMsg(typeURL string) (Msg, error) {
	newMsg, ok := msgRegistry[typeURL]
	if !ok {
		return nil, ErrUnknownMsg.Wrap(typeURL)
	}
	return newMsg(), nil
}

// DecodeMsg builds the message registered under typeURL from its JSON value.
func DecodeMsg(typeURL string, value json.RawMessage) (Msg, error) {
	msg, err := NewMsg(typeURL)
	if err != nil {
		return nil, err
	}
	if len(value) > 0 {
		if err := json.Unmarshal(value, msg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", typeURL, err)
		}
	}
	return msg, nil
}

func (a *App) route(ctx context.Context, msg Msg) (any, error) {
	switch m := msg.(type) {
	case *ledgertypes.MsgTransfer:
		return a.msgs.ledger.Transfer(ctx, m)
	case *ledgertypes.MsgRegisterAsset:
		return a.msgs.ledger.RegisterAsset(ctx, m)
	case *ledgertypes.MsgUpdateParams:
		return a.msgs.ledger.UpdateParams(ctx, m)

	case *circuitbreakertypes.MsgSetTradeVolumeLimit:
		return a.msgs.circuitbreaker.SetTradeVolumeLimit(ctx, m)
	case *circuitbreakertypes.MsgSetLiquidityLimit:
		return a.msgs.circuitbreaker.SetLiquidityLimit(ctx, m)
	case *circuitbreakertypes.MsgUpdateParams:
		return a.msgs.circuitbreaker.UpdateParams(ctx, m)

	case *oracletypes.MsgUpdateParams:
		return a.msgs.oracle.UpdateParams(ctx, m)

	case *omnipooltypes.MsgAddToken:
		return a.msgs.omnipool.AddToken(ctx, m)
	case *omnipooltypes.MsgAddLiquidity:
		return a.msgs.omnipool.AddLiquidity(ctx, m)
	case *omnipooltypes.MsgRemoveLiquidity:
		return a.msgs.omnipool.RemoveLiquidity(ctx, m)
	case *omnipooltypes.MsgUpdateParams:
		return a.msgs.omnipool.UpdateParams(ctx, m)

	case *stableswaptypes.MsgCreatePool:
		return a.msgs.stableswap.CreatePool(ctx, m)
	case *stableswaptypes.MsgAddLiquidity:
		return a.msgs.stableswap.AddLiquidity(ctx, m)
	case *stableswaptypes.MsgRemoveLiquidityOneAsset:
		return a.msgs.stableswap.RemoveLiquidityOneAsset(ctx, m)
	case *stableswaptypes.MsgUpdateParams:
		return a.msgs.stableswap.UpdateParams(ctx, m)

	case *xyktypes.MsgCreatePool:
		return a.msgs.xyk.CreatePool(ctx, m)
	case *xyktypes.MsgAddLiquidity:
		return a.msgs.xyk.AddLiquidity(ctx, m)
	case *xyktypes.MsgRemoveLiquidity:
		return a.msgs.xyk.RemoveLiquidity(ctx, m)
	case *xyktypes.MsgUpdateParams:
		return a.msgs.xyk.UpdateParams(ctx, m)

	case *lbptypes.MsgCreatePool:
		return a.msgs.lbp.CreatePool(ctx, m)
	case *lbptypes.MsgRemoveLiquidity:
		return a.msgs.lbp.RemoveLiquidity(ctx, m)
	case *lbptypes.MsgUpdateParams:
		return a.msgs.lbp.UpdateParams(ctx, m)

	case *routertypes.MsgSell:
		return a.msgs.router.Sell(ctx, m)
	case *routertypes.MsgBuy:
		return a.msgs.router.Buy(ctx, m)
	case *routertypes.MsgSetRoute:
		return a.msgs.router.SetRoute(ctx, m)
	case *routertypes.MsgForceInsertRoute:
		return a.msgs.router.ForceInsertRoute(ctx, m)

	case *dcatypes.MsgSchedule:
		return a.msgs.dca.Schedule(ctx, m)
	case *dcatypes.MsgPause:
		return a.msgs.dca.Pause(ctx, m)
	case *dcatypes.MsgResume:
		return a.msgs.dca.Resume(ctx, m)
	case *dcatypes.MsgTerminate:
		return a.msgs.dca.Terminate(ctx, m)
	case *dcatypes.MsgUpdateParams:
		return a.msgs.dca.UpdateParams(ctx, m)

	default:
		return nil, ErrUnknownMsg.Wrapf("%T", msg)
	}
}
