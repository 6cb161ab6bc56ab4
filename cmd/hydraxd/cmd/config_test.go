package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/paw-chain/hydrax/app"
	dcatypes "github.com/paw-chain/hydrax/x/dca/types"
	omnipooltypes "github.com/paw-chain/hydrax/x/omnipool/types"
	oracletypes "github.com/paw-chain/hydrax/x/oracle/types"
)

const testScenario = "testdata/dca.yaml"

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	require.Equal(t, app.DefaultChainID, cfg.ChainID)
	require.Equal(t, app.DefaultBlockTime, cfg.BlockTime)
	require.Empty(t, cfg.Home)
	require.Empty(t, cfg.Listen)
	require.Equal(t, int64(10), cfg.Scenario.Blocks)
	require.False(t, cfg.Telemetry.Enabled)
	require.Equal(t, 5*time.Second, cfg.Health.MaxResponseTime)
	require.NotNil(t, cfg.Scenario.Genesis.DCA)
}

func TestLoadConfigFile(t *testing.T) {
	cfg, err := LoadConfig(testScenario)
	require.NoError(t, err)

	require.Equal(t, "hydrax-scenario-1", cfg.ChainID)
	require.Equal(t, 12*time.Second, cfg.BlockTime)
	require.Equal(t, "dca-sell", cfg.Scenario.Name)
	require.Equal(t, int64(10), cfg.Scenario.Blocks)

	genesis := cfg.Scenario.Genesis
	require.Len(t, genesis.Assets, 1)
	require.Equal(t, "dai", genesis.Assets[0].Denom)
	require.Equal(t, math.NewInt(1_000), genesis.Assets[0].ExistentialDeposit)
	require.True(t, genesis.Assets[0].Sufficient)

	require.Len(t, genesis.Balances, 3)
	require.Equal(t, "@alice", genesis.Balances[2].Address)
	require.Equal(t, math.NewInt(1_000_000_000_000_000), genesis.Balances[2].Amount)

	// params left out of the file keep their defaults
	defaults := dcatypes.DefaultParams()
	require.Equal(t, uint32(10), genesis.DCA.MaxSchedulesPerBlock)
	require.Equal(t, oracletypes.Short, genesis.DCA.OraclePeriod)
	require.Equal(t, defaults.MinimalPeriod, genesis.DCA.MinimalPeriod)
	require.True(t, defaults.ExecutionFee.Equal(genesis.DCA.ExecutionFee))

	require.Len(t, cfg.Scenario.Steps, 3)
	require.Equal(t, "/dca.MsgSchedule", cfg.Scenario.Steps[2].Msg)
	require.Equal(t, int64(3), cfg.Scenario.Steps[2].Height)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("HYDRAX_CHAIN_ID", "env-chain")
	t.Setenv("HYDRAX_SCENARIO_BLOCKS", "25")
	t.Setenv("HYDRAX_HEALTH_MAX_BLOCK_AGE", "90s")

	cfg, err := LoadConfig(testScenario)
	require.NoError(t, err)
	require.Equal(t, "env-chain", cfg.ChainID)
	require.Equal(t, int64(25), cfg.Scenario.Blocks)
	require.Equal(t, 90*time.Second, cfg.Health.MaxBlockAge)
}

func TestLoadConfigInvalid(t *testing.T) {
	path := writeConfig(t, `
block_time: 0s
scenario:
  blocks: 3
  steps:
    - height: 1
      msg: /dca.MsgSchedule
    - height: 2
      msg: /dca.MsgUnknown
`)
	_, err := LoadConfig(path)
	require.Error(t, err)
	require.ErrorIs(t, err, app.ErrUnknownMsg)
	require.ErrorContains(t, err, "block_time must be positive")
	require.ErrorContains(t, err, "height 1 outside [2, 3]")

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "failed to read config")
}

func TestScenarioValidateCollectsErrors(t *testing.T) {
	s := Scenario{
		Blocks: 0,
		Steps:  []Step{{Height: 5, Msg: "/nope.Msg"}},
	}
	err := s.Validate()
	require.Len(t, multierr.Errors(err), 3)
}

func TestDecodeValue(t *testing.T) {
	var msg omnipooltypes.MsgAddToken
	err := decodeValue(map[string]any{
		"asset":         "dot",
		"amount":        "1_000_000",
		"initial_price": 1.5,
	}, &msg)
	require.NoError(t, err)
	require.Equal(t, "dot", msg.Asset)
	require.Equal(t, math.NewInt(1_000_000), msg.Amount)
	require.Equal(t, math.LegacyMustNewDecFromStr("1.5"), msg.InitialPrice)

	err = decodeValue(map[string]any{"amount": "ten"}, &omnipooltypes.MsgAddToken{})
	require.ErrorContains(t, err, "invalid integer amount")

	err = decodeValue(map[string]any{"asset_name": "dot"}, &omnipooltypes.MsgAddToken{})
	require.ErrorContains(t, err, "asset_name")

	var params dcatypes.Params
	err = decodeValue(map[string]any{"oracle_period": "hour"}, &params)
	require.NoError(t, err)
	require.Equal(t, oracletypes.Hour, params.OraclePeriod)
}

func TestAccountResolution(t *testing.T) {
	accts := newAccounts("gov")

	require.Equal(t, "gov", accts.address("@authority"))
	require.Equal(t, "plain", accts.address("plain"))
	require.Equal(t, AccountAddress("alice").String(), accts.address("@alice"))
	require.Contains(t, accts.names, "alice")
	require.NotContains(t, accts.names, "authority")

	resolved := accts.resolve(map[string]any{
		"owner":  "@bob",
		"route":  []any{map[string]any{"asset_in": "hdx"}},
		"period": 5,
	})
	require.Equal(t, map[string]any{
		"owner":  AccountAddress("bob").String(),
		"route":  []any{map[string]any{"asset_in": "hdx"}},
		"period": 5,
	}, resolved)
}
