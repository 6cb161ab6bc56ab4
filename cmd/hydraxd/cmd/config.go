package cmd

import (
	"crypto/sha256"
	"fmt"
	"reflect"
	"strings"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/paw-chain/hydrax/app"
	"github.com/paw-chain/hydrax/app/health"
	"github.com/paw-chain/hydrax/app/telemetry"
	dcatypes "github.com/paw-chain/hydrax/x/dca/types"
)

// EnvPrefix prefixes every environment override, e.g. HYDRAX_LISTEN.
const EnvPrefix = "HYDRAX"

// Config is the full hydraxd configuration: how to run the chain and the
// scenario to drive through it.
type Config struct {
	ChainID   string        `json:"chain_id"`
	BlockTime time.Duration `json:"block_time"`
	// Home holds the chain database. Empty runs in memory.
	Home string `json:"home"`
	// Listen serves metrics and health endpoints. Empty disables the server.
	Listen string `json:"listen"`
	CORS   bool   `json:"cors"`
	// BlockInterval paces block production in wall-clock time. Zero runs
	// blocks back to back.
	BlockInterval time.Duration `json:"block_interval"`

	Telemetry telemetry.Config `json:"telemetry"`
	Health    health.Config    `json:"health"`
	Scenario  Scenario         `json:"scenario"`
}

// Scenario is a genesis plus messages delivered at fixed heights.
//
// Addresses may be written as "@name": every name maps to a deterministic
// account, and "@authority" maps to the governance account.
type Scenario struct {
	Name string `json:"name"`
	// Blocks is the height the run stops at.
	Blocks  int64             `json:"blocks"`
	Genesis app.GenesisConfig `json:"genesis"`
	Steps   []Step            `json:"steps"`
}

// Step delivers one message at Height. Value holds the message fields as
// they appear in its JSON form.
type Step struct {
	Height int64          `json:"height"`
	Msg    string         `json:"msg"`
	Value  map[string]any `json:"value"`
}

// DefaultConfig returns a configuration that runs an empty in-memory chain.
func DefaultConfig() Config {
	dcaParams := dcatypes.DefaultParams()
	return Config{
		ChainID:   app.DefaultChainID,
		BlockTime: app.DefaultBlockTime,
		Telemetry: telemetry.DefaultConfig(),
		Health:    health.DefaultConfig(),
		Scenario: Scenario{
			Name:    "default",
			Blocks:  10,
			Genesis: app.GenesisConfig{DCA: &dcaParams},
		},
	}
}

// Validate reports every problem with the configuration at once.
func (c Config) Validate() error {
	var err error
	if c.ChainID == "" {
		err = multierr.Append(err, fmt.Errorf("chain_id is required"))
	}
	if c.BlockTime <= 0 {
		err = multierr.Append(err, fmt.Errorf("block_time must be positive"))
	}
	if c.BlockInterval < 0 {
		err = multierr.Append(err, fmt.Errorf("block_interval cannot be negative"))
	}
	if telemetryErr := c.Telemetry.Validate(); telemetryErr != nil {
		err = multierr.Append(err, fmt.Errorf("telemetry: %w", telemetryErr))
	}
	return multierr.Append(err, c.Scenario.Validate())
}

// Validate checks step ordering and that every message type is known.
// Height 1 is the genesis block, so steps start at 2.
func (s Scenario) Validate() error {
	var err error
	if s.Blocks < 1 {
		err = multierr.Append(err, fmt.Errorf("scenario %q: blocks must be at least 1", s.Name))
	}
	for i, step := range s.Steps {
		if step.Height < 2 || step.Height > s.Blocks {
			err = multierr.Append(err, fmt.Errorf("step %d: height %d outside [2, %d]", i, step.Height, s.Blocks))
		}
		if _, msgErr := app.NewMsg(step.Msg); msgErr != nil {
			err = multierr.Append(err, fmt.Errorf("step %d: %w", i, msgErr))
		}
	}
	return err
}

// LoadConfig reads the configuration file at path, if any, over the
// defaults and applies HYDRAX_* environment overrides.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// fields the file leaves out keep their defaults
	cfg := DefaultConfig()
	if err := v.Unmarshal(&cfg, viper.DecodeHook(decodeHook()), useJSONTags); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("chain_id", cfg.ChainID)
	v.SetDefault("block_time", cfg.BlockTime)
	v.SetDefault("home", cfg.Home)
	v.SetDefault("listen", cfg.Listen)
	v.SetDefault("cors", cfg.CORS)
	v.SetDefault("block_interval", cfg.BlockInterval)

	v.SetDefault("telemetry.enabled", cfg.Telemetry.Enabled)
	v.SetDefault("telemetry.otlp_endpoint", cfg.Telemetry.OTLPEndpoint)
	v.SetDefault("telemetry.sample_rate", cfg.Telemetry.SampleRate)
	v.SetDefault("telemetry.environment", cfg.Telemetry.Environment)
	v.SetDefault("telemetry.prometheus_enabled", cfg.Telemetry.PrometheusEnabled)

	v.SetDefault("health.max_block_age", cfg.Health.MaxBlockAge)
	v.SetDefault("health.max_response_time", cfg.Health.MaxResponseTime)
	v.SetDefault("health.cache_duration", cfg.Health.CacheDuration)

	v.SetDefault("scenario.name", cfg.Scenario.Name)
	v.SetDefault("scenario.blocks", cfg.Scenario.Blocks)
}

func useJSONTags(c *mapstructure.DecoderConfig) {
	c.TagName = "json"
}

var (
	intType = reflect.TypeOf(math.Int{})
	decType = reflect.TypeOf(math.LegacyDec{})
)

// decodeHook turns scalars into chain amounts and durations. YAML numbers
// lose precision past 2^53, so large amounts should be quoted.
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		amountHook,
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.TextUnmarshallerHookFunc(),
	)
}

func amountHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != intType && to != decType {
		return data, nil
	}
	s, err := cast.ToStringE(data)
	if err != nil {
		return nil, fmt.Errorf("expected a number, got %T", data)
	}
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", "")

	if to == intType {
		amount, ok := math.NewIntFromString(s)
		if !ok {
			return nil, fmt.Errorf("invalid integer amount %q", s)
		}
		return amount, nil
	}
	return math.LegacyNewDecFromStr(s)
}

// decodeValue decodes a loosely typed value into out using the config
// decoding rules. Unknown fields are rejected.
func decodeValue(value any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  decodeHook(),
		TagName:     "json",
		ErrorUnused: true,
		Result:      out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(value)
}

// AccountAddress derives the scenario account called name.
func AccountAddress(name string) sdk.AccAddress {
	sum := sha256.Sum256([]byte("hydrax/account/" + name))
	return sdk.AccAddress(sum[:20])
}

// accounts resolves "@name" references and remembers every name it saw.
type accounts struct {
	authority string
	names     map[string]sdk.AccAddress
}

func newAccounts(authority string) *accounts {
	return &accounts{authority: authority, names: make(map[string]sdk.AccAddress)}
}

func (a *accounts) address(s string) string {
	name, ok := strings.CutPrefix(s, "@")
	if !ok {
		return s
	}
	if name == "authority" {
		return a.authority
	}
	addr, ok := a.names[name]
	if !ok {
		addr = AccountAddress(name)
		a.names[name] = addr
	}
	return addr.String()
}

// resolve replaces account references anywhere inside a decoded value.
func (a *accounts) resolve(value any) any {
	switch v := value.(type) {
	case string:
		return a.address(v)
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, elem := range v {
			out[key] = a.resolve(elem)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = a.resolve(elem)
		}
		return out
	default:
		return value
	}
}
