package types

import (
	"fmt"
	"strings"

	"cosmossdk.io/math"
)

// Period selects the smoothing window of an EMA entry.
type Period uint8

const (
	LastBlock Period = iota
	Short
	TenMinutes
	Hour
)

// AllPeriods lists every supported period.
var AllPeriods = []Period{LastBlock, Short, TenMinutes, Hour}

// Blocks returns the window length in blocks.
func (p Period) Blocks() uint64 {
	switch p {
	case LastBlock:
		return 1
	case Short:
		return 10
	case TenMinutes:
		return 100
	case Hour:
		return 600
	default:
		return 0
	}
}

// Alpha returns the EMA smoothing factor 2/(N+1).
func (p Period) Alpha() math.LegacyDec {
	n := p.Blocks()
	if n <= 1 {
		return math.LegacyOneDec()
	}
	return math.LegacyNewDec(2).QuoInt64(int64(n + 1))
}

// Validate rejects unknown periods.
func (p Period) Validate() error {
	if p.Blocks() == 0 {
		return ErrInvalidPeriod.Wrapf("unknown period %d", p)
	}
	return nil
}

func (p Period) String() string {
	switch p {
	case LastBlock:
		return "last_block"
	case Short:
		return "short"
	case TenMinutes:
		return "ten_minutes"
	case Hour:
		return "hour"
	default:
		return fmt.Sprintf("period(%d)", uint8(p))
	}
}

// ParsePeriod parses the String form of a period.
func ParsePeriod(s string) (Period, error) {
	for _, p := range AllPeriods {
		if strings.EqualFold(s, p.String()) {
			return p, nil
		}
	}
	return 0, ErrInvalidPeriod.Wrapf("unknown period %q", s)
}

// MarshalText encodes the period by name.
func (p Period) MarshalText() ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return []byte(p.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (p *Period) UnmarshalText(text []byte) error {
	parsed, err := ParsePeriod(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
