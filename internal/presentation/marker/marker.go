// Package marker maps record magnitudes onto display tiers.
package marker

import "github.com/shopspring/decimal"

// Tier is the visual weight assigned to a record. Bigger magnitudes get a
// larger radius and a lower z-order so small markers stay clickable on top.
type Tier struct {
	Name   string
	Radius int
	ZOrder int
}

// Breakpoints are the magnitude thresholds separating the tiers, in euros.
type Breakpoints struct {
	Medium decimal.Decimal
	Large  decimal.Decimal
	XLarge decimal.Decimal
}

// DefaultBreakpoints returns the standard 10k / 100k / 1M euro thresholds.
func DefaultBreakpoints() Breakpoints {
	return Breakpoints{
		Medium: decimal.NewFromInt(10_000),
		Large:  decimal.NewFromInt(100_000),
		XLarge: decimal.NewFromInt(1_000_000),
	}
}

var (
	tierSmall  = Tier{Name: "s", Radius: 3, ZOrder: 503}
	tierMedium = Tier{Name: "m", Radius: 6, ZOrder: 502}
	tierLarge  = Tier{Name: "l", Radius: 9, ZOrder: 501}
	tierXLarge = Tier{Name: "xl", Radius: 12, ZOrder: 500}
)

// TierFor classifies a magnitude against the breakpoints. Thresholds are
// inclusive: a magnitude exactly at a breakpoint lands in the larger tier.
func TierFor(magnitude decimal.Decimal, bp Breakpoints) Tier {
	switch {
	case magnitude.GreaterThanOrEqual(bp.XLarge):
		return tierXLarge
	case magnitude.GreaterThanOrEqual(bp.Large):
		return tierLarge
	case magnitude.GreaterThanOrEqual(bp.Medium):
		return tierMedium
	default:
		return tierSmall
	}
}
