package aggregate

import "math"

// Ratio is a relative change that may be undefined. A zero denominator
// yields Defined == false rather than NaN or infinity, and renders as
// "undefined" downstream.
type Ratio struct {
	Value   float64
	Defined bool
}

// relativeChange computes (after - before) / |before|.
func relativeChange(before, after float64) Ratio {
	if before == 0 {
		return Ratio{}
	}
	return Ratio{Value: (after - before) / math.Abs(before), Defined: true}
}

// ComparisonRow joins one pair across the two scenarios. After is nil when
// the pair had no feasible departure in the after scenario; its change
// ratios are then undefined. A nil After means "infeasible after the
// redesign", never "zero minutes".
type ComparisonRow struct {
	Key               PairKey
	OriginDestination string
	Before            Pair
	After             *Pair
	ChangeTotal       Ratio
	ChangeWalk        Ratio
	ChangeTransfer    Ratio
}

// Compare left-joins the after scenario onto the before scenario. Every
// before pair produces a row; pairs present only in after are dropped.
// Row order follows the before order.
func Compare(before, after []Pair) []ComparisonRow {
	afterByKey := make(map[PairKey]Pair, len(after))
	for _, p := range after {
		afterByKey[p.Key] = p
	}

	rows := make([]ComparisonRow, 0, len(before))
	for _, b := range before {
		row := ComparisonRow{
			Key:               b.Key,
			OriginDestination: b.Key.String(),
			Before:            b,
		}
		if a, ok := afterByKey[b.Key]; ok {
			row.After = &a
			row.ChangeTotal = relativeChange(b.MeanTotalTime, a.MeanTotalTime)
			row.ChangeWalk = relativeChange(b.MeanWalkTime, a.MeanWalkTime)
			row.ChangeTransfer = relativeChange(b.MeanTransferTime, a.MeanTransferTime)
		}
		rows = append(rows, row)
	}
	return rows
}
