package aggregate

import (
	"sort"

	"github.com/vgXhc/madison-accessibility/routing"
)

// PairKey identifies an origin/destination pair. Aggregation always keys on
// this tuple, never on the display string, so two distinct pairs can never
// collapse into one row.
type PairKey struct {
	FromID string
	ToID   string
}

// String is the display form used in report rows.
func (k PairKey) String() string {
	return k.FromID + " to " + k.ToID
}

// Pair holds per-pair means over all feasible departure minutes of one
// scenario. Walk time is access plus egress, summed per record before
// averaging. Pairs with zero feasible departures are never materialized.
type Pair struct {
	Key              PairKey
	MeanTotalTime    float64
	MeanWalkTime     float64
	MeanTransferTime float64
	Departures       int
}

type accumulator struct {
	total    float64
	walk     float64
	transfer float64
	n        int
}

// Summarize reduces one scenario's per-minute records to one Pair per
// distinct origin/destination. Self-pairs are dropped before aggregation.
// Output order is deterministic: by origin id, then destination id.
func Summarize(records []routing.TravelTimeRecord) []Pair {
	groups := make(map[PairKey]*accumulator)
	for _, rec := range records {
		if rec.FromID == rec.ToID {
			continue
		}
		key := PairKey{FromID: rec.FromID, ToID: rec.ToID}
		acc := groups[key]
		if acc == nil {
			acc = &accumulator{}
			groups[key] = acc
		}
		acc.total += rec.TotalTime
		acc.walk += rec.AccessTime + rec.EgressTime
		acc.transfer += rec.TransferTime
		acc.n++
	}

	pairs := make([]Pair, 0, len(groups))
	for key, acc := range groups {
		n := float64(acc.n)
		pairs = append(pairs, Pair{
			Key:              key,
			MeanTotalTime:    acc.total / n,
			MeanWalkTime:     acc.walk / n,
			MeanTransferTime: acc.transfer / n,
			Departures:       acc.n,
		})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Key.FromID != pairs[j].Key.FromID {
			return pairs[i].Key.FromID < pairs[j].Key.FromID
		}
		return pairs[i].Key.ToID < pairs[j].Key.ToID
	})
	return pairs
}
