package balance

import "github.com/simaogato/wealthflow-forecast/internal/domain"

// Accumulate folds the monthly net deltas into a running balance, in month index order
// CumulativeBalance[0] = NetDelta[0]; CumulativeBalance[i] = CumulativeBalance[i-1] + NetDelta[i]
// The buckets are updated in place and returned for chaining.
func Accumulate(buckets []domain.MonthlyBucket) []domain.MonthlyBucket {
	for i := range buckets {
		if i == 0 {
			buckets[i].CumulativeBalance = buckets[i].NetDelta
			continue
		}
		buckets[i].CumulativeBalance = buckets[i-1].CumulativeBalance.Add(buckets[i].NetDelta)
	}
	return buckets
}
