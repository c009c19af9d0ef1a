package rating

import "math"

// Star ratings live in [1.0, 5.0]. Buckets 1 through 4 are half-open
// intervals [n, n+1); bucket 5 matches ratings that round to exactly 5.

const (
	Min = 1.0
	Max = 5.0

	// BucketCount is the number of discrete rating buckets.
	BucketCount = 5

	// NeutralDefault is the rating assigned when no sentiment data exists
	// for a product at all.
	NeutralDefault = 3.0
)

// ValidBucket reports whether b names one of the five rating buckets.
func ValidBucket(b int) bool {
	return b >= 1 && b <= BucketCount
}

// InBucket reports whether rating falls into bucket b. Ratings outside
// [Min, Max] match no bucket; an invalid bucket matches nothing.
func InBucket(rating float64, b int) bool {
	if !ValidBucket(b) {
		return false
	}
	if rating < Min || rating > Max {
		return false
	}
	if b == BucketCount {
		return math.Round(rating) == Max
	}
	return rating >= float64(b) && rating < float64(b)+1
}

// FromPositivePercentage converts a positive-review percentage to a star
// rating using the same thresholds as the upstream catalog service.
func FromPositivePercentage(pct float64) float64 {
	switch {
	case pct >= 80:
		return 5.0
	case pct >= 60:
		return 4.0
	case pct >= 40:
		return 3.0
	case pct >= 20:
		return 2.0
	default:
		return 1.0
	}
}

// Clamp forces a rating into the valid [Min, Max] domain. Upstream averages
// occasionally drift past the bounds due to float math.
func Clamp(r float64) float64 {
	if r < Min {
		return Min
	}
	if r > Max {
		return Max
	}
	return r
}
