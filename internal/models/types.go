package models

// Kind values produced by the service. Callers may store any other string.
const (
	KindMovie = "movie"
	KindShow  = "show"
)

// Status values. Only StatusCompleted carries behaviour: progress updates
// switch to it once every episode has been watched.
const (
	StatusWishlist  = "wishlist"
	StatusWatching  = "watching"
	StatusCompleted = "completed"
)

// SortOrder selects the ordering of a listing
type SortOrder string

const (
	SortNatural     SortOrder = ""
	SortRatingDesc  SortOrder = "rating_desc"  // Highest rating first, unrated last
	SortCreatedDesc SortOrder = "created_desc" // Newest first
)

// ParseSortOrder maps a query value to a SortOrder.
// Unknown values fall back to the natural order.
func ParseSortOrder(s string) SortOrder {
	switch SortOrder(s) {
	case SortRatingDesc, SortCreatedDesc:
		return SortOrder(s)
	default:
		return SortNatural
	}
}

// RecommendationLimit caps the number of items a recommendation query returns
const RecommendationLimit = 10
