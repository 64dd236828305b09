package models

import (
	"sort"
	"strings"
)

// ItemQuery describes a filtered listing. Empty strings mean "not filtered"
// and a zero Limit means "no limit".
type ItemQuery struct {
	Genre    string // Case-sensitive substring of the genre
	Platform string
	Status   string
	Kind     string

	ExcludeStatus string
	Sort          SortOrder
	Limit         int
}

// Match reports whether item satisfies every filter of the query
func (q ItemQuery) Match(item *Item) bool {
	if q.Genre != "" && (item.Genre == nil || !strings.Contains(*item.Genre, q.Genre)) {
		return false
	}
	if q.Platform != "" && (item.Platform == nil || *item.Platform != q.Platform) {
		return false
	}
	if q.Status != "" && item.Status != q.Status {
		return false
	}
	if q.Kind != "" && item.Kind != q.Kind {
		return false
	}
	if q.ExcludeStatus != "" && item.Status == q.ExcludeStatus {
		return false
	}
	return true
}

// SortItems orders items in place.
//
// SortRatingDesc compares the (has rating, rating) tuple so unrated items
// always come last; ties and the natural order fall back to ascending id.
// SortCreatedDesc breaks ties on descending id.
func SortItems(items []*Item, order SortOrder) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch order {
		case SortRatingDesc:
			if a.HasRating() != b.HasRating() {
				return a.HasRating()
			}
			if a.HasRating() && *a.Rating != *b.Rating {
				return *a.Rating > *b.Rating
			}
			return a.ID < b.ID
		case SortCreatedDesc:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.ID > b.ID
		default:
			return a.ID < b.ID
		}
	})
}

// Apply filters, sorts and truncates items according to the query
func (q ItemQuery) Apply(items []*Item) []*Item {
	matched := make([]*Item, 0, len(items))
	for _, item := range items {
		if q.Match(item) {
			matched = append(matched, item)
		}
	}

	SortItems(matched, q.Sort)

	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched
}
