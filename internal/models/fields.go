package models

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Field is an optional input value. Set is false when the caller did not
// supply the field at all.
type Field[T any] struct {
	Set   bool
	Value T
}

// Some returns a supplied Field holding v
func Some[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// ItemFields holds the item fields a caller may supply on create or update.
// Nullable columns use pointer values so that an explicit null clears them.
type ItemFields struct {
	Title           Field[string]
	Kind            Field[string]
	Director        Field[*string]
	Genre           Field[*string]
	Platform        Field[*string]
	Status          Field[string]
	TotalEpisodes   Field[int]
	EpisodesWatched Field[int]
	Rating          Field[*float64]
	Review          Field[*string]
	Notes           Field[*string]
	RuntimeMinutes  Field[*int]
	ImageURL        Field[*string]
}

// itemFieldNames is the closed set of writable fields, in the order they are decoded
var itemFieldNames = []string{
	"title", "kind", "director", "genre", "platform", "status",
	"total_episodes", "episodes_watched", "rating", "review",
	"notes", "runtime_minutes", "image_url",
}

// ParseItemFields decodes a JSON object into ItemFields. Unknown keys are
// ignored; a value of the wrong type yields a ValidationError.
func ParseItemFields(data []byte) (ItemFields, error) {
	var f ItemFields

	raw, err := parseObject(data)
	if err != nil {
		return f, err
	}

	for _, name := range itemFieldNames {
		value, ok := raw[name]
		if !ok {
			continue
		}

		switch name {
		case "title":
			f.Title, err = stringField(name, value)
		case "kind":
			f.Kind, err = stringField(name, value)
		case "director":
			f.Director, err = nullableStringField(name, value)
		case "genre":
			f.Genre, err = nullableStringField(name, value)
		case "platform":
			f.Platform, err = nullableStringField(name, value)
		case "status":
			f.Status, err = stringField(name, value)
		case "total_episodes":
			f.TotalEpisodes, err = intField(name, value)
		case "episodes_watched":
			f.EpisodesWatched, err = intField(name, value)
		case "rating":
			f.Rating, err = nullableFloatField(name, value)
		case "review":
			f.Review, err = nullableStringField(name, value)
		case "notes":
			f.Notes, err = nullableStringField(name, value)
		case "runtime_minutes":
			f.RuntimeMinutes, err = nullableIntField(name, value)
		case "image_url":
			f.ImageURL, err = nullableStringField(name, value)
		}
		if err != nil {
			return ItemFields{}, err
		}
	}

	return f, nil
}

// Apply overwrites every supplied field on item
func (f ItemFields) Apply(item *Item) {
	if f.Title.Set {
		item.Title = f.Title.Value
	}
	if f.Kind.Set {
		item.Kind = f.Kind.Value
	}
	if f.Director.Set {
		item.Director = f.Director.Value
	}
	if f.Genre.Set {
		item.Genre = f.Genre.Value
	}
	if f.Platform.Set {
		item.Platform = f.Platform.Value
	}
	if f.Status.Set {
		item.Status = f.Status.Value
	}
	if f.TotalEpisodes.Set {
		item.TotalEpisodes = f.TotalEpisodes.Value
	}
	if f.EpisodesWatched.Set {
		item.EpisodesWatched = f.EpisodesWatched.Value
	}
	if f.Rating.Set {
		item.Rating = f.Rating.Value
	}
	if f.Review.Set {
		item.Review = f.Review.Value
	}
	if f.Notes.Set {
		item.Notes = f.Notes.Value
	}
	if f.RuntimeMinutes.Set {
		item.RuntimeMinutes = f.RuntimeMinutes.Value
	}
	if f.ImageURL.Set {
		item.ImageURL = f.ImageURL.Value
	}
}

// ReviewFields holds a review submission. A nil value means the field was
// not supplied; null and absent are treated alike.
type ReviewFields struct {
	Rating *float64
	Review *string
	Notes  *string
}

// ParseReviewFields decodes a review submission
func ParseReviewFields(data []byte) (ReviewFields, error) {
	var f ReviewFields

	raw, err := parseObject(data)
	if err != nil {
		return f, err
	}

	if value, ok := raw["rating"]; ok {
		rating, err := nullableFloatField("rating", value)
		if err != nil {
			return ReviewFields{}, err
		}
		f.Rating = rating.Value
	}
	if value, ok := raw["review"]; ok {
		review, err := nullableStringField("review", value)
		if err != nil {
			return ReviewFields{}, err
		}
		f.Review = review.Value
	}
	if value, ok := raw["notes"]; ok {
		notes, err := nullableStringField("notes", value)
		if err != nil {
			return ReviewFields{}, err
		}
		f.Notes = notes.Value
	}

	return f, nil
}

// DefaultProgressDelta is used when a progress request carries no delta
const DefaultProgressDelta = 1

// ParseProgressDelta decodes the delta of a progress request
func ParseProgressDelta(data []byte) (int, error) {
	raw, err := parseObject(data)
	if err != nil {
		return 0, err
	}

	value, ok := raw["delta"]
	if !ok {
		return DefaultProgressDelta, nil
	}

	delta, err := intField("delta", value)
	if err != nil {
		return 0, err
	}
	return delta.Value, nil
}

// parseObject splits a JSON object into its raw members. An empty body is
// treated as an empty object.
func parseObject(data []byte) (map[string]json.RawMessage, error) {
	raw := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(data)) == 0 {
		return raw, nil
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, Invalid("", "request body must be a JSON object")
	}
	return raw, nil
}

func isNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}

// decodeScalar decodes a raw value keeping numbers as json.Number
func decodeScalar(value json.RawMessage) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(value))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func stringField(name string, value json.RawMessage) (Field[string], error) {
	var s string
	if isNull(value) || json.Unmarshal(value, &s) != nil {
		return Field[string]{}, Invalid(name, "invalid "+name)
	}
	return Some(s), nil
}

func nullableStringField(name string, value json.RawMessage) (Field[*string], error) {
	if isNull(value) {
		return Some[*string](nil), nil
	}
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return Field[*string]{}, Invalid(name, "invalid "+name)
	}
	return Some(&s), nil
}

func intField(name string, value json.RawMessage) (Field[int], error) {
	v, err := decodeScalar(value)
	if err != nil {
		return Field[int]{}, Invalid(name, "invalid "+name)
	}

	n, ok := coerceInt(v)
	if !ok {
		return Field[int]{}, Invalid(name, "invalid "+name)
	}
	return Some(n), nil
}

func nullableIntField(name string, value json.RawMessage) (Field[*int], error) {
	if isNull(value) {
		return Some[*int](nil), nil
	}
	n, err := intField(name, value)
	if err != nil {
		return Field[*int]{}, err
	}
	return Some(&n.Value), nil
}

func nullableFloatField(name string, value json.RawMessage) (Field[*float64], error) {
	if isNull(value) {
		return Some[*float64](nil), nil
	}

	v, err := decodeScalar(value)
	if err != nil {
		return Field[*float64]{}, Invalid(name, "invalid "+name)
	}

	var f float64
	switch t := v.(type) {
	case json.Number:
		f, err = strconv.ParseFloat(string(t), 64)
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(t), 64)
	default:
		return Field[*float64]{}, Invalid(name, "invalid "+name)
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Field[*float64]{}, Invalid(name, "invalid "+name)
	}
	return Some(&f), nil
}

// coerceInt accepts integral JSON numbers, fractional numbers (truncated
// toward zero) and strings holding a base-10 integer. Values outside the
// int32 range are rejected.
func coerceInt(v interface{}) (int, bool) {
	var f float64
	switch t := v.(type) {
	case json.Number:
		if i, err := strconv.ParseInt(string(t), 10, 64); err == nil {
			return boundInt(i)
		}
		parsed, err := strconv.ParseFloat(string(t), 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return 0, false
		}
		f = math.Trunc(parsed)
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return 0, false
		}
		return boundInt(i)
	default:
		return 0, false
	}

	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

func boundInt(i int64) (int, bool) {
	if i > math.MaxInt32 || i < math.MinInt32 {
		return 0, false
	}
	return int(i), true
}
