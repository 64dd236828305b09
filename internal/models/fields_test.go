package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseItemFields(t *testing.T) {
	fields, err := ParseItemFields([]byte(`{
		"title": "Dune",
		"total_episodes": "10",
		"episodes_watched": 2.7,
		"rating": 8.5,
		"genre": null,
		"runtime_minutes": 155,
		"unknown": {"nested": true}
	}`))
	require.NoError(t, err)

	assert.Equal(t, Some("Dune"), fields.Title)
	assert.Equal(t, Some(10), fields.TotalEpisodes)
	assert.Equal(t, Some(2), fields.EpisodesWatched, "fractional numbers are truncated")
	require.True(t, fields.Rating.Set)
	assert.Equal(t, 8.5, *fields.Rating.Value)
	assert.True(t, fields.Genre.Set, "explicit null is a supplied value")
	assert.Nil(t, fields.Genre.Value)
	require.True(t, fields.RuntimeMinutes.Set)
	assert.Equal(t, 155, *fields.RuntimeMinutes.Value)

	assert.False(t, fields.Kind.Set)
	assert.False(t, fields.Status.Set)
	assert.False(t, fields.Platform.Set)
}

func TestParseItemFieldsRejectsWrongTypes(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"non numeric episodes", `{"total_episodes": "ten"}`, "total_episodes"},
		{"boolean episodes", `{"episodes_watched": true}`, "episodes_watched"},
		{"null title", `{"title": null}`, "title"},
		{"numeric title", `{"title": 42}`, "title"},
		{"non numeric rating", `{"rating": "abc"}`, "rating"},
		{"object director", `{"director": {}}`, "director"},
		{"episodes beyond int32", `{"total_episodes": 9223372036854775807}`, "total_episodes"},
		{"runtime beyond int32", `{"runtime_minutes": "4294967296"}`, "runtime_minutes"},
		{"not an object", `[1, 2]`, ""},
		{"malformed", `{"title": `, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseItemFields([]byte(tt.body))
			require.Error(t, err)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestParseItemFieldsEmptyBody(t *testing.T) {
	fields, err := ParseItemFields(nil)
	require.NoError(t, err)
	assert.Equal(t, ItemFields{}, fields)

	fields, err = ParseItemFields([]byte("  \n"))
	require.NoError(t, err)
	assert.Equal(t, ItemFields{}, fields)
}

func TestItemFieldsApply(t *testing.T) {
	director := "Villeneuve"
	item := &Item{
		Title:    "Old",
		Kind:     KindMovie,
		Status:   StatusWishlist,
		Director: &director,
	}

	fields, err := ParseItemFields([]byte(`{"title": "Dune", "director": null, "status": "watching"}`))
	require.NoError(t, err)
	fields.Apply(item)

	assert.Equal(t, "Dune", item.Title)
	assert.Nil(t, item.Director)
	assert.Equal(t, StatusWatching, item.Status)
	assert.Equal(t, KindMovie, item.Kind, "fields that were not supplied are kept")
}

func TestParseProgressDelta(t *testing.T) {
	tests := []struct {
		body    string
		want    int
		wantErr bool
	}{
		{``, 1, false},
		{`{}`, 1, false},
		{`{"delta": 3}`, 3, false},
		{`{"delta": -4}`, -4, false},
		{`{"delta": " 5 "}`, 5, false},
		{`{"delta": "abc"}`, 0, true},
		{`{"delta": "1.5"}`, 0, true},
		{`{"delta": 2147483647}`, 2147483647, false},
		{`{"delta": "-2147483648"}`, -2147483648, false},
		{`{"delta": 2147483648}`, 0, true},
		{`{"delta": 9223372036854775807}`, 0, true},
		{`{"delta": "9223372036854775807"}`, 0, true},
		{`{"delta": 1e12}`, 0, true},
		{`{"delta": null}`, 0, true},
		{`{"delta": true}`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			delta, err := ParseProgressDelta([]byte(tt.body))
			if tt.wantErr {
				assert.True(t, IsValidation(err), "expected a validation error, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, delta)
		})
	}
}

func TestParseReviewFields(t *testing.T) {
	review, err := ParseReviewFields([]byte(`{"rating": "7.5", "notes": "rewatch"}`))
	require.NoError(t, err)
	require.NotNil(t, review.Rating)
	assert.Equal(t, 7.5, *review.Rating)
	assert.Nil(t, review.Review)
	require.NotNil(t, review.Notes)
	assert.Equal(t, "rewatch", *review.Notes)

	review, err = ParseReviewFields([]byte(`{"rating": null, "review": null}`))
	require.NoError(t, err)
	assert.Nil(t, review.Rating, "null is treated as not supplied")
	assert.Nil(t, review.Review)

	for _, body := range []string{`{"rating": "abc"}`, `{"rating": "NaN"}`, `{"rating": []}`} {
		_, err := ParseReviewFields([]byte(body))
		var ve *ValidationError
		require.ErrorAs(t, err, &ve, body)
		assert.Equal(t, "invalid rating", ve.Message)
	}
}
