package validation

import (
	"testing"

	"github.com/amaumene/moviemate/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateItem(t *testing.T) {
	tests := []struct {
		name    string
		item    models.Item
		field   string
		message string
	}{
		{"missing title", models.Item{}, "title", "title required"},
		{"negative watched", models.Item{Title: "Lost", EpisodesWatched: -3}, "episodes_watched", "episodes_watched must be at least 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateItem(&tt.item)

			var ve *models.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, tt.message, ve.Message)
		})
	}
}

func TestValidateItemAcceptsValidItem(t *testing.T) {
	rating := 0.0
	item := &models.Item{
		Title:           "Dune",
		Kind:            "documentary",
		Status:          "abandoned",
		TotalEpisodes:   -1,
		EpisodesWatched: 12,
		Rating:          &rating,
	}

	assert.NoError(t, ValidateItem(item))
}
