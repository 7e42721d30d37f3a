package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/learnify-app/learnify-api/internal/models"
)

func TestParseVoteWeights(t *testing.T) {
	weights, err := parseVoteWeights(map[string]string{
		"best_project":  "2.5",
		"MOST_CREATIVE": " 1.5 ",
	})
	require.NoError(t, err)
	require.Equal(t, 2.5, weights[models.VoteTypeBestProject])
	require.Equal(t, 1.5, weights[models.VoteTypeMostCreative])
}

func TestParseVoteWeightsRejectsUnknownCategory(t *testing.T) {
	_, err := parseVoteWeights(map[string]string{"funniest": "3"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown vote category")
}

func TestParseVoteWeightsRejectsBadValue(t *testing.T) {
	_, err := parseVoteWeights(map[string]string{"best_project": "heavy"})
	require.Error(t, err)
}

func TestHTTPAddress(t *testing.T) {
	require.Equal(t, ":8080", Config{AppPort: "8080"}.HTTPAddress())
	require.Equal(t, ":9000", Config{AppPort: ":9000"}.HTTPAddress())
}
