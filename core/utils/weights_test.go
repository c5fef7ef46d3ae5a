package utils_test

import (
	"testing"

	"content-forge/core/errs"
	"content-forge/core/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeights(t *testing.T) {
	got, err := utils.ParseWeights("male:0.5, FEMALE:0.5")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"MALE": 0.5, "FEMALE": 0.5}, got)

	got, err = utils.ParseWeights("")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = utils.ParseWeights("A:1,,B:2,")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestParseWeights_Errors(t *testing.T) {
	for _, in := range []string{"MALE", ":0.5", "MALE:x", "A:1,A:2"} {
		_, err := utils.ParseWeights(in)
		assert.ErrorIs(t, err, errs.ErrConfiguration, in)
	}
}

func TestFormatWeights(t *testing.T) {
	assert.Equal(t, "A:0.25,B:1", utils.FormatWeights(map[string]float64{"B": 1, "A": 0.25}))
	assert.Equal(t, "", utils.FormatWeights(nil))
}
