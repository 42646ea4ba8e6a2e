package checker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseThreshold(t *testing.T) {
	t.Run("BothSides", func(t *testing.T) {
		threshold, err := ParseThreshold("1,2")
		require.NoError(t, err)
		require.NotNil(t, threshold.Slaves)
		require.Equal(t, 1, *threshold.Slaves)
		require.NotNil(t, threshold.Sentinels)
		require.Equal(t, 2, *threshold.Sentinels)
	})

	t.Run("SlavesOnly", func(t *testing.T) {
		threshold, err := ParseThreshold("1,")
		require.NoError(t, err)
		require.NotNil(t, threshold.Slaves)
		require.Equal(t, 1, *threshold.Slaves)
		require.Nil(t, threshold.Sentinels)
	})

	t.Run("SentinelsOnly", func(t *testing.T) {
		threshold, err := ParseThreshold(",2")
		require.NoError(t, err)
		require.Nil(t, threshold.Slaves)
		require.NotNil(t, threshold.Sentinels)
		require.Equal(t, 2, *threshold.Sentinels)
	})

	t.Run("BothBlank", func(t *testing.T) {
		threshold, err := ParseThreshold(",")
		require.NoError(t, err)
		require.Nil(t, threshold.Slaves)
		require.Nil(t, threshold.Sentinels)
	})

	t.Run("ZeroIsABound", func(t *testing.T) {
		threshold, err := ParseThreshold("0,0")
		require.NoError(t, err)
		require.Equal(t, 0, *threshold.Slaves)
		require.Equal(t, 0, *threshold.Sentinels)
	})

	t.Run("SpacesTolerated", func(t *testing.T) {
		threshold, err := ParseThreshold(" 1 , 2 ")
		require.NoError(t, err)
		require.Equal(t, 1, *threshold.Slaves)
		require.Equal(t, 2, *threshold.Sentinels)
	})

	t.Run("MissingComma", func(t *testing.T) {
		_, err := ParseThreshold("1")
		require.Error(t, err)
	})

	t.Run("TooManyParts", func(t *testing.T) {
		_, err := ParseThreshold("1,2,3")
		require.Error(t, err)
	})

	t.Run("NotAnInteger", func(t *testing.T) {
		_, err := ParseThreshold("x,1")
		require.Error(t, err)

		_, err = ParseThreshold("1,x")
		require.Error(t, err)
	})

	t.Run("SidesAreIndependent", func(t *testing.T) {
		// the two pointers must not alias the same loop variable
		threshold, err := ParseThreshold("3,7")
		require.NoError(t, err)
		require.Equal(t, 3, *threshold.Slaves)
		require.Equal(t, 7, *threshold.Sentinels)
	})
}
