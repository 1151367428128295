package queue

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFromViperNil(t *testing.T) {
	assert := assert.New(t)

	s, err := FromViper(nil)
	assert.NoError(err)
	assert.Equal(Settings{}, s)
}

func testFromViperFull(t *testing.T) {
	const config = `{
		"queue": {
			"discard": "discard_oldest",
			"control": "full_control",
			"size": 100
		}
	}`

	var (
		assert  = assert.New(t)
		require = require.New(t)

		v = viper.New()
	)

	v.SetConfigType("json")
	require.NoError(v.ReadConfig(strings.NewReader(config)))

	s, err := FromViper(v.Sub(ViperKey))
	require.NoError(err)

	assert.Equal(DiscardOldest, s.Discard)
	assert.Equal(FullControl, s.Control)
	assert.Equal(100, s.Size)
}

func testFromViperUnbounded(t *testing.T) {
	const config = `{
		"queue": {
			"discard": "discard_newest",
			"size": "unbounded"
		}
	}`

	var (
		assert  = assert.New(t)
		require = require.New(t)

		v = viper.New()
	)

	v.SetConfigType("json")
	require.NoError(v.ReadConfig(strings.NewReader(config)))

	s, err := FromViper(v.Sub(ViperKey))
	require.NoError(err)

	assert.Equal(DiscardNewest, s.Discard)
	assert.Equal(NoControl, s.Control)
	assert.Zero(s.Size)
}

func testFromViperInvalidPolicy(t *testing.T) {
	const config = `{
		"queue": {
			"discard": "whenever"
		}
	}`

	var (
		assert  = assert.New(t)
		require = require.New(t)

		v = viper.New()
	)

	v.SetConfigType("json")
	require.NoError(v.ReadConfig(strings.NewReader(config)))

	_, err := FromViper(v.Sub(ViperKey))
	assert.Error(err)
}

func TestFromViper(t *testing.T) {
	t.Run("Nil", testFromViperNil)
	t.Run("Full", testFromViperFull)
	t.Run("Unbounded", testFromViperUnbounded)
	t.Run("InvalidPolicy", testFromViperInvalidPolicy)
}
