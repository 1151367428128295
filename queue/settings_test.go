package queue

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscardText(t *testing.T) {
	assert := assert.New(t)

	for _, d := range []Discard{NoDiscard, DiscardOldest, DiscardNewest} {
		text, err := d.MarshalText()
		assert.NoError(err)

		var actual Discard
		assert.NoError(actual.UnmarshalText(text))
		assert.Equal(d, actual)
	}

	var d Discard
	assert.NoError(d.UnmarshalText([]byte("DISCARD_OLDEST")))
	assert.Equal(DiscardOldest, d)

	assert.Error(d.UnmarshalText([]byte("sometimes")))

	_, err := Discard(17).MarshalText()
	assert.Error(err)
}

func TestControlText(t *testing.T) {
	assert := assert.New(t)

	for _, c := range []Control{NoControl, ControlPush, ControlPop, FullControl} {
		text, err := c.MarshalText()
		assert.NoError(err)

		var actual Control
		assert.NoError(actual.UnmarshalText(text))
		assert.Equal(c, actual)
	}

	var c Control
	assert.NoError(c.UnmarshalText([]byte("Full_Control")))
	assert.Equal(FullControl, c)

	assert.Error(c.UnmarshalText([]byte("partial")))

	_, err := Control(17).MarshalText()
	assert.Error(err)
}

func TestSettingsValidate(t *testing.T) {
	assert := assert.New(t)

	assert.NoError(Settings{}.Validate())
	assert.NoError(Settings{Discard: DiscardNewest, Control: FullControl, Size: 10}.Validate())
	assert.Error(Settings{Discard: Discard(17)}.Validate())
	assert.Error(Settings{Control: Control(17)}.Validate())
}

func TestSettingsCapacity(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(5, Settings{Size: 5}.capacity())
	assert.Equal(math.MaxInt, Settings{}.capacity())
	assert.Equal(math.MaxInt, Settings{Size: -1}.capacity())
}

func TestSettingsControllable(t *testing.T) {
	assert := assert.New(t)

	assert.False(Settings{}.pushControllable())
	assert.False(Settings{}.popControllable())

	assert.True(Settings{Control: ControlPush}.pushControllable())
	assert.False(Settings{Control: ControlPush}.popControllable())

	assert.False(Settings{Control: ControlPop}.pushControllable())
	assert.True(Settings{Control: ControlPop}.popControllable())

	assert.True(Settings{Control: FullControl}.pushControllable())
	assert.True(Settings{Control: FullControl}.popControllable())
}
