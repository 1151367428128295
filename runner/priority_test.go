package runner

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriorityString(t *testing.T) {
	assert := assert.New(t)

	expected := map[Priority]string{
		Lowest:       "lowest",
		BelowNormal:  "below_normal",
		Normal:       "normal",
		AboveNormal:  "above_normal",
		Highest:      "highest",
		TimeCritical: "time_critical",
		Priority(47): "unknown",
	}

	for p, s := range expected {
		assert.Equal(s, p.String())
	}
}

func TestDefaultNativePriorities(t *testing.T) {
	assert := assert.New(t)

	table := DefaultNativePriorities()
	assert.Len(table, 6)
	assert.Equal(int32(0), table[Normal])

	// higher abstract priority, lower native nice value
	assert.Greater(table[Lowest], table[BelowNormal])
	assert.Greater(table[BelowNormal], table[Normal])
	assert.Greater(table[Normal], table[AboveNormal])
	assert.Greater(table[AboveNormal], table[Highest])
	assert.Greater(table[Highest], table[TimeCritical])
}

func TestApplierFunc(t *testing.T) {
	var (
		assert = assert.New(t)

		expectedErr = errors.New("expected")
		applied     int32
	)

	var a Applier = ApplierFunc(func(native int32) error {
		applied = native
		return expectedErr
	})

	assert.Equal(expectedErr, a.Apply(-10))
	assert.Equal(int32(-10), applied)
}
