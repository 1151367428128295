package xmetrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testModule() []Metric {
	return []Metric{
		{
			Name: "event_count",
			Type: CounterType,
		},
		{
			Name: "depth",
			Type: GaugeType,
		},
	}
}

func testNewRegistryEmpty(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
	)

	r, err := NewRegistry(nil)
	require.NoError(err)
	require.NotNil(r)

	// ad hoc metrics
	c := r.NewCounter("adhoc_count")
	require.NotNil(c)
	c.Add(1.0)

	g := r.NewGauge("adhoc_gauge")
	require.NotNil(g)
	g.Set(12.0)

	families, err := r.Gather()
	assert.NoError(err)
	assert.Len(families, 2)
}

func testNewRegistryModules(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
	)

	r, err := NewRegistry(&Options{Pedantic: true}, testModule)
	require.NoError(err)
	require.NotNil(r)

	c := r.NewCounter("event_count")
	require.NotNil(c)
	c.Add(2.0)

	g := r.NewGauge("depth")
	require.NotNil(g)
	g.Set(5.0)

	families, err := r.Gather()
	assert.NoError(err)
	assert.Len(families, 2)
}

func testNewRegistryDuplicates(t *testing.T) {
	assert := assert.New(t)

	r, err := NewRegistry(nil, testModule, testModule)
	assert.Error(err)
	assert.Nil(r)
}

func testNewRegistryInvalidMetric(t *testing.T) {
	assert := assert.New(t)

	r, err := NewRegistry(&Options{
		Metrics: []Metric{
			{Name: "", Type: CounterType},
		},
	})

	assert.Error(err)
	assert.Nil(r)

	r, err = NewRegistry(&Options{
		Metrics: []Metric{
			{Name: "weird", Type: "summary"},
		},
	})

	assert.Error(err)
	assert.Nil(r)
}

func testNewRegistryTypeMismatch(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
	)

	r, err := NewRegistry(nil, testModule)
	require.NoError(err)

	assert.Panics(func() {
		r.NewCounter("depth")
	})

	assert.Panics(func() {
		r.NewGauge("event_count")
	})
}

func TestNewRegistry(t *testing.T) {
	t.Run("Empty", testNewRegistryEmpty)
	t.Run("Modules", testNewRegistryModules)
	t.Run("Duplicates", testNewRegistryDuplicates)
	t.Run("InvalidMetric", testNewRegistryInvalidMetric)
	t.Run("TypeMismatch", testNewRegistryTypeMismatch)
}
