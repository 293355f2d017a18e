package resilience_test

import (
	"errors"
	"testing"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderdesk/wanderdesk/internal/provider/resilience"
)

func TestRegistry_RegisterAndHealth(t *testing.T) {
	registry := resilience.NewRegistry()
	client := resilience.NewClient(resilience.DefaultClientConfig("serpapi"))

	registry.Register("serpapi", client)

	health := registry.Health("serpapi")
	require.NotNil(t, health)
	assert.Equal(t, "serpapi", health.Name)
	assert.Equal(t, gobreaker.StateClosed, health.CircuitState)
	assert.True(t, health.IsHealthy())
	assert.False(t, health.IsDegraded())
	assert.Nil(t, health.LastSuccessAt)
	assert.Nil(t, health.LastFailureAt)
}

func TestRegistry_UnknownProvider(t *testing.T) {
	registry := resilience.NewRegistry()
	assert.Nil(t, registry.Health("nope"))

	// Recording against an unknown name is ignored, not a panic.
	registry.RecordSuccess("nope")
	registry.RecordFailure("nope", errors.New("boom"))
}

func TestRegistry_RecordsOutcomes(t *testing.T) {
	registry := resilience.NewRegistry()
	client := resilience.NewClient(resilience.DefaultClientConfig("serpapi"))
	registry.Register("serpapi", client)

	registry.RecordSuccess("serpapi")
	health := registry.Health("serpapi")
	require.NotNil(t, health)
	assert.NotNil(t, health.LastSuccessAt)

	registry.RecordFailure("serpapi", errors.New("upstream exploded"))
	health = registry.Health("serpapi")
	require.NotNil(t, health)
	assert.NotNil(t, health.LastFailureAt)
	assert.Equal(t, "upstream exploded", health.LastError)
}

func TestRegistry_AllHealth(t *testing.T) {
	registry := resilience.NewRegistry()
	registry.Register("a", resilience.NewClient(resilience.DefaultClientConfig("a")))
	registry.Register("b", resilience.NewClient(resilience.DefaultClientConfig("b")))

	health := registry.AllHealth()
	assert.Len(t, health, 2)

	names := map[string]bool{}
	for _, h := range health {
		names[h.Name] = true
	}
	assert.True(t, names["a"] && names["b"])
}
