package decoy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/lilita/internal/decoy"
	"github.com/oggyb/lilita/internal/model"
)

func TestPoolForComposition(t *testing.T) {
	male := decoy.PoolFor(model.InterestMale)
	female := decoy.PoolFor(model.InterestFemale)
	both := decoy.PoolFor(model.InterestBoth)

	require.NotEmpty(t, male)
	require.NotEmpty(t, female)
	assert.Len(t, both, len(male)+len(female))

	// "both" is male pool first, then female pool
	assert.Equal(t, male[0].Name, both[0].Name)
	assert.Equal(t, female[0].Name, both[len(male)].Name)
}

// Pool accessors hand out copies so callers cannot mutate the fixed pools.
func TestPoolsAreCopies(t *testing.T) {
	first := decoy.Male()
	first[0].Name = "mutated"
	assert.NotEqual(t, "mutated", decoy.Male()[0].Name)
}
