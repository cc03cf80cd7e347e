package roster

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiscoveryPromotion(t *testing.T) {
	d := NewDiscovery(2)

	d.Observe("Rico waved at the tavern.", nil)
	candidates := d.Candidates()
	require.Len(t, candidates, 1)
	require.Equal(t, Candidate{Name: "Rico", Count: 1, Promoted: false}, candidates[0])

	d.Observe("Rico waved again.", nil)
	candidates = d.Candidates()
	require.Len(t, candidates, 1)
	require.Equal(t, Candidate{Name: "Rico", Count: 2, Promoted: true}, candidates[0])
}

func TestDiscoveryMultiwordNames(t *testing.T) {
	d := NewDiscovery(2)

	d.Observe("Anna Parker entered the hall.", nil)
	d.Observe("Anna Parker sat by the fire.", nil)

	candidates := d.Candidates()
	require.Len(t, candidates, 1)
	require.Equal(t, "Anna Parker", candidates[0].Name)
	require.True(t, candidates[0].Promoted)
}

func TestDiscoveryStopwordsBreakRuns(t *testing.T) {
	d := NewDiscovery(1)

	// "The" is a stopword: it neither counts nor joins a run.
	d.Observe("The Salt Flats stretched north.", nil)

	candidates := d.Candidates()
	require.Len(t, candidates, 1)
	require.Equal(t, "Salt Flats", candidates[0].Name)
}

func TestDiscoveryPunctuationAndPossessives(t *testing.T) {
	d := NewDiscovery(2)

	d.Observe("Rico's blade flashed. (Rico) shouted!", nil)

	candidates := d.Candidates()
	require.Len(t, candidates, 1)
	require.Equal(t, Candidate{Name: "Rico", Count: 2, Promoted: true}, candidates[0])
}

func TestDiscoverySkipList(t *testing.T) {
	d := NewDiscovery(1)

	skip := map[string]bool{"rico": true}
	d.Observe("Rico and Nova crossed the bridge.", skip)

	candidates := d.Candidates()
	require.Len(t, candidates, 1)
	require.Equal(t, "Nova", candidates[0].Name)
}

func TestDiscoveryIgnore(t *testing.T) {
	d := NewDiscovery(2)

	d.Observe("Rico returned.", nil)
	d.Observe("Rico again.", nil)
	require.Len(t, d.Candidates(), 1)

	d.Ignore("Rico")
	require.Empty(t, d.Candidates())

	// Ignored names stay suppressed through later sightings.
	d.Observe("Rico once more.", nil)
	require.Empty(t, d.Candidates())
}

func TestDiscoveryForget(t *testing.T) {
	d := NewDiscovery(2)

	d.Observe("Nova appeared.", nil)
	d.Observe("Nova vanished.", nil)
	require.Len(t, d.Candidates(), 1)

	d.Forget("Nova")
	require.Empty(t, d.Candidates())

	// A forgotten name starts counting from scratch.
	d.Observe("Nova appeared.", nil)
	candidates := d.Candidates()
	require.Len(t, candidates, 1)
	require.Equal(t, 1, candidates[0].Count)
	require.False(t, candidates[0].Promoted)
}

func TestDiscoveryOrdering(t *testing.T) {
	d := NewDiscovery(3)

	d.Observe("Nova met Rico.", nil)
	d.Observe("Nova left.", nil)

	candidates := d.Candidates()
	require.Len(t, candidates, 2)
	require.Equal(t, "Nova", candidates[0].Name)
	require.Equal(t, 2, candidates[0].Count)
	require.Equal(t, "Rico", candidates[1].Name)
}
