package patchline

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// catalogOf builds a catalog holding the given versions.
func catalogOf(versions ...int) Catalog {
	c := make(Catalog)
	for _, v := range versions {
		c[v] = Patch{Version: v, Path: fmt.Sprintf("/timeline/migrate-%d.pl", v)}
	}
	return c
}

func TestPlan(t *testing.T) {
	t.Run("gap terminates the run", func(t *testing.T) {
		plan := catalogOf(1, 2, 4).Plan(0)
		require.Len(t, plan, 2)
		require.Equal(t, 1, plan[0].Version)
		require.Equal(t, 2, plan[1].Version)
	})

	t.Run("empty iff no entry at current+1", func(t *testing.T) {
		c := catalogOf(2, 3)
		require.Empty(t, c.Plan(0))
		require.Len(t, c.Plan(1), 2)
		require.Empty(t, c.Plan(3))
	})

	t.Run("empty catalog", func(t *testing.T) {
		require.Empty(t, catalogOf().Plan(0))
	})

	t.Run("contiguity from any starting version", func(t *testing.T) {
		c := catalogOf(1, 2, 3, 5, 6, 9)
		for current := 0; current <= 10; current++ {
			plan := c.Plan(current)
			for i, p := range plan {
				require.Equal(t, current+i+1, p.Version,
					"plan from %d must increase by exactly 1", current)
			}
		}
	})
}

func TestDestination(t *testing.T) {
	c := catalogOf(1, 2, 4)
	require.Equal(t, 2, c.Destination(0))
	require.Equal(t, 2, c.Destination(1))
	require.Equal(t, 2, c.Destination(2)) // gap at 3, nothing to run
	require.Equal(t, 4, c.Destination(3))
}
