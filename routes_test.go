package topoconv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// chainTable converts a three-router chain (R1-R2-R3) with an unattached
// cloud and returns its route table.
func chainTable(t *testing.T) *RouteTable {
	t.Helper()
	raw := RawTopology{
		"10.0.0.1:7200": RawInstance{
			"7200":      RawItem{"image": "c7200-image.bin"},
			"ROUTER R1": RawItem{"f0/0": "R2 f0/0"},
			"ROUTER R2": RawItem{
				"slot0": "C7200-IO-2FE",
				"f0/0":  "R1 f0/0",
				"f0/1":  "R3 f0/0",
			},
			"ROUTER R3": RawItem{"f0/0": "R2 f0/1"},
			"Cloud C9":  RawItem{},
		},
	}
	cr, err := CreateSession("chain").Convert(raw)
	require.NoError(t, err)
	require.Len(t, cr.Links, 2)
	return CreateRouteTable(cr.Nodes, cr.Links)
}

func TestRouteChain(t *testing.T) {
	rt := chainTable(t)

	route, err := rt.Route("R1", "R3")
	require.NoError(t, err)
	require.Equal(t, []string{"R1", "R2", "R3"}, route)
	require.Equal(t, "R1,R2,R3", ShowPath(route))

	route, err = rt.Route("R1", "R2")
	require.NoError(t, err)
	require.Equal(t, []string{"R1", "R2"}, route)
}

func TestRouteReversesCachedTree(t *testing.T) {
	rt := chainTable(t)

	// the first query roots a tree in R3; the opposite direction is then
	// answered from that tree by symmetry
	forward, err := rt.Route("R3", "R1")
	require.NoError(t, err)
	require.Equal(t, []string{"R3", "R2", "R1"}, forward)

	back, err := rt.Route("R1", "R3")
	require.NoError(t, err)
	require.Equal(t, []string{"R1", "R2", "R3"}, back)
}

func TestRouteSameNode(t *testing.T) {
	rt := chainTable(t)
	route, err := rt.Route("R2", "R2")
	require.NoError(t, err)
	require.Equal(t, []string{"R2"}, route)
}

func TestRouteUnknownName(t *testing.T) {
	rt := chainTable(t)
	_, err := rt.Route("R1", "R99")
	require.Error(t, err)
	require.Contains(t, err.Error(), "R99")
}

func TestRouteUnreachable(t *testing.T) {
	rt := chainTable(t)
	_, err := rt.Route("R1", "C9")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no path")
}
