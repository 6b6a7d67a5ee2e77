package topoconv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// legacyLab is a small mixed topology: two routers wired to each other, a
// cloud the second router reaches through an external attachment, and an
// ethernet switch with two numbered ports.
func legacyLab() RawTopology {
	return RawTopology{
		"10.0.0.1:7200": RawInstance{
			"7200": RawItem{"image": "c7200-image.bin", "ram": "256"},
			"ROUTER R1": RawItem{
				"f0/0": "R2 f0/0",
				"x":    "50",
				"y":    "75",
			},
			"ROUTER R2": RawItem{
				"slot0": "C7200-IO-2FE",
				"f0/0":  "R1 f0/0",
				"f0/1":  "nio_gen_eth:eth0",
			},
			"Cloud C1":  RawItem{"nio_gen_eth:eth0": ""},
			"ETHSW SW1": RawItem{"1": "1", "2": "1"},
		},
	}
}

func nodeByName(t *testing.T, nodes []*Node, name string) *Node {
	t.Helper()
	for _, node := range nodes {
		if node.Name() == name {
			return node
		}
	}
	t.Fatalf("no node named %s", name)
	return nil
}

func TestGenerateLinksMirroredPair(t *testing.T) {
	raw := RawTopology{
		"10.0.0.1:7200": RawInstance{
			"7200":      RawItem{"image": "c7200-image.bin"},
			"ROUTER R1": RawItem{"f0/0": "R2 f0/0"},
			"ROUTER R2": RawItem{"f0/0": "R1 f0/0"},
		},
	}

	cr, err := CreateSession("lab").Convert(raw)
	require.NoError(t, err)
	require.Len(t, cr.Nodes, 2)

	r1 := nodeByName(t, cr.Nodes, "R1")
	r2 := nodeByName(t, cr.Nodes, "R2")
	require.Len(t, r1.Ports, 1)
	require.Len(t, r2.Ports, 1)

	// the two mirrored declarations collapse into one undirected link
	require.Len(t, cr.Links, 1)
	link := cr.Links[0]
	require.Equal(t, 1, link.ID)
	require.Equal(t, r1.ID, link.SourceNodeID)
	require.Equal(t, r1.Ports[0].ID, link.SourcePortID)
	require.Equal(t, r2.ID, link.DestinationNodeID)
	require.Equal(t, r2.Ports[0].ID, link.DestinationPortID)
	require.Equal(t,
		"Link from R1 port FastEthernet0/0 to R2 port FastEthernet0/0",
		link.Description)

	require.Equal(t, 1, r1.Ports[0].LinkID)
	require.Equal(t, "connected to R2 on port FastEthernet0/0", r1.Ports[0].Description)
	require.Equal(t, 1, r2.Ports[0].LinkID)
	require.Equal(t, "connected to R1 on port FastEthernet0/0", r2.Ports[0].Description)
}

func TestGenerateLinksCloudSentinel(t *testing.T) {
	raw := RawTopology{
		"10.0.0.1:7200": RawInstance{
			"Cloud C1": RawItem{"nio_gen_eth:eth0": "e0"},
		},
	}

	cr, err := CreateSession("lab").Convert(raw)
	require.NoError(t, err)
	require.Len(t, cr.Nodes, 1)

	c1 := cr.Nodes[0]
	require.Len(t, c1.Ports, 1)
	require.Equal(t, "Ethernet0", c1.Ports[0].Name)

	// the shorthand-valued attachment resolves through the sentinel back
	// to the cloud's own port
	require.Len(t, cr.Links, 1)
	link := cr.Links[0]
	require.NotEqual(t, NoID, link.DestinationNodeID)
	require.Equal(t, c1.ID, link.SourceNodeID)
	require.Equal(t, c1.ID, link.DestinationNodeID)
	require.Equal(t, c1.Ports[0].ID, link.SourcePortID)
	require.Equal(t, c1.Ports[0].ID, link.DestinationPortID)
	require.Equal(t,
		"Link from C1 port Ethernet0 to C1 port Ethernet0",
		link.Description)
	require.Equal(t, 1, c1.Ports[0].LinkID)
	require.Equal(t, "connected to C1 on port Ethernet0", c1.Ports[0].Description)
}

func TestGenerateLinksUnknownDevice(t *testing.T) {
	raw := RawTopology{
		"10.0.0.1:7200": RawInstance{
			"7200":      RawItem{"image": "c7200-image.bin"},
			"ROUTER R1": RawItem{"f0/0": "R9 f0/0"},
		},
	}

	cr, err := CreateSession("lab").Convert(raw)
	require.NoError(t, err)

	// an endpoint naming an absent device survives with unresolved ids
	require.Len(t, cr.Links, 1)
	link := cr.Links[0]
	require.Equal(t, NoID, link.DestinationNodeID)
	require.Equal(t, NoID, link.DestinationPortID)
	require.Equal(t,
		"Link from R1 port FastEthernet0/0 to R9 port FastEthernet0/0",
		link.Description)

	r1 := nodeByName(t, cr.Nodes, "R1")
	require.Equal(t, 1, r1.Ports[0].LinkID)
}

func TestGenerateLinksLab(t *testing.T) {
	cr, err := CreateSession("lab").Convert(legacyLab())
	require.NoError(t, err)
	require.Len(t, cr.Nodes, 4)
	require.Len(t, cr.Links, 2)

	r1 := nodeByName(t, cr.Nodes, "R1")
	r2 := nodeByName(t, cr.Nodes, "R2")
	c1 := nodeByName(t, cr.Nodes, "C1")

	require.Equal(t, r1.ID, cr.Links[0].SourceNodeID)
	require.Equal(t, r2.ID, cr.Links[0].DestinationNodeID)
	require.Equal(t, r2.ID, cr.Links[1].SourceNodeID)
	require.Equal(t, c1.ID, cr.Links[1].DestinationNodeID)
	require.Equal(t,
		"Link from R2 port FastEthernet0/1 to C1 port nio_gen_eth:eth0",
		cr.Links[1].Description)
}

func TestConvertDeterministic(t *testing.T) {
	first, err := CreateSession("lab").Convert(legacyLab())
	require.NoError(t, err)
	second, err := CreateSession("lab").Convert(legacyLab())
	require.NoError(t, err)

	// sessions share no state: a rerun reproduces ids and order exactly
	require.Equal(t, first.Transform(), second.Transform())
}

func TestConvertSessionReuse(t *testing.T) {
	s := CreateSession("lab")
	first, err := s.Convert(legacyLab())
	require.NoError(t, err)
	second, err := s.Convert(legacyLab())
	require.NoError(t, err)

	// a rerun starts from a clean cursor and empty accumulators
	require.Equal(t, first.Transform(), second.Transform())
	require.Equal(t, 1, second.Nodes[0].Ports[0].ID)
}

func TestConvertIDAssignment(t *testing.T) {
	cr, err := CreateSession("lab").Convert(legacyLab())
	require.NoError(t, err)

	nodeIDs := make(map[int]bool)
	portIDs := make(map[int]bool)
	total := 0
	for _, node := range cr.Nodes {
		require.False(t, nodeIDs[node.ID])
		nodeIDs[node.ID] = true
		for _, port := range node.Ports {
			require.False(t, portIDs[port.ID])
			portIDs[port.ID] = true
			total += 1
		}
	}

	// port ids are unique across the whole topology and run 1..N
	for id := 1; id <= total; id++ {
		require.True(t, portIDs[id], "missing port id %d", id)
	}

	for i, link := range cr.Links {
		require.Equal(t, i+1, link.ID)
	}
}
