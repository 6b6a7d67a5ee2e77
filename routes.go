package topoconv

// file routes.go provides shortest path and reachability queries over a
// converted topology.  The node/link output is transformed into the data
// structures of a graph package with built-in path discovery; weighting
// every edge by 1, a shortest path minimizes hops, which is sort of what
// local routing like OSPF does.

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

// A RouteTable holds the graph representation of one converted topology and
// a cache of the shortest path trees computed so far.  Each table is
// self-contained, so tables for independent conversions never interfere.
type RouteTable struct {
	connGraph *simple.WeightedUndirectedGraph

	// gNodes[i] is the graph node for the topology node with id i
	gNodes map[int]simple.Node

	// cachedSP keys the result of computing a shortest path tree by the
	// node id of the tree's root
	cachedSP map[int]path.Shortest

	nameByID map[int]string
	idByName map[string]int
}

// CreateRouteTable builds the graph representation of a converted topology
// from its node and link sequences.  Links with an unresolved endpoint and
// self-attachments contribute no edges.
func CreateRouteTable(nodes []*Node, links []Link) *RouteTable {
	rt := new(RouteTable)
	rt.gNodes = make(map[int]simple.Node)
	rt.cachedSP = make(map[int]path.Shortest)
	rt.nameByID = make(map[int]string)
	rt.idByName = make(map[string]int)
	rt.connGraph = simple.NewWeightedUndirectedGraph(0, math.Inf(1))

	for _, node := range nodes {
		gn := simple.Node(node.ID)
		rt.gNodes[node.ID] = gn
		rt.connGraph.AddNode(gn)
		rt.nameByID[node.ID] = node.Name()
		rt.idByName[node.Name()] = node.ID
	}

	for _, link := range links {
		src := link.SourceNodeID
		dst := link.DestinationNodeID
		if src == NoID || dst == NoID || src == dst {
			continue
		}
		weightedEdge := simple.WeightedEdge{F: rt.gNodes[src], T: rt.gNodes[dst], W: 1.0}
		rt.connGraph.SetWeightedEdge(weightedEdge)
	}
	return rt
}

// getSPTree returns the shortest path tree rooted in the node with id
// 'from'.  If the tree is found in the cache it is returned, if not it is
// computed, saved, and returned.
func (rt *RouteTable) getSPTree(from int) path.Shortest {
	spTree, present := rt.cachedSP[from]
	if present {
		return spTree
	}

	spTree = path.DijkstraFrom(rt.gNodes[from], rt.connGraph)
	rt.cachedSP[from] = spTree

	return spTree
}

// convertNodeSeq extracts the topology node names from a sequence of graph
// nodes (e.g. a path) and returns that list.
func (rt *RouteTable) convertNodeSeq(nsQ []graph.Node) []string {
	rtn := []string{}
	for _, node := range nsQ {
		rtn = append(rtn, rt.nameByID[int(node.ID())])
	}
	return rtn
}

// Route returns the device names on a shortest path from the named source
// to the named destination, both ends inclusive.  An unknown name or an
// unreachable destination is an error.
func (rt *RouteTable) Route(src, dst string) ([]string, error) {
	srcID, present := rt.idByName[src]
	if !present {
		return nil, fmt.Errorf("no node named %s in route table", src)
	}
	dstID, present := rt.idByName[dst]
	if !present {
		return nil, fmt.Errorf("no node named %s in route table", dst)
	}
	if srcID == dstID {
		return []string{src}, nil
	}

	// a tree rooted in the destination serves by symmetry, with the
	// discovered path reversed
	if spTree, cached := rt.cachedSP[dstID]; cached {
		revNodeSeq, _ := spTree.To(int64(srcID))
		revRoute := rt.convertNodeSeq(revNodeSeq)
		if len(revRoute) == 0 {
			return nil, fmt.Errorf("no path from %s to %s", src, dst)
		}
		route := make([]string, len(revRoute))
		for idx := 0; idx < len(revRoute); idx++ {
			route[idx] = revRoute[len(revRoute)-idx-1]
		}
		return route, nil
	}

	spTree := rt.getSPTree(srcID)
	nodeSeq, _ := spTree.To(int64(dstID))
	route := rt.convertNodeSeq(nodeSeq)
	if len(route) == 0 {
		return nil, fmt.Errorf("no path from %s to %s", src, dst)
	}
	return route, nil
}

// ShowPath renders a route as a comma-separated list of device names.
func ShowPath(route []string) string {
	return strings.Join(route, ",")
}
