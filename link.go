package topoconv

// file link.go holds the link resolver: the stage that expands shorthand
// destination port names, resolves candidate links against the finished
// node set, deduplicates mirrored declarations into single undirected
// links, and back-annotates the endpoint ports.

import "fmt"

// A Link is one resolved, deduplicated adjacency of the converted topology.
// Ids are sequential from 1 in post-dedup order.  An endpoint that could
// not be resolved carries NoID node and port ids; the caller decides
// whether that is a hard failure.
type Link struct {
	ID                int    `json:"id" yaml:"id"`
	SourceNodeID      int    `json:"source_node_id" yaml:"sourcenodeid"`
	SourcePortID      int    `json:"source_port_id" yaml:"sourceportid"`
	DestinationNodeID int    `json:"destination_node_id" yaml:"destinationnodeid"`
	DestinationPortID int    `json:"destination_port_id" yaml:"destinationportid"`
	Description       string `json:"description" yaml:"description"`
}

// GenerateLinks resolves the candidate links accumulated while the nodes
// were built.  The candidates are visited in node-processing order, so link
// id assignment is reproducible for identical input.
func (s *Session) GenerateLinks(nodes []*Node) []Link {
	resolved := make([]Link, 0, len(s.links))

	for _, cand := range s.links {
		destPort := expandPortName(cand.DestPort)
		destNodeID, destName, destPortID := resolveEndpoint(cand.DestDev, destPort, nodes)

		desc := fmt.Sprintf("Link from %s port %s to %s port %s",
			cand.SrcDev, cand.SrcPortName, destName, destPort)

		resolved = append(resolved, Link{
			SourceNodeID:      cand.SrcNodeID,
			SourcePortID:      cand.SrcPortID,
			DestinationNodeID: destNodeID,
			DestinationPortID: destPortID,
			Description:       desc,
		})
	}

	// Two links describe the same undirected edge when one's source
	// endpoint pair equals the other's destination pair.  Mark the
	// later-indexed duplicate of each pair, then filter in one pass;
	// the collection being scanned is never mutated.
	removed := make([]bool, len(resolved))
	for i := range resolved {
		if removed[i] {
			continue
		}
		for j := i + 1; j < len(resolved); j++ {
			if removed[j] {
				continue
			}
			if resolved[i].SourceNodeID == resolved[j].DestinationNodeID &&
				resolved[i].SourcePortID == resolved[j].DestinationPortID {
				removed[j] = true
				break
			}
		}
	}

	links := make([]Link, 0, len(resolved))
	linkID := 1
	for i := range resolved {
		if removed[i] {
			continue
		}
		resolved[i].ID = linkID
		linkID += 1
		links = append(links, resolved[i])
	}

	for i := range links {
		annotatePorts(&links[i], nodes)
	}
	return links
}

// resolveEndpoint converts a destination device and (expanded) port name to
// concrete node and port ids.  A named device is matched by node name; the
// NIO sentinel is matched against the first cloud node's ports.  Unmatched
// device or port names resolve to NoID rather than an error.
func resolveEndpoint(destDev, destPort string, nodes []*Node) (int, string, int) {
	nodeID := NoID
	portID := NoID
	name := destDev

	if destDev != NIODevice {
		for _, node := range nodes {
			if node.Name() != destDev {
				continue
			}
			nodeID = node.ID
			if port := node.findPort(destPort); port != nil {
				portID = port.ID
			}
			break
		}
		return nodeID, name, portID
	}

	// the sentinel stops at the first cloud whether or not its ports
	// match, as the legacy behavior did
	for _, node := range nodes {
		if node.Type != "Cloud" {
			continue
		}
		if port := node.findPort(destPort); port != nil {
			nodeID = node.ID
			portID = port.ID
			name = node.Name()
		}
		break
	}
	return nodeID, name, portID
}

// annotatePorts writes the link id and a peer-oriented description onto
// both endpoint ports of a surviving link.  Endpoints that resolved to
// NoID are left untouched.
func annotatePorts(link *Link, nodes []*Node) {
	srcDesc := fmt.Sprintf("connected to %s on port %s",
		nodeNameFromID(link.DestinationNodeID, nodes),
		portNameFromID(link.DestinationNodeID, link.DestinationPortID, nodes))
	destDesc := fmt.Sprintf("connected to %s on port %s",
		nodeNameFromID(link.SourceNodeID, nodes),
		portNameFromID(link.SourceNodeID, link.SourcePortID, nodes))

	setPortLink(nodes, link.SourceNodeID, link.SourcePortID, link.ID, srcDesc)
	setPortLink(nodes, link.DestinationNodeID, link.DestinationPortID, link.ID, destDesc)
}

// setPortLink attaches link metadata to one port, identified by node and
// port id.
func setPortLink(nodes []*Node, nodeID, portID, linkID int, desc string) {
	if nodeID == NoID || portID == NoID {
		return
	}
	for _, node := range nodes {
		if node.ID != nodeID {
			continue
		}
		if port := node.portByID(portID); port != nil {
			port.LinkID = linkID
			port.Description = desc
		}
		return
	}
}

// nodeNameFromID returns the name of the node with the given id, or the
// empty string.
func nodeNameFromID(nodeID int, nodes []*Node) string {
	for _, node := range nodes {
		if node.ID == nodeID {
			return node.Name()
		}
	}
	return ""
}

// portNameFromID returns the name of a port given its node and port ids,
// or the empty string.
func portNameFromID(nodeID, portID int, nodes []*Node) string {
	for _, node := range nodes {
		if node.ID != nodeID {
			continue
		}
		if port := node.portByID(portID); port != nil {
			return port.Name
		}
	}
	return ""
}
