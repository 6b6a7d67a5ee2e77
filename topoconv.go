// Package topoconv converts a legacy, hierarchical network topology
// description (devices grouped under simulation host instances, with nested
// per-device attributes) into a flat graph of nodes, ports, and links.
//
// The conversion runs in three stages: the grouper partitions the raw
// nested mapping into per-device records and per-instance configuration
// snippets, the node builder synthesizes a node with a role-specific port
// table for each device, and the link resolver turns the network I/O
// declarations into deduplicated undirected links.  All iteration over
// unordered collections happens in sorted key order, so the node, port, and
// link id assignments are reproducible for identical input.
package topoconv

// file topoconv.go holds the conversion session: the value that owns the
// global port id cursor and the candidate link and config accumulations
// while a conversion runs, so that independent conversions never share
// state.

import (
	"errors"
	"strings"
)

// A Session owns the mutable state of one conversion: the port id cursor
// and the candidate links and configuration entries collected while the
// nodes are built.  Sessions are not safe for concurrent use, but distinct
// sessions are fully independent.
type Session struct {
	name    string
	portID  int
	links   []CandidateLink
	configs []ConfigEntry
}

// CreateSession is a constructor.  The name labels the topology the session
// produces.
func CreateSession(name string) *Session {
	s := new(Session)
	s.name = name
	s.portID = 1
	s.links = make([]CandidateLink, 0)
	s.configs = make([]ConfigEntry, 0)
	return s
}

// A ConversionResult gathers the outputs of one conversion for the
// downstream serializer: the node sequence with fully populated ports and
// link annotations, the deduplicated link sequence, the configuration
// entries passed through from the legacy records, and the regrouped
// drawing-layer artwork.
type ConversionResult struct {
	Name    string
	Nodes   []*Node
	Links   []Link
	Configs []ConfigEntry
	Notes   []ArtworkNote
	Shapes  map[string][]ArtworkShape
	Pixmaps []ArtworkPixmap
}

// Convert runs the full pipeline on a raw legacy topology.  A rerun starts
// from a clean cursor and empty accumulators, so converting the same input
// twice through one session yields identical results.
func (s *Session) Convert(raw RawTopology) (*ConversionResult, error) {
	s.portID = 1
	s.links = make([]CandidateLink, 0)
	s.configs = make([]ConfigEntry, 0)

	instances := Instances(raw)
	devices, confs, err := ProcessTopology(raw, instances)
	if err != nil {
		return nil, err
	}

	nodes := s.GenerateNodes(devices, confs)
	links := s.GenerateLinks(nodes)
	art := ProcessArtwork(raw)

	return &ConversionResult{
		Name:    s.name,
		Nodes:   nodes,
		Links:   links,
		Configs: s.configs,
		Notes:   GenerateNotes(art),
		Shapes:  GenerateShapes(art),
		Pixmaps: GeneratePixmaps(art),
	}, nil
}

// GenerateNodes builds one node per device record, in device-name sort
// order, advancing the session's port id cursor by the number of ports each
// node consumed and accumulating the candidate links and config entries the
// builders emit.
func (s *Session) GenerateNodes(devices map[string]*DeviceRecord, confs map[int]*ConfigSnippet) []*Node {
	nodes := make([]*Node, 0, len(devices))

	for _, name := range sortedKeys(devices) {
		rec := devices[name]
		node, cands, configs, used := buildNode(rec, confs[rec.HvID], s.portID)
		s.portID += used
		s.links = append(s.links, cands...)
		s.configs = append(s.configs, configs...)
		nodes = append(nodes, node)
	}
	return nodes
}

// ReportErrs transforms a list of errors into a single error with a
// comma-separated report of all the non-nil constituents, or nil if there
// are none.
func ReportErrs(errs []error) error {
	errMsg := make([]string, 0)
	for _, err := range errs {
		if err != nil {
			errMsg = append(errMsg, err.Error())
		}
	}
	if len(errMsg) == 0 {
		return nil
	}

	return errors.New(strings.Join(errMsg, ","))
}
