package topoconv

// file node.go holds the node, port, and candidate link structures and the
// node builder: the stage that turns one device record at a time into a
// node with a fully populated port table, emitting candidate links for the
// roles that declare network I/O.

import (
	"fmt"
	"strconv"
	"strings"
)

// NoID marks a node or port reference that could not be resolved.  Real
// identifiers start at 1.
const NoID = 0

// NIODevice is the sentinel destination of a candidate link that attaches
// to a cloud port by port name rather than to a named device.
const NIODevice = "NIO"

// label placement relative to the node, carried over from the legacy format
const (
	labelOffsetX = 19.5
	labelOffsetY = -25.0
)

// A Port is one attachment point of a node.  Port ids are unique across the
// whole topology and strictly increase in creation order.  LinkID and
// Description stay empty until the link resolver back-annotates them.
type Port struct {
	ID          int    `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	LinkID      int    `json:"link_id,omitempty" yaml:"linkid,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// A Label carries the display text of a node and its offset from the node
// position.
type Label struct {
	Text string  `json:"text" yaml:"text"`
	X    float64 `json:"x" yaml:"x"`
	Y    float64 `json:"y" yaml:"y"`
}

// A Node is one device of the converted topology.  It is owned by the node
// builder once created; the link resolver mutates it only to attach link
// ids and descriptions to individual ports.
type Node struct {
	ID          int               `json:"id" yaml:"id"`
	Type        string            `json:"type" yaml:"type"`
	Description string            `json:"description" yaml:"description"`
	Model       string            `json:"model,omitempty" yaml:"model,omitempty"`
	X           float64           `json:"x" yaml:"x"`
	Y           float64           `json:"y" yaml:"y"`
	Label       Label             `json:"label" yaml:"label"`
	RouterID    int               `json:"router_id,omitempty" yaml:"routerid,omitempty"`
	Properties  map[string]string `json:"properties" yaml:"properties"`
	Ports       []Port            `json:"ports" yaml:"ports"`
}

// Name returns the device name the node was built from.
func (n *Node) Name() string {
	return n.Properties["name"]
}

// findPort returns the port with the given name, or nil.
func (n *Node) findPort(name string) *Port {
	for i := range n.Ports {
		if n.Ports[i].Name == name {
			return &n.Ports[i]
		}
	}
	return nil
}

// portByID returns the port with the given id, or nil.
func (n *Node) portByID(id int) *Port {
	for i := range n.Ports {
		if n.Ports[i].ID == id {
			return &n.Ports[i]
		}
	}
	return nil
}

// addPort appends a port named as given, drawing its id from the cursor.
// A name already present on the node is not added twice.
func (n *Node) addPort(cursor *int, name string) *Port {
	if p := n.findPort(name); p != nil {
		return p
	}
	n.Ports = append(n.Ports, Port{ID: *cursor, Name: name})
	*cursor += 1
	return &n.Ports[len(n.Ports)-1]
}

// A CandidateLink is one raw, not yet resolved adjacency emitted while
// building a router or cloud node.  DestDev names the remote device, or is
// the NIODevice sentinel; DestPort is the remote port name pre-expansion.
type CandidateLink struct {
	SrcDev      string
	SrcNodeID   int
	SrcPortID   int
	SrcPortName string
	DestDev     string
	DestPort    string
}

// A NetIODef is one network I/O declaration of a device: the local port it
// belongs to and the remote endpoint it names.
type NetIODef struct {
	Port     string
	DestDev  string
	DestPort string
}

// RouterRecord is the router-specific view of a device record: slot and WIC
// assignments, the boot image, the chassis variant, network I/O entries,
// and whatever generic attributes remain.
type RouterRecord struct {
	Chassis string
	Image   string
	Slots   map[string]string
	Wics    map[string]string
	NetIO   []NetIODef
	Extra   map[string]string
}

// CloudRecord is the cloud-specific view of a device record.
type CloudRecord struct {
	NetIO []NetIODef
	Extra map[string]string
}

// GenericRecord is the view of a device record for roles without special
// port layout rules.
type GenericRecord struct {
	Extra map[string]string
}

// splitRouterRecord classifies the attributes of a router record into the
// typed router view.  Keys matching the shorthand interface pattern are
// network I/O entries, slot*/wic* keys are adapter assignments, everything
// else passes through.
func splitRouterRecord(rec *DeviceRecord) *RouterRecord {
	rr := &RouterRecord{
		Slots: make(map[string]string),
		Wics:  make(map[string]string),
		Extra: make(map[string]string),
	}
	for _, key := range sortedKeys(rec.Attrs) {
		value := rec.Attrs[key]
		switch {
		case key == "cnfg":
			// routed into the config entries by the builder
		case key == "chassis":
			rr.Chassis = value
			rr.Extra[key] = value
		case key == "image":
			rr.Image = value
			rr.Extra[key] = value
		case strings.HasPrefix(key, "slot"):
			rr.Slots[key] = value
		case strings.HasPrefix(key, "wic"):
			rr.Wics[key] = value
		case interfaceRE.MatchString(key):
			if def, ok := parseNetIO(key, value); ok {
				rr.NetIO = append(rr.NetIO, def)
			}
		default:
			rr.Extra[key] = value
		}
	}
	return rr
}

// parseNetIO interprets a router network I/O value.  "DEV PORT" points at a
// named device, a single token points at an external cloud-attached port
// through the NIO sentinel.
func parseNetIO(port, value string) (NetIODef, bool) {
	fields := strings.Fields(value)
	switch len(fields) {
	case 0:
		return NetIODef{}, false
	case 1:
		return NetIODef{Port: port, DestDev: NIODevice, DestPort: fields[0]}, true
	default:
		return NetIODef{Port: port, DestDev: fields[0], DestPort: fields[1]}, true
	}
}

// splitCloudRecord classifies the attributes of a cloud record.  Keys with
// the nio prefix declare the cloud's attachment points: a bare key is a
// port only, a "DEV PORT" value also links it to a named device, and a
// single-token value names the cloud's own port (possibly in shorthand)
// and links through the NIO sentinel.
func splitCloudRecord(rec *DeviceRecord) *CloudRecord {
	cr := &CloudRecord{Extra: make(map[string]string)}
	for _, key := range sortedKeys(rec.Attrs) {
		value := rec.Attrs[key]
		switch {
		case key == "cnfg":
		case strings.HasPrefix(key, "nio"):
			fields := strings.Fields(value)
			switch len(fields) {
			case 0:
				cr.NetIO = append(cr.NetIO, NetIODef{Port: key})
			case 1:
				cr.NetIO = append(cr.NetIO, NetIODef{
					Port:     expandPortName(fields[0]),
					DestDev:  NIODevice,
					DestPort: fields[0],
				})
			default:
				cr.NetIO = append(cr.NetIO, NetIODef{
					Port:     key,
					DestDev:  fields[0],
					DestPort: fields[1],
				})
			}
		default:
			cr.Extra[key] = value
		}
	}
	return cr
}

// splitGenericRecord classifies the attributes of a record whose role has
// no special port layout rules.
func splitGenericRecord(rec *DeviceRecord) *GenericRecord {
	gr := &GenericRecord{Extra: make(map[string]string)}
	for _, key := range sortedKeys(rec.Attrs) {
		if key == "cnfg" {
			continue
		}
		gr.Extra[key] = rec.Attrs[key]
	}
	return gr
}

// buildNode constructs the node for one device record.  portID is the next
// free global port id; the returned count tells the caller how many ids the
// node consumed so it can advance the shared cursor.  Missing model or type
// information degrades to defaults, it never fails the conversion.
func buildNode(rec *DeviceRecord, conf *ConfigSnippet, portID int) (*Node, []CandidateLink, []ConfigEntry, int) {
	node := &Node{
		ID:          rec.NodeID,
		Type:        rec.Type,
		Description: describeDevice(rec),
		Model:       rec.Model,
		X:           rec.X,
		Y:           rec.Y,
		Label:       Label{Text: rec.Name, X: labelOffsetX, Y: labelOffsetY},
		Properties:  map[string]string{"name": rec.Name},
		Ports:       make([]Port, 0),
	}

	cursor := portID
	var cands []CandidateLink
	var configs []ConfigEntry

	if cnfg, present := rec.Attrs["cnfg"]; present {
		configs = append(configs, ConfigEntry{Device: rec.Name, Config: cnfg})
	}

	switch rec.Type {
	case "Router":
		rr := splitRouterRecord(rec)
		copyProperties(node, rr.Extra)
		copyProperties(node, rr.Slots)
		copyProperties(node, rr.Wics)
		mergeInstanceDefaults(node, rr, conf)
		node.RouterID = rec.NodeID

		addMotherboardPorts(node, &cursor, rec.Model)
		addSlotPorts(node, &cursor, rr.Slots)
		addWicPorts(node, &cursor, rr.Wics)
		applyChassisDefaults(node, &cursor, rec, rr)
		cands = routerCandidates(node, rec.Name, rr.NetIO)

	case "Cloud":
		cr := splitCloudRecord(rec)
		copyProperties(node, cr.Extra)
		for _, def := range cr.NetIO {
			port := node.addPort(&cursor, def.Port)
			if def.DestDev == "" {
				continue
			}
			cands = append(cands, CandidateLink{
				SrcDev:      rec.Name,
				SrcNodeID:   node.ID,
				SrcPortID:   port.ID,
				SrcPortName: port.Name,
				DestDev:     def.DestDev,
				DestPort:    def.DestPort,
			})
		}

	default:
		gr := splitGenericRecord(rec)
		copyProperties(node, gr.Extra)
		// numeric attribute keys of switch-like devices are port mappings
		for _, key := range sortedKeys(gr.Extra) {
			if _, err := strconv.Atoi(key); err == nil {
				node.addPort(&cursor, key)
			}
		}
	}

	return node, cands, configs, cursor - portID
}

// describeDevice renders the human-readable description of a device from
// its role and model; an unknown model leaves the bare role description.
func describeDevice(rec *DeviceRecord) string {
	if rec.Model == "" {
		return rec.Desc
	}
	return rec.Desc + " " + rec.Model
}

// copyProperties copies attributes verbatim into the node properties, in
// sorted key order.
func copyProperties(node *Node, attrs map[string]string) {
	for _, key := range sortedKeys(attrs) {
		node.Properties[key] = attrs[key]
	}
}

// mergeInstanceDefaults fills router properties the record left unset from
// the defaults its host instance configuration declares.
func mergeInstanceDefaults(node *Node, rr *RouterRecord, conf *ConfigSnippet) {
	if conf == nil {
		return
	}
	if rr.Image == "" && conf.Image != "" {
		node.Properties["image"] = conf.Image
	}
	if _, present := node.Properties["ram"]; !present && conf.RAM > 0 {
		node.Properties["ram"] = strconv.Itoa(conf.RAM)
	}
}

// addMotherboardPorts synthesizes the fixed chassis ports the model carries.
func addMotherboardPorts(node *Node, cursor *int, model string) {
	adapter, present := mbAdapters[model]
	if !present {
		return
	}
	def := adapterMatrix[adapter]
	for i := 0; i < def.Ports; i++ {
		node.addPort(cursor, fmt.Sprintf("%s0/%d", def.Prefix, i))
	}
}

// addSlotPorts expands the slot adapter assignments into ports, slots in
// sorted key order.
func addSlotPorts(node *Node, cursor *int, slots map[string]string) {
	for _, key := range sortedKeys(slots) {
		slot, err := strconv.Atoi(strings.TrimPrefix(key, "slot"))
		if err != nil {
			continue
		}
		addAdapterPorts(node, cursor, slot, slots[key])
	}
}

// addAdapterPorts expands one slot adapter into ports.  Unknown adapters
// contribute no ports; port names the node already owns are not added
// twice.
func addAdapterPorts(node *Node, cursor *int, slot int, adapter string) {
	def, present := adapterMatrix[adapter]
	if !present {
		return
	}
	for i := 0; i < def.Ports; i++ {
		node.addPort(cursor, fmt.Sprintf("%s%d/%d", def.Prefix, slot, i))
	}
}

// applyChassisDefaults applies the legacy hard-coded defaults after the
// declared slot and WIC expansion, so default ports take the highest ids on
// the node: a c7200 always carries an io adapter in slot 0 (the declared
// adapter wins when present, and re-expanding it adds nothing), a c3600
// with a 3660 chassis records its fixed slot 0 module as a property without
// synthesizing ports.
func applyChassisDefaults(node *Node, cursor *int, rec *DeviceRecord, rr *RouterRecord) {
	switch {
	case rec.Model == "c7200":
		adapter, declared := rr.Slots["slot0"]
		if !declared {
			adapter = implicitSlot0Adapter
			node.Properties["slot0"] = adapter
		}
		addAdapterPorts(node, cursor, 0, adapter)
	case rec.Model == "c3600" && rr.Chassis == "3660":
		node.Properties["slot0"] = c3660Slot0Adapter
	}
}

// addWicPorts expands WIC module assignments into slot 0 ports, numbered
// after any same-prefix ports the chassis already supplied.
func addWicPorts(node *Node, cursor *int, wics map[string]string) {
	for _, key := range sortedKeys(wics) {
		def, present := wicMatrix[wics[key]]
		if !present {
			continue
		}
		for i := 0; i < def.Ports; i++ {
			next := countSlot0Ports(node, def.Prefix)
			node.addPort(cursor, fmt.Sprintf("%s0/%d", def.Prefix, next))
		}
	}
}

// countSlot0Ports counts the node's existing slot 0 ports with the given
// interface prefix.
func countSlot0Ports(node *Node, prefix string) int {
	count := 0
	for i := range node.Ports {
		if strings.HasPrefix(node.Ports[i].Name, prefix+"0/") {
			count += 1
		}
	}
	return count
}

// routerCandidates emits one candidate link per network I/O entry, pointing
// from the node's matching port at the not yet resolved remote endpoint.
// An entry naming a port the node does not own is dropped.
func routerCandidates(node *Node, device string, netIO []NetIODef) []CandidateLink {
	var cands []CandidateLink
	for _, def := range netIO {
		srcName := expandPortName(def.Port)
		port := node.findPort(srcName)
		if port == nil {
			continue
		}
		cands = append(cands, CandidateLink{
			SrcDev:      device,
			SrcNodeID:   node.ID,
			SrcPortID:   port.ID,
			SrcPortName: srcName,
			DestDev:     def.DestDev,
			DestPort:    def.DestPort,
		})
	}
	return cands
}
