package topoconv

// file legacy.go holds the raw legacy topology representation and the
// grouping stage that partitions it into per-device records and
// per-instance configuration snippets.

import (
	"encoding/json"
	"fmt"
	"net/netip"
	"os"
	"path"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// RawItem holds the attributes of one named item in a legacy section.
type RawItem map[string]string

// RawInstance maps the item names of one host instance to their attributes.
type RawInstance map[string]RawItem

// RawTopology is the nested raw mapping produced by the configuration
// loading collaborator: host-instance key to item name to attributes.
type RawTopology map[string]RawInstance

// A DeviceRecord accumulates the physical attributes contributed to one
// device name, independent of which host instances supplied them.
type DeviceRecord struct {
	Name   string
	Type   string // role keyword, e.g. "Router", "Cloud"
	Desc   string
	From   string // legacy keyword that introduced the device
	Model  string // canonical model, possibly empty
	X      float64
	Y      float64
	HvID   int // index of the host instance in the sorted instance list
	NodeID int
	Attrs  map[string]string
}

// A ConfigSnippet holds the defaults a host-instance configuration item
// declares for the devices running under that instance.
type ConfigSnippet struct {
	HvID  int
	Model string
	Image string
	RAM   int
	Extra map[string]string
}

// A ConfigEntry carries one device's configuration reference through to the
// output layer unmodified.
type ConfigEntry struct {
	Device string `json:"name" yaml:"name"`
	Config string `json:"cnfg" yaml:"cnfg"`
}

// Instances returns, in sorted order, the topology keys that identify host
// instances: an address and port separated by a colon, where the address
// parses as an IP address and the port as a number.  Every other top-level
// section is ignored.
func Instances(raw RawTopology) []string {
	instances := make([]string, 0, len(raw))
	for _, key := range sortedKeys(raw) {
		delim := strings.LastIndex(key, ":")
		if delim < 0 {
			continue
		}
		if _, err := netip.ParseAddr(key[:delim]); err != nil {
			continue
		}
		if _, err := strconv.Atoi(key[delim+1:]); err != nil {
			continue
		}
		instances = append(instances, key)
	}
	return instances
}

// ProcessTopology partitions the raw mapping into device records and
// configuration snippets.  Host instances are visited in the given (sorted)
// order and item names in sorted order within each instance, so node id
// assignment is reproducible for identical input.  An item whose name
// appears in the model transform table is a configuration item; anything
// else must be a physical item with a recognizable "KEYWORD name" heading.
// Malformed items are gathered and reported in one aggregated error.
func ProcessTopology(raw RawTopology, instances []string) (map[string]*DeviceRecord, map[int]*ConfigSnippet, error) {
	devices := make(map[string]*DeviceRecord)
	confs := make(map[int]*ConfigSnippet)
	nextNodeID := 1
	errList := make([]error, 0)

	for hvID, instance := range instances {
		for _, item := range sortedKeys(raw[instance]) {
			attrs := raw[instance][item]
			if canon, present := modelTransform[item]; present {
				addConfItem(confs, hvID, canon, attrs)
				continue
			}
			if err := addPhysicalItem(devices, confs, hvID, &nextNodeID, item, attrs); err != nil {
				errList = append(errList, err)
			}
		}
	}
	if err := ReportErrs(errList); err != nil {
		return nil, nil, err
	}
	return devices, confs, nil
}

// addConfItem merges one configuration item into the snippet of its host
// instance.
func addConfItem(confs map[int]*ConfigSnippet, hvID int, model string, attrs RawItem) {
	snippet, present := confs[hvID]
	if !present {
		snippet = &ConfigSnippet{HvID: hvID, Extra: make(map[string]string)}
		confs[hvID] = snippet
	}
	snippet.Model = model

	for _, key := range sortedKeys(attrs) {
		value := attrs[key]
		switch key {
		case "image":
			snippet.Image = value
		case "ram":
			if ram, err := strconv.Atoi(value); err == nil {
				snippet.RAM = ram
			}
		default:
			snippet.Extra[key] = value
		}
	}
}

// addPhysicalItem merges one physical item into the record of the device it
// names, creating the record (and assigning the next node id) on first
// sight.  Later contributions update the same record, last write wins per
// attribute key.
func addPhysicalItem(devices map[string]*DeviceRecord, confs map[int]*ConfigSnippet,
	hvID int, nextNodeID *int, item string, attrs RawItem) error {

	keyword, name, found := strings.Cut(item, " ")
	dt, known := deviceTypes[keyword]
	if !found || !known || len(name) == 0 {
		return fmt.Errorf("unrecognized topology item %q", item)
	}

	rec, present := devices[name]
	if !present {
		rec = &DeviceRecord{
			Name:   name,
			Type:   dt.Role,
			Desc:   dt.Desc,
			From:   keyword,
			NodeID: *nextNodeID,
			Attrs:  make(map[string]string),
		}
		*nextNodeID += 1
		devices[name] = rec
	}
	rec.HvID = hvID

	for _, key := range sortedKeys(attrs) {
		value := attrs[key]
		switch key {
		case "model":
			rec.Model = canonicalModel(value)
		case "x":
			if x, err := strconv.ParseFloat(value, 64); err == nil {
				rec.X = x
			}
		case "y":
			if y, err := strconv.ParseFloat(value, 64); err == nil {
				rec.Y = y
			}
		default:
			rec.Attrs[key] = value
		}
	}

	// a device that does not declare its own model inherits the model its
	// host instance configuration declares
	if rec.Model == "" {
		if snippet, ok := confs[hvID]; ok {
			rec.Model = snippet.Model
		}
	}
	return nil
}

// ReadRawTopology deserializes a byte slice holding a raw legacy topology.
// If the input argument of dict (those bytes) is empty, the file whose name
// is given is read to acquire them.  The deserialized mapping is returned,
// or an error if one is generated from a file read or the deserialization.
func ReadRawTopology(filename string, useYAML bool, dict []byte) (RawTopology, error) {
	var err error

	if len(dict) == 0 {
		dict, err = os.ReadFile(filename)
		if err != nil {
			return nil, err
		}
	}

	example := RawTopology{}

	if useYAML {
		err = yaml.Unmarshal(dict, &example)
	} else {
		err = json.Unmarshal(dict, &example)
	}

	if err != nil {
		return nil, err
	}

	return example, nil
}

// IsYAML reports whether the extension of the given file name selects yaml
// rather than json serialization.
func IsYAML(filename string) bool {
	ext := path.Ext(filename)
	return ext == ".yaml" || ext == ".YAML" || ext == ".yml"
}

// sortedKeys returns the keys of the map in sorted order.  Sorted iteration
// at every grouping boundary is what makes node, port, and link id
// assignment reproducible.
func sortedKeys[V any, M ~map[string]V](m M) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}
