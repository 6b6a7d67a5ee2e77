package topoconv

// file desc.go holds the serializable representation of a converted
// topology and its readers and writers.  Serialization to json or to yaml
// is selected by the extension of the file name.

import (
	"encoding/json"
	"os"

	"gopkg.in/yaml.v3"
)

// FormatVersion marks the revision of the converted topology document.
const FormatVersion = "1.0"

// A TopologyDesc is the fully serializable form of a conversion result.
// Nodes are held by value; the pointered working form stays with the
// session that built it.
type TopologyDesc struct {
	Name    string                    `json:"name" yaml:"name"`
	Version string                    `json:"version" yaml:"version"`
	Nodes   []Node                    `json:"nodes" yaml:"nodes"`
	Links   []Link                    `json:"links" yaml:"links"`
	Configs []ConfigEntry             `json:"configs" yaml:"configs"`
	Notes   []ArtworkNote             `json:"notes" yaml:"notes"`
	Shapes  map[string][]ArtworkShape `json:"shapes" yaml:"shapes"`
	Pixmaps []ArtworkPixmap           `json:"pixmaps" yaml:"pixmaps"`
}

// Transform converts a conversion result into its serializable description.
func (cr *ConversionResult) Transform() TopologyDesc {
	td := new(TopologyDesc)
	td.Name = cr.Name
	td.Version = FormatVersion

	td.Nodes = make([]Node, len(cr.Nodes))
	for idx := 0; idx < len(cr.Nodes); idx += 1 {
		td.Nodes[idx] = *cr.Nodes[idx]
	}

	td.Links = make([]Link, len(cr.Links))
	copy(td.Links, cr.Links)

	td.Configs = make([]ConfigEntry, len(cr.Configs))
	copy(td.Configs, cr.Configs)

	td.Notes = make([]ArtworkNote, len(cr.Notes))
	copy(td.Notes, cr.Notes)

	td.Shapes = make(map[string][]ArtworkShape, len(cr.Shapes))
	for kind, group := range cr.Shapes {
		td.Shapes[kind] = append([]ArtworkShape(nil), group...)
	}

	td.Pixmaps = make([]ArtworkPixmap, len(cr.Pixmaps))
	copy(td.Pixmaps, cr.Pixmaps)

	return *td
}

// WriteToFile stores the TopologyDesc to the file whose name is given.
// Serialization to json or to yaml is selected based on the extension of
// this name.
func (td *TopologyDesc) WriteToFile(filename string) error {
	var bytes []byte
	var merr error = nil

	if IsYAML(filename) {
		bytes, merr = yaml.Marshal(*td)
	} else {
		bytes, merr = json.MarshalIndent(*td, "", "\t")
	}

	if merr != nil {
		panic(merr)
	}

	f, cerr := os.Create(filename)
	if cerr != nil {
		panic(cerr)
	}
	_, werr := f.WriteString(string(bytes[:]))
	if werr != nil {
		panic(werr)
	}
	err := f.Close()
	if err != nil {
		panic(err)
	}

	return werr
}

// ReadTopologyDesc deserializes a byte slice holding a representation of a
// TopologyDesc struct.  If the input argument of dict (those bytes) is
// empty, the file whose name is given is read to acquire them.  A
// deserialized representation is returned, or an error if one is generated
// from a file read or the deserialization.
func ReadTopologyDesc(filename string, useYAML bool, dict []byte) (*TopologyDesc, error) {
	var err error

	if len(dict) == 0 {
		dict, err = os.ReadFile(filename)
		if err != nil {
			return nil, err
		}
	}

	example := TopologyDesc{}

	if useYAML {
		err = yaml.Unmarshal(dict, &example)
	} else {
		err = json.Unmarshal(dict, &example)
	}

	if err != nil {
		return nil, err
	}

	return &example, nil
}
