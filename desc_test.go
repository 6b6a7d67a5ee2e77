package topoconv

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTopologyDescRoundTrip(t *testing.T) {
	raw := RawTopology{
		"10.0.0.1:7200": RawInstance{
			"7200": RawItem{"image": "c7200-image.bin", "ram": "256"},
			"ROUTER R1": RawItem{
				"f0/0": "R2 f0/0",
				"cnfg": "configs/r1.cfg",
				"x":    "50",
				"y":    "75",
			},
			"ROUTER R2": RawItem{"f0/0": "R1 f0/0"},
		},
		"GNS3-DATA": RawInstance{
			"NOTE 1": RawItem{"text": "lab note", "x": "5", "y": "10"},
			"SHAPE 1": RawItem{
				"type": "ellipse", "x": "20", "y": "25",
				"width": "500", "height": "250",
			},
		},
	}

	cr, err := CreateSession("lab").Convert(raw)
	require.NoError(t, err)
	td := cr.Transform()
	require.Equal(t, FormatVersion, td.Version)
	require.Len(t, td.Configs, 1)
	require.Equal(t, ConfigEntry{Device: "R1", Config: "configs/r1.cfg"}, td.Configs[0])

	filename := filepath.Join(t.TempDir(), "lab.yaml")
	require.NoError(t, td.WriteToFile(filename))

	got, err := ReadTopologyDesc(filename, IsYAML(filename), []byte{})
	require.NoError(t, err)
	require.Equal(t, td, *got)
}
