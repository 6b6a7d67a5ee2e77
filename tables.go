package topoconv

// file tables.go holds the static lookup tables that drive the conversion:
// the legacy keyword to device role transform, the legacy model transform,
// the adapter and WIC port matrices, the per-model motherboard port table,
// and the interface shorthand expansion table.

import (
	"regexp"
	"strings"
)

// A deviceType pairs the role of a device with its human-readable description.
type deviceType struct {
	Role string
	Desc string
}

// deviceTypes maps the keyword that introduces a legacy physical item
// (e.g. "ROUTER R1") to the role and description of the device.
var deviceTypes = map[string]deviceType{
	"ROUTER": {Role: "Router", Desc: "Router"},
	"QEMU":   {Role: "QemuVM", Desc: "Qemu VM"},
	"ASA":    {Role: "QemuVM", Desc: "Qemu VM"},
	"PIX":    {Role: "QemuVM", Desc: "Qemu VM"},
	"JUNOS":  {Role: "QemuVM", Desc: "Qemu VM"},
	"IDS":    {Role: "QemuVM", Desc: "Qemu VM"},
	"VBOX":   {Role: "VirtualBoxVM", Desc: "VirtualBox VM"},
	"FRSW":   {Role: "FrameRelaySwitch", Desc: "Frame Relay switch"},
	"ETHSW":  {Role: "EthernetSwitch", Desc: "Ethernet switch"},
	"Hub":    {Role: "EthernetHub", Desc: "Ethernet hub"},
	"ATMSW":  {Role: "ATMSwitch", Desc: "ATM switch"},
	"ATMBR":  {Role: "ATMBR", Desc: "ATM bridge"},
	"Cloud":  {Role: "Cloud", Desc: "Cloud"},
}

// modelTransform maps a legacy model keyword to the canonical model string.
// An item section whose name appears here is a configuration item rather
// than a physical device.
var modelTransform = map[string]string{
	"1700": "c1700",
	"2600": "c2600",
	"2611": "c2600",
	"2621": "c2600",
	"2691": "c2691",
	"3600": "c3600",
	"3620": "c3600",
	"3640": "c3600",
	"3660": "c3600",
	"3725": "c3725",
	"3745": "c3745",
	"7200": "c7200",
}

// canonicalModel maps a model attribute to its canonical form.  Values that
// are already canonical pass through, anything unrecognized collapses to the
// empty model.
func canonicalModel(model string) string {
	if canon, present := modelTransform[model]; present {
		return canon
	}
	for _, canon := range modelTransform {
		if model == canon {
			return model
		}
	}
	return ""
}

// An adapterDef describes the port layout of one adapter: the canonical
// interface prefix of its ports and how many ports it carries.
type adapterDef struct {
	Prefix string
	Ports  int
}

// adapterMatrix maps a slot adapter name to its port layout.
var adapterMatrix = map[string]adapterDef{
	"C7200-IO-FE":     {Prefix: "FastEthernet", Ports: 1},
	"C7200-IO-2FE":    {Prefix: "FastEthernet", Ports: 2},
	"C7200-IO-GE-E":   {Prefix: "GigabitEthernet", Ports: 1},
	"PA-FE-TX":        {Prefix: "FastEthernet", Ports: 1},
	"PA-2FE-TX":       {Prefix: "FastEthernet", Ports: 2},
	"PA-GE":           {Prefix: "GigabitEthernet", Ports: 1},
	"PA-4E":           {Prefix: "Ethernet", Ports: 4},
	"PA-8E":           {Prefix: "Ethernet", Ports: 8},
	"PA-4T+":          {Prefix: "Serial", Ports: 4},
	"PA-8T":           {Prefix: "Serial", Ports: 8},
	"PA-A1":           {Prefix: "ATM", Ports: 1},
	"PA-POS-OC3":      {Prefix: "POS", Ports: 1},
	"NM-1FE-TX":       {Prefix: "FastEthernet", Ports: 1},
	"NM-1E":           {Prefix: "Ethernet", Ports: 1},
	"NM-4E":           {Prefix: "Ethernet", Ports: 4},
	"NM-4T":           {Prefix: "Serial", Ports: 4},
	"NM-16ESW":        {Prefix: "FastEthernet", Ports: 16},
	"Leopard-2FE":     {Prefix: "FastEthernet", Ports: 2},
	"GT96100-FE":      {Prefix: "FastEthernet", Ports: 2},
	"CISCO2600-MB-1E": {Prefix: "Ethernet", Ports: 1},
	"CISCO2600-MB-2E": {Prefix: "Ethernet", Ports: 2},
	"C1700-MB-1FE":    {Prefix: "FastEthernet", Ports: 1},
}

// wicMatrix maps a WIC module name to its port layout.  WIC ports always
// live on slot 0, numbered after any motherboard ports the model supplies.
var wicMatrix = map[string]adapterDef{
	"WIC-1T":    {Prefix: "Serial", Ports: 1},
	"WIC-2T":    {Prefix: "Serial", Ports: 2},
	"WIC-1ENET": {Prefix: "Ethernet", Ports: 1},
}

// mbAdapters gives, per canonical model, the adapter that supplies the
// fixed "motherboard" ports of the chassis.  Models missing from the table
// (c7200, c3600) carry no fixed ports and take all ports from their slots.
var mbAdapters = map[string]string{
	"c1700": "C1700-MB-1FE",
	"c2600": "CISCO2600-MB-1E",
	"c2691": "GT96100-FE",
	"c3725": "GT96100-FE",
	"c3745": "GT96100-FE",
}

// implicitSlot0Adapter is the io adapter a c7200 carries in slot 0 when the
// legacy record declares none.
const implicitSlot0Adapter = "C7200-IO-FE"

// c3660Slot0Adapter is the fixed slot 0 module recorded for a c3600 with a
// 3660 chassis.  It is a property only; the legacy format synthesizes no
// ports for it.
const c3660Slot0Adapter = "Leopard-2FE"

// portTypes maps a one-letter interface shorthand to the canonical
// adapter-type name it abbreviates.
var portTypes = map[string]string{
	"G": "GigabitEthernet",
	"F": "FastEthernet",
	"E": "Ethernet",
	"A": "ATM",
	"S": "Serial",
	"P": "POS",
}

// interfaceRE recognizes shorthand interface names such as f0/0, e0 or s1/1:
// a single known letter code followed by numeric addressing.
var interfaceRE = regexp.MustCompile(`^([GFEASPgfeasp])([0-9]+(?:/[0-9]+)*)$`)

// expandPortName expands a shorthand interface name to its canonical form
// (f0/0 becomes FastEthernet0/0).  Names that do not match the shorthand
// pattern are returned unchanged.
func expandPortName(name string) string {
	m := interfaceRE.FindStringSubmatch(name)
	if m == nil {
		return name
	}
	return portTypes[strings.ToUpper(m[1])] + m[2]
}
