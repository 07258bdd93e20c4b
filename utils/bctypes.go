package utils

import "strings"

// BCType labels a group of boundary edges for condition application
type BCType uint16

const (
	// BCNone indicates an unmarked (interior) edge
	BCNone BCType = iota

	BCInflow   // Velocity-specified inlet
	BCOutflow  // Pressure-specified outlet
	BCWall     // No-slip wall
	BCCylinder // No-slip obstacle surface
)

// String returns the string representation of a BCType
func (bc BCType) String() string {
	names := map[BCType]string{
		BCNone:     "None",
		BCInflow:   "Inflow",
		BCOutflow:  "Outflow",
		BCWall:     "Wall",
		BCCylinder: "Cylinder",
	}
	if name, ok := names[bc]; ok {
		return name
	}
	return "Unknown"
}

var BCNameMap = map[string]BCType{
	"inflow":   BCInflow,
	"in":       BCInflow,
	"outflow":  BCOutflow,
	"out":      BCOutflow,
	"wall":     BCWall,
	"walls":    BCWall,
	"cylinder": BCCylinder,
	"cyl":      BCCylinder,
}

// ParseBCType maps a boundary name from an input file to a BCType
func ParseBCType(name string) (bc BCType, ok bool) {
	bc, ok = BCNameMap[strings.ToLower(strings.TrimSpace(name))]
	return
}
