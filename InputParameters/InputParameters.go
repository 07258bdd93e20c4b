package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type InputParameters2D struct {
	Title          string                        `yaml:"Title"`
	Case           string                        `yaml:"Case"` // "Cylinder" or "Channel"
	Rho            float64                       `yaml:"Rho"`
	Mu             float64                       `yaml:"Mu"`
	Dt             float64                       `yaml:"Dt"`
	FinalTime      float64                       `yaml:"FinalTime"`
	MeshH          float64                       `yaml:"MeshH"`
	Um             float64                       `yaml:"Um"` // Peak inflow velocity
	OutputInterval int                           `yaml:"OutputInterval"`
	OutputDir      string                        `yaml:"OutputDir"`
	OutputPrefix   string                        `yaml:"OutputPrefix"`
	BCs            map[string]map[string]float64 `yaml:"BCs"` // First key is BC name, second is parameter name
}

func (ip *InputParameters2D) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

// SetDefaults fills unset fields with the cylinder benchmark values
func (ip *InputParameters2D) SetDefaults() {
	if ip.Case == "" {
		ip.Case = "Cylinder"
	}
	if ip.Rho == 0 {
		ip.Rho = 1
	}
	if ip.Mu == 0 {
		ip.Mu = 0.001
	}
	if ip.Dt == 0 {
		ip.Dt = 1. / 1600.
	}
	if ip.FinalTime == 0 {
		ip.FinalTime = 5
	}
	if ip.MeshH == 0 {
		ip.MeshH = 0.025
	}
	if ip.Um == 0 {
		ip.Um = 1.5
	}
	if ip.OutputInterval == 0 {
		ip.OutputInterval = 40
	}
	if ip.OutputDir == "" {
		ip.OutputDir = "output"
	}
	if ip.OutputPrefix == "" {
		ip.OutputPrefix = "flow"
	}
}

func (ip *InputParameters2D) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t\t= Case\n", ip.Case)
	fmt.Printf("%8.5f\t\t= Rho\n", ip.Rho)
	fmt.Printf("%8.5f\t\t= Mu\n", ip.Mu)
	fmt.Printf("%8.5f\t\t= Dt\n", ip.Dt)
	fmt.Printf("%8.5f\t\t= FinalTime\n", ip.FinalTime)
	fmt.Printf("%8.5f\t\t= MeshH\n", ip.MeshH)
	fmt.Printf("%8.5f\t\t= Um\n", ip.Um)
	fmt.Printf("[%d]\t\t\t= OutputInterval\n", ip.OutputInterval)
	keys := make([]string, len(ip.BCs))
	i := 0
	for k := range ip.BCs {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("BCs[%s] = %v\n", key, ip.BCs[key])
	}
}
