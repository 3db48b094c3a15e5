package InputParameters

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ghodss/yaml"
)

const (
	DefaultNodesFile      = "nodes.txt"
	DefaultBoundariesFile = "boundaries.txt"
	DefaultEquationsFile  = "equations.txt"
)

// Parameters obtained from the YAML job file
type MPCParameters struct {
	Title          string `yaml:"Title"`
	MeshFile       string `yaml:"MeshFile"`    // CalculiX deck holding the *NODE section
	NodeSet        string `yaml:"NodeSet"`     // Name of an *NSET in MeshFile listing the constrained nodes
	Nodes          []int  `yaml:"Nodes"`       // Explicit list of constrained nodes, exclusive with NodeSet
	FirstNodeID    int    `yaml:"FirstNodeID"` // First free node number, duplicates are numbered upward from here
	OutputDir      string `yaml:"OutputDir"`
	NodesFile      string `yaml:"NodesFile"`
	BoundariesFile string `yaml:"BoundariesFile"`
	EquationsFile  string `yaml:"EquationsFile"`
}

func NewMPCParameters() (ip *MPCParameters) {
	ip = &MPCParameters{}
	ip.SetDefaults()
	return
}

func (ip *MPCParameters) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, ip); err != nil {
		return
	}
	ip.SetDefaults()
	return
}

func (ip *MPCParameters) SetDefaults() {
	if ip.NodesFile == "" {
		ip.NodesFile = DefaultNodesFile
	}
	if ip.BoundariesFile == "" {
		ip.BoundariesFile = DefaultBoundariesFile
	}
	if ip.EquationsFile == "" {
		ip.EquationsFile = DefaultEquationsFile
	}
}

func (ip *MPCParameters) Validate() (err error) {
	switch {
	case len(ip.MeshFile) == 0:
		err = fmt.Errorf("must supply a mesh file in CalculiX (.inp) format")
	case ip.FirstNodeID <= 0:
		err = fmt.Errorf("FirstNodeID must be positive, have %d", ip.FirstNodeID)
	case len(ip.Nodes) == 0 && len(ip.NodeSet) == 0:
		err = fmt.Errorf("must supply either Nodes or NodeSet")
	case len(ip.Nodes) != 0 && len(ip.NodeSet) != 0:
		err = fmt.Errorf("Nodes and NodeSet are exclusive, have %d nodes and node set %q",
			len(ip.Nodes), ip.NodeSet)
	}
	if err != nil {
		return
	}
	for i, n := range ip.Nodes {
		if n <= 0 {
			return fmt.Errorf("Nodes[%d] = %d, node numbers must be positive", i, n)
		}
	}
	return
}

// OutputPaths returns the nodes, boundaries and equations file names joined to OutputDir
func (ip *MPCParameters) OutputPaths() (nodes, boundaries, equations string) {
	return filepath.Join(ip.OutputDir, ip.NodesFile),
		filepath.Join(ip.OutputDir, ip.BoundariesFile),
		filepath.Join(ip.OutputDir, ip.EquationsFile)
}

func (ip *MPCParameters) Print() {
	ip.Fprint(os.Stdout)
}

func (ip *MPCParameters) Fprint(w io.Writer) {
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", ip.Title)
	fmt.Fprintf(w, "[%s]\t\t= Mesh File\n", ip.MeshFile)
	if len(ip.NodeSet) != 0 {
		fmt.Fprintf(w, "[%s]\t\t\t= Node Set\n", ip.NodeSet)
	} else {
		fmt.Fprintf(w, "[%d]\t\t\t= Number of Nodes\n", len(ip.Nodes))
	}
	fmt.Fprintf(w, "[%d]\t\t\t= First Node ID\n", ip.FirstNodeID)
	nodes, boundaries, equations := ip.OutputPaths()
	fmt.Fprintf(w, "[%s]\t\t= Nodes File\n", nodes)
	fmt.Fprintf(w, "[%s]\t= Boundaries File\n", boundaries)
	fmt.Fprintf(w, "[%s]\t\t= Equations File\n", equations)
}
