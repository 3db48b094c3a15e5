package mpc

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ManuelZ/Finite-Element-Analysis/InputParameters"
	"github.com/ManuelZ/Finite-Element-Analysis/calculix"
	"github.com/ManuelZ/Finite-Element-Analysis/readfiles"
	"github.com/ManuelZ/Finite-Element-Analysis/types"
)

/*
Result holds everything generated for one set of constrained nodes.
Nodes[i], BaseNodes[i] and MovableNodes[i] belong together: the base and movable duplicates sit on Nodes[i],
the base duplicate is fixed, the movable duplicate may only move in z, and an equation makes the z displacement
of Nodes[i] the sum of the two.
*/
type Result struct {
	Nodes, BaseNodes, MovableNodes []types.NodeID
	BaseRecords, MovableRecords    []calculix.NodeRecord
	FixedBase, Movable             []calculix.BoundaryRecord
	Equations                      []calculix.EquationRecord
	// Deck fragments, one per output file
	NodesText, BoundariesText, EquationsText string
}

type OutputFiles struct {
	Nodes, Boundaries, Equations string
}

func NewOutputFiles(ip *InputParameters.MPCParameters) (of OutputFiles) {
	of.Nodes, of.Boundaries, of.Equations = ip.OutputPaths()
	return
}

// Generate builds all records and deck fragments in memory, base duplicates numbered from firstNodeID and
// movable duplicates directly after them
func Generate(nt *types.NodeTable, queryNodes []types.NodeID, firstNodeID types.NodeID) (r *Result, err error) {
	r = &Result{Nodes: queryNodes}
	if r.BaseRecords, r.BaseNodes, err = GenNodes(firstNodeID, queryNodes, nt); err != nil {
		return nil, err
	}
	movableStart := firstNodeID + types.NodeID(len(r.BaseNodes))
	if r.MovableRecords, r.MovableNodes, err = GenNodes(movableStart, queryNodes, nt); err != nil {
		return nil, err
	}
	r.FixedBase = calculix.FixBaseRecords(r.BaseNodes)
	r.Movable = calculix.ConstrainDOFsRecords(r.MovableNodes)
	if r.Equations, err = calculix.MPCRecords(r.Nodes, r.BaseNodes, r.MovableNodes); err != nil {
		return nil, err
	}
	r.NodesText = calculix.NodeBlock(r.BaseRecords) + calculix.NodeBlock(r.MovableRecords)
	r.BoundariesText = calculix.BoundaryBlock(calculix.FixedBaseComment, r.FixedBase) +
		calculix.BoundaryBlock(calculix.MovableComment, r.Movable)
	r.EquationsText = calculix.EquationBlock(r.Equations)
	return
}

func (r *Result) WriteFiles(of OutputFiles) (err error) {
	for _, f := range []struct{ name, text string }{
		{of.Nodes, r.NodesText},
		{of.Boundaries, r.BoundariesText},
		{of.Equations, r.EquationsText},
	} {
		if err = os.WriteFile(f.name, []byte(f.text), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", f.name, err)
		}
	}
	return
}

// WriteTo writes the three fragments one after the other, used for dry runs
func (r *Result) WriteTo(w io.Writer) (n int64, err error) {
	var m int
	for _, text := range []string{r.NodesText, r.BoundariesText, r.EquationsText} {
		m, err = io.WriteString(w, text)
		n += int64(m)
		if err != nil {
			return
		}
	}
	return
}

// QueryNodes returns the constrained nodes of a job, either listed explicitly or read from a node set of the mesh
func QueryNodes(ip *InputParameters.MPCParameters) (nodes []types.NodeID, err error) {
	if len(ip.NodeSet) == 0 {
		return types.NewNodeIDs(ip.Nodes), nil
	}
	return readfiles.ReadCalculixNodeSetFile(ip.MeshFile, ip.NodeSet)
}

// Prepare reads the mesh and generates the result of a job without writing anything
func Prepare(ip *InputParameters.MPCParameters, logger *slog.Logger) (r *Result, err error) {
	var (
		nt    *types.NodeTable
		query []types.NodeID
	)
	if err = ip.Validate(); err != nil {
		return
	}
	if nt, err = readfiles.ReadCalculixNodesFile(ip.MeshFile); err != nil {
		return nil, fmt.Errorf("reading mesh %s: %w", ip.MeshFile, err)
	}
	logger.Info("read mesh nodes", "file", ip.MeshFile, "nodes", nt.Len(), "sectionFound", nt.SectionFound)
	if query, err = QueryNodes(ip); err != nil {
		return nil, fmt.Errorf("reading node set %s: %w", ip.NodeSet, err)
	}
	if len(query) == 0 {
		logger.Warn("no nodes to constrain", "nodeSet", ip.NodeSet)
	}
	if ids := nt.SortedIDs(); len(ids) != 0 && types.NodeID(ip.FirstNodeID) <= ids[len(ids)-1] {
		logger.Warn("first node id is not above the highest mesh node, duplicates may collide",
			"firstNodeID", ip.FirstNodeID, "maxNodeID", ids[len(ids)-1])
	}
	if r, err = Generate(nt, query, types.NodeID(ip.FirstNodeID)); err != nil {
		return nil, err
	}
	cs := Assemble(r.Equations)
	if err = cs.Validate(); err != nil {
		return nil, err
	}
	nr, nc := cs.Dims()
	logger.Info("generated constraints", "nodes", len(r.Nodes),
		"baseNodes", fmt.Sprintf("%d-%d", ip.FirstNodeID, ip.FirstNodeID+len(r.BaseNodes)-1),
		"equations", nr, "dofs", nc, "nnz", cs.NNZ())
	return
}

// Run executes a job end to end, writing the nodes, boundaries and equations files
func Run(ip *InputParameters.MPCParameters, logger *slog.Logger) (r *Result, err error) {
	if r, err = Prepare(ip, logger); err != nil {
		return
	}
	of := NewOutputFiles(ip)
	if len(ip.OutputDir) != 0 {
		if err = os.MkdirAll(ip.OutputDir, 0755); err != nil {
			return nil, err
		}
	}
	if err = r.WriteFiles(of); err != nil {
		return nil, err
	}
	logger.Info("wrote deck fragments", "nodes", of.Nodes, "boundaries", of.Boundaries, "equations", of.Equations)
	return
}
