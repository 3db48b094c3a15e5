package calculix

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ManuelZ/Finite-Element-Analysis/types"
)

var ErrLengthMismatch = errors.New("node lists differ in length")

// Section comments written above each generated keyword
const (
	NodesComment     = "** MY NODES"
	FixedBaseComment = "** Name: MY BOUNDARIES"
	MovableComment   = "** MY BOUNDARIES"
	EquationsComment = "** MY EQUATIONS"
	KeywordNode      = "*Node"
	KeywordBoundary  = "*BOUNDARY"
	KeywordEquation  = "*EQUATION"
)

// Formatter is any record that renders to one or more data lines of an input deck
type Formatter interface {
	Format() string
}

func writeBlock(b *strings.Builder, comment, keyword string, records []Formatter) {
	b.WriteString(comment)
	b.WriteByte('\n')
	b.WriteString(keyword)
	b.WriteByte('\n')
	for _, r := range records {
		b.WriteString(r.Format())
		b.WriteByte('\n')
	}
}

func NodeBlock(records []NodeRecord) string {
	var b strings.Builder
	fr := make([]Formatter, len(records))
	for i, r := range records {
		fr[i] = r
	}
	writeBlock(&b, NodesComment, KeywordNode, fr)
	return b.String()
}

func BoundaryBlock(comment string, records []BoundaryRecord) string {
	var b strings.Builder
	fr := make([]Formatter, len(records))
	for i, r := range records {
		fr[i] = r
	}
	writeBlock(&b, comment, KeywordBoundary, fr)
	return b.String()
}

// EquationBlock writes all equations under a single *EQUATION keyword, each as a term count line and a term line
func EquationBlock(records []EquationRecord) string {
	var b strings.Builder
	fr := make([]Formatter, len(records))
	for i, r := range records {
		fr[i] = r
	}
	writeBlock(&b, EquationsComment, KeywordEquation, fr)
	return b.String()
}

// FixBaseRecords fixes the three translations of each node at zero
func FixBaseRecords(nodes []types.NodeID) (records []BoundaryRecord) {
	var zero float64
	records = make([]BoundaryRecord, len(nodes))
	for i, n := range nodes {
		records[i] = BoundaryRecord{Node: n, First: types.DOF_X, Last: types.DOF_Z, Value: &zero}
	}
	return
}

// ConstrainDOFsRecords fixes x and y of each node and leaves z free
func ConstrainDOFsRecords(nodes []types.NodeID) (records []BoundaryRecord) {
	records = make([]BoundaryRecord, len(nodes))
	for i, n := range nodes {
		records[i] = BoundaryRecord{Node: n, First: types.DOF_X, Last: types.DOF_Y}
	}
	return
}

/*
MPCRecords ties the z displacement of each original node to the sum of the z displacements of its base and
movable duplicates:

	-u3(node) + u3(base) + u3(movable) = 0
*/
func MPCRecords(nodes, baseNodes, movableNodes []types.NodeID) (records []EquationRecord, err error) {
	if len(nodes) != len(baseNodes) || len(nodes) != len(movableNodes) {
		err = fmt.Errorf("%w: %d nodes, %d base nodes, %d movable nodes",
			ErrLengthMismatch, len(nodes), len(baseNodes), len(movableNodes))
		return
	}
	records = make([]EquationRecord, len(nodes))
	for i := range nodes {
		records[i] = EquationRecord{Terms: []Term{
			{Node: nodes[i], DOF: types.DOF_Z, Coefficient: -1},
			{Node: baseNodes[i], DOF: types.DOF_Z, Coefficient: 1},
			{Node: movableNodes[i], DOF: types.DOF_Z, Coefficient: 1},
		}}
	}
	return
}

func FixBase(nodes []types.NodeID) string {
	return BoundaryBlock(FixedBaseComment, FixBaseRecords(nodes))
}

func ConstrainDOFs(nodes []types.NodeID) string {
	return BoundaryBlock(MovableComment, ConstrainDOFsRecords(nodes))
}

func MPC(nodes, baseNodes, movableNodes []types.NodeID) (s string, err error) {
	var records []EquationRecord
	if records, err = MPCRecords(nodes, baseNodes, movableNodes); err != nil {
		return
	}
	return EquationBlock(records), nil
}
