package types

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// NodeID is a node number in the CalculiX numbering scheme
type NodeID int

// Point is a node location, copied verbatim from the mesh file
type Point = r3.Vec

/*
NodeTable maps node numbers to coordinates as read from a *NODE section of an input deck.
SectionFound distinguishes a deck without any *NODE section from one whose node sections are empty.
*/
type NodeTable struct {
	Points       map[NodeID]Point
	Order        []NodeID // insertion order, duplicates removed
	SectionFound bool
}

func NewNodeTable() (nt *NodeTable) {
	nt = &NodeTable{
		Points: make(map[NodeID]Point),
	}
	return
}

// Add stores the point for id, a later definition of the same id replaces the earlier one
func (nt *NodeTable) Add(id NodeID, p Point) {
	if _, ok := nt.Points[id]; !ok {
		nt.Order = append(nt.Order, id)
	}
	nt.Points[id] = p
}

func (nt *NodeTable) Lookup(id NodeID) (p Point, ok bool) {
	p, ok = nt.Points[id]
	return
}

func (nt *NodeTable) Len() int { return len(nt.Points) }

// SortedIDs returns the node numbers in ascending order
func (nt *NodeTable) SortedIDs() (ids []NodeID) {
	ids = make([]NodeID, len(nt.Order))
	copy(ids, nt.Order)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return
}

func NewNodeIDs(ints []int) (ids []NodeID) {
	ids = make([]NodeID, len(ints))
	for i, n := range ints {
		ids[i] = NodeID(n)
	}
	return
}
