package mpc

import (
	"errors"
	"fmt"

	"github.com/ManuelZ/Finite-Element-Analysis/calculix"
	"github.com/ManuelZ/Finite-Element-Analysis/types"
)

var (
	ErrNodeNotFound       = errors.New("node not found in mesh")
	ErrNodeSectionMissing = errors.New("mesh has no *NODE section")
)

/*
GenNodes creates one new node per query node, numbered firstNodeID, firstNodeID+1, ... in query order and
placed at the query node's coordinates. The new numbers are not checked against the mesh, the caller must pick
firstNodeID above the highest node number in use.
*/
func GenNodes(firstNodeID types.NodeID, queryNodes []types.NodeID, nt *types.NodeTable) (
	records []calculix.NodeRecord, dummyNodes []types.NodeID, err error) {
	if firstNodeID <= 0 {
		return nil, nil, fmt.Errorf("first node id must be positive, have %d", firstNodeID)
	}
	if !nt.SectionFound {
		return nil, nil, ErrNodeSectionMissing
	}
	records = make([]calculix.NodeRecord, len(queryNodes))
	dummyNodes = make([]types.NodeID, len(queryNodes))
	for i, nodeID := range queryNodes {
		p, ok := nt.Lookup(nodeID)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %d", ErrNodeNotFound, nodeID)
		}
		dummyNodes[i] = firstNodeID + types.NodeID(i)
		records[i] = calculix.NodeRecord{ID: dummyNodes[i], Point: p}
	}
	return
}
