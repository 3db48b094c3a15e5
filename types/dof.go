package types

import (
	"fmt"
	"math"
)

// DOF is a degree of freedom number at a node, 1-3 are the translations in x, y and z
type DOF uint8

const (
	DOF_X DOF = iota + 1
	DOF_Y
	DOF_Z
)

/*
DOFKey stores a (node, dof) pair as a single comparable number, used to index the columns of a constraint system.
The node number occupies the upper 56 bits and the dof the lower 8 bits.
*/
type DOFKey uint64

func NewDOFKey(node NodeID, dof DOF) (packed DOFKey) {
	var (
		limit = math.MaxInt64 >> 8
	)
	if node < 0 || int64(node) > int64(limit) {
		panic(fmt.Errorf("unable to pack node %d into a dof key", node))
	}
	packed = DOFKey(uint64(node)<<8 | uint64(dof))
	return
}

func (dk DOFKey) GetNode() NodeID {
	return NodeID(dk >> 8)
}

func (dk DOFKey) GetDOF() DOF {
	return DOF(dk & 0xff)
}

func (dk DOFKey) String() string {
	return fmt.Sprintf("%d.%d", dk.GetNode(), dk.GetDOF())
}
