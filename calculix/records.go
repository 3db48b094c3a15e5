package calculix

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ManuelZ/Finite-Element-Analysis/types"
)

// NodeRecord is one data line of a *NODE section
type NodeRecord struct {
	ID    types.NodeID
	Point types.Point
}

func (nr NodeRecord) Format() string {
	return fmt.Sprintf("%d, %s, %s, %s",
		nr.ID, FormatFloat(nr.Point.X), FormatFloat(nr.Point.Y), FormatFloat(nr.Point.Z))
}

/*
BoundaryRecord is one data line of a *BOUNDARY section, constraining the dofs First through Last of Node.
Without a Value the dofs are fixed, with a Value they get that prescribed displacement.
*/
type BoundaryRecord struct {
	Node        types.NodeID
	First, Last types.DOF
	Value       *float64
}

func (br BoundaryRecord) Format() string {
	if br.Value == nil {
		return fmt.Sprintf("%d, %d, %d", br.Node, br.First, br.Last)
	}
	// Integral values are written without a decimal point, e.g. "7, 1, 3, 0"
	return fmt.Sprintf("%d, %d, %d, %s", br.Node, br.First, br.Last,
		strconv.FormatFloat(*br.Value, 'g', -1, 64))
}

// Term is a single summand of a linear equation: Coefficient * u(Node, DOF)
type Term struct {
	Node        types.NodeID
	DOF         types.DOF
	Coefficient float64
}

func (t Term) Key() types.DOFKey {
	return types.NewDOFKey(t.Node, t.DOF)
}

/*
EquationRecord is a homogeneous linear multipoint constraint, sum(Terms) = 0.
The first term holds the dependent dof which CalculiX eliminates from the system.
*/
type EquationRecord struct {
	Terms []Term
}

func (er EquationRecord) Format() string {
	var (
		b strings.Builder
	)
	fmt.Fprintf(&b, "%d\n", len(er.Terms))
	for i, t := range er.Terms {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d, %d, %s", t.Node, t.DOF, strconv.FormatFloat(t.Coefficient, 'g', -1, 64))
	}
	return b.String()
}

/*
FormatFloat writes a coordinate in the shortest form that reads back to the same value, always carrying either
a decimal point or an exponent: 1 -> "1.0", 0.1 -> "0.1", 1e-5 -> "1e-05", 1e16 -> "1e+16".
*/
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	sci := strconv.FormatFloat(v, 'e', -1, 64)
	exp, _ := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if v != 0 && (exp < -4 || exp >= 16) {
		return sci
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
