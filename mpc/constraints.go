package mpc

import (
	"errors"
	"fmt"
	"math"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/ManuelZ/Finite-Element-Analysis/calculix"
	"github.com/ManuelZ/Finite-Element-Analysis/types"
)

var (
	ErrDuplicateDependent = errors.New("dof is the dependent term of more than one equation")
	ErrVanishingDependent = errors.New("dependent dof cancels out of its equation")
)

/*
ConstraintSystem is the matrix form C u = 0 of a set of equations.
Row i of C holds the coefficients of equation i, columns are the distinct (node, dof) pairs in order of first
appearance, Keys[j] naming column j.
*/
type ConstraintSystem struct {
	C             *sparse.CSR
	Columns       map[types.DOFKey]int
	Keys          []types.DOFKey
	Dependents    []types.DOFKey // First term of each equation
	DependentRows []int          // Row of C holding Dependents[i]
}

func Assemble(equations []calculix.EquationRecord) (cs *ConstraintSystem) {
	cs = &ConstraintSystem{
		Columns: make(map[types.DOFKey]int),
	}
	for _, eq := range equations {
		for _, t := range eq.Terms {
			key := t.Key()
			if _, ok := cs.Columns[key]; !ok {
				cs.Columns[key] = len(cs.Keys)
				cs.Keys = append(cs.Keys, key)
			}
		}
	}
	for i, eq := range equations {
		if len(eq.Terms) != 0 {
			cs.Dependents = append(cs.Dependents, eq.Terms[0].Key())
			cs.DependentRows = append(cs.DependentRows, i)
		}
	}
	if len(equations) == 0 || len(cs.Keys) == 0 {
		return
	}
	dok := sparse.NewDOK(len(equations), len(cs.Keys))
	for i, eq := range equations {
		for _, t := range eq.Terms {
			j := cs.Columns[t.Key()]
			// Repeated terms of one dof sum, as they do in the solver
			dok.Set(i, j, dok.At(i, j)+t.Coefficient)
		}
	}
	cs.C = dok.ToCSR()
	return
}

func (cs *ConstraintSystem) Dims() (r, c int) {
	if cs.C == nil {
		return 0, 0
	}
	return cs.C.Dims()
}

func (cs *ConstraintSystem) NNZ() int {
	if cs.C == nil {
		return 0
	}
	return cs.C.NNZ()
}

// Residual evaluates C u, dofs missing from u are taken as zero
func (cs *ConstraintSystem) Residual(u map[types.DOFKey]float64) (res []float64) {
	if cs.C == nil {
		return nil
	}
	nr, nc := cs.C.Dims()
	x := mat.NewVecDense(nc, nil)
	for j, key := range cs.Keys {
		x.SetVec(j, u[key])
	}
	r := mat.NewVecDense(nr, nil)
	r.MulVec(cs.C, x)
	res = make([]float64, nr)
	for i := range res {
		res[i] = r.AtVec(i)
	}
	return
}

// Satisfied reports whether every equation holds for u within tol
func (cs *ConstraintSystem) Satisfied(u map[types.DOFKey]float64, tol float64) bool {
	res := cs.Residual(u)
	if len(res) == 0 {
		return true
	}
	return floats.Norm(res, math.Inf(1)) <= tol
}

// CheckDependents rejects systems where one dof is eliminated by two equations, which CalculiX refuses
func (cs *ConstraintSystem) CheckDependents() (err error) {
	seen := make(map[types.DOFKey]int, len(cs.Dependents))
	for i, key := range cs.Dependents {
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("%w: dof %s in equations %d and %d", ErrDuplicateDependent, key,
				cs.DependentRows[prev]+1, cs.DependentRows[i]+1)
		}
		seen[key] = i
	}
	return
}

/*
CheckDependentCoefficients rejects equations whose dependent dof has a zero coefficient in C once repeated terms
are summed, e.g. -u3(100) + u3(100) + u3(101) when a duplicate reuses the number of the node it duplicates.
CalculiX cannot eliminate such a dof.
*/
func (cs *ConstraintSystem) CheckDependentCoefficients() (err error) {
	if cs.C == nil {
		return
	}
	for i, key := range cs.Dependents {
		row := cs.DependentRows[i]
		if cs.C.At(row, cs.Columns[key]) == 0 {
			return fmt.Errorf("%w: dof %s in equation %d", ErrVanishingDependent, key, row+1)
		}
	}
	return
}

// Validate runs every check the solver would otherwise fail on
func (cs *ConstraintSystem) Validate() (err error) {
	if err = cs.CheckDependents(); err != nil {
		return
	}
	return cs.CheckDependentCoefficients()
}
