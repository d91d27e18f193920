package truss

import (
	"context"
	"math"

	"github.com/trusspole/trusspole/pkg/errors"
)

// DirectStiffness is the default Solver: a dense direct stiffness analysis
// of the plane truss with two translational degrees of freedom per node.
// The systems involved stay small (hundreds of DOFs), so Gaussian
// elimination with partial pivoting is plenty.
type DirectStiffness struct {
	// Elastic is the modulus used for all bars, kgf/cm².
	Elastic float64
}

// NewDirectStiffness returns a solver using the steel modulus.
func NewDirectStiffness() *DirectStiffness {
	return &DirectStiffness{Elastic: Elastic}
}

// Solve implements Solver.
func (ds *DirectStiffness) Solve(ctx context.Context, t *Topology, areas map[BarID]float64, loads NodalLoads) (*Solution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Map free DOFs to matrix rows. Pinned nodes contribute none.
	dof := make([]int, 2*len(t.Nodes))
	n := 0
	for _, node := range t.Nodes {
		if node.Fixed {
			dof[2*node.ID] = -1
			dof[2*node.ID+1] = -1
			continue
		}
		dof[2*node.ID] = n
		dof[2*node.ID+1] = n + 1
		n += 2
	}
	if n == 0 {
		return nil, errors.New(errors.ErrCodeInvalidGeometry, "all nodes are supports")
	}

	k := make([][]float64, n)
	for i := range k {
		k[i] = make([]float64, n)
	}
	f := make([]float64, n)

	for _, b := range t.Bars {
		a, ok := areas[b.ID]
		if !ok || a <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "bar %d has no area", b.ID)
		}
		l := t.Length(b)
		if l == 0 {
			return nil, errors.New(errors.ErrCodeInvalidGeometry, "bar %d has zero length", b.ID)
		}
		ni, nj := t.Nodes[b.I], t.Nodes[b.J]
		c := (nj.X - ni.X) / l
		s := (nj.Y - ni.Y) / l
		ea := ds.Elastic * a / l

		// Element stiffness in global coordinates, scattered over the
		// four DOFs of the bar.
		coef := [4]float64{c, s, -c, -s}
		idx := [4]int{dof[2*b.I], dof[2*b.I+1], dof[2*b.J], dof[2*b.J+1]}
		for p := 0; p < 4; p++ {
			if idx[p] < 0 {
				continue
			}
			for q := 0; q < 4; q++ {
				if idx[q] < 0 {
					continue
				}
				k[idx[p]][idx[q]] += ea * coef[p] * coef[q]
			}
		}
	}

	for id, load := range loads {
		if dof[2*id] < 0 {
			continue
		}
		f[dof[2*id]] += load[0]
		f[dof[2*id]+1] += load[1]
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u, err := solveDense(k, f)
	if err != nil {
		return nil, err
	}

	sol := &Solution{
		Displacements: make(map[NodeID][2]float64, len(t.Nodes)),
		AxialForces:   make(map[BarID]float64, len(t.Bars)),
	}
	for _, node := range t.Nodes {
		if node.Fixed {
			continue
		}
		sol.Displacements[node.ID] = [2]float64{u[dof[2*node.ID]], u[dof[2*node.ID]+1]}
	}

	disp := func(id NodeID) (float64, float64) {
		if dof[2*id] < 0 {
			return 0, 0
		}
		return u[dof[2*id]], u[dof[2*id]+1]
	}
	for _, b := range t.Bars {
		l := t.Length(b)
		ni, nj := t.Nodes[b.I], t.Nodes[b.J]
		c := (nj.X - ni.X) / l
		s := (nj.Y - ni.Y) / l
		ui, vi := disp(b.I)
		uj, vj := disp(b.J)
		sol.AxialForces[b.ID] = ds.Elastic * areas[b.ID] / l * ((uj-ui)*c + (vj-vi)*s)
	}
	return sol, nil
}

// solveDense solves k·u = f in place by Gaussian elimination with partial
// pivoting.
func solveDense(k [][]float64, f []float64) ([]float64, error) {
	n := len(f)
	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(k[row][col]) > math.Abs(k[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(k[pivot][col]) < 1e-12 {
			return nil, errors.New(errors.ErrCodeSolverSingular,
				"stiffness matrix is singular at equation %d", col)
		}
		k[col], k[pivot] = k[pivot], k[col]
		f[col], f[pivot] = f[pivot], f[col]

		for row := col + 1; row < n; row++ {
			factor := k[row][col] / k[col][col]
			if factor == 0 {
				continue
			}
			for c := col; c < n; c++ {
				k[row][c] -= factor * k[col][c]
			}
			f[row] -= factor * f[col]
		}
	}

	u := make([]float64, n)
	for row := n - 1; row >= 0; row-- {
		sum := f[row]
		for c := row + 1; c < n; c++ {
			sum -= k[row][c] * u[c]
		}
		u[row] = sum / k[row][row]
	}
	return u, nil
}
