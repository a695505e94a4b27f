// Package index computes the integer expressions that address
// weights, pre/post indices, and bitmask bits for each of the four
// synapse connectivity kinds (spec.md §4.4).
package index

import (
	"fmt"

	"github.com/emer/netgen/ir"
)

// ConnName returns the connectivity structure reference for a synapse
// group, e.g. "Csyn".
func ConnName(sg *ir.SynapseGroup) string {
	return "C" + sg.Name
}

// TargetSize returns the `|target|` expression: the target
// population's literal size when known.
func TargetSize(sg *ir.SynapseGroup) string {
	return fmt.Sprintf("%d", sg.Trg.Size)
}

// WeightAddr returns the address expression of weight variable v at
// (ipre, j-th neighbour, ipost), per the table in spec.md §4.4. For
// GLOBAL weights it returns the bare variable name (scalar constant,
// no indexing).
func WeightAddr(sg *ir.SynapseGroup, v, ipre, j, ipost string) string {
	if sg.Weight == ir.Global {
		return v
	}
	c := ConnName(sg)
	switch sg.Matrix {
	case ir.Dense:
		return fmt.Sprintf("%s[%s * %s + %s]", v, ipre, TargetSize(sg), ipost)
	case ir.Bitmask:
		// BITMASK connectivity never carries individual weights;
		// callers gate on BitTest instead of calling WeightAddr.
		return v
	case ir.SparseYale:
		return fmt.Sprintf("%s[%s.indInG[%s] + %s]", v, c, ipre, j)
	case ir.SparseRagged:
		return fmt.Sprintf("%s[%s * %s + %s]", v, ipre, MaxRowExpr(sg), j)
	default:
		return v
	}
}

// PostIndexExpr returns the expression that resolves ipost from
// (ipre, j) for sparse matrices. Dense/bitmask iterate ipost directly,
// so there is nothing to resolve.
func PostIndexExpr(sg *ir.SynapseGroup, ipre, j string) string {
	c := ConnName(sg)
	switch sg.Matrix {
	case ir.SparseYale:
		return fmt.Sprintf("%s.ind[%s.indInG[%s] + %s]", c, c, ipre, j)
	case ir.SparseRagged:
		return fmt.Sprintf("%s.ind[%s * %s + %s]", c, ipre, MaxRowExpr(sg), j)
	default:
		return ""
	}
}

// RowLengthExpr returns the row-length expression for ipre.
func RowLengthExpr(sg *ir.SynapseGroup, ipre string) string {
	c := ConnName(sg)
	switch sg.Matrix {
	case ir.SparseYale:
		return fmt.Sprintf("%s.indInG[%s + 1] - %s.indInG[%s]", c, ipre, c, ipre)
	case ir.SparseRagged:
		return fmt.Sprintf("%s.rowLength[%s]", c, ipre)
	default:
		return ""
	}
}

// MaxRowExpr returns the literal stride for SPARSE-RAGGED rows.
func MaxRowExpr(sg *ir.SynapseGroup) string {
	return fmt.Sprintf("%d", sg.MaxRowConnections)
}

// GidExpr returns the BITMASK global synapse index `pre*|target|+post`.
func GidExpr(sg *ir.SynapseGroup, ipre, ipost string) string {
	return fmt.Sprintf("(%s * %sull + %s)", ipre, TargetSize(sg), ipost)
}

// BitTest returns the `B(word, bit)` guard expression for a BITMASK
// group at the given gid expression.
func BitTest(sg *ir.SynapseGroup, gid string) string {
	return fmt.Sprintf("B(gp%s[%s / 32], %s & 31)", sg.Name, gid, gid)
}

// Reverse-structure addressing for the post-learning pass (§4.4,
// "reverse structures").

// RevRowLengthExpr returns the reverse row length for a SPARSE-YALE
// group's post-learning pass, indexed by the post-spike lSpk.
func RevRowLengthExpr(sg *ir.SynapseGroup, lSpk string) string {
	c := ConnName(sg)
	return fmt.Sprintf("%s.revIndInG[%s + 1] - %s.revIndInG[%s]", c, lSpk, c, lSpk)
}

// RevForwardIndexYale returns the forward synapse index for YALE
// reverse traversal: revIndInG[lSpk] + l.
func RevForwardIndexYale(sg *ir.SynapseGroup, lSpk, l string) string {
	c := ConnName(sg)
	return fmt.Sprintf("%s.revIndInG[%s] + %s", c, lSpk, l)
}

// RevPreIndexYale returns the presynaptic index via revInd for YALE.
func RevPreIndexYale(sg *ir.SynapseGroup, revIdx string) string {
	c := ConnName(sg)
	return fmt.Sprintf("%s.revInd[%s]", c, revIdx)
}

// RevColLengthExpr returns the reverse column length for a
// SPARSE-RAGGED group's post-learning pass, indexed by the post-spike
// lSpk: the number of presynaptic sources actually connected to lSpk,
// which varies per target neuron and so cannot be replaced by the
// static MaxSourceConnections bound.
func RevColLengthExpr(sg *ir.SynapseGroup, lSpk string) string {
	c := ConnName(sg)
	return fmt.Sprintf("%s.colLength[%s]", c, lSpk)
}

// RevForwardIndexRagged returns the forward synapse index for RAGGED
// reverse traversal: lSpk * maxSrc + l.
func RevForwardIndexRagged(sg *ir.SynapseGroup, lSpk, l string) string {
	return fmt.Sprintf("%s * %d + %s", lSpk, sg.MaxSourceConnections, l)
}

// RevPreIndexRagged derives the presynaptic index from a ragged remap
// entry: remap[idx] / maxRow.
func RevPreIndexRagged(sg *ir.SynapseGroup, remapIdx string) string {
	c := ConnName(sg)
	return fmt.Sprintf("%s.remap[%s] / %s", c, remapIdx, MaxRowExpr(sg))
}

// RemapWeightAddr addresses a weight variable through the remap array
// used by both sparse kinds' post-learning pass.
func RemapWeightAddr(sg *ir.SynapseGroup, v, idx string) string {
	c := ConnName(sg)
	return fmt.Sprintf("%s[%s.remap[%s]]", v, c, idx)
}

// DenseLearnWeightAddr addresses a weight variable in the DENSE
// post-learning pass: w[lSpk + |target| * ipre].
func DenseLearnWeightAddr(sg *ir.SynapseGroup, v, lSpk, ipre string) string {
	return fmt.Sprintf("%s[%s + %s * %s]", v, lSpk, TargetSize(sg), ipre)
}
