// Copyright 2022 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package depgraph computes the predicate-dependency graph and
// tightness of a theory, per §4.7. Two construction paths are exposed
// deliberately rather than merged, per the open question of §9:
// FromCompletedTheory walks the tau*-shaped implications directly;
// FromFormulas walks post-completion iff-definitions.
package depgraph

import (
	"sort"

	"github.com/tauverify/tau/fol"
)

// Graph is a directed predicate-dependency graph.
type Graph struct {
	edges map[fol.PredicateSym]map[fol.PredicateSym]bool
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{edges: make(map[fol.PredicateSym]map[fol.PredicateSym]bool)}
}

// AddEdge records that p depends on q.
func (g *Graph) AddEdge(p, q fol.PredicateSym) {
	g.ensureNode(p)
	g.ensureNode(q)
	g.edges[p][q] = true
}

// ensureNode makes p a node of the graph even if it has no edges yet.
func (g *Graph) ensureNode(p fol.PredicateSym) {
	if _, ok := g.edges[p]; !ok {
		g.edges[p] = make(map[fol.PredicateSym]bool)
	}
}

// Successors returns the predicates p directly depends on.
func (g *Graph) Successors(p fol.PredicateSym) []fol.PredicateSym {
	var out []fol.PredicateSym
	for q := range g.edges[p] {
		out = append(out, q)
	}
	sortPreds(out)
	return out
}

// Nodes returns every predicate appearing in the graph, sorted.
func (g *Graph) Nodes() []fol.PredicateSym {
	nodes := make([]fol.PredicateSym, 0, len(g.edges))
	for p := range g.edges {
		nodes = append(nodes, p)
	}
	sortPreds(nodes)
	return nodes
}

// Tight reports whether the graph's strongly-connected-component
// condensation has no self-loops: every SCC is a singleton with no
// edge from that node to itself.
func (g *Graph) Tight() bool {
	for _, scc := range g.sccs() {
		if len(scc) > 1 {
			return false
		}
		if len(scc) == 1 && g.edges[scc[0]][scc[0]] {
			return false
		}
	}
	return true
}

// sccs computes the strongly connected components via Kosaraju's
// algorithm: a DFS finish-order pass over the graph, then a second
// pass over the transpose in reverse finish order.
func (g *Graph) sccs() [][]fol.PredicateSym {
	visited := make(map[fol.PredicateSym]bool)
	var order []fol.PredicateSym
	var visit func(p fol.PredicateSym)
	visit = func(p fol.PredicateSym) {
		if visited[p] {
			return
		}
		visited[p] = true
		for _, q := range g.Successors(p) {
			visit(q)
		}
		order = append(order, p)
	}
	for _, p := range g.Nodes() {
		visit(p)
	}

	transpose := make(map[fol.PredicateSym][]fol.PredicateSym)
	for p, succs := range g.edges {
		for q := range succs {
			transpose[q] = append(transpose[q], p)
		}
	}
	for _, ts := range transpose {
		sortPreds(ts)
	}

	assigned := make(map[fol.PredicateSym]bool)
	var result [][]fol.PredicateSym
	var collect func(p fol.PredicateSym, comp *[]fol.PredicateSym)
	collect = func(p fol.PredicateSym, comp *[]fol.PredicateSym) {
		if assigned[p] {
			return
		}
		assigned[p] = true
		*comp = append(*comp, p)
		for _, q := range transpose[p] {
			collect(q, comp)
		}
	}
	for i := len(order) - 1; i >= 0; i-- {
		p := order[i]
		if assigned[p] {
			continue
		}
		var comp []fol.PredicateSym
		collect(p, &comp)
		result = append(result, comp)
	}
	return result
}

func sortPreds(ps []fol.PredicateSym) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Symbol != ps[j].Symbol {
			return ps[i].Symbol < ps[j].Symbol
		}
		return ps[i].Arity < ps[j].Arity
	})
}

// FromCompletedTheory builds the dependency graph directly from a
// tau*-shaped theory: formulas of the form ∀x̄ (Body → Head). For each
// intensional head predicate, an edge is added to every intensional
// predicate occurring strictly positively (even negation count) in
// Body. Constraint formulas (Head = falsity) contribute no edges.
func FromCompletedTheory(theory fol.Theory, intensional map[fol.PredicateSym]bool) *Graph {
	g := New()
	for p := range intensional {
		g.ensureNode(p)
	}
	for _, f := range theory {
		_, body := stripForAll(f)
		impl, ok := body.(fol.Binary)
		if !ok || impl.Op != fol.Implies {
			continue
		}
		head, ok := headPredicate(impl.Right)
		if !ok || !intensional[head] {
			continue
		}
		for _, q := range positiveAtoms(impl.Left, false) {
			if intensional[q] {
				g.AddEdge(head, q)
			}
		}
	}
	return g
}

// FromFormulas builds the dependency graph from post-completion
// iff-definitions: ∀ū (p(ū) ↔ ⋁...). An edge p→q is added whenever q
// occurs strictly positively on the right-hand side.
func FromFormulas(formulas []fol.Formula, intensional map[fol.PredicateSym]bool) *Graph {
	g := New()
	for p := range intensional {
		g.ensureNode(p)
	}
	for _, f := range formulas {
		_, body := stripForAll(f)
		iff, ok := body.(fol.Binary)
		if !ok || iff.Op != fol.Iff {
			continue
		}
		head, ok := headPredicate(iff.Left)
		if !ok || !intensional[head] {
			continue
		}
		for _, q := range positiveAtoms(iff.Right, false) {
			if intensional[q] {
				g.AddEdge(head, q)
			}
		}
	}
	return g
}

func headPredicate(f fol.Formula) (fol.PredicateSym, bool) {
	if a, ok := f.(fol.PredAtom); ok {
		return a.Predicate, true
	}
	return fol.PredicateSym{}, false
}

// positiveAtoms collects, with standard polarity propagation through
// ∧/∨/¬/→/←/quantifiers, every predicate occurring under an even
// number of negations (negated selects the starting polarity). Atoms
// under ↔ are not collected.
func positiveAtoms(f fol.Formula, negated bool) []fol.PredicateSym {
	var out []fol.PredicateSym
	switch t := f.(type) {
	case fol.PredAtom:
		if !negated {
			out = append(out, t.Predicate)
		}
	case fol.Not:
		out = append(out, positiveAtoms(t.X, !negated)...)
	case fol.Binary:
		switch t.Op {
		case fol.And, fol.Or:
			out = append(out, positiveAtoms(t.Left, negated)...)
			out = append(out, positiveAtoms(t.Right, negated)...)
		case fol.Implies:
			out = append(out, positiveAtoms(t.Left, !negated)...)
			out = append(out, positiveAtoms(t.Right, negated)...)
		case fol.ImpliedBy:
			out = append(out, positiveAtoms(t.Left, negated)...)
			out = append(out, positiveAtoms(t.Right, !negated)...)
		case fol.Iff:
			// Occurrences under <-> are neither purely positive nor
			// purely negative; they contribute no edges either way.
		}
	case fol.Quant:
		out = append(out, positiveAtoms(t.Body, negated)...)
	}
	return out
}

func stripForAll(f fol.Formula) ([]fol.Var, fol.Formula) {
	if q, ok := f.(fol.Quant); ok && q.Kind == fol.ForAll {
		return q.Vars, q.Body
	}
	return nil, f
}
