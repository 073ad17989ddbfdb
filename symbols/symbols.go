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

// Package symbols builds the placeholder → typed-function-constant map
// and applies it as a single traversal over a formula, per §9
// ("Placeholders vs function constants").
package symbols

import (
	"bitbucket.org/creachadair/stringset"

	"github.com/tauverify/tau/fol"
	"github.com/tauverify/tau/verrors"
)

// Reserved holds the prover-boundary names a placeholder must not
// collide with: the TPTP/ILTP sort and coercion names of §6. The
// pretty-printer itself is out of scope, but guarding against a
// placeholder that would collide with it is a translation-time check.
var Reserved = stringset.New("general", "symbol", "p__less__", "f__integer__", "f__symbolic__")

// Table is the immutable name → sort map built from a user guide's
// placeholder declarations.
type Table struct {
	sorts map[string]fol.Sort
}

// NewTable validates and builds a placeholder table. Placeholder names
// must be globally unique and must not collide with a reserved name.
func NewTable(placeholders []fol.Placeholder) (*Table, error) {
	sorts := make(map[string]fol.Sort, len(placeholders))
	for _, p := range placeholders {
		if Reserved.Contains(p.Name) {
			return nil, &verrors.PlaceholderConflict{Name: p.Name}
		}
		if _, exists := sorts[p.Name]; exists {
			return nil, &verrors.PlaceholderConflict{Name: p.Name}
		}
		sorts[p.Name] = p.Sort
	}
	return &Table{sorts: sorts}, nil
}

// Rewrite replaces every occurrence of a placeholder symbol in f with
// its typed function constant: a general-sorted placeholder is left as
// a nullary fol.Symbol, an integer-sorted placeholder is promoted to
// fol.IntSymbol.
func (t *Table) Rewrite(f fol.Formula) fol.Formula {
	switch n := f.(type) {
	case fol.Truth, fol.Falsity:
		return n
	case fol.PredAtom:
		return fol.PredAtom{Predicate: n.Predicate, Args: t.rewriteTerms(n.Args)}
	case fol.Comparison:
		guards := make([]fol.Guard, len(n.Guards))
		for i, g := range n.Guards {
			guards[i] = fol.Guard{Rel: g.Rel, Term: t.rewriteTerm(g.Term)}
		}
		return fol.Comparison{Head: t.rewriteTerm(n.Head), Guards: guards}
	case fol.Not:
		return fol.Not{X: t.Rewrite(n.X)}
	case fol.Binary:
		return fol.Binary{Op: n.Op, Left: t.Rewrite(n.Left), Right: t.Rewrite(n.Right)}
	case fol.Quant:
		return fol.Quant{Kind: n.Kind, Vars: n.Vars, Body: t.Rewrite(n.Body)}
	default:
		return f
	}
}

func (t *Table) rewriteTerms(terms []fol.Term) []fol.Term {
	out := make([]fol.Term, len(terms))
	for i, term := range terms {
		out[i] = t.rewriteTerm(term)
	}
	return out
}

func (t *Table) rewriteTerm(term fol.Term) fol.Term {
	switch n := term.(type) {
	case fol.Symbol:
		if len(n.Args) == 0 {
			if sort, ok := t.sorts[n.Name]; ok && sort == fol.Integer {
				return fol.IntSymbol{Name: n.Name}
			}
			return n
		}
		return fol.Symbol{Name: n.Name, Args: t.rewriteTerms(n.Args)}
	case fol.IntNeg:
		return fol.IntNeg{X: t.rewriteTerm(n.X)}
	case fol.IntAbs:
		return fol.IntAbs{X: t.rewriteTerm(n.X)}
	case fol.IntBinary:
		return fol.IntBinary{Op: n.Op, Left: t.rewriteTerm(n.Left), Right: t.rewriteTerm(n.Right)}
	default:
		return term
	}
}
