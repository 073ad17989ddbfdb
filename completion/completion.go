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

// Package completion assembles per-predicate iff-definitions from a
// translated theory, per §4.5.
package completion

import (
	"sort"

	"bitbucket.org/creachadair/stringset"

	"github.com/tauverify/tau/fol"
	"github.com/tauverify/tau/fresh"
	"github.com/tauverify/tau/verrors"
)

// Theory is the result of completing a tau* theory: one definition per
// defined predicate, plus the constraint implications left unchanged.
type Theory struct {
	Definitions []fol.AnnotatedFormula
	Constraints []fol.Formula
}

type disjunct struct {
	vars []fol.Var
	ante fol.Formula
	args []fol.Term
}

// Complete converts a tau* theory into completed form. Every formula
// must be a universally-closed implication whose consequent is either
// an atom (a definition) or falsity (a constraint); any other shape is
// a verrors.CompletionNotApplicable error.
func Complete(theory fol.Theory) (Theory, error) {
	groups := make(map[fol.PredicateSym][]disjunct)
	var order []fol.PredicateSym
	var constraints []fol.Formula

	for _, f := range theory {
		vars, body := stripForAll(f)
		impl, ok := body.(fol.Binary)
		if !ok || impl.Op != fol.Implies {
			return Theory{}, &verrors.CompletionNotApplicable{Formula: f.String()}
		}
		switch right := impl.Right.(type) {
		case fol.Falsity:
			constraints = append(constraints, f)
		case fol.PredAtom:
			if _, seen := groups[right.Predicate]; !seen {
				order = append(order, right.Predicate)
			}
			groups[right.Predicate] = append(groups[right.Predicate], disjunct{vars, impl.Left, right.Args})
		default:
			return Theory{}, &verrors.CompletionNotApplicable{Formula: f.String()}
		}
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].Symbol != order[j].Symbol {
			return order[i].Symbol < order[j].Symbol
		}
		return order[i].Arity < order[j].Arity
	})

	var defs []fol.AnnotatedFormula
	for _, p := range order {
		defs = append(defs, completePredicate(p, groups[p]))
	}
	return Theory{Definitions: defs, Constraints: constraints}, nil
}

func completePredicate(p fol.PredicateSym, disjuncts []disjunct) fol.AnnotatedFormula {
	taken := stringset.New()
	for _, d := range disjuncts {
		for _, v := range d.vars {
			taken.Add(v.Name)
		}
	}
	ch := fresh.NewChooser(taken)
	us := ch.NextVarN("U", fol.General, p.Arity)

	uArgs := make([]fol.Term, p.Arity)
	for i, u := range us {
		uArgs[i] = fol.GeneralVar{Var: u}
	}
	head := fol.PredAtom{Predicate: p, Args: uArgs}

	disjunctForms := make([]fol.Formula, len(disjuncts))
	for i, d := range disjuncts {
		conjuncts := make([]fol.Formula, 0, len(d.args)+1)
		for j, arg := range d.args {
			conjuncts = append(conjuncts, fol.NewComparison(arg, fol.Eq, uArgs[j]))
		}
		conjuncts = append(conjuncts, d.ante)
		disjunctForms[i] = fol.ExistsV(d.vars, fol.And2(conjuncts...))
	}

	iff := fol.Binary{Op: fol.Iff, Left: head, Right: fol.Or2(disjunctForms...)}
	return fol.AnnotatedFormula{
		Role:      fol.RoleDefinition,
		Direction: fol.Universal,
		Name:      p.Symbol,
		Formula:   fol.ForAllV(us, iff),
	}
}

// stripForAll removes a leading universal quantifier, if present,
// returning its variable list (nil if the formula wasn't quantified)
// and the remaining body.
func stripForAll(f fol.Formula) ([]fol.Var, fol.Formula) {
	if q, ok := f.(fol.Quant); ok && q.Kind == fol.ForAll {
		return q.Vars, q.Body
	}
	return nil, f
}
