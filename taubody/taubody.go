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

// Package taubody translates rule bodies: literals, comparisons and
// conditional literals, per §4.3.
package taubody

import (
	"fmt"

	"bitbucket.org/creachadair/stringset"

	"github.com/tauverify/tau/asp"
	"github.com/tauverify/tau/fol"
	"github.com/tauverify/tau/fresh"
	"github.com/tauverify/tau/val"
)

// Literal translates a body atom with sign s:
// "∃ Z1..Zk (val(t1,Z1) ∧ ... ∧ val(tk,Zk) ∧ sigma_s(p(Z1,...,Zk)))".
// A propositional literal (arity 0) omits the existential block.
func Literal(variant val.Variant, lit asp.Literal, ch *fresh.Chooser) (fol.Formula, error) {
	atom := lit.Atom
	if len(atom.Args) == 0 {
		return wrapSign(lit.Sign, fol.PredAtom{Predicate: fo(atom.Predicate)}), nil
	}
	zs := ch.NextVarN("Z", fol.General, len(atom.Args))
	conjuncts := make([]fol.Formula, 0, len(atom.Args)+1)
	args := make([]fol.Term, len(atom.Args))
	for i, t := range atom.Args {
		v, err := val.Val(variant, t, zs[i], ch)
		if err != nil {
			return nil, err
		}
		conjuncts = append(conjuncts, v)
		args[i] = fol.GeneralVar{Var: zs[i]}
	}
	inner := wrapSign(lit.Sign, fol.PredAtom{Predicate: fo(atom.Predicate), Args: args})
	conjuncts = append(conjuncts, inner)
	return fol.ExistsV(zs, fol.And2(conjuncts...)), nil
}

// wrapSign wraps f in zero, one or two negations according to sign.
func wrapSign(sign asp.Sign, f fol.Formula) fol.Formula {
	switch sign {
	case asp.Negated:
		return fol.Not{X: f}
	case asp.DoubleNegated:
		return fol.Not{X: fol.Not{X: f}}
	default:
		return f
	}
}

// Comparison translates a body comparison "t1 R t2" to
// "∃ Z1 Z2 (val(t1,Z1) ∧ val(t2,Z2) ∧ Z1 R Z2)".
func Comparison(variant val.Variant, cmp asp.Comparison, ch *fresh.Chooser) (fol.Formula, error) {
	z1 := ch.NextVar("Z", fol.General)
	z2 := ch.NextVar("Z", fol.General)
	v1, err := val.Val(variant, cmp.Left, z1, ch)
	if err != nil {
		return nil, err
	}
	v2, err := val.Val(variant, cmp.Right, z2, ch)
	if err != nil {
		return nil, err
	}
	rel := foRelation(cmp.Rel)
	chain := fol.NewComparison(fol.GeneralVar{Var: z1}, rel, fol.GeneralVar{Var: z2})
	return fol.ExistsV([]fol.Var{z1, z2}, fol.And2(v1, v2, chain)), nil
}

// ConditionalLiteral translates "H : C1,...,Cm". G is the set of global
// variable names available to the enclosing rule; the local variables L
// are those free in H but not in G (a conditional literal's guard may
// only condition on variables already occurring in H, so H's variables
// cover C1..Cm's as well). The translation is
// "∀ L ( (/\_i tau_b(Ci)) -> tau_b(H) )"; if L is empty and the
// antecedent is #true, this reduces to tau_b(H).
func ConditionalLiteral(variant val.Variant, cl asp.ConditionalLiteral, globals stringset.Set, ch *fresh.Chooser) (fol.Formula, error) {
	var headForm fol.Formula
	if cl.Consequent.IsFalsity {
		headForm = fol.Falsity{}
	} else {
		lit := asp.Literal{Sign: asp.Positive, Atom: cl.Consequent.Atom}
		f, err := Literal(variant, lit, ch)
		if err != nil {
			return nil, err
		}
		headForm = f
	}

	local := localVars(cl, globals)

	antecedents := make([]fol.Formula, 0, len(cl.Guard))
	for _, g := range cl.Guard {
		lit := asp.Literal{Sign: asp.Positive, Atom: g}
		f, err := Literal(variant, lit, ch)
		if err != nil {
			return nil, err
		}
		antecedents = append(antecedents, f)
	}
	antecedent := fol.And2(antecedents...)

	if len(local) == 0 {
		if _, isTruth := antecedent.(fol.Truth); isTruth {
			return headForm, nil
		}
	}
	body := fol.Binary{Op: fol.Implies, Left: antecedent, Right: headForm}
	return fol.ForAllV(local, body), nil
}

// localVars returns the local variables of a conditional literal: those
// free in its consequent H, but not in the rule's global variable set.
func localVars(cl asp.ConditionalLiteral, globals stringset.Set) []fol.Var {
	used := make(map[asp.Variable]bool)
	if !cl.Consequent.IsFalsity {
		cl.Consequent.Atom.Vars(used)
	}
	var names []string
	for v := range used {
		if !globals.Contains(v.Name) {
			names = append(names, v.Name)
		}
	}
	stableSort(names)
	vars := make([]fol.Var, len(names))
	for i, n := range names {
		vars[i] = fol.Var{Name: n, Sort: fol.General}
	}
	return vars
}

// Body translates the ordered conjunction of a rule body's conditional
// literals and bare literals/comparisons.
func Body(variant val.Variant, body asp.Body, globals stringset.Set, ch *fresh.Chooser) (fol.Formula, error) {
	conjuncts := make([]fol.Formula, 0, len(body))
	for _, e := range body {
		var f fol.Formula
		var err error
		switch e.Kind {
		case asp.ElementLiteral:
			f, err = Literal(variant, e.Literal, ch)
		case asp.ElementComparison:
			f, err = Comparison(variant, e.Comparison, ch)
		case asp.ElementConditional:
			f, err = ConditionalLiteral(variant, e.Cond, globals, ch)
		default:
			err = fmt.Errorf("taubody: unhandled body element kind %v", e.Kind)
		}
		if err != nil {
			return nil, err
		}
		conjuncts = append(conjuncts, f)
	}
	return fol.And2(conjuncts...), nil
}

func fo(p asp.PredicateSym) fol.PredicateSym {
	return fol.PredicateSym{Symbol: p.Symbol, Arity: p.Arity}
}

func foRelation(r asp.Relation) fol.Relation {
	switch r {
	case asp.Eq:
		return fol.Eq
	case asp.Ne:
		return fol.Ne
	case asp.Lt:
		return fol.Lt
	case asp.Le:
		return fol.Le
	case asp.Gt:
		return fol.Gt
	case asp.Ge:
		return fol.Ge
	default:
		return fol.Eq
	}
}

// stableSort sorts names lexically for deterministic output; it is not a
// semantic requirement of §4.3, only a convenience for reproducible tests.
func stableSort(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j-1] > names[j]; j-- {
			names[j-1], names[j] = names[j], names[j-1]
		}
	}
}
