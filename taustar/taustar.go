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

// Package taustar implements the rule translator tau*: it produces a
// first-order theory from a program, per §4.4.
package taustar

import (
	"fmt"
	"sort"

	"bitbucket.org/creachadair/stringset"

	"github.com/tauverify/tau/asp"
	"github.com/tauverify/tau/fol"
	"github.com/tauverify/tau/fresh"
	"github.com/tauverify/tau/taubody"
	"github.com/tauverify/tau/val"
)

// Translate produces tau*(Program): the theory of universally-closed
// implications, one per rule.
func Translate(variant val.Variant, p asp.Program) (fol.Theory, error) {
	allTaken := stringset.New()
	for _, r := range p.Rules {
		for v := range r.Vars() {
			allTaken.Add(v.Name)
		}
	}
	programCh := fresh.NewChooser(allTaken)
	globalValueVars := programCh.NextVarN("V", fol.General, p.MaxHeadArity())

	taken := allTaken.Clone()
	for _, v := range globalValueVars {
		taken.Add(v.Name)
	}

	theory := make(fol.Theory, 0, len(p.Rules))
	for _, r := range p.Rules {
		f, err := translateRule(variant, r, globalValueVars, taken)
		if err != nil {
			return nil, err
		}
		theory = append(theory, f)
	}
	return theory, nil
}

func translateRule(variant val.Variant, r asp.Rule, globalValueVars []fol.Var, progTaken stringset.Set) (fol.Formula, error) {
	localTaken := progTaken.Clone()
	ch := fresh.NewChooser(localTaken)

	// The rule's global variables (r.global_variables() in tau_star.rs)
	// are the head's variables plus every variable occurring in a plain
	// (non-conditional) body literal or comparison — these are the
	// variables the outer quantifier binds, and the only ones taubody
	// may treat as already bound rather than locally quantifying. A
	// conditional literal's own local variables (free only in its
	// consequent, not shared with any plain body position) are left out
	// here and quantified locally by taubody.ConditionalLiteral instead.
	globalNames := ruleGlobalVars(r)
	globals := sortedVarNames(globalNames)

	bodyForm, err := taubody.Body(variant, r.Body, globalNames, ch)
	if err != nil {
		return nil, err
	}

	switch r.Head.Kind {
	case asp.HeadFalsity:
		f := fol.Binary{Op: fol.Implies, Left: bodyForm, Right: fol.Falsity{}}
		return fol.ForAllV(globals, f), nil

	case asp.HeadAtom, asp.HeadChoice:
		atom := r.Head.Atom
		isChoice := r.Head.Kind == asp.HeadChoice

		if atom.Predicate.Arity == 0 {
			p := fol.PredAtom{Predicate: fo(atom.Predicate)}
			antecedent := bodyForm
			if isChoice {
				antecedent = fol.And2(bodyForm, fol.Not{X: fol.Not{X: p}})
			}
			f := fol.Binary{Op: fol.Implies, Left: antecedent, Right: p}
			return fol.ForAllV(globals, f), nil
		}

		n := atom.Predicate.Arity
		vs := globalValueVars[:n]
		parts := make([]fol.Formula, 0, n+2)
		for i, t := range atom.Args {
			vf, err := val.Val(variant, t, vs[i], ch)
			if err != nil {
				return nil, err
			}
			parts = append(parts, vf)
		}
		parts = append(parts, bodyForm)
		headArgs := make([]fol.Term, n)
		for i, v := range vs {
			headArgs[i] = fol.GeneralVar{Var: v}
		}
		consequent := fol.PredAtom{Predicate: fo(atom.Predicate), Args: headArgs}
		if isChoice {
			parts = append(parts, fol.Not{X: fol.Not{X: consequent}})
		}
		antecedent := fol.And2(parts...)
		f := fol.Binary{Op: fol.Implies, Left: antecedent, Right: consequent}
		allVars := append(append([]fol.Var{}, vs...), globals...)
		return fol.ForAllV(allVars, f), nil
	}
	return nil, fmt.Errorf("taustar: unhandled head kind %v", r.Head.Kind)
}

// ruleGlobalVars returns the names of a rule's global variables: the
// head's variables (none, for a constraint) plus the variables of every
// plain body literal and comparison. A conditional literal contributes
// only through variables it shares with some plain body position; its
// purely local variables are excluded, matching tau_star.rs's
// r.global_variables().
func ruleGlobalVars(r asp.Rule) stringset.Set {
	s := stringset.New()
	if r.Head.Kind != asp.HeadFalsity {
		m := make(map[asp.Variable]bool)
		r.Head.Atom.Vars(m)
		for v := range m {
			s.Add(v.Name)
		}
	}
	for _, e := range r.Body {
		m := make(map[asp.Variable]bool)
		switch e.Kind {
		case asp.ElementLiteral:
			e.Literal.Atom.Vars(m)
		case asp.ElementComparison:
			e.Comparison.Left.Vars(m)
			e.Comparison.Right.Vars(m)
		default:
			continue
		}
		for v := range m {
			s.Add(v.Name)
		}
	}
	return s
}

// sortedVarNames turns a set of variable names into a sorted []fol.Var.
func sortedVarNames(names stringset.Set) []fol.Var {
	elems := names.Elements()
	sort.Strings(elems)
	vars := make([]fol.Var, len(elems))
	for i, n := range elems {
		vars[i] = fol.Var{Name: n, Sort: fol.General}
	}
	return vars
}

func fo(p asp.PredicateSym) fol.PredicateSym {
	return fol.PredicateSym{Symbol: p.Symbol, Arity: p.Arity}
}
