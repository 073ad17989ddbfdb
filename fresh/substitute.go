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

package fresh

import (
	"fmt"

	"bitbucket.org/creachadair/stringset"

	"github.com/tauverify/tau/fol"
)

// Unsafe reports whether substituting t for v in f would capture a
// variable of t under some quantifier: f contains a quantified
// subformula Q x̄ F such that v is free in F and some variable of t
// appears in x̄.
func Unsafe(f fol.Formula, v fol.Var, t fol.Term) bool {
	tVars := stringset.New()
	fol.TermVars(t, tVars)
	return unsafe(f, v, tVars)
}

func unsafe(f fol.Formula, v fol.Var, tVars stringset.Set) bool {
	switch node := f.(type) {
	case fol.Truth, fol.Falsity, fol.PredAtom, fol.Comparison:
		return false
	case fol.Not:
		return unsafe(node.X, v, tVars)
	case fol.Binary:
		return unsafe(node.Left, v, tVars) || unsafe(node.Right, v, tVars)
	case fol.Quant:
		free := fol.FreeVars(node.Body)
		vBound := false
		captured := false
		for _, bv := range node.Vars {
			if bv.Name == v.Name {
				vBound = true
			}
			if tVars.Contains(bv.Name) {
				captured = true
			}
		}
		if !vBound && free.Contains(v.Name) && captured {
			return true
		}
		if vBound {
			// v is rebound here, so no occurrence of v inside Body is
			// free and substitution into Body is a no-op; nothing inside
			// can be captured.
			return false
		}
		return unsafe(node.Body, v, tVars)
	default:
		return false
	}
}

// Substitute replaces every free occurrence of v in f by t. Substitution
// into a quantified subformula that (re)binds v is a no-op for that
// subformula. Callers must check Unsafe first; Substitute returns an
// error if the substitution would be unsafe.
func Substitute(f fol.Formula, v fol.Var, t fol.Term) (fol.Formula, error) {
	if Unsafe(f, v, t) {
		return nil, fmt.Errorf("fresh: unsafe substitution of %s for %s in %s", t, v, f)
	}
	return substitute(f, v, t), nil
}

func substitute(f fol.Formula, v fol.Var, t fol.Term) fol.Formula {
	switch node := f.(type) {
	case fol.Truth:
		return node
	case fol.Falsity:
		return node
	case fol.PredAtom:
		args := make([]fol.Term, len(node.Args))
		for i, a := range node.Args {
			args[i] = substituteTerm(a, v, t)
		}
		return fol.PredAtom{Predicate: node.Predicate, Args: args}
	case fol.Comparison:
		guards := make([]fol.Guard, len(node.Guards))
		for i, g := range node.Guards {
			guards[i] = fol.Guard{Rel: g.Rel, Term: substituteTerm(g.Term, v, t)}
		}
		return fol.Comparison{Head: substituteTerm(node.Head, v, t), Guards: guards}
	case fol.Not:
		return fol.Not{X: substitute(node.X, v, t)}
	case fol.Binary:
		return fol.Binary{Op: node.Op, Left: substitute(node.Left, v, t), Right: substitute(node.Right, v, t)}
	case fol.Quant:
		for _, bv := range node.Vars {
			if bv.Name == v.Name {
				return node // v is rebound; no-op.
			}
		}
		return fol.Quant{Kind: node.Kind, Vars: node.Vars, Body: substitute(node.Body, v, t)}
	default:
		return f
	}
}

func substituteTerm(term fol.Term, v fol.Var, t fol.Term) fol.Term {
	switch x := term.(type) {
	case fol.GeneralVar:
		if x.Var.Name == v.Name {
			return t
		}
		return x
	case fol.IntVar:
		if x.Var.Name == v.Name {
			return t
		}
		return x
	case fol.Symbol:
		args := make([]fol.Term, len(x.Args))
		for i, a := range x.Args {
			args[i] = substituteTerm(a, v, t)
		}
		return fol.Symbol{Name: x.Name, Args: args}
	case fol.IntNeg:
		return fol.IntNeg{X: substituteTerm(x.X, v, t)}
	case fol.IntAbs:
		return fol.IntAbs{X: substituteTerm(x.X, v, t)}
	case fol.IntBinary:
		return fol.IntBinary{Op: x.Op, Left: substituteTerm(x.Left, v, t), Right: substituteTerm(x.Right, v, t)}
	default:
		return term
	}
}

// AlphaRename consistently replaces every bound variable of f with a
// fresh indexed name X1, X2, ... not appearing in avoid (or elsewhere in
// the renamed formula). Use this to resolve an Unsafe substitution before
// retrying it.
func AlphaRename(f fol.Formula, avoid stringset.Set) fol.Formula {
	taken := avoid.Clone()
	taken.Add(fol.FreeVars(f).Elements()...)
	taken.Add("X") // fresh names start at X1, never the bare stem
	chooser := NewChooser(taken)
	renamed, _ := alphaRename(f, chooser, map[string]fol.Var{})
	return renamed
}

func alphaRename(f fol.Formula, chooser *Chooser, renaming map[string]fol.Var) (fol.Formula, map[string]fol.Var) {
	switch node := f.(type) {
	case fol.Truth, fol.Falsity:
		return node, renaming
	case fol.PredAtom:
		args := make([]fol.Term, len(node.Args))
		for i, a := range node.Args {
			args[i] = renameTerm(a, renaming)
		}
		return fol.PredAtom{Predicate: node.Predicate, Args: args}, renaming
	case fol.Comparison:
		guards := make([]fol.Guard, len(node.Guards))
		for i, g := range node.Guards {
			guards[i] = fol.Guard{Rel: g.Rel, Term: renameTerm(g.Term, renaming)}
		}
		return fol.Comparison{Head: renameTerm(node.Head, renaming), Guards: guards}, renaming
	case fol.Not:
		x, _ := alphaRename(node.X, chooser, renaming)
		return fol.Not{X: x}, renaming
	case fol.Binary:
		l, _ := alphaRename(node.Left, chooser, renaming)
		r, _ := alphaRename(node.Right, chooser, renaming)
		return fol.Binary{Op: node.Op, Left: l, Right: r}, renaming
	case fol.Quant:
		inner := make(map[string]fol.Var, len(renaming)+len(node.Vars))
		for k, v := range renaming {
			inner[k] = v
		}
		newVars := make([]fol.Var, len(node.Vars))
		for i, bv := range node.Vars {
			fresh := fol.Var{Name: chooser.Next("X"), Sort: bv.Sort}
			inner[bv.Name] = fresh
			newVars[i] = fresh
		}
		body, _ := alphaRename(node.Body, chooser, inner)
		return fol.Quant{Kind: node.Kind, Vars: newVars, Body: body}, renaming
	default:
		return f, renaming
	}
}

func renameTerm(t fol.Term, renaming map[string]fol.Var) fol.Term {
	switch x := t.(type) {
	case fol.GeneralVar:
		if nv, ok := renaming[x.Var.Name]; ok {
			return fol.GeneralVar{Var: nv}
		}
		return x
	case fol.IntVar:
		if nv, ok := renaming[x.Var.Name]; ok {
			return fol.IntVar{Var: nv}
		}
		return x
	case fol.Symbol:
		args := make([]fol.Term, len(x.Args))
		for i, a := range x.Args {
			args[i] = renameTerm(a, renaming)
		}
		return fol.Symbol{Name: x.Name, Args: args}
	case fol.IntNeg:
		return fol.IntNeg{X: renameTerm(x.X, renaming)}
	case fol.IntAbs:
		return fol.IntAbs{X: renameTerm(x.X, renaming)}
	case fol.IntBinary:
		return fol.IntBinary{Op: x.Op, Left: renameTerm(x.Left, renaming), Right: renameTerm(x.Right, renaming)}
	default:
		return t
	}
}
