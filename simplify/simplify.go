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

// Package simplify applies bottom-up rewrite rules to first-order
// formulas until a fixed point, per §4.6: HT uses only HT-sound rules,
// Classical adds double negation elimination.
package simplify

import (
	"sort"

	"github.com/tauverify/tau/fol"
)

// HT simplifies f under the here-and-there-sound rule set: identities,
// annihilators, idempotence, nested-quantifier join, empty quantifier
// blocks. It does not apply double negation, which is not HT-valid.
func HT(f fol.Formula) fol.Formula {
	return fixedPoint(f, false)
}

// Classical simplifies f under the same rule set as HT plus double
// negation elimination.
func Classical(f fol.Formula) fol.Formula {
	return fixedPoint(f, true)
}

func fixedPoint(f fol.Formula, classical bool) fol.Formula {
	cur := f
	for {
		next := fol.Apply(cur, func(n fol.Formula) fol.Formula { return step(n, classical) })
		if next.String() == cur.String() {
			return next
		}
		cur = next
	}
}

func step(f fol.Formula, classical bool) fol.Formula {
	switch t := f.(type) {
	case fol.Binary:
		return stepBinary(t)
	case fol.Not:
		if classical {
			if inner, ok := t.X.(fol.Not); ok {
				return inner.X
			}
		}
		return t
	case fol.Quant:
		return stepQuant(t)
	default:
		return f
	}
}

func stepBinary(t fol.Binary) fol.Formula {
	switch t.Op {
	case fol.And:
		if isTruth(t.Left) {
			return t.Right
		}
		if isTruth(t.Right) {
			return t.Left
		}
		if isFalsity(t.Left) || isFalsity(t.Right) {
			return fol.Falsity{}
		}
		if t.Left.String() == t.Right.String() {
			return t.Left
		}
	case fol.Or:
		if isFalsity(t.Left) {
			return t.Right
		}
		if isFalsity(t.Right) {
			return t.Left
		}
		if isTruth(t.Left) || isTruth(t.Right) {
			return fol.Truth{}
		}
		if t.Left.String() == t.Right.String() {
			return t.Left
		}
	}
	return t
}

func stepQuant(t fol.Quant) fol.Formula {
	if len(t.Vars) == 0 {
		return t.Body
	}
	if inner, ok := t.Body.(fol.Quant); ok && inner.Kind == t.Kind {
		return fol.Quant{Kind: t.Kind, Vars: mergeVars(t.Vars, inner.Vars), Body: inner.Body}
	}
	return t
}

// mergeVars unions two variable lists, deduplicated by name and
// lexically ordered, per the nested-quantifier-join rule.
func mergeVars(a, b []fol.Var) []fol.Var {
	seen := make(map[string]fol.Var)
	for _, v := range a {
		seen[v.Name] = v
	}
	for _, v := range b {
		seen[v.Name] = v
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]fol.Var, len(names))
	for i, n := range names {
		out[i] = seen[n]
	}
	return out
}

func isTruth(f fol.Formula) bool {
	_, ok := f.(fol.Truth)
	return ok
}

func isFalsity(f fol.Formula) bool {
	_, ok := f.(fol.Falsity)
	return ok
}
