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

package fol

import "testing"

func TestSortSubsumes(t *testing.T) {
	if !General.Subsumes(Integer) {
		t.Error("General should subsume Integer")
	}
	if !General.Subsumes(General) {
		t.Error("General should subsume itself")
	}
	if Integer.Subsumes(General) {
		t.Error("Integer must not subsume General")
	}
	if !Integer.Subsumes(Integer) {
		t.Error("Integer should subsume itself")
	}
}

func TestPredAtomStringArityZeroAndPositive(t *testing.T) {
	p0 := PredAtom{Predicate: PredicateSym{Symbol: "p", Arity: 0}}
	if p0.String() != "p" {
		t.Errorf("got %q, want p", p0.String())
	}
	x := Var{Name: "X", Sort: General}
	p1 := PredAtom{Predicate: PredicateSym{Symbol: "q", Arity: 1}, Args: []Term{GeneralVar{Var: x}}}
	if p1.String() != "q(X)" {
		t.Errorf("got %q, want q(X)", p1.String())
	}
}

func TestAnd2Or2EmptyIdentities(t *testing.T) {
	if _, ok := And2().(Truth); !ok {
		t.Error("And2() of nothing should be Truth")
	}
	if _, ok := Or2().(Falsity); !ok {
		t.Error("Or2() of nothing should be Falsity")
	}
}

func TestForAllVCollapsesOnEmptyVars(t *testing.T) {
	body := PredAtom{Predicate: PredicateSym{Symbol: "p", Arity: 0}}
	if got := ForAllV(nil, body); got.String() != body.String() {
		t.Errorf("expected ForAllV with no vars to collapse to the body, got %v", got)
	}
}

func TestFreeVarsExcludesBoundNames(t *testing.T) {
	p := PredicateSym{Symbol: "p", Arity: 2}
	x := Var{Name: "X", Sort: General}
	y := Var{Name: "Y", Sort: General}
	f := Quant{Kind: ForAll, Vars: []Var{x}, Body: PredAtom{
		Predicate: p,
		Args:      []Term{GeneralVar{Var: x}, GeneralVar{Var: y}},
	}}
	fv := FreeVars(f)
	if fv.Contains("X") {
		t.Error("X is bound, should not be free")
	}
	if !fv.Contains("Y") {
		t.Error("Y is free, should be collected")
	}
}

func TestApplyRebuildsBottomUp(t *testing.T) {
	p := PredicateSym{Symbol: "p", Arity: 0}
	q := PredicateSym{Symbol: "q", Arity: 0}
	f := Not{X: PredAtom{Predicate: p}}

	// Replace every occurrence of p with q, bottom-up.
	rewrite := func(g Formula) Formula {
		if atom, ok := g.(PredAtom); ok && atom.Predicate == p {
			return PredAtom{Predicate: q}
		}
		return g
	}
	got := Apply(f, rewrite)
	if got.String() != "not q" {
		t.Errorf("got %q, want \"not q\"", got.String())
	}
}

func TestComparisonStringChainsGuards(t *testing.T) {
	x := Var{Name: "X", Sort: Integer}
	c := Comparison{
		Head: IntVar{Var: x},
		Guards: []Guard{
			{Rel: Lt, Term: IntNumeral{Value: 5}},
			{Rel: Le, Term: IntNumeral{Value: 10}},
		},
	}
	want := "X < 5 <= 10"
	if c.String() != want {
		t.Errorf("got %q, want %q", c.String(), want)
	}
}
