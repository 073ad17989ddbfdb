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
	"strings"
	"testing"

	"bitbucket.org/creachadair/stringset"

	"github.com/tauverify/tau/fol"
)

func TestSubstituteReplacesFreeOccurrences(t *testing.T) {
	p := fol.PredicateSym{Symbol: "p", Arity: 1}
	x := fol.Var{Name: "X", Sort: fol.General}
	f := fol.PredAtom{Predicate: p, Args: []fol.Term{fol.GeneralVar{Var: x}}}

	got, err := Substitute(f, x, fol.Symbol{Name: "a"})
	if err != nil {
		t.Fatalf("Substitute: %v", err)
	}
	if got.String() != "p(a)" {
		t.Errorf("got %q, want p(a)", got.String())
	}
}

func TestSubstituteNoopUnderRebindingQuantifier(t *testing.T) {
	p := fol.PredicateSym{Symbol: "p", Arity: 1}
	x := fol.Var{Name: "X", Sort: fol.General}
	inner := fol.ForAllV([]fol.Var{x}, fol.PredAtom{Predicate: p, Args: []fol.Term{fol.GeneralVar{Var: x}}})

	got, err := Substitute(inner, x, fol.Symbol{Name: "a"})
	if err != nil {
		t.Fatalf("Substitute: %v", err)
	}
	if got.String() != inner.String() {
		t.Errorf("expected rebinding quantifier to block substitution, got %q", got.String())
	}
}

func TestUnsafeDetectsCapture(t *testing.T) {
	q := fol.PredicateSym{Symbol: "q", Arity: 2}
	x := fol.Var{Name: "X", Sort: fol.General}
	y := fol.Var{Name: "Y", Sort: fol.General}

	// forall Y q(X,Y): X is free under the quantifier; substituting Y
	// (the bound variable) for X would capture it.
	f := fol.ForAllV([]fol.Var{y}, fol.PredAtom{Predicate: q, Args: []fol.Term{fol.GeneralVar{Var: x}, fol.GeneralVar{Var: y}}})

	if !Unsafe(f, x, fol.GeneralVar{Var: y}) {
		t.Error("expected substitution of Y for X to be flagged unsafe")
	}
	if _, err := Substitute(f, x, fol.GeneralVar{Var: y}); err == nil {
		t.Error("expected Substitute to reject an unsafe substitution")
	}
}

func TestAlphaRenameProducesFreshBoundNames(t *testing.T) {
	p := fol.PredicateSym{Symbol: "p", Arity: 1}
	x := fol.Var{Name: "X", Sort: fol.General}
	f := fol.ForAllV([]fol.Var{x}, fol.PredAtom{Predicate: p, Args: []fol.Term{fol.GeneralVar{Var: x}}})

	// X is already taken elsewhere, so the renamer must pick a distinct
	// indexed name rather than reuse it.
	renamed := AlphaRename(f, stringset.New("X"))
	if strings.Contains(renamed.String(), "p(X)") {
		t.Errorf("expected bound variable X to be renamed away from a taken name, got %q", renamed.String())
	}
	if !strings.Contains(renamed.String(), "X1") {
		t.Errorf("expected the chooser's first fresh name X1, got %q", renamed.String())
	}
}
