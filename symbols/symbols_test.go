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

package symbols

import (
	"testing"

	"github.com/tauverify/tau/fol"
)

func TestRewritePromotesIntegerPlaceholder(t *testing.T) {
	table, err := NewTable([]fol.Placeholder{{Name: "n", Sort: fol.Integer}, {Name: "a", Sort: fol.General}})
	if err != nil {
		t.Fatal(err)
	}
	f := fol.PredAtom{
		Predicate: fol.PredicateSym{Symbol: "p", Arity: 2},
		Args:      []fol.Term{fol.Symbol{Name: "n"}, fol.Symbol{Name: "a"}},
	}
	got := table.Rewrite(f).(fol.PredAtom)
	if _, ok := got.Args[0].(fol.IntSymbol); !ok {
		t.Errorf("expected placeholder n to be promoted to IntSymbol, got %T", got.Args[0])
	}
	if _, ok := got.Args[1].(fol.Symbol); !ok {
		t.Errorf("expected placeholder a to remain a general Symbol, got %T", got.Args[1])
	}
}

func TestNewTableRejectsDuplicateName(t *testing.T) {
	_, err := NewTable([]fol.Placeholder{{Name: "n", Sort: fol.Integer}, {Name: "n", Sort: fol.General}})
	if err == nil {
		t.Fatal("expected PlaceholderConflict for duplicate name")
	}
}

func TestNewTableRejectsReservedName(t *testing.T) {
	_, err := NewTable([]fol.Placeholder{{Name: "general", Sort: fol.General}})
	if err == nil {
		t.Fatal("expected PlaceholderConflict for reserved name")
	}
}
