package val

import (
	"testing"

	"bitbucket.org/creachadair/stringset"
	"github.com/google/go-cmp/cmp"

	"github.com/tauverify/tau/asp"
	"github.com/tauverify/tau/fol"
	"github.com/tauverify/tau/fresh"
)

func TestValPrecomputedAndVariable(t *testing.T) {
	ch := fresh.NewChooser(stringset.New())
	z := fol.Var{Name: "Z", Sort: fol.General}

	got, err := Val(Original, asp.NewInt(3), z, ch)
	if err != nil {
		t.Fatal(err)
	}
	want := fol.NewComparison(fol.GeneralVar{Var: z}, fol.Eq, fol.IntNumeral{Value: 3})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Val(3, Z) mismatch (-want +got):\n%s", diff)
	}

	got, err = Val(Original, asp.Variable{Name: "X"}, z, ch)
	if err != nil {
		t.Fatal(err)
	}
	want = fol.NewComparison(fol.GeneralVar{Var: z}, fol.Eq, fol.GeneralVar{Var: fol.Var{Name: "X", Sort: fol.General}})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Val(X, Z) mismatch (-want +got):\n%s", diff)
	}
}

// freeVarNames collects the free variable names of t union {z}.
func freeVarNames(t asp.Term, z string) stringset.Set {
	m := make(map[asp.Variable]bool)
	t.Vars(m)
	s := stringset.New(z)
	for v := range m {
		s.Add(v.Name)
	}
	return s
}

func TestValFreeVariablesMatchTermPlusZ(t *testing.T) {
	terms := []asp.Term{
		asp.NewInt(3),
		asp.Variable{Name: "X"},
		asp.Unary{Op: asp.Neg, Term: asp.Variable{Name: "X"}},
		asp.Binary{Op: asp.Add, Left: asp.Variable{Name: "X"}, Right: asp.Variable{Name: "Y"}},
		asp.Binary{Op: asp.Interval, Left: asp.Variable{Name: "X"}, Right: asp.Variable{Name: "Y"}},
		asp.Binary{Op: asp.Div, Left: asp.Variable{Name: "X"}, Right: asp.NewInt(2)},
		asp.Binary{Op: asp.Mod, Left: asp.Variable{Name: "X"}, Right: asp.NewInt(2)},
	}
	for _, variant := range []Variant{Original, AbstractGringoCompliant} {
		for _, term := range terms {
			ch := fresh.NewChooser(stringset.New())
			z := fol.Var{Name: "Z", Sort: fol.General}
			f, err := Val(variant, term, z, ch)
			if err != nil {
				t.Fatalf("Val(%v, %v): %v", variant, term, err)
			}
			got := fol.FreeVars(f)
			want := freeVarNames(term, "Z")
			if missing := want.Diff(got); missing.Len() != 0 {
				t.Errorf("Val(%v) free vars %v missing expected %v", term, got, missing)
			}
			if extra := got.Diff(want); extra.Len() != 0 {
				t.Errorf("Val(%v) free vars %v include unexpected %v", term, got, extra)
			}
		}
	}
}

func TestValAbsRejectedUnderOriginal(t *testing.T) {
	ch := fresh.NewChooser(stringset.New())
	z := fol.Var{Name: "Z", Sort: fol.General}
	_, err := Val(Original, asp.Unary{Op: asp.Abs, Term: asp.NewInt(1)}, z, ch)
	if err == nil {
		t.Fatal("expected error for |t| under Original variant")
	}
}

func TestValDivisionAGVsLegacy(t *testing.T) {
	// val(3/(-2), Z): under AG semantics the bound forces K = 1 and,
	// since I*J = -6 < 0, Z = -K = -1; under the legacy variant the
	// remainder bound 0 <= R < -2 is unsatisfiable. We only check that
	// the two variants produce syntactically different formulas
	// (distinct semantics), matching scenario 4 of §8.
	ch1 := fresh.NewChooser(stringset.New())
	z := fol.Var{Name: "Z", Sort: fol.General}
	term := asp.Binary{Op: asp.Div, Left: asp.NewInt(3), Right: asp.NewInt(-2)}
	agForm, err := Val(AbstractGringoCompliant, term, z, ch1)
	if err != nil {
		t.Fatal(err)
	}
	ch2 := fresh.NewChooser(stringset.New())
	legacyForm, err := Val(Original, term, z, ch2)
	if err != nil {
		t.Fatal(err)
	}
	if agForm.String() == legacyForm.String() {
		t.Errorf("expected AG and legacy division formulas to differ, got identical: %s", agForm)
	}
}
