package depgraph

import (
	"testing"

	"github.com/tauverify/tau/fol"
)

func predSym(name string) fol.PredicateSym { return fol.PredicateSym{Symbol: name, Arity: 1} }

func atom(name string, v fol.Var) fol.PredAtom {
	return fol.PredAtom{Predicate: predSym(name), Args: []fol.Term{fol.GeneralVar{Var: v}}}
}

// TestTightnessPositiveCycle mirrors scenario 2 of §8: mutually
// defined p and q are not tight.
func TestTightnessPositiveCycle(t *testing.T) {
	x := fol.Var{Name: "X", Sort: fol.General}
	intensional := map[fol.PredicateSym]bool{predSym("p"): true, predSym("q"): true}
	theory := fol.Theory{
		fol.Quant{Kind: fol.ForAll, Vars: []fol.Var{x}, Body: fol.Binary{Op: fol.Implies, Left: atom("q", x), Right: atom("p", x)}},
		fol.Quant{Kind: fol.ForAll, Vars: []fol.Var{x}, Body: fol.Binary{Op: fol.Implies, Left: atom("p", x), Right: atom("q", x)}},
	}
	g := FromCompletedTheory(theory, intensional)
	if g.Tight() {
		t.Errorf("expected mutually-defined p/q to be non-tight")
	}
}

// TestTightnessNegative mirrors scenario 3 of §8: a negated body
// occurrence contributes no edge, so the theory is tight.
func TestTightnessNegative(t *testing.T) {
	x := fol.Var{Name: "X", Sort: fol.General}
	intensional := map[fol.PredicateSym]bool{predSym("p"): true, predSym("q"): true}
	theory := fol.Theory{
		fol.Quant{Kind: fol.ForAll, Vars: []fol.Var{x}, Body: fol.Binary{Op: fol.Implies, Left: fol.Not{X: atom("q", x)}, Right: atom("p", x)}},
	}
	g := FromCompletedTheory(theory, intensional)
	if !g.Tight() {
		t.Errorf("expected theory with only a negated dependency to be tight")
	}
}
