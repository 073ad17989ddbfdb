package taustar

import (
	"strings"
	"testing"

	"github.com/tauverify/tau/asp"
	"github.com/tauverify/tau/val"
)

// TestTranslateConditionalRule mirrors the worked example of §4.4/§8:
// "p(X) :- q(X,Y) : t(Y)." The fresh head-value variable V is shared
// program-wide (sized to the max head arity); X is the rule's own
// variable and is quantified directly; Y is local to the conditional
// literal since it does not occur in the head.
func TestTranslateConditionalRule(t *testing.T) {
	rule := asp.Rule{
		Head: asp.Head{Kind: asp.HeadAtom, Atom: asp.NewAtom("p", asp.Variable{Name: "X"})},
		Body: asp.Body{
			{
				Kind: asp.ElementConditional,
				Cond: asp.ConditionalLiteral{
					Consequent: asp.Consequent{Atom: asp.NewAtom("q", asp.Variable{Name: "X"}, asp.Variable{Name: "Y"})},
					Guard:      []asp.Atom{asp.NewAtom("t", asp.Variable{Name: "Y"})},
				},
			},
		},
	}
	p := asp.Program{Rules: []asp.Rule{rule}}

	theory, err := Translate(val.Original, p)
	if err != nil {
		t.Fatal(err)
	}
	if len(theory) != 1 {
		t.Fatalf("expected one formula, got %d", len(theory))
	}
	got := theory[0].String()
	if got == "" {
		t.Fatal("empty formula string")
	}
	// The outer quantifier block must mention both the fresh value
	// variable and the rule's own variable X; Y must not appear there
	// since it is local to the conditional literal.
	if !containsAll(got, "V", "X", "p(V)") {
		t.Errorf("translated rule missing expected structure: %s", got)
	}
}

// TestTranslateConstraint checks a falsity-head rule (a constraint):
// ":- p(X), not q(X)." translates to "∀X (tau_body(B) -> #false)".
func TestTranslateConstraint(t *testing.T) {
	rule := asp.Rule{
		Head: asp.Head{Kind: asp.HeadFalsity},
		Body: asp.Body{
			{Kind: asp.ElementLiteral, Literal: asp.Literal{Sign: asp.Positive, Atom: asp.NewAtom("p", asp.Variable{Name: "X"})}},
			{Kind: asp.ElementLiteral, Literal: asp.Literal{Sign: asp.Negated, Atom: asp.NewAtom("q", asp.Variable{Name: "X"})}},
		},
	}
	p := asp.Program{Rules: []asp.Rule{rule}}

	theory, err := Translate(val.Original, p)
	if err != nil {
		t.Fatal(err)
	}
	got := theory[0].String()
	if !containsAll(got, "X", "#false") {
		t.Errorf("translated constraint missing expected structure: %s", got)
	}
}

// TestTranslatePropositionalChoice checks a choice head with no
// arguments: "{a}." translates with the extra not-not antecedent
// conjunct guarding stability.
func TestTranslatePropositionalChoice(t *testing.T) {
	rule := asp.Rule{
		Head: asp.Head{Kind: asp.HeadChoice, Atom: asp.NewAtom("a")},
	}
	p := asp.Program{Rules: []asp.Rule{rule}}

	theory, err := Translate(val.Original, p)
	if err != nil {
		t.Fatal(err)
	}
	got := theory[0].String()
	if !containsAll(got, "not not a", "-> a") {
		t.Errorf("translated choice rule missing expected structure: %s", got)
	}
}

// TestTranslateConstraintSharedConditionalVariable checks the case a
// head-only globals computation gets wrong: ":- t(X), q(X):p(X)." The
// variable X is shared between the plain literal t(X) and the
// conditional literal's consequent q(X), but never appears in the head
// (there is none; this is a constraint). X must be quantified exactly
// once, correlating t(X) with the conditional; it must not also appear
// as a locally-quantified variable inside the conditional's own block.
func TestTranslateConstraintSharedConditionalVariable(t *testing.T) {
	rule := asp.Rule{
		Head: asp.Head{Kind: asp.HeadFalsity},
		Body: asp.Body{
			{Kind: asp.ElementLiteral, Literal: asp.Literal{Sign: asp.Positive, Atom: asp.NewAtom("t", asp.Variable{Name: "X"})}},
			{
				Kind: asp.ElementConditional,
				Cond: asp.ConditionalLiteral{
					Consequent: asp.Consequent{Atom: asp.NewAtom("q", asp.Variable{Name: "X"})},
					Guard:      []asp.Atom{asp.NewAtom("p", asp.Variable{Name: "X"})},
				},
			},
		},
	}
	p := asp.Program{Rules: []asp.Rule{rule}}

	theory, err := Translate(val.Original, p)
	if err != nil {
		t.Fatal(err)
	}
	got := theory[0].String()

	// There must be exactly one quantifier block: the conditional's
	// variable X is global (shared with the plain literal t(X)), so it
	// carries no local variables of its own and ConditionalLiteral
	// collapses to a bare implication rather than a nested "forall X".
	if strings.Count(got, "forall") != 1 {
		t.Errorf("expected exactly one quantifier block, got %d in: %s", strings.Count(got, "forall"), got)
	}
	// Each literal evaluates X into its own fresh value variable, so the
	// correlation shows as Z = X, Z1 = X and Z2 = X under the one forall X.
	if !containsAll(got, "forall X", "Z = X and t(Z)", "Z1 = X and q(Z1)", "Z2 = X and p(Z2)") {
		t.Errorf("translated constraint missing expected structure: %s", got)
	}
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
