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

// Package decompose implements the equivalence-task decomposer: it
// partitions a program, a specification, a user guide and an optional
// proof outline into stable premises, directional premises and
// conclusions, and emits the ordered problems a prover must discharge,
// per §4.8.
package decompose

import (
	"fmt"
	"sort"

	"bitbucket.org/creachadair/stringset"
	"github.com/golang/glog"
	"go.uber.org/multierr"

	"github.com/tauverify/tau/asp"
	"github.com/tauverify/tau/completion"
	"github.com/tauverify/tau/depgraph"
	"github.com/tauverify/tau/fol"
	"github.com/tauverify/tau/simplify"
	"github.com/tauverify/tau/symbols"
	"github.com/tauverify/tau/taustar"
	"github.com/tauverify/tau/val"
	"github.com/tauverify/tau/verrors"
)

// Mode selects the equivalence notion under verification: External
// (classical, two models need only agree on the public interface) or
// Strong (every extension by a fresh rule must preserve equivalence,
// which simplification must respect by staying HT-sound).
type Mode int

const (
	External Mode = iota
	Strong
)

// Strategy selects how conjectures are grouped into problems.
type Strategy int

const (
	// Independent emits one problem per conjecture, each carrying every
	// axiom available in its direction.
	Independent Strategy = iota
	// Sequential emits problems in outline order; once a conjecture's
	// problem has been listed, it is promoted to an axiom of every
	// later problem in the same direction.
	Sequential
)

// Input bundles every parameter of a decomposition run.
type Input struct {
	Program   asp.Program
	Spec      fol.Specification
	UserGuide fol.UserGuide
	Outline   fol.ProofOutline
	Direction fol.Direction
	Variant   val.Variant
	Mode      Mode
	Strategy  Strategy
	Simplify  bool
}

// Problem is one self-contained proof obligation.
type Problem struct {
	Name       string
	Direction  fol.Direction
	Axioms     []fol.AnnotatedFormula
	Conjecture fol.AnnotatedFormula
}

// Result is the ordered problem list plus any non-fatal warnings.
type Result struct {
	Problems []Problem
	Warnings []verrors.Warning
}

// Decompose runs the full seven-step pipeline of §4.8.
func Decompose(in Input) (Result, error) {
	if err := validateUserGuide(in.Program, in.UserGuide); err != nil {
		return Result{}, err
	}
	table, err := symbols.NewTable(in.UserGuide.Placeholders)
	if err != nil {
		return Result{}, err
	}

	public := publicPredicates(in.UserGuide)
	known := make(map[fol.PredicateSym]bool)
	var warnings []verrors.Warning

	glog.V(1).Infof("decompose: translating program (%d rules), mode=%v", len(in.Program.Rules), in.Mode)
	pPrivate, pPublic, w, err := translateSide(in.Variant, in.Mode, in.Program, public, "program")
	if err != nil {
		return Result{}, err
	}
	warnings = append(warnings, w...)
	markKnown(known, pPrivate)
	markKnown(known, pPublic)

	var stable, forwardPremises, forwardConclusions, backwardPremises, backwardConclusions []fol.AnnotatedFormula

	stable = append(stable, pPrivate...)
	// P's public definitions are premises going forward (from P to S)
	// and conclusions coming back (from S to P).
	for _, d := range pPublic {
		d.Direction = fol.Forward
		forwardPremises = append(forwardPremises, d)
		d.Role = fol.RoleConjecture
		d.Direction = fol.Backward
		backwardConclusions = append(backwardConclusions, d)
	}

	if in.Spec.IsProgram() {
		glog.V(1).Infof("decompose: translating specification as a program")
		sPrivate, sPublic, w, err := translateSide(in.Variant, in.Mode, *in.Spec.Program, public, "specification-as-program")
		if err != nil {
			return Result{}, err
		}
		warnings = append(warnings, w...)
		markKnown(known, sPrivate)
		markKnown(known, sPublic)
		stable = append(stable, sPrivate...)
		for _, d := range sPublic {
			d.Direction = fol.Backward
			backwardPremises = append(backwardPremises, d)
			d.Role = fol.RoleConjecture
			d.Direction = fol.Forward
			forwardConclusions = append(forwardConclusions, d)
		}
		for _, a := range in.UserGuide.Assumptions {
			if a.Direction == fol.Backward {
				warnings = append(warnings, verrors.Warning{Message: fmt.Sprintf("ignoring backward assumption %q against a program-shaped specification", a.Name)})
				continue
			}
			stable = append(stable, a)
		}
	} else {
		for _, f := range in.Spec.Formulas {
			known[definitionPredicate(f)] = true
			switch f.Role {
			case fol.RoleAssumption:
				if f.Direction == fol.Forward || f.Direction == fol.Universal {
					forwardPremises = append(forwardPremises, f)
				}
				if f.Direction == fol.Backward || f.Direction == fol.Universal {
					backwardPremises = append(backwardPremises, f)
				}
			case fol.RoleConjecture:
				if f.Direction == fol.Forward || f.Direction == fol.Universal {
					forwardConclusions = append(forwardConclusions, f)
				}
				if f.Direction == fol.Backward || f.Direction == fol.Universal {
					backwardConclusions = append(backwardConclusions, f)
				}
			default:
				stable = append(stable, f)
			}
		}
		for _, a := range in.UserGuide.Assumptions {
			stable = append(stable, a)
		}
	}

	// Step 5: attach the proof outline.
	for _, def := range in.Outline.Definitions {
		w, err := validateOutlineDefinition(def, known)
		if err != nil {
			return Result{}, err
		}
		warnings = append(warnings, w...)
		known[definitionPredicate(def)] = true
		switch def.Direction {
		case fol.Forward:
			forwardPremises = append(forwardPremises, def)
		case fol.Backward:
			backwardPremises = append(backwardPremises, def)
		default:
			stable = append(stable, def)
		}
	}
	for _, lemma := range in.Outline.Lemmas {
		if lemma.Direction == fol.Forward || lemma.Direction == fol.Universal {
			forwardConclusions = append(forwardConclusions, lemma)
		}
		if lemma.Direction == fol.Backward || lemma.Direction == fol.Universal {
			backwardConclusions = append(backwardConclusions, lemma)
		}
	}

	// Placeholders are always resolved to their typed function constants
	// at the prover boundary, regardless of in.Simplify.
	for _, bucket := range [][]fol.AnnotatedFormula{stable, forwardPremises, forwardConclusions, backwardPremises, backwardConclusions} {
		for i := range bucket {
			bucket[i].Formula = table.Rewrite(bucket[i].Formula)
		}
	}

	if in.Mode == External {
		warnings = append(warnings, checkAssembledTightness(stable, forwardPremises, backwardPremises, known)...)
	}

	if in.Simplify {
		simp := simplify.Classical
		if in.Mode == Strong {
			simp = simplify.HT
		}
		for _, bucket := range [][]fol.AnnotatedFormula{stable, forwardPremises, forwardConclusions, backwardPremises, backwardConclusions} {
			for i := range bucket {
				bucket[i].Formula = simp(bucket[i].Formula)
			}
		}
	}

	nm := newNamer()
	var problems []Problem
	if in.Direction == fol.Forward || in.Direction == fol.Universal {
		problems = append(problems, emit(fol.Forward, stable, forwardPremises, forwardConclusions, in.Strategy, nm, &warnings)...)
	}
	if in.Direction == fol.Backward || in.Direction == fol.Universal {
		problems = append(problems, emit(fol.Backward, stable, backwardPremises, backwardConclusions, in.Strategy, nm, &warnings)...)
	}

	return Result{Problems: problems, Warnings: warnings}, nil
}

// translateSide translates one side of the equivalence claim and
// partitions it into private and public-predicate annotated formulas.
// In External mode the side is completed first (§4.5), so private/public
// definitions are iff-definitions and constraints are folded in as
// stable assumptions. In Strong mode (§9 supplement, strong equivalence)
// completion is skipped entirely: the raw tau* implications themselves
// are asserted directly as mutual premises/conclusions.
func translateSide(variant val.Variant, mode Mode, p asp.Program, public map[fol.PredicateSym]bool, label string) (private, pub []fol.AnnotatedFormula, warnings []verrors.Warning, err error) {
	theory, err := taustar.Translate(variant, p)
	if err != nil {
		return nil, nil, nil, err
	}

	if mode == Strong {
		wrapped := make([]fol.AnnotatedFormula, len(theory))
		for i, f := range theory {
			wrapped[i] = fol.AnnotatedFormula{Role: fol.RoleAssumption, Direction: fol.Universal, Formula: f}
		}
		private, pub = partition(wrapped, public)
		return private, pub, nil, nil
	}

	warnings = checkProgramTightness(theory, p, label)

	completed, err := completion.Complete(theory)
	if err != nil {
		return nil, nil, nil, err
	}
	private, pub = partition(completed.Definitions, public)
	for _, c := range completed.Constraints {
		private = append(private, fol.AnnotatedFormula{Role: fol.RoleAssumption, Direction: fol.Universal, Formula: c})
	}
	return private, pub, warnings, nil
}

// checkProgramTightness flags, via the raw tau*-shaped theory and
// depgraph's §4.7 algorithm, a program whose predicate-dependency graph
// is not tight. Completion's per-predicate iff-definitions faithfully
// capture such a program only up to loop formulas, whose generation is
// a spec non-goal, so a non-tight program is reported as a warning
// rather than silently accepted as exactly equivalent to its
// completion. Never called in Strong mode, which never completes.
func checkProgramTightness(theory fol.Theory, p asp.Program, label string) []verrors.Warning {
	intensional := make(map[fol.PredicateSym]bool)
	for sym := range p.HeadPredicates() {
		intensional[fol.PredicateSym{Symbol: sym.Symbol, Arity: sym.Arity}] = true
	}
	g := depgraph.FromCompletedTheory(theory, intensional)
	if g.Tight() {
		return nil
	}
	return []verrors.Warning{{Message: fmt.Sprintf(
		"%s is not tight: completion does not capture recursion through %v without loop formulas", label, g.Nodes())}}
}

// checkAssembledTightness re-checks tightness over the final assembled
// iff-definitions (program and specification completions, plus any
// proof-outline definitions layered on top) using depgraph's
// direct-from-formulas pass. A cycle introduced only by the combination
// of completions and outline definitions would not have been visible to
// checkProgramTightness's per-side check.
func checkAssembledTightness(stable, forwardPremises, backwardPremises []fol.AnnotatedFormula, known map[fol.PredicateSym]bool) []verrors.Warning {
	var formulas []fol.Formula
	for _, bucket := range [][]fol.AnnotatedFormula{stable, forwardPremises, backwardPremises} {
		for _, a := range bucket {
			formulas = append(formulas, a.Formula)
		}
	}
	g := depgraph.FromFormulas(formulas, known)
	if g.Tight() {
		return nil
	}
	return []verrors.Warning{{Message: fmt.Sprintf(
		"assembled definition set is not tight across %v", g.Nodes())}}
}

func publicPredicates(ug fol.UserGuide) map[fol.PredicateSym]bool {
	m := make(map[fol.PredicateSym]bool)
	for _, p := range ug.Input {
		m[p] = true
	}
	for _, p := range ug.Output {
		m[p] = true
	}
	return m
}

func partition(defs []fol.AnnotatedFormula, public map[fol.PredicateSym]bool) (private, pub []fol.AnnotatedFormula) {
	for _, d := range defs {
		if public[definitionPredicate(d)] {
			pub = append(pub, d)
		} else {
			private = append(private, d)
		}
	}
	return private, pub
}

func markKnown(known map[fol.PredicateSym]bool, defs []fol.AnnotatedFormula) {
	for _, d := range defs {
		known[definitionPredicate(d)] = true
	}
}

// definitionPredicate extracts the head predicate of a completed
// definition ∀ū (p(ū) ↔ F), or of a raw tau* implication
// ∀ū (... -> p(ū)) used directly in Strong mode; the zero value if f is
// neither shape (e.g. a constraint, headed by falsity).
func definitionPredicate(f fol.AnnotatedFormula) fol.PredicateSym {
	body := f.Formula
	if q, ok := body.(fol.Quant); ok {
		body = q.Body
	}
	if b, ok := body.(fol.Binary); ok {
		switch b.Op {
		case fol.Iff:
			if a, ok := b.Left.(fol.PredAtom); ok {
				return a.Predicate
			}
		case fol.Implies:
			if a, ok := b.Right.(fol.PredAtom); ok {
				return a.Predicate
			}
		}
	}
	if a, ok := body.(fol.PredAtom); ok {
		return a.Predicate
	}
	return fol.PredicateSym{}
}

func validateUserGuide(p asp.Program, ug fol.UserGuide) error {
	input := make(map[fol.PredicateSym]bool)
	for _, sym := range ug.Input {
		input[sym] = true
	}
	output := make(map[fol.PredicateSym]bool)
	for _, sym := range ug.Output {
		output[sym] = true
	}

	var overlap []string
	for sym := range input {
		if output[sym] {
			overlap = append(overlap, sym.String())
		}
	}
	sort.Strings(overlap)

	heads := p.HeadPredicates()
	var asHead []string
	for sym := range input {
		if heads[asp.PredicateSym{Symbol: sym.Symbol, Arity: sym.Arity}] {
			asHead = append(asHead, sym.String())
		}
	}
	sort.Strings(asHead)

	var errs error
	if len(overlap) > 0 {
		errs = multierr.Append(errs, &verrors.InputOutputPredicateOverlap{Predicates: overlap})
	}
	if len(asHead) > 0 {
		errs = multierr.Append(errs, &verrors.InputPredicateAsRuleHead{Predicates: asHead})
	}
	return errs
}

// validateOutlineDefinition checks the shape constraint of §3: the
// formula must be ∀x̄ (p(x̄) ↔ F) with x̄ duplicate-free, p fresh, and
// every predicate of F already known. A bound-variable list that does
// not exactly match FV(F) is a warning, not a fatal error, per §4.8.
func validateOutlineDefinition(def fol.AnnotatedFormula, known map[fol.PredicateSym]bool) ([]verrors.Warning, error) {
	q, ok := def.Formula.(fol.Quant)
	if !ok || q.Kind != fol.ForAll {
		return nil, &verrors.ProofOutlineMalformed{Formula: def.Formula.String(), Reason: "not a universal closure"}
	}
	iff, ok := q.Body.(fol.Binary)
	if !ok || iff.Op != fol.Iff {
		return nil, &verrors.ProofOutlineMalformed{Formula: def.Formula.String(), Reason: "body is not an equivalence"}
	}
	head, ok := iff.Left.(fol.PredAtom)
	if !ok {
		return nil, &verrors.ProofOutlineMalformed{Formula: def.Formula.String(), Reason: "left-hand side is not an atom"}
	}

	seen := make(map[string]bool)
	for _, v := range q.Vars {
		if seen[v.Name] {
			return nil, &verrors.ProofOutlineMalformed{Formula: def.Formula.String(), Reason: "duplicate bound variable " + v.Name}
		}
		seen[v.Name] = true
	}
	if known[head.Predicate] {
		return nil, &verrors.DefinitionHeadNotFresh{Predicate: head.Predicate.String()}
	}
	for _, p := range predicatesOf(iff.Right) {
		if !known[p] {
			return nil, &verrors.ProofOutlineMalformed{Formula: def.Formula.String(), Reason: "unknown predicate " + p.String()}
		}
	}

	var warnings []verrors.Warning
	free := fol.FreeVars(iff.Right)
	bound := stringset.New()
	for _, v := range q.Vars {
		bound.Add(v.Name)
	}
	if free.Len() != bound.Len() || free.Diff(bound).Len() != 0 {
		warnings = append(warnings, verrors.Warning{Message: "proof outline definition " + head.Predicate.String() + ": bound variables do not match free variables of the right-hand side"})
	}
	return warnings, nil
}

func predicatesOf(f fol.Formula) []fol.PredicateSym {
	var out []fol.PredicateSym
	switch t := f.(type) {
	case fol.PredAtom:
		out = append(out, t.Predicate)
	case fol.Not:
		out = append(out, predicatesOf(t.X)...)
	case fol.Binary:
		out = append(out, predicatesOf(t.Left)...)
		out = append(out, predicatesOf(t.Right)...)
	case fol.Quant:
		out = append(out, predicatesOf(t.Body)...)
	}
	return out
}

func emit(dir fol.Direction, stable, premises, conclusions []fol.AnnotatedFormula, strategy Strategy, nm *namer, warnings *[]verrors.Warning) []Problem {
	base := make([]fol.AnnotatedFormula, 0, len(stable)+len(premises))
	base = append(base, stable...)
	base = append(base, premises...)

	var problems []Problem
	switch strategy {
	case Independent:
		named := make([]fol.AnnotatedFormula, len(base))
		for i, a := range base {
			named[i] = nm.nameFormula(a, warnings)
		}
		for _, c := range conclusions {
			axioms := make([]fol.AnnotatedFormula, len(named))
			copy(axioms, named)
			problems = append(problems, Problem{Name: nm.problemName(dir), Direction: dir, Axioms: axioms, Conjecture: nm.nameFormula(c, warnings)})
		}
	case Sequential:
		axioms := make([]fol.AnnotatedFormula, 0, len(base)+len(conclusions))
		for _, a := range base {
			axioms = append(axioms, nm.nameFormula(a, warnings))
		}
		for _, c := range conclusions {
			named := nm.nameFormula(c, warnings)
			snapshot := make([]fol.AnnotatedFormula, len(axioms))
			copy(snapshot, axioms)
			problems = append(problems, Problem{Name: nm.problemName(dir), Direction: dir, Axioms: snapshot, Conjecture: named})
			promoted := named
			promoted.Role = fol.RoleAssumption
			axioms = append(axioms, promoted)
		}
	}
	return problems
}
