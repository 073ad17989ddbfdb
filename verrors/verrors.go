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

// Package verrors declares the typed fatal error kinds and the
// non-fatal Warning type shared by every stage of the pipeline, per §7.
package verrors

import "fmt"

// InputOutputPredicateOverlap reports predicates declared both input
// and output in a user guide.
type InputOutputPredicateOverlap struct {
	Predicates []string
}

func (e *InputOutputPredicateOverlap) Error() string {
	return fmt.Sprintf("verrors: predicates declared both input and output: %v", e.Predicates)
}

// InputPredicateAsRuleHead reports input predicates that occur as a
// program-rule head.
type InputPredicateAsRuleHead struct {
	Predicates []string
}

func (e *InputPredicateAsRuleHead) Error() string {
	return fmt.Sprintf("verrors: input predicates used as rule heads: %v", e.Predicates)
}

// ProofOutlineMalformed reports a proof-outline definition that fails
// the shape constraint of §3.
type ProofOutlineMalformed struct {
	Formula string
	Reason  string
}

func (e *ProofOutlineMalformed) Error() string {
	return fmt.Sprintf("verrors: malformed proof-outline definition %q: %s", e.Formula, e.Reason)
}

// DefinitionHeadNotFresh reports a definition whose head predicate is
// already known (previously defined or declared public/private).
type DefinitionHeadNotFresh struct {
	Predicate string
}

func (e *DefinitionHeadNotFresh) Error() string {
	return fmt.Sprintf("verrors: definition head %q is not fresh", e.Predicate)
}

// CompletionNotApplicable reports a head atom occurring outside a
// universally-closed implication.
type CompletionNotApplicable struct {
	Formula string
}

func (e *CompletionNotApplicable) Error() string {
	return fmt.Sprintf("verrors: completion is not applicable to %q", e.Formula)
}

// UnsafeSubstitution reports a substitution that would capture a
// bound variable.
type UnsafeSubstitution struct {
	Variable string
	Term     string
}

func (e *UnsafeSubstitution) Error() string {
	return fmt.Sprintf("verrors: substituting %s for %s would capture a bound variable", e.Term, e.Variable)
}

// SortMismatch reports an integer-sorted variable substituted by a
// non-integer term.
type SortMismatch struct {
	Variable string
	Term     string
}

func (e *SortMismatch) Error() string {
	return fmt.Sprintf("verrors: sort mismatch substituting %s for integer-sorted %s", e.Term, e.Variable)
}

// PlaceholderConflict reports a placeholder name colliding with a
// function-constant name at the prover boundary.
type PlaceholderConflict struct {
	Name string
}

func (e *PlaceholderConflict) Error() string {
	return fmt.Sprintf("verrors: placeholder %q collides with a function constant", e.Name)
}

// Warning is a non-fatal condition carried alongside a result.
type Warning struct {
	Message string
}

func (w Warning) String() string { return w.Message }
