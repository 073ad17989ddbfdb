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

// Package fresh provides the fresh-name chooser and the substitution
// utilities shared by every translation stage: tau_body's existential
// Z_i variables, tau*'s global variable list and completion's U_i all
// come from here.
package fresh

import (
	"fmt"

	"bitbucket.org/creachadair/stringset"

	"github.com/tauverify/tau/fol"
)

// Chooser yields fresh, deterministic names given a set of taken names.
// A Chooser instance is stateful only across the calls made through it;
// it carries no state beyond what was passed to NewChooser plus what it
// has itself yielded, so two Choosers seeded with the same taken set and
// driven with the same call sequence yield identical names.
type Chooser struct {
	taken stringset.Set
}

// NewChooser returns a Chooser that will never yield a name in taken.
// taken is copied; the caller's set is not mutated.
func NewChooser(taken stringset.Set) *Chooser {
	return &Chooser{taken: taken.Clone()}
}

// Next returns the least-indexed name stem, stem1, stem2, ... not already
// taken and not previously yielded by this Chooser, and marks it taken.
func (c *Chooser) Next(stem string) string {
	if !c.taken.Contains(stem) {
		c.taken.Add(stem)
		return stem
	}
	for i := 1; ; i++ {
		name := fmt.Sprintf("%s%d", stem, i)
		if !c.taken.Contains(name) {
			c.taken.Add(name)
			return name
		}
	}
}

// NextN returns n fresh names with the given stem, in ascending order.
func (c *Chooser) NextN(stem string, n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = c.Next(stem)
	}
	return names
}

// NextVar is a convenience wrapper returning a sorted fol.Var.
func (c *Chooser) NextVar(stem string, sort fol.Sort) fol.Var {
	return fol.Var{Name: c.Next(stem), Sort: sort}
}

// NextVarN returns n fresh sorted variables with the given stem.
func (c *Chooser) NextVarN(stem string, sort fol.Sort, n int) []fol.Var {
	vars := make([]fol.Var, n)
	for i := range vars {
		vars[i] = c.NextVar(stem, sort)
	}
	return vars
}
