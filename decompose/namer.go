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

package decompose

import (
	"fmt"

	"github.com/tauverify/tau/fol"
	"github.com/tauverify/tau/verrors"
)

// namer assigns unique problem and formula names across an entire
// decomposition run, per the renaming step of §4.8.
type namer struct {
	problemSeq int
	formulaSeq int
	seen       map[string]bool
}

func newNamer() *namer {
	return &namer{seen: make(map[string]bool)}
}

func (n *namer) problemName(dir fol.Direction) string {
	n.problemSeq++
	return fmt.Sprintf("%s-%d", directionWord(dir), n.problemSeq)
}

// nameFormula returns f with a guaranteed non-empty, unique Name. An
// empty name is assigned a fresh one silently; a colliding name is
// renamed with a warning.
func (n *namer) nameFormula(f fol.AnnotatedFormula, warnings *[]verrors.Warning) fol.AnnotatedFormula {
	name := f.Name
	if name == "" {
		n.formulaSeq++
		name = fmt.Sprintf("f%d", n.formulaSeq)
	} else if n.seen[name] {
		original := name
		for {
			n.formulaSeq++
			name = fmt.Sprintf("%s_%d", original, n.formulaSeq)
			if !n.seen[name] {
				break
			}
		}
		*warnings = append(*warnings, verrors.Warning{Message: fmt.Sprintf("renamed colliding formula %q to %q", original, name)})
	}
	n.seen[name] = true
	f.Name = name
	return f
}

func directionWord(dir fol.Direction) string {
	switch dir {
	case fol.Forward:
		return "forward"
	case fol.Backward:
		return "backward"
	default:
		return "universal"
	}
}
