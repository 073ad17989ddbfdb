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

import "github.com/tauverify/tau/asp"

// Specification is the target side of an equivalence claim: either
// another program (translated the same way as the source) or a
// first-order specification given directly as annotated formulas. Exactly
// one of Program or Formulas is populated.
type Specification struct {
	Program  *asp.Program
	Formulas []AnnotatedFormula
}

// IsProgram reports whether this specification is program-shaped.
func (s Specification) IsProgram() bool {
	return s.Program != nil
}
