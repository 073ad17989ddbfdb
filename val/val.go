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

// Package val implements the val family: val(t, z) is a formula whose
// models are exactly those assignments under which z equals the value of
// the program term t. Two semantic variants coexist (Original and
// Abstract-Gringo-Compliant); callers select one per translation
// invocation via Variant and must not mix them within a single
// translation.
package val

import (
	"fmt"

	"github.com/tauverify/tau/asp"
	"github.com/tauverify/tau/fol"
	"github.com/tauverify/tau/fresh"
)

// Variant selects which semantics division and absolute value follow.
type Variant int

const (
	// Original is the legacy division/modulo semantics: truncation
	// behavior is defined via Euclidean decomposition and does not
	// special-case negative divisors. Absolute value is not supported.
	Original Variant = iota
	// AbstractGringoCompliant handles negative divisors per the
	// Abstract Gringo specification and supports absolute value.
	AbstractGringoCompliant
)

// Val returns val(t, z): a formula whose free variables are FV(t) ∪ {z},
// true exactly for assignments under which z equals the value of t.
func Val(variant Variant, t asp.Term, z fol.Var, ch *fresh.Chooser) (fol.Formula, error) {
	switch term := t.(type) {
	case asp.Pre:
		c, err := constantTerm(term)
		if err != nil {
			return nil, err
		}
		return eq(z, c), nil

	case asp.Variable:
		return eq(z, varTerm(fol.Var{Name: term.Name, Sort: fol.General})), nil

	case asp.Unary:
		switch term.Op {
		case asp.Abs:
			if variant != AbstractGringoCompliant {
				return nil, fmt.Errorf("val: absolute value is only defined under the Abstract-Gringo-Compliant variant")
			}
			i := ch.NextVar("I", fol.Integer)
			valI, err := Val(variant, term.Term, i, ch)
			if err != nil {
				return nil, err
			}
			return fol.ExistsV([]fol.Var{i}, fol.And2(
				eq(z, fol.IntAbs{X: varTerm(i)}),
				valI,
			)), nil
		default: // Neg
			i := ch.NextVar("I", fol.Integer)
			j := ch.NextVar("J", fol.Integer)
			valI, err := Val(variant, asp.NewInt(0), i, ch) // val(0, I)
			if err != nil {
				return nil, err
			}
			valJ, err := Val(variant, term.Term, j, ch)
			if err != nil {
				return nil, err
			}
			return fol.ExistsV([]fol.Var{i, j}, fol.And2(
				eq(z, fol.IntBinary{Op: fol.ArithSub, Left: varTerm(i), Right: varTerm(j)}),
				valI,
				valJ,
			)), nil
		}

	case asp.Binary:
		switch term.Op {
		case asp.Add, asp.Sub, asp.Mul:
			return valArith(variant, term, z, ch)
		case asp.Interval:
			return valInterval(variant, term, z, ch)
		case asp.Div:
			return valDiv(variant, term, z, ch)
		case asp.Mod:
			return valMod(variant, term, z, ch)
		}
	}
	return nil, fmt.Errorf("val: unhandled term shape %T", t)
}

func valArith(variant Variant, term asp.Binary, z fol.Var, ch *fresh.Chooser) (fol.Formula, error) {
	i := ch.NextVar("I", fol.Integer)
	j := ch.NextVar("J", fol.Integer)
	valI, err := Val(variant, term.Left, i, ch)
	if err != nil {
		return nil, err
	}
	valJ, err := Val(variant, term.Right, j, ch)
	if err != nil {
		return nil, err
	}
	var op fol.ArithOp
	switch term.Op {
	case asp.Add:
		op = fol.ArithAdd
	case asp.Sub:
		op = fol.ArithSub
	case asp.Mul:
		op = fol.ArithMul
	}
	return fol.ExistsV([]fol.Var{i, j}, fol.And2(
		eq(z, fol.IntBinary{Op: op, Left: varTerm(i), Right: varTerm(j)}),
		valI,
		valJ,
	)), nil
}

func valInterval(variant Variant, term asp.Binary, z fol.Var, ch *fresh.Chooser) (fol.Formula, error) {
	i := ch.NextVar("I", fol.Integer)
	j := ch.NextVar("J", fol.Integer)
	k := ch.NextVar("K", fol.Integer)
	valI, err := Val(variant, term.Left, i, ch)
	if err != nil {
		return nil, err
	}
	valJ, err := Val(variant, term.Right, j, ch)
	if err != nil {
		return nil, err
	}
	chain := fol.Comparison{
		Head:   varTerm(i),
		Guards: []fol.Guard{{Rel: fol.Le, Term: varTerm(k)}, {Rel: fol.Le, Term: varTerm(j)}},
	}
	return fol.ExistsV([]fol.Var{i, j, k}, fol.And2(
		valI,
		valJ,
		eq(z, varTerm(k)),
		chain,
	)), nil
}

// valDiv implements the division row of §4.2.
func valDiv(variant Variant, term asp.Binary, z fol.Var, ch *fresh.Chooser) (fol.Formula, error) {
	i := ch.NextVar("I", fol.Integer)
	j := ch.NextVar("J", fol.Integer)
	valI, err := Val(variant, term.Left, i, ch)
	if err != nil {
		return nil, err
	}
	valJ, err := Val(variant, term.Right, j, ch)
	if err != nil {
		return nil, err
	}
	switch variant {
	case Original:
		q := ch.NextVar("Q", fol.Integer)
		r := ch.NextVar("R", fol.Integer)
		return fol.ExistsV([]fol.Var{i, j, q, r}, fol.And2(
			valI, valJ,
			eq(varTerm(i), fol.IntBinary{Op: fol.ArithAdd,
				Left:  fol.IntBinary{Op: fol.ArithMul, Left: varTerm(j), Right: varTerm(q)},
				Right: varTerm(r)}),
			neZero(j),
			remainderBound(r, j),
			eq(z, varTerm(q)),
		)), nil
	default: // AbstractGringoCompliant
		k := ch.NextVar("K", fol.Integer)
		bound := agBound(i, j, k)
		disj := signSplit(i, j, z, varTerm(k), negate(varTerm(k)))
		return fol.ExistsV([]fol.Var{i, j, k}, fol.And2(valI, valJ, bound, disj)), nil
	}
}

// valMod implements the modulo row of §4.2.
func valMod(variant Variant, term asp.Binary, z fol.Var, ch *fresh.Chooser) (fol.Formula, error) {
	i := ch.NextVar("I", fol.Integer)
	j := ch.NextVar("J", fol.Integer)
	valI, err := Val(variant, term.Left, i, ch)
	if err != nil {
		return nil, err
	}
	valJ, err := Val(variant, term.Right, j, ch)
	if err != nil {
		return nil, err
	}
	switch variant {
	case Original:
		q := ch.NextVar("Q", fol.Integer)
		r := ch.NextVar("R", fol.Integer)
		return fol.ExistsV([]fol.Var{i, j, q, r}, fol.And2(
			valI, valJ,
			eq(varTerm(i), fol.IntBinary{Op: fol.ArithAdd,
				Left:  fol.IntBinary{Op: fol.ArithMul, Left: varTerm(j), Right: varTerm(q)},
				Right: varTerm(r)}),
			neZero(j),
			remainderBound(r, j),
			eq(z, varTerm(r)),
		)), nil
	default: // AbstractGringoCompliant
		k := ch.NextVar("K", fol.Integer)
		bound := agBound(i, j, k)
		kj := fol.IntBinary{Op: fol.ArithMul, Left: varTerm(k), Right: varTerm(j)}
		minus := fol.IntBinary{Op: fol.ArithSub, Left: varTerm(i), Right: kj}
		plus := fol.IntBinary{Op: fol.ArithAdd, Left: varTerm(i), Right: kj}
		disj := signSplit(i, j, z, minus, plus)
		return fol.ExistsV([]fol.Var{i, j, k}, fol.And2(valI, valJ, bound, disj)), nil
	}
}

// agBound builds "K * |J| <= |I| < (K+1) * |J|".
func agBound(i, j, k fol.Var) fol.Formula {
	absI := fol.IntAbs{X: varTerm(i)}
	absJ := fol.IntAbs{X: varTerm(j)}
	kAbsJ := fol.IntBinary{Op: fol.ArithMul, Left: varTerm(k), Right: absJ}
	kPlus1AbsJ := fol.IntBinary{Op: fol.ArithMul,
		Left:  fol.IntBinary{Op: fol.ArithAdd, Left: varTerm(k), Right: fol.IntNumeral{Value: 1}},
		Right: absJ}
	return fol.Comparison{
		Head:   kAbsJ,
		Guards: []fol.Guard{{Rel: fol.Le, Term: absI}, {Rel: fol.Lt, Term: kPlus1AbsJ}},
	}
}

// signSplit builds "(I*J >= 0 /\ z = posVal) \/ (I*J < 0 /\ z = negVal)".
func signSplit(i, j, z fol.Var, posVal, negVal fol.Term) fol.Formula {
	ij := fol.IntBinary{Op: fol.ArithMul, Left: varTerm(i), Right: varTerm(j)}
	nonneg := fol.And2(
		fol.NewComparison(ij, fol.Ge, fol.IntNumeral{Value: 0}),
		eq(z, posVal),
	)
	neg := fol.And2(
		fol.NewComparison(ij, fol.Lt, fol.IntNumeral{Value: 0}),
		eq(z, negVal),
	)
	return fol.Or2(nonneg, neg)
}

func negate(t fol.Term) fol.Term {
	return fol.IntNeg{X: t}
}

func neZero(j fol.Var) fol.Formula {
	return fol.NewComparison(varTerm(j), fol.Ne, fol.IntNumeral{Value: 0})
}

// remainderBound builds "0 <= R < J" for the legacy division decomposition.
func remainderBound(r, j fol.Var) fol.Formula {
	return fol.Comparison{
		Head:   fol.IntNumeral{Value: 0},
		Guards: []fol.Guard{{Rel: fol.Le, Term: varTerm(r)}, {Rel: fol.Lt, Term: varTerm(j)}},
	}
}

func constantTerm(p asp.Pre) (fol.Term, error) {
	switch p.Kind {
	case asp.Infimum:
		return fol.IntInfimum{}, nil
	case asp.Supremum:
		return fol.IntSupremum{}, nil
	case asp.IntegerNumeral:
		v, err := p.Int32()
		if err != nil {
			return nil, err
		}
		return fol.IntNumeral{Value: v}, nil
	case asp.SymbolicConstant:
		return fol.Symbol{Name: p.Symbol}, nil
	default:
		return nil, fmt.Errorf("val: unhandled precomputed kind %v", p.Kind)
	}
}

// varTerm renders a sorted variable as the matching term shape.
func varTerm(v fol.Var) fol.Term {
	if v.Sort == fol.Integer {
		return fol.IntVar{Var: v}
	}
	return fol.GeneralVar{Var: v}
}

func eq(z fol.Var, t fol.Term) fol.Formula {
	return fol.NewComparison(varTerm(z), fol.Eq, t)
}
