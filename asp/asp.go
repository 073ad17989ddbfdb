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

// Package asp contains the abstract syntax tree of the rule-based logic
// language (the "answer set program" under test): terms, literals,
// comparisons, rules and programs. The parser that produces this AST is
// outside the scope of this module; asp only owns the shapes it consumes.
package asp

import (
	"fmt"
	"math/big"
	"strings"
)

// PreKind distinguishes the kinds of precomputed term.
type PreKind int

const (
	// Infimum is the least element, written #inf.
	Infimum PreKind = iota
	// Supremum is the greatest element, written #sup.
	Supremum
	// IntegerNumeral is a signed, arbitrary-width integer literal.
	IntegerNumeral
	// SymbolicConstant is an uninterpreted constant symbol.
	SymbolicConstant
)

// Term is a program term: precomputed value, program variable, unary
// negation, or a binary operation over {add, subtract, multiply, divide,
// modulo, interval}.
type Term interface {
	isTerm()
	String() string
	// Vars returns the set of program variables occurring in this term,
	// added to the given map.
	Vars(map[Variable]bool)
}

// Pre is a precomputed term: #inf, #sup, an integer numeral, or a symbolic
// constant. Integer numerals carry arbitrary-width magnitude where
// practical; Int32 reports the prover-boundary 32-bit value and an error
// if the value does not fit.
type Pre struct {
	Kind   PreKind
	Number *big.Int // valid when Kind == IntegerNumeral
	Symbol string   // valid when Kind == SymbolicConstant
}

func (Pre) isTerm() {}

func (p Pre) Vars(map[Variable]bool) {}

// Int32 returns the prover-boundary 32-bit representation of an integer
// numeral, or an error if the numeral overflows int32.
func (p Pre) Int32() (int32, error) {
	if p.Kind != IntegerNumeral {
		return 0, fmt.Errorf("asp: %v is not an integer numeral", p)
	}
	if !p.Number.IsInt64() {
		return 0, fmt.Errorf("asp: numeral %s does not fit in int64", p.Number)
	}
	v := p.Number.Int64()
	if v < -(1<<31) || v > (1<<31)-1 {
		return 0, fmt.Errorf("asp: numeral %s overflows the 32-bit prover boundary", p.Number)
	}
	return int32(v), nil
}

func (p Pre) String() string {
	switch p.Kind {
	case Infimum:
		return "#inf"
	case Supremum:
		return "#sup"
	case IntegerNumeral:
		return p.Number.String()
	case SymbolicConstant:
		return p.Symbol
	default:
		return "?"
	}
}

// NewInt constructs an integer-numeral term from an int64.
func NewInt(v int64) Pre {
	return Pre{Kind: IntegerNumeral, Number: big.NewInt(v)}
}

// NewBigInt constructs an integer-numeral term from an arbitrary-width value.
func NewBigInt(v *big.Int) Pre {
	return Pre{Kind: IntegerNumeral, Number: new(big.Int).Set(v)}
}

// NewSymbol constructs a symbolic-constant term.
func NewSymbol(sym string) Pre {
	return Pre{Kind: SymbolicConstant, Symbol: sym}
}

// Inf is the #inf precomputed term.
var Inf = Pre{Kind: Infimum}

// Sup is the #sup precomputed term.
var Sup = Pre{Kind: Supremum}

// Variable is a program variable; by convention its name starts with an
// uppercase letter.
type Variable struct {
	Name string
}

func (Variable) isTerm() {}

func (v Variable) String() string { return v.Name }

func (v Variable) Vars(m map[Variable]bool) { m[v] = true }

// UnaryOp distinguishes unary term operators.
type UnaryOp int

const (
	// Neg is arithmetic negation, -t.
	Neg UnaryOp = iota
	// Abs is absolute value, |t|. Only meaningful under the
	// Abstract-Gringo-Compliant val variant.
	Abs
)

// Unary is a unary operation applied to a term.
type Unary struct {
	Op   UnaryOp
	Term Term
}

func (Unary) isTerm() {}

func (u Unary) Vars(m map[Variable]bool) { u.Term.Vars(m) }

func (u Unary) String() string {
	switch u.Op {
	case Abs:
		return fmt.Sprintf("|%s|", u.Term)
	default:
		return fmt.Sprintf("-%s", u.Term)
	}
}

// BinOp distinguishes binary term operators.
type BinOp int

const (
	// Add is t1 + t2.
	Add BinOp = iota
	// Sub is t1 - t2.
	Sub
	// Mul is t1 * t2.
	Mul
	// Div is integer division, written "/"; val's expansion of Div
	// depends on the selected val.Variant (Original vs.
	// Abstract-Gringo-Compliant).
	Div
	// Mod is integer modulo, written "\" or "%"; like Div, its val
	// expansion depends on the selected variant.
	Mod
	// Interval is t1 .. t2, the integer range [t1, t2].
	Interval
)

var binOpSymbol = map[BinOp]string{
	Add:      "+",
	Sub:      "-",
	Mul:      "*",
	Div:      "/",
	Mod:      "\\",
	Interval: "..",
}

// Binary is a binary operation over two terms.
type Binary struct {
	Op          BinOp
	Left, Right Term
}

func (Binary) isTerm() {}

func (b Binary) Vars(m map[Variable]bool) {
	b.Left.Vars(m)
	b.Right.Vars(m)
}

func (b Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, binOpSymbol[b.Op], b.Right)
}

// Sign is the polarity of a literal: unnegated, singly negated ("not"),
// or doubly negated ("not not").
type Sign int

const (
	// Positive is an unnegated literal.
	Positive Sign = iota
	// Negated is a singly-negated literal ("default negation").
	Negated
	// DoubleNegated is a doubly-negated literal.
	DoubleNegated
)

// PredicateSym identifies a predicate by symbol and arity; predicate
// identity is the pair, so distinct arities are distinct predicates.
type PredicateSym struct {
	Symbol string
	Arity  int
}

func (p PredicateSym) String() string {
	return fmt.Sprintf("%s/%d", p.Symbol, p.Arity)
}

// Atom is a predicate symbol applied to an ordered term list.
type Atom struct {
	Predicate PredicateSym
	Args      []Term
}

func (a Atom) Vars(m map[Variable]bool) {
	for _, t := range a.Args {
		t.Vars(m)
	}
}

func (a Atom) String() string {
	if len(a.Args) == 0 {
		return a.Predicate.Symbol
	}
	parts := make([]string, len(a.Args))
	for i, t := range a.Args {
		parts[i] = t.String()
	}
	return fmt.Sprintf("%s(%s)", a.Predicate.Symbol, strings.Join(parts, ","))
}

// NewAtom is a convenience constructor.
func NewAtom(sym string, args ...Term) Atom {
	return Atom{PredicateSym{sym, len(args)}, args}
}

// Literal pairs a sign with an atom.
type Literal struct {
	Sign Sign
	Atom Atom
}

func (l Literal) String() string {
	switch l.Sign {
	case Negated:
		return "not " + l.Atom.String()
	case DoubleNegated:
		return "not not " + l.Atom.String()
	default:
		return l.Atom.String()
	}
}

// Relation is a comparison operator between two terms.
type Relation int

const (
	// Eq is =.
	Eq Relation = iota
	// Ne is !=.
	Ne
	// Lt is <.
	Lt
	// Le is <=.
	Le
	// Gt is >.
	Gt
	// Ge is >=.
	Ge
)

func (r Relation) String() string {
	switch r {
	case Eq:
		return "="
	case Ne:
		return "!="
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	case Ge:
		return ">="
	default:
		return "?"
	}
}

// Comparison is a body comparison t1 R t2.
type Comparison struct {
	Rel         Relation
	Left, Right Term
}

func (c Comparison) String() string {
	return fmt.Sprintf("%s %s %s", c.Left, c.Rel, c.Right)
}

// Consequent is the consequent of a conditional literal: either an atom
// or falsity.
type Consequent struct {
	IsFalsity bool
	Atom      Atom
}

// ConditionalLiteral pairs a consequent with an ordered sequence of body
// atoms acting as a local guard: "H : C1,...,Cm".
type ConditionalLiteral struct {
	Consequent Consequent
	Guard      []Atom
}

// Body is the ordered sequence of a rule's conditional literals. A plain
// (unconditional) body literal/comparison is wrapped as a BodyElement.
type Body []BodyElement

// BodyElementKind distinguishes the three shapes a body position can take.
type BodyElementKind int

const (
	// ElementLiteral is a plain literal (no local guard).
	ElementLiteral BodyElementKind = iota
	// ElementComparison is a plain comparison.
	ElementComparison
	// ElementConditional is a conditional literal "H : C1,...,Cm".
	ElementConditional
)

// BodyElement is one position in a rule body.
type BodyElement struct {
	Kind       BodyElementKind
	Literal    Literal
	Comparison Comparison
	Cond       ConditionalLiteral
}

// HeadKind distinguishes the three shapes a rule head can take.
type HeadKind int

const (
	// HeadAtom is a plain atom head.
	HeadAtom HeadKind = iota
	// HeadChoice is a choice-wrapped atom head, "{p(t)}".
	HeadChoice
	// HeadFalsity is the absent head, i.e. a constraint.
	HeadFalsity
)

// Head is a rule head.
type Head struct {
	Kind HeadKind
	Atom Atom // valid unless Kind == HeadFalsity
}

// Rule is "H :- B." where H is a Head and B is an ordered body.
type Rule struct {
	Head Head
	Body Body
}

// Vars returns the program variables occurring anywhere in the rule.
func (r Rule) Vars() map[Variable]bool {
	m := make(map[Variable]bool)
	if r.Head.Kind != HeadFalsity {
		r.Head.Atom.Vars(m)
	}
	for _, e := range r.Body {
		switch e.Kind {
		case ElementLiteral:
			e.Literal.Atom.Vars(m)
		case ElementComparison:
			e.Comparison.Left.Vars(m)
			e.Comparison.Right.Vars(m)
		case ElementConditional:
			if !e.Cond.Consequent.IsFalsity {
				e.Cond.Consequent.Atom.Vars(m)
			}
			for _, g := range e.Cond.Guard {
				g.Vars(m)
			}
		}
	}
	return m
}

// Program owns its ordered rules.
type Program struct {
	Rules []Rule
}

// MaxHeadArity returns the largest arity among the program's rule heads,
// used to size the tau* global-variable list G.
func (p Program) MaxHeadArity() int {
	max := 0
	for _, r := range p.Rules {
		if r.Head.Kind != HeadFalsity && r.Head.Atom.Predicate.Arity > max {
			max = r.Head.Atom.Predicate.Arity
		}
	}
	return max
}

// HeadPredicates returns the set of predicates that appear as a rule head
// (the program's intensional predicates).
func (p Program) HeadPredicates() map[PredicateSym]bool {
	m := make(map[PredicateSym]bool)
	for _, r := range p.Rules {
		if r.Head.Kind != HeadFalsity {
			m[r.Head.Atom.Predicate] = true
		}
	}
	return m
}
