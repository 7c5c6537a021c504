// parser.go — recursive-descent parser for SP statements.
//
// OVERVIEW
// --------
// This module turns one line of source bytes into an AST (node.go). Every
// rule has the same shape:
//
//	rule(input []byte) (rest []byte, n Node, err error)
//
// On success the rule returns the unconsumed remainder; on failure it returns
// a *SyntaxError carrying the exact position where matching stopped. Ordered
// alternatives ("try rule A; on failure rewind and try rule B") are the only
// form of backtracking: a failing rule never consumes input, so the caller
// simply reuses its own slice for the next alternative.
//
// Grammar (first alternative wins):
//
//	Statement  ::= Function | For | While | IfElse | Assignment | Expression
//	Function   ::= "fn" Ident "(" [Ident ("," Ident)*] ")" Body
//	Body       ::= "{" (Statement ";")* "}"
//	For        ::= "for" Simple ";" Expression ";" Simple Body
//	Simple     ::= Assignment | Expression
//	IfElse     ::= "if" Expression Body ["else" Body]
//	While      ::= "while" Expression Body
//	Assignment ::= Ident "=" Expression
//	Expression ::= Term (("+" | "-") Expression)?
//	Term       ::= Logic (("*" | "/") Term)?
//	Logic      ::= Factor (LogicOp Logic)?
//	Factor     ::= ["-"] (Number | Call | Ident | "(" Expression ")")
//	Call       ::= Ident "(" [Expression ("," Expression)*] ")"
//
// Points a maintainer must not "fix" silently:
//
//   - Same-precedence chains are RIGHT-associative: Expression recurses into
//     Expression for the remainder instead of folding left, so `1-2-3`
//     parses as `1-(2-3)`.
//   - All six operators in LogicOp (`< > == != || &&`) sit at one precedence
//     level between Factor and `*`/`/`; grouping among them needs explicit
//     parentheses.
//   - Only the space character is skippable; tabs and newlines are not.
//   - Unary minus desugars at parse time into `0 - expr`; the number grammar
//     itself carries no sign.
//   - Keywords are matched as plain tags, so a failed keyword rule rewinds
//     and the identifier rules get their chance (`fnord = 3` is an
//     assignment, not a function).
//
// ParseStatement does not require full consumption: trailing input it cannot
// attach to the statement is returned as the remainder, and the shell
// decides what to do with it.
package sp

import (
	"fmt"
	"strconv"
)

// SyntaxError reports where and why parsing stopped. Input is the unconsumed
// tail at the failure point; Expected names the token or rule that failed.
type SyntaxError struct {
	Input    []byte
	Expected string
}

func (e *SyntaxError) Error() string {
	if len(e.Input) == 0 {
		return fmt.Sprintf("syntax error: expected %s at end of input", e.Expected)
	}
	tail := e.Input
	if len(tail) > 16 {
		tail = tail[:16]
	}
	return fmt.Sprintf("syntax error: expected %s at %q", e.Expected, string(tail))
}

// Offset returns the byte offset of the failure inside full, assuming Input
// is a tail of full. Out-of-range results are clamped.
func (e *SyntaxError) Offset(full []byte) int {
	off := len(full) - len(e.Input)
	if off < 0 {
		return 0
	}
	if off > len(full) {
		return len(full)
	}
	return off
}

func expected(input []byte, what string) error {
	return &SyntaxError{Input: input, Expected: what}
}

// ParseStatement parses one statement from input and returns the unconsumed
// remainder alongside the tree. It is the parser's only entry point.
func ParseStatement(input []byte) ([]byte, Node, error) {
	if rest, n, err := function(input); err == nil {
		return rest, n, nil
	}
	if rest, n, err := forLoop(input); err == nil {
		return rest, n, nil
	}
	if rest, n, err := whileLoop(input); err == nil {
		return rest, n, nil
	}
	if rest, n, err := ifElse(input); err == nil {
		return rest, n, nil
	}
	if rest, n, err := assignment(input); err == nil {
		return rest, n, nil
	}
	return expression(input)
}

// ─────────────────────────── lexical helpers ───────────────────────────

// space skips zero or more ' ' bytes. It cannot fail.
func space(input []byte) []byte {
	for len(input) > 0 && input[0] == ' ' {
		input = input[1:]
	}
	return input
}

// tag consumes the literal word or fails without consuming anything.
func tag(input []byte, word string) ([]byte, error) {
	if len(input) < len(word) || string(input[:len(word)]) != word {
		return input, expected(input, "'"+word+"'")
	}
	return input[len(word):], nil
}

func isAlphabetic(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// identifier consumes one or more ASCII letters.
func identifier(input []byte) ([]byte, string, error) {
	i := 0
	for i < len(input) && isAlphabetic(input[i]) {
		i++
	}
	if i == 0 {
		return input, "", expected(input, "identifier")
	}
	return input[i:], string(input[:i]), nil
}

// number consumes an unsigned floating-point literal: digits with an
// optional fraction, or a bare fraction, with an optional exponent. The sign
// lives in factor, not here.
func number(input []byte) ([]byte, Node, error) {
	i := 0
	for i < len(input) && input[i] >= '0' && input[i] <= '9' {
		i++
	}
	digits := i
	if i < len(input) && input[i] == '.' {
		i++
		for i < len(input) && input[i] >= '0' && input[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return input, nil, expected(input, "number")
	}
	if i < len(input) && (input[i] == 'e' || input[i] == 'E') {
		j := i + 1
		if j < len(input) && (input[j] == '+' || input[j] == '-') {
			j++
		}
		k := j
		for k < len(input) && input[k] >= '0' && input[k] <= '9' {
			k++
		}
		if k > j {
			i = k
		}
	}
	f, err := strconv.ParseFloat(string(input[:i]), 32)
	if err != nil {
		return input, nil, expected(input, "number")
	}
	return input[i:], &Constant{Value: Number(float32(f))}, nil
}

// operation consumes any operator lexeme, two-byte forms first so that "=="
// is never split into two matches.
func operation(input []byte) ([]byte, Operation, error) {
	for _, lex := range [...]string{"||", "&&", "==", "!=", "+", "-", "/", "*", ">", "<"} {
		if rest, err := tag(input, lex); err == nil {
			op, _ := operationFromString(lex)
			return rest, op, nil
		}
	}
	return input, 0, expected(input, "operator")
}

// plusMinusOper accepts only + and -, rewinding otherwise.
func plusMinusOper(input []byte) ([]byte, Operation, error) {
	rest, op, err := operation(input)
	if err != nil || (op != OpPlus && op != OpMinus) {
		return input, 0, expected(input, "'+' or '-'")
	}
	return rest, op, nil
}

// divMultiOper accepts only * and /, rewinding otherwise.
func divMultiOper(input []byte) ([]byte, Operation, error) {
	rest, op, err := operation(input)
	if err != nil || (op != OpMultiply && op != OpDivide) {
		return input, 0, expected(input, "'*' or '/'")
	}
	return rest, op, nil
}

// logicOper accepts the six relational/logical operators, rewinding otherwise.
func logicOper(input []byte) ([]byte, Operation, error) {
	rest, op, err := operation(input)
	if err != nil || op.IsArithmetic() {
		return input, 0, expected(input, "comparison operator")
	}
	return rest, op, nil
}

// ─────────────────────────── expression rules ───────────────────────────

// expression ::= Term (("+" | "-") Expression)?   — right-recursive.
func expression(input []byte) ([]byte, Node, error) {
	rest, left, err := term(space(input))
	if err != nil {
		return input, nil, err
	}
	rest = space(rest)
	if opRest, op, operr := plusMinusOper(rest); operr == nil {
		tail, right, err := expression(opRest)
		if err != nil {
			return input, nil, err
		}
		return tail, &BinaryOperation{Op: op, Left: left, Right: right}, nil
	}
	return rest, left, nil
}

// term ::= Logic (("*" | "/") Term)?   — right-recursive.
func term(input []byte) ([]byte, Node, error) {
	rest, left, err := logic(input)
	if err != nil {
		return input, nil, err
	}
	rest = space(rest)
	if opRest, op, operr := divMultiOper(rest); operr == nil {
		tail, right, err := term(opRest)
		if err != nil {
			return input, nil, err
		}
		return tail, &BinaryOperation{Op: op, Left: left, Right: right}, nil
	}
	return rest, left, nil
}

// logic ::= Factor (LogicOp Logic)?   — right-recursive, one precedence
// level shared by all six operators.
func logic(input []byte) ([]byte, Node, error) {
	rest, left, err := factor(input)
	if err != nil {
		return input, nil, err
	}
	rest = space(rest)
	if opRest, op, operr := logicOper(rest); operr == nil {
		tail, right, err := logic(opRest)
		if err != nil {
			return input, nil, err
		}
		return tail, &BinaryOperation{Op: op, Left: left, Right: right}, nil
	}
	return rest, left, nil
}

// factor ::= ["-"] (Number | Call | Ident | "(" Expression ")")
//
// A leading minus becomes an explicit `0 - x` subtraction node.
func factor(input []byte) ([]byte, Node, error) {
	rest := space(input)
	minus := false
	if r, err := tag(rest, "-"); err == nil {
		minus = true
		rest = r
	}
	rest = space(rest)

	var n Node
	if r, parsed, err := number(rest); err == nil {
		rest, n = r, parsed
	} else if r, parsed, err := call(rest); err == nil {
		rest, n = r, parsed
	} else if r, name, err := identifier(rest); err == nil {
		rest, n = r, &Variable{Name: name}
	} else if r, parsed, err := bracketsExpression(rest); err == nil {
		rest, n = r, parsed
	} else {
		return input, nil, expected(rest, "number, call, variable or '('")
	}

	if minus {
		n = &BinaryOperation{
			Op:    OpMinus,
			Left:  &Constant{Value: Number(0)},
			Right: n,
		}
	}
	return rest, n, nil
}

func bracketsExpression(input []byte) ([]byte, Node, error) {
	rest, err := tag(input, "(")
	if err != nil {
		return input, nil, err
	}
	rest, n, err := expression(rest)
	if err != nil {
		return input, nil, err
	}
	rest = space(rest)
	rest, err = tag(rest, ")")
	if err != nil {
		return input, nil, err
	}
	return rest, n, nil
}

// call ::= Ident "(" [Expression ("," Expression)*] ")"
func call(input []byte) ([]byte, Node, error) {
	rest := space(input)
	rest, name, err := identifier(rest)
	if err != nil {
		return input, nil, err
	}
	rest = space(rest)
	rest, err = tag(rest, "(")
	if err != nil {
		return input, nil, err
	}
	rest = space(rest)

	var args []Node
	if r, first, ferr := expression(rest); ferr == nil {
		args = append(args, first)
		rest = r
		for {
			r := space(rest)
			r, cerr := tag(r, ",")
			if cerr != nil {
				break
			}
			r, arg, aerr := expression(space(r))
			if aerr != nil {
				break
			}
			args = append(args, arg)
			rest = r
		}
	}

	rest = space(rest)
	rest, err = tag(rest, ")")
	if err != nil {
		return input, nil, err
	}
	return rest, &Call{Name: name, Args: args}, nil
}

// ─────────────────────────── statement rules ───────────────────────────

// assignment ::= Ident "=" Expression
//
// On `a == b` the tag matches the first '=' but the following expression
// cannot start with '=', so the rule fails, rewinds, and the expression
// alternative picks up the comparison.
func assignment(input []byte) ([]byte, Node, error) {
	rest := space(input)
	rest, name, err := identifier(rest)
	if err != nil {
		return input, nil, err
	}
	rest = space(rest)
	rest, err = tag(rest, "=")
	if err != nil {
		return input, nil, err
	}
	rest, value, err := expression(space(rest))
	if err != nil {
		return input, nil, err
	}
	return rest, &Assignment{Name: name, Value: value}, nil
}

// body parses "{" followed by ';'-terminated statements. The closing '}' is
// left for the caller, which mirrors how the bodied statement rules compose.
func body(input []byte) ([]byte, *Block, error) {
	rest := space(input)
	rest, err := tag(rest, "{")
	if err != nil {
		return input, nil, err
	}
	var stmts []Node
	for {
		r, stmt, serr := ParseStatement(space(rest))
		if serr != nil {
			break
		}
		r, terr := tag(space(r), ";")
		if terr != nil {
			break
		}
		stmts = append(stmts, stmt)
		rest = r
	}
	return rest, &Block{Statements: stmts}, nil
}

func closeBody(input []byte) ([]byte, error) {
	return tag(space(input), "}")
}

// function ::= "fn" Ident "(" [Ident ("," Ident)*] ")" Body
func function(input []byte) ([]byte, Node, error) {
	rest := space(input)
	rest, err := tag(rest, "fn")
	if err != nil {
		return input, nil, err
	}
	rest = space(rest)
	rest, name, err := identifier(rest)
	if err != nil {
		return input, nil, err
	}
	rest = space(rest)
	rest, err = tag(rest, "(")
	if err != nil {
		return input, nil, err
	}
	rest = space(rest)

	var params []string
	if r, first, perr := identifier(rest); perr == nil {
		params = append(params, first)
		rest = r
		for {
			r, cerr := tag(space(rest), ",")
			if cerr != nil {
				break
			}
			r, p, perr := identifier(space(r))
			if perr != nil {
				break
			}
			params = append(params, p)
			rest = r
		}
	}
	rest = space(rest)
	rest, err = tag(rest, ")")
	if err != nil {
		return input, nil, err
	}

	rest, blk, err := body(rest)
	if err != nil {
		return input, nil, err
	}
	rest, err = closeBody(rest)
	if err != nil {
		return input, nil, err
	}
	return rest, &FunctionDef{Name: name, Fn: Function{Parameters: params, Body: blk}}, nil
}

// ifElse ::= "if" Expression Body ["else" Body]
func ifElse(input []byte) ([]byte, Node, error) {
	rest := space(input)
	rest, err := tag(rest, "if")
	if err != nil {
		return input, nil, err
	}
	rest, cond, err := expression(space(rest))
	if err != nil {
		return input, nil, err
	}
	rest, thenBlk, err := body(rest)
	if err != nil {
		return input, nil, err
	}
	rest, err = closeBody(rest)
	if err != nil {
		return input, nil, err
	}

	n := &IfElse{Condition: cond, Then: thenBlk}
	if r, eerr := tag(space(rest), "else"); eerr == nil {
		r, elseBlk, err := body(r)
		if err != nil {
			return input, nil, err
		}
		r, err = closeBody(r)
		if err != nil {
			return input, nil, err
		}
		n.Else = elseBlk
		rest = r
	}
	return rest, n, nil
}

// whileLoop ::= "while" Expression Body
func whileLoop(input []byte) ([]byte, Node, error) {
	rest := space(input)
	rest, err := tag(rest, "while")
	if err != nil {
		return input, nil, err
	}
	rest, cond, err := expression(space(rest))
	if err != nil {
		return input, nil, err
	}
	rest, blk, err := body(rest)
	if err != nil {
		return input, nil, err
	}
	rest, err = closeBody(rest)
	if err != nil {
		return input, nil, err
	}
	return rest, &While{Condition: cond, Body: blk}, nil
}

// simple ::= Assignment | Expression — the init and step slots of a for loop.
func simple(input []byte) ([]byte, Node, error) {
	if rest, n, err := assignment(input); err == nil {
		return rest, n, nil
	}
	return expression(input)
}

// forLoop ::= "for" Simple ";" Expression ";" Simple Body
func forLoop(input []byte) ([]byte, Node, error) {
	rest := space(input)
	rest, err := tag(rest, "for")
	if err != nil {
		return input, nil, err
	}
	rest, init, err := simple(space(rest))
	if err != nil {
		return input, nil, err
	}
	rest, err = tag(space(rest), ";")
	if err != nil {
		return input, nil, err
	}
	rest, cond, err := expression(rest)
	if err != nil {
		return input, nil, err
	}
	rest, err = tag(space(rest), ";")
	if err != nil {
		return input, nil, err
	}
	rest, step, err := simple(rest)
	if err != nil {
		return input, nil, err
	}
	rest, blk, err := body(rest)
	if err != nil {
		return input, nil, err
	}
	rest, err = closeBody(rest)
	if err != nil {
		return input, nil, err
	}
	return rest, &For{Init: init, Condition: cond, Body: blk, Step: step}, nil
}
