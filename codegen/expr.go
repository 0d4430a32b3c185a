// expr.go holds code generation for expressions. Every method here
// leaves its node's value on top of the runtime stack: callers pop
// what they need and push their own result.

package codegen

import (
	"github.com/skx/subc/ast"
	"github.com/skx/subc/cerrors"
)

// genExpr dispatches on an expression node's kind.
func (g *Generator) genExpr(n ast.Node) error {
	switch n.Kind {

	case ast.Int:
		g.emit("mov $%d, %%rax", n.Value)
		g.emit("push %%rax")
		return nil

	case ast.Ident:
		return g.genIdent(n)

	case ast.Assign:
		return g.genAssign(n)

	case ast.Unary:
		return g.genUnary(n)

	case ast.Binary:
		return g.genBinary(n)

	case ast.ShortCircuit:
		return g.genShortCircuit(n)

	case ast.Conditional:
		return g.genConditional(n)

	case ast.Call:
		return g.genCall(n)

	default:
		return internalf("unexpected expression kind %d", n.Kind)
	}
}

// genIdent loads a variable's value from its frame slot.
func (g *Generator) genIdent(n ast.Node) error {
	if n.Offset <= 0 {
		return cerrors.Wrap(cerrors.Semantic, "undefined variable %q", n.Name)
	}
	g.emit("mov -%d(%%rbp), %%rax", n.Offset*wordSize)
	g.emit("push %%rax")
	return nil
}

// genAssign stores rhs into lhs's frame slot, then pushes rhs's value
// so the assignment can itself be used as an expression (making
// `x = y = z = k` chain correctly).
func (g *Generator) genAssign(n ast.Node) error {
	if n.Left.Kind != ast.Ident {
		return internalf("assignment target is not a variable reference")
	}
	if n.Left.Offset <= 0 {
		return cerrors.Wrap(cerrors.Semantic, "undefined variable %q", n.Left.Name)
	}

	if err := g.genExpr(*n.Right); err != nil {
		return err
	}
	g.emit("pop %%rax")
	g.emit("mov %%rax, -%d(%%rbp)", n.Left.Offset*wordSize)
	g.emit("push %%rax")
	return nil
}

// genUnary handles unary +, -, !, ~.
func (g *Generator) genUnary(n ast.Node) error {
	if err := g.genExpr(*n.Left); err != nil {
		return err
	}
	g.emit("pop %%rax")

	switch n.Op {
	case "+":
		// no-op
	case "-":
		g.emit("neg %%rax")
	case "~":
		g.emit("not %%rax")
	case "!":
		g.emit("cmp $0, %%rax")
		g.emit("sete %%al")
		g.emit("movzbq %%al, %%rax")
	default:
		return internalf("unexpected unary operator %q", n.Op)
	}

	g.emit("push %%rax")
	return nil
}

// genBinary handles arithmetic, relational, equality, bitwise, and
// shift binary operators. Left is evaluated first, then right; the
// right operand ends up in rcx, the left in rax, so `rax <op> rcx`
// always reads as `left <op> right`.
func (g *Generator) genBinary(n ast.Node) error {
	if err := g.genExpr(*n.Left); err != nil {
		return err
	}
	if err := g.genExpr(*n.Right); err != nil {
		return err
	}
	g.emit("pop %%rcx")
	g.emit("pop %%rax")

	switch n.Op {
	case "+":
		g.emit("add %%rcx, %%rax")
	case "-":
		g.emit("sub %%rcx, %%rax")
	case "*":
		g.emit("imul %%rcx, %%rax")
	case "/":
		g.emit("cqto")
		g.emit("idiv %%rcx")
	case "%":
		g.emit("cqto")
		g.emit("idiv %%rcx")
		g.emit("mov %%rdx, %%rax")
	case "&":
		g.emit("and %%rcx, %%rax")
	case "|":
		g.emit("or %%rcx, %%rax")
	case "^":
		g.emit("xor %%rcx, %%rax")
	case "<<":
		g.emit("sal %%cl, %%rax")
	case ">>":
		g.emit("sar %%cl, %%rax")
	case "==":
		g.emitCompare("sete")
	case "!=":
		g.emitCompare("setne")
	case "<":
		g.emitCompare("setl")
	case ">":
		g.emitCompare("setg")
	case "<=":
		g.emitCompare("setle")
	case ">=":
		g.emitCompare("setge")
	default:
		return internalf("unexpected binary operator %q", n.Op)
	}

	g.emit("push %%rax")
	return nil
}

// emitCompare emits `cmp %rcx, %rax` followed by the given set-on-
// condition instruction, zero-extended into rax.
func (g *Generator) emitCompare(setInstr string) {
	g.emit("cmp %%rcx, %%rax")
	g.emit("%s %%al", setInstr)
	g.emit("movzbq %%al, %%rax")
}

// genShortCircuit handles && and ||, which must not evaluate their
// right operand when the left already determines the result.
func (g *Generator) genShortCircuit(n ast.Node) error {
	switch n.Op {
	case "&&":
		return g.genLogicalAnd(n)
	case "||":
		return g.genLogicalOr(n)
	default:
		return internalf("unexpected short-circuit operator %q", n.Op)
	}
}

func (g *Generator) genLogicalAnd(n ast.Node) error {
	falseLabel := g.labels.Next("false")
	end := g.labels.Next("end")

	if err := g.genExpr(*n.Left); err != nil {
		return err
	}
	g.emit("pop %%rax")
	g.emit("cmp $0, %%rax")
	g.emit("je %s", falseLabel)

	if err := g.genExpr(*n.Right); err != nil {
		return err
	}
	g.emit("pop %%rax")
	g.emit("cmp $0, %%rax")
	g.emit("setne %%al")
	g.emit("movzbq %%al, %%rax")
	g.emit("push %%rax")
	g.emit("jmp %s", end)

	g.label(falseLabel)
	g.emit("push $0")

	g.label(end)
	return nil
}

func (g *Generator) genLogicalOr(n ast.Node) error {
	trueLabel := g.labels.Next("true")
	end := g.labels.Next("end")

	if err := g.genExpr(*n.Left); err != nil {
		return err
	}
	g.emit("pop %%rax")
	g.emit("cmp $0, %%rax")
	g.emit("jne %s", trueLabel)

	if err := g.genExpr(*n.Right); err != nil {
		return err
	}
	g.emit("pop %%rax")
	g.emit("cmp $0, %%rax")
	g.emit("setne %%al")
	g.emit("movzbq %%al, %%rax")
	g.emit("push %%rax")
	g.emit("jmp %s", end)

	g.label(trueLabel)
	g.emit("push $1")

	g.label(end)
	return nil
}

// genConditional handles `cond ? then : else`. Exactly one of the two
// branches runs.
func (g *Generator) genConditional(n ast.Node) error {
	elseLabel := g.labels.Next("ternary_else")
	end := g.labels.Next("ternary_end")

	if err := g.genExpr(*n.Cond); err != nil {
		return err
	}
	g.emit("pop %%rax")
	g.emit("cmp $0, %%rax")
	g.emit("je %s", elseLabel)

	if err := g.genExpr(*n.Then); err != nil {
		return err
	}
	g.emit("jmp %s", end)

	g.label(elseLabel)
	if err := g.genExpr(*n.Else); err != nil {
		return err
	}

	g.label(end)
	return nil
}

// genCall evaluates arguments left to right (each pushed), then pops
// them in reverse order into the System V argument registers, aligns
// the stack to 16 bytes for the call, and pushes the result.
func (g *Generator) genCall(n ast.Node) error {
	if len(n.Args) > len(argRegisters) {
		return internalf("call to %q has %d arguments, at most %d are supported", n.Name, len(n.Args), len(argRegisters))
	}

	for _, arg := range n.Args {
		if err := g.genExpr(arg); err != nil {
			return err
		}
	}

	for i := len(n.Args) - 1; i >= 0; i-- {
		g.emit("pop %s", argRegisters[i])
	}

	alignedLabel := g.labels.Next("aligned")
	callDoneLabel := g.labels.Next("call_done")

	// The stack must be 16-byte aligned at the `call` instruction.
	// Test rsp's low bits at runtime and pad if necessary, since we
	// can't know statically how many pushes preceded this call.
	g.emit("test $8, %%rsp")
	g.emit("jz %s", alignedLabel)
	g.emit("sub $8, %%rsp")
	g.emit("call %s", g.symbolName(n.Name))
	g.emit("add $8, %%rsp")
	g.emit("jmp %s", callDoneLabel)

	g.label(alignedLabel)
	g.emit("call %s", g.symbolName(n.Name))

	g.label(callDoneLabel)
	g.emit("push %%rax")
	return nil
}
