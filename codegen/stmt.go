// stmt.go holds code generation for statements: the control-flow
// shapes and the ones that simply wrap an expression.

package codegen

import "github.com/skx/subc/ast"

// genStmt dispatches on a statement node's kind, one case per shape.
func (g *Generator) genStmt(n ast.Node) error {
	switch n.Kind {

	case ast.Compound:
		for _, s := range n.Stmts {
			if err := g.genStmt(s); err != nil {
				return err
			}
		}
		return nil

	case ast.LocalDecl:
		// The frame slot was already reserved by the parser; there is
		// nothing to emit.
		return nil

	case ast.ExprStmt:
		if err := g.genExpr(*n.Left); err != nil {
			return err
		}
		g.emit("pop %%rax")
		return nil

	case ast.Return:
		if n.Left != nil {
			if err := g.genExpr(*n.Left); err != nil {
				return err
			}
			g.emit("pop %%rax")
		}
		g.emit("jmp %s", g.epilogue)
		return nil

	case ast.If:
		return g.genIf(n)

	case ast.While:
		return g.genWhile(n)

	case ast.DoWhile:
		return g.genDoWhile(n)

	case ast.For:
		return g.genFor(n)

	case ast.Break:
		if len(g.loopStack) == 0 {
			return internalf("break outside of a loop reached codegen")
		}
		g.emit("jmp %s", g.loopStack[len(g.loopStack)-1].breakLabel)
		return nil

	case ast.Continue:
		if len(g.loopStack) == 0 {
			return internalf("continue outside of a loop reached codegen")
		}
		g.emit("jmp %s", g.loopStack[len(g.loopStack)-1].continueLabel)
		return nil

	default:
		return internalf("unexpected statement kind %d", n.Kind)
	}
}

// genInitOrStep emits a for-loop's init/step clause. Unlike a normal
// statement this may be a bare LocalDecl (no code, the slot is already
// reserved) or any expression, whose value is simply discarded.
func (g *Generator) genInitOrStep(n *ast.Node) error {
	if n == nil {
		return nil
	}
	if n.Kind == ast.LocalDecl {
		return nil
	}
	if err := g.genExpr(*n); err != nil {
		return err
	}
	g.emit("pop %%rax")
	return nil
}

func (g *Generator) genIf(n ast.Node) error {
	elseLabel := g.labels.Next("else")
	endLabel := g.labels.Next("end")

	if err := g.genExpr(*n.Cond); err != nil {
		return err
	}
	g.emit("pop %%rax")
	g.emit("cmp $0, %%rax")
	if n.Else != nil {
		g.emit("je %s", elseLabel)
	} else {
		g.emit("je %s", endLabel)
	}

	if err := g.genStmt(*n.Then); err != nil {
		return err
	}

	if n.Else != nil {
		g.emit("jmp %s", endLabel)
		g.label(elseLabel)
		if err := g.genStmt(*n.Else); err != nil {
			return err
		}
	}

	g.label(endLabel)
	return nil
}

func (g *Generator) genWhile(n ast.Node) error {
	begin := g.labels.Next("begin")
	end := g.labels.Next("end")

	g.label(begin)
	if err := g.genExpr(*n.Cond); err != nil {
		return err
	}
	g.emit("pop %%rax")
	g.emit("cmp $0, %%rax")
	g.emit("je %s", end)

	g.loopStack = append(g.loopStack, loopContext{breakLabel: end, continueLabel: begin})
	err := g.genStmt(*n.Then)
	g.loopStack = g.loopStack[:len(g.loopStack)-1]
	if err != nil {
		return err
	}

	g.emit("jmp %s", begin)
	g.label(end)
	return nil
}

func (g *Generator) genDoWhile(n ast.Node) error {
	begin := g.labels.Next("begin")
	cont := g.labels.Next("continue")
	end := g.labels.Next("end")

	g.label(begin)

	g.loopStack = append(g.loopStack, loopContext{breakLabel: end, continueLabel: cont})
	err := g.genStmt(*n.Then)
	g.loopStack = g.loopStack[:len(g.loopStack)-1]
	if err != nil {
		return err
	}

	g.label(cont)
	if err := g.genExpr(*n.Cond); err != nil {
		return err
	}
	g.emit("pop %%rax")
	g.emit("cmp $0, %%rax")
	g.emit("jne %s", begin)

	g.label(end)
	return nil
}

func (g *Generator) genFor(n ast.Node) error {
	if err := g.genInitOrStep(n.Init); err != nil {
		return err
	}

	begin := g.labels.Next("begin")
	cont := g.labels.Next("continue")
	end := g.labels.Next("end")

	g.label(begin)
	if n.Cond != nil {
		if err := g.genExpr(*n.Cond); err != nil {
			return err
		}
		g.emit("pop %%rax")
		g.emit("cmp $0, %%rax")
		g.emit("je %s", end)
	}

	g.loopStack = append(g.loopStack, loopContext{breakLabel: end, continueLabel: cont})
	err := g.genStmt(*n.Then)
	g.loopStack = g.loopStack[:len(g.loopStack)-1]
	if err != nil {
		return err
	}

	g.label(cont)
	if err := g.genInitOrStep(n.Step); err != nil {
		return err
	}
	g.emit("jmp %s", begin)

	g.label(end)
	return nil
}
