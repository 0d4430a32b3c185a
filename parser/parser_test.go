package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skx/subc/ast"
)

func TestSimpleFunction(t *testing.T) {
	p := New(`main() { return 1+2*3; }`)
	funcs, err := p.ParseProgram()
	require.NoError(t, err)
	require.Len(t, funcs, 1)

	fn := funcs[0]
	assert.Equal(t, ast.FuncDef, fn.Kind)
	assert.Equal(t, "main", fn.Name)
	require.Len(t, fn.Body.Stmts, 1)

	ret := fn.Body.Stmts[0]
	assert.Equal(t, ast.Return, ret.Kind)

	// 1 + 2*3 -> Binary(+, 1, Binary(*, 2, 3))
	assert.Equal(t, ast.Binary, ret.Left.Kind)
	assert.Equal(t, "+", ret.Left.Op)
	assert.Equal(t, int64(1), ret.Left.Left.Value)
	assert.Equal(t, "*", ret.Left.Right.Op)
}

func TestDeclarationAndAssignment(t *testing.T) {
	p := New(`main() { int x; x = 4; x = x*x + 1; return x; }`)
	funcs, err := p.ParseProgram()
	require.NoError(t, err)

	fn := funcs[0]
	require.Len(t, fn.Body.Stmts, 4)
	assert.Equal(t, ast.LocalDecl, fn.Body.Stmts[0].Kind)
	assert.Equal(t, ast.ExprStmt, fn.Body.Stmts[1].Kind)
	assert.Equal(t, ast.Assign, fn.Body.Stmts[1].Left.Kind)

	assert.Equal(t, 1, fn.Frame.Slots())
}

func TestUntypedImplicitDeclaration(t *testing.T) {
	p := New(`main() { x = 3; return x; }`)
	funcs, err := p.ParseProgram()
	require.NoError(t, err)

	fn := funcs[0]
	off, ok := fn.Frame.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, 1, off)
}

func TestAssignmentChainIsRightAssociative(t *testing.T) {
	p := New(`main() { int x; int y; int z; x = y = z = 5; return x; }`)
	funcs, err := p.ParseProgram()
	require.NoError(t, err)

	fn := funcs[0]
	assign := fn.Body.Stmts[3].Left
	require.Equal(t, ast.Assign, assign.Kind)
	assert.Equal(t, "x", assign.Left.Name)
	require.Equal(t, ast.Assign, assign.Right.Kind)
	assert.Equal(t, "y", assign.Right.Left.Name)
	require.Equal(t, ast.Assign, assign.Right.Right.Kind)
	assert.Equal(t, "z", assign.Right.Right.Left.Name)
}

func TestTernaryBindsTighterThanAssignLooserThanOr(t *testing.T) {
	p := New(`main() { int a; a = 1 ? 2 : 3; return a; }`)
	funcs, err := p.ParseProgram()
	require.NoError(t, err)

	assign := funcs[0].Body.Stmts[1].Left
	require.Equal(t, ast.Assign, assign.Kind)
	assert.Equal(t, ast.Conditional, assign.Right.Kind)
}

func TestCallArgumentLimit(t *testing.T) {
	p := New(`main() { return f(1,2,3,4,5,6,7); }`)
	_, err := p.ParseProgram()
	require.Error(t, err)
}

func TestBreakContinueOutsideLoopIsError(t *testing.T) {
	_, err := New(`main() { break; }`).ParseProgram()
	assert.Error(t, err)

	_, err = New(`main() { continue; }`).ParseProgram()
	assert.Error(t, err)
}

func TestBreakContinueInsideLoopIsFine(t *testing.T) {
	_, err := New(`main() { while (1) { break; continue; } return 0; }`).ParseProgram()
	assert.NoError(t, err)
}

func TestForLoopWithDeclaration(t *testing.T) {
	p := New(`main() { int a; a = 0; for (int i = 0; i < 10; i = i+1) { a = a + 1; } return a; }`)
	funcs, err := p.ParseProgram()
	require.NoError(t, err)

	fn := funcs[0]
	forStmt := fn.Body.Stmts[2]
	require.Equal(t, ast.For, forStmt.Kind)
	require.NotNil(t, forStmt.Init)
	assert.Equal(t, ast.Assign, forStmt.Init.Kind)

	_, ok := fn.Frame.Lookup("i")
	assert.True(t, ok)
}

func TestDuplicateParameterNameIsError(t *testing.T) {
	_, err := New(`f(int a, int a) { return a; } main() { return f(1,2); }`).ParseProgram()
	assert.Error(t, err)
}

func TestMultipleFunctions(t *testing.T) {
	p := New(`test(int a, int b) { return a+b; } main() { return test(1, 4); }`)
	funcs, err := p.ParseProgram()
	require.NoError(t, err)
	require.Len(t, funcs, 2)
	assert.Equal(t, "test", funcs[0].Name)
	assert.Equal(t, []string{"a", "b"}, funcs[0].Params)
	assert.Equal(t, "main", funcs[1].Name)
}
