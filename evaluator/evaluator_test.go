package evaluator

import (
	"bytes"
	"testing"

	"monkey/object"
	"monkey/parser"
	"monkey/test_helper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEval(t *testing.T, input string) object.Object {
	t.Helper()
	program, err := parser.Parse(input)
	require.NoError(t, err, input)
	return Eval(program, object.NewEnvironment())
}

func evalToString(s string) (string, error) {
	program, err := parser.Parse(s)
	if err != nil {
		return "", err
	}
	return Eval(program, object.NewEnvironment()).Inspect(), nil
}

func TestEvalIntegerExpression(t *testing.T) {
	tests := []test_helper.TestItem{
		{Input: `5`, Want: `5`},
		{Input: `10`, Want: `10`},
		{Input: `-5`, Want: `-5`},
		{Input: `-10`, Want: `-10`},
		{Input: `5 + 5 + 5 + 5 - 10`, Want: `10`},
		{Input: `2 * 2 * 2 * 2 * 2`, Want: `32`},
		{Input: `-50 + 100 + -50`, Want: `0`},
		{Input: `5 * 2 + 10`, Want: `20`},
		{Input: `5 + 2 * 10`, Want: `25`},
		{Input: `20 + 2 * -10`, Want: `0`},
		{Input: `50 / 2 * 2 + 10`, Want: `60`},
		{Input: `2 * (5 + 10)`, Want: `30`},
		{Input: `3 * 3 * 3 + 10`, Want: `37`},
		{Input: `3 * (3 * 3) + 10`, Want: `37`},
		{Input: `(5 + 10 * 2 + 15 / 3) * 2 + -10`, Want: `50`},
		{Input: `7 / 2`, Want: `3`},
		{Input: `-7 / 2`, Want: `-3`},
		{Input: `10 - 3 - 2`, Want: `5`},
		{Input: `9223372036854775807`, Want: `9223372036854775807`},
	}
	test_helper.RunTest(t, tests, evalToString)
}

func TestEvalBooleanExpression(t *testing.T) {
	tests := []test_helper.TestItem{
		{Input: `true`, Want: `true`},
		{Input: `false`, Want: `false`},
		{Input: `1 < 2`, Want: `true`},
		{Input: `1 > 2`, Want: `false`},
		{Input: `1 < 1`, Want: `false`},
		{Input: `1 > 1`, Want: `false`},
		{Input: `1 == 1`, Want: `true`},
		{Input: `1 != 1`, Want: `false`},
		{Input: `1 == 2`, Want: `false`},
		{Input: `1 != 2`, Want: `true`},
		{Input: `true == true`, Want: `true`},
		{Input: `false == false`, Want: `true`},
		{Input: `true == false`, Want: `false`},
		{Input: `true != false`, Want: `true`},
		{Input: `false != true`, Want: `true`},
		{Input: `(1 < 2) == true`, Want: `true`},
		{Input: `(1 < 2) == false`, Want: `false`},
		{Input: `(1 > 2) == true`, Want: `false`},
		{Input: `(1 > 2) == false`, Want: `true`},
		{Input: `1 < 2 == true`, Want: `true`},
	}
	test_helper.RunTest(t, tests, evalToString)
}

func TestBangOperator(t *testing.T) {
	tests := []test_helper.TestItem{
		{Input: `!true`, Want: `false`},
		{Input: `!false`, Want: `true`},
		{Input: `!5`, Want: `false`},
		{Input: `!!true`, Want: `true`},
		{Input: `!!false`, Want: `false`},
		{Input: `!!5`, Want: `true`},
		{Input: `!0`, Want: `false`},
		{Input: `!""`, Want: `false`},
		{Input: `![]`, Want: `false`},
		{Input: `!if (false) { 1 }`, Want: `true`},
	}
	test_helper.RunTest(t, tests, evalToString)
}

func TestIfElseExpressions(t *testing.T) {
	tests := []test_helper.TestItem{
		{Input: `if (true) { 10 }`, Want: `10`},
		{Input: `if (false) { 10 }`, Want: `null`},
		{Input: `if (1) { 10 }`, Want: `10`},
		{Input: `if (0) { 10 }`, Want: `10`},
		{Input: `if (1 < 2) { 10 }`, Want: `10`},
		{Input: `if (1 > 2) { 10 }`, Want: `null`},
		{Input: `if (1 > 2) { 10 } else { 20 }`, Want: `20`},
		{Input: `if (1 < 2) { 10 } else { 20 }`, Want: `10`},
		{Input: `if (true) { }`, Want: `null`},
	}
	test_helper.RunTest(t, tests, evalToString)
}

func TestReturnStatements(t *testing.T) {
	tests := []test_helper.TestItem{
		{Input: `return 10;`, Want: `10`},
		{Input: `return 10; 9;`, Want: `10`},
		{Input: `return 2 * 5; 9;`, Want: `10`},
		{Input: `9; return 2 * 5; 9;`, Want: `10`},
		{Input: `if (10 > 1) { if (10 > 1) { return 10; } return 1; }`, Want: `10`},
		{Input: `let f = fn(x) { return x; x + 10; }; f(10);`, Want: `10`},
		{Input: `let f = fn(x) { let result = x + 10; return result; return 10; }; f(10);`, Want: `20`},
		{Input: `let f = fn() { return 1; }; f() + f();`, Want: `2`},
		{Input: `let f = fn() { let x = if (true) { return 5; }; 99 }; f()`, Want: `5`},
	}
	test_helper.RunTest(t, tests, evalToString)
}

func TestErrorHandling(t *testing.T) {
	tests := []test_helper.TestItem{
		{Input: `5 + true;`, Want: `ERROR: type mismatch: INTEGER + BOOLEAN`},
		{Input: `5 + true; 5;`, Want: `ERROR: type mismatch: INTEGER + BOOLEAN`},
		{Input: `-true`, Want: `ERROR: unknown operator: -BOOLEAN`},
		{Input: `-"a"`, Want: `ERROR: unknown operator: -STRING`},
		{Input: `true + false;`, Want: `ERROR: unknown operator: BOOLEAN + BOOLEAN`},
		{Input: `true < false;`, Want: `ERROR: unknown operator: BOOLEAN < BOOLEAN`},
		{Input: `5; true + false; 5`, Want: `ERROR: unknown operator: BOOLEAN + BOOLEAN`},
		{Input: `if (10 > 1) { true + false; }`, Want: `ERROR: unknown operator: BOOLEAN + BOOLEAN`},
		{Input: `if (10 > 1) { if (10 > 1) { return true + false; } return 1; }`, Want: `ERROR: unknown operator: BOOLEAN + BOOLEAN`},
		{Input: `foobar`, Want: `ERROR: identifier not found: foobar`},
		{Input: `"Hello" - "World"`, Want: `ERROR: unknown operator: STRING - STRING`},
		{Input: `"Hello" == "Hello"`, Want: `ERROR: unknown operator: STRING == STRING`},
		{Input: `"a" + 1`, Want: `ERROR: type mismatch: STRING + INTEGER`},
		{Input: `[1] + [2]`, Want: `ERROR: type mismatch: ARRAY + ARRAY`},
		{Input: `if (false) { 1 } == if (false) { 2 }`, Want: `ERROR: type mismatch: NULL == NULL`},
		{Input: `fn() {} == fn() {}`, Want: `ERROR: type mismatch: FUNCTION == FUNCTION`},
		{Input: `{} == {}`, Want: `ERROR: type mismatch: HASH == HASH`},
		{Input: `1 + foo + bar`, Want: `ERROR: identifier not found: foo`},
		{Input: `let x = y; 5`, Want: `ERROR: identifier not found: y`},
		{Input: `[1, x, y]`, Want: `ERROR: identifier not found: x`},
		{Input: `len(x)`, Want: `ERROR: identifier not found: x`},
		{Input: `x(1)`, Want: `ERROR: identifier not found: x`},
		{Input: `5(1)`, Want: `ERROR: not a function: INTEGER`},
		{Input: `1[0]`, Want: `ERROR: index operator not supported: INTEGER`},
		{Input: `[1, 2]["a"]`, Want: `ERROR: index operator not supported: ARRAY`},
		{Input: `return -true; 5`, Want: `ERROR: unknown operator: -BOOLEAN`},
		{Input: `if (x) { 1 }`, Want: `ERROR: identifier not found: x`},
	}
	test_helper.RunTest(t, tests, evalToString)
}

func TestIntegerEdgeCases(t *testing.T) {
	tests := []test_helper.TestItem{
		{Input: `1 / 0`, Want: `ERROR: division by zero`},
		{Input: `let zero = 5 - 5; 10 / zero`, Want: `ERROR: division by zero`},
		{Input: `9223372036854775807 + 1`, Want: `ERROR: integer overflow: 9223372036854775807 + 1`},
		{Input: `-9223372036854775807 - 2`, Want: `ERROR: integer overflow: -9223372036854775807 - 2`},
		{Input: `4611686018427387904 * 2`, Want: `ERROR: integer overflow: 4611686018427387904 * 2`},
		{Input: `let min = -9223372036854775807 - 1; min / -1`, Want: `ERROR: integer overflow: -9223372036854775808 / -1`},
		{Input: `let min = -9223372036854775807 - 1; -min`, Want: `ERROR: integer overflow: --9223372036854775808`},
		{Input: `-9223372036854775807 - 1`, Want: `-9223372036854775808`},
	}
	test_helper.RunTest(t, tests, evalToString)
}

func TestLetStatements(t *testing.T) {
	tests := []test_helper.TestItem{
		{Input: `let a = 5; a;`, Want: `5`},
		{Input: `let a = 5 * 5; a;`, Want: `25`},
		{Input: `let a = 5; let b = a; b;`, Want: `5`},
		{Input: `let a = 5; let b = a; let c = a + b + 5; c;`, Want: `15`},
		{Input: `let a = 5`, Want: `5`},
		{Input: `let a = 1; let a = a + 1; a`, Want: `2`},
	}
	test_helper.RunTest(t, tests, evalToString)
}

func TestFunctionObject(t *testing.T) {
	evaluated := testEval(t, "fn(x) { x + 2; };")
	fn, ok := evaluated.(*object.Function)
	require.True(t, ok, "object is not Function. got=%T (%+v)", evaluated, evaluated)
	require.Len(t, fn.Parameters, 1)
	assert.Equal(t, "x", fn.Parameters[0].String())
	assert.Equal(t, "{ (x + 2) }", fn.Body.String())
	assert.Equal(t, "fn(x) { (x + 2) }", fn.Inspect())
}

func TestFunctionApplication(t *testing.T) {
	tests := []test_helper.TestItem{
		{Input: `let identity = fn(x) { x; }; identity(5);`, Want: `5`},
		{Input: `let identity = fn(x) { return x; }; identity(5);`, Want: `5`},
		{Input: `let double = fn(x) { x * 2; }; double(5);`, Want: `10`},
		{Input: `let add = fn(x, y) { x + y; }; add(5, 5);`, Want: `10`},
		{Input: `let add = fn(x, y) { x + y; }; add(5 + 5, add(5, 5));`, Want: `20`},
		{Input: `fn(x) { x; }(5)`, Want: `5`},
		{Input: `fn() { }()`, Want: `null`},
		{Input: `let add = fn(x, y) { x + y; }; add(1)`, Want: `ERROR: wrong number of arguments. got=1, want=2`},
		{Input: `let one = fn() { 1 }; one(1, 2)`, Want: `ERROR: wrong number of arguments. got=2, want=0`},
		{Input: `let f = fn(x) { x }; f(1 + true)`, Want: `ERROR: type mismatch: INTEGER + BOOLEAN`},
	}
	test_helper.RunTest(t, tests, evalToString)
}

func TestClosures(t *testing.T) {
	tests := []test_helper.TestItem{
		{Input: `let newAdder = fn(x) { fn(y) { x + y; } }; let addTwo = newAdder(2); addTwo(3);`, Want: `5`},
		{Input: `let newAdder = fn(x) { fn(y) { x + y } }; let a = newAdder(1); let b = newAdder(10); a(1) + b(1)`, Want: `13`},
		// A closure sees bindings made in its defining scope after it was created.
		{Input: `let f = fn() { later }; let later = 7; f()`, Want: `7`},
		// Parameters shadow, and don't leak out.
		{Input: `let x = 1; let f = fn(x) { x * 10 }; f(2) + x`, Want: `21`},
		// let inside a function binds locally and leaves the outer binding alone.
		{Input: `let x = 1; let f = fn() { let x = 99; x }; f(); x`, Want: `1`},
		{Input: `let fact = fn(n) { if (n < 2) { 1 } else { n * fact(n - 1) } }; fact(10)`, Want: `3628800`},
		{Input: `let map = fn(arr, f) { let iter = fn(arr, acc) { if (len(arr) == 0) { acc } else { iter(rest(arr), push(acc, f(first(arr)))) } }; iter(arr, []) }; map([1, 2, 3], fn(x) { x * 2 })`, Want: `[2, 4, 6]`},
		{Input: `let reduce = fn(arr, initial, f) { let iter = fn(arr, result) { if (len(arr) == 0) { result } else { iter(rest(arr), f(result, first(arr))) } }; iter(arr, initial) }; reduce([1, 2, 3, 4, 5], 0, fn(a, b) { a + b })`, Want: `15`},
	}
	test_helper.RunTest(t, tests, evalToString)
}

func TestStrings(t *testing.T) {
	tests := []test_helper.TestItem{
		{Input: `"Hello World!"`, Want: `Hello World!`},
		{Input: `"Hello" + " " + "World!"`, Want: `Hello World!`},
		{Input: `let greet = fn(name) { "Hello, " + name }; greet("you")`, Want: `Hello, you`},
		{Input: `""`, Want: ``},
	}
	test_helper.RunTest(t, tests, evalToString)
}

func TestArrays(t *testing.T) {
	tests := []test_helper.TestItem{
		{Input: `[1, 2 * 2, 3 + 3]`, Want: `[1, 4, 6]`},
		{Input: `[]`, Want: `[]`},
		{Input: `[1, 2, 3][0]`, Want: `1`},
		{Input: `[1, 2, 3][1]`, Want: `2`},
		{Input: `[1, 2, 3][2]`, Want: `3`},
		{Input: `let i = 0; [1][i];`, Want: `1`},
		{Input: `[1, 2, 3][1 + 1];`, Want: `3`},
		{Input: `let myArray = [1, 2, 3]; myArray[2];`, Want: `3`},
		{Input: `let a = [1, 2, 3]; a[0] + a[1] + a[2];`, Want: `6`},
		{Input: `let myArray = [1, 2, 3]; let i = myArray[0]; myArray[i]`, Want: `2`},
		{Input: `[1, 2, 3][3]`, Want: `null`},
		{Input: `[1, 2, 3][-1]`, Want: `null`},
		{Input: `[[1, "a"], true][0][1]`, Want: `a`},
		{Input: `[fn(x) { x * x }][0](4)`, Want: `16`},
	}
	test_helper.RunTest(t, tests, evalToString)
}

func TestHashes(t *testing.T) {
	tests := []test_helper.TestItem{
		{Input: `let two = "two"; {"one": 10 - 9, two: 1 + 1, "thr" + "ee": 6 / 2, 4: 4, true: 5, false: 6}`,
			Want: `{one: 1, two: 2, three: 3, 4: 4, true: 5, false: 6}`},
		{Input: `{}`, Want: `{}`},
		{Input: `{"foo": 5}["foo"]`, Want: `5`},
		{Input: `{"foo": 5}["bar"]`, Want: `null`},
		{Input: `let key = "foo"; {"foo": 5}[key]`, Want: `5`},
		{Input: `{}["foo"]`, Want: `null`},
		{Input: `{5: 5}[5]`, Want: `5`},
		{Input: `{true: 5}[true]`, Want: `5`},
		{Input: `{false: 5}[false]`, Want: `5`},
		{Input: `{1: "a", 1: "b"}[1]`, Want: `b`},
		{Input: `{"name": "Monkey"}[fn(x) { x }];`, Want: `ERROR: unusable as hash key: FUNCTION`},
		{Input: `{[1]: 2}`, Want: `ERROR: unusable as hash key: ARRAY`},
		{Input: `{"a": x}`, Want: `ERROR: identifier not found: x`},
	}
	test_helper.RunTest(t, tests, evalToString)
}

func TestBuiltinFunctions(t *testing.T) {
	tests := []test_helper.TestItem{
		{Input: `len("")`, Want: `0`},
		{Input: `len("four")`, Want: `4`},
		{Input: `len("hello world")`, Want: `11`},
		{Input: `len("héllo")`, Want: `5`},
		{Input: `len([1, 2, 3])`, Want: `3`},
		{Input: `len([])`, Want: `0`},
		{Input: `len(1)`, Want: "ERROR: argument to `len` not supported, got INTEGER"},
		{Input: `len("one", "two")`, Want: `ERROR: wrong number of arguments. got=2, want=1`},
		{Input: `len()`, Want: `ERROR: wrong number of arguments. got=0, want=1`},
		{Input: `first([1, 2, 3])`, Want: `1`},
		{Input: `first([])`, Want: `null`},
		{Input: `first(1)`, Want: "ERROR: argument to `first` must be ARRAY, got INTEGER"},
		{Input: `last([1, 2, 3])`, Want: `3`},
		{Input: `last([])`, Want: `null`},
		{Input: `last(1)`, Want: "ERROR: argument to `last` must be ARRAY, got INTEGER"},
		{Input: `rest([1, 2, 3])`, Want: `[2, 3]`},
		{Input: `rest([1])`, Want: `[]`},
		{Input: `rest([])`, Want: `null`},
		{Input: `rest("abc")`, Want: "ERROR: argument to `rest` must be ARRAY, got STRING"},
		{Input: `push([], 1)`, Want: `[1]`},
		{Input: `push([1], [2])`, Want: `[1, [2]]`},
		{Input: `push(1, 1)`, Want: "ERROR: argument to `push` must be ARRAY, got INTEGER"},
		{Input: `push([1])`, Want: `ERROR: wrong number of arguments. got=1, want=2`},
		{Input: `let a = [1, 2, 3]; let b = push(a, 4); let c = rest(a); a`, Want: `[1, 2, 3]`},
		{Input: `let a = [1, 2, 3]; let b = push(a, 4); len(b) + len(rest(a))`, Want: `6`},
		{Input: `let len = fn(x) { 42 }; len("abc")`, Want: `42`},
		{Input: `len`, Want: `builtin function`},
	}
	test_helper.RunTest(t, tests, evalToString)
}

func TestPuts(t *testing.T) {
	var buf bytes.Buffer
	old := Out
	Out = &buf
	defer func() { Out = old }()

	evaluated := testEval(t, `puts("hello", 1 + 2, [true]); puts()`)

	assert.Same(t, NULL, evaluated)
	assert.Equal(t, "hello\n3\n[true]\n", buf.String())
}

func TestEnvironmentPersistsBetweenPrograms(t *testing.T) {
	env := object.NewEnvironment()
	for _, line := range []string{"let x = 2;", "let double = fn(n) { n * 2 };"} {
		program, err := parser.Parse(line)
		require.NoError(t, err)
		Eval(program, env)
	}
	program, err := parser.Parse("double(x)")
	require.NoError(t, err)
	assert.Equal(t, "4", Eval(program, env).Inspect())
}

func TestProgramUnwrapsReturnButNotError(t *testing.T) {
	evaluated := testEval(t, "return 5;")
	_, isReturn := evaluated.(*object.ReturnValue)
	assert.False(t, isReturn)

	evaluated = testEval(t, "return foo;")
	errObj, ok := evaluated.(*object.Error)
	require.True(t, ok)
	assert.Equal(t, "identifier not found: foo", errObj.Message)
}

func TestBooleansCompareByValue(t *testing.T) {
	result := evalBooleanInfixExpression("==", &object.Boolean{Value: true}, TRUE)
	assert.Same(t, TRUE, result)
	result = evalBooleanInfixExpression("!=", &object.Boolean{Value: false}, FALSE)
	assert.Same(t, FALSE, result)
}

func TestEmptyProgramIsNull(t *testing.T) {
	assert.Same(t, NULL, testEval(t, ""))
}

func TestUnknownNodePanics(t *testing.T) {
	assert.Panics(t, func() { Eval(nil, object.NewEnvironment()) })
}
