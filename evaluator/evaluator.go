package evaluator

// This is basically your standard tree-walking evaluator. Runtime errors are values and
// not panics: every rule which has sub-results to look at checks them for errors (and for
// return signals) before doing anything else, so that the first error raised anywhere
// comes out at the top unchanged.
//
// Recursion in the evaluated program is recursion in Go, so a runaway recursive program
// ends by exhausting the Go stack. Nothing here tries to catch that.

import (
	"fmt"

	"monkey/ast"
	"monkey/object"

	"fortio.org/log"
	"github.com/JohnCGriffin/overflow"
)

var (
	NULL  = &object.Null{}
	TRUE  = &object.Boolean{Value: true}
	FALSE = &object.Boolean{Value: false}
)

func Eval(node ast.Node, env *object.Environment) object.Object {
	switch node := node.(type) {

	// Statements

	case *ast.Program:
		return evalProgram(node, env)

	case *ast.ExpressionStatement:
		return Eval(node.Expression, env)

	case *ast.BlockStatement:
		return evalBlockStatement(node, env)

	case *ast.LetStatement:
		val := Eval(node.Value, env)
		if isSignal(val) {
			return val
		}
		if log.LogVerbose() {
			log.LogVf("eval: let %s = %s", node.Name.Value, val.Inspect())
		}
		return env.Set(node.Name.Value, val)

	case *ast.ReturnStatement:
		val := Eval(node.ReturnValue, env)
		if isSignal(val) {
			return val
		}
		return &object.ReturnValue{Value: val}

	// Expressions

	case *ast.IntegerLiteral:
		return &object.Integer{Value: node.Value}

	case *ast.StringLiteral:
		return &object.String{Value: node.Value}

	case *ast.BooleanLiteral:
		return nativeBoolToBooleanObject(node.Value)

	case *ast.PrefixExpression:
		right := Eval(node.Right, env)
		if isSignal(right) {
			return right
		}
		return evalPrefixExpression(node.Operator, right)

	case *ast.InfixExpression:
		left := Eval(node.Left, env)
		if isSignal(left) {
			return left
		}
		right := Eval(node.Right, env)
		if isSignal(right) {
			return right
		}
		return evalInfixExpression(node.Operator, left, right)

	case *ast.IfExpression:
		return evalIfExpression(node, env)

	case *ast.Identifier:
		return evalIdentifier(node, env)

	case *ast.FunctionLiteral:
		return &object.Function{Parameters: node.Parameters, Body: node.Body, Env: env}

	case *ast.CallExpression:
		function := Eval(node.Function, env)
		if isSignal(function) {
			return function
		}
		args := evalExpressions(node.Arguments, env)
		if len(args) == 1 && isSignal(args[0]) {
			return args[0]
		}
		return applyFunction(function, args)

	case *ast.ArrayLiteral:
		elements := evalExpressions(node.Elements, env)
		if len(elements) == 1 && isSignal(elements[0]) {
			return elements[0]
		}
		return object.NewArray(elements)

	case *ast.IndexExpression:
		left := Eval(node.Left, env)
		if isSignal(left) {
			return left
		}
		index := Eval(node.Index, env)
		if isSignal(index) {
			return index
		}
		return evalIndexExpression(left, index)

	case *ast.HashLiteral:
		return evalHashLiteral(node, env)
	}

	// The parser can't produce anything else, so getting here is a bug and not a user error.
	panic(fmt.Sprintf("eval: unknown node type %T", node))
}

// Unlike a block, the program is where a return signal stops and gives up its value.
func evalProgram(program *ast.Program, env *object.Environment) object.Object {
	var result object.Object = NULL

	for _, statement := range program.Statements {
		result = Eval(statement, env)

		switch result := result.(type) {
		case *object.ReturnValue:
			return result.Value
		case *object.Error:
			log.LogVf("eval: %s", result.Message)
			return result
		}
	}

	return result
}

// A block passes return signals up unopened, so that a return inside nested blocks
// leaves all of them.
func evalBlockStatement(block *ast.BlockStatement, env *object.Environment) object.Object {
	var result object.Object = NULL

	for _, statement := range block.Statements {
		result = Eval(statement, env)
		if isSignal(result) {
			return result
		}
	}

	return result
}

func nativeBoolToBooleanObject(input bool) *object.Boolean {
	if input {
		return TRUE
	}
	return FALSE
}

func evalPrefixExpression(operator string, right object.Object) object.Object {
	switch operator {
	case "!":
		return evalBangOperatorExpression(right)
	case "-":
		return evalMinusPrefixOperatorExpression(right)
	default:
		return newError("unknown operator: %s%s", operator, right.Type())
	}
}

func evalBangOperatorExpression(right object.Object) object.Object {
	return nativeBoolToBooleanObject(!isTruthy(right))
}

func evalMinusPrefixOperatorExpression(right object.Object) object.Object {
	if right.Type() != object.INTEGER_OBJ {
		return newError("unknown operator: -%s", right.Type())
	}

	value := right.(*object.Integer).Value
	result, ok := overflow.Sub64(0, value)
	if !ok {
		return newError("integer overflow: -%d", value)
	}
	return &object.Integer{Value: result}
}

func evalInfixExpression(operator string, left, right object.Object) object.Object {
	switch {
	case left.Type() == object.INTEGER_OBJ && right.Type() == object.INTEGER_OBJ:
		return evalIntegerInfixExpression(operator, left, right)
	case left.Type() == object.BOOLEAN_OBJ && right.Type() == object.BOOLEAN_OBJ:
		return evalBooleanInfixExpression(operator, left, right)
	case left.Type() == object.STRING_OBJ && right.Type() == object.STRING_OBJ:
		return evalStringInfixExpression(operator, left, right)
	default:
		// Only integers, booleans and strings have infix operators, so any other pairing is a
		// mismatch, even of two values of the same type.
		return newError("type mismatch: %s %s %s", left.Type(), operator, right.Type())
	}
}

// Arithmetic is checked: where Go would silently wrap around we return an error instead.
func evalIntegerInfixExpression(operator string, left, right object.Object) object.Object {
	leftVal := left.(*object.Integer).Value
	rightVal := right.(*object.Integer).Value

	var (
		result int64
		ok     bool
	)
	switch operator {
	case "+":
		result, ok = overflow.Add64(leftVal, rightVal)
	case "-":
		result, ok = overflow.Sub64(leftVal, rightVal)
	case "*":
		result, ok = overflow.Mul64(leftVal, rightVal)
	case "/":
		if rightVal == 0 {
			return newError("division by zero")
		}
		result, ok = overflow.Div64(leftVal, rightVal)
	case "<":
		return nativeBoolToBooleanObject(leftVal < rightVal)
	case ">":
		return nativeBoolToBooleanObject(leftVal > rightVal)
	case "==":
		return nativeBoolToBooleanObject(leftVal == rightVal)
	case "!=":
		return nativeBoolToBooleanObject(leftVal != rightVal)
	default:
		return newError("unknown operator: %s %s %s", left.Type(), operator, right.Type())
	}
	if !ok {
		return newError("integer overflow: %d %s %d", leftVal, operator, rightVal)
	}
	return &object.Integer{Value: result}
}

// Booleans are compared by value, so it doesn't matter whether they are the shared
// TRUE and FALSE or were made somewhere else.
func evalBooleanInfixExpression(operator string, left, right object.Object) object.Object {
	leftVal := left.(*object.Boolean).Value
	rightVal := right.(*object.Boolean).Value

	switch operator {
	case "==":
		return nativeBoolToBooleanObject(leftVal == rightVal)
	case "!=":
		return nativeBoolToBooleanObject(leftVal != rightVal)
	default:
		return newError("unknown operator: %s %s %s", left.Type(), operator, right.Type())
	}
}

func evalStringInfixExpression(operator string, left, right object.Object) object.Object {
	if operator != "+" {
		return newError("unknown operator: %s %s %s", left.Type(), operator, right.Type())
	}

	leftVal := left.(*object.String).Value
	rightVal := right.(*object.String).Value
	return &object.String{Value: leftVal + rightVal}
}

func evalIfExpression(ie *ast.IfExpression, env *object.Environment) object.Object {
	condition := Eval(ie.Condition, env)
	if isSignal(condition) {
		return condition
	}

	if isTruthy(condition) {
		return Eval(ie.Consequence, env)
	} else if ie.Alternative != nil {
		return Eval(ie.Alternative, env)
	} else {
		return NULL
	}
}

func evalIdentifier(node *ast.Identifier, env *object.Environment) object.Object {
	if val, ok := env.Get(node.Value); ok {
		return val
	}

	if builtin, ok := builtins[node.Value]; ok {
		return builtin
	}

	return newError("identifier not found: %s", node.Value)
}

// Evaluates left to right. If one of the expressions fails, what comes back is a slice
// holding just the failure.
func evalExpressions(exps []ast.Expression, env *object.Environment) []object.Object {
	result := make([]object.Object, 0, len(exps))

	for _, e := range exps {
		evaluated := Eval(e, env)
		if isSignal(evaluated) {
			return []object.Object{evaluated}
		}
		result = append(result, evaluated)
	}

	return result
}

func applyFunction(fn object.Object, args []object.Object) object.Object {
	switch fn := fn.(type) {

	case *object.Function:
		if len(args) != len(fn.Parameters) {
			return newError("wrong number of arguments. got=%d, want=%d", len(args), len(fn.Parameters))
		}
		extendedEnv := extendFunctionEnv(fn, args)
		evaluated := Eval(fn.Body, extendedEnv)
		return unwrapReturnValue(evaluated)

	case *object.Builtin:
		log.LogVf("eval: calling builtin %s", fn.Name)
		return fn.Fn(args...)

	default:
		return newError("not a function: %s", fn.Type())
	}
}

// The parameters live in a fresh scope whose parent is the scope the function was
// defined in, not the one it's being called from.
func extendFunctionEnv(fn *object.Function, args []object.Object) *object.Environment {
	env := fn.Env.Child()

	for paramIdx, param := range fn.Parameters {
		env.Set(param.Value, args[paramIdx])
	}

	return env
}

func unwrapReturnValue(obj object.Object) object.Object {
	if returnValue, ok := obj.(*object.ReturnValue); ok {
		return returnValue.Value
	}

	return obj
}

func evalIndexExpression(left, index object.Object) object.Object {
	switch {
	case left.Type() == object.ARRAY_OBJ && index.Type() == object.INTEGER_OBJ:
		return evalArrayIndexExpression(left, index)
	case left.Type() == object.HASH_OBJ:
		return evalHashIndexExpression(left, index)
	default:
		return newError("index operator not supported: %s", left.Type())
	}
}

// Out of range is not an error: it just gives you null.
func evalArrayIndexExpression(array, index object.Object) object.Object {
	arrayObject := array.(*object.Array)
	idx := index.(*object.Integer).Value

	if idx < 0 || idx >= int64(arrayObject.Len()) {
		return NULL
	}
	el, _ := arrayObject.Index(int(idx))
	return el
}

func evalHashLiteral(node *ast.HashLiteral, env *object.Environment) object.Object {
	hash := object.NewHash()

	for _, pair := range node.Pairs {
		key := Eval(pair.Key, env)
		if isSignal(key) {
			return key
		}

		hashKey, ok := key.(object.Hashable)
		if !ok {
			return newError("unusable as hash key: %s", key.Type())
		}

		value := Eval(pair.Value, env)
		if isSignal(value) {
			return value
		}

		hash.Set(hashKey, value)
	}

	return hash
}

func evalHashIndexExpression(hash, index object.Object) object.Object {
	hashObject := hash.(*object.Hash)

	key, ok := index.(object.Hashable)
	if !ok {
		return newError("unusable as hash key: %s", index.Type())
	}

	value, ok := hashObject.Get(key)
	if !ok {
		return NULL
	}
	return value
}

// Only false and null are falsy. In particular 0, "" and [] are all true.
func isTruthy(obj object.Object) bool {
	switch obj := obj.(type) {
	case *object.Null:
		return false
	case *object.Boolean:
		return obj.Value
	default:
		return true
	}
}

func newError(format string, a ...any) *object.Error {
	return &object.Error{Message: fmt.Sprintf(format, a...)}
}

// Errors and return values both cut short whatever is being evaluated and go straight up.
func isSignal(obj object.Object) bool {
	if obj == nil {
		return false
	}
	rt := obj.Type()
	return rt == object.ERROR_OBJ || rt == object.RETURN_VALUE_OBJ
}
