package evaluator

import (
	"fmt"
	"io"
	"os"
	"sort"
	"unicode/utf8"

	"monkey/object"
)

// Where puts writes to. The hub points this at its own output.
var Out io.Writer = os.Stdout

// Builtins check their own arguments and report misuse as error values, like everything
// else at runtime.
var builtins = map[string]*object.Builtin{
	"len": {
		Name: "len",
		Fn: func(args ...object.Object) object.Object {
			if len(args) != 1 {
				return newError("wrong number of arguments. got=%d, want=1", len(args))
			}

			switch arg := args[0].(type) {
			case *object.String:
				return &object.Integer{Value: int64(utf8.RuneCountInString(arg.Value))}
			case *object.Array:
				return &object.Integer{Value: int64(arg.Len())}
			default:
				return newError("argument to `len` not supported, got %s", args[0].Type())
			}
		},
	},

	"first": {
		Name: "first",
		Fn: func(args ...object.Object) object.Object {
			arr, err := arrayArgument("first", 1, args)
			if err != nil {
				return err
			}
			if el, ok := arr.Index(0); ok {
				return el
			}
			return NULL
		},
	},

	"last": {
		Name: "last",
		Fn: func(args ...object.Object) object.Object {
			arr, err := arrayArgument("last", 1, args)
			if err != nil {
				return err
			}
			if el, ok := arr.Index(arr.Len() - 1); ok {
				return el
			}
			return NULL
		},
	},

	"rest": {
		Name: "rest",
		Fn: func(args ...object.Object) object.Object {
			arr, err := arrayArgument("rest", 1, args)
			if err != nil {
				return err
			}
			if arr.Len() == 0 {
				return NULL
			}
			return arr.Rest()
		},
	},

	"push": {
		Name: "push",
		Fn: func(args ...object.Object) object.Object {
			arr, err := arrayArgument("push", 2, args)
			if err != nil {
				return err
			}
			return arr.Push(args[1])
		},
	},

	"puts": {
		Name: "puts",
		Fn: func(args ...object.Object) object.Object {
			for _, arg := range args {
				fmt.Fprintln(Out, arg.Inspect())
			}
			return NULL
		},
	},
}

// Checks the argument count and that the first argument is an array.
func arrayArgument(name string, want int, args []object.Object) (*object.Array, *object.Error) {
	if len(args) != want {
		return nil, newError("wrong number of arguments. got=%d, want=%d", len(args), want)
	}
	arr, ok := args[0].(*object.Array)
	if !ok {
		return nil, newError("argument to `%s` must be ARRAY, got %s", name, args[0].Type())
	}
	return arr, nil
}

// The names of the builtins, for the hub's help.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for k := range builtins {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
