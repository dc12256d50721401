package ast

import (
	"encoding/json"
	"fmt"
)

// Print produces a deterministic JSON representation of an AST node,
// suitable for golden-style comparisons.
// Position info is omitted so the same program prints identically
// regardless of where it was parsed from.
func Print(node Node) string {
	if node == nil {
		return "null"
	}
	data, err := json.MarshalIndent(simplify(node), "", "  ")
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(data)
}

// PrintProgram prints a whole Program (see Print).
func PrintProgram(prog *Program) string {
	if prog == nil {
		return "null"
	}
	funcs := make([]interface{}, len(prog.Funcs))
	for i, f := range prog.Funcs {
		funcs[i] = simplify(f)
	}
	data, err := json.MarshalIndent(map[string]interface{}{"type": "Program", "funcs": funcs}, "", "  ")
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(data)
}

func simplify(node interface{}) interface{} {
	switch n := node.(type) {
	case nil:
		return nil

	case *FuncDef:
		params := make([]interface{}, len(n.Params))
		for i, p := range n.Params {
			params[i] = simplify(p)
		}
		return map[string]interface{}{
			"type": "FuncDef", "name": n.Name, "params": params,
			"result": simplify(n.Result), "body": simplify(n.Body),
		}

	case *Param:
		if n.Type == nil {
			return map[string]interface{}{"type": "Param", "name": n.Name, "ty": nil}
		}
		return map[string]interface{}{"type": "Param", "name": n.Name, "ty": simplify(n.Type)}

	case *BaseTy:
		return map[string]interface{}{"type": "BaseTy", "name": n.Name}

	case *FuncTy:
		params := make([]interface{}, len(n.Params))
		for i, p := range n.Params {
			params[i] = simplify(p)
		}
		return map[string]interface{}{"type": "FuncTy", "params": params, "result": simplify(n.Result)}

	case *TupleTy:
		elems := make([]interface{}, len(n.Elems))
		for i, e := range n.Elems {
			elems[i] = simplify(e)
		}
		return map[string]interface{}{"type": "TupleTy", "elems": elems}

	case *Literal:
		kind := "Int"
		if n.Kind == LitBool {
			kind = "Bool"
		}
		return map[string]interface{}{"type": "Literal", "kind": kind, "bits": n.Bits}

	case *Ident:
		return map[string]interface{}{"type": "Ident", "name": n.Name}

	case *Let:
		return map[string]interface{}{
			"type": "Let", "name": n.Name, "rhs": simplify(n.Rhs), "body": simplify(n.Body),
		}

	case *Call:
		args := make([]interface{}, len(n.Args))
		for i, a := range n.Args {
			args[i] = simplify(a)
		}
		return map[string]interface{}{"type": "Call", "func": n.Func, "args": args}

	case *UnaryOp:
		return map[string]interface{}{"type": "UnaryOp", "op": n.Op.String(), "operand": simplify(n.Operand)}

	case *BinaryOp:
		return map[string]interface{}{
			"type": "BinaryOp", "op": n.Op.String(), "left": simplify(n.Left), "right": simplify(n.Right),
		}

	case *Cond:
		return map[string]interface{}{
			"type": "Cond", "cond": simplify(n.Cond), "then": simplify(n.Then), "else": simplify(n.Else),
		}

	case *Tuple:
		elems := make([]interface{}, len(n.Elems))
		for i, e := range n.Elems {
			elems[i] = simplify(e)
		}
		return map[string]interface{}{"type": "Tuple", "elems": elems}

	case *Projection:
		return map[string]interface{}{"type": "Projection", "record": simplify(n.Record), "label": n.Label}

	default:
		return fmt.Sprintf("%v", n)
	}
}
