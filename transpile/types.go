package transpile

import "github.com/nail-lang/nailc/ast"

// rustType renders a Nail type as its Rust spelling (spec §4.G "Scalars and
// strings" / "Struct/enum declaration" preserve source casing; everything
// else maps onto Rust's own standard types).
func rustType(t ast.Type) string {
	switch t.Tag {
	case ast.TagPrimitive:
		switch t.Prim {
		case ast.Int:
			return "i64"
		case ast.Float:
			return "f64"
		case ast.String:
			return "String"
		case ast.Bool:
			return "bool"
		case ast.Void:
			return "()"
		case ast.ErrorPrim:
			return "NailError"
		default:
			return "()"
		}
	case ast.TagArray:
		return "Vec<" + rustType(*t.Elem) + ">"
	case ast.TagHashMap:
		return "std::collections::HashMap<" + rustType(*t.Key) + ", " + rustType(*t.Value) + ">"
	case ast.TagResult:
		return "Result<" + rustType(*t.Elem) + ", NailError>"
	case ast.TagStruct, ast.TagEnum, ast.TagUnresolved:
		return t.Name
	case ast.TagFunc:
		return "Box<dyn Fn(" + joinTypes(t.Params) + ") -> " + rustType(*t.Return) + ">"
	default:
		return "()"
	}
}

func joinTypes(ts []ast.Type) string {
	out := ""
	for i, t := range ts {
		if i > 0 {
			out += ", "
		}
		out += rustType(t)
	}
	return out
}
