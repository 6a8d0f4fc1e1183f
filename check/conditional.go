package check

import (
	"github.com/nail-lang/nailc/ast"
	"github.com/nail-lang/nailc/internal/span"
)

// checkConditional implements spec §4.F "Conditional". Every guard must be
// Bool; each branch (and the else arm, if present) is checked in its own
// child scope. When used in expression position the branches must all
// produce the same non-void type once branches that unconditionally
// diverge (panic/todo) are excluded from the unification.
func (c *Checker) checkConditional(cond *ast.Conditional, sc *scope) ast.Type {
	var contributing []ast.Type
	anyContributes := false

	for _, br := range cond.Branches {
		guardType := c.inferExpr(br.Guard, sc)
		if !guardType.Equal(ast.Primitive(ast.Bool)) {
			c.h.Errorf(span.TypeError, br.Guard.Span(), "conditional guard must be Bool, found %s", guardType)
		}
		branchScope := newScope(sc)
		c.checkBlockStmts(br.Body, branchScope)
		if t, ok := c.branchValue(br.Body); ok {
			contributing = append(contributing, t)
			anyContributes = true
		}
	}

	if cond.Else != nil {
		elseScope := newScope(sc)
		c.checkBlockStmts(cond.Else, elseScope)
		if t, ok := c.branchValue(cond.Else); ok {
			contributing = append(contributing, t)
			anyContributes = true
		}
	}

	c.checkEnumExhaustiveness(cond)

	if !anyContributes {
		return ast.Primitive(ast.Void)
	}
	result := contributing[0]
	for _, t := range contributing[1:] {
		// Result-typed branches unify the same way a return statement's
		// declared/actual pair does (checkReturnStmt): a bare err(...)
		// carries a PrimInvalid wildcard inner type and is compatible
		// with any other result branch, not just one with an identical
		// inner type.
		if result.IsResult() && t.IsResult() {
			if !resultCompatible(result, t) && !resultCompatible(t, result) {
				c.h.Errorf(span.TypeError, cond.Span(), "conditional branches must all produce %s, found %s", result, t)
			} else if result.Elem.Tag == ast.TagPrimitive && result.Elem.Prim == ast.PrimInvalid {
				// upgrade a wildcard (bare err(...)) accumulator to the
				// first concrete inner type seen among the branches
				result = t
			}
			continue
		}
		if !t.Equal(result) {
			c.h.Errorf(span.TypeError, cond.Span(), "conditional branches must all produce %s, found %s", result, t)
		}
	}
	return result
}

// branchValue reports the value a branch block contributes to unification:
// the type of its tail return, or (false) when the branch unconditionally
// diverges via panic/todo (spec §4.F "branches that unconditionally panic
// ... are excluded from the unification").
func (c *Checker) branchValue(b *ast.Block) (ast.Type, bool) {
	if len(b.Stmts) == 0 {
		return ast.Type{}, false
	}
	switch last := b.Stmts[len(b.Stmts)-1].(type) {
	case *ast.ReturnStmt:
		if last.Value == nil {
			return ast.Primitive(ast.Void), true
		}
		return last.Value.Type(), true
	case *ast.ExprStmt:
		if call, ok := last.X.(*ast.Call); ok {
			if id, ok := call.Callee.(*ast.Ident); ok && (id.Name == "panic" || id.Name == "todo") {
				return ast.Type{}, false
			}
		}
		return ast.Type{}, false
	default:
		return ast.Type{}, false
	}
}

// checkEnumExhaustiveness implements spec §4.F: "If the conditional
// discriminates on equality with variants of an enum, the checker verifies
// exhaustiveness: either every variant appears in some branch, or an else
// branch is present." Conditionals that don't follow this `x == Enum::V`
// shape are ordinary booleans and are not subject to the check.
func (c *Checker) checkEnumExhaustiveness(cond *ast.Conditional) {
	if cond.Else != nil {
		return
	}
	enumName := ""
	seen := map[string]bool{}
	for _, br := range cond.Branches {
		variant, ok := enumEqualityVariant(br.Guard)
		if !ok {
			return // not every branch follows the discriminant shape; skip
		}
		if enumName == "" {
			enumName = variant.EnumName
		} else if enumName != variant.EnumName {
			return // branches discriminate on different enums; not our call
		}
		seen[variant.VariantName] = true
	}
	if enumName == "" {
		return
	}
	ed, ok := c.g.Enums[enumName]
	if !ok {
		return
	}
	for _, v := range ed.Variants {
		if !seen[v] {
			c.h.Errorf(span.TypeError, cond.Span(),
				"conditional on enum %s is not exhaustive (missing %s); add an else branch", enumName, v)
			return
		}
	}
}

// enumEqualityVariant recognizes a guard of the form `expr == Enum::Variant`
// (either operand order).
func enumEqualityVariant(guard ast.Expr) (*ast.EnumVariant, bool) {
	bin, ok := guard.(*ast.Binary)
	if !ok || bin.Op != ast.OpEq {
		return nil, false
	}
	if v, ok := bin.Right.(*ast.EnumVariant); ok {
		return v, true
	}
	if v, ok := bin.Left.(*ast.EnumVariant); ok {
		return v, true
	}
	return nil, false
}
