package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeConcrete(t *testing.T) {
	require.True(t, Primitive(Int).Concrete())
	require.False(t, Primitive(Void).Concrete())
	require.False(t, Primitive(ErrorPrim).Concrete())
	require.False(t, Result(Primitive(Int)).Concrete())
	require.True(t, Array(Primitive(Int)).Concrete())
	require.False(t, Array(Result(Primitive(Int))).Concrete())
	require.True(t, HashMap(Primitive(String), Primitive(Int)).Concrete())
	require.True(t, StructRef("Point").Concrete())
}

func TestTypeEqualAndString(t *testing.T) {
	a := Array(Primitive(Int))
	b := Array(Primitive(Int))
	require.True(t, a.Equal(b))
	require.Equal(t, "a:Int", a.String())

	r := Result(Primitive(Int))
	require.Equal(t, "Int!e", r.String())
	require.True(t, r.IsResult())
}

func TestAnyOfAccepts(t *testing.T) {
	param := AnyOf(Primitive(Int), Primitive(Float))
	require.True(t, param.Accepts(Primitive(Int)))
	require.True(t, param.Accepts(Primitive(Float)))
	require.False(t, param.Accepts(Primitive(String)))
}
