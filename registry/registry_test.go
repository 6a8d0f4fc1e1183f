package registry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookupKnownEntries(t *testing.T) {
	r := New()
	e, ok := r.Lookup("print")
	require.True(t, ok)
	require.Equal(t, TagVariadicPrint, e.Tag)
	require.Equal(t, []string{"core_runtime"}, e.Libraries)

	_, ok = r.Lookup("not_a_real_function")
	require.False(t, ok)
}

func TestManifestDeduplicatesAndSorts(t *testing.T) {
	m := NewManifest()
	m.AddLibrary("core_runtime")
	m.AddLibrary("hashmap_concurrent")
	m.AddLibrary("core_runtime")

	lines := m.Lines()
	require.Equal(t, []string{
		`dashmap = "6"`,
		`nail-rt = "0.1"`,
	}, lines)
}

func TestArrayRangeTaggedPipeSource(t *testing.T) {
	r := New()
	e, ok := r.Lookup("array_range")
	require.True(t, ok)
	require.Equal(t, TagPipeSource, e.Tag)
}
