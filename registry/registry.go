// Package registry holds the Nail standard-library registry: a closed,
// read-only table mapping every built-in function name to its signature,
// target call template, and required external (target-language) libraries
// (spec §2 Component C, §4.B). It is data, not code: the lexer, parser,
// checker and transpiler hold no per-function knowledge beyond what they
// look up here, except for `print`'s variadic-formatting special case
// (spec §4.B, §9 "Registry-driven transpilation"), the checker's by-name
// recognition of `panic`/`todo` calls as conditional branch tails, and the
// transpiler's by-name choice of `.expect(...)` for `expect`.
//
// The shape of this package — a table mapping a logical name to a resource
// record, plus a secondary table mapping opaque identifiers to physical
// dependency coordinates — is grounded on the teacher's
// wellknownimports.WithStandardImports pattern.
package registry

import (
	"sort"

	"github.com/nail-lang/nailc/ast"
)

// Module identifies the logical call-site grouping used by the transpiler's
// abstract CALL(module, function, args) form (spec §4.B).
type Module string

const (
	ModString  Module = "string"
	ModMath    Module = "math"
	ModArray   Module = "array"
	ModHashMap Module = "hashmap"
	ModIO      Module = "io"
	ModFS      Module = "fs"
	ModHTTP    Module = "http"
	ModTime    Module = "time"
	ModCrypto  Module = "crypto"
	ModPrint   Module = "print"
	ModError   Module = "error"
)

// Tag is the at-most-one special tag a registry entry may carry (spec §4.B).
type Tag int

const (
	TagNone Tag = iota
	TagVariadicPrint
	TagErrorDischarger
	TagErrorConstructor
	TagPipeSource
)

// Entry is one registry record (spec §4.B "Signature", "Target call
// template", "Required external libraries", "Special tags").
type Entry struct {
	Name       string
	Params     []ast.Type // may include ast.AnyOf(...) alternatives
	Variadic   bool       // true only for print
	Return     ast.Type
	Module     Module
	Libraries  []string // opaque identifiers resolved via a Manifest
	Tag        Tag

	// HandlerParam is set only on entries whose Tag is TagErrorDischarger
	// and which, like `safe`, take a second argument that must be a
	// function from Error to the discharged type. The checker reads this
	// field rather than special-casing the name "safe" (spec §9
	// "Error-handler parameter type").
	HandlerParam ast.Type
}

// Registry is the closed table itself.
type Registry struct {
	entries map[string]Entry
}

// Lookup finds an entry by name. ok is false for any name not defined here,
// which the checker treats as either a user-declared function or a
// registry error (spec §7 "Registry error").
func (r *Registry) Lookup(name string) (Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Names returns every registered function name, sorted, for diagnostics and
// test fixtures.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for n := range r.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func entry(e Entry) Entry { return e }

// New builds the standard registry. It is constructed once and is
// immutable thereafter (spec §3 "Lifecycles").
func New() *Registry {
	i := ast.Primitive(ast.Int)
	fl := ast.Primitive(ast.Float)
	s := ast.Primitive(ast.String)
	b := ast.Primitive(ast.Bool)
	v := ast.Primitive(ast.Void)
	errT := ast.Primitive(ast.ErrorPrim)
	numeric := ast.AnyOf(i, fl)

	arrI := ast.Array(i)
	arrS := ast.Array(s)

	r := &Registry{entries: map[string]Entry{}}
	add := func(e Entry) { r.entries[e.Name] = e }

	// --- error-handling group (spec §4.F "Result-type discipline") -----
	add(entry(Entry{
		Name: "ok", Params: []ast.Type{numeric}, Return: numeric,
		Module: ModError, Tag: TagErrorConstructor,
	}))
	add(entry(Entry{
		Name: "err", Params: []ast.Type{s}, Return: errT,
		Module: ModError, Tag: TagErrorConstructor,
	}))
	add(entry(Entry{
		Name: "danger", Params: []ast.Type{numeric}, Return: numeric,
		Module: ModError, Tag: TagErrorDischarger,
	}))
	add(entry(Entry{
		Name: "expect", Params: []ast.Type{numeric}, Return: numeric,
		Module: ModError, Tag: TagErrorDischarger,
	}))
	add(entry(Entry{
		Name: "safe", Params: []ast.Type{numeric, numeric}, Return: numeric,
		Module: ModError, Tag: TagErrorDischarger, HandlerParam: errT,
	}))
	add(entry(Entry{
		Name: "panic", Params: []ast.Type{s}, Return: v, Module: ModError,
	}))
	add(entry(Entry{
		Name: "todo", Params: nil, Return: v, Module: ModError,
	}))

	// --- print (spec §4.B "variadic-print") -----------------------------
	add(entry(Entry{
		Name: "print", Variadic: true, Return: v, Module: ModPrint,
		Tag: TagVariadicPrint, Libraries: []string{"core_runtime"},
	}))

	// --- string group -----------------------------------------------------
	add(entry(Entry{Name: "string_length", Params: []ast.Type{s}, Return: i, Module: ModString}))
	add(entry(Entry{Name: "string_upper", Params: []ast.Type{s}, Return: s, Module: ModString}))
	add(entry(Entry{Name: "string_lower", Params: []ast.Type{s}, Return: s, Module: ModString}))
	add(entry(Entry{Name: "string_trim", Params: []ast.Type{s}, Return: s, Module: ModString}))
	add(entry(Entry{Name: "string_concat", Params: []ast.Type{s, s}, Return: s, Module: ModString}))
	add(entry(Entry{Name: "string_contains", Params: []ast.Type{s, s}, Return: b, Module: ModString}))
	add(entry(Entry{Name: "string_replace", Params: []ast.Type{s, s, s}, Return: s, Module: ModString}))
	add(entry(Entry{Name: "string_split", Params: []ast.Type{s, s}, Return: arrS, Module: ModString}))
	add(entry(Entry{Name: "string_to_int", Params: []ast.Type{s}, Return: ast.Result(i), Module: ModString}))
	add(entry(Entry{Name: "string_to_float", Params: []ast.Type{s}, Return: ast.Result(fl), Module: ModString}))
	add(entry(Entry{Name: "markdown_render", Params: []ast.Type{s}, Return: s, Module: ModString, Libraries: []string{"markdown"}}))

	// --- math group ---------------------------------------------------
	add(entry(Entry{Name: "math_abs", Params: []ast.Type{numeric}, Return: numeric, Module: ModMath}))
	add(entry(Entry{Name: "math_min", Params: []ast.Type{numeric, numeric}, Return: numeric, Module: ModMath}))
	add(entry(Entry{Name: "math_max", Params: []ast.Type{numeric, numeric}, Return: numeric, Module: ModMath}))
	add(entry(Entry{Name: "math_pow", Params: []ast.Type{fl, fl}, Return: fl, Module: ModMath}))
	add(entry(Entry{Name: "math_sqrt", Params: []ast.Type{fl}, Return: fl, Module: ModMath}))
	add(entry(Entry{Name: "math_floor", Params: []ast.Type{fl}, Return: i, Module: ModMath}))
	add(entry(Entry{Name: "math_ceil", Params: []ast.Type{fl}, Return: i, Module: ModMath}))
	add(entry(Entry{Name: "math_round", Params: []ast.Type{fl}, Return: i, Module: ModMath}))

	// --- array group ----------------------------------------------------
	add(entry(Entry{Name: "array_length", Params: []ast.Type{arrI}, Return: i, Module: ModArray}))
	add(entry(Entry{Name: "array_push", Params: []ast.Type{arrI, i}, Return: arrI, Module: ModArray}))
	add(entry(Entry{Name: "array_sort", Params: []ast.Type{arrI}, Return: arrI, Module: ModArray}))
	add(entry(Entry{Name: "array_reverse", Params: []ast.Type{arrI}, Return: arrI, Module: ModArray}))
	add(entry(Entry{Name: "array_contains", Params: []ast.Type{arrI, i}, Return: b, Module: ModArray}))
	add(entry(Entry{Name: "array_join", Params: []ast.Type{arrS, s}, Return: s, Module: ModArray}))
	add(entry(Entry{
		Name: "array_range", Params: []ast.Type{i, i}, Return: arrI, Module: ModArray,
		Tag: TagPipeSource,
	}))

	// --- hashmap group (concurrent-safe when shared into a parallel
	// block, spec §5 "Shared resources") ---------------------------------
	add(entry(Entry{
		Name: "hashmap_new", Params: nil, Return: ast.HashMap(s, i), Module: ModHashMap,
		Libraries: []string{"hashmap_concurrent"},
	}))
	add(entry(Entry{Name: "hashmap_get", Params: []ast.Type{ast.HashMap(s, i), s}, Return: ast.Result(i), Module: ModHashMap}))
	add(entry(Entry{Name: "hashmap_set", Params: []ast.Type{ast.HashMap(s, i), s, i}, Return: v, Module: ModHashMap}))
	add(entry(Entry{Name: "hashmap_remove", Params: []ast.Type{ast.HashMap(s, i), s}, Return: v, Module: ModHashMap}))
	add(entry(Entry{Name: "hashmap_contains", Params: []ast.Type{ast.HashMap(s, i), s}, Return: b, Module: ModHashMap}))
	add(entry(Entry{Name: "hashmap_keys", Params: []ast.Type{ast.HashMap(s, i)}, Return: arrS, Module: ModHashMap}))

	// --- io / fs group ----------------------------------------------------
	add(entry(Entry{Name: "read_file", Params: []ast.Type{s}, Return: ast.Result(s), Module: ModFS}))
	add(entry(Entry{Name: "write_file", Params: []ast.Type{s, s}, Return: ast.Result(v), Module: ModFS}))
	add(entry(Entry{Name: "read_line", Params: nil, Return: ast.Result(s), Module: ModIO}))

	// --- http group -------------------------------------------------------
	add(entry(Entry{
		Name: "http_get", Params: []ast.Type{s}, Return: ast.Result(s), Module: ModHTTP,
		Libraries: []string{"http_runtime"},
	}))
	add(entry(Entry{
		Name: "http_post", Params: []ast.Type{s, s}, Return: ast.Result(s), Module: ModHTTP,
		Libraries: []string{"http_runtime"},
	}))
	add(entry(Entry{
		Name: "http_server_start", Params: []ast.Type{i}, Return: ast.Result(v), Module: ModHTTP,
		Libraries: []string{"http_runtime"},
	}))

	// --- time group -------------------------------------------------------
	add(entry(Entry{Name: "time_now", Params: nil, Return: i, Module: ModTime, Libraries: []string{"time_runtime"}}))
	add(entry(Entry{Name: "time_sleep_ms", Params: []ast.Type{i}, Return: v, Module: ModTime, Libraries: []string{"time_runtime"}}))
	add(entry(Entry{Name: "time_elapsed_ms", Params: []ast.Type{i}, Return: i, Module: ModTime, Libraries: []string{"time_runtime"}}))

	// --- crypto group ------------------------------------------------------
	add(entry(Entry{Name: "crypto_sha256", Params: []ast.Type{s}, Return: s, Module: ModCrypto, Libraries: []string{"crypto_runtime"}}))
	add(entry(Entry{Name: "crypto_random_bytes", Params: []ast.Type{i}, Return: s, Module: ModCrypto, Libraries: []string{"crypto_runtime"}}))

	return r
}
