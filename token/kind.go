// Package token defines the closed set of lexical token kinds produced by
// the Nail lexer (spec §3 "Token", §4.D) and the Token value itself.
package token

import "fmt"

// Kind is a closed enumeration of token categories. New kinds are never
// added by any component other than this file (spec §4.B's "registry is the
// only place per-function knowledge lives" extends, by the same principle,
// to keeping the token set itself closed and centrally defined).
type Kind int

const (
	Invalid Kind = iota
	EOF
	LexError

	// Literals
	IntLit
	FloatLit
	StringLit
	BoolLit

	// Identifiers, distinguished lexically by case (spec §3, §4.D.3)
	SnakeIdent
	PascalIdent

	// Keywords
	KwF        // f      (function declaration)
	KwIf       // if
	KwElse     // else
	KwStruct   // struct
	KwEnum     // enum
	KwFor      // for
	KwWhile    // while
	KwLoop     // loop
	KwSpawn    // spawn
	KwParallel // parallel
	KwBreak    // break
	KwContinue // continue
	KwFrom     // from
	KwMax      // max
	KwIn       // in

	// Comprehension keywords
	KwMap
	KwFilter
	KwReduce
	KwEach
	KwFind
	KwAll
	KwAny

	// Control-transfer keywords
	KwReturn // r
	KwYield  // y

	// Type-marker keywords (also valid single-letter identifiers)
	TyInt    // i
	TyFloat  // f  (shares spelling with KwF; disambiguated by parse position)
	TyString // s
	TyBool   // b
	TyVoid   // v
	TyArray  // a
	TyHash   // h
	TyError  // e

	// Punctuation
	Colon     // :
	Semi      // ;
	Comma     // ,
	Dot       // .
	Eq        // =
	FatArrow  // =>
	LBrace    // {
	RBrace    // }
	LParen    // (
	RParen    // )
	LBracket  // [
	RBracket  // ]
	Lt        // <
	Gt        // >
	Pipe      // |
	Bang      // !
	ColonColon // ::
	PipeArrow  // |>

	// Operators
	Plus     // +
	Minus    // -
	Star     // *
	Slash    // /
	Percent  // %
	EqEq     // ==
	NotEq    // !=
	LtEq     // <=
	GtEq     // >=
	AndAnd   // &&
	OrOr     // ||
)

var names = map[Kind]string{
	Invalid:     "invalid",
	EOF:         "eof",
	LexError:    "lex-error",
	IntLit:      "int-literal",
	FloatLit:    "float-literal",
	StringLit:   "string-literal",
	BoolLit:     "bool-literal",
	SnakeIdent:  "identifier",
	PascalIdent: "type-identifier",
	KwF:         `"f"`,
	KwIf:        `"if"`,
	KwElse:      `"else"`,
	KwStruct:    `"struct"`,
	KwEnum:      `"enum"`,
	KwFor:       `"for"`,
	KwWhile:     `"while"`,
	KwLoop:      `"loop"`,
	KwSpawn:     `"spawn"`,
	KwParallel:  `"parallel"`,
	KwBreak:     `"break"`,
	KwContinue:  `"continue"`,
	KwFrom:      `"from"`,
	KwMax:       `"max"`,
	KwIn:        `"in"`,
	KwMap:       `"map"`,
	KwFilter:    `"filter"`,
	KwReduce:    `"reduce"`,
	KwEach:      `"each"`,
	KwFind:      `"find"`,
	KwAll:       `"all"`,
	KwAny:       `"any"`,
	KwReturn:    `"r"`,
	KwYield:     `"y"`,
	TyInt:       `"i"`,
	TyFloat:     `"f"`,
	TyString:    `"s"`,
	TyBool:      `"b"`,
	TyVoid:      `"v"`,
	TyArray:     `"a"`,
	TyHash:      `"h"`,
	TyError:     `"e"`,
	Colon:       `":"`,
	Semi:        `";"`,
	Comma:       `","`,
	Dot:         `"."`,
	Eq:          `"="`,
	FatArrow:    `"=>"`,
	LBrace:      `"{"`,
	RBrace:      `"}"`,
	LParen:      `"("`,
	RParen:      `")"`,
	LBracket:    `"["`,
	RBracket:    `"]"`,
	Lt:          `"<"`,
	Gt:          `">"`,
	Pipe:        `"|"`,
	Bang:        `"!"`,
	ColonColon:  `"::"`,
	PipeArrow:   `"|>"`,
	Plus:        `"+"`,
	Minus:       `"-"`,
	Star:        `"*"`,
	Slash:       `"/"`,
	Percent:     `"%"`,
	EqEq:        `"=="`,
	NotEq:       `"!="`,
	LtEq:        `"<="`,
	GtEq:        `">="`,
	AndAnd:      `"&&"`,
	OrOr:        `"||"`,
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("token.Kind(%d)", int(k))
}

// Keywords maps reserved-word spelling to its Kind. Single-letter type
// markers are included here too: they are reserved words, not identifiers,
// per spec §4.D.3. "true" and "false" are deliberately absent: spec §3
// lists them under literal tokens, not keyword tokens, so the lexer
// recognizes them directly as BoolLit rather than consulting this table.
var Keywords = map[string]Kind{
	"if":       KwIf,
	"else":     KwElse,
	"struct":   KwStruct,
	"enum":     KwEnum,
	"for":      KwFor,
	"while":    KwWhile,
	"loop":     KwLoop,
	"spawn":    KwSpawn,
	"parallel": KwParallel,
	"break":    KwBreak,
	"continue": KwContinue,
	"from":     KwFrom,
	"max":      KwMax,
	"in":       KwIn,
	"map":      KwMap,
	"filter":   KwFilter,
	"reduce":   KwReduce,
	"each":     KwEach,
	"find":     KwFind,
	"all":      KwAll,
	"any":      KwAny,
	"r":        KwReturn,
	"y":        KwYield,
	"f":        KwF, // resolved against TyFloat by the parser when in type position
	"i":        TyInt,
	"s":        TyString,
	"b":        TyBool,
	"v":        TyVoid,
	"a":        TyArray,
	"h":        TyHash,
	"e":        TyError,
}

// TypeMarkers is the set of single-letter identifiers exempt from the
// two-character minimum (spec §4.D.3).
var TypeMarkers = map[string]bool{
	"i": true, "f": true, "s": true, "b": true,
	"v": true, "a": true, "h": true, "e": true,
}
