package search

// Symbol extraction is a lexical heuristic, not a scope-aware reference
// resolver. It may both over- and under-collect identifiers; that is an
// accepted trade-off for speed. The tokenizer is pluggable so a
// language-aware implementation can be substituted without changing the
// scanner contract.

// Tokenizer produces candidate identifier tokens from one line of text.
type Tokenizer interface {
	Tokens(line string) []string
}

// LexicalTokenizer is the default tokenizer: maximal runs of
// [A-Za-z_$][A-Za-z0-9_$]*.
type LexicalTokenizer struct{}

// Tokens returns the identifier-shaped tokens of line, in order.
func (LexicalTokenizer) Tokens(line string) []string {
	var tokens []string
	i := 0
	for i < len(line) {
		if !isIdentifierStart(line[i]) {
			i++
			continue
		}
		start := i
		for i < len(line) && IsIdentifierChar(line[i]) {
			i++
		}
		tokens = append(tokens, line[start:i])
	}
	return tokens
}

func isIdentifierStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' || b == '$'
}

// reservedWords lists keywords for common C-family and scripting
// syntaxes. Tokens in this list are never reported as symbols.
var reservedWords = map[string]struct{}{
	// shared C-family
	"if": {}, "else": {}, "for": {}, "while": {}, "do": {}, "switch": {},
	"case": {}, "default": {}, "break": {}, "continue": {}, "return": {},
	"goto": {}, "new": {}, "delete": {}, "this": {}, "true": {}, "false": {},
	"null": {}, "void": {}, "int": {}, "long": {}, "short": {}, "char": {},
	"float": {}, "double": {}, "bool": {}, "boolean": {}, "string": {},
	"signed": {}, "unsigned": {}, "const": {}, "static": {}, "extern": {},
	"volatile": {}, "register": {}, "inline": {}, "sizeof": {}, "struct": {},
	"union": {}, "enum": {}, "typedef": {}, "auto": {},
	// C++ / Java / C#
	"class": {}, "public": {}, "private": {}, "protected": {}, "virtual": {},
	"override": {}, "abstract": {}, "final": {}, "extends": {},
	"implements": {}, "interface": {}, "instanceof": {}, "throws": {},
	"throw": {}, "try": {}, "catch": {}, "finally": {}, "synchronized": {},
	"transient": {}, "native": {}, "super": {}, "namespace": {},
	"template": {}, "using": {}, "operator": {},
	// JavaScript / TypeScript
	"var": {}, "let": {}, "function": {}, "typeof": {}, "undefined": {},
	"in": {}, "of": {}, "export": {}, "import": {}, "from": {}, "async": {},
	"await": {}, "yield": {}, "debugger": {}, "module": {}, "require": {},
	// Go
	"func": {}, "type": {}, "range": {}, "map": {}, "chan": {}, "go": {},
	"defer": {}, "select": {}, "fallthrough": {}, "package": {}, "nil": {},
	// Python / Ruby / PHP
	"def": {}, "elif": {}, "lambda": {}, "pass": {}, "raise": {},
	"except": {}, "with": {}, "as": {}, "is": {}, "not": {}, "and": {},
	"or": {}, "global": {}, "nonlocal": {}, "print": {}, "echo": {},
	"foreach": {}, "end": {}, "begin": {}, "rescue": {}, "unless": {},
	// Rust
	"fn": {}, "impl": {}, "mut": {}, "match": {}, "loop": {}, "use": {},
	"pub": {}, "mod": {}, "trait": {}, "dyn": {}, "ref": {}, "where": {},
	"crate": {}, "self": {}, "Self": {},
}

// IsReservedWord reports whether token is in the fixed keyword list.
func IsReservedWord(token string) bool {
	_, ok := reservedWords[token]
	return ok
}

// ExtractSymbols returns the deduplicated identifier tokens of line,
// excluding the given token (case-sensitive exact match) and reserved
// words. First-seen order is preserved and the output is capped at
// MaxSymbolsPerLine.
func ExtractSymbols(tok Tokenizer, line, exclude string) []string {
	var symbols []string
	seen := make(map[string]struct{})

	for _, token := range tok.Tokens(line) {
		if token == exclude {
			continue
		}
		if IsReservedWord(token) {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		symbols = append(symbols, token)
		if len(symbols) >= MaxSymbolsPerLine {
			break
		}
	}
	return symbols
}
