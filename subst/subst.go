// Package subst implements the token substitution engine: whole-token
// name rewrites of `$(n)` and fixed-arity pseudo-call rewrites of
// `$(c, a0, ..., ak-1)`. Both are deterministic, left-to-right, and
// non-recursive — replacement text is copied into the output and
// never re-scanned, even when it happens to contain another `$(...)`
// span.
package subst

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// Formatter maps a matched name to its replacement text.
type Formatter func(name string) string

// Names rewrites every occurrence of `$(n)` for n in names into
// names[n](n), wherever it appears — including nested inside an
// unrelated call's argument list, e.g. the `$(w)` inside
// `$(addToInSyn, $(w))`. Tokens whose name is not in the set pass
// through unchanged. The whole fragment is matched in a single regexp
// pass, so replacement text is never rescanned.
func Names(fragment string, names map[string]Formatter) string {
	if len(names) == 0 {
		return fragment
	}
	keys := make([]string, 0, len(names))
	for k := range names {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	alts := make([]string, len(keys))
	for i, k := range keys {
		alts[i] = regexp.QuoteMeta(k)
	}
	re := regexp.MustCompile(`\$\(\s*(` + strings.Join(alts, "|") + `)\s*\)`)
	return re.ReplaceAllStringFunc(fragment, func(m string) string {
		name := re.FindStringSubmatch(m)[1]
		return names[name](name)
	})
}

// Call rewrites every occurrence of `$(name, a0, ..., a{arity-1})`
// into template with its own `$(0)`..`$(arity-1)` placeholders bound
// to the positional arguments. Arguments may themselves contain
// nested parentheses or `$(...)` tokens; the matching close paren is
// found by depth counting, not by a naive non-nested regexp.
func Call(fragment, name string, arity int, template string) string {
	anchor := "$(" + name
	var out strings.Builder
	pos := 0
	for {
		rel := strings.Index(fragment[pos:], anchor)
		if rel < 0 {
			break
		}
		start := pos + rel
		after := start + len(anchor)
		if after < len(fragment) && !isBoundary(fragment[after]) {
			// e.g. name "w" must not match inside "$(weight)"
			pos = start + 1
			continue
		}
		depth := 1
		j := start + 2
		for j < len(fragment) && depth > 0 {
			switch fragment[j] {
			case '(':
				depth++
			case ')':
				depth--
			}
			j++
		}
		if depth != 0 {
			break // unterminated token; leave the remainder untouched
		}
		inner := fragment[start+2 : j-1]
		parts := splitTopLevel(inner)
		if len(parts) == arity+1 && parts[0] == name {
			out.WriteString(fragment[pos:start])
			out.WriteString(applyTemplate(template, parts[1:]))
			pos = j
			continue
		}
		pos = start + 1
	}
	out.WriteString(fragment[pos:])
	return out.String()
}

func isBoundary(c byte) bool {
	return c == ',' || c == ')' || c == ' ' || c == '\t' || c == '\n'
}

// splitTopLevel splits s on commas at paren-depth 0, trimming each part.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	last := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[last:i]))
				last = i + 1
			}
		}
	}
	parts = append(parts, strings.TrimSpace(s[last:]))
	return parts
}

// applyTemplate substitutes `$(0)`..`$(n-1)` in template with args,
// in a single Names pass, so an argument containing another `$(...)`
// token is copied verbatim rather than re-expanded.
func applyTemplate(template string, args []string) string {
	names := make(map[string]Formatter, len(args))
	for i, a := range args {
		arg := a
		names[strconv.Itoa(i)] = func(string) string { return arg }
	}
	return Names(template, names)
}

// topLevelToken is one outermost `$( ... )` span, used only by
// Remaining to report what is still unsubstituted.
type topLevelToken struct {
	start, end int
}

func scanTopLevel(s string) []topLevelToken {
	var toks []topLevelToken
	i := 0
	for i < len(s) {
		if s[i] == '$' && i+1 < len(s) && s[i+1] == '(' {
			depth := 1
			j := i + 2
			for j < len(s) && depth > 0 {
				switch s[j] {
				case '(':
					depth++
				case ')':
					depth--
				}
				j++
			}
			if depth != 0 {
				break
			}
			toks = append(toks, topLevelToken{start: i, end: j})
			i = j
			continue
		}
		i++
	}
	return toks
}

// Remaining reports every outermost `$(...)` token still present in
// text — used by tests asserting substitution closure (spec.md §8
// property 5).
func Remaining(text string) []string {
	toks := scanTopLevel(text)
	out := make([]string, len(toks))
	for i, tk := range toks {
		out[i] = text[tk.start:tk.end]
	}
	return out
}
