// Package tokens restores the canonical casing of bracketed markup tokens
// that machine translation tends to mangle.
package tokens

import (
	"regexp"
	"sort"
	"strings"
)

// canonical maps the uppercase form of a token to the casing the game
// engine expects. Keys must be uppercase.
var canonical = map[string]string{
	"[P]":   "[p]",
	"[P_]":  "[p_]",
	"[R]":   "[r]",
	"[LR_]": "[lr_]",
}

// tokenRE matches any known token, case-insensitively. Longer tokens come
// first in the alternation so a token never matches as a prefix of its
// underscore-suffixed variant.
var tokenRE = compile(canonical)

func compile(table map[string]string) *regexp.Regexp {
	alts := make([]string, 0, len(table))
	for k := range table {
		alts = append(alts, k)
	}
	sort.Slice(alts, func(i, j int) bool {
		if len(alts[i]) != len(alts[j]) {
			return len(alts[i]) > len(alts[j])
		}
		return alts[i] < alts[j]
	})
	for i, a := range alts {
		alts[i] = regexp.QuoteMeta(a)
	}
	return regexp.MustCompile("(?i)(" + strings.Join(alts, "|") + ")")
}

// Normalize replaces every case variant of a known token with its
// canonical form. Unknown bracketed text is left untouched. The function
// is deterministic and idempotent.
func Normalize(s string) string {
	return tokenRE.ReplaceAllStringFunc(s, func(m string) string {
		if c, ok := canonical[strings.ToUpper(m)]; ok {
			return c
		}
		return m
	})
}
