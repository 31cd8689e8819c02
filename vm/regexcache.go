package vm

import (
	"fmt"
	"regexp"
)

// RegexCache is the façade from spec.md §4.4: Match compiles pat on first
// use and reuses the compiled automaton on every subsequent call with the
// same pattern string.
//
// Matching follows Go's regexp package, i.e. RE2 semantics: unanchored by
// default, alternation/character classes/quantifiers supported, no
// backreferences, no capture-group extraction performed by this layer —
// exactly what spec.md §4.4 asks for, and the same class of engine the
// original Rust source (original_source/bytecode.rs) reaches for via the
// `regex` crate. See SPEC_FULL.md's DOMAIN STACK note for why this stays on
// the standard library instead of pulling in a second regex engine.
type RegexCache struct {
	reg *Registry[regexp.Regexp]
}

// NewRegexCache constructs an empty regex cache.
func NewRegexCache() *RegexCache {
	return &RegexCache{reg: NewRegistry[regexp.Regexp]()}
}

// Match reports whether subject matches pat, compiling pat on first use.
// A compile failure surfaces as errRegexCompile; it is fatal per spec.md §7.
func (c *RegexCache) Match(pat, subject string) (bool, error) {
	return RegistryGetOrCreate(c.reg, pat,
		func(p string) (*regexp.Regexp, error) {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", errRegexCompile, err)
			}
			return re, nil
		},
		func(re *regexp.Regexp) bool {
			return re.MatchString(subject)
		},
	)
}
