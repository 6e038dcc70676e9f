// Package ignore implements gitignore-style exclusion rules for the walker.
package ignore

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Rule is one compiled exclusion pattern.
type Rule struct {
	re     *regexp.Regexp
	negate bool   // pattern started with '!'
	raw    string // original pattern line
}

// Ruleset is an ordered collection of rules. Later rules win, so a negation
// can re-include a path excluded by an earlier rule.
type Ruleset struct {
	rules []Rule
}

// New builds a Ruleset from the given pattern lines (typically the built-in
// defaults such as ".git/").
func New(patterns ...string) *Ruleset {
	rs := &Ruleset{}
	rs.AddLines(patterns...)
	return rs
}

// AddLines compiles pattern lines and appends them to the set. Blank lines,
// comments, and patterns that fail to compile are dropped.
func (rs *Ruleset) AddLines(lines ...string) {
	for _, line := range lines {
		if rule, ok := parseLine(line); ok {
			rs.rules = append(rs.rules, rule)
		}
	}
}

// AddFile reads an ignore file and appends its patterns. A missing file is
// not an error.
func (rs *Ruleset) AddFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read ignore file %s: %w", path, err)
	}
	rs.AddLines(strings.Split(string(content), "\n")...)
	return nil
}

// Len returns the number of compiled rules.
func (rs *Ruleset) Len() int { return len(rs.rules) }

// MatchesPath reports whether a relative path is excluded. The path is
// normalized to forward slashes before matching.
func (rs *Ruleset) MatchesPath(path string) bool {
	normalized := filepath.ToSlash(path)

	matched := false
	for _, rule := range rs.rules {
		if rule.re.MatchString(normalized) {
			matched = !rule.negate
		}
	}
	return matched
}

// parseLine compiles one pattern line into a Rule.
func parseLine(line string) (Rule, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return Rule{}, false
	}

	negate := false
	if strings.HasPrefix(trimmed, "!") {
		negate = true
		trimmed = strings.TrimPrefix(trimmed, "!")
	}
	if strings.HasPrefix(trimmed, `\#`) || strings.HasPrefix(trimmed, `\!`) {
		trimmed = trimmed[1:]
	}

	// A trailing slash means "directory": the directory itself and anything
	// under it. A leading slash anchors the pattern to the root.
	dirOnly := strings.HasSuffix(trimmed, "/")
	pattern := strings.TrimSuffix(trimmed, "/")
	rooted := strings.HasPrefix(pattern, "/")
	pattern = strings.TrimPrefix(pattern, "/")

	expr := escapeSpecialChars(pattern)
	expr = markDoubleStars(expr)
	expr = wildcardToRegex(expr)
	expr = expandDoubleStars(expr)

	if dirOnly {
		expr += `(/.*)?$`
	} else {
		expr += `(|/.*)$`
	}
	if rooted {
		expr = "^" + expr
	} else {
		expr = `^(|.*/)` + expr
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return Rule{}, false
	}
	return Rule{re: re, negate: negate, raw: line}, true
}

// Precompiled regular expressions used in pattern translation.
var (
	doubleStarMiddle   = regexp.MustCompile(`/\*\*/`)
	doubleStarTrailing = regexp.MustCompile(`/\*\*$`)
	doubleStarLeading  = regexp.MustCompile(`^\*\*/`)
	singleStar         = regexp.MustCompile(`\*`)
)

// escapeSpecialChars escapes regex special characters except '*', '?' and '/'.
func escapeSpecialChars(pattern string) string {
	specialChars := `.+()|^$[]{}`
	for _, char := range specialChars {
		pattern = strings.ReplaceAll(pattern, string(char), `\`+string(char))
	}
	return pattern
}

// Double-star segments are replaced with marker bytes before the single-star
// pass so the regex they expand to is not itself rewritten.
const (
	markMiddle   = "\x00m"
	markTrailing = "\x00t"
	markLeading  = "\x00l"
)

// markDoubleStars substitutes placeholder markers for '**' segments.
func markDoubleStars(pattern string) string {
	pattern = doubleStarMiddle.ReplaceAllString(pattern, markMiddle)
	pattern = doubleStarTrailing.ReplaceAllString(pattern, markTrailing)
	pattern = doubleStarLeading.ReplaceAllString(pattern, markLeading)
	return pattern
}

// expandDoubleStars translates the markers into their regex equivalents.
func expandDoubleStars(pattern string) string {
	pattern = strings.ReplaceAll(pattern, markMiddle, `(/|/.+/)`)
	pattern = strings.ReplaceAll(pattern, markTrailing, `(/.*)?`)
	pattern = strings.ReplaceAll(pattern, markLeading, `(.*/)?`)
	return pattern
}

// wildcardToRegex translates '*' and '?' wildcards into regex equivalents.
func wildcardToRegex(pattern string) string {
	pattern = singleStar.ReplaceAllString(pattern, `[^/]*`)
	return strings.ReplaceAll(pattern, "?", ".")
}
