// Package placeholder scans and substitutes Fluent-style { $name } variable
// tokens in catalog values.
package placeholder

import "regexp"

var tokenRegex = regexp.MustCompile(`\{\s*\$([A-Za-z][A-Za-z0-9_-]*)\s*\}`)

// Names returns the variable names referenced by value, in order of first
// appearance, without duplicates. Nil when the value has no tokens.
func Names(value string) []string {
	matches := tokenRegex.FindAllStringSubmatch(value, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	var names []string
	for _, m := range matches {
		if _, dup := seen[m[1]]; dup {
			continue
		}
		seen[m[1]] = struct{}{}
		names = append(names, m[1])
	}
	return names
}

// Replace substitutes every token in value using resolve. When resolve does
// not know the variable, the token is replaced with the result of onMissing;
// a nil onMissing leaves the token in place, which is the lenient policy.
func Replace(value string, resolve func(name string) (string, bool), onMissing func(name string, token string) string) string {
	return tokenRegex.ReplaceAllStringFunc(value, func(token string) string {
		matches := tokenRegex.FindStringSubmatch(token)
		if len(matches) != 2 {
			return token
		}
		if replacement, ok := resolve(matches[1]); ok {
			return replacement
		}
		if onMissing == nil {
			return token
		}
		return onMissing(matches[1], token)
	})
}
