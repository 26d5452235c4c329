package classifier

// UniqueSets collapses tokens that share a BaseKey, keeping the first
// occurrence. Tokens that differ only in their tie-break annotation are the
// same set.
func UniqueSets(tokens []SetToken) []string {
	seen := make(map[string]struct{}, len(tokens))
	unique := make([]string, 0, len(tokens))
	for _, token := range tokens {
		key := token.BaseKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, key)
	}
	return unique
}
