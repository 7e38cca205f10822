package main

// Canonicalizer turns reference tokens, as written in a formula, into the keys used
// by dependency bookkeeping. "A1" on Sheet1 and "Sheet1!a1" share the key
// "Sheet1!R0C0"; ranges become "Sheet1!R0C0:R2C1" with normalized corners.
type Canonicalizer struct{}

func NewCanonicalizer() *Canonicalizer {
	return &Canonicalizer{}
}

func (c *Canonicalizer) Canonicalize(currentSheet string, token string) (key string, ok bool) {
	if !IsRangeToken(token) {
		address, ok := ParseCellReference(token, currentSheet)
		if !ok {
			return "", false
		}
		return FormatCellKey(address), true
	}

	r, ok := ParseRangeReference(token, currentSheet)
	if !ok {
		return "", false
	}

	// a single cell box is the same dependency as the cell itself
	if r.StartRow == r.EndRow && r.StartCol == r.EndCol {
		return FormatCellKey(rangeStart(r)), true
	}

	return FormatRangeKey(r), true
}

// CanonicalizeAll drops invalid tokens and duplicates, keeping the first occurrence order
func (c *Canonicalizer) CanonicalizeAll(currentSheet string, tokens []string) []string {
	keys := make([]string, 0, len(tokens))
	seen := make(map[string]bool, len(tokens))

	for _, token := range tokens {
		key, ok := c.Canonicalize(currentSheet, token)
		if ok && !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}

	return keys
}
