package rdf

import "unicode"

// SplitIRI divides iri into a namespace and a local name.
//
// The local name is the longest suffix consisting of XML name characters,
// trimmed at the front until it begins with a name start character. When no
// such suffix exists the local name is empty and the namespace is the whole
// IRI.
func SplitIRI(iri string) (namespace, local string) {
	runes := []rune(iri)
	i := len(runes)
	for i > 0 && isNameChar(runes[i-1]) {
		i--
	}
	for i < len(runes) && !isNameStartChar(runes[i]) {
		i++
	}
	return string(runes[:i]), string(runes[i:])
}

func isNameStartChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isNameChar(r rune) bool {
	return isNameStartChar(r) || unicode.IsDigit(r) || r == '-' || r == '.' ||
		r == 0xB7 || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r)
}
