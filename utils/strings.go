package utils

import "strings"

const DefaultTrimSpace = " \t"

// Split splits instr around every occurrence of separator. Unlike a tokenizer
// it keeps an empty element for each pair of adjacent separators, including
// leading and trailing ones, so ":3::2" splits into ["", "3", "", "2"].
// With trim set, each element is trimmed of the characters in trimSpace
// (default " \t").
//
// An empty separator returns instr as the only element.
func Split(instr, separator string, trim bool, trimSpace ...string) (cont []string) {
	var (
		cutset = DefaultTrimSpace
		push   = func(s string) {
			if trim {
				s = strings.Trim(s, cutset)
			}
			cont = append(cont, s)
		}
	)
	if len(trimSpace) != 0 {
		cutset = trimSpace[0]
	}
	if len(separator) == 0 {
		push(instr)
		return
	}
	var previous int
	for {
		current := strings.Index(instr[previous:], separator)
		if current == -1 {
			break
		}
		push(instr[previous : previous+current])
		previous += current + len(separator)
	}
	push(instr[previous:])
	return
}

// IsIn returns true if elem is in vect
func IsIn(vect []string, elem string) bool {
	for _, v := range vect {
		if v == elem {
			return true
		}
	}
	return false
}

// IsInAny returns true if any of elems is in vect
func IsInAny(vect []string, elems []string) bool {
	for _, elem := range elems {
		if IsIn(vect, elem) {
			return true
		}
	}
	return false
}
