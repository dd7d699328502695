package ass

// ASS numpad alignment to the SSA v4 code (1-3 bottom, 5-7 top, 9-11 middle)
var assToSsa = map[int]int{
	1: 1, 2: 2, 3: 3,
	4: 9, 5: 10, 6: 11,
	7: 5, 8: 6, 9: 7,
}

var ssaToAss = func() map[int]int {
	m := make(map[int]int, len(assToSsa))
	for a, s := range assToSsa {
		m[s] = a
	}
	return m
}()

// AssToSsa converts an ASS alignment to its SSA v4 code. Unknown values
// fall back to bottom centre.
func AssToSsa(alignment int) int {
	if v, ok := assToSsa[alignment]; ok {
		return v
	}
	return 2
}

// SsaToAss is the inverse of AssToSsa.
func SsaToAss(alignment int) int {
	if v, ok := ssaToAss[alignment]; ok {
		return v
	}
	return 2
}
