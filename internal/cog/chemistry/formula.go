package chemistry

import (
	"fmt"
	"sort"
	"strings"
)

// ParseFormula breaks a chemical formula into element counts. Supported
// syntax: element symbols with optional counts (`C6H12O6`), nested groups in
// parentheses or square brackets (`Ca(OH)2`, `K4[Fe(CN)6]`), and hydrate
// segments separated by `·`, `*` or `.` with an optional leading multiplier
// (`CuSO4·5H2O`).
func ParseFormula(formula string) (map[string]int, error) {
	s := strings.ReplaceAll(formula, " ", "")
	if s == "" {
		return nil, fmt.Errorf("empty formula")
	}

	segments := splitSegments(s)
	if len(segments) == 0 {
		return nil, fmt.Errorf("empty formula")
	}

	total := make(map[string]int)
	for _, seg := range segments {
		p := &formulaParser{input: seg}
		mult := p.number(1)
		counts, err := p.group(0)
		if err != nil {
			return nil, err
		}
		if p.pos != len(p.input) {
			return nil, fmt.Errorf("unexpected %q at position %d", p.input[p.pos], p.pos)
		}
		for sym, n := range counts {
			total[sym] += n * mult
		}
	}
	return total, nil
}

// MolarMass computes the total mass of a parsed formula in g/mol.
func MolarMass(counts map[string]int) (float64, error) {
	var mass float64
	for sym, n := range counts {
		e, ok := bySymbol[sym]
		if !ok {
			return 0, fmt.Errorf("unknown element %q", sym)
		}
		mass += e.Mass * float64(n)
	}
	return mass, nil
}

// SortedSymbols orders a count map's keys by atomic number for stable output.
func SortedSymbols(counts map[string]int) []string {
	syms := make([]string, 0, len(counts))
	for s := range counts {
		syms = append(syms, s)
	}
	sort.Slice(syms, func(i, j int) bool {
		ei, iok := bySymbol[syms[i]]
		ej, jok := bySymbol[syms[j]]
		if iok && jok {
			return ei.Number < ej.Number
		}
		return syms[i] < syms[j]
	})
	return syms
}

func splitSegments(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '·' || r == '*' || r == '.'
	})
}

type formulaParser struct {
	input string
	pos   int
}

// group parses a run of elements and bracketed subgroups until the closing
// bracket (or end of input at depth 0).
func (p *formulaParser) group(depth int) (map[string]int, error) {
	counts := make(map[string]int)
	for p.pos < len(p.input) {
		ch := p.input[p.pos]
		switch {
		case ch == '(' || ch == '[':
			open := ch
			p.pos++
			inner, err := p.group(depth + 1)
			if err != nil {
				return nil, err
			}
			if p.pos >= len(p.input) || p.input[p.pos] != closing(open) {
				return nil, fmt.Errorf("unclosed %q", open)
			}
			p.pos++
			mult := p.number(1)
			for sym, n := range inner {
				counts[sym] += n * mult
			}

		case ch == ')' || ch == ']':
			if depth == 0 {
				return nil, fmt.Errorf("unmatched %q at position %d", ch, p.pos)
			}
			return counts, nil

		case ch >= 'A' && ch <= 'Z':
			sym, err := p.symbol()
			if err != nil {
				return nil, err
			}
			counts[sym] += p.number(1)

		default:
			return nil, fmt.Errorf("unexpected %q at position %d", ch, p.pos)
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unexpected end of formula")
	}
	return counts, nil
}

// symbol consumes one element symbol: an uppercase letter plus trailing
// lowercase letters, validated against the periodic table.
func (p *formulaParser) symbol() (string, error) {
	start := p.pos
	p.pos++
	for p.pos < len(p.input) && p.input[p.pos] >= 'a' && p.input[p.pos] <= 'z' {
		p.pos++
	}
	sym := p.input[start:p.pos]
	if _, ok := bySymbol[sym]; !ok {
		return "", fmt.Errorf("unknown element %q", sym)
	}
	return sym, nil
}

// number consumes an optional positive integer, returning def when absent.
func (p *formulaParser) number(def int) int {
	start := p.pos
	for p.pos < len(p.input) && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == start {
		return def
	}
	n := 0
	for _, ch := range p.input[start:p.pos] {
		n = n*10 + int(ch-'0')
	}
	if n == 0 {
		return def
	}
	return n
}

func closing(open byte) byte {
	if open == '(' {
		return ')'
	}
	return ']'
}
