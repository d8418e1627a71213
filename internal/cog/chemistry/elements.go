package chemistry

import (
	"strconv"
	"strings"
)

// Element is one periodic-table entry. Group 0 marks the f-block.
type Element struct {
	Number   int
	Symbol   string
	Name     string
	Mass     float64
	Category string
	Period   int
	Group    int
}

var elements = []Element{
	{1, "H", "Hydrogen", 1.008, "nonmetal", 1, 1},
	{2, "He", "Helium", 4.0026, "noble gas", 1, 18},
	{3, "Li", "Lithium", 6.94, "alkali metal", 2, 1},
	{4, "Be", "Beryllium", 9.0122, "alkaline earth metal", 2, 2},
	{5, "B", "Boron", 10.81, "metalloid", 2, 13},
	{6, "C", "Carbon", 12.011, "nonmetal", 2, 14},
	{7, "N", "Nitrogen", 14.007, "nonmetal", 2, 15},
	{8, "O", "Oxygen", 15.999, "nonmetal", 2, 16},
	{9, "F", "Fluorine", 18.998, "halogen", 2, 17},
	{10, "Ne", "Neon", 20.180, "noble gas", 2, 18},
	{11, "Na", "Sodium", 22.990, "alkali metal", 3, 1},
	{12, "Mg", "Magnesium", 24.305, "alkaline earth metal", 3, 2},
	{13, "Al", "Aluminium", 26.982, "post-transition metal", 3, 13},
	{14, "Si", "Silicon", 28.085, "metalloid", 3, 14},
	{15, "P", "Phosphorus", 30.974, "nonmetal", 3, 15},
	{16, "S", "Sulfur", 32.06, "nonmetal", 3, 16},
	{17, "Cl", "Chlorine", 35.45, "halogen", 3, 17},
	{18, "Ar", "Argon", 39.948, "noble gas", 3, 18},
	{19, "K", "Potassium", 39.098, "alkali metal", 4, 1},
	{20, "Ca", "Calcium", 40.078, "alkaline earth metal", 4, 2},
	{21, "Sc", "Scandium", 44.956, "transition metal", 4, 3},
	{22, "Ti", "Titanium", 47.867, "transition metal", 4, 4},
	{23, "V", "Vanadium", 50.942, "transition metal", 4, 5},
	{24, "Cr", "Chromium", 51.996, "transition metal", 4, 6},
	{25, "Mn", "Manganese", 54.938, "transition metal", 4, 7},
	{26, "Fe", "Iron", 55.845, "transition metal", 4, 8},
	{27, "Co", "Cobalt", 58.933, "transition metal", 4, 9},
	{28, "Ni", "Nickel", 58.693, "transition metal", 4, 10},
	{29, "Cu", "Copper", 63.546, "transition metal", 4, 11},
	{30, "Zn", "Zinc", 65.38, "transition metal", 4, 12},
	{31, "Ga", "Gallium", 69.723, "post-transition metal", 4, 13},
	{32, "Ge", "Germanium", 72.630, "metalloid", 4, 14},
	{33, "As", "Arsenic", 74.922, "metalloid", 4, 15},
	{34, "Se", "Selenium", 78.971, "nonmetal", 4, 16},
	{35, "Br", "Bromine", 79.904, "halogen", 4, 17},
	{36, "Kr", "Krypton", 83.798, "noble gas", 4, 18},
	{37, "Rb", "Rubidium", 85.468, "alkali metal", 5, 1},
	{38, "Sr", "Strontium", 87.62, "alkaline earth metal", 5, 2},
	{39, "Y", "Yttrium", 88.906, "transition metal", 5, 3},
	{40, "Zr", "Zirconium", 91.224, "transition metal", 5, 4},
	{41, "Nb", "Niobium", 92.906, "transition metal", 5, 5},
	{42, "Mo", "Molybdenum", 95.95, "transition metal", 5, 6},
	{43, "Tc", "Technetium", 97.907, "transition metal", 5, 7},
	{44, "Ru", "Ruthenium", 101.07, "transition metal", 5, 8},
	{45, "Rh", "Rhodium", 102.91, "transition metal", 5, 9},
	{46, "Pd", "Palladium", 106.42, "transition metal", 5, 10},
	{47, "Ag", "Silver", 107.87, "transition metal", 5, 11},
	{48, "Cd", "Cadmium", 112.41, "transition metal", 5, 12},
	{49, "In", "Indium", 114.82, "post-transition metal", 5, 13},
	{50, "Sn", "Tin", 118.71, "post-transition metal", 5, 14},
	{51, "Sb", "Antimony", 121.76, "metalloid", 5, 15},
	{52, "Te", "Tellurium", 127.60, "metalloid", 5, 16},
	{53, "I", "Iodine", 126.90, "halogen", 5, 17},
	{54, "Xe", "Xenon", 131.29, "noble gas", 5, 18},
	{55, "Cs", "Caesium", 132.91, "alkali metal", 6, 1},
	{56, "Ba", "Barium", 137.33, "alkaline earth metal", 6, 2},
	{57, "La", "Lanthanum", 138.91, "lanthanide", 6, 3},
	{58, "Ce", "Cerium", 140.12, "lanthanide", 6, 0},
	{59, "Pr", "Praseodymium", 140.91, "lanthanide", 6, 0},
	{60, "Nd", "Neodymium", 144.24, "lanthanide", 6, 0},
	{61, "Pm", "Promethium", 144.91, "lanthanide", 6, 0},
	{62, "Sm", "Samarium", 150.36, "lanthanide", 6, 0},
	{63, "Eu", "Europium", 151.96, "lanthanide", 6, 0},
	{64, "Gd", "Gadolinium", 157.25, "lanthanide", 6, 0},
	{65, "Tb", "Terbium", 158.93, "lanthanide", 6, 0},
	{66, "Dy", "Dysprosium", 162.50, "lanthanide", 6, 0},
	{67, "Ho", "Holmium", 164.93, "lanthanide", 6, 0},
	{68, "Er", "Erbium", 167.26, "lanthanide", 6, 0},
	{69, "Tm", "Thulium", 168.93, "lanthanide", 6, 0},
	{70, "Yb", "Ytterbium", 173.05, "lanthanide", 6, 0},
	{71, "Lu", "Lutetium", 174.97, "lanthanide", 6, 3},
	{72, "Hf", "Hafnium", 178.49, "transition metal", 6, 4},
	{73, "Ta", "Tantalum", 180.95, "transition metal", 6, 5},
	{74, "W", "Tungsten", 183.84, "transition metal", 6, 6},
	{75, "Re", "Rhenium", 186.21, "transition metal", 6, 7},
	{76, "Os", "Osmium", 190.23, "transition metal", 6, 8},
	{77, "Ir", "Iridium", 192.22, "transition metal", 6, 9},
	{78, "Pt", "Platinum", 195.08, "transition metal", 6, 10},
	{79, "Au", "Gold", 196.97, "transition metal", 6, 11},
	{80, "Hg", "Mercury", 200.59, "transition metal", 6, 12},
	{81, "Tl", "Thallium", 204.38, "post-transition metal", 6, 13},
	{82, "Pb", "Lead", 207.2, "post-transition metal", 6, 14},
	{83, "Bi", "Bismuth", 208.98, "post-transition metal", 6, 15},
	{84, "Po", "Polonium", 208.98, "post-transition metal", 6, 16},
	{85, "At", "Astatine", 209.99, "halogen", 6, 17},
	{86, "Rn", "Radon", 222.02, "noble gas", 6, 18},
	{87, "Fr", "Francium", 223.02, "alkali metal", 7, 1},
	{88, "Ra", "Radium", 226.03, "alkaline earth metal", 7, 2},
	{89, "Ac", "Actinium", 227.03, "actinide", 7, 3},
	{90, "Th", "Thorium", 232.04, "actinide", 7, 0},
	{91, "Pa", "Protactinium", 231.04, "actinide", 7, 0},
	{92, "U", "Uranium", 238.03, "actinide", 7, 0},
	{93, "Np", "Neptunium", 237.05, "actinide", 7, 0},
	{94, "Pu", "Plutonium", 244.06, "actinide", 7, 0},
	{95, "Am", "Americium", 243.06, "actinide", 7, 0},
	{96, "Cm", "Curium", 247.07, "actinide", 7, 0},
	{97, "Bk", "Berkelium", 247.07, "actinide", 7, 0},
	{98, "Cf", "Californium", 251.08, "actinide", 7, 0},
	{99, "Es", "Einsteinium", 252.08, "actinide", 7, 0},
	{100, "Fm", "Fermium", 257.10, "actinide", 7, 0},
	{101, "Md", "Mendelevium", 258.10, "actinide", 7, 0},
	{102, "No", "Nobelium", 259.10, "actinide", 7, 0},
	{103, "Lr", "Lawrencium", 266.12, "actinide", 7, 3},
	{104, "Rf", "Rutherfordium", 267.12, "transition metal", 7, 4},
	{105, "Db", "Dubnium", 268.13, "transition metal", 7, 5},
	{106, "Sg", "Seaborgium", 269.13, "transition metal", 7, 6},
	{107, "Bh", "Bohrium", 270.13, "transition metal", 7, 7},
	{108, "Hs", "Hassium", 277.15, "transition metal", 7, 8},
	{109, "Mt", "Meitnerium", 278.16, "unknown", 7, 9},
	{110, "Ds", "Darmstadtium", 281.16, "unknown", 7, 10},
	{111, "Rg", "Roentgenium", 282.17, "unknown", 7, 11},
	{112, "Cn", "Copernicium", 285.18, "transition metal", 7, 12},
	{113, "Nh", "Nihonium", 286.18, "unknown", 7, 13},
	{114, "Fl", "Flerovium", 289.19, "post-transition metal", 7, 14},
	{115, "Mc", "Moscovium", 290.20, "unknown", 7, 15},
	{116, "Lv", "Livermorium", 293.20, "unknown", 7, 16},
	{117, "Ts", "Tennessine", 294.21, "unknown", 7, 17},
	{118, "Og", "Oganesson", 294.21, "unknown", 7, 18},
}

var (
	bySymbol = map[string]*Element{}
	byName   = map[string]*Element{}
	byNumber = map[int]*Element{}
)

func init() {
	for i := range elements {
		e := &elements[i]
		bySymbol[e.Symbol] = e
		byName[strings.ToLower(e.Name)] = e
		byNumber[e.Number] = e
	}
}

// LookupElement resolves a query as an atomic number, a symbol (exact case
// first, then case-insensitive) or an element name.
func LookupElement(query string) (*Element, bool) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, false
	}

	if n, err := strconv.Atoi(q); err == nil {
		e, ok := byNumber[n]
		return e, ok
	}
	if e, ok := bySymbol[q]; ok {
		return e, true
	}
	if len(q) <= 3 {
		norm := strings.ToUpper(q[:1]) + strings.ToLower(q[1:])
		if e, ok := bySymbol[norm]; ok {
			return e, true
		}
	}
	e, ok := byName[strings.ToLower(q)]
	return e, ok
}

// Aufbau filling order; enough for a configuration summary.
var subshells = []struct {
	label    string
	capacity int
}{
	{"1s", 2}, {"2s", 2}, {"2p", 6}, {"3s", 2}, {"3p", 6}, {"4s", 2},
	{"3d", 10}, {"4p", 6}, {"5s", 2}, {"4d", 10}, {"5p", 6}, {"6s", 2},
	{"4f", 14}, {"5d", 10}, {"6p", 6}, {"7s", 2}, {"5f", 14}, {"6d", 10},
	{"7p", 6},
}

// ElectronConfig returns the Aufbau electron configuration for z electrons,
// e.g. "1s2 2s2 2p4" for oxygen.
func ElectronConfig(z int) string {
	var parts []string
	remaining := z
	for _, sub := range subshells {
		if remaining <= 0 {
			break
		}
		fill := sub.capacity
		if remaining < fill {
			fill = remaining
		}
		parts = append(parts, sub.label+strconv.Itoa(fill))
		remaining -= fill
	}
	return strings.Join(parts, " ")
}
