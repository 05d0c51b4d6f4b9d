/*
Package residue provides static tables for the twenty standard amino acids:
name conversions, side-chain torsion counts, and the idealized side-chain
chain geometry used to realize torsion angles as cartesian coordinates.
*/
package residue

// ThreeToOne is a map from three letter amino acids to their corresponding
// single letter representation.
var ThreeToOne = map[string]byte{
	"ALA": 'A', "ARG": 'R', "ASN": 'N', "ASP": 'D', "CYS": 'C',
	"GLU": 'E', "GLN": 'Q', "GLY": 'G', "HIS": 'H', "ILE": 'I',
	"LEU": 'L', "LYS": 'K', "MET": 'M', "PHE": 'F', "PRO": 'P',
	"SER": 'S', "THR": 'T', "TRP": 'W', "TYR": 'Y', "VAL": 'V',
}

// OneToThree is the reverse of ThreeToOne. It is created in this package's
// 'init' function.
var OneToThree = map[byte]string{}

func init() {
	for k, v := range ThreeToOne {
		OneToThree[v] = k
	}
}

// sideChains lists, for each residue type, the heavy atoms along the
// side-chain torsion chain starting at CB. Each atom after CB is positioned
// by one χ angle, so the χ count of a type is len(chain)-1. Branch atoms off
// the torsion chain are not modeled; energy terms that need full-atom detail
// are expected to supply their own expansion.
var sideChains = map[string][]string{
	"GLY": {},
	"ALA": {"CB"},
	"SER": {"CB", "OG"},
	"CYS": {"CB", "SG"},
	"THR": {"CB", "OG1"},
	"VAL": {"CB", "CG1"},
	"ILE": {"CB", "CG1", "CD1"},
	"LEU": {"CB", "CG", "CD1"},
	"PRO": {"CB", "CG", "CD"},
	"ASP": {"CB", "CG", "OD1"},
	"ASN": {"CB", "CG", "OD1"},
	"HIS": {"CB", "CG", "ND1"},
	"PHE": {"CB", "CG", "CD1"},
	"TYR": {"CB", "CG", "CD1"},
	"TRP": {"CB", "CG", "CD1"},
	"MET": {"CB", "CG", "SD", "CE"},
	"GLU": {"CB", "CG", "CD", "OE1"},
	"GLN": {"CB", "CG", "CD", "OE1"},
	"LYS": {"CB", "CG", "CD", "CE", "NZ"},
	"ARG": {"CB", "CG", "CD", "NE", "CZ"},
}

// Known returns whether the three letter name is a standard amino acid.
func Known(name string) bool {
	_, ok := sideChains[name]
	return ok
}

// SideChain returns the ordered side-chain atom names of a residue type,
// beginning with CB, and whether the type is known. The returned slice must
// not be modified.
func SideChain(name string) ([]string, bool) {
	chain, ok := sideChains[name]
	return chain, ok
}

// ChiCount returns the number of side-chain χ torsion angles of a residue
// type, and whether the type is known. Glycine and alanine have zero.
func ChiCount(name string) (int, bool) {
	chain, ok := sideChains[name]
	if !ok {
		return 0, false
	}
	if len(chain) == 0 {
		return 0, true
	}
	return len(chain) - 1, true
}

// Idealized covalent geometry for the torsion chain. A single tetrahedral
// angle is close enough for every chain atom; bond lengths vary only with
// the element of the atom being placed.
const (
	// BondAngle is the idealized bond angle, in radians, at every chain
	// atom (111 degrees).
	BondAngle = 1.9373
)

// BondLength returns the idealized bond length, in ångströms, of the bond
// that places the named atom, chosen by its element.
func BondLength(atom string) float64 {
	if atom == "" {
		return 1.52
	}
	switch atom[0] {
	case 'O':
		return 1.43
	case 'N':
		return 1.47
	case 'S':
		return 1.81
	default:
		return 1.52
	}
}
