package maf

// VariantType is the derived classification of a ref/alt allele pair.
type VariantType string

// Variant types recognized in normalized output.
const (
	TypeSNP  VariantType = "SNP" // single-base substitution
	TypeONP  VariantType = "ONP" // equal-length multi-base substitution
	TypeINS  VariantType = "INS"
	TypeDEL  VariantType = "DEL"
	TypeNone VariantType = Sentinel // both alleles absent
)

// Classify derives the variant type from a MAF reference/tumor allele pair,
// where "-" marks an absent allele. First matching rule wins.
func Classify(ref, alt string) VariantType {
	switch {
	case ref == Sentinel && alt == Sentinel:
		return TypeNone
	case alt == Sentinel:
		return TypeDEL
	case ref == Sentinel:
		return TypeINS
	case len(ref) > len(alt):
		return TypeDEL
	case len(ref) < len(alt):
		return TypeINS
	case len(ref) == 1:
		return TypeSNP
	case len(ref) > 1:
		return TypeONP
	}
	return TypeNone
}
