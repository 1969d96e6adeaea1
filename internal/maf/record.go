// Package maf provides MAF (Mutation Annotation Format) table parsing,
// variant-type classification and schema normalization.
package maf

// Standard MAF column names used for validation.
const (
	ColChromosome      = "Chromosome"
	ColStartPosition   = "Start_Position"
	ColEndPosition     = "End_Position"
	ColReferenceAllele = "Reference_Allele"
	ColTumorSeqAllele2 = "Tumor_Seq_Allele2"
	ColNCBIBuild       = "NCBI_Build"
	ColVariantType     = "Variant_Type"
)

// Sentinel is the placeholder for absent values in normalized output.
const Sentinel = "-"

// Columns is the fixed output schema, in persisted order.
var Columns = []string{
	"Hugo_Symbol",
	"Entrez_Gene_Id",
	"NCBI_Build",
	"Chromosome",
	"Start_Position",
	"End_Position",
	"Consequence",
	"Variant_Classification",
	"Variant_Type",
	"Reference_Allele",
	"Tumor_Seq_Allele1",
	"Tumor_Seq_Allele2",
	"Tumor_Sample_Barcode",
	"Transcript_ID",
	"RefSeq",
	"Gene",
	"Annotation_Status",
	"Filter",
	"Tissue",
	"Cancer_Type",
	"PMID",
	"Study",
	"Seq_Tech",
}

// Record is one normalized MAF row. Fields follow Columns order.
// Positions stay strings at this layer because the Sentinel is a legal
// value after liftover; the validator parses them as integers.
type Record struct {
	HugoSymbol            string
	EntrezGeneID          string
	NCBIBuild             string
	Chromosome            string
	StartPosition         string
	EndPosition           string
	Consequence           string
	VariantClassification string
	VariantType           VariantType
	ReferenceAllele       string
	TumorSeqAllele1       string
	TumorSeqAllele2       string
	TumorSampleBarcode    string
	TranscriptID          string
	RefSeq                string
	Gene                  string
	AnnotationStatus      string
	Filter                string
	Tissue                string
	CancerType            string
	PMID                  string
	Study                 string
	SeqTech               string
}

// Fields returns the record's values in Columns order.
func (r *Record) Fields() []string {
	return []string{
		r.HugoSymbol,
		r.EntrezGeneID,
		r.NCBIBuild,
		r.Chromosome,
		r.StartPosition,
		r.EndPosition,
		r.Consequence,
		r.VariantClassification,
		string(r.VariantType),
		r.ReferenceAllele,
		r.TumorSeqAllele1,
		r.TumorSeqAllele2,
		r.TumorSampleBarcode,
		r.TranscriptID,
		r.RefSeq,
		r.Gene,
		r.AnnotationStatus,
		r.Filter,
		r.Tissue,
		r.CancerType,
		r.PMID,
		r.Study,
		r.SeqTech,
	}
}

// setField assigns a value to the record field backing the named column.
func (r *Record) setField(column, value string) {
	switch column {
	case "Hugo_Symbol":
		r.HugoSymbol = value
	case "Entrez_Gene_Id":
		r.EntrezGeneID = value
	case ColNCBIBuild:
		r.NCBIBuild = value
	case ColChromosome:
		r.Chromosome = value
	case ColStartPosition:
		r.StartPosition = value
	case ColEndPosition:
		r.EndPosition = value
	case "Consequence":
		r.Consequence = value
	case "Variant_Classification":
		r.VariantClassification = value
	case ColVariantType:
		r.VariantType = VariantType(value)
	case ColReferenceAllele:
		r.ReferenceAllele = value
	case "Tumor_Seq_Allele1":
		r.TumorSeqAllele1 = value
	case ColTumorSeqAllele2:
		r.TumorSeqAllele2 = value
	case "Tumor_Sample_Barcode":
		r.TumorSampleBarcode = value
	case "Transcript_ID":
		r.TranscriptID = value
	case "RefSeq":
		r.RefSeq = value
	case "Gene":
		r.Gene = value
	case "Annotation_Status":
		r.AnnotationStatus = value
	case "Filter":
		r.Filter = value
	case "Tissue":
		r.Tissue = value
	case "Cancer_Type":
		r.CancerType = value
	case "PMID":
		r.PMID = value
	case "Study":
		r.Study = value
	case "Seq_Tech":
		r.SeqTech = value
	}
}
