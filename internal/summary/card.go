// Package summary turns resolved policy text into a fixed-shape card via the
// LLM, substituting a canned low-confidence card when there is too little
// text to summarize.
package summary

// Risk levels for the card traffic light.
const (
	RiskGreen  = "green"
	RiskYellow = "yellow"
	RiskRed    = "red"
)

// Store categories the card recognizes.
const (
	CategoryApparel     = "apparel"
	CategoryElectronics = "electronics"
	CategoryBeauty      = "beauty"
	CategoryHome        = "home"
	CategoryFood        = "food"
	CategoryGeneral     = "general"
)

// MaxConditions caps how many policy conditions a card carries.
const MaxConditions = 3

// PolicyCard is the normalized summary of a store's return policy.
type PolicyCard struct {
	Brand         string   `json:"brand" validate:"required"`
	Category      string   `json:"category" validate:"required,oneof=apparel electronics beauty home food general"`
	ReturnWindow  string   `json:"returnWindow" validate:"required"`
	RefundType    string   `json:"refundType" validate:"required"`
	ReturnMethod  string   `json:"returnMethod" validate:"required"`
	Costs         string   `json:"costs" validate:"required"`
	Conditions    []string `json:"conditions" validate:"max=3,dive,min=1"`
	RiskScore     string   `json:"riskScore" validate:"required"`
	RiskLevel     string   `json:"riskLevel" validate:"required,oneof=green yellow red"`
	Benchmark     string   `json:"benchmark"`
	Tip           string   `json:"tip"`
	LowConfidence bool     `json:"lowConfidence,omitempty"`
}
