package domain

type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "active"
	CustomerAtRisk   CustomerStatus = "at_risk"
	CustomerChurned  CustomerStatus = "churned"
	CustomerProspect CustomerStatus = "prospect"
)

type BillingType string

const (
	BillingFixed    BillingType = "fixed"
	BillingHourly   BillingType = "time_and_materials"
	BillingRetainer BillingType = "retainer"
)

type ContractStatus string

const (
	ContractDraft      ContractStatus = "draft"
	ContractActive     ContractStatus = "active"
	ContractExpired    ContractStatus = "expired"
	ContractTerminated ContractStatus = "terminated"
)

type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "draft"
	InvoiceSent    InvoiceStatus = "sent"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
	InvoiceVoid    InvoiceStatus = "void"
)

// Perspective is a Balanced Scorecard perspective.
type Perspective string

const (
	PerspectiveFinancial      Perspective = "financial"
	PerspectiveCustomer       Perspective = "customer"
	PerspectiveInternal       Perspective = "internal_process"
	PerspectiveLearningGrowth Perspective = "learning_growth"
)

// Perspectives lists the scorecard perspectives in display order.
var Perspectives = []Perspective{
	PerspectiveFinancial, PerspectiveCustomer, PerspectiveInternal, PerspectiveLearningGrowth,
}

var PerspectiveLabels = map[Perspective]string{
	PerspectiveFinancial:      "Financial",
	PerspectiveCustomer:       "Customer",
	PerspectiveInternal:       "Internal Process",
	PerspectiveLearningGrowth: "Learning & Growth",
}

// ADKARStage is a stage of the ADKAR change-management model.
type ADKARStage string

const (
	StageAwareness     ADKARStage = "awareness"
	StageDesire        ADKARStage = "desire"
	StageKnowledge     ADKARStage = "knowledge"
	StageAbility       ADKARStage = "ability"
	StageReinforcement ADKARStage = "reinforcement"
)

// ADKARStages lists the stages in model order.
var ADKARStages = []ADKARStage{
	StageAwareness, StageDesire, StageKnowledge, StageAbility, StageReinforcement,
}

var StageLabels = map[ADKARStage]string{
	StageAwareness:     "Awareness",
	StageDesire:        "Desire",
	StageKnowledge:     "Knowledge",
	StageAbility:       "Ability",
	StageReinforcement: "Reinforcement",
}

var StageDescriptions = map[ADKARStage]string{
	StageAwareness:     "Awareness of the need for change",
	StageDesire:        "Desire to participate and support the change",
	StageKnowledge:     "Knowledge on how to change",
	StageAbility:       "Ability to implement required skills and behaviors",
	StageReinforcement: "Reinforcement to sustain the change",
}

// Force is one of Porter's five competitive forces.
type Force string

const (
	ForceRivalry       Force = "competitive_rivalry"
	ForceNewEntrants   Force = "threat_of_new_entrants"
	ForceSubstitutes   Force = "threat_of_substitutes"
	ForceBuyerPower    Force = "buyer_power"
	ForceSupplierPower Force = "supplier_power"
)

// Forces lists the five forces in display order.
var Forces = []Force{
	ForceRivalry, ForceNewEntrants, ForceSubstitutes, ForceBuyerPower, ForceSupplierPower,
}

var ForceLabels = map[Force]string{
	ForceRivalry:       "Competitive Rivalry",
	ForceNewEntrants:   "Threat of New Entrants",
	ForceSubstitutes:   "Threat of Substitutes",
	ForceBuyerPower:    "Bargaining Power of Buyers",
	ForceSupplierPower: "Bargaining Power of Suppliers",
}

// CanvasBlock is one of the nine Business Model Canvas building blocks.
type CanvasBlock string

const (
	BlockKeyPartners           CanvasBlock = "key_partners"
	BlockKeyActivities         CanvasBlock = "key_activities"
	BlockKeyResources          CanvasBlock = "key_resources"
	BlockValuePropositions     CanvasBlock = "value_propositions"
	BlockCustomerRelationships CanvasBlock = "customer_relationships"
	BlockChannels              CanvasBlock = "channels"
	BlockCustomerSegments      CanvasBlock = "customer_segments"
	BlockCostStructure         CanvasBlock = "cost_structure"
	BlockRevenueStreams        CanvasBlock = "revenue_streams"
)

// CanvasBlocks lists the blocks in canvas reading order.
var CanvasBlocks = []CanvasBlock{
	BlockKeyPartners, BlockKeyActivities, BlockKeyResources,
	BlockValuePropositions, BlockCustomerRelationships, BlockChannels,
	BlockCustomerSegments, BlockCostStructure, BlockRevenueStreams,
}

var BlockLabels = map[CanvasBlock]string{
	BlockKeyPartners:           "Key Partners",
	BlockKeyActivities:         "Key Activities",
	BlockKeyResources:          "Key Resources",
	BlockValuePropositions:     "Value Propositions",
	BlockCustomerRelationships: "Customer Relationships",
	BlockChannels:              "Channels",
	BlockCustomerSegments:      "Customer Segments",
	BlockCostStructure:         "Cost Structure",
	BlockRevenueStreams:        "Revenue Streams",
}

// IsValidPerspective reports whether p is a known scorecard perspective.
func IsValidPerspective(p Perspective) bool {
	_, ok := PerspectiveLabels[p]
	return ok
}

// IsValidStage reports whether s is a known ADKAR stage.
func IsValidStage(s ADKARStage) bool {
	_, ok := StageLabels[s]
	return ok
}

// IsValidForce reports whether f is one of the five forces.
func IsValidForce(f Force) bool {
	_, ok := ForceLabels[f]
	return ok
}

// IsValidBlock reports whether b is a canvas building block.
func IsValidBlock(b CanvasBlock) bool {
	_, ok := BlockLabels[b]
	return ok
}
