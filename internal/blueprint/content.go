// Package blueprint defines the structured business-blueprint document
// produced by generation. Every section is independently optional: the
// model may omit any of them and the remainder still forms a valid
// Content.
package blueprint

// Content is the complete blueprint with all sections.
type Content struct {
	StartupOverview    *StartupOverview    `json:"startup_overview,omitempty"`
	MarketAnalysis     *MarketAnalysis     `json:"market_analysis,omitempty"`
	BusinessModel      *BusinessModel      `json:"business_model,omitempty"`
	SWOTAnalysis       *SWOTAnalysis       `json:"swot_analysis,omitempty"`
	BudgetEstimation   *BudgetEstimation   `json:"budget_estimation,omitempty"`
	FundingInvestment  *FundingInvestment  `json:"funding_investment,omitempty"`
	LegalCompliance    *LegalCompliance    `json:"legal_compliance,omitempty"`
	GoToMarketStrategy *GoToMarketStrategy `json:"go_to_market_strategy,omitempty"`
	ActionRoadmap      *ActionRoadmap      `json:"action_roadmap,omitempty"`
	ExportSummary      string              `json:"export_summary,omitempty"`
}

// StartupOverview names the venture and frames problem and solution.
type StartupOverview struct {
	SuggestedNames         []string `json:"suggested_names,omitempty"`
	Industry               string   `json:"industry,omitempty"`
	ProblemStatement       string   `json:"problem_statement,omitempty"`
	Solution               string   `json:"solution,omitempty"`
	UniqueValueProposition string   `json:"unique_value_proposition,omitempty"`
}

// MarketAnalysis covers audience, sizing and competition.
type MarketAnalysis struct {
	TargetAudience string       `json:"target_audience,omitempty"`
	MarketSize     string       `json:"market_size,omitempty"`
	MarketDemand   string       `json:"market_demand,omitempty"`
	IndustryTrends []string     `json:"industry_trends,omitempty"`
	Competitors    []Competitor `json:"competitors,omitempty"`
}

// Competitor is a single competitor assessment.
type Competitor struct {
	Name     string `json:"name,omitempty"`
	Strength string `json:"strength,omitempty"`
	Weakness string `json:"weakness,omitempty"`
}

// BusinessModel describes how the venture earns and grows.
type BusinessModel struct {
	RevenueStreams      []string `json:"revenue_streams,omitempty"`
	PricingStrategy     string   `json:"pricing_strategy,omitempty"`
	CustomerAcquisition string   `json:"customer_acquisition,omitempty"`
}

// SWOTAnalysis is the classic four-quadrant assessment.
type SWOTAnalysis struct {
	Strengths     []string `json:"strengths,omitempty"`
	Weaknesses    []string `json:"weaknesses,omitempty"`
	Opportunities []string `json:"opportunities,omitempty"`
	Threats       []string `json:"threats,omitempty"`
}

// BudgetEstimation holds cost figures in the corpus currency.
type BudgetEstimation struct {
	InitialSetupCost           float64            `json:"initial_setup_cost,omitempty"`
	MonthlyOperationalExpenses float64            `json:"monthly_operational_expenses,omitempty"`
	TechnologyCost             float64            `json:"technology_cost,omitempty"`
	MarketingCost              float64            `json:"marketing_cost,omitempty"`
	Breakdown                  map[string]float64 `json:"breakdown,omitempty"`
}

// FundingInvestment lists funding paths and matched government schemes.
type FundingInvestment struct {
	FundingOptions        []string           `json:"funding_options,omitempty"`
	GovernmentSchemes     []GovernmentScheme `json:"government_schemes,omitempty"`
	InvestorReadinessTips []string           `json:"investor_readiness_tips,omitempty"`
}

// GovernmentScheme is a scheme recommendation within the funding section.
type GovernmentScheme struct {
	Name        string `json:"name,omitempty"`
	Amount      string `json:"amount,omitempty"`
	Eligibility string `json:"eligibility,omitempty"`
}

// LegalCompliance covers registration, licensing and tax basics.
type LegalCompliance struct {
	BusinessRegistrationType string   `json:"business_registration_type,omitempty"`
	RequiredLicenses         []string `json:"required_licenses,omitempty"`
	TaxationBasics           string   `json:"taxation_basics,omitempty"`
	ComplianceChecklist      []string `json:"compliance_checklist,omitempty"`
}

// GoToMarketStrategy covers launch, channels and risk handling.
type GoToMarketStrategy struct {
	LaunchPlan           string   `json:"launch_plan,omitempty"`
	MarketingChannels    []string `json:"marketing_channels,omitempty"`
	Risks                []string `json:"risks,omitempty"`
	MitigationStrategies []string `json:"mitigation_strategies,omitempty"`
}

// ActionRoadmap sequences actions across the first year.
type ActionRoadmap struct {
	Months0To3  []string `json:"months_0_3,omitempty"`
	Months3To6  []string `json:"months_3_6,omitempty"`
	Months6To12 []string `json:"months_6_12,omitempty"`
}
