package blueprint

// SchemaJSON is the target-schema description embedded in the generation
// prompt. It is a valid Content document with example values, so the prompt
// and the response parser share one definition; the package tests reflect
// over Content to reject any drift between the two.
const SchemaJSON = `{
  "startup_overview": {
    "suggested_names": ["name1", "name2", "name3"],
    "industry": "industry name",
    "problem_statement": "clear problem description",
    "solution": "proposed solution",
    "unique_value_proposition": "what makes this unique"
  },
  "market_analysis": {
    "target_audience": "detailed audience description",
    "market_size": "market size with data",
    "market_demand": "demand analysis",
    "industry_trends": ["trend1", "trend2", "trend3"],
    "competitors": [
      {"name": "competitor1", "strength": "their strength", "weakness": "their weakness"},
      {"name": "competitor2", "strength": "their strength", "weakness": "their weakness"}
    ]
  },
  "business_model": {
    "revenue_streams": ["stream1", "stream2"],
    "pricing_strategy": "pricing approach",
    "customer_acquisition": "acquisition strategy"
  },
  "swot_analysis": {
    "strengths": ["strength1", "strength2", "strength3"],
    "weaknesses": ["weakness1", "weakness2"],
    "opportunities": ["opportunity1", "opportunity2", "opportunity3"],
    "threats": ["threat1", "threat2"]
  },
  "budget_estimation": {
    "initial_setup_cost": 500000,
    "monthly_operational_expenses": 100000,
    "technology_cost": 200000,
    "marketing_cost": 150000,
    "breakdown": {
      "item1": 100000,
      "item2": 50000
    }
  },
  "funding_investment": {
    "funding_options": ["option1", "option2"],
    "government_schemes": [
      {"name": "scheme name", "amount": "funding amount", "eligibility": "criteria"}
    ],
    "investor_readiness_tips": ["tip1", "tip2", "tip3"]
  },
  "legal_compliance": {
    "business_registration_type": "recommended type",
    "required_licenses": ["license1", "license2"],
    "taxation_basics": "tax information",
    "compliance_checklist": ["item1", "item2", "item3"]
  },
  "go_to_market_strategy": {
    "launch_plan": "detailed launch strategy",
    "marketing_channels": ["channel1", "channel2", "channel3"],
    "risks": ["risk1", "risk2"],
    "mitigation_strategies": ["strategy1", "strategy2"]
  },
  "action_roadmap": {
    "months_0_3": ["action1", "action2", "action3"],
    "months_3_6": ["action1", "action2", "action3"],
    "months_6_12": ["action1", "action2", "action3"]
  },
  "export_summary": "A concise 2-3 paragraph summary suitable for presentations and emails"
}`
