package blueprint

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// jsonKeys collects the json tag names of a struct type.
func jsonKeys(t *testing.T, typ reflect.Type) map[string]bool {
	t.Helper()
	keys := make(map[string]bool)
	for i := 0; i < typ.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("json")
		name, _, _ := strings.Cut(tag, ",")
		if name == "" || name == "-" {
			t.Fatalf("field %s.%s has no usable json tag", typ.Name(), typ.Field(i).Name)
		}
		keys[name] = true
	}
	return keys
}

// TestSchemaJSON_ParsesIntoContent guarantees the prompt-side schema is a
// structurally valid Content document: the parser side can never disagree
// with what the prompt asks for.
func TestSchemaJSON_ParsesIntoContent(t *testing.T) {
	var content Content
	dec := json.NewDecoder(strings.NewReader(SchemaJSON))
	dec.DisallowUnknownFields()
	require.NoError(t, dec.Decode(&content), "SchemaJSON must decode into Content with no unknown fields")

	// All nine sections plus the summary are present in the schema example.
	assert.NotNil(t, content.StartupOverview)
	assert.NotNil(t, content.MarketAnalysis)
	assert.NotNil(t, content.BusinessModel)
	assert.NotNil(t, content.SWOTAnalysis)
	assert.NotNil(t, content.BudgetEstimation)
	assert.NotNil(t, content.FundingInvestment)
	assert.NotNil(t, content.LegalCompliance)
	assert.NotNil(t, content.GoToMarketStrategy)
	assert.NotNil(t, content.ActionRoadmap)
	assert.NotEmpty(t, content.ExportSummary)
}

// TestSchemaJSON_CoversEveryField checks the reverse direction: every field
// the structs define appears in the prompt schema, so generation is always
// asked for the full document.
func TestSchemaJSON_CoversEveryField(t *testing.T) {
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(SchemaJSON), &raw))

	contentKeys := jsonKeys(t, reflect.TypeOf(Content{}))
	for key := range contentKeys {
		assert.Contains(t, raw, key, "schema missing top-level key %q", key)
	}
	assert.Len(t, raw, len(contentKeys), "schema has keys the structs do not define")

	sections := map[string]reflect.Type{
		"startup_overview":      reflect.TypeOf(StartupOverview{}),
		"market_analysis":       reflect.TypeOf(MarketAnalysis{}),
		"business_model":        reflect.TypeOf(BusinessModel{}),
		"swot_analysis":         reflect.TypeOf(SWOTAnalysis{}),
		"budget_estimation":     reflect.TypeOf(BudgetEstimation{}),
		"funding_investment":    reflect.TypeOf(FundingInvestment{}),
		"legal_compliance":      reflect.TypeOf(LegalCompliance{}),
		"go_to_market_strategy": reflect.TypeOf(GoToMarketStrategy{}),
		"action_roadmap":        reflect.TypeOf(ActionRoadmap{}),
	}

	for sectionKey, sectionType := range sections {
		var sectionRaw map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(raw[sectionKey], &sectionRaw), "section %q", sectionKey)

		wantKeys := jsonKeys(t, sectionType)
		for key := range wantKeys {
			assert.Contains(t, sectionRaw, key, "section %q missing field %q", sectionKey, key)
		}
		assert.Len(t, sectionRaw, len(wantKeys), "section %q has undeclared fields", sectionKey)
	}
}

func TestContent_EverySectionOptional(t *testing.T) {
	var content Content
	require.NoError(t, json.Unmarshal([]byte(`{}`), &content))
	assert.Nil(t, content.StartupOverview)
	assert.Nil(t, content.ActionRoadmap)

	// A lone section still round-trips.
	partial := `{"swot_analysis": {"strengths": ["focused team"]}}`
	require.NoError(t, json.Unmarshal([]byte(partial), &content))
	require.NotNil(t, content.SWOTAnalysis)
	assert.Equal(t, []string{"focused team"}, content.SWOTAnalysis.Strengths)
}
