package assistant

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ledes/internal/models"
)

var promptNow = time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC)

func sampleSnapshot() models.Snapshot {
	v := 1500000.0
	return models.Snapshot{
		Entities: []models.Entity{{
			CompanyName:        "Apex Ventures LLC",
			HomeState:          "Delaware",
			StatesQualified:    models.StringList{"California", "Texas"},
			NextComplianceDate: time.Date(2026, time.February, 15, 0, 0, 0, 0, time.UTC),
		}},
		Contracts: []models.Contract{{
			ContractName:   "Cloud Hosting MSA",
			ContractType:   "MSA",
			Counterparty:   "Acme Cloud",
			ContractValue:  &v,
			ExpirationDate: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
			Status:         models.ContractStatusActive,
			AutoRenew:      true,
		}},
		Bills: []models.LegalBill{{
			LawFirmName:   "Smith & Partners",
			InvoiceNumber: "INV-1001",
			Amount:        1234.5,
			DueDate:       time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC),
			Status:        models.BillStatusPending,
		}},
		Stats: models.Stats{TotalEntities: 1, TotalContracts: 1, TotalContractValue: 1500000},
	}
}

func TestBuildSystemPromptIncludesRecords(t *testing.T) {
	prompt := BuildSystemPrompt(PromptInput{Now: promptNow, Section: "contracts", Snapshot: sampleSnapshot()})

	assert.Contains(t, prompt, "Current date: January 10, 2026")
	assert.Contains(t, prompt, `"totalEntities": 1`)
	assert.Contains(t, prompt, "Apex Ventures LLC (Home State: Delaware, Qualified In: California, Texas, Next Compliance: February 15, 2026")
	assert.Contains(t, prompt, "Cloud Hosting MSA (MSA) with Acme Cloud, Value: $1,500,000")
	assert.Contains(t, prompt, "Auto-renew: Yes")
	assert.Contains(t, prompt, "Smith & Partners - Invoice #INV-1001, Amount: $1,234.50")
	assert.True(t, strings.HasSuffix(prompt, `Context: User is currently in the "contracts" section of the portal.`))
	assert.NotContains(t, prompt, "ENTITY CREATION IN PROGRESS")
}

func TestBuildSystemPromptEmptyData(t *testing.T) {
	prompt := BuildSystemPrompt(PromptInput{Now: promptNow, Snapshot: models.EmptySnapshot()})

	assert.Equal(t, 3, strings.Count(prompt, "- None on record"))
	assert.Contains(t, prompt, `"totalBills": 0`)
	assert.Contains(t, prompt, `section of the portal`)
	assert.Contains(t, prompt, `"general"`)
}

func TestBuildSystemPromptSectionOrder(t *testing.T) {
	prompt := BuildSystemPrompt(PromptInput{Now: promptNow, Snapshot: sampleSnapshot(), Intake: &models.IntakeForm{}})

	order := []string{"Current date:", "CURRENT DATA SNAPSHOT:", "ENTITIES:", "CONTRACTS:", "LEGAL BILLS:", "ENTITY CREATION IN PROGRESS:", "Guidelines:", "Context:"}
	last := -1
	for _, marker := range order {
		idx := strings.Index(prompt, marker)
		if assert.GreaterOrEqual(t, idx, 0, marker) {
			assert.Greater(t, idx, last, marker)
			last = idx
		}
	}
}

func TestBuildSystemPromptIntakePartial(t *testing.T) {
	form := &models.IntakeForm{Jurisdiction: "Delaware"}
	prompt := BuildSystemPrompt(PromptInput{Now: promptNow, Snapshot: models.EmptySnapshot(), Intake: form})

	assert.Contains(t, prompt, "- Home jurisdiction (state of formation): Delaware")
	assert.Contains(t, prompt, "- States to qualify in: "+NotProvided)
	assert.Contains(t, prompt, "- Internal owner: "+NotProvided)
	assert.Contains(t, prompt, "- Business purpose: "+NotProvided)
	assert.Contains(t, prompt, "Next question to ask: States to qualify in.")
}

func TestBuildSystemPromptIntakeComplete(t *testing.T) {
	form := &models.IntakeForm{Jurisdiction: "Delaware", QualificationStates: "Texas", Owner: "Jane Doe", Purpose: "Holding company"}
	prompt := BuildSystemPrompt(PromptInput{Now: promptNow, Snapshot: models.EmptySnapshot(), Intake: form})

	assert.NotContains(t, prompt, NotProvided)
	assert.NotContains(t, prompt, "Next question to ask")
	assert.Contains(t, prompt, "All required information has been collected")
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$1,500,000", formatCurrency(1500000))
	assert.Equal(t, "$0", formatCurrency(0))
	assert.Equal(t, "$1,234.50", formatCurrency(1234.5))
	assert.Equal(t, "N/A", formatOptionalCurrency(nil))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "unknown", formatDate(time.Time{}))
	assert.Equal(t, "March 1, 2026", formatDate(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)))
}
