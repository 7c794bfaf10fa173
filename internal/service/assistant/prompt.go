package assistant

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"ledes/internal/models"
)

// NotProvided marks an intake field the user has not answered yet.
const NotProvided = "NOT YET PROVIDED"

// DefaultSection is used when the caller does not name a portal section.
const DefaultSection = "general"

// PromptInput is everything the grounding text is built from.
type PromptInput struct {
	Now      time.Time
	Section  string
	Snapshot models.Snapshot
	Intake   *models.IntakeForm
}

const persona = `You are Ledes, the legal operations assistant of an in-house legal department portal. You help legal professionals in three ways:

1. **Search & Analyze Existing Data**: answer questions about the entities, contracts and legal bills listed below
2. **Best Practices & Guidance**: legal operations practice, contract playbook recommendations and compliance advice
3. **Internal Knowledge**: internal policies, procedures and company-specific workflows

Your personality:
- Professional, friendly and approachable
- Concise and action-oriented
- Expert in legal operations, contracts and compliance
- Proactive about next steps and best practices`

var guidelines = []string{
	"Answer data questions from the records above only, with specific names, numbers and dates",
	"Calculate dates and deadlines relative to the current date",
	"Highlight urgent items (overdue or due within 7 days) proactively",
	"Format currency with thousands separators (e.g., $1,500,000 not 1500000)",
	"Offer contract playbook guidance on common clauses (indemnification, liability, IP) and negotiation or redlining tips when asked",
	"Recommend compliance and governance approaches that fit the portfolio",
	"Keep responses concise: 2-4 sentences for simple queries, longer only for guidance",
	"Always suggest a logical next action",
	"Point out risks and opportunities you notice in the data",
}

// BuildSystemPrompt assembles the grounding instruction for one request.
func BuildSystemPrompt(in PromptInput) string {
	var b strings.Builder

	b.WriteString(persona)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Current date: %s\n\n", in.Now.Format(humanDate))

	b.WriteString("CURRENT DATA SNAPSHOT:\n")
	b.WriteString(statsBlock(in.Snapshot.Stats))
	b.WriteString("\n\n")

	b.WriteString("ENTITIES:\n")
	writeLines(&b, entityLines(in.Snapshot.Entities))
	b.WriteString("\nCONTRACTS:\n")
	writeLines(&b, contractLines(in.Snapshot.Contracts))
	b.WriteString("\nLEGAL BILLS:\n")
	writeLines(&b, billLines(in.Snapshot.Bills))

	if in.Intake != nil {
		b.WriteString("\n")
		b.WriteString(intakeBlock(in.Intake))
	}

	b.WriteString("\nGuidelines:\n")
	for i, g := range guidelines {
		fmt.Fprintf(&b, "%d. %s\n", i+1, g)
	}

	fmt.Fprintf(&b, "\nContext: User is currently in the %q section of the portal.", orDefault(in.Section, DefaultSection))
	return b.String()
}

func statsBlock(stats models.Stats) string {
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		// Stats holds only ints and floats; this cannot happen for finite values.
		return "{}"
	}
	return string(data)
}

func writeLines(b *strings.Builder, lines []string) {
	if len(lines) == 0 {
		b.WriteString("- None on record\n")
		return
	}
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
}

func entityLines(entities []models.Entity) []string {
	lines := make([]string, 0, len(entities))
	for _, e := range entities {
		qualified := "None"
		if len(e.StatesQualified) > 0 {
			qualified = strings.Join(e.StatesQualified, ", ")
		}
		lines = append(lines, fmt.Sprintf("- %s (Home State: %s, Qualified In: %s, Next Compliance: %s, Owner: %s)",
			e.CompanyName, e.HomeState, qualified, formatDate(e.NextComplianceDate), orDefault(e.InternalOwner, "Unassigned")))
	}
	return lines
}

func contractLines(contracts []models.Contract) []string {
	lines := make([]string, 0, len(contracts))
	for _, c := range contracts {
		lines = append(lines, fmt.Sprintf("- %s (%s) with %s, Value: %s, Expires: %s, Auto-renew: %s, Status: %s",
			c.ContractName, c.ContractType, c.Counterparty, formatOptionalCurrency(c.ContractValue),
			formatDate(c.ExpirationDate), yesNo(c.AutoRenew), c.Status))
	}
	return lines
}

func billLines(bills []models.LegalBill) []string {
	lines := make([]string, 0, len(bills))
	for _, bill := range bills {
		line := fmt.Sprintf("- %s - Invoice #%s, Amount: %s, Due: %s, Status: %s",
			bill.LawFirmName, bill.InvoiceNumber, formatCurrency(bill.Amount), formatDate(bill.DueDate), bill.Status)
		if d := strings.TrimSpace(bill.Description); d != "" {
			line += ", Description: " + d
		}
		lines = append(lines, line)
	}
	return lines
}

func intakeBlock(form *models.IntakeForm) string {
	var b strings.Builder
	b.WriteString("ENTITY CREATION IN PROGRESS:\n")
	b.WriteString("The user is forming a new entity. Information collected so far:\n")
	var next string
	for _, f := range form.Fields() {
		value := strings.TrimSpace(f.Value)
		if value == "" {
			value = NotProvided
			if next == "" {
				next = f.Label
			}
		}
		fmt.Fprintf(&b, "- %s: %s\n", f.Label, value)
	}
	if next == "" {
		b.WriteString("All required information has been collected. Summarize it and ask the user to confirm before anything is filed.\n")
		return b.String()
	}
	b.WriteString("Ask for the missing information one question at a time, in this order: home jurisdiction, states to qualify in, internal owner, business purpose. ")
	b.WriteString("Do not ask for a field that is already provided.\n")
	fmt.Fprintf(&b, "Next question to ask: %s.\n", next)
	return b.String()
}
