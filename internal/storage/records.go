package storage

import (
	"context"
	"database/sql"
	"fmt"

	"ledes/internal/models"
)

// Records reads the dashboard collections. It never writes.
type Records struct {
	db *sql.DB
}

// NewRecords wraps an open database handle.
func NewRecords(db *sql.DB) *Records {
	return &Records{db: db}
}

// ListEntities returns all entities ordered by next compliance date.
func (r *Records) ListEntities(ctx context.Context) ([]models.Entity, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, company_name, home_state, states_qualified, next_compliance_date, internal_owner, created_at, updated_at
		 FROM entities ORDER BY next_compliance_date ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list entities: %w", err)
	}
	defer rows.Close()

	entities := make([]models.Entity, 0)
	for rows.Next() {
		var (
			e     models.Entity
			owner sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.CompanyName, &e.HomeState, &e.StatesQualified, &e.NextComplianceDate, &owner, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan entity: %w", err)
		}
		e.InternalOwner = owner.String
		entities = append(entities, e)
	}
	return entities, rows.Err()
}

// ListContracts returns all contracts ordered by expiration date.
func (r *Records) ListContracts(ctx context.Context) ([]models.Contract, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, contract_name, contract_type, counterparty, expiration_date, status, contract_value, auto_renew, created_at, updated_at
		 FROM contracts ORDER BY expiration_date ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	defer rows.Close()

	contracts := make([]models.Contract, 0)
	for rows.Next() {
		var (
			c     models.Contract
			value sql.NullFloat64
		)
		if err := rows.Scan(&c.ID, &c.ContractName, &c.ContractType, &c.Counterparty, &c.ExpirationDate, &c.Status, &value, &c.AutoRenew, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan contract: %w", err)
		}
		if value.Valid {
			v := value.Float64
			c.ContractValue = &v
		}
		contracts = append(contracts, c)
	}
	return contracts, rows.Err()
}

// ListBills returns all legal bills ordered by due date.
func (r *Records) ListBills(ctx context.Context) ([]models.LegalBill, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, law_firm_name, invoice_number, amount, due_date, status, description, created_at, updated_at
		 FROM legal_bills ORDER BY due_date ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()

	bills := make([]models.LegalBill, 0)
	for rows.Next() {
		var b models.LegalBill
		if err := rows.Scan(&b.ID, &b.LawFirmName, &b.InvoiceNumber, &b.Amount, &b.DueDate, &b.Status, &b.Description, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		bills = append(bills, b)
	}
	return bills, rows.Err()
}

// ListPlaybook returns playbook clauses ordered by category. An empty position
// returns every clause.
func (r *Records) ListPlaybook(ctx context.Context, position models.ClausePosition) ([]models.PlaybookClause, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, clause_category, clause_name, position, guidance, example_language, created_at, updated_at
		 FROM contract_playbook ORDER BY clause_category ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list playbook: %w", err)
	}
	defer rows.Close()

	clauses := make([]models.PlaybookClause, 0)
	for rows.Next() {
		var (
			p       models.PlaybookClause
			example sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.ClauseCategory, &p.ClauseName, &p.Position, &p.Guidance, &example, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan playbook clause: %w", err)
		}
		if position != "" && p.Position != position {
			continue
		}
		if example.Valid {
			s := example.String
			p.ExampleLanguage = &s
		}
		clauses = append(clauses, p)
	}
	return clauses, rows.Err()
}
