package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"ledes/internal/models"
)

// DefaultSeedEntities is the demo portfolio loaded by `ledes seed`.
func DefaultSeedEntities() []models.Entity {
	entity := func(name, home, date string, states ...string) models.Entity {
		d, _ := time.Parse(time.DateOnly, date)
		return models.Entity{CompanyName: name, HomeState: home, StatesQualified: states, NextComplianceDate: d}
	}
	return []models.Entity{
		entity("Apex Ventures LLC", "Delaware", "2026-02-15", "California", "New York", "Texas", "Florida", "Nevada"),
		entity("Silverstone Holdings Inc", "Texas", "2026-03-22", "Delaware", "Arizona", "Colorado", "Georgia", "Illinois"),
		entity("BlueSky Technologies Corp", "Delaware", "2026-01-28", "Washington", "Oregon", "Massachusetts", "Virginia", "Maryland"),
		entity("Meridian Capital Partners", "Delaware", "2026-04-10", "New York", "New Jersey", "Connecticut", "Pennsylvania", "Ohio"),
		entity("Phoenix Investments Group", "Texas", "2026-02-05", "California", "Nevada", "Utah", "New Mexico", "Oklahoma"),
		entity("Quantum Industries LLC", "Delaware", "2026-05-18", "Michigan", "Indiana", "Wisconsin", "Minnesota", "Missouri"),
		entity("Horizon Global Solutions", "Texas", "2026-03-07", "North Carolina", "South Carolina", "Tennessee", "Alabama", "Louisiana"),
		entity("Pinnacle Equity Corp", "Delaware", "2026-06-14", "California", "Texas", "Florida", "Illinois", "Ohio"),
		entity("Catalyst Enterprises Inc", "Delaware", "2026-01-30", "Georgia", "Virginia", "Colorado", "Arizona", "Washington"),
		entity("Summit Strategic Holdings", "Texas", "2026-04-25", "New York", "Massachusetts", "Pennsylvania", "New Jersey", "Maryland"),
	}
}

// SeedEntities inserts entities in a single transaction, assigning ids where missing.
func SeedEntities(ctx context.Context, db *sql.DB, driver string, entities []models.Entity) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query := rebind(driver,
		`INSERT INTO entities (id, company_name, home_state, states_qualified, next_compliance_date, internal_owner, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	now := time.Now().UTC()
	for _, e := range entities {
		id := e.ID
		if id == "" {
			id = uuid.NewString()
		}
		var owner sql.NullString
		if e.InternalOwner != "" {
			owner = sql.NullString{String: e.InternalOwner, Valid: true}
		}
		if _, err := tx.ExecContext(ctx, query,
			id, e.CompanyName, e.HomeState, statesValue(driver, e.StatesQualified),
			e.NextComplianceDate.Format(time.DateOnly), owner, now, now,
		); err != nil {
			return 0, fmt.Errorf("insert entity %q: %w", e.CompanyName, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed: %w", err)
	}
	return len(entities), nil
}

func statesValue(driver string, states models.StringList) interface{} {
	if strings.ToLower(driver) == "postgres" {
		list := []string(states)
		if list == nil {
			list = []string{}
		}
		return pq.Array(list)
	}
	return states
}
