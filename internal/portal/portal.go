// Package portal holds the static portal catalog: the signed-in user and the
// dashboard modules. There is no authentication; every request acts as CurrentUser.
package portal

import "ledes/internal/models"

var currentUser = models.User{
	ID:         "1",
	Name:       "Ryan Manitoba",
	Email:      "ryan.manitoba@company.com",
	Role:       models.LevelManager,
	Department: "Legal",
}

var catalog = []models.Module{
	{
		ID:           "entity-management",
		Title:        "Entity Management",
		Description:  "Manage corporate entities, governance structure, and organizational hierarchies",
		Icon:         "building-2",
		Color:        "blue",
		Href:         "/modules/entity-management",
		AllowedRoles: []models.UserLevel{models.LevelAdmin, models.LevelManager, models.LevelUser},
	},
	{
		ID:           "legal-billing",
		Title:        "Legal Billing",
		Description:  "Track legal expenses, manage vendor invoices, and monitor department budgets",
		Icon:         "receipt",
		Color:        "emerald",
		Href:         "/modules/legal-billing",
		AllowedRoles: []models.UserLevel{models.LevelAdmin, models.LevelManager, models.LevelUser},
	},
	{
		ID:           "contracts",
		Title:        "Contracts",
		Description:  "Create, review, and manage legal contracts and agreements",
		Icon:         "file-text",
		Color:        "violet",
		Href:         "/modules/contracts",
		AllowedRoles: []models.UserLevel{models.LevelAdmin, models.LevelManager, models.LevelUser, models.LevelViewer},
	},
}

// CurrentUser returns the hardcoded portal user.
func CurrentUser() models.User {
	return currentUser
}

// ModulesFor returns the modules visible to role, in catalog order.
func ModulesFor(role models.UserLevel) []models.Module {
	out := make([]models.Module, 0, len(catalog))
	for _, m := range catalog {
		if m.Allows(role) {
			out = append(out, m)
		}
	}
	return out
}
