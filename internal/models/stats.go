package models

// Stats summarises the record collections at request time. It is never persisted.
type Stats struct {
	TotalEntities         int     `json:"totalEntities"`
	EntitiesDueSoon       int     `json:"entitiesDueSoon"`
	TotalContracts        int     `json:"totalContracts"`
	ContractsExpiringSoon int     `json:"contractsExpiringSoon"`
	AutoRenewalContracts  int     `json:"autoRenewalContracts"`
	TotalContractValue    float64 `json:"totalContractValue"`
	TotalBills            int     `json:"totalBills"`
	PendingBills          int     `json:"pendingBills"`
	TotalOutstanding      float64 `json:"totalOutstanding"`
	BillsDueSoon          int     `json:"billsDueSoon"`
}

// Snapshot is the grounding data for one chat request.
type Snapshot struct {
	Entities  []Entity    `json:"entities"`
	Contracts []Contract  `json:"contracts"`
	Bills     []LegalBill `json:"bills"`
	Stats     Stats       `json:"stats"`
}

// EmptySnapshot returns a snapshot with non-nil empty collections and zero stats.
func EmptySnapshot() Snapshot {
	return Snapshot{
		Entities:  []Entity{},
		Contracts: []Contract{},
		Bills:     []LegalBill{},
	}
}
