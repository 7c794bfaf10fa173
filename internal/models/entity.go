package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
)

// Entity is a corporate entity managed by the legal department.
type Entity struct {
	ID                 string     `json:"id"`
	CompanyName        string     `json:"company_name"`
	HomeState          string     `json:"home_state"`
	StatesQualified    StringList `json:"states_qualified"`
	NextComplianceDate time.Time  `json:"next_compliance_date"`
	InternalOwner      string     `json:"internal_owner,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// StringList scans either a postgres text[] literal or a JSON array (sqlite, mysql).
type StringList []string

// Scan implements sql.Scanner.
func (s *StringList) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*s = nil
		return nil
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return fmt.Errorf("scan string list: unsupported type %T", src)
	}
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		*s = nil
		return nil
	case strings.HasPrefix(raw, "["):
		var out []string
		if err := json.Unmarshal([]byte(raw), &out); err != nil {
			return fmt.Errorf("scan string list: %w", err)
		}
		*s = out
		return nil
	default:
		var arr pq.StringArray
		if err := arr.Scan([]byte(raw)); err != nil {
			return fmt.Errorf("scan string list: %w", err)
		}
		*s = StringList(arr)
		return nil
	}
}

// Value implements driver.Valuer using the JSON form, which every supported driver stores as text.
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
