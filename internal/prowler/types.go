package prowler

import "encoding/json"

// Status is the outcome of a compliance check.
type Status string

const (
	StatusPass    Status = "PASS"
	StatusFail    Status = "FAIL"
	StatusInfo    Status = "INFO"
	StatusUnknown Status = "unknown"
)

// Severity is the criticality label Prowler attaches to a check.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityUnknown  Severity = "unknown"
)

// Severities lists the known severities in display order.
var Severities = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// UnknownService is used when a finding carries no ServiceName.
const UnknownService = "unknown"

// Finding is a single Prowler check result.
type Finding struct {
	Status         Status   `json:"Status"`
	Severity       Severity `json:"Severity"`
	ServiceName    string   `json:"ServiceName"`
	CheckTitle     string   `json:"CheckTitle,omitempty"`
	StatusExtended string   `json:"StatusExtended,omitempty"`
	CheckID        string   `json:"CheckID,omitempty"`
	Region         string   `json:"Region,omitempty"`
	ResourceID     string   `json:"ResourceId,omitempty"`
	AccountID      string   `json:"AccountId,omitempty"`
}

// rawFinding mirrors Finding with pointer fields so absent keys can be told apart.
type rawFinding struct {
	Status         *string `json:"Status"`
	Severity       *string `json:"Severity"`
	ServiceName    *string `json:"ServiceName"`
	CheckTitle     *string `json:"CheckTitle"`
	StatusExtended *string `json:"StatusExtended"`
	CheckID        string  `json:"CheckID"`
	Region         string  `json:"Region"`
	ResourceID     string  `json:"ResourceId"`
	AccountID      string  `json:"AccountId"`
}

// UnmarshalJSON decodes a finding, substituting "unknown" for an absent
// Status, Severity or ServiceName.
func (f *Finding) UnmarshalJSON(b []byte) error {
	var raw rawFinding
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*f = Finding{
		Status:         Status(valueOr(raw.Status, string(StatusUnknown))),
		Severity:       Severity(valueOr(raw.Severity, string(SeverityUnknown))),
		ServiceName:    valueOr(raw.ServiceName, UnknownService),
		CheckTitle:     valueOr(raw.CheckTitle, ""),
		StatusExtended: valueOr(raw.StatusExtended, ""),
		CheckID:        raw.CheckID,
		Region:         raw.Region,
		ResourceID:     raw.ResourceID,
		AccountID:      raw.AccountID,
	}
	return nil
}

func valueOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}
