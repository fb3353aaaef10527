package model

// UnassignedOrgUnit labels budget items without an organizational unit.
const UnassignedOrgUnit = "Sin área"

// BudgetItem is one PAAS (annual procurement plan) line. The field set is
// the stable internal schema; the repository maps it to the labelled
// columns of the external table.
type BudgetItem struct {
	ID              int64    `json:"id"`
	SeqNo           string   `json:"seq_no"`
	ProcurementCode string   `json:"procurement_code"`
	ServiceName     string   `json:"service_name"`
	OrgUnit         string   `json:"org_unit"`
	RequestedAmount *float64 `json:"requested_amount"`
	RevisedAmount   *float64 `json:"revised_amount"`
	Justification   string   `json:"justification"`
}

func (b BudgetItem) Requested() float64 {
	if b.RequestedAmount == nil {
		return 0
	}
	return *b.RequestedAmount
}

func (b BudgetItem) Revised() float64 {
	if b.RevisedAmount == nil {
		return 0
	}
	return *b.RevisedAmount
}
