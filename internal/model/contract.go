package model

import (
	"strings"
	"time"
)

type ContractStatus string

const (
	ContractStatusActive    ContractStatus = "ACTIVE"
	ContractStatusExpiring  ContractStatus = "EXPIRING"
	ContractStatusExpired   ContractStatus = "EXPIRED"
	ContractStatusCancelled ContractStatus = "CANCELLED"
)

// ParseContractStatus accepts both the English tags and the Spanish labels
// captured by the contracts office. Unrecognised values are kept verbatim.
func ParseContractStatus(raw string) ContractStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "active", "activo", "vigente":
		return ContractStatusActive
	case "expiring", "por vencer", "por_vencer":
		return ContractStatusExpiring
	case "expired", "vencido":
		return ContractStatusExpired
	case "cancelled", "canceled", "cancelado":
		return ContractStatusCancelled
	default:
		return ContractStatus(strings.TrimSpace(raw))
	}
}

type Contract struct {
	ID             int64          `json:"id"`
	Provider       string         `json:"provider"`
	Service        string         `json:"service"`
	ContractNumber string         `json:"contract_number"`
	StartDate      *time.Time     `json:"start_date"`
	EndDate        *time.Time     `json:"end_date"`
	Amount         *float64       `json:"amount"`
	Status         ContractStatus `json:"status"`
	Area           string         `json:"area"`
}
