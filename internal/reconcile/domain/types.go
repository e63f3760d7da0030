// Package domain defines the bulk reconciliation contract: spreadsheet rows
// in, per-row outcomes and progress events out.
package domain

import (
	"github.com/bwmarrin/snowflake"
)

// RowInput is one parsed spreadsheet row.
type RowInput struct {
	UID             string `json:"uid"`
	Term            string `json:"term"`
	FeeCategoryName string `json:"fee_category_name"`
}

// Row failure reasons. These strings are user-visible and stable; the upload
// UI matches on them to let operators retry only the failed rows.
const (
	ReasonRequiredFieldsMissing = "required fields missing"
	ReasonCategoryNotFound      = "category not found"
	ReasonNoGroupForCategory    = "no group for category"
	ReasonStudentNotFound       = "student not found"
	ReasonClassNotFound         = "class not found"
	ReasonNoPromotion           = "no promotion for student in term"
)

// RowError carries the original row data so failed rows can be re-uploaded
// verbatim. Row is the display row in the spreadsheet: data starts at row 2
// because row 1 is the header.
type RowError struct {
	Row int `json:"row"`
	RowInput
	Reason string `json:"reason"`
}

type RowSuccess struct {
	Row            int          `json:"row"`
	UID            string       `json:"uid"`
	MappingID      snowflake.ID `json:"mapping_id"`
	MappingCreated bool         `json:"mapping_created"`
}

// BatchResult is the caller-facing outcome of one run.
// Total == Successful + Failed always holds.
type BatchResult struct {
	Total      int          `json:"total"`
	Successful int          `json:"successful"`
	Failed     int          `json:"failed"`
	Errors     []RowError   `json:"errors"`
	Successes  []RowSuccess `json:"successes"`
}
