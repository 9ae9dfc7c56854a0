package model

import (
	"k8s.io/klog/v2"
)

// ToolAuditLog records one MCP tool invocation.
type ToolAuditLog struct {
	Model
	RunID        string `json:"runId" gorm:"type:varchar(36);index"`
	Tool         string `json:"tool" gorm:"type:varchar(50);index"`
	Filter       string `json:"filter" gorm:"type:text"`
	Limit        int    `json:"limit" gorm:"column:result_limit"`
	DetailLevel  string `json:"detailLevel" gorm:"type:varchar(10)"`
	ResultCount  int    `json:"resultCount"`
	Success      bool   `json:"success"`
	ErrorMessage string `json:"errorMessage" gorm:"type:text"`
}

func (ToolAuditLog) TableName() string {
	return "tool_audit_logs"
}

// ToolInvocation is the outcome handed over by the MCP handler.
type ToolInvocation struct {
	RunID       string
	Tool        string
	Filter      string
	Limit       int
	DetailLevel string
	ResultCount int
	Err         error
}

// RecordToolInvocation persists one audit row. Audit failures are
// logged, never surfaced to the caller.
func RecordToolInvocation(inv ToolInvocation) {
	if DB == nil {
		return
	}
	row := ToolAuditLog{
		RunID:       inv.RunID,
		Tool:        inv.Tool,
		Filter:      inv.Filter,
		Limit:       inv.Limit,
		DetailLevel: inv.DetailLevel,
		ResultCount: inv.ResultCount,
		Success:     inv.Err == nil,
	}
	if inv.Err != nil {
		row.ErrorMessage = inv.Err.Error()
	}
	if err := DB.Create(&row).Error; err != nil {
		klog.Errorf("Failed to record tool invocation %s: %v", inv.RunID, err)
	}
}

// ListAuditLogs returns the most recent rows, newest first.
func ListAuditLogs(limit int) ([]ToolAuditLog, error) {
	if DB == nil {
		return nil, nil
	}
	var rows []ToolAuditLog
	err := DB.Order("id DESC").Limit(limit).Find(&rows).Error
	return rows, err
}
