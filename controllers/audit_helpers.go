package controllers

import (
	"encoding/json"

	"github.com/ErthaLabs/ErthaExchange/config"
	"github.com/ErthaLabs/ErthaExchange/models"
	"github.com/ErthaLabs/ErthaExchange/utils"
	"github.com/gin-gonic/gin"
)

// auditEntry describes one state-changing action for the audit trail.
type auditEntry struct {
	ActorID    *uint
	ActorRole  string
	Action     string
	Resource   string
	ResourceID string
	OldValues  interface{}
	NewValues  interface{}
	Metadata   interface{}
}

func marshalJSON(v interface{}) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// logAudit appends an audit record. Strictly best-effort: a failed insert is
// logged and never aborts the action that triggered it.
func logAudit(c *gin.Context, entry auditEntry) {
	record := models.AuditLog{
		ActorID:    entry.ActorID,
		ActorRole:  entry.ActorRole,
		Action:     entry.Action,
		Resource:   entry.Resource,
		ResourceID: entry.ResourceID,
		OldValues:  marshalJSON(entry.OldValues),
		NewValues:  marshalJSON(entry.NewValues),
		Metadata:   marshalJSON(entry.Metadata),
	}
	if c != nil {
		record.IPAddress = c.ClientIP()
		record.UserAgent = c.Request.UserAgent()
	}

	if err := config.DB.Create(&record).Error; err != nil {
		utils.LogError("Failed to write audit log for %s %s: %v", entry.Action, entry.Resource, err)
	}
}
