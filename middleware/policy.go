package middleware

import (
	"net/http"

	"github.com/ErthaLabs/ErthaExchange/models"
	"github.com/ErthaLabs/ErthaExchange/utils"
	"github.com/gin-gonic/gin"
)

// Resources and actions known to the policy table.
const (
	ResourceService     = "service"
	ResourceBooking     = "booking"
	ResourceConversion  = "conversion"
	ResourcePayment     = "payment"
	ResourceTransaction = "transaction"
	ResourceUser        = "user"
	ResourceAudit       = "audit"
	ResourceReport      = "report"

	ActionCreate  = "create"
	ActionRead    = "read"
	ActionUpdate  = "update"
	ActionApprove = "approve"
	ActionBook    = "book"
	ActionRefund  = "refund"
	ActionManage  = "manage"
	ActionExport  = "export"
)

type permission struct {
	Resource string
	Action   string
}

// policies maps each role to the permissions it holds. Ownership checks
// (an org touching its own service, a user reading its own transactions)
// remain in the controllers; this table answers only "may this role perform
// this action on this resource at all".
var policies = map[string]map[permission]bool{
	models.RoleUser: {
		{ResourceService, ActionRead}:      true,
		{ResourceService, ActionBook}:      true,
		{ResourceBooking, ActionRead}:      true,
		{ResourcePayment, ActionCreate}:    true,
		{ResourcePayment, ActionRead}:      true,
		{ResourceTransaction, ActionRead}:  true,
	},
	models.RoleOrg: {
		{ResourceService, ActionCreate}:    true,
		{ResourceService, ActionRead}:      true,
		{ResourceService, ActionUpdate}:    true,
		{ResourceBooking, ActionRead}:      true,
		{ResourceConversion, ActionCreate}: true,
		{ResourceConversion, ActionRead}:   true,
		{ResourcePayment, ActionCreate}:    true,
		{ResourcePayment, ActionRead}:      true,
		{ResourceTransaction, ActionRead}:  true,
	},
	models.RoleAdmin: {
		{ResourceService, ActionRead}:       true,
		{ResourceService, ActionApprove}:    true,
		{ResourceService, ActionUpdate}:     true,
		{ResourceBooking, ActionRead}:       true,
		{ResourceConversion, ActionRead}:    true,
		{ResourceConversion, ActionApprove}: true,
		{ResourcePayment, ActionRead}:       true,
		{ResourcePayment, ActionRefund}:     true,
		{ResourceTransaction, ActionRead}:   true,
		{ResourceUser, ActionManage}:        true,
		{ResourceAudit, ActionRead}:         true,
		{ResourceReport, ActionExport}:      true,
	},
}

// Can reports whether role may perform action on resource.
func Can(role, resource, action string) bool {
	perms, ok := policies[role]
	if !ok {
		return false
	}
	return perms[permission{resource, action}]
}

// RequirePermission evaluates the policy table once per request for the
// authenticated user's role.
func RequirePermission(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
			c.Abort()
			return
		}

		if !Can(user.Role, resource, action) {
			utils.LogError("Role %s denied %s:%s (user %d)", user.Role, resource, action, user.ID)
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action"})
			c.Abort()
			return
		}
		c.Next()
	}
}
