package middleware

import (
	"testing"

	"github.com/ErthaLabs/ErthaExchange/models"
	"github.com/stretchr/testify/assert"
)

func TestCan(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{"UserBooksService", models.RoleUser, ResourceService, ActionBook, true},
		{"UserCannotCreateService", models.RoleUser, ResourceService, ActionCreate, false},
		{"UserCannotApproveConversion", models.RoleUser, ResourceConversion, ActionApprove, false},
		{"OrgCreatesService", models.RoleOrg, ResourceService, ActionCreate, true},
		{"OrgRequestsConversion", models.RoleOrg, ResourceConversion, ActionCreate, true},
		{"OrgCannotApproveConversion", models.RoleOrg, ResourceConversion, ActionApprove, false},
		{"OrgCannotManageUsers", models.RoleOrg, ResourceUser, ActionManage, false},
		{"AdminApprovesConversion", models.RoleAdmin, ResourceConversion, ActionApprove, true},
		{"AdminRefundsPayment", models.RoleAdmin, ResourcePayment, ActionRefund, true},
		{"AdminCannotCreateConversion", models.RoleAdmin, ResourceConversion, ActionCreate, false},
		{"UnknownRole", "superuser", ResourceUser, ActionManage, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, Can(tt.role, tt.resource, tt.action))
		})
	}
}
