// Package security provides the role to permission mapping used by the
// notification fan-out. Permissions are flat strings; a role grants a fixed
// set of them. No per-user overrides at this layer.
package security

// Permissions understood by the core.
const (
	PermReceiveFinance    = "notifications.finance"    // cost, revenue, payment events
	PermReceiveOperations = "notifications.operations" // shipment lifecycle events
	PermReceiveAlerts     = "notifications.alerts"     // everything else
)

// Roles known to the platform. Recipients carry exactly one role.
const (
	RoleAdmin      = "admin"
	RoleFinance    = "finance"
	RoleOperations = "operations"
	RoleViewer     = "viewer"
)

var rolePermissions = map[string]map[string]bool{
	RoleAdmin: {
		PermReceiveFinance:    true,
		PermReceiveOperations: true,
		PermReceiveAlerts:     true,
	},
	RoleFinance: {
		PermReceiveFinance: true,
		PermReceiveAlerts:  true,
	},
	RoleOperations: {
		PermReceiveOperations: true,
		PermReceiveAlerts:     true,
	},
	RoleViewer: {},
}

// HasPermission reports whether role grants perm. Unknown roles grant nothing.
func HasPermission(role, perm string) bool {
	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	return perms[perm]
}
