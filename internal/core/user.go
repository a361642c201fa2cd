package core

type Role string

const (
	RoleOwner   Role = "owner"   // 業主：全部權限
	RoleAdmin   Role = "admin"   // 管理員
	RoleManager Role = "manager" // 物業經理
	RoleFinance Role = "finance" // 財務
)

// Roles 所有可登入角色
var Roles = []Role{RoleOwner, RoleAdmin, RoleManager, RoleFinance}

// Privileged owner / admin 可看到刪除類通知並接收排程通知
func (r Role) Privileged() bool {
	return r == RoleOwner || r == RoleAdmin
}
