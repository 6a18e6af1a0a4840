package identity

// AgentRole роль и состояние учетной записи агента в справочнике сотрудников
type AgentRole struct {
	AgentID int64  `json:"agentId"`
	Role    string `json:"role"` // "agent", "manager" или "admin"
	Active  bool   `json:"active"`
}

// CanManageSchedule проверяет, что учетная запись активна и роль позволяет
// управлять расписанием
func (r *AgentRole) CanManageSchedule() bool {
	if !r.Active {
		return false
	}
	return r.Role == "agent" || r.Role == "manager" || r.Role == "admin"
}
