package notifier

import "github.com/avilov/BOH-SchedulingService/internal/domain"

// Notification полезная нагрузка уведомления о слоте.
// Содержит все, что нужно сервису уведомлений для письма-приглашения
// агенту (ICS) и SMS клиенту, без обратных запросов в наш сервис.
type Notification struct {
	SlotID         int64   `json:"slotId"`
	Date           string  `json:"date"` // "2026-01-15"
	Time           string  `json:"time"` // "10:00"
	AgentName      string  `json:"agentName"`
	AgentEmail     string  `json:"agentEmail"`
	BranchName     string  `json:"branchName"`
	BranchAddress  string  `json:"branchAddress"`
	BranchTimeZone string  `json:"branchTimeZone"`
	CustomerName   *string `json:"customerName,omitempty"`
	CustomerPhone  *string `json:"customerPhone,omitempty"`
	Topic          *string `json:"topic,omitempty"`
}

// FromSlot собирает уведомление из слота и данных справочника
func FromSlot(s *domain.Slot, agent *domain.Agent, branch *domain.Branch) *Notification {
	return &Notification{
		SlotID:         s.ID,
		Date:           s.Date.Format(domain.DateFormat),
		Time:           s.Time.String(),
		AgentName:      agent.Name,
		AgentEmail:     agent.Email,
		BranchName:     branch.Name,
		BranchAddress:  branch.Address,
		BranchTimeZone: branch.TimeZone,
		CustomerName:   s.CustomerName,
		CustomerPhone:  s.CustomerPhone,
		Topic:          s.Topic,
	}
}
