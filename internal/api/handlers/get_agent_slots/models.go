package get_agent_slots

import (
	"github.com/avilov/BOH-SchedulingService/internal/domain"
)

// SlotCell одна ячейка сетки агента
type SlotCell struct {
	SlotID        int64   `json:"slotId"`
	State         string  `json:"state"`
	CustomerName  *string `json:"customerName,omitempty"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	Topic         *string `json:"topic,omitempty"`
}

// AgentSlotsResponse HTTP response model.
// Cells[i][j] содержит слот на время Times[i] в день Days[j] (или null)
type AgentSlotsResponse struct {
	AgentID       int64         `json:"agentId"`
	AgentName     string        `json:"agentName"`
	BranchName    string        `json:"branchName"`
	BranchAddress string        `json:"branchAddress"`
	Days          []string      `json:"days"`
	Times         []string      `json:"times"`
	Cells         [][]*SlotCell `json:"cells"`
}

// FromDomain конвертирует доменную сетку агента в HTTP response
func FromDomain(view *domain.AgentSlotView) *AgentSlotsResponse {
	days := make([]string, 0, len(view.Grid.Days))
	for _, d := range view.Grid.Days {
		days = append(days, d.Format(domain.DateFormat))
	}

	times := make([]string, 0, len(view.Grid.Times))
	for _, t := range view.Grid.Times {
		times = append(times, t.String())
	}

	cells := make([][]*SlotCell, 0, len(view.Grid.Rows))
	for _, row := range view.Grid.Rows {
		outRow := make([]*SlotCell, len(row))
		for j, slot := range row {
			if slot == nil {
				continue
			}
			outRow[j] = &SlotCell{
				SlotID:        slot.ID,
				State:         string(slot.State),
				CustomerName:  slot.CustomerName,
				CustomerPhone: slot.CustomerPhone,
				Topic:         slot.Topic,
			}
		}
		cells = append(cells, outRow)
	}

	return &AgentSlotsResponse{
		AgentID:       view.AgentID,
		AgentName:     view.AgentName,
		BranchName:    view.BranchName,
		BranchAddress: view.BranchAddress,
		Days:          days,
		Times:         times,
		Cells:         cells,
	}
}
