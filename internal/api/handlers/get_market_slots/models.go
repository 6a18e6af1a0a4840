package get_market_slots

import (
	"github.com/avilov/BOH-SchedulingService/internal/domain"
	getMarketSlots "github.com/avilov/BOH-SchedulingService/internal/usecase/get_market_slots"
)

// SlotCell одна ячейка сетки: свободный слот или null
type SlotCell struct {
	SlotID  int64 `json:"slotId"`
	AgentID int64 `json:"agentId"`
}

// BranchGridResponse сетка свободных слотов одного филиала.
// Cells[i][j] содержит слот на время Times[i] в день Days[j] (или null)
type BranchGridResponse struct {
	BranchID      int64         `json:"branchId"`
	BranchName    string        `json:"branchName"`
	BranchAddress string        `json:"branchAddress"`
	Times         []string      `json:"times"`
	Cells         [][]*SlotCell `json:"cells"`
}

// MarketSlotsResponse HTTP response model
type MarketSlotsResponse struct {
	Service  string               `json:"service"`
	Market   string               `json:"market"`
	Days     []string             `json:"days"` // "2026-01-15"
	Branches []BranchGridResponse `json:"branches"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getMarketSlots.Response) *MarketSlotsResponse {
	days := make([]string, 0, len(resp.Days))
	for _, d := range resp.Days {
		days = append(days, d.Format(domain.DateFormat))
	}

	branches := make([]BranchGridResponse, 0, len(resp.Branches))
	for _, b := range resp.Branches {
		branches = append(branches, BranchGridResponse{
			BranchID:      b.BranchID,
			BranchName:    b.BranchName,
			BranchAddress: b.BranchAddress,
			Times:         formatTimes(b.Grid),
			Cells:         formatCells(b.Grid),
		})
	}

	return &MarketSlotsResponse{
		Service:  resp.ServiceName,
		Market:   resp.MarketName,
		Days:     days,
		Branches: branches,
	}
}

func formatTimes(grid domain.SlotGrid) []string {
	times := make([]string, 0, len(grid.Times))
	for _, t := range grid.Times {
		times = append(times, t.String())
	}
	return times
}

func formatCells(grid domain.SlotGrid) [][]*SlotCell {
	cells := make([][]*SlotCell, 0, len(grid.Rows))
	for _, row := range grid.Rows {
		outRow := make([]*SlotCell, len(row))
		for j, slot := range row {
			if slot == nil {
				continue
			}
			outRow[j] = &SlotCell{
				SlotID:  slot.ID,
				AgentID: slot.AgentID,
			}
		}
		cells = append(cells, outRow)
	}
	return cells
}
