package dto

import (
	"hotelier/internal/domains/report/model"
)

type RevenueLine struct {
	Type             string `json:"type"`
	TransactionCount int    `json:"transaction_count"`
	TotalBase        int64  `json:"total_base"`
	TotalDiscount    int64  `json:"total_discount"`
	TotalAmount      int64  `json:"total_amount"`
}

type RevenueReportResponse struct {
	StartDate   string        `json:"start_date"`
	EndDate     string        `json:"end_date"`
	Lines       []RevenueLine `json:"lines"`
	GrandTotal  int64         `json:"grand_total"`
}

func (r *RevenueReportResponse) FromModels(rows []model.RevenueRow, startDate, endDate string) {
	r.StartDate = startDate
	r.EndDate = endDate
	r.Lines = make([]RevenueLine, len(rows))

	for i, row := range rows {
		r.Lines[i] = RevenueLine{
			Type:             row.Type,
			TransactionCount: row.TransactionCount,
			TotalBase:        row.TotalBase,
			TotalDiscount:    row.TotalDiscount,
			TotalAmount:      row.TotalAmount,
		}
		r.GrandTotal += row.TotalAmount
	}
}

type OccupancyReportResponse struct {
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	TotalRooms     int     `json:"total_rooms"`
	RoomsInService int     `json:"rooms_in_service"`
	OccupiedRooms  int     `json:"occupied_rooms"`
	OccupancyRate  float64 `json:"occupancy_rate"`
}

func (r *OccupancyReportResponse) FromModel(row model.OccupancyRow, startDate, endDate string) {
	r.StartDate = startDate
	r.EndDate = endDate
	r.TotalRooms = row.TotalRooms
	r.RoomsInService = row.RoomsInService
	r.OccupiedRooms = row.OccupiedRooms

	if row.RoomsInService > 0 {
		r.OccupancyRate = float64(row.OccupiedRooms) / float64(row.RoomsInService)
	}
}
