package model

// RevenueRow is one transaction-type slice of the revenue report.
type RevenueRow struct {
	Type             string `db:"type"`
	TransactionCount int    `db:"transaction_count"`
	TotalBase        int64  `db:"total_base"`
	TotalDiscount    int64  `db:"total_discount"`
	TotalAmount      int64  `db:"total_amount"`
}

// OccupancyRow summarizes room occupancy over a date range.
type OccupancyRow struct {
	TotalRooms     int `db:"total_rooms"`
	OccupiedRooms  int `db:"occupied_rooms"`
	RoomsInService int `db:"rooms_in_service"`
}
