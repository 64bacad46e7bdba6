package dto

// CategorySummaryResponse productos y stock total por categoría.
type CategorySummaryResponse struct {
	Category   string `json:"category"`
	Products   int    `json:"products"`
	TotalStock int    `json:"total_stock"`
}

// LowStockResponse productos con stock igual o menor al umbral.
type LowStockResponse struct {
	Threshold int               `json:"threshold"`
	Items     []ProductResponse `json:"items"`
}
