package domain

// BatchStats accumulates the counters of a single pipeline run. The counts
// are always consistent with the rows actually processed in that run: nothing
// is dropped silently beyond the rows the cancellation filter removed.
type BatchStats struct {
	InputRows   int `json:"input_rows"`
	DeletedRows int `json:"deleted_rows"`
	SplitCount  int `json:"split_count"`
	OutputRows  int `json:"output_rows"`
	TotalOrders int `json:"total_orders"`

	// Income pipeline running sums, zero for the orders pipeline.
	TotalPlatformFee  int64 `json:"total_platform_fee,omitempty"`
	TotalAffiliateFee int64 `json:"total_ams,omitempty"`
	TotalIncome       int64 `json:"total_income,omitempty"`
}
