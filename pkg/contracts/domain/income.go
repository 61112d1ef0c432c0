package domain

// IncomeRow is one normalized settlement record: the funds released for an
// order with the platform and affiliate fee components separated out.
type IncomeRow struct {
	OrderID      string `json:"order_id"`
	SettledAt    string `json:"settled_at"`
	PlatformFee  int64  `json:"platform_fee"`
	AffiliateFee int64  `json:"affiliate_fee"`
	NetIncome    int64  `json:"net_income"`
}

// IncomeResult is the outcome of one income-pipeline invocation.
type IncomeResult struct {
	Rows  []IncomeRow `json:"rows"`
	Stats BatchStats  `json:"stats"`
}
