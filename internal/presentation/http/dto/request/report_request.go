package request

// SalesReportQuery selects the reporting range. Dates are YYYY-MM-DD and the
// range covers whole days, to inclusive.
type SalesReportQuery struct {
	From   string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To     string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Format string `form:"format" binding:"omitempty,oneof=thermal-narrow thermal-wide full-page"`
}

// OrderListQuery selects which orders to list
type OrderListQuery struct {
	View    string `form:"view" binding:"omitempty,oneof=open paid archived"`
	Page    int    `form:"page" binding:"omitempty,min=1"`
	PerPage int    `form:"per_page" binding:"omitempty,min=1,max=100"`
}
