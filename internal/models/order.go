package models

// OrderLine is one row of the open orders sheet.
type OrderLine struct {
	OrderNum     string `json:"order_num"`
	PONum        string `json:"po_num"`
	CustomerName string `json:"customer_name"`
	VendorSKU    string `json:"vendor_sku"`
	Description  string `json:"description"`
	OrderedQty   int64  `json:"ordered_qty"`
	Address1     string `json:"address_1"`
	Address2     string `json:"address_2"`
	CustomerSKU  string `json:"customer_sku"`
	CityStateZip string `json:"city_state_zip"`
}

type OrderSummary struct {
	OrderNum     string `json:"order_num"`
	PONum        string `json:"po_num"`
	CustomerName string `json:"customer_name"`
	Items        int    `json:"items"`
	TotalQty     int64  `json:"total_qty"`
}

type OrderHeader struct {
	OrderNum     string `json:"order_num"`
	PONum        string `json:"po_num"`
	CustomerName string `json:"customer_name"`
	Address1     string `json:"address_1"`
	Address2     string `json:"address_2"`
	CityStateZip string `json:"city_state_zip"`
}

type DetailLine struct {
	OrderLine
	ShippedQty int64 `json:"shipped_qty"`
}

type Order struct {
	Header OrderHeader  `json:"header"`
	Lines  []DetailLine `json:"lines"`
}
