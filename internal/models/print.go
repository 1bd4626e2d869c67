package models

const (
	ShipSmallParcel = "Small Parcel"
	ShipLTL         = "LTL"
)

type LabelSettings struct {
	Scale  float64 `json:"scale"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Rotate bool    `json:"rotate"`
}

// ShipLine carries the edited ship quantity of one order line.
type ShipLine struct {
	VendorSKU  string `json:"vendor_sku" valid:"required"`
	ShippedQty int64  `json:"shipped_qty"`
}

type BatchLabelRequest struct {
	Lines    []ShipLine     `json:"lines"`
	Settings *LabelSettings `json:"settings,omitempty"`
}

type LabelRequest struct {
	Qty      int64          `json:"qty"`
	Settings *LabelSettings `json:"settings,omitempty"`
}

type PackingSlipRequest struct {
	Method string     `json:"method" valid:"in(Small Parcel|LTL)"`
	Lines  []ShipLine `json:"lines"`
}
