package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed layout.yaml
var defaultLayout []byte

type LabelLayout struct {
	Worksheet   string `yaml:"worksheet"`
	CustomerSKU string `yaml:"customer_sku"`
	Description string `yaml:"description"`
	VendorSKU   string `yaml:"vendor_sku"`
	PONum       string `yaml:"po_num"`
	Qty         string `yaml:"qty"`
}

type SlipLayout struct {
	Worksheet    string `yaml:"worksheet"`
	CustomerName string `yaml:"customer_name"`
	Address1     string `yaml:"address_1"`
	Address2     string `yaml:"address_2"`
	CityStateZip string `yaml:"city_state_zip"`
	OrderNum     string `yaml:"order_num"`
	PONum        string `yaml:"po_num"`
	ShipMethod   string `yaml:"ship_method"`
	// first row of the line block, and the range cleared before writing it
	LinesStart string  `yaml:"lines_start"`
	LinesClear string  `yaml:"lines_clear"`
	FirstRow   int     `yaml:"first_row"`
	ShowUntil  int     `yaml:"show_until"`
	HideUntil  int     `yaml:"hide_until"`
	MarginInch float64 `yaml:"margin_inch"`
}

type Layout struct {
	OrdersWorksheet string      `yaml:"orders_worksheet"`
	DescriptionMax  int         `yaml:"description_max"`
	Label           LabelLayout `yaml:"label"`
	Slip            SlipLayout  `yaml:"packing_slip"`
}

func DefaultLayout() Layout {
	var l Layout
	if err := yaml.Unmarshal(defaultLayout, &l); err != nil {
		panic(fmt.Sprintf("embedded layout: %v", err))
	}
	return l
}

// LoadLayout reads path over the default layout; keys absent from the file keep defaults.
func LoadLayout(path string) (Layout, error) {
	l := DefaultLayout()
	if path == "" {
		return l, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return l, err
	}
	if err := yaml.Unmarshal(b, &l); err != nil {
		return l, fmt.Errorf("parse layout %s: %w", path, err)
	}
	if l.Slip.FirstRow < 1 || l.Slip.ShowUntil < l.Slip.FirstRow || l.Slip.HideUntil < l.Slip.ShowUntil {
		return l, fmt.Errorf("layout %s: bad packing slip row range", path)
	}
	return l, nil
}
