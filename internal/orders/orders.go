package orders

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/sourcecd/warehouse/internal/models"
	"github.com/sourcecd/warehouse/internal/prjerrors"
)

type groupKey struct {
	order, po, customer string
}

// Summaries groups lines per (order, PO, customer), counting every line of a
// group as an item, blank SKU included, and keeps the groups whose
// order number, customer name or PO contains filter, ignoring case.
func Summaries(lines []models.OrderLine, filter string) []models.OrderSummary {
	idx := make(map[groupKey]int)
	var out []models.OrderSummary
	for _, l := range lines {
		k := groupKey{l.OrderNum, l.PONum, l.CustomerName}
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, models.OrderSummary{
				OrderNum:     l.OrderNum,
				PONum:        l.PONum,
				CustomerName: l.CustomerName,
			})
		}
		out[i].Items++
		out[i].TotalQty += l.OrderedQty
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if c := compare(a.OrderNum, b.OrderNum); c != 0 {
			return c < 0
		}
		if c := compare(a.PONum, b.PONum); c != 0 {
			return c < 0
		}
		return a.CustomerName < b.CustomerName
	})

	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		return out
	}
	filtered := out[:0]
	for _, s := range out {
		if strings.Contains(strings.ToLower(s.OrderNum), filter) ||
			strings.Contains(strings.ToLower(s.CustomerName), filter) ||
			strings.Contains(strings.ToLower(s.PONum), filter) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// compare orders numbers numerically and falls back to string order.
func compare(a, b string) int {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	switch {
	case errA == nil && errB == nil:
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return strings.Compare(a, b)
}

// Detail collects the lines of one order. Ship quantity defaults to the ordered quantity.
func Detail(lines []models.OrderLine, orderNum string) (*models.Order, error) {
	var order *models.Order
	for _, l := range lines {
		if l.OrderNum != orderNum {
			continue
		}
		if order == nil {
			order = &models.Order{Header: models.OrderHeader{
				OrderNum:     l.OrderNum,
				PONum:        l.PONum,
				CustomerName: l.CustomerName,
				Address1:     l.Address1,
				Address2:     l.Address2,
				CityStateZip: l.CityStateZip,
			}}
		}
		order.Lines = append(order.Lines, models.DetailLine{OrderLine: l, ShippedQty: l.OrderedQty})
	}
	if order == nil {
		return nil, fmt.Errorf("%w: %s", prjerrors.ErrOrderNotFound, orderNum)
	}
	return order, nil
}

// FindLine returns the first line of the order with the given vendor SKU.
func FindLine(order *models.Order, sku string) (models.DetailLine, error) {
	for _, l := range order.Lines {
		if l.VendorSKU == sku {
			return l, nil
		}
	}
	return models.DetailLine{}, fmt.Errorf("%w: %s in %s", prjerrors.ErrSkuNotFound, sku, order.Header.OrderNum)
}
