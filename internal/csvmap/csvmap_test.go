package csvmap

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sourcecd/warehouse/internal/prjerrors"
	"github.com/stretchr/testify/require"
)

const erpExport = ` Order Number ,PO Number,CustomerName,Item,ItemDescription,OrderedQty,Warehouse,Cust SKU
SO100,PO-9,Acme Hardware,VS-1,Brass hinge,12,MAIN,AC-1
SO100,PO-9,Acme Hardware,VS-2,Steel hinge,3,MAIN,AC-2
,,,,,,,
SO101,PO-10,Bolt & Co,VS-1,"Brass hinge, satin",5,EAST,BC-7
`

func TestParse(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		expCols []string
		expRows [][]string
		expErr  error
	}{
		{
			name:    "renameAndSelect",
			in:      erpExport,
			expCols: []string{"order_num", "po_num", "customer_name", "vendor_sku", "description", "ordered_qty", "customer_sku"},
			expRows: [][]string{
				{"SO100", "PO-9", "Acme Hardware", "VS-1", "Brass hinge", "12", "AC-1"},
				{"SO100", "PO-9", "Acme Hardware", "VS-2", "Steel hinge", "3", "AC-2"},
				{"SO101", "PO-10", "Bolt & Co", "VS-1", "Brass hinge, satin", "5", "BC-7"},
			},
		},
		{
			name:    "bomAndReorder",
			in:      "\ufeffItem,Order Number\nVS-3,SO7\nVS-4\n",
			expCols: []string{"order_num", "vendor_sku"},
			expRows: [][]string{{"SO7", "VS-3"}, {"", "VS-4"}},
		},
		{
			name:   "noKnownColumns",
			in:     "a,b\n1,2\n",
			expErr: prjerrors.ErrNoKnownColumns,
		},
		{
			name:   "empty",
			in:     "",
			expErr: prjerrors.ErrNoKnownColumns,
		},
	}

	for _, v := range testCases {
		t.Run(v.name, func(t *testing.T) {
			tbl, err := Parse(strings.NewReader(v.in))
			if v.expErr != nil {
				require.ErrorIs(t, err, v.expErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, v.expCols, tbl.Columns)
			require.Equal(t, v.expRows, tbl.Rows)
		})
	}
}

func TestMerge(t *testing.T) {
	a := &Table{
		Columns: []string{"order_num", "ordered_qty"},
		Rows:    [][]string{{"SO1", "4"}},
	}
	b := &Table{
		Columns: []string{"order_num", "po_num"},
		Rows:    [][]string{{"SO2", "PO2"}, {"SO3", "PO3"}},
	}

	m := Merge(a, b)

	require.Equal(t, []string{"order_num", "po_num", "ordered_qty"}, m.Columns)
	require.Equal(t, [][]string{
		{"SO1", "", "4"},
		{"SO2", "PO2", ""},
		{"SO3", "PO3", ""},
	}, m.Rows)
	require.Equal(t, 3, m.Len())
	require.Equal(t, []interface{}{"order_num", "po_num", "ordered_qty"}, m.Header())
	require.Equal(t, []interface{}{"SO2", "PO2", ""}, m.Values()[1])
}

func file(name, body string) File {
	return File{
		Name: name,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(body)), nil
		},
	}
}

func TestParseAll(t *testing.T) {
	tbl, err := ParseAll(context.Background(), []File{
		file("a.csv", "Order Number,Item\nSO1,VS-1\n"),
		file("b.csv", "Order Number,OrderedQty\nSO2,7\n"),
	})
	require.NoError(t, err)
	require.Equal(t, []string{"order_num", "vendor_sku", "ordered_qty"}, tbl.Columns)
	require.Equal(t, [][]string{{"SO1", "VS-1", ""}, {"SO2", "", "7"}}, tbl.Rows)

	_, err = ParseAll(context.Background(), nil)
	require.ErrorIs(t, err, prjerrors.ErrNoFiles)

	_, err = ParseAll(context.Background(), []File{
		file("a.csv", "Order Number\nSO1\n"),
		file("junk.csv", "x,y\n"),
	})
	require.ErrorIs(t, err, prjerrors.ErrNoKnownColumns)
	require.Contains(t, err.Error(), "junk.csv")

	openErr := errors.New("disk gone")
	_, err = ParseAll(context.Background(), []File{{
		Name: "c.csv",
		Open: func() (io.ReadCloser, error) { return nil, openErr },
	}})
	require.ErrorIs(t, err, openErr)
}
