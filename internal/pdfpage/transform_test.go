package pdfpage

import (
	"bytes"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/sourcecd/warehouse/internal/prjerrors"
	"github.com/stretchr/testify/require"
)

func readBack(t *testing.T, b []byte) *model.Context {
	t.Helper()
	ctx, err := api.ReadContext(bytes.NewReader(b), config())
	require.NoError(t, err)
	require.NoError(t, api.ValidateContext(ctx))
	return ctx
}

func number(t *testing.T, o types.Object) float64 {
	t.Helper()
	switch v := o.(type) {
	case types.Float:
		return v.Value()
	case types.Integer:
		return float64(v.Value())
	}
	t.Fatalf("not a number: %T", o)
	return 0
}

func TestTransform(t *testing.T) {
	testCases := []struct {
		name      string
		settings  Settings
		rotate    int
		expRotate int
	}{
		{name: "rotated", settings: Settings{Scale: 0.95, X: -60, Y: 95, Rotate: true}, expRotate: 90},
		{name: "inheritedRotation", settings: Settings{Scale: 0.95, Rotate: true}, rotate: 90, expRotate: 180},
		{name: "flat", settings: Settings{Scale: 1}},
	}

	for _, v := range testCases {
		t.Run(v.name, func(t *testing.T) {
			out, err := Transform(buildPDF(t, 612, 792, v.rotate), v.settings)
			require.NoError(t, err)

			ctx := readBack(t, out)
			require.Equal(t, 1, ctx.PageCount)
			d, _, inh, err := ctx.PageDict(1, false)
			require.NoError(t, err)

			box := d.ArrayEntry("MediaBox")
			require.Len(t, box, 4)
			require.InDelta(t, 0, number(t, box[0]), 1e-6)
			require.InDelta(t, 504, number(t, box[1]), 1e-6)
			require.InDelta(t, 432, number(t, box[2]), 1e-6)
			require.InDelta(t, 792, number(t, box[3]), 1e-6)

			require.Len(t, d.ArrayEntry("Contents"), 3)
			rot := inh.Rotate
			if r := d.IntEntry("Rotate"); r != nil {
				rot = *r
			}
			require.Equal(t, v.expRotate, rot)
		})
	}
}

func TestTransformKeepsFirstPage(t *testing.T) {
	spill, err := Merge([][]byte{buildPDF(t, 612, 792, 0), buildPDF(t, 612, 792, 0)})
	require.NoError(t, err)
	require.Equal(t, 2, readBack(t, spill).PageCount)

	out, err := Transform(spill, Settings{Scale: 0.95, Rotate: true})
	require.NoError(t, err)

	ctx := readBack(t, out)
	require.Equal(t, 1, ctx.PageCount)
	d, _, _, err := ctx.PageDict(1, false)
	require.NoError(t, err)
	require.Len(t, d.ArrayEntry("Contents"), 3)
	require.InDelta(t, 432, number(t, d.ArrayEntry("MediaBox")[2]), 1e-6)
}

func TestTransformRejectsGarbage(t *testing.T) {
	_, err := Transform([]byte("<html>sign in</html>"), Settings{Scale: 1})
	require.ErrorIs(t, err, prjerrors.ErrBadPDF)
}

func TestMerge(t *testing.T) {
	one := buildPDF(t, 612, 792, 0)
	two := buildPDF(t, 612, 792, 0)

	out, err := Merge([][]byte{one, two})
	require.NoError(t, err)
	require.Equal(t, 2, readBack(t, out).PageCount)

	single, err := Merge([][]byte{one})
	require.NoError(t, err)
	require.Equal(t, one, single)

	_, err = Merge(nil)
	require.ErrorIs(t, err, prjerrors.ErrNothingToPrint)
}
