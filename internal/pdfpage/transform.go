package pdfpage

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/sourcecd/warehouse/internal/prjerrors"
)

func config() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

func read(raw []byte) (*model.Context, error) {
	ctx, err := api.ReadContext(bytes.NewReader(raw), config())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", prjerrors.ErrBadPDF, err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", prjerrors.ErrBadPDF, err)
	}
	if ctx.PageCount < 1 {
		return nil, fmt.Errorf("%w: no pages", prjerrors.ErrBadPDF)
	}
	return ctx, nil
}

// firstPage reads raw and drops every page after the first.
func firstPage(raw []byte) (*model.Context, error) {
	ctx, err := read(raw)
	if err != nil || ctx.PageCount == 1 {
		return ctx, err
	}
	var buf bytes.Buffer
	if err := api.Trim(bytes.NewReader(raw), &buf, []string{"1"}, config()); err != nil {
		return nil, fmt.Errorf("%w: trim: %v", prjerrors.ErrBadPDF, err)
	}
	return read(buf.Bytes())
}

// Transform applies s to the first page of raw and returns a one page document.
func Transform(raw []byte, s Settings) ([]byte, error) {
	ctx, err := firstPage(raw)
	if err != nil {
		return nil, err
	}

	d, _, inh, err := ctx.PageDict(1, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", prjerrors.ErrBadPDF, err)
	}
	if d == nil {
		return nil, fmt.Errorf("%w: page 1 missing", prjerrors.ErrBadPDF)
	}

	top, rotate := float64(defaultTop), 0
	if inh != nil {
		if inh.MediaBox != nil {
			top = inh.MediaBox.UR.Y
		}
		rotate = inh.Rotate
	}
	p := Place(s, top)

	pre, err := contentStream(ctx, p.ContentPrefix())
	if err != nil {
		return nil, err
	}
	post, err := contentStream(ctx, p.ContentSuffix())
	if err != nil {
		return nil, err
	}
	existing, err := pageContents(ctx, d)
	if err != nil {
		return nil, err
	}

	contents := types.Array{*pre}
	contents = append(contents, existing...)
	contents = append(contents, *post)
	d.Update("Contents", contents)
	d.Update("MediaBox", types.NewNumberArray(p.MediaBox[:]...))
	d.Delete("CropBox")
	if p.Rotate != 0 {
		d.Update("Rotate", types.Integer((rotate+p.Rotate)%360))
	}

	var buf bytes.Buffer
	if err := api.WriteContext(ctx, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func contentStream(ctx *model.Context, content []byte) (*types.IndirectRef, error) {
	sd, err := ctx.NewStreamDictForBuf(content)
	if err != nil {
		return nil, err
	}
	if err := sd.Encode(); err != nil {
		return nil, err
	}
	return ctx.IndRefForNewObject(*sd)
}

func pageContents(ctx *model.Context, d types.Dict) (types.Array, error) {
	obj, found := d.Find("Contents")
	if !found || obj == nil {
		return nil, nil
	}
	switch o := obj.(type) {
	case types.IndirectRef:
		deref, err := ctx.Dereference(o)
		if err != nil {
			return nil, err
		}
		if arr, ok := deref.(types.Array); ok {
			return arr, nil
		}
		return types.Array{o}, nil
	case types.Array:
		return o, nil
	}
	return nil, fmt.Errorf("%w: unexpected page contents %T", prjerrors.ErrBadPDF, obj)
}

// Merge concatenates documents in order.
func Merge(docs [][]byte) ([]byte, error) {
	switch len(docs) {
	case 0:
		return nil, prjerrors.ErrNothingToPrint
	case 1:
		return docs[0], nil
	}

	rsc := make([]io.ReadSeeker, 0, len(docs))
	for _, d := range docs {
		rsc = append(rsc, bytes.NewReader(d))
	}
	var buf bytes.Buffer
	if err := api.MergeRaw(rsc, &buf, false, config()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
