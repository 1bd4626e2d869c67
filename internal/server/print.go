package server

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sourcecd/warehouse/internal/documents"
	"github.com/sourcecd/warehouse/internal/models"
	"github.com/sourcecd/warehouse/internal/orders"
	"github.com/sourcecd/warehouse/internal/pdfpage"
)

const pdfType = "application/pdf"

func labelSettings(req *models.LabelSettings, def pdfpage.Settings) pdfpage.Settings {
	if req == nil {
		return def
	}
	return pdfpage.Settings{Scale: req.Scale, X: req.X, Y: req.Y, Rotate: req.Rotate}
}

func (h *handlers) batchLabels() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := checkContentType(r, "application/json"); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var req models.BatchLabelRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, err)
			return
		}

		order, err := h.order(r.Context(), chi.URLParam(r, "order"))
		if err != nil {
			writeError(w, err)
			return
		}
		lines, err := documents.ApplyShip(order, req.Lines)
		if err != nil {
			writeError(w, err)
			return
		}

		pdf, n, err := h.gen.BatchLabels(r.Context(), lines, labelSettings(req.Settings, documents.BatchSettings))
		if err != nil {
			writeError(w, err)
			return
		}
		h.journal(r.Context(), models.JobBatchLabels, order.Header.OrderNum, fmt.Sprintf("%d labels", n))

		writeFile(w, pdfType, fmt.Sprintf("Batch_%s.pdf", order.Header.OrderNum), pdf)
	}
}

func (h *handlers) singleLabel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LabelRequest
		if r.ContentLength != 0 {
			if err := checkContentType(r, "application/json"); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			if err := decodeRequest(r, &req); err != nil {
				writeError(w, err)
				return
			}
		}

		order, err := h.order(r.Context(), chi.URLParam(r, "order"))
		if err != nil {
			writeError(w, err)
			return
		}
		line, err := orders.FindLine(order, chi.URLParam(r, "sku"))
		if err != nil {
			writeError(w, err)
			return
		}

		qty := req.Qty
		if qty == 0 {
			qty = max(line.ShippedQty, 1)
		}

		pdf, err := h.gen.Label(r.Context(), line.OrderLine, qty, labelSettings(req.Settings, documents.SingleSettings))
		if err != nil {
			writeError(w, err)
			return
		}
		h.journal(r.Context(), models.JobLabel, order.Header.OrderNum, fmt.Sprintf("%s x%d", line.VendorSKU, qty))

		writeFile(w, pdfType, fmt.Sprintf("Label_%s.pdf", line.VendorSKU), pdf)
	}
}

func (h *handlers) packingSlip() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := checkContentType(r, "application/json"); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var req models.PackingSlipRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, err)
			return
		}

		order, err := h.order(r.Context(), chi.URLParam(r, "order"))
		if err != nil {
			writeError(w, err)
			return
		}
		lines, err := documents.ApplyShip(order, req.Lines)
		if err != nil {
			writeError(w, err)
			return
		}

		pdf, err := h.gen.PackingSlip(r.Context(), order.Header, lines, req.Method)
		if err != nil {
			writeError(w, err)
			return
		}
		method := req.Method
		if method == "" {
			method = models.ShipSmallParcel
		}
		h.journal(r.Context(), models.JobPackingSlip, order.Header.OrderNum, method)

		writeFile(w, pdfType, fmt.Sprintf("PS_%s.pdf", order.Header.OrderNum), pdf)
	}
}
