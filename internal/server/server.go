package server

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sourcecd/warehouse/internal/auth"
	"github.com/sourcecd/warehouse/internal/compression"
	"github.com/sourcecd/warehouse/internal/csvmap"
	"github.com/sourcecd/warehouse/internal/logging"
	"github.com/sourcecd/warehouse/internal/models"
	"github.com/sourcecd/warehouse/internal/orders"
	"github.com/sourcecd/warehouse/internal/pdfpage"
	"github.com/sourcecd/warehouse/internal/prjerrors"
	"github.com/sourcecd/warehouse/internal/retr"
	"github.com/sourcecd/warehouse/internal/storage"
)

const (
	cookieMaxAge   = 43200
	maxUploadSize  = 32 << 20
	jobsLimit      = 50
	jobsLimitMax   = 500
	xlsxType       = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportFilename = "open_orders.xlsx"
)

type ctxKey struct{}

type generator interface {
	Label(ctx context.Context, line models.OrderLine, qty int64, s pdfpage.Settings) ([]byte, error)
	BatchLabels(ctx context.Context, lines []models.DetailLine, s pdfpage.Settings) ([]byte, int, error)
	PackingSlip(ctx context.Context, header models.OrderHeader, lines []models.DetailLine, method string) ([]byte, error)
}

type handlers struct {
	seckey string
	store  storage.Store
	rtr    *retr.Retr
	repo   *orders.Repository
	gen    generator
	now    func() time.Time
}

func checkRequestCreds(r *http.Request) (string, error) {
	if ck, err := r.Cookie("Bearer"); err == nil && ck.Value != "" {
		return ck.Value, nil
	}
	if bearer := r.Header.Get("Authorization"); bearer != "" {
		headerSlice := strings.Split(bearer, " ")
		if len(headerSlice) == 2 && headerSlice[0] == "Bearer" {
			return headerSlice[1], nil
		}
	}
	return "", prjerrors.ErrAuthCredsNotFound
}

func userParse(r *http.Request) (*models.User, error) {
	user := &models.User{}
	if err := json.NewDecoder(r.Body).Decode(user); err != nil {
		return nil, prjerrors.ErrReqJSONParse
	}
	ok, err := govalidator.ValidateStruct(user)
	if err != nil || !ok {
		return nil, prjerrors.ErrValidateLogPass
	}
	return user, nil
}

func decodeRequest(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %s", prjerrors.ErrReqJSONParse, err.Error())
	}
	if ok, err := govalidator.ValidateStruct(v); err != nil || !ok {
		return fmt.Errorf("%w: %v", prjerrors.ErrValidateRequest, err)
	}
	return nil
}

func SetTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "Bearer",
		Value:    token,
		MaxAge:   cookieMaxAge,
		Path:     "/",
		HttpOnly: true,
	})
}

func checkContentType(r *http.Request, contentType string) error {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mt != contentType {
		return errors.New("wrong content type")
	}
	return nil
}

func statusFor(err error) int {
	var pe *csv.ParseError
	switch {
	case errors.Is(err, prjerrors.ErrAuthCredsNotFound),
		errors.Is(err, prjerrors.ErrNotExists):
		return http.StatusUnauthorized
	case errors.Is(err, prjerrors.ErrOrderNotFound),
		errors.Is(err, prjerrors.ErrSkuNotFound),
		errors.Is(err, prjerrors.ErrWorksheetNotFound):
		return http.StatusNotFound
	case errors.Is(err, prjerrors.ErrExportFailed),
		errors.Is(err, prjerrors.ErrBadPDF),
		errors.Is(err, prjerrors.ErrSheetRequest),
		errors.Is(err, prjerrors.ErrSheetUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, prjerrors.ErrNoFiles),
		errors.Is(err, prjerrors.ErrNoKnownColumns),
		errors.Is(err, prjerrors.ErrReqJSONParse),
		errors.Is(err, prjerrors.ErrValidateLogPass),
		errors.Is(err, prjerrors.ErrValidateRequest),
		errors.Is(err, prjerrors.ErrShipMethod),
		errors.Is(err, prjerrors.ErrNothingToPrint),
		errors.As(err, &pe):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.Error(err.Error())
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := enc.Encode(v); err != nil {
		slog.Error(err.Error())
	}
}

func writeFile(w http.ResponseWriter, contentType, name string, b []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

func loginFrom(ctx context.Context) string {
	login, _ := ctx.Value(ctxKey{}).(string)
	return login
}

func (h *handlers) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := checkRequestCreds(r)
		if err != nil {
			http.Error(w, "401 Unauthorized", http.StatusUnauthorized)
			return
		}
		login, err := auth.ParseJWT(token, h.seckey)
		if err != nil {
			http.Error(w, "401 Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, login)))
	})
}

// journal records a finished upload or document. A failed write is logged
// and does not fail the request.
func (h *handlers) journal(ctx context.Context, kind, orderNum, detail string) {
	job := &models.Job{
		ID:        uuid.NewString(),
		Kind:      kind,
		Login:     loginFrom(ctx),
		OrderNum:  orderNum,
		Detail:    detail,
		CreatedAt: h.now().UTC(),
	}
	if err := retr.Exec(ctx, h.rtr, func(ctx context.Context) error {
		return h.store.SaveJob(ctx, job)
	}); err != nil {
		slog.Error("journal", slog.String("kind", kind), slog.String("error", err.Error()))
	}
}

// lines returns the cached open orders; a failed load reads as no orders.
func (h *handlers) lines(ctx context.Context) []models.OrderLine {
	lines, err := h.repo.Lines(ctx)
	if err != nil {
		slog.Error("load orders", slog.String("error", err.Error()))
		return nil
	}
	return lines
}

func (h *handlers) order(ctx context.Context, orderNum string) (*models.Order, error) {
	return orders.Detail(h.lines(ctx), orderNum)
}

func (h *handlers) authUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := checkContentType(r, "application/json"); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		user, err := userParse(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := retr.Exec(r.Context(), h.rtr, func(ctx context.Context) error {
			return h.store.AuthUser(ctx, user)
		}); err != nil {
			writeError(w, err)
			return
		}

		token, err := auth.GenerateJWT(user.Login, h.seckey)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		SetTokenCookie(w, token)

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(token))
	}
}

func (h *handlers) uploadOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer r.MultipartForm.RemoveAll()

		var files []csvmap.File
		var names []string
		for _, fh := range r.MultipartForm.File["files"] {
			files = append(files, csvmap.File{
				Name: fh.Filename,
				Open: func() (io.ReadCloser, error) { return fh.Open() },
			})
			names = append(names, fh.Filename)
		}

		table, err := csvmap.ParseAll(r.Context(), files)
		if err != nil {
			writeError(w, err)
			return
		}
		n, err := h.repo.Replace(r.Context(), table)
		if err != nil {
			writeError(w, err)
			return
		}
		h.journal(r.Context(), models.JobUpload, "", fmt.Sprintf("%d lines from %s", n, strings.Join(names, ", ")))

		writeJSON(w, map[string]int{"lines": n})
	}
}

func (h *handlers) ordersList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list := orders.Summaries(h.lines(r.Context()), r.URL.Query().Get("q"))
		if list == nil {
			list = []models.OrderSummary{}
		}
		writeJSON(w, list)
	}
}

func (h *handlers) refreshOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.repo.Refresh()
		w.WriteHeader(http.StatusOK)
	}
}

func (h *handlers) exportOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lines, err := h.repo.Lines(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		var buf bytes.Buffer
		if err := orders.ExportWorkbook(lines, h.repo.Tab(), &buf); err != nil {
			writeError(w, err)
			return
		}
		writeFile(w, xlsxType, exportFilename, buf.Bytes())
	}
}

func (h *handlers) orderDetail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, err := h.order(r.Context(), chi.URLParam(r, "order"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, order)
	}
}

func (h *handlers) jobsList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := jobsLimit
		if s := r.URL.Query().Get("limit"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 {
				http.Error(w, "limit must be a positive number", http.StatusBadRequest)
				return
			}
			limit = min(n, jobsLimitMax)
		}

		jobs, err := retr.Do(r.Context(), h.rtr, func(ctx context.Context) ([]models.Job, error) {
			return h.store.ListJobs(ctx, limit)
		})
		if err != nil {
			if errors.Is(err, prjerrors.ErrEmptyData) {
				http.Error(w, err.Error(), http.StatusNoContent)
				return
			}
			writeError(w, err)
			return
		}
		writeJSON(w, jobs)
	}
}

func webRouter(h *handlers) *chi.Mux {
	mux := chi.NewRouter()
	mux.Use(logging.WriteLogging, compression.GzipCompressDecompress)

	mux.Post("/api/user/login", h.authUser())
	mux.Group(func(r chi.Router) {
		r.Use(h.authenticate)
		r.Post("/api/orders/upload", h.uploadOrders())
		r.Get("/api/orders", h.ordersList())
		r.Post("/api/orders/refresh", h.refreshOrders())
		r.Get("/api/orders/export", h.exportOrders())
		r.Get("/api/orders/{order}", h.orderDetail())
		r.Post("/api/orders/{order}/labels", h.batchLabels())
		r.Post("/api/orders/{order}/labels/{sku}", h.singleLabel())
		r.Post("/api/orders/{order}/packing-slip", h.packingSlip())
		r.Get("/api/jobs", h.jobsList())
	})

	return mux
}
