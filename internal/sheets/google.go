package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/sourcecd/warehouse/internal/prjerrors"
	"github.com/sourcecd/warehouse/internal/retr"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	sheetsAPI = "https://sheets.googleapis.com/v4/spreadsheets"
	docsAPI   = "https://docs.google.com/spreadsheets/d"

	valueInput = "RAW"
)

var Scopes = []string{
	"https://www.googleapis.com/auth/spreadsheets",
	"https://www.googleapis.com/auth/drive",
}

type Client struct {
	cl        *resty.Client
	rtr       *retr.Retr
	sheetsURL string
	exportURL string
}

func NewClient(hc *http.Client, rtr *retr.Retr) *Client {
	return &Client{
		cl:        resty.NewWithClient(hc),
		rtr:       rtr,
		sheetsURL: sheetsAPI,
		exportURL: docsAPI,
	}
}

// NewServiceAccountClient authorizes with a service account key. The token is
// refreshed by the transport when it expires.
func NewServiceAccountClient(ctx context.Context, credentialsJSON []byte, rtr *retr.Retr) (*Client, error) {
	creds, err := google.CredentialsFromJSON(ctx, credentialsJSON, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("google credentials: %w", err)
	}
	return NewClient(oauth2.NewClient(ctx, creds.TokenSource), rtr), nil
}

func (c *Client) SetEndpoints(sheetsURL, exportURL string) {
	c.sheetsURL = sheetsURL
	c.exportURL = exportURL
}

func (c *Client) do(ctx context.Context, method, u string, query map[string]string, body interface{}) ([]byte, error) {
	return retr.Do(ctx, c.rtr, func(ctx context.Context) ([]byte, error) {
		req := c.cl.R().SetContext(ctx).SetQueryParams(query)
		if body != nil {
			req.SetHeader("Content-Type", "application/json").SetBody(body)
		}
		resp, err := req.Execute(method, u)
		if err != nil {
			return nil, err
		}
		switch code := resp.StatusCode(); {
		case code == http.StatusTooManyRequests || code >= http.StatusInternalServerError:
			return nil, fmt.Errorf("%w: %s %s: %s", prjerrors.ErrSheetUnavailable, method, u, resp.Status())
		case code >= http.StatusBadRequest:
			return nil, fmt.Errorf("%w: %s %s: %s", prjerrors.ErrSheetRequest, method, u, resp.Status())
		}
		return resp.Body(), nil
	})
}

type sheetProps struct {
	SheetID int64  `json:"sheetId"`
	Title   string `json:"title"`
}

type googleBook struct {
	c      *Client
	id     string
	sheets []sheetProps
}

func (c *Client) Open(ctx context.Context, key string) (Book, error) {
	body, err := c.do(ctx, http.MethodGet, c.sheetsURL+"/"+url.PathEscape(key),
		map[string]string{"fields": "sheets.properties(sheetId,title)"}, nil)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet %s: %w", key, err)
	}

	var meta struct {
		Sheets []struct {
			Properties sheetProps `json:"properties"`
		} `json:"sheets"`
	}
	if err := json.Unmarshal(body, &meta); err != nil {
		return nil, fmt.Errorf("open spreadsheet %s: %w", key, err)
	}

	b := &googleBook{c: c, id: key}
	for _, s := range meta.Sheets {
		b.sheets = append(b.sheets, s.Properties)
	}
	return b, nil
}

func (b *googleBook) ID() string {
	return b.id
}

func (b *googleBook) Worksheet(_ context.Context, title string) (Worksheet, error) {
	for _, s := range b.sheets {
		if s.Title == title {
			return &googleSheet{book: b, props: s}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q in %s", prjerrors.ErrWorksheetNotFound, title, b.id)
}

type googleSheet struct {
	book  *googleBook
	props sheetProps
}

func (s *googleSheet) ID() int64 {
	return s.props.SheetID
}

func (s *googleSheet) Title() string {
	return s.props.Title
}

func (s *googleSheet) bookURL() string {
	return s.book.c.sheetsURL + "/" + url.PathEscape(s.book.id)
}

func (s *googleSheet) valuesURL(rng string) string {
	return s.bookURL() + "/values/" + url.PathEscape(a1(s.props.Title, rng))
}

func (s *googleSheet) Clear(ctx context.Context) error {
	_, err := s.book.c.do(ctx, http.MethodPost, s.valuesURL("")+":clear", nil, struct{}{})
	return err
}

func (s *googleSheet) Update(ctx context.Context, start string, values [][]interface{}) error {
	rng := a1(s.props.Title, start)
	_, err := s.book.c.do(ctx, http.MethodPut, s.valuesURL(start),
		map[string]string{"valueInputOption": valueInput},
		map[string]interface{}{
			"range":          rng,
			"majorDimension": "ROWS",
			"values":         values,
		})
	return err
}

func (s *googleSheet) BatchUpdate(ctx context.Context, updates []CellUpdate) error {
	data := make([]CellUpdate, 0, len(updates))
	for _, u := range updates {
		data = append(data, CellUpdate{Range: a1(s.props.Title, u.Range), Values: u.Values})
	}
	_, err := s.book.c.do(ctx, http.MethodPost, s.bookURL()+"/values:batchUpdate", nil,
		map[string]interface{}{
			"valueInputOption": valueInput,
			"data":             data,
		})
	return err
}

func (s *googleSheet) BatchClear(ctx context.Context, ranges []string) error {
	full := make([]string, 0, len(ranges))
	for _, r := range ranges {
		full = append(full, a1(s.props.Title, r))
	}
	_, err := s.book.c.do(ctx, http.MethodPost, s.bookURL()+"/values:batchClear", nil,
		map[string]interface{}{"ranges": full})
	return err
}

func (s *googleSheet) Records(ctx context.Context) ([]map[string]string, error) {
	body, err := s.book.c.do(ctx, http.MethodGet, s.valuesURL(""),
		map[string]string{"valueRenderOption": "UNFORMATTED_VALUE"}, nil)
	if err != nil {
		return nil, err
	}

	var vr struct {
		Values [][]interface{} `json:"values"`
	}
	if err := json.Unmarshal(body, &vr); err != nil {
		return nil, fmt.Errorf("read %s: %w", s.props.Title, err)
	}
	rows := make([][]string, 0, len(vr.Values))
	for _, r := range vr.Values {
		row := make([]string, len(r))
		for i, v := range r {
			row[i] = Cell(v)
		}
		rows = append(rows, row)
	}
	return records(rows), nil
}

func (s *googleSheet) SetRowsHidden(ctx context.Context, start, end int, hidden bool) error {
	if start < 1 || end < start {
		return nil
	}
	req := map[string]interface{}{
		"requests": []interface{}{
			map[string]interface{}{
				"updateDimensionProperties": map[string]interface{}{
					"range": map[string]interface{}{
						"sheetId":    s.props.SheetID,
						"dimension":  "ROWS",
						"startIndex": start - 1,
						"endIndex":   end,
					},
					"properties": map[string]interface{}{"hiddenByUser": hidden},
					"fields":     "hiddenByUser",
				},
			},
		},
	}
	_, err := s.book.c.do(ctx, http.MethodPost, s.bookURL()+":batchUpdate", nil, req)
	return err
}

// Export renders one tab through the document export endpoint.
func (c *Client) Export(ctx context.Context, spreadsheetID string, gid int64, opts ExportOptions) ([]byte, error) {
	margin := strconv.FormatFloat(opts.Margin, 'f', -1, 64)
	query := map[string]string{
		"format":        "pdf",
		"gid":           strconv.FormatInt(gid, 10),
		"portrait":      strconv.FormatBool(opts.Portrait),
		"fitw":          strconv.FormatBool(opts.FitWidth),
		"gridlines":     "false",
		"top_margin":    margin,
		"bottom_margin": margin,
		"left_margin":   margin,
		"right_margin":  margin,
	}
	u := c.exportURL + "/" + url.PathEscape(spreadsheetID) + "/export"

	return retr.Do(ctx, c.rtr, func(ctx context.Context) ([]byte, error) {
		resp, err := c.cl.R().SetContext(ctx).SetQueryParams(query).Get(u)
		if err != nil {
			return nil, err
		}
		switch code := resp.StatusCode(); {
		case code == http.StatusOK:
		case code == http.StatusTooManyRequests || code >= http.StatusInternalServerError:
			return nil, fmt.Errorf("%w: export %s gid %d: %s", prjerrors.ErrSheetUnavailable, spreadsheetID, gid, resp.Status())
		default:
			return nil, fmt.Errorf("%w: %s gid %d: %s", prjerrors.ErrExportFailed, spreadsheetID, gid, resp.Status())
		}
		return resp.Body(), nil
	})
}
