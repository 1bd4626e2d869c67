package prjerrors

import "errors"

var (
	ErrAlreadyExists = errors.New("user already exists")
	ErrNotExists     = errors.New("user does not exists or wrong password")
	ErrEmptyData     = errors.New("no content")

	ErrAuthCredsNotFound = errors.New("auth creds not found")
	ErrReqJSONParse      = errors.New("request json parse failed")
	ErrValidateLogPass   = errors.New("validate login or password false (maybe empty)")
	ErrValidateRequest   = errors.New("request validation failed")

	ErrNoFiles        = errors.New("no csv files uploaded")
	ErrNoKnownColumns = errors.New("csv has none of the known columns")
	ErrOrderNotFound  = errors.New("order not found")
	ErrSkuNotFound    = errors.New("sku not found in order")
	ErrNothingToPrint = errors.New("no lines with ship quantity above zero")
	ErrShipMethod     = errors.New("unknown ship method")

	ErrWorksheetNotFound = errors.New("worksheet not found")
	ErrSheetRequest      = errors.New("spreadsheet request failed")
	ErrSheetUnavailable  = errors.New("spreadsheet service unavailable")
	ErrExportFailed      = errors.New("document export failed")
	ErrBadPDF            = errors.New("exported document is not a usable pdf")
)
