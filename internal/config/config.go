package config

import "time"

type Config struct {
	ServerAddr  string
	DatabaseDsn string

	CredentialsFile string
	SourceSheetID   string
	LabelTemplateID string
	PackingSlipID   string
	OrdersWorkbook  string
	LayoutFile      string

	// login:password pairs, comma separated
	Users string

	OrdersCacheTTL time.Duration
	SettleDelay    time.Duration
}

const (
	defaultSourceSheetID   = "1nb8gE9i3GmxquG93hLX0a5Kn_GoGH1uCESdVxtXnkv0"
	defaultLabelTemplateID = "1fUuCsIumgRAmJEt-FvvaXrjDaVTT6FJtGz162ZYIwLY"
	defaultPackingSlipID   = "1fr-Mjq0rkQadr-5nvaOK5YqyCo5Teye_wS4-P1UN7po"
)
