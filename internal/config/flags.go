package config

import (
	"flag"
	"log"
	"net"
	"os"
	"strings"
	"time"
)

func SetEnvironmentVariables(config *Config) {
	a := os.Getenv("RUN_ADDRESS")
	d := os.Getenv("DATABASE_URI")

	if a != "" {
		if _, _, err := net.SplitHostPort(a); err != nil {
			log.Fatal("wrong server listen address")
		}
		config.ServerAddr = a
	}
	if d != "" {
		config.DatabaseDsn = d
	}

	for env, dst := range map[string]*string{
		"GOOGLE_APPLICATION_CREDENTIALS": &config.CredentialsFile,
		"SOURCE_SHEET_ID":                &config.SourceSheetID,
		"LABEL_TEMPLATE_ID":              &config.LabelTemplateID,
		"PACKING_SLIP_ID":                &config.PackingSlipID,
		"ORDERS_WORKBOOK":                &config.OrdersWorkbook,
		"LAYOUT_FILE":                    &config.LayoutFile,
		"PORTAL_USERS":                   &config.Users,
	} {
		if v := os.Getenv(env); v != "" {
			*dst = v
		}
	}

	if s := os.Getenv("SETTLE_DELAY"); s != "" {
		dur, err := time.ParseDuration(s)
		if err != nil {
			log.Fatal("wrong settle delay")
		}
		config.SettleDelay = dur
	}
}

func SetCmdlineFlags(config *Config) {
	flag.StringVar(&config.ServerAddr, "a", "localhost:8080", "Server bind addres and port")
	flag.StringVar(&config.DatabaseDsn, "d", "host=localhost database=warehouse sslmode=disable", "pg db connect address")
	flag.StringVar(&config.CredentialsFile, "c", "credentials.json", "google service account json")
	flag.StringVar(&config.SourceSheetID, "source", defaultSourceSheetID, "open orders spreadsheet id")
	flag.StringVar(&config.LabelTemplateID, "label", defaultLabelTemplateID, "label template spreadsheet id")
	flag.StringVar(&config.PackingSlipID, "slip", defaultPackingSlipID, "packing slip template spreadsheet id")
	flag.StringVar(&config.OrdersWorkbook, "workbook", "", "local xlsx used as orders database instead of google sheets")
	flag.StringVar(&config.LayoutFile, "layout", "", "yaml file overriding template cell layout")
	flag.StringVar(&config.Users, "users", "", "login:password pairs seeded into db, comma separated")
	flag.DurationVar(&config.OrdersCacheTTL, "cache-ttl", time.Minute, "open orders cache ttl")
	flag.DurationVar(&config.SettleDelay, "settle", 800*time.Millisecond, "wait between template update and export")
	flag.Parse()
}

// ParseUsers splits "login:pass,login2:pass2" into a map; malformed pairs are skipped.
func ParseUsers(s string) map[string]string {
	users := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		login, pass, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok || login == "" || pass == "" {
			continue
		}
		users[login] = pass
	}
	return users
}
