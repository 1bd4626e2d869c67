package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/sourcecd/warehouse/internal/config"
	"github.com/sourcecd/warehouse/internal/documents"
	"github.com/sourcecd/warehouse/internal/orders"
	"github.com/sourcecd/warehouse/internal/retr"
	"github.com/sourcecd/warehouse/internal/sheets"
	"github.com/sourcecd/warehouse/internal/storage"
)

const shutdownTimeout = 5 * time.Second

func initStore(ctx context.Context, store storage.Store, rtr *retr.Retr, users map[string]string) (string, error) {
	if err := retr.Exec(ctx, rtr, store.PopulateDB); err != nil {
		return "", fmt.Errorf("populate db: %w", err)
	}
	if err := retr.Exec(ctx, rtr, store.InitSecKey); err != nil {
		return "", fmt.Errorf("init secret key: %w", err)
	}
	seckey, err := retr.Do(ctx, rtr, store.GetSecKey)
	if err != nil {
		return "", fmt.Errorf("get secret key: %w", err)
	}
	if len(users) > 0 {
		if err := retr.Exec(ctx, rtr, func(ctx context.Context) error {
			return store.SeedUsers(ctx, users)
		}); err != nil {
			return "", fmt.Errorf("seed users: %w", err)
		}
	}
	return seckey, nil
}

// ordersSource picks the order database: a local workbook when configured,
// the Google spreadsheet otherwise.
func ordersSource(cfg config.Config, client *sheets.Client, tab string) (sheets.Opener, string, func(), error) {
	if cfg.OrdersWorkbook == "" {
		return client, cfg.SourceSheetID, func() {}, nil
	}
	wb, err := sheets.OpenWorkbook(cfg.OrdersWorkbook, tab)
	if err != nil {
		return nil, "", nil, err
	}
	slog.Info("orders from local workbook", slog.String("path", cfg.OrdersWorkbook))
	return sheets.Workbooks{wb.ID(): wb}, wb.ID(), func() { wb.Close() }, nil
}

func Run(ctx context.Context, cfg config.Config) error {
	rtr := retr.NewRetr()

	db, err := storage.NewDB(cfg.DatabaseDsn)
	if err != nil {
		return err
	}
	defer db.Close()

	seckey, err := initStore(ctx, db, rtr, config.ParseUsers(cfg.Users))
	if err != nil {
		return err
	}

	layout, err := config.LoadLayout(cfg.LayoutFile)
	if err != nil {
		return err
	}

	creds, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return fmt.Errorf("read credentials: %w", err)
	}
	client, err := sheets.NewServiceAccountClient(ctx, creds, rtr)
	if err != nil {
		return err
	}

	opener, sourceID, closeSource, err := ordersSource(cfg, client, layout.OrdersWorksheet)
	if err != nil {
		return err
	}
	defer closeSource()

	h := &handlers{
		seckey: seckey,
		store:  db,
		rtr:    rtr,
		repo:   orders.NewRepository(opener, sourceID, layout.OrdersWorksheet, cfg.OrdersCacheTTL),
		gen:    documents.NewGenerator(client, client, layout, cfg.LabelTemplateID, cfg.PackingSlipID, cfg.SettleDelay),
		now:    time.Now,
	}

	srv := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      webRouter(h),
		IdleTimeout:  time.Minute,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", slog.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
