// Package main boots the salon management HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/fairyhunter13/salon-management-service/internal/booking"
	"github.com/fairyhunter13/salon-management-service/internal/config"
	"github.com/fairyhunter13/salon-management-service/internal/events"
	httpapi "github.com/fairyhunter13/salon-management-service/internal/http"
	"github.com/fairyhunter13/salon-management-service/internal/inventory"
	"github.com/fairyhunter13/salon-management-service/internal/ledger"
	"github.com/fairyhunter13/salon-management-service/internal/obs"
	"github.com/fairyhunter13/salon-management-service/internal/orders"
	"github.com/fairyhunter13/salon-management-service/internal/shifts"
	"github.com/fairyhunter13/salon-management-service/internal/store"
)

func main() {
	cfg := config.Load()
	obs.InitLogger()
	defer obs.Sync()
	obs.Logger.Info("service_starting")

	products := store.NewProducts()
	orderStore := store.NewOrders()
	appointments := store.NewAppointments()
	shiftStore := store.NewShifts()
	suppliers := store.NewSuppliers()
	imports := store.NewImportOrders()
	stock := ledger.New(products)

	var pub events.Publisher = events.LogPublisher{}
	var kafkaPub *events.KafkaPublisher
	if cfg.KafkaBroker != "" {
		kafkaPub = events.NewKafkaPublisher(cfg.KafkaBroker, cfg.KafkaTopic)
		pub = kafkaPub
		obs.Logger.Info("kafka_publisher_enabled",
			zap.String("broker", cfg.KafkaBroker),
			zap.String("topic", cfg.KafkaTopic),
		)
	}
	dispatcher := events.NewDispatcher(pub, cfg.EventBuffer, cfg.PublishTimeout)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	dispatcher.Start(ctx, cfg.EventWorkers)

	orderMgr := orders.NewManager(orderStore, stock, dispatcher)
	bookingMgr := booking.NewManager(appointments, dispatcher)
	shiftReg := shifts.NewRegistry(shiftStore, dispatcher)
	inv := inventory.NewService(products, orderStore, suppliers, imports, stock, dispatcher, cfg.LowStockThreshold)

	app := httpapi.NewApp(cfg, orderMgr, bookingMgr, shiftReg, inv, dispatcher)
	mux := httpapi.NewRouter(app)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		obs.Logger.Info("http_listen", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			obs.Logger.Error("http_server_error", zap.Error(err))
			os.Exit(1)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	s := <-sigc
	obs.Logger.Info("shutdown_signal", zap.String("signal", s.String()))

	app.StartShutdown()
	ctxDrain, cancelDrain := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelDrain()
	if drained := dispatcher.DrainUntil(ctxDrain); !drained {
		obs.Logger.Warn("shutdown_drain_timeout")
	} else {
		obs.Logger.Info("shutdown_drain_complete")
	}

	ctxSrv, cancelSrv := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelSrv()
	if err := srv.Shutdown(ctxSrv); err != nil {
		obs.Logger.Error("http_shutdown_error", zap.Error(err))
	}
	cancel()
	if kafkaPub != nil {
		if err := kafkaPub.Close(); err != nil {
			obs.Logger.Error("kafka_close_error", zap.Error(err))
		}
	}
	obs.Logger.Info("service_stopped")
}
