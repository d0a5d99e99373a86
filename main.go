package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"propertydesk/collections"
	"propertydesk/commands"
	"propertydesk/config"
	"propertydesk/events"
	"propertydesk/handlers"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	app := pocketbase.New()
	busOpts := events.Options{URL: cfg.NATSURL, StoreDir: cfg.NATSStoreDir}

	app.RootCmd.AddCommand(commands.NewRentCommand(cfg.CurrencySymbol))
	app.RootCmd.AddCommand(commands.NewConfigCommand())
	app.RootCmd.AddCommand(commands.NewEventsCommand(busOpts))

	// The publisher is attached once the bus is up in OnServe.
	deps := handlers.NewDeps(cfg, nil)
	var bus *events.Bus

	// Create collections, seed demo data and start the event bus on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if cfg.SeedDemoData {
			if err := collections.Seed(app); err != nil {
				log.Printf("Warning: seed data failed: %v", err)
			}
		}
		if err := collections.MigrateUnitOccupancy(app); err != nil {
			log.Printf("Warning: unit occupancy migration failed: %v", err)
		}
		if err := collections.MigrateApplicationSlugs(app); err != nil {
			log.Printf("Warning: application slug migration failed: %v", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		bus, err = events.Start(ctx, busOpts)
		if err != nil {
			return fmt.Errorf("start event bus: %w", err)
		}
		deps.Publisher = bus
		if cfg.EmbeddedNATS() {
			log.Printf("events: embedded NATS store at %s", cfg.NATSStoreDir)
		}
		return se.Next()
	})

	app.OnTerminate().BindFunc(func(e *core.TerminateEvent) error {
		if bus != nil {
			if err := bus.Close(); err != nil {
				log.Printf("Warning: closing event bus: %v", err)
			}
		}
		return e.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		// Apply active property middleware globally
		se.Router.BindFunc(handlers.ActivePropertyMiddleware(app))

		// ── Property activation ──────────────────────────────────
		se.Router.GET("/properties", handlers.HandlePropertyList(app))
		se.Router.POST("/properties/{id}/activate", handlers.HandlePropertyActivate(app))
		se.Router.POST("/properties/deactivate", handlers.HandlePropertyDeactivate(app))

		// ── Lists ────────────────────────────────────────────────
		se.Router.GET("/units", handlers.HandleUnitList(app, deps))
		se.Router.GET("/faults", handlers.HandleFaultList(app))
		se.Router.GET("/contractors", handlers.HandleContractorList(app))
		se.Router.GET("/invoices", handlers.HandleInvoiceList(app, deps))
		se.Router.GET("/payments", handlers.HandlePaymentList(app, deps))

		// ── Lease wizard ─────────────────────────────────────────
		se.Router.GET("/leases/new", handlers.HandleLeaseWizardStart(app, deps))
		se.Router.GET("/leases/wizard/{sid}", handlers.HandleLeaseWizardView(app, deps))
		se.Router.POST("/leases/wizard/{sid}/field", handlers.HandleLeaseWizardField(app, deps))
		se.Router.POST("/leases/wizard/{sid}/next", handlers.HandleLeaseWizardNext(app, deps))
		se.Router.POST("/leases/wizard/{sid}/prev", handlers.HandleLeaseWizardPrevious(app, deps))
		se.Router.POST("/leases/wizard/{sid}/jump/{step}", handlers.HandleLeaseWizardJump(app, deps))
		se.Router.POST("/leases/wizard/{sid}/charges", handlers.HandleLeaseChargeAdd(app, deps))
		se.Router.POST("/leases/wizard/{sid}/charges/{cid}/delete", handlers.HandleLeaseChargeRemove(app, deps))
		se.Router.POST("/leases/wizard/{sid}/cancel", handlers.HandleLeaseWizardCancel(app, deps))
		se.Router.POST("/leases/wizard/{sid}/submit", handlers.HandleLeaseWizardSubmit(app, deps))

		// ── Leases ───────────────────────────────────────────────
		se.Router.GET("/leases", handlers.HandleLeaseList(app, deps))
		se.Router.GET("/leases/{id}/export/excel", handlers.HandleLeaseExportExcel(app, deps))
		se.Router.GET("/leases/{id}/export/pdf", handlers.HandleLeaseExportPDF(app, deps))
		se.Router.GET("/leases/{id}", handlers.HandleLeaseView(app, deps))

		// ── Application wizard ───────────────────────────────────
		se.Router.GET("/applications", handlers.HandleApplicationList(app, deps))
		se.Router.GET("/applications/new", handlers.HandleApplicationWizardStart(app, deps))
		se.Router.GET("/applications/wizard/{sid}", handlers.HandleApplicationWizardView(app, deps))
		se.Router.POST("/applications/wizard/{sid}/field", handlers.HandleApplicationWizardField(app, deps))
		se.Router.POST("/applications/wizard/{sid}/next", handlers.HandleApplicationWizardNext(app, deps))
		se.Router.POST("/applications/wizard/{sid}/prev", handlers.HandleApplicationWizardPrevious(app, deps))
		se.Router.POST("/applications/wizard/{sid}/jump/{step}", handlers.HandleApplicationWizardJump(app, deps))
		se.Router.POST("/applications/wizard/{sid}/cancel", handlers.HandleApplicationWizardCancel(app, deps))
		se.Router.POST("/applications/wizard/{sid}/submit", handlers.HandleApplicationWizardSubmit(app, deps))

		// Redirect home to the properties list
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/properties")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
