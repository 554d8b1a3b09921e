package main

import (
	"github.com/quirino-git/fbs-plan/internal/bookings/repository"
	bookingsservice "github.com/quirino-git/fbs-plan/internal/bookings/service"
	"github.com/quirino-git/fbs-plan/internal/bookings/validator"
	"github.com/quirino-git/fbs-plan/internal/classify"
	"github.com/quirino-git/fbs-plan/internal/feed"
	planhandler "github.com/quirino-git/fbs-plan/internal/plan/handler"
	planservice "github.com/quirino-git/fbs-plan/internal/plan/service"
	"github.com/quirino-git/fbs-plan/pkg/app"
	"github.com/quirino-git/fbs-plan/pkg/config"
	"github.com/quirino-git/fbs-plan/pkg/events"
)

const ServiceName = "fbsplan"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	inventory, err := config.LoadInventory(cfg.InventoryFile)
	if err != nil {
		cfg.Log.Fatal("Failed to load inventory", "error", err, "file", cfg.InventoryFile)
	}
	cfg.Log.Info("Inventory loaded",
		"pitches", len(inventory.Pitches),
		"teams", len(inventory.Teams),
	)

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.KafkaTopic != "" {
		kafkaPublisher, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			cfg.Log.Fatal("Failed to create Kafka publisher", "error", err)
		}
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		cfg.Log.Info("Booking events enabled", "topic", cfg.KafkaTopic)
	}

	planSvc := initServices(cfg, inventory, publisher)

	refresher := planservice.NewRefresher(planSvc, cfg)
	if err := refresher.Start(); err != nil {
		cfg.Log.Fatal("Failed to start plan refresher", "error", err)
	}
	defer refresher.Stop()

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		planhandler.NewHealthHandler(cfg.Client.Mongo, cfg.Log),
		planhandler.NewPlanHandler(planSvc, cfg.Log),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config, inventory *config.Inventory, publisher events.Publisher) planservice.PlanService {
	classifier := classify.New(cfg.ClubName, cfg.TeamName, cfg.Log)
	if len(classifier.Tokens()) == 0 {
		cfg.Log.Warn("Club identity yields no match tokens, every fixture will classify as unknown",
			"club", cfg.ClubName,
			"team", cfg.TeamName,
		)
	}

	bookingRepo := repository.NewMongoBookingRepository(cfg)
	bookingValidator := validator.NewBookingValidator(cfg.Log)
	reconciler := bookingsservice.NewReconciler(bookingRepo, bookingValidator, publisher, inventory.Teams, cfg)

	fetcher := feed.NewHTTPFetcher(cfg.FeedTimeout)

	planSvc := planservice.NewPlanService(cfg, fetcher, classifier, bookingRepo, reconciler, inventory.Pitches)

	cfg.Log.Info("Plan service initialized",
		"database", cfg.MongoDatabaseName,
		"match_tokens", len(classifier.Tokens()),
	)
	return planSvc
}
