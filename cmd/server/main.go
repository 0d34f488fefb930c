package main

import (
	"fmt"
	"net/http"

	"github.com/atanum62/shyama-erp-sub000/config"
	"github.com/atanum62/shyama-erp-sub000/db"
	"github.com/atanum62/shyama-erp-sub000/db/mongo"
	"github.com/atanum62/shyama-erp-sub000/db/postgres"
	"github.com/atanum62/shyama-erp-sub000/handlers"
	"github.com/atanum62/shyama-erp-sub000/inspection"
	"github.com/atanum62/shyama-erp-sub000/repository"
	"github.com/atanum62/shyama-erp-sub000/routes"
)

func main() {
	// Load config from .env or config file
	cfg := config.LoadConfig()

	var lotRepo repository.LotRepository
	var recordRepo repository.ReturnRecordRepository
	var userRepo repository.UserRepository
	var partyRepo repository.PartyRepository
	var profileRepo repository.ProfileRepository

	switch cfg.DBType {
	case "postgres":
		// Run migrations first
		db.RunMigrations()

		pg := postgres.NewPostgresDB(cfg.PostgresURL)
		if err := pg.Connect(); err != nil {
			panic(err)
		}
		defer pg.Disconnect()

		lotRepo = repository.NewPostgresLotRepo(pg.Conn)
		recordRepo = repository.NewPostgresReturnRecordRepo(pg.Conn)
		userRepo = repository.NewPostgresUserRepo(pg.Conn)
		partyRepo = repository.NewPostgresPartyRepo(pg.Conn)
		profileRepo = repository.NewPostgresProfileRepo(pg.Conn)

	case "mongo":
		mg := mongo.NewMongoDB(cfg.MongoURL)
		if err := mg.Connect(); err != nil {
			panic(err)
		}
		defer mg.Disconnect()

		lotRepo = repository.NewMongoLotRepo(mg.Client)
		recordRepo = repository.NewMongoReturnRecordRepo(mg.Client)
		userRepo = repository.NewMongoUserRepo(mg.Client)
		partyRepo = repository.NewMongoPartyRepo(mg.Client)
		profileRepo = repository.NewMongoProfileRepo(mg.Client)

	default:
		panic("DB_TYPE not supported")
	}

	// Inspection core over the lot store
	svc := inspection.NewService(lotRepo, recordRepo)

	// Handlers
	userHandler := &handlers.UserHandler{Repo: userRepo}
	lotHandler := &handlers.LotHandler{Repo: lotRepo}
	inspectionHandler := &handlers.InspectionHandler{Service: svc}
	returnHandler := &handlers.ReturnHandler{Service: svc, Records: recordRepo}
	statsHandler := &handlers.StatsHandler{Service: svc}
	partyHandler := &handlers.PartyHandler{Repo: partyRepo}
	profileHandler := &handlers.ProfileHandler{Repo: profileRepo}

	// PDF handler with combined repository
	pdfRepo := &repository.PDFRepository{
		LotRepo:     lotRepo,
		ProfileRepo: profileRepo,
	}
	pdfHandler := &handlers.PDFHandler{Repo: pdfRepo, SavePath: cfg.PDFSavePath}

	// Setup routes including PDF
	routes.SetupRoutes(userHandler, lotHandler, inspectionHandler, returnHandler,
		statsHandler, partyHandler, profileHandler, pdfHandler)

	port := cfg.Port
	fmt.Printf("Server running on port %s\n", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		panic(err)
	}
}
