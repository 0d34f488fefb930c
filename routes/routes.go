package routes

import (
	"net/http"

	"github.com/atanum62/shyama-erp-sub000/handlers"
)

// CORS middleware
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*") // Replace * with your domain in production
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func handle(pattern string, fn http.HandlerFunc) {
	http.Handle(pattern, withCORS(http.HandlerFunc(handlers.RecoverWrapper(fn))))
}

func SetupRoutes(
	userHandler *handlers.UserHandler,
	lotHandler *handlers.LotHandler,
	inspectionHandler *handlers.InspectionHandler,
	returnHandler *handlers.ReturnHandler,
	statsHandler *handlers.StatsHandler,
	partyHandler *handlers.PartyHandler,
	profileHandler *handlers.ProfileHandler,
	pdfHandler *handlers.PDFHandler,
) {
	// User routes
	handle("/signup", userHandler.Signup)
	handle("/login", userHandler.Login)

	// Lot routes
	handle("/lots", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			lotHandler.CreateLot(w, r)
		case http.MethodGet:
			lotHandler.GetAllLots(w, r)
		case http.MethodDelete:
			lotHandler.DeleteLot(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	handle("/lots/item", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			lotHandler.DeleteLotItem(w, r)
			return
		}
		w.WriteHeader(http.StatusMethodNotAllowed)
	})

	// Get lot by ID
	handle("/lots/", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Path[len("/lots/"):]
		if id != "" {
			lotHandler.GetLotByID(w, r, id)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	// Inspection state machine + bulk color-group actions
	handle("/inspection/approve", inspectionHandler.Approve)
	handle("/inspection/reject", inspectionHandler.Reject)
	handle("/inspection/reset", inspectionHandler.Reset)
	handle("/inspection/reweigh", inspectionHandler.Reweigh)
	handle("/inspection/groups", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			inspectionHandler.Groups(w, r)
		case http.MethodGet:
			inspectionHandler.ListGroups(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	// Return / rereceive sub-flow
	handle("/returns/dispatch", returnHandler.Dispatch)
	handle("/returns/rereceive", returnHandler.Rereceive)
	handle("/returns/archive", returnHandler.Archive)
	handle("/returns/history", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			returnHandler.History(w, r)
		case http.MethodDelete:
			returnHandler.DeleteHistory(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	handle("/returns/pdf", pdfHandler.ReturnChallanPDF)

	// Dashboard
	handle("/dashboard", statsHandler.Dashboard)

	// Party master
	handle("/parties", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			partyHandler.CreateParty(w, r)
		case http.MethodGet:
			partyHandler.ListParties(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	// Mill profile
	handle("/profile", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			profileHandler.SaveProfile(w, r)
		case http.MethodGet:
			profileHandler.GetProfile(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
}
