package http

import (
	"database/sql"
	"log"
	"net/http"

	"github.com/CareBridge-Health/scheduling-service/internal/appointment"
	"github.com/CareBridge-Health/scheduling-service/internal/attendance"
	"github.com/CareBridge-Health/scheduling-service/internal/auth"
	"github.com/CareBridge-Health/scheduling-service/internal/doctor"
	"github.com/CareBridge-Health/scheduling-service/internal/messaging"
	"github.com/CareBridge-Health/scheduling-service/internal/telemetry"
	"github.com/CareBridge-Health/scheduling-service/internal/videocall"
	"github.com/CareBridge-Health/scheduling-service/internal/wallet"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

// SetupRouter initializes all routes for the application. metrics may be nil;
// operation counters and auth metrics are then skipped.
func SetupRouter(db *sql.DB, verifier *auth.Verifier, perms auth.Permissions, publisher messaging.PublisherInterface, metrics *telemetry.Metrics) *mux.Router {
	// nil *Metrics must stay a nil interface for the WithMetrics variants
	var appointmentMetrics appointment.MetricsRecorder
	var walletMetrics wallet.MetricsRecorder
	var attendanceMetrics attendance.MetricsRecorder
	var callMetrics videocall.MetricsRecorder
	var authMetrics auth.MetricsRecorder
	var permMetrics auth.PermissionMetricsRecorder
	if metrics != nil {
		appointmentMetrics = metrics
		walletMetrics = metrics
		attendanceMetrics = metrics
		callMetrics = metrics
		authMetrics = metrics
		permMetrics = metrics
	}

	// Wallet components (appointment cancel refunds go through the wallet
	// service, so it is built first)
	walletRepo := wallet.NewRepository(db)
	walletService := wallet.NewService(walletRepo, publisher)
	walletHandler := wallet.NewHandlerWithMetrics(walletService, walletMetrics)

	// External booking API client is optional
	var booking appointment.BookingFetcher
	if client, err := appointment.NewBookingClient(); err != nil {
		log.Printf("Booking API client disabled: %v", err)
	} else {
		booking = client
	}

	// Appointment components
	appointmentRepo := appointment.NewRepository(db)
	appointmentService := appointment.NewService(appointmentRepo, publisher, walletService, booking)
	appointmentHandler := appointment.NewHandlerWithMetrics(appointmentService, appointmentMetrics)

	// Attendance components
	attendanceRepo := attendance.NewRepository(db)
	attendanceService := attendance.NewService(attendanceRepo, publisher)
	attendanceHandler := attendance.NewHandlerWithMetrics(attendanceService, attendanceMetrics)

	// Video call components
	callRepo := videocall.NewRepository(db)
	callService := videocall.NewService(callRepo, appointmentService, publisher)
	callHandler := videocall.NewHandlerWithMetrics(callService, callMetrics)

	// Doctor directory: identity provider when configured, local fallback
	// otherwise
	var directory doctor.DirectoryInterface
	if keycloakAdmin, err := auth.NewKeycloakAdminClient(); err != nil {
		log.Printf("Keycloak directory disabled: %v", err)
	} else {
		directory = keycloakAdmin
	}
	doctorService := doctor.NewService(directory, doctor.NewRepository(db))
	doctorHandler := doctor.NewHandler(doctorService)

	r := mux.NewRouter()
	r.Use(otelmux.Middleware("scheduling-service"))
	r.Use(CORSMiddleware)

	// Public health endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"scheduling-service"}`))
	}).Methods("GET")

	protect := func(permission string, h http.HandlerFunc) http.Handler {
		return auth.MiddlewareWithMetrics(verifier, authMetrics)(
			auth.RequirePermissionWithMetrics(permission, perms, permMetrics)(h),
		)
	}

	// Form option sets
	r.Handle("/appointments/options", protect("appointment:view", appointmentHandler.GetOptions)).Methods("GET")
	r.Handle("/attendance/options", protect("attendance:view", attendanceHandler.GetOptions)).Methods("GET")

	// Appointment routes
	r.Handle("/appointments", protect("appointment:create", appointmentHandler.CreateAppointment)).Methods("POST")
	r.Handle("/appointments", protect("appointment:view", appointmentHandler.ListAppointments)).Methods("GET")
	r.Handle("/appointments/mine", protect("appointment:view", appointmentHandler.ListMyAppointments)).Methods("GET")
	r.Handle("/appointments/import", protect("appointment:create", appointmentHandler.ImportFromBooking)).Methods("POST")
	r.Handle("/appointments/{id}", protect("appointment:view", appointmentHandler.GetAppointment)).Methods("GET")
	r.Handle("/appointments/{id}", protect("appointment:update", appointmentHandler.UpdateAppointment)).Methods("PUT")
	r.Handle("/appointments/{id}/status", protect("appointment:update", appointmentHandler.UpdateStatus)).Methods("PATCH")
	r.Handle("/appointments/{id}", protect("appointment:delete", appointmentHandler.DeleteAppointment)).Methods("DELETE")

	// Video call routes
	r.Handle("/appointments/{id}/call", protect("call:start", callHandler.StartCall)).Methods("POST")
	r.Handle("/appointments/{id}/call", protect("call:view", callHandler.GetCall)).Methods("GET")
	r.Handle("/calls/{id}/end", protect("call:start", callHandler.EndCall)).Methods("POST")

	// Wallet routes
	r.Handle("/wallet", protect("wallet:view", walletHandler.GetWallet)).Methods("GET")
	r.Handle("/wallet/transactions", protect("wallet:view", walletHandler.ListTransactions)).Methods("GET")
	r.Handle("/wallet/deposit", protect("wallet:deposit", walletHandler.Deposit)).Methods("POST")
	r.Handle("/wallet/payments", protect("wallet:pay", walletHandler.RecordPayment)).Methods("POST")

	// Attendance routes
	r.Handle("/attendance", protect("attendance:register", attendanceHandler.Register)).Methods("POST")
	r.Handle("/attendance", protect("attendance:view", attendanceHandler.ListMine)).Methods("GET")
	r.Handle("/attendance/{id}", protect("attendance:register", attendanceHandler.Cancel)).Methods("DELETE")

	// Doctor directory
	r.Handle("/doctors", protect("doctor:view", doctorHandler.ListDoctors)).Methods("GET")

	return r
}
