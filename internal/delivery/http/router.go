package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"crewup/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	userController *controllers.UserController,
	groupController *controllers.GroupController,
	bookingController *controllers.BookingController,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Users
	mux.HandleFunc("POST /users", userController.UpsertUser)

	// Groups
	mux.HandleFunc("GET /groups", groupController.ListGroups)
	mux.HandleFunc("GET /groups/featured", groupController.FeaturedGroups)
	mux.HandleFunc("GET /groups/mine", groupController.MyGroups)
	mux.HandleFunc("GET /groups/{groupID}", groupController.GroupDetail)
	mux.HandleFunc("POST /groups", groupController.CreateGroup)
	mux.HandleFunc("PATCH /groups/{groupID}", groupController.UpdateGroup)
	mux.HandleFunc("DELETE /groups/{groupID}", groupController.DeleteGroup)

	// Bookings
	mux.HandleFunc("POST /bookings", bookingController.CreateBooking)
	mux.HandleFunc("GET /bookings/mine", bookingController.MyBookings)
	mux.HandleFunc("DELETE /bookings/{bookingID}", bookingController.DeleteBooking)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
