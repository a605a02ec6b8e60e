package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) JWTMiddlewareWithRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return app.JWTMiddleware(next, requiredRole)
	}
}

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("user"))
	adminAuthMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("admin"))

	mux := pat.New()

	// Auth
	mux.Post("/api/auth/register", standardMiddleware.ThenFunc(app.userHandler.Register))
	mux.Post("/api/auth/sign_in", standardMiddleware.ThenFunc(app.userHandler.SignIn))
	mux.Post("/api/auth/google", standardMiddleware.ThenFunc(app.userHandler.GoogleSignIn))
	mux.Post("/api/auth/logout", standardMiddleware.ThenFunc(app.userHandler.Logout))
	mux.Get("/api/auth/me", authMiddleware.ThenFunc(app.userHandler.Me))

	// Cars. More specific paths first, pat matches in registration order.
	mux.Post("/api/cars", authMiddleware.ThenFunc(app.carHandler.CreateCar))
	mux.Get("/api/cars", standardMiddleware.ThenFunc(app.carHandler.GetFilteredCars))
	mux.Get("/api/cars/public/approved", standardMiddleware.ThenFunc(app.carHandler.GetApprovedCars))
	mux.Get("/api/my/cars", authMiddleware.ThenFunc(app.carHandler.GetMyCars))
	mux.Get("/api/cars/:id/edit", authMiddleware.ThenFunc(app.carHandler.GetCarForEdit))
	mux.Get("/api/cars/:id/contact", standardMiddleware.ThenFunc(app.contactHandler.GetContactByCar))
	mux.Post("/api/cars/:id/approve", adminAuthMiddleware.ThenFunc(app.carHandler.ApproveCar))
	mux.Get("/api/cars/:id", standardMiddleware.ThenFunc(app.carHandler.GetCarByID))
	mux.Put("/api/cars/:id", authMiddleware.ThenFunc(app.carHandler.UpdateCar))
	mux.Del("/api/cars/:id", authMiddleware.ThenFunc(app.carHandler.DeleteCar))
	mux.Get("/images/cars/:filename", http.HandlerFunc(app.carHandler.ServeCarImage))

	// Contacts
	mux.Get("/api/contacts/me", authMiddleware.ThenFunc(app.contactHandler.GetMyContact))
	mux.Put("/api/contacts/me", authMiddleware.ThenFunc(app.contactHandler.SaveContact))
	mux.Get("/api/contacts/public/:user_id", standardMiddleware.ThenFunc(app.contactHandler.GetPublicContact))

	// Favorites
	mux.Get("/api/favorites/ids", authMiddleware.ThenFunc(app.favoriteHandler.GetFavoriteIDs))
	mux.Get("/api/favorites/check/:car_id", authMiddleware.ThenFunc(app.favoriteHandler.CheckFavorite))
	mux.Get("/api/favorites", authMiddleware.ThenFunc(app.favoriteHandler.GetFavorites))
	mux.Post("/api/favorites/:car_id", authMiddleware.ThenFunc(app.favoriteHandler.AddToFavorites))
	mux.Del("/api/favorites/:car_id", authMiddleware.ThenFunc(app.favoriteHandler.RemoveFromFavorites))
	mux.Get("/api/cars/:car_id/favorite_count", standardMiddleware.ThenFunc(app.favoriteHandler.GetFavoriteCount))

	// Views
	mux.Post("/api/cars/:car_id/view", standardMiddleware.ThenFunc(app.viewHandler.IncrementView))
	mux.Get("/api/cars/:car_id/views", standardMiddleware.ThenFunc(app.viewHandler.GetViewCount))
	mux.Post("/api/views/batch", standardMiddleware.ThenFunc(app.viewHandler.GetViewCounts))

	// References
	mux.Get("/api/brands", standardMiddleware.ThenFunc(app.referenceHandler.GetBrands))
	mux.Get("/api/brands/:brand_id/models", standardMiddleware.ThenFunc(app.referenceHandler.GetModelsByBrand))
	mux.Get("/api/years", standardMiddleware.ThenFunc(app.referenceHandler.GetYears))
	mux.Get("/api/drive_types", standardMiddleware.ThenFunc(app.referenceHandler.GetDriveTypes))
	mux.Post("/api/brands", adminAuthMiddleware.ThenFunc(app.referenceHandler.CreateBrand))
	mux.Put("/api/brands/:id", adminAuthMiddleware.ThenFunc(app.referenceHandler.UpdateBrand))
	mux.Del("/api/brands/:id", adminAuthMiddleware.ThenFunc(app.referenceHandler.DeleteBrand))
	mux.Post("/api/models", adminAuthMiddleware.ThenFunc(app.referenceHandler.CreateModel))
	mux.Put("/api/models/:id", adminAuthMiddleware.ThenFunc(app.referenceHandler.UpdateModel))
	mux.Del("/api/models/:id", adminAuthMiddleware.ThenFunc(app.referenceHandler.DeleteModel))

	return standardMiddleware.Then(mux)
}
