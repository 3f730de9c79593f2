package delivery

import (
	"github.com/go-chi/chi/v5"
	"github.com/saywith/saywith-server/internal/ports"
)

func RegisterRoutes(r chi.Router, hAuth *AuthHandler, auth ports.AuthService, hMsg *MessageHandler) {

	// pin gate
	r.Post("/api/login", hAuth.Login)

	r.Group(func(pr chi.Router) {
		pr.Use(AuthMiddleware(auth))

		pr.Get("/api/templates", hMsg.Templates)

		pr.Post("/api/messages", hMsg.Create)
		pr.Get("/api/messages/{id}", hMsg.Get)
		pr.Patch("/api/messages/{id}", hMsg.Update)
		pr.Get("/api/messages/{id}/qr.zip", hMsg.QRBundle)
	})
}
