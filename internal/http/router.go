package api

import (
	"log"
	stdhttp "net/http"

	"albahr-backend/internal/bot"
	intconfig "albahr-backend/internal/config"
	h "albahr-backend/internal/http/handlers"
	"albahr-backend/internal/http/middleware"
	"albahr-backend/internal/services"
	"albahr-backend/internal/sheets"
	"albahr-backend/internal/store"
	"albahr-backend/internal/whatsapp"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps carries everything the routes need, wired once in main.
type Deps struct {
	Env      intconfig.Env
	Variant  intconfig.Variant
	Engine   *bot.Engine
	Client   *whatsapp.Client
	Bookings *sheets.Store
	Sessions *store.SessionStore
	Chats    *store.ChatStore
	Admin    *store.AdminTracker
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), corsConfig(d.Env))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	system := h.SystemHandler{Env: d.Env, Variant: d.Variant, Sessions: d.Sessions, Chats: d.Chats, Admin: d.Admin}
	r.GET("/health", system.Health)
	r.GET("/api/health", system.Health)

	webhook := h.WebhookHandler{VerifyToken: d.Env.VerifyToken, Bot: d.Engine}
	r.GET("/webhook", webhook.Verify)
	r.POST("/webhook", webhook.Receive)

	api := r.Group("/api")
	{
		if d.Env.AdminJWTSecret != "" && d.Env.AdminPassHash != "" {
			auth := h.AuthHandler{Env: d.Env}
			api.POST("/auth/login", auth.Login)
		}

		admin := api.Group("")
		admin.Use(middleware.RequireAdmin(d.Env.AdminJWTSecret))

		leads := h.LeadsHandler{Bookings: d.Bookings}
		admin.GET("/leads", leads.List)
		// legacy path
		admin.GET("/bookings", leads.List)

		payments := h.PaymentsHandler{Bookings: d.Bookings}
		admin.POST("/bookings/:id/payment", payments.Update)

		capacity := h.CapacityHandler{Bookings: d.Bookings, Variant: d.Variant}
		admin.GET("/capacity/:date/:type", capacity.Get)

		broadcast := h.BroadcastHandler{Service: services.BroadcastService{
			Sender:   d.Client,
			Bookings: d.Bookings,
		}}
		admin.POST("/broadcast", broadcast.Send)

		chat := h.ChatHandler{Chats: d.Chats, Admin: d.Admin, Sender: d.Client}
		admin.GET("/chat/users", chat.Users)
		admin.GET("/chat/:phone/messages", chat.Messages)
		admin.POST("/chat/:phone/send", chat.SendMessage)
		// legacy paths
		admin.GET("/chat_users", chat.Users)
		admin.GET("/user_messages/:phone", chat.Messages)
		admin.POST("/send_message", chat.SendMessageLegacy)

		sessions := h.SessionsHandler{Sessions: d.Sessions}
		admin.GET("/user_session/:phone", sessions.Get)
		admin.GET("/active_sessions", sessions.List)

		reports := h.ReportsHandler{Service: services.ReportService{
			Bookings: d.Bookings,
			Variant:  d.Variant,
			Headers:  d.Bookings.Headers(),
		}}
		admin.GET("/report/:date", reports.CSV)
		admin.GET("/report/:date/pdf", reports.PDF)
	}

	return r
}

// corsConfig allows the dashboard origin(s); with nothing configured it
// stays wide open, matching how the dashboard has always been served.
func corsConfig(env intconfig.Env) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", "X-Request-ID")
	if len(env.CORSOrigins) > 0 {
		cfg.AllowOrigins = env.CORSOrigins
	} else {
		cfg.AllowAllOrigins = true
	}
	return cors.New(cfg)
}
