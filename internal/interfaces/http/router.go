package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orangecat-xyz/orangecat-api/internal/application/ai"
	"github.com/orangecat-xyz/orangecat-api/internal/application/auth"
	"github.com/orangecat-xyz/orangecat-api/internal/application/bitcoin"
	"github.com/orangecat-xyz/orangecat-api/internal/application/bookings"
	"github.com/orangecat-xyz/orangecat-api/internal/application/payments"
	"github.com/orangecat-xyz/orangecat-api/internal/application/usecase"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/entity"
	"github.com/orangecat-xyz/orangecat-api/internal/infrastructure/feeds"
	"github.com/orangecat-xyz/orangecat-api/pkg/config"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	ProjectUC      *usecase.ProjectUseCase
	ProductUC      *usecase.ProductUseCase
	ServiceUC      *usecase.ServiceUseCase
	LoanUC         *usecase.LoanUseCase
	AssetUC        *usecase.AssetUseCase
	CauseUC        *usecase.CauseUseCase
	WishlistUC     *usecase.WishlistUseCase
	OrganizationUC *usecase.OrganizationUseCase
	SocialUC       *usecase.SocialUseCase
	BookingUC      *bookings.UseCase
	PaymentUC      *payments.UseCase
	AIUC           *ai.UseCase
	BitcoinUC      *bitcoin.UseCase
	RSS            *feeds.RSSBuilder
	JWTSecret      string
	RateLimit      config.RateLimitConfig
}

// Router registra las rutas de la API bajo /api/v1. Las lecturas de catálogo
// y las páginas públicas no requieren token; todo lo demás sí.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	authMW := AuthMiddleware(deps.JWTSecret)
	// La cuota corre después de auth para poder acotar por usuario; en rutas
	// públicas acota por IP.
	rl := RateLimitMiddleware(deps.RateLimit)

	// Auth y perfiles
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", rl, authHandler.Register)
	authGroup.Post("/login", rl, authHandler.Login)
	api.Get("/profiles/:username", authHandler.GetProfile)
	api.Put("/profiles/me", authMW, rl, authHandler.UpdateProfile)

	// Moderación: solo admin
	admin := api.Group("/admin", authMW, RequireRole(entity.RoleAdmin))
	admin.Patch("/profiles/:id/status", rl, authHandler.SetProfileStatus)

	// Projects + bitcoin/transparencia anidados
	projectHandler := NewProjectHandler(deps.ProjectUC)
	bitcoinHandler := NewBitcoinHandler(deps.BitcoinUC)
	projects := api.Group("/projects")
	projects.Get("/", projectHandler.ListPublic)
	projects.Get("/mine", authMW, projectHandler.ListMine)
	projects.Get("/slug/:slug", projectHandler.GetBySlug)
	projects.Post("/", authMW, rl, projectHandler.Create)
	projects.Get("/:id", projectHandler.GetByID)
	projects.Put("/:id", authMW, rl, projectHandler.Update)
	projects.Patch("/:id/status", authMW, rl, projectHandler.ChangeStatus)
	projects.Delete("/:id", authMW, rl, projectHandler.Delete)
	projects.Get("/:id/bitcoin/balance", bitcoinHandler.Balance)
	projects.Post("/:id/bitcoin/refresh", authMW, rl, bitcoinHandler.Refresh)
	projects.Get("/:id/bitcoin/transactions", bitcoinHandler.ListTransactions)
	projects.Get("/:id/bitcoin/transactions/:txid/verify", bitcoinHandler.VerifyTransaction)
	projects.Post("/:id/transparency/report", rl, bitcoinHandler.Report)
	projects.Post("/:id/transparency/report.pdf", rl, bitcoinHandler.ReportPDF)
	api.Post("/transparency/score", rl, bitcoinHandler.Score)

	// Marketplace: products, services, loans, assets, causes
	registerCatalog(api, "/products", authMW, rl, NewProductHandler(deps.ProductUC))
	registerCatalog(api, "/services", authMW, rl, NewServiceHandler(deps.ServiceUC))
	registerCatalog(api, "/loans", authMW, rl, NewLoanHandler(deps.LoanUC))
	registerCatalog(api, "/assets", authMW, rl, NewAssetHandler(deps.AssetUC))
	registerCatalog(api, "/causes", authMW, rl, NewCauseHandler(deps.CauseUC))

	// Wishlists
	wishlistHandler := NewWishlistHandler(deps.WishlistUC)
	wishlists := api.Group("/wishlists")
	wishlists.Post("/", authMW, rl, wishlistHandler.Create)
	wishlists.Get("/mine", authMW, wishlistHandler.ListMine)
	wishlists.Get("/:id", wishlistHandler.GetByID)
	wishlists.Put("/:id", authMW, rl, wishlistHandler.Update)
	wishlists.Patch("/:id/status", authMW, rl, wishlistHandler.ChangeStatus)
	wishlists.Delete("/:id", authMW, rl, wishlistHandler.Delete)
	wishlists.Post("/:id/items", authMW, rl, wishlistHandler.AddItem)
	wishlists.Delete("/:id/items/:itemID", authMW, rl, wishlistHandler.RemoveItem)

	// Organizations, groups y proposals
	orgHandler := NewOrganizationHandler(deps.OrganizationUC)
	orgs := api.Group("/organizations")
	orgs.Get("/", orgHandler.List)
	orgs.Post("/", authMW, rl, orgHandler.Create)
	orgs.Get("/:id", orgHandler.GetByID)
	orgs.Put("/:id", authMW, rl, orgHandler.Update)
	orgs.Post("/:id/groups", authMW, rl, orgHandler.CreateGroup)
	orgs.Get("/:id/groups", orgHandler.ListGroups)
	groups := api.Group("/groups")
	groups.Post("/:id/members", authMW, rl, orgHandler.AddMember)
	groups.Get("/:id/members", orgHandler.ListMembers)
	groups.Delete("/:id/members/:actorID", authMW, rl, orgHandler.RemoveMember)
	groups.Post("/:id/proposals", authMW, rl, orgHandler.CreateProposal)
	groups.Get("/:id/proposals", orgHandler.ListProposals)
	proposals := api.Group("/proposals")
	proposals.Get("/:id", orgHandler.GetProposal)
	proposals.Post("/:id/votes", authMW, rl, orgHandler.Vote)

	// Bookings
	bookingHandler := NewBookingHandler(deps.BookingUC)
	bookingsGroup := api.Group("/bookings")
	bookingsGroup.Post("/availability", rl, bookingHandler.Availability)
	bookingsGroup.Post("/", authMW, rl, bookingHandler.Create)
	bookingsGroup.Get("/mine", authMW, bookingHandler.ListMine)
	bookingsGroup.Post("/:id/confirm", authMW, rl, bookingHandler.Confirm)
	bookingsGroup.Post("/:id/cancel", authMW, rl, bookingHandler.Cancel)

	// Payments
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	paymentsGroup := api.Group("/payments", authMW, rl)
	paymentsGroup.Post("/", paymentHandler.Initiate)
	paymentsGroup.Get("/mine", paymentHandler.ListMine)
	paymentsGroup.Get("/ledger", paymentHandler.Ledger)
	paymentsGroup.Get("/:id", paymentHandler.GetByID)

	// AI
	aiHandler := NewAIHandler(deps.AIUC)
	aiGroup := api.Group("/ai")
	aiGroup.Get("/models", aiHandler.Models)
	aiGroup.Post("/chat", authMW, rl, aiHandler.Chat)
	aiGroup.Post("/assistants", authMW, rl, aiHandler.CreateAssistant)
	aiGroup.Get("/assistants", authMW, aiHandler.ListAssistants)
	aiGroup.Get("/assistants/:id", aiHandler.GetAssistant)
	aiGroup.Put("/assistants/:id", authMW, rl, aiHandler.UpdateAssistant)
	aiGroup.Delete("/assistants/:id", authMW, rl, aiHandler.DeleteAssistant)
	aiGroup.Get("/conversations", authMW, aiHandler.ListConversations)
	aiGroup.Get("/conversations/:id/messages", authMW, aiHandler.ListMessages)
	aiGroup.Get("/credits", authMW, aiHandler.Credits)

	// Social: follow, feed, timeline y RSS
	socialHandler := NewSocialHandler(deps.SocialUC, deps.RSS)
	social := api.Group("/social")
	social.Post("/follow", authMW, rl, socialHandler.Follow)
	social.Delete("/follow/:actorID", authMW, rl, socialHandler.Unfollow)
	social.Get("/feed", authMW, socialHandler.Feed)
	actors := api.Group("/actors")
	actors.Get("/:id/followers", socialHandler.ListFollowers)
	actors.Get("/:id/following", socialHandler.ListFollowing)
	actors.Get("/:id/timeline.rss", socialHandler.ActorRSS)
	actors.Get("/:id/timeline", socialHandler.ActorTimeline)
}

// catalogHandler operaciones comunes de los handlers del marketplace.
type catalogHandler interface {
	Create(c *fiber.Ctx) error
	GetByID(c *fiber.Ctx) error
	ListPublic(c *fiber.Ctx) error
	ListMine(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	ChangeStatus(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
}

// registerCatalog registra las rutas CRUD estándar de una entidad del
// marketplace: listados públicos sin token, escrituras con token.
func registerCatalog(api fiber.Router, prefix string, authMW, rl fiber.Handler, h catalogHandler) {
	g := api.Group(prefix)
	g.Get("/", h.ListPublic)
	g.Get("/mine", authMW, h.ListMine)
	g.Post("/", authMW, rl, h.Create)
	g.Get("/:id", h.GetByID)
	g.Put("/:id", authMW, rl, h.Update)
	g.Patch("/:id/status", authMW, rl, h.ChangeStatus)
	g.Delete("/:id", authMW, rl, h.Delete)
}
