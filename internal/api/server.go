package api

import (
	"context"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/yizeng/gab/gin/gorm/event-manager/docs"
	v1 "github.com/yizeng/gab/gin/gorm/event-manager/internal/api/handler/v1"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/api/middleware"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/config"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/pkg/googleauth"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/pkg/payment"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/repository"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/repository/dao"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	// nil when caching is disabled.
	redis   *redis.Client
	limiter *middleware.RateLimiter
}

type repositories struct {
	users         *repository.UserRepository
	events        *repository.EventRepository
	tickets       *repository.TicketRepository
	registrations *repository.RegistrationRepository
	forum         *repository.ForumRepository
	polls         *repository.PollRepository
	qa            *repository.QARepository
	notifications *repository.NotificationRepository
}

func newRepositories(db *gorm.DB) *repositories {
	return &repositories{
		users:         repository.NewUserRepository(dao.NewUserDAO(db)),
		events:        repository.NewEventRepository(dao.NewEventDAO(db)),
		tickets:       repository.NewTicketRepository(dao.NewTicketDAO(db)),
		registrations: repository.NewRegistrationRepository(dao.NewRegistrationDAO(db)),
		forum:         repository.NewForumRepository(dao.NewForumPostDAO(db)),
		polls:         repository.NewPollRepository(dao.NewPollDAO(db)),
		qa:            repository.NewQARepository(dao.NewQADAO(db)),
		notifications: repository.NewNotificationRepository(dao.NewNotificationDAO(db)),
	}
}

type handlers struct {
	auth         *v1.AuthHandler
	user         *v1.UserHandler
	event        *v1.EventHandler
	ticket       *v1.TicketHandler
	registration *v1.RegistrationHandler
	payment      *v1.PaymentHandler
	forum        *v1.ForumHandler
	poll         *v1.PollHandler
	qa           *v1.QAHandler
	notification *v1.NotificationHandler
}

// NewServer wires every handler. rdb may be nil. ctx bounds the lifetime of
// background goroutines such as the rate limiter janitor.
func NewServer(ctx context.Context, conf *config.AppConfig, db *gorm.DB, rdb *redis.Client, gateway payment.Gateway) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config:  conf,
		Router:  engine,
		redis:   rdb,
		limiter: middleware.NewRateLimiter(ctx, *conf.RateLimit),
	}

	s.MountMiddlewares()
	s.MountHandlers(s.initHandlers(newRepositories(db), gateway))

	return s
}

func (s *Server) initHandlers(repos *repositories, gateway payment.Gateway) handlers {
	userSvc := service.NewUserService(repos.users, repos.events, repos.registrations)

	return handlers{
		auth: v1.NewAuthHandler(
			s.Config.API,
			service.NewAuthService(repos.users, googleauth.NewIDTokenVerifier(s.Config.API.GoogleClientID)),
		),
		user:  v1.NewUserHandler(userSvc),
		event: v1.NewEventHandler(service.NewEventService(repos.events, repos.registrations), userSvc),
		ticket: v1.NewTicketHandler(
			service.NewTicketService(repos.tickets, repos.events), userSvc,
		),
		registration: v1.NewRegistrationHandler(
			service.NewRegistrationService(repos.registrations, repos.events, repos.tickets), userSvc,
		),
		payment: v1.NewPaymentHandler(
			service.NewPaymentService(repos.registrations, repos.events, repos.tickets, gateway), userSvc,
		),
		forum:        v1.NewForumHandler(service.NewForumService(repos.forum, repos.events), userSvc),
		poll:         v1.NewPollHandler(service.NewPollService(repos.polls, repos.events), userSvc),
		qa:           v1.NewQAHandler(service.NewQAService(repos.qa, repos.events), userSvc),
		notification: v1.NewNotificationHandler(service.NewNotificationService(repos.notifications, repos.events), userSvc),
	}
}

func (s *Server) MountMiddlewares() {
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.RequestLogger())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

// publicReads is the chain of routes anyone may read. Anonymous responses are
// cached when redis is configured.
func (s *Server) publicReads(authn *middleware.Authenticator) []gin.HandlerFunc {
	chain := []gin.HandlerFunc{authn.OptionalJWT()}
	if s.redis != nil {
		chain = append(chain, middleware.ResponseCache(s.redis, s.Config.Redis.CacheTTL))
	}

	return chain
}

// writes is the chain of authenticated routes that may change cached reads.
func (s *Server) writes(authn *middleware.Authenticator) []gin.HandlerFunc {
	chain := []gin.HandlerFunc{authn.VerifyJWT()}
	if s.redis != nil {
		chain = append(chain, middleware.NewCacheInvalidator(s.redis).PurgeOnWrite())
	}

	return chain
}

func (s *Server) MountHandlers(h handlers) {
	const basePath = "/api/v1"

	authn := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)
	verify := authn.VerifyJWT()
	api := s.Router.Group(basePath)

	auth := api.Group("/auth", s.limiter.PerClientIP())
	{
		auth.POST("/register", h.auth.HandleRegister)
		auth.POST("/login", h.auth.HandleLogin)
		auth.POST("/google", h.auth.HandleGoogleLogin)
		auth.GET("/profile", verify, h.auth.HandleGetProfile)
		auth.PUT("/profile", verify, h.auth.HandleUpdateProfile)
	}

	users := api.Group("/users", s.writes(authn)...)
	{
		users.GET("", h.user.HandleListUsers)
		users.GET("/:id", h.user.HandleGetUser)
		users.PUT("/:id", h.user.HandleUpdateUser)
		users.DELETE("/:id", h.user.HandleDeleteUser)
		users.GET("/:id/events", h.user.HandleGetUserEvents)
		users.GET("/:id/registrations", h.user.HandleGetUserRegistrations)
	}

	publicEvents := api.Group("/events", s.publicReads(authn)...)
	{
		publicEvents.GET("", h.event.HandleListEvents)
		publicEvents.GET("/:id", h.event.HandleGetEvent)
	}
	events := api.Group("/events", s.writes(authn)...)
	{
		events.POST("", h.event.HandleCreateEvent)
		events.GET("/my-events", h.event.HandleMyEvents)
		events.PUT("/:id", h.event.HandleUpdateEvent)
		events.DELETE("/:id", h.event.HandleDeleteEvent)
		events.GET("/:id/attendees", h.event.HandleGetAttendees)
	}

	publicTickets := api.Group("/tickets", s.publicReads(authn)...)
	{
		publicTickets.GET("/event/:eventId", h.ticket.HandleListEventTickets)
		publicTickets.GET("/:id", h.ticket.HandleGetTicket)
	}
	api.GET("/tickets/check-availability/:id", authn.OptionalJWT(), h.ticket.HandleCheckAvailability)
	tickets := api.Group("/tickets", s.writes(authn)...)
	{
		tickets.POST("", h.ticket.HandleCreateTicket)
		tickets.PUT("/:id", h.ticket.HandleUpdateTicket)
		tickets.DELETE("/:id", h.ticket.HandleDeleteTicket)
	}

	attendees := api.Group("/attendees", verify)
	{
		attendees.POST("/register", h.registration.HandleRegister)
		attendees.GET("/my-registrations", h.registration.HandleMyRegistrations)
		attendees.GET("/event/:eventId", h.registration.HandleEventRegistrations)
		attendees.GET("/:id", h.registration.HandleGetRegistration)
		attendees.PUT("/:id", h.registration.HandleUpdateRegistration)
		attendees.DELETE("/:id", h.registration.HandleCancelRegistration)
	}

	payments := api.Group("/payments", verify)
	{
		payments.POST("/process", h.payment.HandleProcessPayment)
		payments.GET("/history", h.payment.HandlePaymentHistory)
		payments.POST("/refund/:id", h.payment.HandleRefund)
		payments.GET("/:id", h.payment.HandlePaymentDetails)
	}

	forums := api.Group("/forums", verify)
	{
		forums.POST("", h.forum.HandleCreatePost)
		forums.GET("/my-posts", h.forum.HandleMyPosts)
		forums.GET("/event/:eventId", h.forum.HandleListEventPosts)
		forums.GET("/:id", h.forum.HandleGetPost)
		forums.PUT("/:id", h.forum.HandleUpdatePost)
		forums.DELETE("/:id", h.forum.HandleDeletePost)
		forums.POST("/:id/reply", h.forum.HandleReply)
	}

	polls := api.Group("/polls", verify)
	{
		polls.POST("", h.poll.HandleCreatePoll)
		polls.GET("/event/:eventId", h.poll.HandleListEventPolls)
		polls.GET("/:id", h.poll.HandleGetPoll)
		polls.GET("/:id/results", h.poll.HandlePollResults)
		polls.PUT("/:id", h.poll.HandleUpdatePoll)
		polls.DELETE("/:id", h.poll.HandleDeletePoll)
		polls.POST("/:id/vote", h.poll.HandleVote)
	}

	qa := api.Group("/qa", verify)
	{
		qa.POST("", h.qa.HandleAsk)
		qa.GET("/my-questions", h.qa.HandleMyQuestions)
		qa.GET("/event/:eventId", h.qa.HandleListEventQuestions)
		qa.GET("/:id", h.qa.HandleGetQuestion)
		qa.PUT("/:id", h.qa.HandleUpdateQuestion)
		qa.DELETE("/:id", h.qa.HandleDeleteQuestion)
		qa.POST("/:id/answer", h.qa.HandleAnswer)
	}

	notifications := api.Group("/notifications", verify)
	{
		notifications.POST("", h.notification.HandleCreateNotification)
		notifications.GET("", h.notification.HandleListNotifications)
		notifications.GET("/unread-count", h.notification.HandleUnreadCount)
		notifications.PUT("/read-all", h.notification.HandleMarkAllRead)
		notifications.GET("/:id", h.notification.HandleGetNotification)
		notifications.PUT("/:id/read", h.notification.HandleMarkRead)
		notifications.DELETE("/:id", h.notification.HandleDeleteNotification)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Event Manager API"
	docs.SwaggerInfo.Description = "Events, tickets, registrations and attendee engagement."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
