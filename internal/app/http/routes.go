package routes

import (
	adminapi "ngo-portal/internal/api/admin"
	authapi "ngo-portal/internal/api/auth"
	blogapi "ngo-portal/internal/api/blog"
	donationsapi "ngo-portal/internal/api/donations"
	eventsapi "ngo-portal/internal/api/events"
	newsletterapi "ngo-portal/internal/api/newsletter"
	paymentapi "ngo-portal/internal/api/payment"
	programsapi "ngo-portal/internal/api/programs"
	registrationapi "ngo-portal/internal/api/registration"
	usersapi "ngo-portal/internal/api/users"
	"ngo-portal/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

// Deps carries the injected handlers for the payment workflow; everything
// else is package-level handlers over the shared DB.
type Deps struct {
	Payment      *paymentapi.Handler
	Registration *registrationapi.Handler
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public content
	r.GET("/api/blog", blogapi.ListPublishedPosts)
	r.GET("/api/blog/:slug", blogapi.GetPost)
	r.GET("/api/programs", programsapi.ListPrograms)
	r.GET("/api/programs/:slug", programsapi.GetProgram)
	r.GET("/api/events", eventsapi.ListUpcomingEvents)

	// Public forms (sanitized)
	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)
	public.GET("/verify", usersapi.VerifyEmail)
	public.POST("/resend-verification", authapi.ResendVerification)
	public.POST("/request-password-reset", authapi.RequestPasswordReset)
	public.POST("/reset-password", authapi.ResetPassword)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	public.POST("/api/newsletter/subscribe", newsletterapi.Subscribe)
	public.POST("/api/newsletter/unsubscribe", newsletterapi.Unsubscribe)
	public.POST("/api/events/:id/register", eventsapi.RegisterForEvent)
	public.POST("/api/donations", donationsapi.CreateDonation)

	// Registration workflow (sanitized public input)
	public.POST("/api/registration", deps.Registration.Start)
	public.GET("/api/registration/:id", deps.Registration.GetState)
	public.POST("/api/registration/:id/audience", deps.Registration.SelectAudience)
	public.PUT("/api/registration/:id/form", deps.Registration.UpdateForm)
	public.POST("/api/registration/:id/submit", deps.Registration.SubmitForm)
	public.POST("/api/registration/:id/back", deps.Registration.Back)
	public.POST("/api/registration/:id/order", deps.Registration.CreateOrder)
	public.POST("/api/registration/:id/complete", deps.Registration.Complete)
	public.POST("/api/registration/:id/cancel", deps.Registration.Cancel)

	// Direct payment endpoints (donation checkout and non-flow clients).
	// Proof fields are signatures/ids, never rendered as HTML, so these
	// stay outside the sanitizer.
	r.POST("/api/payment/order", deps.Payment.CreateOrder)
	r.POST("/api/payment/verify", deps.Payment.VerifyPayment)

	// Authenticated portal
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", usersapi.GetCurrentUser)
	auth.POST("/change-password", authapi.ChangePassword)

	// Admin portal
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/dashboard", adminapi.AdminDashboard)
	admin.GET("/memberships", adminapi.ListAllMemberships)
	admin.GET("/memberships/:id", adminapi.GetMembershipDetails)
	admin.GET("/donations", donationsapi.ListDonations)
	admin.GET("/newsletter", newsletterapi.ListSubscribers)

	admin.GET("/blog", blogapi.ListAllPosts)
	admin.POST("/blog", blogapi.CreatePost)
	admin.PUT("/blog/:id", blogapi.UpdatePost)
	admin.DELETE("/blog/:id", blogapi.DeletePost)

	admin.POST("/programs", programsapi.CreateProgram)
	admin.PUT("/programs/:id", programsapi.UpdateProgram)
	admin.DELETE("/programs/:id", programsapi.DeleteProgram)

	admin.POST("/events", eventsapi.CreateEvent)
	admin.GET("/events/:id/registrations", eventsapi.ListRegistrations)
}
