package http

import (
	"net/http"

	"github.com/JHSeo-git/close-mountain-api/internal/application/auth"
	"github.com/JHSeo-git/close-mountain-api/internal/application/verify"
	"github.com/JHSeo-git/close-mountain-api/internal/config"
	"github.com/JHSeo-git/close-mountain-api/internal/domain"
	"github.com/JHSeo-git/close-mountain-api/internal/infrastructure/google"
	"github.com/JHSeo-git/close-mountain-api/internal/infrastructure/smtp"
	"github.com/JHSeo-git/close-mountain-api/internal/infrastructure/sns"
	"github.com/JHSeo-git/close-mountain-api/internal/transport/http/handler"
	appmiddleware "github.com/JHSeo-git/close-mountain-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.JWTProvider)

	// 5 requests/second, burst of 10 — applied to code issuance and login.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	senders := map[domain.VerificationProvider]verify.Sender{
		domain.ProviderEmail: smtp.NewCodeSender(deps.Mailer),
	}
	if cfg.SMSProviderEnabled && deps.SMSSender != nil {
		senders[domain.ProviderMobile] = sns.NewCodeSender(deps.SMSSender)
	}

	verifier := google.NewVerifier(cfg.GooglePeopleBaseURL)
	authSvc := auth.NewService(verifier, deps.UserRepo, deps.JWTProvider)
	verifySvc := verify.NewService(deps.CodeRepo, deps.UserRepo, senders, cfg.VerificationCodeTTL)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	verifyH := handler.NewVerifyHandler(verifySvc)

	r.Get("/health-check", healthH.Ping)

	r.Route("/auth", func(r chi.Router) {
		r.With(sensitiveRL.Limit).Post("/oauth/login", authH.Login)

		r.Route("/verify", func(r chi.Router) {
			r.With(sensitiveRL.Limit).Post("/send-code", verifyH.SendCode)
			r.Post("/check-code", verifyH.CheckCode)
			r.Post("/check-username", verifyH.CheckUsername)
		})

		r.Group(func(r chi.Router) {
			r.Use(authMw)
			r.Get("/me", authH.Me)
		})
	})

	return r
}
