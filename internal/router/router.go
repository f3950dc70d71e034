package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"taskboard/internal/auth"
	"taskboard/internal/config"
	"taskboard/internal/handler"
	"taskboard/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	boardHandler *handler.BoardHandler,
	userRepo repository.UserRepository,
	sessions auth.SessionStoreInterface,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.GET("/", authHandler.Index)
	e.GET("/login", authHandler.LoginForm)
	e.POST("/login", authHandler.Login)
	e.GET("/register", authHandler.RegisterForm)
	e.POST("/register", authHandler.Register)

	// Secured routes: the session token is read from the cookie and any
	// missing, malformed, expired, or revoked token redirects to the entry
	// point instead of returning data.
	secured := e.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "cookie:" + auth.SessionCookieName,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return redirectToLogin(c)
		},
	}))
	secured.Use(sessionIdentity(userRepo, sessions))

	secured.GET("/logout", authHandler.Logout)
	secured.GET("/dashboard", boardHandler.Dashboard)
	secured.POST("/create_board", boardHandler.CreateBoard)
	secured.GET("/board/:id", boardHandler.ViewBoard)
	secured.POST("/add_task/:id", boardHandler.AddTask)
	secured.GET("/delete_task/:id", boardHandler.DeleteTask)
	secured.POST("/update_task/:id", boardHandler.UpdateTask)
}

// sessionIdentity resolves the authenticated user once per request and stores
// the user ID in the echo context. A revoked token or a user that no longer
// exists is treated as unauthenticated.
func sessionIdentity(users repository.UserRepository, sessions auth.SessionStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return redirectToLogin(c)
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return redirectToLogin(c)
			}

			revoked, err := sessions.IsRevoked(c.Request().Context(), claims.ID)
			if err != nil || revoked {
				return redirectToLogin(c)
			}

			if _, err := users.FindByID(c.Request().Context(), claims.UserID); err != nil {
				return redirectToLogin(c)
			}

			c.Set(auth.ContextUserIDKey, claims.UserID)
			return next(c)
		}
	}
}

func redirectToLogin(c echo.Context) error {
	c.SetCookie(auth.ExpiredSessionCookie())
	return c.Redirect(http.StatusSeeOther, "/")
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
