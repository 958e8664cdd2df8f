package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ikarolaborda/open-asm-sub000/internal/model"
	"github.com/ikarolaborda/open-asm-sub000/pkg/jwtutil"
	"github.com/ikarolaborda/open-asm-sub000/pkg/logger"
	"github.com/ikarolaborda/open-asm-sub000/prometheus"
)

// AuthHandler issues and validates credentials. Tokens carry the user's
// organization, which downstream middleware turns into the tenant scope.
type AuthHandler struct {
	db      *gorm.DB
	jwtUtil *jwtutil.JWTUtil
}

func NewAuthHandler(db *gorm.DB, jwtUtil *jwtutil.JWTUtil) *AuthHandler {
	return &AuthHandler{db: db, jwtUtil: jwtUtil}
}

// Login verifies credentials and returns a signed token
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.AuthAttemptsCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.AuthErrorsCounter.Inc()
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		log.Warn("User not found", zap.String("email", req.Email))
		prometheus.AuthErrorsCounter.Inc()
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	if !user.Active {
		log.Warn("Inactive user attempted login", zap.String("email", req.Email))
		prometheus.AuthErrorsCounter.Inc()
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		log.Warn("Invalid password", zap.String("email", req.Email))
		prometheus.AuthErrorsCounter.Inc()
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	var orgName string
	if user.OrganizationID != nil {
		var org model.Organization
		if err := h.db.Select("name").First(&org, *user.OrganizationID).Error; err == nil {
			orgName = org.Name
		}
	}

	token, err := h.jwtUtil.GenerateToken(user.Email, user.ID, user.OrganizationID, orgName, user.IsSuperAdmin)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.AuthErrorsCounter.Inc()
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	prometheus.AuthSuccessCounter.Inc()

	log.Info("User logged in",
		zap.String("email", user.Email),
		zap.Bool("super_admin", user.IsSuperAdmin))

	response := echo.Map{
		"token": token,
		"user": map[string]interface{}{
			"id":    user.ID,
			"email": user.Email,
		},
	}
	if user.OrganizationID != nil {
		response["organization"] = map[string]interface{}{
			"id":   *user.OrganizationID,
			"name": orgName,
		}
	}
	return c.JSON(http.StatusOK, response)
}

// Register creates a new user inside an existing organization
func (h *AuthHandler) Register(c echo.Context) error {
	log := logger.FromEcho(c)

	var req struct {
		Email          string `json:"email"`
		Password       string `json:"password"`
		OrganizationID uint   `json:"organization_id"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}
	if req.OrganizationID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "organization_id is required"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	var org model.Organization
	if err := h.db.First(&org, req.OrganizationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "organization does not exist"})
		}
		log.Error("Failed to load organization", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	var existing model.User
	if err := h.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		log.Warn("User already exists", zap.String("email", req.Email))
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	user := model.User{
		Email:          req.Email,
		Password:       string(hashedPassword),
		OrganizationID: &org.ID,
		Active:         true,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := h.db.Create(&user).Error; err != nil {
		log.Error("Failed to create user", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	log.Info("User registered",
		zap.String("email", user.Email),
		zap.Uint("organization_id", org.ID))
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User registered successfully",
		"user": map[string]interface{}{
			"id":              user.ID,
			"email":           user.Email,
			"organization_id": org.ID,
		},
	})
}
