package http

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"accountd/internal/auth"
	"accountd/internal/domain"
	"accountd/internal/service"
	"accountd/internal/storage"
)

// Response codes carried in every envelope.
const (
	codeSuccess     = "00"
	codeClientError = "80"
	codeServerError = "90"
	codeAuthError   = "95"
)

// profileImageFolder is the object-store folder uploaded images land in.
const profileImageFolder = "uploads"

const contextAccountID = "accountID"

// Envelope is the fixed wrapper used for every API response.
type Envelope struct {
	ResponseCode    string `json:"responseCode"`
	ResponseMessage string `json:"responseMessage"`
	Data            any    `json:"data"`
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	accounts service.AccountService
	tokens   *auth.Manager
	images   storage.ImageStore
	logger   *logrus.Logger
}

func NewHandler(accounts service.AccountService, tokens *auth.Manager, images storage.ImageStore, logger *logrus.Logger) *Handler {
	return &Handler{
		accounts: accounts,
		tokens:   tokens,
		images:   images,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	router.GET("/api/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})

	api := router.Group("/api/v1/auth")
	{
		api.POST("/signup", h.signup)
		api.POST("/signin", h.signin)
		api.GET("/getUserInfo", h.requireAuth, h.getProfile)
		api.PUT("/uploadProfileImage", h.requireAuth, h.uploadProfileImage)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// requireAuth gates protected routes on a valid bearer token. The decoded
// account identifier is attached to the request context.
func (h *Handler) requireAuth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, Envelope{
			ResponseCode:    codeAuthError,
			ResponseMessage: "User is not authenticated",
		})
		return
	}

	candidate := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if candidate == "" || candidate == "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, Envelope{
			ResponseCode:    codeAuthError,
			ResponseMessage: "Invalid token supplied",
		})
		return
	}

	accountID, err := h.tokens.Verify(candidate)
	if err != nil {
		h.logger.WithField("path", c.FullPath()).WithError(err).Warn("token verification failed")
		c.AbortWithStatusJSON(http.StatusUnauthorized, Envelope{
			ResponseCode:    codeAuthError,
			ResponseMessage: "Invalid token supplied",
		})
		return
	}

	c.Set(contextAccountID, accountID)
	c.Next()
}

type signupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Envelope{
			ResponseCode:    codeClientError,
			ResponseMessage: "Invalid request payload",
		})
		return
	}

	account, err := h.accounts.Register(c.Request.Context(), service.RegistrationInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"accountId": account.ID,
		"email":     account.Email,
	}).Info("account created")

	c.JSON(http.StatusCreated, Envelope{
		ResponseCode:    codeSuccess,
		ResponseMessage: "User created successfully",
		Data:            accountToSummary(account),
	})
}

func (h *Handler) signin(c *gin.Context) {
	var req signinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Envelope{
			ResponseCode:    codeClientError,
			ResponseMessage: "Invalid request payload",
		})
		return
	}

	account, err := h.accounts.Authenticate(c.Request.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.logger.WithField("email", req.Email).Warn("failed login attempt")
		}
		h.respondError(c, err)
		return
	}

	token, err := h.tokens.Issue(account.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Envelope{
		ResponseCode:    codeSuccess,
		ResponseMessage: "Login successfully",
		Data:            gin.H{"token": token},
	})
}

func (h *Handler) getProfile(c *gin.Context) {
	account, err := h.accounts.GetByID(c.Request.Context(), c.GetString(contextAccountID))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Envelope{
		ResponseCode:    codeSuccess,
		ResponseMessage: "User retrieved successfully",
		Data:            accountToProfile(account),
	})
}

func (h *Handler) uploadProfileImage(c *gin.Context) {
	accountID := c.GetString(contextAccountID)

	file, err := c.FormFile("profileImage")
	if err != nil {
		c.JSON(http.StatusBadRequest, Envelope{
			ResponseCode:    codeClientError,
			ResponseMessage: "No file uploaded",
		})
		return
	}

	src, err := file.Open()
	if err != nil {
		h.respondError(c, err)
		return
	}
	data, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		h.respondError(c, err)
		return
	}

	if h.images == nil {
		h.respondError(c, errors.New("image store not configured"))
		return
	}

	imageURL, err := h.images.UploadImage(c.Request.Context(), data, profileImageFolder)
	if err != nil {
		h.respondError(c, err)
		return
	}

	account, err := h.accounts.SetProfileImage(c.Request.Context(), accountID, imageURL)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Envelope{
		ResponseCode:    codeSuccess,
		ResponseMessage: "Profile image upload successfully",
		Data:            accountToProfile(account),
	})
}

// respondError maps service failures onto the envelope taxonomy. Internal
// detail is logged server-side and never echoed to the client.
func (h *Handler) respondError(c *gin.Context, err error) {
	var validationErr *service.ValidationError

	switch {
	case errors.As(err, &validationErr):
		h.logger.WithField("path", c.FullPath()).WithError(err).Warn("validation failed")
		c.JSON(http.StatusBadRequest, Envelope{
			ResponseCode:    codeClientError,
			ResponseMessage: validationErr.Error(),
		})
	case errors.Is(err, service.ErrAccountExists):
		c.JSON(http.StatusBadRequest, Envelope{
			ResponseCode:    codeClientError,
			ResponseMessage: "User already exist",
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, Envelope{
			ResponseCode:    codeClientError,
			ResponseMessage: "Invalid email or password",
		})
	case errors.Is(err, service.ErrAccountNotFound):
		c.JSON(http.StatusBadRequest, Envelope{
			ResponseCode:    codeClientError,
			ResponseMessage: "No user found",
		})
	default:
		h.logger.WithField("path", c.FullPath()).WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, Envelope{
			ResponseCode:    codeServerError,
			ResponseMessage: "Internal server error",
		})
	}
}

type AccountSummaryResponse struct {
	ID          string  `json:"_id"`
	Name        string  `json:"Name"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	DateCreated string  `json:"dateCreated"`
	DateUpdated *string `json:"dateUpdated"`
}

type ProfileResponse struct {
	ID           string  `json:"_id"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Email        string  `json:"email"`
	ProfileImage *string `json:"profileImage"`
	Role         string  `json:"role"`
	DateCreated  string  `json:"dateCreated"`
	DateUpdated  *string `json:"dateUpdated"`
}

func accountToSummary(account *domain.Account) AccountSummaryResponse {
	return AccountSummaryResponse{
		ID:          account.ID,
		Name:        account.FirstName + " " + account.LastName,
		Email:       account.Email,
		Role:        string(account.Role),
		DateCreated: account.DateCreated.Format(time.RFC3339),
		DateUpdated: formatNullableTime(account.DateUpdated),
	}
}

func accountToProfile(account *domain.Account) ProfileResponse {
	return ProfileResponse{
		ID:           account.ID,
		FirstName:    account.FirstName,
		LastName:     account.LastName,
		Email:        account.Email,
		ProfileImage: account.ProfileImage,
		Role:         string(account.Role),
		DateCreated:  account.DateCreated.Format(time.RFC3339),
		DateUpdated:  formatNullableTime(account.DateUpdated),
	}
}

func formatNullableTime(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	v := t.Format(time.RFC3339)
	return &v
}
