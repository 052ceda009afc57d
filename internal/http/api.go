package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"finance-api/internal/service"
	"finance-api/internal/validate"
)

const maxBodyBytes = 1 << 20

// Options carries the immutable switches the handlers read.
type Options struct {
	RegisterEnabled bool
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	users        service.UserService
	categories   service.CategoryService
	transactions service.TransactionService
	exports      service.ExportService
	tokens       TokenVerifier
	validator    *validate.Validator
	logger       *logrus.Logger
	opts         Options
}

// NewHandler builds the HTTP layer. A nil exports service disables the export routes.
func NewHandler(
	users service.UserService,
	categories service.CategoryService,
	transactions service.TransactionService,
	exports service.ExportService,
	tokens TokenVerifier,
	logger *logrus.Logger,
	opts Options,
) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		users:        users,
		categories:   categories,
		transactions: transactions,
		exports:      exports,
		tokens:       tokens,
		validator:    validate.New(),
		logger:       logger,
		opts:         opts,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(requestLogger(h.logger), recovery(h.logger), corsMiddleware())
	router.NoRoute(routeNotFound)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, MessageResponse{Message: "ok"})
	})

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", h.register)
		authGroup.POST("/login", h.login)
	}

	protected := router.Group("/", requireAuth(h.tokens))
	{
		protected.GET("/categories", h.listCategories)

		protected.GET("/transactions", h.listTransactions)
		protected.POST("/transactions", h.createTransaction)
		protected.GET("/transactions/exports", h.listExports)
		protected.POST("/transactions/exports", h.createExport)
		protected.GET("/transactions/:id", h.getTransaction)
		protected.PUT("/transactions/:id", h.updateTransaction)
		protected.DELETE("/transactions/:id", h.deleteTransaction)
	}
}

// bindJSON validates the request body against T, answering 400 itself on failure.
func bindJSON[T any](h *Handler, c *gin.Context) (*T, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	body, err := c.GetRawData()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fail(c, http.StatusBadRequest, msgInvalidInput, validate.FieldErrors{validate.RootPath: {"Request body too large"}})
			return nil, false
		}
		h.internalError(c, err)
		return nil, false
	}

	res := validate.ValidateJSON[T](h.validator, body)
	if !res.Success {
		fail(c, http.StatusBadRequest, msgInvalidInput, res.Errors)
		return nil, false
	}
	return res.Data, true
}

// parseID reads a positive integer path parameter, answering 400 itself on failure.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, msgInvalidID, nil)
		return 0, false
	}
	return id, true
}

// internalError logs err and answers the uniform 500 envelope; internals never reach the client.
func (h *Handler) internalError(c *gin.Context, err error) {
	h.logger.WithFields(logrus.Fields{
		"request_id": c.GetString(requestIDKey),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
	}).WithError(err).Error("request failed")
	internalServerError(c)
}
