package rest

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Marshal-Nguyen/mental-care-server-NodeNet/internal/domain"
)

const (
	authorizationHeader = "Authorization"
	userIDCtx           = "user_id"
	userRoleCtx         = "user_role"
)

func (h *Handler) loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		logger := h.logger.With(
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
		)

		if status >= 500 {
			logger.Error("server error")
		} else if status >= 400 {
			logger.Warn("client error")
		} else {
			logger.Info("request processed")
		}
	}
}

func (h *Handler) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Content-Length, Accept-Encoding, Origin, Accept, User-Agent, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		origin := c.Request.Header.Get("Origin")
		if origin != "" && c.Request.Header.Get("Authorization") != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (h *Handler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authorizationHeader)
		if header == "" {
			errorResponse(c, http.StatusUnauthorized, "пустой заголовок авторизации")
			return
		}

		headerParts := strings.Split(header, " ")
		if len(headerParts) != 2 || headerParts[0] != "Bearer" {
			errorResponse(c, http.StatusUnauthorized, "неверный формат заголовка авторизации")
			return
		}

		userID, userRole, err := h.services.Auth.ParseToken(c.Request.Context(), headerParts[1])
		if err != nil {
			errorResponse(c, http.StatusUnauthorized, err.Error())
			return
		}

		c.Set(userIDCtx, userID)
		c.Set(userRoleCtx, userRole)

		c.Next()
	}
}

func (h *Handler) doctorMiddleware() gin.HandlerFunc {
	return h.roleMiddleware(domain.UserRoleDoctor, "доступ запрещен, требуется роль врача")
}

func (h *Handler) managerMiddleware() gin.HandlerFunc {
	return h.roleMiddleware(domain.UserRoleManager, "доступ запрещен, требуется роль менеджера")
}

func (h *Handler) roleMiddleware(required domain.UserRole, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get(userRoleCtx)
		if !exists {
			errorResponse(c, http.StatusUnauthorized, "пользователь не авторизован")
			return
		}

		role, ok := userRole.(domain.UserRole)
		if !ok || role != required {
			errorResponse(c, http.StatusForbidden, message)
			return
		}

		c.Next()
	}
}

func getUserID(c *gin.Context) (int64, error) {
	userID, exists := c.Get(userIDCtx)
	if !exists {
		return 0, errors.New("пользователь не авторизован")
	}

	id, ok := userID.(int64)
	if !ok {
		return 0, errors.New("некорректный ID пользователя")
	}

	return id, nil
}

func getUserRole(c *gin.Context) (domain.UserRole, error) {
	userRole, exists := c.Get(userRoleCtx)
	if !exists {
		return "", errors.New("пользователь не авторизован")
	}

	role, ok := userRole.(domain.UserRole)
	if !ok {
		return "", errors.New("некорректная роль пользователя")
	}

	return role, nil
}
