package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/SubrataD27/vaani/domain"
	"github.com/SubrataD27/vaani/internal/auth"
	"github.com/SubrataD27/vaani/internal/websocket"
	"github.com/SubrataD27/vaani/usecase"
)

// maxAudioUpload caps voice submissions at 10MB
const maxAudioUpload = 10 << 20

// InitRoutes initializes all API routes
func InitRoutes(e *echo.Echo, sessions *usecase.SessionManager, hub *websocket.Hub, logger *zap.Logger) {
	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "vaani-server",
		})
	})

	v1 := e.Group("/api/v1")

	v1.POST("/sessions", func(c echo.Context) error {
		return createSession(c, sessions, logger)
	})
	v1.GET("/languages", listLanguages)

	v1.POST("/query/text", func(c echo.Context) error {
		return submitText(c, sessions, logger)
	})
	v1.POST("/query/voice", func(c echo.Context) error {
		return submitVoice(c, sessions, logger)
	})
	v1.PUT("/language", func(c echo.Context) error {
		return setLanguage(c, sessions, logger)
	})
	v1.GET("/messages", func(c echo.Context) error {
		return getMessages(c, sessions, logger)
	})
	v1.DELETE("/messages", func(c echo.Context) error {
		return clearMessages(c, sessions, logger)
	})

	// WebSocket endpoint for the voice demo client
	e.GET("/ws", func(c echo.Context) error {
		return websocketWithSession(hub, c, sessions, logger)
	})
}

func createSession(c echo.Context, sessions *usecase.SessionManager, logger *zap.Logger) error {
	id, _ := sessions.Create()

	token, expiresAt, err := auth.GenerateSessionToken(id)
	if err != nil {
		logger.Error("Failed to generate session token", zap.Error(err))
		sessions.Remove(id)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "token_generation_failed",
			Message: "Failed to generate session token",
		})
	}

	return c.JSON(http.StatusCreated, SessionResponse{
		SessionID: id,
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

func listLanguages(c echo.Context) error {
	return c.JSON(http.StatusOK, LanguagesResponse{Languages: domain.SupportedLanguages})
}

func submitText(c echo.Context, sessions *usecase.SessionManager, logger *zap.Logger) error {
	store, err := storeFromRequest(c, sessions, logger)
	if store == nil {
		return err
	}

	var req TextQueryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
		})
	}

	accepted := store.SubmitText(c.Request().Context(), req.Text)
	return c.JSON(http.StatusOK, TurnResponse{
		Accepted: accepted,
		Busy:     store.Busy(),
		Messages: store.Messages(),
	})
}

func submitVoice(c echo.Context, sessions *usecase.SessionManager, logger *zap.Logger) error {
	store, err := storeFromRequest(c, sessions, logger)
	if store == nil {
		return err
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "missing_audio",
			Message: "Multipart field 'audio' is required",
		})
	}
	if fileHeader.Size > maxAudioUpload {
		return c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
			Error:   "audio_too_large",
			Message: "Audio upload exceeds the size limit",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open audio upload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_audio",
			Message: "Failed to read audio upload",
		})
	}
	defer file.Close()

	audio, err := io.ReadAll(io.LimitReader(file, maxAudioUpload))
	if err != nil {
		logger.Error("Failed to read audio upload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_audio",
			Message: "Failed to read audio upload",
		})
	}

	accepted := store.SubmitVoice(c.Request().Context(), audio)
	return c.JSON(http.StatusOK, TurnResponse{
		Accepted: accepted,
		Busy:     store.Busy(),
		Messages: store.Messages(),
	})
}

func setLanguage(c echo.Context, sessions *usecase.SessionManager, logger *zap.Logger) error {
	store, err := storeFromRequest(c, sessions, logger)
	if store == nil {
		return err
	}

	var req SetLanguageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
		})
	}

	if !domain.IsSupportedLanguage(req.Language) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "unsupported_language",
			Message: "Language is not supported by the demo",
		})
	}

	store.SetLanguage(req.Language)
	return c.JSON(http.StatusOK, MessagesResponse{
		Language: store.Language(),
		Messages: store.Messages(),
	})
}

func getMessages(c echo.Context, sessions *usecase.SessionManager, logger *zap.Logger) error {
	store, err := storeFromRequest(c, sessions, logger)
	if store == nil {
		return err
	}

	return c.JSON(http.StatusOK, MessagesResponse{
		Language: store.Language(),
		Messages: store.Messages(),
	})
}

func clearMessages(c echo.Context, sessions *usecase.SessionManager, logger *zap.Logger) error {
	store, err := storeFromRequest(c, sessions, logger)
	if store == nil {
		return err
	}

	store.Clear()
	return c.NoContent(http.StatusNoContent)
}

// storeFromRequest resolves the conversation store for the bearer
// session token on the request. The error return is the already-sent
// JSON response, nil on success.
func storeFromRequest(c echo.Context, sessions *usecase.SessionManager, logger *zap.Logger) (*usecase.ConversationStore, error) {
	token := bearerToken(c)
	if token == "" {
		return nil, c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "missing_token",
			Message: "Session token is required in Authorization header",
		})
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		logger.Warn("Rejected invalid session token", zap.Error(err))
		return nil, c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "invalid_token",
			Message: "Invalid or expired session token",
		})
	}

	store, ok := sessions.Get(claims.SessionID)
	if !ok {
		return nil, c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "session_not_found",
			Message: "Session has expired or been evicted",
		})
	}

	return store, nil
}

func bearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// websocketWithSession upgrades a connection after validating the
// session token supplied as a query parameter (browser WebSocket APIs
// cannot set an Authorization header)
func websocketWithSession(hub *websocket.Hub, c echo.Context, sessions *usecase.SessionManager, logger *zap.Logger) error {
	token := c.QueryParam("token")
	if token == "" {
		token = bearerToken(c)
	}
	if token == "" {
		logger.Warn("WebSocket connection rejected: missing token")
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "missing_token",
			Message: "Session token is required",
		})
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		logger.Warn("WebSocket connection rejected: invalid token", zap.Error(err))
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "invalid_token",
			Message: "Invalid or expired session token",
		})
	}

	store, ok := sessions.Get(claims.SessionID)
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "session_not_found",
			Message: "Session has expired or been evicted",
		})
	}

	return hub.HandleConnection(c, claims.SessionID, store)
}
