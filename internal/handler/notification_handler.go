package handler

import (
	"spa-registry-be/internal/entity"
	"spa-registry-be/internal/pkg/logger"
	"spa-registry-be/internal/pkg/serverutils"
	"spa-registry-be/internal/service"
	internalWS "spa-registry-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
)

type NotificationHandler struct {
	service service.INotificationService
	hub     *internalWS.Hub
	logger  logger.ILogger
}

func NewNotificationHandler(service service.INotificationService, hub *internalWS.Hub, log logger.ILogger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		hub:     hub,
		logger:  log,
	}
}

// topicsFor maps the authenticated principal to its subscription topics. An
// association admin joins its personal topic plus the role-wide room; a spa
// administrator joins the spa's topic.
func topicsFor(claims jwt.MapClaims) []string {
	role := serverutils.ClaimString(claims, "role")
	if role == entity.RoleAssociationAdmin {
		return []string{
			entity.UserTopic(serverutils.ClaimUint(claims, "user_id")),
			entity.RoleTopic(role),
		}
	}
	return []string{entity.SpaTopic(serverutils.ClaimUint(claims, "spa_id"))}
}

// ServeWs handles websocket requests from the peer.
func (h *NotificationHandler) ServeWs(c *fiber.Ctx) error {
	// 1. Get Token source
	// Priority 1: Query Param (Browser standard)
	tokenStr := c.Query("token")

	// Priority 2: Authorization Header (Tooling/Non-browser standard)
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}

	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	claims, err := serverutils.ParseToken(tokenStr)
	if err != nil {
		h.logger.Warn("NotificationHandler", "Invalid Token in WS Handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	topics := topicsFor(claims)

	// Upgrade via Fiber WebSocket Middleware
	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(c *websocket.Conn) {
			h.logger.Info("NotificationHandler", "Starting WebSocket session", map[string]interface{}{"topics": topics})
			internalWS.ServeWs(h.hub, c, topics)
			h.logger.Info("NotificationHandler", "WebSocket session ended", map[string]interface{}{"topics": topics})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

func (h *NotificationHandler) principal(c *fiber.Ctx) service.Principal {
	uid, _ := c.Locals("user_id").(uint)
	sid, _ := c.Locals("spa_id").(uint)
	role, _ := c.Locals("role").(string)
	return service.Principal{UserId: uid, SpaId: sid, Role: role}
}

// GetNotifications returns the principal's inbox, newest first.
func (h *NotificationHandler) GetNotifications(c *fiber.Ctx) error {
	res, err := h.service.Inbox(c.UserContext(), h.principal(c), c.QueryInt("page", 1), c.QueryInt("page_size", 20))
	if err != nil {
		return serverutils.HandleError(c, err)
	}
	return c.JSON(serverutils.SuccessResponse("Notifications", res))
}

// GetUnreadCount returns the number of unread notifications.
func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	count, err := h.service.UnreadCount(c.UserContext(), h.principal(c))
	if err != nil {
		return serverutils.HandleError(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

// MarkAsRead marks a specific notification as read.
func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	if err := h.service.MarkAsRead(c.UserContext(), uint(id)); err != nil {
		return serverutils.HandleError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// MarkAllAsRead marks all of the principal's notifications as read.
func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	if err := h.service.MarkAllAsRead(c.UserContext(), h.principal(c)); err != nil {
		return serverutils.HandleError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// RegisterRoutes registers the notification routes.
func (h *NotificationHandler) RegisterRoutes(router fiber.Router) {
	notif := router.Group("/notifications")
	notif.Use(serverutils.JwtMiddleware)
	notif.Get("/", h.GetNotifications)
	notif.Get("/unread-count", h.GetUnreadCount)
	notif.Patch("/:id/read", h.MarkAsRead)
	notif.Patch("/read-all", h.MarkAllAsRead)

	// WebSocket
	router.Get("/ws", h.ServeWs)
}
