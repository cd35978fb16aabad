package controller

import (
	"context"
	"strconv"

	"skill-exchange-be/internal/dto"
	"skill-exchange-be/internal/entity"
	"skill-exchange-be/internal/pkg/apperrors"
	"skill-exchange-be/internal/pkg/logger"
	"skill-exchange-be/internal/pkg/serverutils"
	"skill-exchange-be/internal/service"
	internalWS "skill-exchange-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	ListWithMessages(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	ListMessages(ctx *fiber.Ctx) error
	CreateMessage(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
	hub         *internalWS.Hub
	wsLogger    logger.ILogger
}

func NewChatController(chatService service.IChatService, hub *internalWS.Hub, wsLogger logger.ILogger) IChatController {
	return &chatController{
		chatService: chatService,
		hub:         hub,
		wsLogger:    wsLogger,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")

	// Websocket auth rides the token query param; the JWT middleware only
	// guards the plain HTTP routes.
	h.Get("ws/:chatId", c.serveWs)

	h.Use(serverutils.JwtMiddleware)
	h.Get("list/with-messages", c.ListWithMessages)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Get(":id/messages", c.ListMessages)
	h.Post(":id/messages", c.CreateMessage)
}

func toChatResponse(chat *entity.Chat) *dto.ChatResponse {
	return &dto.ChatResponse{
		Id:        chat.Id,
		User1Id:   chat.User1Id,
		User2Id:   chat.User2Id,
		CreatedAt: chat.CreatedAt,
	}
}

func toMessageResponse(msg *entity.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		Id:        msg.Id,
		ChatId:    msg.ChatId,
		SenderId:  msg.SenderId,
		Text:      msg.Text,
		CreatedAt: msg.CreatedAt,
	}
}

func (c *chatController) Create(ctx *fiber.Ctx) error {
	userId := serverutils.CurrentUserId(ctx)

	var req dto.CreateChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	chat, err := c.chatService.CreateChat(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create chat", toChatResponse(chat)))
}

func (c *chatController) List(ctx *fiber.Ctx) error {
	userId := serverutils.CurrentUserId(ctx)
	limit, offset := parsePagination(ctx)

	chats, total, err := c.chatService.GetUserChats(ctx.Context(), userId, limit, offset)
	if err != nil {
		return err
	}

	items := make([]*dto.ChatResponse, 0, len(chats))
	for _, chat := range chats {
		items = append(items, toChatResponse(chat))
	}

	ctx.Set("X-Total-Count", strconv.FormatInt(total, 10))
	return ctx.JSON(serverutils.SuccessResponse("Success list chats", serverutils.ListResponse[*dto.ChatResponse]{
		Items: items,
		Total: total,
	}))
}

func (c *chatController) ListWithMessages(ctx *fiber.Ctx) error {
	userId := serverutils.CurrentUserId(ctx)
	limit, offset := parsePagination(ctx)

	items, total, err := c.chatService.GetUserChatsWithMessages(ctx.Context(), userId, limit, offset)
	if err != nil {
		return err
	}

	ctx.Set("X-Total-Count", strconv.FormatInt(total, 10))
	return ctx.JSON(serverutils.SuccessResponse("Success list chats", serverutils.ListResponse[*dto.ChatListItem]{
		Items: items,
		Total: total,
	}))
}

func (c *chatController) Show(ctx *fiber.Ctx) error {
	userId := serverutils.CurrentUserId(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperrors.InvalidInput("invalid_chat_id", "Chat id must be a UUID")
	}

	chat, err := c.chatService.GetChat(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show chat", toChatResponse(chat)))
}

func (c *chatController) ListMessages(ctx *fiber.Ctx) error {
	userId := serverutils.CurrentUserId(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperrors.InvalidInput("invalid_chat_id", "Chat id must be a UUID")
	}
	limit, offset := parsePagination(ctx)

	messages, total, err := c.chatService.GetChatMessages(ctx.Context(), userId, id, limit, offset)
	if err != nil {
		return err
	}

	items := make([]*dto.MessageResponse, 0, len(messages))
	for _, msg := range messages {
		items = append(items, toMessageResponse(msg))
	}

	ctx.Set("X-Total-Count", strconv.FormatInt(total, 10))
	return ctx.JSON(serverutils.SuccessResponse("Success list messages", serverutils.ListResponse[*dto.MessageResponse]{
		Items: items,
		Total: total,
	}))
}

func (c *chatController) CreateMessage(ctx *fiber.Ctx) error {
	userId := serverutils.CurrentUserId(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperrors.InvalidInput("invalid_chat_id", "Chat id must be a UUID")
	}

	var req dto.CreateMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.ChatId = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	msg, err := c.chatService.CreateMessage(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create message", toMessageResponse(msg)))
}

// serveWs upgrades the connection, then authenticates inside the websocket
// session. Any failure closes the socket without a frame; details go to
// the websocket log only.
func (c *chatController) serveWs(ctx *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}

	return websocket.New(func(conn *websocket.Conn) {
		defer conn.Close()

		chatId, err := uuid.Parse(conn.Params("chatId"))
		if err != nil {
			c.wsLogger.Warn("ChatWS", "Invalid chat id in handshake", map[string]interface{}{"chat_id": conn.Params("chatId")})
			return
		}

		tokenStr := conn.Query("token")
		if tokenStr == "" {
			c.wsLogger.Warn("ChatWS", "Missing token in handshake", map[string]interface{}{"chat_id": chatId})
			return
		}

		userId, err := serverutils.ParseToken(tokenStr)
		if err != nil {
			c.wsLogger.Warn("ChatWS", "Invalid token in handshake", map[string]interface{}{
				"chat_id": chatId,
				"error":   err.Error(),
			})
			return
		}

		if _, err := c.chatService.GetChat(context.Background(), userId, chatId); err != nil {
			c.wsLogger.Warn("ChatWS", "Chat access rejected", map[string]interface{}{
				"chat_id": chatId,
				"user_id": userId,
				"error":   err.Error(),
			})
			return
		}

		c.wsLogger.Info("ChatWS", "Starting websocket session", map[string]interface{}{
			"chat_id": chatId,
			"user_id": userId,
		})
		internalWS.ServeWs(c.hub, conn, chatId, userId, c.chatService)
		c.wsLogger.Info("ChatWS", "Websocket session ended", map[string]interface{}{
			"chat_id": chatId,
			"user_id": userId,
		})
	})(ctx)
}
