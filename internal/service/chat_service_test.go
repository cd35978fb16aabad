package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"skill-exchange-be/internal/dto"
	"skill-exchange-be/internal/entity"
	"skill-exchange-be/internal/pkg/apperrors"
	"skill-exchange-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatFixture() (*fakeUnitOfWork, *fakePublisher, IChatService) {
	uow := newFakeUnitOfWork()
	pub := &fakePublisher{}
	svc := NewChatService(&fakeFactory{uow: uow}, pub, nopLogger{})
	return uow, pub, svc
}

func seedUser(uow *fakeUnitOfWork, username string) *entity.User {
	user := &entity.User{
		Id:        uuid.New(),
		Username:  username,
		Email:     username + "@example.com",
		CreatedAt: time.Now(),
	}
	uow.users.users[user.Id] = user
	return user
}

func seedChat(uow *fakeUnitOfWork, a, b *entity.User) *entity.Chat {
	chat := &entity.Chat{
		Id:        uuid.New(),
		User1Id:   a.Id,
		User2Id:   b.Id,
		User1:     a,
		User2:     b,
		CreatedAt: time.Now(),
	}
	uow.chats.chats[chat.Id] = chat
	return chat
}

func TestCreateChatRejectsSameUser(t *testing.T) {
	uow, _, svc := newChatFixture()
	alice := seedUser(uow, "alice")

	_, err := svc.CreateChat(context.Background(), alice.Id, &dto.CreateChatRequest{
		User1Id: alice.Id,
		User2Id: alice.Id,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidInput, apperrors.KindOf(err))
}

func TestCreateChatCallerMustParticipate(t *testing.T) {
	uow, _, svc := newChatFixture()
	alice := seedUser(uow, "alice")
	bob := seedUser(uow, "bob")
	eve := seedUser(uow, "eve")

	_, err := svc.CreateChat(context.Background(), eve.Id, &dto.CreateChatRequest{
		User1Id: alice.Id,
		User2Id: bob.Id,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindAccessDenied, apperrors.KindOf(err))
}

func TestCreateChatIsIdempotentPerPair(t *testing.T) {
	uow, _, svc := newChatFixture()
	alice := seedUser(uow, "alice")
	bob := seedUser(uow, "bob")

	first, err := svc.CreateChat(context.Background(), alice.Id, &dto.CreateChatRequest{
		User1Id: alice.Id,
		User2Id: bob.Id,
	})
	require.NoError(t, err)

	// Same pair in reverse order resolves to the same chat.
	second, err := svc.CreateChat(context.Background(), bob.Id, &dto.CreateChatRequest{
		User1Id: bob.Id,
		User2Id: alice.Id,
	})
	require.NoError(t, err)

	assert.Equal(t, first.Id, second.Id)
}

func TestGetChatDeniedForOutsider(t *testing.T) {
	uow, _, svc := newChatFixture()
	alice := seedUser(uow, "alice")
	bob := seedUser(uow, "bob")
	eve := seedUser(uow, "eve")
	chat := seedChat(uow, alice, bob)

	_, err := svc.GetChat(context.Background(), eve.Id, chat.Id)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindAccessDenied, apperrors.KindOf(err))
}

func TestGetChatNotFound(t *testing.T) {
	uow, _, svc := newChatFixture()
	alice := seedUser(uow, "alice")

	_, err := svc.GetChat(context.Background(), alice.Id, uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestCreateMessageTrimsAndValidates(t *testing.T) {
	uow, _, svc := newChatFixture()
	alice := seedUser(uow, "alice")
	bob := seedUser(uow, "bob")
	chat := seedChat(uow, alice, bob)

	_, err := svc.CreateMessage(context.Background(), alice.Id, &dto.CreateMessageRequest{
		ChatId: chat.Id,
		Text:   "   \n\t  ",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidInput, apperrors.KindOf(err))

	_, err = svc.CreateMessage(context.Background(), alice.Id, &dto.CreateMessageRequest{
		ChatId: chat.Id,
		Text:   strings.Repeat("x", 2001),
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidInput, apperrors.KindOf(err))

	msg, err := svc.CreateMessage(context.Background(), alice.Id, &dto.CreateMessageRequest{
		ChatId: chat.Id,
		Text:   "  hello bob  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello bob", msg.Text)
}

func TestCreateMessageLimitCountsCharactersNotBytes(t *testing.T) {
	uow, _, svc := newChatFixture()
	alice := seedUser(uow, "alice")
	bob := seedUser(uow, "bob")
	chat := seedChat(uow, alice, bob)

	// 1500 characters at 2 bytes each is under the 2000-character limit
	// even though the byte count is not.
	text := strings.Repeat("я", 1500)
	msg, err := svc.CreateMessage(context.Background(), alice.Id, &dto.CreateMessageRequest{
		ChatId: chat.Id,
		Text:   text,
	})
	require.NoError(t, err)
	assert.Equal(t, text, msg.Text)

	_, err = svc.CreateMessage(context.Background(), alice.Id, &dto.CreateMessageRequest{
		ChatId: chat.Id,
		Text:   strings.Repeat("я", 2001),
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidInput, apperrors.KindOf(err))
}

func TestCreateMessageDeniedForOutsider(t *testing.T) {
	uow, _, svc := newChatFixture()
	alice := seedUser(uow, "alice")
	bob := seedUser(uow, "bob")
	eve := seedUser(uow, "eve")
	chat := seedChat(uow, alice, bob)

	_, err := svc.CreateMessage(context.Background(), eve.Id, &dto.CreateMessageRequest{
		ChatId: chat.Id,
		Text:   "hi",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindAccessDenied, apperrors.KindOf(err))
	assert.Empty(t, uow.messages.messages)
}

func TestCreateMessagePublishesEvent(t *testing.T) {
	uow, pub, svc := newChatFixture()
	alice := seedUser(uow, "alice")
	bob := seedUser(uow, "bob")
	chat := seedChat(uow, alice, bob)

	msg, err := svc.CreateMessage(context.Background(), alice.Id, &dto.CreateMessageRequest{
		ChatId: chat.Id,
		Text:   "hello",
	})
	require.NoError(t, err)

	require.Len(t, pub.events, 1)
	evt := pub.events[0]
	assert.Equal(t, events.MessageCreated, evt.EventType())
	assert.Equal(t, msg.CreatedAt, evt.Timestamp())

	payload := evt.Payload()
	assert.Equal(t, msg.Id, payload["message_id"])
	assert.Equal(t, chat.Id, payload["chat_id"])
	assert.Equal(t, alice.Id, payload["sender_id"])
	assert.Equal(t, "alice", payload["sender_username"])
	assert.Equal(t, "hello", payload["text"])

	// The payload keys mirror the consumer-side event struct.
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	var decoded dto.MessageCreatedEvent
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, msg.Id, decoded.MessageId)
	assert.Equal(t, "hello", decoded.Text)
}

func TestCreateMessageSurvivesPublishFailure(t *testing.T) {
	uow, pub, svc := newChatFixture()
	alice := seedUser(uow, "alice")
	bob := seedUser(uow, "bob")
	chat := seedChat(uow, alice, bob)
	pub.err = errProviderDown

	msg, err := svc.CreateMessage(context.Background(), alice.Id, &dto.CreateMessageRequest{
		ChatId: chat.Id,
		Text:   "hello",
	})
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Len(t, uow.messages.messages, 1)
}

func TestGetUserChatsWithMessages(t *testing.T) {
	uow, _, svc := newChatFixture()
	alice := seedUser(uow, "alice")
	bob := seedUser(uow, "bob")
	chat := seedChat(uow, alice, bob)

	old := &entity.Message{Id: uuid.New(), ChatId: chat.Id, SenderId: alice.Id, Text: "first", CreatedAt: time.Now().Add(-time.Hour)}
	recent := &entity.Message{Id: uuid.New(), ChatId: chat.Id, SenderId: bob.Id, Text: "latest", CreatedAt: time.Now()}
	uow.messages.messages = append(uow.messages.messages, old, recent)

	items, total, err := svc.GetUserChatsWithMessages(context.Background(), alice.Id, 20, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, bob.Id, items[0].OtherUser.Id)
	require.NotNil(t, items[0].LastMessage)
	assert.Equal(t, "latest", items[0].LastMessage.Text)
}
