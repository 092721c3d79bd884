package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gochat/model"
)

// stubGenerator records the history it was handed and returns a canned reply
// or a failure.
type stubGenerator struct {
	reply string
	err   error
	seen  [][]model.Turn
}

func (g *stubGenerator) Generate(_ context.Context, turns []model.Turn) (string, error) {
	g.seen = append(g.seen, turns)
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

func newChatFixture(t *testing.T, gen Generator) (*ChatService, *model.ConversationStore, uint) {
	t.Helper()
	db := newTestDB(t)
	users := model.NewUserStore(db)
	convs := model.NewConversationStore(db)

	user := &model.User{Username: "alice", Email: "a@x.com", Password: "hash"}
	require.NoError(t, users.CreateUser(user))

	return NewChatService(convs, gen, newTestLogger()), convs, user.ID
}

func TestSendCreatesConversation(t *testing.T) {
	gen := &stubGenerator{reply: "hi alice"}
	svc, convs, userID := newChatFixture(t, gen)

	result, err := svc.Send(context.Background(), userID, 0, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi alice", result.Response)
	require.NotZero(t, result.ConversationID)

	history, err := convs.GetHistory(result.ConversationID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, model.Turn{Role: model.RoleUser, Content: "hello"}, history[0])
	assert.Equal(t, model.Turn{Role: model.RoleAssistant, Content: "hi alice"}, history[1])
}

func TestSendUsesExistingConversation(t *testing.T) {
	gen := &stubGenerator{reply: "reply"}
	svc, convs, userID := newChatFixture(t, gen)

	first, err := svc.Send(context.Background(), userID, 0, "first")
	require.NoError(t, err)

	second, err := svc.Send(context.Background(), userID, first.ConversationID, "second")
	require.NoError(t, err)
	assert.Equal(t, first.ConversationID, second.ConversationID)

	history, err := convs.GetHistory(first.ConversationID)
	require.NoError(t, err)
	assert.Len(t, history, 4)

	// the generator gets the whole ordered history on every turn, including
	// the just-appended user message
	require.Len(t, gen.seen, 2)
	require.Len(t, gen.seen[1], 3)
	assert.Equal(t, "first", gen.seen[1][0].Content)
	assert.Equal(t, "reply", gen.seen[1][1].Content)
	assert.Equal(t, "second", gen.seen[1][2].Content)
}

func TestSendUnknownConversation(t *testing.T) {
	gen := &stubGenerator{reply: "reply"}
	svc, _, userID := newChatFixture(t, gen)

	_, err := svc.Send(context.Background(), userID, 999, "hello")
	assert.ErrorIs(t, err, ErrConversationNotFound)
	assert.Empty(t, gen.seen)
}

// Provider failures never surface to the caller: the turn completes with the
// fixed fallback reply and both messages are persisted.
func TestSendGeneratorFailureFallsBack(t *testing.T) {
	gen := &stubGenerator{err: errors.New("provider down")}
	svc, convs, userID := newChatFixture(t, gen)

	result, err := svc.Send(context.Background(), userID, 0, "hello")
	require.NoError(t, err)
	assert.Equal(t, FallbackReply, result.Response)

	history, err := convs.GetHistory(result.ConversationID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, FallbackReply, history[1].Content)
}
