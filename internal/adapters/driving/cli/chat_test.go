package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChatService struct {
	answer    string
	err       error
	sessionID string
	query     string
}

func (s *stubChatService) Chat(_ context.Context, sessionID, query string) (string, error) {
	s.sessionID = sessionID
	s.query = query
	return s.answer, s.err
}

func execChat(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append([]string{"chat"}, args...))
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		chatQuery = ""
		chatSession = ""
		chatService = nil
	})
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestChatCmd_OneShotQuery(t *testing.T) {
	stub := &stubChatService{answer: "Alice works at Acme Corp."}
	chatService = stub

	out, err := execChat(t, "--query", "Where does Alice work?")

	require.NoError(t, err)
	assert.Contains(t, out, "Alice works at Acme Corp.")
	assert.Equal(t, "Where does Alice work?", stub.query)
	assert.NotEmpty(t, stub.sessionID)
}

func TestChatCmd_OneShotQuery_PinnedSession(t *testing.T) {
	stub := &stubChatService{answer: "ok"}
	chatService = stub

	_, err := execChat(t, "--query", "and when?", "--session", "sess-42")

	require.NoError(t, err)
	assert.Equal(t, "sess-42", stub.sessionID)
}

func TestChatCmd_OneShotQuery_Error(t *testing.T) {
	chatService = &stubChatService{err: errors.New("model unreachable")}

	_, err := execChat(t, "--query", "hello")

	assert.ErrorContains(t, err, "model unreachable")
}
