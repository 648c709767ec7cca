package vote

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Brnd/internal/api/middleware"
	"Brnd/internal/core/users"
	"Brnd/internal/core/voting"
	"Brnd/internal/gateway"
)

// mockGateway implements voting.Gateway for testing
type mockGateway struct {
	submitErr error
	shareOK   bool
}

func (m *mockGateway) SubmitVote(ctx context.Context, token string, ids [3]int) (*gateway.VoteReceipt, error) {
	if m.submitErr != nil {
		return nil, m.submitErr
	}
	return &gateway.VoteReceipt{ID: "vote-1"}, nil
}

func (m *mockGateway) ShareFrame(ctx context.Context, token string) (bool, error) {
	return m.shareOK, nil
}

// noopCache implements voting.Invalidator
type noopCache struct{}

func (noopCache) InvalidatePrefix(prefixes ...string) {}

// fixedUserSource implements voting.UserSource
type fixedUserSource struct {
	user *users.User
}

func (f *fixedUserSource) CurrentUser(ctx context.Context, token string, fid int64) (*users.User, error) {
	return f.user, nil
}

func newTestManager(gw *mockGateway) *voting.Manager {
	return voting.NewManager(voting.FlowConfig{
		Gateway:    gw,
		Cache:      noopCache{},
		UserSource: &fixedUserSource{user: &users.User{FID: 42}},
		FrameURL:   "https://brnd.example",
	})
}

func authedRequest(method, target string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	ctx := middleware.SetTestSession(req.Context(), 42, "session-1", "backend-token")
	return req.WithContext(ctx)
}

func submitBody(t *testing.T, ids ...int) []byte {
	t.Helper()
	podium := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		podium = append(podium, map[string]any{"id": id, "name": "brand"})
	}
	body, err := json.Marshal(map[string]any{"podium": podium})
	require.NoError(t, err)
	return body
}

func TestSubmitVoteHandler_Success(t *testing.T) {
	flows := newTestManager(&mockGateway{shareOK: true})
	handler := NewSubmitVoteHandler(flows)

	rec := httptest.NewRecorder()
	handler.HandleSubmitVote(rec, authedRequest(http.MethodPost, "/api/votes", submitBody(t, 1, 2, 3)))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp flowResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, voting.StateSharing, resp.State)
	assert.Equal(t, "vote-1", resp.VoteID)
	assert.Nil(t, resp.Error)
}

func TestSubmitVoteHandler_DuplicateSelection(t *testing.T) {
	flows := newTestManager(&mockGateway{})
	handler := NewSubmitVoteHandler(flows)

	rec := httptest.NewRecorder()
	handler.HandleSubmitVote(rec, authedRequest(http.MethodPost, "/api/votes", submitBody(t, 1, 1, 3)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp flowResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, voting.MsgDuplicateSelection, resp.Error.Title)
	assert.Equal(t, voting.StateComposing, resp.State, "the flow stays interactive after a validation failure")
}

func TestSubmitVoteHandler_ShortPodium(t *testing.T) {
	flows := newTestManager(&mockGateway{})
	handler := NewSubmitVoteHandler(flows)

	rec := httptest.NewRecorder()
	handler.HandleSubmitVote(rec, authedRequest(http.MethodPost, "/api/votes", submitBody(t, 1, 2)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp flowResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, voting.MsgInvalidSelection, resp.Error.Title)
}

func TestSubmitVoteHandler_AlreadyVotedConflict(t *testing.T) {
	flows := newTestManager(&mockGateway{submitErr: gateway.ErrConflict})
	handler := NewSubmitVoteHandler(flows)

	rec := httptest.NewRecorder()
	handler.HandleSubmitVote(rec, authedRequest(http.MethodPost, "/api/votes", submitBody(t, 1, 2, 3)))

	require.Equal(t, http.StatusConflict, rec.Code)
	var resp flowResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, voting.MsgAlreadyVoted, resp.Error.Title)
}

func TestSubmitVoteHandler_Unauthenticated(t *testing.T) {
	flows := newTestManager(&mockGateway{})
	handler := NewSubmitVoteHandler(flows)

	req := httptest.NewRequest(http.MethodPost, "/api/votes", bytes.NewReader(submitBody(t, 1, 2, 3)))
	rec := httptest.NewRecorder()
	handler.HandleSubmitVote(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestShareVoteHandler_CompletesFlow(t *testing.T) {
	flows := newTestManager(&mockGateway{shareOK: true})
	submit := NewSubmitVoteHandler(flows)
	share := NewShareVoteHandler(flows)

	rec := httptest.NewRecorder()
	submit.HandleSubmitVote(rec, authedRequest(http.MethodPost, "/api/votes", submitBody(t, 1, 2, 3)))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	share.HandleShareVote(rec, authedRequest(http.MethodPost, "/api/votes/share", []byte(`{"castHash":"0xcast"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp flowResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, voting.StateCongrats, resp.State, "congrats is shown before verification resolves")

	flow, ok := flows.Peek(42)
	require.True(t, ok)
	require.Eventually(t, func() bool { return !flow.Verifying() }, time.Second, 10*time.Millisecond)
}

func TestShareVoteHandler_DismissedComposerStaysSharing(t *testing.T) {
	flows := newTestManager(&mockGateway{shareOK: true})
	submit := NewSubmitVoteHandler(flows)
	share := NewShareVoteHandler(flows)

	rec := httptest.NewRecorder()
	submit.HandleSubmitVote(rec, authedRequest(http.MethodPost, "/api/votes", submitBody(t, 1, 2, 3)))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	share.HandleShareVote(rec, authedRequest(http.MethodPost, "/api/votes/share", []byte(`{"castHash":""}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp flowResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, voting.StateSharing, resp.State)
	require.NotNil(t, resp.Error)
	assert.Equal(t, voting.MsgShareNotCompleted, resp.Error.Title)
}

func TestShareVoteHandler_NoActiveFlow(t *testing.T) {
	flows := newTestManager(&mockGateway{})
	share := NewShareVoteHandler(flows)

	rec := httptest.NewRecorder()
	share.HandleShareVote(rec, authedRequest(http.MethodPost, "/api/votes/share", []byte(`{"castHash":"0xcast"}`)))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSkipVoteHandler_BeforeSubmitIsNoop(t *testing.T) {
	flows := newTestManager(&mockGateway{})
	flowHandler := NewGetFlowHandler(flows)
	skip := NewSkipVoteHandler(flows)

	// Materialize a flow in the composing state.
	rec := httptest.NewRecorder()
	flowHandler.HandleGetFlow(rec, authedRequest(http.MethodGet, "/api/votes/flow", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	skip.HandleSkipVote(rec, authedRequest(http.MethodPost, "/api/votes/skip", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["completed"], "skipping with no confirmed vote is pure navigation")
}

func TestSkipVoteHandler_AfterSubmitCompletes(t *testing.T) {
	flows := newTestManager(&mockGateway{})
	submit := NewSubmitVoteHandler(flows)
	skip := NewSkipVoteHandler(flows)

	rec := httptest.NewRecorder()
	submit.HandleSubmitVote(rec, authedRequest(http.MethodPost, "/api/votes", submitBody(t, 1, 2, 3)))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	skip.HandleSkipVote(rec, authedRequest(http.MethodPost, "/api/votes/skip", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["completed"])
	assert.Equal(t, string(voting.StateCongrats), resp["state"])
}

func TestGetFlowHandler_FreshFlowIsComposing(t *testing.T) {
	flows := newTestManager(&mockGateway{})
	handler := NewGetFlowHandler(flows)

	rec := httptest.NewRecorder()
	handler.HandleGetFlow(rec, authedRequest(http.MethodGet, "/api/votes/flow", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp flowResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, voting.StateComposing, resp.State)
	assert.Empty(t, resp.VoteID)
}
