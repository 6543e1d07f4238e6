package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"event-platform/internal/auth"
	"event-platform/internal/handler"
	"event-platform/internal/service/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const InvalidJSON = `{"invalid": json}`

var testTokens = auth.NewTokenManager("test-secret-key-for-event-platform", time.Hour, "event-platform")

func init() {
	gin.SetMode(gin.TestMode)
}

type serviceMocks struct {
	users      *mocks.UserServiceMock
	auth       *mocks.AuthServiceMock
	events     *mocks.EventServiceMock
	tickets    *mocks.TicketServiceMock
	activities *mocks.ActivityServiceMock
}

func setupTestRouter(t *testing.T) (*gin.Engine, *serviceMocks) {
	t.Helper()
	return setupTestRouterWithActiveCheck(t, nil)
}

// setupTestRouterWithActiveCheck activeErr 是 RequireAuth 檢查帳號狀態時的回傳值
func setupTestRouterWithActiveCheck(t *testing.T, activeErr error) (*gin.Engine, *serviceMocks) {
	t.Helper()
	m := &serviceMocks{
		users:      mocks.NewUserServiceMock(t),
		auth:       mocks.NewAuthServiceMock(t),
		events:     mocks.NewEventServiceMock(t),
		tickets:    mocks.NewTicketServiceMock(t),
		activities: mocks.NewActivityServiceMock(t),
	}
	m.users.On("EnsureActive", mock.Anything, mock.Anything).Return(activeErr).Maybe()
	router := handler.NewRouter(handler.Services{
		Users:      m.users,
		Auth:       m.auth,
		Events:     m.events,
		Tickets:    m.tickets,
		Activities: m.activities,
	}, handler.RouterOptions{Tokens: testTokens})
	return router, m
}

func bearer(t *testing.T, userID int) string {
	t.Helper()
	token, err := testTokens.Issue(userID)
	require.NoError(t, err)
	return "Bearer " + token
}

// doRequest body 為 string 時原樣送出，其餘編成 JSON；userID 為 0 時不帶 token
func doRequest(t *testing.T, router *gin.Engine, method, url string, body interface{}, userID int) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if userID > 0 {
		req.Header.Set("Authorization", bearer(t, userID))
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) (message, kind string) {
	t.Helper()
	var body struct {
		Error string `json:"error"`
		Kind  string `json:"kind"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error, body.Kind
}
