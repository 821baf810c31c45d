package helpers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// DoJSON выполняет запрос к тестовому серверу и декодирует ответ в out
func (ts *TestServer) DoJSON(t *testing.T, method, path, token string, body interface{}, out interface{}) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	if out != nil && len(data) > 0 {
		require.NoError(t, json.Unmarshal(data, out), "body: %s", string(data))
	}
	return resp.StatusCode
}

// RegisterAndLogin регистрирует пользователя через API и возвращает
// access-токен и его id
func (ts *TestServer) RegisterAndLogin(t *testing.T, email, password string) (token, userID string) {
	t.Helper()

	var resp struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	status := ts.DoJSON(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":     email,
		"password":  password,
		"full_name": "Test User",
	}, &resp)
	require.Equal(t, http.StatusCreated, status, "registration for %s", email)
	require.NotEmpty(t, resp.AccessToken)

	return resp.AccessToken, resp.User.ID
}

// SetPlan переключает тариф пользователя через API
func (ts *TestServer) SetPlan(t *testing.T, token, plan string) {
	t.Helper()

	status := ts.DoJSON(t, http.MethodPost, "/api/v1/subscription/plan", token,
		map[string]string{"plan": plan}, nil)
	require.Equal(t, http.StatusOK, status, fmt.Sprintf("switching to plan %s", plan))
}
