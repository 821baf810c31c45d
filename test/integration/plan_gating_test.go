package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathpilot_backend/test/helpers"
)

type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details struct {
			Feature    string `json:"feature"`
			UpgradeURL string `json:"upgrade_url"`
		} `json:"details"`
	} `json:"error"`
}

func TestResumeImproveQuota(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token, _ := ts.RegisterAndLogin(t, "quota@test.dev", "password123")

	improve := map[string]string{"resume_text": "I write Go services"}

	// free-тариф дает две генерации в месяц
	var resp struct {
		ImprovedText         string `json:"improved_text"`
		GenerationsRemaining *int   `json:"generations_remaining"`
	}
	status := ts.DoJSON(t, http.MethodPost, "/api/v1/resumes/improve", token, improve, &resp)
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, resp.ImprovedText)
	require.NotNil(t, resp.GenerationsRemaining)
	assert.Equal(t, 1, *resp.GenerationsRemaining)

	status = ts.DoJSON(t, http.MethodPost, "/api/v1/resumes/improve", token, improve, &resp)
	require.Equal(t, http.StatusOK, status)

	var apiErr apiError
	status = ts.DoJSON(t, http.MethodPost, "/api/v1/resumes/improve", token, improve, &apiErr)
	require.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "PLAN_LIMIT", apiErr.Error.Code)
	assert.Equal(t, "resume_ai", apiErr.Error.Details.Feature)
	assert.Equal(t, "/pricing", apiErr.Error.Details.UpgradeURL)
	assert.Contains(t, apiErr.Error.Message, "Upgrade your plan to continue. Visit the Pricing page.")

	// апгрейд тарифа снимает блокировку
	ts.SetPlan(t, token, "pro")
	status = ts.DoJSON(t, http.MethodPost, "/api/v1/resumes/improve", token, improve, &resp)
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, resp.GenerationsRemaining)
	assert.Equal(t, 17, *resp.GenerationsRemaining)
}

func TestChatQuotaAndConversation(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token, _ := ts.RegisterAndLogin(t, "coach@test.dev", "password123")

	var resp struct {
		ConversationID string `json:"conversation_id"`
		Reply          string `json:"reply"`
		Remaining      *int   `json:"remaining"`
	}
	status := ts.DoJSON(t, http.MethodPost, "/api/v1/chat", token, map[string]string{
		"message": "How do I become a data engineer?",
	}, &resp)
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, resp.ConversationID)
	assert.NotEmpty(t, resp.Reply)
	require.NotNil(t, resp.Remaining)
	assert.Equal(t, 9, *resp.Remaining)

	// история диалога доступна владельцу
	var history struct {
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	status = ts.DoJSON(t, http.MethodGet, "/api/v1/chat/"+resp.ConversationID+"/messages", token, nil, &history)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, history.Messages, 2)
	assert.Equal(t, "user", history.Messages[0].Role)

	// исчерпываем оставшиеся сообщения
	for i := 0; i < 9; i++ {
		status = ts.DoJSON(t, http.MethodPost, "/api/v1/chat", token, map[string]string{
			"conversation_id": resp.ConversationID,
			"message":         "and then?",
		}, &resp)
		require.Equal(t, http.StatusOK, status)
	}

	var apiErr apiError
	status = ts.DoJSON(t, http.MethodPost, "/api/v1/chat", token, map[string]string{
		"message": "one more",
	}, &apiErr)
	require.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "PLAN_LIMIT", apiErr.Error.Code)
	assert.Equal(t, "career_chat", apiErr.Error.Details.Feature)
}

func TestSubscriptionMeAndUpgrade(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token, _ := ts.RegisterAndLogin(t, "plans@test.dev", "password123")

	var me struct {
		Plan            string `json:"plan"`
		PlanDisplayName string `json:"plan_display_name"`
		Currency        string `json:"currency"`
		Usage           map[string]struct {
			Used  int  `json:"used"`
			Limit *int `json:"limit"`
		} `json:"usage"`
	}
	status := ts.DoJSON(t, http.MethodGet, "/api/v1/subscription/me", token, nil, &me)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "free", me.Plan)
	assert.Equal(t, "Explorer", me.PlanDisplayName)
	assert.Equal(t, "EUR", me.Currency)
	require.Contains(t, me.Usage, "resume_ai")
	require.NotNil(t, me.Usage["resume_ai"].Limit)
	assert.Equal(t, 2, *me.Usage["resume_ai"].Limit)

	ts.SetPlan(t, token, "premium")
	status = ts.DoJSON(t, http.MethodGet, "/api/v1/subscription/me", token, nil, &me)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Career Accelerator", me.PlanDisplayName)
	assert.Nil(t, me.Usage["resume_ai"].Limit)

	// неизвестный тариф отклоняется
	status = ts.DoJSON(t, http.MethodPost, "/api/v1/subscription/plan", token,
		map[string]string{"plan": "enterprise"}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}
