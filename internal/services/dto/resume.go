package dto

import (
	"time"

	"pathpilot_backend/internal/models"
)

type CreateResumeRequest struct {
	Title   string `json:"title"`
	Content string `json:"content" validate:"required"`
}

type ResumeResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ImproveResumeRequest struct {
	ResumeText     string `json:"resume_text" validate:"required"`
	JobDescription string `json:"job_description"`
	Title          string `json:"title"`
}

// ImproveResumeResponse - улучшенный текст сохраняется как новая версия
type ImproveResumeResponse struct {
	ImprovedText         string `json:"improved_text"`
	ResumeID             string `json:"resume_id"`
	GenerationsRemaining *int   `json:"generations_remaining"`
}

func NewResumeResponse(r *models.Resume, withContent bool) ResumeResponse {
	resp := ResumeResponse{
		ID:        r.ID,
		Title:     r.Title,
		CreatedAt: r.CreatedAt,
	}
	if withContent {
		resp.Content = r.Content
	}
	return resp
}
