package api

import "soundeck/internal/types"

type settingsResponse struct {
	Settings *types.Settings `json:"settings"`
}

type soundsResponse struct {
	Sounds []types.Clip `json:"sounds"`
}

type saveSoundsRequest struct {
	Sounds []types.Clip `json:"sounds"`
}

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// UploadResult describes a stored upload.
type UploadResult struct {
	ID           string `json:"id"`
	FileName     string `json:"fileName"`
	FileURL      string `json:"fileUrl"`
	FileSize     int64  `json:"fileSize"`
	OriginalName string `json:"originalName"`
}

type errorResponse struct {
	Error string `json:"error"`
}
