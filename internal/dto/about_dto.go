package dto

import "time"

// AboutResponse carries the raw block document for the admin editor.
type AboutResponse struct {
	Content   any        `json:"content"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type CommitAboutResponse struct {
	UpdatedAt time.Time                `json:"updated_at"`
	Uploaded  []*UploadedAssetResponse `json:"uploaded"`
}

type PublicAboutResponse struct {
	Html      string    `json:"html"`
	UpdatedAt time.Time `json:"updated_at"`
}
