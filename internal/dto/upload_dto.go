package dto

type UploadUrlRequest struct {
	Filename string `query:"filename" validate:"required,max=255"`
}

// UploadUrlResponse keeps the field names editors already use for presigned uploads.
type UploadUrlResponse struct {
	UploadUrl string `json:"uploadUrl"`
	ImageUrl  string `json:"imageUrl"`
}
