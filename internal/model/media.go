package model

// Profile photo constraints and storage layout.
const (
	MaxProfilePhotoSizeBytes = 5 * 1024 * 1024 // 5MB limit on the decoded image
	ProfilePhotoWidth        = 400
	ProfilePhotoHeight       = 400
	ProfilePhotoFolder       = "avatars"
	ProfilePhotoExt          = ".jpg"
	ProfilePhotoCacheControl = "public, max-age=31536000" // 1 year
)

// Supported image content types for profile photos.
const (
	ContentTypeJPEG = "image/jpeg"
	ContentTypePNG  = "image/png"
	ContentTypeWebP = "image/webp"
)

var allowedImageTypes = map[string]struct{}{
	ContentTypeJPEG: {},
	ContentTypePNG:  {},
	ContentTypeWebP: {},
}

// IsAllowedImageType reports if the provided content type is supported
func IsAllowedImageType(contentType string) bool {
	_, ok := allowedImageTypes[contentType]
	return ok
}

// UploadResult represents the uploaded object location
type UploadResult struct {
	URL string `json:"url"`
	Key string `json:"key"`
}
