package media

import "leander-social/internal/domain"

var videoTypes = map[string]bool{
	"video/mp4":        true,
	"video/quicktime":  true,
	"video/x-msvideo":  true,
	"video/x-matroska": true,
	"video/webm":       true,
	"video/ogg":        true,
}

var imageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var documentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   true,
	"application/vnd.ms-excel":                                                  true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         true,
	"application/vnd.ms-powerpoint":                                             true,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,
	"text/plain": true,
}

var profileImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// ClassifyPublicationFile returns the file type and storage directory for an
// accepted publication attachment.
func ClassifyPublicationFile(mimeType string) (domain.FileType, string, bool) {
	switch {
	case videoTypes[mimeType]:
		return domain.FileTypeVideo, "publications/videos", true
	case imageTypes[mimeType]:
		return domain.FileTypeImage, "publications/images", true
	case documentTypes[mimeType]:
		return domain.FileTypeDocument, "publications/documents", true
	default:
		return domain.FileTypeOther, "", false
	}
}

func IsProfileImage(mimeType string) bool {
	return profileImageTypes[mimeType]
}
