package domain

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailTaken           = errors.New("email or nick already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrSelfFollow           = errors.New("cannot follow yourself")
	ErrInvalidRole          = errors.New("role not allowed")
	ErrForbidden            = errors.New("insufficient permissions")
	ErrTokenExpired         = errors.New("token expired")
	ErrInvalidToken         = errors.New("invalid token")
	ErrPublicationNotFound  = errors.New("publication not found")
	ErrCommentNotFound      = errors.New("comment not found")
	ErrForumPostNotFound    = errors.New("forum post not found")
	ErrEventNotFound        = errors.New("event not found")
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrUnsupportedFileType  = errors.New("unsupported file type")
	ErrTooManyFiles         = errors.New("too many files")
	ErrFileNotFound         = errors.New("file not found")
	ErrStorageUnavailable   = errors.New("file storage not configured")
)
