package constants

// Context and session keys
const (
	ContextKeyUserID    = "user_id"
	ContextKeyPrincipal = "principal"
	SessionCookieName   = "pm_session"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
	MaxPage         = 1000000
)

// Accounts
const (
	MinPasswordLength = 6
)

// Uploads
const (
	MaxUploadFiles = 10
	MaxUploadSize  = 5 << 20 // 5 MiB
	UploadSubdir   = "projects"
	UploadFormKey  = "files"
)

// AllowedUploadExtensions lists the document and image types accepted for project documents.
var AllowedUploadExtensions = []string{".pdf", ".doc", ".docx", ".xls", ".xlsx", ".png", ".jpg", ".jpeg"}

// Dashboard
const (
	RecentItemsLimit = 5
)
