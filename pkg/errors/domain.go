package errors

// Domain errors shared across services. ErrInvalidCredentials is the single
// message for both unknown-email and wrong-password so responses cannot be
// used to enumerate accounts.
var (
	ErrInvalidCredentials = Unauthorized("invalid credentials")
	ErrEmailTaken         = AlreadyExists("email address is already registered")
	ErrUserNotFound       = NotFound("user not found")
	ErrSessionNotFound    = NotFound("session not found")
	ErrSessionInvalid     = Unauthorized("session is revoked or expired")
	ErrInvalidToken       = Unauthorized("invalid or expired token")

	ErrConversationNotFound = NotFound("conversation not found")
	ErrNotMember            = Unauthorized("user is not part of the conversation")
	ErrSelfConversation     = Invalid("cannot create a private conversation with yourself")
	ErrNotGroup             = Invalid("members can only be added to group conversations")
	ErrNameRequired         = Invalid("name is required for group conversations")
	ErrRoleForbidden        = Unauthorized("role is not allowed to add members")
)
