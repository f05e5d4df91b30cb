package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// Context keys
	ContextKeyUserID  = "user_id"
	ContextKeyIsAdmin = "is_admin"

	// Roles carried in token claims
	RoleUser  = "user"
	RoleAdmin = "admin"

	// Database table names
	TableProfiles          = "profiles"
	TableSubscriptionPlans = "subscription_plans"
	TableSubscriptions     = "subscriptions"
	TablePaymentRequests   = "payment_requests"
	TableTokenTransactions = "token_transactions"
	TableContactRequests   = "contact_requests"
	TableBankSettings      = "bank_settings"

	// Billing defaults
	DefaultCurrency          = "USD"
	PaymentRequestExpiryDays = 7
	MonthlySubscriptionDays  = 30
	YearlySubscriptionDays   = 365

	// Bounded retries for per-user ledger contention
	LedgerConflictMaxAttempts = 3

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgResourceNotFound    = "Resource not found"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgForbidden           = "Access forbidden"
	ErrMsgValidationFailed    = "Validation failed"
)
