package audithook

// Action constants for audit events.
const (
	// Client actions
	ActionClientRegistered = "client.registered"

	// Account actions
	ActionAccountOpened = "account.opened"

	// Transaction actions
	ActionDeposit             = "transaction.deposit"
	ActionWithdrawal          = "transaction.withdrawal"
	ActionTransactionRejected = "transaction.rejected"
)

// Resource constants for audit events.
const (
	ResourceClient      = "client"
	ResourceAccount     = "account"
	ResourceTransaction = "transaction"
)

// Category constants for audit events.
const (
	CategoryOnboarding = "onboarding"
	CategoryAccount    = "account"
	CategoryMovement   = "movement"
)

// Severity levels for audit events.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
