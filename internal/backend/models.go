package backend

// UserProfile is the identity bundle returned by the API after OTP verification
// and embedded in the dashboard snapshot.
type UserProfile struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	AccountNumber string `json:"account_number"`
	Email         string `json:"email"`
	MemberSince   string `json:"member_since,omitempty"`
}

// RegisterInput is the payload for POST /auth/register.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResult carries the server-assigned account number.
type RegisterResult struct {
	Message       string `json:"message"`
	AccountNumber string `json:"account_number"`
}

// LoginInput is the payload for POST /auth/login.
type LoginInput struct {
	AccountNumber string `json:"account_number"`
	Password      string `json:"password"`
}

// LoginResult reports the outcome of a credential check. Status is "otp_sent"
// when a one-time passcode has been issued. DebugOTP is populated only by
// development deployments of the API.
type LoginResult struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	ExpiryMinutes int    `json:"expiry_minutes"`
	DebugOTP      string `json:"debug_otp,omitempty"`
}

// VerifyInput is the payload for POST /auth/verify-otp.
type VerifyInput struct {
	AccountNumber string `json:"account_number"`
	OTP           string `json:"otp"`
}

// VerifyResult carries the bearer token and profile issued on successful
// verification.
type VerifyResult struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *UserProfile `json:"user"`
}

// Account is the read-optimised projection of the account inside the
// dashboard snapshot.
type Account struct {
	Balance     float64 `json:"balance"`
	Currency    string  `json:"currency"`
	AccountType string  `json:"account_type"`
}

// MonthlySummary aggregates the current month's activity.
type MonthlySummary struct {
	TotalCredits     float64 `json:"total_credits"`
	TotalDebits      float64 `json:"total_debits"`
	NetChange        float64 `json:"net_change"`
	TransactionCount int     `json:"transaction_count"`
}

// Transaction is the read-optimised projection of a single ledger entry.
type Transaction struct {
	ID           string  `json:"id"`
	Type         string  `json:"type"`
	Amount       float64 `json:"amount"`
	Description  string  `json:"description"`
	Date         string  `json:"date"`
	BalanceAfter float64 `json:"balance_after,omitempty"`
}

// QuickAction is a suggested shortcut rendered on the dashboard.
type QuickAction struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Snapshot is the aggregate read-model returned by GET /dashboard/me.
type Snapshot struct {
	User               *UserProfile  `json:"user"`
	Account            Account       `json:"account"`
	RecentTransactions []Transaction `json:"recent_transactions"`
	MonthlySummary     MonthlySummary `json:"monthly_summary"`
	QuickActions       []QuickAction `json:"quick_actions"`
}

// TransactionPage is the payload of GET /dashboard/transactions.
type TransactionPage struct {
	Transactions []Transaction `json:"transactions"`
	Page         int           `json:"page"`
	Limit        int           `json:"limit"`
	Total        int           `json:"total,omitempty"`
}

// AccountSummary is the payload of GET /dashboard/account-summary.
type AccountSummary struct {
	Account struct {
		AccountNumber string `json:"account_number"`
		AccountType   string `json:"account_type"`
		Status        string `json:"status,omitempty"`
	} `json:"account"`
	Balances struct {
		CurrentBalance   float64 `json:"current_balance"`
		AvailableBalance float64 `json:"available_balance"`
		MinimumBalance   float64 `json:"minimum_balance"`
	} `json:"balances"`
}
