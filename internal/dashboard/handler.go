package dashboard

import (
	"log/slog"
	"sync"

	"github.com/gofiber/fiber/v2"

	"github.com/quantum-banking/webapp/internal/backend"
	"github.com/quantum-banking/webapp/internal/flow"
	"github.com/quantum-banking/webapp/internal/middleware"
	"github.com/quantum-banking/webapp/internal/session"
)

const pageSize = 10

// Handler serves the dashboard screen from the API read-models.
type Handler struct {
	api      *backend.Client
	sessions session.Store
	flows    *flow.Registry
	logger   *slog.Logger
}

// NewHandler builds the dashboard handler.
func NewHandler(api *backend.Client, sessions session.Store, flows *flow.Registry, logger *slog.Logger) *Handler {
	return &Handler{api: api, sessions: sessions, flows: flows, logger: logger}
}

// txRow is a transaction prepared for rendering.
type txRow struct {
	Icon        string
	Class       string
	Description string
	Date        string
	Amount      string
	Type        string
}

// Show fetches the snapshot and the requested transaction page and renders
// the active tab. The two fetches run independently: a snapshot failure
// blocks the whole view behind an error screen with a retry control, while a
// transaction failure only leaves the list empty.
func (h *Handler) Show(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	sid := middleware.CurrentSessionID(c)
	// Seeds the machine on the dashboard screen for sessions restored from
	// the store, e.g. after a process restart.
	h.flows.Get(sid, true)

	tab := c.Query("tab", "overview")
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	txType := c.Query("type")
	if txType != "credit" && txType != "debit" {
		txType = ""
	}

	ctx := c.UserContext()
	var (
		wg      sync.WaitGroup
		snap    backend.Snapshot
		snapErr error
		txPage  backend.TransactionPage
		txErr   error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		snap, snapErr = h.api.Dashboard(ctx, sess.Token)
	}()
	go func() {
		defer wg.Done()
		txPage, txErr = h.api.Transactions(ctx, sess.Token, page, pageSize, txType)
	}()
	wg.Wait()

	if snapErr != nil {
		if backend.ShouldClearSession(snapErr) {
			h.logger.Info("session invalidated by api", slog.String("session_id", sid))
			if err := h.sessions.Clear(ctx, sid); err != nil {
				h.logger.Warn("session clear failed", slog.Any("error", err))
			}
			h.flows.Drop(sid)
			return c.Redirect("/login", fiber.StatusFound)
		}
		return c.Render("dashboard", fiber.Map{
			"Title": "Dashboard",
			"Error": backend.Message(snapErr),
		})
	}

	if txErr != nil {
		// Swallowed: the history tab simply renders empty.
		h.logger.Warn("transaction fetch failed", slog.Any("error", txErr))
		txPage = backend.TransactionPage{}
	}

	data := fiber.Map{
		"Title":         "Dashboard",
		"Tab":           tab,
		"User":          snap.User,
		"Profile":       sess.User,
		"Balance":       FormatCurrency(snap.Account.Balance),
		"AccountType":   snap.Account.AccountType,
		"Summary":       h.summaryView(snap.MonthlySummary),
		"Recent":        h.txRows(snap.RecentTransactions),
		"QuickActions":  snap.QuickActions,
		"Transactions":  h.txRows(txPage.Transactions),
		"Page":          page,
		"PrevPage":      page - 1,
		"NextPage":      page + 1,
		"HasPrev":       page > 1,
		"HasNext":      len(txPage.Transactions) == pageSize,
		"Type":         txType,
	}

	if tab == "overview" && c.Query("detail") == "1" {
		summary, err := h.api.AccountSummary(ctx, sess.Token)
		if err != nil {
			h.logger.Warn("account summary fetch failed", slog.Any("error", err))
		} else {
			data["Balances"] = fiber.Map{
				"Current":   FormatCurrency(summary.Balances.CurrentBalance),
				"Available": FormatCurrency(summary.Balances.AvailableBalance),
				"Minimum":   FormatCurrency(summary.Balances.MinimumBalance),
			}
		}
	}

	return c.Render("dashboard", data)
}

func (h *Handler) summaryView(s backend.MonthlySummary) fiber.Map {
	return fiber.Map{
		"Credits":   FormatCurrency(s.TotalCredits),
		"Debits":    FormatCurrency(s.TotalDebits),
		"NetChange": FormatCurrency(s.NetChange),
		"Positive":  s.NetChange >= 0,
		"Count":     s.TransactionCount,
	}
}

func (h *Handler) txRows(txs []backend.Transaction) []txRow {
	rows := make([]txRow, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, txRow{
			Icon:        TypeIcon(tx.Type),
			Class:       TypeClass(tx.Type),
			Description: tx.Description,
			Date:        FormatDate(tx.Date),
			Amount:      FormatCurrency(tx.Amount),
			Type:        tx.Type,
		})
	}
	return rows
}
