package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"

	"replyloop.app/engine/common/id"
	"replyloop.app/engine/internal/http/dto"
	"replyloop.app/engine/internal/http/middleware"
	"replyloop.app/engine/internal/model"
	"replyloop.app/engine/internal/store"
)

// AccountCreator mirrors store.AccountCreator: a cap-checked insert that
// runs the count and the create in one transaction.
type AccountCreator interface {
	CreateWithinLimit(ctx context.Context, account *model.MonitoredAccount, maxAccounts int) error
}

var _ AccountCreator = (*store.AccountCreator)(nil)

type AccountHandler struct {
	accounts store.AccountStore
	creator  AccountCreator
}

func NewAccountHandler(accounts store.AccountStore, creator AccountCreator) *AccountHandler {
	return &AccountHandler{accounts: accounts, creator: creator}
}

func (h *AccountHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)
	plan := middleware.UserPlan(c)

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account := model.MonitoredAccount{
		ID:          id.New(),
		UserID:      userID,
		Handle:      strings.TrimPrefix(req.Handle, "@"),
		DisplayName: req.DisplayName,
		Category:    req.Category,
	}
	if err := h.creator.CreateWithinLimit(ctx, &account, plan.MaxAccounts()); err != nil {
		if errors.Is(err, store.ErrAccountLimit) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": fmt.Sprintf("plan %q allows at most %d monitored accounts", plan, plan.MaxAccounts()),
			})
			return
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			c.JSON(http.StatusConflict, gin.H{"error": "account is already monitored"})
			return
		}
		slog.ErrorContext(ctx, "failed to create account", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add account"})
		return
	}

	slog.InfoContext(ctx, "monitored account added", "handle", account.Handle)
	c.JSON(http.StatusCreated, dto.ToAccountResponse(&account))
}

func (h *AccountHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	accounts, err := h.accounts.ListByUser(ctx, middleware.UserID(c))
	if err != nil {
		slog.ErrorContext(ctx, "failed to list accounts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list accounts"})
		return
	}

	out := make([]*dto.AccountResponse, len(accounts))
	for i := range accounts {
		out[i] = dto.ToAccountResponse(&accounts[i])
	}
	c.JSON(http.StatusOK, gin.H{"accounts": out})
}

func (h *AccountHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	accountID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account id"})
		return
	}

	if err := h.accounts.Delete(ctx, accountID, middleware.UserID(c)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to delete account", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete account"})
		return
	}

	c.Status(http.StatusNoContent)
}
