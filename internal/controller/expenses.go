package controller

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sharetube/partyclient/internal/repository/rest"
)

const defaultExpenseWeight = 1.0

type expenseForm struct {
	Description string  `json:"description" validate:"required"`
	Amount      float64 `json:"amount" validate:"required"`
}

// parseAmount returns 0 for anything that is not a finite number, which the
// form then refuses like a zero amount.
func parseAmount(s string) float64 {
	amount, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0
	}

	return amount
}

// AddExpense records a shared expense paid by this user. A blank description
// or an amount of zero is refused before anything is sent.
func (c *Controller) AddExpense(ctx context.Context, description, amount string) {
	c.post(func() {
		form := expenseForm{
			Description: strings.TrimSpace(description),
			Amount:      parseAmount(amount),
		}
		if errs, ok := c.validate.Validate(form); !ok {
			c.logger.DebugContext(ctx, "invalid expense form", "errors", errs)
			c.view.Notify(NoticeExpenseMissingFields)
			return
		}

		params := &rest.AddExpenseParams{
			ExpenseID:   fmt.Sprintf("exp_%d", c.clock.Now().UnixMilli()),
			RoomID:      c.session.RoomID,
			UserID:      c.session.UserID,
			Amount:      form.Amount,
			Description: form.Description,
			Weight:      defaultExpenseWeight,
		}

		c.spawn(func() {
			if err := c.repo.AddExpense(ctx, params); err != nil {
				c.logger.WarnContext(ctx, "failed to add expense", "error", err)
				return
			}

			c.post(func() {
				c.view.ClearExpenseForm()
				c.view.Notify(NoticeExpenseAdded)
				c.loadExpenses(ctx)
			})
		})
	})
}

func (c *Controller) LoadExpenses(ctx context.Context) {
	c.post(func() {
		c.loadExpenses(ctx)
	})
}

// loadExpenses fetches the expense list, then the balances. A failed list
// skips the balances.
func (c *Controller) loadExpenses(ctx context.Context) {
	roomID := c.session.RoomID

	c.spawn(func() {
		expenses, err := c.repo.GetExpenses(ctx, roomID)
		if err != nil {
			c.logger.WarnContext(ctx, "failed to load expenses", "error", err)
			return
		}
		c.post(func() {
			c.view.RenderExpenses(expenses)
		})

		balances, err := c.repo.GetBalances(ctx, roomID)
		if err != nil {
			c.logger.WarnContext(ctx, "failed to load balances", "error", err)
			return
		}
		c.post(func() {
			c.view.RenderBalances(balances)
		})
	})
}
