package rest

import (
	"context"
	"fmt"
)

func (r *repo) AddExpense(ctx context.Context, params *AddExpenseParams) error {
	if err := r.postJSON(ctx, r.endpoint("expenses"), params, nil); err != nil {
		return fmt.Errorf("failed to add expense: %w", err)
	}

	return nil
}

func (r *repo) GetExpenses(ctx context.Context, roomID string) ([]Expense, error) {
	var resp expensesResponse
	if err := r.getJSON(ctx, r.endpoint("expenses", roomID), &resp); err != nil {
		return nil, fmt.Errorf("failed to get expenses: %w", err)
	}

	return resp.Expenses, nil
}

func (r *repo) GetBalances(ctx context.Context, roomID string) ([]Balance, error) {
	var resp balancesResponse
	if err := r.getJSON(ctx, r.endpoint("expenses", roomID, "balances"), &resp); err != nil {
		return nil, fmt.Errorf("failed to get balances: %w", err)
	}

	return resp.Balances, nil
}
