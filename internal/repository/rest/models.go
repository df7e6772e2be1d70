package rest

import "encoding/json"

// Expense amounts and weights arrive as decimal strings or numbers;
// json.Number accepts both.
type Expense struct {
	ExpenseID string      `json:"expense_id"`
	RoomID    string      `json:"room_id"`
	UserID    string      `json:"user_id"`
	Amount    json.Number `json:"amount"`
	Note      string      `json:"note"`
	Weight    json.Number `json:"weight,omitempty"`
}

type Balance struct {
	UserID string      `json:"user_id"`
	Paid   json.Number `json:"paid,omitempty"`
	Owed   json.Number `json:"owed,omitempty"`
	Net    json.Number `json:"net"`
}

type expensesResponse struct {
	Expenses []Expense `json:"expenses"`
}

type balancesResponse struct {
	Balances []Balance `json:"balances"`
}

type healthResponse struct {
	Status string `json:"status"`
}
