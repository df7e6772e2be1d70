package rest

type CastVoteParams struct {
	RoomID    string `json:"room_id"`
	ContentID string `json:"content_id"`
	UserID    string `json:"user_id"`
}

type AddExpenseParams struct {
	ExpenseID   string  `json:"expense_id"`
	RoomID      string  `json:"room_id"`
	UserID      string  `json:"user_id"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Weight      float64 `json:"weight"`
}
