package controller

import (
	"encoding/json"

	"github.com/sharetube/partyclient/internal/domain"
	"github.com/sharetube/partyclient/internal/repository/rest"
)

const (
	NoticeChatRateLimited      = "You are sending messages too fast. Wait 2 seconds."
	NoticeEmojiRateLimited     = "You are sending emojis too fast. Wait 2 seconds."
	NoticeVoteRecorded         = "Your vote has been recorded!"
	NoticeExpenseMissingFields = "Please enter a description and an amount."
	NoticeExpenseAdded         = "Expense added!"
)

// View is the surface the controller renders to. Calls happen on the
// controller goroutine only.
type View interface {
	SetActiveTab(tab domain.Tab)
	SetPlaying(isPlaying bool)
	SetProgress(percent float64, label string)
	SetSyncConfirmed(confirmed bool)
	SetCountdown(label string)
	SetConnected(connected bool)
	AppendChat(userID, text string)
	Notify(message string)
	RenderCandidates(candidates json.RawMessage)
	RenderTally(tally json.RawMessage)
	RenderRooms(rooms json.RawMessage)
	RenderExpenses(expenses []rest.Expense)
	RenderBalances(balances []rest.Balance)
	ClearExpenseForm()
}
