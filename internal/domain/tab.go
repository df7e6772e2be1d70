package domain

import (
	"errors"
	"fmt"
)

var ErrUnknownTab = errors.New("unknown tab")

type Tab string

const (
	TabChat     Tab = "chat"
	TabVote     Tab = "vote"
	TabExpenses Tab = "expenses"
)

func ParseTab(s string) (Tab, error) {
	switch tab := Tab(s); tab {
	case TabChat, TabVote, TabExpenses:
		return tab, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTab, s)
	}
}
