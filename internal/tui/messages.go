package tui

import (
	"github.com/matheuskafuri/billwatch/internal/collection"
	"github.com/matheuskafuri/billwatch/internal/detail"
)

type loadDoneMsg struct {
	result collection.Result
}

// detailLoadedMsg carries the token of the overlay that asked for it.
type detailLoadedMsg struct {
	token uint64
	value detail.Value
	err   error
}

type errMsg struct {
	err error
}
