package session

import (
	"strconv"
	"strings"

	"github.com/mmr-tortoise/docker-manager/internal/model"
)

// menuKeys maps the menu entry numbers to actions.
var menuKeys = map[string]model.Action{
	"1": model.ActionStart,
	"2": model.ActionStop,
	"3": model.ActionRestart,
	"4": model.ActionStatus,
	"5": model.ActionLogs,
	"6": model.ActionExit,
}

// ParseChoice maps raw operator input to an action. Surrounding whitespace
// is ignored; anything that is not a menu key yields model.ActionInvalid.
func ParseChoice(raw string) model.Action {
	if action, ok := menuKeys[strings.TrimSpace(raw)]; ok {
		return action
	}
	return model.ActionInvalid
}

// ParseTail converts the operator's log line count into a tail bound.
// Only a plain decimal literal is accepted. Empty input, signs, other
// characters and values that do not fit an int all yield 0 (full history).
// A literal zero also yields 0, since only positive counts bound the logs.
func ParseTail(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
