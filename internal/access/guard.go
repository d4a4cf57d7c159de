// Package access - предикат авторизации для всех мутаций ядра.
package access

import (
	"github.com/shenikar/raynet_coordinator/internal/apperr"
	"github.com/shenikar/raynet_coordinator/internal/models"
)

type Action string

const (
	ActionCreate         Action = "create"
	ActionUpdate         Action = "update"
	ActionDelete         Action = "delete"
	ActionLink           Action = "link"
	ActionAddOperator    Action = "addOperator"
	ActionRemoveOperator Action = "removeOperator"
	ActionSetStatus      Action = "setStatus"
	ActionCheckIn        Action = "checkIn"
	ActionWelfareCheck   Action = "welfareCheck"
	ActionEditLog        Action = "editLog"
)

// IsAuthorized решает, может ли principal выполнить action над событием.
// subject - целевой оператор для операций присутствия и ростера, автор записи для editLog.
func IsAuthorized(p models.Principal, event *models.Event, action Action, subject string) bool {
	if !p.Authenticated() {
		return false
	}
	if p.IsAdmin() {
		return true
	}

	isCreator := event != nil && event.CreatedBy == p.ID

	switch action {
	case ActionCreate:
		return true
	case ActionUpdate, ActionDelete, ActionLink:
		return isCreator
	case ActionAddOperator, ActionRemoveOperator:
		return isCreator || (subject != "" && subject == p.ID)
	case ActionSetStatus, ActionCheckIn, ActionWelfareCheck:
		return subject != "" && subject == p.ID
	case ActionEditLog:
		return isCreator || (subject != "" && subject == p.ID)
	}
	return false
}

// Authorize - то же, что IsAuthorized, но нарушение возвращается как Forbidden
func Authorize(p models.Principal, event *models.Event, action Action, subject string) error {
	if !p.Authenticated() {
		return apperr.Unauthenticated("authentication required")
	}
	if !IsAuthorized(p, event, action, subject) {
		return apperr.Forbidden("not authorized to %s this event", action)
	}
	return nil
}
