package fsm

import (
	"context"
	"database/sql"
	"strings"

	"portalBack/internal/models"
)

// Allowed transitions for marketplace_responses.response_status. A response
// enters as INTERESTED or OFFERED; the customer accepts or declines it, and
// accepting one response rejects its siblings.
var responseTransitions = map[string]map[string]struct{}{
	models.ResponseInterested: {
		models.ResponseOffered:  {},
		models.ResponseAccepted: {},
		models.ResponseRejected: {},
		models.ResponseDeclined: {},
	},
	models.ResponseOffered: {
		models.ResponseAccepted: {},
		models.ResponseRejected: {},
		models.ResponseDeclined: {},
	},
	models.ResponseAccepted: {},
	models.ResponseRejected: {},
	models.ResponseDeclined: {},
}

// Allowed transitions for marketplace_requests.status.
var requestTransitions = map[string]map[string]struct{}{
	"available": {"booked": {}, "cancelled": {}},
	"booked":    {"completed": {}, "cancelled": {}},
	"completed": {},
	"cancelled": {},
}

// CanTransitionResponse reports whether a response may move between the two
// statuses. Same-status transitions are allowed so replayed events are no-ops.
func CanTransitionResponse(from, to string) bool {
	if from == to {
		return true
	}
	allowed, ok := responseTransitions[from]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}

// CanTransitionRequest reports whether a request may move between the two statuses.
func CanTransitionRequest(from, to string) bool {
	if from == to {
		return true
	}
	allowed, ok := requestTransitions[from]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}

// ApplyResponse moves a response from one of the fromStatuses to toStatus
// with a conditional update. Returns sql.ErrNoRows when no row matched,
// which callers treat as either already-applied or a conflict depending on
// the current row status.
func ApplyResponse(ctx context.Context, tx *sql.Tx, responseID, toStatus string, fromStatuses ...string) error {
	for _, from := range fromStatuses {
		if !CanTransitionResponse(from, toStatus) {
			return models.ErrInvalidTransition
		}
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE marketplace_responses SET response_status = $1 WHERE id = $2 AND response_status = ANY($3)`,
		toStatus, responseID, statusArray(fromStatuses))
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ApplyRequest moves a request between statuses with a conditional update.
func ApplyRequest(ctx context.Context, tx *sql.Tx, requestID, fromStatus, toStatus string) error {
	if !CanTransitionRequest(fromStatus, toStatus) {
		return models.ErrInvalidTransition
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE marketplace_requests SET status = $1 WHERE id = $2 AND status = $3`,
		toStatus, requestID, fromStatus)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// statusArray renders a Postgres text array literal for ANY(). Elements are
// quoted so commas, braces and quotes inside a value cannot break the literal.
func statusArray(statuses []string) string {
	out := "{"
	for i, s := range statuses {
		if i > 0 {
			out += ","
		}
		s = strings.ReplaceAll(s, `\`, `\\`)
		s = strings.ReplaceAll(s, `"`, `\"`)
		out += `"` + s + `"`
	}
	return out + "}"
}
