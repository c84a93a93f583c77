package proc

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/novamart/orderhub-backend/pkg/envelope"
	"gorm.io/gorm"
)

// detailLimit bounds driver error text echoed into failure envelopes.
const detailLimit = 300

// nullResultText is returned when a procedure yields no row or a NULL
// value; the envelope parser treats code 1 as an internal fault.
const nullResultText = `{"errorCode":1,"message":"null result"}`

// Gateway invokes named stored procedures over a borrowed connection and
// always returns a JSON envelope text, even when execution fails. Callers
// can therefore hand every result straight to envelope.Parse.
type Gateway struct{}

func New() *Gateway {
	return &Gateway{}
}

// Call executes query (a single SELECT of one procedure) with named binds
// on conn and returns the JSON text the procedure produced. The connection
// is borrowed, never owned: within a unit-of-work scope the call shares the
// transaction with any entity writes issued in the same scope.
func (g *Gateway) Call(ctx context.Context, conn *gorm.DB, op, query string, args map[string]any) string {
	if conn == nil {
		return FailText(op, errors.New("no connection"))
	}

	var result sql.NullString
	row := conn.WithContext(ctx).Raw(query, namedArgs(args)...).Row()
	if row == nil {
		return FailText(op, errors.New("no result row"))
	}
	if err := row.Scan(&result); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nullResultText
		}
		return FailText(op, err)
	}
	if !result.Valid || strings.TrimSpace(result.String) == "" {
		return nullResultText
	}
	return result.String
}

func namedArgs(args map[string]any) []any {
	out := make([]any, 0, len(args))
	for name, value := range args {
		out = append(out, sql.Named(name, value))
	}
	return out
}

// FailText synthesizes the failure envelope text for a failed invocation.
// Marshaling through the envelope type guarantees the output is valid JSON
// no matter what the driver error contains.
func FailText(op string, err error) string {
	detail := "unknown error"
	if err != nil {
		detail = err.Error()
	}
	if len(detail) > detailLimit {
		detail = detail[:detailLimit]
	}
	raw, marshalErr := json.Marshal(envelope.Fail(500, fmt.Sprintf("%s failed: %s", op, detail)))
	if marshalErr != nil {
		return `{"errorCode":500,"message":"` + op + ` failed"}`
	}
	return string(raw)
}
