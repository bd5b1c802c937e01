// Package forms turns user-typed strings into API payloads and submits them
// as a create or an update.
//
// Forms are values: Set returns a modified copy and never changes the
// receiver.
package forms

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"patrimonio/internal/money"
	"patrimonio/internal/session"
)

// DateLayout is the calendar date format used by every date field.
const DateLayout = "2006-01-02"

// ErrNotAuthenticated is returned by the submit functions when nobody is signed in.
var ErrNotAuthenticated = errors.New("user not authenticated")

// Authenticated reports the signed-in session, or nil.
type Authenticated interface {
	Current() *session.Session
}

// Form is implemented by every form type.
type Form[F any] interface {
	Set(field, value string) (F, error)
	Get(field string) string
	Fields() []string
}

// field binds a form field name to its storage.
type field[F any] struct {
	name string
	ptr  func(*F) *string
}

func set[F any](form F, fields []field[F], name, value string) (F, error) {
	for _, fd := range fields {
		if fd.name == name {
			*fd.ptr(&form) = value
			return form, nil
		}
	}
	return form, fmt.Errorf("unknown field %q", name)
}

func get[F any](form F, fields []field[F], name string) string {
	for _, fd := range fields {
		if fd.name == name {
			return *fd.ptr(&form)
		}
	}
	return ""
}

func names[F any](fields []field[F]) []string {
	out := make([]string, len(fields))
	for i, fd := range fields {
		out[i] = fd.name
	}
	return out
}

// submit is shared by the typed Submit functions: it checks the session,
// builds the payload and updates when editingID is set, creating otherwise.
// Errors from the server are returned unchanged.
func submit[P, R any](
	ctx context.Context,
	auth Authenticated,
	payload func() (P, error),
	editingID string,
	create func(context.Context, P) (R, error),
	update func(context.Context, string, P) (R, error),
) (R, error) {
	var zero R
	if auth == nil || auth.Current() == nil {
		return zero, ErrNotAuthenticated
	}
	p, err := payload()
	if err != nil {
		return zero, err
	}
	if editingID != "" {
		return update(ctx, editingID, p)
	}
	return create(ctx, p)
}

func required(name, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%s is required", name)
	}
	return value, nil
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func parseAmount(name, value string) (float64, error) {
	v, err := money.Parse(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}

// parseOptionalAmount treats a blank value as zero.
func parseOptionalAmount(name, value string) (float64, error) {
	if strings.TrimSpace(value) == "" {
		return 0, nil
	}
	return parseAmount(name, value)
}

func parseNullableAmount(name, value string) (*float64, error) {
	v, err := money.ParseOptional(value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}

func parseDate(name, value string) (string, error) {
	value, err := required(name, value)
	if err != nil {
		return "", err
	}
	if _, err := time.Parse(DateLayout, value); err != nil {
		return "", fmt.Errorf("%s: expected a date like 2025-01-31", name)
	}
	return value, nil
}

func parseOptionalDate(name, value string) (*string, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	v, err := parseDate(name, value)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseBool(name, value string) (bool, error) {
	if strings.TrimSpace(value) == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, fmt.Errorf("%s: expected true or false", name)
	}
	return b, nil
}

func formatAmount(v float64) string {
	return decimal.NewFromFloat(v).String()
}

func formatNullableAmount(v *float64) string {
	if v == nil {
		return ""
	}
	return formatAmount(*v)
}

func formatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

func formatNullableDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDate(*t)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
