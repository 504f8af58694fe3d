package pgconv

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

func StringPtrFromPgtype(pt pgtype.Text) *string {
	if !pt.Valid {
		return nil
	}
	return &pt.String
}

func TimePtrFromPgtype(pt pgtype.Timestamptz) *time.Time {
	if !pt.Valid {
		return nil
	}
	t := pt.Time
	return &t
}

// OptionalText maps the empty string to NULL.
func OptionalText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
