package models

import (
	"database/sql"
	"time"
)

// CommandSource mirrors the command_sources table.
type CommandSource struct {
	CommandID        string         `db:"command_id"`
	ActionName       string         `db:"action_name"`
	EntityName       string         `db:"entity_name"`
	ResourceID       sql.NullString `db:"resource_id"`
	SubresourceID    sql.NullString `db:"subresource_id"`
	MakerID          string         `db:"maker_id"`
	MadeOnDate       time.Time      `db:"made_on_date"`
	CheckerID        sql.NullString `db:"checker_id"`
	CheckedOnDate    sql.NullTime   `db:"checked_on_date"`
	ProcessingResult string         `db:"processing_result"`
	CommandAsJSON    []byte         `db:"command_as_json"` // Raw payload bytes, stored verbatim
}
