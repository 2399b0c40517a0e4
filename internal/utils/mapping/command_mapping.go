package mapping

import (
	"database/sql"
	"time"

	"github.com/corelend/command_audit_app/internal/core/domain"
	"github.com/corelend/command_audit_app/internal/models"
)

// ToModelCommandSource converts a domain CommandSource to a model CommandSource.
func ToModelCommandSource(d domain.CommandSource) models.CommandSource {
	return models.CommandSource{
		CommandID:        d.CommandID,
		ActionName:       d.ActionName,
		EntityName:       d.EntityName,
		ResourceID:       toNullString(d.ResourceID),
		SubresourceID:    toNullString(d.SubresourceID),
		MakerID:          d.MakerID,
		MadeOnDate:       d.MadeOnDate,
		CheckerID:        toNullString(d.CheckerID),
		CheckedOnDate:    toNullTime(d.CheckedOnDate),
		ProcessingResult: string(d.ProcessingResult),
		CommandAsJSON:    d.CommandAsJSON,
	}
}

// ToDomainCommandSource converts a model CommandSource to a domain CommandSource.
func ToDomainCommandSource(m models.CommandSource) domain.CommandSource {
	return domain.CommandSource{
		CommandID:        m.CommandID,
		ActionName:       m.ActionName,
		EntityName:       m.EntityName,
		ResourceID:       fromNullString(m.ResourceID),
		SubresourceID:    fromNullString(m.SubresourceID),
		MakerID:          m.MakerID,
		MadeOnDate:       m.MadeOnDate,
		CheckerID:        fromNullString(m.CheckerID),
		CheckedOnDate:    fromNullTime(m.CheckedOnDate),
		ProcessingResult: domain.ProcessingResult(m.ProcessingResult),
		CommandAsJSON:    m.CommandAsJSON,
	}
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func fromNullTime(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}
