package models

import (
	"time"

	"github.com/google/uuid"
)

// PageSize is the number of open reports returned per page.
const PageSize = 25

type Report struct {
	ID         uuid.UUID `json:"id"`
	TorrentID  int       `json:"torrentId" db:"torrent_id"`
	ReportedBy int       `json:"reportedById" db:"reported_by"`
	Reason     string    `json:"reason"`
	Solved     bool      `json:"solved"`
	Created    time.Time `json:"created"`
}

// ReportView is a report with its reporter and torrent joined in.
// Either summary is nil when the referenced row no longer exists.
type ReportView struct {
	ID         uuid.UUID       `json:"id"`
	Reason     string          `json:"reason"`
	Solved     bool            `json:"solved"`
	Created    time.Time       `json:"created"`
	ReportedBy *UserSummary    `json:"reportedBy"`
	Torrent    *TorrentSummary `json:"torrent"`
}

type TorrentSummary struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	InfoHash    string     `json:"infoHash,omitempty" db:"info_hash"`
	Created     *time.Time `json:"created,omitempty"`
}

// CreateReportReq is the body of a report submission.
type CreateReportReq struct {
	Reason string `json:"reason" validate:"required"`
}
