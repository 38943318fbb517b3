// Package domaintest provides in-memory implementations of the domain ports
// for tests.
package domaintest

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"gitlab.com/ranfdev/sqadmin/internal/models"
)

// Store keeps reports, torrents and users in memory and answers the
// site-wide counts from settable values.
type Store struct {
	mu       sync.Mutex
	reports  map[uuid.UUID]models.Report
	torrents map[int]models.TorrentSummary
	users    map[int]models.UserSummary

	Counts models.LocalCounts
	// CountErrs makes the named count fail, e.g. "comments".
	CountErrs map[string]error
}

func NewStore() *Store {
	return &Store{
		reports:   map[uuid.UUID]models.Report{},
		torrents:  map[int]models.TorrentSummary{},
		users:     map[int]models.UserSummary{},
		CountErrs: map[string]error{},
	}
}

func (s *Store) AddTorrent(t models.TorrentSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.torrents[t.ID] = t
}

func (s *Store) AddUser(u models.UserSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

func (s *Store) RemoveTorrent(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.torrents, id)
}

func (s *Store) RemoveUser(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

// Report returns the stored report, bypassing role checks.
func (s *Store) Report(id uuid.UUID) (models.Report, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[id]
	return r, ok
}

func (s *Store) CreateReport(ctx context.Context, report *models.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[report.ID] = *report
	return nil
}

func (s *Store) FindReport(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[id]
	if !ok {
		return nil, models.ErrReportNotFound
	}
	return &r, nil
}

func (s *Store) ListOpenReports(ctx context.Context, offset int, limit int) ([]models.ReportView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	open := []models.Report{}
	for _, r := range s.reports {
		if !r.Solved {
			open = append(open, r)
		}
	}
	sort.Slice(open, func(i, j int) bool {
		if !open[i].Created.Equal(open[j].Created) {
			return open[i].Created.After(open[j].Created)
		}
		return bytes.Compare(open[i].ID[:], open[j].ID[:]) > 0
	})
	if offset >= len(open) {
		return []models.ReportView{}, nil
	}
	end := offset + limit
	if end > len(open) {
		end = len(open)
	}

	views := make([]models.ReportView, 0, end-offset)
	for _, r := range open[offset:end] {
		view := models.ReportView{ID: r.ID, Reason: r.Reason, Solved: r.Solved, Created: r.Created}
		if u, ok := s.users[r.ReportedBy]; ok {
			view.ReportedBy = &models.UserSummary{ID: u.ID, Username: u.Username}
		}
		if t, ok := s.torrents[r.TorrentID]; ok {
			view.Torrent = &models.TorrentSummary{ID: t.ID, Name: t.Name}
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *Store) ResolveReport(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[id]
	if !ok {
		return false, nil
	}
	r.Solved = true
	s.reports[id] = r
	return true, nil
}

func (s *Store) FindTorrentByInfoHash(ctx context.Context, infoHash string) (*models.TorrentSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.torrents {
		if t.InfoHash == infoHash {
			t := t
			return &t, nil
		}
	}
	return nil, nil
}

func (s *Store) FindTorrentSummary(ctx context.Context, id int) (*models.TorrentSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.torrents[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (s *Store) FindUserSummary(ctx context.Context, id int) (*models.UserSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *Store) count(name string, n int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.CountErrs[name]; err != nil {
		return 0, err
	}
	return n, nil
}

func (s *Store) CountRegisteredUsers(ctx context.Context) (int64, error) {
	return s.count("registered users", s.Counts.RegisteredUsers)
}

func (s *Store) CountBannedUsers(ctx context.Context) (int64, error) {
	return s.count("banned users", s.Counts.BannedUsers)
}

func (s *Store) CountUploadedTorrents(ctx context.Context) (int64, error) {
	return s.count("uploaded torrents", s.Counts.UploadedTorrents)
}

func (s *Store) CountCompletedDownloads(ctx context.Context) (int64, error) {
	return s.count("completed downloads", s.Counts.CompletedDownloads)
}

func (s *Store) CountInvitesSent(ctx context.Context) (int64, error) {
	return s.count("invites sent", s.Counts.TotalInvitesSent)
}

func (s *Store) CountInvitesAccepted(ctx context.Context) (int64, error) {
	return s.count("invites accepted", s.Counts.InvitesAccepted)
}

func (s *Store) CountRequests(ctx context.Context) (int64, error) {
	return s.count("requests", s.Counts.TotalRequests)
}

func (s *Store) CountFilledRequests(ctx context.Context) (int64, error) {
	return s.count("filled requests", s.Counts.FilledRequests)
}

func (s *Store) CountComments(ctx context.Context) (int64, error) {
	return s.count("comments", s.Counts.TotalComments)
}

// Scraper returns fixed tracker stats, or Err when set.
type Scraper struct {
	Stats models.TrackerStats
	Err   error
	Calls int
}

func (s *Scraper) Scrape(ctx context.Context) (models.TrackerStats, error) {
	s.Calls++
	if s.Err != nil {
		return models.TrackerStats{}, s.Err
	}
	return s.Stats, nil
}
