package tracker

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gitlab.com/ranfdev/sqadmin/internal/models"
)

var ErrMalformedStats = errors.New("malformed tracker stats")

var activeTorrentsRe = regexp.MustCompile(`serving (\d+) torrents`)

// ParseStats parses a body of the form
//
//	<peers>
//	<seeds>
//	opentracker serving <torrents> torrents
func ParseStats(body string) (models.TrackerStats, error) {
	lines := strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n")
	if len(lines) < 3 {
		return models.TrackerStats{}, fmt.Errorf("%w: expected 3 lines, got %d", ErrMalformedStats, len(lines))
	}
	peers, err := parseCount("peers", lines[0])
	if err != nil {
		return models.TrackerStats{}, err
	}
	seeds, err := parseCount("seeds", lines[1])
	if err != nil {
		return models.TrackerStats{}, err
	}
	m := activeTorrentsRe.FindStringSubmatch(lines[2])
	if m == nil {
		return models.TrackerStats{}, fmt.Errorf("%w: no torrent count in %q", ErrMalformedStats, lines[2])
	}
	active, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return models.TrackerStats{}, fmt.Errorf("%w: torrent count: %v", ErrMalformedStats, err)
	}
	return models.TrackerStats{Peers: peers, Seeds: seeds, ActiveTorrents: active}, nil
}

func parseCount(name string, line string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrMalformedStats, name, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: negative %s %d", ErrMalformedStats, name, n)
	}
	return n, nil
}
