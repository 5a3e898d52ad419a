package history

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
)

// StatsCacheTTL is how long computed stats are served from memory
const StatsCacheTTL = 30 * time.Second

// Stats aggregates the calls made to one endpoint
type Stats struct {
	Method        string      `json:"method" yaml:"method"`
	Path          string      `json:"path" yaml:"path"` // ids replaced by {id}
	TotalCalls    int         `json:"totalCalls" yaml:"total_calls"`
	SuccessCount  int         `json:"successCount" yaml:"success_count"`
	ErrorCount    int         `json:"errorCount" yaml:"error_count"`
	NetworkErrors int         `json:"networkErrors" yaml:"network_errors"` // status 0
	AvgDurationMs float64     `json:"avgDurationMs" yaml:"avg_duration_ms"`
	MinDurationMs int64       `json:"minDurationMs" yaml:"min_duration_ms"`
	MaxDurationMs int64       `json:"maxDurationMs" yaml:"max_duration_ms"`
	StatusCodes   map[int]int `json:"statusCodes" yaml:"status_codes"`
	LastCalled    time.Time   `json:"lastCalled" yaml:"last_called"`
}

// NormalizePath replaces numeric path segments with {id} so that calls to
// different products are counted against the same endpoint
func NormalizePath(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if seg != "" && strings.Trim(seg, "0123456789") == "" {
			segments[i] = "{id}"
		}
	}
	return strings.Join(segments, "/")
}

// Stats returns per-endpoint statistics, most recently called first
func (m *Manager) Stats(ctx context.Context) ([]Stats, error) {
	if stats, ok := m.cache.get(); ok {
		return stats, nil
	}

	rows, err := m.db.QueryContext(ctx, `
		SELECT
			method,
			path,
			status,
			COUNT(*) as total_calls,
			SUM(duration_ms) as total_duration,
			MIN(duration_ms) as min_duration,
			MAX(duration_ms) as max_duration,
			MAX(timestamp) as last_called
		FROM calls
		GROUP BY method, path, status
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	defer rows.Close()

	byEndpoint := make(map[string]*Stats)
	totalDuration := make(map[string]int64)
	var order []string

	for rows.Next() {
		var (
			method, path                  string
			status, count                 int
			sum, minDuration, maxDuration int64
			lastCalled                    any
		)
		if err := rows.Scan(&method, &path, &status, &count, &sum, &minDuration, &maxDuration, &lastCalled); err != nil {
			return nil, fmt.Errorf("failed to scan stats: %w", err)
		}

		key := method + " " + NormalizePath(path)
		s, ok := byEndpoint[key]
		if !ok {
			s = &Stats{
				Method:        method,
				Path:          NormalizePath(path),
				MinDurationMs: minDuration,
				StatusCodes:   make(map[int]int),
			}
			byEndpoint[key] = s
			order = append(order, key)
		}

		s.TotalCalls += count
		s.StatusCodes[status] += count
		switch {
		case status == 0:
			s.NetworkErrors += count
		case status >= 200 && status < 300:
			s.SuccessCount += count
		case status >= 400:
			s.ErrorCount += count
		}
		s.MinDurationMs = min(s.MinDurationMs, minDuration)
		s.MaxDurationMs = max(s.MaxDurationMs, maxDuration)
		totalDuration[key] += sum

		if t := parseTimestamp(lastCalled); t.After(s.LastCalled) {
			s.LastCalled = t
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stats: %w", err)
	}

	stats := make([]Stats, 0, len(order))
	for _, key := range order {
		s := byEndpoint[key]
		s.AvgDurationMs = float64(totalDuration[key]) / float64(s.TotalCalls)
		stats = append(stats, *s)
	}
	sort.SliceStable(stats, func(i, j int) bool {
		if !stats[i].LastCalled.Equal(stats[j].LastCalled) {
			return stats[i].LastCalled.After(stats[j].LastCalled)
		}
		return stats[i].Method+stats[i].Path < stats[j].Method+stats[j].Path
	})

	m.cache.set(stats)
	return stats, nil
}

// parseTimestamp reads an aggregated DATETIME, which the driver hands back
// as text rather than time.Time
func parseTimestamp(v any) time.Time {
	var s string
	switch v := v.(type) {
	case time.Time:
		return v.Local()
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return time.Time{}
	}

	for _, layout := range sqlite3.SQLiteTimestampFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Local()
		}
	}
	return time.Time{}
}
