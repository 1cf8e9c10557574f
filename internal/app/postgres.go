package app

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/lol-match-history/internal/config"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const (
	connectTimeout       = 5 * time.Second
	maxTracedQueryLength = 512
)

var queryWhitespaceRegex = regexp.MustCompile(`\s+`)

func openPostgres(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.ServiceName)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxOpenConns / 2)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping postgres")
	}
	return db, nil
}

// normalizeDBURL tags URL-style DSNs with an application_name so sessions
// are identifiable in pg_stat_activity. An explicit value is kept.
func normalizeDBURL(raw, appName string) string {
	appName = strings.TrimSpace(appName)
	if appName == "" {
		return raw
	}

	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed == nil || parsed.Scheme == "" {
		return raw
	}

	query := parsed.Query()
	if query.Get("application_name") == "" {
		query.Set("application_name", appName)
		parsed.RawQuery = query.Encode()
	}

	return parsed.String()
}

func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err == nil && parsed != nil && parsed.Scheme != "" {
		name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
		if name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		if !strings.HasPrefix(token, "dbname=") {
			continue
		}
		name := strings.TrimSpace(strings.TrimPrefix(token, "dbname="))
		name = strings.Trim(name, `"'`)
		if name != "" {
			return name
		}
	}

	return ""
}

// formatDBQueryForTrace flattens whitespace and collapses multi-row VALUES
// lists, which bulk inserts repeat hundreds of times per statement.
func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := collapseValues(queryWhitespaceRegex.ReplaceAllString(query, " "))
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}

	return normalized[:maxTracedQueryLength] + "..."
}

// collapseValues keeps the first tuple of a VALUES list and replaces the
// rest with a row count.
func collapseValues(query string) string {
	const marker = " VALUES "
	i := strings.Index(strings.ToUpper(query), marker)
	if i < 0 {
		return query
	}

	rows, firstEnd, end := 0, 0, 0
	j := i + len(marker)
	for j < len(query) && query[j] == '(' {
		depth := 0
		k := j
		for ; k < len(query); k++ {
			if query[k] == '(' {
				depth++
			} else if query[k] == ')' {
				depth--
				if depth == 0 {
					break
				}
			}
		}
		if k == len(query) {
			return query
		}

		rows++
		end = k + 1
		if rows == 1 {
			firstEnd = end
		}

		switch {
		case strings.HasPrefix(query[end:], ", ("):
			j = end + 2
		case strings.HasPrefix(query[end:], ",("):
			j = end + 1
		default:
			j = len(query)
		}
	}
	if rows < 2 {
		return query
	}

	return query[:firstEnd] + fmt.Sprintf(" /* +%d rows */", rows-1) + query[end:]
}
