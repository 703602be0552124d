// Package registry matches an address against the license and corporate registry store.
package registry

import (
	"context"
	"database/sql"
	"math"
	"sort"
	"time"

	"github.com/lib/pq"

	"cstore-prefill/internal/common/errors"
	"cstore-prefill/internal/common/logger"
	"cstore-prefill/internal/common/metrics"
	"cstore-prefill/internal/models"
	"cstore-prefill/internal/normalize"
)

// dateLayouts are the forms registry dates arrive in, database timestamps first.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

type Matcher struct {
	db     *sql.DB
	logger logger.Logger
	now    func() time.Time
}

// NewMatcher returns a matcher over db. A nil db gives a matcher that never matches.
func NewMatcher(db *sql.DB, log logger.Logger) *Matcher {
	return &Matcher{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "registry"}),
		now:    time.Now,
	}
}

// Match finds the best license row for address and, through its business
// name, the best corporate registry row. It returns nil when the store is not
// configured, the address has no usable tokens, nothing matches, or any query
// fails; failures are logged and never returned.
func (m *Matcher) Match(ctx context.Context, address string) *models.RegistryMatch {
	if m == nil || m.db == nil {
		metrics.RegistryLookups.WithLabelValues("skipped").Inc()
		return nil
	}

	patterns := normalize.AddressPatterns(address)
	if len(patterns) == 0 {
		metrics.RegistryLookups.WithLabelValues("skipped").Inc()
		return nil
	}

	conn, err := m.db.Conn(ctx)
	if err != nil {
		m.logFailure(errors.NewRegistryConnectionError(err))
		return nil
	}
	defer conn.Close()

	licenses, err := queryLicenses(ctx, conn, patterns)
	if err != nil {
		m.logFailure(errors.NewRegistryQueryError(licenseTable, err))
		return nil
	}
	if len(licenses) == 0 {
		metrics.RegistryLookups.WithLabelValues("none").Inc()
		return nil
	}

	license := bestLicense(licenses)
	match := &models.RegistryMatch{License: &license}

	namePatterns := normalize.BusinessPatterns(license.ListFormatName)
	if len(namePatterns) == 0 {
		metrics.RegistryLookups.WithLabelValues("license_only").Inc()
		return match
	}

	businesses, err := queryBusinesses(ctx, conn, namePatterns)
	if err != nil {
		// the license row is still good; keep it
		m.logFailure(errors.NewRegistryQueryError(businessTable, err))
		return match
	}
	if len(businesses) == 0 {
		metrics.RegistryLookups.WithLabelValues("license_only").Inc()
		return match
	}

	business := bestBusiness(businesses)
	business.YearsAtLocation = yearsSince(business.FormationDate, m.now())
	match.Business = &business

	metrics.RegistryLookups.WithLabelValues("license_and_business").Inc()
	m.logger.Debug("registry match", map[string]interface{}{
		"licenseId":       license.LicenseID,
		"licensePriority": license.MatchPriority,
		"businessName":    business.BusinessName,
	})
	return match
}

func (m *Matcher) logFailure(err *errors.StandardError) {
	metrics.RegistryLookups.WithLabelValues("error").Inc()
	m.logger.Warn("registry lookup failed", map[string]interface{}{
		"errorCode": string(err.Code),
		"details":   err.Details,
	})
}

func queryLicenses(ctx context.Context, conn *sql.Conn, patterns []string) ([]models.LicenseRecord, error) {
	rows, err := conn.QueryContext(ctx, licenseQuery, pq.Array(patterns), patterns[0], secondOrFirst(patterns))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.LicenseRecord
	for rows.Next() {
		var id, name, address, licenseID, licenseType, createdAt sql.NullString
		var priority sql.NullInt64
		if err := rows.Scan(&id, &name, &address, &licenseID, &licenseType, &createdAt, &priority); err != nil {
			return nil, err
		}
		out = append(out, models.LicenseRecord{
			ID:                id.String,
			ListFormatName:    name.String,
			ListFormatAddress: address.String,
			LicenseID:         licenseID.String,
			LicenseType:       licenseType.String,
			CreatedAt:         createdAt.String,
			MatchPriority:     int(priority.Int64),
		})
	}
	return out, rows.Err()
}

func queryBusinesses(ctx context.Context, conn *sql.Conn, patterns []string) ([]models.BusinessRecord, error) {
	rows, err := conn.QueryContext(ctx, businessQuery, pq.Array(patterns), patterns[0], secondOrFirst(patterns))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.BusinessRecord
	for rows.Next() {
		var name, status, kind, naics, naicsSub, formed, agent, agentAddr, control sql.NullString
		var priority sql.NullInt64
		if err := rows.Scan(&name, &status, &kind, &naics, &naicsSub, &formed, &agent, &agentAddr, &control, &priority); err != nil {
			return nil, err
		}
		out = append(out, models.BusinessRecord{
			BusinessName:                   name.String,
			BusinessStatus:                 status.String,
			BusinessType:                   kind.String,
			NAICSCode:                      naics.String,
			NAICSSubCode:                   naicsSub.String,
			FormationDate:                  formed.String,
			RegisteredAgentName:            agent.String,
			RegisteredAgentPhysicalAddress: agentAddr.String,
			ControlNumber:                  control.String,
			MatchPriority:                  int(priority.Int64),
		})
	}
	return out, rows.Err()
}

func secondOrFirst(patterns []string) string {
	if len(patterns) > 1 {
		return patterns[1]
	}
	return patterns[0]
}

// bestLicense ranks by priority, then newest created_at. The query already
// orders rows this way; ranking again keeps the rule independent of the store.
func bestLicense(rows []models.LicenseRecord) models.LicenseRecord {
	ranked := append([]models.LicenseRecord(nil), rows...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].MatchPriority != ranked[j].MatchPriority {
			return ranked[i].MatchPriority < ranked[j].MatchPriority
		}
		return parseDate(ranked[i].CreatedAt).After(parseDate(ranked[j].CreatedAt))
	})
	return ranked[0]
}

func bestBusiness(rows []models.BusinessRecord) models.BusinessRecord {
	ranked := append([]models.BusinessRecord(nil), rows...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].MatchPriority != ranked[j].MatchPriority {
			return ranked[i].MatchPriority < ranked[j].MatchPriority
		}
		return parseDate(ranked[i].FormationDate).After(parseDate(ranked[j].FormationDate))
	})
	return ranked[0]
}

// parseDate returns the zero time for missing or unreadable dates so they rank last.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// yearsSince returns whole years between formation and now, nil when the date is missing or unreadable.
func yearsSince(formation string, now time.Time) *int {
	t := parseDate(formation)
	if t.IsZero() {
		return nil
	}
	days := now.Sub(t).Hours() / 24
	years := int(math.Floor(days / 365.25))
	return &years
}
