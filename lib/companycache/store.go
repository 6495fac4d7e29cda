// Package companycache persists the mapping between company slugs and their
// numeric ids. Resolving a slug costs a redirect round-trip against the
// portal, so callers are expected to cache the result; this store is that
// cache.
package companycache

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"tenderportal-backend/lib/timezone"

	_ "embed"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

var ErrNotCached = errors.New("slug has not been resolved yet")

type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

type Entry struct {
	Slug             string
	CompanyId        int
	ProcurementOrgId int
	ResolvedAt       time.Time
}

func (s Store) Put(ctx context.Context, entry Entry) error {
	resolvedAt := entry.ResolvedAt
	if resolvedAt.IsZero() {
		resolvedAt = timezone.Now()
	}
	_, err := s.db.ExecContext(
		ctx,
		`insert into company_slug (slug, company_id, procurement_org_id, resolved_at)
		 values (?, ?, ?, ?)
		 on conflict (slug) do update set
		   company_id = excluded.company_id,
		   procurement_org_id = excluded.procurement_org_id,
		   resolved_at = excluded.resolved_at`,
		entry.Slug, entry.CompanyId, entry.ProcurementOrgId, resolvedAt.Unix(),
	)
	return err
}

func (s Store) Get(ctx context.Context, slug string) (Entry, error) {
	row := s.db.QueryRowContext(
		ctx,
		`select company_id, procurement_org_id, resolved_at
		 from company_slug where slug = ?`,
		slug,
	)

	entry := Entry{Slug: slug}
	var resolvedAt int64
	err := row.Scan(&entry.CompanyId, &entry.ProcurementOrgId, &resolvedAt)
	if err == sql.ErrNoRows {
		return Entry{}, ErrNotCached
	}
	if err != nil {
		return Entry{}, err
	}
	entry.ResolvedAt = time.Unix(resolvedAt, 0).In(timezone.Location)
	return entry, nil
}

func (s Store) Delete(ctx context.Context, slug string) error {
	_, err := s.db.ExecContext(ctx, `delete from company_slug where slug = ?`, slug)
	return err
}
