package refresh

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/NWFWMD-IT/Wells/internal/metrics"
	"github.com/NWFWMD-IT/Wells/internal/spatial"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Execer runs one SQL statement and reports how many rows it touched. The
// orchestrator is written against this instead of *gorm.DB so the refresh
// sequence can be tested without a database.
type Execer interface {
	Exec(query string, args ...any) (int64, error)
}

type gormExecer struct {
	tx *gorm.DB
}

func (g gormExecer) Exec(query string, args ...any) (int64, error) {
	res := g.tx.Exec(query, args...)
	return res.RowsAffected, res.Error
}

// Result summarizes one completed refresh run.
type Result struct {
	RunID    string                   `json:"run_id"`
	Group    string                   `json:"group"`
	Started  time.Time                `json:"started"`
	Duration time.Duration            `json:"duration_ns"`
	Deleted  int64                    `json:"deleted"`
	Buckets  map[spatial.Bucket]int64 `json:"buckets"`
	Subsets  map[string]int64         `json:"subsets,omitempty"`
}

// TotalInserted is the master row count across all four buckets.
func (r *Result) TotalInserted() int64 {
	var n int64
	for _, c := range r.Buckets {
		n += c
	}
	return n
}

// RunGroup refreshes one dataset group: delete-all, four bucketed inserts,
// subset derivation, all inside a single transaction. Readers observe the
// pre-refresh state or the fully refreshed state, never anything between;
// any failure rolls the whole group back.
func RunGroup(db *gorm.DB, reg *spatial.Registry, group DatasetGroup) (*Result, error) {
	res := &Result{
		RunID:   uuid.NewString(),
		Group:   group.Name,
		Started: time.Now(),
		Buckets: make(map[spatial.Bucket]int64, len(spatial.InsertBuckets)),
		Subsets: make(map[string]int64, len(group.Subsets)),
	}
	log.Printf("refresh %s: run %s starting", group.Name, res.RunID)

	err := db.Transaction(func(tx *gorm.DB) error {
		return run(gormExecer{tx}, reg, group, res)
	})
	res.Duration = time.Since(res.Started)
	if err != nil {
		metrics.RefreshesTotal.WithLabelValues(group.Name, "error").Inc()
		return nil, fmt.Errorf("refresh %s: %w", group.Name, err)
	}

	metrics.RefreshesTotal.WithLabelValues(group.Name, "ok").Inc()
	metrics.RefreshDuration.WithLabelValues(group.Name).Observe(res.Duration.Seconds())
	for bucket, n := range res.Buckets {
		metrics.RowsInserted.WithLabelValues(group.Name, string(bucket)).Add(float64(n))
	}

	log.Printf("refresh %s: run %s replaced %d rows with %d (+%d subset rows) in %s",
		group.Name, res.RunID, res.Deleted, res.TotalInserted(), res.totalSubsetRows(), res.Duration)
	return res, nil
}

func (r *Result) totalSubsetRows() int64 {
	var n int64
	for _, c := range r.Subsets {
		n += c
	}
	return n
}

// run executes the refresh sequence on an executor. Ordering matters only
// where the data demands it: deletes precede inserts for the same table,
// and subset derivation runs strictly after the master's buckets so it
// copies refreshed rows.
func run(ex Execer, reg *spatial.Registry, group DatasetGroup, res *Result) error {
	n, err := ex.Exec("DELETE FROM " + group.Table)
	if err != nil {
		return fmt.Errorf("delete %s: %w", group.Table, err)
	}
	res.Deleted = n

	for _, sub := range group.Subsets {
		if _, err := ex.Exec("DELETE FROM " + sub.Table); err != nil {
			return fmt.Errorf("delete %s: %w", sub.Table, err)
		}
	}

	queries, err := bucketQueries(reg, group.Coords, group.NullTag)
	if err != nil {
		return err
	}
	for _, q := range queries {
		n, err := ex.Exec(insertStatement(group, q))
		if err != nil {
			return fmt.Errorf("insert %s bucket %s: %w", group.Table, q.Bucket, err)
		}
		res.Buckets[q.Bucket] = n
	}

	for _, sub := range group.Subsets {
		n, err := ex.Exec(subsetStatement(group, sub), pq.Array(sub.FilterValues))
		if err != nil {
			return fmt.Errorf("derive %s: %w", sub.Table, err)
		}
		res.Subsets[sub.Table] = n
	}

	return nil
}

// insertStatement builds one bucket's INSERT ... SELECT against the
// upstream source. The objectid comes from the feature class's sequence
// (the surrogate-id allocator); the geometry expression is the bucket's.
func insertStatement(group DatasetGroup, q bucketQuery) string {
	cols := make([]string, 0, len(group.Columns)+2)
	exprs := make([]string, 0, len(group.Columns)+2)

	cols = append(cols, "objectid")
	exprs = append(exprs, fmt.Sprintf("nextval('%s')", group.Sequence))
	for _, c := range group.Columns {
		cols = append(cols, c.Target)
		exprs = append(exprs, c.Expr)
	}
	cols = append(cols, "shape")
	exprs = append(exprs, q.Geometry)

	return fmt.Sprintf("INSERT INTO %s (%s) SELECT %s FROM %s WHERE %s",
		group.Table,
		strings.Join(cols, ", "),
		strings.Join(exprs, ", "),
		group.Source,
		q.Where,
	)
}

// subsetStatement builds the derivation insert for one subset: a verbatim
// copy of matching master rows, geometry included, with fresh objectids.
// The filter values bind as an array parameter.
func subsetStatement(group DatasetGroup, sub Subset) string {
	cols := make([]string, 0, len(sub.Columns)+2)
	exprs := make([]string, 0, len(sub.Columns)+2)

	cols = append(cols, "objectid")
	exprs = append(exprs, fmt.Sprintf("nextval('%s')", sub.Sequence))
	for _, c := range sub.Columns {
		cols = append(cols, c)
		exprs = append(exprs, c)
	}
	cols = append(cols, "shape")
	exprs = append(exprs, "shape")

	return fmt.Sprintf("INSERT INTO %s (%s) SELECT %s FROM %s WHERE %s = ANY(?)",
		sub.Table,
		strings.Join(cols, ", "),
		strings.Join(exprs, ", "),
		group.Table,
		sub.FilterColumn,
	)
}
