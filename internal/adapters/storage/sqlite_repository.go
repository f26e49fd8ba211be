package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"frota/internal/domain"
	"frota/internal/logging"
	"frota/internal/paths"
	"frota/internal/ports"
)

// SQLiteRepository implements ports.RunRepository using GORM
type SQLiteRepository struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.RunRepository = (*SQLiteRepository)(nil)

// gormLogger wraps the frota logger for GORM
type gormLogger struct {
	level logger.LogLevel
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level}
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		logging.Logger.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		logging.Logger.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		logging.Logger.Error(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level < logger.Info {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logging.Logger.Error("gorm query error",
			"error", err,
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	} else if elapsed > 200*time.Millisecond {
		logging.Logger.Warn("slow query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	} else {
		logging.Logger.Debug("gorm query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	}
}

func newGormLogger() logger.Interface {
	if os.Getenv("FROTA_DEBUG") == "1" {
		return (&gormLogger{}).LogMode(logger.Info)
	}
	return (&gormLogger{}).LogMode(logger.Silent)
}

// NewSQLiteRepository opens (and migrates) the run history at dbPath
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	dbPath = paths.ExpandPath(dbPath)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		PrepareStmt: false,
		NowFunc:     func() time.Time { return time.Now().UTC() },
		Logger:      newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	db.Exec("PRAGMA synchronous=NORMAL")
	db.Exec("PRAGMA foreign_keys=ON")

	if err := db.AutoMigrate(&RunModel{}); err != nil {
		if !strings.Contains(err.Error(), "already exists") {
			return nil, fmt.Errorf("failed to migrate runs schema: %w", err)
		}
	}

	// created by hand for the cascading foreign key
	if !db.Migrator().HasTable(&RunItemModel{}) {
		if err := db.Exec(`
			CREATE TABLE IF NOT EXISTS run_items (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				run_id TEXT NOT NULL,
				position INTEGER NOT NULL,
				item_id TEXT NOT NULL,
				client TEXT NOT NULL DEFAULT '',
				row INTEGER NOT NULL DEFAULT 0,
				fields TEXT NOT NULL DEFAULT '{}',
				kind TEXT NOT NULL CHECK (kind IN ('processed','already_in_target_state','not_found','failed')),
				batch INTEGER NOT NULL DEFAULT 0,
				step TEXT NOT NULL DEFAULT '',
				detail TEXT NOT NULL DEFAULT '',
				reason_kind TEXT NOT NULL DEFAULT '',
				reason_message TEXT NOT NULL DEFAULT '',
				created_at DATETIME,
				FOREIGN KEY (run_id) REFERENCES runs(id) ON UPDATE CASCADE ON DELETE CASCADE
			)
		`).Error; err != nil {
			return nil, fmt.Errorf("failed to create run_items table: %w", err)
		}
		db.Exec("CREATE INDEX IF NOT EXISTS idx_run_id ON run_items(run_id)")
		db.Exec("CREATE INDEX IF NOT EXISTS idx_item_id ON run_items(item_id)")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveRun implements RunWriter.SaveRun. Saving a run again replaces its items.
func (r *SQLiteRepository) SaveRun(ctx context.Context, report *domain.BatchReport) error {
	if report.RunID == "" {
		return fmt.Errorf("run has no id")
	}

	items := make([]RunItemModel, 0, report.Count())
	for i, o := range report.Outcomes() {
		m, err := domainToRunItemModel(report.RunID, i, o)
		if err != nil {
			return fmt.Errorf("failed to encode item %s: %w", o.Item.ID, err)
		}
		items = append(items, m)
	}
	run := domainToRunModel(report)

	return withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(&run).Error; err != nil {
				return fmt.Errorf("failed to save run: %w", err)
			}
			if err := tx.Where("run_id = ?", run.ID).Delete(&RunItemModel{}).Error; err != nil {
				return fmt.Errorf("failed to clear run items: %w", err)
			}
			if len(items) == 0 {
				return nil
			}
			// fresh copies so a retried transaction does not reuse assigned ids
			batch := make([]RunItemModel, len(items))
			copy(batch, items)
			if err := tx.CreateInBatches(&batch, 200).Error; err != nil {
				return fmt.Errorf("failed to save run items: %w", err)
			}
			return nil
		})
	}, 3)
}

// GetRun implements RunReader.GetRun. id may be a unique prefix.
func (r *SQLiteRepository) GetRun(ctx context.Context, id string) (*domain.BatchReport, error) {
	var run RunModel
	var items []RunItemModel

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			resolved, err := resolveRunID(tx, id)
			if err != nil {
				return err
			}
			if err := tx.Where("id = ?", resolved).First(&run).Error; err != nil {
				return err
			}
			return tx.Where("run_id = ?", resolved).Order("position").Find(&items).Error
		})
	}, 3)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrRunNotFound, id)
		}
		return nil, err
	}

	return runModelToDomain(run, items), nil
}

// ListRuns implements RunReader.ListRuns, newest first. limit <= 0 lists all.
func (r *SQLiteRepository) ListRuns(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	var runs []RunModel
	var counts []kindCount

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			query := tx.Order("started_at DESC")
			if limit > 0 {
				query = query.Limit(limit)
			}
			if err := query.Find(&runs).Error; err != nil {
				return err
			}
			if len(runs) == 0 {
				return nil
			}

			ids := make([]string, len(runs))
			for i, run := range runs {
				ids[i] = run.ID
			}
			return tx.Model(&RunItemModel{}).
				Select("run_id, kind, COUNT(*) AS n").
				Where("run_id IN ?", ids).
				Group("run_id, kind").
				Scan(&counts).Error
		})
	}, 3)
	if err != nil {
		return nil, err
	}

	countMap := make(map[string]map[string]int)
	for _, c := range counts {
		if countMap[c.RunID] == nil {
			countMap[c.RunID] = make(map[string]int)
		}
		countMap[c.RunID][c.Kind] = c.N
	}

	result := make([]domain.RunSummary, len(runs))
	for i, run := range runs {
		result[i] = runModelToSummary(run, countMap[run.ID])
	}
	return result, nil
}

// DeleteRun implements RunWriter.DeleteRun. id may be a unique prefix.
func (r *SQLiteRepository) DeleteRun(ctx context.Context, id string) error {
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			resolved, err := resolveRunID(tx, id)
			if err != nil {
				return err
			}
			// explicit so it works even where foreign keys are off
			if err := tx.Where("run_id = ?", resolved).Delete(&RunItemModel{}).Error; err != nil {
				return err
			}
			result := tx.Where("id = ?", resolved).Delete(&RunModel{})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
			return nil
		})
	}, 3)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", domain.ErrRunNotFound, id)
	}
	return err
}

// resolveRunID returns the full id of the run id names exactly or by unique prefix
func resolveRunID(tx *gorm.DB, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", gorm.ErrRecordNotFound
	}

	var exact int64
	if err := tx.Model(&RunModel{}).Where("id = ?", id).Count(&exact).Error; err != nil {
		return "", err
	}
	if exact == 1 {
		return id, nil
	}

	var matches []string
	if err := tx.Model(&RunModel{}).Where("id LIKE ?", escapeLike(id)+"%").Limit(2).Pluck("id", &matches).Error; err != nil {
		return "", err
	}
	switch len(matches) {
	case 0:
		return "", gorm.ErrRecordNotFound
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("run id prefix %q is ambiguous", id)
	}
}

func escapeLike(s string) string {
	return strings.NewReplacer("%", "", "_", "").Replace(s)
}

// withRetry retries operations on SQLITE_BUSY with exponential backoff
func withRetry(fn func() error, maxRetries int) error {
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}

		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
			time.Sleep(time.Millisecond * time.Duration(50*(i+1)))
			continue
		}

		return err
	}
	return fmt.Errorf("operation failed after %d retries", maxRetries)
}
