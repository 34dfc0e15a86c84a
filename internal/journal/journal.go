// Package journal stores translated DIS traffic in a SQL database through gorm.
package journal

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/peterstace/simplefeatures/geom"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gift-interop/disbridge/internal/config"
	"github.com/gift-interop/disbridge/internal/geo"
	"github.com/gift-interop/disbridge/internal/queue"
)

// ErrDisabled is returned by Open when the journal is switched off.
var ErrDisabled = errors.New("journal is disabled")

// pendingLimit caps entries waiting for a flush.
const pendingLimit = 100_000

// Journal queues entries and writes them to the database in batches.
type Journal struct {
	DB        *gorm.DB
	SessionID uuid.UUID
	Logger    zerolog.Logger

	batchSize     int
	flushInterval time.Duration
	pending       *queue.Queue[Entry]
	kick          chan struct{}

	mu      sync.Mutex // serializes flushes
	cancel  context.CancelFunc
	done    chan struct{}
	closeMu sync.Once
}

// Open connects to the configured backend and migrates the schema.
func Open(cfg config.JournalConfig, db config.DBConfig, log zerolog.Logger) (*Journal, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}

	var (
		gdb *gorm.DB
		err error
	)
	switch cfg.Type {
	case "postgres":
		gdb, err = OpenPostgres(db)
	case "sqlite":
		gdb, err = OpenSqlite(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown journal type: %s", cfg.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s journal: %w", cfg.Type, err)
	}
	log.Info().Str("type", cfg.Type).Msg("Connected to journal database")

	return New(gdb, log, cfg.BatchSize, cfg.FlushInterval)
}

// OpenPostgres returns a connection to the postgres database.
func OpenPostgres(db config.DBConfig) (*gorm.DB, error) {
	sslMode := db.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	dsn := fmt.Sprintf(`host=%s port=%s user=%s password=%s dbname=%s sslmode=%s`,
		db.Host,
		db.Port,
		db.Username,
		db.Password,
		db.Database,
		sslMode,
	)

	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        10000,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
}

// OpenSqlite returns a connection to a SQLite database.
// If path is empty, uses an in-memory database.
func OpenSqlite(path string) (*gorm.DB, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		CreateBatchSize:        2000,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA cache_size = -32000;",
		"PRAGMA temp_store = MEMORY;",
	}
	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, fmt.Errorf("error setting PRAGMA: %w", err)
		}
	}
	return db, nil
}

// New migrates the entry table on db and returns a journal writing to it.
func New(db *gorm.DB, log zerolog.Logger, batchSize int, flushInterval time.Duration) (*Journal, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	if batchSize < 1 {
		batchSize = 1
	}
	if flushInterval <= 0 {
		flushInterval = 2 * time.Second
	}

	j := &Journal{
		DB:            db,
		SessionID:     uuid.New(),
		Logger:        log,
		batchSize:     batchSize,
		flushInterval: flushInterval,
		pending:       queue.NewBounded[Entry](pendingLimit),
		kick:          make(chan struct{}, 1),
	}
	j.Logger.Debug().Str("session", j.SessionID.String()).Msg("Journal session started")
	return j, nil
}

// Start runs the background flush loop until ctx is done or Close is called.
func (j *Journal) Start(ctx context.Context) {
	ctx, j.cancel = context.WithCancel(ctx)
	j.done = make(chan struct{})

	go func() {
		defer close(j.done)
		ticker := time.NewTicker(j.flushInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			case <-j.kick:
			}
			if err := j.Flush(); err != nil {
				j.Logger.Error().Err(err).Msg("Failed to flush journal")
			}
		}
	}()
}

// Record queues an entry. A full batch wakes the flush loop.
func (j *Journal) Record(e Entry) {
	e.ID = 0
	e.SessionID = j.SessionID
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	e.Time = e.Time.UTC()

	if j.pending.Push(e) >= j.batchSize {
		select {
		case j.kick <- struct{}{}:
		default:
		}
	}
}

// Pending returns the number of entries waiting to be written.
func (j *Journal) Pending() int {
	return j.pending.Len()
}

// Flush writes every queued entry. A batch that fails to write stays queued.
func (j *Journal) Flush() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	for {
		batch := j.pending.PopN(j.batchSize)
		if len(batch) == 0 {
			return nil
		}
		start := time.Now()
		if err := j.DB.CreateInBatches(&batch, j.batchSize).Error; err != nil {
			for i := range batch {
				batch[i].ID = 0
			}
			j.pending.PushFront(batch...)
			return fmt.Errorf("error writing %d journal entries: %w", len(batch), err)
		}
		j.Logger.Debug().Int("count", len(batch)).Dur("duration", time.Since(start)).
			Msg("Wrote journal entries")
	}
}

// Recent returns the last n entries in the order they were written.
func (j *Journal) Recent(n int) ([]Entry, error) {
	var entries []Entry
	err := j.DB.Order("id desc").Limit(n).Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("error reading journal: %w", err)
	}
	slices.Reverse(entries)
	return entries, nil
}

// Positions returns the recorded positions of one entity in time order.
func (j *Journal) Positions(site, application, entity uint16) ([]geom.Point, error) {
	var entries []Entry
	err := j.DB.
		Where("site = ? AND application = ? AND entity = ? AND kind = ?", site, application, entity, "EntityState").
		Order("time asc, id asc").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("error reading journal: %w", err)
	}

	points := make([]geom.Point, 0, len(entries))
	for _, e := range entries {
		if !e.Position.IsEmpty() {
			points = append(points, e.Position)
		}
	}
	return points, nil
}

// Track returns the path of one entity as a line string.
func (j *Journal) Track(site, application, entity uint16) (geom.LineString, error) {
	points, err := j.Positions(site, application, entity)
	if err != nil {
		return geom.LineString{}, err
	}
	return geo.TrackFromPoints(points)
}

// Close stops the flush loop, writes what is left and closes the database.
func (j *Journal) Close() error {
	var err error
	j.closeMu.Do(func() {
		if j.cancel != nil {
			j.cancel()
			<-j.done
		}
		err = j.Flush()

		sqlDB, dbErr := j.DB.DB()
		if dbErr != nil {
			err = errors.Join(err, dbErr)
			return
		}
		err = errors.Join(err, sqlDB.Close())
	})
	return err
}
