package palette

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.opencensus.io/stats"
	"tessera/internal/database"
	"tessera/internal/logging"
	"tessera/internal/telemetry"
	tileDb "tessera/internal/tile/database"
	"tessera/internal/tile/model"
	"tessera/pkg/rworker"
)

type ProvideFn = func(chan<- error) (Manager, error)

var ErrNotReady = errors.New("palette: not built yet")

type Options struct {
	dir                string
	manifest           string
	maxConcurrentLoads int
	watch              bool
	rebuildDebounce    time.Duration
	cacheSize          int
}

type Option func(*manager)

func WithDir(dir string) Option {
	return func(m *manager) {
		m.opts.dir = dir
	}
}

func WithManifest(path string) Option {
	return func(m *manager) {
		m.opts.manifest = path
	}
}

func WithMaxConcurrentLoads(n int) Option {
	return func(m *manager) {
		m.opts.maxConcurrentLoads = n
	}
}

func WithWatch(watch bool) Option {
	return func(m *manager) {
		m.opts.watch = watch
	}
}

func WithRebuildDebounce(d time.Duration) Option {
	return func(m *manager) {
		m.opts.rebuildDebounce = d
	}
}

func WithCacheSize(n int) Option {
	return func(m *manager) {
		m.opts.cacheSize = n
	}
}

// Manager owns the tile library: it ingests sources into an immutable
// snapshot and hands that snapshot out to composers.
type Manager interface {
	Run(context.Context) error
	Stop()
	Snapshot() (*Snapshot, error)
}

func New(db *database.DB, shutdownCh chan<- error, opts ...Option) (*manager, error) {
	m := &manager{
		shutdownCh: shutdownCh,
		opts: Options{
			dir:                "./tiles",
			maxConcurrentLoads: 8,
			rebuildDebounce:    2 * time.Second,
			cacheSize:          4096,
		},
	}
	if db != nil {
		m.tileDb = tileDb.New(db)
	}
	for _, f := range opts {
		f(m)
	}
	return m, nil
}

type manager struct {
	mtx        sync.RWMutex
	opts       Options
	tileDb     *tileDb.DB
	snapshot   *Snapshot
	shutdownCh chan<- error
	cancel     func()
}

// Run performs the initial build synchronously so the service never serves
// before the palette exists, then starts the background loop.
func (m *manager) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	if err := m.rebuild(ctx); err != nil {
		cancel()
		return fmt.Errorf("can not start palette manager: %w", err)
	}
	go m.loop(ctx)
	return nil
}

// Stop is a no-op before Run has started the manager.
func (m *manager) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
}

// Snapshot returns the current palette generation. Callers hold the snapshot
// for the duration of one compose; a concurrent rebuild swaps the manager's
// pointer without touching snapshots already handed out.
func (m *manager) Snapshot() (*Snapshot, error) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	if m.snapshot == nil {
		return nil, ErrNotReady
	}
	return m.snapshot, nil
}

func (m *manager) sources() (dirs []string, remotes []Remote, err error) {
	if m.opts.manifest == "" {
		return []string{m.opts.dir}, nil, nil
	}
	manifest, err := LoadManifest(m.opts.manifest)
	if err != nil {
		return nil, nil, err
	}
	return manifest.Dirs, manifest.Remotes, nil
}

func (m *manager) rebuild(ctx context.Context) error {
	logger := logging.FromContext(ctx)

	dirs, remotes, err := m.sources()
	if err != nil {
		return err
	}

	var tiles []Tile
	for _, dir := range dirs {
		loaded, err := LoadDir(ctx, dir, m.opts.maxConcurrentLoads)
		if err != nil {
			return err
		}
		tiles = append(tiles, loaded...)
	}
	if len(remotes) > 0 {
		loaded, err := loadRemotes(ctx, remotes)
		if err != nil {
			return err
		}
		tiles = append(tiles, loaded...)
	}

	snapshot, err := newSnapshot(tiles, m.opts.cacheSize)
	if err != nil {
		return fmt.Errorf("build palette snapshot: %w", err)
	}

	if m.tileDb != nil {
		records := make([]model.Tile, len(tiles))
		for i := range tiles {
			records[i] = tiles[i].Record()
		}
		if err := m.tileDb.Purge(ctx); err != nil {
			return fmt.Errorf("purge tile records: %w", err)
		}
		if err := m.tileDb.AppendMany(ctx, records); err != nil {
			return fmt.Errorf("store tile records: %w", err)
		}
	}

	m.mtx.Lock()
	m.snapshot = snapshot
	m.mtx.Unlock()

	stats.Record(ctx, telemetry.MPaletteTiles.M(int64(snapshot.Len())))
	logger.Infof("palette built: %d tiles from %d dirs, %d remotes", snapshot.Len(), len(dirs), len(remotes))

	return nil
}

// loop watches the tile directories when enabled and schedules debounced,
// rate-limited rebuilds; otherwise it only waits for shutdown.
func (m *manager) loop(ctx context.Context) {
	logger := logging.FromContext(ctx)
	errCh := make(chan error, 1)
	rateCh := make(chan struct{}, 1)
	wg := sync.WaitGroup{}
	defer func() {
		wg.Wait()
		close(errCh)
		m.shutdownCh <- nil
	}()
	go func() {
		for err := range errCh {
			logger.Errorf("palette rebuild error: %v", err)
		}
	}()

	var events chan fsnotify.Event
	if m.opts.watch {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			logger.Errorf("palette watcher: %v", err)
			<-ctx.Done()
			return
		}
		defer watcher.Close()
		dirs, _, err := m.sources()
		if err != nil {
			logger.Errorf("palette watcher: %v", err)
			<-ctx.Done()
			return
		}
		for _, dir := range dirs {
			if err := watcher.Add(dir); err != nil {
				logger.Errorf("palette watcher: watch %s: %v", dir, err)
			}
		}
		events = make(chan fsnotify.Event)
		go func() {
			defer close(events)
			for {
				select {
				case ev, ok := <-watcher.Events:
					if !ok {
						return
					}
					events <- ev
				case err, ok := <-watcher.Errors:
					if !ok {
						return
					}
					logger.Errorf("palette watcher: %v", err)
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	debounce := time.NewTimer(m.opts.rebuildDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			debounce.Reset(m.opts.rebuildDebounce)
		case <-debounce.C:
			rworker.Job(ctx, &wg, func() error {
				return m.rebuild(ctx)
			}, rateCh, errCh)
		case <-ctx.Done():
			return
		}
	}
}
