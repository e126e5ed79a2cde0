package tlaudit

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/ZaguanLabs/tlaudit/exceptions"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ResultCache stores serialized extraction results keyed by CacheKey.
// Implementations must be safe for concurrent use.
type ResultCache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// Auditor scans report definitions for untranslated strings.
type Auditor struct {
	profile        Profile
	exceptionsFile string
	exceptions     *exceptions.Exceptions
	cache          ResultCache
	concurrency    int
	logger         *zap.Logger
}

// AuditorOption is a functional option for configuring the Auditor.
type AuditorOption func(*Auditor)

// WithLogger sets the logger. Per-file problems are logged at debug level.
func WithLogger(logger *zap.Logger) AuditorOption {
	return func(a *Auditor) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithCache sets the extraction cache.
func WithCache(cache ResultCache) AuditorOption {
	return func(a *Auditor) {
		a.cache = cache
	}
}

// WithConcurrency sets how many visual documents are extracted at once.
// Values below 2 scan sequentially.
func WithConcurrency(n int) AuditorOption {
	return func(a *Auditor) {
		a.concurrency = n
	}
}

// WithExceptionsFile sets the exceptions file, re-read on every call.
func WithExceptionsFile(path string) AuditorOption {
	return func(a *Auditor) {
		a.exceptionsFile = path
	}
}

// WithExceptions sets fixed exceptions, taking precedence over any file.
func WithExceptions(ex exceptions.Exceptions) AuditorOption {
	return func(a *Auditor) {
		a.exceptions = &ex
	}
}

// NewAuditor creates an Auditor for the given target language tag.
// Unknown tags resolve as described by ResolveProfile.
func NewAuditor(targetLang string, opts ...AuditorOption) *Auditor {
	a := &Auditor{
		profile:     ResolveProfile(targetLang),
		concurrency: 1,
		logger:      zap.NewNop(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Profile returns the resolved target language profile.
func (a *Auditor) Profile() Profile {
	return a.profile
}

// ScanAll scans root with fixed exceptions, sequentially and without a cache.
func ScanAll(root string, profile Profile, ex exceptions.Exceptions) *Result {
	a := NewAuditor(profile.Tag, WithExceptions(ex))
	a.profile = profile
	result, _ := a.Scan(context.Background(), root)
	return result
}

// Scan walks every visual.json under root and every page.json directly
// below it. Individual unreadable files contribute nothing; the only error
// is ctx being cancelled.
func (a *Auditor) Scan(ctx context.Context, root string) (*Result, error) {
	s := a.newScan(root)

	cats, err := a.extractAll(ctx, s)
	if err != nil {
		return nil, err
	}

	result := &Result{Visuals: []FileFindings{}}
	for i, rel := range s.files {
		if cats[i].Empty() {
			continue
		}
		result.Visuals = append(result.Visuals, FileFindings{File: rel, Categories: cats[i]})
	}

	pages, errs := scanPageNames(root, s.scanner.classifier)
	s.logFileErrors(errs)
	result.Pages = pages

	s.log.Info("Scan complete",
		zap.Int("visual_files", len(s.files)),
		zap.Int("files_with_findings", len(result.Visuals)),
		zap.Int("page_findings", len(result.Pages)),
		zap.Int("issues", result.IssueCount()),
	)
	return result, nil
}

// scan is the state of one Scan call.
type scan struct {
	id          string
	root        string
	files       []string
	ex          exceptions.Exceptions
	fingerprint string
	scanner     *visualScanner
	log         *zap.Logger
}

func (a *Auditor) newScan(root string) *scan {
	id := uuid.NewString()
	log := a.logger.With(
		zap.String("scan_id", id),
		zap.String("root", root),
		zap.String("target_language", a.profile.Tag),
	)

	ex := a.loadExceptions(log)
	files, err := globSorted(root, visualPattern)
	if err != nil {
		log.Debug("Visual discovery failed", zap.Error(&FileError{Path: root, Op: "glob", Cause: err}))
		files = []string{}
	}

	return &scan{
		id:          id,
		root:        root,
		files:       files,
		ex:          ex,
		fingerprint: ex.Fingerprint(),
		scanner:     newVisualScanner(a.profile, ex),
		log:         log,
	}
}

func (a *Auditor) loadExceptions(log *zap.Logger) exceptions.Exceptions {
	if a.exceptions != nil {
		return *a.exceptions
	}
	ex, err := exceptions.Read(a.exceptionsFile)
	if err != nil {
		log.Debug("Ignoring exceptions file", zap.String("path", a.exceptionsFile), zap.Error(err))
	}
	return ex
}

func (s *scan) logFileErrors(errs []error) {
	for _, err := range errs {
		s.log.Debug("Skipping file", zap.Error(err))
	}
}

// extractFile returns the categories of one visual document, consulting the
// cache when one is configured. Only successful extractions are cached.
func (a *Auditor) extractFile(s *scan, rel string) (Categories, error) {
	data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(rel))) // #nosec G304
	if err != nil {
		return newCategories(), &FileError{Path: rel, Op: "read", Cause: err}
	}

	var key string
	if a.cache != nil {
		key = CacheKey(HashContent(data), a.profile.Tag, s.fingerprint)
		if cats, ok := a.cacheGet(s, key); ok {
			return cats, nil
		}
	}

	cats, err := s.scanner.scanBytes(data)
	if err != nil {
		return cats, &FileError{Path: rel, Op: "decode", Cause: err}
	}

	if a.cache != nil {
		a.cachePut(s, key, cats)
	}
	return cats, nil
}

func (a *Auditor) cacheGet(s *scan, key string) (Categories, bool) {
	raw, ok := a.cache.Get(key)
	if !ok {
		return nil, false
	}
	var cached Categories
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		s.log.Debug("Discarding cache entry", zap.Error(&CacheError{Message: "decode " + key, Cause: err}))
		return nil, false
	}
	cats := newCategories()
	for _, cat := range AllCategories {
		if items := cached[cat]; len(items) > 0 {
			cats[cat] = items
		}
	}
	return cats, true
}

func (a *Auditor) cachePut(s *scan, key string, cats Categories) {
	raw, err := json.Marshal(cats)
	if err == nil {
		err = a.cache.Set(key, string(raw))
	}
	if err != nil {
		s.log.Debug("Cache store failed", zap.Error(&CacheError{Message: "store " + key, Cause: err}))
	}
}
