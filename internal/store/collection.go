package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"charitydash/internal/utils"

	json "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

var ErrRecordNotFound = errors.New("record not found")

// Record is implemented by the pointer types stored in a Collection.
type Record interface {
	RecordID() string
	SetRecordID(id string)
	SetCreatedAt(t time.Time)
	SetUpdatedAt(t time.Time)
}

type Option func(*collectionOptions)

type collectionOptions struct {
	newID func() string
	now   func() time.Time
}

// WithIDGenerator replaces the nanoid generator used for new records.
func WithIDGenerator(fn func() string) Option {
	return func(o *collectionOptions) {
		o.newID = fn
	}
}

// WithClock replaces time.Now for created_at / updated_at stamps.
func WithClock(fn func() time.Time) Option {
	return func(o *collectionOptions) {
		o.now = fn
	}
}

// Collection is a named JSON array file holding records of type T. Every
// mutation reads the whole file and rewrites it. Stored objects are carried
// as raw JSON between the read and the write, so keys T does not know about
// and records T cannot decode survive untouched.
type Collection[T any, P interface {
	*T
	Record
}] struct {
	logger *logrus.Logger
	name   string
	path   string

	newID func() string
	now   func() time.Time

	// serialises read-modify-write cycles within this process
	mu sync.Mutex
}

func NewCollection[T any, P interface {
	*T
	Record
}](logger *logrus.Logger, dataDir, fileName string, opts ...Option) *Collection[T, P] {
	o := &collectionOptions{
		newID: utils.NanoID,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}

	return &Collection[T, P]{
		logger: logger,
		name:   fileName,
		path:   filepath.Join(dataDir, fileName),
		newID:  o.newID,
		now:    o.now,
	}
}

// List returns every decodable record in file order. A missing, unreadable
// or corrupt file yields an empty slice; the failure is logged and never
// returned. A single record that does not decode into T is logged and
// skipped.
func (c *Collection[T, P]) List(ctx context.Context) []*T {
	raws, err := c.read()
	if err != nil {
		entry := c.logger.WithError(err).WithField("collection", c.name)
		if errors.Is(err, os.ErrNotExist) {
			entry.Debug("collection file does not exist yet")
		} else {
			entry.Error("failed to read collection")
		}
		return make([]*T, 0)
	}

	records := make([]*T, 0, len(raws))
	for i, raw := range raws {
		record := new(T)
		if err := json.Unmarshal(raw, record); err != nil {
			c.logger.WithError(err).WithFields(logrus.Fields{
				"collection": c.name,
				"index":      i,
				"id":         rawRecordID(raw),
			}).Warn("skipping undecodable record")
			continue
		}
		records = append(records, record)
	}

	return records
}

func (c *Collection[T, P]) Get(ctx context.Context, id string) (*T, error) {
	for _, record := range c.List(ctx) {
		if P(record).RecordID() == id {
			return record, nil
		}
	}

	return nil, ErrRecordNotFound
}

// Add assigns a fresh id and created_at to record, appends it and rewrites
// the file. The stored record is returned. Add refuses to write when the
// existing file cannot be read.
func (c *Collection[T, P]) Add(ctx context.Context, record *T) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	raws, err := c.readForWrite()
	if err != nil {
		return nil, fmt.Errorf("failed to add record to %s: %w", c.name, err)
	}

	P(record).SetRecordID(c.newID())
	P(record).SetCreatedAt(c.now().UTC())

	raw, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record for %s: %w", c.name, err)
	}

	if err := c.write(append(raws, raw)); err != nil {
		return nil, fmt.Errorf("failed to add record to %s: %w", c.name, err)
	}

	return record, nil
}

// Update shallow-merges patch, keyed by JSON field name, over the stored
// object and stamps updated_at. The id is never overwritten. Keys outside T
// are kept, both stored and patched ones.
func (c *Collection[T, P]) Update(ctx context.Context, id string, patch map[string]any) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	raws, err := c.readForWrite()
	if err != nil {
		return nil, fmt.Errorf("failed to update record %s in %s: %w", id, c.name, err)
	}

	index := -1
	for i, raw := range raws {
		if rawRecordID(raw) == id {
			index = i
			break
		}
	}

	if index == -1 {
		return nil, ErrRecordNotFound
	}

	stamp := c.now().UTC()

	merged, err := mergeRecord(raws[index], patch, stamp)
	if err != nil {
		return nil, fmt.Errorf("failed to merge update for %s %s: %w", c.name, id, err)
	}

	// the merged object has to read back as T before it replaces anything
	updated := new(T)
	if err := json.Unmarshal(merged, updated); err != nil {
		return nil, fmt.Errorf("merged record %s in %s does not decode: %w", id, c.name, err)
	}
	P(updated).SetRecordID(id)
	P(updated).SetUpdatedAt(stamp)

	raws[index] = merged

	if err := c.write(raws); err != nil {
		return nil, fmt.Errorf("failed to update record %s in %s: %w", id, c.name, err)
	}

	return updated, nil
}

// Delete removes the record with id and rewrites the file. The file is
// rewritten, and nil returned, even when nothing matched.
func (c *Collection[T, P]) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	raws, err := c.readForWrite()
	if err != nil {
		return fmt.Errorf("failed to delete record %s from %s: %w", id, c.name, err)
	}

	filtered := make([]json.RawMessage, 0, len(raws))
	for _, raw := range raws {
		if rawRecordID(raw) == id {
			continue
		}
		filtered = append(filtered, raw)
	}

	return utils.ErrorWrapOrNil(c.write(filtered), fmt.Sprintf("failed to delete record %s from %s", id, c.name))
}

// read splits the file into its array elements without decoding them.
// Literal nulls are dropped and a blank file is an empty array.
func (c *Collection[T, P]) read() ([]json.RawMessage, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, err
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return make([]json.RawMessage, 0), nil
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.path, err)
	}

	raws := make([]json.RawMessage, 0, len(elements))
	for _, element := range elements {
		if bytes.Equal(bytes.TrimSpace(element), []byte("null")) {
			continue
		}
		raws = append(raws, element)
	}

	return raws, nil
}

// readForWrite is read for the mutation paths: a missing file is an empty
// collection, anything else unreadable is an error so the file is never
// replaced by a truncated copy.
func (c *Collection[T, P]) readForWrite() ([]json.RawMessage, error) {
	raws, err := c.read()
	if errors.Is(err, os.ErrNotExist) {
		return make([]json.RawMessage, 0), nil
	}

	return raws, err
}

// write replaces the file through a temp file and rename so readers never
// observe a half-written array.
func (c *Collection[T, P]) write(raws []json.RawMessage) error {
	if raws == nil {
		raws = make([]json.RawMessage, 0)
	}

	compact, err := json.Marshal(raws)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.name, err)
	}

	var data bytes.Buffer
	if err := json.Indent(&data, compact, "", "  "); err != nil {
		return fmt.Errorf("indent %s: %w", c.name, err)
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, c.name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, c.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", c.path, err)
	}

	return nil
}

// rawRecordID returns the string id of a stored object, or "" when the
// element is not an object or carries no string id.
func rawRecordID(raw json.RawMessage) string {
	var keyed struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &keyed); err != nil {
		return ""
	}

	return keyed.ID
}

func mergeRecord(current json.RawMessage, patch map[string]any, updatedAt time.Time) (json.RawMessage, error) {
	merged := make(map[string]json.RawMessage)
	if err := json.Unmarshal(current, &merged); err != nil {
		return nil, err
	}

	for key, value := range patch {
		if key == "id" {
			continue
		}

		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", key, err)
		}
		merged[key] = encoded
	}

	stamp, err := json.Marshal(updatedAt)
	if err != nil {
		return nil, err
	}
	merged["updated_at"] = stamp

	return json.Marshal(merged)
}
