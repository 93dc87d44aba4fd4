package store

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"strings"

	"github.com/grexie/oversample/pkg/oversample"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var ErrNotFound = errors.New("run not found")

// Store caches run traces in LevelDB. Every iteration record is its own key
// so long runs can be read back in order without decoding one large value.
type Store struct {
	db *leveldb.DB
}

func Open(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func metaKey(runID string) []byte {
	return fmt.Appendf([]byte{}, "run-%s-meta", runID)
}

func iterPrefix(runID string) []byte {
	return fmt.Appendf([]byte{}, "run-%s-iter-", runID)
}

func iterKey(runID string, iteration int) []byte {
	return fmt.Appendf(iterPrefix(runID), "%06d", iteration)
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(data []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

func (s *Store) Save(tr oversample.Trace) error {
	if tr.RunID == "" {
		return fmt.Errorf("trace has no run id")
	}

	batch := new(leveldb.Batch)

	meta := tr
	meta.History = nil
	if v, err := encode(meta); err != nil {
		return fmt.Errorf("error encoding run %s: %w", tr.RunID, err)
	} else {
		batch.Put(metaKey(tr.RunID), v)
	}

	for _, rec := range tr.History {
		if v, err := encode(rec); err != nil {
			return fmt.Errorf("error encoding run %s iteration %d: %w", tr.RunID, rec.Iteration, err)
		} else {
			batch.Put(iterKey(tr.RunID, rec.Iteration), v)
		}
	}

	return s.db.Write(batch, nil)
}

func (s *Store) Load(runID string) (oversample.Trace, error) {
	var tr oversample.Trace

	data, err := s.db.Get(metaKey(runID), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return tr, fmt.Errorf("%w: %s", ErrNotFound, runID)
	} else if err != nil {
		return tr, err
	}
	if err := decode(data, &tr); err != nil {
		return tr, fmt.Errorf("error decoding run %s: %w", runID, err)
	}

	iter := s.db.NewIterator(util.BytesPrefix(iterPrefix(runID)), nil)
	defer iter.Release()
	for iter.Next() {
		var rec oversample.IterationRecord
		if err := decode(iter.Value(), &rec); err != nil {
			return tr, fmt.Errorf("error decoding run %s key %s: %w", runID, iter.Key(), err)
		}
		if rec.Rejected == nil {
			rec.Rejected = []oversample.TrialResult{}
		}
		tr.History = append(tr.History, rec)
	}

	return tr, iter.Error()
}

// Runs lists the ids of every stored run in key order.
func (s *Store) Runs() ([]string, error) {
	out := []string{}
	iter := s.db.NewIterator(util.BytesPrefix([]byte("run-")), nil)
	defer iter.Release()
	for iter.Next() {
		key := string(iter.Key())
		if id, ok := strings.CutSuffix(strings.TrimPrefix(key, "run-"), "-meta"); ok {
			out = append(out, id)
		}
	}
	return out, iter.Error()
}

func (s *Store) Delete(runID string) error {
	batch := new(leveldb.Batch)
	batch.Delete(metaKey(runID))

	iter := s.db.NewIterator(util.BytesPrefix(iterPrefix(runID)), nil)
	for iter.Next() {
		batch.Delete(append([]byte(nil), iter.Key()...))
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		return err
	}

	return s.db.Write(batch, nil)
}
