package retrieve

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/ekurganov/claimlens/internal/cache"
	"github.com/ekurganov/claimlens/internal/model"
)

var chunkPrefix = []byte("chunk:")

// Store is the bounded local evidence corpus: a badger-backed chunk
// store with embeddings computed at index time and cosine-ranked
// search. Search results are memoized through the layered cache; the
// cache is invalidated wholesale on any index or clear operation.
type Store struct {
	db    *badger.DB
	cache cache.Cache // may be nil
	cfg   model.RetrievalConfig
}

// storedChunk is the on-disk representation of one corpus chunk
type storedChunk struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	SourceID   string    `json:"source_id"`
	ChunkIndex int       `json:"chunk_index"`
	Embedding  []float32 `json:"embedding"`
}

// Open opens (or creates) the corpus database at the configured path
func Open(cfg model.RetrievalConfig, searchCache cache.Cache) (*Store, error) {
	opts := badger.DefaultOptions(cfg.DBPath).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open corpus db: %w", err)
	}
	return &Store{db: db, cache: searchCache, cfg: cfg}, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// IndexDocument chunks and indexes one document, returning the number
// of chunks written. Re-indexing the same source overwrites its chunks
// (IDs are deterministic).
func (s *Store) IndexDocument(sourceID, text string) (int, error) {
	chunks := chunkText(text, s.cfg.ChunkSize, s.cfg.ChunkOverlap)
	if len(chunks) == 0 {
		return 0, nil
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		for i, chunk := range chunks {
			record := storedChunk{
				ID:         chunkID(sourceID, i, chunk),
				Text:       chunk,
				SourceID:   sourceID,
				ChunkIndex: i,
				Embedding:  Embed(chunk),
			}
			data, err := json.Marshal(record)
			if err != nil {
				return fmt.Errorf("marshal chunk: %w", err)
			}
			if err := txn.Set([]byte("chunk:"+record.ID), data); err != nil {
				return fmt.Errorf("store chunk: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.invalidateCache()
	return len(chunks), nil
}

// Search returns the topK most similar chunks for the query, ranked by
// cosine similarity descending. Relation labels are left unassigned.
func (s *Store) Search(ctx context.Context, query string, topK int) ([]model.EvidenceChunk, error) {
	if topK <= 0 {
		topK = s.cfg.TopK
	}

	cacheKey := searchCacheKey(query, topK)
	if s.cache != nil {
		if data, found := s.cache.Get(cacheKey); found {
			var cached []model.EvidenceChunk
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	queryEmb := Embed(query)

	var results []model.EvidenceChunk
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(chunkPrefix); it.ValidForPrefix(chunkPrefix); it.Next() {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			var record storedChunk
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &record)
			})
			if err != nil {
				return fmt.Errorf("decode chunk: %w", err)
			}

			results = append(results, model.EvidenceChunk{
				ID:              record.ID,
				Text:            record.Text,
				SourceID:        record.SourceID,
				ChunkIndex:      record.ChunkIndex,
				SimilarityScore: Cosine(queryEmb, record.Embedding),
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("search corpus: %w", err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].SimilarityScore > results[j].SimilarityScore
	})
	if len(results) > topK {
		results = results[:topK]
	}

	if s.cache != nil {
		if data, err := json.Marshal(results); err == nil {
			_ = s.cache.Set(cacheKey, data, 0)
		}
	}
	return results, nil
}

// Retrieve implements the pipeline's EvidenceRetriever boundary: ranked
// unlabeled chunks for one claim, top-k from configuration. An empty
// corpus yields an empty result, which is valid input downstream.
func (s *Store) Retrieve(ctx context.Context, claim model.Claim) ([]model.EvidenceChunk, error) {
	return s.Search(ctx, claim.Text, s.cfg.TopK)
}

// Stats returns chunk and document counts
func (s *Store) Stats() (chunks int, documents int, err error) {
	sources := make(map[string]bool)
	err = s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(chunkPrefix); it.ValidForPrefix(chunkPrefix); it.Next() {
			var record storedChunk
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &record)
			}); err != nil {
				return err
			}
			chunks++
			sources[record.SourceID] = true
		}
		return nil
	})
	return chunks, len(sources), err
}

// Clear removes the entire corpus
func (s *Store) Clear() error {
	if err := s.db.DropAll(); err != nil {
		return fmt.Errorf("clear corpus: %w", err)
	}
	s.invalidateCache()
	return nil
}

func (s *Store) invalidateCache() {
	if s.cache != nil {
		_ = s.cache.Clear()
	}
}

func chunkID(sourceID string, index int, text string) string {
	snippet := text
	if len(snippet) > 100 {
		snippet = snippet[:100]
	}
	hash := sha256.Sum256([]byte(fmt.Sprintf("%s:%d:%s", sourceID, index, snippet)))
	return hex.EncodeToString(hash[:])[:16]
}

func searchCacheKey(query string, topK int) string {
	return cache.Key(fmt.Sprintf("search:%d:%s", topK, query))
}
