package uploads

import (
	"context"
	"sync"

	"amlak-backend/internal/infrastructure/storage"

	"github.com/rs/zerolog/log"
)

// Service runs image upload batches against the configured asset store.
type Service struct {
	Assets storage.Store
}

// Failure reports one file out of a batch that could not be stored.
type Failure struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

// UploadAll stores every file of a batch, fanning the writes out concurrently.
// A failed file does not abort the batch; the caller gets the URLs of the
// files that made it, in the original submission order, plus the failures.
func (s *Service) UploadAll(ctx context.Context, files []storage.File) ([]string, []Failure) {
	if len(files) == 0 {
		return nil, nil
	}
	urls := make([]string, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	for i, f := range files {
		wg.Add(1)
		go func(i int, f storage.File) {
			defer wg.Done()
			urls[i], errs[i] = s.Assets.Store(ctx, f)
		}(i, f)
	}
	wg.Wait()

	stored := make([]string, 0, len(files))
	var failures []Failure
	for i, f := range files {
		if errs[i] != nil {
			log.Warn().Str("file", f.Name).Err(errs[i]).Msg("Image upload failed")
			failures = append(failures, Failure{Name: f.Name, Error: errs[i].Error()})
			continue
		}
		stored = append(stored, urls[i])
	}
	return stored, failures
}

// Remove deletes one asset by URL, best effort. Failures are logged, never
// propagated: a leftover file must not block or undo a record mutation.
func (s *Service) Remove(ctx context.Context, url string) {
	if err := s.Assets.Delete(ctx, url); err != nil {
		log.Warn().Str("url", url).Err(err).Msg("Asset cleanup failed")
	}
}
