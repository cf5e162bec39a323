package client

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Entry holds the field values of one comment of a batch.
type Entry map[string]string

// LoadBatch decodes a yaml (or json) list of entries.
func LoadBatch(r io.Reader) ([]Entry, error) {
	var entries []Entry

	if err := yaml.NewDecoder(r).Decode(&entries); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("error decoding batch: %w", err)
	}

	return entries, nil
}

// BatchResult is the result of submitting a single entry.
type BatchResult struct {
	Index   int
	Outcome Outcome
	Err     error
}

// SubmitBatch fills a copy of template with every entry and submits
// them through pool. Results are returned in entry order. Entries
// naming a field that template lacks fail without being submitted.
func SubmitBatch(ctx context.Context, pool *Pool, template *Form, entries []Entry) []BatchResult {
	results := make([]BatchResult, len(entries))

	g, ctx := errgroup.WithContext(ctx)

	for i, entry := range entries {
		g.Go(func() error {
			result := BatchResult{Index: i}

			form := template.Clone()
			for name, value := range entry {
				if err := form.Set(name, value); err != nil {
					result.Err = err
					break
				}
			}

			if result.Err == nil {
				result.Outcome, result.Err = pool.Submit(ctx, form)
			}

			results[i] = result

			return nil
		})
	}

	_ = g.Wait()

	return results
}
