package ingest

import (
	"context"

	"media-ingest/internal/mediatypes"
	"media-ingest/internal/workers"
)

// maxBatchWorkers caps concurrent imports in one batch; each import can run
// three engine processes at once.
const maxBatchWorkers = 8

// ImportBatch imports each source independently and returns one item per
// source in input order. A failed source does not stop the others, and
// duplicate sources become separate assets.
func (im *Importer) ImportBatch(ctx context.Context, projectRoot string, sources []string, forced mediatypes.Kind) []BatchItem {
	size := im.workers
	if size <= 0 {
		size = workers.ForIO(maxBatchWorkers)
	}

	items := workers.Map(ctx, size, len(sources), func(ctx context.Context, i int) BatchItem {
		item := BatchItem{SourcePath: sources[i]}
		res, err := im.Import(ctx, projectRoot, sources[i], forced)
		if err != nil {
			item.Err = err
			item.Error = err.Error()
			return item
		}
		item.Result = res
		return item
	})

	// Sources never handed to a worker because ctx ended.
	for i := range items {
		if items[i].SourcePath == "" {
			items[i].SourcePath = sources[i]
			if err := ctx.Err(); err != nil {
				items[i].Err = err
				items[i].Error = err.Error()
			}
		}
	}
	return items
}
