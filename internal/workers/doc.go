/*
Package workers sizes and runs bounded worker pools.

Counts are derived from runtime.GOMAXPROCS rather than runtime.NumCPU, so a
container limited to 2 CPUs on a 64-core node gets 2-based counts:

	n := workers.ForIO(8) // 4 on a 2-CPU limit

Operators can pin the count with IMPORT_WORKERS; the limit argument still
caps it.

Map fans indexed jobs out to a pool and collects results in input order:

	results := workers.Map(ctx, n, len(files), func(ctx context.Context, i int) Result {
		return importOne(ctx, files[i])
	})
*/
package workers
