package report

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ChunkIDs parte ids en bloques de a lo sumo size elementos, conservando el orden.
func ChunkIDs[T any](ids []T, size int) [][]T {
	if size <= 0 {
		size = len(ids)
	}
	var out [][]T
	for i := 0; i < len(ids); i += size {
		end := i + size
		if end > len(ids) {
			end = len(ids)
		}
		out = append(out, ids[i:end])
	}
	return out
}

// FetchBatched llama a call una vez por bloque de IDs, con a lo sumo parallelism llamadas
// simultáneas, y concatena las filas en el orden de los bloques. El primer error cancela
// el resto y se devuelve tal cual; los resultados parciales se descartan.
func FetchBatched[ID, Row any](
	ctx context.Context,
	ids []ID,
	chunkSize, parallelism int,
	call func(ctx context.Context, chunk []ID) ([]Row, error),
) ([]Row, error) {
	chunks := ChunkIDs(ids, chunkSize)
	if len(chunks) == 0 {
		return []Row{}, nil
	}
	if parallelism <= 0 {
		parallelism = 1
	}

	results := make([][]Row, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for i, chunk := range chunks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rows, err := call(gctx, chunk)
			if err != nil {
				return err
			}
			results[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	out := make([]Row, 0, total)
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}
