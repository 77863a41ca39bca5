package report_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-movimientos/internal/application/report"
)

func seq(n int) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(i + 1)
	}
	return out
}

func TestChunkIDs(t *testing.T) {
	chunks := report.ChunkIDs(seq(600), 250)
	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 250)
	assert.Len(t, chunks[1], 250)
	assert.Len(t, chunks[2], 100)
	assert.Equal(t, int64(501), chunks[2][0])

	assert.Empty(t, report.ChunkIDs([]int64{}, 250))
	assert.Len(t, report.ChunkIDs(seq(250), 250), 1)
}

// 600 productos con bloque 250 -> exactamente 3 llamadas de 250, 250 y 100.
func TestFetchBatched_TresLlamadas(t *testing.T) {
	var mu sync.Mutex
	var sizes []int
	rows, err := report.FetchBatched(context.Background(), seq(600), 250, 1,
		func(_ context.Context, chunk []int64) ([]int64, error) {
			mu.Lock()
			sizes = append(sizes, len(chunk))
			mu.Unlock()
			return chunk, nil
		})
	require.NoError(t, err)
	assert.Equal(t, []int{250, 250, 100}, sizes)
	assert.Equal(t, seq(600), rows)
}

func TestFetchBatched_OrdenDeBloquesEnParalelo(t *testing.T) {
	rows, err := report.FetchBatched(context.Background(), seq(10), 2, 4,
		func(_ context.Context, chunk []int64) ([]int64, error) {
			// Los primeros bloques tardan más.
			time.Sleep(time.Duration(12-chunk[0]) * time.Millisecond)
			return chunk, nil
		})
	require.NoError(t, err)
	assert.Equal(t, seq(10), rows)
}

func TestFetchBatched_LimiteDeConcurrencia(t *testing.T) {
	var inFlight, peak int32
	_, err := report.FetchBatched(context.Background(), seq(40), 2, 3,
		func(_ context.Context, chunk []int64) ([]int64, error) {
			n := atomic.AddInt32(&inFlight, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			atomic.AddInt32(&inFlight, -1)
			return nil, nil
		})
	require.NoError(t, err)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))
}

// El primer error se devuelve sin modificar y no quedan filas parciales.
func TestFetchBatched_PrimerErrorAborta(t *testing.T) {
	boom := errors.New("canceling statement due to statement timeout")
	var calls int32
	rows, err := report.FetchBatched(context.Background(), seq(1000), 250, 1,
		func(_ context.Context, chunk []int64) ([]int64, error) {
			atomic.AddInt32(&calls, 1)
			if chunk[0] == 251 {
				return nil, boom
			}
			return chunk, nil
		})
	assert.Same(t, boom, err)
	assert.Nil(t, rows)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls), "en modo secuencial no hay llamadas después de la falla")
}

func TestFetchBatched_SinIDsNoLlama(t *testing.T) {
	called := false
	rows, err := report.FetchBatched(context.Background(), nil, 250, 4,
		func(_ context.Context, chunk []int64) ([]int64, error) {
			called = true
			return chunk, nil
		})
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.False(t, called)
}

func TestFetchBatched_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := report.FetchBatched(ctx, seq(5), 1, 1,
		func(ctx context.Context, chunk []int64) ([]int64, error) {
			return chunk, ctx.Err()
		})
	assert.ErrorIs(t, err, context.Canceled)
}
