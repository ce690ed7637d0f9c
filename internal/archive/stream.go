package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zlib"
	"golang.org/x/sync/errgroup"
)

// splitCompressed runs the input through a zlib writer on a producer goroutine and
// cuts the compressed output into ChunkSize payloads. Payloads travel over an
// unbuffered channel, so the compressor blocks while a fragment is being written.
func (s *Splitter) splitCompressed(inputPath, outputDir string, res *Result) error {
	input, err := os.Open(filepath.Clean(inputPath))
	if err != nil {
		return ioError("opening input", inputPath, err)
	}
	defer input.Close()

	group, ctx := errgroup.WithContext(context.Background())
	payloads := make(chan []byte)

	group.Go(func() error {
		defer close(payloads)

		return compress(ctx, inputPath, input, payloads, s.opts)
	})

	group.Go(func() error {
		ordinal := 0

		for payload := range payloads {
			ordinal++

			if err := s.writeFragment(outputDir, ordinal, payload, res); err != nil {
				return err
			}
		}

		res.Index.Chunks = ordinal

		return nil
	})

	return group.Wait()
}

// compress deflates r into payload-sized pieces sent on out.
func compress(ctx context.Context, path string, r io.Reader, out chan<- []byte, opts Options) error {
	feeder := &fragmentFeeder{ctx: ctx, out: out, size: int(opts.ChunkSize)}

	zw, err := zlib.NewWriterLevel(feeder, opts.Level)
	if err != nil {
		return fmt.Errorf("%w: creating zlib writer: %w", ErrConfig, err)
	}

	if _, err := io.Copy(zw, r); err != nil {
		zw.Close()

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		return ioError("compressing", path, err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("flushing compressed stream: %w", err)
	}

	return feeder.flush()
}

// fragmentFeeder buffers compressed output and hands it off in pieces of exactly
// size bytes; flush hands off whatever remains.
type fragmentFeeder struct {
	ctx    context.Context //nolint:containedctx
	out    chan<- []byte
	size   int
	buffer []byte
}

// Write implements io.Writer, blocking while a full piece waits for the consumer.
func (f *fragmentFeeder) Write(data []byte) (int, error) {
	f.buffer = append(f.buffer, data...)

	for len(f.buffer) >= f.size {
		if err := f.emit(f.size); err != nil {
			return 0, err
		}
	}

	return len(data), nil
}

// flush hands off the residual buffer, if any, as the final piece.
func (f *fragmentFeeder) flush() error {
	if len(f.buffer) > 0 {
		return f.emit(len(f.buffer))
	}

	return nil
}

func (f *fragmentFeeder) emit(n int) error {
	payload := make([]byte, n)
	copy(payload, f.buffer[:n])

	select {
	case f.out <- payload:
	case <-f.ctx.Done():
		return f.ctx.Err()
	}

	f.buffer = append(f.buffer[:0], f.buffer[n:]...)

	return nil
}
