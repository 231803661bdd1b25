package logger

import (
	"bufio"
	"bytes"
	"io"
	"sync"
	"time"
)

// BufferedWriter buffers log lines and flushes them when:
//  1. the buffer fills (bufio handles this),
//  2. the flush interval elapses,
//  3. an error or fatal line is written,
//  4. Sync() or Close() is called.
type BufferedWriter struct {
	mu   sync.Mutex
	buf  *bufio.Writer
	stop chan struct{}
	wg   sync.WaitGroup
}

// NewBufferedWriter wraps w with a 256KB buffer and a background flusher.
func NewBufferedWriter(w io.Writer, flushInterval time.Duration) *BufferedWriter {
	bw := &BufferedWriter{
		buf:  bufio.NewWriterSize(w, 256*1024),
		stop: make(chan struct{}),
	}

	bw.wg.Add(1)
	go func() {
		defer bw.wg.Done()
		ticker := time.NewTicker(flushInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				_ = bw.Sync()
			case <-bw.stop:
				return
			}
		}
	}()

	return bw
}

func (bw *BufferedWriter) Write(p []byte) (int, error) {
	bw.mu.Lock()
	defer bw.mu.Unlock()

	n, err := bw.buf.Write(p)

	// Error and fatal lines must reach the sink before a potential exit.
	if bytes.Contains(p, []byte(`"level":"error"`)) ||
		bytes.Contains(p, []byte(`"level":"fatal"`)) {
		_ = bw.buf.Flush()
	}
	return n, err
}

// Sync flushes the buffer
func (bw *BufferedWriter) Sync() error {
	bw.mu.Lock()
	defer bw.mu.Unlock()
	return bw.buf.Flush()
}

// Close stops the background flusher and flushes remaining logs
func (bw *BufferedWriter) Close() error {
	close(bw.stop)
	bw.wg.Wait()
	return bw.Sync()
}
