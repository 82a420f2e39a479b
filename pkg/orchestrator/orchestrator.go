// Package orchestrator wires capture, the frame queue, and the GIF
// assembler into the producer/consumer pipeline spec.md §4.7 describes:
// one capture goroutine pushing frames onto a queue, one assembler
// goroutine draining it, and a timeout/cancellation path that stops both.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/halvorsen/jif/pkg/capture"
	"github.com/halvorsen/jif/pkg/encoder"
	"github.com/halvorsen/jif/pkg/frametap"
	"github.com/halvorsen/jif/pkg/jiferr"
	"github.com/halvorsen/jif/pkg/queue"
)

// Config configures one pipeline run.
type Config struct {
	Capturer  capture.Capturer
	Region    *capture.Rect
	Duration  time.Duration
	GifConfig encoder.GifConfig
	Logger    *slog.Logger
}

// Run drives one full capture session: it starts the producer (capturer
// Begin, pushing frames to a bounded queue) and consumer (draining the
// queue into a GIF Assembler) goroutines, stops capture after cfg.Duration
// or when ctx is canceled, and returns once the GIF has been written or a
// fatal error has occurred. Session identity for log correlation is a
// uuid.New() stamped once per call.
func Run(ctx context.Context, cfg Config) error {
	sessionID := uuid.New()
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("session_id", sessionID.String())

	if cfg.Capturer == nil {
		return fmt.Errorf("%w: no capturer configured", jiferr.ErrInvalidConfig)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: non-positive duration %v", jiferr.ErrInvalidConfig, cfg.Duration)
	}

	q := queue.New()
	tap := frametap.New[*queue.FrameQueue](cfg.Capturer, q, cfg.Region)
	tap.SetHandler(func(fq *queue.FrameQueue, f capture.Frame) error {
		fq.Push(f)
		return nil
	})

	asm := encoder.NewAssembler()
	if err := asm.Init(cfg.GifConfig); err != nil {
		return err
	}

	var (
		errMu   sync.Mutex
		firstErr error
	)
	recordErr := func(err error) {
		if err == nil {
			return
		}
		errMu.Lock()
		defer errMu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		if err := tap.Begin(); err != nil {
			logger.Error("capture pipeline stopped with error", "error", err)
			recordErr(err)
		}
		q.Close()
	}()

	go func() {
		defer wg.Done()
		// An encode failure stops capture; frames already queued are
		// still drained into the assembler.
		consume(q, asm, func(err error) {
			recordErr(err)
			_ = tap.End()
		})
	}()

	stopTimer := time.AfterFunc(cfg.Duration, func() {
		_ = tap.End()
	})
	defer stopTimer.Stop()

	cancelDone := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			recordErr(ctx.Err())
			_ = tap.End()
		case <-cancelDone:
		}
	}()

	wg.Wait()
	close(cancelDone)

	if err := asm.Close(); err != nil {
		recordErr(err)
	}

	errMu.Lock()
	defer errMu.Unlock()
	return firstErr
}

// consume drains q into asm until q is closed and empty, recording any
// AddFrame failure via recordErr without aborting the drain — a failure
// quantizing one frame shouldn't discard every frame already buffered.
func consume(q *queue.FrameQueue, asm *encoder.Assembler, recordErr func(error)) {
	drain := func() {
		for {
			item, ok := q.Pop()
			if !ok {
				return
			}
			frame := item.(capture.Frame)
			if err := asm.AddFrame(frame.Image.Pix, frame.DurationMs); err != nil {
				recordErr(err)
			}
		}
	}

	for {
		drain()
		select {
		case <-q.Done():
			drain()
			return
		case <-q.NewFrame():
		}
	}
}
