// Package transport supplies the I/O side a sans-I/O lspclient.Session
// deliberately omits: launching a language server subprocess and pumping
// bytes between its stdio and the Session's Feed/Drain buffers, or dialing
// a WebSocket-exposed server instead.
package transport

import (
	"bufio"
	"context"
	"io"
	"os/exec"
	"sync"

	"github.com/lspsansio/lspclient/internal/xevent"
	"github.com/lspsansio/lspclient/lspclient"
	"golang.org/x/sync/errgroup"
)

// Stdio runs a language server as a subprocess and shuttles bytes between
// its stdin/stdout and a *lspclient.Session. One Stdio per subprocess; not
// safe for concurrent Run calls.
type Stdio struct {
	cmd *exec.Cmd
	log xevent.Logger

	mu      sync.Mutex
	session *lspclient.Session
	onEvent func(lspclient.Event)
	stdin   io.Writer
	stdout  io.Reader
}

// NewStdio builds a Stdio that will launch name with args. Call Run to
// start the subprocess and begin pumping; events decoded from its output
// are delivered to onEvent as they arrive. log may be the zero Logger, in
// which case Stdio logs nothing.
func NewStdio(session *lspclient.Session, onEvent func(lspclient.Event), log xevent.Logger, name string, args ...string) *Stdio {
	cmd := exec.Command(name, args...)
	setProcessGroup(cmd)
	return &Stdio{cmd: cmd, log: log, session: session, onEvent: onEvent}
}

// Cmd exposes the underlying *exec.Cmd for callers that need to set Env,
// Dir, or Stderr before calling Start.
func (t *Stdio) Cmd() *exec.Cmd { return t.cmd }

// Start launches the subprocess and wires up its stdin/stdout, but does
// not begin pumping reads. Call Flush afterward to deliver anything
// already queued on the session (e.g. an auto-sent initialize request),
// then Run to begin the blocking read pump.
func (t *Stdio) Start() error {
	stdin, err := t.cmd.StdinPipe()
	if err != nil {
		return err
	}
	stdout, err := t.cmd.StdoutPipe()
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.stdin = stdin
	t.stdout = stdout
	t.mu.Unlock()
	if err := t.cmd.Start(); err != nil {
		return err
	}
	t.log.Log("language server started", xevent.Of("path", t.cmd.Path), xevent.Of("pid", t.cmd.Process.Pid))
	return nil
}

// Run blocks, pumping the subprocess's stdout into the session and
// delivering decoded events to onEvent, until ctx is cancelled or the read
// pump errors (most commonly because the subprocess exited). It calls
// Start itself if that has not already been done. It always waits for the
// subprocess to exit before returning. ctx is checked between reads only: a
// read that is blocked waiting for server output is not interrupted by
// cancellation, so Run returns after the next read completes or the
// subprocess closes its stdout.
//
// Run only pumps reads: Session.Drain has no "bytes became available"
// signal to block on, so writes are driven by the caller instead — call
// Flush after every Session method that queues outbound bytes (sendCall,
// sendNotify, Answerable.Reply, ...).
func (t *Stdio) Run(ctx context.Context) error {
	t.mu.Lock()
	stdout := t.stdout
	t.mu.Unlock()
	if stdout == nil {
		if err := t.Start(); err != nil {
			return err
		}
		t.mu.Lock()
		stdout = t.stdout
		t.mu.Unlock()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return t.pumpReads(ctx, stdout) })

	runErr := g.Wait()
	waitErr := t.cmd.Wait()
	if runErr != nil {
		t.log.Log("language server read pump exited", xevent.Err(runErr))
		return runErr
	}
	return waitErr
}

// Flush drains the session's send buffer and writes it to the
// subprocess's stdin. Safe to call concurrently with Run's read pump.
func (t *Stdio) Flush() error {
	t.mu.Lock()
	out := t.session.Drain()
	stdin := t.stdin
	t.mu.Unlock()
	if len(out) == 0 || stdin == nil {
		return nil
	}
	_, err := stdin.Write(out)
	return err
}

func (t *Stdio) pumpReads(ctx context.Context, r io.Reader) error {
	br := bufio.NewReaderSize(r, 64*1024)
	buf := make([]byte, 64*1024)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		n, err := br.Read(buf)
		if n > 0 {
			t.mu.Lock()
			events, feedErr := t.session.Feed(buf[:n])
			t.mu.Unlock()
			for _, ev := range events {
				t.onEvent(ev)
			}
			if feedErr != nil {
				return feedErr
			}
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}
