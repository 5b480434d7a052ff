package tsc

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os/exec"
	"strings"
	"sync"

	"go.trai.ch/dts/internal/core/domain"
	"go.trai.ch/dts/internal/core/ports"
	"go.trai.ch/zerr"
)

// maxResponseSize bounds a single response line; emitted declarations of large files can be big.
const maxResponseSize = 64 << 20

type request struct {
	ID     uint64 `json:"id"`
	Method string `json:"method"`
	Params any    `json:"params,omitempty"`
}

type response struct {
	ID     uint64          `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *remoteError    `json:"error"`
}

type remoteError struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

// transport is one request/response stream to the bridge script.
type transport interface {
	io.Writer
	io.Closer
}

// client serializes calls onto the bridge process. Calls are strictly sequential.
type client struct {
	mu      sync.Mutex
	nextID  uint64
	in      transport
	out     *bufio.Scanner
	wait    func() error
	closed  bool
	stderrs *logWriter
}

func newClient(in transport, out io.Reader, wait func() error) *client {
	scanner := bufio.NewScanner(out)
	scanner.Buffer(make([]byte, 0, 64*1024), maxResponseSize)
	return &client{
		in:   in,
		out:  scanner,
		wait: wait,
	}
}

// start launches the bridge script with node in dir.
func start(ctx context.Context, node, dir string, logger ports.Logger) (*client, error) {
	cmd := exec.CommandContext(ctx, node, "-e", bridgeScript) //nolint:gosec // node binary is user configured
	cmd.Dir = dir

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrCompilerStartFailed.Error())
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrCompilerStartFailed.Error())
	}
	stderr := &logWriter{logger: logger}
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCompilerStartFailed.Error()), "node", node)
	}

	c := newClient(stdin, stdout, cmd.Wait)
	c.stderrs = stderr
	return c, nil
}

// call sends method with params and decodes the result into out, which may be nil.
func (c *client) call(method string, params, out any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return domain.ErrCompilerClosed
	}

	c.nextID++
	req := request{ID: c.nextID, Method: method, Params: params}
	line, err := json.Marshal(req)
	if err != nil {
		return zerr.Wrap(err, domain.ErrCompilerProtocol.Error())
	}
	line = append(line, '\n')
	if _, err := c.in.Write(line); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCompilerRequestFailed.Error()), "method", method)
	}

	if !c.out.Scan() {
		err := c.out.Err()
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return zerr.With(zerr.Wrap(err, domain.ErrCompilerRequestFailed.Error()), "method", method)
	}

	var res response
	if err := json.Unmarshal(c.out.Bytes(), &res); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCompilerProtocol.Error()), "method", method)
	}
	if res.ID != req.ID {
		return zerr.With(domain.ErrCompilerProtocol, "method", method)
	}
	if res.Error != nil {
		return remoteErr(method, res.Error)
	}
	if out == nil || len(res.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(res.Result, out); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCompilerProtocol.Error()), "method", method)
	}
	return nil
}

func remoteErr(method string, e *remoteError) error {
	msg := strings.TrimRight(e.Message, "\n")
	if e.Kind == "config" {
		return zerr.With(zerr.Wrap(errors.New(msg), domain.ErrTsconfigInvalid.Error()), "method", method)
	}
	return zerr.With(zerr.Wrap(errors.New(msg), domain.ErrCompilerRequestFailed.Error()), "method", method)
}

// close ends the stream and waits for the bridge to exit.
func (c *client) close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	err := c.in.Close()
	if c.wait != nil {
		if werr := c.wait(); werr != nil && err == nil {
			err = werr
		}
	}
	if c.stderrs != nil {
		_ = c.stderrs.Close()
	}
	return err
}

// logWriter forwards the bridge's stderr to the logger line by line.
type logWriter struct {
	logger ports.Logger
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	msg := strings.TrimSuffix(string(line), "\r")
	if msg == "" {
		return
	}
	w.logger.Warn(msg)
}
