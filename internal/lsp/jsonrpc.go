package lsp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// defaultMaxMessageSize bounds a single JSON-RPC payload.
const defaultMaxMessageSize int64 = 32 << 20

const headerContentLength = "Content-Length"

// errFrameTooLarge is returned after the body of an oversized frame has been skipped.
var errFrameTooLarge = errors.New("lsp: message exceeds size limit")

// readMessage reads one Content-Length framed payload. Frames longer than limit
// are discarded so the stream stays aligned on the next header.
func readMessage(r *bufio.Reader, limit int64) ([]byte, error) {
	length, err := readFrameHeader(r)
	if err != nil {
		return nil, err
	}
	if limit > 0 && length > limit {
		if _, err := io.CopyN(io.Discard, r, length); err != nil {
			return nil, fmt.Errorf("%w (%d bytes): %w", errFrameTooLarge, length, err)
		}
		return nil, fmt.Errorf("%w (%d bytes)", errFrameTooLarge, length)
	}
	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// readFrameHeader consumes header lines up to the blank separator and returns
// the declared body length.
func readFrameHeader(r *bufio.Reader) (int64, error) {
	length := int64(-1)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return 0, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(name), headerContentLength) {
			continue
		}
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("lsp: invalid %s %q", headerContentLength, strings.TrimSpace(value))
		}
		length = n
	}
	if length < 0 {
		return 0, fmt.Errorf("lsp: missing %s header", headerContentLength)
	}
	return length, nil
}

func writeMessage(w io.Writer, payload []byte) error {
	if _, err := fmt.Fprintf(w, "%s: %d\r\n\r\n", headerContentLength, len(payload)); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}
