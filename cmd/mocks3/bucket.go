package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
)

type object struct {
	content     []byte
	contentType string
}

// Bucket keeps the objects of a single path-style bucket in memory.
// Signatures are not checked.
type Bucket struct {
	name    string
	mu      sync.RWMutex
	objects map[string]object
	logger  *slog.Logger
}

func NewBucket(name string, logger *slog.Logger) *Bucket {
	return &Bucket{
		name:    name,
		objects: make(map[string]object),
		logger:  logger,
	}
}

func (b *Bucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	bucket, key := extractBucketAndKey(r.URL.Path)
	b.logger.Debug("request",
		slog.String("method", r.Method),
		slog.String("bucket", bucket),
		slog.String("key", key),
	)

	if bucket != b.name {
		http.Error(w, "NoSuchBucket", http.StatusNotFound)
		return
	}
	if key == "" {
		switch r.Method {
		case http.MethodHead, http.MethodGet:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	switch r.Method {
	case http.MethodHead:
		b.headObject(w, key)
	case http.MethodGet:
		b.getObject(w, key)
	case http.MethodPut:
		b.putObject(w, r, key)
	case http.MethodDelete:
		b.deleteObject(w, key)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func extractBucketAndKey(path string) (string, string) {
	parts := strings.SplitN(strings.TrimPrefix(path, "/"), "/", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func (b *Bucket) load(key string) (object, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	obj, ok := b.objects[key]
	return obj, ok
}

func (b *Bucket) headObject(w http.ResponseWriter, key string) {
	obj, ok := b.load(key)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", obj.contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(obj.content)))
	w.WriteHeader(http.StatusOK)
}

func (b *Bucket) getObject(w http.ResponseWriter, key string) {
	obj, ok := b.load(key)
	if !ok {
		http.Error(w, "NoSuchKey", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", obj.contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(obj.content)
}

func (b *Bucket) putObject(w http.ResponseWriter, r *http.Request, key string) {
	var body io.Reader = r.Body
	if strings.Contains(r.Header.Get("Content-Encoding"), "aws-chunked") {
		body = newChunkedReader(r.Body)
	}
	content, err := io.ReadAll(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	b.mu.Lock()
	b.objects[key] = object{content: content, contentType: contentType}
	b.mu.Unlock()

	w.Header().Set("ETag", fmt.Sprintf("%q", strconv.Itoa(len(content))))
	w.WriteHeader(http.StatusOK)
}

func (b *Bucket) deleteObject(w http.ResponseWriter, key string) {
	b.mu.Lock()
	delete(b.objects, key)
	b.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

// chunkedReader strips aws-chunked framing: "<hex size>[;ext]\r\n<data>\r\n"
// repeated until a zero sized chunk, followed by optional trailers.
type chunkedReader struct {
	r         *bufio.Reader
	remaining int
	done      bool
}

func newChunkedReader(r io.Reader) *chunkedReader {
	return &chunkedReader{r: bufio.NewReader(r)}
}

func (c *chunkedReader) Read(p []byte) (int, error) {
	if c.done {
		return 0, io.EOF
	}
	if c.remaining == 0 {
		line, err := c.r.ReadString('\n')
		if err != nil {
			return 0, err
		}
		line = strings.TrimSpace(line)
		if i := strings.IndexByte(line, ';'); i >= 0 {
			line = line[:i]
		}
		size, err := strconv.ParseInt(line, 16, 64)
		if err != nil {
			return 0, fmt.Errorf("bad chunk size %q: %w", line, err)
		}
		if size == 0 {
			c.done = true
			_, _ = io.Copy(io.Discard, c.r)
			return 0, io.EOF
		}
		c.remaining = int(size)
	}

	if len(p) > c.remaining {
		p = p[:c.remaining]
	}
	n, err := c.r.Read(p)
	c.remaining -= n
	if c.remaining == 0 && err == nil {
		var crlf [2]byte
		if _, err := io.ReadFull(c.r, crlf[:]); err != nil {
			return n, err
		}
		if !bytes.Equal(crlf[:], []byte("\r\n")) {
			return n, fmt.Errorf("malformed chunk terminator")
		}
	}
	return n, err
}
