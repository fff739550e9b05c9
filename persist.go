package skipkv

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Dump writes every record in key order, one "key<delimiter>value" line
// each. Writers are held off for the duration.
func (sl *SkipList[K, V]) Dump(w io.Writer) error {
	if sl.codec == nil {
		return sl.codecErr
	}

	sl.mu.RLock()
	defer sl.mu.RUnlock()

	bw := bufio.NewWriter(w)
	for n := sl.head().forward[0]; n != nil; n = n.forward[0] {
		key, err := sl.codec.EncodeKey(n.key)
		if err != nil {
			return fmt.Errorf("encode key: %w", err)
		}
		value, err := sl.codec.EncodeValue(n.value)
		if err != nil {
			return fmt.Errorf("encode value for key %q: %w", key, err)
		}
		if !sl.loadable(key, value) {
			return fmt.Errorf("%w: key %q", ErrInvalidRecord, key)
		}

		bw.WriteString(key)
		bw.WriteString(sl.delimiter)
		bw.WriteString(value)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Load reads records written by Dump and inserts them, so a key seen twice
// keeps its last value. Lines that are empty, lack the delimiter, have an
// empty key or value, or fail to decode are skipped. Only read errors are
// returned. The write lock is held for the whole replay.
func (sl *SkipList[K, V]) Load(r io.Reader) error {
	if sl.codec == nil {
		return sl.codecErr
	}

	sl.mu.Lock()
	defer sl.mu.Unlock()

	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			sl.loadLine(strings.TrimSuffix(line, "\n"))
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read records: %w", err)
		}
	}
}

// loadable reports whether an encoded record survives a Load unchanged.
func (sl *SkipList[K, V]) loadable(key, value string) bool {
	if key == "" || value == "" {
		return false
	}
	return !strings.Contains(key, sl.delimiter) && !strings.Contains(key, "\n") && !strings.Contains(value, "\n")
}

func (sl *SkipList[K, V]) loadLine(line string) {
	// Only the first delimiter separates; values may contain more.
	rawKey, rawValue, ok := strings.Cut(line, sl.delimiter)
	if !ok || rawKey == "" || rawValue == "" {
		sl.logger.Debug("load: skip malformed line", slog.String("line", line))
		return
	}

	key, err := sl.codec.DecodeKey(rawKey)
	if err != nil {
		sl.logger.Debug("load: skip undecodable key", slog.String("line", line), slog.Any("err", err))
		return
	}
	value, err := sl.codec.DecodeValue(rawValue)
	if err != nil {
		sl.logger.Debug("load: skip undecodable value", slog.String("line", line), slog.Any("err", err))
		return
	}

	st := sl.mut.put(key, value)
	sl.logger.Debug("load", slog.Any("key", key), slog.String("status", st.String()))
}

// StorePath returns the file used by DumpFile and LoadFile.
func (sl *SkipList[K, V]) StorePath() string {
	return sl.storePath
}

// DumpFile dumps the list to its store path, creating missing parent
// directories. The dump goes to a temporary file next to the store file and
// replaces it only once every record was written, so a failed dump leaves
// the previous file intact.
func (sl *SkipList[K, V]) DumpFile() error {
	dir := filepath.Dir(sl.storePath)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create store dir %s: %w", dir, err)
		}
	}

	f, err := os.CreateTemp(dir, filepath.Base(sl.storePath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create store file: %w", err)
	}
	tmp := f.Name()

	if err := sl.Dump(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("dump %s: %w", sl.storePath, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close store file: %w", err)
	}
	if err := os.Rename(tmp, sl.storePath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace store file: %w", err)
	}

	sl.logger.Debug("dump file", slog.String("path", sl.storePath))
	return nil
}

// LoadFile loads records from the store path. A missing file is an error
// wrapping fs.ErrNotExist.
func (sl *SkipList[K, V]) LoadFile() error {
	f, err := os.Open(sl.storePath)
	if err != nil {
		return fmt.Errorf("open store file: %w", err)
	}
	defer f.Close()

	if err := sl.Load(f); err != nil {
		return fmt.Errorf("load %s: %w", sl.storePath, err)
	}

	sl.logger.Debug("load file", slog.String("path", sl.storePath))
	return nil
}
