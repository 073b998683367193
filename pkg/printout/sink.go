package printout

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Document is a fully rendered invoice ready for dispatch.
type Document struct {
	// Name is a file-name hint, e.g. "INV-000042.html".
	Name        string
	ContentType string
	Data        []byte
}

// Sink is the interface for delivering rendered invoice documents to an
// output target (a print server, a spool directory, or nothing at all).
type Sink interface {
	// Dispatch delivers a rendered document to the output target.
	Dispatch(doc Document) error
	// Close releases the sink connection/handle.
	Close() error
	// IsReady returns true if the sink can currently accept documents.
	IsReady() bool
}

// --- Spool Sink (writes documents into a directory picked up by a print daemon) ---

type spoolSink struct {
	dir string
}

// NewSpoolSink creates a sink that writes each document into dir.
func NewSpoolSink(dir string) Sink {
	return &spoolSink{dir: dir}
}

func (s *spoolSink) Dispatch(doc Document) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("printout: failed to create spool dir %s: %w", s.dir, err)
	}

	path := filepath.Join(s.dir, safeName(doc.Name))
	if err := os.WriteFile(path, doc.Data, 0o644); err != nil {
		return fmt.Errorf("printout: failed to write %s: %w", path, err)
	}
	return nil
}

func (s *spoolSink) Close() error {
	return nil
}

func (s *spoolSink) IsReady() bool {
	info, err := os.Stat(s.dir)
	if err != nil {
		// Missing dir is fine, Dispatch creates it.
		return os.IsNotExist(err)
	}
	return info.IsDir()
}

// safeName strips path separators so a document name can never escape the
// spool directory.
func safeName(name string) string {
	name = strings.NewReplacer("/", "-", "\\", "-", "..", "-").Replace(name)
	if name == "" {
		name = fmt.Sprintf("document-%d", time.Now().UnixNano())
	}
	return name
}

// --- Network Sink (sends the document to a TCP print server) ---

type networkSink struct {
	address string
	timeout time.Duration
}

// NewNetworkSink creates a sink that ships documents to a print server over
// TCP. Address should include the port, e.g. "192.168.1.50:9400".
func NewNetworkSink(address string) Sink {
	return &networkSink{
		address: address,
		timeout: 5 * time.Second,
	}
}

func (s *networkSink) Dispatch(doc Document) error {
	conn, err := net.DialTimeout("tcp", s.address, s.timeout)
	if err != nil {
		return fmt.Errorf("printout: failed to connect to %s: %w", s.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))

	if _, err := conn.Write(doc.Data); err != nil {
		return fmt.Errorf("printout: failed to write to %s: %w", s.address, err)
	}
	return nil
}

func (s *networkSink) Close() error {
	return nil // connection is opened per dispatch
}

func (s *networkSink) IsReady() bool {
	conn, err := net.DialTimeout("tcp", s.address, 2*time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// --- Null Sink (no-op, used when no output target is configured) ---

type nullSink struct{}

// NewNullSink creates a no-op sink for environments without a print target.
func NewNullSink() Sink {
	return &nullSink{}
}

func (s *nullSink) Dispatch(doc Document) error {
	return nil
}

func (s *nullSink) Close() error {
	return nil
}

func (s *nullSink) IsReady() bool {
	return false
}

// --- Serialized wrapper ---

type serialSink struct {
	mu   sync.Mutex
	next Sink
}

// Serialize wraps a sink so at most one dispatch is in flight at a time.
// Later dispatches queue behind the mutex rather than interleaving writes to
// the shared output target.
func Serialize(next Sink) Sink {
	return &serialSink{next: next}
}

func (s *serialSink) Dispatch(doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next.Dispatch(doc)
}

func (s *serialSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next.Close()
}

func (s *serialSink) IsReady() bool {
	return s.next.IsReady()
}

// NewSinkFromConfig creates the appropriate Sink based on type.
//
//	sinkType: "spool", "network", or "none"
//	spoolDir: directory for spool sinks (e.g. "./spool")
//	address:  TCP address for network sinks (e.g. "192.168.1.50:9400")
func NewSinkFromConfig(sinkType, spoolDir, address string) (Sink, error) {
	switch sinkType {
	case "spool":
		if spoolDir == "" {
			return nil, fmt.Errorf("printout: spool dir is required for spool sink type")
		}
		return NewSpoolSink(spoolDir), nil
	case "network":
		if address == "" {
			return nil, fmt.Errorf("printout: address is required for network sink type")
		}
		return NewNetworkSink(address), nil
	case "none", "":
		return NewNullSink(), nil
	default:
		return nil, fmt.Errorf("printout: unknown sink type %q (use spool, network, or none)", sinkType)
	}
}
