package printout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpoolSinkDispatch(t *testing.T) {
	dir := t.TempDir()
	sink := NewSpoolSink(dir)

	doc := Document{Name: "INV-000001.html", ContentType: "text/html", Data: []byte("<html></html>")}
	require.NoError(t, sink.Dispatch(doc))

	data, err := os.ReadFile(filepath.Join(dir, "INV-000001.html"))
	require.NoError(t, err)
	assert.Equal(t, doc.Data, data)
	assert.True(t, sink.IsReady())
}

func TestSpoolSinkSanitizesName(t *testing.T) {
	dir := t.TempDir()
	sink := NewSpoolSink(dir)

	require.NoError(t, sink.Dispatch(Document{Name: "../escape.html", Data: []byte("x")}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].Name(), "..")
}

func TestNullSink(t *testing.T) {
	sink := NewNullSink()
	assert.NoError(t, sink.Dispatch(Document{Name: "x"}))
	assert.False(t, sink.IsReady())
	assert.NoError(t, sink.Close())
}

func TestNewSinkFromConfig(t *testing.T) {
	tests := []struct {
		name     string
		sinkType string
		spoolDir string
		address  string
		wantErr  bool
	}{
		{name: "spool", sinkType: "spool", spoolDir: t.TempDir()},
		{name: "spool requires dir", sinkType: "spool", wantErr: true},
		{name: "network", sinkType: "network", address: "127.0.0.1:9400"},
		{name: "network requires address", sinkType: "network", wantErr: true},
		{name: "none", sinkType: "none"},
		{name: "empty defaults to none", sinkType: ""},
		{name: "unknown", sinkType: "carrier-pigeon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink, err := NewSinkFromConfig(tt.sinkType, tt.spoolDir, tt.address)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, sink)
		})
	}
}

func TestSerializeDelegates(t *testing.T) {
	dir := t.TempDir()
	sink := Serialize(NewSpoolSink(dir))

	require.NoError(t, sink.Dispatch(Document{Name: "a.html", Data: []byte("a")}))
	require.NoError(t, sink.Dispatch(Document{Name: "b.html", Data: []byte("b")}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
