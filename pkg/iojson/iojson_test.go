package iojson

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, payload{Name: "diff", Count: 3})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "\"name\": \"diff\"")
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n")))
}

func TestWriteLine(t *testing.T) {
	var buf bytes.Buffer
	err := WriteLine(&buf, payload{Name: "diff", Count: 3})
	require.NoError(t, err)

	assert.Equal(t, `{"name":"diff","count":3}`+"\n", buf.String())
}

func TestReadFile(t *testing.T) {
	t.Run("decodes into target type", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "p.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"name":"diff","count":3}`), 0o644))

		got, err := ReadFile[payload](path)
		require.NoError(t, err)
		assert.Equal(t, payload{Name: "diff", Count: 3}, got)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadFile[payload](filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{`), 0o644))

		_, err := ReadFile[payload](path)
		assert.Error(t, err)
	})
}

func TestReadInput(t *testing.T) {
	t.Run("reads file paths", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "doc.txt")
		require.NoError(t, os.WriteFile(path, []byte("a\nb"), 0o644))

		data, err := ReadInput(path)
		require.NoError(t, err)
		assert.Equal(t, "a\nb", string(data))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadInput(filepath.Join(t.TempDir(), "nope.txt"))
		assert.Error(t, err)
	})
}
