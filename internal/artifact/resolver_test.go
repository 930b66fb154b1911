package artifact

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/buildplan/internal/model"
)

// writeBundle creates an artifact bundle directory with the given info.toml.
func writeBundle(t *testing.T, infoTOML string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "info.toml"), []byte(infoTOML), 0600))
	return dir
}

func testTriple(t *testing.T, raw string) model.Triple {
	t.Helper()
	triple, err := model.ParseTriple(raw)
	require.NoError(t, err)
	return triple
}

func binaryTarget(name, bundlePath string) *model.Target {
	return &model.Target{
		Name:   name,
		Kind:   model.KindBinary,
		Binary: &model.BinaryPayload{ArtifactPath: bundlePath},
	}
}

func TestResolve_Framework(t *testing.T) {
	bundle := writeBundle(t, `
kind = "framework"

[[slice]]
triples = ["x86_64-unknown-linux-gnu", "aarch64-unknown-linux-gnu"]
libraries = ["linux/libFoo.so"]

[[slice]]
triples = ["arm64-apple-macosx"]
libraries = ["mac/Foo.framework"]
`)
	resolver := NewResolver(NewCache())

	t.Run("matching slice is selected", func(t *testing.T) {
		res, err := resolver.Resolve(context.Background(), binaryTarget("Foo", bundle), testTriple(t, "x86_64-unknown-linux-gnu"))
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(bundle, "linux/libFoo.so")}, res.LibraryPaths)
		assert.Empty(t, res.Tools)
	})

	t.Run("no matching slice yields an empty resolution", func(t *testing.T) {
		res, err := NewResolver(NewCache()).Resolve(context.Background(), binaryTarget("Foo", bundle), testTriple(t, "riscv64-unknown-linux-gnu"))
		require.NoError(t, err)
		assert.Empty(t, res.LibraryPaths)
	})
}

func TestResolve_Toolset(t *testing.T) {
	bundle := writeBundle(t, `
kind = "toolset"

[[tool]]
name = "protoc"
path = "bin/protoc"
supported_triples = ["x86_64-unknown-linux-gnu"]

[[tool]]
name = "docs"
path = "share/docs"
supported_triples = []

[[tool]]
name = "lint"
path = "bin/lint"
supported_triples = ["arm64-apple-macosx"]
`)
	resolver := NewResolver(NewCache())

	res, err := resolver.Resolve(context.Background(), binaryTarget("Tools", bundle), testTriple(t, "x86_64-unknown-linux-gnu"))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"protoc": filepath.Join(bundle, "bin/protoc")}, res.Tools)
	assert.NotContains(t, res.Tools, "docs", "entries with an empty supported-triple set are metadata-only")
	assert.NotContains(t, res.Tools, "lint", "entries for other platforms are excluded")
	assert.Empty(t, res.LibraryPaths)
}

func TestResolve_UnknownKindIsFatal(t *testing.T) {
	bundle := writeBundle(t, `kind = "sourcecode"`)
	resolver := NewResolver(NewCache())

	_, err := resolver.Resolve(context.Background(), binaryTarget("Bad", bundle), testTriple(t, "x86_64-unknown-linux-gnu"))
	require.Error(t, err)

	var kindErr *UnknownKindError
	require.ErrorAs(t, err, &kindErr)
	assert.Equal(t, "sourcecode", kindErr.Kind)
}

func TestResolve_PayloadMismatchIsFatal(t *testing.T) {
	broken := &model.Target{Name: "Broken", Kind: model.KindBinary}
	_, err := NewResolver(NewCache()).Resolve(context.Background(), broken, testTriple(t, "x86_64-unknown-linux-gnu"))
	assert.ErrorIs(t, err, model.ErrBinaryPayloadMismatch)
}

func TestResolve_MissingMetadataIsFatal(t *testing.T) {
	_, err := NewResolver(NewCache()).Resolve(context.Background(), binaryTarget("Gone", t.TempDir()), testTriple(t, "x86_64-unknown-linux-gnu"))
	assert.ErrorContains(t, err, "failed to read artifact metadata")
}

func TestCache_Memoization(t *testing.T) {
	cache := NewCache()
	loads := 0
	load := func() (Resolution, error) {
		loads++
		return Resolution{LibraryPaths: []string{"libA.so"}}, nil
	}

	first, err := cache.Resolve("A", load)
	require.NoError(t, err)
	second, err := cache.Resolve("A", load)
	require.NoError(t, err)

	assert.Equal(t, 1, loads, "the load function runs once per key")
	assert.Equal(t, first, second)

	_, err = cache.Resolve("B", load)
	require.NoError(t, err)
	assert.Equal(t, 2, loads, "distinct keys load independently")
}

func TestCache_SingleProducerPerKey(t *testing.T) {
	cache := NewCache()
	var loads atomic.Int32
	release := make(chan struct{})
	load := func() (Resolution, error) {
		loads.Add(1)
		<-release
		return Resolution{}, nil
	}

	const callers = 8
	var wg sync.WaitGroup
	start := make(chan struct{})
	for n := 0; n < callers; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := cache.Resolve("shared", load)
			assert.NoError(t, err)
		}()
	}

	close(start)
	close(release)
	wg.Wait()

	// Concurrent callers may arrive before or after the first producer
	// stores its result, but a stored result is never recomputed.
	assert.LessOrEqual(t, loads.Load(), int32(callers))
	_, err := cache.Resolve("shared", load)
	require.NoError(t, err)
	final := loads.Load()
	_, err = cache.Resolve("shared", load)
	require.NoError(t, err)
	assert.Equal(t, final, loads.Load(), "a memoized key never reloads")
}
