package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTarget_Validate(t *testing.T) {
	t.Run("valid targets", func(t *testing.T) {
		valid := []*Target{
			{Name: "Lib", Kind: KindLibrary},
			{Name: "Sys", Kind: KindSystemModule, SystemModule: &SystemModulePayload{}},
			{Name: "Bin", Kind: KindBinary, Binary: &BinaryPayload{ArtifactPath: "p"}},
		}
		for _, target := range valid {
			assert.NoError(t, target.Validate(), "target %q", target.Name)
		}
	})

	t.Run("payload mismatches are rejected", func(t *testing.T) {
		invalid := []*Target{
			{Name: "Sys", Kind: KindSystemModule},
			{Name: "Bin", Kind: KindBinary},
			{Name: "Lib", Kind: KindLibrary, Binary: &BinaryPayload{}},
			{Name: "Lib2", Kind: KindLibrary, SystemModule: &SystemModulePayload{}},
			{Name: "Bin2", Kind: KindBinary, Binary: &BinaryPayload{}, SystemModule: &SystemModulePayload{}},
			{Kind: KindLibrary},
		}
		for _, target := range invalid {
			assert.Error(t, target.Validate(), "target %q should be rejected", target.Name)
		}
	})
}

func TestTarget_BinaryArtifact(t *testing.T) {
	bin := &Target{Name: "Bin", Kind: KindBinary, Binary: &BinaryPayload{ArtifactPath: "bundle"}}
	payload, err := bin.BinaryArtifact()
	require.NoError(t, err)
	assert.Equal(t, "bundle", payload.ArtifactPath)

	// A binary target without its payload violates the upstream contract.
	broken := &Target{Name: "Broken", Kind: KindBinary}
	_, err = broken.BinaryArtifact()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBinaryPayloadMismatch)

	notBinary := &Target{Name: "Lib", Kind: KindLibrary}
	_, err = notBinary.BinaryArtifact()
	assert.ErrorIs(t, err, ErrBinaryPayloadMismatch)
}

func TestTarget_Compiled(t *testing.T) {
	assert.True(t, (&Target{Kind: KindLibrary}).Compiled())
	assert.True(t, (&Target{Kind: KindExecutable}).Compiled())
	assert.True(t, (&Target{Kind: KindTest}).Compiled())
	assert.True(t, (&Target{Kind: KindMacro}).Compiled())
	assert.False(t, (&Target{Kind: KindSystemModule}).Compiled())
	assert.False(t, (&Target{Kind: KindBinary}).Compiled())
	assert.False(t, (&Target{Kind: KindPlugin}).Compiled())
}

func TestGraph_Lookups(t *testing.T) {
	lib := &Target{Name: "Lib", Kind: KindLibrary}
	product := &Product{Name: "App", Kind: ProductExecutable, Targets: []*Target{lib}}

	graph, err := NewGraph("pkg", ToolsVersion{5, 9}, []*Target{lib}, []*Product{product})
	require.NoError(t, err)

	got, ok := graph.Target("Lib")
	require.True(t, ok)
	assert.Same(t, lib, got)

	gotProduct, ok := graph.Product("App")
	require.True(t, ok)
	assert.Same(t, product, gotProduct)

	_, ok = graph.Target("missing")
	assert.False(t, ok)
}

func TestNewGraph_Rejections(t *testing.T) {
	lib := &Target{Name: "Lib", Kind: KindLibrary}

	t.Run("duplicate target name", func(t *testing.T) {
		_, err := NewGraph("pkg", ToolsVersion{5, 9}, []*Target{lib, {Name: "Lib", Kind: KindLibrary}}, nil)
		assert.ErrorContains(t, err, "duplicate target name")
	})

	t.Run("duplicate product name", func(t *testing.T) {
		products := []*Product{
			{Name: "App", Kind: ProductExecutable, Targets: []*Target{lib}},
			{Name: "App", Kind: ProductExecutable, Targets: []*Target{lib}},
		}
		_, err := NewGraph("pkg", ToolsVersion{5, 9}, []*Target{lib}, products)
		assert.ErrorContains(t, err, "duplicate product name")
	})

	t.Run("product without targets", func(t *testing.T) {
		_, err := NewGraph("pkg", ToolsVersion{5, 9}, []*Target{lib}, []*Product{{Name: "Empty", Kind: ProductExecutable}})
		assert.ErrorContains(t, err, "lists no targets")
	})

	t.Run("invalid target payload", func(t *testing.T) {
		_, err := NewGraph("pkg", ToolsVersion{5, 9}, []*Target{{Name: "Bad", Kind: KindBinary}}, nil)
		assert.Error(t, err)
	})
}
