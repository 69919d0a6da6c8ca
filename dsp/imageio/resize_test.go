package imageio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-conv2d/dsp/conv2d"
)

func TestResize_Identity(t *testing.T) {
	src := levels(5, 7, 3)

	got, err := Resize(src, 7, 5)
	require.NoError(t, err)
	assert.Equal(t, src.Data, got.Data)
}

func TestResize_DownsampleAveragesBlocks(t *testing.T) {
	data := make([]float64, 16)
	for i := range data {
		data[i] = float64(i)
	}
	src, _ := conv2d.ImageFromSlice(data, 4, 4, 1)

	got, err := Resize(src, 2, 2)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2.5, 4.5, 10.5, 12.5}, got.Data, 1e-12)
}

func TestResize_UpsampleClampsEdges(t *testing.T) {
	src, _ := conv2d.ImageFromSlice([]float64{0, 1}, 1, 2, 1)

	got, err := Resize(src, 4, 1)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0.25, 0.75, 1}, got.Data, 1e-12)
}

func TestResize_Errors(t *testing.T) {
	_, err := Resize(nil, 4, 4)
	assert.ErrorIs(t, err, conv2d.ErrInvalidArgument)

	_, err = Resize(levels(2, 2, 1), 0, 4)
	assert.ErrorIs(t, err, conv2d.ErrInvalidArgument)
}
