package preview

import (
	"bytes"
	"strings"
	"testing"

	"github.com/saschaklick/libilbm/ilbm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func greyImage(width, height int, pixels []byte) *ilbm.Image {
	return &ilbm.Image{
		Width:      width,
		Height:     height,
		Pixels:     pixels,
		ColorCount: 3,
		Palette:    []byte{0, 0, 0, 128, 128, 128, 255, 255, 255},
	}
}

func TestRender(t *testing.T) {
	m := greyImage(4, 2, []byte{0, 2, 2, 0, 2, 0, 1, 2})

	b := new(bytes.Buffer)
	require.NoError(t, Render(b, m, Options{Aspect: 1}))

	assert.Equal(t, ""+
		".------.\n"+
		":  @@  :\n"+
		": @ =@ :\n"+
		"`------'\n", b.String())
}

func TestRenderScales(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		opts   Options
		cols   int
		rows   int
	}{
		{"default aspect halves rows", 4, 4, Options{}, 4, 2},
		{"square cells", 4, 4, Options{Aspect: 1}, 4, 4},
		{"narrowed to columns", 240, 10, Options{Columns: 120, Aspect: 1}, 120, 5},
		{"default columns", 480, 8, Options{}, 120, 1},
		{"odd sizes round up", 5, 3, Options{}, 5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := greyImage(tt.width, tt.height, make([]byte, tt.width*tt.height))

			cols, rows := Size(m, tt.opts)
			assert.Equal(t, tt.cols, cols)
			assert.Equal(t, tt.rows, rows)

			b := new(bytes.Buffer)
			require.NoError(t, Render(b, m, tt.opts))

			lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
			require.Len(t, lines, rows+2)
			for _, line := range lines {
				assert.Len(t, line, cols+4)
			}
		})
	}
}

func TestRenderSamplesRows(t *testing.T) {
	m := greyImage(1, 4, []byte{2, 0, 1, 0})

	b := new(bytes.Buffer)
	require.NoError(t, Render(b, m, Options{}))
	assert.Equal(t, ".---.\n: @ :\n: = :\n`---'\n", b.String())
}

func TestRenderTransparent(t *testing.T) {
	m := greyImage(2, 1, []byte{2, 2})
	m.Alpha = []byte{0xff, 0x00}

	b := new(bytes.Buffer)
	require.NoError(t, Render(b, m, Options{Aspect: 1}))
	assert.Equal(t, ".----.\n: @  :\n`----'\n", b.String())
}

func TestRenderCharsets(t *testing.T) {
	m := greyImage(2, 1, []byte{0, 2})

	for i := 0; i < Charsets()+1; i++ {
		b := new(bytes.Buffer)
		require.NoError(t, Render(b, m, Options{Aspect: 1, Charset: i}))

		ramp := charsets[i%Charsets()]
		want := ": " + string(ramp[0]) + string(ramp[len(ramp)-1]) + " :"
		assert.Equal(t, want, strings.Split(b.String(), "\n")[1])
	}
}

func TestIntensity(t *testing.T) {
	m := &ilbm.Image{
		Width:      4,
		Height:     1,
		Pixels:     []byte{0, 1, 7, 0},
		ColorCount: 2,
		Palette:    []byte{30, 60, 90, 255, 0, 0},
		Alpha:      []byte{0xff, 0xff, 0xff, 0x00},
	}

	assert.Equal(t, 60, Intensity(m, 0))
	assert.Equal(t, 85, Intensity(m, 1))
	assert.Equal(t, 0, Intensity(m, 2))
	assert.Equal(t, 0, Intensity(m, 3))
}

func TestRenderRejectsFailedImage(t *testing.T) {
	m := greyImage(2, 1, []byte{0, 1})
	m.Code = ilbm.BodyMissing

	assert.Error(t, Render(new(bytes.Buffer), m, Options{}))
	assert.Error(t, Render(new(bytes.Buffer), nil, Options{}))
}
