package slideshow

import (
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sorana/internal/lifecycle"
)

var roadmapImages = []string{
	"images/satellite.png",
	"images/www.png",
	"images/aaron.png",
	"images/iran.png",
	"images/web3.png",
}

func TestNew_RejectsEmptySequence(t *testing.T) {
	t.Parallel()

	_, err := New(nil, DefaultInterval, DefaultFade, nil)
	assert.ErrorIs(t, err, ErrNoImages)
}

func TestNew_CopiesImages(t *testing.T) {
	t.Parallel()

	images := []string{"a.png", "b.png"}
	tm, err := New(images, DefaultInterval, DefaultFade, nil)
	require.NoError(t, err)

	images[0] = "changed.png"
	assert.Equal(t, "a.png", tm.Current())
}

func TestTimer_IndexAfterKTicks(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 2, 3, 5} {
		tm, err := New(roadmapImages[:n], DefaultInterval, DefaultFade, nil)
		require.NoError(t, err)
		start := time.Now()
		for k := 1; k <= 12; k++ {
			tm.Advance(start.Add(time.Duration(k) * DefaultInterval))
			assert.Equal(t, k%n, tm.Index(), "n=%d k=%d", n, k)
		}
	}
}

func TestTimer_ThreeImagesAtTwelveSeconds(t *testing.T) {
	t.Parallel()

	tm, err := New(roadmapImages[:3], 5000*time.Millisecond, DefaultFade, nil)
	require.NoError(t, err)
	scope := lifecycle.NewScope("roadmap", nil)
	require.NotNil(t, tm.Start(scope))

	start := time.Now()
	for elapsed := tm.Interval(); elapsed <= 12000*time.Millisecond; elapsed += tm.Interval() {
		require.NotNil(t, tm.Update(tm.task.Msg(start.Add(elapsed))))
	}

	assert.Equal(t, 2, tm.Index())
	assert.Equal(t, 2, tm.Ticks())
}

func TestTimer_SingleImageTicksForever(t *testing.T) {
	t.Parallel()

	tm, err := New(roadmapImages[:1], DefaultInterval, DefaultFade, nil)
	require.NoError(t, err)
	tm.Start(lifecycle.NewScope("roadmap", nil))

	now := time.Now()
	for i := 0; i < 100; i++ {
		now = now.Add(DefaultInterval)
		require.NotNil(t, tm.Update(tm.task.Msg(now)))
		f := tm.Crossfade(now)
		assert.True(t, f.Settled())
		assert.Equal(t, 0, f.Incoming)
	}
	assert.Equal(t, 0, tm.Index())
}

func TestTimer_StopRevokesTicks(t *testing.T) {
	t.Parallel()

	tm, err := New(roadmapImages, DefaultInterval, DefaultFade, nil)
	require.NoError(t, err)
	scope := lifecycle.NewScope("roadmap", nil)
	tm.Start(scope)
	pending := tm.task.Msg(time.Now())

	scope.Close()

	assert.False(t, tm.Running())
	assert.Nil(t, tm.Update(pending))
	assert.Equal(t, 0, tm.Index())
}

func TestTimer_Crossfade(t *testing.T) {
	t.Parallel()

	tm, err := New(roadmapImages[:3], DefaultInterval, time.Second, nil)
	require.NoError(t, err)

	start := time.Now()
	f := tm.Crossfade(start)
	assert.True(t, f.Settled(), "nothing to fade before the first advance")

	tm.Advance(start)

	f = tm.Crossfade(start)
	assert.Equal(t, 0, f.Outgoing)
	assert.Equal(t, 1, f.Incoming)
	assert.InDelta(t, 1.0, f.OutgoingOpacity, 1e-9)
	assert.InDelta(t, 0.0, f.IncomingOpacity, 1e-9)

	f = tm.Crossfade(start.Add(250 * time.Millisecond))
	assert.InDelta(t, 0.75, f.OutgoingOpacity, 1e-9)
	assert.InDelta(t, 0.25, f.IncomingOpacity, 1e-9)

	f = tm.Crossfade(start.Add(2 * time.Second))
	assert.True(t, f.Settled())
	assert.Equal(t, 1, f.Incoming)
	assert.InDelta(t, 1.0, f.IncomingOpacity, 1e-9)
}

func TestCompositor_BlendsDuringFade(t *testing.T) {
	t.Parallel()

	red := solid(color.RGBA{R: 0xFF, A: 0xFF})
	blue := solid(color.RGBA{B: 0xFF, A: 0xFF})
	c, err := NewCompositorWithLoader(func(path string) (image.Image, error) {
		if path == "red.png" {
			return red, nil
		}
		return blue, nil
	}, nil)
	require.NoError(t, err)

	tm, err := New([]string{"red.png", "blue.png"}, DefaultInterval, time.Second, nil)
	require.NoError(t, err)

	start := time.Now()
	r, _, b, _ := c.Render(16, 8, tm, start).At(4, 4).RGBA()
	assert.Greater(t, r, b, "settled on red")

	tm.Advance(start)
	r, _, b, _ = c.Render(16, 8, tm, start.Add(500*time.Millisecond)).At(4, 4).RGBA()
	assert.Positive(t, r)
	assert.Positive(t, b)

	r, _, b, _ = c.Render(16, 8, tm, start.Add(time.Second)).At(4, 4).RGBA()
	assert.Greater(t, b, r, "settled on blue")
}

func TestCompositor_PlaceholderOnLoadFailure(t *testing.T) {
	t.Parallel()

	loads := 0
	c, err := NewCompositorWithLoader(func(string) (image.Image, error) {
		loads++
		return nil, errors.New("missing")
	}, nil)
	require.NoError(t, err)

	tm, err := New([]string{"gone.png"}, DefaultInterval, DefaultFade, nil)
	require.NoError(t, err)

	img := c.Render(64, 32, tm, time.Now())
	assert.Equal(t, 64, img.Bounds().Dx())
	c.Render(64, 32, tm, time.Now())
	assert.Equal(t, 1, loads, "scaled placeholder is cached")
}

func TestCompositor_ResizeDropsOtherSizes(t *testing.T) {
	t.Parallel()

	c, err := NewCompositorWithLoader(func(string) (image.Image, error) {
		return solid(color.RGBA{R: 0xff, A: 0xff}), nil
	}, nil)
	require.NoError(t, err)
	tm, err := New([]string{"a.png", "b.png"}, DefaultInterval, DefaultFade, nil)
	require.NoError(t, err)

	for _, w := range []int{64, 80, 96, 120} {
		c.Render(w, 32, tm, time.Now())
		require.Len(t, c.scaled, 1)
		assert.Equal(t, w, c.scaled["a.png"].Bounds().Dx())
	}
	assert.Len(t, c.decoded, 1)
}

func TestCoverRect(t *testing.T) {
	t.Parallel()

	wide := image.Rect(0, 0, 400, 100)
	assert.Equal(t, image.Rect(100, 0, 300, 100), coverRect(wide, 200, 100))

	tall := image.Rect(0, 0, 100, 400)
	assert.Equal(t, image.Rect(0, 150, 100, 250), coverRect(tall, 100, 100))
}

func solid(c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}
