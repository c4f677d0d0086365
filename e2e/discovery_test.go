//go:build e2e && unix

package main

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMediaDiscovery(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	workspace, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")

	for _, name := range []string{"red.png", "nested/green.png", "blue.png"} {
		_, err = tf.CreateTestImage(name, 32, 16, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		require.NoError(t, err, "Failed to create %s", name)
	}
	_, err = tf.CreateTestImage(".hidden/skip.png", 8, 8, color.Black)
	require.NoError(t, err)

	err = tf.StartApp("-d", workspace)
	require.NoError(t, err, "Failed to start app")

	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.WaitForStatusMessage("Found 3 images", 5*time.Second), "Should report discovered images")
	require.True(t, tf.OutputContainsPlain("slide 1/3", 3*time.Second), "Discovered images become the background")
	require.True(t, tf.SeePlain("green.png"), "Discovered images become carousel items")
}

func TestSortCyclesOrder(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	workspace, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")
	for _, name := range []string{"b/one.png", "a/two.png"} {
		_, err = tf.CreateTestImage(name, 16, 8, color.White)
		require.NoError(t, err)
	}

	err = tf.StartApp("-d", workspace)
	require.NoError(t, err, "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.WaitForStatusMessage("Found 2 images", 5*time.Second))

	tf.SendKeys(KeySort)
	require.True(t, tf.WaitForStatusMessage("Order: name", time.Second), "Should switch to name order")
	tf.SendKeys(KeySort)
	require.True(t, tf.WaitForStatusMessage("Order: dir", time.Second), "Should switch to directory order")
}

func TestPauseBackground(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	workspace, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")
	for _, name := range []string{"one.png", "two.png"} {
		_, err = tf.CreateTestImage(name, 16, 8, color.White)
		require.NoError(t, err)
	}

	err = tf.StartApp("-d", workspace)
	require.NoError(t, err, "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.OutputContainsPlain("slide 1/2", 5*time.Second))

	tf.SendKeys(KeyPause)
	require.True(t, tf.WaitForStatusMessage("Slideshow paused", time.Second))
	tf.SendKeys(KeyPause)
	require.True(t, tf.WaitForStatusMessage("Slideshow resumed", time.Second))
}
