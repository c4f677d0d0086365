//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCarouselNavigation(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")
	configPath, err := tf.WriteConfig(itemsConfig(5))
	require.NoError(t, err, "Failed to write config")

	err = tf.StartApp("-config", configPath)
	require.NoError(t, err, "Failed to start app")

	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("Card 1"), "Should show the first card")
	require.True(t, tf.SeePlain("item 1/5"), "Status bar should show the cursor")

	tf.Next()
	require.True(t, tf.OutputContainsPlain("item 2/5", time.Second), "Next should advance the cursor")
	require.True(t, tf.SeePlain("Card 4"), "The fourth card should scroll into view")

	// moves are dropped while the previous one animates
	tf.Prev()
	require.True(t, tf.OutputContainsPlain("item 1/5", time.Second))
	time.Sleep(300 * time.Millisecond)
	tf.Prev()
	require.True(t, tf.OutputContainsPlain("item 5/5", time.Second), "Previous should wrap around")
}

func TestGoToItem(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")
	configPath, err := tf.WriteConfig(itemsConfig(6))
	require.NoError(t, err, "Failed to write config")

	err = tf.StartApp("-config", configPath)
	require.NoError(t, err, "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")

	require.NoError(t, tf.GoTo("4"))
	require.True(t, tf.OutputContainsPlain("item 4/6", time.Second), "Should jump to item 4")
	require.True(t, tf.SeePlain("Card 6"), "Cards 4 to 6 should be visible")

	require.NoError(t, tf.GoTo("9"))
	require.True(t, tf.WaitForStatusMessage("expected 1..6", time.Second), "Out of range input should be reported")
}

func TestCompactFlag(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")
	configPath, err := tf.WriteConfig(itemsConfig(3))
	require.NoError(t, err, "Failed to write config")

	err = tf.StartApp("-config", configPath, "-compact")
	require.NoError(t, err, "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("Card 1"), "Should show the first card")

	tf.Next()
	require.True(t, tf.OutputContainsPlain("item 2/3", time.Second), "Next should advance the cursor")
}
