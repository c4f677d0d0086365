//go:build e2e && unix

package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
)

// CreateTestWorkspace creates a temporary directory for test media
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// CreateTestImage writes a solid w x h PNG at name inside the workspace
func (tf *TUITestFramework) CreateTestImage(name string, w, h int, c color.Color) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}
	path := filepath.Join(tf.workspace, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return path, png.Encode(f, img)
}

// WriteConfig writes a config file into the workspace and returns its path
func (tf *TUITestFramework) WriteConfig(content string) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}
	path := filepath.Join(tf.workspace, "showreel.toml")
	return path, os.WriteFile(path, []byte(content), 0644)
}

// itemsConfig returns a config with n text items and no timers
func itemsConfig(n int) string {
	s := `version = 1

[carousel]
visible = 3
scroll = 1
circular = true
auto = ""
speed = "100ms"
easing = "swing"
randomize = false
item_width = 20
item_height = 5
`
	for i := 1; i <= n; i++ {
		s += fmt.Sprintf("\n[[carousel.items]]\nid = \"card-%d\"\ntitle = \"Card %d\"\nbody = \"body of card %d\"\n", i, i, i)
	}
	return s
}
