package resources

import (
	"embed"
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
)

const (
	logoDir  = "logo/"
	audioDir = "audio/"
)

//go:embed logo/*.png
var logoFS embed.FS

//go:embed audio/*.wav
var audioFS embed.FS

var logoCache sync.Map

// Logo returns a Fyne resource for the given logo file.
func Logo(fileName string) (fyne.Resource, error) {
	path := logoDir + fileName
	if cached, ok := logoCache.Load(path); ok {
		return cached.(fyne.Resource), nil
	}

	data, err := logoFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load resource %s: %w", path, err)
	}

	resource := fyne.NewStaticResource(path, data)
	logoCache.Store(path, resource)
	return resource, nil
}

// MustLogo returns a Fyne resource or panics on error.
func MustLogo(fileName string) fyne.Resource {
	resource, err := Logo(fileName)
	if err != nil {
		panic(err)
	}
	return resource
}

// Chime returns the built-in fallback alarm sound (WAV payload).
func Chime() ([]byte, error) {
	data, err := audioFS.ReadFile(audioDir + "chime.wav")
	if err != nil {
		return nil, fmt.Errorf("load resource chime.wav: %w", err)
	}
	return data, nil
}

// MustChime returns the fallback alarm sound or panics on error.
func MustChime() []byte {
	data, err := Chime()
	if err != nil {
		panic(err)
	}
	return data
}
