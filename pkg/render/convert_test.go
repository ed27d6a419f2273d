package render

import (
	"testing"

	"github.com/matzehuels/sparsestress/pkg/errors"
)

func TestConvertMissingTool(t *testing.T) {
	old := rsvgConvert
	rsvgConvert = "rsvg-convert-does-not-exist"
	defer func() { rsvgConvert = old }()

	_, err := ToPDF([]byte("<svg/>"))
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPDF error = %v, want UNSUPPORTED", err)
	}
	_, err = ToPNG([]byte("<svg/>"), 0)
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPNG error = %v, want UNSUPPORTED", err)
	}
}
