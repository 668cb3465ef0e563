// Package raster reads and writes the 2D images exchanged with image graphs.
//
// The image format is chosen from the file extension: png, jpg/jpeg, gif,
// tif/tiff and bmp are supported. A 3D image is stored as a series of 2D
// slices whose file names come from [SeriesNames].
package raster

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/pixelgraph/pkg/errors"
)

// Format returns the image format implied by the extension of path.
func Format(path string) (imaging.Format, error) {
	f, err := imaging.FormatFromFilename(path)
	if err != nil {
		return 0, errors.New(errors.ErrCodeUnsupported,
			"unsupported image format %q (use png, jpg, gif, tif or bmp)", filepath.Ext(path))
	}
	return f, nil
}

// Open decodes the image at path.
func Open(path string) (image.Image, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "The image located at %q is not readable", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "The image located at %q is not readable", path)
	}
	img, err := imaging.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "The image located at %q is not readable", path)
	}
	return img, nil
}

// Save encodes img to path in the format implied by its extension.
func Save(img image.Image, path string) error {
	if _, err := Format(path); err != nil {
		return err
	}
	if err := imaging.Save(img, path); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}

// seriesVerb matches a printf integer verb such as %d or %03d.
var seriesVerb = regexp.MustCompile(`%[0 +-]*[0-9]*d`)

// SeriesNames returns the n file names of an image series in dir.
//
// A pattern holding an integer verb (e.g. "slice%03d.png") is formatted
// with the indexes 0..n-1. Otherwise a single-image series uses the
// pattern as is, and longer series insert "_<index>" before the extension.
func SeriesNames(dir, pattern string, n int) ([]string, error) {
	if err := errors.ValidateExportPattern(pattern); err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "series length must be positive, got %d", n)
	}

	names := make([]string, n)
	switch verbs := seriesVerb.FindAllStringIndex(pattern, -1); {
	case len(verbs) > 1:
		return nil, errors.New(errors.ErrCodeInvalidPath, "export pattern %q holds more than one index verb", pattern)
	case len(verbs) == 1:
		loc := verbs[0]
		prefix := strings.ReplaceAll(pattern[:loc[0]], "%", "%%")
		suffix := strings.ReplaceAll(pattern[loc[1]:], "%", "%%")
		format := prefix + pattern[loc[0]:loc[1]] + suffix
		for i := range names {
			names[i] = filepath.Join(dir, fmt.Sprintf(format, i))
		}
	case n == 1:
		names[0] = filepath.Join(dir, pattern)
	default:
		ext := filepath.Ext(pattern)
		base := strings.TrimSuffix(pattern, ext)
		for i := range names {
			names[i] = filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, i, ext))
		}
	}
	return names, nil
}

// Luminance returns the 8-bit gray level of c.
func Luminance(c color.Color) uint8 {
	return color.GrayModel.Convert(c).(color.Gray).Y
}
