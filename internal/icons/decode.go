package icons

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Image is one entry of an .ico directory.
type Image struct {
	Width    int
	Height   int
	BitCount int
	// Data is the raw BMP or PNG payload, as expected by CreateIconFromResourceEx.
	Data []byte
}

const (
	icoHeaderSize = 6
	icoEntrySize  = 16
	icoTypeIcon   = 1
)

var errNotICO = errors.New("not an .ico file")

// Decode parses the directory of an .ico file.
func Decode(data []byte) ([]Image, error) {
	if len(data) < icoHeaderSize {
		return nil, errNotICO
	}
	if binary.LittleEndian.Uint16(data[0:2]) != 0 || binary.LittleEndian.Uint16(data[2:4]) != icoTypeIcon {
		return nil, errNotICO
	}

	count := int(binary.LittleEndian.Uint16(data[4:6]))
	if count == 0 {
		return nil, fmt.Errorf("ico: empty directory")
	}
	if len(data) < icoHeaderSize+count*icoEntrySize {
		return nil, fmt.Errorf("ico: truncated directory (%d entries)", count)
	}

	images := make([]Image, 0, count)
	for i := 0; i < count; i++ {
		e := data[icoHeaderSize+i*icoEntrySize:]
		width, height := int(e[0]), int(e[1])
		if width == 0 {
			width = 256
		}
		if height == 0 {
			height = 256
		}
		size := int(binary.LittleEndian.Uint32(e[8:12]))
		offset := int(binary.LittleEndian.Uint32(e[12:16]))
		if size <= 0 || offset < 0 || offset+size > len(data) || offset+size < offset {
			return nil, fmt.Errorf("ico: entry %d out of bounds (offset %d, size %d)", i, offset, size)
		}
		images = append(images, Image{
			Width:    width,
			Height:   height,
			BitCount: int(binary.LittleEndian.Uint16(e[6:8])),
			Data:     data[offset : offset+size],
		})
	}
	return images, nil
}

// Image decodes the asset and returns the entry closest to its nominal size.
func (a Asset) Image() (Image, error) {
	images, err := Decode(a.Data)
	if err != nil {
		return Image{}, fmt.Errorf("%s: %w", a.Name, err)
	}
	best := images[0]
	for _, img := range images[1:] {
		if abs(img.Width-a.Size) < abs(best.Width-a.Size) {
			best = img
		}
	}
	return best, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
