package pack

import "github.com/vovakirdan/tileworld/internal/lynx"

// Map layers are packed six bits per tile, LSB first, with no padding
// between tiles. The bottom layer comes first, then the top layer.
const (
	tileBits   = 6
	tileMask   = 1<<tileBits - 1
	layerBytes = 2 * lynx.GridSize * tileBits / 8
)

func packLayers(lv *lynx.Level) []byte {
	buf := make([]byte, layerBytes)
	for i := 0; i < lynx.GridSize; i++ {
		putTile(buf, i, uint8(lv.Bottom[i]))
		putTile(buf, lynx.GridSize+i, uint8(lv.Top[i]))
	}
	return buf
}

func unpackLayers(data []byte, lv *lynx.Level) {
	for i := 0; i < lynx.GridSize; i++ {
		lv.Bottom[i] = lynx.Tile(getTile(data, i))
		lv.Top[i] = lynx.Actor(getTile(data, lynx.GridSize+i))
	}
}

func putTile(buf []byte, n int, v uint8) {
	bit := n * tileBits
	idx, shift := bit>>3, bit&7
	wide := uint16(v&tileMask) << shift
	buf[idx] |= byte(wide)
	if shift+tileBits > 8 {
		buf[idx+1] |= byte(wide >> 8)
	}
}

func getTile(buf []byte, n int) uint8 {
	bit := n * tileBits
	idx, shift := bit>>3, bit&7
	wide := uint16(buf[idx])
	if shift+tileBits > 8 {
		wide |= uint16(buf[idx+1]) << 8
	}
	return uint8(wide>>shift) & tileMask
}
